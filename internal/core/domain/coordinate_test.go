package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/libload/internal/core/domain"
)

func TestParseCoordinate(t *testing.T) {
	tests := []struct {
		name        string
		declaration string
		want        domain.Coordinate
		wantErr     bool
	}{
		{
			name:        "valid",
			declaration: "com.google.code.gson:gson:2.10.1",
			want:        domain.NewCoordinate("com.google.code.gson", "gson", "2.10.1"),
		},
		{
			name:        "surrounding whitespace",
			declaration: "  org.slf4j:slf4j-api:2.0.9 ",
			want:        domain.NewCoordinate("org.slf4j", "slf4j-api", "2.0.9"),
		},
		{
			name:        "empty segments are accepted",
			declaration: "::",
			want:        domain.NewCoordinate("", "", ""),
		},
		{
			name:        "two segments",
			declaration: "bad:entry",
			wantErr:     true,
		},
		{
			name:        "four segments",
			declaration: "g:n:v:classifier",
			wantErr:     true,
		},
		{
			name:        "empty",
			declaration: "",
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.ParseCoordinate(tt.declaration)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorContains(t, err, domain.ErrMalformedDeclaration.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCoordinate_Identity(t *testing.T) {
	a := domain.NewCoordinate("g", "n", "1.0")
	b, err := domain.ParseCoordinate("g:n:1.0")
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.True(t, a == b, "coordinates must be comparable by value")
	assert.NotEqual(t, a, domain.NewCoordinate("g", "n", "1.1"))
}

func TestCoordinate_Formatting(t *testing.T) {
	c := domain.NewCoordinate("com.google.code.gson", "gson", "2.10.1")

	assert.Equal(t, "com.google.code.gson:gson:2.10.1", c.String())
	assert.Equal(t, "gson 2.10.1", c.DisplayName())
	assert.Equal(t, "com/google/code/gson", c.GroupPath())
}
