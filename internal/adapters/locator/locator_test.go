package locator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/libload/internal/adapters/locator"
	"go.trai.ch/libload/internal/core/domain"
)

func TestLocator_Locate(t *testing.T) {
	tests := []struct {
		name     string
		root     string
		coord    domain.Coordinate
		wantURL  string
		wantFile string
	}{
		{
			name:     "maven central",
			root:     domain.DefaultRepository,
			coord:    domain.NewCoordinate("com.google.code.gson", "gson", "2.10.1"),
			wantURL:  "https://repo1.maven.org/maven2/com/google/code/gson/gson/2.10.1/gson-2.10.1.jar",
			wantFile: "gson-2.10.1.jar",
		},
		{
			name:     "trailing slash on root",
			root:     "https://repo.example.com/releases/",
			coord:    domain.NewCoordinate("org.slf4j", "slf4j-api", "2.0.9"),
			wantURL:  "https://repo.example.com/releases/org/slf4j/slf4j-api/2.0.9/slf4j-api-2.0.9.jar",
			wantFile: "slf4j-api-2.0.9.jar",
		},
		{
			name:     "single segment group",
			root:     "https://repo.example.com",
			coord:    domain.NewCoordinate("junit", "junit", "4.13.2"),
			wantURL:  "https://repo.example.com/junit/junit/4.13.2/junit-4.13.2.jar",
			wantFile: "junit-4.13.2.jar",
		},
		{
			name:     "empty segments produce a malformed url",
			root:     "https://repo.example.com",
			coord:    domain.NewCoordinate("", "", ""),
			wantURL:  "https://repo.example.com////-.jar",
			wantFile: "-.jar",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc := locator.New(tt.root).Locate(tt.coord)
			assert.Equal(t, tt.wantURL, loc.URL)
			assert.Equal(t, tt.wantFile, loc.FileName)
		})
	}
}

func TestLocator_Deterministic(t *testing.T) {
	l := locator.New(domain.DefaultRepository)
	coord := domain.NewCoordinate("io.netty", "netty-buffer", "4.1.100.Final")

	first := l.Locate(coord)
	for range 10 {
		assert.Equal(t, first, l.Locate(coord))
	}
}

// Coordinates that differ only in group alias the same cache slot. This is
// kept for compatibility with caches written by earlier releases; if it ever
// changes, existing caches are silently re-downloaded.
func TestLocator_GroupDoesNotAffectFileName(t *testing.T) {
	l := locator.New(domain.DefaultRepository)

	a := l.Locate(domain.NewCoordinate("com.example.one", "util", "1.0"))
	b := l.Locate(domain.NewCoordinate("org.example.two", "util", "1.0"))

	assert.NotEqual(t, a.URL, b.URL)
	assert.Equal(t, a.FileName, b.FileName)
}
