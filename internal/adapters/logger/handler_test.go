package logger_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/libload/internal/adapters/logger"
)

func TestPrettyHandler_Handle_Levels(t *testing.T) {
	tests := []struct {
		name       string
		level      slog.Level
		msg        string
		goldenName string
	}{
		{name: "info level", level: slog.LevelInfo, msg: "information message", goldenName: "handler_info"},
		{name: "warn level", level: slog.LevelWarn, msg: "warning message", goldenName: "handler_warn"},
		{name: "error level", level: slog.LevelError, msg: "error message", goldenName: "handler_error"},
		{name: "debug level filtered", level: slog.LevelDebug, msg: "debug message", goldenName: "handler_debug_filtered"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", "1")

			buf := &bytes.Buffer{}
			lg := slog.New(logger.NewPrettyHandler(buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

			lg.Log(t.Context(), tt.level, tt.msg)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestPrettyHandler_Attrs(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := slog.New(logger.NewPrettyHandler(buf, nil)).
		With("coordinate", "org.example:lib:1.0").
		WithGroup("fetch")

	lg.Info("downloaded", "bytes", 42)

	assert.Equal(t, "downloaded coordinate=org.example:lib:1.0 fetch.bytes=42\n", buf.String())
}

func TestPrettyHandler_Enabled(t *testing.T) {
	h := logger.NewPrettyHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn})

	assert.False(t, h.Enabled(t.Context(), slog.LevelInfo))
	assert.True(t, h.Enabled(t.Context(), slog.LevelWarn))
	assert.True(t, h.Enabled(t.Context(), slog.LevelError))
}

func TestPrettyHandler_Groups(t *testing.T) {
	tests := []struct {
		name string
		log  func(lg *slog.Logger)
		want string
	}{
		{
			name: "nested groups join",
			log: func(lg *slog.Logger) {
				lg.WithGroup("resolve").WithGroup("fetch").Info("done", "bytes", 7)
			},
			want: "done resolve.fetch.bytes=7\n",
		},
		{
			name: "attrs keep the group open when added",
			log: func(lg *slog.Logger) {
				lg.WithGroup("resolve").With("stage", "cache").WithGroup("fetch").Info("done", "url", "u")
			},
			want: "done resolve.stage=cache resolve.fetch.url=u\n",
		},
		{
			name: "group attribute is flattened",
			log: func(lg *slog.Logger) {
				lg.Info("done", slog.Group("http", "status", 404))
			},
			want: "done http.status=404\n",
		},
		{
			name: "empty group name is ignored",
			log: func(lg *slog.Logger) {
				lg.WithGroup("").Info("done", "k", "v")
			},
			want: "done k=v\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", "1")

			buf := &bytes.Buffer{}
			tt.log(slog.New(logger.NewPrettyHandler(buf, nil)))

			assert.Equal(t, tt.want, buf.String())
		})
	}
}
