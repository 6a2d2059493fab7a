// Package config provides the configuration loader for libload.
package config

import (
	"bytes"
	"errors"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/libload/internal/core/domain"
	"go.trai.ch/libload/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the configuration. An explicit path is resolved against cwd and
// must exist. Otherwise libload.yaml is searched from cwd upwards; when none is
// found the defaults are returned with the cache rooted at cwd.
func (l *Loader) Load(cwd, path string) (*domain.Config, error) {
	if path != "" {
		if !filepath.IsAbs(path) {
			path = filepath.Join(cwd, path)
		}
		if _, err := os.Stat(path); err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigNotFound.Error()), "path", path)
		}
		return l.loadLibfile(path)
	}

	configPath, found := findConfiguration(cwd)
	if !found {
		cfg := domain.DefaultConfig()
		cfg.CacheDir = filepath.Join(cwd, domain.DefaultCachePath())
		return cfg, nil
	}
	return l.loadLibfile(configPath)
}

func findConfiguration(cwd string) (string, bool) {
	currentDir := cwd
	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", false
		}
		currentDir = parentDir
	}
}

func (l *Loader) loadLibfile(configPath string) (*domain.Config, error) {
	var libfile Libfile
	if err := l.readAndUnmarshalYAML(configPath, &libfile); err != nil {
		return nil, zerr.With(err, "path", configPath)
	}

	cfg, err := toDomain(&libfile, filepath.Dir(configPath))
	if err != nil {
		return nil, zerr.With(err, "path", configPath)
	}
	cfg.Path = configPath
	return cfg, nil
}

// readAndUnmarshalYAML decodes strictly first so that typos in keys are
// reported, then falls back to a lenient decode.
func (l *Loader) readAndUnmarshalYAML(configPath string, target *Libfile) error {
	// #nosec G304 -- configPath is discovered or given by the user
	data, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	strict := yaml.NewDecoder(bytes.NewReader(data))
	strict.KnownFields(true)
	strictErr := strict.Decode(target)
	if strictErr == nil || errors.Is(strictErr, io.EOF) {
		return nil
	}

	*target = Libfile{}
	if err := yaml.Unmarshal(data, target); err != nil {
		return zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}
	if l.Logger != nil {
		l.Logger.Warn(configPath + ": " + strictErr.Error())
	}
	return nil
}

//nolint:cyclop // flat field-by-field mapping
func toDomain(lf *Libfile, baseDir string) (*domain.Config, error) {
	cfg := domain.DefaultConfig()
	cfg.CacheDir = filepath.Join(baseDir, domain.DefaultCachePath())

	if lf.Repository != "" {
		repo := strings.TrimSpace(lf.Repository)
		u, err := url.Parse(repo)
		if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			return nil, zerr.With(domain.ErrConfigInvalid, "repository", lf.Repository)
		}
		cfg.Repository = repo
	}

	if lf.CacheDir != "" {
		cfg.CacheDir = lf.CacheDir
		if !filepath.IsAbs(cfg.CacheDir) {
			cfg.CacheDir = filepath.Join(baseDir, cfg.CacheDir)
		}
	}

	if lf.Owner != "" {
		cfg.Owner = lf.Owner
	}

	if lf.Activator != "" {
		kind := domain.ActivatorKind(lf.Activator)
		if kind != domain.ActivatorClasspath && kind != domain.ActivatorInterp {
			return nil, zerr.With(domain.ErrConfigInvalid, "activator", lf.Activator)
		}
		cfg.Activator = kind
	}

	if lf.UserAgent != "" {
		cfg.UserAgent = lf.UserAgent
	}

	for _, d := range []struct {
		key   string
		value string
		dest  *time.Duration
	}{
		{key: "timeouts.connect", value: lf.Timeouts.Connect, dest: &cfg.Timeouts.Connect},
		{key: "timeouts.read", value: lf.Timeouts.Read, dest: &cfg.Timeouts.Read},
		{key: "timeouts.transfer", value: lf.Timeouts.Transfer, dest: &cfg.Timeouts.Transfer},
	} {
		if d.value == "" {
			continue
		}
		parsed, err := time.ParseDuration(d.value)
		if err != nil || parsed <= 0 {
			return nil, zerr.With(domain.ErrConfigInvalid, d.key, d.value)
		}
		*d.dest = parsed
	}

	cfg.Host = domain.HostConfig{
		Version:     strings.TrimSpace(lf.Host.Version),
		NativeSince: strings.TrimSpace(lf.Host.NativeSince),
	}
	cfg.Libraries = lf.Libraries

	return cfg, nil
}

// Ensure Loader satisfies the interface.
var _ ports.ConfigLoader = (*Loader)(nil)
