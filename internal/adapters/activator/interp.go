package activator

import (
	"archive/zip"
	"context"
	"io"
	"path"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
	"go.trai.ch/libload/internal/core/domain"
	"go.trai.ch/libload/internal/core/ports"
	"go.trai.ch/zerr"
)

// Interpreter evaluates the Go sources shipped in an archive inside one shared
// yaegi interpreter, so that later evaluations see every activated library.
type Interpreter struct {
	mu     sync.Mutex
	interp *interp.Interpreter
	loaded map[string]struct{}
}

// NewInterpreter returns an interpreter with the standard library symbols loaded.
func NewInterpreter() (*Interpreter, error) {
	i := interp.New(interp.Options{})
	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, zerr.Wrap(err, "failed to load interpreter symbols")
	}
	return &Interpreter{
		interp: i,
		loaded: make(map[string]struct{}),
	}, nil
}

// Activate evaluates every non-test .go entry of the archive, in name order.
// An archive that was already evaluated is skipped.
func (in *Interpreter) Activate(ctx context.Context, owner, archivePath string) error {
	in.mu.Lock()
	defer in.mu.Unlock()

	if _, ok := in.loaded[archivePath]; ok {
		return nil
	}

	sources, err := readSources(archivePath)
	if err != nil {
		return err
	}

	for _, src := range sources {
		if _, err := in.interp.EvalWithContext(ctx, src.code); err != nil {
			evalErr := zerr.With(zerr.Wrap(err, "failed to evaluate archive source"), "path", archivePath)
			evalErr = zerr.With(evalErr, "entry", src.name)
			return zerr.With(evalErr, "owner", owner)
		}
	}

	in.loaded[archivePath] = struct{}{}
	return nil
}

// Eval evaluates expr against everything activated so far.
func (in *Interpreter) Eval(expr string) (reflect.Value, error) {
	in.mu.Lock()
	defer in.mu.Unlock()

	v, err := in.interp.Eval(expr)
	if err != nil {
		return reflect.Value{}, zerr.With(zerr.Wrap(err, domain.ErrSymbolNotFound.Error()), "expr", expr)
	}
	return v, nil
}

type source struct {
	name string
	code string
}

func readSources(archivePath string) ([]source, error) {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrArchiveInvalid.Error()), "path", archivePath)
	}
	defer func() {
		_ = reader.Close()
	}()

	var sources []source
	for _, f := range reader.File {
		name := path.Clean(f.Name)
		if path.Ext(name) != ".go" || strings.HasSuffix(name, "_test.go") {
			continue
		}
		code, err := readEntry(f)
		if err != nil {
			readErr := zerr.With(zerr.Wrap(err, domain.ErrArchiveInvalid.Error()), "path", archivePath)
			return nil, zerr.With(readErr, "entry", name)
		}
		sources = append(sources, source{name: name, code: code})
	}

	sort.Slice(sources, func(i, j int) bool { return sources[i].name < sources[j].name })
	return sources, nil
}

func readEntry(f *zip.File) (string, error) {
	rc, err := f.Open()
	if err != nil {
		return "", err
	}
	defer func() {
		_ = rc.Close()
	}()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Ensure Interpreter satisfies the interface.
var _ ports.CodeActivator = (*Interpreter)(nil)
