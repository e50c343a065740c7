package plugins

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

// fakeModule is an in-memory ModuleHandle backed by a symbol table.
type fakeModule struct {
	path    string
	symbols map[string]any
	closed  bool
}

func (m *fakeModule) Lookup(symbol string) (any, error) {
	if v, ok := m.symbols[symbol]; ok {
		return v, nil
	}
	return nil, fmt.Errorf("symbol %q not found in %s", symbol, m.path)
}

func (m *fakeModule) Path() string { return m.path }

func (m *fakeModule) Close() error {
	m.closed = true
	return nil
}

// fakeLoader opens modules from a basename-keyed symbol table. Basenames
// missing from the table fail to open.
type fakeLoader struct {
	modules map[string]map[string]any
	opened  []*fakeModule
}

func (l *fakeLoader) Open(path string) (ModuleHandle, error) {
	symbols, ok := l.modules[filepath.Base(path)]
	if !ok {
		return nil, fmt.Errorf("%s: invalid module format", path)
	}
	m := &fakeModule{path: path, symbols: symbols}
	l.opened = append(l.opened, m)
	return m, nil
}

func (l *fakeLoader) Suffix() string { return "so" }

type fakeLayout struct {
	primary   string
	resolved  bool
	buildTree bool
	system    string
	user      string
}

func (l *fakeLayout) PrimaryPluginDir() (string, bool) { return l.primary, l.resolved }
func (l *fakeLayout) IsBuildTree() bool                { return l.buildTree }
func (l *fakeLayout) SystemPluginDir() string          { return l.system }
func (l *fakeLayout) UserPluginDir() string            { return l.user }

type fakePrivs bool

func (p fakePrivs) StartedWithElevatedPrivileges() bool { return bool(p) }

// recordingReporter captures diagnostics for assertions.
type recordingReporter struct {
	warnings []string
	failures []string
}

func (r *recordingReporter) Warning(format string, args ...any) {
	r.warnings = append(r.warnings, fmt.Sprintf(format, args...))
}

func (r *recordingReporter) Failure(format string, args ...any) {
	r.failures = append(r.failures, fmt.Sprintf(format, args...))
}

// versionSym builds the *string value a real plugin's Version symbol
// resolves to.
func versionSym(v string) any { return &v }

// writeModuleFile drops a dummy loadable-module file into dir; the fake
// loader decides by basename whether it opens.
func writeModuleFile(t *testing.T, dir, name string) {
	t.Helper()
	err := os.WriteFile(filepath.Join(dir, name), []byte("\x7fELF"), 0o644)
	require.NoError(t, err)
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// newTestScanner builds a scanner over a fresh type set and registry.
func newTestScanner(loader *fakeLoader) (*scanner, *recordingReporter) {
	types := NewTypeSet()
	reporter := &recordingReporter{}
	return &scanner{
		loader:   loader,
		types:    types,
		registry: NewRegistry(types),
		reporter: reporter,
		deny:     make(map[string]struct{}),
		log:      quietLogger(),
	}, reporter
}
