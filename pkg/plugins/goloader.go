package plugins

import (
	"plugin"
	"runtime"
)

// goLoader is the default DynamicLoader, backed by the Go runtime's plugin
// support. The runtime binds plugin symbols into a private scope per module,
// so loaded plugins cannot shadow each other's exports.
type goLoader struct{}

func (goLoader) Open(path string) (ModuleHandle, error) {
	p, err := plugin.Open(path)
	if err != nil {
		return nil, err
	}
	return &goModule{p: p, path: path}, nil
}

func (goLoader) Suffix() string {
	if runtime.GOOS == "windows" {
		return "dll"
	}
	return "so"
}

type goModule struct {
	p    *plugin.Plugin
	path string
}

func (m *goModule) Lookup(symbol string) (any, error) {
	return m.p.Lookup(symbol)
}

func (m *goModule) Path() string {
	return m.path
}

// Close drops the handle. The Go runtime cannot unload a plugin once
// loaded, so the mapping persists until process exit.
func (m *goModule) Close() error {
	m.p = nil
	return nil
}
