package plugins

// MaxCapabilityTypes is the ceiling on registered capability types. A
// plugin's capabilities are a 32-bit mask, so slot numbers above 31 cannot
// be represented.
const MaxCapabilityTypes = 32

// APIVersion is the plugin API version, used to build the versioned system
// and per-user plugin directories.
const APIVersion = "1.0"

// CapabilityPredicate reports whether an opened module implements a
// capability, typically by probing for a well-known exported symbol.
type CapabilityPredicate func(ModuleHandle) bool

// CapabilityType is a named role a plugin can fulfil (e.g. "decoder").
// Slot is the bit position assigned at registration time; it never changes.
type CapabilityType struct {
	Name string `json:"name"`
	Slot int    `json:"slot"`

	predicate CapabilityPredicate
}

// PluginRecord is a successfully loaded, capability-tagged plugin. The
// registry owns the module handle until teardown.
type PluginRecord struct {
	Name         string // module file basename, unique within the registry
	Version      string // value of the module's exported Version symbol
	Capabilities uint32 // bit i set means the capability type at slot i matched

	handle ModuleHandle
}

// Path returns the filesystem path the module was loaded from.
func (r *PluginRecord) Path() string {
	return r.handle.Path()
}

// Description is a rendered, human-readable view of a plugin record.
type Description struct {
	Name         string `json:"name"`
	Version      string `json:"version"`
	Capabilities string `json:"capabilities"` // capability type names, comma-joined in slot order
	Path         string `json:"path"`
}

// FailureMode controls whether per-file discovery failures are reported.
type FailureMode int

const (
	// Silent absorbs all per-file diagnostics.
	Silent FailureMode = iota
	// ReportFailures surfaces per-file diagnostics through the Reporter.
	ReportFailures
)

// DynamicLoader opens loadable modules. Implementations must bind module
// symbols locally so independently-authored plugins cannot collide.
type DynamicLoader interface {
	Open(path string) (ModuleHandle, error)
	// Suffix is the platform loadable-module file extension, without the dot.
	Suffix() string
}

// ModuleHandle is an opened module. Lookup resolves an exported symbol by
// name; Close releases the module where the platform supports unloading.
type ModuleHandle interface {
	Lookup(symbol string) (any, error)
	Path() string
	Close() error
}

// Layout resolves the directories discovery should scan, depending on
// whether the process runs from a build tree or an installed location.
type Layout interface {
	// PrimaryPluginDir is the unversioned base plugin directory. The second
	// return value is false when it cannot be resolved.
	PrimaryPluginDir() (string, bool)
	IsBuildTree() bool
	// SystemPluginDir is the versioned system-wide plugin directory.
	SystemPluginDir() string
	// UserPluginDir is the versioned per-user plugin directory.
	UserPluginDir() string
}

// PrivilegeState reports whether the process was started with privileges
// that make loading user-writable plugins unsafe.
type PrivilegeState interface {
	StartedWithElevatedPrivileges() bool
}

// Reporter receives fire-and-forget discovery diagnostics.
type Reporter interface {
	Warning(format string, args ...any)
	Failure(format string, args ...any)
}

// SymbolPredicate returns a CapabilityPredicate that matches modules
// exporting the named symbol. Most capability types are registered this way:
//
//	catalog.RegisterType("decoder", plugins.SymbolPredicate("RegisterDecoders"))
func SymbolPredicate(symbol string) CapabilityPredicate {
	return func(h ModuleHandle) bool {
		_, err := h.Lookup(symbol)
		return err == nil
	}
}
