// Package plugins discovers, loads and categorizes NetLens plugins at
// process startup.
//
// # Overview
//
// A Catalog scans a set of plugin directories for loadable modules, opens
// each exactly once through a DynamicLoader, requires an exported Version
// symbol, and classifies the module against the registered capability types.
// Modules matching at least one capability are recorded in the registry with
// a capability bitmask; everything else is discarded with a diagnostic.
//
// # Capability Types
//
// Host subsystems register capability types before discovery runs:
//
//	catalog := plugins.NewCatalog()
//	catalog.RegisterType("decoder", plugins.SymbolPredicate("RegisterDecoders"))
//	catalog.RegisterType("codec", plugins.SymbolPredicate("RegisterCodecs"))
//
// Registration order fixes each type's bit slot in the capability mask and
// the order type names appear in rendered capability lists. At most 32 types
// can be registered.
//
// # Discovery
//
// Discover runs at most once per catalog. Which directories are scanned
// depends on the deployment Layout (build tree vs installed) and on the
// privilege state: a process started with elevated privileges never scans
// the per-user plugin directory.
//
//	catalog.Discover(plugins.ReportFailures)
//	catalog.DumpAll(os.Stdout)
//
// Per-file load failures are local and non-fatal; whether they are surfaced
// is controlled entirely by the FailureMode.
//
// # Collaborators
//
// DynamicLoader, Layout, PrivilegeState and Reporter are pluggable through
// catalog options. Defaults load Go plugins via the runtime plugin support,
// resolve directories from the host deployment, and report through logrus.
package plugins
