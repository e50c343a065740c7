package plugins

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/netlens/netlens/pkg/observability"
)

// buildLibsDir is the nested build-artifact folder preferred when scanning a
// build tree's plugin subdirectories.
const buildLibsDir = ".libs"

// Catalog ties the capability type set, the plugin registry and the
// directory scanner together. Capability types must be registered before
// Discover runs; after discovery the catalog is read-only until Teardown.
//
// A Catalog is not safe for concurrent mutation: discovery is a one-shot
// startup sequence with a single producer. Callers must ensure Discover has
// returned before concurrent readers begin.
type Catalog struct {
	types    *TypeSet
	registry *Registry
	scanner  *scanner
	layout   Layout
	privs    PrivilegeState
	log      *logrus.Logger
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithLoader replaces the dynamic loader. Tests use this to substitute a
// fake loader for real shared objects.
func WithLoader(l DynamicLoader) Option {
	return func(c *Catalog) { c.scanner.loader = l }
}

// WithLayout replaces the deployment layout collaborator.
func WithLayout(l Layout) Option {
	return func(c *Catalog) { c.layout = l }
}

// WithPrivilegeState replaces the privilege-state collaborator.
func WithPrivilegeState(p PrivilegeState) Option {
	return func(c *Catalog) { c.privs = p }
}

// WithReporter replaces the diagnostic reporter.
func WithReporter(r Reporter) Option {
	return func(c *Catalog) { c.scanner.reporter = r }
}

// WithDenyList filters known-incompatible module filenames out of every scan
// (exact basename match).
func WithDenyList(names []string) Option {
	return func(c *Catalog) {
		for _, name := range names {
			c.scanner.deny[name] = struct{}{}
		}
	}
}

// WithMetrics records discovery outcomes on the given metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(c *Catalog) { c.scanner.metrics = m }
}

// WithLogger replaces the catalog's logger.
func WithLogger(log *logrus.Logger) Option {
	return func(c *Catalog) {
		c.log = log
		c.scanner.log = log
		if r, ok := c.scanner.reporter.(*logReporter); ok {
			r.log = log
		}
	}
}

// NewCatalog creates an empty catalog with the default collaborators: the
// Go plugin loader, the host deployment layout, process privilege detection
// and a logrus-backed reporter.
func NewCatalog(opts ...Option) *Catalog {
	log := logrus.New()
	types := NewTypeSet()
	registry := NewRegistry(types)

	c := &Catalog{
		types:    types,
		registry: registry,
		layout:   NewHostLayout(),
		privs:    processPrivileges{},
		log:      log,
		scanner: &scanner{
			loader:   goLoader{},
			types:    types,
			registry: registry,
			reporter: &logReporter{log: log},
			deny:     make(map[string]struct{}),
			log:      log,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// RegisterType installs a capability type. See TypeSet.Register.
func (c *Catalog) RegisterType(name string, predicate CapabilityPredicate) (int, error) {
	slot, err := c.types.Register(name, predicate)
	if err == nil && c.scanner.metrics != nil {
		c.scanner.metrics.CapabilityTypes.Set(float64(c.types.Len()))
	}
	return slot, err
}

// Types returns the registered capability types in registration order.
func (c *Catalog) Types() []CapabilityType {
	return c.types.Types()
}

// Discover scans the configured plugin directories and populates the
// registry. It runs at most once: when the registry is already non-empty the
// call is a no-op. An empty registry afterwards is a valid, non-error end
// state; there is no fatal error path in discovery.
func (c *Catalog) Discover(mode FailureMode) {
	if !c.registry.Empty() {
		return
	}

	start := time.Now()

	primary, ok := c.layout.PrimaryPluginDir()
	if !ok {
		c.log.Debug("No plugin directory resolved; skipping plugin discovery")
		return
	}

	if c.layout.IsBuildTree() {
		c.scanBuildTree(primary, mode)
	} else {
		c.scanner.scanDir(c.layout.SystemPluginDir(), mode)
	}

	// Plugins from a user-writable location are only safe when the process
	// never held special privileges.
	if !c.privs.StartedWithElevatedPrivileges() {
		c.scanner.scanDir(c.layout.UserPluginDir(), mode)
	}

	if c.scanner.metrics != nil {
		c.scanner.metrics.DiscoveryDuration.Observe(time.Since(start).Seconds())
	}
	c.log.Infof("Plugin discovery complete: %d plugins loaded", c.registry.Len())
}

// scanBuildTree scans the primary directory and each of its immediate
// subdirectories, preferring a nested build-artifact folder when present.
func (c *Catalog) scanBuildTree(primary string, mode FailureMode) {
	c.scanner.scanDir(primary, mode)

	entries, err := os.ReadDir(primary)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(primary, entry.Name(), buildLibsDir)
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			dir = filepath.Join(primary, entry.Name())
		}
		c.scanner.scanDir(dir, mode)
	}
}

// Contains reports whether a plugin with the exact basename was loaded.
func (c *Catalog) Contains(name string) bool {
	return c.registry.Contains(name)
}

// Len returns the number of loaded plugins.
func (c *Catalog) Len() int {
	return c.registry.Len()
}

// Descriptions renders every loaded plugin in discovery order.
func (c *Catalog) Descriptions() []Description {
	return c.registry.Descriptions()
}

// DumpAll writes the plugin table to w, tab-separated, one plugin per line.
func (c *Catalog) DumpAll(w io.Writer) {
	c.registry.DumpAll(w)
}

// Teardown closes every loaded module and releases the registry and the
// capability type list.
func (c *Catalog) Teardown() error {
	err := c.registry.Teardown()
	c.types.reset()
	return err
}
