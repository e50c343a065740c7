package plugins

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/netlens/netlens/pkg/observability"
)

// versionSymbol is the exported symbol every plugin must carry. It is looked
// up as a *string; a symbol of any other type counts as missing.
const versionSymbol = "Version"

// Failure reasons recorded in metrics, one per recoverable per-file outcome.
const (
	reasonLoadFailure    = "load_failure"
	reasonMissingVersion = "missing_version"
	reasonNoCapability   = "no_capability"
	reasonDuplicateName  = "duplicate_name"
)

// scanner walks a single directory, loading and classifying candidate
// modules into the registry. Every per-file failure is local: scanning
// always continues with the next entry, and a failed load is permanent for
// the process lifetime.
type scanner struct {
	loader   DynamicLoader
	types    *TypeSet
	registry *Registry
	reporter Reporter
	deny     map[string]struct{}
	metrics  *observability.Metrics
	log      *logrus.Logger
}

// scanDir enumerates dir (non-recursive) and processes every entry whose
// extension matches the loader's module suffix. A missing or non-directory
// path is not an error; the scan simply has no effect.
func (s *scanner) scanDir(dir string, mode FailureMode) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		// Exact, case-sensitive match on the suffix after the final dot.
		dot := strings.LastIndex(name, ".")
		if dot < 0 || name[dot+1:] != s.loader.Suffix() {
			continue
		}

		if _, denied := s.deny[name]; denied {
			s.log.Debugf("Skipping deny-listed module: %s", name)
			continue
		}

		s.scanFile(dir, name, mode)
	}
}

// scanFile loads, validates and classifies a single candidate module.
func (s *scanner) scanFile(dir, name string, mode FailureMode) {
	path := filepath.Join(dir, name)

	// First-discovered wins: a second module sharing a name with an
	// already-registered one is rejected regardless of content.
	if s.registry.Contains(name) {
		if mode == ReportFailures {
			s.reporter.Warning("The plugin '%s' was found in multiple directories", name)
		}
		s.countFailure(reasonDuplicateName)
		return
	}

	handle, err := s.loader.Open(path)
	if err != nil {
		if mode == ReportFailures {
			s.reporter.Failure("Couldn't load module %s: %v", path, err)
		}
		s.countFailure(reasonLoadFailure)
		return
	}

	version, ok := moduleVersion(handle)
	if !ok {
		if mode == ReportFailures {
			s.reporter.Failure("The plugin %s has no version symbol", name)
		}
		handle.Close()
		s.countFailure(reasonMissingVersion)
		return
	}

	rec := &PluginRecord{
		Name:         name,
		Version:      version,
		Capabilities: s.types.classify(handle),
		handle:       handle,
	}

	// A module matching no registered capability is useless to this
	// process; it may simply be a plugin type this program doesn't support.
	if rec.Capabilities == 0 {
		if mode == ReportFailures {
			s.reporter.Failure("The plugin '%s' has no registration routines", name)
		}
		handle.Close()
		s.countFailure(reasonNoCapability)
		return
	}

	s.registry.insert(rec)
	if s.metrics != nil {
		s.metrics.PluginsLoaded.Inc()
	}
	s.log.Infof("Loaded plugin: %s v%s (%s)", rec.Name, rec.Version, s.types.render(rec.Capabilities))
}

func (s *scanner) countFailure(reason string) {
	if s.metrics != nil {
		s.metrics.PluginLoadFailuresTotal.WithLabelValues(reason).Inc()
	}
}

// moduleVersion resolves the module's version symbol.
func moduleVersion(h ModuleHandle) (string, bool) {
	sym, err := h.Lookup(versionSymbol)
	if err != nil {
		return "", false
	}
	switch v := sym.(type) {
	case *string:
		return *v, true
	case string:
		return v, true
	}
	return "", false
}
