package plugins

import (
	"os"
	"path/filepath"
)

// systemPluginBase is the unversioned base plugin directory of an installed
// NetLens deployment.
const systemPluginBase = "/usr/lib/netlens/plugins"

// Environment overrides consumed by NewHostLayout.
const (
	envPluginDir    = "NETLENS_PLUGIN_DIR"
	envRunFromBuild = "NETLENS_RUN_FROM_BUILD"
)

// HostLayout is the default Layout. Fields may be overridden before the
// layout is handed to a Catalog.
type HostLayout struct {
	Primary   string // unversioned base plugin directory; empty means unresolvable
	BuildTree bool
	System    string // versioned system plugin directory
	User      string // versioned per-user plugin directory
}

// NewHostLayout resolves plugin directories from the environment and the
// executable location. Running from a build tree is detected by
// NETLENS_RUN_FROM_BUILD=1 or a go.mod next to the executable.
func NewHostLayout() *HostLayout {
	l := &HostLayout{}

	exeDir := ""
	if exe, err := os.Executable(); err == nil {
		exeDir = filepath.Dir(exe)
	}

	l.BuildTree = os.Getenv(envRunFromBuild) == "1"
	if !l.BuildTree && exeDir != "" {
		if _, err := os.Stat(filepath.Join(exeDir, "go.mod")); err == nil {
			l.BuildTree = true
		}
	}

	switch {
	case os.Getenv(envPluginDir) != "":
		l.Primary = os.Getenv(envPluginDir)
	case l.BuildTree && exeDir != "":
		l.Primary = filepath.Join(exeDir, "plugins")
	default:
		l.Primary = systemPluginBase
	}
	l.System = filepath.Join(l.Primary, APIVersion)

	if home, err := os.UserHomeDir(); err == nil {
		l.User = filepath.Join(home, ".netlens", "plugins", APIVersion)
	}

	return l
}

func (l *HostLayout) PrimaryPluginDir() (string, bool) {
	return l.Primary, l.Primary != ""
}

func (l *HostLayout) IsBuildTree() bool {
	return l.BuildTree
}

func (l *HostLayout) SystemPluginDir() string {
	return l.System
}

func (l *HostLayout) UserPluginDir() string {
	return l.User
}
