package plugins

import "os"

// processPrivileges is the default PrivilegeState. A process counts as
// privileged when it runs as root or was started setuid/setgid. Relinquished
// privileges don't help: a process that may reclaim them must never load
// plugins from a user-writable location.
type processPrivileges struct{}

func (processPrivileges) StartedWithElevatedPrivileges() bool {
	if os.Geteuid() == 0 {
		return true
	}
	return os.Geteuid() != os.Getuid() || os.Getegid() != os.Getgid()
}
