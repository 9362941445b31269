//go:build !windows

package paperscan

import "syscall"

// killBrowserTree sends SIGKILL to the browser's process group so renderer
// and GPU helpers go down with it.
func killBrowserTree(pid int) {
	if pid <= 0 {
		return
	}
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
