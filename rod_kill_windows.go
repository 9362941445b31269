//go:build windows

package paperscan

import (
	"os/exec"
	"strconv"
)

// killBrowserTree force-kills the browser and its child processes.
func killBrowserTree(pid int) {
	if pid <= 0 {
		return
	}
	_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run()
}
