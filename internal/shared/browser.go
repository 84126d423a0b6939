package shared

import (
	"fmt"
	"os/exec"
	"runtime"
)

var goos = func() string { return runtime.GOOS }

// OpenBrowser launches the system default browser at url. The terminal
// front ends use it where a flow leaves the terminal: the admin login
// page after a 401, WhatsApp deep links, and share --open.
func OpenBrowser(url string) error {
	var launch *exec.Cmd
	switch platform := goos(); platform {
	case "darwin":
		launch = exec.Command("open", url)
	case "linux":
		launch = exec.Command("xdg-open", url)
	case "windows":
		launch = exec.Command("cmd", "/c", "start", url)
	default:
		return fmt.Errorf("no browser launcher for platform %s", platform)
	}

	if err := launch.Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return nil
}
