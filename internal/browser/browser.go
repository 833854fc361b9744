// Package browser launches URLs in the system's default browser.
package browser

import (
	"os/exec"
	"runtime"

	"github.com/pkg/errors"
)

// Open asks the operating system to open rawURL in the default browser. The
// command is started, not waited on.
func Open(rawURL string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", rawURL)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", rawURL)
	default:
		cmd = exec.Command("xdg-open", rawURL)
	}
	if err := cmd.Start(); err != nil {
		return errors.Wrap(err, "[browser.Open] start")
	}
	return nil
}
