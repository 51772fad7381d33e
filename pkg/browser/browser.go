// Package browser opens files and URLs in the desktop's default handler.
package browser

import (
	"os/exec"
	"runtime"
)

// Open hands target to the platform opener without waiting for it. Opener
// stderr is discarded: xdg-open tends to print harmless warnings that would
// garble the UI.
func Open(target string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", target)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", target)
	default:
		cmd = exec.Command("xdg-open", target)
	}
	if err := cmd.Start(); err != nil {
		return err
	}
	go cmd.Wait()
	return nil
}
