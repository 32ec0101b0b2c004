// Package browser hands a file or URL to the desktop's default application.
package browser

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// Command returns the command that opens target on goos.
// Relative file paths are made absolute so the opener does not depend on its working directory.
func Command(goos, target string) (*exec.Cmd, error) {
	if !strings.Contains(target, "://") {
		abs, err := filepath.Abs(target)
		if err != nil {
			return nil, fmt.Errorf("browser: resolve %s: %w", target, err)
		}
		target = abs
	}
	switch goos {
	case "darwin":
		return exec.Command("open", target), nil
	case "linux", "freebsd", "openbsd":
		return exec.Command("xdg-open", target), nil
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", target), nil
	default:
		return nil, fmt.Errorf("unsupported OS: %s", goos)
	}
}

// Open opens target with the default application without waiting for it.
func Open(target string) error {
	cmd, err := Command(runtime.GOOS, target)
	if err != nil {
		return err
	}
	return cmd.Start()
}
