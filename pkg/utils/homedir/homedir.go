package homedir

import (
	"os"
	"runtime"
)

// HomeDir returns the home directory for the current user.
func HomeDir() string {
	if dir, err := os.UserHomeDir(); err == nil && dir != "" {
		return dir
	}
	if runtime.GOOS == "windows" {
		return os.Getenv("USERPROFILE")
	}
	return os.Getenv("HOME")
}
