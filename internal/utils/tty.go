package utils

import (
	"os"

	"golang.org/x/term"
)

// IsTTY reports whether the process can run an interactive UI: stdout
// must be a terminal and /dev/tty must be openable (Bubble Tea reads
// keys from it).
func IsTTY() bool {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return false
	}

	tty, err := os.Open("/dev/tty")
	if err != nil {
		return false
	}
	defer tty.Close()

	return true
}

// IsDebug reports whether debug logging is requested via the DEBUG
// environment variable.
func IsDebug() bool {
	return os.Getenv("DEBUG") != ""
}
