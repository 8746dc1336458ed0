//go:build !windows

package main

import (
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// muteInterruptEcho stops the terminal on fd from printing "^C" when a scheduled run is
// interrupted. The returned func restores the previous terminal flags.
func muteInterruptEcho(fd int) (restore func()) {
	restore = func() {}
	if !term.IsTerminal(fd) {
		return restore
	}
	saved, err := unix.IoctlGetTermios(fd, getTermios)
	if err != nil {
		return restore
	}
	muted := *saved
	muted.Lflag &^= unix.ECHOCTL
	if err := unix.IoctlSetTermios(fd, setTermios, &muted); err != nil {
		return restore
	}
	return func() {
		_ = unix.IoctlSetTermios(fd, setTermios, saved)
	}
}
