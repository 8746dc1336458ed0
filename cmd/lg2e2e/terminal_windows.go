//go:build windows

package main

func muteInterruptEcho(int) func() { return func() {} }
