package web

import (
	"fmt"
	"log"
	"strings"
)

// Logger is the progress output of one verified screen.
type Logger interface {
	Print(format string, args ...any)
	Pass(format string, args ...any)
	Fail(format string, args ...any)
	PrintAligned(text string)
}

// Publisher accepts events for live streaming and replay.
type Publisher interface {
	Publish(e Event) error
}

// BroadcastLogger wraps a Logger and publishes every line as an event of its target.
// all calls are forwarded to the inner logger first, publishing failures are only logged.
type BroadcastLogger struct {
	inner  Logger
	pub    Publisher
	target string
}

// NewBroadcastLogger creates a logger that wraps inner and publishes to pub on behalf of target.
func NewBroadcastLogger(inner Logger, pub Publisher, target string) *BroadcastLogger {
	return &BroadcastLogger{inner: inner, pub: pub, target: target}
}

// Print writes a message and publishes it.
func (b *BroadcastLogger) Print(format string, args ...any) {
	b.inner.Print(format, args...)
	b.publish(NewOutputEvent(b.target, formatText(format, args...)))
}

// Pass writes a passed check and publishes it.
func (b *BroadcastLogger) Pass(format string, args ...any) {
	b.inner.Pass(format, args...)
	b.publish(NewPassEvent(b.target, formatText(format, args...)))
}

// Fail writes a failed check and publishes it.
func (b *BroadcastLogger) Fail(format string, args ...any) {
	b.inner.Fail(format, args...)
	b.publish(NewFailEvent(b.target, formatText(format, args...)))
}

// PrintAligned writes multi-line text and publishes it as a single output event.
func (b *BroadcastLogger) PrintAligned(text string) {
	b.inner.PrintAligned(text)
	if text = strings.TrimRight(text, "\n"); text != "" {
		b.publish(NewOutputEvent(b.target, text))
	}
}

func (b *BroadcastLogger) publish(e Event) {
	if err := b.pub.Publish(e); err != nil {
		log.Printf("[WARN] failed to publish %s event: %v", e.Type, err)
	}
}

// formatText formats a string with args, like fmt.Sprintf.
func formatText(format string, args ...any) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}
