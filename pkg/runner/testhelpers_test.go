package runner

import (
	"fmt"
	"sync"
)

// stubLogger records output lines by kind.
type stubLogger struct {
	mu    sync.Mutex
	lines []string
}

func (s *stubLogger) add(kind, format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = append(s.lines, kind+" "+fmt.Sprintf(format, args...))
}

func (s *stubLogger) Print(f string, a ...any) {
	s.add("print", f, a...)
}

func (s *stubLogger) Pass(f string, a ...any) {
	s.add("pass", f, a...)
}

func (s *stubLogger) Fail(f string, a ...any) {
	s.add("fail", f, a...)
}

func (s *stubLogger) PrintAligned(text string) {
	s.add("aligned", "%s", text)
}

func (s *stubLogger) Lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.lines...)
}
