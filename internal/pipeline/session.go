package pipeline

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"
)

const (
	LevelInfo    = "INFO"
	LevelWarn    = "WARN"
	LevelError   = "ERROR"
	LevelSuccess = "SUCCESS"
)

// SessionLog keeps the timestamped lines of one run so they can be shown
// or stored with the report. Every line is also written to the std logger.
type SessionLog struct {
	mu    sync.Mutex
	lines []string
	now   func() time.Time
}

func NewSessionLog() *SessionLog {
	return &SessionLog{now: time.Now}
}

func (s *SessionLog) Logf(level, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	line := fmt.Sprintf("[%s] %s: %s", s.now().Format("15:04:05"), level, msg)

	s.mu.Lock()
	s.lines = append(s.lines, line)
	s.mu.Unlock()

	log.Print(msg)
}

func (s *SessionLog) Info(format string, args ...any)  { s.Logf(LevelInfo, format, args...) }
func (s *SessionLog) Warn(format string, args ...any)  { s.Logf(LevelWarn, format, args...) }
func (s *SessionLog) Error(format string, args ...any) { s.Logf(LevelError, format, args...) }

// Section writes title between two separator lines
func (s *SessionLog) Section(title string) {
	sep := strings.Repeat("=", 60)
	s.Info("%s", sep)
	s.Info("%s", title)
	s.Info("%s", sep)
}

func (s *SessionLog) Lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.lines...)
}

func (s *SessionLog) String() string {
	return strings.Join(s.Lines(), "\n")
}
