package ledger

import (
	"fmt"
	"sync"
	"time"
)

// Set of levels used on activity log lines.
const (
	LevelInfo = "INFO"
	LevelWarn = "WARNING"
)

// logTimeFormat is the layout of the timestamp that starts each log line.
const logTimeFormat = "2006-01-02 15:04:05"

// maxActivityLines is the number of lines kept. Older lines are dropped.
const maxActivityLines = 1000

// activity is the human readable log shown on the dashboard.
type activity struct {
	mu    sync.RWMutex
	lines []string
}

// add formats and appends a line, returning it.
func (a *activity) add(now time.Time, level string, msg string) string {
	line := fmt.Sprintf("%s - [%s] - %s", now.Format(logTimeFormat), level, msg)

	a.mu.Lock()
	defer a.mu.Unlock()

	if len(a.lines) == maxActivityLines {
		copy(a.lines, a.lines[1:])
		a.lines = a.lines[:maxActivityLines-1]
	}
	a.lines = append(a.lines, line)

	return line
}

// copy returns every line in order.
func (a *activity) copy() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()

	lines := make([]string, len(a.lines))
	copy(lines, a.lines)

	return lines
}
