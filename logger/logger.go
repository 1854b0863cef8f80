// This file is part of ddr3hammer.
//
// ddr3hammer is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// ddr3hammer is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with ddr3hammer.  If not, see <https://www.gnu.org/licenses/>.

package logger

import (
	"fmt"
	"io"
	"sync"
)

// Permission decides, at the call site, whether a Log/Logf call is actually
// recorded. This lets a caller silence a chatty subsystem (eg. per-iteration
// hammer progress) without touching that subsystem's call sites.
type Permission interface {
	AllowLogging() bool
}

type allowPermission struct{}

func (allowPermission) AllowLogging() bool { return true }

// Allow is the Permission that always logs.
var Allow Permission = allowPermission{}

// Logger is a fixed-capacity ring buffer of "tag: detail" entries.
type Logger struct {
	mu       sync.Mutex
	capacity int
	entries  []string
}

// NewLogger creates a Logger that retains at most capacity entries, dropping
// the oldest entry once capacity is exceeded.
func NewLogger(capacity int) *Logger {
	return &Logger{
		capacity: capacity,
		entries:  make([]string, 0, capacity),
	}
}

// Log records tag/detail under perm's permission. detail is formatted
// according to its type: errors and fmt.Stringer use their own string
// conversion, everything else uses the %v verb.
func (l *Logger) Log(perm Permission, tag string, detail interface{}) {
	if !perm.AllowLogging() {
		return
	}
	l.append(tag, detailString(detail))
}

// Logf is like Log but the detail is built from a format string, in the
// manner of fmt.Sprintf.
func (l *Logger) Logf(perm Permission, tag string, format string, args ...interface{}) {
	if !perm.AllowLogging() {
		return
	}
	l.append(tag, fmt.Sprintf(format, args...))
}

func detailString(detail interface{}) string {
	switch d := detail.(type) {
	case string:
		return d
	case error:
		return d.Error()
	case fmt.Stringer:
		return d.String()
	default:
		return fmt.Sprintf("%v", d)
	}
}

func (l *Logger) append(tag, detail string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry := fmt.Sprintf("%s: %s", tag, detail)
	if len(l.entries) == l.capacity {
		l.entries = append(l.entries[1:], entry)
		return
	}
	l.entries = append(l.entries, entry)
}

// Clear discards all recorded entries.
func (l *Logger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = l.entries[:0]
}

// Write writes every recorded entry, one per line, to w.
func (l *Logger) Write(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.entries {
		fmt.Fprintf(w, "%s\n", e)
	}
}

// Tail writes the last n recorded entries, one per line, to w. Asking for
// more entries than are recorded is not an error; Tail writes what it has.
func (l *Logger) Tail(w io.Writer, n int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if n > len(l.entries) {
		n = len(l.entries)
	}
	for _, e := range l.entries[len(l.entries)-n:] {
		fmt.Fprintf(w, "%s\n", e)
	}
}
