// internal/storage/audit.go
package storage

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// EmptyLogNotice is returned by Tail when no actions have been recorded yet.
const EmptyLogNotice = "尚無操作紀錄"

const timestampLayout = "2006-01-02 15:04:05"

// AuditLog is an append-only text log of completed actions, one line per
// record: [YYYY-MM-DD HH:MM:SS] <user_id>: <description>. Prior lines are
// never rewritten or reordered.
type AuditLog struct {
	path string
	mu   sync.Mutex

	// now is swapped out in tests for deterministic timestamps.
	now func() time.Time
}

// NewAuditLog creates an audit log backed by the file at path.
func NewAuditLog(path string) *AuditLog {
	return &AuditLog{path: path, now: time.Now}
}

// Append records one action. The timestamp is taken while holding the log
// mutex, so line order always matches append order.
func (l *AuditLog) Append(userID, description string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	line := fmt.Sprintf("[%s] %s: %s\n", l.now().Format(timestampLayout), userID, description)
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("failed to append audit record: %w", err)
	}
	return nil
}

// Tail returns the last n records joined by newlines, oldest first. An empty
// or absent log yields EmptyLogNotice.
func (l *AuditLog) Tail(n int) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	content, err := os.ReadFile(l.path)
	if os.IsNotExist(err) {
		return EmptyLogNotice, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read audit log: %w", err)
	}

	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")
	if len(lines) == 1 && lines[0] == "" {
		return EmptyLogNotice, nil
	}
	if n > 0 && len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n"), nil
}
