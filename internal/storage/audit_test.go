// internal/storage/audit_test.go
package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLog(t *testing.T) *AuditLog {
	t.Helper()
	l := NewAuditLog(filepath.Join(t.TempDir(), "log.txt"))
	ts := time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)
	l.now = func() time.Time {
		ts = ts.Add(time.Second)
		return ts
	}
	return l
}

func TestAuditAppendFormat(t *testing.T) {
	l := newTestLog(t)
	require.NoError(t, l.Append("user-1", "補貨 CL00012 數量：5"))

	content, err := os.ReadFile(l.path)
	require.NoError(t, err)
	assert.Equal(t, "[2024-03-15 09:30:01] user-1: 補貨 CL00012 數量：5\n", string(content))
}

func TestAuditTailEmpty(t *testing.T) {
	l := newTestLog(t)

	tail, err := l.Tail(5)
	require.NoError(t, err)
	assert.Equal(t, EmptyLogNotice, tail)
}

func TestAuditTailReturnsMostRecentInOrder(t *testing.T) {
	l := newTestLog(t)
	for _, desc := range []string{"first", "second", "third", "fourth"} {
		require.NoError(t, l.Append("user-1", desc))
	}

	tail, err := l.Tail(2)
	require.NoError(t, err)

	lines := strings.Split(tail, "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "third")
	assert.Contains(t, lines[1], "fourth")
}

func TestAuditTailFewerLinesThanRequested(t *testing.T) {
	l := newTestLog(t)
	require.NoError(t, l.Append("user-1", "only"))

	tail, err := l.Tail(10)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(tail, "only"))
	assert.NotContains(t, tail, "\n")
}

func TestAuditAppendNeverRewrites(t *testing.T) {
	l := newTestLog(t)
	require.NoError(t, l.Append("user-1", "first"))

	before, err := os.ReadFile(l.path)
	require.NoError(t, err)

	require.NoError(t, l.Append("user-2", "second"))

	after, err := os.ReadFile(l.path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(after), string(before)),
		"appending must not rewrite prior lines")
}
