package dialog

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// drainAll polls the feed until EOF and returns everything it produced.
func drainAll(t *testing.T, f *Feed) []string {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	var lines []string
	for {
		got, eof := f.Drain()
		lines = append(lines, got...)
		if eof {
			return lines
		}
		if time.Now().After(deadline) {
			t.Fatal("feed never reached EOF")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestStartFeedDeliversLinesInOrder(t *testing.T) {
	f := StartFeed(strings.NewReader("one\ntwo\nthree\n"))
	assert.Equal(t, []string{"one", "two", "three"}, drainAll(t, f))
}

func TestStartFeedWithoutTrailingNewline(t *testing.T) {
	f := StartFeed(strings.NewReader("a\nb"))
	assert.Equal(t, []string{"a", "b"}, drainAll(t, f))
}

func TestStartFeedEmptyStream(t *testing.T) {
	f := StartFeed(strings.NewReader(""))
	assert.Empty(t, drainAll(t, f))
}

func TestStartFeedLongLine(t *testing.T) {
	long := strings.Repeat("x", 200_000)
	f := StartFeed(strings.NewReader(long + "\n"))
	lines := drainAll(t, f)
	require.Len(t, lines, 1)
	assert.Equal(t, long, lines[0])
}

func TestDrainRemovesBufferedLines(t *testing.T) {
	f := feedOf("a", "b")

	lines, eof := f.Drain()
	assert.Equal(t, []string{"a", "b"}, lines)
	assert.True(t, eof)

	lines, eof = f.Drain()
	assert.Empty(t, lines)
	assert.True(t, eof)
}
