package dialog

import (
	"bufio"
	"io"
	"sync"

	"github.com/odvcencio/placard/pkg/logging"
)

// Feed buffers lines from an auxiliary stream, usually stdin, so the
// event loop can drain them once per tick. The reader goroutine is the
// only producer and the loop the only consumer; lines are handed over in
// arrival order.
type Feed struct {
	mu    sync.Mutex
	lines []string
	done  bool
}

// StartFeed begins reading lines from r in the background.
func StartFeed(r io.Reader) *Feed {
	f := &Feed{}
	go f.read(r)
	return f
}

func (f *Feed) read(r io.Reader) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		f.mu.Lock()
		f.lines = append(f.lines, sc.Text())
		f.mu.Unlock()
	}
	if err := sc.Err(); err != nil {
		logging.Debugf("feed: read stopped: %v", err)
	}
	f.mu.Lock()
	f.done = true
	f.mu.Unlock()
}

// Drain returns the buffered lines and whether the stream has ended.
// The returned lines are removed from the buffer; a final drain after
// the end of the stream yields the remaining lines together with eof.
func (f *Feed) Drain() (lines []string, eof bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	lines = f.lines
	f.lines = nil
	return lines, f.done
}
