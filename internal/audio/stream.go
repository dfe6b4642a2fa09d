package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
)

var errStreamClosed = errors.New("stream closed")

// progressiveBuffer accumulates a downloading stream in memory and
// exposes it as an io.ReadSeeker. Reads past the downloaded prefix
// block until the data arrives, so the decoder can start long before
// the download finishes.
type progressiveBuffer struct {
	mu   sync.Mutex
	cond *sync.Cond

	data   []byte
	total  int64 // expected size, -1 if unknown
	pos    int64
	done   bool
	err    error
	closed bool
}

func newProgressiveBuffer(total int64) *progressiveBuffer {
	b := &progressiveBuffer{total: total}
	b.cond = sync.NewCond(&b.mu)
	return b
}

// fill drains src into the buffer until EOF, error, or ctx cancel.
// It closes src when finished.
func (b *progressiveBuffer) fill(ctx context.Context, src io.ReadCloser) {
	defer src.Close()
	chunk := make([]byte, 32*1024)
	for {
		if ctx.Err() != nil {
			b.finish(ctx.Err())
			return
		}
		n, err := src.Read(chunk)
		if n > 0 {
			b.mu.Lock()
			b.data = append(b.data, chunk[:n]...)
			b.cond.Broadcast()
			b.mu.Unlock()
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				b.finish(nil)
			} else {
				b.finish(err)
			}
			return
		}
	}
}

func (b *progressiveBuffer) finish(err error) {
	b.mu.Lock()
	b.done = true
	b.err = err
	if b.total < 0 && err == nil {
		b.total = int64(len(b.data))
	}
	b.cond.Broadcast()
	b.mu.Unlock()
}

// Read blocks until at least one byte past the current position has
// been downloaded, the download ends, or the buffer is closed.
func (b *progressiveBuffer) Read(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for b.pos >= int64(len(b.data)) && !b.done && !b.closed {
		b.cond.Wait()
	}
	if b.closed {
		return 0, errStreamClosed
	}
	if b.pos >= int64(len(b.data)) {
		if b.err != nil {
			return 0, b.err
		}
		return 0, io.EOF
	}

	n := copy(p, b.data[b.pos:])
	b.pos += int64(n)
	return n, nil
}

// Seek repositions the read cursor. Seeking relative to the end blocks
// until the total size is known.
func (b *progressiveBuffer) Seek(offset int64, whence int) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var base int64
	switch whence {
	case io.SeekStart:
		base = 0
	case io.SeekCurrent:
		base = b.pos
	case io.SeekEnd:
		for b.total < 0 && !b.done && !b.closed {
			b.cond.Wait()
		}
		if b.closed {
			return 0, errStreamClosed
		}
		base = b.total
	default:
		return 0, fmt.Errorf("invalid whence %d", whence)
	}

	pos := base + offset
	if pos < 0 {
		return 0, fmt.Errorf("negative seek position %d", pos)
	}
	b.pos = pos
	return pos, nil
}

// Downloaded returns how many bytes have arrived so far.
func (b *progressiveBuffer) Downloaded() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return int64(len(b.data))
}

// Total returns the expected size, or -1 while unknown.
func (b *progressiveBuffer) Total() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.total
}

// Close unblocks all readers with an error.
func (b *progressiveBuffer) Close() error {
	b.mu.Lock()
	b.closed = true
	b.cond.Broadcast()
	b.mu.Unlock()
	return nil
}
