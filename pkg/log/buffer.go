package log

import (
	"fmt"
	"io"
	"sync"
)

// DefaultBufferSize is used by [NewBuffer] for non-positive sizes.
const DefaultBufferSize = 100

// Buffer is a thread-safe [io.Writer] that keeps the most recent log records.
//
// It holds log output while an interactive prompt owns the terminal, so the
// records can be written out once the prompt exits.
type Buffer struct {
	records [][]byte
	limit   int
	dropped int
	mu      sync.Mutex
}

// NewBuffer creates a [Buffer] keeping at most limit records.
func NewBuffer(limit int) *Buffer {
	if limit <= 0 {
		limit = DefaultBufferSize
	}

	return &Buffer{
		records: make([][]byte, 0, limit),
		limit:   limit,
	}
}

// Write stores a copy of p as one record, evicting the oldest record when
// the buffer is full.
func (b *Buffer) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	record := make([]byte, len(p))
	copy(record, p)

	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.records) == b.limit {
		b.records = append(b.records[:0], b.records[1:]...)
		b.dropped++
	}

	b.records = append(b.records, record)

	return len(p), nil
}

// Len returns the number of stored records.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.records)
}

// Dropped returns the number of records evicted since the last flush.
func (b *Buffer) Dropped() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.dropped
}

// WriteTo writes all stored records to w, oldest first, and empties the
// buffer. It implements [io.WriterTo].
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	b.mu.Lock()
	records := b.records
	b.records = make([][]byte, 0, b.limit)
	b.dropped = 0
	b.mu.Unlock()

	var total int64

	for _, record := range records {
		n, err := w.Write(record)
		total += int64(n)

		if err != nil {
			return total, fmt.Errorf("write record: %w", err)
		}
	}

	return total, nil
}
