package buffer

import (
	"errors"
	"fmt"

	"github.com/gammazero/deque"
)

// ErrUnderflow is returned when more samples are requested than are buffered.
var ErrUnderflow = errors.New("buffer: not enough buffered samples")

// Ring is an unbounded FIFO of samples. The zero value is ready to use.
//
// Ring is not safe for concurrent use.
type Ring[T any] struct {
	q deque.Deque[T]
}

// NewRing returns an empty Ring.
func NewRing[T any]() *Ring[T] {
	return &Ring[T]{}
}

// Len returns the number of buffered samples.
func (r *Ring[T]) Len() int {
	return r.q.Len()
}

// PushBack appends samples at the back.
func (r *Ring[T]) PushBack(samples ...T) {
	for _, s := range samples {
		r.q.PushBack(s)
	}
}

// PeekFront copies the first len(dst) samples into dst without removing
// them.
func (r *Ring[T]) PeekFront(dst []T) error {
	if len(dst) > r.q.Len() {
		return fmt.Errorf("%w: want %d, have %d", ErrUnderflow, len(dst), r.q.Len())
	}

	for i := range dst {
		dst[i] = r.q.At(i)
	}

	return nil
}

// DropFront removes up to n samples from the front and returns how many
// were removed.
func (r *Ring[T]) DropFront(n int) int {
	if n > r.q.Len() {
		n = r.q.Len()
	}

	for range n {
		r.q.PopFront()
	}

	return max(n, 0)
}

// Reset removes all buffered samples.
func (r *Ring[T]) Reset() {
	r.q.Clear()
}
