// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package bytering implements a byte-granular circular buffer over caller
// provided storage.
//
// The capacity is always a power of two so that cursors wrap with a mask
// instead of a modulo. One byte is kept free to tell a full ring from an
// empty one: head == tail means empty and the usable capacity is
// capacity - 1, hence Used() + Free() == Capacity() - 1 at all times.
//
// Multi-byte integers are written and read in big-endian order.
//
// A Ring performs no locking. It is meant to be owned by a single task, or
// accessed by a producer and a consumer that synchronize externally.
package bytering

import (
	"io"

	"github.com/tochemey/postbox/errors"
	"github.com/tochemey/postbox/internal/mathx"
)

// Ring is a power-of-two circular byte buffer
type Ring struct {
	capacity uint32
	mask     uint32
	head     uint32
	tail     uint32
	pool     []byte
}

// enforce compilation error
var _ io.ReadWriter = (*Ring)(nil)

// New creates a Ring of the given capacity backed by pool.
// pool must hold at least capacity bytes; the ring never allocates.
func New(capacity uint32, pool []byte) (*Ring, error) {
	ring := new(Ring)
	if err := ring.Init(capacity, pool); err != nil {
		return nil, err
	}
	return ring, nil
}

// Init (re)initializes the ring over pool, discarding any content.
func (r *Ring) Init(capacity uint32, pool []byte) error {
	if !mathx.IsPowerOfTwo(capacity) {
		return errors.ErrInvalidCapacity
	}

	if pool == nil || uint64(len(pool)) < uint64(capacity) {
		return errors.ErrInvalidStorage
	}

	r.pool = pool
	r.capacity = capacity
	r.mask = mathx.Mask(capacity)
	r.head = 0
	r.tail = 0
	return nil
}

// Resize changes the capacity of the ring within its pool.
//
// The bytes held are first rotated to the start of the pool so that they are
// preserved whatever the new mask is. Shrinking below the current content is
// refused with ErrRingShrink and leaves the ring untouched.
func (r *Ring) Resize(capacity uint32) error {
	if !mathx.IsPowerOfTwo(capacity) {
		return errors.ErrInvalidCapacity
	}

	if uint64(len(r.pool)) < uint64(capacity) {
		return errors.ErrInvalidStorage
	}

	used := r.Used()
	if used > capacity-1 {
		return errors.ErrRingShrink
	}

	r.compact()
	r.capacity = capacity
	r.mask = mathx.Mask(capacity)
	r.head = 0
	r.tail = used
	return nil
}

// Flush discards the content of the ring
func (r *Ring) Flush() {
	r.head = 0
	r.tail = 0
}

// Capacity returns the declared capacity. The ring holds at most Capacity()-1 bytes.
func (r *Ring) Capacity() uint32 {
	return r.capacity
}

// Used returns the number of bytes held by the ring
func (r *Ring) Used() uint32 {
	return mathx.Used(r.head, r.tail, r.mask)
}

// Free returns the number of bytes that can be pushed
func (r *Ring) Free() uint32 {
	return mathx.Free(r.head, r.tail, r.mask)
}

// Push appends p to the ring. Nothing is written when p does not fit.
func (r *Ring) Push(p []byte) error {
	if uint64(len(p)) > uint64(r.Free()) {
		return errors.ErrRingFull
	}

	n := uint32(len(p))
	// first chunk runs up to the end of the ring, the rest wraps to the front
	first := min(n, r.capacity-r.tail)
	copy(r.pool[r.tail:r.tail+first], p[:first])
	copy(r.pool[:n-first], p[first:])
	r.tail = (r.tail + n) & r.mask
	return nil
}

// Peek copies len(p) bytes starting offset bytes past the head into p
// without consuming them.
func (r *Ring) Peek(offset uint32, p []byte) error {
	if uint64(offset)+uint64(len(p)) > uint64(r.Used()) {
		return errors.ErrNotEnoughData
	}

	r.read((r.head+offset)&r.mask, p)
	return nil
}

// Pop copies the len(p) oldest bytes into p and consumes them
func (r *Ring) Pop(p []byte) error {
	if err := r.Peek(0, p); err != nil {
		return err
	}
	r.head = (r.head + uint32(len(p))) & r.mask
	return nil
}

// Discard consumes the n oldest bytes without copying them
func (r *Ring) Discard(n uint32) error {
	if n > r.Used() {
		return errors.ErrNotEnoughData
	}
	r.head = (r.head + n) & r.mask
	return nil
}

// Write implements io.Writer. The write is all or nothing: when p does not
// fit nothing is written and ErrRingFull is returned.
func (r *Ring) Write(p []byte) (int, error) {
	if err := r.Push(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Read implements io.Reader. It consumes up to len(p) bytes and returns
// io.EOF when the ring is empty.
func (r *Ring) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	used := r.Used()
	if used == 0 {
		return 0, io.EOF
	}

	n := used
	if uint64(len(p)) < uint64(used) {
		n = uint32(len(p))
	}
	r.read(r.head, p[:n])
	r.head = (r.head + n) & r.mask
	return int(n), nil
}

// read copies len(p) bytes starting at the masked position from into p.
// The caller checks that the bytes are available.
func (r *Ring) read(from uint32, p []byte) {
	n := uint32(len(p))
	first := min(n, r.capacity-from)
	copy(p[:first], r.pool[from:from+first])
	copy(p[first:], r.pool[:n-first])
}

// compact rotates pool[:capacity] so that the content starts at index 0.
// It uses three reversals to stay in place.
func (r *Ring) compact() {
	if r.head == 0 {
		return
	}
	area := r.pool[:r.capacity]
	reverse(area[:r.head])
	reverse(area[r.head:])
	reverse(area)
}

func reverse(p []byte) {
	for i, j := 0, len(p)-1; i < j; i, j = i+1, j-1 {
		p[i], p[j] = p[j], p[i]
	}
}
