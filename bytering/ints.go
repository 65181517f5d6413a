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

package bytering

import "encoding/binary"

// PushUint8 appends v to the ring
func (r *Ring) PushUint8(v uint8) error {
	return r.Push([]byte{v})
}

// PushUint16 appends v to the ring in big-endian order
func (r *Ring) PushUint16(v uint16) error {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], v)
	return r.Push(buf[:])
}

// PushUint32 appends v to the ring in big-endian order
func (r *Ring) PushUint32(v uint32) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	return r.Push(buf[:])
}

// PushUint64 appends v to the ring in big-endian order
func (r *Ring) PushUint64(v uint64) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	return r.Push(buf[:])
}

// PeekUint8 reads the byte located offset bytes past the head
func (r *Ring) PeekUint8(offset uint32) (uint8, error) {
	var buf [1]byte
	if err := r.Peek(offset, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

// PeekUint16 reads a big-endian uint16 located offset bytes past the head
func (r *Ring) PeekUint16(offset uint32) (uint16, error) {
	var buf [2]byte
	if err := r.Peek(offset, buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(buf[:]), nil
}

// PeekUint32 reads a big-endian uint32 located offset bytes past the head
func (r *Ring) PeekUint32(offset uint32) (uint32, error) {
	var buf [4]byte
	if err := r.Peek(offset, buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(buf[:]), nil
}

// PeekUint64 reads a big-endian uint64 located offset bytes past the head
func (r *Ring) PeekUint64(offset uint32) (uint64, error) {
	var buf [8]byte
	if err := r.Peek(offset, buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(buf[:]), nil
}

// PopUint8 consumes one byte
func (r *Ring) PopUint8() (uint8, error) {
	var buf [1]byte
	if err := r.Pop(buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

// PopUint16 consumes a big-endian uint16
func (r *Ring) PopUint16() (uint16, error) {
	var buf [2]byte
	if err := r.Pop(buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(buf[:]), nil
}

// PopUint32 consumes a big-endian uint32
func (r *Ring) PopUint32() (uint32, error) {
	var buf [4]byte
	if err := r.Pop(buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(buf[:]), nil
}

// PopUint64 consumes a big-endian uint64
func (r *Ring) PopUint64() (uint64, error) {
	var buf [8]byte
	if err := r.Pop(buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(buf[:]), nil
}
