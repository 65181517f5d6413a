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

package mailbox

import (
	"encoding/binary"
	"fmt"

	"github.com/tochemey/postbox/errors"
)

const (
	// MaxEventID is the largest event id, ids live in a 13-bit space
	MaxEventID uint32 = 1<<13 - 1
	// MaxParams is the number of 32-bit words a payload holds
	MaxParams = 128
	// PayloadSize is the size of a message payload in bytes
	PayloadSize = MaxParams * 4
	// MessageSize is the size of the binary form of a message
	MessageSize = headerSize + PayloadSize

	headerSize = 24
)

// Message is a flat, fixed-size record copied by value on delivery.
//
// The payload is a plain byte array. Reading it as 32-bit words goes through
// explicit accessors: Word/SetWord use big-endian order, the order used when
// parameters are packed by SendV and PostV, while WordLE/SetWordLE use
// little-endian order.
type Message struct {
	// Source is the address of the sending mailbox. It is set on send and post.
	Source Address
	// Target is the address of the receiving mailbox on a directed send and
	// the zero Address on a broadcast.
	Target Address
	// UserData is free for the application
	UserData uint32
	// ID is the event id, in [0, MaxEventID]
	ID uint32
	// Payload holds the message content
	Payload [PayloadSize]byte
}

// NewMessage creates a message carrying params packed as big-endian words.
func NewMessage(id, userData uint32, params []uint32) (*Message, error) {
	if id > MaxEventID {
		return nil, errors.NewErrInvalidEventID(id)
	}

	msg := &Message{ID: id, UserData: userData}
	if err := msg.SetParams(params); err != nil {
		return nil, err
	}
	return msg, nil
}

// Word returns the i-th payload word in big-endian order. It panics when i
// is not in [0, MaxParams).
func (m *Message) Word(i int) uint32 {
	return binary.BigEndian.Uint32(m.Payload[i*4:])
}

// SetWord writes v as the i-th payload word in big-endian order
func (m *Message) SetWord(i int, v uint32) {
	binary.BigEndian.PutUint32(m.Payload[i*4:], v)
}

// WordLE returns the i-th payload word in little-endian order
func (m *Message) WordLE(i int) uint32 {
	return binary.LittleEndian.Uint32(m.Payload[i*4:])
}

// SetWordLE writes v as the i-th payload word in little-endian order
func (m *Message) SetWordLE(i int, v uint32) {
	binary.LittleEndian.PutUint32(m.Payload[i*4:], v)
}

// SetParams packs params as big-endian words at the start of the payload.
// The remaining words are left untouched.
func (m *Message) SetParams(params []uint32) error {
	if len(params) > MaxParams {
		return fmt.Errorf("params=(%d) %w", len(params), errors.ErrTooManyParams)
	}
	for i, param := range params {
		m.SetWord(i, param)
	}
	return nil
}

// Params returns the n first payload words. n is clamped to [0, MaxParams].
func (m *Message) Params(n int) []uint32 {
	n = max(0, min(n, MaxParams))
	params := make([]uint32, n)
	for i := range params {
		params[i] = m.Word(i)
	}
	return params
}

// Reset zeroes the message
func (m *Message) Reset() {
	*m = Message{}
}

// MarshalBinary encodes the message into its MessageSize bytes form:
// a big-endian header (source, target, user data, id) followed by the payload.
func (m *Message) MarshalBinary() ([]byte, error) {
	return m.AppendBinary(make([]byte, 0, MessageSize))
}

// AppendBinary appends the binary form of the message to b
func (m *Message) AppendBinary(b []byte) ([]byte, error) {
	b = binary.BigEndian.AppendUint32(b, m.Source.index)
	b = binary.BigEndian.AppendUint32(b, m.Source.generation)
	b = binary.BigEndian.AppendUint32(b, m.Target.index)
	b = binary.BigEndian.AppendUint32(b, m.Target.generation)
	b = binary.BigEndian.AppendUint32(b, m.UserData)
	b = binary.BigEndian.AppendUint32(b, m.ID)
	return append(b, m.Payload[:]...), nil
}

// UnmarshalBinary decodes a message produced by MarshalBinary
func (m *Message) UnmarshalBinary(data []byte) error {
	if len(data) != MessageSize {
		return fmt.Errorf("size=(%d) %w", len(data), errors.ErrInvalidMessageSize)
	}

	id := binary.BigEndian.Uint32(data[20:24])
	if id > MaxEventID {
		return errors.NewErrInvalidEventID(id)
	}

	m.Source = Address{
		index:      binary.BigEndian.Uint32(data[0:4]),
		generation: binary.BigEndian.Uint32(data[4:8]),
	}
	m.Target = Address{
		index:      binary.BigEndian.Uint32(data[8:12]),
		generation: binary.BigEndian.Uint32(data[12:16]),
	}
	m.UserData = binary.BigEndian.Uint32(data[16:20])
	m.ID = id
	copy(m.Payload[:], data[headerSize:])
	return nil
}
