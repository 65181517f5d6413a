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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tochemey/postbox/bytering"
	"github.com/tochemey/postbox/errors"
)

func TestNewMessage(t *testing.T) {
	t.Run("With params", func(t *testing.T) {
		msg, err := NewMessage(5, 42, []uint32{1, 0xdeadbeef})
		require.NoError(t, err)
		assert.EqualValues(t, 5, msg.ID)
		assert.EqualValues(t, 42, msg.UserData)
		assert.Equal(t, []uint32{1, 0xdeadbeef, 0}, msg.Params(3))
		assert.Equal(t, []byte{0, 0, 0, 1, 0xde, 0xad, 0xbe, 0xef}, msg.Payload[:8])
	})
	t.Run("With the largest event id", func(t *testing.T) {
		msg, err := NewMessage(MaxEventID, 0, nil)
		require.NoError(t, err)
		assert.Equal(t, MaxEventID, msg.ID)
	})
	t.Run("With event id out of range", func(t *testing.T) {
		msg, err := NewMessage(MaxEventID+1, 0, nil)
		require.ErrorIs(t, err, errors.ErrInvalidEventID)
		assert.ErrorIs(t, err, errors.ErrInvalidArgument)
		assert.Nil(t, msg)
	})
	t.Run("With too many params", func(t *testing.T) {
		msg, err := NewMessage(1, 0, make([]uint32, MaxParams+1))
		require.ErrorIs(t, err, errors.ErrTooManyParams)
		assert.Nil(t, msg)
	})
	t.Run("With all params", func(t *testing.T) {
		params := make([]uint32, MaxParams)
		for i := range params {
			params[i] = uint32(i * 3)
		}
		msg, err := NewMessage(1, 0, params)
		require.NoError(t, err)
		assert.Equal(t, params, msg.Params(MaxParams))
		assert.Len(t, msg.Params(MaxParams+10), MaxParams)
		assert.Empty(t, msg.Params(-1))
	})
}

func TestMessageWords(t *testing.T) {
	msg := new(Message)
	msg.SetWord(0, 0x01020304)
	msg.SetWordLE(1, 0x01020304)
	assert.Equal(t, []byte{1, 2, 3, 4, 4, 3, 2, 1}, msg.Payload[:8])
	assert.EqualValues(t, 0x01020304, msg.Word(0))
	assert.EqualValues(t, 0x01020304, msg.WordLE(1))
	assert.EqualValues(t, 0x04030201, msg.Word(1))

	msg.Reset()
	assert.Equal(t, Message{}, *msg)
}

func TestMessageBinary(t *testing.T) {
	t.Run("With a round trip through a ring", func(t *testing.T) {
		sent, err := NewMessage(7, 99, []uint32{10, 20, 30})
		require.NoError(t, err)
		sent.Source = Address{index: 1, generation: 4}
		sent.Target = Address{index: 2, generation: 1}

		data, err := sent.MarshalBinary()
		require.NoError(t, err)
		require.Len(t, data, MessageSize)

		ring, err := bytering.New(1024, make([]byte, 1024))
		require.NoError(t, err)
		require.NoError(t, ring.Push(data))

		buf := make([]byte, MessageSize)
		require.NoError(t, ring.Pop(buf))

		received := new(Message)
		require.NoError(t, received.UnmarshalBinary(buf))
		assert.Equal(t, *sent, *received)
	})
	t.Run("With header layout", func(t *testing.T) {
		msg := &Message{
			Source:   Address{index: 1, generation: 2},
			Target:   Address{index: 3, generation: 4},
			UserData: 5,
			ID:       6,
		}
		data, err := msg.AppendBinary([]byte{0xff})
		require.NoError(t, err)
		require.Len(t, data, MessageSize+1)
		assert.Equal(t, []byte{
			0xff,
			0, 0, 0, 1, 0, 0, 0, 2,
			0, 0, 0, 3, 0, 0, 0, 4,
			0, 0, 0, 5, 0, 0, 0, 6,
		}, data[:headerSize+1])
	})
	t.Run("With invalid size", func(t *testing.T) {
		msg := new(Message)
		err := msg.UnmarshalBinary(make([]byte, MessageSize-1))
		require.ErrorIs(t, err, errors.ErrInvalidMessageSize)
		assert.EqualError(t, err, "size=(535) invalid message size: invalid argument")
	})
	t.Run("With event id out of range", func(t *testing.T) {
		data := make([]byte, MessageSize)
		data[22] = 0x20
		msg := new(Message)
		err := msg.UnmarshalBinary(data)
		require.ErrorIs(t, err, errors.ErrInvalidEventID)
		assert.Equal(t, Message{}, *msg)
	})
}
