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

package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorClasses(t *testing.T) {
	invalid := []error{
		ErrInvalidCapacity,
		ErrInvalidStorage,
		ErrInvalidEventID,
		ErrTooManyParams,
		ErrInvalidMessageSize,
		ErrNilMessage,
		ErrNoTarget,
		ErrNilMailbox,
		ErrNilRegistry,
		ErrMailboxDestroyed,
		ErrRegistryClosed,
	}
	for _, err := range invalid {
		assert.ErrorIs(t, err, ErrInvalidArgument, err.Error())
		assert.NotErrorIs(t, err, ErrNotFound, err.Error())
	}

	assert.ErrorIs(t, ErrMailboxNotFound, ErrNotFound)
	assert.ErrorIs(t, ErrNotEnoughData, ErrNotFound)
	assert.ErrorIs(t, ErrMailboxEmpty, ErrWouldBlock)
	assert.ErrorIs(t, ErrMailboxFull, ErrOverflow)
	assert.ErrorIs(t, ErrRingFull, ErrOverflow)
	assert.ErrorIs(t, ErrRingShrink, ErrOverflow)
	assert.NotErrorIs(t, ErrRingFull, ErrWouldBlock)
}

func TestFormattedErrors(t *testing.T) {
	err := NewErrMailboxNotFound("mbox://3.1")
	require.EqualError(t, err, "address=(mbox://3.1) mailbox not found: not found")
	assert.ErrorIs(t, err, ErrNotFound)

	err = NewErrMailboxFull("mbox://0.2")
	require.EqualError(t, err, "address=(mbox://0.2) mailbox is full: overflow")
	assert.ErrorIs(t, err, ErrOverflow)

	err = NewErrInvalidEventID(8192)
	require.EqualError(t, err, "id=(8192) event id is out of range: invalid argument")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestLockError(t *testing.T) {
	cause := errors.New("primitive broken")
	lockErr := NewLockError("lock", cause)
	require.EqualError(t, lockErr, "lock failure: primitive broken")
	assert.Equal(t, "lock", lockErr.Op())
	assert.ErrorIs(t, lockErr, cause)

	lockErr = NewLockError("unlock", "sync: unlock of unlocked mutex")
	require.EqualError(t, lockErr, "unlock failure: sync: unlock of unlocked mutex")
	assert.NoError(t, lockErr.Unwrap())
}
