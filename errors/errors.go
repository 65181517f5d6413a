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
	"fmt"
)

// Error classes. Every error returned by this module wraps exactly one of
// them so callers can test the class with errors.Is.
var (
	// ErrInvalidArgument is returned for missing arguments, capacities that are
	// not a power of two and out of range event ids.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound is returned when a directed send targets an address that is not
	// registered, or when a ring read asks for more bytes than it holds.
	ErrNotFound = errors.New("not found")

	// ErrWouldBlock is returned when receiving from an empty mailbox.
	ErrWouldBlock = errors.New("operation would block")

	// ErrOverflow is returned when a write would exceed the free space of a
	// ring or of a mailbox on the checked paths.
	ErrOverflow = errors.New("overflow")
)

var (
	// ErrInvalidCapacity is returned when a capacity is not a power of two or is
	// too small for the structure.
	ErrInvalidCapacity = fmt.Errorf("capacity must be a power of two: %w", ErrInvalidArgument)

	// ErrInvalidStorage is returned when the caller-provided backing storage is
	// missing or shorter than the requested capacity.
	ErrInvalidStorage = fmt.Errorf("backing storage is missing or too small: %w", ErrInvalidArgument)

	// ErrInvalidEventID is returned when an event id exceeds the 13-bit id space.
	ErrInvalidEventID = fmt.Errorf("event id is out of range: %w", ErrInvalidArgument)

	// ErrTooManyParams is returned when more than 128 parameters are packed into a message.
	ErrTooManyParams = fmt.Errorf("too many message parameters: %w", ErrInvalidArgument)

	// ErrInvalidMessageSize is returned when decoding a message from a buffer of the wrong size.
	ErrInvalidMessageSize = fmt.Errorf("invalid message size: %w", ErrInvalidArgument)

	// ErrNilMessage is returned when a nil message is sent or posted.
	ErrNilMessage = fmt.Errorf("message is nil: %w", ErrInvalidArgument)

	// ErrNoTarget is returned when a directed send has no target address.
	ErrNoTarget = fmt.Errorf("target address is not set: %w", ErrInvalidArgument)

	// ErrNilMailbox is returned when an operation is invoked on a nil mailbox.
	ErrNilMailbox = fmt.Errorf("mailbox is nil: %w", ErrInvalidArgument)

	// ErrNilRegistry is returned when a mailbox is created without a registry.
	ErrNilRegistry = fmt.Errorf("registry is nil: %w", ErrInvalidArgument)

	// ErrMailboxDestroyed is returned when an operation is invoked on a destroyed mailbox.
	ErrMailboxDestroyed = fmt.Errorf("mailbox has been destroyed: %w", ErrInvalidArgument)

	// ErrRegistryClosed is returned when a mailbox is created on a closed registry.
	ErrRegistryClosed = fmt.Errorf("registry is closed: %w", ErrInvalidArgument)

	// ErrMailboxNotFound is returned when the target of a directed send is not registered.
	ErrMailboxNotFound = fmt.Errorf("mailbox not found: %w", ErrNotFound)

	// ErrNotEnoughData is returned when a ring read asks for more bytes than it holds.
	ErrNotEnoughData = fmt.Errorf("not enough data: %w", ErrNotFound)

	// ErrMailboxEmpty is returned when receiving from an empty mailbox.
	ErrMailboxEmpty = fmt.Errorf("mailbox is empty: %w", ErrWouldBlock)

	// ErrMailboxFull is returned by the checked delivery paths when the target has no free slot.
	ErrMailboxFull = fmt.Errorf("mailbox is full: %w", ErrOverflow)

	// ErrRingFull is returned when a push exceeds the ring free space.
	ErrRingFull = fmt.Errorf("ring has not enough free space: %w", ErrOverflow)

	// ErrRingShrink is returned when a resize would drop bytes still held by the ring.
	ErrRingShrink = fmt.Errorf("ring cannot shrink below its content: %w", ErrOverflow)
)

// NewErrMailboxNotFound formats an ErrMailboxNotFound with the given address.
func NewErrMailboxNotFound(address string) error {
	return fmt.Errorf("address=(%s) %w", address, ErrMailboxNotFound)
}

// NewErrMailboxFull formats an ErrMailboxFull with the given address.
func NewErrMailboxFull(address string) error {
	return fmt.Errorf("address=(%s) %w", address, ErrMailboxFull)
}

// NewErrInvalidEventID formats an ErrInvalidEventID with the given id.
func NewErrInvalidEventID(id uint32) error {
	return fmt.Errorf("id=(%d) %w", id, ErrInvalidEventID)
}

// LockError describes a failure of the mutual-exclusion primitive guarding a
// registry. It is never returned to callers: it is handed to the fatal path.
type LockError struct {
	op    string
	cause any
}

// enforce compilation error
var _ error = (*LockError)(nil)

// NewLockError creates an instance of LockError for the given operation
// (lock or unlock) and the value recovered from the primitive.
func NewLockError(op string, cause any) *LockError {
	return &LockError{op: op, cause: cause}
}

// Op returns the failed operation
func (e *LockError) Op() string {
	return e.op
}

// Error implements the standard error interface
func (e *LockError) Error() string {
	return fmt.Sprintf("%s failure: %v", e.op, e.cause)
}

// Unwrap returns the cause when it is an error
func (e *LockError) Unwrap() error {
	if err, ok := e.cause.(error); ok {
		return err
	}
	return nil
}
