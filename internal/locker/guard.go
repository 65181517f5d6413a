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

package locker

import (
	"sync"

	"github.com/tochemey/postbox/errors"
)

// FailureHandler is invoked when the underlying primitive fails. It must not
// return control to the caller in production: a registry left half mutated
// cannot be repaired.
type FailureHandler func(err *errors.LockError)

// Guard wraps a sync.Locker and turns a panic raised while acquiring or
// releasing it into a call to the failure handler.
//
// Guard is not reentrant. Acquiring it twice from the same goroutine
// deadlocks exactly as the wrapped primitive does.
type Guard struct {
	_          NoCopy
	underlying sync.Locker
	onFailure  FailureHandler
}

// enforce compilation error
var _ sync.Locker = (*Guard)(nil)

// NewGuard creates a Guard. A nil locker defaults to a sync.Mutex.
func NewGuard(underlying sync.Locker, onFailure FailureHandler) *Guard {
	if underlying == nil {
		underlying = new(sync.Mutex)
	}
	return &Guard{
		underlying: underlying,
		onFailure:  onFailure,
	}
}

// Lock acquires the underlying primitive
func (g *Guard) Lock() {
	defer g.recover("lock")
	g.underlying.Lock()
}

// Unlock releases the underlying primitive
func (g *Guard) Unlock() {
	defer g.recover("unlock")
	g.underlying.Unlock()
}

func (g *Guard) recover(op string) {
	if cause := recover(); cause != nil {
		lockErr := errors.NewLockError(op, cause)
		if g.onFailure == nil {
			panic(lockErr)
		}
		g.onFailure(lockErr)
	}
}
