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

import "fmt"

const scheme = "mbox"

// Address is the opaque handle of a mailbox within its registry.
//
// It pairs the index of the registry slot holding the mailbox with the
// generation of that slot. The generation changes every time the slot is
// released, so the address of a destroyed mailbox never resolves again even
// when its slot is handed to a new mailbox.
//
// The zero Address means "no mailbox". Addresses are only meaningful within
// the registry that issued them.
type Address struct {
	index      uint32
	generation uint32
}

// NoAddress returns the zero Address
func NoAddress() Address {
	return Address{}
}

// IsZero reports whether the address designates no mailbox
func (a Address) IsZero() bool {
	return a.generation == 0
}

// Equals reports whether both addresses designate the same mailbox
func (a Address) Equals(other Address) bool {
	return a == other
}

// String returns the textual form of the address, mbox://<index>.<generation>
func (a Address) String() string {
	return fmt.Sprintf("%s://%d.%d", scheme, a.index, a.generation)
}
