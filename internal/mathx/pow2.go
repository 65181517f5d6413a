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

package mathx

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo[T ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint | ~int](n T) bool {
	return n > 0 && n&(n-1) == 0
}

// Mask returns capacity-1, the index mask of a power-of-two ring.
// The result is meaningless when capacity is not a power of two.
func Mask(capacity uint32) uint32 {
	return capacity - 1
}

// Used returns the number of occupied slots between head and tail.
func Used(head, tail, mask uint32) uint32 {
	return (tail - head) & mask
}

// Free returns the number of writable slots between head and tail. One slot
// is always kept empty so that head == tail means empty.
func Free(head, tail, mask uint32) uint32 {
	return (head - tail - 1) & mask
}
