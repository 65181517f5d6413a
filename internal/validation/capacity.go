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

package validation

import (
	"fmt"

	"github.com/tochemey/postbox/errors"
	"github.com/tochemey/postbox/internal/mathx"
)

// capacityValidator checks that a buffer capacity is a power of two no
// smaller than a given minimum
type capacityValidator struct {
	field    string
	capacity int
	minimum  int
}

var _ Validator = (*capacityValidator)(nil)

// NewCapacityValidator creates a capacity validator for the named field
func NewCapacityValidator(field string, capacity, minimum int) Validator {
	return &capacityValidator{
		field:    field,
		capacity: capacity,
		minimum:  minimum,
	}
}

// Validate executes the validation
func (v *capacityValidator) Validate() error {
	if v.capacity < v.minimum || !mathx.IsPowerOfTwo(v.capacity) {
		return fmt.Errorf("the [%s] is invalid, got %d: %w", v.field, v.capacity, errors.ErrInvalidCapacity)
	}
	return nil
}
