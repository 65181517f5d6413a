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
	"testing"

	"github.com/stretchr/testify/suite"
)

type validationTestSuite struct {
	suite.Suite
}

func TestValidation(t *testing.T) {
	suite.Run(t, new(validationTestSuite))
}

func (s *validationTestSuite) TestNewChain() {
	s.Run("new chain without option", func() {
		chain := New()
		s.Assert().NotNil(chain)
		s.Assert().False(chain.failFast)
	})
	s.Run("new chain with options", func() {
		s.Assert().True(New(FailFast()).failFast)
		s.Assert().False(New(AllErrors()).failFast)
	})
}

func (s *validationTestSuite) TestAddValidator() {
	chain := New()
	s.Assert().Empty(chain.validators)
	chain.AddValidator(NewBooleanValidator(true, "")).AddAssertion(true, "")
	s.Assert().Len(chain.validators, 2)
}

func (s *validationTestSuite) TestValidate() {
	s.Run("with no violation", func() {
		chain := New().
			AddValidator(NewCapacityValidator("ring", 8, 1)).
			AddAssertion(true, "always true")
		s.Assert().NoError(chain.Validate())
	})
	s.Run("with multiple validators and FailFast option", func() {
		chain := New(FailFast()).
			AddValidator(NewCapacityValidator("mailbox", 3, 2)).
			AddAssertion(false, "this is false")
		err := chain.Validate()
		s.Assert().Nil(chain.violations)
		s.Assert().EqualError(err, "the [mailbox] is invalid, got 3: capacity must be a power of two: invalid argument")
	})
	s.Run("with multiple validators and AllErrors option", func() {
		chain := New(AllErrors()).
			AddValidator(NewCapacityValidator("mailbox", 3, 2)).
			AddAssertion(false, "this is false")
		err := chain.Validate()
		s.Assert().NotNil(chain.violations)
		s.Assert().EqualError(err, "the [mailbox] is invalid, got 3: capacity must be a power of two: invalid argument; this is false")
	})
}
