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

package cmd

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/tochemey/postbox/config"
	"github.com/tochemey/postbox/errors"
	"github.com/tochemey/postbox/log"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testConfig() *config.Config {
	return config.Default().SetLogger(log.DiscardLogger)
}

func executeCommand(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestRootCommand(t *testing.T) {
	assert.Equal(t, "postbox", rootCmd.Use)

	names := make([]string, 0, len(rootCmd.Commands()))
	for _, command := range rootCmd.Commands() {
		names = append(names, command.Name())
	}
	assert.Subset(t, names, []string{"demo", "ring"})
}

func TestDemo(t *testing.T) {
	t.Run("With mailboxes smaller than the stream", func(t *testing.T) {
		cfg := testConfig()
		cfg.MailboxCapacity = 4
		cfg.Subscribers = 3
		cfg.Messages = 50

		out := new(bytes.Buffer)
		require.NoError(t, runDemo(context.Background(), out, cfg))

		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		require.Len(t, lines, 4)
		for _, line := range lines[:3] {
			assert.Contains(t, line, "received=50 sum=40425 ok")
		}
		assert.Equal(t, "mailboxes=4 delivered=150 overwritten=0 dropped=0", lines[3])
	})
	t.Run("With the command line", func(t *testing.T) {
		t.Setenv("POSTBOX_LOG_LEVEL", "error")
		t.Setenv("POSTBOX_SUBSCRIBERS", "2")
		t.Setenv("POSTBOX_MESSAGES", "5")

		out, err := executeCommand("demo")
		require.NoError(t, err)
		assert.Contains(t, out, "received=5 sum=30 ok")
		assert.Contains(t, out, "mailboxes=3 delivered=10")
	})
	t.Run("With an invalid configuration", func(t *testing.T) {
		t.Setenv("POSTBOX_MAILBOX_CAPACITY", "3")
		_, err := executeCommand("demo")
		assert.ErrorIs(t, err, errors.ErrInvalidCapacity)
	})
}

func TestRing(t *testing.T) {
	t.Run("With several drains", func(t *testing.T) {
		cfg := testConfig()
		cfg.RingCapacity = 2048
		cfg.Messages = 10

		out := new(bytes.Buffer)
		require.NoError(t, runRing(out, cfg))
		// a 2048 byte ring holds three messages
		assert.Equal(t, fmt.Sprintf("messages=10 bytes=%d drains=4 ring=2048\n", 10*536), out.String())
	})
	t.Run("With a ring too small for a message", func(t *testing.T) {
		cfg := testConfig()
		cfg.RingCapacity = 512

		err := runRing(new(bytes.Buffer), cfg)
		assert.ErrorIs(t, err, errors.ErrInvalidCapacity)
	})
	t.Run("With the command line", func(t *testing.T) {
		t.Setenv("POSTBOX_LOG_LEVEL", "error")
		t.Setenv("POSTBOX_MESSAGES", "3")

		out, err := executeCommand("ring")
		require.NoError(t, err)
		assert.Equal(t, "messages=3 bytes=1608 drains=1 ring=4096\n", out)
	})
}
