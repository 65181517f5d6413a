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
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tochemey/postbox/bytering"
	"github.com/tochemey/postbox/config"
	"github.com/tochemey/postbox/errors"
	"github.com/tochemey/postbox/mailbox"
)

var ringCmd = &cobra.Command{
	Use:   "ring",
	Short: "Stream serialized messages through a byte ring",
	Long: `Serialize POSTBOX_MESSAGES messages into a byte ring of POSTBOX_RING_CAPACITY
bytes, draining the ring whenever the next message does not fit, and check
every decoded message against the one that was written.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runRing(cmd.OutOrStdout(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(ringCmd)
}

func runRing(out io.Writer, cfg *config.Config) error {
	logger := cfg.Logger()
	ring, err := bytering.New(uint32(cfg.RingCapacity), make([]byte, cfg.RingCapacity))
	if err != nil {
		return err
	}

	if ring.Free() < mailbox.MessageSize {
		return fmt.Errorf("ring capacity=(%d) cannot hold a message of %d bytes: %w",
			cfg.RingCapacity, mailbox.MessageSize, errors.ErrInvalidCapacity)
	}

	var (
		written []*mailbox.Message
		decoded int
		drains  int
		buf     = make([]byte, mailbox.MessageSize)
	)

	drain := func() error {
		for ring.Used() >= mailbox.MessageSize {
			if _, err := io.ReadFull(ring, buf); err != nil {
				return err
			}

			msg := new(mailbox.Message)
			if err := msg.UnmarshalBinary(buf); err != nil {
				return err
			}

			if *msg != *written[decoded] {
				return fmt.Errorf("message=(%d) does not match what was written", decoded)
			}
			decoded++
		}
		drains++
		logger.Debugf("ring drained, %d message(s) decoded so far", decoded)
		return nil
	}

	for seq := range uint32(cfg.Messages) {
		msg, err := mailbox.NewMessage(seq%(mailbox.MaxEventID+1), seq, []uint32{seq, ^seq})
		if err != nil {
			return err
		}

		data, err := msg.MarshalBinary()
		if err != nil {
			return err
		}

		if ring.Free() < uint32(len(data)) {
			if err := drain(); err != nil {
				return err
			}
		}

		if _, err := ring.Write(data); err != nil {
			return err
		}
		written = append(written, msg)
	}

	if err := drain(); err != nil {
		return err
	}

	fmt.Fprintf(out, "messages=%d bytes=%d drains=%d ring=%d\n",
		decoded, decoded*mailbox.MessageSize, drains, ring.Capacity())
	return nil
}
