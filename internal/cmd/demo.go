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
	"context"
	"fmt"
	"io"
	"time"

	"github.com/flowchartsman/retry"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/tochemey/postbox/config"
	"github.com/tochemey/postbox/errors"
	"github.com/tochemey/postbox/mailbox"
)

const (
	// eventTick carries the sequence number and its square
	eventTick uint32 = 1

	pollTries        = 100
	pollInitialDelay = time.Millisecond
	pollMaxDelay     = 20 * time.Millisecond
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Publish messages to subscribing tasks",
	Long: `Run one publisher and POSTBOX_SUBSCRIBERS subscribers on a single registry.

The publisher broadcasts POSTBOX_MESSAGES messages, waiting for room in every
subscriber mailbox before each post. Each subscriber polls its mailbox with
an exponential backoff and checks the payloads it receives.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runDemo(cmd.Context(), cmd.OutOrStdout(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

type demoResult struct {
	address  mailbox.Address
	received int
	sum      uint64
}

func runDemo(ctx context.Context, out io.Writer, cfg *config.Config) error {
	registry, err := mailbox.NewRegistry(cfg.RegistryOptions()...)
	if err != nil {
		return fmt.Errorf("failed to create the registry: %w", err)
	}
	defer func() {
		_ = registry.Close()
	}()

	publisher, err := mailbox.New(registry, make([]mailbox.Message, cfg.MailboxCapacity))
	if err != nil {
		return err
	}

	subscribers := make([]*mailbox.Mailbox, cfg.Subscribers)
	for i := range subscribers {
		if subscribers[i], err = mailbox.New(registry, make([]mailbox.Message, cfg.MailboxCapacity)); err != nil {
			return err
		}
		if err := subscribers[i].Subscribe(eventTick); err != nil {
			return err
		}
	}

	results := make([]demoResult, len(subscribers))
	eg, ctx := errgroup.WithContext(ctx)
	for i, subscriber := range subscribers {
		eg.Go(func() error {
			result, err := consume(ctx, subscriber, cfg.Messages)
			results[i] = result
			return err
		})
	}

	eg.Go(func() error {
		return publish(ctx, publisher, subscribers, cfg.Messages)
	})

	if err := eg.Wait(); err != nil {
		return err
	}

	var expected uint64
	for seq := range uint32(cfg.Messages) {
		expected += uint64(seq * seq)
	}

	for _, result := range results {
		status := "ok"
		if result.sum != expected {
			status = "corrupted"
		}
		fmt.Fprintf(out, "%s received=%d sum=%d %s\n", result.address, result.received, result.sum, status)
	}

	stats := registry.Stats()
	fmt.Fprintf(out, "mailboxes=%d delivered=%d overwritten=%d dropped=%d\n",
		stats.Mailboxes, stats.Delivered, stats.Overwritten, stats.Dropped)
	return nil
}

// publish posts count tick messages. Subscribers only drain their mailbox, so
// once every one of them has a free slot the post cannot overwrite.
func publish(ctx context.Context, publisher *mailbox.Mailbox, subscribers []*mailbox.Mailbox, count int) error {
	for seq := range uint32(count) {
		retrier := retry.NewRetrier(pollTries, pollInitialDelay, pollMaxDelay)
		if err := retrier.RunContext(ctx, func(context.Context) error {
			for _, subscriber := range subscribers {
				if subscriber.Free() == 0 {
					return errors.NewErrMailboxFull(subscriber.Address().String())
				}
			}
			return nil
		}); err != nil {
			return fmt.Errorf("failed to publish message=(%d): %w", seq, err)
		}

		if err := publisher.PostV(eventTick, []uint32{seq, seq * seq}); err != nil {
			return err
		}
	}
	return nil
}

// consume receives count messages from subscriber
func consume(ctx context.Context, subscriber *mailbox.Mailbox, count int) (demoResult, error) {
	result := demoResult{address: subscriber.Address()}
	retrier := retry.NewRetrier(pollTries, pollInitialDelay, pollMaxDelay)
	for result.received < count {
		var msg mailbox.Message
		if err := retrier.RunContext(ctx, func(context.Context) error {
			var err error
			msg, err = subscriber.Receive()
			return err
		}); err != nil {
			return result, fmt.Errorf("mailbox=(%s) failed to receive: %w", subscriber.Address(), err)
		}

		result.received++
		result.sum += uint64(msg.Word(1))
	}
	return result, nil
}
