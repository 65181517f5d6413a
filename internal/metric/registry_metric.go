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

package metric

import (
	"fmt"

	"go.opentelemetry.io/otel/metric"
)

// RegistryMetric groups the instruments describing a mailbox registry:
//   - postbox.mailboxes.count      (Int64ObservableGauge)
//   - postbox.messages.delivered   (Int64ObservableCounter)
//   - postbox.messages.overwritten (Int64ObservableCounter)
//   - postbox.messages.dropped     (Int64ObservableCounter)
type RegistryMetric struct {
	mailboxesCount   metric.Int64ObservableGauge
	deliveredCount   metric.Int64ObservableCounter
	overwrittenCount metric.Int64ObservableCounter
	droppedCount     metric.Int64ObservableCounter
}

// NewRegistryMetric creates the registry instruments using the given meter
func NewRegistryMetric(meter metric.Meter) (*RegistryMetric, error) {
	instruments := new(RegistryMetric)
	var err error

	if instruments.mailboxesCount, err = meter.Int64ObservableGauge(
		"postbox.mailboxes.count",
		metric.WithDescription("Number of mailboxes registered"),
	); err != nil {
		return nil, fmt.Errorf("failed to create mailboxesCount instrument, %w", err)
	}

	if instruments.deliveredCount, err = meter.Int64ObservableCounter(
		"postbox.messages.delivered",
		metric.WithDescription("Total number of messages copied into a mailbox"),
	); err != nil {
		return nil, fmt.Errorf("failed to create deliveredCount instrument, %w", err)
	}

	if instruments.overwrittenCount, err = meter.Int64ObservableCounter(
		"postbox.messages.overwritten",
		metric.WithDescription("Total number of unread messages overwritten by a delivery into a full mailbox"),
	); err != nil {
		return nil, fmt.Errorf("failed to create overwrittenCount instrument, %w", err)
	}

	if instruments.droppedCount, err = meter.Int64ObservableCounter(
		"postbox.messages.dropped",
		metric.WithDescription("Total number of deliveries refused by the checked paths"),
	); err != nil {
		return nil, fmt.Errorf("failed to create droppedCount instrument, %w", err)
	}

	return instruments, nil
}

// MailboxesCount returns the gauge of live mailboxes
func (x *RegistryMetric) MailboxesCount() metric.Int64ObservableGauge {
	return x.mailboxesCount
}

// DeliveredCount returns the counter of delivered messages
func (x *RegistryMetric) DeliveredCount() metric.Int64ObservableCounter {
	return x.deliveredCount
}

// OverwrittenCount returns the counter of overwritten messages
func (x *RegistryMetric) OverwrittenCount() metric.Int64ObservableCounter {
	return x.overwrittenCount
}

// DroppedCount returns the counter of refused deliveries
func (x *RegistryMetric) DroppedCount() metric.Int64ObservableCounter {
	return x.droppedCount
}

// Instruments returns every instrument, as expected by Meter.RegisterCallback
func (x *RegistryMetric) Instruments() []metric.Observable {
	return []metric.Observable{
		x.mailboxesCount,
		x.deliveredCount,
		x.overwrittenCount,
		x.droppedCount,
	}
}
