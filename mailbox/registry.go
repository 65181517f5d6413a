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

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.uber.org/atomic"
	"go.uber.org/multierr"

	"github.com/tochemey/postbox/errors"
	"github.com/tochemey/postbox/internal/locker"
	"github.com/tochemey/postbox/internal/metric"
	"github.com/tochemey/postbox/log"
)

// Registry is the set of live mailboxes of a process, or of any scope that
// needs its own: a registry is an explicit object created by the
// composition root and handed to every mailbox it hosts.
//
// One lock guards the whole registry: the list of mailboxes, every
// subscription bitmap and every mailbox buffer. All messaging operations
// across the registry are therefore serialized. The lock is acquired exactly
// once per exported operation; unexported helpers expect it to be held.
//
// A failure of the lock primitive is fatal: it is reported through the
// logger's Fatalf, which terminates the process.
type Registry struct {
	_ locker.NoCopy

	id     string
	mu     *locker.Guard
	locker sync.Locker
	logger log.Logger

	// head of the intrusive list of mailboxes, most recently registered first
	head *Mailbox
	// slots is the arena behind the addresses
	slots []slot
	// free lists the released slot indexes, reused last in first out
	free   []uint32
	closed bool

	mailboxes   *atomic.Int64
	delivered   *atomic.Int64
	overwritten *atomic.Int64
	dropped     *atomic.Int64

	metricsEnabled bool
	meterProvider  otelmetric.MeterProvider
	registration   otelmetric.Registration
}

type slot struct {
	generation uint32
	mailbox    *Mailbox
}

// Stats is a snapshot of the registry counters
type Stats struct {
	// Mailboxes is the number of live mailboxes
	Mailboxes int64
	// Delivered is the number of messages copied into a mailbox
	Delivered int64
	// Overwritten is the number of unread messages lost to a delivery into a full mailbox
	Overwritten int64
	// Dropped is the number of deliveries refused by TrySend and TryPost
	Dropped int64
}

// NewRegistry creates a Registry
func NewRegistry(opts ...Option) (*Registry, error) {
	registry := &Registry{
		id:          uuid.NewString(),
		logger:      log.DefaultLogger,
		mailboxes:   atomic.NewInt64(0),
		delivered:   atomic.NewInt64(0),
		overwritten: atomic.NewInt64(0),
		dropped:     atomic.NewInt64(0),
	}

	for _, opt := range opts {
		opt.Apply(registry)
	}

	registry.logger = registry.logger.With("registry", registry.id)
	registry.mu = locker.NewGuard(registry.locker, func(err *errors.LockError) {
		registry.logger.Fatalf("registry lock is broken: %v", err)
	})

	if registry.metricsEnabled {
		if err := registry.registerMetrics(); err != nil {
			return nil, err
		}
	}

	registry.logger.Debug("mailbox registry created")
	return registry, nil
}

// ID returns the registry unique identifier
func (r *Registry) ID() string {
	return r.id
}

// Len returns the number of live mailboxes
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int(r.mailboxes.Load())
}

// Contains reports whether address designates a live mailbox
func (r *Registry) Contains(address Address) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.find(address) != nil
}

// Addresses returns the addresses of the live mailboxes, most recently
// registered first
func (r *Registry) Addresses() []Address {
	r.mu.Lock()
	defer r.mu.Unlock()

	addresses := make([]Address, 0, r.mailboxes.Load())
	r.forEach(func(mailbox *Mailbox) {
		addresses = append(addresses, mailbox.address)
	})
	return addresses
}

// Stats returns a snapshot of the registry counters. It does not take the
// registry lock, so the counters may be mutually inconsistent under load.
func (r *Registry) Stats() Stats {
	return Stats{
		Mailboxes:   r.mailboxes.Load(),
		Delivered:   r.delivered.Load(),
		Overwritten: r.overwritten.Load(),
		Dropped:     r.dropped.Load(),
	}
}

// Close destroys every live mailbox and rejects further mailbox creation.
// Closing a closed registry is a no-op.
func (r *Registry) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}

	count := 0
	for mailbox := r.head; mailbox != nil; {
		next := mailbox.next
		r.release(mailbox.address)
		mailbox.wipe()
		mailbox = next
		count++
	}
	r.head = nil
	r.closed = true
	r.mu.Unlock()

	var err error
	if r.registration != nil {
		err = multierr.Append(err, r.registration.Unregister())
	}

	r.logger.Debugf("mailbox registry closed, %d mailbox(es) destroyed", count)
	return err
}

// register allocates a slot for mailbox, links it at the head of the list
// and returns its address.
func (r *Registry) register(mailbox *Mailbox) Address {
	var index uint32
	if n := len(r.free); n > 0 {
		index = r.free[n-1]
		r.free = r.free[:n-1]
	} else {
		index = uint32(len(r.slots))
		r.slots = append(r.slots, slot{generation: 1})
	}

	r.slots[index].mailbox = mailbox
	mailbox.next = r.head
	r.head = mailbox
	r.mailboxes.Inc()
	return Address{index: index, generation: r.slots[index].generation}
}

// unregister unlinks mailbox from the list and releases its slot.
// It is a no-op when the mailbox is not linked.
func (r *Registry) unregister(mailbox *Mailbox) bool {
	link := &r.head
	for *link != nil {
		if *link == mailbox {
			*link = mailbox.next
			mailbox.next = nil
			r.release(mailbox.address)
			return true
		}
		link = &(*link).next
	}
	return false
}

// release frees the slot behind address and bumps its generation
func (r *Registry) release(address Address) {
	s := &r.slots[address.index]
	s.mailbox = nil
	s.generation++
	if s.generation == 0 {
		s.generation = 1
	}
	r.free = append(r.free, address.index)
	r.mailboxes.Dec()
}

// find resolves address to its live mailbox, or nil
func (r *Registry) find(address Address) *Mailbox {
	if address.IsZero() || address.index >= uint32(len(r.slots)) {
		return nil
	}

	s := r.slots[address.index]
	if s.generation != address.generation {
		return nil
	}
	return s.mailbox
}

// forEach calls fn on every live mailbox in list order
func (r *Registry) forEach(fn func(*Mailbox)) {
	for mailbox := r.head; mailbox != nil; mailbox = mailbox.next {
		fn(mailbox)
	}
}

// deliver copies msg into target, overwriting its oldest unread message when
// it is full.
func (r *Registry) deliver(target *Mailbox, msg *Message) {
	r.delivered.Inc()
	if target.push(msg) {
		r.overwritten.Inc()
		r.logger.Debugf("mailbox=(%s) is full, oldest message overwritten by event=(%d) from=(%s)",
			target.address, msg.ID, msg.Source)
	}
}

// registerMetrics registers the registry instruments with OpenTelemetry
func (r *Registry) registerMetrics() error {
	provider := metric.NewProvider(metric.WithMeterProvider(r.meterProvider))
	meter := provider.Meter()

	instruments, err := metric.NewRegistryMetric(meter)
	if err != nil {
		return err
	}

	attributes := otelmetric.WithAttributes(attribute.String("registry.id", r.id))
	r.registration, err = meter.RegisterCallback(func(_ context.Context, observer otelmetric.Observer) error {
		stats := r.Stats()
		observer.ObserveInt64(instruments.MailboxesCount(), stats.Mailboxes, attributes)
		observer.ObserveInt64(instruments.DeliveredCount(), stats.Delivered, attributes)
		observer.ObserveInt64(instruments.OverwrittenCount(), stats.Overwritten, attributes)
		observer.ObserveInt64(instruments.DroppedCount(), stats.Dropped, attributes)
		return nil
	}, instruments.Instruments()...)
	return err
}
