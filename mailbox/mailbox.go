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
	"fmt"

	"github.com/Workiva/go-datastructures/bitarray"
	"go.uber.org/multierr"

	"github.com/tochemey/postbox/errors"
	"github.com/tochemey/postbox/internal/locker"
	"github.com/tochemey/postbox/internal/mathx"
)

// Mailbox is a bounded FIFO of messages owned by a single task and
// registered with a Registry. Other tasks reach it either directly by
// Address (Send) or through its subscriptions (Post).
//
// The message storage is provided by the caller and its length is the
// mailbox capacity, which must be a power of two of at least 2. One slot is
// always kept free, so a mailbox holds at most Capacity()-1 messages.
//
// All state is guarded by the registry lock.
type Mailbox struct {
	_ locker.NoCopy

	registry *Registry
	address  Address

	capacity uint32
	mask     uint32
	head     uint32
	tail     uint32
	buffer   []Message

	subscriptions bitarray.BitArray

	// next is the registry list link
	next      *Mailbox
	destroyed bool
}

// New creates a mailbox backed by storage and registers it with registry.
// The storage is zeroed and must not be touched by the caller until the
// mailbox is destroyed.
func New(registry *Registry, storage []Message) (*Mailbox, error) {
	if registry == nil {
		return nil, errors.ErrNilRegistry
	}

	if storage == nil {
		return nil, errors.ErrInvalidStorage
	}

	capacity := len(storage)
	if capacity < 2 || !mathx.IsPowerOfTwo(capacity) || uint64(capacity) > 1<<31 {
		return nil, fmt.Errorf("capacity=(%d) %w", capacity, errors.ErrInvalidCapacity)
	}

	clear(storage)
	mailbox := &Mailbox{
		registry:      registry,
		capacity:      uint32(capacity),
		mask:          mathx.Mask(uint32(capacity)),
		buffer:        storage,
		subscriptions: bitarray.NewBitArray(uint64(MaxEventID) + 1),
	}

	registry.mu.Lock()
	if registry.closed {
		registry.mu.Unlock()
		return nil, errors.ErrRegistryClosed
	}
	mailbox.address = registry.register(mailbox)
	registry.mu.Unlock()

	registry.logger.Debugf("mailbox=(%s) created with capacity=(%d)", mailbox.address, capacity)
	return mailbox, nil
}

// Destroy unregisters the mailbox and zeroes its storage. Its address never
// resolves again. Callers must make sure no other task still uses the
// mailbox pointer.
func (m *Mailbox) Destroy() error {
	if m == nil {
		return errors.ErrNilMailbox
	}

	registry := m.registry
	registry.mu.Lock()
	if m.destroyed {
		registry.mu.Unlock()
		return errors.ErrMailboxDestroyed
	}
	address := m.address
	registry.unregister(m)
	m.wipe()
	registry.mu.Unlock()

	registry.logger.Debugf("mailbox=(%s) destroyed", address)
	return nil
}

// Subscribe makes the mailbox a recipient of the messages posted with the
// given event id
func (m *Mailbox) Subscribe(id uint32) error {
	if id > MaxEventID {
		return errors.NewErrInvalidEventID(id)
	}

	m.registry.mu.Lock()
	defer m.registry.mu.Unlock()
	if m.destroyed {
		return errors.ErrMailboxDestroyed
	}
	return m.subscriptions.SetBit(uint64(id))
}

// Unsubscribe stops the delivery of the messages posted with the given
// event id
func (m *Mailbox) Unsubscribe(id uint32) error {
	if id > MaxEventID {
		return errors.NewErrInvalidEventID(id)
	}

	m.registry.mu.Lock()
	defer m.registry.mu.Unlock()
	if m.destroyed {
		return errors.ErrMailboxDestroyed
	}
	return m.subscriptions.ClearBit(uint64(id))
}

// Subscribed reports whether the mailbox is subscribed to the event id
func (m *Mailbox) Subscribed(id uint32) bool {
	if id > MaxEventID {
		return false
	}

	m.registry.mu.Lock()
	defer m.registry.mu.Unlock()
	return m.subscribed(id)
}

// Subscriptions returns the subscribed event ids in ascending order
func (m *Mailbox) Subscriptions() []uint32 {
	m.registry.mu.Lock()
	nums := m.subscriptions.ToNums()
	m.registry.mu.Unlock()

	ids := make([]uint32, len(nums))
	for i, num := range nums {
		ids[i] = uint32(num)
	}
	return ids
}

// Send delivers a copy of msg to the mailbox at target. msg.Source and
// msg.Target are set by the call.
//
// When the target is full its oldest unread message is overwritten.
// ErrMailboxNotFound is returned when target does not designate a live
// mailbox, in which case no buffer is modified.
func (m *Mailbox) Send(target Address, msg *Message) error {
	return m.send(target, msg, false)
}

// TrySend behaves like Send but refuses to overwrite: ErrMailboxFull is
// returned and the target is left unchanged when it has no free slot.
func (m *Mailbox) TrySend(target Address, msg *Message) error {
	return m.send(target, msg, true)
}

// SendV builds a message from userData, id and params and sends it to target
func (m *Mailbox) SendV(target Address, userData, id uint32, params []uint32) error {
	msg, err := NewMessage(id, userData, params)
	if err != nil {
		return err
	}
	return m.Send(target, msg)
}

// Receive removes and returns the oldest message of the mailbox.
// ErrMailboxEmpty is returned when there is none.
func (m *Mailbox) Receive() (Message, error) {
	m.registry.mu.Lock()
	defer m.registry.mu.Unlock()

	if m.destroyed {
		return Message{}, errors.ErrMailboxDestroyed
	}

	if m.head == m.tail {
		return Message{}, errors.ErrMailboxEmpty
	}

	msg := m.buffer[m.head]
	m.head = (m.head + 1) & m.mask
	return msg, nil
}

// Post broadcasts a copy of msg to every registered mailbox subscribed to
// msg.ID, the sender included. msg.Source is set to the sender and
// msg.Target is cleared. Full subscribers get their oldest unread message
// overwritten. Posting with no subscriber is not an error.
func (m *Mailbox) Post(msg *Message) error {
	return m.post(msg, false)
}

// TryPost behaves like Post but skips the full subscribers. The returned
// error combines one ErrMailboxFull per skipped subscriber; every other
// subscriber still receives the message.
func (m *Mailbox) TryPost(msg *Message) error {
	return m.post(msg, true)
}

// PostV builds a message from id and params and posts it
func (m *Mailbox) PostV(id uint32, params []uint32) error {
	msg, err := NewMessage(id, 0, params)
	if err != nil {
		return err
	}
	return m.Post(msg)
}

// Address returns the mailbox address
func (m *Mailbox) Address() Address {
	return m.address
}

// Capacity returns the length of the mailbox storage
func (m *Mailbox) Capacity() int {
	return int(m.capacity)
}

// Len returns the number of unread messages
func (m *Mailbox) Len() int {
	m.registry.mu.Lock()
	defer m.registry.mu.Unlock()
	return int(mathx.Used(m.head, m.tail, m.mask))
}

// Free returns the number of messages the mailbox can still accept before
// overwriting
func (m *Mailbox) Free() int {
	m.registry.mu.Lock()
	defer m.registry.mu.Unlock()
	return int(mathx.Free(m.head, m.tail, m.mask))
}

// Registry returns the registry the mailbox belongs to
func (m *Mailbox) Registry() *Registry {
	return m.registry
}

func (m *Mailbox) send(target Address, msg *Message, checked bool) error {
	if msg == nil {
		return errors.ErrNilMessage
	}

	if target.IsZero() {
		return errors.ErrNoTarget
	}

	registry := m.registry
	registry.mu.Lock()
	defer registry.mu.Unlock()

	if m.destroyed {
		return errors.ErrMailboxDestroyed
	}

	recipient := registry.find(target)
	if recipient == nil {
		return errors.NewErrMailboxNotFound(target.String())
	}

	msg.Source = m.address
	msg.Target = target

	if checked && recipient.full() {
		registry.dropped.Inc()
		return errors.NewErrMailboxFull(target.String())
	}

	registry.deliver(recipient, msg)
	return nil
}

func (m *Mailbox) post(msg *Message, checked bool) error {
	if msg == nil {
		return errors.ErrNilMessage
	}

	if msg.ID > MaxEventID {
		return errors.NewErrInvalidEventID(msg.ID)
	}

	registry := m.registry
	registry.mu.Lock()
	defer registry.mu.Unlock()

	if m.destroyed {
		return errors.ErrMailboxDestroyed
	}

	msg.Source = m.address
	msg.Target = NoAddress()

	var err error
	registry.forEach(func(subscriber *Mailbox) {
		if !subscriber.subscribed(msg.ID) {
			return
		}

		if checked && subscriber.full() {
			registry.dropped.Inc()
			err = multierr.Append(err, errors.NewErrMailboxFull(subscriber.address.String()))
			return
		}

		registry.deliver(subscriber, msg)
	})
	return err
}

// push copies msg at the tail. When the mailbox is full the oldest message is
// dropped first and push returns true.
func (m *Mailbox) push(msg *Message) (overwritten bool) {
	if m.full() {
		m.head = (m.head + 1) & m.mask
		overwritten = true
	}

	m.buffer[m.tail] = *msg
	m.tail = (m.tail + 1) & m.mask
	return overwritten
}

func (m *Mailbox) full() bool {
	return mathx.Free(m.head, m.tail, m.mask) == 0
}

func (m *Mailbox) subscribed(id uint32) bool {
	ok, err := m.subscriptions.GetBit(uint64(id))
	return err == nil && ok
}

// wipe zeroes the storage, clears the subscriptions and marks the mailbox
// destroyed. The caller has already unlinked it from the registry.
func (m *Mailbox) wipe() {
	clear(m.buffer)
	m.subscriptions.Reset()
	m.head, m.tail = 0, 0
	m.next = nil
	m.destroyed = true
}
