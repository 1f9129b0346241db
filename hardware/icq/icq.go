// This file is part of MIA.
//
// MIA is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// MIA is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with MIA.  If not, see <https://www.gnu.org/licenses/>.

package icq

import (
	"sync/atomic"
)

// Capacity is the fixed number of commands the queue can hold.
const Capacity = 8

// Command is one block-copy request. Src and Dst name cursors; their current
// addresses are sampled when the command is dispatched, not when it is
// queued.
type Command struct {
	Src   uint8
	Dst   uint8
	Count uint16
}

// Queue is a bounded single-producer single-consumer command queue. The bus
// servicing loop adds and the service loop removes; neither operation blocks
// and neither takes a lock, which keeps the producer side safe to call under
// the bus deadline.
//
// Waking the consumer is the owner's concern, not the queue's.
type Queue struct {
	buffer [Capacity]Command

	// head is owned by the consumer, tail by the producer. both grow without
	// bound and are reduced modulo Capacity on use
	head atomic.Uint32
	tail atomic.Uint32
}

// NewQueue is the preferred method of initialisation for the Queue type.
func NewQueue() *Queue {
	return &Queue{}
}

// TryAdd appends a command to the queue. Returns false if the queue is full.
// Producer side only.
func (q *Queue) TryAdd(cmd Command) bool {
	t := q.tail.Load()
	if t-q.head.Load() >= Capacity {
		return false
	}
	q.buffer[t%Capacity] = cmd
	q.tail.Store(t + 1)
	return true
}

// TryRemove takes the oldest command from the queue. Returns false if the
// queue is empty. Consumer side only.
func (q *Queue) TryRemove() (Command, bool) {
	h := q.head.Load()
	if h == q.tail.Load() {
		return Command{}, false
	}
	cmd := q.buffer[h%Capacity]
	q.head.Store(h + 1)
	return cmd, true
}

// Len returns the number of commands waiting in the queue.
func (q *Queue) Len() int {
	return int(q.tail.Load() - q.head.Load())
}
