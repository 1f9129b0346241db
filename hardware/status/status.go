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

package status

import (
	"strings"
	"sync/atomic"
)

// Flags indicating the condition of the adapter. The host reads these through
// the DEVICE_STATUS register.
const (
	Busy            = 0x01
	IRQPending      = 0x02
	MemoryError     = 0x04
	IndexOverflow   = 0x08
	USBDataReady    = 0x10
	VideoFrameReady = 0x20
	DMAActive       = 0x40
	Ready           = 0x80
)

// Register is the device status byte. Bits are set and cleared from the bus
// servicing loop, the background service loop and the DMA completion handler,
// so every update must be atomic with respect to the others.
//
// The zero value is a valid, empty register.
type Register struct {
	value atomic.Uint32
}

// Value returns the current status byte.
func (r *Register) Value() uint8 {
	return uint8(r.value.Load())
}

// Set the flags given in the mask, leaving other flags untouched.
func (r *Register) Set(mask uint8) {
	for {
		o := r.value.Load()
		n := o | uint32(mask)
		if o == n || r.value.CompareAndSwap(o, n) {
			return
		}
	}
}

// Clear the flags given in the mask, leaving other flags untouched.
func (r *Register) Clear(mask uint8) {
	for {
		o := r.value.Load()
		n := o &^ uint32(mask)
		if o == n || r.value.CompareAndSwap(o, n) {
			return
		}
	}
}

// TestAndSet sets the flags in the mask and reports whether the claim was
// clean: true if none of the flags was already set. Used for flags that act
// as ownership claims, like DMA_ACTIVE.
func (r *Register) TestAndSet(mask uint8) bool {
	for {
		o := r.value.Load()
		if o&uint32(mask) != 0 {
			return false
		}
		if r.value.CompareAndSwap(o, o|uint32(mask)) {
			return true
		}
	}
}

// SetTo sets or clears the flags in the mask according to the set argument.
func (r *Register) SetTo(mask uint8, set bool) {
	if set {
		r.Set(mask)
	} else {
		r.Clear(mask)
	}
}

// Test returns true if any of the flags in the mask is set.
func (r *Register) Test(mask uint8) bool {
	return r.Value()&mask != 0
}

// Store replaces the entire register with the value given. Used during reset
// when no other context is running.
func (r *Register) Store(value uint8) {
	r.value.Store(uint32(value))
}

func (r *Register) String() string {
	v := r.Value()
	if v == 0 {
		return "none"
	}

	labels := []struct {
		mask  uint8
		label string
	}{
		{Ready, "READY"},
		{Busy, "BUSY"},
		{IRQPending, "IRQ_PENDING"},
		{MemoryError, "MEMORY_ERROR"},
		{IndexOverflow, "INDEX_OVERFLOW"},
		{USBDataReady, "USB_DATA_READY"},
		{VideoFrameReady, "VIDEO_FRAME_READY"},
		{DMAActive, "DMA_ACTIVE"},
	}

	s := strings.Builder{}
	for _, l := range labels {
		if v&l.mask == l.mask {
			if s.Len() > 0 {
				s.WriteString(" | ")
			}
			s.WriteString(l.label)
		}
	}
	return s.String()
}
