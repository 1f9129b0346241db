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

// Package limiter provides a rough and ready way of limiting events to a
// fixed rate.
//
// A new RateLimiter can be created with (error handling removed for
// clarity):
//
//	lim, _ := limiter.NewRateLimiter(1000)
//
// Operations can then be stalled with the Wait() function. For example:
//
//	for {
//		lim.Wait()
//		issueWork()
//	}
package limiter

import (
	"fmt"
	"time"
)

// this is a rough attempt at rate limiting. probably only any good if the
// base performance of the machine is well above the required rate.

// RateLimiter triggers at a steady number of events per second.
type RateLimiter struct {
	eventsPerSecond int
	perEvent        time.Duration

	tick chan bool
}

// NewRateLimiter is the preferred method of initialisation for the
// RateLimiter type.
func NewRateLimiter(eventsPerSecond int) (*RateLimiter, error) {
	if eventsPerSecond < 1 {
		return nil, fmt.Errorf("limiter: silly rate (%d per second)", eventsPerSecond)
	}

	lim := &RateLimiter{}
	lim.SetLimit(eventsPerSecond)

	lim.tick = make(chan bool)

	// run ticker concurrently. the sleep period is adjusted every event to
	// absorb the drift from the sleep itself
	go func() {
		adjustedPerEvent := lim.perEvent
		t := time.Now()
		for {
			lim.tick <- true
			time.Sleep(adjustedPerEvent)
			nt := time.Now()
			adjustedPerEvent -= nt.Sub(t) - lim.perEvent
			t = nt
		}
	}()

	return lim, nil
}

// SetLimit changes the rate at which the RateLimiter triggers.
func (lim *RateLimiter) SetLimit(eventsPerSecond int) {
	lim.eventsPerSecond = eventsPerSecond
	lim.perEvent = time.Duration(float64(time.Second) / float64(eventsPerSecond))
}

// Wait will block until the next trigger.
func (lim *RateLimiter) Wait() {
	<-lim.tick
}

// HasWaited returns true if the trigger has already elapsed and false if it
// is still yet to happen.
func (lim *RateLimiter) HasWaited() bool {
	select {
	case <-lim.tick:
		return true
	default:
		// the default case means the channel receive doesn't block
		return false
	}
}
