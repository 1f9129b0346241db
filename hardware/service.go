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

package hardware

import (
	"github.com/softlatch/mia/logger"
)

// Start the copy service. The service drains the work queued by the
// COPY_BLOCK shared command, standing in for the worker core of the real
// device. Without it copy commands accumulate in the queue and are never
// performed.
func (mia *MIA) Start() {
	mia.crit.Lock()
	defer mia.crit.Unlock()
	mia.startService()
}

// End the copy service, waiting for any copy in progress to complete.
// Commands still queued are left on the queue.
func (mia *MIA) End() {
	mia.crit.Lock()
	defer mia.crit.Unlock()
	mia.endService()
}

// must be called with crit held.
func (mia *MIA) startService() {
	if mia.running {
		return
	}

	mia.quit = make(chan struct{})
	mia.stopped = make(chan struct{})
	mia.running = true

	go mia.service()

	// pump anything queued while the service was down
	mia.wakeService()

	logger.Log(mia.Env, "mia", "copy service started")
}

// must be called with crit held.
func (mia *MIA) endService() {
	if !mia.running {
		return
	}

	close(mia.quit)
	<-mia.stopped
	mia.DMA.Wait()
	mia.running = false

	logger.Log(mia.Env, "mia", "copy service stopped")
}

// the service loop. runs on its own goroutine between Start() and End() and
// touches only the queue, the cursor file and the DMA engine, never the bus
// master lock.
func (mia *MIA) service() {
	defer close(mia.stopped)

	for {
		select {
		case <-mia.quit:
			return
		case <-mia.wake:
			mia.drainQueue()
		}
	}
}

// perform every command waiting on the queue, one transfer at a time. copy
// addresses are resolved from the cursor file at dispatch time, not at the
// time the host issued the command.
//
// a command that was accepted onto the queue is never bounced as busy: the
// next dispatch waits for the transfer before it to complete.
func (mia *MIA) drainQueue() {
	for {
		cmd, ok := mia.ICQ.TryRemove()
		if !ok {
			return
		}

		src, dst := mia.Mem.CopyAddresses(cmd)
		if mia.DMA.CopyBlock(src, dst, cmd.Count) {
			mia.DMA.Wait()
		}
	}
}

// wakeService is handed to the bus front-end and is called after a copy
// command has been queued. the send never blocks: a wake that finds the
// channel already primed is redundant anyway.
func (mia *MIA) wakeService() {
	select {
	case mia.wake <- struct{}{}:
	default:
	}
}
