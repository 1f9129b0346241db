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

package validate

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/softlatch/mia/hardware/bus"
	"github.com/softlatch/mia/hardware/regmap"
)

// ErrPort wraps operational failures of the port itself, as opposed to
// scenario assertion failures. A port failure ends the run immediately; there
// is no point continuing a suite over a broken link.
var ErrPort = errors.New("port failure")

// Port is the register-level view of the adapter. The two implementations
// are the Loopback type in this package and the regbridge client.
type Port interface {
	ReadRegister(reg uint8) (uint8, error)
	WriteRegister(reg uint8, data uint8) error
}

// session collects the helpers shared by every scenario.
type session struct {
	port Port
}

func (s *session) peek(reg uint8) (uint8, error) {
	v, err := s.port.ReadRegister(reg)
	if err != nil {
		return 0, fmt.Errorf("%w: reading %s: %v", ErrPort, regmap.Label(reg), err)
	}
	return v, nil
}

func (s *session) poke(reg uint8, data uint8) error {
	if err := s.port.WriteRegister(reg, data); err != nil {
		return fmt.Errorf("%w: writing %s: %v", ErrPort, regmap.Label(reg), err)
	}
	return nil
}

// expect fails unless the register reads exactly the given value.
func (s *session) expect(reg uint8, value uint8) error {
	v, err := s.peek(reg)
	if err != nil {
		return err
	}
	if v != value {
		return fmt.Errorf("%s: is %#02x, should be %#02x", regmap.Label(reg), v, value)
	}
	return nil
}

// expectSet fails unless every bit of the mask is set in the register.
func (s *session) expectSet(reg uint8, mask uint8) error {
	v, err := s.peek(reg)
	if err != nil {
		return err
	}
	if v&mask != mask {
		return fmt.Errorf("%s: is %#02x, should have bits %#02x set", regmap.Label(reg), v, mask)
	}
	return nil
}

// expectClear fails if any bit of the mask is set in the register.
func (s *session) expectClear(reg uint8, mask uint8) error {
	v, err := s.peek(reg)
	if err != nil {
		return err
	}
	if v&mask != 0 {
		return fmt.Errorf("%s: is %#02x, should have bits %#02x clear", regmap.Label(reg), v, mask)
	}
	return nil
}

// window converts a window number and register offset to a local address.
func (s *session) window(w int, offset uint8) uint8 {
	return uint8(w)*regmap.WindowSpan + offset
}

// setField writes one configuration field through the window's config
// registers.
func (s *session) setField(w int, fld uint8, data uint8) error {
	if err := s.poke(s.window(w, regmap.CfgFieldSelect), fld); err != nil {
		return err
	}
	return s.poke(s.window(w, regmap.CfgData), data)
}

// getField reads one configuration field through the window's config
// registers.
func (s *session) getField(w int, fld uint8) (uint8, error) {
	if err := s.poke(s.window(w, regmap.CfgFieldSelect), fld); err != nil {
		return 0, err
	}
	return s.peek(s.window(w, regmap.CfgData))
}

// setTriple writes a 24-bit value to the three consecutive byte fields
// starting at fld.
func (s *session) setTriple(w int, fld uint8, v uint32) error {
	for i := uint8(0); i < 3; i++ {
		if err := s.setField(w, fld+i, uint8(v>>(8*i))); err != nil {
			return err
		}
	}
	return nil
}

// getTriple reads a 24-bit value from the three consecutive byte fields
// starting at fld.
func (s *session) getTriple(w int, fld uint8) (uint32, error) {
	var v uint32
	for i := uint8(0); i < 3; i++ {
		b, err := s.getField(w, fld+i)
		if err != nil {
			return 0, err
		}
		v |= uint32(b) << (8 * i)
	}
	return v, nil
}

// factoryReset returns the device to the power-on state: documented cursor
// defaults, no latched causes, interrupt mask and enable restored. Every
// scenario starts here so a failure part way through one scenario cannot
// skew the next.
func (s *session) factoryReset() error {
	return s.poke(regmap.SharedCommand, bus.CmdFactoryReset)
}

// awaitCause polls IRQ_CAUSE_LOW until every bit of the mask is latched. The
// copy engine runs asynchronously to the port so polling is bounded by time
// rather than by a poll count; a poll over a bench link is several orders of
// magnitude slower than over the loopback.
func (s *session) awaitCause(mask uint8, patience time.Duration) error {
	deadline := time.Now().Add(patience)
	for time.Now().Before(deadline) {
		v, err := s.peek(regmap.IRQCauseLow)
		if err != nil {
			return err
		}
		if v&mask == mask {
			return nil
		}
		time.Sleep(time.Millisecond)
	}
	return fmt.Errorf("no interrupt with cause %#02x within %s", mask, patience)
}

// Run executes the scenario suite against the port. One line is written to
// the output writer for every failed scenario; passing scenarios are reported
// only when verbose is true. Scenario failures are collected and summarised
// in the returned error. A failure of the port itself ends the run
// immediately with an error wrapping ErrPort.
func Run(output io.Writer, port Port, verbose bool) error {
	if output == nil {
		output = io.Discard
	}

	s := &session{port: port}

	failures := 0
	for _, sc := range scenarios {
		err := sc.run(s)
		if err == nil {
			if verbose {
				fmt.Fprintf(output, "ok   %s\n", sc.name)
			}
			continue
		}

		if errors.Is(err, ErrPort) {
			return fmt.Errorf("validate: %s: %w", sc.name, err)
		}

		failures++
		fmt.Fprintf(output, "FAIL %s: %v\n", sc.name, err)
	}

	if failures > 0 {
		return fmt.Errorf("validate: %d of %d scenarios failed", failures, len(scenarios))
	}

	if verbose {
		fmt.Fprintf(output, "all %d scenarios passed\n", len(scenarios))
	}

	return nil
}
