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

package validate_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/softlatch/mia/hardware"
	"github.com/softlatch/mia/hardware/host"
	"github.com/softlatch/mia/test"
	"github.com/softlatch/mia/validate"
)

func newMachine(t *testing.T) *host.Driver {
	t.Helper()

	mia, err := hardware.NewMIA("test", nil)
	test.DemandSuccess(t, err)
	mia.Env.Normalise()

	// the copy scenarios need the service loop
	mia.Start()
	t.Cleanup(mia.End)

	return host.NewDriver(mia)
}

func TestSuiteOverLoopback(t *testing.T) {
	drv := newMachine(t)

	var report bytes.Buffer
	err := validate.Run(&report, validate.NewLoopback(drv), true)
	if err != nil {
		t.Log(report.String())
	}
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, strings.Contains(report.String(), "scenarios passed"))
}

// stuckBitPort corrupts reads of the window zero data port, simulating a
// stuck line between the host and the adapter.
type stuckBitPort struct {
	port validate.Port
}

func (p stuckBitPort) ReadRegister(reg uint8) (uint8, error) {
	v, err := p.port.ReadRegister(reg)
	if reg == 0x01 {
		v ^= 0x10
	}
	return v, err
}

func (p stuckBitPort) WriteRegister(reg uint8, data uint8) error {
	return p.port.WriteRegister(reg, data)
}

func TestStuckBitIsCaught(t *testing.T) {
	drv := newMachine(t)

	var report bytes.Buffer
	err := validate.Run(&report, stuckBitPort{port: validate.NewLoopback(drv)}, false)

	// assertion failures accumulate rather than aborting the suite
	test.ExpectFailure(t, err)
	test.ExpectFailure(t, errors.Is(err, validate.ErrPort))
	test.ExpectSuccess(t, strings.Contains(report.String(), "FAIL"))

	// scenarios that never read through window zero still pass
	test.ExpectSuccess(t, strings.Contains(err.Error(), "of 7 scenarios failed"))
	test.ExpectFailure(t, strings.Contains(err.Error(), "7 of 7"))
}

// deadPort fails every access, simulating an unplugged bench link.
type deadPort struct{}

func (deadPort) ReadRegister(reg uint8) (uint8, error) {
	return 0, errors.New("no response")
}

func (deadPort) WriteRegister(reg uint8, data uint8) error {
	return errors.New("no response")
}

func TestDeadLinkAborts(t *testing.T) {
	err := validate.Run(nil, deadPort{}, false)
	test.ExpectSuccess(t, errors.Is(err, validate.ErrPort))
}
