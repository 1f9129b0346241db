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

// Package config loads the machine profile: the handful of adapter
// parameters that are fixed at power-on on the real device. The profile is
// a YAML file in the per-user resource path, or wherever the -config flag
// points. A missing file is not an error; every field has a device default.
//
// Loading follows a load, validate, normalise flow. Validation is
// declarative and rejects profiles that no device could honour; unset
// fields are then filled with the defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/softlatch/mia/hardware/clock"
	"github.com/softlatch/mia/resources"
)

// Filename is the name of the machine profile file in the per-user
// resource path.
const Filename = "machine.yml"

// defaultBenchTimeout is applied when the profile names a bench adapter
// without a timeout.
const defaultBenchTimeout = 1000

// Profile is the machine profile. The zero value for any field means the
// device default.
type Profile struct {
	// Kernel is the path or URL of the kernel image to attach at startup.
	// When empty the embedded demo kernel is used.
	Kernel string `yaml:"kernel"`

	// Host clock rates in Hz for the two operating phases.
	BootClock uint32 `yaml:"boot_clock"`
	RunClock  uint32 `yaml:"run_clock"`

	// Bench is the register bridge used for hardware-in-the-loop
	// validation.
	Bench Bench `yaml:"bench"`
}

// Bench is the bench adapter endpoint used by VALIDATE mode.
type Bench struct {
	// Addr is the TCP address of the register bridge, host:port. An empty
	// address means validation runs against the loopback driver.
	Addr string `yaml:"addr"`

	// TimeoutMs bounds every bridge transaction, in milliseconds.
	TimeoutMs int `yaml:"timeout_ms"`
}

// Default returns the profile used when no file is present.
func Default() Profile {
	var p Profile
	p.normalise()
	return p
}

// Load reads the machine profile from the path given, or from the default
// per-user location when the path is empty. A missing file is not an
// error. On any error the default profile is returned alongside it, so the
// caller always has a usable profile.
func Load(pth string) (Profile, error) {
	if pth == "" {
		var err error
		pth, err = resources.JoinPath(Filename)
		if err != nil {
			return Default(), fmt.Errorf("config: %w", err)
		}
	}

	d, err := os.ReadFile(pth)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("config: %w", err)
	}

	var p Profile
	if err := yaml.Unmarshal(d, &p); err != nil {
		return Default(), fmt.Errorf("config: %s: %w", pth, err)
	}

	if err := p.validate(); err != nil {
		return Default(), fmt.Errorf("config: %s: %w", pth, err)
	}
	p.normalise()

	return p, nil
}

// validate checks the profile as written. It does not mutate; zero fields
// mean the defaults and are always acceptable.
func (p Profile) validate() error {
	if p.BootClock != 0 && p.RunClock != 0 && p.BootClock > p.RunClock {
		return fmt.Errorf("boot_clock (%d) exceeds run_clock (%d)", p.BootClock, p.RunClock)
	}
	if p.Bench.TimeoutMs < 0 {
		return fmt.Errorf("bench timeout_ms cannot be negative (%d)", p.Bench.TimeoutMs)
	}
	return nil
}

// normalise fills unset fields with the device defaults. Must only be
// called on a validated profile.
func (p *Profile) normalise() {
	p.Kernel = strings.TrimSpace(p.Kernel)
	p.Bench.Addr = strings.TrimSpace(p.Bench.Addr)

	if p.BootClock == 0 {
		p.BootClock = clock.FreqBoot
	}
	if p.RunClock == 0 {
		p.RunClock = clock.FreqNormal
	}
	if p.Bench.TimeoutMs == 0 {
		p.Bench.TimeoutMs = defaultBenchTimeout
	}
}

// BenchTimeout returns the bench transaction timeout as a duration.
func (p Profile) BenchTimeout() time.Duration {
	return time.Duration(p.Bench.TimeoutMs) * time.Millisecond
}

func (p Profile) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("boot %d Hz, run %d Hz", p.BootClock, p.RunClock))
	if p.Kernel != "" {
		s.WriteString(fmt.Sprintf(", kernel %s", p.Kernel))
	}
	if p.Bench.Addr != "" {
		s.WriteString(fmt.Sprintf(", bench %s (%dms)", p.Bench.Addr, p.Bench.TimeoutMs))
	}
	return s.String()
}
