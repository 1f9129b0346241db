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

// Package environment provides context for an emulation. Particularly useful
// when there is more than one emulation in the system.
package environment

import (
	"github.com/softlatch/mia/hardware/preferences"
	"github.com/softlatch/mia/random"
)

// Label is used to name the environment.
type Label string

// MainEmulation is the label used for the main emulation in the system.
// Emulations with any other label are considered to be ancillary and, for
// example, are not allowed to create new log entries.
const MainEmulation = Label("main")

// Environment is used to provide context for an emulation.
type Environment struct {
	Label Label

	// any randomisation required by the emulation should be retrieved through
	// this structure
	Random *random.Random

	// the emulation preferences
	Prefs *preferences.Preferences
}

// NewEnvironment is the preferred method of initialisation for the
// Environment type.
//
// The prefs argument can be nil, in which case a new Preferences instance is
// created. Providing a non-nil value allows the preferences of more than one
// emulation to be synchronised.
func NewEnvironment(label Label, clk random.Clock, prefs *preferences.Preferences) (*Environment, error) {
	env := &Environment{
		Label:  label,
		Random: random.NewRandom(clk),
	}

	var err error

	if prefs == nil {
		prefs, err = preferences.NewPreferences()
		if err != nil {
			return nil, err
		}
	}

	env.Prefs = prefs

	return env, nil
}

// Normalise ensures the environment is in a known default state. Useful for
// validation runs where the initial state must be the same for every run.
func (env *Environment) Normalise() {
	env.Random.ZeroSeed = true
	env.Prefs.SetDefaults()
}

// IsMainEmulation returns true if the environment is intended for the main
// emulation in the system.
func (env *Environment) IsMainEmulation() bool {
	return env.Label == MainEmulation
}

// IsEmulation checks the emulation label and returns true if it matches.
func (env *Environment) IsEmulation(label Label) bool {
	return env.Label == label
}

// AllowLogging returns true if the environment is allowed to create new log
// entries.
//
// Environment satisfies the logger.Permission interface.
func (env *Environment) AllowLogging() bool {
	return env.IsMainEmulation()
}
