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

package performance

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"strings"
)

// Profile defines the different profiling options for the RunProfiler()
// function.
type Profile int

// List of valid Profile values.
const (
	ProfileNone Profile = iota
	ProfileCPU
	ProfileMem
	ProfileTrace
	ProfileAll
)

// ParseProfileString converts a string to a Profile value. Used to decode a
// command line argument.
func ParseProfileString(s string) (Profile, error) {
	switch strings.ToUpper(s) {
	case "NONE":
		return ProfileNone, nil
	case "CPU":
		return ProfileCPU, nil
	case "MEM":
		return ProfileMem, nil
	case "TRACE":
		return ProfileTrace, nil
	case "ALL":
		return ProfileAll, nil
	}
	return ProfileNone, fmt.Errorf("unrecognised profile (%s)", s)
}

// RunProfiler runs the supplied function with the requested profiling.
// Profile files are written to the working directory, prefixed with the
// tag. The files can be examined with the pprof and trace tools.
func RunProfiler(profile Profile, tag string, run func() error) error {
	if profile == ProfileCPU || profile == ProfileAll {
		f, err := os.Create(fmt.Sprintf("%s_cpu.profile", tag))
		if err != nil {
			return err
		}
		defer f.Close()

		if err := pprof.StartCPUProfile(f); err != nil {
			return err
		}
		defer pprof.StopCPUProfile()
	}

	if profile == ProfileTrace || profile == ProfileAll {
		f, err := os.Create(fmt.Sprintf("%s_trace.profile", tag))
		if err != nil {
			return err
		}
		defer f.Close()

		if err := trace.Start(f); err != nil {
			return err
		}
		defer trace.Stop()
	}

	err := run()

	// the heap profile is written even when run() has failed. the run()
	// error takes precedence over any profile write error
	if profile == ProfileMem || profile == ProfileAll {
		f, cerr := os.Create(fmt.Sprintf("%s_mem.profile", tag))
		if cerr != nil {
			if err == nil {
				err = cerr
			}
			return err
		}
		defer f.Close()

		runtime.GC()
		if werr := pprof.WriteHeapProfile(f); werr != nil && err == nil {
			err = werr
		}
	}

	return err
}
