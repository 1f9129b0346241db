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

package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/softlatch/mia/config"
	"github.com/softlatch/mia/environment"
	"github.com/softlatch/mia/hardware"
	"github.com/softlatch/mia/hardware/host"
	"github.com/softlatch/mia/kernelimage"
	"github.com/softlatch/mia/logger"
	"github.com/softlatch/mia/modalflag"
	"github.com/softlatch/mia/monitor"
	"github.com/softlatch/mia/monitor/govern"
	"github.com/softlatch/mia/monitor/terminal"
	"github.com/softlatch/mia/monitor/terminal/colorterm"
	"github.com/softlatch/mia/monitor/terminal/plainterm"
	"github.com/softlatch/mia/performance"
	"github.com/softlatch/mia/performance/limiter"
	"github.com/softlatch/mia/prefs"
	"github.com/softlatch/mia/regbridge"
	"github.com/softlatch/mia/statsview"
	"github.com/softlatch/mia/validate"
	"github.com/softlatch/mia/version"
)

const kernelHelp = `The kernel image can be given as an argument or named by the machine
profile. With neither, the built-in demo kernel is used.`

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.NewMode()
	md.AddSubModes("RUN", "DEBUG", "PERFORMANCE", "VALIDATE", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		os.Exit(10)
	}

	switch md.Mode() {
	case "RUN":
		err = run(md)

	case "DEBUG":
		err = debug(md)

	case "PERFORMANCE":
		err = perform(md)

	case "VALIDATE":
		err = validateBench(md)

	case "VERSION":
		err = showVersion(md)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		os.Exit(20)
	}
}

// setEcho wires the debugging log to stdout.
func setEcho(echo bool) {
	if echo {
		logger.SetEcho(logger.NewColorizer(os.Stdout), false)
	} else {
		logger.SetEcho(nil, false)
	}
}

func launchStats(output io.Writer) {
	if statsview.Available() {
		statsview.Launch(output)
	} else {
		fmt.Fprintln(output, "! statsview not available in this build")
	}
}

// kernelLoader resolves the kernel image for a mode: the command line
// argument first, then the machine profile, then the embedded demo kernel.
func kernelLoader(md *modalflag.Modes, prof config.Profile) (kernelimage.Loader, error) {
	switch len(md.RemainingArgs()) {
	case 0:
		if prof.Kernel != "" {
			return kernelimage.NewLoader(prof.Kernel), nil
		}
		return kernelimage.Embedded(), nil
	case 1:
		return kernelimage.NewLoader(md.GetArg(0)), nil
	}
	return kernelimage.Loader{}, fmt.Errorf("too many arguments for %s mode", md)
}

func run(md *modalflag.Modes) error {
	md.NewMode()

	configPath := md.AddString("config", "", "machine profile to use instead of the per-user file")
	capped := md.AddBool("cap", true, "pace the bus to the host clock")
	stats := md.AddBool("statsview", false, "run the runtime stats server")
	log := md.AddBool("log", false, "echo debugging log to stdout")
	prefVals := md.AddString("prefs", "", "preference values for this session (eg. hardware.randstate::true)")

	md.AdditionalHelp(kernelHelp)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	setEcho(*log)

	if *stats {
		launchStats(os.Stdout)
	}

	if *prefVals != "" {
		prefs.PushCommandLineStack(*prefVals)
	}

	prof, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	ldr, err := kernelLoader(md, prof)
	if err != nil {
		return err
	}
	if err := ldr.Load(); err != nil {
		return err
	}

	mia, err := hardware.NewMIA(environment.MainEmulation, nil)
	if err != nil {
		return err
	}

	if err := mia.Clk.SetRates(prof.BootClock, prof.RunClock); err != nil {
		return err
	}

	mia.Start()
	defer mia.End()

	if err := mia.AttachKernel(ldr); err != nil {
		return err
	}
	mia.StartBootSequence()

	drv := host.NewDriver(mia)
	if err := drv.Boot(); err != nil {
		return err
	}

	fmt.Printf("%s: %d bytes, entry point %#04x\n", ldr.ShortName(), drv.KernelSize(), drv.KernelEntry())
	fmt.Println(mia.String())

	// run until interrupted
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)
	defer signal.Stop(intChan)

	var pace *limiter.RateLimiter
	if *capped {
		rate := int(prof.RunClock) / hardware.CycleChunk
		if rate < 1 {
			rate = 1
		}
		pace, err = limiter.NewRateLimiter(rate)
		if err != nil {
			return err
		}
	}

	performanceBrake := 0
	err = mia.Run(func() (govern.State, error) {
		if pace != nil {
			pace.Wait()
		}

		performanceBrake++
		if performanceBrake >= hardware.PerformanceBrake {
			performanceBrake = 0

			select {
			case <-intChan:
				return govern.Ending, nil
			default:
			}
		}

		return govern.Running, nil
	})
	if err != nil {
		return err
	}

	// tidy up after the interrupt echo
	fmt.Printf("\r%s\n", mia.SM.Stats())

	return nil
}

func debug(md *modalflag.Modes) error {
	md.NewMode()

	configPath := md.AddString("config", "", "machine profile to use instead of the per-user file")
	termType := md.AddString("term", "COLOR", "terminal type to use in debug mode: COLOR, PLAIN")
	stats := md.AddBool("statsview", false, "run the runtime stats server")
	log := md.AddBool("log", false, "echo debugging log to stdout")
	prefVals := md.AddString("prefs", "", "preference values for this session (eg. hardware.randstate::true)")

	md.AdditionalHelp(kernelHelp)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	setEcho(*log)

	if *stats {
		launchStats(os.Stdout)
	}

	if *prefVals != "" {
		prefs.PushCommandLineStack(*prefVals)
	}

	prof, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	mia, err := hardware.NewMIA(environment.MainEmulation, nil)
	if err != nil {
		return err
	}

	if err := mia.Clk.SetRates(prof.BootClock, prof.RunClock); err != nil {
		return err
	}

	// the kernel image is attached but not booted. the BOOT command runs the
	// boot protocol from inside the monitor
	ldr, err := kernelLoader(md, prof)
	if err != nil {
		return err
	}
	if err := ldr.Load(); err != nil {
		return err
	}
	if err := mia.AttachKernel(ldr); err != nil {
		return err
	}

	var term terminal.Terminal
	switch strings.ToUpper(*termType) {
	default:
		fmt.Printf("! unknown terminal type (%s) defaulting to plain\n", *termType)
		fallthrough
	case "PLAIN":
		term = &plainterm.PlainTerminal{}
	case "COLOR":
		term = &colorterm.ColorTerminal{}
	}

	mon, err := monitor.NewMonitor(mia, prof, term)
	if err != nil {
		return err
	}

	return mon.Run()
}

func perform(md *modalflag.Modes) error {
	md.NewMode()

	configPath := md.AddString("config", "", "machine profile to use instead of the per-user file")
	duration := md.AddString("duration", "5s", "run duration (note: there is a 2s overhead)")
	profile := md.AddString("profile", "none", "profile the run: NONE, CPU, MEM, TRACE, ALL")
	capped := md.AddBool("cap", false, "pace the bus to the host clock")
	log := md.AddBool("log", false, "echo debugging log to stdout")

	md.AdditionalHelp(kernelHelp)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	setEcho(*log)

	prf, err := performance.ParseProfileString(*profile)
	if err != nil {
		return err
	}

	prof, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	ldr, err := kernelLoader(md, prof)
	if err != nil {
		return err
	}

	return performance.Check(md.Output, prf, ldr, *capped, *duration)
}

func validateBench(md *modalflag.Modes) error {
	md.NewMode()

	configPath := md.AddString("config", "", "machine profile to use instead of the per-user file")
	addr := md.AddString("addr", "", "bench adapter address (host:port), overriding the profile")
	verbose := md.AddBool("verbose", false, "output more detail")
	log := md.AddBool("log", false, "echo debugging log to stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	setEcho(*log)

	prof, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	if *addr != "" {
		prof.Bench.Addr = *addr
	}

	// a named bench adapter means hardware in the loop. otherwise the suite
	// runs against a loopback machine
	if prof.Bench.Addr != "" {
		port, err := regbridge.NewClient(prof.Bench.Addr, prof.BenchTimeout())
		if err != nil {
			return err
		}
		defer port.Close()

		return validate.Run(md.Output, port, *verbose)
	}

	mia, err := hardware.NewMIA(environment.MainEmulation, nil)
	if err != nil {
		return err
	}

	mia.Start()
	defer mia.End()

	return validate.Run(md.Output, validate.NewLoopback(host.NewDriver(mia)), *verbose)
}

func showVersion(md *modalflag.Modes) error {
	md.NewMode()

	revision := md.AddBool("v", false, "display revision information")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	ver, rev, _ := version.Version()
	fmt.Fprintf(md.Output, "%s (%s)\n", version.ApplicationName, ver)
	if *revision {
		fmt.Fprintln(md.Output, rev)
	}

	return nil
}
