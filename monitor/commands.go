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

package monitor

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/softlatch/mia/hardware/bus"
	"github.com/softlatch/mia/hardware/irq"
	"github.com/softlatch/mia/hardware/memory/arena"
	"github.com/softlatch/mia/hardware/memory/cursor"
	"github.com/softlatch/mia/hardware/regmap"
	"github.com/softlatch/mia/logger"
	"github.com/softlatch/mia/monitor/script"
	"github.com/softlatch/mia/monitor/terminal"
	"github.com/softlatch/mia/regbridge"
	"github.com/softlatch/mia/validate"
)

// command is one entry in the monitor's command table. the template is a
// summary of the arguments, printed by HELP.
type command struct {
	name     string
	template string
	help     string
	handler  func(mon *Monitor, args []string) error
}

// the command table is populated by init() rather than by the var
// declaration. the HELP handler walks the table, which in the var form is
// an initialisation cycle.
var commands []command

func init() {
	commands = []command{
		{"ARENA", "address [length]", "Hex dump of arena memory", cmdArena},
		{"BOOT", "", "Run the host boot sequence against the adapter", cmdBoot},
		{"CURSOR", "index", "Display the cursor record for an index", cmdCursor},
		{"DMA", "[src dst count]", "Perform a block copy, or display the copy record", cmdDMA},
		{"DUMP", "", "Write a graph of the live machine to a dot file", cmdDump},
		{"EVAL", "expression", "Evaluate an expression. Register symbols are predefined", cmdEval},
		{"HELP", "[command]", "Lists commands and provides help for individual monitor commands", cmdHelp},
		{"IRQ", "", "Display the interrupt controller state", cmdIRQ},
		{"LOG", "[LAST n|CLEAR]", "Display the application log", cmdLog},
		{"PEEK", "register...", "Read registers through the host bus", cmdPeek},
		{"POKE", "register value", "Write a register through the host bus", cmdPoke},
		{"PREFS", "[SAVE|LOAD|RANDSTATE ON/OFF|DMAPACE n]", "Display or change preferences", cmdPrefs},
		{"QUIT", "", "Exits the monitor", cmdQuit},
		{"RESET", "", "Power cycle the adapter. The attached kernel image survives", cmdReset},
		{"SCRIPT", "[RECORD file|END|file]", "Record or play back a monitor script", cmdScript},
		{"STATUS", "", "Display the adapter status register, clock and bus statistics", cmdStatus},
		{"VALIDATE", "[address]", "Run the validation suite against the adapter or a bench device", cmdValidate},
		{"WINDOW", "[number]", "Select the register window used by the monitor", cmdWindow},
	}
}

func cmdHelp(mon *Monitor, args []string) error {
	if len(args) > 0 {
		keyword := strings.ToUpper(args[0])
		for _, c := range commands {
			if c.name == keyword {
				if c.template != "" {
					mon.printLine(terminal.StyleHelp, fmt.Sprintf("%s %s", c.name, c.template))
				} else {
					mon.printLine(terminal.StyleHelp, c.name)
				}
				mon.printLine(terminal.StyleHelp, c.help)
				return nil
			}
		}
		return fmt.Errorf("no help for %s", keyword)
	}

	for _, c := range commands {
		mon.printLine(terminal.StyleHelp, fmt.Sprintf("%-10s %s", c.name, c.help))
	}

	return nil
}

func cmdQuit(mon *Monitor, _ []string) error {
	mon.running = false
	return nil
}

func cmdBoot(mon *Monitor, _ []string) error {
	mon.mia.StartBootSequence()
	if err := mon.drv.Boot(); err != nil {
		return err
	}
	mon.printLine(terminal.StyleFeedback, "kernel loaded: %d bytes at %#04x",
		mon.drv.KernelSize(), mon.drv.KernelEntry())
	return nil
}

func cmdReset(mon *Monitor, _ []string) error {
	mon.mia.Reset()
	mon.printLine(terminal.StyleFeedback, "machine reset")
	return nil
}

func cmdStatus(mon *Monitor, _ []string) error {
	mon.printLine(terminal.StyleRegister, "%s", mon.mia.String())
	mon.printLine(terminal.StyleRegister, "bus: %s", mon.mia.SM.Stats())
	return nil
}

func cmdIRQ(mon *Monitor, _ []string) error {
	mon.printLine(terminal.StyleRegister, "%s / pin=%v",
		mon.mia.IRQ, mon.mia.Pin.Asserted())
	return nil
}

func cmdCursor(mon *Monitor, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("CURSOR requires a cursor index")
	}

	v, err := mon.evaluate(args[0])
	if err != nil {
		return err
	}
	if v < 0 || v >= cursor.NumCursors {
		return fmt.Errorf("index %d is out of range", v)
	}

	mon.printLine(terminal.StyleRegister, "%03d: %s", v, mon.mia.Mem.Cursor(uint8(v)))
	return nil
}

func cmdWindow(mon *Monitor, args []string) error {
	if len(args) == 0 {
		mon.printLine(terminal.StyleRegister, "W%d: %s",
			mon.window, mon.mia.Front.Window(mon.window))
		return nil
	}

	v, err := mon.evaluate(args[0])
	if err != nil {
		return err
	}
	if v < 0 || v >= regmap.NumWindows {
		return fmt.Errorf("window %d is out of range", v)
	}

	mon.window = int(v)
	return nil
}

// how long a monitor initiated copy is allowed to take before the DMA
// command gives up on it.
const copyPatience = 5 * time.Second

func cmdDMA(mon *Monitor, args []string) error {
	if len(args) == 0 {
		cfg := mon.mia.Mem.CopyConfig()
		src, dst := mon.mia.Mem.CopyAddresses(cfg)
		mon.printLine(terminal.StyleRegister, "copy record: idx %d (%#08x) to idx %d (%#08x), %d bytes",
			cfg.Src, src, cfg.Dst, dst, cfg.Count)
		mon.printLine(terminal.StyleRegister, "active=%v dropped=%d",
			mon.mia.DMA.Active(), mon.mia.Front.Drops())
		return nil
	}

	if len(args) != 3 {
		return fmt.Errorf("DMA requires a source index, a target index and a count")
	}

	var v [3]int64
	for i, a := range args {
		var err error
		v[i], err = mon.evaluate(a)
		if err != nil {
			return err
		}
	}
	if v[0] < 0 || v[0] >= cursor.NumCursors || v[1] < 0 || v[1] >= cursor.NumCursors {
		return fmt.Errorf("cursor indices must be between 0 and %d", cursor.NumCursors-1)
	}
	if v[2] < 0 || v[2] > 0xffff {
		return fmt.Errorf("count must be between 0 and 65535")
	}

	// clear any latched completion from an earlier copy or it would satisfy
	// the wait below before this copy has run
	mon.drv.WriteRegister(regmap.IRQCauseLow, irq.DMAComplete|irq.DMAError)

	base := uint8(mon.window) * regmap.WindowSpan
	mon.drv.WriteRegister(base+regmap.CfgFieldSelect, cursor.FldDMASource)
	mon.drv.WriteRegister(base+regmap.CfgData, uint8(v[0]))
	mon.drv.WriteRegister(base+regmap.CfgFieldSelect, cursor.FldDMATarget)
	mon.drv.WriteRegister(base+regmap.CfgData, uint8(v[1]))
	mon.drv.WriteRegister(base+regmap.CfgFieldSelect, cursor.FldDMACountLow)
	mon.drv.WriteRegister(base+regmap.CfgData, uint8(v[2]))
	mon.drv.WriteRegister(base+regmap.CfgFieldSelect, cursor.FldDMACountHigh)
	mon.drv.WriteRegister(base+regmap.CfgData, uint8(v[2]>>8))
	mon.drv.WriteRegister(regmap.SharedCommand, bus.CmdCopyBlock)

	deadline := time.Now().Add(copyPatience)
	for {
		cause := mon.drv.ReadRegister(regmap.IRQCauseLow)
		if cause&irq.DMAError == irq.DMAError {
			return fmt.Errorf("copy failed: %s", mon.mia.IRQ)
		}
		if cause&irq.DMAComplete == irq.DMAComplete {
			break // for loop
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("copy did not complete within %s", copyPatience)
		}
		time.Sleep(time.Millisecond)
	}

	mon.printLine(terminal.StyleFeedback, "copied %d bytes", v[2])
	return nil
}

func cmdPeek(mon *Monitor, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("PEEK requires at least one register address")
	}

	for _, a := range args {
		v, err := mon.evaluate(a)
		if err != nil {
			return err
		}
		if v < 0 || v > 0xff {
			return fmt.Errorf("%s is not a register address", a)
		}

		reg := uint8(v)
		mon.printLine(terminal.StyleRegister, "%s = %#02x",
			regmap.Label(reg), mon.drv.ReadRegister(reg))
	}

	return nil
}

func cmdPoke(mon *Monitor, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("POKE requires a register address and a value")
	}

	r, err := mon.evaluate(args[0])
	if err != nil {
		return err
	}
	if r < 0 || r > 0xff {
		return fmt.Errorf("%s is not a register address", args[0])
	}

	d, err := mon.evaluate(args[1])
	if err != nil {
		return err
	}
	if d < 0 || d > 0xff {
		return fmt.Errorf("%s does not fit in a register", args[1])
	}

	mon.drv.WriteRegister(uint8(r), uint8(d))
	mon.printLine(terminal.StyleFeedback, "%s <- %#02x", regmap.Label(uint8(r)), uint8(d))
	return nil
}

func cmdArena(mon *Monitor, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("ARENA requires an address and an optional length")
	}

	addr, err := mon.evaluate(args[0])
	if err != nil {
		return err
	}
	if addr < 0 || addr >= arena.Size {
		return fmt.Errorf("%s is outside the arena", args[0])
	}

	length := int64(0x40)
	if len(args) == 2 {
		length, err = mon.evaluate(args[1])
		if err != nil {
			return err
		}
		if length <= 0 {
			return fmt.Errorf("nothing to dump")
		}
	}

	mon.printLine(terminal.StyleRegister, "%s", mon.mia.Arena.Dump(uint32(addr), uint32(length)))
	return nil
}

func cmdEval(mon *Monitor, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("EVAL requires an expression")
	}

	expr := strings.Join(args, " ")
	v, err := mon.evaluate(expr)
	if err != nil {
		return err
	}

	mon.printLine(terminal.StyleRegister, "%s = %d (%#x)", expr, v, v)
	return nil
}

func cmdScript(mon *Monitor, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("SCRIPT requires a script file or the RECORD/END keywords")
	}

	switch strings.ToUpper(args[0]) {
	case "RECORD":
		if len(args) != 2 {
			return fmt.Errorf("SCRIPT RECORD requires a filename")
		}
		if err := mon.scribe.StartSession(args[1]); err != nil {
			return err
		}
		// rollback the SCRIPT RECORD line itself
		mon.scribe.Rollback()
		return nil

	case "END":
		// the SCRIPT END line is already buffered by the scribe and must not
		// end up in the recording
		mon.scribe.Rollback()
		return mon.scribe.EndSession()
	}

	// play back the named script. if a recording is underway the scribe
	// records the playback as this single SCRIPT command
	scr, err := script.RescribeScript(args[0])
	if err != nil {
		return err
	}

	mon.scribe.StartPlayback()
	defer mon.scribe.EndPlayback()

	return mon.inputLoop(scr)
}

func cmdLog(mon *Monitor, args []string) error {
	if len(args) == 0 {
		logger.Write(mon.printStyle(terminal.StyleLog))
		return nil
	}

	switch strings.ToUpper(args[0]) {
	case "LAST":
		if len(args) != 2 {
			return fmt.Errorf("LOG LAST requires a number of entries")
		}
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 0 {
			return fmt.Errorf("%s is not a number of entries", args[1])
		}
		logger.Tail(mon.printStyle(terminal.StyleLog), n)

	case "CLEAR":
		logger.Clear()

	default:
		return fmt.Errorf("LOG does not understand %s", args[0])
	}

	return nil
}

func cmdValidate(mon *Monitor, args []string) error {
	var port validate.Port

	if len(args) > 0 {
		// an address names a bench adapter carrying a real device. without
		// one the suite runs over the emulation loopback
		cl, err := regbridge.NewClient(args[0], mon.prof.BenchTimeout())
		if err != nil {
			return err
		}
		defer cl.Close()
		port = cl
	} else {
		port = validate.NewLoopback(mon.drv)
	}

	return validate.Run(mon.printStyle(terminal.StyleFeedback), port, true)
}

func cmdPrefs(mon *Monitor, args []string) error {
	prf := mon.mia.Env.Prefs

	if len(args) == 0 {
		mon.printLine(terminal.StyleFeedback, "%s", prf)
		return nil
	}

	switch strings.ToUpper(args[0]) {
	case "SAVE":
		return prf.Save()

	case "LOAD":
		return prf.Load()

	case "RANDSTATE":
		if len(args) != 2 {
			return fmt.Errorf("PREFS RANDSTATE requires ON or OFF")
		}
		switch strings.ToUpper(args[1]) {
		case "ON":
			_ = prf.RandomState.Set(true)
		case "OFF":
			_ = prf.RandomState.Set(false)
		default:
			return fmt.Errorf("PREFS RANDSTATE requires ON or OFF")
		}
		mon.printLine(terminal.StyleFeedback, "random state takes effect at the next reset")

	case "DMAPACE":
		if len(args) != 2 {
			return fmt.Errorf("PREFS DMAPACE requires a pace in nanoseconds")
		}
		v, err := mon.evaluate(args[1])
		if err != nil {
			return err
		}
		if v < 0 {
			return fmt.Errorf("pace cannot be negative")
		}
		_ = prf.DMAPace.Set(int(v))
		mon.mia.DMA.SetPace(time.Duration(v) * time.Nanosecond)

	default:
		return fmt.Errorf("PREFS does not understand %s", args[0])
	}

	return nil
}
