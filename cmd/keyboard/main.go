// Command keyboard simulates the two-half keyboard of spec §1-§6 on the
// host: a scanning-only half and a USB-connected half, joined by an
// io.Pipe standing in for the 115,200 bps half-link UART (§4.4).
//
// Grounded on the teacher's flag-driven bring-up pattern
// (cmd/emulator/main.go): flags select matrix geometry and logging, then
// a handful of constructors wire everything before the run loop starts.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"quickdraw/internal/action"
	"quickdraw/internal/halflink"
	"quickdraw/internal/halt"
	"quickdraw/internal/keyboard"
	"quickdraw/internal/keycode"
	"quickdraw/internal/layout"
	"quickdraw/internal/obslog"
)

func main() {
	// Override the default panic: a CLI harness reports the reason and
	// exits cleanly instead of unwinding a stack no one will read.
	halt.Halt = func(reason string) {
		fmt.Fprintf(os.Stderr, "quickdraw: %s\n", reason)
		os.Exit(1)
	}

	rows := flag.Int("rows", 1, "rows per half")
	colsPerHalf := flag.Int("cols", 2, "columns per half")
	scanHz := flag.Uint64("scan-hz", 1000, "full matrix scans per second")
	tickHz := flag.Uint64("tick-hz", 1000000, "simulated tick rate (ticks per second)")
	stableWindow := flag.Uint64("stable-window", 75, "debouncer stable window, in ticks")
	enableLogging := flag.Bool("log", false, "enable obslog diagnostics to stderr")
	ticks := flag.Uint64("ticks", 200000, "number of ticks to simulate before exiting")
	flag.Parse()

	if *rows <= 0 || *rows > 8 || *colsPerHalf <= 0 || *colsPerHalf > 8 {
		halt.Halt("rows and cols must each be in 1..8")
	}

	var logger *obslog.Logger
	if *enableLogging {
		logger = obslog.NewLogger(10000)
		logger.SetComponentEnabled(obslog.ComponentScan, true)
		logger.SetComponentEnabled(obslog.ComponentDebounce, true)
		logger.SetComponentEnabled(obslog.ComponentLayout, true)
		logger.SetComponentEnabled(obslog.ComponentLink, true)
		logger.SetComponentEnabled(obslog.ComponentHID, true)
		logger.SetComponentEnabled(obslog.ComponentSystem, true)
	}

	// The scanning-only half never has a key actually closed in this
	// bare-bones simulator; a real harness would wire Probe to a
	// keyboard-state source (see cmd/matrixviz).
	noKeyProbe := func(uint8) uint8 { return 0 }

	remoteHalf, err := keyboard.NewHalf(uint8(*rows), uint8(*colsPerHalf), *scanHz, *tickHz, noKeyProbe, *stableWindow, 0)
	if err != nil {
		halt.Halt(fmt.Sprintf("remote half: %v", err))
	}
	localHalf, err := keyboard.NewHalf(uint8(*rows), uint8(*colsPerHalf), *scanHz, *tickHz, noKeyProbe, *stableWindow, uint8(*colsPerHalf))
	if err != nil {
		halt.Halt(fmt.Sprintf("local half: %v", err))
	}

	table, err := layout.NewTable(1, uint8(*rows), uint8(2*(*colsPerHalf)))
	if err != nil {
		halt.Halt(fmt.Sprintf("layout table: %v", err))
	}
	table.Set(0, 0, 0, action.KC(keycode.A))
	if *colsPerHalf > 1 {
		table.Set(0, 0, 1, action.KC(keycode.B))
	}

	pr, pw := io.Pipe()
	receiver := halflink.NewReceiver(pr)
	kb := keyboard.New(localHalf, table, 0, logger, receiver)

	remoteErrs := make(chan error, 1)
	go pumpRemoteHalf(remoteHalf, pw, uint64(*ticks), remoteErrs)

	linkErrs := make(chan error, 1)
	go func() {
		for i := uint64(0); i < *ticks; i++ {
			if _, _, err := kb.PumpRemote(i, uint8(*colsPerHalf)); err != nil {
				if err == io.EOF {
					return
				}
				linkErrs <- err
				return
			}
		}
	}()

	var lastReport [8]byte
	for i := uint64(0); i < *ticks; i++ {
		select {
		case err := <-remoteErrs:
			halt.Halt(fmt.Sprintf("scanning half halted: %v", err))
		case err := <-linkErrs:
			halt.Halt(fmt.Sprintf("half-link corrupted, halting: %v", err))
		default:
		}
		r, changed := kb.StepLocal(i)
		if changed {
			lastReport = r
		}
	}
	pw.Close()
	fmt.Printf("quickdraw: final HID report: % X\n", lastReport)
}

// pumpRemoteHalf steps the scanning-only half for the simulated run and
// relays every emitted event across w as packed WireFrames.
func pumpRemoteHalf(half *keyboard.Half, w io.WriteCloser, ticks uint64, errs chan<- error) {
	defer w.Close()
	sender := halflink.NewSender(w)
	for i := uint64(0); i < ticks; i++ {
		for _, e := range half.Step(nil) {
			if err := sender.Send(halflink.Event{Row: e.Coord.Row, Col: e.Coord.Col, Press: e.Press}); err != nil {
				errs <- err
				return
			}
		}
	}
}
