// Command matrixviz is a debug harness that drives a simulated matrix
// probe from the host keyboard's actual scancode state (via SDL2) and
// renders live scan/debounce/layout/HID state in a Fyne window (via
// internal/probe). It is the "attached debug probe" of spec §6 made
// interactive.
//
// Grounded on the teacher's internal/ui/fyne_ui.go: SDL2 initialized
// for event pumping and GetKeyboardState, a fixed-timestep update loop
// running in its own goroutine, UI mutations marshaled back onto the
// Fyne thread via fyne.Do, and cmd/emulator/main.go's flag-driven
// bring-up.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"quickdraw/internal/action"
	"quickdraw/internal/halt"
	"quickdraw/internal/keyboard"
	"quickdraw/internal/keycode"
	"quickdraw/internal/layout"
	"quickdraw/internal/obslog"
	"quickdraw/internal/probe"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/veandco/go-sdl2/sdl"
)

// scancodeGrid maps each matrix cell to the host key that stands in for
// it. Only the first 4 columns of a 2-row matrix are wired by default;
// extend as needed for a larger demo layout.
var scancodeGrid = [][]sdl.Scancode{
	{sdl.SCANCODE_Q, sdl.SCANCODE_W, sdl.SCANCODE_E, sdl.SCANCODE_R},
	{sdl.SCANCODE_A, sdl.SCANCODE_S, sdl.SCANCODE_D, sdl.SCANCODE_F},
}

func main() {
	halt.Halt = func(reason string) {
		fmt.Fprintf(os.Stderr, "matrixviz: %s\n", reason)
		os.Exit(1)
	}

	rows := flag.Int("rows", 2, "rows in the demo matrix")
	cols := flag.Int("cols", 4, "columns in the demo matrix")
	scanHz := flag.Uint64("scan-hz", 1000, "full matrix scans per second")
	stableWindow := flag.Uint64("stable-window", 75, "debouncer stable window, in ticks")
	flag.Parse()

	if *rows <= 0 || *rows > len(scancodeGrid) || *cols <= 0 || *cols > len(scancodeGrid[0]) {
		halt.Halt(fmt.Sprintf("rows must be 1..%d and cols 1..%d for the built-in scancode grid",
			len(scancodeGrid), len(scancodeGrid[0])))
	}

	if err := sdl.Init(sdl.INIT_EVENTS | sdl.INIT_VIDEO); err != nil {
		halt.Halt(fmt.Sprintf("sdl init: %v", err))
	}
	defer sdl.Quit()

	const ticksPerSecond = uint64(1000000)
	probeFn := func(col uint8) uint8 {
		state := sdl.GetKeyboardState()
		if state == nil {
			return 0
		}
		var bits uint8
		for row := 0; row < *rows; row++ {
			code := scancodeGrid[row][col]
			if state[code] != 0 {
				bits |= 1 << uint(row)
			}
		}
		return bits
	}

	half, err := keyboard.NewHalf(uint8(*rows), uint8(*cols), *scanHz, ticksPerSecond, probeFn, *stableWindow, 0)
	if err != nil {
		halt.Halt(fmt.Sprintf("%v", err))
	}

	table, err := layout.NewTable(1, uint8(*rows), uint8(*cols))
	if err != nil {
		halt.Halt(fmt.Sprintf("%v", err))
	}
	demoKeys := []keycode.Keycode{keycode.Q, keycode.W, keycode.E, keycode.R, keycode.A, keycode.S, keycode.D, keycode.F}
	i := 0
	for r := 0; r < *rows; r++ {
		for c := 0; c < *cols; c++ {
			if i < len(demoKeys) {
				table.Set(0, uint8(r), uint8(c), action.KC(demoKeys[i]))
				i++
			}
		}
	}

	logger := obslog.NewLogger(10000)
	logger.SetComponentEnabled(obslog.ComponentScan, true)
	logger.SetComponentEnabled(obslog.ComponentDebounce, true)
	logger.SetComponentEnabled(obslog.ComponentLayout, true)
	logger.SetComponentEnabled(obslog.ComponentHID, true)

	kb := keyboard.New(half, table, 0, logger, nil)

	var lastReport [8]byte
	fyneApp := app.NewWithID("com.quickdraw.matrixviz")
	window := fyneApp.NewWindow("quickdraw matrix probe")

	view := probe.New(logger, half.Ring, func() [8]byte { return lastReport }, window)
	window.SetContent(view.Container)
	window.Resize(window.Canvas().Size())

	running := true
	window.SetOnClosed(func() { running = false })

	go func() {
		// One loop iteration is one scan-clock tick. The half's clock was
		// built for ticksPerSecond, so one column slot spans
		// ticksPerSecond/(scanHz*cols) iterations and, at this loop rate,
		// the wall-clock scan rate is below -scan-hz.
		tickHz := *scanHz * uint64(*cols) * 2
		ticker := time.NewTicker(time.Second / time.Duration(tickHz))
		defer ticker.Stop()
		var tick uint64
		refreshEvery := 0
		for running {
			<-ticker.C
			sdl.PumpEvents()
			r, changed := kb.StepLocal(tick)
			if changed {
				lastReport = r
			}
			tick++
			refreshEvery++
			if refreshEvery >= int(tickHz/30) {
				refreshEvery = 0
				fyne.Do(view.Refresh)
			}
		}
	}()

	window.ShowAndRun()
}
