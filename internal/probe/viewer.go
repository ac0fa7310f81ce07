// Package probe provides a host-side live viewer standing in for the
// "attached debug probe" of spec §6: a Fyne panel that renders the
// obslog diagnostic stream, the last N event log ring records, and the
// current HID report, for use by the cmd/matrixviz harness.
//
// Grounded directly on the teacher's
// internal/ui/panels/log_viewer_fyne.go: same scrollable
// widget.NewMultiLineEntry log view, the same component-filter-checkbox
// + level-select + copy/save-button layout, adapted from the game
// console's CPU/PPU/APU/Memory/Input components to this domain's
// Scan/Debounce/Layout/Link/HID components and extended with an event
// log ring table and a HID report readout the teacher's viewer has no
// equivalent of.
package probe

import (
	"fmt"
	"os"
	"strings"
	"time"

	"quickdraw/internal/eventlog"
	"quickdraw/internal/hidreport"
	"quickdraw/internal/obslog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// Viewer is the live panel plus its periodic refresh function.
type Viewer struct {
	Container *fyne.Container
	Refresh   func()
}

// New builds a Viewer reading logger for the diagnostic stream and ring
// for the event log, with lastReport returning the most recently
// assembled HID report for display.
func New(logger *obslog.Logger, ring *eventlog.Ring, lastReport func() hidreport.Report, window fyne.Window) *Viewer {
	logText := widget.NewMultiLineEntry()
	logText.Wrapping = fyne.TextWrapOff
	logText.Disable()
	logScroll := container.NewScroll(logText)
	logScroll.SetMinSize(fyne.NewSize(600, 300))

	scanCheck := widget.NewCheck("Scan", nil)
	debounceCheck := widget.NewCheck("Debounce", nil)
	layoutCheck := widget.NewCheck("Layout", nil)
	linkCheck := widget.NewCheck("Link", nil)
	hidCheck := widget.NewCheck("HID", nil)
	sysCheck := widget.NewCheck("System", nil)
	for _, c := range []*widget.Check{scanCheck, debounceCheck, layoutCheck, linkCheck, hidCheck, sysCheck} {
		c.SetChecked(true)
	}

	levelSelect := widget.NewSelect([]string{"None", "Error", "Warning", "Info", "Debug", "Trace"}, nil)
	levelSelect.SetSelected("Info")

	autoScrollCheck := widget.NewCheck("Auto-scroll", nil)
	autoScrollCheck.SetChecked(true)

	copyBtn := widget.NewButton("Copy All", func() {
		if window != nil && logText.Text != "" {
			window.Clipboard().SetContent(logText.Text)
		}
	})
	saveBtn := widget.NewButton("Save Logs", func() {
		filename := fmt.Sprintf("quickdraw_logs_%s.txt", time.Now().Format("20060102_150405"))
		content := logText.Text
		if content == "" {
			content = "No log entries"
		}
		if err := os.WriteFile(filename, []byte(content), 0644); err != nil {
			fmt.Printf("probe: error saving logs: %v\n", err)
		}
	})

	filterRow := container.NewHBox(
		widget.NewLabel("Components:"), scanCheck, debounceCheck, layoutCheck, linkCheck, hidCheck, sysCheck,
		widget.NewLabel("Level:"), levelSelect, autoScrollCheck, copyBtn, saveBtn,
	)

	ringText := widget.NewMultiLineEntry()
	ringText.Wrapping = fyne.TextWrapOff
	ringText.Disable()
	ringScroll := container.NewScroll(ringText)
	ringScroll.SetMinSize(fyne.NewSize(600, 150))

	reportLabel := widget.NewLabel("HID report: (none yet)")

	root := container.NewVBox(
		filterRow,
		logScroll,
		widget.NewLabel("Event log (most recent first):"),
		ringScroll,
		reportLabel,
	)

	componentEnabled := func(c obslog.Component) bool {
		switch c {
		case obslog.ComponentScan:
			return scanCheck.Checked
		case obslog.ComponentDebounce:
			return debounceCheck.Checked
		case obslog.ComponentLayout:
			return layoutCheck.Checked
		case obslog.ComponentLink:
			return linkCheck.Checked
		case obslog.ComponentHID:
			return hidCheck.Checked
		case obslog.ComponentSystem:
			return sysCheck.Checked
		default:
			return true
		}
	}

	refresh := func() {
		var b strings.Builder
		for _, e := range logger.GetRecentEntries(500) {
			if !componentEnabled(e.Component) {
				continue
			}
			b.WriteString(e.Format())
			b.WriteByte('\n')
		}
		logText.SetText(b.String())
		if autoScrollCheck.Checked {
			logText.CursorRow = strings.Count(logText.Text, "\n")
		}

		var rb strings.Builder
		records := ring.Chronological()
		for i := len(records) - 1; i >= 0 && len(records)-1-i < 64; i-- {
			r := records[i]
			rb.WriteString(fmt.Sprintf("t=%d (%d,%d) deb=%d ev=%d\n", r.Timestamp, r.Row, r.Col, r.Deb, r.Event))
		}
		ringText.SetText(rb.String())

		if lastReport != nil {
			reportLabel.SetText(fmt.Sprintf("HID report: % X", lastReport()))
		}
	}

	return &Viewer{Container: root, Refresh: refresh}
}
