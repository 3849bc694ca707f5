// Package ui draws the live view of `tally eval` over several files.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"tally/internal/diag"
	"tally/internal/driver"
)

type rowState uint8

const (
	rowQueued rowState = iota
	rowLoading
	rowEvaluating
	rowDone
	rowFailed
)

var rowLabels = [...]string{"queued", "loading", "evaluating", "done", "failed"}

var rowColors = [...]lipgloss.Color{"7", "6", "6", "2", "1"}

// weight is the share of a file's work a state stands for on the bar.
var rowWeights = [...]float64{0, 0.25, 0.5, 1, 1}

// row is one input file.
type row struct {
	path    string
	state   rowState
	values  int
	code    string // ID диагностики, остановившей файл
	elapsed time.Duration
}

type evalView struct {
	title   string
	events  <-chan driver.Event
	spin    spinner.Model
	bar     progress.Model
	rows    []row
	byPath  map[string]int
	width   int
	stopped bool
}

type eventMsg driver.Event
type closedMsg struct{}

// NewEvalView returns a Bubble Tea model with one row per file, fed by
// driver progress events. It quits once events is closed.
func NewEvalView(title string, files []string, events <-chan driver.Event) tea.Model {
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 76

	v := &evalView{
		title:  title,
		events: events,
		spin:   spin,
		bar:    bar,
		rows:   make([]row, len(files)),
		byPath: make(map[string]int, len(files)),
		width:  80,
	}
	for i, f := range files {
		v.rows[i] = row{path: f}
		v.byPath[f] = i
	}
	return v
}

func (v *evalView) Init() tea.Cmd {
	return tea.Batch(v.spin.Tick, v.next())
}

func (v *evalView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return v, tea.Batch(v.apply(driver.Event(msg)), v.next())
	case closedMsg:
		v.stopped = true
		return v, tea.Quit
	case spinner.TickMsg:
		if v.stopped {
			return v, nil
		}
		var cmd tea.Cmd
		v.spin, cmd = v.spin.Update(msg)
		return v, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			v.width = msg.Width
			v.bar.Width = max(msg.Width-4, 10)
		}
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return v, tea.Quit
		}
	case progress.FrameMsg:
		m, cmd := v.bar.Update(msg)
		v.bar = m.(progress.Model)
		return v, cmd
	}
	return v, nil
}

// next waits for the following driver event.
func (v *evalView) next() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-v.events
		if !ok {
			return closedMsg{}
		}
		return eventMsg(ev)
	}
}

func (v *evalView) apply(ev driver.Event) tea.Cmd {
	i, ok := v.byPath[ev.File]
	if !ok {
		return nil
	}
	r := &v.rows[i]
	switch ev.Status {
	case driver.StatusQueued:
		r.state = rowQueued
	case driver.StatusWorking:
		r.state = rowEvaluating
		if ev.Stage == driver.StageLoad {
			r.state = rowLoading
		}
	case driver.StatusDone:
		r.state = rowDone
	case driver.StatusError:
		r.state = rowFailed
		r.code = "error"
		if de, ok := diag.AsError(ev.Err); ok {
			r.code = de.Diag.Code.ID()
		}
	}
	r.values = max(r.values, ev.Items)
	if ev.Elapsed > 0 {
		r.elapsed = ev.Elapsed
	}
	return v.bar.SetPercent(v.fraction())
}

func (v *evalView) fraction() float64 {
	if len(v.rows) == 0 {
		return 0
	}
	var sum float64
	for _, r := range v.rows {
		sum += rowWeights[r.state]
	}
	return sum / float64(len(v.rows))
}

func (v *evalView) totals() (finished, failed, values int) {
	for _, r := range v.rows {
		switch r.state {
		case rowDone:
			finished++
		case rowFailed:
			finished++
			failed++
		}
		values += r.values
	}
	return finished, failed, values
}

func (v *evalView) View() string {
	if len(v.rows) == 0 {
		return ""
	}
	finished, failed, values := v.totals()
	header := fmt.Sprintf("%s %d/%d files, %s", v.title, finished, len(v.rows), plural(values, "value"))
	if failed > 0 {
		header += fmt.Sprintf(", %d failed", failed)
	}
	if v.stopped {
		header = "done: " + header
	} else {
		header = v.spin.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(header))
	b.WriteString("\n\n")

	pathWidth := max(v.width-40, 20)
	faint := lipgloss.NewStyle().Faint(true)
	for _, r := range v.rows {
		label := lipgloss.NewStyle().Foreground(rowColors[r.state]).Render(fmt.Sprintf("%-10s", rowLabels[r.state]))
		fmt.Fprintf(&b, "  %s %s", label, runewidth.FillRight(truncate(r.path, pathWidth), pathWidth))
		switch r.state {
		case rowDone:
			b.WriteString("  " + plural(r.values, "value"))
		case rowFailed:
			b.WriteString("  " + r.code)
			if r.values > 0 {
				b.WriteString(" after " + plural(r.values, "value"))
			}
		}
		if r.elapsed > 0 {
			b.WriteString("  " + faint.Render(r.elapsed.Round(time.Microsecond).String()))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if v.stopped {
		b.WriteString(v.bar.ViewAs(v.fraction()))
	} else {
		b.WriteString(v.bar.View())
	}
	b.WriteString("\n")
	return b.String()
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}

// truncate cuts value to width display columns, keeping the tail: the file
// name matters more than the directory.
func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.TruncateLeft(value, runewidth.StringWidth(value)-width, "")
	}
	return runewidth.TruncateLeft(value, runewidth.StringWidth(value)-width+3, "...")
}
