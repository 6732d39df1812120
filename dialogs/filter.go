package dialogs

import (
	"fmt"
	"strings"

	"github.com/andareed/siftly-changepoints/changepoints"
	"github.com/andareed/siftly-changepoints/logging"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type (
	FilterAppliedMsg  struct{ Filters changepoints.FilterState }
	FilterCanceledMsg struct{}
)

const (
	filterVariant = iota
	filterVersion
	filterTask
	filterTest
	filterMeasurement
	filterTriage
	filterThreadLevels
	filterPercentChange
	filterFieldCount
)

var filterLabels = [filterFieldCount]string{
	"Variant regex",
	"Version regex",
	"Task regex",
	"Test regex",
	"Measurement regex",
	"Triage regex",
	"Thread levels",
	"Percent change",
}

// Filter edits every server-side filter except the calculated-on window,
// which has its own drawer and is carried through untouched.
type Filter struct {
	inputs       [filterFieldCount]textinput.Model
	focus        int
	visible      bool
	calculatedOn string
	errMsg       string
}

func NewFilterDialog(f changepoints.FilterState) *Filter {
	d := &Filter{visible: true, calculatedOn: f.CalculatedOnWindow}
	values := [filterFieldCount]string{
		f.VariantRegex,
		f.VersionRegex,
		f.TaskRegex,
		f.TestRegex,
		f.MeasurementRegex,
		f.TriageStatusRegex,
		changepoints.FormatThreadLevels(f.ThreadLevels),
		changepoints.FormatPercentChangeWindows(f.PercentChangeWindows),
	}
	for i := range d.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 512
		ti.Width = 48
		ti.SetValue(values[i])
		d.inputs[i] = ti
	}
	d.inputs[filterThreadLevels].Placeholder = "1,2,4"
	d.inputs[filterPercentChange].Placeholder = "Major Regression; -10,10"
	d.setFocus(0)
	return d
}

func (d *Filter) Init() tea.Cmd { return textinput.Blink }

func (d *Filter) setFocus(i int) {
	d.focus = (i + filterFieldCount) % filterFieldCount
	for j := range d.inputs {
		if j == d.focus {
			d.inputs[j].Focus()
		} else {
			d.inputs[j].Blur()
		}
	}
}

// State parses the inputs back into a FilterState.
func (d *Filter) State() (changepoints.FilterState, error) {
	val := func(i int) string { return strings.TrimSpace(d.inputs[i].Value()) }

	levels, err := changepoints.ParseThreadLevels(val(filterThreadLevels))
	if err != nil {
		return changepoints.FilterState{}, err
	}
	windows, err := changepoints.ParsePercentChange(val(filterPercentChange))
	if err != nil {
		return changepoints.FilterState{}, err
	}
	return changepoints.FilterState{
		VariantRegex:         val(filterVariant),
		VersionRegex:         val(filterVersion),
		TaskRegex:            val(filterTask),
		TestRegex:            val(filterTest),
		MeasurementRegex:     val(filterMeasurement),
		TriageStatusRegex:    val(filterTriage),
		ThreadLevels:         levels,
		PercentChangeWindows: windows,
		CalculatedOnWindow:   d.calculatedOn,
	}, nil
}

func (d *Filter) Update(msg tea.Msg) (Dialog, tea.Cmd) {
	if !d.visible {
		return d, nil
	}
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "tab", "down":
			d.setFocus(d.focus + 1)
			return d, nil
		case "shift+tab", "up":
			d.setFocus(d.focus - 1)
			return d, nil
		case "ctrl+u":
			d.inputs[d.focus].SetValue("")
			return d, nil
		case "enter":
			f, err := d.State()
			if err != nil {
				d.errMsg = err.Error()
				return d, nil
			}
			logging.Infof("FilterDialog: applying %s", f.Summary())
			return d, func() tea.Msg { return FilterAppliedMsg{Filters: f} }
		case "esc":
			return d, func() tea.Msg { return FilterCanceledMsg{} }
		}
	}
	var cmd tea.Cmd
	d.inputs[d.focus], cmd = d.inputs[d.focus].Update(msg)
	return d, cmd
}

func (d *Filter) View() string {
	if !d.visible {
		return ""
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("252")).
		BorderBackground(lipgloss.Color("236")).
		Padding(1, 2).
		Width(72)
	label := lipgloss.NewStyle().Width(18)
	focused := label.Bold(true).Foreground(lipgloss.Color("#ff9f1c"))

	var lines []string
	for i, in := range d.inputs {
		l := label
		if i == d.focus {
			l = focused
		}
		lines = append(lines, l.Render(filterLabels[i])+" "+in.View())
	}
	if d.calculatedOn != "" {
		lines = append(lines, label.Render("Calculated on")+" "+d.calculatedOn+"  (t to edit)")
	}
	if d.errMsg != "" {
		lines = append(lines, "", lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5f5f")).Render("Error: "+d.errMsg))
	}

	help := lipgloss.NewStyle().
		Faint(true).
		Render("tab/↑/↓ move • ctrl+u clear field • enter apply • esc cancel")

	return box.Render(fmt.Sprintf("%s\n\n%s", strings.Join(lines, "\n"), help))
}

func (d *Filter) Show() {
	d.visible = true
	d.setFocus(d.focus)
}

func (d *Filter) Hide() {
	d.visible = false
	d.inputs[d.focus].Blur()
}

func (d *Filter) Focus() tea.Cmd { return d.inputs[d.focus].Focus() }
func (d *Filter) Blur()          { d.inputs[d.focus].Blur() }
func (d *Filter) IsVisible() bool { return d.visible }
