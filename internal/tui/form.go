package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrCancelled is returned by Prompt when the user leaves the form.
var ErrCancelled = errors.New("prompt cancelled")

type formField int

const (
	fieldLat formField = iota
	fieldLon
	fieldZoom
	fieldKey
	numFields
)

var (
	fieldLabels       = [numFields]string{"latitude", "longitude", "zoom", "api key"}
	fieldPlaceholders = [numFields]string{"37.7749", "-122.4194", "e.g. 16", "Google Maps Platform key"}
)

// Values are the inputs collected by the form.
type Values struct {
	Lat    float64
	Lon    float64
	Zoom   int
	APIKey string
}

// Defaults pre-fill form fields. Empty strings leave a field blank.
type Defaults struct {
	Lat    string
	Lon    string
	Zoom   string
	APIKey string
}

// Form is the Bubbletea model asking for latitude, longitude, zoom and API key.
type Form struct {
	fields    [numFields]string
	focus     formField
	statusMsg string
	values    Values
	done      bool
	cancelled bool
	frame     int
}

// NewForm creates a form, focused on the first empty field.
func NewForm(d Defaults) Form {
	f := Form{}
	f.fields[fieldLat] = d.Lat
	f.fields[fieldLon] = d.Lon
	f.fields[fieldZoom] = d.Zoom
	f.fields[fieldKey] = d.APIKey
	for i := formField(0); i < numFields; i++ {
		if f.fields[i] == "" {
			f.focus = i
			break
		}
	}
	return f
}

func (f Form) Init() tea.Cmd {
	return shimmerTickCmd()
}

func (f Form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case shimmerTickMsg:
		f.frame++
		return f, shimmerTickCmd()

	case tea.KeyMsg:
		return f.updateKeys(msg)
	}
	return f, nil
}

func (f Form) updateKeys(msg tea.KeyMsg) (Form, tea.Cmd) {
	f.statusMsg = ""

	switch msg.String() {
	case "ctrl+c", "esc":
		f.cancelled = true
		return f, tea.Quit
	case "ctrl+s":
		return f.submit()
	case "tab", "down":
		f.focus = (f.focus + 1) % numFields
	case "shift+tab", "up":
		f.focus = (f.focus - 1 + numFields) % numFields
	case "enter":
		if f.focus == numFields-1 {
			return f.submit()
		}
		f.focus++
	case "backspace":
		p := &f.fields[f.focus]
		*p = editRune(*p, "backspace")
	case "ctrl+u":
		f.fields[f.focus] = ""
	default:
		if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
			f.fields[f.focus] = appendRunes(f.fields[f.focus], msg.Runes)
		}
	}
	return f, nil
}

// parse validates every field and returns the collected values.
// On failure it also returns the field to focus.
func (f Form) parse() (Values, formField, error) {
	var v Values
	var err error

	if v.Lat, err = strconv.ParseFloat(strings.TrimSpace(f.fields[fieldLat]), 64); err != nil {
		return v, fieldLat, errors.New("latitude must be a number")
	}
	if v.Lon, err = strconv.ParseFloat(strings.TrimSpace(f.fields[fieldLon]), 64); err != nil {
		return v, fieldLon, errors.New("longitude must be a number")
	}
	if v.Zoom, err = strconv.Atoi(strings.TrimSpace(f.fields[fieldZoom])); err != nil {
		return v, fieldZoom, errors.New("zoom must be a whole number")
	}
	v.APIKey = strings.TrimSpace(f.fields[fieldKey])
	if v.APIKey == "" {
		return v, fieldKey, errors.New("api key is required")
	}
	return v, 0, nil
}

func (f Form) submit() (Form, tea.Cmd) {
	v, bad, err := f.parse()
	if err != nil {
		f.statusMsg = err.Error()
		f.focus = bad
		return f, nil
	}
	f.values = v
	f.done = true
	return f, tea.Quit
}

// Result returns the submitted values. ok is false unless the form was submitted.
func (f Form) Result() (Values, bool) {
	return f.values, f.done && !f.cancelled
}

func (f Form) View() string {
	if f.done || f.cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n  " + renderShimmerLogo(f.frame) + "\n\n")

	for i := formField(0); i < numFields; i++ {
		value := f.fields[i]
		if i == fieldKey {
			value = mask(value)
		}
		cursor := " "
		style := metaStyle
		if i == f.focus {
			cursor = accentStyle.Render(">")
			style = selectedStyle
		}

		label := style.Render(fmt.Sprintf("%-9s", fieldLabels[i]))
		switch {
		case i == f.focus:
			value = selectedStyle.Render(value) + accentStyle.Render("█")
		case value == "":
			value = inputPlaceholderStyle.Render(fieldPlaceholders[i])
		default:
			value = dimStyle.Render(value)
		}
		fmt.Fprintf(&b, "  %s %s  %s\n", cursor, label, value)
	}

	b.WriteString("\n")
	if f.statusMsg != "" {
		b.WriteString("  " + errStyle.Render(f.statusMsg) + "\n\n")
	}
	b.WriteString("  " + strings.Join([]string{
		helpItem("tab", "next"),
		helpItem("enter", "confirm"),
		helpItem("ctrl+s", "fetch"),
		helpItem("esc", "cancel"),
	}, "  ") + "\n")
	return b.String()
}

// Prompt runs the form until it is submitted or cancelled.
func Prompt(d Defaults, opts ...tea.ProgramOption) (Values, error) {
	p := tea.NewProgram(NewForm(d), opts...)
	m, err := p.Run()
	if err != nil {
		return Values{}, fmt.Errorf("tui.Prompt: %w", err)
	}
	v, ok := m.(Form).Result()
	if !ok {
		return Values{}, ErrCancelled
	}
	return v, nil
}
