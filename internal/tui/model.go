// Package tui is the terminal collaborator of the signup demo: it turns key
// presses into field changes and renders the pipeline outputs.
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rivo/uniseg"

	"github.com/zoobzio/tether"
	"github.com/zoobzio/tether/internal/config"
)

// Status lines shown after the OK button is pressed.
const (
	StatusUnbound        = "OK!"
	StatusAlreadyUnbound = "Already unbound."
)

const debugLines = 4

// Focus targets, in tab order.
const (
	focusUsername = iota
	focusEmail
	focusPassword
	focusConfirmation
	focusButton
	focusCount
)

var labels = [focusButton]string{"Username", "Email", "Password", "Confirm"}

// Screen holds what the pipeline sinks write. It is shared by every copy of
// the Model.
type Screen struct {
	Message       string
	ButtonEnabled bool
	Status        string
	Combined      []tether.FormState
}

// Model is the Bubble Tea model of the sign-up form.
type Model struct {
	ctx      context.Context
	cfg      config.Config
	sources  [focusButton]*tether.ValueSource
	texts    [focusButton]string
	focus    int
	screen   *Screen
	pipeline *tether.Pipeline
	styles   styles
}

type styles struct {
	title    lipgloss.Style
	label    lipgloss.Style
	focused  lipgloss.Style
	message  lipgloss.Style
	button   lipgloss.Style
	disabled lipgloss.Style
	frame    lipgloss.Style
	debug    lipgloss.Style
}

func newStyles(ui config.UIConfig) styles {
	accent := lipgloss.Color(ui.Accent)
	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(accent),
		label:    lipgloss.NewStyle().Width(10),
		focused:  lipgloss.NewStyle().Width(10).Bold(true).Foreground(accent),
		message:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87")),
		button:   lipgloss.NewStyle().Bold(true).Padding(0, 2).Background(accent).Foreground(lipgloss.Color("#FFFFFF")),
		disabled: lipgloss.NewStyle().Padding(0, 2).Foreground(lipgloss.Color("#626262")),
		frame:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(accent).Padding(1, 2).Width(ui.Width),
		debug:    lipgloss.NewStyle().Faint(true),
	}
}

// New creates the model and starts its pipeline. The screen is put in its
// initial state (no message, button disabled) before the pipeline is bound.
// A nil metrics provider disables metrics.
func New(ctx context.Context, cfg config.Config, metrics tether.MetricsProvider) (Model, error) {
	m := Model{
		ctx:    ctx,
		cfg:    cfg,
		screen: &Screen{Message: "", ButtonEnabled: false},
		styles: newStyles(cfg.UI),
	}
	for i, name := range []string{"username", "email", "password", "password_confirmation"} {
		m.sources[i] = tether.NewValueSource(name)
	}

	screen := m.screen
	m.pipeline = tether.NewPipeline(
		tether.Inputs{
			Username:             m.sources[focusUsername],
			Email:                m.sources[focusEmail],
			Password:             m.sources[focusPassword],
			PasswordConfirmation: m.sources[focusConfirmation],
		},
		tether.Outputs{
			Message:       func(msg string) { screen.Message = msg },
			SubmitEnabled: func(ok bool) { screen.ButtonEnabled = ok },
		},
	).Metrics(metrics)
	if cfg.Debug {
		m.pipeline.OnCombined(func(f tether.FormState) {
			screen.Combined = append(screen.Combined, f)
			if len(screen.Combined) > debugLines {
				screen.Combined = screen.Combined[len(screen.Combined)-debugLines:]
			}
		})
	}

	if err := m.pipeline.Start(ctx); err != nil {
		return Model{}, fmt.Errorf("start pipeline: %w", err)
	}
	return m, nil
}

// Screen returns the shared screen state.
func (m Model) Screen() *Screen {
	return m.screen
}

// Pipeline returns the model's pipeline.
func (m Model) Pipeline() *tether.Pipeline {
	return m.pipeline
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "esc":
		m.pipeline.Close(m.ctx)
		return m, tea.Quit
	case "tab", "down":
		m.focus = (m.focus + 1) % focusCount
		return m, nil
	case "shift+tab", "up":
		m.focus = (m.focus + focusCount - 1) % focusCount
		return m, nil
	case "enter":
		if m.focus == focusButton {
			m.press()
		} else {
			m.focus++
		}
		return m, nil
	case "backspace":
		if m.focus < focusButton && m.texts[m.focus] != "" {
			m.edit(dropLastCharacter(m.texts[m.focus]))
		}
		return m, nil
	}

	if m.focus < focusButton {
		switch key.Type {
		case tea.KeyRunes:
			m.edit(m.texts[m.focus] + string(key.Runes))
		case tea.KeySpace:
			m.edit(m.texts[m.focus] + " ")
		}
	}
	return m, nil
}

// edit replaces the focused field's text and reports the change.
func (m *Model) edit(text string) {
	m.texts[m.focus] = text
	m.sources[m.focus].SetText(text)
}

// dropLastCharacter removes the last user-perceived character of s.
func dropLastCharacter(s string) string {
	g := uniseg.NewGraphemes(s)
	last := 0
	for g.Next() {
		last, _ = g.Positions()
	}
	return s[:last]
}

// press handles an activation of the OK button. A disabled button ignores it.
func (m *Model) press() {
	if !m.screen.ButtonEnabled {
		return
	}
	outcome, err := m.pipeline.Unbind(m.ctx)
	switch {
	case err != nil:
		m.screen.Status = err.Error()
	case outcome == tether.OutcomeUnbound:
		m.screen.Status = StatusUnbound
	default:
		m.screen.Status = StatusAlreadyUnbound
	}
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.styles.title.Render(m.cfg.UI.Title))
	b.WriteString("\n\n")

	for i, label := range labels {
		style := m.styles.label
		cursor := "  "
		if m.focus == i {
			style = m.styles.focused
			cursor = "> "
		}
		text := m.texts[i]
		if m.cfg.UI.MaskPasswords && (i == focusPassword || i == focusConfirmation) {
			text = strings.Repeat("•", tether.CharacterCount(text))
		}
		b.WriteString(cursor + style.Render(label) + text + "\n")
	}

	b.WriteString("\n" + m.styles.message.Render(m.screen.Message) + "\n\n")

	button := m.styles.disabled.Render("OK")
	if m.screen.ButtonEnabled {
		button = m.styles.button.Render("OK")
	}
	if m.focus == focusButton {
		button = "> " + button
	} else {
		button = "  " + button
	}
	b.WriteString(button)
	if m.screen.Status != "" {
		b.WriteString("  " + m.screen.Status)
	}
	b.WriteString("\n")

	if m.cfg.Debug {
		b.WriteString("\n")
		for _, f := range m.screen.Combined {
			b.WriteString(m.styles.debug.Render(fmt.Sprintf("combined = (%q, %q, %d chars, %d chars)",
				f.Username, f.Email, tether.CharacterCount(f.Password), tether.CharacterCount(f.PasswordConfirmation))))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n" + m.styles.debug.Render(fmt.Sprintf("state: %s  ·  tab: next  ·  enter: press  ·  esc: quit", m.pipeline.State())))
	return m.styles.frame.Render(b.String())
}
