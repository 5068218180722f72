package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fstophq/fstop-cli/pkg/connector"
	"github.com/fstophq/fstop-cli/pkg/models"
)

// connectionState is the three-state connection tester: idle, testing, or
// showing a result. Results clear themselves after the display window; the
// seq stamp keeps a clear armed for an earlier probe from wiping a newer
// result.
type connectionState struct {
	testing bool
	success *bool
	message string
	seq     int
}

// aiTab selects the auto-tagging provider and probes its endpoint. All of
// its settings apply immediately.
type aiTab struct {
	controller *settingsController
	backend    Backend

	cursor  int
	editing bool
	input   textinput.Model

	conn       connectionState
	clearAfter time.Duration
	modelList  []string
	modelIdx   int
}

const (
	aiFieldProvider = iota
	aiFieldAddress
	aiFieldAPIKey
	aiFieldModel
	aiFieldAutoTag
	aiFieldTest
	aiFieldCount
)

var providers = []string{models.ProviderNone, models.ProviderOpenAI, models.ProviderLocal}

func newAITab(controller *settingsController, backend Backend) *aiTab {
	input := textinput.New()
	input.CharLimit = 255
	input.Width = 40
	return &aiTab{
		controller: controller,
		backend:    backend,
		input:      input,
		clearAfter: statusClearAfter,
	}
}

func (t *aiTab) Editing() bool {
	return t.editing
}

func (t *aiTab) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return t.handleKey(msg)
	case connectionResultMsg:
		return t.handleResult(msg)
	case connectionClearMsg:
		if msg.seq == t.conn.seq && !t.conn.testing {
			t.conn = connectionState{seq: t.conn.seq}
		}
	case modelsListedMsg:
		if msg.err == nil {
			t.modelList = msg.models
			t.modelIdx = 0
		}
	}
	return nil
}

func (t *aiTab) handleKey(msg tea.KeyMsg) tea.Cmd {
	if t.editing {
		switch msg.String() {
		case "enter":
			value := strings.TrimSpace(t.input.Value())
			field := t.cursor
			t.stopEditing()
			switch field {
			case aiFieldAddress:
				return t.controller.Apply(models.KeyConnectorAddress, value)
			case aiFieldAPIKey:
				return t.controller.Apply(models.KeyAPIKey, value)
			case aiFieldModel:
				return t.controller.Apply(models.KeyAIModel, value)
			}
			return nil
		case "esc":
			t.stopEditing()
			return nil
		}
		var cmd tea.Cmd
		t.input, cmd = t.input.Update(msg)
		return cmd
	}

	switch msg.String() {
	case "up", "k":
		if t.cursor > 0 {
			t.cursor--
		}
	case "down", "j":
		if t.cursor < aiFieldCount-1 {
			t.cursor++
		}
	case "m":
		return t.loadModels()
	case "left", "right":
		if t.cursor == aiFieldModel && len(t.modelList) > 0 {
			t.cycleModel(msg.String() == "right")
			return t.controller.Apply(models.KeyAIModel, t.modelList[t.modelIdx])
		}
	case "enter", " ":
		return t.activate()
	}
	return nil
}

func (t *aiTab) activate() tea.Cmd {
	settings := t.controller.Current()
	switch t.cursor {
	case aiFieldProvider:
		return t.controller.Apply(models.KeyAIProvider,
			nextChoice(providers, settings.AIProvider()))
	case aiFieldAddress:
		t.startEditing(settings.ConnectorAddress())
	case aiFieldAPIKey:
		t.startEditing(settings.APIKey())
	case aiFieldModel:
		t.startEditing(settings.AIModel())
	case aiFieldAutoTag:
		return t.controller.Apply(models.KeyAutoTag, !settings.AutoTag())
	case aiFieldTest:
		return t.test()
	}
	return nil
}

func (t *aiTab) startEditing(value string) {
	t.editing = true
	t.input.SetValue(value)
	t.input.CursorEnd()
	t.input.Focus()
}

func (t *aiTab) stopEditing() {
	t.editing = false
	t.input.Blur()
	t.input.SetValue("")
}

func (t *aiTab) cycleModel(forward bool) {
	n := len(t.modelList)
	if forward {
		t.modelIdx = (t.modelIdx + 1) % n
	} else {
		t.modelIdx = (t.modelIdx - 1 + n) % n
	}
}

// test probes the address currently saved in settings. An empty address or
// a probe already in flight is a no-op: the control is disabled.
func (t *aiTab) test() tea.Cmd {
	settings := t.controller.Current()
	address := settings.ConnectorAddress()
	if address == "" || t.conn.testing {
		return nil
	}

	t.conn.testing = true
	t.conn.success = nil
	t.conn.message = "Testing..."

	backend := t.backend
	apiKey := settings.APIKey()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), connector.DefaultTimeout)
		defer cancel()
		return connectionResultMsg{err: backend.TestConnection(ctx, address, apiKey)}
	}
}

func (t *aiTab) handleResult(msg connectionResultMsg) tea.Cmd {
	t.conn.testing = false
	ok := msg.err == nil
	t.conn.success = &ok
	if ok {
		t.conn.message = "Connected"
	} else {
		// Failure detail goes to the log, not the screen.
		t.conn.message = "Connection failed"
	}
	t.conn.seq++

	seq := t.conn.seq
	return tea.Tick(t.clearAfter, func(time.Time) tea.Msg {
		return connectionClearMsg{seq: seq}
	})
}

// loadModels asks the configured provider for its model list.
func (t *aiTab) loadModels() tea.Cmd {
	settings := t.controller.Current()
	if settings.AIProvider() == models.ProviderNone {
		return nil
	}
	cfg := connector.Config{
		Provider: settings.AIProvider(),
		Address:  settings.ConnectorAddress(),
		APIKey:   settings.APIKey(),
	}
	backend := t.backend
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), connector.DefaultTimeout)
		defer cancel()
		ids, err := backend.ListModels(ctx, cfg)
		return modelsListedMsg{models: ids, err: err}
	}
}

func (t *aiTab) View(width int) string {
	settings := t.controller.Current()

	var b strings.Builder
	b.WriteString(SectionHeaderStyle.Render("AI AUTO-TAGGING"))
	b.WriteString("\n\n")

	rows := []struct {
		label string
		value string
	}{
		{"Provider", settings.AIProvider()},
		{"Connector address", orPlaceholder(settings.ConnectorAddress(), "(not set)")},
		{"API key", maskKey(settings.APIKey())},
		{"Model", orPlaceholder(settings.AIModel(), "(not set)")},
		{"Auto-tag new imports", onOff(settings.AutoTag())},
		{"Test connection", t.testLabel(settings)},
	}

	for i, row := range rows {
		if t.editing && i == t.cursor {
			b.WriteString(renderFieldRow(row.label, t.input.View(), true))
		} else {
			b.WriteString(renderFieldRow(row.label, row.value, i == t.cursor))
		}
		b.WriteString("\n")
	}

	if len(t.modelList) > 0 {
		b.WriteString("\n")
		b.WriteString(DimStyle.Render(fmt.Sprintf("Models available: %s", strings.Join(t.modelList, ", "))))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if t.editing {
		b.WriteString(HelpStyle.Render("enter save · esc cancel"))
	} else {
		b.WriteString(HelpStyle.Render("↑/↓ select · enter change · m load models · ←/→ pick model"))
	}
	return b.String()
}

func (t *aiTab) testLabel(settings models.Settings) string {
	switch {
	case t.conn.testing:
		return DimStyle.Render(t.conn.message)
	case t.conn.message != "":
		if t.conn.success != nil && *t.conn.success {
			return SuccessStyle.Render(t.conn.message)
		}
		return ErrorStyle.Render(t.conn.message)
	case settings.ConnectorAddress() == "":
		return DisabledStyle.Render("(set an address first)")
	default:
		return "press enter to test"
	}
}

// maskKey hides all but the tail of an API key.
func maskKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}
