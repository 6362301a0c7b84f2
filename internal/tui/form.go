package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MahanAzadBeast/n8n-render/internal/api"
)

const (
	fieldBaseURL = iota
	fieldAPIKey
	fieldRemember
	fieldCount
)

// connectionForm collects an n8n credential. The api key field is masked
// on screen and cleared the moment the form submits, so the secret lives
// in the model only while the user is typing it.
type connectionForm struct {
	baseURL  textinput.Model
	apiKey   textinput.Model
	remember bool
	focus    int
}

func newConnectionForm() connectionForm {
	baseURL := textinput.New()
	baseURL.Placeholder = "https://n8n.example.com"
	baseURL.Prompt = ""
	baseURL.CharLimit = 200
	baseURL.Focus()

	apiKey := textinput.New()
	apiKey.Placeholder = "api key"
	apiKey.Prompt = ""
	apiKey.CharLimit = 500
	apiKey.EchoMode = textinput.EchoPassword
	apiKey.EchoCharacter = '*'

	return connectionForm{baseURL: baseURL, apiKey: apiKey}
}

// Update handles form input. Submit reports whether the user confirmed the
// form with enter.
func (f *connectionForm) Update(msg tea.Msg) (submit bool, cmd tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return false, nil
	}

	switch key.String() {
	case "tab", "down":
		f.setFocus((f.focus + 1) % fieldCount)
		return false, nil
	case "shift+tab", "up":
		f.setFocus((f.focus + fieldCount - 1) % fieldCount)
		return false, nil
	case "enter":
		return true, nil
	case " ":
		if f.focus == fieldRemember {
			f.remember = !f.remember
			return false, nil
		}
	}

	switch f.focus {
	case fieldBaseURL:
		f.baseURL, cmd = f.baseURL.Update(msg)
	case fieldAPIKey:
		f.apiKey, cmd = f.apiKey.Update(msg)
	}
	return false, cmd
}

func (f *connectionForm) setFocus(i int) {
	f.focus = i
	f.baseURL.Blur()
	f.apiKey.Blur()
	switch i {
	case fieldBaseURL:
		f.baseURL.Focus()
	case fieldAPIKey:
		f.apiKey.Focus()
	}
}

// take captures the form values and wipes the secret from the form state.
// The returned input is handed straight to the save request; nothing else
// retains the key.
func (f *connectionForm) take() api.ConnectionInput {
	in := api.ConnectionInput{
		BaseURL:  strings.TrimSpace(f.baseURL.Value()),
		APIKey:   strings.TrimSpace(f.apiKey.Value()),
		Remember: f.remember,
	}
	f.apiKey.Reset()
	f.setFocus(fieldBaseURL)
	return in
}

// View renders the form pane.
func (f connectionForm) View(theme *CompiledTheme) string {
	var b strings.Builder
	b.WriteString(theme.PaneTitleStyle.Render("n8n connection"))
	b.WriteString("\n\n")

	b.WriteString(fieldLabel(theme, "base url ", f.focus == fieldBaseURL))
	b.WriteString(f.baseURL.View())
	b.WriteString("\n")
	b.WriteString(fieldLabel(theme, "api key  ", f.focus == fieldAPIKey))
	b.WriteString(f.apiKey.View())
	b.WriteString("\n")

	check := "[ ]"
	if f.remember {
		check = "[x]"
	}
	b.WriteString(fieldLabel(theme, "remember ", f.focus == fieldRemember))
	b.WriteString(check + " store encrypted on the server")
	b.WriteString("\n\n")
	b.WriteString(theme.MutedStyle.Render("enter save • tab next field • esc cancel"))
	return b.String()
}

func fieldLabel(theme *CompiledTheme, label string, focused bool) string {
	if focused {
		return theme.PaneTitleStyle.Render(theme.Icons.Prompt+" ") + label
	}
	return "  " + label
}
