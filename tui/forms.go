package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jfuentesr/butaca/entities"
)

func newInput(placeholder string, secret bool) textinput.Model {
	input := textinput.New()
	input.Placeholder = placeholder
	input.CharLimit = 64
	if secret {
		input.EchoMode = textinput.EchoPassword
	}
	return input
}

func (m Model) openLoginForm() (tea.Model, tea.Cmd) {
	m.previous = m.section
	m.section = SectionLogin
	m.inputs = []textinput.Model{
		newInput("correo", false),
		newInput("contraseña", true),
	}
	m.inputFocus = 0
	return m, m.inputs[0].Focus()
}

func (m Model) openRegisterForm() (tea.Model, tea.Cmd) {
	m.previous = m.section
	m.section = SectionRegister
	m.inputs = []textinput.Model{
		newInput("nombre", false),
		newInput("edad", false),
		newInput("correo", false),
		newInput("contraseña", true),
	}
	m.inputFocus = 0
	return m, m.inputs[0].Focus()
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		return m.goBack()

	case "tab", "down":
		return m.focusInput(m.inputFocus + 1)

	case "shift+tab", "up":
		return m.focusInput(m.inputFocus - 1)

	case "enter":
		if m.inputFocus < len(m.inputs)-1 {
			return m.focusInput(m.inputFocus + 1)
		}
		return m.submitForm()
	}

	var cmd tea.Cmd
	m.inputs[m.inputFocus], cmd = m.inputs[m.inputFocus].Update(msg)
	return m, cmd
}

func (m Model) focusInput(i int) (tea.Model, tea.Cmd) {
	if i < 0 {
		i = len(m.inputs) - 1
	}
	if i >= len(m.inputs) {
		i = 0
	}
	m.inputs[m.inputFocus].Blur()
	m.inputFocus = i
	return m, m.inputs[i].Focus()
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	if m.section == SectionLogin {
		correo := m.inputs[0].Value()
		contrasena := m.inputs[1].Value()
		if correo == "" || contrasena == "" {
			m.stores.Notices.Warning("Correo y contraseña son obligatorios")
			return m, nil
		}
		m.busy = true
		return m, m.doLogin(correo, contrasena)
	}

	nombre := m.inputs[0].Value()
	correo := m.inputs[2].Value()
	contrasena := m.inputs[3].Value()
	edad, err := strconv.Atoi(m.inputs[1].Value())
	if nombre == "" || correo == "" || contrasena == "" || err != nil || edad <= 0 {
		m.stores.Notices.Warning("Revisa los datos del registro")
		return m, nil
	}
	m.busy = true
	return m, m.doRegister(entities.Registration{
		Nombre:     nombre,
		Edad:       edad,
		Correo:     correo,
		Contrasena: contrasena,
	})
}
