package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"remont/internal/models"
	"remont/internal/voice"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	userStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	assistantStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	recordingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
)

// AssistantModel is the voice assistant screen
type AssistantModel struct {
	Viewport     viewport.Model
	Spinner      spinner.Model
	Session      *voice.Session
	State        voice.State
	ErrorMessage string
	Width        int
	Height       int
	Ready        bool

	ctx    context.Context
	states chan voice.State
}

// NewAssistantModel creates a voice session wired to the screen
func NewAssistantModel(ctx context.Context, role models.UserRole, recorder voice.Recorder, assistant voice.Assistant, opts ...voice.SessionOption) AssistantModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	states := make(chan voice.State, 8)
	opts = append(opts, voice.OnStateChange(func(st voice.State) {
		select {
		case states <- st:
		default:
		}
	}))

	return AssistantModel{
		Spinner: s,
		Session: voice.NewSession(role, recorder, assistant, opts...),
		ctx:     ctx,
		states:  states,
	}
}

// Init initializes the model
func (m AssistantModel) Init() tea.Cmd {
	return tea.Batch(m.Spinner.Tick, waitForState(m.states))
}

// Update handles UI updates
func (m AssistantModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case " ", "space":
			m.ErrorMessage = ""
			if m.Session.State() == voice.StateRecording {
				return m, stopRecording(m.ctx, m.Session)
			}
			return m, startRecording(m.ctx, m.Session)
		case "c":
			if err := m.Session.Clear(); err != nil {
				m.ErrorMessage = describeVoiceError(err)
				return m, nil
			}
			m.ErrorMessage = ""
			m.Viewport.SetContent(renderHistory(m.Session.History(), m.Width))
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

		if !m.Ready {
			m.Viewport = viewport.New(msg.Width, msg.Height-6)
			m.Viewport.YPosition = 3
			m.Ready = true
		} else {
			m.Viewport.Width = msg.Width
			m.Viewport.Height = msg.Height - 6
		}
		m.Viewport.SetContent(renderHistory(m.Session.History(), m.Width))
		return m, nil

	case spinner.TickMsg:
		var spinnerCmd tea.Cmd
		m.Spinner, spinnerCmd = m.Spinner.Update(msg)
		cmds = append(cmds, spinnerCmd)

	case stateChangedMsg:
		m.State = voice.State(msg)
		m.Viewport.SetContent(renderHistory(m.Session.History(), m.Width))
		m.Viewport.GotoBottom()
		return m, waitForState(m.states)

	case turnFinishedMsg:
		m.State = m.Session.State()
		m.Viewport.SetContent(renderHistory(m.Session.History(), m.Width))
		m.Viewport.GotoBottom()
		return m, nil

	case voiceErrorMsg:
		m.State = m.Session.State()
		m.ErrorMessage = describeVoiceError(msg.err)
		m.Viewport.SetContent(renderHistory(m.Session.History(), m.Width))
		return m, nil
	}

	if m.Ready {
		var viewportCmd tea.Cmd
		m.Viewport, viewportCmd = m.Viewport.Update(msg)
		cmds = append(cmds, viewportCmd)
	}

	return m, tea.Batch(cmds...)
}

// View renders the UI
func (m AssistantModel) View() string {
	if !m.Ready {
		return "Инициализация..."
	}

	var status string
	switch m.State {
	case voice.StateRecording:
		status = recordingStyle.Render("● Запись") + " нажмите пробел, чтобы отправить"
	case voice.StateProcessing:
		status = fmt.Sprintf("%s Думаю...", m.Spinner.View())
	case voice.StateSpeaking:
		status = fmt.Sprintf("%s Говорю...", m.Spinner.View())
	default:
		status = "Нажмите пробел и говорите"
	}

	errorView := ""
	if m.ErrorMessage != "" {
		errorView = errorStyle.Render(m.ErrorMessage)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render("ЯСЕН · голосовой помощник"),
		mutedStyle.Render(status),
		m.Viewport.View(),
		errorView,
		mutedStyle.Render("пробел запись · c очистить · q выход"),
	)
}

// Messages
type stateChangedMsg voice.State
type turnFinishedMsg struct{ turn *voice.Turn }
type voiceErrorMsg struct{ err error }

// Commands
func waitForState(states <-chan voice.State) tea.Cmd {
	return func() tea.Msg {
		return stateChangedMsg(<-states)
	}
}

func startRecording(ctx context.Context, s *voice.Session) tea.Cmd {
	return func() tea.Msg {
		if err := s.Start(ctx); err != nil {
			return voiceErrorMsg{err: err}
		}
		return nil
	}
}

func stopRecording(ctx context.Context, s *voice.Session) tea.Cmd {
	return func() tea.Msg {
		turn, err := s.Stop(ctx)
		if err != nil {
			return voiceErrorMsg{err: err}
		}
		return turnFinishedMsg{turn: turn}
	}
}

func describeVoiceError(err error) string {
	switch {
	case errors.Is(err, voice.ErrAlreadyRecording):
		return "Запись уже идёт, нажмите пробел, чтобы отправить"
	case errors.Is(err, voice.ErrBusy):
		return "Подождите, ЯСЕН ещё отвечает"
	case errors.Is(err, voice.ErrNoSpeech), errors.Is(err, voice.ErrNoAudio):
		return "Речь не распознана, попробуйте ещё раз"
	default:
		return err.Error()
	}
}

func renderHistory(history []models.ChatMessage, width int) string {
	if len(history) == 0 {
		return "Здравствуйте! Я ЯСЕН, помощник по ремонту. Задайте вопрос голосом."
	}

	wrap := lipgloss.NewStyle()
	if width > 4 {
		wrap = wrap.Width(width - 2)
	}

	lines := make([]string, 0, len(history))
	for _, msg := range history {
		speaker := userStyle.Render("Вы:")
		if msg.Role == models.ChatRoleAssistant {
			speaker = assistantStyle.Render("ЯСЕН:")
		}
		lines = append(lines, wrap.Render(speaker+" "+msg.Content))
	}
	return strings.Join(lines, "\n\n")
}
