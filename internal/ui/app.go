package ui

import (
	"context"
	"fmt"
	"strings"

	"remont/internal/estimate"
	"remont/internal/models"
	"remont/internal/ui/components"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ProjectSource loads the projects shown on the dashboard
type ProjectSource interface {
	ListProjects(ctx context.Context, userID int) ([]models.Project, error)
	GetProject(ctx context.Context, projectID int) (*models.ProjectDetail, error)
}

// Model is the project dashboard
type Model struct {
	Viewport      viewport.Model
	Spinner       spinner.Model
	Progress      progress.Model
	Projects      components.ProjectListModel
	IsLoading     bool
	StatusMessage string
	ErrorMessage  string
	Detail        *models.ProjectDetail
	User          models.User
	Width         int
	Height        int
	Ready         bool

	ctx    context.Context
	source ProjectSource
}

// NewModel creates the dashboard for user. ctx must carry the session.
func NewModel(ctx context.Context, source ProjectSource, user models.User) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return Model{
		Spinner:       s,
		Progress:      progress.New(progress.WithDefaultGradient(), progress.WithWidth(30)),
		Projects:      components.NewProjectListModel(0, 0),
		IsLoading:     true,
		StatusMessage: "Загрузка проектов...",
		User:          user,
		ctx:           ctx,
		source:        source,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Spinner.Tick, loadProjects(m.ctx, m.source, m.User.ID))
}

// Update handles UI updates
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Ready && m.Detail == nil && m.Projects.Filtering() {
			break
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.IsLoading = true
			m.ErrorMessage = ""
			m.StatusMessage = "Обновление..."
			if m.Detail != nil {
				return m, loadDetail(m.ctx, m.source, m.Detail.Project.ID)
			}
			return m, loadProjects(m.ctx, m.source, m.User.ID)
		case "enter":
			if m.Detail == nil && m.Projects.Selected != nil {
				m.IsLoading = true
				m.StatusMessage = "Загрузка проекта..."
				return m, loadDetail(m.ctx, m.source, m.Projects.Selected.ID)
			}
		case "esc", "backspace":
			if m.Detail != nil {
				m.Detail = nil
				m.StatusMessage = fmt.Sprintf("Проектов: %d", len(m.Projects.Projects))
				return m, nil
			}
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
		m.Projects.List.SetSize(msg.Width, msg.Height-6)
		if m.Detail != nil {
			m.Viewport.SetContent(renderDetail(m.Detail, m.Progress))
		}
		return m, nil

	case spinner.TickMsg:
		var spinnerCmd tea.Cmd
		m.Spinner, spinnerCmd = m.Spinner.Update(msg)
		cmds = append(cmds, spinnerCmd)

	case projectsLoadedMsg:
		m.IsLoading = false
		m.StatusMessage = fmt.Sprintf("Проектов: %d", len(msg))
		m.Projects.SetProjects(msg)
		return m, nil

	case detailLoadedMsg:
		m.IsLoading = false
		m.Detail = msg.detail
		m.StatusMessage = msg.detail.Project.Title
		m.Viewport.SetContent(renderDetail(msg.detail, m.Progress))
		m.Viewport.GotoTop()
		return m, nil

	case errorMsg:
		m.IsLoading = false
		m.ErrorMessage = string(msg)
		m.StatusMessage = "Ошибка"
		return m, nil
	}

	if m.Ready {
		var cmd tea.Cmd
		if m.Detail != nil {
			m.Viewport, cmd = m.Viewport.Update(msg)
		} else {
			m.Projects, cmd = m.Projects.Update(msg)
		}
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// View renders the UI
func (m Model) View() string {
	if !m.Ready {
		return "Инициализация..."
	}

	status := m.StatusMessage
	if m.IsLoading {
		status = fmt.Sprintf("%s %s", m.Spinner.View(), m.StatusMessage)
	}

	body := m.Projects.View()
	help := "q выход · r обновить · enter открыть · / поиск"
	if m.Detail != nil {
		body = m.Viewport.View()
		help = "q выход · r обновить · esc назад"
	}

	errorView := ""
	if m.ErrorMessage != "" {
		errorView = errorStyle.Render(m.ErrorMessage)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render(fmt.Sprintf("Ремонт · %s", m.User.Name)),
		mutedStyle.Render(status),
		body,
		errorView,
		mutedStyle.Render(help),
	)
}

// Messages
type projectsLoadedMsg []models.Project
type detailLoadedMsg struct{ detail *models.ProjectDetail }
type errorMsg string

// Commands
func loadProjects(ctx context.Context, source ProjectSource, userID int) tea.Cmd {
	return func() tea.Msg {
		projects, err := source.ListProjects(ctx, userID)
		if err != nil {
			return errorMsg(fmt.Sprintf("Не удалось загрузить проекты: %v", err))
		}
		return projectsLoadedMsg(projects)
	}
}

func loadDetail(ctx context.Context, source ProjectSource, projectID int) tea.Cmd {
	return func() tea.Msg {
		detail, err := source.GetProject(ctx, projectID)
		if err != nil {
			return errorMsg(fmt.Sprintf("Не удалось загрузить проект: %v", err))
		}
		return detailLoadedMsg{detail: detail}
	}
}

func renderDetail(d *models.ProjectDetail, bar progress.Model) string {
	p := d.Project
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n", headingStyle.Render(p.Title), RenderBadge(p.Badge()))
	fmt.Fprintf(&b, "%s · %s\n", p.Address, p.Type.Label())
	fmt.Fprintf(&b, "Прогресс: %s\n", bar.ViewAs(float64(p.Progress)/100))
	if p.Budget != nil {
		fmt.Fprintf(&b, "Бюджет: %s\n", estimate.FormatRubles(*p.Budget))
	}
	if p.Deadline != "" {
		fmt.Fprintf(&b, "Срок: %s\n", p.Deadline)
	}
	if p.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", p.Description)
	}

	b.WriteString("\n" + headingStyle.Render(fmt.Sprintf("Замеры (%d)", len(d.Measurements))) + "\n")
	if len(d.Measurements) == 0 {
		b.WriteString("  Замеров пока нет\n")
	}
	for _, ms := range d.Measurements {
		area := "-"
		if ms.Area != nil {
			area = fmt.Sprintf("%.2f м²", *ms.Area)
		}
		fmt.Fprintf(&b, "  %-12s %.2f × %.2f × %.2f м  %s\n", ms.RoomName, ms.Length, ms.Width, ms.Height, area)
	}
	if len(d.Measurements) > 0 {
		fmt.Fprintf(&b, "  Общая площадь: %.2f м²\n", d.TotalArea())
	}

	b.WriteString("\n" + headingStyle.Render(fmt.Sprintf("Фото (%d)", len(d.Photos))) + "\n")
	for _, ph := range d.Photos {
		label := ph.RoomName
		if label == "" {
			label = "без комнаты"
		}
		fmt.Fprintf(&b, "  %s  %s\n", label, ph.URL)
	}

	return b.String()
}
