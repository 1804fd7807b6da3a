package components

import (
	"fmt"
	"sort"

	"remont/internal/models"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ProjectItem represents a project in the list
type ProjectItem struct {
	Project models.Project
}

// FilterValue matches on title and address
func (i ProjectItem) FilterValue() string {
	return i.Project.Title + " " + i.Project.Address
}

func (i ProjectItem) Title() string {
	return i.Project.Title
}

// Description shows the status label, address and progress
func (i ProjectItem) Description() string {
	return fmt.Sprintf("%s · %s · %d%%", i.Project.Badge().Label, i.Project.Address, i.Project.Progress)
}

// ProjectListModel represents the project list
type ProjectListModel struct {
	List     list.Model
	Projects []models.Project
	Selected *models.Project
}

// NewProjectListModel creates an empty project list
func NewProjectListModel(width, height int) ProjectListModel {
	listModel := list.New([]list.Item{}, list.NewDefaultDelegate(), width, height)
	listModel.Title = "Проекты"
	listModel.SetShowStatusBar(false)
	listModel.SetFilteringEnabled(true)
	listModel.Styles.Title = lipgloss.NewStyle().
		Foreground(lipgloss.Color("39")).
		Bold(true).
		MarginLeft(2)

	return ProjectListModel{
		List:     listModel,
		Projects: []models.Project{},
	}
}

// statusRank orders projects along the workflow; unknown statuses go last
func statusRank(code string) int {
	for i, known := range models.StatusCodes {
		if code == known {
			return i
		}
	}
	return len(models.StatusCodes)
}

// SetProjects replaces the list contents, ordered by workflow stage and title
func (m *ProjectListModel) SetProjects(projects []models.Project) {
	sorted := append([]models.Project(nil), projects...)
	sort.SliceStable(sorted, func(i, j int) bool {
		ri, rj := statusRank(sorted[i].Status), statusRank(sorted[j].Status)
		if ri != rj {
			return ri < rj
		}
		return sorted[i].Title < sorted[j].Title
	})
	m.Projects = sorted

	items := make([]list.Item, len(sorted))
	for i, p := range sorted {
		items[i] = ProjectItem{Project: p}
	}
	m.List.SetItems(items)
	m.syncSelected()
}

func (m *ProjectListModel) syncSelected() {
	if item, ok := m.List.SelectedItem().(ProjectItem); ok {
		p := item.Project
		m.Selected = &p
	} else {
		m.Selected = nil
	}
}

// Filtering reports whether the user is typing a filter
func (m ProjectListModel) Filtering() bool {
	return m.List.FilterState() == list.Filtering
}

// Update handles project list updates
func (m ProjectListModel) Update(msg tea.Msg) (ProjectListModel, tea.Cmd) {
	var cmd tea.Cmd
	m.List, cmd = m.List.Update(msg)
	m.syncSelected()
	return m, cmd
}

// View renders the project list
func (m ProjectListModel) View() string {
	return m.List.View()
}
