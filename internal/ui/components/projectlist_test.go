package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remont/internal/models"
)

func TestSetProjectsOrdersByWorkflow(t *testing.T) {
	m := NewProjectListModel(80, 20)
	m.SetProjects([]models.Project{
		{ID: 1, Title: "Офис", Status: models.StatusCompleted},
		{ID: 2, Title: "Дача", Status: "archived"},
		{ID: 3, Title: "Квартира", Status: models.StatusDraft},
		{ID: 4, Title: "Баня", Status: models.StatusDraft},
	})

	var ids []int
	for _, p := range m.Projects {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []int{4, 3, 1, 2}, ids)
	require.NotNil(t, m.Selected)
	assert.Equal(t, 4, m.Selected.ID)
}

func TestProjectItemDescription(t *testing.T) {
	item := ProjectItem{Project: models.Project{Title: "Кухня", Address: "Тверская, 1", Status: models.StatusInProgress, Progress: 40}}
	assert.Equal(t, "В работе · Тверская, 1 · 40%", item.Description())
	assert.Contains(t, item.FilterValue(), "Тверская")
}

func TestEmptyList(t *testing.T) {
	m := NewProjectListModel(80, 20)
	m.SetProjects(nil)
	assert.Nil(t, m.Selected)
	assert.False(t, m.Filtering())
}
