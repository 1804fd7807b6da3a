package ui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remont/internal/api"
	"remont/internal/models"
	"remont/internal/voice"
)

type stubSource struct {
	projects []models.Project
	detail   *models.ProjectDetail
	err      error
}

func (s *stubSource) ListProjects(ctx context.Context, userID int) ([]models.Project, error) {
	return s.projects, s.err
}

func (s *stubSource) GetProject(ctx context.Context, projectID int) (*models.ProjectDetail, error) {
	return s.detail, s.err
}

func TestDashboardLoadsProjects(t *testing.T) {
	source := &stubSource{projects: []models.Project{{ID: 7, Title: "Квартира", Status: models.StatusDesign}}}
	m := NewModel(context.Background(), source, models.User{ID: 1, Name: "Анна"})

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(Model)
	next, _ = m.Update(loadProjects(context.Background(), source, 1)())
	m = next.(Model)

	assert.False(t, m.IsLoading)
	require.NotNil(t, m.Projects.Selected)
	assert.Equal(t, 7, m.Projects.Selected.ID)
	assert.Contains(t, m.View(), "Квартира")
}

func TestDashboardShowsLoadError(t *testing.T) {
	source := &stubSource{err: errors.New("connection refused")}
	m := NewModel(context.Background(), source, models.User{ID: 1})

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(Model)
	next, _ = m.Update(loadProjects(context.Background(), source, 1)())
	m = next.(Model)

	assert.Contains(t, m.ErrorMessage, "connection refused")
}

func TestRenderDetail(t *testing.T) {
	area := 12.5
	budget := 150000.0
	d := &models.ProjectDetail{
		Project:      models.Project{Title: "Кухня", Address: "Ленина, 5", Type: models.ProjectApartment, Status: models.StatusEstimate, Progress: 30, Budget: &budget},
		Measurements: []models.Measurement{{RoomName: "Кухня", Length: 5, Width: 2.5, Height: 2.7, Area: &area}},
	}
	out := renderDetail(d, NewModel(context.Background(), &stubSource{}, models.User{}).Progress)

	assert.Contains(t, out, "Смета")
	assert.Contains(t, out, "Квартира")
	assert.Contains(t, out, "12.50 м²")
}

func TestBadgeColorFallsBackToGray(t *testing.T) {
	assert.Equal(t, BadgeColor(models.ColorGray), BadgeColor("teal"))
	assert.NotEqual(t, BadgeColor(models.ColorGray), BadgeColor(models.ColorRed))
}

type nopCapture struct{}

func (nopCapture) Stop() ([]byte, error) { return []byte("x"), nil }

type nopRecorder struct{}

func (nopRecorder) Start(ctx context.Context) (voice.Capture, error) { return nopCapture{}, nil }

type echoAssistant struct{}

func (echoAssistant) Transcribe(ctx context.Context, audio []byte) (string, error) {
	return "Сколько стоит плитка?", nil
}

func (echoAssistant) Chat(ctx context.Context, req api.ChatRequest) (string, error) {
	return "От 900 ₽ за м².", nil
}

func TestAssistantScreenTurn(t *testing.T) {
	m := NewAssistantModel(context.Background(), models.RoleCustomer, nopRecorder{}, echoAssistant{})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = next.(AssistantModel)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{' '}})
	m = next.(AssistantModel)
	require.NotNil(t, cmd)
	assert.Nil(t, cmd())
	assert.Equal(t, voice.StateRecording, m.Session.State())

	next, _ = m.Update(waitForState(m.states)())
	m = next.(AssistantModel)
	assert.Equal(t, voice.StateRecording, m.State)

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{' '}})
	msg := cmd()
	require.IsType(t, turnFinishedMsg{}, msg)
	next, _ = m.Update(msg)
	m = next.(AssistantModel)

	assert.Contains(t, m.Viewport.View(), "900")
	assert.Len(t, m.Session.History(), 2)
}

func TestDescribeVoiceError(t *testing.T) {
	assert.Contains(t, describeVoiceError(voice.ErrBusy), "Подождите")
	assert.Contains(t, describeVoiceError(voice.ErrAlreadyRecording), "Запись уже идёт")
	assert.Contains(t, describeVoiceError(voice.ErrNoSpeech), "не распознана")
	assert.Equal(t, "boom", describeVoiceError(errors.New("boom")))
}

func TestAssistantSpaceFollowsSessionState(t *testing.T) {
	m := NewAssistantModel(context.Background(), models.RoleCustomer, nopRecorder{}, echoAssistant{})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = next.(AssistantModel)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{' '}})
	m = next.(AssistantModel)
	assert.Nil(t, cmd())
	require.Equal(t, voice.StateRecording, m.Session.State())
	// the recording notification has not reached the screen yet
	assert.Equal(t, voice.StateIdle, m.State)

	next, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{' '}})
	m = next.(AssistantModel)
	msg := cmd()
	require.IsType(t, turnFinishedMsg{}, msg)

	next, _ = m.Update(msg)
	m = next.(AssistantModel)
	assert.Equal(t, voice.StateIdle, m.State)
	assert.Empty(t, m.ErrorMessage)
	assert.Len(t, m.Session.History(), 2)
}

func TestAssistantErrorResyncsState(t *testing.T) {
	m := NewAssistantModel(context.Background(), models.RoleCustomer, nopRecorder{}, echoAssistant{})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = next.(AssistantModel)

	m.State = voice.StateProcessing
	next, _ = m.Update(voiceErrorMsg{err: voice.ErrNoSpeech})
	m = next.(AssistantModel)

	assert.Equal(t, voice.StateIdle, m.State)
	assert.Contains(t, m.ErrorMessage, "не распознана")
	assert.Contains(t, m.View(), "Нажмите пробел")
}
