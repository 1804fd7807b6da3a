package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProjectValidate(t *testing.T) {
	valid := NewProject{UserID: 7, Title: "Ремонт кухни", Address: "Москва, ул. Ленина, 1"}
	assert.NoError(t, valid.Validate())

	noUser := valid
	noUser.UserID = 0
	assert.ErrorIs(t, noUser.Validate(), ErrNotLoggedIn)

	noTitle := valid
	noTitle.Title = ""
	assert.ErrorIs(t, noTitle.Validate(), ErrProjectTitleRequired)

	noAddress := valid
	noAddress.Address = ""
	assert.ErrorIs(t, noAddress.Validate(), ErrProjectAddressRequired)

	badType := valid
	badType.Type = "castle"
	assert.ErrorIs(t, badType.Validate(), ErrInvalidProjectType)
}

func TestProjectUpdate(t *testing.T) {
	assert.True(t, ProjectUpdate{}.Empty())

	progress := 120
	assert.ErrorIs(t, ProjectUpdate{Progress: &progress}.Validate(), ErrInvalidProgress)

	// Progress is accepted regardless of the status it is sent with.
	progress = 10
	status := StatusCompleted
	update := ProjectUpdate{Progress: &progress, Status: &status}
	assert.NoError(t, update.Validate())
	assert.False(t, update.Empty())

	data, err := json.Marshal(update)
	require.NoError(t, err)
	assert.JSONEq(t, `{"progress":10,"status":"completed"}`, string(data))
}

func TestProjectDetailTotalArea(t *testing.T) {
	a, b := 12.5, 7.25
	detail := ProjectDetail{Measurements: []Measurement{{Area: &a}, {Area: nil}, {Area: &b}}}
	assert.InDelta(t, 19.75, detail.TotalArea(), 1e-9)
}

func TestProjectDecodesNullableFields(t *testing.T) {
	raw := `{"id":3,"title":"Офис","address":"СПб","project_type":"office","area":null,"rooms":2,
		"budget":500000.0,"status":"design","progress":40,"start_date":null,"created_at":"2025-03-01T10:00:00"}`

	var p Project
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	assert.Nil(t, p.Area)
	require.NotNil(t, p.Rooms)
	assert.Equal(t, 2, *p.Rooms)
	assert.Equal(t, ProjectOffice, p.Type)
	assert.Equal(t, "Офис", p.Type.Label())
	assert.Equal(t, "Дизайн", p.Badge().Label)
}
