package models

// RoomPresets are the room names offered when adding a measurement
var RoomPresets = []string{
	"Гостиная",
	"Спальня",
	"Кухня",
	"Ванная",
	"Туалет",
	"Коридор",
	"Балкон",
	"Кладовая",
}

// Measurement is one room's dimensions within a project, in meters
type Measurement struct {
	ID       int      `json:"id"`
	RoomName string   `json:"room_name"`
	Length   float64  `json:"length"`
	Width    float64  `json:"width"`
	Height   float64  `json:"height"`
	Area     *float64 `json:"area,omitempty"`
	Notes    *string  `json:"notes"`
}

// NewMeasurement holds the fields sent when recording a measurement
type NewMeasurement struct {
	ProjectID int     `json:"project_id"`
	RoomName  string  `json:"room_name"`
	Length    float64 `json:"length"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Notes     *string `json:"notes"`
}

// Validate checks the fields the measurements function requires
func (m NewMeasurement) Validate() error {
	if m.ProjectID == 0 {
		return ErrProjectIDRequired
	}
	if m.RoomName == "" {
		return ErrRoomNameRequired
	}
	return nil
}

// MeasurementUpdate carries the fields to change on a measurement
type MeasurementUpdate struct {
	RoomName *string  `json:"room_name,omitempty"`
	Length   *float64 `json:"length,omitempty"`
	Width    *float64 `json:"width,omitempty"`
	Height   *float64 `json:"height,omitempty"`
	Notes    *string  `json:"notes,omitempty"`
}
