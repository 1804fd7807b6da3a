package models

// Photo is an image attached to a project
type Photo struct {
	ID          int    `json:"id"`
	URL         string `json:"photo_url"`
	RoomName    string `json:"room_name,omitempty"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// UploadedPhoto is the result of a photo upload
type UploadedPhoto struct {
	ID  int    `json:"photo_id"`
	URL string `json:"photo_url"`
}
