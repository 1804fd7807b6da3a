package models

// Work order statuses
const (
	OrderPending    = "pending"
	OrderInProgress = "in_progress"
	OrderCompleted  = "completed"
	OrderCancelled  = "cancelled"
)

// WorkOrder is a job agreed between a customer and a contractor through the assistant
type WorkOrder struct {
	ID              int     `json:"id"`
	CustomerPhone   string  `json:"customer_phone"`
	ContractorPhone string  `json:"contractor_phone"`
	WorkDescription string  `json:"work_description"`
	Price           float64 `json:"price"`
	Deadline        string  `json:"deadline,omitempty"`
	Status          string  `json:"status"`
	CreatedAt       string  `json:"created_at,omitempty"`
}

// NewWorkOrder holds the fields sent when creating a work order
type NewWorkOrder struct {
	CustomerPhone   string  `json:"customer_phone"`
	ContractorPhone string  `json:"contractor_phone"`
	WorkDescription string  `json:"work_description"`
	Price           float64 `json:"price"`
	Deadline        string  `json:"deadline,omitempty"`
	ConversationID  string  `json:"conversation_id,omitempty"`
}

// Validate checks the fields the assistant function requires
func (o NewWorkOrder) Validate() error {
	if o.CustomerPhone == "" || o.ContractorPhone == "" {
		return ErrPhoneRequired
	}
	if o.WorkDescription == "" {
		return ErrWorkDescriptionRequired
	}
	return nil
}

// Recording is a stored conversation audio file
type Recording struct {
	ID             int      `json:"id"`
	ConversationID string   `json:"conversation_id"`
	AudioURL       string   `json:"audio_url"`
	Duration       int      `json:"duration"`
	Participants   []string `json:"participants"`
	CreatedAt      string   `json:"created_at,omitempty"`
}

// SavedRecording is the result of uploading a recording
type SavedRecording struct {
	ID       int    `json:"recording_id"`
	AudioURL string `json:"audio_url"`
}
