package models

// Project status codes used by the projects function
const (
	StatusDraft       = "draft"
	StatusMeasurement = "measurement"
	StatusDesign      = "design"
	StatusEstimate    = "estimate"
	StatusInProgress  = "in_progress"
	StatusCompleted   = "completed"
	StatusCancelled   = "cancelled"
)

// Badge colors
const (
	ColorGray    = "gray"
	ColorBlue    = "blue"
	ColorPurple  = "purple"
	ColorOrange  = "orange"
	ColorGreen   = "green"
	ColorEmerald = "emerald"
	ColorRed     = "red"
)

// Badge is the label and color shown for a project status
type Badge struct {
	Label string
	Color string
}

var statusBadges = map[string]Badge{
	StatusDraft:       {Label: "Черновик", Color: ColorGray},
	StatusMeasurement: {Label: "Замеры", Color: ColorBlue},
	StatusDesign:      {Label: "Дизайн", Color: ColorPurple},
	StatusEstimate:    {Label: "Смета", Color: ColorOrange},
	StatusInProgress:  {Label: "В работе", Color: ColorGreen},
	StatusCompleted:   {Label: "Завершён", Color: ColorEmerald},
	StatusCancelled:   {Label: "Отменён", Color: ColorRed},
}

// StatusCodes lists the known status codes in workflow order
var StatusCodes = []string{
	StatusDraft,
	StatusMeasurement,
	StatusDesign,
	StatusEstimate,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
}

// BadgeFor maps a status code to its badge. Unknown codes keep their raw
// value as the label and get the neutral color.
func BadgeFor(code string) Badge {
	if badge, ok := statusBadges[code]; ok {
		return badge
	}
	return Badge{Label: code, Color: ColorGray}
}

// KnownStatus reports whether code is one of the documented status codes
func KnownStatus(code string) bool {
	_, ok := statusBadges[code]
	return ok
}
