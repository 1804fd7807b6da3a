package models

// ProjectType is the kind of property being renovated
type ProjectType string

const (
	ProjectApartment  ProjectType = "apartment"
	ProjectHouse      ProjectType = "house"
	ProjectOffice     ProjectType = "office"
	ProjectCommercial ProjectType = "commercial"
)

// ProjectTypes lists the project types accepted by the projects function
var ProjectTypes = []ProjectType{ProjectApartment, ProjectHouse, ProjectOffice, ProjectCommercial}

// Label returns the Russian display name of the project type
func (t ProjectType) Label() string {
	switch t {
	case ProjectApartment:
		return "Квартира"
	case ProjectHouse:
		return "Дом"
	case ProjectOffice:
		return "Офис"
	case ProjectCommercial:
		return "Коммерческое помещение"
	default:
		return string(t)
	}
}

// Valid reports whether t is one of the known project types
func (t ProjectType) Valid() bool {
	for _, known := range ProjectTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Project represents a renovation project owned by a customer.
// Dates are kept as the ISO strings the projects function returns.
type Project struct {
	ID          int         `json:"id"`
	UserID      int         `json:"user_id,omitempty"`
	Title       string      `json:"title"`
	Address     string      `json:"address"`
	Type        ProjectType `json:"project_type"`
	Area        *float64    `json:"area,omitempty"`
	Rooms       *int        `json:"rooms,omitempty"`
	Budget      *float64    `json:"budget,omitempty"`
	Description string      `json:"description,omitempty"`
	Status      string      `json:"status"`
	Progress    int         `json:"progress"`
	StartDate   string      `json:"start_date,omitempty"`
	Deadline    string      `json:"deadline,omitempty"`
	CreatedAt   string      `json:"created_at,omitempty"`
}

// Badge returns the display badge for the project status
func (p Project) Badge() Badge {
	return BadgeFor(p.Status)
}

// ProjectDetail is a project together with its measurements and photos
type ProjectDetail struct {
	Project      Project       `json:"project"`
	Measurements []Measurement `json:"measurements"`
	Photos       []Photo       `json:"photos"`
}

// TotalArea sums the floor area of all measured rooms
func (d ProjectDetail) TotalArea() float64 {
	var total float64
	for _, m := range d.Measurements {
		if m.Area != nil {
			total += *m.Area
		}
	}
	return total
}

// NewProject holds the fields required to create a project
type NewProject struct {
	UserID      int         `json:"user_id"`
	Title       string      `json:"title"`
	Address     string      `json:"address"`
	Type        ProjectType `json:"project_type,omitempty"`
	Area        *float64    `json:"area,omitempty"`
	Rooms       *int        `json:"rooms,omitempty"`
	Budget      *float64    `json:"budget,omitempty"`
	Description string      `json:"description,omitempty"`
}

// Validate checks the fields the projects function requires
func (p NewProject) Validate() error {
	if p.UserID == 0 {
		return ErrNotLoggedIn
	}
	if p.Title == "" {
		return ErrProjectTitleRequired
	}
	if p.Address == "" {
		return ErrProjectAddressRequired
	}
	if p.Type != "" && !p.Type.Valid() {
		return ErrInvalidProjectType
	}
	return nil
}

// ProjectUpdate carries the fields to change on a project. Nil fields are left untouched.
type ProjectUpdate struct {
	Title       *string      `json:"title,omitempty"`
	Address     *string      `json:"address,omitempty"`
	Type        *ProjectType `json:"project_type,omitempty"`
	Area        *float64     `json:"area,omitempty"`
	Rooms       *int         `json:"rooms,omitempty"`
	Budget      *float64     `json:"budget,omitempty"`
	Description *string      `json:"description,omitempty"`
	Status      *string      `json:"status,omitempty"`
	Progress    *int         `json:"progress,omitempty"`
	StartDate   *string      `json:"start_date,omitempty"`
	Deadline    *string      `json:"deadline,omitempty"`
}

// Empty reports whether the update changes nothing
func (u ProjectUpdate) Empty() bool {
	return u.Title == nil && u.Address == nil && u.Type == nil && u.Area == nil &&
		u.Rooms == nil && u.Budget == nil && u.Description == nil && u.Status == nil &&
		u.Progress == nil && u.StartDate == nil && u.Deadline == nil
}

// Validate rejects out-of-range progress and unknown project types.
// Progress is not checked against the status.
func (u ProjectUpdate) Validate() error {
	if u.Progress != nil && (*u.Progress < 0 || *u.Progress > 100) {
		return ErrInvalidProgress
	}
	if u.Type != nil && !u.Type.Valid() {
		return ErrInvalidProjectType
	}
	return nil
}
