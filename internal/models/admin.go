package models

// AdminStats is the platform overview shown to administrators
type AdminStats struct {
	Users struct {
		Total       int `json:"total"`
		Customers   int `json:"customers"`
		Contractors int `json:"contractors"`
	} `json:"users"`
	Projects struct {
		Total     int            `json:"total"`
		Active    int            `json:"active"`
		Completed int            `json:"completed"`
		ByType    map[string]int `json:"by_type"`
		AvgBudget float64        `json:"avg_budget"`
	} `json:"projects"`
	Content struct {
		Measurements int `json:"measurements"`
		Photos       int `json:"photos"`
	} `json:"content"`
}

// Customer is the owner summary attached to admin project listings
type Customer struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
}

// AdminProject is a project as seen in the admin listing
type AdminProject struct {
	Project
	Customer Customer `json:"customer"`
}

// AdminProjectPage is one page of the admin project listing
type AdminProjectPage struct {
	Projects []AdminProject `json:"projects"`
	Total    int            `json:"total"`
	Limit    int            `json:"limit"`
	Offset   int            `json:"offset"`
}
