package models

import (
	"errors"
)

// Session errors
var (
	// ErrNotLoggedIn is returned when an operation needs a verified user
	ErrNotLoggedIn = errors.New("not logged in")

	// ErrSessionExpired is returned when the stored session is past its expiry
	ErrSessionExpired = errors.New("session expired, please verify your phone again")

	// ErrAdminTokenRequired is returned when an admin call has no token
	ErrAdminTokenRequired = errors.New("admin token is required")
)

// Input errors
var (
	// ErrPhoneRequired is returned when a phone number is missing or too short
	ErrPhoneRequired = errors.New("phone number is required")

	// ErrInvalidRole is returned for a role other than customer or contractor
	ErrInvalidRole = errors.New("user type must be customer or contractor")

	// ErrProjectIDRequired is returned when a project id is missing
	ErrProjectIDRequired = errors.New("project id is required")

	// ErrProjectTitleRequired is returned when a project has no title
	ErrProjectTitleRequired = errors.New("project title is required")

	// ErrProjectAddressRequired is returned when a project has no address
	ErrProjectAddressRequired = errors.New("project address is required")

	// ErrInvalidProjectType is returned for an unknown project type
	ErrInvalidProjectType = errors.New("invalid project type")

	// ErrInvalidProgress is returned when progress is outside 0..100
	ErrInvalidProgress = errors.New("progress must be between 0 and 100")

	// ErrRoomNameRequired is returned when a measurement has no room name
	ErrRoomNameRequired = errors.New("room name is required")

	// ErrWorkDescriptionRequired is returned when a work order has no description
	ErrWorkDescriptionRequired = errors.New("work description is required")

	// ErrProductNameRequired is returned when a product has no name
	ErrProductNameRequired = errors.New("product name is required")

	// ErrProductCategoryRequired is returned when a product has no category
	ErrProductCategoryRequired = errors.New("product category is required")

	// ErrNegativePrice is returned for a negative price or cost
	ErrNegativePrice = errors.New("prices must not be negative")

	// ErrNothingToUpdate is returned when an update carries no fields
	ErrNothingToUpdate = errors.New("nothing to update")
)

// Lookup errors
var (
	// ErrProjectNotFound is returned when the projects function has no such project
	ErrProjectNotFound = errors.New("project not found")
)
