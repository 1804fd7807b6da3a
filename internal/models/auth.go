package models

// CodeDelivery is returned after requesting a verification code.
// DevCode is only filled by development deployments.
type CodeDelivery struct {
	Message string `json:"message"`
	DevCode string `json:"dev_code,omitempty"`
}
