package models

import "time"

// Application statuses
const (
	ApplicationStatusApplied  = "Applied"
	ApplicationStatusAccepted = "Accepted"
	ApplicationStatusRejected = "Rejected"
)

// Application is one user's interest in one campaign.
type Application struct {
	ID          string    `json:"id"`
	Campaign    Campaign  `json:"campaign"`
	Status      string    `json:"status"`
	AppliedDate time.Time `json:"applied_date"`
}

func (a *Application) IsPending() bool {
	return a.Status == ApplicationStatusApplied
}
