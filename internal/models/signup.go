package models

import "time"

type SignupCredentials struct {
	Email         string `json:"email"`
	PasswordHash  string `json:"password_hash"`
	AcceptedTerms bool   `json:"accepted_terms"`
}

type SignupDetails struct {
	FullName       string   `json:"full_name"`
	ProfilePicture *string  `json:"profile_picture,omitempty"`
	Phone          string   `json:"phone"`
	Country        string   `json:"country"`
	City           string   `json:"city"`
	DOB            string   `json:"dob"`
	Gender         string   `json:"gender"`
	Niche          []string `json:"niche"`
}

// SignupDraft accumulates a signup across steps. Credentials and Details stay
// nil until their step has been accepted.
type SignupDraft struct {
	ID          string             `json:"id"`
	Credentials *SignupCredentials `json:"credentials,omitempty"`
	Details     *SignupDetails     `json:"details,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}

func (d *SignupDraft) Email() string {
	if d.Credentials == nil {
		return ""
	}
	return d.Credentials.Email
}

// Ready reports whether both steps are in place.
func (d *SignupDraft) Ready() bool {
	return d.Credentials != nil && d.Details != nil
}
