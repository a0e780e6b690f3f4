package dto

type SignupStep1Request struct {
	DraftID         string `json:"draft_id,omitempty"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	AcceptTerms     bool   `json:"accept_terms"`
}

type SignupStep2Request struct {
	DraftID        string   `json:"draft_id"`
	FullName       string   `json:"full_name"`
	ProfilePicture *string  `json:"profile_picture,omitempty"`
	Phone          string   `json:"phone"`
	Country        string   `json:"country"`
	City           string   `json:"city"`
	DOB            string   `json:"dob"` // YYYY-MM-DD
	Gender         string   `json:"gender"`
	Niche          []string `json:"niche"`
}

type VerifySignupRequest struct {
	DraftID string `json:"draft_id"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// SelectRequest with an empty kind clears the selection.
type SelectRequest struct {
	Kind string `json:"kind"`
	ID   string `json:"id"`
}

type ResolveOAuthRequest struct {
	Outcome string `json:"outcome"` // success / denied / closed
}
