package dto

import "github.com/influencer-portal/backend/internal/models"

type ErrorResponse struct {
	Error     string            `json:"error"`
	Fields    map[string]string `json:"fields,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

type SuccessResponse struct {
	OK   bool `json:"ok"`
	Data any  `json:"data,omitempty"`
}

type SignupDraftResponse struct {
	DraftID string `json:"draft_id"`
	Email   string `json:"email"`
	Ready   bool   `json:"ready"`
}

type PendingVerificationResponse struct {
	DraftID string              `json:"draft_id"`
	Profile *models.UserProfile `json:"profile"`
}

type ApplyResponse struct {
	Created     bool                `json:"created"`
	Application *models.Application `json:"application"`
}

type AdvanceResponse struct {
	Changed       bool                 `json:"changed"`
	Collaboration models.Collaboration `json:"collaboration"`
	StatusLabel   string               `json:"status_label"`
}

type CollaborationView struct {
	models.Collaboration
	StatusLabel string `json:"status_label"`
}

type MeResponse struct {
	Profile             *models.UserProfile `json:"profile"`
	OnboardingCompleted bool                `json:"onboarding_completed"`
}
