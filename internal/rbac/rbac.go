package rbac

import "github.com/influencer-portal/backend/internal/models"

// Role constants. Roles match the workflow step actors.
const (
	RoleInfluencer = models.StepActorInfluencer
	RoleBrand      = models.StepActorBrand
)

// Permission constants
const (
	PermApply             = "apply"
	PermAdvanceOwnStep    = "advance_own_step"
	PermAcceptApplication = "accept_application"
	PermGiveFeedback      = "give_feedback"
)

// RolePermissions defines what each role can do.
var RolePermissions = map[string][]string{
	RoleInfluencer: {
		PermApply, PermAdvanceOwnStep,
	},
	RoleBrand: {
		PermAcceptApplication, PermAdvanceOwnStep, PermGiveFeedback,
		// Brand CANNOT: PermApply
	},
}

// HasPermission checks if a role has a specific permission.
func HasPermission(role, permission string) bool {
	perms, ok := RolePermissions[role]
	if !ok {
		return false
	}
	for _, p := range perms {
		if p == permission {
			return true
		}
	}
	return false
}

// CanAdvance reports whether role may complete a step owned by actor. Steps
// without an actor belong to the influencer.
func CanAdvance(role, actor string) bool {
	if actor == "" {
		actor = RoleInfluencer
	}
	return role == actor && HasPermission(role, PermAdvanceOwnStep)
}
