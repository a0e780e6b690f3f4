package models

// Collaboration statuses
const (
	CollaborationStatusInProgress = "In Progress"
	CollaborationStatusCompleted  = "Completed"
)

const collaborationIDPrefix = "collab-"

// Collaboration is an engagement derived from an accepted application.
type Collaboration struct {
	ID            string         `json:"id"`
	ApplicationID string         `json:"application_id"`
	Campaign      Campaign       `json:"campaign"`
	Status        string         `json:"status"`
	Workflow      []WorkflowStep `json:"workflow"`
}

// CollaborationID derives the collaboration identity from the application it came from.
func CollaborationID(applicationID string) string {
	return collaborationIDPrefix + applicationID
}

// NewCollaboration materializes the collaboration for an accepted application
// with a freshly initialized workflow.
func NewCollaboration(app Application) Collaboration {
	return Collaboration{
		ID:            CollaborationID(app.ID),
		ApplicationID: app.ID,
		Campaign:      app.Campaign,
		Status:        CollaborationStatusInProgress,
		Workflow:      NewInfluencerWorkflow(),
	}
}

func (c *Collaboration) IsActive() bool {
	return c.Status == CollaborationStatusInProgress
}
