package models

// WorkspaceSnapshot is the persisted state of one user's workspace.
type WorkspaceSnapshot struct {
	Applications   []Application   `json:"applications"`
	Collaborations []Collaboration `json:"collaborations"`
}
