package services

import (
	"strings"

	"github.com/influencer-portal/backend/internal/models"
)

// Directory item kinds
const (
	DirectoryKindApplication   = "application"
	DirectoryKindCollaboration = "collaboration"
)

// DirectoryItem is either an application or a collaboration; Kind says which
// pointer is set.
type DirectoryItem struct {
	Kind          string                `json:"kind"`
	Application   *models.Application   `json:"application,omitempty"`
	Collaboration *models.Collaboration `json:"collaboration,omitempty"`
}

func (i DirectoryItem) ID() string {
	switch i.Kind {
	case DirectoryKindApplication:
		if i.Application != nil {
			return i.Application.ID
		}
	case DirectoryKindCollaboration:
		if i.Collaboration != nil {
			return i.Collaboration.ID
		}
	}
	return ""
}

// DirectoryRef identifies a selectable item.
type DirectoryRef struct {
	Kind string `json:"kind"`
	ID   string `json:"id"`
}

func IsValidDirectoryKind(kind string) bool {
	return kind == DirectoryKindApplication || kind == DirectoryKindCollaboration
}

// ListApplications returns applications not yet promoted to a collaboration.
func ListApplications(apps []models.Application, collabs []models.Collaboration) []models.Application {
	out := make([]models.Application, 0, len(apps))
	for _, a := range apps {
		if a.Status == models.ApplicationStatusAccepted {
			continue
		}
		if findCollaboration(collabs, models.CollaborationID(a.ID)) >= 0 {
			continue
		}
		out = append(out, a)
	}
	return out
}

// FilterCollaborations keeps collaborations in the given status; empty keeps all.
func FilterCollaborations(collabs []models.Collaboration, status string) []models.Collaboration {
	status = strings.TrimSpace(status)
	out := make([]models.Collaboration, 0, len(collabs))
	for _, c := range collabs {
		if status == "" || strings.EqualFold(c.Status, status) {
			out = append(out, c)
		}
	}
	return out
}

// Resolve looks ref up among the listed applications and collaborations.
func Resolve(apps []models.Application, collabs []models.Collaboration, ref DirectoryRef) (DirectoryItem, bool) {
	switch ref.Kind {
	case DirectoryKindApplication:
		for _, a := range ListApplications(apps, collabs) {
			if a.ID == ref.ID {
				a := a
				return DirectoryItem{Kind: DirectoryKindApplication, Application: &a}, true
			}
		}
	case DirectoryKindCollaboration:
		if idx := findCollaboration(collabs, ref.ID); idx >= 0 {
			c := collabs[idx]
			return DirectoryItem{Kind: DirectoryKindCollaboration, Collaboration: &c}, true
		}
	}
	return DirectoryItem{}, false
}
