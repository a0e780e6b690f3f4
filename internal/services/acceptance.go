package services

import (
	"time"

	"github.com/influencer-portal/backend/internal/clock"
	"github.com/influencer-portal/backend/internal/models"
)

// NextPendingApplication picks the oldest Applied application. Ties go to the
// earlier entry.
func NextPendingApplication(apps []models.Application) (models.Application, bool) {
	best := -1
	for i := range apps {
		if !apps[i].IsPending() {
			continue
		}
		if best < 0 || apps[i].AppliedDate.Before(apps[best].AppliedDate) {
			best = i
		}
	}
	if best < 0 {
		return models.Application{}, false
	}
	return apps[best], true
}

// Accept promotes application appID to Accepted and materializes its
// collaboration. No-op unless the application is still Applied and no
// collaboration derives from it yet. Inputs are never modified.
func Accept(apps []models.Application, collabs []models.Collaboration, appID string) ([]models.Application, []models.Collaboration, models.Collaboration, bool) {
	idx := findApplication(apps, appID)
	if idx < 0 || !apps[idx].IsPending() {
		return apps, collabs, models.Collaboration{}, false
	}
	if findCollaboration(collabs, models.CollaborationID(appID)) >= 0 {
		return apps, collabs, models.Collaboration{}, false
	}

	nextApps := make([]models.Application, len(apps))
	copy(nextApps, apps)
	nextApps[idx].Status = models.ApplicationStatusAccepted

	collab := models.NewCollaboration(nextApps[idx])
	nextCollabs := make([]models.Collaboration, len(collabs), len(collabs)+1)
	copy(nextCollabs, collabs)
	nextCollabs = append(nextCollabs, collab)

	return nextApps, nextCollabs, collab, true
}

// AcceptanceSimulator plays the brand accepting applications after a fixed delay.
type AcceptanceSimulator struct {
	slot  timerSlot
	delay time.Duration
}

func NewAcceptanceSimulator(c clock.Clock, delay time.Duration) *AcceptanceSimulator {
	return &AcceptanceSimulator{slot: timerSlot{clock: c}, delay: delay}
}

// Schedule arms the timer unless one is already pending; an armed timer is
// never pushed back. Reports whether a new timer was armed.
func (s *AcceptanceSimulator) Schedule(fire func()) bool {
	return s.slot.arm(s.delay, fire)
}

func (s *AcceptanceSimulator) Pending() bool {
	return s.slot.armed()
}

func (s *AcceptanceSimulator) Stop() {
	s.slot.stop()
}
