package services

import (
	"time"

	"github.com/influencer-portal/backend/internal/clock"
	"github.com/influencer-portal/backend/internal/models"
	"github.com/influencer-portal/backend/internal/rbac"
)

// NextBrandTurn returns the index of the first in-progress collaboration whose
// frontier is waiting on the brand side.
func NextBrandTurn(collabs []models.Collaboration) (int, bool) {
	for i := range collabs {
		if !collabs[i].IsActive() {
			continue
		}
		if step, ok := models.FrontierStep(collabs[i]); ok && step.Status == models.StepStatusWaiting {
			return i, true
		}
	}
	return -1, false
}

// RespondAsBrand acts on a Waiting frontier. Influencer steps are handed back
// as Action Needed. Brand steps are promoted and completed through the engine,
// and a finished Brand Review leaves feedback on the revisions step.
func RespondAsBrand(c models.Collaboration, feedback string, now time.Time) (models.Collaboration, bool) {
	step, ok := models.FrontierStep(c)
	if !ok || step.Status != models.StepStatusWaiting {
		return c, false
	}

	c, _ = models.PromoteWaiting(c, now)
	if !rbac.CanAdvance(rbac.RoleBrand, step.Actor) {
		return c, true
	}

	c, _ = models.Advance(c, step.ID, now)
	if step.ID == models.StepIDBrandReview && feedback != "" {
		c, _ = models.AttachFeedback(c, models.StepIDRevisionsRequested, feedback)
	}
	return completeIfDone(c), true
}

// completeIfDone flips the collaboration to Completed once every step is.
func completeIfDone(c models.Collaboration) models.Collaboration {
	if models.IsWorkflowComplete(c.Workflow) {
		c.Status = models.CollaborationStatusCompleted
	}
	return c
}

// BrandSimulator plays the brand side of running collaborations.
type BrandSimulator struct {
	slot     timerSlot
	delay    time.Duration
	feedback string
}

func NewBrandSimulator(c clock.Clock, delay time.Duration, feedback string) *BrandSimulator {
	return &BrandSimulator{slot: timerSlot{clock: c}, delay: delay, feedback: feedback}
}

func (s *BrandSimulator) Schedule(fire func()) bool {
	return s.slot.arm(s.delay, fire)
}

func (s *BrandSimulator) Pending() bool {
	return s.slot.armed()
}

func (s *BrandSimulator) Stop() {
	s.slot.stop()
}

func (s *BrandSimulator) Feedback() string {
	return s.feedback
}
