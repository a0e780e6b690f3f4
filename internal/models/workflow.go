package models

import (
	"fmt"
	"time"
)

// Workflow step statuses
const (
	StepStatusCompleted    = "Completed"
	StepStatusActionNeeded = "Action Needed"
	StepStatusWaiting      = "Waiting"
	StepStatusUpcoming     = "Upcoming"
)

// Who is expected to move a step forward.
const (
	StepActorInfluencer = "influencer"
	StepActorBrand      = "brand"
)

// StatusLabelFallback is shown for a collaboration with no step awaiting the user.
const StatusLabelFallback = "In Progress"

type WorkflowStep struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Status      string     `json:"status"`
	Date        *time.Time `json:"date,omitempty"`
	Description string     `json:"description,omitempty"`
	ActionLabel string     `json:"action_label,omitempty"`
	Feedback    string     `json:"feedback,omitempty"`
	Actor       string     `json:"actor"`
}

// Steps the brand simulator treats specially.
const (
	StepIDBrandReview        = 3
	StepIDRevisionsRequested = 4
)

type stepTemplate struct {
	title       string
	description string
	actionLabel string
	actor       string
}

// Generic influencer/brand engagement. Order and length never change after creation.
var influencerWorkflow = []stepTemplate{
	{
		title:       "Application Accepted",
		description: "The brand accepted your application. Confirm to start the collaboration.",
		actionLabel: "Confirm Participation",
		actor:       StepActorInfluencer,
	},
	{
		title:       "Submit Content Draft",
		description: "Upload a draft of your content following the campaign brief.",
		actionLabel: "Submit Draft",
		actor:       StepActorInfluencer,
	},
	{
		title:       "Brand Review",
		description: "The brand is reviewing your draft.",
		actor:       StepActorBrand,
	},
	{
		title:       "Revisions Requested",
		description: "Apply the brand's feedback and resubmit.",
		actionLabel: "Submit Revisions",
		actor:       StepActorInfluencer,
	},
	{
		title:       "Content Approved",
		description: "The brand signs off on the final content.",
		actor:       StepActorBrand,
	},
	{
		title:       "Post Content",
		description: "Publish the approved content on your channels.",
		actionLabel: "Mark as Posted",
		actor:       StepActorInfluencer,
	},
	{
		title:       "Payment Processed",
		description: "Compensation is released once the post is verified.",
		actor:       StepActorBrand,
	},
}

// NewInfluencerWorkflow builds the step list for a new collaboration. The first
// step awaits the influencer, every other step is upcoming.
func NewInfluencerWorkflow() []WorkflowStep {
	steps := make([]WorkflowStep, len(influencerWorkflow))
	for i, tpl := range influencerWorkflow {
		steps[i] = WorkflowStep{
			ID:          i + 1,
			Title:       tpl.title,
			Status:      StepStatusUpcoming,
			Description: tpl.description,
			Actor:       tpl.actor,
		}
	}
	steps[0].Status = StepStatusActionNeeded
	steps[0].ActionLabel = influencerWorkflow[0].actionLabel
	return steps
}

// Advance completes step stepID and opens the first upcoming step as Waiting.
// The call is a no-op unless that step is Action Needed; the second result
// reports whether anything changed. The input is never modified: a changed
// collaboration carries a fresh workflow slice.
//
// Advance only touches steps. Flipping the collaboration to Completed once the
// last step is done is the caller's job.
func Advance(c Collaboration, stepID int, now time.Time) (Collaboration, bool) {
	idx := stepIndex(c.Workflow, stepID)
	if idx < 0 || c.Workflow[idx].Status != StepStatusActionNeeded {
		return c, false
	}

	wf := cloneWorkflow(c.Workflow)
	wf[idx].Status = StepStatusCompleted
	wf[idx].Date = stamp(now)
	wf[idx].ActionLabel = ""

	for i := range wf {
		if wf[i].Status == StepStatusUpcoming {
			wf[i].Status = StepStatusWaiting
			wf[i].Date = stamp(now)
			break
		}
	}

	c.Workflow = wf
	return c, true
}

// PromoteWaiting turns a Waiting frontier into Action Needed. Influencer steps
// get their action label back; brand steps stay unlabelled since no end-user
// action is expected.
func PromoteWaiting(c Collaboration, now time.Time) (Collaboration, bool) {
	idx := frontierIndex(c.Workflow)
	if idx < 0 || c.Workflow[idx].Status != StepStatusWaiting {
		return c, false
	}

	wf := cloneWorkflow(c.Workflow)
	wf[idx].Status = StepStatusActionNeeded
	wf[idx].Date = stamp(now)
	if wf[idx].Actor == StepActorInfluencer {
		wf[idx].ActionLabel = defaultActionLabel(wf[idx].ID)
	}

	c.Workflow = wf
	return c, true
}

// AttachFeedback sets brand feedback on a step that is not yet completed.
func AttachFeedback(c Collaboration, stepID int, feedback string) (Collaboration, bool) {
	idx := stepIndex(c.Workflow, stepID)
	if idx < 0 || c.Workflow[idx].Status == StepStatusCompleted {
		return c, false
	}

	wf := cloneWorkflow(c.Workflow)
	wf[idx].Feedback = feedback
	c.Workflow = wf
	return c, true
}

// CurrentActionStep returns the first step in Action Needed.
func CurrentActionStep(c Collaboration) (WorkflowStep, bool) {
	for _, s := range c.Workflow {
		if s.Status == StepStatusActionNeeded {
			return s, true
		}
	}
	return WorkflowStep{}, false
}

// FrontierStep returns the single step that is Action Needed or Waiting.
func FrontierStep(c Collaboration) (WorkflowStep, bool) {
	idx := frontierIndex(c.Workflow)
	if idx < 0 {
		return WorkflowStep{}, false
	}
	return c.Workflow[idx], true
}

// StatusLabel is the title of the step awaiting action, or a fallback.
func StatusLabel(c Collaboration) string {
	if s, ok := CurrentActionStep(c); ok {
		return s.Title
	}
	if IsWorkflowComplete(c.Workflow) {
		return CollaborationStatusCompleted
	}
	return StatusLabelFallback
}

// IsWorkflowComplete reports whether every step is Completed.
func IsWorkflowComplete(steps []WorkflowStep) bool {
	if len(steps) == 0 {
		return false
	}
	for _, s := range steps {
		if s.Status != StepStatusCompleted {
			return false
		}
	}
	return true
}

// CheckFrontier verifies the single-frontier shape: a Completed prefix, at most
// one Action Needed or Waiting step, then only Upcoming steps.
func CheckFrontier(steps []WorkflowStep) error {
	if len(steps) == 0 {
		return fmt.Errorf("workflow has no steps")
	}

	const (
		phaseCompleted = iota
		phaseUpcoming
	)
	phase := phaseCompleted
	for i, s := range steps {
		if s.ID != i+1 {
			return fmt.Errorf("step at position %d has id %d", i, s.ID)
		}
		switch s.Status {
		case StepStatusCompleted:
			if phase != phaseCompleted {
				return fmt.Errorf("step %d is completed after the frontier", s.ID)
			}
		case StepStatusActionNeeded, StepStatusWaiting:
			if phase != phaseCompleted {
				return fmt.Errorf("step %d is a second frontier", s.ID)
			}
			phase = phaseUpcoming
		case StepStatusUpcoming:
			phase = phaseUpcoming
		default:
			return fmt.Errorf("step %d has unknown status %q", s.ID, s.Status)
		}
	}
	return nil
}

func stepIndex(steps []WorkflowStep, stepID int) int {
	for i := range steps {
		if steps[i].ID == stepID {
			return i
		}
	}
	return -1
}

func frontierIndex(steps []WorkflowStep) int {
	for i := range steps {
		switch steps[i].Status {
		case StepStatusActionNeeded, StepStatusWaiting:
			return i
		}
	}
	return -1
}

func defaultActionLabel(stepID int) string {
	if stepID < 1 || stepID > len(influencerWorkflow) {
		return ""
	}
	return influencerWorkflow[stepID-1].actionLabel
}

func cloneWorkflow(steps []WorkflowStep) []WorkflowStep {
	out := make([]WorkflowStep, len(steps))
	copy(out, steps)
	return out
}

func stamp(t time.Time) *time.Time {
	return &t
}
