package models

import (
	"reflect"
	"testing"
	"time"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestCollaboration() Collaboration {
	return NewCollaboration(Application{
		ID:       "app-1",
		Campaign: Campaign{ID: 42, BrandName: "Glow", CampaignTitle: "Summer Glow"},
		Status:   ApplicationStatusAccepted,
	})
}

func statuses(steps []WorkflowStep) []string {
	out := make([]string, len(steps))
	for i, s := range steps {
		out[i] = s.Status
	}
	return out
}

func TestNewInfluencerWorkflow(t *testing.T) {
	steps := NewInfluencerWorkflow()
	if len(steps) != 7 {
		t.Fatalf("expected 7 steps, got %d", len(steps))
	}
	if steps[0].Status != StepStatusActionNeeded {
		t.Errorf("first step status = %q, want %q", steps[0].Status, StepStatusActionNeeded)
	}
	if steps[0].ActionLabel == "" {
		t.Errorf("first step should carry an action label")
	}
	for _, s := range steps[1:] {
		if s.Status != StepStatusUpcoming {
			t.Errorf("step %d status = %q, want %q", s.ID, s.Status, StepStatusUpcoming)
		}
		if s.ActionLabel != "" {
			t.Errorf("upcoming step %d should not carry an action label", s.ID)
		}
	}
	if err := CheckFrontier(steps); err != nil {
		t.Errorf("fresh workflow violates frontier: %v", err)
	}
}

func TestNewCollaborationDerivesID(t *testing.T) {
	c := newTestCollaboration()
	if c.ID != "collab-app-1" {
		t.Errorf("collaboration id = %q, want collab-app-1", c.ID)
	}
	if c.Status != CollaborationStatusInProgress {
		t.Errorf("status = %q, want %q", c.Status, CollaborationStatusInProgress)
	}
}

func TestAdvanceCompletesAndOpensNext(t *testing.T) {
	c := newTestCollaboration()

	next, changed := Advance(c, 1, testNow)
	if !changed {
		t.Fatalf("expected advance to change the workflow")
	}

	first := next.Workflow[0]
	if first.Status != StepStatusCompleted {
		t.Errorf("step 1 status = %q, want Completed", first.Status)
	}
	if first.Date == nil || !first.Date.Equal(testNow) {
		t.Errorf("step 1 date = %v, want %v", first.Date, testNow)
	}
	if first.ActionLabel != "" {
		t.Errorf("completed step should drop its action label")
	}

	second := next.Workflow[1]
	if second.Status != StepStatusWaiting {
		t.Errorf("step 2 status = %q, want Waiting", second.Status)
	}
	if second.Date == nil {
		t.Errorf("step 2 should be stamped")
	}
	for _, s := range next.Workflow[2:] {
		if s.Status != StepStatusUpcoming {
			t.Errorf("step %d status = %q, want Upcoming", s.ID, s.Status)
		}
	}
}

func TestAdvanceDoesNotMutateInput(t *testing.T) {
	c := newTestCollaboration()
	before := cloneWorkflow(c.Workflow)

	next, _ := Advance(c, 1, testNow)

	if !reflect.DeepEqual(c.Workflow, before) {
		t.Errorf("input workflow was mutated")
	}
	if &next.Workflow[0] == &c.Workflow[0] {
		t.Errorf("advanced collaboration shares the input workflow array")
	}
}

func TestAdvanceNoOp(t *testing.T) {
	base := newTestCollaboration()
	waiting, _ := Advance(base, 1, testNow)

	tests := []struct {
		name   string
		c      Collaboration
		stepID int
	}{
		{"unknown step", base, 99},
		{"zero step", base, 0},
		{"upcoming step", base, 3},
		{"completed step", waiting, 1},
		{"waiting step", waiting, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := cloneWorkflow(tt.c.Workflow)
			got, changed := Advance(tt.c, tt.stepID, testNow.Add(time.Hour))
			if changed {
				t.Errorf("expected no-op")
			}
			if !reflect.DeepEqual(got.Workflow, before) {
				t.Errorf("workflow changed on no-op: %v", statuses(got.Workflow))
			}
		})
	}
}

// driveToCompletion alternates brand promotion and user advance until done.
func driveToCompletion(t *testing.T, c Collaboration) Collaboration {
	t.Helper()
	for i := 0; i < 2*len(c.Workflow); i++ {
		if step, ok := CurrentActionStep(c); ok {
			c, _ = Advance(c, step.ID, testNow)
		} else {
			c, _ = PromoteWaiting(c, testNow)
		}
		if err := CheckFrontier(c.Workflow); err != nil {
			t.Fatalf("frontier violated after step: %v (%v)", err, statuses(c.Workflow))
		}
		if IsWorkflowComplete(c.Workflow) {
			return c
		}
	}
	t.Fatalf("workflow did not complete: %v", statuses(c.Workflow))
	return c
}

func TestSingleFrontierHoldsThroughout(t *testing.T) {
	c := driveToCompletion(t, newTestCollaboration())
	if StatusLabel(c) != CollaborationStatusCompleted {
		t.Errorf("status label = %q, want Completed", StatusLabel(c))
	}
}

func TestAdvanceAfterCompletionIsNoOp(t *testing.T) {
	c := driveToCompletion(t, newTestCollaboration())
	before := cloneWorkflow(c.Workflow)

	for id := 0; id <= len(c.Workflow)+1; id++ {
		got, changed := Advance(c, id, testNow.Add(time.Hour))
		if changed {
			t.Errorf("advance(%d) changed a completed workflow", id)
		}
		if !reflect.DeepEqual(got.Workflow, before) {
			t.Errorf("advance(%d) mutated a completed workflow", id)
		}
	}
	if _, ok := PromoteWaiting(c, testNow); ok {
		t.Errorf("promote changed a completed workflow")
	}
}

func TestPromoteWaiting(t *testing.T) {
	c, _ := Advance(newTestCollaboration(), 1, testNow)

	promoted, changed := PromoteWaiting(c, testNow)
	if !changed {
		t.Fatalf("expected waiting step to be promoted")
	}
	step := promoted.Workflow[1]
	if step.Status != StepStatusActionNeeded {
		t.Errorf("step 2 status = %q, want Action Needed", step.Status)
	}
	if step.ActionLabel != "Submit Draft" {
		t.Errorf("step 2 action label = %q, want Submit Draft", step.ActionLabel)
	}

	if _, again := PromoteWaiting(promoted, testNow); again {
		t.Errorf("promoting an Action Needed frontier should be a no-op")
	}

	// Brand steps get no action label.
	c, _ = Advance(promoted, 2, testNow)
	brand, _ := PromoteWaiting(c, testNow)
	if brand.Workflow[2].ActionLabel != "" {
		t.Errorf("brand step should not carry an action label, got %q", brand.Workflow[2].ActionLabel)
	}
}

func TestAttachFeedback(t *testing.T) {
	c := newTestCollaboration()

	got, ok := AttachFeedback(c, 4, "Brighter lighting please")
	if !ok {
		t.Fatalf("expected feedback to attach")
	}
	if got.Workflow[4-1].Feedback != "Brighter lighting please" {
		t.Errorf("feedback not set")
	}
	if c.Workflow[3].Feedback != "" {
		t.Errorf("input mutated")
	}

	done, _ := Advance(c, 1, testNow)
	if _, ok := AttachFeedback(done, 1, "late"); ok {
		t.Errorf("feedback on a completed step should be refused")
	}
}

func TestStatusLabel(t *testing.T) {
	c := newTestCollaboration()
	if got := StatusLabel(c); got != "Application Accepted" {
		t.Errorf("label = %q, want Application Accepted", got)
	}
	waiting, _ := Advance(c, 1, testNow)
	if got := StatusLabel(waiting); got != StatusLabelFallback {
		t.Errorf("label = %q, want %q", got, StatusLabelFallback)
	}
}

func TestFrontierStep(t *testing.T) {
	c, _ := Advance(newTestCollaboration(), 1, testNow)
	step, ok := FrontierStep(c)
	if !ok || step.ID != 2 || step.Status != StepStatusWaiting {
		t.Errorf("frontier = %+v (%v), want waiting step 2", step, ok)
	}
	if _, ok := CurrentActionStep(c); ok {
		t.Errorf("no step should be Action Needed while waiting")
	}
}

func TestCheckFrontier(t *testing.T) {
	mk := func(ss ...string) []WorkflowStep {
		steps := make([]WorkflowStep, len(ss))
		for i, s := range ss {
			steps[i] = WorkflowStep{ID: i + 1, Status: s}
		}
		return steps
	}
	C, A, W, U := StepStatusCompleted, StepStatusActionNeeded, StepStatusWaiting, StepStatusUpcoming

	tests := []struct {
		name  string
		steps []WorkflowStep
		valid bool
	}{
		{"fresh", mk(A, U, U), true},
		{"waiting frontier", mk(C, W, U), true},
		{"all completed", mk(C, C, C), true},
		{"no frontier yet", mk(U, U), true},
		{"empty", nil, false},
		{"two frontiers", mk(C, A, W), false},
		{"completed after frontier", mk(A, C, U), false},
		{"gap", mk(C, U, C), false},
		{"unknown status", mk(C, "Paused"), false},
		{"bad ids", []WorkflowStep{{ID: 2, Status: A}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckFrontier(tt.steps)
			if (err == nil) != tt.valid {
				t.Errorf("CheckFrontier(%v) error = %v, want valid=%v", statuses(tt.steps), err, tt.valid)
			}
		})
	}
}
