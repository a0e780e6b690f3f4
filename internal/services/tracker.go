package services

import (
	"strconv"
	"sync"
	"time"

	"github.com/influencer-portal/backend/internal/clock"
	"github.com/influencer-portal/backend/internal/models"
)

const applicationIDPrefix = "app-"

// IDGenerator hands out time-based ids that never repeat within the process.
type IDGenerator struct {
	clock clock.Clock
	mu    sync.Mutex
	last  int64
}

func NewIDGenerator(c clock.Clock) *IDGenerator {
	return &IDGenerator{clock: c}
}

func (g *IDGenerator) Next(prefix string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := g.clock.Now().UnixNano()
	if n <= g.last {
		n = g.last + 1
	}
	g.last = n
	return prefix + strconv.FormatInt(n, 10)
}

// Apply appends an Applied application for campaign. It is a no-op when an
// application for the same campaign already exists, whatever its status.
// The input slice is never modified.
func Apply(apps []models.Application, campaign models.Campaign, id string, now time.Time) ([]models.Application, models.Application, bool) {
	for _, a := range apps {
		if a.Campaign.ID == campaign.ID {
			return apps, a, false
		}
	}
	app := models.Application{
		ID:          id,
		Campaign:    campaign,
		Status:      models.ApplicationStatusApplied,
		AppliedDate: now,
	}
	out := make([]models.Application, len(apps), len(apps)+1)
	copy(out, apps)
	return append(out, app), app, true
}

func findApplication(apps []models.Application, id string) int {
	for i := range apps {
		if apps[i].ID == id {
			return i
		}
	}
	return -1
}

func findCollaboration(collabs []models.Collaboration, id string) int {
	for i := range collabs {
		if collabs[i].ID == id {
			return i
		}
	}
	return -1
}
