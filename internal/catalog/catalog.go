// Package catalog holds the read-only list of sponsorship campaigns.
package catalog

import (
	"sort"

	"github.com/influencer-portal/backend/internal/models"
)

type Catalog struct {
	campaigns []models.Campaign
	byID      map[int]int
}

// New builds a catalog over campaigns. Later duplicates of an id are ignored.
func New(campaigns []models.Campaign) *Catalog {
	c := &Catalog{byID: make(map[int]int, len(campaigns))}
	for _, camp := range campaigns {
		if _, dup := c.byID[camp.ID]; dup {
			continue
		}
		c.byID[camp.ID] = len(c.campaigns)
		c.campaigns = append(c.campaigns, camp)
	}
	return c
}

// Default returns the catalog shipped with the portal.
func Default() *Catalog {
	return New(defaultCampaigns)
}

func (c *Catalog) All() []models.Campaign {
	out := make([]models.Campaign, len(c.campaigns))
	copy(out, c.campaigns)
	return out
}

func (c *Catalog) Get(id int) (models.Campaign, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return models.Campaign{}, false
	}
	return c.campaigns[idx], true
}

// FilterByTag returns campaigns carrying tag. An empty tag matches everything.
func (c *Catalog) FilterByTag(tag string) []models.Campaign {
	if tag == "" {
		return c.All()
	}
	var out []models.Campaign
	for i := range c.campaigns {
		if c.campaigns[i].HasTag(tag) {
			out = append(out, c.campaigns[i])
		}
	}
	return out
}

// Tags lists every distinct tag in the catalog, sorted.
func (c *Catalog) Tags() []string {
	seen := map[string]struct{}{}
	for _, camp := range c.campaigns {
		for _, t := range camp.Tags {
			seen[t] = struct{}{}
		}
	}
	tags := make([]string, 0, len(seen))
	for t := range seen {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}
