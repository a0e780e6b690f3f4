package catalog

import (
	"testing"

	"github.com/influencer-portal/backend/internal/models"
)

func TestDefaultCatalogHasUniqueIDs(t *testing.T) {
	cat := Default()
	if len(cat.All()) != len(defaultCampaigns) {
		t.Fatalf("expected %d campaigns, got %d", len(defaultCampaigns), len(cat.All()))
	}
	if _, ok := cat.Get(42); !ok {
		t.Errorf("campaign 42 should exist")
	}
	if _, ok := cat.Get(-1); ok {
		t.Errorf("campaign -1 should not exist")
	}
}

func TestNewIgnoresDuplicates(t *testing.T) {
	cat := New([]models.Campaign{
		{ID: 1, CampaignTitle: "first"},
		{ID: 1, CampaignTitle: "second"},
	})
	got, _ := cat.Get(1)
	if got.CampaignTitle != "first" {
		t.Errorf("expected first campaign to win, got %q", got.CampaignTitle)
	}
	if len(cat.All()) != 1 {
		t.Errorf("expected 1 campaign, got %d", len(cat.All()))
	}
}

func TestFilterByTag(t *testing.T) {
	cat := New([]models.Campaign{
		{ID: 1, Tags: []string{"Beauty", "Lifestyle"}},
		{ID: 2, Tags: []string{"Tech"}},
		{ID: 3, Tags: []string{"lifestyle"}},
	})

	tests := []struct {
		tag  string
		want int
	}{
		{"", 3},
		{"Lifestyle", 2},
		{"tech", 1},
		{"Gaming", 0},
	}
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			if got := len(cat.FilterByTag(tt.tag)); got != tt.want {
				t.Errorf("FilterByTag(%q) = %d campaigns, want %d", tt.tag, got, tt.want)
			}
		})
	}
}

func TestAllReturnsCopy(t *testing.T) {
	cat := New([]models.Campaign{{ID: 1, CampaignTitle: "a"}})
	all := cat.All()
	all[0].CampaignTitle = "changed"
	got, _ := cat.Get(1)
	if got.CampaignTitle != "a" {
		t.Errorf("catalog was mutated through All()")
	}
}
