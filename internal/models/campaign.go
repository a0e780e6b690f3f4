package models

import "strings"

type CampaignSpecifications struct {
	Brand              string `json:"brand"`
	Budget             string `json:"budget"`
	InfluencerAge      string `json:"influencer_age"`
	InfluencerLocation string `json:"influencer_location"`
	Followers          string `json:"followers"`
	AudienceLocation   string `json:"audience_location"`
	AudienceAge        string `json:"audience_age"`
}

type ContentReference struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

type MediaRequirements struct {
	Reels   int `json:"reels"`
	Stories int `json:"stories"`
	Posts   int `json:"posts"`
}

// Campaign is a brand's sponsorship offer. Read-only reference data.
type Campaign struct {
	ID                int                    `json:"id"`
	BrandName         string                 `json:"brand_name"`
	CampaignTitle     string                 `json:"campaign_title"`
	CampaignImage     string                 `json:"campaign_image"`
	Tags              []string               `json:"tags"`
	Compensation      string                 `json:"compensation"`
	Specifications    CampaignSpecifications `json:"specifications"`
	Description       string                 `json:"description"`
	ContentReferences []ContentReference     `json:"content_references"`
	Deliverables      []string               `json:"deliverables"`
	CTA               []string               `json:"cta"`
	MediaRequirements MediaRequirements      `json:"media_requirements"`
	PaymentTerms      string                 `json:"payment_terms"`
	AboutTheBrand     string                 `json:"about_the_brand"`
}

// HasTag reports whether the campaign carries tag, ignoring case.
func (c *Campaign) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if strings.EqualFold(strings.TrimSpace(t), strings.TrimSpace(tag)) {
			return true
		}
	}
	return false
}
