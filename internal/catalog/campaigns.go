package catalog

import "github.com/influencer-portal/backend/internal/models"

var defaultCampaigns = []models.Campaign{
	{
		ID:            1,
		BrandName:     "Lumière Beauty",
		CampaignTitle: "Summer Glow Skincare Launch",
		CampaignImage: "https://picsum.photos/seed/glow/600/400",
		Tags:          []string{"Beauty", "Skincare", "Lifestyle"},
		Compensation:  "$1,500 + Products",
		Specifications: models.CampaignSpecifications{
			Brand:              "Lumière Beauty",
			Budget:             "$1,000 - $2,000",
			InfluencerAge:      "21-35",
			InfluencerLocation: "United States",
			Followers:          "10K - 100K",
			AudienceLocation:   "United States, Canada",
			AudienceAge:        "18-34",
		},
		Description: "Show your morning routine with our new SPF serum and tell your audience why sun care matters all year round.",
		ContentReferences: []models.ContentReference{
			{Title: "Brand mood board", URL: "https://example.com/lumiere/moodboard"},
		},
		Deliverables:      []string{"1 Instagram Reel (30-60s)", "3 Instagram Stories with link sticker"},
		CTA:               []string{"Shop the serum", "Use code GLOW15"},
		MediaRequirements: models.MediaRequirements{Reels: 1, Stories: 3, Posts: 0},
		PaymentTerms:      "50% on approval, 50% after posting",
		AboutTheBrand:     "Clean, dermatologist-tested skincare made in small batches.",
	},
	{
		ID:            2,
		BrandName:     "Peak Gear",
		CampaignTitle: "Trail Season Essentials",
		CampaignImage: "https://picsum.photos/seed/trail/600/400",
		Tags:          []string{"Fitness", "Travel", "Outdoors"},
		Compensation:  "$2,000",
		Specifications: models.CampaignSpecifications{
			Brand:              "Peak Gear",
			Budget:             "$2,000",
			InfluencerAge:      "20-40",
			InfluencerLocation: "Europe",
			Followers:          "50K+",
			AudienceLocation:   "Europe",
			AudienceAge:        "20-45",
		},
		Description:       "Take our ultralight pack on a weekend hike and document the route.",
		Deliverables:      []string{"1 YouTube video (5-10 min)", "2 Instagram posts"},
		CTA:               []string{"Visit peakgear.example"},
		MediaRequirements: models.MediaRequirements{Reels: 0, Stories: 2, Posts: 2},
		PaymentTerms:      "Net 30 after posting",
		AboutTheBrand:     "Outdoor equipment designed by hikers for hikers.",
	},
	{
		ID:            3,
		BrandName:     "ByteBox",
		CampaignTitle: "Smart Desk Setup Challenge",
		CampaignImage: "https://picsum.photos/seed/desk/600/400",
		Tags:          []string{"Tech", "Productivity"},
		Compensation:  "$800 + Device",
		Specifications: models.CampaignSpecifications{
			Brand:              "ByteBox",
			Budget:             "$500 - $1,000",
			InfluencerAge:      "18+",
			InfluencerLocation: "Worldwide",
			Followers:          "5K+",
			AudienceLocation:   "Worldwide",
			AudienceAge:        "18-40",
		},
		Description:       "Unbox the ByteBox hub and rebuild your desk setup around it.",
		Deliverables:      []string{"1 TikTok video", "1 Instagram Reel"},
		CTA:               []string{"Link in bio"},
		MediaRequirements: models.MediaRequirements{Reels: 1, Stories: 0, Posts: 0},
		PaymentTerms:      "Paid on posting",
		AboutTheBrand:     "Accessories that make small spaces work harder.",
	},
	{
		ID:            42,
		BrandName:     "Verde Kitchen",
		CampaignTitle: "Plant-Based Week",
		CampaignImage: "https://picsum.photos/seed/verde/600/400",
		Tags:          []string{"Food", "Lifestyle", "Health & Wellness"},
		Compensation:  "$1,200",
		Specifications: models.CampaignSpecifications{
			Brand:              "Verde Kitchen",
			Budget:             "$1,200",
			InfluencerAge:      "21+",
			InfluencerLocation: "United Kingdom",
			Followers:          "20K - 200K",
			AudienceLocation:   "United Kingdom",
			AudienceAge:        "25-44",
		},
		Description:       "Cook three recipes from our meal kit over one week and share the results.",
		Deliverables:      []string{"3 Instagram posts", "5 Instagram Stories"},
		CTA:               []string{"Order your first box"},
		MediaRequirements: models.MediaRequirements{Reels: 0, Stories: 5, Posts: 3},
		PaymentTerms:      "100% after final post",
		AboutTheBrand:     "Seasonal plant-based meal kits delivered weekly.",
	},
	{
		ID:            5,
		BrandName:     "Atelier Nord",
		CampaignTitle: "Autumn Capsule Wardrobe",
		CampaignImage: "https://picsum.photos/seed/nord/600/400",
		Tags:          []string{"Fashion", "Lifestyle"},
		Compensation:  "$2,500",
		Specifications: models.CampaignSpecifications{
			Brand:              "Atelier Nord",
			Budget:             "$2,000 - $3,000",
			InfluencerAge:      "22-38",
			InfluencerLocation: "Nordics",
			Followers:          "100K+",
			AudienceLocation:   "Europe",
			AudienceAge:        "22-40",
		},
		Description:       "Style five looks from a ten-piece capsule collection.",
		Deliverables:      []string{"1 Instagram carousel", "1 Reel", "4 Stories"},
		CTA:               []string{"Discover the collection"},
		MediaRequirements: models.MediaRequirements{Reels: 1, Stories: 4, Posts: 1},
		PaymentTerms:      "50% upfront, 50% after posting",
		AboutTheBrand:     "Slow fashion from Scandinavian workshops.",
	},
}
