package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/influencer-portal/backend/internal/http/dto"
	"github.com/influencer-portal/backend/internal/models"
)

type MetaHandler struct{}

func NewMetaHandler() *MetaHandler {
	return &MetaHandler{}
}

// MetaOptions are the predefined choices offered by the profile forms.
type MetaOptions struct {
	Niches             []string `json:"niches"`
	CollaborationTypes []string `json:"collaboration_types"`
	AudienceSegments   []string `json:"audience_segments"`
	Interests          []string `json:"interests"`
	Genders            []string `json:"genders"`
	Platforms          []string `json:"platforms"`
}

var predefinedNiches = []string{
	"Fashion", "Beauty", "Tech", "Lifestyle", "Fitness", "Food", "Travel", "Gaming",
	"Photography", "Music", "Entertainment", "Education", "Business",
	"Health & Wellness", "Parenting",
}

var predefinedCollaborationTypes = []string{
	"Sponsored Posts", "Product Reviews", "Brand Ambassadorship", "Affiliate Marketing",
	"Event Appearances", "UGC Content", "Giveaways",
}

var predefinedAudienceSegments = []string{
	"Gen Z (18-24)", "Millennials (25-40)", "Gen X (41-56)", "Parents", "Students",
	"Tech Enthusiasts", "Fashion Lovers", "Foodies", "Fitness Fanatics", "Gamers",
}

var predefinedInterests = []string{
	"Beauty & Cosmetics", "Clothes, Shoes, Handbags & Accessories", "Art & Design",
	"Fashion", "Lifestyle", "Fitness", "Food & Drink", "Travel", "Technology",
	"Gaming", "Photography", "Music", "Entertainment", "Education", "Business",
	"Health & Wellness", "Parenting", "DIY & Crafts", "Automotive", "Sports",
}

func (h *MetaHandler) GetOptions(c *fiber.Ctx) error {
	return c.JSON(dto.SuccessResponse{OK: true, Data: MetaOptions{
		Niches:             predefinedNiches,
		CollaborationTypes: predefinedCollaborationTypes,
		AudienceSegments:   predefinedAudienceSegments,
		Interests:          predefinedInterests,
		Genders:            models.AllGenders,
		Platforms:          models.AllPlatforms,
	}})
}
