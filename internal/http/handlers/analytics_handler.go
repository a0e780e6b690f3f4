package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/influencer-portal/backend/internal/http/dto"
)

// AnalyticsHandler serves fixed illustrative series; nothing is computed.
type AnalyticsHandler struct{}

func NewAnalyticsHandler() *AnalyticsHandler {
	return &AnalyticsHandler{}
}

type FollowerPoint struct {
	Month     string `json:"month"`
	Followers int    `json:"followers"`
}

type EngagementPoint struct {
	Month     string  `json:"month"`
	Instagram float64 `json:"instagram"`
	YouTube   float64 `json:"youtube"`
}

type TopContent struct {
	Platform   string  `json:"platform"`
	Content    string  `json:"content"`
	Engagement float64 `json:"engagement"`
	Date       string  `json:"date"`
}

type Analytics struct {
	FollowerGrowth []FollowerPoint   `json:"follower_growth"`
	Engagement     []EngagementPoint `json:"engagement"`
	TopContent     []TopContent      `json:"top_content"`
}

var sampleAnalytics = Analytics{
	FollowerGrowth: []FollowerPoint{
		{"Jan", 4000}, {"Feb", 3000}, {"Mar", 5000},
		{"Apr", 4500}, {"May", 6000}, {"Jun", 7500},
	},
	Engagement: []EngagementPoint{
		{"Jan", 4.5, 10.2}, {"Feb", 4.2, 11.1}, {"Mar", 5.1, 12.0},
		{"Apr", 4.8, 11.5}, {"May", 5.5, 12.5}, {"Jun", 5.8, 13.1},
	},
	TopContent: []TopContent{
		{"Instagram Reel", "My Morning Routine", 18.5, "2024-06-15"},
		{"YouTube Video", "Unboxing the latest tech", 15.2, "2024-06-10"},
		{"Instagram Post", "Summer fashion haul", 12.1, "2024-06-05"},
	},
}

func (h *AnalyticsHandler) GetAnalytics(c *fiber.Ctx) error {
	return c.JSON(dto.SuccessResponse{OK: true, Data: sampleAnalytics})
}
