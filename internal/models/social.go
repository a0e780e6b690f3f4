package models

import (
	"strings"
	"time"
)

// Platforms that can be connected.
const (
	PlatformInstagram = "Instagram"
	PlatformYouTube   = "YouTube"
	PlatformTikTok    = "TikTok"
)

var AllPlatforms = []string{PlatformInstagram, PlatformYouTube, PlatformTikTok}

// NormalizePlatform maps user input such as "youtube" to its canonical name.
func NormalizePlatform(p string) (string, bool) {
	for _, v := range AllPlatforms {
		if strings.EqualFold(v, strings.TrimSpace(p)) {
			return v, true
		}
	}
	return "", false
}

type RecentPost struct {
	ID       int    `json:"id"`
	Image    string `json:"image"`
	Likes    int    `json:"likes"`
	Comments int    `json:"comments"`
}

type SocialAccount struct {
	Platform       string       `json:"platform"`
	Handle         string       `json:"handle"`
	URL            string       `json:"url"`
	Followers      int          `json:"followers"`
	EngagementRate float64      `json:"engagement_rate"`
	AvgLikes       int          `json:"avg_likes"`
	AvgComments    int          `json:"avg_comments"`
	AvgViews       int          `json:"avg_views"`
	AvgWatchTime   int          `json:"avg_watch_time"`
	Connected      bool         `json:"connected"`
	LastSync       time.Time    `json:"last_sync"`
	RecentPosts    []RecentPost `json:"recent_posts"`
}
