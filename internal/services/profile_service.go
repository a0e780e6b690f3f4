package services

import (
	"context"
	"fmt"
	"html"
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/influencer-portal/backend/internal/clock"
	"github.com/influencer-portal/backend/internal/models"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

// Free-text profile fields are stored as plain text.
var plainText = bluemonday.StrictPolicy()

var angleBrackets = strings.NewReplacer("<", "", ">", "")

// sanitizeText decodes entities before the policy runs, so encoded markup is
// stripped as well. The result never contains < or >.
func sanitizeText(s string) string {
	s = plainText.Sanitize(html.UnescapeString(s))
	return strings.TrimSpace(angleBrackets.Replace(html.UnescapeString(s)))
}

// ProfileUpdate carries the editable part of a profile. E-mail and social
// accounts are managed elsewhere.
type ProfileUpdate struct {
	FullName                string   `json:"full_name"`
	ProfilePicture          *string  `json:"profile_picture"`
	Bio                     string   `json:"bio"`
	Phone                   string   `json:"phone"`
	Country                 string   `json:"country"`
	City                    string   `json:"city"`
	DOB                     string   `json:"dob"`
	Gender                  string   `json:"gender"`
	Languages               []string `json:"languages"`
	Niche                   []string `json:"niche"`
	Website                 []string `json:"website"`
	Experience              int      `json:"experience"`
	AudienceDemographics    []string `json:"audience_demographics"`
	ContentStyle            string   `json:"content_style"`
	PreferredCollaborations []string `json:"preferred_collaborations"`
	Interests               []string `json:"interests"`
}

// ProfileStats aggregates the connected social accounts.
type ProfileStats struct {
	ConnectedAccounts   int     `json:"connected_accounts"`
	TotalFollowers      int     `json:"total_followers"`
	TotalFollowersLabel string  `json:"total_followers_label"`
	AvgLikes            int     `json:"avg_likes"`
	AvgComments         int     `json:"avg_comments"`
	AvgViews            int     `json:"avg_views"`
	AvgEngagementRate   float64 `json:"avg_engagement_rate"`
	AvgWatchTime        int     `json:"avg_watch_time"`
	Age                 *int    `json:"age,omitempty"`
	Authenticity        int     `json:"authenticity"`
}

type ProfileService struct {
	users UserStore
	clock clock.Clock
	log   *zap.Logger
}

func NewProfileService(users UserStore, clk clock.Clock, log *zap.Logger) *ProfileService {
	return &ProfileService{users: users, clock: clk, log: log}
}

func (s *ProfileService) Get(ctx context.Context, email string) (*models.UserProfile, error) {
	rec, err := s.record(ctx, email)
	if err != nil {
		return nil, err
	}
	return &rec.Profile, nil
}

// Update validates in and applies it to the stored record. The write goes
// through UpdateUser so a concurrent social account change is not lost.
func (s *ProfileService) Update(ctx context.Context, email string, in ProfileUpdate) (*models.UserProfile, error) {
	if err := validateProfileUpdate(in); err != nil {
		return nil, err
	}

	rec, err := s.users.UpdateUser(ctx, email, func(rec *models.UserRecord) error {
		rec.Profile = applyProfileUpdate(rec.Profile, in)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	if rec == nil {
		return nil, fmt.Errorf("user %s: %w", email, ErrNotFound)
	}
	return &rec.Profile, nil
}

func validateProfileUpdate(in ProfileUpdate) error {
	errs := fieldErrors{}
	if sanitizeText(in.FullName) == "" {
		errs.add("full_name", "This field is required.")
	}
	if in.Gender != "" && !models.IsValidGender(in.Gender) {
		errs.add("gender", "Unknown gender option.")
	}
	if in.DOB != "" {
		if _, err := time.Parse(dobLayout, in.DOB); err != nil {
			errs.add("dob", "Use the YYYY-MM-DD format.")
		}
	}
	if in.Experience < 0 {
		errs.add("experience", "Experience cannot be negative.")
	}
	return errs.err()
}

func applyProfileUpdate(p models.UserProfile, in ProfileUpdate) models.UserProfile {
	p.FullName = sanitizeText(in.FullName)
	if in.ProfilePicture != nil {
		p.ProfilePicture = in.ProfilePicture
	}
	p.Bio = sanitizeText(in.Bio)
	p.Phone = strings.TrimSpace(in.Phone)
	p.Country = sanitizeText(in.Country)
	p.City = sanitizeText(in.City)
	p.DOB = in.DOB
	p.Gender = in.Gender
	p.Languages = cleanList(in.Languages)
	p.Niche = cleanList(in.Niche)
	p.Website = cleanList(in.Website)
	p.Experience = in.Experience
	p.AudienceDemographics = cleanList(in.AudienceDemographics)
	p.ContentStyle = sanitizeText(in.ContentStyle)
	p.PreferredCollaborations = cleanList(in.PreferredCollaborations)
	p.Interests = cleanList(in.Interests)
	return p
}

func (s *ProfileService) Stats(ctx context.Context, email string) (*ProfileStats, error) {
	rec, err := s.record(ctx, email)
	if err != nil {
		return nil, err
	}
	stats := AggregateStats(rec.Profile.SocialAccounts)
	stats.Authenticity = rec.Profile.Authenticity
	stats.TotalFollowersLabel = humanize.Comma(int64(stats.TotalFollowers))
	if dob, err := time.Parse(dobLayout, rec.Profile.DOB); err == nil {
		age := AgeOn(dob, s.clock.Now())
		stats.Age = &age
	}
	return &stats, nil
}

func (s *ProfileService) record(ctx context.Context, email string) (*models.UserRecord, error) {
	rec, err := s.users.GetUser(ctx, email)
	if err != nil {
		s.log.Warn("user lookup failed, treating as absent", zap.String("email", email), zap.Error(err))
		rec = nil
	}
	if rec == nil {
		return nil, fmt.Errorf("user %s: %w", email, ErrNotFound)
	}
	return rec, nil
}

// AggregateStats sums followers and averages the other metrics over connected
// accounts. Averages round to the nearest integer, engagement to 2 decimals.
func AggregateStats(accounts []models.SocialAccount) ProfileStats {
	var st ProfileStats
	var likes, comments, views, watch int
	var engagement float64
	for _, a := range accounts {
		if !a.Connected {
			continue
		}
		st.ConnectedAccounts++
		st.TotalFollowers += a.Followers
		likes += a.AvgLikes
		comments += a.AvgComments
		views += a.AvgViews
		watch += a.AvgWatchTime
		engagement += a.EngagementRate
	}
	if st.ConnectedAccounts == 0 {
		return st
	}
	n := float64(st.ConnectedAccounts)
	st.AvgLikes = int(math.Round(float64(likes) / n))
	st.AvgComments = int(math.Round(float64(comments) / n))
	st.AvgViews = int(math.Round(float64(views) / n))
	st.AvgWatchTime = int(math.Round(float64(watch) / n))
	st.AvgEngagementRate = math.Round(engagement/n*100) / 100
	return st
}

// AgeOn returns full years between dob and now.
func AgeOn(dob, now time.Time) int {
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age
}
