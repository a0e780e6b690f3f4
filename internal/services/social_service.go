package services

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/influencer-portal/backend/internal/clock"
	"github.com/influencer-portal/backend/internal/events"
	"github.com/influencer-portal/backend/internal/models"
	"go.uber.org/zap"
)

// OAuth outcomes reported by the consent window.
const (
	OAuthOutcomeSuccess = "success"
	OAuthOutcomeDenied  = "denied"
	OAuthOutcomeClosed  = "closed"
)

// OAuth request states
const (
	OAuthStateAuthorizing = "authorizing"
	OAuthStateFinalizing  = "finalizing"
	OAuthStateConnected   = "connected"
	OAuthStateDenied      = "denied"
	OAuthStateClosed      = "closed"
)

const recentPostCount = 5

// Requests idle for longer than this are dropped: abandoned consent windows
// and finalizes cancelled by a workspace teardown.
const oauthRequestTTL = 15 * time.Minute

// OAuthRequest tracks one simulated connect flow.
type OAuthRequest struct {
	ID        string    `json:"id"`
	Email     string    `json:"-"`
	Platform  string    `json:"platform"`
	State     string    `json:"state"`
	CreatedAt time.Time `json:"created_at"`

	touched time.Time
}

type SocialService struct {
	users     UserStore
	publisher events.Publisher
	clock     clock.Clock
	delay     time.Duration
	ttl       time.Duration
	log       *zap.Logger

	mu       sync.Mutex
	requests map[string]*OAuthRequest
	rng      *rand.Rand
}

func NewSocialService(
	users UserStore,
	publisher events.Publisher,
	clk clock.Clock,
	finalizeDelay time.Duration,
	rng *rand.Rand,
	log *zap.Logger,
) *SocialService {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	ttl := oauthRequestTTL
	if d := 2 * finalizeDelay; d > ttl {
		ttl = d
	}
	return &SocialService{
		users:     users,
		publisher: publisher,
		clock:     clk,
		delay:     finalizeDelay,
		ttl:       ttl,
		log:       log,
		requests:  make(map[string]*OAuthRequest),
		rng:       rng,
	}
}

// BeginConnect opens a consent request for platform.
func (s *SocialService) BeginConnect(email, platform string) (OAuthRequest, error) {
	name, ok := models.NormalizePlatform(platform)
	if !ok {
		return OAuthRequest{}, fmt.Errorf("%q: %w", platform, ErrUnknownPlatform)
	}
	now := s.clock.Now()
	req := &OAuthRequest{
		ID:        uuid.New().String(),
		Email:     email,
		Platform:  name,
		State:     OAuthStateAuthorizing,
		CreatedAt: now,
		touched:   now,
	}

	s.mu.Lock()
	s.pruneExpired(now)
	s.requests[req.ID] = req
	s.mu.Unlock()
	return *req, nil
}

func (s *SocialService) Request(email, id string) (OAuthRequest, error) {
	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	req, ok := s.lookup(email, id, now)
	if !ok {
		return OAuthRequest{}, fmt.Errorf("oauth request %s: %w", id, ErrNotFound)
	}
	return *req, nil
}

// lookup returns the live request id owned by email. Caller holds s.mu.
func (s *SocialService) lookup(email, id string, now time.Time) (*OAuthRequest, bool) {
	req, ok := s.requests[id]
	if !ok || req.Email != email {
		return nil, false
	}
	if s.expired(req, now) {
		delete(s.requests, id)
		return nil, false
	}
	return req, true
}

func (s *SocialService) expired(req *OAuthRequest, now time.Time) bool {
	return !now.Before(req.touched.Add(s.ttl))
}

// pruneExpired drops idle requests. Caller holds s.mu.
func (s *SocialService) pruneExpired(now time.Time) {
	for id, req := range s.requests {
		if s.expired(req, now) {
			delete(s.requests, id)
		}
	}
}

// Resolve applies the consent window's outcome. Success schedules the account
// to be attached after the finalize delay on the user's workspace; denied and
// closed leave the profile unchanged. A window closed while finalizing does
// not interrupt it.
func (s *SocialService) Resolve(ws *Workspace, id, outcome string) (OAuthRequest, error) {
	now := s.clock.Now()
	s.mu.Lock()
	req, ok := s.lookup(ws.Email(), id, now)
	if !ok {
		s.mu.Unlock()
		return OAuthRequest{}, fmt.Errorf("oauth request %s: %w", id, ErrNotFound)
	}

	switch strings.ToLower(strings.TrimSpace(outcome)) {
	case OAuthOutcomeSuccess:
		if req.State != OAuthStateAuthorizing {
			s.mu.Unlock()
			return *req, ErrRequestResolved
		}
		req.State = OAuthStateFinalizing
		req.touched = now
		out := *req
		s.mu.Unlock()

		// ws locks before s.mu when the timer fires, so arm it unlocked.
		if err := ws.AfterFunc(s.delay, func() { s.finalize(id) }); err != nil {
			s.mu.Lock()
			delete(s.requests, id)
			s.mu.Unlock()
			return out, err
		}
		return out, nil
	case OAuthOutcomeDenied:
		if req.State != OAuthStateAuthorizing {
			s.mu.Unlock()
			return *req, ErrRequestResolved
		}
		req.State = OAuthStateDenied
		delete(s.requests, id)
	case OAuthOutcomeClosed:
		if req.State == OAuthStateAuthorizing {
			req.State = OAuthStateClosed
			delete(s.requests, id)
		}
	default:
		s.mu.Unlock()
		return *req, fmt.Errorf("%q: %w", outcome, ErrUnknownOutcome)
	}
	out := *req
	s.mu.Unlock()
	return out, nil
}

// Disconnect unlinks platform from the user's profile.
func (s *SocialService) Disconnect(ctx context.Context, email, platform string) (*models.UserProfile, error) {
	name, ok := models.NormalizePlatform(platform)
	if !ok {
		return nil, fmt.Errorf("%q: %w", platform, ErrUnknownPlatform)
	}
	rec, err := s.users.UpdateUser(ctx, email, func(rec *models.UserRecord) error {
		rec.Profile = rec.Profile.WithoutSocialAccount(name)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	if rec == nil {
		return nil, fmt.Errorf("user %s: %w", email, ErrNotFound)
	}
	s.publishChange(ctx, email, name, false)
	return &rec.Profile, nil
}

func (s *SocialService) finalize(id string) {
	s.mu.Lock()
	req, ok := s.requests[id]
	if !ok || req.State != OAuthStateFinalizing {
		s.mu.Unlock()
		return
	}
	delete(s.requests, id)
	now := s.clock.Now()
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	var acc models.SocialAccount
	rec, err := s.users.UpdateUser(ctx, req.Email, func(rec *models.UserRecord) error {
		s.mu.Lock()
		acc = GenerateAccount(s.rng, req.Platform, rec.Profile.FullName, now)
		s.mu.Unlock()
		rec.Profile = rec.Profile.WithSocialAccount(acc)
		return nil
	})
	if err != nil {
		s.log.Warn("oauth finalize: save failed", zap.String("email", req.Email), zap.Error(err))
		return
	}
	if rec == nil {
		s.log.Warn("oauth finalize: user not found", zap.String("email", req.Email))
		return
	}
	s.publishChange(ctx, req.Email, req.Platform, true)
	s.log.Info("social account connected",
		zap.String("email", req.Email),
		zap.String("platform", req.Platform),
		zap.String("handle", acc.Handle),
	)
}

func (s *SocialService) publishChange(ctx context.Context, email, platform string, connected bool) {
	_ = s.publisher.Publish(ctx, events.StreamPortal, events.Event{
		Type:      events.EventSocialAccountChanged,
		UserEmail: email,
		Payload:   map[string]any{"platform": platform, "connected": connected},
	})
}

// GenerateAccount produces mock metrics for a freshly connected account.
func GenerateAccount(rng *rand.Rand, platform, fullName string, now time.Time) models.SocialAccount {
	handle := handleBase(fullName) + fmt.Sprint(100+rng.IntN(900))
	followers := 1000 + rng.IntN(2000000-1000+1)
	engagement := math.Round((1+rng.Float64()*14)*10) / 10

	acc := models.SocialAccount{
		Platform:       platform,
		Handle:         handle,
		URL:            "#",
		Followers:      followers,
		EngagementRate: engagement,
		AvgLikes:       int(float64(followers) * engagement / 100),
		AvgComments:    int(float64(followers) * engagement / 200),
		Connected:      true,
		LastSync:       now,
	}
	if platform != models.PlatformInstagram {
		acc.AvgViews = int(float64(followers) * 1.5)
		acc.AvgWatchTime = 5 + rng.IntN(180-5+1)
	}

	acc.RecentPosts = make([]models.RecentPost, recentPostCount)
	for i := range acc.RecentPosts {
		acc.RecentPosts[i] = models.RecentPost{
			ID:       i + 1,
			Image:    fmt.Sprintf("https://picsum.photos/seed/%s%s%d/200", platform, handle, i),
			Likes:    rng.IntN(followers/10 + 1),
			Comments: rng.IntN(followers/100 + 1),
		}
	}
	return acc
}

func handleBase(fullName string) string {
	parts := strings.Fields(fullName)
	if len(parts) == 0 {
		return "user"
	}
	return strings.ToLower(parts[0])
}
