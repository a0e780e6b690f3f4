package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/influencer-portal/backend/internal/auth"
	"github.com/influencer-portal/backend/internal/clock"
	"github.com/influencer-portal/backend/internal/config"
	"github.com/influencer-portal/backend/internal/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Profile defaults for a freshly signed-up user.
const (
	DefaultBio            = "Welcome to my profile! I'm excited to collaborate with amazing brands."
	DefaultProfilePicture = "https://via.placeholder.com/100"
	DefaultAuthenticity   = 93
	DefaultAvgWatchTime   = 5
	minSignupAge          = 18
	dobLayout             = "2006-01-02"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// UserStore reads return (nil, nil) for an unknown e-mail.
//
// UpdateUser applies fn to the current record and stores the result. fn may
// run more than once when another write lands first, so it must only touch
// the record it is given. An unknown e-mail returns (nil, nil) without
// calling fn, and an error from fn aborts the update unchanged.
type UserStore interface {
	GetUser(ctx context.Context, email string) (*models.UserRecord, error)
	SaveUser(ctx context.Context, rec models.UserRecord) error
	UpdateUser(ctx context.Context, email string, fn func(*models.UserRecord) error) (*models.UserRecord, error)
}

// SessionStore reads return "" for an unknown session.
type SessionStore interface {
	CreateSession(ctx context.Context, sessionID, email string, ttl time.Duration) error
	SessionEmail(ctx context.Context, sessionID string) (string, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

// SignupStore reads return (nil, nil) for an unknown or expired draft.
type SignupStore interface {
	GetDraft(ctx context.Context, id string) (*models.SignupDraft, error)
	SaveDraft(ctx context.Context, draft models.SignupDraft, ttl time.Duration) error
	DeleteDraft(ctx context.Context, id string) error
}

type OnboardingStore interface {
	MarkOnboarded(ctx context.Context, email string) error
	IsOnboarded(ctx context.Context, email string) (bool, error)
}

// WorkspaceCloser tears down per-user state at logout.
type WorkspaceCloser interface {
	Close(email string)
}

type SignupStep1Input struct {
	Email           string
	Password        string
	ConfirmPassword string
	AcceptTerms     bool
}

type SignupStep2Input struct {
	FullName       string
	ProfilePicture *string
	Phone          string
	Country        string
	City           string
	DOB            string
	Gender         string
	Niche          []string
}

// Session is a signed-in user as handed to the client.
type Session struct {
	Token               string             `json:"token"`
	ExpiresAt           time.Time          `json:"expires_at"`
	Profile             models.UserProfile `json:"profile"`
	OnboardingCompleted bool               `json:"onboarding_completed"`
}

type AuthService struct {
	users      UserStore
	sessions   SessionStore
	drafts     SignupStore
	onboarding OnboardingStore
	workspaces WorkspaceCloser
	cfg        *config.Config
	clock      clock.Clock
	log        *zap.Logger
}

func NewAuthService(
	users UserStore,
	sessions SessionStore,
	drafts SignupStore,
	onboarding OnboardingStore,
	workspaces WorkspaceCloser,
	cfg *config.Config,
	clk clock.Clock,
	log *zap.Logger,
) *AuthService {
	return &AuthService{
		users:      users,
		sessions:   sessions,
		drafts:     drafts,
		onboarding: onboarding,
		workspaces: workspaces,
		cfg:        cfg,
		clock:      clk,
		log:        log,
	}
}

// SignupStep1 validates credentials and stores them on the draft. An empty
// draftID starts a new draft; an existing one keeps any step 2 details.
func (s *AuthService) SignupStep1(ctx context.Context, draftID string, in SignupStep1Input) (*models.SignupDraft, error) {
	email := normalizeEmail(in.Email)
	errs := fieldErrors{}
	if !emailPattern.MatchString(email) {
		errs.add("email", "Please enter a valid email address.")
	}
	if !isStrongPassword(in.Password) {
		errs.add("password", "Password must be 8+ characters with uppercase, lowercase, and a number.")
	}
	if in.Password != in.ConfirmPassword {
		errs.add("confirm_password", "Passwords do not match.")
	}
	if !in.AcceptTerms {
		errs.add("terms", "You must accept the terms and conditions.")
	}
	if _, bad := errs["email"]; !bad {
		if rec := s.lookupUser(ctx, email); rec != nil {
			errs.add("email", ErrEmailTaken.Error())
		}
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	draft := s.lookupDraft(ctx, draftID)
	if draft == nil {
		draft = &models.SignupDraft{ID: uuid.New().String(), CreatedAt: s.clock.Now()}
	}
	draft.Credentials = &models.SignupCredentials{
		Email:         email,
		PasswordHash:  string(hash),
		AcceptedTerms: true,
	}

	if err := s.drafts.SaveDraft(ctx, *draft, s.cfg.SignupDraftTTL); err != nil {
		return nil, fmt.Errorf("save signup draft: %w", err)
	}
	return draft, nil
}

// SignupStep2 validates personal details, assembles the profile and registers
// the account. The draft is kept until the e-mail is verified.
func (s *AuthService) SignupStep2(ctx context.Context, draftID string, in SignupStep2Input) (*models.UserProfile, error) {
	draft := s.lookupDraft(ctx, draftID)
	if draft == nil {
		return nil, ErrDraftNotFound
	}
	if draft.Credentials == nil {
		return nil, ErrDraftIncomplete
	}

	details, err := s.validateDetails(in)
	if err != nil {
		return nil, err
	}
	draft.Details = details

	rec := AssembleUser(*draft)
	if err := s.users.SaveUser(ctx, rec); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}
	if err := s.drafts.SaveDraft(ctx, *draft, s.cfg.SignupDraftTTL); err != nil {
		s.log.Warn("failed to update signup draft", zap.String("draft_id", draft.ID), zap.Error(err))
	}

	s.log.Info("user registered", zap.String("email", rec.Credentials.Email))
	return &rec.Profile, nil
}

// VerifySignup confirms the pending e-mail verification, discards the draft
// and signs the user in.
func (s *AuthService) VerifySignup(ctx context.Context, draftID string) (*Session, error) {
	draft := s.lookupDraft(ctx, draftID)
	if draft == nil {
		return nil, ErrDraftNotFound
	}
	if !draft.Ready() {
		return nil, ErrDraftIncomplete
	}
	rec := s.lookupUser(ctx, draft.Email())
	if rec == nil {
		return nil, ErrNotVerified
	}

	if err := s.drafts.DeleteDraft(ctx, draft.ID); err != nil {
		s.log.Warn("failed to delete signup draft", zap.String("draft_id", draft.ID), zap.Error(err))
	}
	return s.startSession(ctx, *rec)
}

// Login tells an unknown e-mail apart from a wrong password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	email = normalizeEmail(email)
	rec := s.lookupUser(ctx, email)
	if rec == nil {
		return nil, ErrUnknownEmail
	}
	if err := bcrypt.CompareHashAndPassword([]byte(rec.Credentials.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.startSession(ctx, *rec)
}

// Authenticate resolves a live session to its e-mail. Store failures count as
// "no session".
func (s *AuthService) Authenticate(ctx context.Context, sessionID string) (string, error) {
	email, err := s.sessions.SessionEmail(ctx, sessionID)
	if err != nil {
		s.log.Warn("session lookup failed", zap.Error(err))
		return "", ErrNotFound
	}
	if email == "" {
		return "", ErrNotFound
	}
	return email, nil
}

// Logout ends the session and tears down the user's workspace.
func (s *AuthService) Logout(ctx context.Context, sessionID, email string) {
	if err := s.sessions.DeleteSession(ctx, sessionID); err != nil {
		s.log.Warn("failed to delete session", zap.String("email", email), zap.Error(err))
	}
	s.workspaces.Close(email)
}

func (s *AuthService) CompleteOnboarding(ctx context.Context, email string) error {
	return s.onboarding.MarkOnboarded(ctx, email)
}

func (s *AuthService) IsOnboarded(ctx context.Context, email string) bool {
	done, err := s.onboarding.IsOnboarded(ctx, email)
	if err != nil {
		s.log.Warn("onboarding lookup failed", zap.String("email", email), zap.Error(err))
		return false
	}
	return done
}

// ChangePassword replaces the password after checking the current one.
func (s *AuthService) ChangePassword(ctx context.Context, email, current, next string) error {
	rec, err := s.users.UpdateUser(ctx, email, func(rec *models.UserRecord) error {
		if err := bcrypt.CompareHashAndPassword([]byte(rec.Credentials.PasswordHash), []byte(current)); err != nil {
			return &ValidationError{Fields: map[string]string{"current_password": "Incorrect password. Please try again."}}
		}
		if !isStrongPassword(next) {
			return &ValidationError{Fields: map[string]string{"new_password": "Password must be 8+ characters with uppercase, lowercase, and a number."}}
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(next), s.cfg.BcryptCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		rec.Credentials.PasswordHash = string(hash)
		return nil
	})
	if err != nil {
		return err
	}
	if rec == nil {
		return ErrUnknownEmail
	}
	return nil
}

// AssembleUser builds the stored record from a complete draft, filling the
// profile defaults.
func AssembleUser(d models.SignupDraft) models.UserRecord {
	det := d.Details
	picture := DefaultProfilePicture
	if det.ProfilePicture != nil && strings.TrimSpace(*det.ProfilePicture) != "" {
		picture = strings.TrimSpace(*det.ProfilePicture)
	}
	gender := det.Gender
	if gender == "" {
		gender = models.GenderPreferNotToSay
	}

	return models.UserRecord{
		Credentials: models.Credentials{
			Email:        d.Credentials.Email,
			PasswordHash: d.Credentials.PasswordHash,
		},
		Profile: models.UserProfile{
			FullName:                det.FullName,
			ProfilePicture:          &picture,
			Bio:                     DefaultBio,
			Email:                   d.Credentials.Email,
			Phone:                   det.Phone,
			Country:                 det.Country,
			City:                    det.City,
			DOB:                     det.DOB,
			Gender:                  gender,
			Languages:               []string{"English"},
			Niche:                   append([]string(nil), det.Niche...),
			Website:                 []string{},
			AudienceDemographics:    []string{},
			PreferredCollaborations: []string{},
			SocialAccounts:          []models.SocialAccount{},
			Interests:               []string{},
			Authenticity:            DefaultAuthenticity,
			AvgWatchTime:            DefaultAvgWatchTime,
		},
	}
}

func (s *AuthService) validateDetails(in SignupStep2Input) (*models.SignupDetails, error) {
	errs := fieldErrors{}
	required := []struct{ field, value string }{
		{"full_name", in.FullName},
		{"phone", in.Phone},
		{"country", in.Country},
		{"city", in.City},
		{"dob", in.DOB},
		{"gender", in.Gender},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			errs.add(r.field, "This field is required.")
		}
	}

	niche := cleanList(in.Niche)
	if len(niche) == 0 {
		errs.add("niche", "Select at least one niche.")
	}
	if in.Gender != "" && !models.IsValidGender(in.Gender) {
		errs.add("gender", "Unknown gender option.")
	}
	if in.DOB != "" {
		dob, err := time.Parse(dobLayout, in.DOB)
		switch {
		case err != nil:
			errs.add("dob", "Use the YYYY-MM-DD format.")
		case AgeOn(dob, s.clock.Now()) < minSignupAge:
			errs.add("dob", "You must be 18+ to sign up.")
		}
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	return &models.SignupDetails{
		FullName:       strings.TrimSpace(in.FullName),
		ProfilePicture: in.ProfilePicture,
		Phone:          strings.TrimSpace(in.Phone),
		Country:        strings.TrimSpace(in.Country),
		City:           strings.TrimSpace(in.City),
		DOB:            in.DOB,
		Gender:         in.Gender,
		Niche:          niche,
	}, nil
}

func (s *AuthService) startSession(ctx context.Context, rec models.UserRecord) (*Session, error) {
	sessionID := uuid.New().String()
	token, err := auth.GenerateJWT(s.cfg.JWTSecret, rec.Credentials.Email, sessionID, s.cfg.JWTExpiration)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	if err := s.sessions.CreateSession(ctx, sessionID, rec.Credentials.Email, s.cfg.JWTExpiration); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	return &Session{
		Token:               token,
		ExpiresAt:           s.clock.Now().Add(s.cfg.JWTExpiration),
		Profile:             rec.Profile,
		OnboardingCompleted: s.IsOnboarded(ctx, rec.Credentials.Email),
	}, nil
}

func (s *AuthService) lookupUser(ctx context.Context, email string) *models.UserRecord {
	rec, err := s.users.GetUser(ctx, email)
	if err != nil {
		s.log.Warn("user lookup failed, treating as absent", zap.String("email", email), zap.Error(err))
		return nil
	}
	return rec
}

func (s *AuthService) lookupDraft(ctx context.Context, id string) *models.SignupDraft {
	if id == "" {
		return nil
	}
	draft, err := s.drafts.GetDraft(ctx, id)
	if err != nil {
		s.log.Warn("signup draft lookup failed, treating as absent", zap.String("draft_id", id), zap.Error(err))
		return nil
	}
	return draft
}

// IsAuthError reports whether err should be shown to the client as a login failure.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrUnknownEmail) || errors.Is(err, ErrInvalidCredentials)
}

func isStrongPassword(p string) bool {
	if len(p) < 8 {
		return false
	}
	var lower, upper, digit bool
	for _, r := range p {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return lower && upper && digit
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
