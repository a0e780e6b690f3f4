package repositories

const (
	userKeyPrefix       = "users:"
	sessionKeyPrefix    = "session:"
	onboardingKeyPrefix = "onboarding:"
	signupKeyPrefix     = "signup:"

	onboardingCompleted = "completed"
)

func userKey(email string) string { return userKeyPrefix + email }

func sessionKey(id string) string { return sessionKeyPrefix + id }

func onboardingKey(email string) string { return onboardingKeyPrefix + email }

func signupKey(draftID string) string { return signupKeyPrefix + draftID }
