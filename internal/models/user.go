package models

// Genders accepted by the signup form.
const (
	GenderMale           = "Male"
	GenderFemale         = "Female"
	GenderNonBinary      = "Non-binary"
	GenderPreferNotToSay = "Prefer not to say"
)

var AllGenders = []string{GenderMale, GenderFemale, GenderNonBinary, GenderPreferNotToSay}

func IsValidGender(g string) bool {
	for _, v := range AllGenders {
		if v == g {
			return true
		}
	}
	return false
}

// UserProfile is the influencer's resume-like record.
type UserProfile struct {
	FullName                string          `json:"full_name"`
	ProfilePicture          *string         `json:"profile_picture,omitempty"`
	Bio                     string          `json:"bio"`
	Email                   string          `json:"email"`
	Phone                   string          `json:"phone"`
	Country                 string          `json:"country"`
	City                    string          `json:"city"`
	DOB                     string          `json:"dob"` // YYYY-MM-DD
	Gender                  string          `json:"gender"`
	Languages               []string        `json:"languages"`
	Niche                   []string        `json:"niche"`
	Website                 []string        `json:"website"`
	Experience              int             `json:"experience"`
	AudienceDemographics    []string        `json:"audience_demographics"`
	ContentStyle            string          `json:"content_style"`
	EngagementRate          float64         `json:"engagement_rate"`
	PreferredCollaborations []string        `json:"preferred_collaborations"`
	SocialAccounts          []SocialAccount `json:"social_accounts"`
	Interests               []string        `json:"interests"`
	Authenticity            int             `json:"authenticity"`
	AvgWatchTime            int             `json:"avg_watch_time"`
}

// SocialAccountFor returns the account linked for platform.
func (p *UserProfile) SocialAccountFor(platform string) (SocialAccount, bool) {
	for _, a := range p.SocialAccounts {
		if a.Platform == platform {
			return a, true
		}
	}
	return SocialAccount{}, false
}

// WithSocialAccount returns a copy of the profile where acc replaces any account
// on the same platform.
func (p UserProfile) WithSocialAccount(acc SocialAccount) UserProfile {
	accounts := make([]SocialAccount, 0, len(p.SocialAccounts)+1)
	for _, a := range p.SocialAccounts {
		if a.Platform != acc.Platform {
			accounts = append(accounts, a)
		}
	}
	p.SocialAccounts = append(accounts, acc)
	return p
}

// WithoutSocialAccount returns a copy of the profile with platform unlinked.
func (p UserProfile) WithoutSocialAccount(platform string) UserProfile {
	accounts := make([]SocialAccount, 0, len(p.SocialAccounts))
	for _, a := range p.SocialAccounts {
		if a.Platform != platform {
			accounts = append(accounts, a)
		}
	}
	p.SocialAccounts = accounts
	return p
}

type Credentials struct {
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
}

// UserRecord is what the user store keeps per e-mail.
type UserRecord struct {
	Credentials Credentials `json:"credentials"`
	Profile     UserProfile `json:"profile"`
}
