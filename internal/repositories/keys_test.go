package repositories

import "testing"

func TestKeys(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{userKey("ava@example.com"), "users:ava@example.com"},
		{sessionKey("abc"), "session:abc"},
		{onboardingKey("ava@example.com"), "onboarding:ava@example.com"},
		{signupKey("d1"), "signup:d1"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("key = %q, want %q", tt.got, tt.want)
		}
	}
}

func TestDecodeUser(t *testing.T) {
	rec, err := decodeUser([]byte(`{"credentials":{"email":"ava@example.com","password_hash":"h"},"profile":{"full_name":"Ava"}}`))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if rec.Credentials.Email != "ava@example.com" || rec.Profile.FullName != "Ava" {
		t.Errorf("unexpected record %+v", rec)
	}

	if _, err := decodeUser([]byte("{")); err == nil {
		t.Error("expected error for corrupt record")
	}
}
