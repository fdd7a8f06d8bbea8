package otp

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"5551234567", "+15551234567"},
		{"15551234567", "+15551234567"},
		{"+15551234567", "+15551234567"},
		{"(555) 123-4567", "+15551234567"},
		{"555.123.4567", "+15551234567"},
		{"1-555-123-4567", "+15551234567"},
		{" +15551234567 ", "+15551234567"},
	}

	for _, tt := range tests {
		if got := Normalize(tt.raw, "1"); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestNormalizeSpellingsConverge(t *testing.T) {
	// Different spellings of one number must map to one store key.
	a := Normalize("5551234567", "1")
	b := Normalize("15551234567", "1")
	c := Normalize("+15551234567", "1")
	if a != b || b != c {
		t.Fatalf("spellings diverged: %q %q %q", a, b, c)
	}
}

func TestGenerateCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code, err := GenerateCode()
		if err != nil {
			t.Fatalf("GenerateCode: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("expected 6 digits, got %q", code)
		}
		for _, r := range code {
			if r < '0' || r > '9' {
				t.Fatalf("non-digit in code %q", code)
			}
		}
		seen[code] = true
	}
	if len(seen) < 2 {
		t.Fatal("codes are not varying")
	}
}
