package validation

import "testing"

func TestSanitizeText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "trims whitespace", input: "  plan my week  ", expected: "plan my week"},
		{name: "strips control characters", input: "plan\x00 my\x07 week", expected: "plan my week"},
		{name: "keeps newlines and tabs", input: "line one\n\tline two", expected: "line one\n\tline two"},
		{name: "empty input", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := SanitizeText(tt.input); got != tt.expected {
				t.Errorf("SanitizeText(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestValidateDays(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		days    int
		wantErr bool
	}{
		{name: "minimum", days: MinDays},
		{name: "maximum", days: MaxDays},
		{name: "middle", days: 4},
		{name: "zero", days: 0, wantErr: true},
		{name: "too many", days: MaxDays + 1, wantErr: true},
		{name: "negative", days: -1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateDays(tt.days)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDays(%d) error = %v, wantErr %v", tt.days, err, tt.wantErr)
			}
		})
	}
}

func TestValidateRating(t *testing.T) {
	t.Parallel()

	for rating := 1; rating <= 5; rating++ {
		if err := ValidateRating(rating); err != nil {
			t.Errorf("ValidateRating(%d) unexpected error: %v", rating, err)
		}
	}
	for _, rating := range []int{0, 6, -3} {
		if err := ValidateRating(rating); err == nil {
			t.Errorf("ValidateRating(%d) expected an error", rating)
		}
	}
}

func TestValidateEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{name: "valid", email: "user@example.com"},
		{name: "valid with plus", email: "user+tag@example.com"},
		{name: "missing at sign", email: "userexample.com", wantErr: true},
		{name: "missing domain", email: "user@", wantErr: true},
		{name: "empty", email: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateEmail(tt.email)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEmail(%q) error = %v, wantErr %v", tt.email, err, tt.wantErr)
			}
		})
	}
}

func TestPlanDaysValidator(t *testing.T) {
	t.Parallel()

	type request struct {
		Days int `validate:"plan_days"`
	}

	if err := Validate.Struct(request{Days: 5}); err != nil {
		t.Errorf("unexpected error for a valid day count: %v", err)
	}
	if err := Validate.Struct(request{Days: 12}); err == nil {
		t.Error("expected an error for an out-of-range day count")
	}
}
