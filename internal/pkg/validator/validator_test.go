package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidCode(t *testing.T) {
	valid := []string{"EMP001", "ABC-COLLEGE", "A1", "X-9"}
	invalid := []string{"emp001", "E", "-EMP", "EMP 001", "", "EMP_001"}
	for _, code := range valid {
		if !IsValidCode(code) {
			t.Errorf("IsValidCode(%q) = false, want true", code)
		}
	}
	for _, code := range invalid {
		if IsValidCode(code) {
			t.Errorf("IsValidCode(%q) = true, want false", code)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2025-01-31", "2024-02-29", "2000-12-01"}
	invalid := []string{"2025-13-01", "2025-02-30", "31-01-2025", "2025/01/31", ""}
	for _, date := range valid {
		if !IsValidDate(date) {
			t.Errorf("IsValidDate(%q) = false, want true", date)
		}
	}
	for _, date := range invalid {
		if IsValidDate(date) {
			t.Errorf("IsValidDate(%q) = true, want false", date)
		}
	}
}

func TestIsValidMonth(t *testing.T) {
	for month := 1; month <= 12; month++ {
		if !IsValidMonth(month) {
			t.Errorf("IsValidMonth(%d) = false, want true", month)
		}
	}
	for _, month := range []int{0, 13, -1} {
		if IsValidMonth(month) {
			t.Errorf("IsValidMonth(%d) = true, want false", month)
		}
	}
}

func TestValidationErrorsToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "year", Message: "must be between 2000 and 2100"},
		{Field: "month", Message: "must be between 1 and 12"},
	}
	m := errs.ToMap()
	if len(m) != 2 {
		t.Fatalf("ToMap() has %d entries, want 2", len(m))
	}
	if m["year"] != "must be between 2000 and 2100" {
		t.Errorf("ToMap()[year] = %q", m["year"])
	}
	if errs.Error() == "" {
		t.Error("Error() must not be empty")
	}
}
