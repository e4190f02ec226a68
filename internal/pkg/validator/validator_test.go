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

func TestMinRunes(t *testing.T) {
	cases := []struct {
		input string
		n     int
		want  bool
	}{
		{"", 1, false},
		{"   ", 1, false},
		{"lembur persiapan audit akhir tahun", 20, true},
		{"terlalu pendek", 20, false},
		{"  padded reason with enough length  ", 20, true},
	}
	for _, c := range cases {
		got := MinRunes(c.input, c.n)
		if got != c.want {
			t.Errorf("MinRunes(%q, %d) = %v, want %v", c.input, c.n, got, c.want)
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

func TestIsValidNIK(t *testing.T) {
	if !IsValidNIK("3174012345678901") {
		t.Error("expected 16-digit NIK to be valid")
	}
	for _, nik := range []string{"317401234567890", "31740123456789012", "31740123456789ab", ""} {
		if IsValidNIK(nik) {
			t.Errorf("IsValidNIK(%q) = true, want false", nik)
		}
	}
}

func TestIsValidEmployeeCode(t *testing.T) {
	if !IsValidEmployeeCode("2024-0001") {
		t.Error("expected 2024-0001 to be valid")
	}
	for _, code := range []string{"20240001", "2024-001", "abcd-0001", ""} {
		if IsValidEmployeeCode(code) {
			t.Errorf("IsValidEmployeeCode(%q) = true, want false", code)
		}
	}
}

func TestIsValidCoordinates(t *testing.T) {
	if !IsValidLatitude(-6.2) || !IsValidLongitude(106.8) {
		t.Error("expected Jakarta coordinates to be valid")
	}
	if IsValidLatitude(91) || IsValidLatitude(-91) {
		t.Error("latitude outside [-90, 90] must be invalid")
	}
	if IsValidLongitude(181) || IsValidLongitude(-181) {
		t.Error("longitude outside [-180, 180] must be invalid")
	}
}

func TestIsValidDate(t *testing.T) {
	if _, ok := IsValidDate("2024-06-03"); !ok {
		t.Error("expected 2024-06-03 to parse")
	}
	if _, ok := IsValidDate("03-06-2024"); ok {
		t.Error("expected 03-06-2024 to fail")
	}
}
