package utils

import "testing"

func TestNormalizePlate(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"MH12AB1234", "MH12AB1234"},
		{"mh 12 ab 1234", "MH12AB1234"},
		{"ka 05-mz-1234", "KA05MZ1234"},
		{"  dl8c af 5031 ", "DL8CAF5031"},
		{"MH-12-AB-1234", "MH12AB1234"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := NormalizePlate(tc.in); got != tc.want {
			t.Errorf("NormalizePlate(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizePlateIdempotent(t *testing.T) {
	for _, in := range []string{"mh 12 ab 1234", "KA05MZ1234", "dl-8-c-af-5031"} {
		once := NormalizePlate(in)
		if twice := NormalizePlate(once); twice != once {
			t.Errorf("normalize not idempotent: %q -> %q -> %q", in, once, twice)
		}
	}
}

func TestValidPlate(t *testing.T) {
	valid := []string{"MH12AB1234", "KA05MZ1234", "DL8CAF5031", "TN22Z0001"}
	for _, p := range valid {
		if !ValidPlate(p) {
			t.Errorf("ValidPlate(%q) = false, want true", p)
		}
	}
	invalid := []string{
		"",
		"MH12AB123",    // 3 trailing digits
		"M12AB1234",    // 1 state letter
		"MH123AB1234",  // 3 RTO digits
		"MH12ABC1234",  // 3 series letters
		"mh12ab1234",   // not normalized
		"MH 12AB1234",  // whitespace survives only before normalization
		"MH12AB12345",  // 5 trailing digits
	}
	for _, p := range invalid {
		if ValidPlate(p) {
			t.Errorf("ValidPlate(%q) = true, want false", p)
		}
	}
}
