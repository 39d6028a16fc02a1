package models

import "testing"

func TestNormalizePhone(t *testing.T) {
	cases := map[string]string{
		"010-1234-5678":   "01012345678",
		"+82 10 1234 567": "82101234567",
		"(555) 867-5309":  "5558675309",
		"12345678":        "12345678",
	}
	for in, want := range cases {
		if got := NormalizePhone(in); got != want {
			t.Fatalf("NormalizePhone(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSynthesizePhoneEmailIsDeterministic(t *testing.T) {
	a := SynthesizePhoneEmail("010-1234-5678", "phone.hoshifest.app")
	b := SynthesizePhoneEmail("01012345678", "phone.hoshifest.app")
	if a != b {
		t.Fatalf("formatting differences must not change the address: %q vs %q", a, b)
	}
	if a != "01012345678@phone.hoshifest.app" {
		t.Fatalf("unexpected synthesized address %q", a)
	}
}

func TestIsPhoneEmail(t *testing.T) {
	if !IsPhoneEmail("01012345678@phone.hoshifest.app", "phone.hoshifest.app") {
		t.Fatal("synthesized address should be detected")
	}
	if !IsPhoneEmail("01012345678@PHONE.hoshifest.APP", "phone.hoshifest.app") {
		t.Fatal("detection should be case-insensitive")
	}
	if IsPhoneEmail("mika@example.com", "phone.hoshifest.app") {
		t.Fatal("regular address must not be detected as phone")
	}
}

func TestNewReadableIDIsFourDigits(t *testing.T) {
	for i := 0; i < 1000; i++ {
		id := NewReadableID()
		if len(id) != 4 {
			t.Fatalf("readable id %q is not 4 characters", id)
		}
		for _, r := range id {
			if r < '0' || r > '9' {
				t.Fatalf("readable id %q contains a non-digit", id)
			}
		}
	}
}
