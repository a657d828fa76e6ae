package util

import "testing"

func TestFingerprintDeterministic(t *testing.T) {
	text := "quarterly report 2024"
	got := Fingerprint(text)
	if got != Fingerprint(text) {
		t.Fatalf("expected stable fingerprint, got %s", got)
	}
	if len(got) != 64 {
		t.Fatalf("expected 64 hex characters, got %d", len(got))
	}
	for _, ch := range got {
		if !((ch >= 'a' && ch <= 'f') || (ch >= '0' && ch <= '9')) {
			t.Fatalf("fingerprint contains non-hex character: %c", ch)
		}
	}
}

func TestFingerprintSensitivity(t *testing.T) {
	a := Fingerprint("hello world")
	b := Fingerprint("hello world.")
	if a == b {
		t.Fatal("expected different fingerprints for near-identical inputs")
	}
	if Fingerprint("") == Fingerprint(" ") {
		t.Fatal("expected whitespace-only difference to change the fingerprint")
	}
}

func TestSanitizeFileName(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"report.pdf", "report.pdf", false},
		{"  notes.docx ", "notes.docx", false},
		{"dir/evil.pdf", "evil.pdf", false},
		{"dir\\evil.pdf", "evil.pdf", false},
		{"bad\x00name.pdf", "badname.pdf", false},
		{"../../etc/passwd", "", true},
		{"", "", true},
		{"   ", "", true},
	}
	for _, tc := range cases {
		got, err := SanitizeFileName(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("SanitizeFileName(%q): expected error, got %q", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("SanitizeFileName(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("SanitizeFileName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
