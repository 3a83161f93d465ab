package main

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func TestSanitizeName(t *testing.T) {
	cases := []struct {
		name   string
		input  string
		expect string
	}{
		{"normal short name", "Alice", "Alice"},
		{"exactly 16 chars", "1234567890123456", "1234567890123456"},
		{"long name truncated", "ThisIsAVeryLongUsername", "ThisIsAVeryLongU"},
		{"control chars stripped", "he\x00ll\x1bo", "hello"},
		{"ansi escape partial", "he\x1b[31mllo", "he[31mllo"},
		{"empty input", "", ""},
		{"pure control chars", "\x00\x01\x02\x1b", ""},
		{"multi-byte runes truncated by byte limit", "日本語のテスト名前", "日本語のテ"},
		{"emoji truncated by byte limit", "🎮Player🎮Name🎮", "🎮Player🎮Na"},
		{"mixed printable and control", "a\x00b\x01c\x02d", "abcd"},
		{"tabs stripped", "hello\tworld", "helloworld"},
		{"newlines stripped", "hello\nworld", "helloworld"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := sanitizeName(tc.input)
			if got != tc.expect {
				t.Errorf("sanitizeName(%q) = %q, want %q", tc.input, got, tc.expect)
			}
		})
	}
}

func TestAllowedTerms(t *testing.T) {
	cases := []struct {
		name    string
		term    string
		allowed bool
	}{
		{"xterm-256color", "xterm-256color", true},
		{"tmux", "tmux", true},
		{"linux", "linux", true},
		{"vt100", "vt100", true},
		{"screen", "screen", true},
		{"rxvt-unicode-256color", "rxvt-unicode-256color", true},
		{"unknown term", "evil-term", false},
		{"path traversal", "../../../etc/passwd", false},
		{"empty string", "", false},
		{"xterm-kitty", "xterm-kitty", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := allowedTerms[tc.term]
			if got != tc.allowed {
				t.Errorf("allowedTerms[%q] = %v, want %v", tc.term, got, tc.allowed)
			}
		})
	}
}

func TestSessionTerm(t *testing.T) {
	cases := []struct {
		name    string
		environ []string
		want    string
	}{
		{"allowed", []string{"LANG=C", "TERM=tmux"}, "tmux"},
		{"rejected", []string{"TERM=../../etc/passwd"}, defaultTerm},
		{"missing", nil, defaultTerm},
	}
	for _, tc := range cases {
		if got := sessionTerm(tc.environ); got != tc.want {
			t.Errorf("%s: sessionTerm = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestLoadOrCreateHostKeyPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "host_key")

	first, err := loadOrCreateHostKey(path, zap.NewNop())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("key not persisted: %v", err)
	}
	second, err := loadOrCreateHostKey(path, zap.NewNop())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(first.PublicKey().Marshal()) != string(second.PublicKey().Marshal()) {
		t.Error("reloaded key differs from the generated one")
	}
}
