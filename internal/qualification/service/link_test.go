package service

import (
	"strings"
	"testing"
)

func TestGenerateLinkToken(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		token, err := generateLinkToken()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(token) <= tokenRandomLength {
			t.Fatalf("token %q missing timestamp suffix", token)
		}
		for _, r := range token {
			if !strings.ContainsRune(tokenAlphabet, r) {
				t.Fatalf("token %q contains %q outside the alphabet", token, r)
			}
		}
		if _, dup := seen[token]; dup {
			t.Fatalf("duplicate token %q", token)
		}
		seen[token] = struct{}{}
	}
}
