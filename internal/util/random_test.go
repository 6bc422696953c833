package util

import "testing"

// TestRandomToken_Length verifies the encoded token covers n bytes.
func TestRandomToken_Length(t *testing.T) {
	for _, n := range []int{16, 32, 64} {
		tok, err := RandomToken(n)
		if err != nil {
			t.Fatalf("RandomToken(%d): %v", n, err)
		}
		// base64url without padding: ceil(4n/3) characters
		want := (n*8 + 5) / 6
		if len(tok) != want {
			t.Errorf("RandomToken(%d) length = %d, want %d", n, len(tok), want)
		}
	}
}

// TestRandomToken_Unique verifies two tokens never repeat in practice.
func TestRandomToken_Unique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		tok, err := RandomToken(32)
		if err != nil {
			t.Fatal(err)
		}
		if seen[tok] {
			t.Fatalf("token repeated after %d draws", i)
		}
		seen[tok] = true
	}
}

// TestRandomToken_InvalidLength verifies non-positive lengths fail.
func TestRandomToken_InvalidLength(t *testing.T) {
	for _, n := range []int{0, -1} {
		if _, err := RandomToken(n); err == nil {
			t.Errorf("RandomToken(%d) error = nil, want error", n)
		}
	}
}
