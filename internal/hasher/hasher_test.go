package hasher

import "testing"

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("s3cret")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if hash == "s3cret" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !Verify("s3cret", hash) {
		t.Error("expected matching password to verify")
	}
	if Verify("wrong", hash) {
		t.Error("expected non-matching password to fail verification")
	}
}

func TestHashSaltFreshness(t *testing.T) {
	h1, err := Hash("same-password")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	h2, err := Hash("same-password")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if h1 == h2 {
		t.Error("two hashes of the same password must differ (fresh salt)")
	}
	if !Verify("same-password", h1) || !Verify("same-password", h2) {
		t.Error("both hashes must verify against the original password")
	}
}

func TestVerifyMalformedHash(t *testing.T) {
	for _, malformed := range []string{"", "not-a-bcrypt-hash", "$2a$broken"} {
		if Verify("anything", malformed) {
			t.Errorf("Verify(%q) = true; want false for malformed hash", malformed)
		}
	}
}
