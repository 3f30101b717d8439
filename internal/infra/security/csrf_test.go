package security

import (
	"strings"
	"testing"
)

func newTestSigner(t *testing.T) *CSRFSigner {
	t.Helper()

	signer, err := NewCSRFSigner("csrf-test-secret")
	if err != nil {
		t.Fatalf("NewCSRFSigner: %v", err)
	}
	return signer
}

func TestCSRFSigner_GenerateParseRoundTrip(t *testing.T) {
	signer := newTestSigner(t)

	pair, err := signer.Generate()
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if pair.Value == "" || pair.Signature == "" {
		t.Fatalf("expected non-empty pair, got %+v", pair)
	}

	value, ok := signer.Parse(pair.CookieValue())
	if !ok {
		t.Fatalf("expected cookie value to parse")
	}
	if value != pair.Value {
		t.Fatalf("expected value %s, got %s", pair.Value, value)
	}
}

func TestCSRFSigner_Match(t *testing.T) {
	signer := newTestSigner(t)

	pair, err := signer.Generate()
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	if !signer.Match(pair.CookieValue(), pair.Value) {
		t.Fatalf("expected matching token to pass")
	}
	if signer.Match(pair.CookieValue(), "some-other-token") {
		t.Fatalf("expected mismatched token to fail")
	}
	if signer.Match(pair.CookieValue(), "") {
		t.Fatalf("expected empty token to fail")
	}
}

func TestCSRFSigner_RejectsForgedSignature(t *testing.T) {
	signer := newTestSigner(t)

	pair, err := signer.Generate()
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	forged := pair.Value + "." + strings.Repeat("ab", 32)
	if _, ok := signer.Parse(forged); ok {
		t.Fatalf("expected forged signature to be rejected")
	}
	if signer.Match(forged, pair.Value) {
		t.Fatalf("expected forged cookie to fail match")
	}
}

func TestCSRFSigner_RejectsForeignKey(t *testing.T) {
	signer := newTestSigner(t)

	other, err := NewCSRFSigner("a-different-secret")
	if err != nil {
		t.Fatalf("NewCSRFSigner: %v", err)
	}

	pair, err := other.Generate()
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	if _, ok := signer.Parse(pair.CookieValue()); ok {
		t.Fatalf("expected pair signed under another key to be rejected")
	}
}

func TestCSRFSigner_ParseMalformed(t *testing.T) {
	signer := newTestSigner(t)

	for _, input := range []string{"", "novalue", ".sigonly", "value.", "."} {
		if _, ok := signer.Parse(input); ok {
			t.Fatalf("expected %q to be rejected", input)
		}
	}
}
