package content

import "testing"

func TestAddress_Deterministic(t *testing.T) {
	data := []byte("sticker bytes")

	a := Address(data)
	b := Address(data)

	if a != b {
		t.Errorf("same bytes produced different addresses: %q vs %q", a, b)
	}
	if len(a) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(a))
	}
}

func TestAddress_KnownDigest(t *testing.T) {
	// SHA-256 of the empty string is a well-known constant.
	const want = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if got := Address(nil); got != want {
		t.Errorf("Address(nil) = %q, want %q", got, want)
	}
}

func TestAddress_DistinctContent(t *testing.T) {
	if Address([]byte("a")) == Address([]byte("b")) {
		t.Error("distinct bytes produced the same address")
	}
}

func TestPrefix(t *testing.T) {
	addr := Address([]byte("x"))
	p := Prefix(addr)
	if len(p) != PrefixLen {
		t.Errorf("prefix length = %d, want %d", len(p), PrefixLen)
	}
	if addr[:PrefixLen] != p {
		t.Errorf("prefix %q does not match address %q", p, addr)
	}

	if got := Prefix("abc"); got != "abc" {
		t.Errorf("short address: got %q, want %q", got, "abc")
	}
}
