package password

import "testing"

func TestHashAndVerify(t *testing.T) {
	h := NewBcryptHasher(WithCost(4)) // low cost keeps the test fast

	hash, err := h.Hash("correct horse battery")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if err := h.Verify("correct horse battery", hash); err != nil {
		t.Errorf("Verify: %v", err)
	}
	if err := h.Verify("wrong password!", hash); err == nil {
		t.Error("expected mismatch error")
	}
}

func TestHashLengthLimits(t *testing.T) {
	h := NewBcryptHasher(WithCost(4))
	if _, err := h.Hash("short"); err == nil {
		t.Error("expected error for short password")
	}

	long := make([]byte, 80)
	for i := range long {
		long[i] = 'a'
	}
	if _, err := h.Hash(string(long)); err == nil {
		t.Error("expected error for overlong password")
	}
}

func TestWithCostIgnoresOutOfRange(t *testing.T) {
	h := NewBcryptHasher(WithCost(99))
	if h.cost != 12 {
		t.Errorf("expected default cost 12, got %d", h.cost)
	}
}
