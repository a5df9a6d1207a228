package hash

import "testing"

func TestHasher_HashAndVerify(t *testing.T) {
	hasher := NewHasher(MinCost)

	digest, err := hasher.Hash("s3cret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if digest == "s3cret" {
		t.Fatal("digest equals plaintext")
	}

	if !hasher.Verify("s3cret", digest) {
		t.Fatal("verify rejected the right password")
	}
	if hasher.Verify("wrong", digest) {
		t.Fatal("verify accepted a wrong password")
	}
}

func TestHasher_SaltedDigestsDiffer(t *testing.T) {
	hasher := NewHasher(MinCost)

	first, err := hasher.Hash("s3cret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	second, err := hasher.Hash("s3cret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if first == second {
		t.Fatal("two digests of the same input are identical")
	}
}

func TestNewHasher_BumpsWeakCost(t *testing.T) {
	hasher := NewHasher(1)
	if hasher.cost != MinCost {
		t.Fatalf("expected cost %d, got %d", MinCost, hasher.cost)
	}
}
