package hash

import "testing"

func TestTileDigestDeterministic(t *testing.T) {
	raw := []byte{1, 2, 3, 4, 5}

	a := TileDigest(raw)
	b := TileDigest(raw)

	if a != b {
		t.Fatalf("expected deterministic digest, got %d and %d", a, b)
	}
}

func TestTileDigestDiffers(t *testing.T) {
	a := TileDigest([]byte{1, 2, 3})
	b := TileDigest([]byte{1, 2, 4})

	if a == b {
		t.Fatalf("expected different digests for different inputs")
	}
}
