package learning

import "testing"

func TestCanonicalizeSharedAcrossAllSymmetries(t *testing.T) {
	state := "X-O--X-O-"
	canonical, _ := Canonicalize(state)

	for transform := 0; transform < 8; transform++ {
		rotated := applyTransform(state, transform)
		got, _ := Canonicalize(rotated)
		if got != canonical {
			t.Errorf("transform %d: expected canonical %q, got %q", transform, canonical, got)
		}
	}
}

func TestCanonicalizeIsIdempotent(t *testing.T) {
	canonical, _ := Canonicalize("X-O--X-O-")
	again, transform := Canonicalize(canonical)
	if again != canonical {
		t.Fatalf("canonical form not stable: %q vs %q", canonical, again)
	}
	if transform != 0 {
		t.Fatalf("canonical form should map to itself, got transform %d", transform)
	}
}

func TestMoveMappingRoundTrip(t *testing.T) {
	for transform := 0; transform < 8; transform++ {
		for cell := 0; cell < 9; cell++ {
			mapped := MapToCanonical(cell, transform)
			back := MapFromCanonical(mapped, transform)
			if back != cell {
				t.Fatalf("transform %d cell %d: round trip gave %d", transform, cell, back)
			}
		}
	}
}

func TestMapToCanonicalFollowsBoardTransform(t *testing.T) {
	// The mark at each original cell must land where the mapping says.
	state := "X-O--X-O-"
	for transform := 0; transform < 8; transform++ {
		rotated := applyTransform(state, transform)
		for cell := 0; cell < 9; cell++ {
			if rotated[MapToCanonical(cell, transform)] != state[cell] {
				t.Fatalf("transform %d cell %d: mark did not follow mapping", transform, cell)
			}
		}
	}
}

func TestTransformsArePermutations(t *testing.T) {
	for transform := 0; transform < 8; transform++ {
		seen := [9]bool{}
		for _, cell := range transforms[transform] {
			if cell < 0 || cell > 8 || seen[cell] {
				t.Fatalf("transform %d is not a permutation: %v", transform, transforms[transform])
			}
			seen[cell] = true
		}
	}
}
