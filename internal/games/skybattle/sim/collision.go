package sim

// Resolve damages both members of every intersecting pair drawn from as and
// bs, and returns the number of intersecting pairs.
//
// Pairs are found on a snapshot of the live entities before any damage is
// applied, so the result does not depend on iteration order. Hits landing on
// an entity after it is destroyed are dropped: a projectile overlapping two
// enemies damages both of them and is destroyed once.
func Resolve[A, B Actor](as []A, bs []B) int {
	hitsA := make([]int, len(as))
	hitsB := make([]int, len(bs))
	pairs := 0

	for i, a := range as {
		if a.Destroyed() {
			continue
		}
		ra := a.Bounds()
		for j, b := range bs {
			if b.Destroyed() {
				continue
			}
			if ra.Intersects(b.Bounds()) {
				hitsA[i]++
				hitsB[j]++
				pairs++
			}
		}
	}

	applyHits(as, hitsA)
	applyHits(bs, hitsB)
	return pairs
}

func applyHits[T Actor](group []T, hits []int) {
	for i, n := range hits {
		for ; n > 0 && !group[i].Destroyed(); n-- {
			group[i].TakeDamage()
		}
	}
}
