package gophys

// NaiveBroadphase finds candidate colliding body pairs by testing every
// combination's AABB overlap, O(n^2). It favors simplicity and
// determinism over scale, matching the spec's single-threaded,
// no-spatial-index default.
type NaiveBroadphase struct{}

func NewNaiveBroadphase() *NaiveBroadphase { return &NaiveBroadphase{} }

// NeedBroadphaseCollision reports whether two bodies should even be
// tested for collision: both must have shapes, at least one must be
// BodyDynamic (two static/kinematic bodies never generate contacts),
// and each body's CollisionFilterGroup must match the other's
// CollisionFilterMask. Shape-level group/mask filtering happens per
// shape pair in Narrowphase.Generate.
func (*NaiveBroadphase) NeedBroadphaseCollision(bi, bj *Body) bool {
	if bi == bj {
		return false
	}
	if len(bi.Shapes) == 0 || len(bj.Shapes) == 0 {
		return false
	}
	if bi.Type != BodyDynamic && bj.Type != BodyDynamic {
		return false
	}
	if bi.CollisionFilterGroup&bj.CollisionFilterMask == 0 || bj.CollisionFilterGroup&bi.CollisionFilterMask == 0 {
		return false
	}
	if bi.SleepState == BodySleeping && bj.SleepState == BodySleeping {
		return false
	}
	if (bi.Type == BodyStatic || bi.SleepState == BodySleeping) &&
		(bj.Type == BodyStatic || bj.SleepState == BodySleeping) {
		return false
	}
	return true
}

// CollisionPairs returns the (bodyA, bodyB) pairs among bodies whose
// AABBs overlap and that pass NeedBroadphaseCollision.
func (n *NaiveBroadphase) CollisionPairs(bodies []*Body) (pairsA, pairsB []*Body) {
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			bi, bj := bodies[i], bodies[j]
			if !n.NeedBroadphaseCollision(bi, bj) {
				continue
			}
			if !bi.ComputeAABB().Overlaps(bj.ComputeAABB()) {
				continue
			}
			pairsA = append(pairsA, bi)
			pairsB = append(pairsB, bj)
		}
	}
	return pairsA, pairsB
}

// MakePairsUnique returns a deduplicated copy of a (pairsA, pairsB) pair
// list in newly allocated slices, preserving the first occurrence of each unordered (bi, bj) pair.
func MakePairsUnique(pairsA, pairsB []*Body) ([]*Body, []*Body) {
	seen := make(map[[2]uint64]bool, len(pairsA))
	outA := pairsA[:0:0]
	outB := pairsB[:0:0]
	for i := range pairsA {
		a, b := pairsA[i].ID, pairsB[i].ID
		if a > b {
			a, b = b, a
		}
		key := [2]uint64{a, b}
		if seen[key] {
			continue
		}
		seen[key] = true
		outA = append(outA, pairsA[i])
		outB = append(outB, pairsB[i])
	}
	return outA, outB
}

// AABBQuery returns every body in bodies whose AABB overlaps aabb.
func (*NaiveBroadphase) AABBQuery(bodies []*Body, aabb AABB) []*Body {
	var out []*Body
	for _, body := range bodies {
		if body.ComputeAABB().Overlaps(aabb) {
			out = append(out, body)
		}
	}
	return out
}
