package gophys

// ObjectCollisionMatrix is a symmetric boolean matrix keyed by an
// unordered pair of body ids, recording whether the pair was in contact.
// World keeps a current and previous matrix so begin/end collision and
// trigger events can be derived by diffing the two after each step.
type ObjectCollisionMatrix struct {
	set map[[2]uint64]bool
}

func NewObjectCollisionMatrix() *ObjectCollisionMatrix {
	return &ObjectCollisionMatrix{set: make(map[[2]uint64]bool)}
}

func pairKey(i, j uint64) [2]uint64 {
	if i > j {
		i, j = j, i
	}
	return [2]uint64{i, j}
}

func (m *ObjectCollisionMatrix) Get(i, j uint64) bool {
	return m.set[pairKey(i, j)]
}

func (m *ObjectCollisionMatrix) Set(i, j uint64, value bool) {
	key := pairKey(i, j)
	if value {
		m.set[key] = true
	} else {
		delete(m.set, key)
	}
}

func (m *ObjectCollisionMatrix) Reset() {
	m.set = make(map[[2]uint64]bool)
}

// Clone returns a deep copy, used to snapshot "previous step" state.
func (m *ObjectCollisionMatrix) Clone() *ObjectCollisionMatrix {
	out := NewObjectCollisionMatrix()
	for k, v := range m.set {
		out.set[k] = v
	}
	return out
}

// Pairs returns every (i, j) pair currently marked true, in unspecified
// order. Used to find pairs that dropped out of contact between steps.
func (m *ObjectCollisionMatrix) Pairs() [][2]uint64 {
	out := make([][2]uint64, 0, len(m.set))
	for k := range m.set {
		out = append(out, k)
	}
	return out
}
