package gophys

// Octree is a bounding-volume octree over items of type T, each stored
// with its own AABB. It is used by Trimesh to answer "which triangles
// overlap this AABB" queries without scanning every triangle.
type Octree[T any] struct {
	root *octreeNode[T]
	aabb AABB
}

type octreeLeaf[T any] struct {
	aabb  AABB
	value T
}

type octreeNode[T any] struct {
	aabb     AABB
	leaves   []octreeLeaf[T]
	children [8]*octreeNode[T]
	split    bool
}

const octreeMaxLeavesPerNode = 8
const octreeMaxDepth = 8

// NewOctree builds an empty octree bounded by aabb. Insertions of items
// outside aabb are still accepted (stored at the root) but will not
// benefit from spatial partitioning.
func NewOctree[T any](aabb AABB) *Octree[T] {
	return &Octree[T]{root: &octreeNode[T]{aabb: aabb}, aabb: aabb}
}

// Insert adds value bounded by itemAABB to the tree.
func (o *Octree[T]) Insert(itemAABB AABB, value T) {
	insertIntoNode(o.root, itemAABB, value, 0)
}

func insertIntoNode[T any](n *octreeNode[T], itemAABB AABB, value T, depth int) {
	if !n.split && len(n.leaves) >= octreeMaxLeavesPerNode && depth < octreeMaxDepth {
		subdivide(n)
	}
	if n.split {
		placed := false
		for i, c := range octantAABBs(n.aabb) {
			if c.Contains(itemAABB) {
				if n.children[i] == nil {
					n.children[i] = &octreeNode[T]{aabb: c}
				}
				insertIntoNode(n.children[i], itemAABB, value, depth+1)
				placed = true
				break
			}
		}
		if placed {
			return
		}
	}
	n.leaves = append(n.leaves, octreeLeaf[T]{aabb: itemAABB, value: value})
}

func subdivide[T any](n *octreeNode[T]) {
	n.split = true
}

func octantAABBs(a AABB) [8]AABB {
	mid := a.LowerBound.Add(a.UpperBound).Scale(0.5)
	lo, hi := a.LowerBound, a.UpperBound
	var out [8]AABB
	corners := [8][2]Vec3{
		{{lo.X, lo.Y, lo.Z}, {mid.X, mid.Y, mid.Z}},
		{{mid.X, lo.Y, lo.Z}, {hi.X, mid.Y, mid.Z}},
		{{lo.X, mid.Y, lo.Z}, {mid.X, hi.Y, mid.Z}},
		{{mid.X, mid.Y, lo.Z}, {hi.X, hi.Y, mid.Z}},
		{{lo.X, lo.Y, mid.Z}, {mid.X, mid.Y, hi.Z}},
		{{mid.X, lo.Y, mid.Z}, {hi.X, mid.Y, hi.Z}},
		{{lo.X, mid.Y, mid.Z}, {mid.X, hi.Y, hi.Z}},
		{{mid.X, mid.Y, mid.Z}, {hi.X, hi.Y, hi.Z}},
	}
	for i, c := range corners {
		out[i] = AABB{LowerBound: c[0], UpperBound: c[1]}
	}
	return out
}

// QueryAABB appends every value whose stored AABB overlaps query to out
// and returns the extended slice.
func (o *Octree[T]) QueryAABB(query AABB, out []T) []T {
	return queryNode(o.root, query, out)
}

func queryNode[T any](n *octreeNode[T], query AABB, out []T) []T {
	if n == nil || !n.aabb.Overlaps(query) {
		return out
	}
	for _, leaf := range n.leaves {
		if leaf.aabb.Overlaps(query) {
			out = append(out, leaf.value)
		}
	}
	if n.split {
		for _, c := range n.children {
			out = queryNode(c, query, out)
		}
	}
	return out
}
