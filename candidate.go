package hexmesh

import (
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

// VertexClass classifies a vertex of a regular hex mesh by how many cells
// can surround it, which follows from its number of neighbours.
type VertexClass int

const (
	UnknownVertex  VertexClass = iota
	CornerVertex               // 3 neighbours, 1 cell.
	EdgeVertex                 // 4 neighbours, 2 cells.
	FaceVertex                 // 5 neighbours, 4 cells.
	InteriorVertex             // 6 neighbours, 8 cells.
)

func (c VertexClass) String() string {
	switch c {
	case CornerVertex:
		return "corner"
	case EdgeVertex:
		return "edge"
	case FaceVertex:
		return "face"
	case InteriorVertex:
		return "interior"
	}
	return "unknown"
}

// NumCells returns the number of hexes incident to a vertex of class c.
func (c VertexClass) NumCells() int {
	switch c {
	case CornerVertex:
		return 1
	case EdgeVertex:
		return 2
	case FaceVertex:
		return 4
	case InteriorVertex:
		return 8
	}
	return 0
}

// ClassOf returns the class of a vertex with n neighbours.
func ClassOf(n int) (VertexClass, error) {
	switch n {
	case 3:
		return CornerVertex, nil
	case 4:
		return EdgeVertex, nil
	case 5:
		return FaceVertex, nil
	case 6:
		return InteriorVertex, nil
	}
	return UnknownVertex, malformed("there are %d connected vertices", n)
}

// seedFunc proposes seed quadruples for the hexes around center. Each
// quadruple holds center and three neighbours spanning one cell.
type seedFunc func(tol Tolerance, center int, nbrs []int, dirs []r3.Vec) ([][4]int, error)

var seedStrategies = [...]seedFunc{
	CornerVertex:   cornerSeeds,
	EdgeVertex:     edgeSeeds,
	FaceVertex:     faceSeeds,
	InteriorVertex: interiorSeeds,
}

// GetPotentialHexes proposes the hexes that could have v as a corner based on
// its neighbours alone. Candidates are not checked against existing edges or
// faces; see ValidateHex.
func GetPotentialHexes(vl *VertexList, v *Vertex) ([]Hex, error) {
	nbrs := v.ConnectedVertices()
	class, err := ClassOf(len(nbrs))
	if err != nil {
		return nil, err
	}
	dirs := make([]r3.Vec, len(nbrs))
	for i, n := range nbrs {
		nv := vl.At(n)
		if nv == nil {
			return nil, malformed("vertex %d neighbour %d is deleted", v.Index, n)
		}
		dirs[i] = r3.Sub(v.Location, nv.Location)
	}
	seeds, err := seedStrategies[class](vl.tolerance(), v.Index, nbrs, dirs)
	if err != nil {
		return nil, err
	}
	if len(seeds) != class.NumCells() {
		return nil, malformed("%s vertex %d produced %d seeds, want %d", class, v.Index, len(seeds), class.NumCells())
	}
	hexes := make([]Hex, len(seeds))
	for i, s := range seeds {
		hexes[i], err = GetPotentialHex(vl, s)
		if err != nil {
			return nil, err
		}
	}
	return hexes, nil
}

func cornerSeeds(_ Tolerance, center int, nbrs []int, _ []r3.Vec) ([][4]int, error) {
	return [][4]int{{center, nbrs[0], nbrs[1], nbrs[2]}}, nil
}

// edgeSeeds splits the neighbours at the one non orthogonal pair, which lies
// along the mesh edge through center.
func edgeSeeds(tol Tolerance, center int, nbrs []int, dirs []r3.Vec) ([][4]int, error) {
	first, second := -1, -1
	for i := range dirs {
		for j := i + 1; j < len(dirs); j++ {
			if tol.Orthogonal(dirs[i], dirs[j]) {
				continue
			}
			if first >= 0 {
				return nil, malformed("edge vertex %d has more than one colinear neighbour pair", center)
			}
			first, second = i, j
		}
	}
	if first < 0 {
		return nil, malformed("edge vertex %d has no colinear neighbour pair", center)
	}
	without := func(skip int) [4]int {
		s := [4]int{center}
		n := 1
		for i, nb := range nbrs {
			if i != skip {
				s[n] = nb
				n++
			}
		}
		return s
	}
	return [][4]int{without(second), without(first)}, nil
}

// faceSeeds excludes the boundary normal neighbour from pairing and combines
// it with each orthogonal pair of the in-plane neighbours.
func faceSeeds(tol Tolerance, center int, nbrs []int, dirs []r3.Vec) ([][4]int, error) {
	normal := -1
	for i := range dirs {
		ortho := true
		for j := range dirs {
			if i != j && !tol.Orthogonal(dirs[i], dirs[j]) {
				ortho = false
				break
			}
		}
		if !ortho {
			continue
		}
		if normal >= 0 {
			return nil, malformed("face vertex %d has more than one normal neighbour", center)
		}
		normal = i
	}
	if normal < 0 {
		return nil, malformed("face vertex %d has no normal neighbour", center)
	}
	var seeds [][4]int
	for i := range dirs {
		for j := i + 1; j < len(dirs); j++ {
			if i == normal || j == normal || !tol.Orthogonal(dirs[i], dirs[j]) {
				continue
			}
			seeds = append(seeds, [4]int{center, nbrs[i], nbrs[j], nbrs[normal]})
		}
	}
	return seeds, nil
}

// interiorSeeds returns every mutually orthogonal neighbour triple.
func interiorSeeds(tol Tolerance, center int, nbrs []int, dirs []r3.Vec) ([][4]int, error) {
	var seeds [][4]int
	for i := range dirs {
		for j := i + 1; j < len(dirs); j++ {
			if !tol.Orthogonal(dirs[i], dirs[j]) {
				continue
			}
			for k := j + 1; k < len(dirs); k++ {
				if tol.Orthogonal(dirs[i], dirs[k]) && tol.Orthogonal(dirs[j], dirs[k]) {
					seeds = append(seeds, [4]int{center, nbrs[i], nbrs[j], nbrs[k]})
				}
			}
		}
	}
	return seeds, nil
}

// GetConnectedFaces returns the faces incident to at least three of the four
// seed vertices. A seed quadruple spanning one corner of a hex yields exactly
// three such faces; any other count is an error.
func GetConnectedFaces(vl *VertexList, seeds []int) ([]int, error) {
	if len(seeds) != 4 {
		return nil, malformed("got %d seed vertices, want 4", len(seeds))
	}
	count := make(map[int]int)
	for _, s := range seeds {
		v := vl.At(s)
		if v == nil {
			return nil, malformed("seed vertex %d is deleted", s)
		}
		for _, f := range v.ConnectedFaces() {
			count[f]++
		}
	}
	var faces []int
	for f, n := range count {
		if n >= 3 {
			faces = append(faces, f)
		}
	}
	if len(faces) != 3 {
		return nil, malformed("connected faces is %d, want 3", len(faces))
	}
	sort.Ints(faces)
	return faces, nil
}

// GetPotentialHex completes a seed quadruple (a corner vertex and its three
// neighbours along the cell's edges) into a hex. The corner shared by all
// three connected faces becomes A, the neighbours become B, D and E in seed
// order, the far corners of the three faces become C, F and H and the
// remaining vertex G is the one adjacent to more than one far corner.
func GetPotentialHex(vl *VertexList, seeds [4]int) (Hex, error) {
	faces, err := GetConnectedFaces(vl, seeds[:])
	if err != nil {
		return Hex{}, err
	}
	center := -1
	var arms []int
	for _, s := range seeds {
		v := vl.At(s)
		if v.HasConnectedFace(faces[0]) && v.HasConnectedFace(faces[1]) && v.HasConnectedFace(faces[2]) {
			if center >= 0 {
				return Hex{}, malformed("seeds %v share all connected faces at more than one vertex", seeds)
			}
			center = s
			continue
		}
		arms = append(arms, s)
	}
	if center < 0 || len(arms) != 3 {
		return Hex{}, malformed("seeds %v have no unique corner vertex", seeds)
	}

	inHex := map[int]bool{seeds[0]: true, seeds[1]: true, seeds[2]: true, seeds[3]: true}
	far := map[int]int{} // face -> far corner
	for _, s := range seeds {
		for _, n := range vl.At(s).ConnectedVertices() {
			nv := vl.At(n)
			if inHex[n] || nv == nil {
				continue
			}
			for _, f := range faces {
				if !nv.HasConnectedFace(f) {
					continue
				}
				if prev, ok := far[f]; ok && prev != n {
					return Hex{}, malformed("face %d has far corners %d and %d", f, prev, n)
				}
				far[f] = n
				break
			}
		}
	}
	if len(far) != 3 {
		return Hex{}, malformed("found %d far corners for seeds %v, want 3", len(far), seeds)
	}
	// Label far corners by the pair of arms spanning their face.
	farOf := func(a, b int) (int, error) {
		va, vb := vl.At(a), vl.At(b)
		for _, f := range faces {
			if va.HasConnectedFace(f) && vb.HasConnectedFace(f) {
				return far[f], nil
			}
		}
		return -1, malformed("no connected face spans %d and %d", a, b)
	}
	var c, f, h int
	if c, err = farOf(arms[0], arms[1]); err != nil {
		return Hex{}, err
	}
	if f, err = farOf(arms[0], arms[2]); err != nil {
		return Hex{}, err
	}
	if h, err = farOf(arms[1], arms[2]); err != nil {
		return Hex{}, err
	}
	inHex[c], inHex[f], inHex[h] = true, true, true

	count := map[int]int{}
	for _, fc := range [3]int{c, f, h} {
		for _, n := range vl.At(fc).ConnectedVertices() {
			if !inHex[n] && vl.At(n) != nil {
				count[n]++
			}
		}
	}
	g := -1
	for n, k := range count {
		if k < 2 {
			continue
		}
		if g >= 0 {
			return Hex{}, malformed("seeds %v have more than one opposite corner candidate", seeds)
		}
		g = n
	}
	if g < 0 {
		return Hex{}, malformed("seeds %v have no opposite corner", seeds)
	}
	hex := Hex{A: center, B: arms[0], C: c, D: arms[1], E: arms[2], F: f, G: g, H: h}
	if !hex.distinct() {
		return Hex{}, malformed("possible hex %v does not have 8 distinct vertices", hex.Vertices())
	}
	return hex, nil
}
