package hexmesh

import (
	"sort"

	"github.com/plan-systems/klog"
	"gonum.org/v1/gonum/spatial/r3"
)

// Mesh bundles the topology collections and the confirmed hexes of a
// partially built hexahedral mesh. A Mesh is not safe for concurrent use.
type Mesh struct {
	Vertices *VertexList
	Edges    EdgeList
	Faces    QuadFaceList
	Hexes    []Hex

	hexKeys map[[8]int]struct{}
}

// NewMesh returns an empty mesh whose vertex list uses tol.
func NewMesh(tol Tolerance) *Mesh {
	return &Mesh{Vertices: NewVertexList(tol)}
}

// AddVertex appends a vertex at p and returns its index.
func (m *Mesh) AddVertex(p r3.Vec) int { return m.Vertices.Add(p).Index }

// AddEdge adds the edge a-b if not present and returns its index.
func (m *Mesh) AddEdge(a, b int) (int, error) {
	if err := m.checkVertices(a, b); err != nil {
		return -1, err
	}
	if a == b {
		return -1, malformed("degenerate edge at vertex %d", a)
	}
	e, _ := m.Edges.Add(a, b)
	return e.Index, nil
}

// AddFace adds f and its four boundary edges. Faces repeating a corner are
// rejected.
func (m *Mesh) AddFace(f QuadFace) (int, error) {
	v := f.Vertices()
	if err := m.checkVertices(v[:]...); err != nil {
		return -1, err
	}
	if k := f.Key(); k[0] == k[1] || k[1] == k[2] || k[2] == k[3] {
		return -1, malformed("face %v repeats a vertex", v)
	}
	for _, e := range f.Edges() {
		m.Edges.Add(e[0], e[1])
	}
	stored, _ := m.Faces.Add(f)
	return stored.Index, nil
}

// AddHex records h as a confirmed cell. Adding the same cell twice, under any
// corner labelling, is a no-op that returns false.
func (m *Mesh) AddHex(h Hex) (bool, error) {
	v := h.Vertices()
	if err := m.checkVertices(v[:]...); err != nil {
		return false, err
	}
	if !h.distinct() {
		return false, malformed("hex %v does not have 8 distinct vertices", v)
	}
	if m.hexKeys == nil {
		m.hexKeys = make(map[[8]int]struct{})
	}
	k := h.Key()
	if _, ok := m.hexKeys[k]; ok {
		return false, nil
	}
	m.hexKeys[k] = struct{}{}
	m.Hexes = append(m.Hexes, h)
	return true, nil
}

// HasHex reports whether a hex with the same corner set was added.
func (m *Mesh) HasHex(h Hex) bool {
	_, ok := m.hexKeys[h.Key()]
	return ok
}

func (m *Mesh) checkVertices(idx ...int) error {
	for _, i := range idx {
		if m.Vertices.At(i) == nil {
			return malformed("vertex %d does not exist", i)
		}
	}
	return nil
}

// Connect rebuilds the vertex connectivity caches from the current edges,
// faces and hexes.
func (m *Mesh) Connect() {
	m.Vertices.ClearConnectivity()
	m.Vertices.AddConnectedEdges(&m.Edges)
	m.Vertices.AddConnectedQuadFaces(&m.Faces)
	m.Vertices.AddConnectedVertices(&m.Edges)
	m.Vertices.AddConnectedVerticesFromHexes(m.Hexes)
}

// Snapshot returns an immutable view of the current edges and faces.
func (m *Mesh) Snapshot() Snapshot { return NewSnapshot(&m.Edges, &m.Faces) }

// CompleteHexes proposes candidate hexes around every vertex with connected
// faces, keeps those whose edges and faces all exist, and records them.
// Vertices without faces are skipped. It returns the newly added hexes.
// Connectivity must be current; see Connect.
func (m *Mesh) CompleteHexes() ([]Hex, error) {
	snap := m.Snapshot()
	var added []Hex
	var err error
	m.Vertices.ForEach(func(v *Vertex) {
		if err != nil || v.NumConnectedFaces() == 0 {
			return
		}
		var cands []Hex
		cands, err = GetPotentialHexes(m.Vertices, v)
		if err != nil {
			return
		}
		for _, h := range cands {
			if !ValidateHex(h, snap) {
				klog.V(3).Infof("vertex %d: rejected candidate %v", v.Index, h.Vertices())
				continue
			}
			var ok bool
			if ok, err = m.AddHex(h); err != nil {
				return
			} else if ok {
				added = append(added, h)
			}
		}
	})
	if err != nil {
		return nil, err
	}
	m.Vertices.AddConnectedVerticesFromHexes(added)
	klog.V(2).Infof("completed %d hexes, %d total", len(added), len(m.Hexes))
	return added, nil
}

// Bridge closes the gap at pinch between face1 and face2 with one hex, or two
// when twoHexes is set, adding the synthesized faces and hexes to the mesh.
// Connectivity is rebuilt afterwards.
func (m *Mesh) Bridge(face1, face2 QuadFace, pinch int, cell r3.Vec, twoHexes bool) ([]Hex, error) {
	var (
		faces []QuadFace
		hexes []Hex
		err   error
	)
	if twoHexes {
		faces, hexes, err = ConnectFacesWithTwoHexes(m.Vertices, face1, face2, pinch, cell)
	} else {
		var h Hex
		faces, h, err = ConnectFacesWithOneHex(m.Vertices, face1, face2, pinch, cell)
		hexes = []Hex{h}
	}
	if err != nil {
		return nil, err
	}
	for _, f := range faces {
		if _, err = m.AddFace(f); err != nil {
			return nil, err
		}
	}
	for _, h := range hexes {
		if _, err = m.AddHex(h); err != nil {
			return nil, err
		}
	}
	m.Connect()
	klog.V(2).Infof("bridged pinch %d with %d hexes and %d faces", pinch, len(hexes), len(faces))
	return hexes, nil
}

// DropUnused tombstones every vertex not used by a hex. Indices are kept;
// call Compact to renumber. It returns the number of vertices dropped.
func (m *Mesh) DropUnused() int {
	used := make(map[int]bool)
	for _, h := range m.Hexes {
		for _, v := range h.Vertices() {
			used[v] = true
		}
	}
	n := 0
	m.Vertices.ForEach(func(v *Vertex) {
		if !used[v.Index] {
			m.Vertices.Delete(v.Index)
			n++
		}
	})
	return n
}

// Compact removes deleted vertex slots and renumbers every edge, face and hex
// in one pass. Entities touching a deleted vertex are removed. Connectivity
// is rebuilt. It returns the old to new vertex index mapping.
func (m *Mesh) Compact() []int {
	remap := m.Vertices.Compact()
	m.Edges.remap(remap)
	m.Faces.remap(remap)
	old := m.Hexes
	m.Hexes, m.hexKeys = nil, nil
	for _, h := range old {
		v := h.Vertices()
		ok := true
		for i := range v {
			if v[i] = remapIndex(remap, v[i]); v[i] < 0 {
				ok = false
			}
		}
		if !ok {
			continue
		}
		if _, err := m.AddHex(NewHex(v)); err != nil {
			klog.Warningf("compact: dropping hex %v: %v", h.Vertices(), err)
		}
	}
	m.Connect()
	return remap
}

// ClosestVertex returns the live vertex nearest to p, or -1 for an empty mesh.
func (m *Mesh) ClosestVertex(p r3.Vec) int {
	i, _ := m.Vertices.Closest(p)
	return i
}

// NonManifold lists places where exactly two hexes touch without sharing a face.
type NonManifold struct {
	// KissingPoints are vertices where two hexes share only that vertex.
	KissingPoints []int
	// PinchedEdges are edges where two hexes share only that edge.
	PinchedEdges []EdgeKey
}

// Empty reports whether no non-manifold configuration was found.
func (nm NonManifold) Empty() bool { return len(nm.KissingPoints) == 0 && len(nm.PinchedEdges) == 0 }

// FindNonManifold inspects every vertex used by exactly two hexes. The number
// of corners those hexes share tells how they meet: 1 is a kissing point, 2 a
// pinched edge and 4 a shared face. Any other count cannot happen between two
// hexes of a valid mesh and is reported as an error.
func FindNonManifold(hexes []Hex) (NonManifold, error) {
	users := make(map[int][]int)
	for hi, h := range hexes {
		for _, v := range h.Vertices() {
			users[v] = append(users[v], hi)
		}
	}
	verts := make([]int, 0, len(users))
	for v := range users {
		verts = append(verts, v)
	}
	sort.Ints(verts)

	var nm NonManifold
	seenEdges := make(map[EdgeKey]bool)
	for _, v := range verts {
		hs := users[v]
		if len(hs) != 2 {
			continue
		}
		a, b := hexes[hs[0]], hexes[hs[1]]
		var shared []int
		for _, c := range a.Vertices() {
			if b.Contains(c) {
				shared = append(shared, c)
			}
		}
		switch len(shared) {
		case 1:
			nm.KissingPoints = append(nm.KissingPoints, v)
		case 2:
			k := MakeEdgeKey(shared[0], shared[1])
			if !seenEdges[k] {
				seenEdges[k] = true
				nm.PinchedEdges = append(nm.PinchedEdges, k)
			}
		case 4:
		default:
			return NonManifold{}, malformed("vertex %d: hexes %d and %d share %d vertices", v, hs[0], hs[1], len(shared))
		}
	}
	return nm, nil
}
