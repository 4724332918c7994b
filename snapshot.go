package hexmesh

// Snapshot is an immutable view of the edges and faces known at the time it
// was taken. It answers existence queries in constant time. Structural
// mutations are not reflected; take a new snapshot after modifying the mesh.
type Snapshot struct {
	edges map[EdgeKey]Edge
	faces map[FaceKey]QuadFace
}

// NewSnapshot indexes the current contents of edges and faces by sorted
// vertex key. On duplicate keys the first entry wins. Either list may be nil.
func NewSnapshot(edges *EdgeList, faces *QuadFaceList) Snapshot {
	var s Snapshot
	if edges != nil {
		s.edges = make(map[EdgeKey]Edge, len(edges.edges))
		for _, e := range edges.edges {
			if _, ok := s.edges[e.Key()]; !ok {
				s.edges[e.Key()] = e
			}
		}
	}
	if faces != nil {
		s.faces = make(map[FaceKey]QuadFace, len(faces.faces))
		for _, f := range faces.faces {
			if _, ok := s.faces[f.Key()]; !ok {
				s.faces[f.Key()] = f
			}
		}
	}
	return s
}

// HasEdge reports whether the edge with key k was present.
func (s Snapshot) HasEdge(k EdgeKey) bool {
	_, ok := s.edges[k]
	return ok
}

// HasFace reports whether a face with key k was present.
func (s Snapshot) HasFace(k FaceKey) bool {
	_, ok := s.faces[k]
	return ok
}

// Edge returns the stored edge with key k.
func (s Snapshot) Edge(k EdgeKey) (Edge, bool) {
	e, ok := s.edges[k]
	return e, ok
}

// Face returns the stored face with key k.
func (s Snapshot) Face(k FaceKey) (QuadFace, bool) {
	f, ok := s.faces[k]
	return f, ok
}

func (s Snapshot) NumEdges() int { return len(s.edges) }
func (s Snapshot) NumFaces() int { return len(s.faces) }

// ValidateHex reports whether every one of the 12 edges and 6 faces derived
// from hex exists in snap. A hex whose corners are not 8 distinct indices
// derives fewer distinct edges or faces and is rejected outright.
func ValidateHex(hex Hex, snap Snapshot) bool {
	if !hex.distinct() {
		return false
	}
	edges := hex.Edges()
	seenEdges := make(map[EdgeKey]struct{}, len(edges))
	for _, e := range edges {
		if e[0] != e[1] {
			seenEdges[e] = struct{}{}
		}
	}
	faces := hex.Faces()
	seenFaces := make(map[FaceKey]struct{}, len(faces))
	for _, f := range faces {
		seenFaces[f.Key()] = struct{}{}
	}
	if len(seenEdges) != 12 || len(seenFaces) != 6 {
		return false
	}
	for e := range seenEdges {
		if !snap.HasEdge(e) {
			return false
		}
	}
	for f := range seenFaces {
		if !snap.HasFace(f) {
			return false
		}
	}
	return true
}
