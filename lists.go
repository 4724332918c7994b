package hexmesh

// EdgeList owns the mesh edges. Edges are appended once per key; adding an
// existing pair in any order returns the stored edge.
type EdgeList struct {
	edges []Edge
	keys  map[EdgeKey]int
}

// Add appends the edge a-b unless it is already present.
func (el *EdgeList) Add(a, b int) (e Edge, added bool) {
	if el.keys == nil {
		el.keys = make(map[EdgeKey]int)
	}
	k := MakeEdgeKey(a, b)
	if i, ok := el.keys[k]; ok {
		return el.edges[i], false
	}
	e = Edge{Index: len(el.edges), Start: a, End: b}
	el.keys[k] = e.Index
	el.edges = append(el.edges, e)
	return e, true
}

// At returns edge i.
func (el *EdgeList) At(i int) Edge { return el.edges[i] }

// Len returns the number of edges.
func (el *EdgeList) Len() int { return len(el.edges) }

// Contains reports whether an edge joins a and b in either direction.
func (el *EdgeList) Contains(a, b int) bool {
	_, ok := el.Find(a, b)
	return ok
}

// Find returns the index of the edge joining a and b.
func (el *EdgeList) Find(a, b int) (int, bool) {
	i, ok := el.keys[MakeEdgeKey(a, b)]
	return i, ok
}

// Edges returns a copy of the edges.
func (el *EdgeList) Edges() []Edge { return append([]Edge(nil), el.edges...) }

// remap rewrites endpoints through the vertex remap, dropping edges that touch
// deleted vertices, and renumbers the survivors.
func (el *EdgeList) remap(m []int) {
	old := el.edges
	el.edges = nil
	el.keys = nil
	for _, e := range old {
		a, b := remapIndex(m, e.Start), remapIndex(m, e.End)
		if a >= 0 && b >= 0 {
			el.Add(a, b)
		}
	}
}

// QuadFaceList owns the mesh faces. Faces are unique by corner set.
type QuadFaceList struct {
	faces []QuadFace
	keys  map[FaceKey]int
}

// Add appends f unless a face with the same corner set exists. The stored
// face, with its Index set, is returned.
func (fl *QuadFaceList) Add(f QuadFace) (QuadFace, bool) {
	if fl.keys == nil {
		fl.keys = make(map[FaceKey]int)
	}
	k := f.Key()
	if i, ok := fl.keys[k]; ok {
		return fl.faces[i], false
	}
	f.Index = len(fl.faces)
	fl.keys[k] = f.Index
	fl.faces = append(fl.faces, f)
	return f, true
}

// At returns face i.
func (fl *QuadFaceList) At(i int) QuadFace { return fl.faces[i] }

// Len returns the number of faces.
func (fl *QuadFaceList) Len() int { return len(fl.faces) }

// Contains reports whether a face with the same corner set as f exists.
func (fl *QuadFaceList) Contains(f QuadFace) bool {
	_, ok := fl.keys[f.Key()]
	return ok
}

// Find returns the index of the face with key k.
func (fl *QuadFaceList) Find(k FaceKey) (int, bool) {
	i, ok := fl.keys[k]
	return i, ok
}

// Faces returns a copy of the faces.
func (fl *QuadFaceList) Faces() []QuadFace { return append([]QuadFace(nil), fl.faces...) }

func (fl *QuadFaceList) remap(m []int) {
	old := fl.faces
	fl.faces = nil
	fl.keys = nil
	for _, f := range old {
		g := QuadFace{A: remapIndex(m, f.A), B: remapIndex(m, f.B), C: remapIndex(m, f.C), D: remapIndex(m, f.D)}
		if g.A >= 0 && g.B >= 0 && g.C >= 0 && g.D >= 0 {
			fl.Add(g)
		}
	}
}

func remapIndex(m []int, i int) int {
	if i < 0 || i >= len(m) {
		return -1
	}
	return m[i]
}
