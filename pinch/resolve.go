package pinch

import (
	"sort"

	"github.com/plan-systems/klog"
	"github.com/soypat/hexmesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// IsBowtie reports whether v joins exactly two faces that share no edge,
// which is the case when v has 2 faces and 4 edges.
func IsBowtie(m Mesh, v int) bool {
	return len(m.VertexFaces(v)) == 2 && len(m.VertexEdges(v)) == 4
}

// bowtie is the local configuration around a pinch vertex.
type bowtie struct {
	v     int
	faces [2]int
	// nbrs[k] are the two neighbours of v that are corners of faces[k].
	nbrs [2][2]int
}

func newBowtie(m Mesh, v int) (bowtie, error) {
	faces := m.VertexFaces(v)
	edges := m.VertexEdges(v)
	if len(faces) != 2 || len(edges) != 4 {
		return bowtie{}, unsupported("vertex %d with %d faces and %d edges is not a two-fold pinch", v, len(faces), len(edges))
	}
	bt := bowtie{v: v, faces: [2]int{faces[0], faces[1]}}
	var n [2]int
	for _, e := range edges {
		ef := m.EdgeFaces(e)
		if len(ef) != 1 {
			return bowtie{}, unsupported("edge %v of pinch %d borders %d faces", m.Edge(e), v, len(ef))
		}
		k := 0
		if ef[0] == bt.faces[1] {
			k = 1
		}
		if n[k] == 2 {
			return bowtie{}, malformed("face %d has more than two edges at vertex %d", bt.faces[k], v)
		}
		ev := m.Edge(e)
		other := ev[0]
		if other == v {
			other = ev[1]
		}
		bt.nbrs[k][n[k]] = other
		n[k]++
	}
	for _, f := range bt.faces {
		if c := m.Face(f); c[2] == c[3] {
			return bowtie{}, unsupported("triangle %d at pinch %d", f, v)
		}
	}
	return bt, nil
}

// template is a group of faces to add to a mesh. Corners k >= 0 are
// existing vertices, corners k < 0 refer to pts[-k-1].
type template struct {
	pts   []r3.Vec
	faces [][4]int
}

func (t *template) point(p r3.Vec) int {
	t.pts = append(t.pts, p)
	return -len(t.pts)
}

func (t *template) face(a, b, c, d int) {
	t.faces = append(t.faces, [4]int{a, b, c, d})
}

// apply adds the template to m and returns the indices of the new faces.
func (t *template) apply(m *QuadMesh, idx *LocationIndex) []int {
	vi := idx.indexAll(m, t.pts...)
	added := make([]int, 0, len(t.faces))
	for _, f := range t.faces {
		for j, k := range f {
			if k < 0 {
				f[j] = vi[-k-1]
			}
		}
		added = append(added, m.AddFace(f[0], f[1], f[2], f[3]))
	}
	return added
}

// connectTemplate fills the two empty quadrants around a bowtie vertex
// with two faces each.
func connectTemplate(m Mesh, bt bowtie) (template, error) {
	s := m.Vertex(bt.v)
	normal := faceNormal(m, bt.faces[0])
	var t template
	quadrants := 0
	for _, ia := range bt.nbrs[0] {
		for _, ib := range bt.nbrs[1] {
			a, b := r3.Sub(m.Vertex(ia), s), r3.Sub(m.Vertex(ib), s)
			if !hexmesh.DefaultTolerance.Orthogonal(a, b) {
				continue
			}
			pa, pb := ia, ib
			if r3.Dot(r3.Cross(a, b), normal) > 0 {
				a, b = b, a
				pa, pb = pb, pa
			}
			v0 := t.point(r3.Add(s, r3.Add(r3.Scale(1./3, a), r3.Scale(1./3, b))))
			v1 := t.point(r3.Add(s, r3.Add(r3.Scale(2./3, a), r3.Scale(1./3, b))))
			v2 := t.point(r3.Add(s, r3.Add(r3.Scale(1./3, a), r3.Scale(2./3, b))))
			t.face(v0, v1, pa, bt.v)
			t.face(v0, bt.v, pb, v2)
			quadrants++
		}
	}
	if quadrants != 2 {
		return template{}, unsupported("pinch %d has %d empty quadrants", bt.v, quadrants)
	}
	return t, nil
}

// separateTemplate rebuilds both faces of a bowtie so that neither
// touches the pinch vertex. Each face is replaced by three faces meeting
// at a point a third of the way from its far corner.
func separateTemplate(m Mesh, bt bowtie) template {
	var t template
	for _, f := range bt.faces {
		corners := m.Face(f)
		i := 0
		for corners[i] != bt.v {
			i++
		}
		c := corners[(i+2)%4]
		pa, pb := corners[(i+3)%4], corners[(i+1)%4]
		o := m.Vertex(c)
		a, b := r3.Sub(m.Vertex(pa), o), r3.Sub(m.Vertex(pb), o)
		at := func(fa, fb float64) r3.Vec {
			return r3.Add(o, r3.Add(r3.Scale(fa, a), r3.Scale(fb, b)))
		}
		v0 := t.point(at(1./3, 1./3))
		v1 := t.point(at(2./3, 1./3))
		v2 := t.point(at(1./3, 2./3))
		v6 := t.point(at(2./3, 2./3))
		t.face(v0, c, pa, v1)
		t.face(v0, v2, pb, c)
		t.face(v0, v1, v6, v2)
	}
	return t
}

// ConnectPinch makes pinch vertex v manifold by filling the two empty
// quadrants between its faces. A nil idx starts from the vertices of m.
func ConnectPinch(m *QuadMesh, v int, idx *LocationIndex) error {
	idx = indexFor(idx, m)
	bt, err := newBowtie(m, v)
	if err != nil {
		return err
	}
	t, err := connectTemplate(m, bt)
	if err != nil {
		return err
	}
	t.apply(m, idx)
	return nil
}

// SeparatePinch adds faces that rebuild both faces of pinch v away from
// it and returns the faces the caller must remove to finish the
// separation. Removing faces renumbers them so SeparatePinch leaves that
// to the caller.
func SeparatePinch(m *QuadMesh, v int, idx *LocationIndex) (remove []int, err error) {
	idx = indexFor(idx, m)
	bt, err := newBowtie(m, v)
	if err != nil {
		return nil, err
	}
	t := separateTemplate(m, bt)
	t.apply(m, idx)
	return []int{bt.faces[0], bt.faces[1]}, nil
}

// Report summarizes a MakeManifold pass.
type Report struct {
	Pinches   int
	Groups    int
	Connected int // groups resolved by connecting
	Separated int // groups resolved by separating
	Removed   int // faces removed
	// Remap maps vertex indices before the pass to indices after it.
	// Removed vertices map to -1.
	Remap []int
}

// PinchGroups returns the bowtie vertices of m grouped by shared faces.
// Groups are sorted and ordered by their first vertex.
func PinchGroups(m Mesh) [][]int {
	isPinch := make(map[int]bool)
	for v := 0; v < m.NumVertices(); v++ {
		if IsBowtie(m, v) {
			isPinch[v] = true
		}
	}
	seen := make(map[int]bool, len(isPinch))
	var groups [][]int
	for v := 0; v < m.NumVertices(); v++ {
		if !isPinch[v] || seen[v] {
			continue
		}
		seen[v] = true
		group := []int{v}
		for queue := []int{v}; len(queue) > 0; queue = queue[1:] {
			for _, f := range m.VertexFaces(queue[0]) {
				for _, w := range m.Face(f) {
					if isPinch[w] && !seen[w] {
						seen[w] = true
						group = append(group, w)
						queue = append(queue, w)
					}
				}
			}
		}
		sort.Ints(group)
		groups = append(groups, group)
	}
	return groups
}

// MakeManifold resolves every pinch of m. Adjacent pinches are resolved
// together: a group is connected when most of its vertices are inside,
// and separated otherwise, ties included. A nil inside separates all
// groups. Faces touching a separated pinch are removed and m is compacted.
// idx is updated to the compacted numbering. A nil idx starts from the
// vertices of m.
func MakeManifold(m *QuadMesh, inside func(v int) bool, idx *LocationIndex) (Report, error) {
	idx = indexFor(idx, m)
	groups := PinchGroups(m)
	rep := Report{Groups: len(groups)}
	var templates []template
	var separated [][]int
	for _, group := range groups {
		rep.Pinches += len(group)
		conn := 0
		if inside != nil {
			for _, v := range group {
				if inside(v) {
					conn++
				}
			}
		}
		connect := conn > len(group)-conn
		for _, v := range group {
			bt, err := newBowtie(m, v)
			if err != nil {
				return rep, err
			}
			if !connect {
				templates = append(templates, separateTemplate(m, bt))
				continue
			}
			t, err := connectTemplate(m, bt)
			if err != nil {
				return rep, err
			}
			templates = append(templates, t)
		}
		if connect {
			rep.Connected++
		} else {
			rep.Separated++
			separated = append(separated, group)
		}
		klog.V(3).Infof("pinch group %v connect=%v (%d/%d inside)", group, connect, conn, len(group))
	}
	for i := range templates {
		templates[i].apply(m, idx)
	}
	drop := make(map[int]bool)
	for _, group := range separated {
		for _, v := range group {
			drop[v] = true
		}
	}
	var remove []int
	for f := 0; f < m.NumFaces(); f++ {
		for _, v := range m.Face(f) {
			if drop[v] {
				remove = append(remove, f)
				break
			}
		}
	}
	rep.Removed = m.RemoveFaces(remove)
	rep.Remap = m.Compact()
	idx.Remap(rep.Remap)
	klog.V(2).Infof("resolved %d pinches in %d groups: %d connected, %d separated, %d faces removed",
		rep.Pinches, rep.Groups, rep.Connected, rep.Separated, rep.Removed)
	return rep, nil
}

// faceNormal returns the unnormalized normal of face f by Newell's method.
func faceNormal(m Mesh, f int) r3.Vec {
	c := m.Face(f)
	var n r3.Vec
	for j := 0; j < 4; j++ {
		p, q := m.Vertex(c[j]), m.Vertex(c[(j+1)%4])
		n.X += (p.Y - q.Y) * (p.Z + q.Z)
		n.Y += (p.Z - q.Z) * (p.X + q.X)
		n.Z += (p.X - q.X) * (p.Y + q.Y)
	}
	return n
}
