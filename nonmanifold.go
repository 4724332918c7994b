package hexmesh

import (
	"math"

	"github.com/plan-systems/klog"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/soypat/hexmesh/internal/d3"
)

// ResolveMode selects how ResolveNonManifold removes the places where two
// hexes touch without sharing a face.
type ResolveMode int

const (
	// ResolveBridge adds hexes across the gap. A pinched edge is closed with a
	// single bridging hex between two perpendicular faces. A kissing point
	// first gets a full cell next to one of its hexes, which leaves a pinched
	// edge that is then bridged.
	ResolveBridge ResolveMode = iota
	// ResolveSplit splits every hex at a kissing point or pinched edge into 7
	// and drops the outer pieces touching it. The vertices at the spot are
	// deleted; call Compact to renumber.
	ResolveSplit
)

func (mode ResolveMode) String() string {
	switch mode {
	case ResolveBridge:
		return "bridge"
	case ResolveSplit:
		return "split"
	}
	return "ResolveMode(?)"
}

// ParseResolveMode returns the mode named s as printed by String.
func ParseResolveMode(s string) (ResolveMode, error) {
	for _, mode := range []ResolveMode{ResolveBridge, ResolveSplit} {
		if mode.String() == s {
			return mode, nil
		}
	}
	return 0, unsupported("unknown resolve mode %q", s)
}

// Resolution summarizes a ResolveNonManifold pass.
type Resolution struct {
	// Spots is the number of kissing points and pinched edges found.
	Spots int
	// Added holds the hexes created by the pass.
	Added []Hex
	// Removed counts the hexes replaced by a split.
	Removed int
}

// ResolveNonManifold finds the kissing points and pinched edges of the hexes
// of m with FindNonManifold and removes them with mode. cell is the grid cell
// size used for bridging. Spots no longer shared by exactly two hexes when
// their turn comes are skipped. Connectivity is rebuilt.
func (m *Mesh) ResolveNonManifold(cell r3.Vec, mode ResolveMode) (Resolution, error) {
	nm, err := FindNonManifold(m.Hexes)
	if err != nil {
		return Resolution{}, err
	}
	res := Resolution{Spots: len(nm.KissingPoints) + len(nm.PinchedEdges)}
	if res.Spots == 0 {
		return res, nil
	}
	switch mode {
	case ResolveSplit:
		err = m.splitAt(nm, &res)
	case ResolveBridge:
		if d3.Min(cell) <= 0 {
			return Resolution{}, unsupported("cell size %v is not positive", cell)
		}
		err = m.bridgeAt(nm, cell, &res)
	default:
		return Resolution{}, unsupported("unknown resolve mode %d", int(mode))
	}
	if err != nil {
		return Resolution{}, err
	}
	m.Connect()
	klog.V(1).Infof("%s resolved %d spots: added %d hexes, removed %d", mode, res.Spots, len(res.Added), res.Removed)
	return res, nil
}

func (m *Mesh) bridgeAt(nm NonManifold, cell r3.Vec, res *Resolution) error {
	for _, e := range nm.PinchedEdges {
		hs := m.hexesWith(e[0], e[1])
		if len(hs) != 2 {
			klog.V(2).Infof("pinched edge %v now has %d hexes, skipped", e, len(hs))
			continue
		}
		added, err := m.bridgeEdge(m.Hexes[hs[0]], m.Hexes[hs[1]], e, cell)
		if err != nil {
			return err
		}
		res.Added = append(res.Added, added...)
	}
	for _, k := range nm.KissingPoints {
		hs := m.hexesWith(k)
		if len(hs) != 2 {
			klog.V(2).Infof("kissing point %d now has %d hexes, skipped", k, len(hs))
			continue
		}
		added, err := m.bridgeKiss(m.Hexes[hs[0]], m.Hexes[hs[1]], k, cell)
		if err != nil {
			return err
		}
		res.Added = append(res.Added, added...)
	}
	return nil
}

// bridgeEdge bridges the first pair of perpendicular faces of h1 and h2
// that both run along e.
func (m *Mesh) bridgeEdge(h1, h2 Hex, e EdgeKey, cell r3.Vec) ([]Hex, error) {
	tol := m.Vertices.tolerance()
	along := func(f QuadFace) bool { return f.Contains(e[0]) && f.Contains(e[1]) }
	for _, f1 := range h1.Faces() {
		if !along(f1) {
			continue
		}
		for _, f2 := range h2.Faces() {
			if !along(f2) || !tol.Orthogonal(f1.Normal(m.Vertices), f2.Normal(m.Vertices)) {
				continue
			}
			return m.Bridge(f1, f2, e[0], cell, false)
		}
	}
	return nil, ambiguous("pinched edge %v has no perpendicular face pair", e)
}

// bridgeKiss adds a copy of h1 shifted one cell towards h2 along the first
// axis for which the copy meets h2 along an edge, then bridges that edge.
func (m *Mesh) bridgeKiss(h1, h2 Hex, k int, cell r3.Vec) ([]Hex, error) {
	vl := m.Vertices
	tol := vl.tolerance()
	d := r3.Sub(h2.Centroid(vl), h1.Centroid(vl))
	v1 := h1.Vertices()
	for ax := d3.AxisX; ax <= d3.AxisZ; ax++ {
		dc := d3.Comp(d, ax)
		if math.Abs(dc) <= tol.Dist {
			continue
		}
		shift := d3.SetComp(r3.Vec{}, ax, math.Copysign(d3.Comp(cell, ax), dc))
		var pts [8]r3.Vec
		var edge []int
		for i, vi := range v1 {
			pts[i] = r3.Add(vl.MustAt(vi).Location, shift)
			if j, ok := vl.Find(pts[i]); ok && h2.Contains(j) {
				edge = append(edge, j)
			}
		}
		if len(edge) != 2 {
			continue
		}
		var v [8]int
		for i, p := range pts {
			v[i], _ = vl.Weld(p)
		}
		fill := NewHex(v)
		for _, f := range fill.Faces() {
			if _, err := m.AddFace(f); err != nil {
				return nil, err
			}
		}
		if _, err := m.AddHex(fill); err != nil {
			return nil, err
		}
		bridged, err := m.bridgeEdge(fill, h2, MakeEdgeKey(edge[0], edge[1]), cell)
		if err != nil {
			return nil, err
		}
		return append([]Hex{fill}, bridged...), nil
	}
	return nil, unsupported("kissing point %d: no neighbouring cell meets both hexes", k)
}

// splitAt replaces every hex touching a non-manifold vertex with its split
// pieces and deletes those vertices.
func (m *Mesh) splitAt(nm NonManifold, res *Resolution) error {
	bad := make(map[int]bool)
	for _, k := range nm.KissingPoints {
		bad[k] = true
	}
	for _, e := range nm.PinchedEdges {
		bad[e[0]], bad[e[1]] = true, true
	}
	touches := func(h Hex) bool {
		for _, v := range h.Vertices() {
			if bad[v] {
				return true
			}
		}
		return false
	}
	split := m.removeHexes(touches)
	for _, h := range split {
		pieces, err := m.splitHex(h, touches)
		if err != nil {
			return err
		}
		res.Added = append(res.Added, pieces...)
	}
	res.Removed = len(split)
	for v := range bad {
		m.Vertices.Delete(v)
	}
	return nil
}

// splitHex divides h into an inner hex at half size around its centroid and
// the 6 hexes between the inner hex and each face of h. Pieces for which
// drop returns true are discarded. The kept pieces and their faces are added.
func (m *Mesh) splitHex(h Hex, drop func(Hex) bool) ([]Hex, error) {
	vl := m.Vertices
	c := h.Centroid(vl)
	v := h.Vertices()
	var in [8]int
	for i, vi := range v {
		in[i], _ = vl.Weld(r3.Add(c, r3.Scale(0.5, r3.Sub(vl.MustAt(vi).Location, c))))
	}
	pieces := []Hex{NewHex(in)}
	for _, q := range hexFaceCorners {
		shell := NewHex([8]int{v[q[0]], v[q[1]], v[q[2]], v[q[3]], in[q[0]], in[q[1]], in[q[2]], in[q[3]]})
		if !drop(shell) {
			pieces = append(pieces, shell)
		}
	}
	for _, p := range pieces {
		for _, f := range p.Faces() {
			if _, err := m.AddFace(f); err != nil {
				return nil, err
			}
		}
		if _, err := m.AddHex(p); err != nil {
			return nil, err
		}
	}
	return pieces, nil
}

// hexesWith returns the positions in m.Hexes of the hexes having every
// vertex of vs as a corner.
func (m *Mesh) hexesWith(vs ...int) []int {
	var hs []int
	for i, h := range m.Hexes {
		all := true
		for _, v := range vs {
			all = all && h.Contains(v)
		}
		if all {
			hs = append(hs, i)
		}
	}
	return hs
}

// removeHexes drops the hexes for which fn returns true and returns them.
func (m *Mesh) removeHexes(fn func(Hex) bool) (removed []Hex) {
	kept := m.Hexes[:0]
	for _, h := range m.Hexes {
		if fn(h) {
			removed = append(removed, h)
			delete(m.hexKeys, h.Key())
			continue
		}
		kept = append(kept, h)
	}
	m.Hexes = kept
	return removed
}
