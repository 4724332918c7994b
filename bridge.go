package hexmesh

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/soypat/hexmesh/internal/d3"
)

// bridgeFaces splits the corners of two faces meeting at pinch into the one
// other shared corner (the connection) and the two free corners of each face.
func bridgeFaces(face1, face2 QuadFace, pinch int) (conn int, free1, free2 []int, err error) {
	if !face1.Contains(pinch) || !face2.Contains(pinch) {
		return -1, nil, nil, malformed("pinch %d is not a corner of both faces", pinch)
	}
	conn = -1
	for _, c := range face1.Vertices() {
		switch {
		case c == pinch:
		case face2.Contains(c):
			if conn >= 0 {
				return -1, nil, nil, malformed("faces %v and %v share more than one vertex besides pinch %d", face1.Vertices(), face2.Vertices(), pinch)
			}
			conn = c
		default:
			free1 = append(free1, c)
		}
	}
	if conn < 0 {
		return -1, nil, nil, malformed("faces %v and %v share no connection vertex", face1.Vertices(), face2.Vertices())
	}
	for _, c := range face2.Vertices() {
		if !face1.Contains(c) {
			free2 = append(free2, c)
		}
	}
	return conn, free1, free2, nil
}

// ConnectFacesWithOneHex fills the gap between two faces that meet along the
// edge from pinch to a connection vertex with a single hex. Two vertices are
// synthesized 3/8 of a cell away from the pinch and connection vertices,
// perpendicular to the edge between them, and welded to existing vertices
// within tolerance. It returns the four new faces and the new hex; neither is
// added to any list.
func ConnectFacesWithOneHex(vl *VertexList, face1, face2 QuadFace, pinch int, cell r3.Vec) ([]QuadFace, Hex, error) {
	conn, free1, free2, err := bridgeFaces(face1, face2, pinch)
	if err != nil {
		return nil, Hex{}, err
	}
	tol := vl.tolerance()
	p, c := vl.MustAt(pinch).Location, vl.MustAt(conn).Location

	// Sort the free corners of each face by which end of the edge they sit next to.
	near := func(free []int) (atPinch, atConn int, err error) {
		atPinch, atConn = -1, -1
		for _, w := range free {
			wv := vl.MustAt(w)
			dp, dc := wv.DistanceTo(p), wv.DistanceTo(c)
			switch {
			case math.Abs(dp-dc) <= tol.Dist:
				return -1, -1, ambiguous("free vertex %d is equidistant to pinch %d and connection %d", w, pinch, conn)
			case dp < dc:
				if atPinch >= 0 {
					return -1, -1, ambiguous("free vertices %d and %d both sort next to pinch %d", atPinch, w, pinch)
				}
				atPinch = w
			default:
				if atConn >= 0 {
					return -1, -1, ambiguous("free vertices %d and %d both sort next to connection %d", atConn, w, conn)
				}
				atConn = w
			}
		}
		return atPinch, atConn, nil
	}
	p1, c1, err := near(free1)
	if err != nil {
		return nil, Hex{}, err
	}
	p2, c2, err := near(free2)
	if err != nil {
		return nil, Hex{}, err
	}

	axis, ok := d3.DominantAxis(r3.Sub(c, p), tol.Dist)
	if !ok {
		return nil, Hex{}, ambiguous("edge %d-%d is not axis aligned", pinch, conn)
	}
	var dist float64
	for ax := d3.AxisX; ax <= d3.AxisZ; ax++ {
		if ax != axis {
			k := d3.Comp(cell, ax) * 3 / 8
			dist += k * k
		}
	}
	dist = math.Sqrt(dist)
	offset := func(origin r3.Vec, a, b int) (r3.Vec, error) {
		dir := r3.Add(r3.Sub(vl.MustAt(a).Location, origin), r3.Sub(vl.MustAt(b).Location, origin))
		dir = d3.SetComp(dir, axis, 0)
		if r3.Norm(dir) <= tol.Dist {
			return r3.Vec{}, ambiguous("free vertices %d and %d give no bridging direction", a, b)
		}
		return r3.Add(origin, r3.Scale(dist, r3.Unit(dir))), nil
	}
	pos1, err := offset(p, p1, p2)
	if err != nil {
		return nil, Hex{}, err
	}
	pos2, err := offset(c, c1, c2)
	if err != nil {
		return nil, Hex{}, err
	}
	n1, _ := vl.Weld(pos1)
	n2, _ := vl.Weld(pos2)

	hex := Hex{A: pinch, B: p1, C: n1, D: p2, E: conn, F: c1, G: n2, H: c2}
	if !hex.distinct() {
		return nil, Hex{}, ambiguous("bridging hex %v collapses onto existing vertices", hex.Vertices())
	}
	faces := []QuadFace{
		{Index: -1, A: pinch, B: p1, C: n1, D: p2},
		{Index: -1, A: conn, B: c1, C: n2, D: c2},
		{Index: -1, A: p1, B: n1, C: n2, D: c1},
		{Index: -1, A: p2, B: n1, C: n2, D: c2},
	}
	return faces, hex, nil
}

// ConnectFacesWithTwoHexes bridges two faces with two hexes. A bridge face is
// placed between them whose edge corner must already exist a quarter of the
// way along the pinch to connection edge; its last corner is welded half an
// edge further. Each input face is then joined to the bridge face with
// ConnectFacesWithOneHex. The returned faces start with the bridge face.
func ConnectFacesWithTwoHexes(vl *VertexList, face1, face2 QuadFace, pinch int, cell r3.Vec) ([]QuadFace, []Hex, error) {
	conn, free1, free2, err := bridgeFaces(face1, face2, pinch)
	if err != nil {
		return nil, nil, err
	}
	tol := vl.tolerance()
	p, c := vl.MustAt(pinch).Location, vl.MustAt(conn).Location
	closest := func(free []int) (r3.Vec, error) {
		a, b := vl.MustAt(free[0]), vl.MustAt(free[1])
		da, db := a.DistanceTo(p), b.DistanceTo(p)
		if math.Abs(da-db) <= tol.Dist {
			return r3.Vec{}, ambiguous("free vertices %d and %d are equidistant to pinch %d", a.Index, b.Index, pinch)
		}
		if da < db {
			return a.Location, nil
		}
		return b.Location, nil
	}
	fp1, err := closest(free1)
	if err != nil {
		return nil, nil, err
	}
	fp2, err := closest(free2)
	if err != nil {
		return nil, nil, err
	}

	cv := r3.Sub(c, p)
	axis, ok := d3.DominantAxis(cv, tol.Dist)
	if !ok {
		return nil, nil, ambiguous("edge %d-%d is not axis aligned", pinch, conn)
	}
	u, w := (axis+1)%3, (axis+2)%3
	if u > w {
		u, w = w, u
	}
	along := d3.Comp(p, axis) + d3.Comp(cv, axis)/4
	candidate := func(uFrom, wFrom r3.Vec) r3.Vec {
		var pos r3.Vec
		pos = d3.SetComp(pos, axis, along)
		pos = d3.SetComp(pos, u, d3.Comp(uFrom, u))
		return d3.SetComp(pos, w, d3.Comp(wFrom, w))
	}
	edgePos := candidate(fp1, fp2)
	edgeIdx, ok := vl.Find(edgePos)
	if !ok {
		edgePos = candidate(fp2, fp1)
		if edgeIdx, ok = vl.Find(edgePos); !ok {
			return nil, nil, ambiguous("no existing vertex at bridge edge position near pinch %d", pinch)
		}
	}
	edgePos = vl.MustAt(edgeIdx).Location
	newIdx, _ := vl.Weld(d3.SetComp(edgePos, axis, d3.Comp(edgePos, axis)+d3.Comp(cv, axis)/2))

	bridge := QuadFace{Index: -1, A: pinch, B: edgeIdx, C: newIdx, D: conn}
	faces1, hex1, err := ConnectFacesWithOneHex(vl, face1, bridge, pinch, cell)
	if err != nil {
		return nil, nil, err
	}
	faces2, hex2, err := ConnectFacesWithOneHex(vl, face2, bridge, pinch, cell)
	if err != nil {
		return nil, nil, err
	}
	faces := make([]QuadFace, 0, 1+len(faces1)+len(faces2))
	faces = append(faces, bridge)
	faces = append(faces, faces1...)
	faces = append(faces, faces2...)
	return faces, []Hex{hex1, hex2}, nil
}
