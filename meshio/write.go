package meshio

import (
	"bufio"
	"io"
	"strconv"

	"github.com/pkg/errors"
	"github.com/soypat/hexmesh"
)

// Write encodes the live entities of m. Live vertices are renumbered
// consecutively and entities touching a deleted vertex are skipped, so the
// output reads back as a compacted copy of m.
func Write(w io.Writer, m *hexmesh.Mesh) error {
	bw := bufio.NewWriter(w)
	remap := make([]int, m.Vertices.Len())
	n := 0
	var buf []byte
	line := func(kind byte) {
		buf = append(buf[:0], kind)
	}
	flush := func() {
		buf = append(buf, '\n')
		bw.Write(buf)
	}
	bw.WriteString("# hexmesh\n")
	for i := range remap {
		v := m.Vertices.At(i)
		if v == nil {
			remap[i] = -1
			continue
		}
		remap[i] = n
		n++
		line('v')
		for _, f := range [3]float64{v.Location.X, v.Location.Y, v.Location.Z} {
			buf = append(buf, ' ')
			buf = strconv.AppendFloat(buf, f, 'g', -1, 64)
		}
		if v.VolumeFraction != 0 {
			buf = append(buf, ' ')
			buf = strconv.AppendFloat(buf, v.VolumeFraction, 'g', -1, 64)
		}
		flush()
	}
	indices := func(kind byte, idx []int) {
		for _, i := range idx {
			if remap[i] < 0 {
				return
			}
		}
		line(kind)
		for _, i := range idx {
			buf = append(buf, ' ')
			buf = strconv.AppendInt(buf, int64(remap[i]), 10)
		}
		flush()
	}
	for i := 0; i < m.Edges.Len(); i++ {
		e := m.Edges.At(i)
		indices('e', []int{e.Start, e.End})
	}
	for i := 0; i < m.Faces.Len(); i++ {
		f := m.Faces.At(i).Vertices()
		indices('f', f[:])
	}
	for _, h := range m.Hexes {
		v := h.Vertices()
		indices('h', v[:])
	}
	return errors.Wrap(bw.Flush(), "meshio: write")
}
