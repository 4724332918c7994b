// Command hexmesh loads a hex mesh, runs topology passes on it and writes
// the result.
//
// Usage:
//
//	hexmesh -in mesh.txt -complete -resolve bridge -compact -out done.txt -png done.png
package main

import (
	"flag"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
	"github.com/soypat/hexmesh"
	"github.com/soypat/hexmesh/internal/d3"
	"github.com/soypat/hexmesh/meshio"
	"github.com/soypat/hexmesh/pinch"
	"github.com/soypat/hexmesh/store"
)

type config struct {
	in, out, stl   string
	complete       bool
	resolve        string
	manifold       bool
	compact        bool
	dist, ortho    float64
	storeDir, name string
	png, plot      string
}

func main() {
	var cfg config
	flag.StringVar(&cfg.in, "in", "", "input mesh file (required)")
	flag.StringVar(&cfg.out, "out", "", "write the resulting mesh to this file")
	flag.StringVar(&cfg.stl, "stl", "", "write the resulting faces to this binary STL file")
	flag.BoolVar(&cfg.complete, "complete", false, "find and add all hexes implied by the faces")
	flag.StringVar(&cfg.resolve, "resolve", "", "remove kissing points and pinched edges between hexes: bridge or split")
	flag.BoolVar(&cfg.manifold, "manifold", false, "resolve bowtie pinches of a planar quad mesh by separation")
	flag.BoolVar(&cfg.compact, "compact", false, "drop vertices outside of hexes and renumber")
	flag.Float64Var(&cfg.dist, "dist", hexmesh.DefaultTolerance.Dist, "vertex matching distance")
	flag.Float64Var(&cfg.ortho, "ortho", hexmesh.DefaultTolerance.Ortho, "orthogonality threshold on |cos|")
	flag.StringVar(&cfg.storeDir, "store", "", "snapshot store directory")
	flag.StringVar(&cfg.name, "name", "", "snapshot name, defaults to the input file name")
	flag.StringVar(&cfg.png, "png", "", "render a preview of the faces to this PNG file")
	flag.StringVar(&cfg.plot, "plot", "", "plot a vertex valence histogram to this file")
	verbosity := flag.Int("v", 1, "log verbosity")

	fset := flag.NewFlagSet("", flag.ContinueOnError)
	klog.InitFlags(fset)
	fset.Set("logtostderr", "true")
	klog.SetFormatter(&klog.FmtConstWidth{
		FileNameCharWidth: 16,
		UseColor:          true,
	})

	flag.Parse()
	fset.Set("v", strconv.Itoa(*verbosity))

	err := run(cfg)
	if err != nil {
		klog.Errorf("%+v", err)
	}
	klog.Flush()
	if err != nil {
		os.Exit(1)
	}
}

func run(cfg config) error {
	if cfg.in == "" {
		flag.Usage()
		return errors.New("missing -in")
	}
	if cfg.name == "" {
		cfg.name = cfg.in
	}
	var mode hexmesh.ResolveMode
	if cfg.resolve != "" {
		var err error
		if mode, err = hexmesh.ParseResolveMode(cfg.resolve); err != nil {
			return err
		}
	}
	fp, err := os.Open(cfg.in)
	if err != nil {
		return err
	}
	m, err := meshio.Parse(cfg.in, fp)
	fp.Close()
	if err != nil {
		return err
	}
	m.Vertices.Tol = hexmesh.Tolerance{Ortho: cfg.ortho, Dist: cfg.dist}
	logStats("loaded", m)

	var snaps *store.Store
	if cfg.storeDir != "" {
		snaps, err = store.Open(cfg.storeDir)
		if err != nil {
			return err
		}
		defer snaps.Close()
	}
	snapshot := func(pass string) error {
		if snaps == nil {
			return nil
		}
		return snaps.Put(cfg.name+"/"+pass, m)
	}
	if err := snapshot("0-loaded"); err != nil {
		return err
	}

	if cfg.manifold {
		m, err = makeManifold(m)
		if err != nil {
			return err
		}
		logStats("manifold", m)
		if err := snapshot("1-manifold"); err != nil {
			return err
		}
	}
	if cfg.complete {
		hexes, err := m.CompleteHexes()
		if err != nil {
			return err
		}
		klog.Infof("completed %d hexes", len(hexes))
		if err := snapshot("2-complete"); err != nil {
			return err
		}
	}
	if len(m.Hexes) > 0 {
		nm, err := hexmesh.FindNonManifold(m.Hexes)
		if err != nil {
			return err
		}
		if nm.Empty() {
			klog.Infof("hexes are conforming")
		} else {
			klog.Warningf("non-manifold hexes: %d kissing points %v, %d pinched edges %v",
				len(nm.KissingPoints), nm.KissingPoints, len(nm.PinchedEdges), nm.PinchedEdges)
			if cfg.resolve != "" {
				if err := resolveNonManifold(m, mode); err != nil {
					return err
				}
				if err := snapshot("3-resolve"); err != nil {
					return err
				}
			}
		}
	}
	if cfg.compact {
		if len(m.Hexes) > 0 {
			klog.Infof("dropped %d vertices outside of hexes", m.DropUnused())
		}
		m.Compact()
		logStats("compacted", m)
		if err := snapshot("4-compact"); err != nil {
			return err
		}
	}
	if snaps != nil {
		names, err := snaps.Names()
		if err != nil {
			return err
		}
		klog.V(1).Infof("store %s holds %d snapshots", cfg.storeDir, len(names))
	}

	if cfg.out != "" {
		if err := writeFile(cfg.out, func(fp *os.File) error { return meshio.Write(fp, m) }); err != nil {
			return err
		}
	}
	if cfg.stl != "" {
		if err := writeFile(cfg.stl, func(fp *os.File) error { return meshio.WriteSTL(fp, m) }); err != nil {
			return err
		}
	}
	if cfg.png != "" {
		if err := renderPNG(cfg.png, meshio.Triangles(m)); err != nil {
			return err
		}
	}
	if cfg.plot != "" {
		if err := plotValence(cfg.plot, valences(m)); err != nil {
			return err
		}
	}
	return nil
}

// makeManifold separates all bowtie pinches of the faces of m. Hexes of m
// are not carried over.
func makeManifold(m *hexmesh.Mesh) (*hexmesh.Mesh, error) {
	qm, _ := pinch.FromMesh(m)
	rep, err := pinch.MakeManifold(qm, nil, pinch.NewLocationIndex(qm))
	if err != nil {
		return nil, err
	}
	klog.Infof("separated %d pinches in %d groups, removed %d faces", rep.Pinches, rep.Groups, rep.Removed)
	out := hexmesh.NewMesh(m.Vertices.Tol)
	for i := 0; i < qm.NumVertices(); i++ {
		out.AddVertex(qm.Vertex(i))
	}
	for i := 0; i < qm.NumFaces(); i++ {
		f := qm.Face(i)
		if _, err := out.AddFace(hexmesh.QuadFace{A: f[0], B: f[1], C: f[2], D: f[3]}); err != nil {
			return nil, err
		}
	}
	out.Connect()
	return out, nil
}

// resolveNonManifold runs mode on the hexes of m using the size of the first
// hex as the grid cell.
func resolveNonManifold(m *hexmesh.Mesh, mode hexmesh.ResolveMode) error {
	cell := m.Hexes[0].CellSize(m.Vertices)
	res, err := m.ResolveNonManifold(cell, mode)
	if err != nil {
		return err
	}
	klog.Infof("%s: resolved %d spots, added %d hexes, removed %d", mode, res.Spots, len(res.Added), res.Removed)
	nm, err := hexmesh.FindNonManifold(m.Hexes)
	if err != nil {
		return err
	}
	if !nm.Empty() {
		klog.Warningf("%d kissing points and %d pinched edges remain", len(nm.KissingPoints), len(nm.PinchedEdges))
	}
	logStats("resolved", m)
	return nil
}

func logStats(stage string, m *hexmesh.Mesh) {
	klog.Infof("%-10s %d vertices (%d live), %d edges, %d faces, %d hexes",
		stage, m.Vertices.Len(), m.Vertices.Live(), m.Edges.Len(), m.Faces.Len(), len(m.Hexes))
	var pts d3.Set
	m.Vertices.ForEach(func(v *hexmesh.Vertex) { pts = append(pts, v.Location) })
	if len(pts) > 0 {
		box := pts.BoundingBox()
		klog.V(2).Infof("%-10s bounds %v size %v", stage, box.Min, box.Size())
	}
}

// valences returns the number of connected vertices of every live vertex.
func valences(m *hexmesh.Mesh) []float64 {
	var vals []float64
	m.Vertices.ForEach(func(v *hexmesh.Vertex) {
		vals = append(vals, float64(v.NumConnectedVertices()))
	})
	return vals
}

func writeFile(path string, write func(fp *os.File) error) error {
	fp, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(fp); err != nil {
		fp.Close()
		return errors.Wrap(err, path)
	}
	if err := fp.Close(); err != nil {
		return err
	}
	klog.V(1).Infof("wrote %s", path)
	return nil
}
