package main

import (
	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
	"github.com/soypat/hexmesh/meshio"
)

const (
	previewWidth  = 800
	previewHeight = 600
)

// renderPNG draws tris with a phong shader and saves the image to path.
func renderPNG(path string, tris []meshio.Triangle) error {
	if len(tris) == 0 {
		return errors.New("no faces to render")
	}
	const (
		scale = 2  // supersampling
		fovy  = 30 // vertical field of view in degrees
		near  = 1
		far   = 10
	)
	var (
		eye    = fauxgl.V(3, 2.5, 3.5)
		center = fauxgl.V(0, 0, 0)
		up     = fauxgl.V(0, 0, 1)
		light  = fauxgl.V(-0.75, 1, 0.25).Normalize()
		color  = fauxgl.HexColor("#468966")
	)
	faces := make([]*fauxgl.Triangle, 0, 2*len(tris))
	for _, t := range tris {
		a := fauxgl.V(t[0].X, t[0].Y, t[0].Z)
		b := fauxgl.V(t[1].X, t[1].Y, t[1].Z)
		c := fauxgl.V(t[2].X, t[2].Y, t[2].Z)
		// Faces carry no consistent winding so both sides are drawn.
		faces = append(faces, fauxgl.NewTriangleForPoints(a, b, c), fauxgl.NewTriangleForPoints(a, c, b))
	}
	mesh := fauxgl.NewTriangleMesh(faces)
	mesh.BiUnitCube()

	context := fauxgl.NewContext(previewWidth*scale, previewHeight*scale)
	context.ClearColorBufferWith(fauxgl.HexColor("#FFF8E3"))
	aspect := float64(previewWidth) / float64(previewHeight)
	matrix := fauxgl.LookAt(eye, center, up).Perspective(fovy, aspect, near, far)
	shader := fauxgl.NewPhongShader(matrix, light, eye)
	shader.ObjectColor = color
	context.Shader = shader
	context.DrawMesh(mesh)

	image := context.Image()
	image = resize.Resize(previewWidth, previewHeight, image, resize.Bilinear)
	if err := fauxgl.SavePNG(path, image); err != nil {
		return errors.Wrap(err, path)
	}
	klog.V(1).Infof("rendered %d triangles to %s", len(tris), path)
	return nil
}
