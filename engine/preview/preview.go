// Package preview rasterizes the texture-coordinate layout of a geometry into
// an image, one filled and outlined triangle per face.
package preview

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"

	"golang.org/x/image/vector"

	"github.com/spaghettifunk/tessera/engine/math"
	"github.com/spaghettifunk/tessera/engine/renderer/metadata"
)

var (
	Background = color.RGBA{R: 24, G: 24, B: 28, A: 255}
	Fill       = color.RGBA{R: 40, G: 90, B: 170, A: 140}
	Edge       = color.RGBA{R: 235, G: 235, B: 235, A: 255}
)

// EdgeWidth is the outline width in pixels.
const EdgeWidth float32 = 1

// DrawUVLayout draws the triangles of export in texture space on a size x size
// image. u grows to the right and v grows downwards.
func DrawUVLayout(export *metadata.GeometryExport, size int) (*image.RGBA, error) {
	if size <= 0 {
		return nil, fmt.Errorf("preview size must be positive, got %d", size)
	}
	if len(export.Indices)%3 != 0 {
		return nil, fmt.Errorf("geometry '%s' has %d indices, not a triangle list", export.Name, len(export.Indices))
	}

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(Background), image.Point{}, draw.Src)

	scale := float32(size)
	fill := &canvas{z: vector.NewRasterizer(size, size), max: scale}
	edges := &canvas{z: vector.NewRasterizer(size, size), max: scale}

	for t := 0; t+2 < len(export.Indices); t += 3 {
		var p [3]math.Vec2
		for k := 0; k < 3; k++ {
			idx := export.Indices[t+k]
			if int(idx) >= len(export.Vertices) {
				return nil, fmt.Errorf("geometry '%s' index %d out of range", export.Name, idx)
			}
			p[k] = export.Vertices[idx].Texcoord.MulScalar(scale)
		}

		// Overlapping paths of opposite orientation cancel out in the
		// rasterizer, so every triangle is emitted with the same orientation.
		if cross(p[1].Sub(p[0]), p[2].Sub(p[0])) < 0 {
			p[1], p[2] = p[2], p[1]
		}
		fill.moveTo(p[0])
		fill.lineTo(p[1])
		fill.lineTo(p[2])
		fill.z.ClosePath()

		for k := 0; k < 3; k++ {
			edges.addEdge(p[k], p[(k+1)%3], EdgeWidth)
		}
	}

	fill.z.Draw(img, img.Bounds(), image.NewUniform(Fill), image.Point{})
	edges.z.Draw(img, img.Bounds(), image.NewUniform(Edge), image.Point{})

	return img, nil
}

// WriteUVLayout draws the layout and stores it as a PNG file at path.
func WriteUVLayout(path string, export *metadata.GeometryExport, size int) error {
	img, err := DrawUVLayout(export, size)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	b := bufio.NewWriter(f)
	if err := png.Encode(b, img); err != nil {
		return err
	}
	return b.Flush()
}

// canvas keeps every path point inside the rasterizer bounds.
type canvas struct {
	z   *vector.Rasterizer
	max float32
}

func (c *canvas) clamp(p math.Vec2) math.Vec2 {
	return math.NewVec2(math.Clamp(p.X, 0, c.max), math.Clamp(p.Y, 0, c.max))
}

func (c *canvas) moveTo(p math.Vec2) {
	p = c.clamp(p)
	c.z.MoveTo(p.X, p.Y)
}

func (c *canvas) lineTo(p math.Vec2) {
	p = c.clamp(p)
	c.z.LineTo(p.X, p.Y)
}

// addEdge adds the segment a-b as a quad of the given width. The quad always
// has the same orientation as the filled triangles.
func (c *canvas) addEdge(a, b math.Vec2, width float32) {
	d := b.Sub(a)
	length := math.Sqrt(d.X*d.X + d.Y*d.Y)
	if length == 0 {
		return
	}
	n := math.NewVec2(-d.Y, d.X).MulScalar(0.5 * width / length)

	c.moveTo(a.Sub(n))
	c.lineTo(b.Sub(n))
	c.lineTo(b.Add(n))
	c.lineTo(a.Add(n))
	c.z.ClosePath()
}

func cross(a, b math.Vec2) float32 {
	return a.X*b.Y - a.Y*b.X
}
