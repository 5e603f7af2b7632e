// Package coverage rasterises meshes and polygons into alpha masks so that
// tests can compare the area covered by a tessellation with the area
// covered by the shape it came from.
//
// Rasterisation uses golang.org/x/image/vector, which accumulates signed
// coverage and clamps it. Polygons are therefore filled with the non-zero
// rule, and overlapping triangles of the same orientation count once.
package coverage

import (
	"image"
	"image/color"

	"golang.org/x/image/vector"

	"github.com/gogpu/tess/geom"
)

var opaque = image.NewUniform(color.Alpha{A: 255})

// Triangles rasterises an indexed triangle list into a w×h mask.
func Triangles(w, h int, verts []geom.Point, indices []uint32) *image.Alpha {
	r := vector.NewRasterizer(w, h)
	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := verts[indices[i]], verts[indices[i+1]], verts[indices[i+2]]
		r.MoveTo(float32(a.X), float32(a.Y))
		r.LineTo(float32(b.X), float32(b.Y))
		r.LineTo(float32(c.X), float32(c.Y))
		r.ClosePath()
	}
	return draw(r, w, h)
}

// Polygons rasterises closed polylines into a w×h mask with the non-zero
// fill rule.
func Polygons(w, h int, contours [][]geom.Point) *image.Alpha {
	r := vector.NewRasterizer(w, h)
	for _, c := range contours {
		if len(c) < 2 {
			continue
		}
		r.MoveTo(float32(c[0].X), float32(c[0].Y))
		for _, p := range c[1:] {
			r.LineTo(float32(p.X), float32(p.Y))
		}
		r.ClosePath()
	}
	return draw(r, w, h)
}

func draw(r *vector.Rasterizer, w, h int) *image.Alpha {
	dst := image.NewAlpha(image.Rect(0, 0, w, h))
	r.Draw(dst, dst.Bounds(), opaque, image.Point{})
	return dst
}

// Compare returns the number of pixels whose alpha differs by more than
// threshold between a and b, and the largest difference seen.
func Compare(a, b *image.Alpha, threshold uint8) (count int, maxDiff uint8) {
	bounds := a.Bounds().Intersect(b.Bounds())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			va := a.AlphaAt(x, y).A
			vb := b.AlphaAt(x, y).A
			d := va - vb
			if vb > va {
				d = vb - va
			}
			if d > maxDiff {
				maxDiff = d
			}
			if d > threshold {
				count++
			}
		}
	}
	return count, maxDiff
}

// Area returns the covered area of a mask in pixels.
func Area(m *image.Alpha) float64 {
	var sum int
	for _, v := range m.Pix {
		sum += int(v)
	}
	return float64(sum) / 255
}
