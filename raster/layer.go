// Package raster provides the pixel primitives the text and border renderers
// draw with: bilevel text blits, stroked lines and arcs, alpha paste and
// rotation into a freshly allocated buffer.
//
// Every primitive writes either full colour or nothing, so output stays crisp
// on displays that can only show a handful of colours.
package raster

import (
	"image"
	"image/color"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// Threshold 是覆盖率阈值：alpha 不低于该值的像素被视为实色。
const Threshold = 0x80

// NewLayer 分配一个以 bg 填充的图层。
func NewLayer(width, height int, bg color.Color) *image.RGBA {
	layer := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.Draw(layer, layer.Bounds(), image.NewUniform(bg), image.Point{}, xdraw.Src)
	return layer
}

// NewScratch 分配一个完全透明的临时图层。
func NewScratch(width, height int) *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0)))
}

// AlphaPaste 以 src 自身的 alpha 作为遮罩，把 src 贴到 dst 的 at 处。
// src 中透明的像素不会改变 dst。
func AlphaPaste(dst xdraw.Image, src image.Image, at image.Point) {
	sb := src.Bounds()
	r := image.Rectangle{Min: at, Max: at.Add(sb.Size())}
	xdraw.Draw(dst, r, src, sb.Min, xdraw.Over)
}

// Rotate 将 src 逆时针旋转 degrees 度，返回扩展后足以容纳全部角点的新图层。
// 使用最近邻采样，不引入半透明像素；90° 的整数倍是精确的。
func Rotate(src *image.RGBA, degrees float64) *image.RGBA {
	theta := degrees * math.Pi / 180
	sin, cos := snap(math.Sin(theta)), snap(math.Cos(theta))

	sb := src.Bounds()
	w, h := float64(sb.Dx()), float64(sb.Dy())
	nw := int(math.Ceil(math.Abs(w*cos) + math.Abs(h*sin) - 1e-9))
	nh := int(math.Ceil(math.Abs(w*sin) + math.Abs(h*cos) - 1e-9))
	dst := NewScratch(nw, nh)
	if nw == 0 || nh == 0 {
		return dst
	}

	cx, cy := float64(sb.Min.X)+w/2, float64(sb.Min.Y)+h/2
	ncx, ncy := float64(nw)/2, float64(nh)/2
	// y 轴向下，逆时针旋转对应 [cos sin; -sin cos]。
	s2d := f64.Aff3{
		cos, sin, ncx - cos*cx - sin*cy,
		-sin, cos, ncy + sin*cx - cos*cy,
	}
	xdraw.NearestNeighbor.Transform(dst, s2d, src, sb, xdraw.Src, nil)
	return dst
}

func snap(v float64) float64 {
	for _, target := range []float64{-1, 0, 1} {
		if math.Abs(v-target) < 1e-12 {
			return target
		}
	}
	return v
}

// coverage 把 mask 中达到阈值的像素以 col 写入 dst，mask 的原点对应 dst 的 at。
func coverage(dst xdraw.Image, mask image.Image, at image.Point, col color.Color) {
	mb := mask.Bounds()
	db := dst.Bounds()
	for y := mb.Min.Y; y < mb.Max.Y; y++ {
		for x := mb.Min.X; x < mb.Max.X; x++ {
			_, _, _, a := mask.At(x, y).RGBA()
			if a>>8 < Threshold {
				continue
			}
			p := image.Pt(x-mb.Min.X+at.X, y-mb.Min.Y+at.Y)
			if p.In(db) {
				dst.Set(p.X, p.Y, col)
			}
		}
	}
}
