// Package border draws rectangular outlines, optionally with rounded
// corners, inset within a box by per-axis shrink factors.
package border

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/ByLCY/inkframe/raster"
)

var (
	// ErrInvalidSpec 表示线宽、圆角或收缩比例越界。
	ErrInvalidSpec = errors.New("border: invalid spec")
	// ErrDegenerate 表示圆角直径超过了收缩后的宽或高，四段圆弧会相互重叠。
	ErrDegenerate = errors.New("border: corner radius exceeds inset box")
)

// Spec 描述一个边框。
type Spec struct {
	Origin    image.Point
	Size      image.Point
	Radius    int // 0 表示直角
	Thickness int
	ShrinkX   float64 // [0,1)
	ShrinkY   float64 // [0,1)
	Colour    color.Color
}

// DefaultSpec 返回圆角 5、线宽 1、两向各收缩 10% 的黑色边框。
func DefaultSpec(origin, size image.Point) Spec {
	return Spec{
		Origin:    origin,
		Size:      size,
		Radius:    5,
		Thickness: 1,
		ShrinkX:   0.1,
		ShrinkY:   0.1,
		Colour:    color.Black,
	}
}

// Segment 是一条直边，两端点均包含在内。
type Segment struct {
	From, To image.Point
}

// Arc 是外接矩形 Bounds 内从 Start 到 End（度，y 轴向下顺时针）的圆弧。
type Arc struct {
	Bounds     image.Rectangle
	Start, End float64
}

// Geometry 是边框的全部图元。
type Geometry struct {
	Rect  image.Rectangle // 收缩后的矩形
	Edges [4]Segment      // 上、右、下、左
	Arcs  []Arc           // 左上、右上、右下、左下；Radius 为 0 时为空
}

// Outline 计算边框几何。收缩后的尺寸与居中偏移均向下取整。
func Outline(s Spec) (Geometry, error) {
	if s.Thickness < 1 {
		return Geometry{}, fmt.Errorf("%w: thickness 必须 >= 1，实际 %d", ErrInvalidSpec, s.Thickness)
	}
	if s.Radius < 0 {
		return Geometry{}, fmt.Errorf("%w: radius 不能为负，实际 %d", ErrInvalidSpec, s.Radius)
	}
	if s.Size.X < 0 || s.Size.Y < 0 {
		return Geometry{}, fmt.Errorf("%w: size 不能为负，实际 %v", ErrInvalidSpec, s.Size)
	}
	if !(s.ShrinkX >= 0 && s.ShrinkX < 1) || !(s.ShrinkY >= 0 && s.ShrinkY < 1) {
		return Geometry{}, fmt.Errorf("%w: shrink 必须位于 [0,1)，实际 (%g,%g)", ErrInvalidSpec, s.ShrinkX, s.ShrinkY)
	}

	w := int(float64(s.Size.X) * (1 - s.ShrinkX))
	h := int(float64(s.Size.Y) * (1 - s.ShrinkY))
	r := s.Radius
	d := 2 * r
	if d > w || d > h {
		return Geometry{}, fmt.Errorf("%w: 2*%d 超出 %dx%d", ErrDegenerate, r, w, h)
	}

	x := s.Origin.X + (s.Size.X-w)/2
	y := s.Origin.Y + (s.Size.Y-h)/2
	g := Geometry{
		Rect: image.Rect(x, y, x+w, y+h),
		Edges: [4]Segment{
			{image.Pt(x+r, y), image.Pt(x+w-r, y)},
			{image.Pt(x+w, y+r), image.Pt(x+w, y+h-r)},
			{image.Pt(x+w-r, y+h), image.Pt(x+r, y+h)},
			{image.Pt(x, y+h-r), image.Pt(x, y+r)},
		},
	}
	if r > 0 {
		g.Arcs = []Arc{
			{image.Rect(x, y, x+d, y+d), 180, 270},
			{image.Rect(x+w-d, y, x+w, y+d), 270, 360},
			{image.Rect(x+w-d, y+h-d, x+w, y+h), 0, 90},
			{image.Rect(x, y+h-d, x+d, y+h), 90, 180},
		}
	}
	return g, nil
}

// Draw 在 dst 上绘制边框。调用方负责保证 Origin+Size 位于画布内，这里不做裁剪。
func Draw(dst draw.Image, s Spec) error {
	g, err := Outline(s)
	if err != nil {
		return err
	}
	col := s.Colour
	if col == nil {
		col = color.Black
	}
	for _, e := range g.Edges {
		raster.DrawLine(dst, e.From, e.To, s.Thickness, col)
	}
	for _, a := range g.Arcs {
		raster.DrawArc(dst, a.Bounds, a.Start, a.End, s.Thickness, col)
	}
	return nil
}
