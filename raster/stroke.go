package raster

import (
	"image"
	"image/color"
	"math"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"
	"golang.org/x/image/draw"
)

// DrawLine 以 thickness 像素宽度绘制 from 到 to 的线段，两端点像素均包含在内。
func DrawLine(dst draw.Image, from, to image.Point, thickness int, col color.Color) {
	if thickness < 1 {
		return
	}
	if from == to {
		half := thickness / 2
		dot := image.Rect(from.X-half, from.Y-half, from.X-half+thickness, from.Y-half+thickness)
		draw.Draw(dst, dot.Intersect(dst.Bounds()), image.NewUniform(col), image.Point{}, draw.Src)
		return
	}

	// 路径经过像素中心，并沿方向各延长半个线宽，使端点像素被完整覆盖。
	fx, fy := float64(from.X)+0.5, float64(from.Y)+0.5
	tx, ty := float64(to.X)+0.5, float64(to.Y)+0.5
	dx, dy := tx-fx, ty-fy
	length := math.Hypot(dx, dy)
	ext := float64(thickness) / 2
	ux, uy := dx/length*ext, dy/length*ext
	fx, fy = fx-ux, fy-uy
	tx, ty = tx+ux, ty+uy

	bounds := padded(math.Min(fx, tx), math.Min(fy, ty), math.Max(fx, tx), math.Max(fy, ty), thickness)
	p := &canvas.Path{}
	p.MoveTo(fx-float64(bounds.Min.X), fy-float64(bounds.Min.Y))
	p.LineTo(tx-float64(bounds.Min.X), ty-float64(bounds.Min.Y))
	stroke(dst, bounds, p, thickness, col)
}

// DrawArc 在外接矩形 rect 内绘制椭圆弧，角度以度为单位，0° 指向右侧，
// 沿顺时针（y 轴向下）从 start 扫到 end。rect 的 Min 与 Max 均为包含的像素坐标。
func DrawArc(dst draw.Image, rect image.Rectangle, start, end float64, thickness int, col color.Color) {
	if thickness < 1 {
		return
	}
	rx := float64(rect.Dx()) / 2
	ry := float64(rect.Dy()) / 2
	if rx <= 0 || ry <= 0 {
		return
	}
	cx := float64(rect.Min.X) + rx + 0.5
	cy := float64(rect.Min.Y) + ry + 0.5

	bounds := padded(cx-rx, cy-ry, cx+rx, cy+ry, thickness)
	ox, oy := cx-float64(bounds.Min.X), cy-float64(bounds.Min.Y)
	theta := start * math.Pi / 180
	p := &canvas.Path{}
	p.MoveTo(ox+rx*math.Cos(theta), oy+ry*math.Sin(theta))
	p.Arc(rx, ry, 0, start, end)
	stroke(dst, bounds, p, thickness, col)
}

func padded(x0, y0, x1, y1 float64, thickness int) image.Rectangle {
	pad := float64(thickness) + 1
	return image.Rect(
		int(math.Floor(x0-pad)), int(math.Floor(y0-pad)),
		int(math.Ceil(x1+pad)), int(math.Ceil(y1+pad)),
	)
}

// stroke 在 bounds 大小的画布上（1px = 1mm）描边 p，再把覆盖率二值化写入 dst。
func stroke(dst draw.Image, bounds image.Rectangle, p *canvas.Path, thickness int, col color.Color) {
	c := canvas.New(float64(bounds.Dx()), float64(bounds.Dy()))
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV)
	ctx.SetFillColor(color.RGBA{0, 0, 0, 0})
	ctx.SetStrokeColor(color.Black)
	ctx.SetStrokeWidth(float64(thickness))
	ctx.DrawPath(0, 0, p)

	img := rasterizer.Draw(c, canvas.DPMM(1.0), canvas.DefaultColorSpace)
	coverage(dst, img, bounds.Min, col)
}
