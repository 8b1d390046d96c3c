package raster

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// DrawText 以 dot 为基线起点绘制 text。字形先渲染为灰度遮罩，再按 Threshold
// 二值化，结果中不存在抗锯齿边缘。
func DrawText(dst draw.Image, face font.Face, dot image.Point, text string, col color.Color) {
	if text == "" {
		return
	}
	mask := image.NewAlpha(dst.Bounds())
	d := font.Drawer{
		Dst:  mask,
		Src:  image.Opaque,
		Face: face,
		Dot:  fixed.P(dot.X, dot.Y),
	}
	d.DrawString(text)
	coverage(dst, mask, mask.Bounds().Min, col)
}
