package epaper

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/inkframe/layout"
	"github.com/ByLCY/inkframe/raster"
	"github.com/ByLCY/inkframe/renderer"
)

// Preview 把各图层合成为一张彩色预览图：彩色图层的墨点用 accent 上色，黑色图层覆盖在最上面。
// accent 为 nil 时忽略彩色图层。
func Preview(f *renderer.Frame, accent color.Color) *image.RGBA {
	out := raster.NewLayer(f.Width, f.Height, color.White)
	if accent != nil {
		if l, ok := f.Layer(layout.LayerColour); ok {
			paint(out, l, accent)
		}
	}
	if l, ok := f.Layer(layout.LayerBlack); ok {
		paint(out, l, color.Black)
	}
	return out
}

func paint(dst *image.RGBA, layer *image.RGBA, col color.Color) {
	b := layer.Bounds().Intersect(dst.Bounds())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if Inked(layer.RGBAAt(x, y)) {
				dst.Set(x, y, col)
			}
		}
	}
}

// Inked 报告像素是否会在墨水屏上显示为墨点：任一通道低于阈值即不是白色底色。
// 黄色等浅色同样算作墨点，图层只区分有墨与无墨。
func Inked(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	limit := uint32(raster.Threshold) << 8
	return r < limit || g < limit || b < limit
}

// EncodePNG 以 PNG 格式输出图像。
func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("写入 PNG 失败: %w", err)
	}
	return nil
}

// EncodePDF 输出单页 PDF，每个像素对应 1mm。
func EncodePDF(w io.Writer, img image.Image) error {
	size := img.Bounds().Size()
	width, height := float64(size.X), float64(size.Y)

	writer := pdf.New(w, width, height, nil)
	c := canvas.New(width, height)
	ctx := canvas.NewContext(c)
	ctx.DrawImage(0, 0, img, canvas.DPMM(1.0))
	c.RenderTo(writer)
	if err := writer.Close(); err != nil {
		return fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return nil
}
