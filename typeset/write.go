package typeset

import (
	"fmt"
	"image"
	"log/slog"
	"unicode/utf8"

	"golang.org/x/image/draw"

	"github.com/ByLCY/inkframe/raster"
	"github.com/ByLCY/inkframe/typeface"
)

// Placement 是排版阶段的结果：最终使用的字体、截断后的文本及其在框内的偏移。
type Placement struct {
	Text   string
	Face   *typeface.Handle
	Offset image.Point
	Width  int
	Height int
}

// Truncate 不断去掉末尾字符，直到文本宽度不超过 box.X 且参考行高不超过 box.Y。
// 结果总是 text 的前缀；若行高本身放不下，结果为空串。
func Truncate(text string, face Face, box image.Point) (string, int, int) {
	w, h := face.Measure(text)
	for text != "" && (w > box.X || h > box.Y) {
		_, size := utf8.DecodeLastRuneInString(text)
		text = text[:len(text)-size]
		w, h = face.Measure(text)
	}
	if text == "" {
		w = 0
	}
	return text, w, h
}

// Offset 计算宽 w、高 h 的文本在 box 内的左上角偏移。
// 水平方向按对齐方式，垂直方向总是居中。
func Offset(align Alignment, box image.Point, w, h int) image.Point {
	var x int
	switch align {
	case AlignLeft:
		x = 0
	case AlignRight:
		x = box.X - w
	default:
		x = (box.X - w) / 2
	}
	return image.Pt(x, (box.Y-h)/2)
}

// Plan 执行自动字号、截断与对齐，不触碰任何像素。
// 返回的 Placement.Text 为空表示框内放不下任何字符。
func Plan(text string, box image.Point, face *typeface.Handle, opts Options) (Placement, error) {
	if err := opts.Validate(); err != nil {
		return Placement{}, err
	}
	if face == nil {
		return Placement{}, fmt.Errorf("typeset: 缺少字体")
	}

	active := face
	if opts.wantsFit() {
		fitted, err := Fit(text, box, opts.FillWidth, opts.FillHeight, face.WithSize)
		if err != nil {
			return Placement{}, err
		}
		active = fitted
	}

	fitted, w, h := Truncate(text, active, box)
	if fitted != text {
		slog.Debug("truncating text", "text", text, "result", fitted, "font", active.Path(), "size", active.Size(), "box", box)
	}
	return Placement{
		Text:   fitted,
		Face:   active,
		Offset: Offset(opts.Alignment, box, w, h),
		Width:  w,
		Height: h,
	}, nil
}

// Write 把 text 绘制到 dst 的 box 区域内。
//
// 文本先绘制到与 box 等大的透明临时图层，必要时旋转（得到新的、扩展后的图层），
// 再以临时图层自身的 alpha 为遮罩贴到 box 的左上角。dst 中非文字像素保持不变。
// 截断后为空串时什么也不画，也不返回错误。
func Write(dst draw.Image, box image.Rectangle, text string, face *typeface.Handle, opts Options) error {
	p, err := Plan(text, box.Size(), face, opts)
	if err != nil {
		return err
	}
	if p.Text == "" {
		return nil
	}

	scratch := raster.NewScratch(box.Dx(), box.Dy())
	dot := image.Pt(p.Offset.X, p.Offset.Y+p.Face.Ascent())
	raster.DrawText(scratch, p.Face.Face(), dot, p.Text, opts.colour())

	layer := scratch
	if opts.Rotation != 0 {
		layer = raster.Rotate(scratch, opts.Rotation)
	}
	raster.AlphaPaste(dst, layer, box.Min)
	return nil
}
