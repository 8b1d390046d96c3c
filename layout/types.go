package layout

// 该文件定义场景（布局结果）的数据结构，供布局计算、渲染与调试 JSON 共用。

import (
	"image"
	"image/color"

	"github.com/ByLCY/inkframe/border"
	"github.com/ByLCY/inkframe/typeset"
)

// 图层名称：黑色平面与彩色（红/黄）平面。
const (
	LayerBlack  = "black"
	LayerColour = "colour"
)

// Scene 保存一帧画面中所有需要绘制的元素，坐标单位均为像素。
type Scene struct {
	Name    string                  `json:"name"`
	Width   int                     `json:"width"`
	Height  int                     `json:"height"`
	Fonts   map[string]FontResource `json:"fonts"`
	Borders []BorderBox             `json:"borders"`
	Texts   []TextBox               `json:"texts"`
}

// FontResource 描述字体资源，src 可以是文件路径、embed:* 或 built-in:* 形式。
type FontResource struct {
	Name string `json:"name"`
	Src  string `json:"src"`
	Size int    `json:"size"`
}

// Rect 是以像素为单位的矩形区域。
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Rectangle 转换为 image.Rectangle。
func (r Rect) Rectangle() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// Color 采用 0-255 的 RGB 数值。
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// RGBA 转换为不透明的 color.RGBA。
func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: uint8(c.R), G: uint8(c.G), B: uint8(c.B), A: 255}
}

// TextBox 表示一个单行文本块。段落在布局阶段已拆成多个 TextBox。
type TextBox struct {
	Content  string    `json:"content"`
	Box      Rect      `json:"box"`
	Font     string    `json:"font"`
	FontSize int       `json:"fontSize"`
	Style    TextStyle `json:"style"`
	Layer    string    `json:"layer"`
	// Paragraph 记录该行来自第几个段落（从 1 开始），0 表示独立文本。
	Paragraph int `json:"paragraph,omitempty"`
}

// TextStyle 对应 typeset.Options 的可序列化形式。
type TextStyle struct {
	Align      typeset.Alignment `json:"align"`
	Autofit    bool              `json:"autofit"`
	Colour     Color             `json:"colour"`
	Rotation   float64           `json:"rotation,omitempty"`
	FillWidth  float64           `json:"fillWidth"`
	FillHeight float64           `json:"fillHeight"`
}

// DefaultTextStyle 与 typeset.DefaultOptions 保持一致。
func DefaultTextStyle() TextStyle {
	return TextStyle{
		Align:      typeset.AlignCenter,
		FillWidth:  typeset.DefaultFillWidth,
		FillHeight: typeset.DefaultFillHeight,
	}
}

// Options 转换为 typeset.Options。
func (s TextStyle) Options() typeset.Options {
	return typeset.Options{
		Alignment:  s.Align,
		Autofit:    s.Autofit,
		Colour:     s.Colour.RGBA(),
		Rotation:   s.Rotation,
		FillWidth:  s.FillWidth,
		FillHeight: s.FillHeight,
	}
}

// BorderBox 描述一个（圆角）矩形边框。
type BorderBox struct {
	Box       Rect    `json:"box"`
	Radius    int     `json:"radius"`
	Thickness int     `json:"thickness"`
	ShrinkX   float64 `json:"shrinkX"`
	ShrinkY   float64 `json:"shrinkY"`
	Colour    Color   `json:"colour"`
	Layer     string  `json:"layer"`
}

// Spec 转换为 border.Spec。
func (b BorderBox) Spec() border.Spec {
	return border.Spec{
		Origin:    image.Pt(b.Box.X, b.Box.Y),
		Size:      image.Pt(b.Box.Width, b.Box.Height),
		Radius:    b.Radius,
		Thickness: b.Thickness,
		ShrinkX:   b.ShrinkX,
		ShrinkY:   b.ShrinkY,
		Colour:    b.Colour.RGBA(),
	}
}

// TextLine 表示排版后的一行文本内容及其宽高。
type TextLine struct {
	Content string `json:"content"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
}
