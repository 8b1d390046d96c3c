package layout

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ByLCY/inkframe/border"
	"github.com/ByLCY/inkframe/dsl"
	"github.com/ByLCY/inkframe/typeset"
)

// stubTypesetter 是测试用的最小实现：每个字符宽 size/2，行高等于字号，按空格贪心折行。
type stubTypesetter struct {
	calls []FontResource
}

func (s *stubTypesetter) LayoutLines(content string, width int, font FontResource) ([]TextLine, error) {
	s.calls = append(s.calls, font)
	var lines []TextLine
	for _, hard := range strings.Split(content, "\n") {
		words := strings.Fields(hard)
		if len(words) == 0 {
			lines = append(lines, TextLine{Height: font.Size})
			continue
		}
		cur := words[0]
		for _, w := range words[1:] {
			next := cur + " " + w
			if len(next)*font.Size/2 > width {
				lines = append(lines, TextLine{Content: cur, Width: len(cur) * font.Size / 2, Height: font.Size})
				cur = w
				continue
			}
			cur = next
		}
		lines = append(lines, TextLine{Content: cur, Width: len(cur) * font.Size / 2, Height: font.Size})
	}
	return lines, nil
}

func build(t *testing.T, src string, data any) *Scene {
	t.Helper()
	scene, err := tryBuild(src, data)
	if err != nil {
		t.Fatalf("布局计算失败: %v", err)
	}
	return scene
}

func tryBuild(src string, data any) (*Scene, error) {
	doc, err := dsl.ParseString(src)
	if err != nil {
		return nil, err
	}
	return Build(doc, data, BuildOptions{Width: 200, Height: 100, Typesetter: &stubTypesetter{}})
}

func TestBuildText(t *testing.T) {
	scene := build(t, `display Badge v1 {
  resources {
    font Title { src: "embed:gobold"; size: 20 }
  }
  text Title {
    at: 10 5
    size: 50% 40px
    align: left
    autofit: true
    fill: 0.9 0.7
    colour: red
    layer: colour
    "Hello ${name}"
  }
}`, map[string]any{"name": "Ada"})

	want := []TextBox{{
		Content:  "Hello Ada",
		Box:      Rect{X: 10, Y: 5, Width: 100, Height: 40},
		Font:     "Title",
		FontSize: 20,
		Style: TextStyle{
			Align:      typeset.AlignLeft,
			Autofit:    true,
			Colour:     Color{R: 255},
			FillWidth:  0.9,
			FillHeight: 0.7,
		},
		Layer: LayerColour,
	}}
	if diff := cmp.Diff(want, scene.Texts); diff != "" {
		t.Fatalf("文本块不一致 (-want +got):\n%s", diff)
	}
	if scene.Name != "Badge" || scene.Width != 200 || scene.Height != 100 {
		t.Fatalf("场景元数据错误: %+v", scene)
	}
}

func TestBuildDefaults(t *testing.T) {
	scene := build(t, `display Plain {
  text {
    at: 20 10
    "x"
  }
}`, nil)
	if len(scene.Texts) != 1 {
		t.Fatalf("期望 1 个文本块，实际 %d", len(scene.Texts))
	}
	tb := scene.Texts[0]
	if tb.Box != (Rect{X: 20, Y: 10, Width: 180, Height: 90}) {
		t.Fatalf("缺省尺寸应延伸到右下角: %+v", tb.Box)
	}
	if tb.Font != defaultFontName || tb.FontSize != defaultFontSize {
		t.Fatalf("应使用默认字体: %s %d", tb.Font, tb.FontSize)
	}
	if diff := cmp.Diff(DefaultTextStyle(), tb.Style); diff != "" {
		t.Fatalf("默认样式不一致 (-want +got):\n%s", diff)
	}
	if tb.Layer != LayerBlack {
		t.Fatalf("默认图层应为 black: %s", tb.Layer)
	}
	if got := scene.Fonts[defaultFontName].Src; got != "embed:goregular" {
		t.Fatalf("默认字体来源错误: %s", got)
	}
}

func TestBuildUnknownAlignFallsBackToCenter(t *testing.T) {
	scene := build(t, `display X { text { align: diagonal; "a" } }`, nil)
	if got := scene.Texts[0].Style.Align; got != typeset.AlignCenter {
		t.Fatalf("未知对齐应回退为居中: %v", got)
	}
}

func TestBuildIgnoresUnknownProperty(t *testing.T) {
	scene := build(t, `display X { text { sparkle: 3; colour: #00ff00; "a" } }`, nil)
	if got := scene.Texts[0].Style.Colour; got != (Color{G: 255}) {
		t.Fatalf("颜色解析错误: %+v", got)
	}
}

func TestBuildParagraph(t *testing.T) {
	scene := build(t, `display P {
  paragraph {
    at: 0 0
    size: 40 30
    font-size: 10
    spacing: 2
    align: right
    "aa bb cc dd ee ff"
  }
  paragraph {
    at: 100 0
    size: 100 50
    "one"
  }
}`, nil)
	// 宽 40、每字符 5 像素：每行最多 8 个字符，"aa bb cc" 一行。高 30 只容得下两行（10+2+10）。
	var first []TextBox
	for _, tb := range scene.Texts {
		if tb.Paragraph == 1 {
			first = append(first, tb)
		}
	}
	if len(first) != 2 {
		t.Fatalf("期望第一个段落保留 2 行，实际 %d: %+v", len(first), first)
	}
	if first[0].Content != "aa bb cc" || first[1].Content != "dd ee ff" {
		t.Fatalf("折行内容错误: %q %q", first[0].Content, first[1].Content)
	}
	if first[0].Box != (Rect{X: 0, Y: 0, Width: 40, Height: 10}) || first[1].Box.Y != 12 {
		t.Fatalf("行位置错误: %+v %+v", first[0].Box, first[1].Box)
	}
	if first[0].Style.Align != typeset.AlignRight || first[0].Style.Autofit {
		t.Fatalf("段落行样式错误: %+v", first[0].Style)
	}
	last := scene.Texts[len(scene.Texts)-1]
	if last.Paragraph != 2 || last.Content != "one" {
		t.Fatalf("第二个段落编号错误: %+v", last)
	}
}

func TestBuildParagraphDropsOverflow(t *testing.T) {
	scene := build(t, `display P { paragraph { size: 200 5; "too tall" } }`, nil)
	if len(scene.Texts) != 0 {
		t.Fatalf("行高超过文本框时应全部丢弃: %+v", scene.Texts)
	}
}

func TestBuildBorder(t *testing.T) {
	scene := build(t, `display B {
  border {
    at: 4 4
    size: 100 50
    radius: 8
    thickness: 2
    shrink: 0.2 0.1
    layer: colour
  }
  border { size: 10% 20% }
}`, nil)
	want := []BorderBox{
		{Box: Rect{X: 4, Y: 4, Width: 100, Height: 50}, Radius: 8, Thickness: 2, ShrinkX: 0.2, ShrinkY: 0.1, Layer: LayerColour},
		{Box: Rect{Width: 20, Height: 20}, Radius: 5, Thickness: 1, ShrinkX: 0.1, ShrinkY: 0.1, Layer: LayerBlack},
	}
	if diff := cmp.Diff(want, scene.Borders); diff != "" {
		t.Fatalf("边框不一致 (-want +got):\n%s", diff)
	}
}

func TestBuildErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		is   error
		msg  string
	}{
		{name: "未知组件", src: `display X { image { } }`, msg: "未知组件"},
		{name: "未声明字体", src: `display X { text Missing { "a" } }`, msg: "未声明的字体"},
		{name: "未知图层", src: `display X { text { layer: blue; "a" } }`, msg: "未知图层"},
		{name: "坐标个数", src: `display X { text { at: 1; "a" } }`, msg: "需要 2 个长度"},
		{name: "填充比例", src: `display X { text { fill-width: 1.5; "a" } }`, is: typeset.ErrInvalidOptions},
		{name: "圆角过大", src: `display X { border { size: 20 20; radius: 15 } }`, is: border.ErrDegenerate},
		{name: "颜色", src: `display X { border { colour: purple } }`, msg: "颜色"},
		{name: "字体缺少来源", src: `display X { resources { font A { size: 3 } } }`, msg: "缺少 src"},
		{name: "布尔值", src: `display X { text { autofit: maybe; "a" } }`, msg: "布尔值"},
		{name: "段落间距为负", src: `display X { paragraph { spacing: -2; "a b" } }`, msg: "不能为负"},
		{name: "坐标非有限值", src: `display X { text { at: NaN 0; "a" } }`, msg: "无法解析长度"},
		{name: "圆角非有限值", src: `display X { border { radius: Inf } }`, msg: "无法解析数值"},
		{name: "填充非有限值", src: `display X { text { fill: NaN 0.5; "a" } }`, msg: "无法解析数值"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tryBuild(tc.src, nil)
			if err == nil {
				t.Fatalf("期望出错")
			}
			if tc.is != nil && !errors.Is(err, tc.is) {
				t.Fatalf("错误类型不符: %v", err)
			}
			if tc.msg != "" && !strings.Contains(err.Error(), tc.msg) {
				t.Fatalf("错误信息不含 %q: %v", tc.msg, err)
			}
		})
	}
}

func TestBuildRequiresTypesetter(t *testing.T) {
	doc, err := dsl.ParseString(`display X { }`)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Build(doc, nil, BuildOptions{Width: 10, Height: 10}); err == nil {
		t.Fatalf("缺少排版后端时应出错")
	}
	if _, err := Build(doc, nil, BuildOptions{Typesetter: &stubTypesetter{}}); err == nil {
		t.Fatalf("尺寸为 0 时应出错")
	}
}
