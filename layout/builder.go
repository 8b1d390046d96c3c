package layout

import (
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/ByLCY/inkframe/binding"
	"github.com/ByLCY/inkframe/border"
	"github.com/ByLCY/inkframe/dsl"
	"github.com/ByLCY/inkframe/fonts"
	"github.com/ByLCY/inkframe/typeset"
)

const (
	defaultFontName = "Body"
	defaultFontSize = 12
)

// 各组件可识别的属性。未列出的属性会被记录警告并忽略。
var (
	fontProps      = propSet("src", "size")
	textProps      = propSet("at", "size", "align", "autofit", "colour", "rotation", "fill", "fill-width", "fill-height", "layer", "font-size", "content")
	paragraphProps = propSet("at", "size", "align", "colour", "layer", "font-size", "spacing", "content")
	borderProps    = propSet("at", "size", "radius", "thickness", "shrink", "colour", "layer")

	propAliases = map[string]string{
		"color":       "colour",
		"alignment":   "align",
		"fill_width":  "fill-width",
		"fill_height": "fill-height",
		"fontsize":    "font-size",
	}

	namedColors = map[string]Color{
		"black":  {0, 0, 0},
		"white":  {255, 255, 255},
		"red":    {255, 0, 0},
		"yellow": {255, 255, 0},
	}
)

// Build 根据布局文件 AST 与绑定数据生成场景。
func Build(doc *dsl.Document, data any, opts BuildOptions) (*Scene, error) {
	if doc == nil {
		return nil, fmt.Errorf("文档为空")
	}
	if opts.Typesetter == nil {
		return nil, fmt.Errorf("layout: 缺少排版后端 Typesetter")
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("layout: 显示屏尺寸无效 %dx%d", opts.Width, opts.Height)
	}

	fontSet, err := collectFonts(doc, opts.DefaultFont)
	if err != nil {
		return nil, err
	}
	layers := opts.Layers
	if len(layers) == 0 {
		layers = []string{LayerBlack, LayerColour}
	}

	b := &builder{
		scene: &Scene{
			Name:   doc.Name,
			Width:  opts.Width,
			Height: opts.Height,
			Fonts:  fontSet,
		},
		data:   data,
		ts:     opts.Typesetter,
		layers: layers,
	}
	for _, section := range doc.Sections {
		if section.Widget == nil {
			continue
		}
		if err := b.widget(section.Widget); err != nil {
			return nil, err
		}
	}
	return b.scene, nil
}

type builder struct {
	scene      *Scene
	data       any
	ts         Typesetter
	layers     []string
	paragraphs int
}

func (b *builder) widget(cmd *dsl.Command) error {
	switch cmd.Name {
	case "text":
		return b.text(cmd)
	case "paragraph":
		return b.paragraph(cmd)
	case "border":
		return b.border(cmd)
	default:
		return fmt.Errorf("第 %d 行: 未知组件 %s", cmd.Pos.Line, cmd.Name)
	}
}

func (b *builder) text(cmd *dsl.Command) error {
	p := readProperties(cmd, textProps)
	font, err := b.font(cmd, p)
	if err != nil {
		return err
	}
	box, err := b.box(p)
	if err != nil {
		return err
	}
	layer, err := b.layer(p)
	if err != nil {
		return err
	}
	style, err := b.style(p)
	if err != nil {
		return err
	}
	if v, ok, err := p.float("rotation"); err != nil {
		return err
	} else if ok {
		style.Rotation = v
	}
	if v, ok, err := p.boolean("autofit"); err != nil {
		return err
	} else if ok {
		style.Autofit = v
	}
	if vs, ok, err := p.floats("fill", 2); err != nil {
		return err
	} else if ok {
		style.FillWidth, style.FillHeight = vs[0], vs[1]
	}
	if v, ok, err := p.float("fill-width"); err != nil {
		return err
	} else if ok {
		style.FillWidth = v
	}
	if v, ok, err := p.float("fill-height"); err != nil {
		return err
	} else if ok {
		style.FillHeight = v
	}
	if err := style.Options().Validate(); err != nil {
		return fmt.Errorf("第 %d 行 text: %w", cmd.Pos.Line, err)
	}

	b.scene.Texts = append(b.scene.Texts, TextBox{
		Content:  binding.Interpolate(p.content(), b.data),
		Box:      box,
		Font:     font.Name,
		FontSize: font.Size,
		Style:    style,
		Layer:    layer,
	})
	return nil
}

// paragraph 按文本框宽度折行，每行占参考行高加 spacing，超出文本框底部的行被丢弃。
func (b *builder) paragraph(cmd *dsl.Command) error {
	p := readProperties(cmd, paragraphProps)
	font, err := b.font(cmd, p)
	if err != nil {
		return err
	}
	box, err := b.box(p)
	if err != nil {
		return err
	}
	layer, err := b.layer(p)
	if err != nil {
		return err
	}
	style, err := b.style(p)
	if err != nil {
		return err
	}
	spacing, _, err := p.integer("spacing")
	if err != nil {
		return err
	}
	if spacing < 0 {
		return p.errorf("spacing", "不能为负，实际 %d", spacing)
	}

	content := binding.Interpolate(p.content(), b.data)
	lines, err := b.ts.LayoutLines(content, box.Width, font)
	if err != nil {
		return fmt.Errorf("第 %d 行 paragraph 排版失败: %w", cmd.Pos.Line, err)
	}

	b.paragraphs++
	y := box.Y
	bottom := box.Y + box.Height
	for i, line := range lines {
		if y+line.Height > bottom {
			slog.Debug("段落超出文本框，丢弃剩余行", "line", cmd.Pos.Line, "dropped", len(lines)-i)
			break
		}
		if line.Content != "" {
			b.scene.Texts = append(b.scene.Texts, TextBox{
				Content:   line.Content,
				Box:       Rect{X: box.X, Y: y, Width: box.Width, Height: line.Height},
				Font:      font.Name,
				FontSize:  font.Size,
				Style:     style,
				Layer:     layer,
				Paragraph: b.paragraphs,
			})
		}
		y += line.Height + spacing
	}
	return nil
}

func (b *builder) border(cmd *dsl.Command) error {
	p := readProperties(cmd, borderProps)
	box, err := b.box(p)
	if err != nil {
		return err
	}
	layer, err := b.layer(p)
	if err != nil {
		return err
	}
	def := border.DefaultSpec(box.Rectangle().Min, box.Rectangle().Size())
	bb := BorderBox{
		Box:       box,
		Radius:    def.Radius,
		Thickness: def.Thickness,
		ShrinkX:   def.ShrinkX,
		ShrinkY:   def.ShrinkY,
		Layer:     layer,
	}
	if v, ok, err := p.integer("radius"); err != nil {
		return err
	} else if ok {
		bb.Radius = v
	}
	if v, ok, err := p.integer("thickness"); err != nil {
		return err
	} else if ok {
		bb.Thickness = v
	}
	if vs, ok, err := p.floats("shrink", 2); err != nil {
		return err
	} else if ok {
		bb.ShrinkX, bb.ShrinkY = vs[0], vs[1]
	}
	if c, ok, err := p.colour(); err != nil {
		return err
	} else if ok {
		bb.Colour = c
	}
	if _, err := border.Outline(bb.Spec()); err != nil {
		return fmt.Errorf("第 %d 行 border: %w", cmd.Pos.Line, err)
	}
	b.scene.Borders = append(b.scene.Borders, bb)
	return nil
}

// font 返回组件引用的字体，font-size 属性覆盖字体声明中的字号。
func (b *builder) font(cmd *dsl.Command, p properties) (FontResource, error) {
	name := defaultFontName
	if len(cmd.Args) > 0 {
		name = cmd.Args[0].Value
	}
	if len(cmd.Args) > 1 {
		slog.Warn("忽略多余的组件参数", "widget", cmd.Name, "line", cmd.Pos.Line, "args", len(cmd.Args))
	}
	font, ok := b.scene.Fonts[name]
	if !ok {
		return FontResource{}, fmt.Errorf("第 %d 行: 未声明的字体 %s", cmd.Pos.Line, name)
	}
	if v, ok, err := p.integer("font-size"); err != nil {
		return FontResource{}, err
	} else if ok {
		if v < 1 {
			return FontResource{}, p.errorf("font-size", "必须大于 0")
		}
		font.Size = v
	}
	return font, nil
}

// box 解析 at 与 size；缺省时从 at 一直延伸到显示屏右下角。
func (b *builder) box(p properties) (Rect, error) {
	var r Rect
	if vs, ok, err := p.lengths("at", b.scene.Width, b.scene.Height); err != nil {
		return r, err
	} else if ok {
		r.X, r.Y = vs[0], vs[1]
	}
	r.Width, r.Height = b.scene.Width-r.X, b.scene.Height-r.Y
	if vs, ok, err := p.lengths("size", b.scene.Width, b.scene.Height); err != nil {
		return r, err
	} else if ok {
		r.Width, r.Height = vs[0], vs[1]
	}
	if r.Width < 0 || r.Height < 0 {
		return r, p.errorf("size", "尺寸不能为负 %dx%d", r.Width, r.Height)
	}
	return r, nil
}

func (b *builder) layer(p properties) (string, error) {
	name, ok := p.word("layer")
	if !ok {
		return LayerBlack, nil
	}
	if !slices.Contains(b.layers, name) {
		return "", p.errorf("layer", "未知图层 %s（可选 %s）", name, strings.Join(b.layers, ", "))
	}
	return name, nil
}

// style 解析 text 与 paragraph 共有的 align/colour。
func (b *builder) style(p properties) (TextStyle, error) {
	style := DefaultTextStyle()
	if v, ok := p.word("align"); ok {
		align, known := typeset.ParseAlignment(v)
		if !known {
			slog.Warn("未知对齐方式，按居中处理", "widget", p.widget, "align", v, "line", p.line("align"))
		}
		style.Align = align
	}
	if c, ok, err := p.colour(); err != nil {
		return style, err
	} else if ok {
		style.Colour = c
	}
	return style, nil
}

func collectFonts(doc *dsl.Document, defaultSrc string) (map[string]FontResource, error) {
	out := map[string]FontResource{}
	for _, section := range doc.Sections {
		if section.Resources == nil || section.Resources.Block == nil {
			continue
		}
		for _, st := range section.Resources.Block.Statements {
			cmd := st.Command
			if cmd == nil {
				continue
			}
			if cmd.Name != "font" {
				slog.Warn("忽略未知资源", "kind", cmd.Name, "line", cmd.Pos.Line)
				continue
			}
			if len(cmd.Args) == 0 {
				return nil, fmt.Errorf("第 %d 行: font 缺少名称", cmd.Pos.Line)
			}
			p := readProperties(cmd, fontProps)
			font := FontResource{Name: cmd.Args[0].Value, Size: defaultFontSize}
			src, ok := p.word("src")
			if !ok {
				return nil, fmt.Errorf("第 %d 行: 字体 %s 缺少 src", cmd.Pos.Line, font.Name)
			}
			font.Src = src
			if v, ok, err := p.integer("size"); err != nil {
				return nil, err
			} else if ok {
				if v < 1 {
					return nil, p.errorf("size", "字号必须大于 0")
				}
				font.Size = v
			}
			out[font.Name] = font
		}
	}
	if _, ok := out[defaultFontName]; !ok {
		src := defaultSrc
		if src == "" {
			src = "embed:" + fonts.Default
		}
		out[defaultFontName] = FontResource{Name: defaultFontName, Src: src, Size: defaultFontSize}
	}
	return out, nil
}

// properties 收集组件块内的 key: value 赋值与字符串字面量。
type properties struct {
	widget string
	values map[string][]*dsl.Lexeme
	pos    map[string]lexer.Position
	texts  []string
}

func readProperties(cmd *dsl.Command, known map[string]bool) properties {
	p := properties{
		widget: cmd.Name,
		values: map[string][]*dsl.Lexeme{},
		pos:    map[string]lexer.Position{},
	}
	if cmd.Block == nil {
		return p
	}
	for _, st := range cmd.Block.Statements {
		switch {
		case st.Assignment != nil:
			a := st.Assignment
			key := strings.ToLower(a.Key)
			if alias, ok := propAliases[key]; ok {
				key = alias
			}
			if !known[key] {
				slog.Warn("忽略未知属性", "widget", cmd.Name, "key", a.Key, "line", a.Pos.Line)
				continue
			}
			p.values[key] = a.Values
			p.pos[key] = a.Pos
		case st.Text != nil:
			p.texts = append(p.texts, string(st.Text.Value))
		case st.Command != nil:
			slog.Warn("忽略嵌套声明", "widget", cmd.Name, "name", st.Command.Name, "line", st.Command.Pos.Line)
		}
	}
	return p
}

func (p properties) line(key string) int { return p.pos[key].Line }

func (p properties) errorf(key, format string, args ...any) error {
	return fmt.Errorf("第 %d 行 %s.%s: %s", p.line(key), p.widget, key, fmt.Sprintf(format, args...))
}

// content 合并 content 属性与字符串字面量，多段之间以换行分隔。
func (p properties) content() string {
	parts := make([]string, 0, len(p.texts)+1)
	if vs, ok := p.values["content"]; ok {
		words := make([]string, 0, len(vs))
		for _, v := range vs {
			words = append(words, v.Value)
		}
		parts = append(parts, strings.Join(words, " "))
	}
	parts = append(parts, p.texts...)
	return strings.Join(parts, "\n")
}

func (p properties) word(key string) (string, bool) {
	vs, ok := p.values[key]
	if !ok {
		return "", false
	}
	if len(vs) > 1 {
		slog.Warn("属性只取第一个值", "widget", p.widget, "key", key, "line", p.line(key))
	}
	return vs[0].Value, true
}

func (p properties) floats(key string, n int) ([]float64, bool, error) {
	vs, ok := p.values[key]
	if !ok {
		return nil, false, nil
	}
	if len(vs) != n {
		return nil, false, p.errorf(key, "需要 %d 个数值，实际 %d 个", n, len(vs))
	}
	out := make([]float64, n)
	for i, v := range vs {
		f, err := strconv.ParseFloat(strings.TrimSuffix(v.Value, "px"), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, false, p.errorf(key, "无法解析数值 %q", v.Value)
		}
		out[i] = f
	}
	return out, true, nil
}

func (p properties) float(key string) (float64, bool, error) {
	vs, ok, err := p.floats(key, 1)
	if !ok || err != nil {
		return 0, ok, err
	}
	return vs[0], true, nil
}

func (p properties) integer(key string) (int, bool, error) {
	v, ok, err := p.float(key)
	if !ok || err != nil {
		return 0, ok, err
	}
	if v != float64(int(v)) {
		return 0, false, p.errorf(key, "需要整数，实际 %g", v)
	}
	return int(v), true, nil
}

func (p properties) boolean(key string) (bool, bool, error) {
	v, ok := p.word(key)
	if !ok {
		return false, false, nil
	}
	switch strings.ToLower(v) {
	case "true", "yes", "on":
		return true, true, nil
	case "false", "no", "off":
		return false, true, nil
	default:
		return false, false, p.errorf(key, "需要布尔值，实际 %q", v)
	}
}

// lengths 解析一对长度，分别以 refX、refY 作为百分比参照。
func (p properties) lengths(key string, refX, refY int) ([]int, bool, error) {
	vs, ok := p.values[key]
	if !ok {
		return nil, false, nil
	}
	if len(vs) != 2 {
		return nil, false, p.errorf(key, "需要 2 个长度，实际 %d 个", len(vs))
	}
	out := make([]int, 2)
	for i, ref := range []int{refX, refY} {
		l, err := ParseLength(vs[i].Value)
		if err != nil {
			return nil, false, p.errorf(key, "%v", err)
		}
		out[i] = l.Resolve(ref)
	}
	return out, true, nil
}

func (p properties) colour() (Color, bool, error) {
	v, ok := p.word("colour")
	if !ok {
		return Color{}, false, nil
	}
	c, err := parseColor(v)
	if err != nil {
		return Color{}, false, p.errorf("colour", "%v", err)
	}
	return c, true, nil
}

func parseColor(v string) (Color, error) {
	if c, ok := namedColors[strings.ToLower(v)]; ok {
		return c, nil
	}
	hex := strings.TrimPrefix(v, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if !strings.HasPrefix(v, "#") || len(hex) != 6 {
		return Color{}, fmt.Errorf("无法识别的颜色 %q", v)
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("无法识别的颜色 %q", v)
	}
	return Color{R: int(n >> 16 & 0xff), G: int(n >> 8 & 0xff), B: int(n & 0xff)}, nil
}

func propSet(keys ...string) map[string]bool {
	out := make(map[string]bool, len(keys))
	for _, k := range keys {
		out[k] = true
	}
	return out
}
