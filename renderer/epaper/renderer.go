// Package epaper 把场景绘制为墨水屏使用的单色位图平面。
package epaper

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/ByLCY/inkframe/border"
	"github.com/ByLCY/inkframe/layout"
	"github.com/ByLCY/inkframe/renderer"
	"github.com/ByLCY/inkframe/typeface"
	"github.com/ByLCY/inkframe/typeset"
)

// Renderer 使用 typeface 加载字体，按图层绘制边框与文本。
type Renderer struct {
	loader *typeface.Loader
	layers []string
}

var (
	_ renderer.Renderer = (*Renderer)(nil)
	_ layout.Typesetter = (*Renderer)(nil)
)

// Options configures the e-paper renderer.
type Options struct {
	// FontDir 用于解析相对路径的字体文件。
	FontDir string
	// Fonts 是通过 built-in:<name> 访问的字体数据。
	Fonts map[string][]byte
	// Layers 是要分配的图层，为空时使用 black 与 colour。
	Layers []string
}

// New creates a renderer.
func New(opts Options) *Renderer {
	layers := opts.Layers
	if len(layers) == 0 {
		layers = []string{layout.LayerBlack, layout.LayerColour}
	}
	return &Renderer{
		loader: typeface.NewLoader(opts.FontDir, opts.Fonts),
		layers: layers,
	}
}

// LayoutLines 实现 layout.Typesetter：保留显式换行，每段按宽度贪心折行，行高取字体参考高度。
func (r *Renderer) LayoutLines(content string, width int, font layout.FontResource) ([]layout.TextLine, error) {
	face, err := r.loader.Open(font.Src, font.Size)
	if err != nil {
		return nil, fmt.Errorf("加载字体 %s: %w", font.Name, err)
	}
	_, lineHeight := face.Measure("")

	var lines []layout.TextLine
	for _, hard := range strings.Split(content, "\n") {
		if strings.TrimSpace(hard) == "" {
			lines = append(lines, layout.TextLine{Height: lineHeight})
			continue
		}
		for _, line := range typeset.Wrap(hard, face, width) {
			w, h := face.Measure(line)
			lines = append(lines, layout.TextLine{Content: line, Width: w, Height: h})
		}
	}
	return lines, nil
}

// Render 先画边框再画文本，文本在边框之上。
func (r *Renderer) Render(scene *layout.Scene) (*renderer.Frame, error) {
	if scene == nil {
		return nil, fmt.Errorf("渲染场景为空")
	}
	frame := renderer.NewFrame(scene.Width, scene.Height, r.layers)
	slog.Debug("渲染场景", "name", scene.Name, "borders", len(scene.Borders), "texts", len(scene.Texts))

	for i, b := range scene.Borders {
		dst, ok := frame.Layer(b.Layer)
		if !ok {
			return nil, fmt.Errorf("边框 %d: 未知图层 %s", i, b.Layer)
		}
		if err := border.Draw(dst, b.Spec()); err != nil {
			return nil, fmt.Errorf("边框 %d: %w", i, err)
		}
	}

	for i, tb := range scene.Texts {
		dst, ok := frame.Layer(tb.Layer)
		if !ok {
			return nil, fmt.Errorf("文本 %d: 未知图层 %s", i, tb.Layer)
		}
		font, ok := scene.Fonts[tb.Font]
		if !ok {
			return nil, fmt.Errorf("文本 %d: 未声明的字体 %s", i, tb.Font)
		}
		face, err := r.loader.Open(font.Src, tb.FontSize)
		if err != nil {
			return nil, fmt.Errorf("文本 %d: 加载字体 %s: %w", i, tb.Font, err)
		}
		if err := typeset.Write(dst, tb.Box.Rectangle(), tb.Content, face, tb.Style.Options()); err != nil {
			return nil, fmt.Errorf("文本 %d: %w", i, err)
		}
	}
	return frame, nil
}
