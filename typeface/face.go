// Package typeface wraps scalable fonts as immutable, size-bound handles.
//
// A Handle never changes size: WithSize returns a new handle sharing the
// parsed source, so callers can probe other sizes without aliasing the handle
// they hold.
package typeface

import (
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
)

// ReferenceText 用于计算行高：同时包含上伸部与下伸部，行高不随实际文本变化。
const ReferenceText = "hg"

// DPI 固定为 72，字号(pt)与像素一一对应。
const DPI = 72

// Source 保存一份已解析的字体，可以在任意字号下实例化。
type Source struct {
	path string
	font *opentype.Font
}

// Parse 解析 TrueType/OpenType 字体数据，path 仅用于标识与错误信息。
func Parse(path string, data []byte) (*Source, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("解析字体 %s 失败: %w", path, err)
	}
	return &Source{path: path, font: f}, nil
}

// Path 返回字体来源。
func (s *Source) Path() string { return s.path }

// Face 在给定字号下实例化字体。
func (s *Source) Face(size int) (*Handle, error) {
	if size < 1 {
		return nil, fmt.Errorf("字体 %s 的字号必须大于 0，实际 %d", s.path, size)
	}
	face, err := opentype.NewFace(s.font, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     DPI,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("创建字体 %s@%d 失败: %w", s.path, size, err)
	}
	bounds, _ := font.BoundString(face, ReferenceText)
	top := bounds.Min.Y.Floor()
	bottom := bounds.Max.Y.Ceil()
	return &Handle{
		src:    s,
		size:   size,
		face:   face,
		ascent: -top,
		height: bottom - top,
	}, nil
}

// Handle 是绑定到单一字号的字体。不可并发使用。
type Handle struct {
	src    *Source
	size   int
	face   font.Face
	ascent int
	height int
}

// Size 返回字号。
func (h *Handle) Size() int { return h.size }

// Path 返回字体来源。
func (h *Handle) Path() string { return h.src.Path() }

// Face 返回底层 font.Face，用于绘制字形。
func (h *Handle) Face() font.Face { return h.face }

// Ascent 是参考框顶部到基线的像素距离。
func (h *Handle) Ascent() int { return h.ascent }

// WithSize 返回同一字体在新字号下的句柄，接收者保持不变。
func (h *Handle) WithSize(size int) (*Handle, error) {
	return h.src.Face(size)
}

// Measure 返回文本的像素宽度与参考行高。
// 行高取自 ReferenceText，与 text 的内容无关。
func (h *Handle) Measure(text string) (width, height int) {
	if text != "" {
		width = font.MeasureString(h.face, text).Ceil()
	}
	return width, h.height
}
