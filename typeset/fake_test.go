package typeset

import "unicode/utf8"

// gridFace 是等宽的假字体：每个字符宽 advance 像素，行高固定为 height。
type gridFace struct {
	advance int
	height  int
}

func (f gridFace) Measure(text string) (int, int) {
	return utf8.RuneCountInString(text) * f.advance, f.height
}

// scaledFace 模拟按字号缩放的字体：字符宽为 size/2，行高等于 size。
type scaledFace struct{ size int }

func (f scaledFace) Measure(text string) (int, int) {
	return utf8.RuneCountInString(text) * f.size / 2, f.size
}

func scaledAt(size int) (scaledFace, error) { return scaledFace{size: size}, nil }
