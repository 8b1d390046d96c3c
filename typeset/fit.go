package typeset

import "image"

// Face 在单一字号下度量文本，height 为与文本内容无关的参考行高。
type Face interface {
	Measure(text string) (width, height int)
}

const (
	// MinFontSize 是自动字号搜索的起点。
	MinFontSize = 8
	// FitOvershoot 是返回字号相对最后一个满足条件的字号的偏移。
	// 搜索在首个不满足条件的字号处停止并返回该字号，因此结果比
	// 最大合适字号大 1；溢出部分由截断处理。
	FitOvershoot = 1
)

// Fit 从 MinFontSize 开始逐级增大字号，直到文本宽度不再小于 box.X*fillWidth
// 或参考行高不再小于 box.Y*fillHeight。at 用于在指定字号下构造新的 face，
// 调用方原有的 face 不会被修改。
//
// 若 MinFontSize 本身已不满足条件则直接返回它。搜索上限为
// MinFontSize + 2*max(box.X, box.Y)，保证度量退化（如宽高恒为 0）时也能结束。
func Fit[F Face](text string, box image.Point, fillWidth, fillHeight float64, at func(size int) (F, error)) (F, error) {
	limitW := int(float64(box.X) * fillWidth)
	limitH := int(float64(box.Y) * fillHeight)
	fits := func(f F) bool {
		w, h := f.Measure(text)
		return w < limitW && h < limitH
	}

	face, err := at(MinFontSize)
	if err != nil {
		return face, err
	}
	if !fits(face) {
		return face, nil
	}

	ceiling := MinFontSize + 2*max(box.X, box.Y)
	size := MinFontSize
	for size < ceiling {
		next, err := at(size + 1)
		if err != nil {
			return next, err
		}
		if !fits(next) {
			break
		}
		size++
	}
	return at(size + FitOvershoot)
}
