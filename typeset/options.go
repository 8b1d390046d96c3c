package typeset

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strings"
)

// ErrInvalidOptions 表示 Options 中存在越界的取值。
var ErrInvalidOptions = errors.New("typeset: invalid options")

// Default fill ratios. Any other value enables autofit.
const (
	DefaultFillWidth  = 1.0
	DefaultFillHeight = 0.8
)

// Alignment 是文本在框内的水平对齐方式；垂直方向总是居中。
type Alignment int

const (
	AlignCenter Alignment = iota
	AlignLeft
	AlignRight
)

// ParseAlignment 解析 left/center/right（大小写不敏感）。
// 无法识别的取值返回 AlignCenter 与 false。
func ParseAlignment(s string) (Alignment, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left":
		return AlignLeft, true
	case "right":
		return AlignRight, true
	case "center", "centre":
		return AlignCenter, true
	default:
		return AlignCenter, false
	}
}

func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignRight:
		return "right"
	default:
		return "center"
	}
}

// MarshalText 让 Alignment 在调试 JSON 中以名称输出。
func (a Alignment) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

// UnmarshalText 是 MarshalText 的逆操作，拒绝无法识别的名称。
func (a *Alignment) UnmarshalText(b []byte) error {
	v, ok := ParseAlignment(string(b))
	if !ok {
		return fmt.Errorf("%w: 未知对齐方式 %q", ErrInvalidOptions, b)
	}
	*a = v
	return nil
}

// Options 描述一次 Write 调用的样式，字段即全部可识别的选项。
type Options struct {
	Alignment Alignment
	// Autofit 为 true 时从 MinFontSize 起寻找适合文本框的字号。
	Autofit bool
	Colour  color.Color
	// Rotation 为逆时针旋转角度（度），0 表示不旋转。
	Rotation float64
	// FillWidth 与 FillHeight 取值 (0,1]，是自动字号允许占用的框宽/框高比例。
	FillWidth  float64
	FillHeight float64
}

// DefaultOptions 返回居中、黑色、不旋转、不自动字号的默认样式。
func DefaultOptions() Options {
	return Options{
		Alignment:  AlignCenter,
		Colour:     color.Black,
		FillWidth:  DefaultFillWidth,
		FillHeight: DefaultFillHeight,
	}
}

// Validate 检查取值范围。
func (o Options) Validate() error {
	if !(o.FillWidth > 0 && o.FillWidth <= 1) {
		return fmt.Errorf("%w: fill_width 必须位于 (0,1]，实际 %g", ErrInvalidOptions, o.FillWidth)
	}
	if !(o.FillHeight > 0 && o.FillHeight <= 1) {
		return fmt.Errorf("%w: fill_height 必须位于 (0,1]，实际 %g", ErrInvalidOptions, o.FillHeight)
	}
	if math.IsNaN(o.Rotation) || math.IsInf(o.Rotation, 0) {
		return fmt.Errorf("%w: rotation 必须是有限值", ErrInvalidOptions)
	}
	switch o.Alignment {
	case AlignCenter, AlignLeft, AlignRight:
	default:
		return fmt.Errorf("%w: 未知对齐方式 %d", ErrInvalidOptions, int(o.Alignment))
	}
	return nil
}

func (o Options) wantsFit() bool {
	return o.Autofit || o.FillWidth != DefaultFillWidth || o.FillHeight != DefaultFillHeight
}

func (o Options) colour() color.Color {
	if o.Colour == nil {
		return color.Black
	}
	return o.Colour
}
