package layout

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Unit 表示长度在布局文件中的原始单位。
type Unit int

const (
	UnitPX      Unit = iota // 像素；不带单位的数字也按像素处理
	UnitPercent             // 相对显示屏宽或高的百分比
)

// UnitToString returns a short string for a Unit value.
func UnitToString(u Unit) string {
	switch u {
	case UnitPercent:
		return "%"
	default:
		return "px"
	}
}

// Length preserves a numeric value with its unit.
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

// String 还原为布局文件中的写法。
func (l Length) String() string {
	return strconv.FormatFloat(l.Value, 'f', -1, 64) + UnitToString(l.Unit)
}

// Resolve 换算为像素，ref 是百分比的参照长度（显示屏宽或高）。结果向下取整。
func (l Length) Resolve(ref int) int {
	switch l.Unit {
	case UnitPercent:
		return int(l.Value / 100 * float64(ref))
	default:
		return int(l.Value)
	}
}

// ParseLength 解析 "12"、"12px"、"50%" 形式的长度。
func ParseLength(value string) (Length, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	unit := UnitPX
	switch {
	case strings.HasSuffix(v, "%"):
		unit = UnitPercent
		v = strings.TrimSuffix(v, "%")
	case strings.HasSuffix(v, "px"):
		v = strings.TrimSuffix(v, "px")
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return Length{}, fmt.Errorf("无法解析长度 %q", value)
	}
	return Length{Value: f, Unit: unit}, nil
}
