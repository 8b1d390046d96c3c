// Package config 读取描述目标显示屏、字体目录与输出位置的 YAML 配置。
package config

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ByLCY/inkframe/fonts"
)

// ErrInvalid 表示配置内容不合法。
var ErrInvalid = errors.New("config: invalid profile")

// 可选的强调色；none 表示单色屏，只输出黑色图层。
const (
	ColourBlack  = "black"
	ColourRed    = "red"
	ColourYellow = "yellow"
	ColourNone   = "none"
)

var accents = map[string]color.RGBA{
	ColourBlack:  {0, 0, 0, 255},
	ColourRed:    {255, 0, 0, 255},
	ColourYellow: {255, 255, 0, 255},
}

// Profile 是一份显示屏配置。
type Profile struct {
	Display Display `yaml:"display"`
	Fonts   Fonts   `yaml:"fonts"`
	Output  Output  `yaml:"output"`

	// dir 是配置文件所在目录，用于解析相对路径。
	dir string
}

type Display struct {
	Name   string `yaml:"name"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Colour string `yaml:"colour"`
}

type Fonts struct {
	Dir     string `yaml:"dir,omitempty"`
	Default string `yaml:"default,omitempty"`
}

type Output struct {
	Dir string `yaml:"dir,omitempty"`
	PDF bool   `yaml:"pdf,omitempty"`
}

// Default 返回 7.5 英寸三色墨水屏的配置。
func Default() Profile {
	return Profile{
		Display: Display{Name: "epd7in5", Width: 640, Height: 384, Colour: ColourRed},
		Fonts:   Fonts{Default: "embed:" + fonts.Default},
		Output:  Output{Dir: "output"},
		dir:     ".",
	}
}

// Load 读取并校验配置文件；path 为空时返回 Default。
func Load(path string) (Profile, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("读取配置 %s: %w", path, err)
	}
	p, err := Decode(bytes.NewReader(data))
	if err != nil {
		return Profile{}, fmt.Errorf("解析配置 %s: %w", path, err)
	}
	p.dir = filepath.Dir(path)
	return p, nil
}

// Decode 以严格模式解析 YAML：未知字段视为错误。缺省字段沿用 Default。
func Decode(r io.Reader) (Profile, error) {
	p := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return Profile{}, err
	}
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Validate 检查尺寸与强调色。
func (p Profile) Validate() error {
	if p.Display.Width <= 0 || p.Display.Height <= 0 {
		return fmt.Errorf("%w: 显示屏尺寸必须为正，实际 %dx%d", ErrInvalid, p.Display.Width, p.Display.Height)
	}
	if _, ok := accents[p.Display.Colour]; !ok && p.Display.Colour != ColourNone {
		return fmt.Errorf("%w: 未知强调色 %q（可选 black, red, yellow, none）", ErrInvalid, p.Display.Colour)
	}
	return nil
}

// Accent 返回彩色图层在预览中的颜色；单色屏返回 false。
func (p Profile) Accent() (color.RGBA, bool) {
	c, ok := accents[p.Display.Colour]
	return c, ok
}

// Layers 返回该显示屏可用的图层名称。
func (p Profile) Layers() []string {
	if p.Display.Colour == ColourNone {
		return []string{"black"}
	}
	return []string{"black", "colour"}
}

// FontDir 返回解析相对字体路径的目录。
func (p Profile) FontDir() string {
	return p.resolve(p.Fonts.Dir)
}

// OutputDir 返回输出目录。
func (p Profile) OutputDir() string {
	return p.resolve(p.Output.Dir)
}

func (p Profile) resolve(dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	base := p.dir
	if base == "" {
		base = "."
	}
	return filepath.Join(base, dir)
}
