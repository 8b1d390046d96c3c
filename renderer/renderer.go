package renderer

import (
	"image"
	"image/color"

	"github.com/ByLCY/inkframe/layout"
	"github.com/ByLCY/inkframe/raster"
)

// Renderer 将场景绘制到一组按名称区分的图层上。
type Renderer interface {
	Render(scene *layout.Scene) (*Frame, error)
}

// Layer 是一张白底的位图平面，墨水屏的每种颜色对应一张。
type Layer struct {
	Name  string
	Image *image.RGBA
}

// Frame 是一次渲染的结果，图层顺序与创建时一致。
type Frame struct {
	Width  int
	Height int
	Layers []Layer
}

// NewFrame 为每个名称分配一张白色图层。
func NewFrame(width, height int, names []string) *Frame {
	f := &Frame{Width: width, Height: height}
	for _, name := range names {
		f.Layers = append(f.Layers, Layer{Name: name, Image: raster.NewLayer(width, height, color.White)})
	}
	return f
}

// Layer 按名称查找图层。
func (f *Frame) Layer(name string) (*image.RGBA, bool) {
	for _, l := range f.Layers {
		if l.Name == name {
			return l.Image, true
		}
	}
	return nil, false
}
