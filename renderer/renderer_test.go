package renderer

import (
	"image/color"
	"testing"
)

func TestNewFrameAllocatesWhiteLayers(t *testing.T) {
	f := NewFrame(8, 4, []string{"black", "colour"})
	if len(f.Layers) != 2 || f.Layers[0].Name != "black" || f.Layers[1].Name != "colour" {
		t.Fatalf("图层顺序错误: %+v", f.Layers)
	}
	img, ok := f.Layer("colour")
	if !ok {
		t.Fatalf("找不到 colour 图层")
	}
	if got := img.RGBAAt(7, 3); got != (color.RGBA{255, 255, 255, 255}) {
		t.Fatalf("图层应为白底: %v", got)
	}
	if _, ok := f.Layer("blue"); ok {
		t.Fatalf("不应找到未分配的图层")
	}
}
