package typeface

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/gomono"
)

func openRegular(t *testing.T, size int) *Handle {
	t.Helper()
	h, err := NewLoader("", nil).Open("embed:goregular", size)
	if err != nil {
		t.Fatalf("打开内置字体失败: %v", err)
	}
	return h
}

func TestMeasureHeightIgnoresText(t *testing.T) {
	h := openRegular(t, 16)
	_, hx := h.Measure("xxx")
	_, hT := h.Measure("Tjq")
	_, hEmpty := h.Measure("")
	if hx != hT || hx != hEmpty {
		t.Fatalf("行高应与文本无关: %d %d %d", hx, hT, hEmpty)
	}
	if hx <= 0 {
		t.Fatalf("行高必须为正，实际 %d", hx)
	}
	if h.Ascent() <= 0 || h.Ascent() > hx {
		t.Fatalf("ascent 越界: ascent=%d height=%d", h.Ascent(), hx)
	}
}

func TestMeasureWidth(t *testing.T) {
	h := openRegular(t, 16)
	if w, _ := h.Measure(""); w != 0 {
		t.Fatalf("空串宽度应为 0，实际 %d", w)
	}
	short, _ := h.Measure("Hi")
	long, _ := h.Measure("Hi there")
	if short <= 0 || long <= short {
		t.Fatalf("宽度应随文本增长: short=%d long=%d", short, long)
	}
}

func TestWithSizeReturnsNewHandle(t *testing.T) {
	h := openRegular(t, 12)
	w12, h12 := h.Measure("Hello")

	bigger, err := h.WithSize(24)
	if err != nil {
		t.Fatalf("WithSize 失败: %v", err)
	}
	if bigger == h {
		t.Fatalf("WithSize 必须返回新的句柄")
	}
	if h.Size() != 12 || bigger.Size() != 24 {
		t.Fatalf("字号错误: original=%d bigger=%d", h.Size(), bigger.Size())
	}
	if w, ht := h.Measure("Hello"); w != w12 || ht != h12 {
		t.Fatalf("原句柄被修改: (%d,%d) -> (%d,%d)", w12, h12, w, ht)
	}
	w24, h24 := bigger.Measure("Hello")
	if w24 <= w12 || h24 <= h12 {
		t.Fatalf("更大字号的度量应更大: 12=(%d,%d) 24=(%d,%d)", w12, h12, w24, h24)
	}
	if bigger.Path() != h.Path() {
		t.Fatalf("WithSize 应复用同一字体来源: %s != %s", bigger.Path(), h.Path())
	}
}

func TestFaceRejectsNonPositiveSize(t *testing.T) {
	h := openRegular(t, 12)
	if _, err := h.WithSize(0); err == nil {
		t.Fatalf("字号 0 应返回错误")
	}
}

func TestLoaderCachesSources(t *testing.T) {
	l := NewLoader("", nil)
	a, err := l.Load("embed:gomono")
	if err != nil {
		t.Fatalf("Load 失败: %v", err)
	}
	b, err := l.Load("embed:gomono")
	if err != nil {
		t.Fatalf("Load 失败: %v", err)
	}
	if a != b {
		t.Fatalf("同一 src 应命中缓存")
	}
}

func TestLoaderBuiltinAndPath(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "mono.ttf"), gomono.TTF, 0o644); err != nil {
		t.Fatalf("写入字体失败: %v", err)
	}
	l := NewLoader(dir, map[string][]byte{"Mono": gomono.TTF})

	if _, err := l.Open("built-in:Mono", 10); err != nil {
		t.Fatalf("built-in 字体加载失败: %v", err)
	}
	if _, err := l.Open("mono.ttf", 10); err != nil {
		t.Fatalf("路径字体加载失败: %v", err)
	}
	if _, err := l.Open("built-in:Missing", 10); err == nil {
		t.Fatalf("缺失的 built-in 字体应返回错误")
	}
	_, err := l.Open("missing.ttf", 10)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("文件缺失错误应原样包裹，实际 %v", err)
	}
}

func TestLoaderRejectsRelativePathWithoutBaseDir(t *testing.T) {
	if _, err := NewLoader("", nil).Load("fonts/x.ttf"); err == nil {
		t.Fatalf("未设置 baseDir 时应拒绝相对路径")
	}
}
