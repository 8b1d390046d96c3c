package typeface

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ByLCY/inkframe/fonts"
)

// Loader resolves font sources and caches parsed fonts by source string.
//
// Supported forms:
//   - "embed:<name>"     built-in Go fonts (see package fonts)
//   - "built-in:<name>"  bytes injected through NewLoader
//   - any other string   a file path, relative paths resolved against baseDir
type Loader struct {
	baseDir string
	blobs   map[string][]byte

	mu      sync.Mutex
	sources map[string]*Source
}

// NewLoader creates a loader rooted at baseDir with optional injected font blobs.
func NewLoader(baseDir string, blobs map[string][]byte) *Loader {
	l := &Loader{
		baseDir: baseDir,
		blobs:   map[string][]byte{},
		sources: map[string]*Source{},
	}
	for name, data := range blobs {
		if name == "" || len(data) == 0 {
			continue
		}
		l.blobs[name] = data
	}
	return l
}

// Load 返回 src 对应的已解析字体，同一 src 只解析一次。
func (l *Loader) Load(src string) (*Source, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if s, ok := l.sources[src]; ok {
		return s, nil
	}
	data, err := l.loadBytes(src)
	if err != nil {
		return nil, err
	}
	s, err := Parse(src, data)
	if err != nil {
		return nil, err
	}
	l.sources[src] = s
	return s, nil
}

// Open 加载字体并在 size 下实例化。
func (l *Loader) Open(src string, size int) (*Handle, error) {
	s, err := l.Load(src)
	if err != nil {
		return nil, err
	}
	return s.Face(size)
}

func (l *Loader) loadBytes(src string) ([]byte, error) {
	if src == "" {
		return nil, fmt.Errorf("字体缺少 src")
	}
	if strings.HasPrefix(src, "built-in:") || strings.HasPrefix(src, "builtin:") {
		name := strings.TrimPrefix(strings.TrimPrefix(src, "built-in:"), "builtin:")
		if blob, ok := l.blobs[name]; ok {
			return blob, nil
		}
		return nil, fmt.Errorf("找不到内置字体资源 built-in:%s", name)
	}
	if strings.HasPrefix(src, "embed:") {
		return fonts.Load(src)
	}
	path := src
	if l.baseDir == "" && !filepath.IsAbs(path) {
		return nil, fmt.Errorf("未指定资源目录时不允许直接使用字体路径：%s（请改用 built-in: 或 embed:）", src)
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(l.baseDir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取字体 %s 失败: %w", src, err)
	}
	return data, nil
}
