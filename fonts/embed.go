package fonts

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// Default 是未指定字体时使用的内置字体。
const Default = "goregular"

var embedded = map[string][]byte{
	"goregular": goregular.TTF,
	"gobold":    gobold.TTF,
	"goitalic":  goitalic.TTF,
	"gomedium":  gomedium.TTF,
	"gomono":    gomono.TTF,
}

// Load 返回内置字体的字节数据，name 可写为 "embed:gobold" 或直接 "gobold"，可带 .ttf 后缀。
func Load(name string) ([]byte, error) {
	clean := strings.TrimSuffix(strings.TrimPrefix(name, "embed:"), ".ttf")
	data, ok := embedded[strings.ToLower(clean)]
	if !ok {
		return nil, fmt.Errorf("读取内置字体 %s 失败: 可选 %s", name, strings.Join(Names(), ", "))
	}
	return data, nil
}

// Names 列出全部内置字体名称。
func Names() []string {
	names := make([]string, 0, len(embedded))
	for name := range embedded {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
