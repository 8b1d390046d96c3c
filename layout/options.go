package layout

// BuildOptions 配置布局阶段所需的依赖，例如排版后端与显示屏尺寸。
type BuildOptions struct {
	Width      int
	Height     int
	Typesetter Typesetter
	// DefaultFont 是未声明 Body 字体时使用的字体来源，默认为 embed:goregular。
	DefaultFont string
	// Layers 列出可用的图层名称，为空时仅允许 LayerBlack 与 LayerColour。
	Layers []string
}

// Typesetter 负责在给定字体与宽度约束下把文本拆成行，并给出每行的宽高。
type Typesetter interface {
	LayoutLines(content string, width int, font FontResource) ([]TextLine, error)
}
