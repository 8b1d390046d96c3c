package main

import (
	"encoding/json"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/ByLCY/inkframe/config"
	"github.com/ByLCY/inkframe/dsl"
	"github.com/ByLCY/inkframe/layout"
	"github.com/ByLCY/inkframe/renderer/epaper"
)

// options 汇总命令行参数。
type options struct {
	profile  string
	input    string
	output   string
	data     string
	debug    string
	pdf      bool
	logLevel string
}

func main() {
	var opts options
	pflag.StringVarP(&opts.profile, "config", "c", "", "显示屏配置 YAML 路径（缺省为 640x384 红黑白屏）")
	pflag.StringVarP(&opts.input, "in", "i", "examples/weather.ink", "布局文件路径")
	pflag.StringVarP(&opts.output, "out", "o", "", "输出文件前缀，缺省为 <output.dir>/<布局文件名>")
	pflag.StringVarP(&opts.data, "data", "d", "", "绑定到布局的 JSON 数据")
	pflag.StringVar(&opts.debug, "debug", "", "场景调试 JSON 输出路径")
	pflag.BoolVar(&opts.pdf, "pdf", false, "额外输出 PDF 预览")
	pflag.StringVar(&opts.logLevel, "log-level", "info", "日志级别：debug, info, warn, error")
	pflag.Parse()

	os.Exit(run(opts))
}

func run(opts options) int {
	if err := setupLogging(opts.logLevel); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	files, err := generate(opts)
	if err != nil {
		slog.Error("生成失败", "err", err)
		return 1
	}
	for _, f := range files {
		fmt.Printf("已生成：%s\n", f)
	}
	return 0
}

func setupLogging(level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("无效的日志级别 %q", level)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
	return nil
}

// generate 串联配置、解析、布局与渲染，返回写出的文件列表。
func generate(opts options) ([]string, error) {
	profile, err := config.Load(opts.profile)
	if err != nil {
		return nil, err
	}

	var data any
	if opts.data != "" {
		if err := json.Unmarshal([]byte(opts.data), &data); err != nil {
			return nil, fmt.Errorf("解析 data JSON 失败: %w", err)
		}
	}

	file, err := os.Open(opts.input)
	if err != nil {
		return nil, fmt.Errorf("无法打开布局文件 %s: %w", opts.input, err)
	}
	defer file.Close()

	doc, err := dsl.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("解析布局文件失败: %w", err)
	}

	fontDir := profile.FontDir()
	if opts.profile == "" {
		fontDir = filepath.Dir(opts.input)
	}
	r := epaper.New(epaper.Options{FontDir: fontDir, Layers: profile.Layers()})
	scene, err := layout.Build(doc, data, layout.BuildOptions{
		Width:       profile.Display.Width,
		Height:      profile.Display.Height,
		Typesetter:  r,
		DefaultFont: profile.Fonts.Default,
		Layers:      profile.Layers(),
	})
	if err != nil {
		return nil, fmt.Errorf("布局计算失败: %w", err)
	}

	if opts.debug != "" {
		if err := writeDebug(scene, opts.debug); err != nil {
			return nil, err
		}
	}

	frame, err := r.Render(scene)
	if err != nil {
		return nil, fmt.Errorf("渲染失败: %w", err)
	}

	prefix := opts.output
	if prefix == "" {
		base := filepath.Base(opts.input)
		prefix = filepath.Join(profile.OutputDir(), base[:len(base)-len(filepath.Ext(base))])
	}
	if err := os.MkdirAll(filepath.Dir(prefix), 0o755); err != nil {
		return nil, fmt.Errorf("创建输出目录失败: %w", err)
	}

	var written []string
	for _, l := range frame.Layers {
		path := prefix + "-" + l.Name + ".png"
		if err := writeFile(path, func(f *os.File) error { return epaper.EncodePNG(f, l.Image) }); err != nil {
			return written, err
		}
		written = append(written, path)
	}

	var accent color.Color
	if c, ok := profile.Accent(); ok {
		accent = c
	}
	preview := epaper.Preview(frame, accent)
	path := prefix + ".png"
	if err := writeFile(path, func(f *os.File) error { return epaper.EncodePNG(f, preview) }); err != nil {
		return written, err
	}
	written = append(written, path)

	if opts.pdf || profile.Output.PDF {
		path := prefix + ".pdf"
		if err := writeFile(path, func(f *os.File) error { return epaper.EncodePDF(f, preview) }); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

func writeFile(path string, encode func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("创建文件 %s 失败: %w", path, err)
	}
	if err := encode(f); err != nil {
		f.Close()
		return fmt.Errorf("写入 %s: %w", path, err)
	}
	return f.Close()
}

func writeDebug(scene *layout.Scene, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := layout.WriteDebugJSON(scene, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}
