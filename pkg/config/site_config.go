package config

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/thryce/site/pkg/types"
)

// EnvPrefix 环境变量前缀，例如 THRYCE_WINDOW_WIDTH
const EnvPrefix = "THRYCE"

// Config 站点的完整运行配置
//
// 来源优先级（从低到高）：内置默认值 < 嵌入的 site.yaml < 用户配置文件 < THRYCE_* 环境变量
type Config struct {
	Window   WindowConfig   `mapstructure:"window"`
	Field    FieldConfig    `mapstructure:"field"`
	Cursor   CursorConfig   `mapstructure:"cursor"`
	Theme    ThemeConfig    `mapstructure:"theme"`
	Logger   LoggerConfig   `mapstructure:"logger"`
	Contact  ContactConfig  `mapstructure:"contact"`
	Terminal TerminalConfig `mapstructure:"terminal"`
}

// WindowConfig 桌面窗口配置
type WindowConfig struct {
	Width     int    `mapstructure:"width"`
	Height    int    `mapstructure:"height"`
	Title     string `mapstructure:"title"`
	Resizable bool   `mapstructure:"resizable"`
	StartPage string `mapstructure:"start_page"`
}

// FieldConfig 粒子场配置
type FieldConfig struct {
	Population int     `mapstructure:"population"`
	MinRadius  float64 `mapstructure:"min_radius"`
	MaxRadius  float64 `mapstructure:"max_radius"`
	MaxSpeed   float64 `mapstructure:"max_speed"`
	// Palettes 主题名 -> CSS 颜色列表
	Palettes map[string][]string `mapstructure:"palettes"`
}

// CursorConfig 自定义光标配置
type CursorConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// HideSystem 隐藏系统光标（只显示自定义光标）
	HideSystem bool `mapstructure:"hide_system"`
}

// ThemeConfig 主题偏好配置
type ThemeConfig struct {
	// AppName gdata 存储使用的应用名
	AppName string `mapstructure:"app_name"`
	// Default 没有保存偏好时使用的主题
	Default string `mapstructure:"default"`
}

// LoggerConfig 日志配置
type LoggerConfig struct {
	Level       string `mapstructure:"level"`
	Format      string `mapstructure:"format"`
	File        string `mapstructure:"file"`
	MaxSize     int    `mapstructure:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups"`
	MaxAge      int    `mapstructure:"max_age"`
	Compress    bool   `mapstructure:"compress"`
	ServiceName string `mapstructure:"service_name"`
}

// ContactConfig 联系表单中继配置
type ContactConfig struct {
	Endpoint    string        `mapstructure:"endpoint"`
	ServiceID   string        `mapstructure:"service_id"`
	TemplateID  string        `mapstructure:"template_id"`
	PublicKey   string        `mapstructure:"public_key"`
	Timeout     time.Duration `mapstructure:"timeout"`
	MinInterval time.Duration `mapstructure:"min_interval"`
}

// TerminalConfig 终端渲染配置
type TerminalConfig struct {
	// CellWidth/CellHeight 一个字符单元对应的虚拟像素
	CellWidth  int `mapstructure:"cell_width"`
	CellHeight int `mapstructure:"cell_height"`
	FPS        int `mapstructure:"fps"`
}

// LoadOptions 配置加载参数
type LoadOptions struct {
	// Defaults 嵌入的 YAML 默认配置，可为空
	Defaults []byte
	// File 用户配置文件路径，支持 ~ 展开；为空时跳过
	File string
}

// Load 加载配置并校验
func Load(opts LoadOptions) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)

	if len(opts.Defaults) > 0 {
		if err := v.MergeConfig(bytes.NewReader(opts.Defaults)); err != nil {
			return nil, fmt.Errorf("failed to parse embedded config: %w", err)
		}
	}

	if opts.File != "" {
		path, err := homedir.Expand(opts.File)
		if err != nil {
			return nil, fmt.Errorf("failed to expand config path %q: %w", opts.File, err)
		}
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default 返回只包含内置默认值的配置
func Default() *Config {
	cfg, err := Load(LoadOptions{})
	if err != nil {
		// 内置默认值必须合法
		panic(err)
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("window.width", 1280)
	v.SetDefault("window.height", 800)
	v.SetDefault("window.title", "Thryce")
	v.SetDefault("window.resizable", true)
	v.SetDefault("window.start_page", "/")

	v.SetDefault("field.population", 100)
	v.SetDefault("field.min_radius", 0.5)
	v.SetDefault("field.max_radius", 2.5)
	v.SetDefault("field.max_speed", 0.25)
	v.SetDefault("field.palettes", map[string][]string{
		string(types.ThemeDark):  {"rgba(255, 0, 0, 0.5)"},
		string(types.ThemeLight): {"rgba(255, 0, 0, 0.3)"},
	})

	v.SetDefault("cursor.enabled", true)
	v.SetDefault("cursor.hide_system", true)

	v.SetDefault("theme.app_name", "thryce")
	v.SetDefault("theme.default", string(types.ThemeLight))

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.file", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 28)
	v.SetDefault("logger.compress", false)
	v.SetDefault("logger.service_name", "thryce")

	v.SetDefault("contact.endpoint", "https://api.emailjs.com/api/v1.0/email/send")
	v.SetDefault("contact.service_id", "")
	v.SetDefault("contact.template_id", "")
	v.SetDefault("contact.public_key", "")
	v.SetDefault("contact.timeout", 10*time.Second)
	v.SetDefault("contact.min_interval", 30*time.Second)

	v.SetDefault("terminal.cell_width", 8)
	v.SetDefault("terminal.cell_height", 16)
	v.SetDefault("terminal.fps", 60)
}

// Validate 校验配置，返回所有问题的合并错误
func (c *Config) Validate() error {
	var errs []error

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if !strings.HasPrefix(c.Window.StartPage, "/") {
		errs = append(errs, fmt.Errorf("window.start_page must start with '/', got %q", c.Window.StartPage))
	}

	if c.Field.Population <= 0 {
		errs = append(errs, fmt.Errorf("field.population must be positive, got %d", c.Field.Population))
	}
	if c.Field.MinRadius < 0 || c.Field.MaxRadius <= c.Field.MinRadius {
		errs = append(errs, fmt.Errorf("field radius range [%g, %g) is invalid", c.Field.MinRadius, c.Field.MaxRadius))
	}
	if c.Field.MaxSpeed < 0 {
		errs = append(errs, fmt.Errorf("field.max_speed must not be negative, got %g", c.Field.MaxSpeed))
	}
	if _, err := c.Field.ParsePalettes(); err != nil {
		errs = append(errs, err)
	}

	if _, err := types.ParseTheme(c.Theme.Default); err != nil {
		errs = append(errs, fmt.Errorf("theme.default: %w", err))
	}
	if c.Theme.AppName == "" {
		errs = append(errs, errors.New("theme.app_name must not be empty"))
	}

	switch strings.ToLower(c.Logger.Format) {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("logger.format must be console or json, got %q", c.Logger.Format))
	}

	if c.Contact.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("contact.timeout must be positive, got %s", c.Contact.Timeout))
	}
	if c.Contact.MinInterval < 0 {
		errs = append(errs, fmt.Errorf("contact.min_interval must not be negative, got %s", c.Contact.MinInterval))
	}

	if c.Terminal.CellWidth <= 0 || c.Terminal.CellHeight <= 0 {
		errs = append(errs, fmt.Errorf("terminal cell size must be positive, got %dx%d", c.Terminal.CellWidth, c.Terminal.CellHeight))
	}
	if c.Terminal.FPS <= 0 {
		errs = append(errs, fmt.Errorf("terminal.fps must be positive, got %d", c.Terminal.FPS))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// DefaultTheme 返回解析后的默认主题（配置已校验时不会失败）
func (c *Config) DefaultTheme() types.Theme {
	theme, err := types.ParseTheme(c.Theme.Default)
	if err != nil {
		return types.ThemeLight
	}
	return theme
}

// ParsePalettes 把配置中的 CSS 颜色解析为按主题索引的颜色列表
// 未知主题名和空列表都是错误
func (f FieldConfig) ParsePalettes() (map[types.Theme][]color.RGBA, error) {
	out := make(map[types.Theme][]color.RGBA, len(f.Palettes))
	for name, colors := range f.Palettes {
		theme, err := types.ParseTheme(name)
		if err != nil {
			return nil, fmt.Errorf("field.palettes: %w", err)
		}
		if len(colors) == 0 {
			return nil, fmt.Errorf("field.palettes.%s must not be empty", name)
		}
		parsed := make([]color.RGBA, 0, len(colors))
		for _, c := range colors {
			clr, err := types.ParseCSSColor(c)
			if err != nil {
				return nil, fmt.Errorf("field.palettes.%s: %w", name, err)
			}
			parsed = append(parsed, clr)
		}
		out[theme] = parsed
	}
	return out, nil
}
