// Package observability 负责全局日志的初始化
//
// 所有组件通过 Named 子日志输出，例如 "thryce.ParticleField"。
// 控制台输出可选 console/json 格式；配置了日志文件时额外写入 JSON 并由 lumberjack 轮转。
package observability

import (
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/thryce/site/pkg/config"
)

var (
	globalLogger atomic.Pointer[zap.Logger]
	once         sync.Once
	restoreStd   func()
)

// New 按配置构建日志（不修改全局状态）
//
// 参数：
//   - cfg: 日志配置
//   - console: 控制台输出，nil 时不输出到控制台
func New(cfg config.LoggerConfig, console zapcore.WriteSyncer) *zap.Logger {
	level := zap.NewAtomicLevel()
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level.SetLevel(zap.InfoLevel)
	}

	var cores []zapcore.Core
	if console != nil {
		cores = append(cores, zapcore.NewCore(encoder(cfg.Format), console, level))
	}
	if cfg.File != "" {
		// 文件日志始终是 JSON
		fileWriter := zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		})
		cores = append(cores, zapcore.NewCore(encoder("json"), fileWriter, level))
	}
	if len(cores) == 0 {
		return zap.NewNop()
	}

	logger := zap.New(zapcore.NewTee(cores...), zap.AddStacktrace(zap.ErrorLevel))
	if cfg.ServiceName != "" {
		logger = logger.Named(cfg.ServiceName)
	}
	return logger
}

// Initialize 初始化全局日志，只生效一次
// 同时接管标准库 log 的输出（第三方库的 log.Printf 也会进入 zap）
func Initialize(cfg config.LoggerConfig, console zapcore.WriteSyncer) *zap.Logger {
	once.Do(func() {
		logger := New(cfg, console)
		globalLogger.Store(logger)
		zap.ReplaceGlobals(logger)
		restoreStd = zap.RedirectStdLog(logger)
	})
	return GetLogger()
}

// InitializeLogger 初始化全局日志，控制台输出到 stderr
// verbose 为 false 时控制台静默（只保留文件日志）
func InitializeLogger(cfg config.LoggerConfig, verbose bool) *zap.Logger {
	var console zapcore.WriteSyncer
	if verbose {
		console = zapcore.Lock(os.Stderr)
	}
	return Initialize(cfg, console)
}

// GetLogger 返回全局日志；尚未初始化时返回 Nop 日志
func GetLogger() *zap.Logger {
	if logger := globalLogger.Load(); logger != nil {
		return logger
	}
	return zap.NewNop()
}

// Sync 刷新缓冲的日志
func Sync() {
	if logger := globalLogger.Load(); logger != nil {
		_ = logger.Sync()
	}
}

// ResetForTest 清除全局日志状态，仅供测试使用
func ResetForTest() {
	if restoreStd != nil {
		restoreStd()
		restoreStd = nil
	}
	globalLogger.Store(nil)
	once = sync.Once{}
}

// WriterSyncer 把任意 io.Writer 包装为控制台输出
func WriterSyncer(w io.Writer) zapcore.WriteSyncer {
	return zapcore.AddSync(w)
}

func encoder(format string) zapcore.Encoder {
	ec := zap.NewProductionEncoderConfig()
	ec.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02T15:04:05.000Z07:00")

	if strings.EqualFold(format, "json") {
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
		return zapcore.NewJSONEncoder(ec)
	}

	ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
	ec.EncodeName = func(name string, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString("[" + name + "]")
	}
	return zapcore.NewConsoleEncoder(ec)
}
