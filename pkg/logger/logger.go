package logger

import (
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Пути к файлам логов по умолчанию.
// Терминал занят интерфейсом, поэтому пишем только в файлы.
const (
	DefaultReadablePath = "benzboard.log"
	DefaultJSONPath     = "benzboard.json.log"
)

// Options настройки логгера
type Options struct {
	ReadablePath string
	JSONPath     string
	Level        string
	// Truncate очищает файлы при запуске
	Truncate bool
}

// Глобальный экземпляр логгера
var (
	globalLogger *zap.Logger
	// globalFiles файлы текущего логгера, закрываются при замене
	globalFiles []*os.File
	mu          sync.Mutex
)

// Init инициализирует глобальный логгер с настройками по умолчанию
func Init() {
	InitWith(Options{Truncate: true})
}

// InitWith инициализирует (или переинициализирует) глобальный логгер
func InitWith(opts Options) {
	l, files, err := newLogger(opts)
	if err != nil {
		// Не смогли открыть файлы - лучше молчать, чем ломать экран
		l = zap.NewNop()
	}
	swap(l, files)
}

// Set подменяет глобальный логгер (используется в тестах)
func Set(l *zap.Logger) {
	swap(l, nil)
}

// swap ставит новый логгер, сбрасывает и закрывает файлы старого
func swap(l *zap.Logger, files []*os.File) {
	mu.Lock()
	old, oldFiles := globalLogger, globalFiles
	globalLogger, globalFiles = l, files
	mu.Unlock()

	if old != nil {
		_ = old.Sync()
	}
	for _, f := range oldFiles {
		_ = f.Close()
	}
}

// GetLogger возвращает глобальный экземпляр логгера
func GetLogger() *zap.Logger {
	mu.Lock()
	l := globalLogger
	mu.Unlock()
	if l == nil {
		return zap.NewNop()
	}
	return l
}

// Вспомогательные функции для удобства использования
func Info(msg string, fields ...zap.Field) {
	GetLogger().Info(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	GetLogger().Error(msg, fields...)
}

func Debug(msg string, fields ...zap.Field) {
	GetLogger().Debug(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	GetLogger().Warn(msg, fields...)
}

func Fatal(msg string, fields ...zap.Field) {
	GetLogger().Fatal(msg, fields...)
}

// Sync сбрасывает буферы логгера
func Sync() {
	_ = GetLogger().Sync()
}

func newLogger(opts Options) (*zap.Logger, []*os.File, error) {
	if opts.ReadablePath == "" {
		opts.ReadablePath = DefaultReadablePath
	}
	if opts.JSONPath == "" {
		opts.JSONPath = DefaultJSONPath
	}

	level := zapcore.DebugLevel
	if opts.Level != "" {
		if err := level.Set(opts.Level); err != nil {
			level = zapcore.DebugLevel
		}
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("02.01.2006 - 15:04:05.000000000Z07:00")
	encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	// В читаемом файле уровни цветные, в JSON - нет
	readableConfig := encoderConfig
	readableConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	jsonConfig := encoderConfig
	jsonConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	readableFile, err := openLogFile(opts.ReadablePath, opts.Truncate)
	if err != nil {
		return nil, nil, err
	}
	jsonFile, err := openLogFile(opts.JSONPath, opts.Truncate)
	if err != nil {
		readableFile.Close()
		return nil, nil, err
	}

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewConsoleEncoder(readableConfig), zapcore.AddSync(readableFile), level),
		zapcore.NewCore(zapcore.NewJSONEncoder(jsonConfig), zapcore.AddSync(jsonFile), level),
	)

	return zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)), []*os.File{readableFile, jsonFile}, nil
}

func openLogFile(path string, truncate bool) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	flags := os.O_APPEND | os.O_CREATE | os.O_WRONLY
	if truncate {
		flags |= os.O_TRUNC
	}
	return os.OpenFile(path, flags, 0644)
}
