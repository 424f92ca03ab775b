package logger

import (
	"log"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var once sync.Once
var appLogger *zap.Logger
var journalLogger *zap.Logger

type Config struct {
	Filename   string
	Level      string
	MaxSize    int // megabytes
	MaxBackups int
	MaxAge     int // days
	Compress   bool
	Console    bool
}

// DefaultConfig is used for the process logger until Init is called.
var DefaultConfig = Config{
	Filename:   "logs/app.log",
	Level:      "info",
	MaxSize:    5,
	MaxBackups: 10,
	MaxAge:     14,
	Compress:   true,
	Console:    true,
}

// Get returns the main application logger
func Get() *zap.Logger {
	once.Do(func() { initLoggers(DefaultConfig) })
	return appLogger
}

// GetJournalLogger returns the logger recording every persisted trade batch
func GetJournalLogger() *zap.Logger {
	once.Do(func() { initLoggers(DefaultConfig) })
	return journalLogger
}

// Init builds the process loggers from config. Only the first call to Init,
// Get or GetJournalLogger has an effect.
func Init(config Config) {
	once.Do(func() { initLoggers(config) })
}

// New builds a logger writing JSON to a rotated file and, when
// config.Console is set, colored text to stdout. LOG_LEVEL overrides
// config.Level.
func New(config Config) *zap.Logger {
	fileHandler := &lumberjack.Logger{
		Filename:   config.Filename,
		MaxSize:    config.MaxSize,
		MaxBackups: config.MaxBackups,
		MaxAge:     config.MaxAge,
		Compress:   config.Compress,
	}

	level := zap.InfoLevel
	if parsedLevel, err := zapcore.ParseLevel(config.Level); err == nil {
		level = parsedLevel
	}
	if levelEnv := os.Getenv("LOG_LEVEL"); levelEnv != "" {
		if parsedLevel, err := zapcore.ParseLevel(levelEnv); err == nil {
			level = parsedLevel
		}
	}
	logLevel := zap.NewAtomicLevelAt(level)

	productionCfg := zap.NewProductionEncoderConfig()
	productionCfg.TimeKey = "timestamp"
	productionCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	developmentCfg := zap.NewDevelopmentEncoderConfig()
	developmentCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

	consoleEncoder := zapcore.NewConsoleEncoder(developmentCfg)
	fileEncoder := zapcore.NewJSONEncoder(productionCfg)

	var cores []zapcore.Core
	if config.Console {
		cores = append(cores, zapcore.NewCore(consoleEncoder, zapcore.AddSync(os.Stdout), logLevel))
	}
	cores = append(cores, zapcore.NewCore(fileEncoder, zapcore.AddSync(fileHandler), logLevel))

	return zap.New(zapcore.NewTee(cores...))
}

func initLoggers(appConfig Config) {
	if appConfig.Filename == "" {
		log.Println("no log file configured, using " + DefaultConfig.Filename)
		appConfig.Filename = DefaultConfig.Filename
	}

	journalConfig := appConfig
	journalConfig.Filename = "logs/trade_journal.log"
	journalConfig.Console = false

	appLogger = New(appConfig)
	journalLogger = New(journalConfig)
}
