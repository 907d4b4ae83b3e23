// internal/utils/logger/config.go
package logger

import (
	"io"
	"os"
)

type Config struct {
	LogFile     string
	MaxSize     int  // мегабайты
	MaxAge      int  // дни
	MaxBackups  int  // количество файлов
	Compress    bool // сжимать ротированные файлы
	Development bool

	// Console получает человекочитаемые логи; по умолчанию os.Stderr
	Console io.Writer
}

// DefaultConfig возвращает конфигурацию по умолчанию
func DefaultConfig() *Config {
	return &Config{
		LogFile:     "solana-lock.log",
		MaxSize:     100,  // 100 MB
		MaxAge:      7,    // 7 дней
		MaxBackups:  3,    // 3 файла
		Compress:    true, // сжимать старые логи
		Development: false,
	}
}

func (c *Config) console() io.Writer {
	if c.Console != nil {
		return c.Console
	}
	return os.Stderr
}
