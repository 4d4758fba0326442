package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log является глобальным экземпляром логгера для всего приложения.
// Создается сразу с дефолтами, чтобы пакеты (и их тесты) могли писать
// в него до вызова Init.
var Log = logrus.New()

// Init настраивает глобальный логгер из конфига.
// Вызывается один раз при старте приложения в main.go.
// Переменные окружения LOG_LEVEL / LOG_FORMAT имеют приоритет над конфигом.
func Init(levelName, format string) {
	// 1. Уровень логирования
	if env, ok := os.LookupEnv("LOG_LEVEL"); ok {
		levelName = env
	}
	level, err := logrus.ParseLevel(levelName)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	// 2. Форматтер.
	// "json" - для продакшена и сбора логов.
	// "text" - для удобной разработки.
	if env := os.Getenv("LOG_FORMAT"); env != "" {
		format = env
	}
	if strings.ToLower(format) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	}

	Log.SetOutput(os.Stdout)
}
