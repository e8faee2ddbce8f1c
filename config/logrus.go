package config

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var (
	logg *logrus.Logger
)

func GetLogger() *logrus.Logger {
	return logg
}

func init() {
	logg = logrus.New()
	logg.SetFormatter(&logrus.JSONFormatter{})
	logg.SetLevel(logLevelFromEnv())
	logg.SetOutput(os.Stdout)
}

func logLevelFromEnv() logrus.Level {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL"))) {
	case "debug":
		return logrus.DebugLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

func LogError(logger *logrus.Logger, moduleName string, funcName string, context string, data any, err error) {
	if data != nil {
		logger.WithFields(logrus.Fields{
			"module":   moduleName,
			"funcName": funcName,
			"context":  context,
			"data":     data,
		}).Error(err.Error())
	} else {
		logger.WithFields(logrus.Fields{
			"module":   moduleName,
			"funcName": funcName,
			"context":  context,
		}).Error(err.Error())
	}
}

func LogWarn(logger *logrus.Logger, moduleName string, funcName string, context string, data any, msg string) {
	logger.WithFields(logrus.Fields{
		"module":   moduleName,
		"funcName": funcName,
		"context":  context,
		"data":     data,
	}).Warn(msg)
}

func LogInfo(logger *logrus.Logger, moduleName string, funcName string, context string, data any, msg string) {
	logger.WithFields(logrus.Fields{
		"module":   moduleName,
		"funcName": funcName,
		"context":  context,
		"data":     data,
	}).Info(msg)
}
