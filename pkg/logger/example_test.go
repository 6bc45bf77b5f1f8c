package logger_test

import (
	"errors"

	"github.com/wonny/dartfin/pkg/config"
	"github.com/wonny/dartfin/pkg/logger"
)

// Example_basic demonstrates basic logger usage
func Example_basic() {
	cfg := &config.Config{
		Env:       "development",
		LogLevel:  "info",
		LogFormat: "console",
	}

	log := logger.New(cfg)

	log.Debug("This won't appear (level is info)")
	log.Info("Registry loaded")
	log.Infof("Loaded %d companies", 98000)
}

// Example_withFields demonstrates structured logging with fields
func Example_withFields() {
	cfg := &config.Config{
		Env:       "production",
		LogLevel:  "info",
		LogFormat: "json",
	}

	log := logger.New(cfg)

	log.WithFields(map[string]interface{}{
		"corp_code":  "00126380",
		"bsns_year":  "2023",
		"reprt_code": "11011",
	}).Info("Financial statements fetched")

	log.WithError(errors.New("zip: not a valid zip file")).Error("Registry rebuild failed")
}
