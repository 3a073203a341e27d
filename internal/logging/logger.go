// SPDX-License-Identifier: EPL-2.0

// Package logging configures logrus for the command line tools.
package logging

import (
	"io"

	"github.com/sirupsen/logrus"
)

const timestampFormat = "2006-01-02 15:04:05.000 Z07:00"

type utcFormatter struct {
	logrus.Formatter
}

func (f utcFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	entry.Time = entry.Time.UTC()
	return f.Formatter.Format(entry)
}

// Configure sets the level, formatter and output of logger. An empty level
// means "info".
func Configure(logger *logrus.Logger, out io.Writer, level string, json, colors bool) error {
	if level == "" {
		level = "info"
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	logger.SetLevel(lvl)

	var lineFormatter logrus.Formatter
	if json {
		lineFormatter = &logrus.JSONFormatter{
			TimestampFormat: timestampFormat,
		}
	} else {
		lineFormatter = &logrus.TextFormatter{
			TimestampFormat:  timestampFormat,
			FullTimestamp:    true,
			ForceColors:      colors,
			DisableColors:    !colors,
			QuoteEmptyFields: true,
		}
	}
	logger.SetFormatter(utcFormatter{lineFormatter})
	logger.SetOutput(out)

	return nil
}
