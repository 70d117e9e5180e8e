/*
Copyright Identbase Technologies. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package log

import (
	"sync"
)

// Level is a log level for a logging message.
type Level int

// Log levels.
const (
	CRITICAL Level = iota
	ERROR
	WARNING
	INFO
	DEBUG
)

// Logger represents a general-purpose leveled logger.
type Logger interface {
	Panicf(msg string, args ...interface{})
	Fatalf(msg string, args ...interface{})
	Errorf(msg string, args ...interface{})
	Warnf(msg string, args ...interface{})
	Infof(msg string, args ...interface{})
	Debugf(msg string, args ...interface{})
}

// LoggerProvider is a factory for moduled loggers.
type LoggerProvider interface {
	GetLogger(module string) Logger
}

//nolint:gochecknoglobals
var (
	loggerProviderInstance LoggerProvider
	loggerProviderMutex    sync.RWMutex
)

// Log is an implementation of the Logger interface.
// It encapsulates the default or a custom logger to provide module based logging.
type Log struct {
	instance Logger
	module   string
	once     sync.Once
}

// New creates and returns a Logger implementation based on the given module name.
// note: the underlying logger instance is lazy initialized on first use.
// To use your own logger implementation provide a logger provider in 'Initialize()' before logging any line.
// If 'Initialize()' is not called before logging any line then the default logrus based implementation is used.
func New(module string) *Log {
	return &Log{module: module}
}

// Fatalf calls Fatalf function of the underlying logger.
func (l *Log) Fatalf(msg string, args ...interface{}) {
	l.logger().Fatalf(msg, args...)
}

// Panicf calls Panicf function of the underlying logger.
func (l *Log) Panicf(msg string, args ...interface{}) {
	l.logger().Panicf(msg, args...)
}

// Debugf calls Debugf function of the underlying logger.
func (l *Log) Debugf(msg string, args ...interface{}) {
	l.logger().Debugf(msg, args...)
}

// Infof calls Infof function of the underlying logger.
func (l *Log) Infof(msg string, args ...interface{}) {
	l.logger().Infof(msg, args...)
}

// Warnf calls Warnf function of the underlying logger.
func (l *Log) Warnf(msg string, args ...interface{}) {
	l.logger().Warnf(msg, args...)
}

// Errorf calls Errorf function of the underlying logger.
func (l *Log) Errorf(msg string, args ...interface{}) {
	l.logger().Errorf(msg, args...)
}

func (l *Log) logger() Logger {
	l.once.Do(func() {
		l.instance = loggerProvider().GetLogger(l.module)
	})

	return l.instance
}

// Initialize sets a custom logger provider. Loggers already handed out keep the
// provider they were first used with.
func Initialize(p LoggerProvider) {
	loggerProviderMutex.Lock()
	defer loggerProviderMutex.Unlock()

	loggerProviderInstance = p
}

func loggerProvider() LoggerProvider {
	loggerProviderMutex.Lock()
	defer loggerProviderMutex.Unlock()

	if loggerProviderInstance == nil {
		loggerProviderInstance = newDefProvider()
	}

	return loggerProviderInstance
}
