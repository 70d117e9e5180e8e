/*
Copyright Identbase Technologies. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package log

import (
	"github.com/sirupsen/logrus"
)

// defProvider is the default logger provider, backed by logrus.
type defProvider struct {
	root *logrus.Logger
}

func newDefProvider() *defProvider {
	root := logrus.New()
	root.SetLevel(logrus.InfoLevel)

	return &defProvider{root: root}
}

// GetLogger returns a module scoped logrus entry.
func (p *defProvider) GetLogger(module string) Logger {
	return &defLog{entry: p.root.WithField("module", module)}
}

// SetDefaultLevel sets the level of the default provider. It has no effect once
// a custom provider has been installed through Initialize.
func SetDefaultLevel(level Level) {
	loggerProviderMutex.Lock()
	defer loggerProviderMutex.Unlock()

	if loggerProviderInstance == nil {
		loggerProviderInstance = newDefProvider()
	}

	if p, ok := loggerProviderInstance.(*defProvider); ok {
		p.root.SetLevel(logrusLevel(level))
	}
}

func logrusLevel(level Level) logrus.Level {
	switch level {
	case CRITICAL:
		return logrus.FatalLevel
	case ERROR:
		return logrus.ErrorLevel
	case WARNING:
		return logrus.WarnLevel
	case DEBUG:
		return logrus.DebugLevel
	default:
		return logrus.InfoLevel
	}
}

type defLog struct {
	entry *logrus.Entry
}

func (l *defLog) Panicf(msg string, args ...interface{}) {
	l.entry.Panicf(msg, args...)
}

func (l *defLog) Fatalf(msg string, args ...interface{}) {
	l.entry.Fatalf(msg, args...)
}

func (l *defLog) Errorf(msg string, args ...interface{}) {
	l.entry.Errorf(msg, args...)
}

func (l *defLog) Warnf(msg string, args ...interface{}) {
	l.entry.Warnf(msg, args...)
}

func (l *defLog) Infof(msg string, args ...interface{}) {
	l.entry.Infof(msg, args...)
}

func (l *defLog) Debugf(msg string, args ...interface{}) {
	l.entry.Debugf(msg, args...)
}
