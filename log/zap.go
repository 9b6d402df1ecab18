// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package log

import "go.uber.org/zap"

// zapLogger adapts *zap.SugaredLogger to the Logger interface.
type zapLogger struct {
	sugar *zap.SugaredLogger
}

// NewZap wraps an existing *zap.Logger as a Logger.
func NewZap(l *zap.Logger) Logger {
	return &zapLogger{sugar: l.Sugar()}
}

// NewProduction returns a Logger backed by zap's production config.
func NewProduction() (Logger, error) {
	l, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return NewZap(l), nil
}

func (z *zapLogger) Debug(msg string, fields ...interface{}) {
	z.sugar.Debugw(msg, fields...)
}

func (z *zapLogger) Info(msg string, fields ...interface{}) {
	z.sugar.Infow(msg, fields...)
}

func (z *zapLogger) Warn(msg string, fields ...interface{}) {
	z.sugar.Warnw(msg, fields...)
}

func (z *zapLogger) Error(msg string, fields ...interface{}) {
	z.sugar.Errorw(msg, fields...)
}

func (z *zapLogger) With(fields ...interface{}) Logger {
	return &zapLogger{sugar: z.sugar.With(fields...)}
}
