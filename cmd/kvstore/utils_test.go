package main

import (
	"context"
	"testing"
	"time"
)

type testLogger struct {
	t *testing.T
}

func (l *testLogger) Debug(level int, format string, args ...interface{}) {
	l.t.Logf("debug %d: "+format, append([]interface{}{level}, args...)...)
}

func (l *testLogger) Info(format string, args ...interface{}) {
	l.t.Logf("info: "+format, args...)
}

func (l *testLogger) Error(format string, args ...interface{}) {
	l.t.Logf("error: "+format, args...)
}

func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)

	return ctx
}
