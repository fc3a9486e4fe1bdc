package dl

import (
	"sync/atomic"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// countingHook records fatal entries and lets execution continue.
type countingHook struct {
	calls atomic.Int32
}

func (h *countingHook) OnWrite(*zapcore.CheckedEntry, []zapcore.Field) {
	h.calls.Add(1)
}

func observedLogger(hook zapcore.CheckWriteHook) (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core, zap.WithFatalHook(hook)), logs
}

// systemLibrary returns the first candidate that loads on this host.
func systemLibrary(t *testing.T) string {
	t.Helper()

	hook := &countingHook{}
	logger, _ := observedLogger(hook)
	for _, candidate := range systemLibraryCandidates {
		l := New(candidate, WithLogger(logger))
		ok := l.handle != 0
		l.Close()
		if ok {
			return candidate
		}
	}
	t.Skipf("no system library could be loaded from %v", systemLibraryCandidates)
	return ""
}
