package log

import (
	"testing"

	"go.uber.org/zap"
)

func TestSetDebug(t *testing.T) {
	defer SetDebug(false)

	if L.Core().Enabled(zap.DebugLevel) {
		t.Fatalf("debug should be disabled by default")
	}
	SetDebug(true)
	if !L.Core().Enabled(zap.DebugLevel) {
		t.Fatalf("debug should be enabled after SetDebug(true)")
	}
}
