package telemetry

import "testing"

func TestDefaultLoggerDebugToggle(t *testing.T) {
	l := NewDefaultLogger("test", false)
	if l.DebugEnabled() {
		t.Fatal("debug should start disabled")
	}
	l.SetDebug(true)
	if !l.DebugEnabled() {
		t.Fatal("SetDebug(true) should enable debug")
	}
	l.Debugf("message %d", 1)
	l.Infof("message %d", 2)
	l.Warnf("message %d", 3)
	l.Errorf("message %d", 4)
}

func TestNopLoggerDiscardsEverything(t *testing.T) {
	l := NewNopLogger()
	if l.DebugEnabled() {
		t.Fatal("nop logger must report debug disabled")
	}
	l.SetDebug(true)
	if l.DebugEnabled() {
		t.Fatal("nop logger must ignore SetDebug")
	}
	l.Debugf("x")
	l.Infof("x")
	l.Warnf("x")
	l.Errorf("x")
}
