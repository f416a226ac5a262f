package progress

import (
	"bytes"
	"strings"
	"testing"
)

func TestEstimate(t *testing.T) {
	tests := []struct {
		msg  string
		want float64
	}{
		{MsgStarting, 0},
		{MsgScanningLeft, 0.05},
		{MsgScanningRight, 0.15},
		{Scanning(100), 0.15},
		{Scanning(5000), 0.25},
		{"Scanning... many files", 0.1},
		{FilesToCompare(10), 0.25},
		{Paths(5, 10), 0.625},
		{Paths(10, 10), 1},
		{Paths(1, 0), 0.5},
		{Comparing(50, 100), 0.6},
		{"Comparing... x/y", 0.5},
		{MsgProcessing, 0.5},
		{MsgComplete, 1},
		{"something else", 0.5},
	}

	for _, tt := range tests {
		got := Estimate(tt.msg)
		if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("Estimate(%q) = %v, want %v", tt.msg, got, tt.want)
		}
	}
}

func TestBar_RendersMessage(t *testing.T) {
	var buf bytes.Buffer
	bar := New(&buf)

	bar.Report(MsgScanningLeft)
	bar.Finish()

	out := buf.String()
	if !strings.Contains(out, MsgScanningLeft) {
		t.Errorf("Expected output to contain %q, got %q", MsgScanningLeft, out)
	}
	if !strings.Contains(out, "100%") {
		t.Errorf("Expected finished bar at 100%%, got %q", out)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Error("Finish should end the line")
	}
}

func TestBar_IgnoresUpdatesAfterFinish(t *testing.T) {
	var buf bytes.Buffer
	bar := New(&buf)
	bar.Finish()
	n := buf.Len()

	bar.Update("late", 1)
	bar.Finish()

	if buf.Len() != n {
		t.Errorf("Expected no output after Finish, got %q", buf.String()[n:])
	}
}

func TestTracker_NeverGoesBackwards(t *testing.T) {
	var tr Tracker
	steps := []struct {
		msg  string
		want float64
	}{
		{MsgScanningRight, 0.15},
		{Scanning(50), 0.15},
		{Scanning(150), 0.2},
		{Comparing(250, 250), 0.95},
		{Paths(10, 250), 0.95},
		{Paths(250, 250), 1},
	}

	for _, s := range steps {
		got := tr.Next(s.msg)
		if diff := got - s.want; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("Next(%q) = %v, want %v", s.msg, got, s.want)
		}
	}
}

func TestBar_NeverShrinks(t *testing.T) {
	var buf bytes.Buffer
	bar := New(&buf)

	bar.Report(Comparing(250, 250))
	bar.Report(Paths(10, 250))

	if bar.fraction < 0.95 {
		t.Errorf("Expected fraction to stay at 0.95, got %v", bar.fraction)
	}
	if bar.message != Paths(10, 250) {
		t.Errorf("Expected latest message, got %q", bar.message)
	}
}
