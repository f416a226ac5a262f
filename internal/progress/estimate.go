package progress

import (
	"strconv"
	"strings"
)

// Messages emitted by a comparison run, in order.
const (
	MsgStarting      = "Starting directory scan..."
	MsgScanningLeft  = "Scanning left directory..."
	MsgScanningRight = "Scanning right directory..."
	MsgProcessing    = "Processing paths..."
	MsgComplete      = "Complete!"
)

// Scanning formats the periodic scan counter message.
func Scanning(n int) string {
	return "Scanning... " + strconv.Itoa(n) + " files"
}

// FilesToCompare formats the union size message.
func FilesToCompare(n int) string {
	return "Files to compare: " + strconv.Itoa(n)
}

// Comparing formats the content comparison counter message.
func Comparing(done, total int) string {
	return "Comparing... " + strconv.Itoa(done) + "/" + strconv.Itoa(total)
}

// Paths formats the tree building counter message.
func Paths(done, total int) string {
	return "Progress: " + strconv.Itoa(done) + "/" + strconv.Itoa(total)
}

// Estimate derives a completion fraction in [0,1] from a progress message.
// The value is a display heuristic only.
func Estimate(msg string) float64 {
	switch {
	case strings.Contains(msg, "Starting"):
		return 0
	case strings.Contains(msg, "Scanning left"):
		return 0.05
	case strings.Contains(msg, "Scanning right"):
		return 0.15
	case strings.Contains(msg, "Scanning..."):
		rest := msg[strings.Index(msg, "Scanning...")+len("Scanning..."):]
		count, ok := number(strings.TrimSuffix(strings.TrimSpace(rest), " files"))
		if !ok {
			return 0.1
		}
		return min(count/1000, 0.2) + 0.05
	case strings.Contains(msg, "Files to compare:"):
		return 0.25
	case strings.Contains(msg, "Progress:"):
		done, total, ok := ratio(msg[strings.Index(msg, "Progress:")+len("Progress:"):])
		if !ok {
			return 0.5
		}
		return 0.25 + done/total*0.75
	case strings.Contains(msg, "Comparing..."):
		done, total, ok := ratio(msg[strings.Index(msg, "Comparing...")+len("Comparing..."):])
		if !ok {
			return 0.5
		}
		return 0.25 + done/total*0.7
	case strings.Contains(msg, "Complete"):
		return 1
	default:
		return 0.5
	}
}

// Tracker estimates the fractions of one run's messages without ever going
// backwards. The zero value starts at 0.
type Tracker struct {
	peak float64
}

// Next returns the larger of Estimate(msg) and every fraction returned before.
func (t *Tracker) Next(msg string) float64 {
	t.peak = max(t.peak, Estimate(msg))
	return t.peak
}

func number(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return v, err == nil
}

// ratio parses "i/N" and rejects a zero denominator.
func ratio(s string) (float64, float64, bool) {
	a, b, found := strings.Cut(s, "/")
	if !found {
		return 0, 0, false
	}
	done, ok := number(a)
	if !ok {
		return 0, 0, false
	}
	total, ok := number(b)
	if !ok || total == 0 {
		return 0, 0, false
	}
	return done, total, true
}
