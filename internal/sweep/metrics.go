// internal/sweep/metrics.go
package sweep

import (
	"fmt"
	"strings"
)

// NotAvailable is written for a metric the benchmark did not report.
const NotAvailable = "N/A"

// Metric keys emitted by ollama-benchmark.
const (
	MetricDurationMean   = "duration_mean"
	MetricDurationPerc95 = "duration_perc95"
	MetricRealDuration   = "real_duration"
	MetricRateMean       = "rate_mean"
	MetricErrors         = "errors"
)

// Metrics is the raw key/value mapping scraped from benchmark stdout.
type Metrics map[string]string

// MissingMetricError reports an expected metric absent from the output.
type MissingMetricError struct {
	Key string
}

func (e *MissingMetricError) Error() string {
	return fmt.Sprintf("metric %q missing from benchmark output", e.Key)
}

// ParseMetrics scrapes every line containing a colon into a Metrics map.
// The first colon splits key from value and both sides are trimmed.
// A later line with the same key wins.
func ParseMetrics(output string) Metrics {
	m := Metrics{}
	for _, line := range splitLines(output) {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		m[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return m
}

// Get returns the value for key or fallback when absent.
func (m Metrics) Get(key, fallback string) string {
	if v, ok := m[key]; ok {
		return v
	}
	return fallback
}

// Lookup returns the value for key or a *MissingMetricError.
func (m Metrics) Lookup(key string) (string, error) {
	v, ok := m[key]
	if !ok {
		return "", &MissingMetricError{Key: key}
	}
	return v, nil
}

// splitLines breaks s on \n, \r\n and \r without yielding a trailing empty line.
func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
