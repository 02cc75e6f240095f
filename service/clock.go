package service

import "time"

// SystemClock reads the wall clock in UTC
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// noopMetrics is used when no metrics recorder is configured
type noopMetrics struct{}

func (noopMetrics) RecordBidOutcome(string) {}
func (noopMetrics) RecordBidRetry() {}
func (noopMetrics) RecordNotification(string) {}
func (noopMetrics) RecordSweep(int, time.Duration) {}
