package logging

import "strings"

// ProgressSampler suppresses repetitive progress logs while still emitting
// when the stage changes or the percentage crosses a bucket boundary.
type ProgressSampler struct {
	bucketSize float64
	lastStage  string
	lastBucket int
}

// NewProgressSampler constructs a sampler with the given bucket size in
// percent (default 10).
func NewProgressSampler(bucketSize float64) *ProgressSampler {
	if bucketSize <= 0 {
		bucketSize = 10
	}
	return &ProgressSampler{bucketSize: bucketSize, lastBucket: -1}
}

// ShouldLog reports whether a progress event should be logged. A negative
// percent means unknown and only stage changes emit.
func (s *ProgressSampler) ShouldLog(percent float64, stage string) bool {
	if s == nil {
		return true
	}
	stage = strings.TrimSpace(stage)
	emit := false
	if stage != "" && stage != s.lastStage {
		s.lastStage = stage
		s.lastBucket = -1
		emit = true
	}
	if percent >= 0 {
		if percent > 100 {
			percent = 100
		}
		bucket := int(percent / s.bucketSize)
		if bucket > s.lastBucket {
			s.lastBucket = bucket
			emit = true
		}
	}
	return emit
}

// ShouldLogCount is ShouldLog for a done/total counter.
func (s *ProgressSampler) ShouldLogCount(done, total int, stage string) bool {
	if total <= 0 {
		return s.ShouldLog(-1, stage)
	}
	return s.ShouldLog(float64(done)*100/float64(total), stage)
}

// Reset clears the sampler state.
func (s *ProgressSampler) Reset() {
	if s == nil {
		return
	}
	s.lastStage = ""
	s.lastBucket = -1
}
