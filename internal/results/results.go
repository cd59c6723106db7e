package results

import (
	"time"
)

// InputResult tallies the work done on one input.
type InputResult struct {
	Name      string
	Documents int
	Roots     int
	Records   int
	Failures  int
	Duration  time.Duration
	Error     error
}

type InputResultBuilder struct {
	name      string
	documents int
	roots     int
	records   int
	failures  int
	duration  time.Duration
	err       error
}

func NewInputResultBuilder(name string) *InputResultBuilder {
	return &InputResultBuilder{
		name: name,
	}
}

func (b *InputResultBuilder) AddDocument() *InputResultBuilder {
	b.documents++
	return b
}

func (b *InputResultBuilder) AddRoot() *InputResultBuilder {
	b.roots++
	return b
}

func (b *InputResultBuilder) AddRecord() *InputResultBuilder {
	b.records++
	return b
}

func (b *InputResultBuilder) AddFailure() *InputResultBuilder {
	b.failures++
	return b
}

func (b *InputResultBuilder) WithDuration(duration time.Duration) *InputResultBuilder {
	b.duration = duration
	return b
}

func (b *InputResultBuilder) WithError(err error) *InputResultBuilder {
	b.err = err
	return b
}

func (b *InputResultBuilder) Build() InputResult {
	return InputResult{
		Name:      b.name,
		Documents: b.documents,
		Roots:     b.roots,
		Records:   b.records,
		Failures:  b.failures,
		Duration:  b.duration,
		Error:     b.err,
	}
}

// Summary aggregates the results of every input in a run.
type Summary struct {
	InputResults  []InputResult
	Inputs        int
	FailedInputs  int
	Documents     int
	Roots         int
	Records       int
	Failures      int
	TotalDuration time.Duration
}

func NewSummary(expectedInputs int) *Summary {
	return &Summary{
		InputResults: make([]InputResult, 0, expectedInputs),
	}
}

func (s *Summary) Add(builder *InputResultBuilder) {
	result := builder.Build()

	s.InputResults = append(s.InputResults, result)
	s.Inputs++
	s.Documents += result.Documents
	s.Roots += result.Roots
	s.Records += result.Records
	s.Failures += result.Failures

	if result.Error != nil {
		s.FailedInputs++
	}
}

func (s *Summary) SetTotalDuration(duration time.Duration) {
	s.TotalDuration = duration
}

// Succeeded reports whether every input was read to the end without a
// failing root.
func (s *Summary) Succeeded() bool {
	return s.FailedInputs == 0 && s.Failures == 0
}

func (s *Summary) RecordsPerSecond() float64 {
	if s.TotalDuration == 0 {
		return 0
	}
	return float64(s.Records) / s.TotalDuration.Seconds()
}

// FailurePercentage is the share of roots that did not produce a record.
func (s *Summary) FailurePercentage() float64 {
	if s.Roots == 0 {
		return 0
	}
	return (float64(s.Failures) / float64(s.Roots)) * 100
}
