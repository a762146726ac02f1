package scan

import (
	"github.com/hidewatch/hidewatch/internal/hider"
	"github.com/hidewatch/hidewatch/internal/rules"
)

// Excluder reports whether a path is exempt from hiding.
type Excluder interface {
	Match(path string) bool
}

// Reporter receives the outcome of processed entries.
type Reporter interface {
	// Hidden reports that path was hidden and now lives at result.
	Hidden(path, result string)
	// Failed reports that processing path failed.
	Failed(path string, err error)
}

// Processor runs a single entry through the decide-then-hide pipeline.
// The same Processor serves both the one-shot pass and the watch loop.
type Processor struct {
	rules    *rules.Ruleset
	hider    hider.Hider
	reporter Reporter
	excludes Excluder
}

// ProcessorOption adjusts a Processor.
type ProcessorOption func(*Processor)

// WithExcludes exempts paths matched by e from hiding.
func WithExcludes(e Excluder) ProcessorOption {
	return func(p *Processor) {
		p.excludes = e
	}
}

// NewProcessor wires the matching rules to the platform hider.
func NewProcessor(r *rules.Ruleset, h hider.Hider, reporter Reporter, opts ...ProcessorOption) *Processor {
	p := &Processor{
		rules:    r,
		hider:    h,
		reporter: reporter,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process decides whether the entry at path should be hidden and hides
// it if so. It returns the path the entry lives at afterwards and
// whether it matched. Excluded and non-matching entries come back
// unchanged.
func (p *Processor) Process(path string) (string, bool, error) {
	if p.excludes != nil && p.excludes.Match(path) {
		return path, false, nil
	}

	hide, err := p.rules.ShouldHide(path)
	if err != nil {
		return "", false, err
	}
	if !hide {
		return path, false, nil
	}

	result, err := p.hider.Hide(path)
	if err != nil {
		return "", false, err
	}
	p.reporter.Hidden(path, result)
	return result, true, nil
}
