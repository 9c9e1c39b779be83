// Package script compiles an instruction file into an ordered sequence
// of message steps.
package script

import (
	"errors"
	"path/filepath"
	"strings"
)

// Step is a single unit of work in a compiled script: either a message
// to send or a pause. The type is sealed; SendStep and WaitStep are the
// only variants, so an executor switch over Step is exhaustive.
type Step interface {
	step()
}

// SendStep is a message body to deliver verbatim. Text is never empty
// or whitespace-only; Compile discards such candidates.
type SendStep struct {
	Text string
}

// WaitStep is a pause of Seconds before the next step.
type WaitStep struct {
	Seconds float64
}

func (SendStep) step() {}
func (WaitStep) step() {}

// Kind identifies how an instruction file's prose should be treated
// during the fallback paragraph pass.
type Kind int

const (
	// KindPlain is an unannotated text file; lines are only trimmed.
	KindPlain Kind = iota
	// KindMarkup is a Markdown file; leading heading, list, and
	// block-quote markers are stripped before paragraph splitting.
	KindMarkup
)

// ErrUnsupportedKind is returned for instruction files that are neither
// .txt nor .md.
var ErrUnsupportedKind = errors.New("only .txt and .md instruction files are supported")

// KindForPath maps a file path to its Kind by extension.
func KindForPath(path string) (Kind, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		return KindPlain, nil
	case ".md":
		return KindMarkup, nil
	}
	return KindPlain, ErrUnsupportedKind
}

// HasExplicitWaits reports whether any step in the sequence is a WaitStep.
func HasExplicitWaits(steps []Step) bool {
	for _, s := range steps {
		if _, ok := s.(WaitStep); ok {
			return true
		}
	}
	return false
}
