package script

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	waitRe = regexp.MustCompile(`(?i)^WAIT:\s*([0-9]+(?:\.[0-9]+)?)\s*$`)
	sendRe = regexp.MustCompile(`(?i)^SEND:\s*(.+)$`)

	headingRe    = regexp.MustCompile(`^\s{0,3}#{1,6}\s*`)
	listMarkerRe = regexp.MustCompile(`^\s*(?:[-*+]|\d+\.)\s+`)
	blockQuoteRe = regexp.MustCompile(`^\s*>\s*`)

	blockSplitRe   = regexp.MustCompile(`\n\s*\n`)
	innerNewlineRe = regexp.MustCompile(`\n+`)
)

// Compile converts instruction text into an ordered step sequence.
//
// Directive lines (`SEND: ...`, `WAIT: <seconds>`) are matched
// case-insensitively against each trimmed line. If the file contains at
// least one directive, the directive steps are the whole result: a
// single directive anywhere suppresses paragraph parsing for the entire
// file, not just for the lines around it. Only when no line is a
// directive does the fallback run, turning each blank-line-separated
// block into one SendStep (with Markdown markers stripped first for
// KindMarkup input).
//
// Compile never fails; input with no actionable content yields nil.
func Compile(text string, kind Kind) []Step {
	lines := strings.Split(text, "\n")

	var steps []Step
	for _, line := range lines {
		stripped := strings.TrimSpace(line)
		if stripped == "" {
			continue
		}
		if m := waitRe.FindStringSubmatch(stripped); m != nil {
			secs, err := strconv.ParseFloat(m[1], 64)
			if err != nil {
				continue
			}
			steps = append(steps, WaitStep{Seconds: secs})
			continue
		}
		if m := sendRe.FindStringSubmatch(stripped); m != nil {
			steps = append(steps, SendStep{Text: strings.TrimSpace(m[1])})
		}
	}
	if len(steps) > 0 {
		return steps
	}

	normalized := make([]string, len(lines))
	for i, line := range lines {
		if kind == KindMarkup {
			normalized[i] = stripMarkup(line)
		} else {
			normalized[i] = strings.TrimSpace(line)
		}
	}

	for _, block := range blockSplitRe.Split(strings.Join(normalized, "\n"), -1) {
		cleaned := strings.TrimSpace(innerNewlineRe.ReplaceAllString(block, " "))
		if cleaned != "" {
			steps = append(steps, SendStep{Text: cleaned})
		}
	}
	return steps
}

// stripMarkup removes at most one leading heading marker, one list
// marker, and one block-quote marker, in that order, then trims.
func stripMarkup(line string) string {
	line = headingRe.ReplaceAllString(line, "")
	line = listMarkerRe.ReplaceAllString(line, "")
	line = blockQuoteRe.ReplaceAllString(line, "")
	return strings.TrimSpace(line)
}
