// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package wizard drives the step-by-step topic selection flow. Steps
// form a fixed linear sequence; transitions outside the sequence are
// rejected. Sessions are persisted in SQLite.
package wizard

import "fmt"

// Step is one stage of the wizard flow.
type Step string

const (
	StepTopicInput     Step = "topic_input"
	StepTopicAnalysis  Step = "topic_analysis"
	StepResearchInfo   Step = "research_info"
	StepPaperSearch    Step = "paper_search"
	StepPaperSelection Step = "paper_selection"
	StepPaperFormat    Step = "paper_format"
	StepNicheTopics    Step = "niche_topics"
	StepPdfExport      Step = "pdf_export"
)

// steps is the flow in order. Transitions move one position at a time.
var steps = []Step{
	StepTopicInput,
	StepTopicAnalysis,
	StepResearchInfo,
	StepPaperSearch,
	StepPaperSelection,
	StepPaperFormat,
	StepNicheTopics,
	StepPdfExport,
}

// Steps returns the flow in order.
func Steps() []Step {
	return append([]Step(nil), steps...)
}

// Valid reports whether s is a known step.
func Valid(s Step) bool {
	return indexOf(s) >= 0
}

// Next returns the step after s. Advancing past the final step is an
// error.
func Next(s Step) (Step, error) {
	i := indexOf(s)
	if i < 0 {
		return "", fmt.Errorf("unknown wizard step %q", s)
	}
	if i == len(steps)-1 {
		return "", fmt.Errorf("cannot advance past final step %q", s)
	}
	return steps[i+1], nil
}

// Back returns the step before s. Going back from the first step is an
// error.
func Back(s Step) (Step, error) {
	i := indexOf(s)
	if i < 0 {
		return "", fmt.Errorf("unknown wizard step %q", s)
	}
	if i == 0 {
		return "", fmt.Errorf("cannot go back from first step %q", s)
	}
	return steps[i-1], nil
}

// Progress returns how far through the flow s is, as a percentage.
// The first step reports 12 and the final step 100.
func Progress(s Step) int {
	i := indexOf(s)
	if i < 0 {
		return 0
	}
	return (i + 1) * 100 / len(steps)
}

func indexOf(s Step) int {
	for i, step := range steps {
		if step == s {
			return i
		}
	}
	return -1
}
