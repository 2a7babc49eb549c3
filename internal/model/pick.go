package model

// Pick is one generated set of six numbers, together with the strategy
// that produced it and its quality analysis.
type Pick struct {
	// Numbers holds the six picked numbers sorted ascending.
	Numbers []int `json:"numbers"`

	// Strategy names the generation strategy that produced the set
	// ("hot", "cold", "mixed", "random").
	Strategy string `json:"strategy,omitempty"`

	// Analysis is the quality analysis of the set. Nil when analysis
	// was not requested.
	Analysis *Analysis `json:"analysis,omitempty"`
}

// NewPick builds a Pick with its analysis filled in.
func NewPick(numbers []int, strategy string) Pick {
	return Pick{
		Numbers:  numbers,
		Strategy: strategy,
		Analysis: NewAnalysis(numbers),
	}
}
