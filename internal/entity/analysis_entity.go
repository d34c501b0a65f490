package entity

// CallAnalysis is the structured output of the transcript analyzer for a
// completed call. Pointer fields encode absence: a nil field means the
// corresponding rule simply does not apply, never an error.
type CallAnalysis struct {
	OverallSentiment  *int     `json:"overall_sentiment"`   // 1-10
	LikelihoodToClose *int     `json:"likelihood_to_close"` // 0-100
	PainPoints        []string `json:"pain_points"`
	NextSteps         []string `json:"next_steps"`
	Summary           string   `json:"summary"`
}

// HasSignal reports whether the analysis carries anything for the rule
// engine to act on.
func (a *CallAnalysis) HasSignal() bool {
	if a == nil {
		return false
	}
	return a.OverallSentiment != nil ||
		a.LikelihoodToClose != nil ||
		len(a.PainPoints) > 0 ||
		len(a.NextSteps) > 0 ||
		a.Summary != ""
}
