package analysis

import (
	"context"
	"encoding/json"
	"strings"

	"sales-crm-be/internal/entity"
	"sales-crm-be/internal/pkg/logger"
	"sales-crm-be/pkg/llm"
)

const analyzePromptTemplate = `You are a sales call analyst. Analyze the following call transcript and respond with ONLY a JSON object, no markdown fences, matching exactly this schema:
{"overall_sentiment": <int 1-10>, "likelihood_to_close": <int 0-100>, "pain_points": [<strings>], "next_steps": [<strings>], "summary": "<one or two sentences>"}

Call outcome: %OUTCOME%

Transcript:
%TRANSCRIPT%`

const extractLeadPromptTemplate = `You are a CRM assistant. Extract lead details from the following call transcript and respond with ONLY a JSON object, no markdown fences, matching exactly this schema:
{"company": "<company name>", "contact_name": "<person name>", "contact_role": "<role or empty>", "industry": "<industry or empty>"}

Transcript:
%TRANSCRIPT%`

// Lead is the result of lead extraction from an unmatched call transcript.
type Lead struct {
	Company     string `json:"company"`
	ContactName string `json:"contact_name"`
	ContactRole string `json:"contact_role"`
	Industry    string `json:"industry"`
}

// Analyzer evaluates call transcripts through an LLM. Upstream failures are
// never propagated: a provider error or unparseable output is replaced with a
// fixed fallback so the call-recording flow never blocks on the model.
type Analyzer struct {
	provider llm.LLMProvider
	log      logger.ILogger
}

func NewAnalyzer(provider llm.LLMProvider, log logger.ILogger) *Analyzer {
	return &Analyzer{
		provider: provider,
		log:      log,
	}
}

// AnalyzeCall returns the structured analysis for a transcript, or the
// neutral fallback when the model is unavailable or returns garbage.
func (a *Analyzer) AnalyzeCall(ctx context.Context, transcript, outcome string) *entity.CallAnalysis {
	prompt := strings.NewReplacer(
		"%OUTCOME%", outcome,
		"%TRANSCRIPT%", transcript,
	).Replace(analyzePromptTemplate)

	raw, err := a.provider.Generate(ctx, prompt, llm.WithTemperature(0.2))
	if err != nil {
		a.log.Warn("Analyzer", "LLM analysis failed, using fallback", map[string]interface{}{"error": err.Error()})
		return FallbackAnalysis()
	}

	var parsed struct {
		OverallSentiment  *int     `json:"overall_sentiment"`
		LikelihoodToClose *int     `json:"likelihood_to_close"`
		PainPoints        []string `json:"pain_points"`
		NextSteps         []string `json:"next_steps"`
		Summary           string   `json:"summary"`
	}
	if err := json.Unmarshal([]byte(stripFences(raw)), &parsed); err != nil {
		a.log.Warn("Analyzer", "Unparseable analysis output, using fallback", map[string]interface{}{
			"error":  err.Error(),
			"output": truncate(raw, 200),
		})
		return FallbackAnalysis()
	}

	return &entity.CallAnalysis{
		OverallSentiment:  clampPtr(parsed.OverallSentiment, 1, 10),
		LikelihoodToClose: clampPtr(parsed.LikelihoodToClose, 0, 100),
		PainPoints:        parsed.PainPoints,
		NextSteps:         parsed.NextSteps,
		Summary:           parsed.Summary,
	}
}

// ExtractLead pulls company/contact fields out of a transcript for
// unmatched inbound calls, with a fixed fallback on failure.
func (a *Analyzer) ExtractLead(ctx context.Context, transcript string) *Lead {
	prompt := strings.ReplaceAll(extractLeadPromptTemplate, "%TRANSCRIPT%", transcript)

	raw, err := a.provider.Generate(ctx, prompt, llm.WithTemperature(0.1))
	if err != nil {
		a.log.Warn("Analyzer", "LLM lead extraction failed, using fallback", map[string]interface{}{"error": err.Error()})
		return FallbackLead()
	}

	var lead Lead
	if err := json.Unmarshal([]byte(stripFences(raw)), &lead); err != nil {
		a.log.Warn("Analyzer", "Unparseable lead output, using fallback", map[string]interface{}{"error": err.Error()})
		return FallbackLead()
	}
	if lead.Company == "" {
		lead.Company = FallbackLead().Company
	}
	return &lead
}

// FallbackAnalysis is the fixed neutral result used when the model fails:
// sentiment 5 moves no stage and sets no tags, and no likelihood or next
// steps means the blend and follow-up rules do not apply.
func FallbackAnalysis() *entity.CallAnalysis {
	neutral := 5
	return &entity.CallAnalysis{
		OverallSentiment: &neutral,
		Summary:          "Automatic analysis unavailable; transcript recorded for manual review.",
	}
}

// FallbackLead is the fixed lead used when extraction fails.
func FallbackLead() *Lead {
	return &Lead{
		Company:     "Unknown Caller",
		ContactName: "Unknown",
	}
}

// stripFences tolerates models that wrap JSON in markdown code fences despite
// the prompt.
func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func clampPtr(v *int, min, max int) *int {
	if v == nil {
		return nil
	}
	c := *v
	if c < min {
		c = min
	}
	if c > max {
		c = max
	}
	return &c
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
