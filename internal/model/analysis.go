package model

import "math"

// Claim represents an atomic, independently verifiable factual assertion
// extracted from the submitted text. Claims keep their extraction order and
// are never mutated after creation.
type Claim struct {
	Text string `json:"text"`
}

// Assessment classifies the outcome of verifying one claim
type Assessment string

const (
	AssessmentSupported    Assessment = "SUPPORTED"
	AssessmentContradicted Assessment = "CONTRADICTED"
	AssessmentUncertain    Assessment = "UNCERTAIN"
)

// Valid reports whether the assessment is one of the three known values
func (a Assessment) Valid() bool {
	switch a {
	case AssessmentSupported, AssessmentContradicted, AssessmentUncertain:
		return true
	}
	return false
}

// ClaimVerdict is the result of verifying one claim against the evidence pool.
// CorrectiveStatement is set only when the claim is CONTRADICTED;
// SupportingEvidence only when SUPPORTED; both are empty when UNCERTAIN.
type ClaimVerdict struct {
	Claim               Claim      `json:"claim"`
	Assessment          Assessment `json:"assessment"`
	Reasoning           string     `json:"reasoning"`
	CorrectiveStatement string     `json:"corrective_statement,omitempty"`
	SupportingEvidence  string     `json:"supporting_evidence,omitempty"`
	CitedSources        []string   `json:"cited_sources,omitempty"`
}

// Tone is the synthesized overall sentiment direction
type Tone string

const (
	TonePositive Tone = "POSITIVE"
	ToneNegative Tone = "NEGATIVE"
	ToneNeutral  Tone = "NEUTRAL"
)

// ClassifierUnavailable is the label reported when the categorical sentiment
// model could not be loaded.
const ClassifierUnavailable = "UNAVAILABLE"

// SentimentProfile combines the continuous polarity signal with the
// categorical classifier output. OverallTone is derived deterministically:
// POSITIVE only when both signals agree positive, NEGATIVE only when both
// agree negative, NEUTRAL otherwise.
type SentimentProfile struct {
	Negative             float64 `json:"negative"`
	Neutral              float64 `json:"neutral"`
	Positive             float64 `json:"positive"`
	Compound             float64 `json:"compound"`
	ClassifierLabel      string  `json:"classifier_label"`
	ClassifierConfidence float64 `json:"classifier_confidence"`
	OverallTone          Tone    `json:"overall_tone"`
	RiskNote             string  `json:"risk_note"`
}

// Degraded reports whether the profile is the fixed fallback produced when
// the sentiment models failed to load.
func (s SentimentProfile) Degraded() bool {
	return s.ClassifierLabel == ClassifierUnavailable
}

// Risky reports whether sentiment alone warrants a manipulation flag:
// extreme polarity or low neutrality. A degraded profile never flags.
func (s SentimentProfile) Risky() bool {
	if s.Degraded() {
		return false
	}
	return math.Abs(s.Compound) > 0.7 || s.Neutral < 0.5
}

// SourceCredibility maps a content origin to a trust signal. Score is 0.5
// for registry-listed domains and 0.8 (mild default trust) otherwise.
type SourceCredibility struct {
	Score         float64 `json:"score"`
	BiasNote      string  `json:"bias_note"`
	RegistryMatch string  `json:"registry_match,omitempty"`
}

// TrustScoreResult is the terminal artifact of score aggregation
type TrustScoreResult struct {
	Score   float64           `json:"score"`
	Summary string            `json:"summary"`
	Factors map[string]string `json:"factors"`
}

// AnalysisRequest is the core pipeline input
type AnalysisRequest struct {
	Text string `json:"text"`
	URL  string `json:"url,omitempty"`
}

// ClaimBreakdown presents one verified claim in the final response
type ClaimBreakdown struct {
	Claim               string     `json:"claim"`
	Status              Assessment `json:"status"`
	Reason              string     `json:"reason,omitempty"`
	CorrectiveStatement string     `json:"corrective_statement,omitempty"`
	SupportingEvidence  string     `json:"supporting_evidence,omitempty"`
	Sources             []string   `json:"sources"`
}

// SourceBreakdown presents the origin assessment in the final response
type SourceBreakdown struct {
	Publisher        string  `json:"publisher,omitempty"`
	CredibilityScore float64 `json:"credibility_score"`
	PotentialBias    string  `json:"potential_bias"`
}

// SentimentBreakdown presents the tone assessment in the final response
type SentimentBreakdown struct {
	Score float64 `json:"score"`
	Tone  Tone    `json:"tone"`
}

// Breakdown groups the per-signal detail behind the trust score
type Breakdown struct {
	ClaimExtraction   []ClaimBreakdown   `json:"claim_extraction"`
	SourceAnalysis    SourceBreakdown    `json:"source_analysis"`
	SentimentAnalysis SentimentBreakdown `json:"sentiment_analysis"`
}

// AnalysisResponse is the complete result for one submitted content item
type AnalysisResponse struct {
	TrustScore float64   `json:"trust_score"`
	Summary    string    `json:"summary"`
	Breakdown  Breakdown `json:"breakdown"`
	Flags      []string  `json:"flags"`
}
