package analysis

// GrammarCorrection is one suggested fix.
type GrammarCorrection struct {
	Original    string `json:"original"`
	Suggestion  string `json:"suggestion"`
	Explanation string `json:"explanation"`
}

// GrammarAnalysis is the result of a grammar check.
type GrammarAnalysis struct {
	Corrections []GrammarCorrection `json:"corrections"`
}

// StyleSuggestion is one style improvement.
type StyleSuggestion struct {
	Type        string `json:"type"`
	Suggestion  string `json:"suggestion"`
	Explanation string `json:"explanation"`
}

// StyleAnalysis is the result of a style enhancement.
type StyleAnalysis struct {
	Suggestions  []StyleSuggestion `json:"suggestions"`
	OverallScore float64           `json:"overall_score"`
	Improvements []string          `json:"improvements"`
}

// ToneProfile rates the tone along four axes.
type ToneProfile struct {
	Formality  string `json:"formality"`
	Sentiment  string `json:"sentiment"`
	Confidence string `json:"confidence"`
	Clarity    string `json:"clarity"`
}

// ToneAnalysis is the result of a tone analysis.
type ToneAnalysis struct {
	Tone        ToneProfile `json:"tone"`
	Score       float64     `json:"score"`
	Suggestions []string    `json:"suggestions"`
}

// PlagiarismReport is the result of a plagiarism check.
type PlagiarismReport struct {
	PlagiarismScore  float64  `json:"plagiarism_score"`
	OriginalityScore float64  `json:"originality_score"`
	RiskLevel        string   `json:"risk_level"`
	Analysis         string   `json:"analysis"`
	Suggestions      []string `json:"suggestions"`
}
