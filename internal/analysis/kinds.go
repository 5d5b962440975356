package analysis

import (
	"fmt"
	"strings"
)

// Kind names an analysis the service can run.
type Kind string

const (
	KindGrammar    Kind = "grammar"
	KindStyle      Kind = "style"
	KindTone       Kind = "tone"
	KindPlagiarism Kind = "plagiarism"
)

// Kinds returns every analysis kind in menu order.
func Kinds() []Kind {
	return []Kind{KindGrammar, KindStyle, KindTone, KindPlagiarism}
}

// ParseKind validates a kind name.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds() {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown analysis %q (expected grammar, style, tone or plagiarism)", s)
}

// Title is the display name of the analysis.
func (k Kind) Title() string {
	switch k {
	case KindGrammar:
		return "Grammar Check"
	case KindStyle:
		return "Style Enhancement"
	case KindTone:
		return "Tone Analysis"
	case KindPlagiarism:
		return "Plagiarism Check"
	default:
		return string(k)
	}
}

// FailureMessage is the user-facing message shown when the analysis fails.
func (k Kind) FailureMessage() string {
	switch k {
	case KindStyle:
		return "Failed to analyze style. Please check your internet connection."
	case KindTone:
		return "Failed to analyze tone. Please check your internet connection."
	case KindPlagiarism:
		return "Failed to check plagiarism. Please check your internet connection."
	default:
		return "Failed to analyze text. Please check your internet connection."
	}
}

func (k Kind) prompt(text string) string {
	switch k {
	case KindStyle:
		return fmt.Sprintf(`
You are a writing style expert. Analyze the following text and provide style enhancement suggestions in JSON format.
Text: """%s"""
Format: {
  "suggestions": [
    { "type": "sentence_structure", "suggestion": "...", "explanation": "..." },
    { "type": "vocabulary", "suggestion": "...", "explanation": "..." },
    { "type": "clarity", "suggestion": "...", "explanation": "..." }
  ],
  "overall_score": 85,
  "improvements": ["Use more active voice", "Vary sentence length", "Add transitional phrases"]
}
`, text)
	case KindTone:
		return fmt.Sprintf(`
You are a tone analysis expert. Analyze the tone of the following text and return results in JSON format.
Text: """%s"""
Format: {
  "tone": {
    "formality": "Professional/Casual/Formal",
    "sentiment": "Positive/Negative/Neutral",
    "confidence": "High/Medium/Low",
    "clarity": "Excellent/Good/Fair/Poor"
  },
  "score": 85,
  "suggestions": ["Consider using more confident language", "Add emotional context"]
}
`, text)
	case KindPlagiarism:
		return fmt.Sprintf(`
You are a plagiarism detection expert. Analyze the following text for potential plagiarism indicators and return results in JSON format.
Text: """%s"""
Format: {
  "plagiarism_score": 5,
  "originality_score": 95,
  "risk_level": "Low/Medium/High",
  "analysis": "This text appears to be original content with no significant plagiarism indicators.",
  "suggestions": ["Consider adding more unique insights", "Cite sources if using external information"]
}
`, text)
	default:
		return fmt.Sprintf(`
You are a grammar expert. Review the following text and return corrections in JSON format.
Text: """%s"""
Format: {
  "corrections": [
    { "original": "...", "suggestion": "...", "explanation": "..." }
  ]
}
`, text)
	}
}
