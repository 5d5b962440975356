package cmd

import (
	"fmt"
	"strings"

	"github.com/prosecraft/prosecraft/internal/analysis"
	"github.com/prosecraft/prosecraft/internal/ui"
)

func renderAnalysis(kind analysis.Kind, result any) string {
	var body string
	switch r := result.(type) {
	case *analysis.GrammarAnalysis:
		body = renderGrammar(r)
	case *analysis.StyleAnalysis:
		body = renderStyle(r)
	case *analysis.ToneAnalysis:
		body = renderTone(r)
	case *analysis.PlagiarismReport:
		body = renderPlagiarism(r)
	default:
		body = fmt.Sprint(result)
	}
	return ui.Header(kind.Title()) + "\n" + ui.Gap() + body
}

func renderGrammar(r *analysis.GrammarAnalysis) string {
	if len(r.Corrections) == 0 {
		return ui.SuccessStyle.Render("✓ No grammar issues found")
	}
	blocks := make([]string, 0, len(r.Corrections))
	for i, c := range r.Corrections {
		lines := []string{
			ui.LabelStyle.Render(fmt.Sprintf("%d.", i+1)) + " " + ui.ErrorStyle.Render(c.Original) + "  →  " + ui.SuccessStyle.Render(c.Suggestion),
		}
		if c.Explanation != "" {
			lines = append(lines, ui.MutedStyle.Render(ui.Paragraph(c.Explanation)))
		}
		blocks = append(blocks, strings.Join(lines, "\n"))
	}
	return joinBlocks(blocks)
}

func renderStyle(r *analysis.StyleAnalysis) string {
	blocks := []string{ui.KeyValue("Overall score", scoreText(r.OverallScore), 15)}
	for _, s := range r.Suggestions {
		lines := []string{ui.PrimaryStyle().Render(strings.ToUpper(s.Type)), ui.Paragraph(s.Suggestion)}
		if s.Explanation != "" {
			lines = append(lines, ui.MutedStyle.Render(ui.Paragraph(s.Explanation)))
		}
		blocks = append(blocks, strings.Join(lines, "\n"))
	}
	if len(r.Improvements) > 0 {
		blocks = append(blocks, ui.LabelStyle.Render("Improvements")+"\n"+bullets(r.Improvements))
	}
	return joinBlocks(blocks)
}

func renderTone(r *analysis.ToneAnalysis) string {
	const width = 12
	profile := strings.Join([]string{
		ui.KeyValue("Formality", r.Tone.Formality, width),
		ui.KeyValue("Sentiment", r.Tone.Sentiment, width),
		ui.KeyValue("Confidence", r.Tone.Confidence, width),
		ui.KeyValue("Clarity", r.Tone.Clarity, width),
		ui.KeyValue("Score", scoreText(r.Score), width),
	}, "\n")
	blocks := []string{ui.InfoBox.Render(profile)}
	if len(r.Suggestions) > 0 {
		blocks = append(blocks, ui.LabelStyle.Render("Suggestions")+"\n"+bullets(r.Suggestions))
	}
	return joinBlocks(blocks)
}

func renderPlagiarism(r *analysis.PlagiarismReport) string {
	const width = 13
	risk := r.RiskLevel
	switch strings.ToLower(risk) {
	case "low":
		risk = ui.SuccessStyle.Render(risk)
	case "medium":
		risk = ui.WarningStyle.Render(risk)
	case "high":
		risk = ui.ErrorStyle.Render(risk)
	}
	summary := strings.Join([]string{
		ui.KeyValue("Originality", fmt.Sprintf("%.0f%%", r.OriginalityScore), width),
		ui.KeyValue("Plagiarism", fmt.Sprintf("%.0f%%", r.PlagiarismScore), width),
		ui.KeyValue("Risk", risk, width),
	}, "\n")
	blocks := []string{ui.InfoBox.Render(summary)}
	if r.Analysis != "" {
		blocks = append(blocks, ui.Paragraph(r.Analysis))
	}
	if len(r.Suggestions) > 0 {
		blocks = append(blocks, ui.LabelStyle.Render("Suggestions")+"\n"+bullets(r.Suggestions))
	}
	return joinBlocks(blocks)
}

func scoreText(score float64) string {
	return fmt.Sprintf("%.0f/100", score)
}

func bullets(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "• " + ui.Paragraph(item)
	}
	return strings.Join(lines, "\n")
}

func joinBlocks(blocks []string) string {
	return strings.Join(blocks, "\n"+ui.Gap())
}
