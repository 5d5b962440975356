// Package analysis calls the hosted generative-language API to review drafts.
package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tidwall/gjson"
)

var (
	// ErrAnalysisFailed covers transport failures, non-2xx answers and unparsable payloads.
	ErrAnalysisFailed = errors.New("analysis failed")
	// ErrEmptyText is returned before any request when the draft is blank.
	ErrEmptyText = errors.New("please enter some text to analyze")
	// ErrMissingAPIKey is returned when no API key is configured.
	ErrMissingAPIKey = errors.New("no API key configured (set GEMINI_API_KEY or analysis.api_key)")
)

const maxResponseBytes = 4 << 20

var fencedJSON = regexp.MustCompile("(?s)```json\\s*(.*?)```")

// Options configures a Client
type Options struct {
	Endpoint   string
	Model      string
	APIKey     string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *log.Logger
}

// Client runs analyses against the generateContent endpoint.
type Client struct {
	endpoint string
	model    string
	apiKey   string
	http     *http.Client
	logger   *log.Logger
}

// NewClient creates a Client.
func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Client{
		endpoint: strings.TrimRight(opts.Endpoint, "/"),
		model:    opts.Model,
		apiKey:   opts.APIKey,
		http:     httpClient,
		logger:   logger,
	}
}

// Grammar returns grammar corrections for text.
func (c *Client) Grammar(ctx context.Context, text string) (*GrammarAnalysis, error) {
	var out GrammarAnalysis
	if err := c.analyze(ctx, KindGrammar, text, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Style returns style enhancement suggestions for text.
func (c *Client) Style(ctx context.Context, text string) (*StyleAnalysis, error) {
	var out StyleAnalysis
	if err := c.analyze(ctx, KindStyle, text, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Tone returns a tone analysis for text.
func (c *Client) Tone(ctx context.Context, text string) (*ToneAnalysis, error) {
	var out ToneAnalysis
	if err := c.analyze(ctx, KindTone, text, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Plagiarism returns a plagiarism report for text.
func (c *Client) Plagiarism(ctx context.Context, text string) (*PlagiarismReport, error) {
	var out PlagiarismReport
	if err := c.analyze(ctx, KindPlagiarism, text, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Run dispatches by kind and returns the typed result.
func (c *Client) Run(ctx context.Context, kind Kind, text string) (any, error) {
	switch kind {
	case KindGrammar:
		return c.Grammar(ctx, text)
	case KindStyle:
		return c.Style(ctx, text)
	case KindTone:
		return c.Tone(ctx, text)
	case KindPlagiarism:
		return c.Plagiarism(ctx, text)
	default:
		return nil, fmt.Errorf("unknown analysis %q", kind)
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

func (c *Client) analyze(ctx context.Context, kind Kind, text string, out any) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyText
	}
	if c.apiKey == "" {
		return ErrMissingAPIKey
	}

	answer, err := c.generate(ctx, kind.prompt(text))
	if err != nil {
		c.logger.Error("calling analysis API", "kind", kind, "error", err)
		return fmt.Errorf("%w: %s: %w", ErrAnalysisFailed, kind, err)
	}

	if err := json.Unmarshal([]byte(ExtractJSON(answer)), out); err != nil {
		c.logger.Error("parsing analysis result", "kind", kind, "error", err)
		return fmt.Errorf("%w: %s: parsing result: %w", ErrAnalysisFailed, kind, err)
	}
	return nil
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", c.endpoint, url.PathEscape(c.model))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	c.logger.Debug("requesting analysis", "model", c.model, "bytes", len(body))
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	c.logger.Debug("analysis response", "status", resp.StatusCode, "elapsed", time.Since(start).Round(time.Millisecond))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("API request failed with status %d", resp.StatusCode)
	}
	if !gjson.ValidBytes(data) {
		return "", fmt.Errorf("response is not valid JSON")
	}

	answer := gjson.GetBytes(data, "candidates.0.content.parts.0.text").String()
	if strings.TrimSpace(answer) == "" {
		return "", fmt.Errorf("no content received from API")
	}
	return answer, nil
}

// ExtractJSON returns the body of the first ```json fenced block, or text
// unchanged when there is none.
func ExtractJSON(text string) string {
	if m := fencedJSON.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return text
}

// WordCount counts whitespace-separated words.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
