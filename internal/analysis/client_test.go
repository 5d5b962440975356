package analysis

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func geminiReply(t *testing.T, text string) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"candidates": []any{
			map[string]any{
				"content": map[string]any{
					"parts": []any{map[string]any{"text": text}},
				},
			},
		},
	})
	require.NoError(t, err)
	return body
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Options{
		Endpoint: srv.URL + "/",
		Model:    "gemini-2.0-flash",
		APIKey:   "test-key",
		Timeout:  5 * time.Second,
	})
}

func TestGrammar_FencedJSON(t *testing.T) {
	var gotPath, gotKey string
	var gotReq generateRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &gotReq)
		_, _ = w.Write(geminiReply(t, "Here you go:\n```json\n{\"corrections\":[{\"original\":\"teh\",\"suggestion\":\"the\",\"explanation\":\"typo\"}]}\n```"))
	})

	got, err := client.Grammar(context.Background(), "teh cat")
	require.NoError(t, err)

	assert.Equal(t, "/models/gemini-2.0-flash:generateContent", gotPath)
	assert.Equal(t, "test-key", gotKey)
	require.Len(t, gotReq.Contents, 1)
	require.Len(t, gotReq.Contents[0].Parts, 1)
	assert.Contains(t, gotReq.Contents[0].Parts[0].Text, "teh cat")

	require.Len(t, got.Corrections, 1)
	assert.Equal(t, GrammarCorrection{Original: "teh", Suggestion: "the", Explanation: "typo"}, got.Corrections[0])
}

func TestStyle_BareJSON(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(geminiReply(t, `{"suggestions":[{"type":"clarity","suggestion":"shorten","explanation":"long"}],"overall_score":7.5,"improvements":["tighter"]}`))
	})

	got, err := client.Style(context.Background(), "A very long sentence.")
	require.NoError(t, err)
	assert.InDelta(t, 7.5, got.OverallScore, 0.001)
	assert.Equal(t, []string{"tighter"}, got.Improvements)
	require.Len(t, got.Suggestions, 1)
	assert.Equal(t, "clarity", got.Suggestions[0].Type)
}

func TestRun_DispatchesByKind(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(geminiReply(t, `{"tone":{"formality":"formal","sentiment":"positive","confidence":"high","clarity":"clear"},"score":8,"suggestions":[]}`))
	})

	got, err := client.Run(context.Background(), KindTone, "Dear sir.")
	require.NoError(t, err)
	tone, ok := got.(*ToneAnalysis)
	require.True(t, ok)
	assert.Equal(t, "formal", tone.Tone.Formality)

	_, err = client.Run(context.Background(), Kind("poetry"), "x")
	assert.Error(t, err)
}

func TestAnalyze_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "non-2xx status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "quota", http.StatusTooManyRequests)
			},
		},
		{
			name: "no candidates",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"candidates":[]}`))
			},
		},
		{
			name: "not json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`<html>`))
			},
		},
		{
			name: "unparsable result",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write(geminiReply(t, "Sorry, I cannot help with that."))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tt.handler)
			_, err := client.Plagiarism(context.Background(), "some text")
			assert.ErrorIs(t, err, ErrAnalysisFailed)
		})
	}
}

func TestAnalyze_NoRequestForBlankText(t *testing.T) {
	called := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := client.Grammar(context.Background(), "  \n\t ")
	assert.ErrorIs(t, err, ErrEmptyText)
	assert.False(t, called)
}

func TestAnalyze_MissingAPIKey(t *testing.T) {
	client := NewClient(Options{Endpoint: "http://127.0.0.1:0", Model: "m"})
	_, err := client.Tone(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestAnalyze_ContextCanceled(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Grammar(ctx, "hello")
	assert.ErrorIs(t, err, ErrAnalysisFailed)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExtractJSON(t *testing.T) {
	assert.Equal(t, `{"a":1}`, ExtractJSON("```json\n{\"a\":1}```"))
	assert.Equal(t, `{"a":1}`, ExtractJSON(`{"a":1}`))
	assert.Equal(t, "{}\n", ExtractJSON("intro ```json {}\n``` outro ```json [] ```"))
}

func TestWordCount(t *testing.T) {
	assert.Equal(t, 0, WordCount("   "))
	assert.Equal(t, 4, WordCount("one two\nthree\tfour"))
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind(" Style ")
	require.NoError(t, err)
	assert.Equal(t, KindStyle, k)
	assert.Equal(t, "Style Enhancement", k.Title())

	_, err = ParseKind("poetry")
	assert.Error(t, err)
}
