package gemini_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rahul-1611/AEROCARBON/internal/config"
	"github.com/Rahul-1611/AEROCARBON/internal/llm/gemini"
	"github.com/Rahul-1611/AEROCARBON/internal/port"
)

func geminiReply(text string) string {
	resp := map[string]interface{}{
		"candidates": []map[string]interface{}{
			{
				"content": map[string]interface{}{
					"parts": []map[string]interface{}{{"text": text}},
				},
				"finishReason": "STOP",
			},
		},
	}
	b, _ := json.Marshal(resp)
	return string(b)
}

func TestGenerate_RequestShape(t *testing.T) {
	var captured map[string]interface{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_, _ = w.Write([]byte(geminiReply(`{"ok": true}`)))
	}))
	defer ts.Close()

	client := gemini.NewClientWithEndpoint(&config.GeminiConfig{APIKey: "test-key"}, ts.URL)
	out, err := client.Generate(context.Background(), port.GenerateInput{
		SystemPrompt: "You are a parser.",
		Prompt:       "Extract this.",
		FileBytes:    []byte("pdf-bytes"),
		MimeType:     "application/pdf",
	})
	require.NoError(t, err)
	assert.Equal(t, `{"ok": true}`, out)

	contents := captured["contents"].([]interface{})
	require.Len(t, contents, 1)
	parts := contents[0].(map[string]interface{})["parts"].([]interface{})
	require.Len(t, parts, 2)

	inline := parts[0].(map[string]interface{})["inline_data"].(map[string]interface{})
	assert.Equal(t, "application/pdf", inline["mime_type"])
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("pdf-bytes")), inline["data"])
	assert.Equal(t, "Extract this.", parts[1].(map[string]interface{})["text"])

	sys := captured["system_instruction"].(map[string]interface{})
	sysParts := sys["parts"].([]interface{})
	assert.Equal(t, "You are a parser.", sysParts[0].(map[string]interface{})["text"])

	genCfg := captured["generationConfig"].(map[string]interface{})
	assert.Equal(t, "application/json", genCfg["responseMimeType"])
}

func TestGenerate_TextOnlyOmitsInlineData(t *testing.T) {
	var captured map[string]interface{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_, _ = w.Write([]byte(geminiReply("fine")))
	}))
	defer ts.Close()

	client := gemini.NewClientWithEndpoint(&config.GeminiConfig{APIKey: "k"}, ts.URL)
	_, err := client.Generate(context.Background(), port.GenerateInput{Prompt: "hello"})
	require.NoError(t, err)

	contents := captured["contents"].([]interface{})
	parts := contents[0].(map[string]interface{})["parts"].([]interface{})
	require.Len(t, parts, 1)
	_, hasInline := parts[0].(map[string]interface{})["inline_data"]
	assert.False(t, hasInline)
}

func TestGenerate_APIErrorIncludesStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": "quota exceeded"}`))
	}))
	defer ts.Close()

	client := gemini.NewClientWithEndpoint(&config.GeminiConfig{APIKey: "k"}, ts.URL)
	_, err := client.Generate(context.Background(), port.GenerateInput{Prompt: "hi"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}

func TestGenerate_EmptyCandidates(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates": []}`))
	}))
	defer ts.Close()

	client := gemini.NewClientWithEndpoint(&config.GeminiConfig{APIKey: "k"}, ts.URL)
	_, err := client.Generate(context.Background(), port.GenerateInput{Prompt: "hi"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty response")
}

func TestModel_Default(t *testing.T) {
	client := gemini.NewClient(&config.GeminiConfig{})
	assert.Equal(t, "gemini-2.5-flash", client.Model())
}
