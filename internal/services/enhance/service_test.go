package enhance_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autistnet/internal/domain"
	"autistnet/internal/services/enhance"
)

func geminiStub(t *testing.T, status int, reply string, seen *map[string]any) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/gemini-2.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		if seen != nil {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(seen))
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestEnhance_DisabledWithoutKey(t *testing.T) {
	svc := enhance.New(enhance.Config{}, nil)

	text, enabled, err := svc.Enhance(context.Background(), domain.EnhancePost, "oi")
	require.NoError(t, err)
	assert.False(t, enabled)
	assert.Empty(t, text)
}

func TestEnhance_ReturnsTrimmedText(t *testing.T) {
	var body map[string]any
	ts := geminiStub(t, http.StatusOK,
		`{"candidates":[{"content":{"parts":[{"text":"  Texto melhorado. \n"}]}}]}`, &body)
	svc := enhance.New(enhance.Config{APIKey: "test-key", BaseURL: ts.URL, HTTP: ts.Client()}, nil)

	text, enabled, err := svc.Enhance(context.Background(), domain.EnhanceComplaint, "atendimento ruim")
	require.NoError(t, err)
	assert.True(t, enabled)
	assert.Equal(t, "Texto melhorado.", text)

	raw, err := json.Marshal(body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "relato de denúncia")
	assert.Contains(t, string(raw), "atendimento ruim")
}

func TestEnhance_FailuresAreServiceErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		reply  string
	}{
		{"http error", http.StatusTooManyRequests, `{"error":{"message":"quota"}}`},
		{"bad json", http.StatusOK, `not json`},
		{"no candidates", http.StatusOK, `{"candidates":[]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := geminiStub(t, tt.status, tt.reply, nil)
			svc := enhance.New(enhance.Config{APIKey: "test-key", BaseURL: ts.URL}, nil)

			_, enabled, err := svc.Enhance(context.Background(), domain.EnhancePost, "hello")
			require.Error(t, err)
			assert.True(t, enabled)
			assert.True(t, domain.IsService(err))
		})
	}
}

func TestEnhance_LongErrorBodyStaysValidUTF8(t *testing.T) {
	// 'ç' is two bytes, so a byte cut at 200 would split a rune.
	ts := geminiStub(t, http.StatusBadRequest, "x"+strings.Repeat("ç", 300), nil)
	svc := enhance.New(enhance.Config{APIKey: "test-key", BaseURL: ts.URL, HTTP: ts.Client()}, nil)

	_, _, err := svc.Enhance(context.Background(), domain.EnhancePost, "oi")
	require.Error(t, err)
	assert.True(t, utf8.ValidString(err.Error()))
	assert.True(t, strings.HasSuffix(err.Error(), "ç..."))
	assert.Equal(t, 199, strings.Count(err.Error(), "ç"))
}

func TestEnhance_RejectsBlankAndUnknownVariant(t *testing.T) {
	svc := enhance.New(enhance.Config{APIKey: "test-key", BaseURL: "http://127.0.0.1:1"}, nil)

	_, _, err := svc.Enhance(context.Background(), domain.EnhancePost, "   ")
	assert.True(t, domain.IsValidation(err))

	_, _, err = svc.Enhance(context.Background(), "poem", "hello")
	assert.True(t, domain.IsValidation(err))
}

func TestPrompt_Variants(t *testing.T) {
	p, err := enhance.Prompt(domain.EnhancePost, "abc")
	require.NoError(t, err)
	assert.Contains(t, p, "rede social focada em autismo")
	assert.Contains(t, p, `"abc"`)
}
