package impact

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCompleter struct {
	request  openai.ChatCompletionRequest
	response openai.ChatCompletionResponse
	err      error
}

func (s *stubCompleter) CreateChatCompletion(_ context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	s.request = request
	return s.response, s.err
}

func postScenario(t *testing.T, client ChatCompleter, body string) (int, map[string]interface{}) {
	t.Helper()
	app := fiber.New()
	app.Post("/api/hypothetical-hit", HypotheticalHit(client))

	req := httptest.NewRequest(http.MethodPost, "/api/hypothetical-hit", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &payload))
	return resp.StatusCode, payload
}

func completionWith(text string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: text}},
		},
	}
}

func TestHypotheticalHitUnconfigured(t *testing.T) {
	status, payload := postScenario(t, nil, `{}`)

	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, false, payload["success"])
	assert.Contains(t, payload["message"], "OPENAI_API_KEY")
}

func TestHypotheticalHitScenario(t *testing.T) {
	stub := &stubCompleter{response: completionWith("  A regional catastrophe.  ")}

	status, payload := postScenario(t, stub,
		`{"name":"433 Eros","diameterKm":16.84,"velocityKmh":20000,"missDistanceKm":26000000,"riskScore":40,"isHazardous":true}`)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, payload["success"])
	assert.Equal(t, "A regional catastrophe.", payload["scenario"])

	assert.Equal(t, openai.GPT4oMini, stub.request.Model)
	assert.Equal(t, 500, stub.request.MaxTokens)
	require.Len(t, stub.request.Messages, 1)
	prompt := stub.request.Messages[0].Content
	assert.Contains(t, prompt, "433 Eros")
	assert.Contains(t, prompt, "16.84 km (16840 meters)")
	assert.Contains(t, prompt, "26.00 million km")
	assert.Contains(t, prompt, "Potentially hazardous: Yes")
}

func TestHypotheticalHitUnknownFields(t *testing.T) {
	stub := &stubCompleter{response: completionWith("ok")}

	status, _ := postScenario(t, stub, `{}`)

	assert.Equal(t, http.StatusOK, status)
	prompt := stub.request.Messages[0].Content
	assert.Contains(t, prompt, "Name: Unknown")
	assert.Contains(t, prompt, "Diameter: ? km (? meters)")
	assert.Contains(t, prompt, "Risk level: unknown")
	assert.Contains(t, prompt, "Potentially hazardous: No")
}

func TestHypotheticalHitEmptyCompletion(t *testing.T) {
	stub := &stubCompleter{response: completionWith("   ")}

	status, payload := postScenario(t, stub, `{"name":"Apophis"}`)

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "No response from AI", payload["message"])
}

func TestHypotheticalHitQuotaExceeded(t *testing.T) {
	stub := &stubCompleter{err: &openai.APIError{
		HTTPStatusCode: http.StatusTooManyRequests,
		Message:        "You exceeded your current quota",
	}}

	status, payload := postScenario(t, stub, `{"name":"Apophis"}`)

	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.Equal(t, "You exceeded your current quota", payload["message"])
}

func TestHypotheticalHitOpaqueFailure(t *testing.T) {
	stub := &stubCompleter{err: context.DeadlineExceeded}

	status, payload := postScenario(t, stub, `{"name":"Apophis"}`)

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Failed to generate hypothetical impact scenario", payload["message"])
}
