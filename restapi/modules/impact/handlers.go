// Package impact generates hypothetical Earth impact scenarios for an
// asteroid via the OpenAI chat completion API.
package impact

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	openai "github.com/sashabaranov/go-openai"

	"github.com/cosmicwatch/neo-backend/model"
)

const (
	scenarioModel     = openai.GPT4oMini
	scenarioMaxTokens = 500
)

// ChatCompleter is the slice of the OpenAI client the handler consumes.
// *openai.Client satisfies it.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type scenarioRequest struct {
	Name           string   `json:"name"`
	DiameterKm     *float64 `json:"diameterKm"`
	VelocityKmh    *float64 `json:"velocityKmh"`
	MissDistanceKm *float64 `json:"missDistanceKm"`
	RiskScore      any      `json:"riskScore"`
	IsHazardous    bool     `json:"isHazardous"`
}

// HypotheticalHit asks the model to describe what would happen if the
// submitted asteroid hit Earth. A nil client means the feature is not
// configured and the route answers 503.
func HypotheticalHit(client ChatCompleter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if client == nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"success": false,
				"message": "OpenAI API is not configured. Add OPENAI_API_KEY to your .env file.",
			})
		}

		var req scenarioRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "Invalid request body",
			})
		}

		completion, err := client.CreateChatCompletion(c.Context(), openai.ChatCompletionRequest{
			Model:     scenarioModel,
			MaxTokens: scenarioMaxTokens,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleUser, Content: buildPrompt(req)},
			},
		})
		if err != nil {
			return sendCompletionError(c, err)
		}

		text := ""
		if len(completion.Choices) > 0 {
			text = strings.TrimSpace(completion.Choices[0].Message.Content)
		}
		if text == "" {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"message": "No response from AI",
			})
		}

		return c.JSON(model.ScenarioResponse{Success: true, Scenario: text})
	}
}

func buildPrompt(req scenarioRequest) string {
	name := req.Name
	if name == "" {
		name = "Unknown"
	}

	diameterKm, diameterM := "?", "?"
	if req.DiameterKm != nil && *req.DiameterKm > 0 {
		diameterKm = fmt.Sprintf("%.2f", *req.DiameterKm)
		diameterM = fmt.Sprintf("%.0f", *req.DiameterKm*1000)
	}

	velocity := "?"
	if req.VelocityKmh != nil {
		velocity = fmt.Sprintf("%.0f", *req.VelocityKmh)
	}

	missDistance := "?"
	if req.MissDistanceKm != nil {
		missDistance = fmt.Sprintf("%.2f", *req.MissDistanceKm/1e6)
	}

	riskLevel := "unknown"
	if req.RiskScore != nil {
		riskLevel = fmt.Sprintf("%v", req.RiskScore)
	}

	hazardous := "No"
	if req.IsHazardous {
		hazardous = "Yes"
	}

	return fmt.Sprintf(`You are an expert planetary scientist. Given an asteroid with these characteristics:
- Name: %s
- Diameter: %s km (%s meters)
- Velocity: %s km/h
- Miss distance: %s million km (if it were to hit)
- Risk level: %s
- Potentially hazardous: %s

Write a concise, scientifically-informed paragraph (3-5 sentences) describing what would happen if this asteroid actually hit Earth. Consider: impact energy, crater size, blast radius, regional vs global effects, tsunamis if ocean impact, climate effects. Be realistic but engaging. Use plain language.`,
		name, diameterKm, diameterM, velocity, missDistance, riskLevel, hazardous)
}

// sendCompletionError keeps the OpenAI auth and quota statuses visible to
// the caller; everything else collapses to a 500.
func sendCompletionError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "Failed to generate hypothetical impact scenario"

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.HTTPStatusCode == fiber.StatusUnauthorized || apiErr.HTTPStatusCode == fiber.StatusTooManyRequests {
			status = apiErr.HTTPStatusCode
		}
		if apiErr.Message != "" {
			message = apiErr.Message
		}
	}

	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}
