// Package planner produces diet and workout plans with a generative model.
package planner

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/julianstephens/fitcoach/internal/constants"
	"github.com/julianstephens/fitcoach/internal/logger"
	"github.com/julianstephens/fitcoach/internal/models"
)

var ErrNoAPIKey = stderrors.New("no Gemini API key configured (set GEMINI_API_KEY or run 'fitcoach keyring set')")

// contentGenerator is the part of *genai.Models the planner calls.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Gemini generates plans through the Gemini API using a JSON response schema.
type Gemini struct {
	models contentGenerator
	model  string
}

// NewGemini connects a client for apiKey. An empty model selects the default.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrNoAPIKey
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return newGemini(client.Models, model), nil
}

func newGemini(m contentGenerator, model string) *Gemini {
	if model == "" {
		model = constants.DefaultGeminiModel
	}
	return &Gemini{models: m, model: model}
}

func (g *Gemini) Model() string {
	return g.model
}

func (g *Gemini) Generate(ctx context.Context, user models.UserProfile) (models.GeneratedPlan, error) {
	logger.Debug("Requesting plan", "model", g.model, "user", user.ID)

	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(BuildPrompt(user)), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   planSchema(),
	})
	if err != nil {
		return models.GeneratedPlan{}, fmt.Errorf("gemini request failed: %w", err)
	}
	if resp == nil {
		return models.GeneratedPlan{}, stderrors.New("gemini returned no response")
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return models.GeneratedPlan{}, stderrors.New("gemini returned an empty response")
	}
	return decodePlan(text)
}

// decodePlan tolerates a fenced code block around the JSON.
func decodePlan(text string) (models.GeneratedPlan, error) {
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	var plan models.GeneratedPlan
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &plan); err != nil {
		return models.GeneratedPlan{}, fmt.Errorf("failed to parse plan: %w", err)
	}
	return plan, nil
}

func planSchema() *genai.Schema {
	str := &genai.Schema{Type: genai.TypeString}
	num := &genai.Schema{Type: genai.TypeNumber}

	meal := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"name": str, "description": str,
			"calories": num, "protein": num, "carbs": num, "fats": num,
		},
		Required: []string{"name", "calories", "description", "protein", "carbs", "fats"},
	}
	meals := &genai.Schema{Type: genai.TypeArray, Items: meal}

	exercise := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"name": str, "sets": str, "reps": str, "notes": str,
		},
		Required: []string{"name", "sets", "reps"},
	}
	day := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"dayName":   str,
			"exercises": {Type: genai.TypeArray, Items: exercise},
		},
		Required: []string{"dayName", "exercises"},
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"dietPlan": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"dailyMacros": {
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"protein": num, "carbs": num, "fats": num, "totalCalories": num,
						},
						Required: []string{"protein", "carbs", "fats", "totalCalories"},
					},
					"sampleDay": {
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"breakfast": meals, "lunch": meals, "dinner": meals, "snacks": meals,
						},
						Required: []string{"breakfast", "lunch", "dinner", "snacks"},
					},
					"hydrationTips": str,
				},
				Required: []string{"dailyMacros", "sampleDay", "hydrationTips"},
			},
			"workoutPlan": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"frequency": str,
					"routine":   {Type: genai.TypeArray, Items: day},
				},
				Required: []string{"frequency", "routine"},
			},
			"summary": str,
		},
		Required: []string{"dietPlan", "workoutPlan", "summary"},
	}
}

// Unavailable is the generator used when no API key is configured. Every
// call fails with Reason.
type Unavailable struct {
	Reason error
}

func (u Unavailable) Generate(context.Context, models.UserProfile) (models.GeneratedPlan, error) {
	if u.Reason == nil {
		return models.GeneratedPlan{}, ErrNoAPIKey
	}
	return models.GeneratedPlan{}, u.Reason
}
