package planner

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"strings"
	"testing"

	"google.golang.org/genai"

	"github.com/julianstephens/fitcoach/internal/models"
	"github.com/julianstephens/fitcoach/internal/storage/storagetest"
)

type fakeModels struct {
	text   string
	err    error
	model  string
	prompt string
	config *genai.GenerateContentConfig
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model = model
	f.config = config
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		f.prompt = contents[0].Parts[0].Text
	}
	if f.err != nil {
		return nil, f.err
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: f.text}}},
		}},
	}, nil
}

func testUser() models.UserProfile {
	return models.UserProfile{
		ID:             "u1",
		Email:          "alice@x.com",
		Password:       "secret-pw",
		Name:           "Alice",
		Age:            34,
		Height:         170,
		Weight:         68,
		Gender:         models.GenderFemale,
		ActivityLevel:  models.ActivityVeryActive,
		FitnessGoal:    models.GoalGainMuscle,
		FoodPreference: models.FoodKeto,
		HealthIssues:   "knee pain",
	}
}

func planJSON(t *testing.T) string {
	t.Helper()
	data, err := json.Marshal(storagetest.SamplePlan("Stay consistent"))
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestGenerate(t *testing.T) {
	fake := &fakeModels{text: planJSON(t)}
	g := newGemini(fake, "")

	plan, err := g.Generate(t.Context(), testUser())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if plan.Summary != "Stay consistent" || plan.DietPlan.DailyMacros.TotalCalories != 1900 {
		t.Errorf("plan = %+v", plan)
	}
	if fake.model != "gemini-2.5-flash" {
		t.Errorf("model = %q, want default", fake.model)
	}
	if fake.config == nil || fake.config.ResponseMIMEType != "application/json" || fake.config.ResponseSchema == nil {
		t.Errorf("config = %+v, want JSON response schema", fake.config)
	}
	if !strings.Contains(fake.prompt, "knee pain") || !strings.Contains(fake.prompt, "Keto") {
		t.Errorf("prompt missing profile details:\n%s", fake.prompt)
	}
	if strings.Contains(fake.prompt, "secret-pw") || strings.Contains(fake.prompt, "alice@x.com") {
		t.Error("prompt leaks credentials")
	}
}

func TestGenerateFencedJSON(t *testing.T) {
	fake := &fakeModels{text: "```json\n" + planJSON(t) + "\n```"}
	if _, err := newGemini(fake, "custom-model").Generate(t.Context(), testUser()); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if fake.model != "custom-model" {
		t.Errorf("model = %q", fake.model)
	}
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name string
		fake *fakeModels
	}{
		{"request failure", &fakeModels{err: stderrors.New("429 resource exhausted")}},
		{"empty response", &fakeModels{text: "  "}},
		{"not json", &fakeModels{text: "Here is your plan!"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := newGemini(tt.fake, "").Generate(t.Context(), testUser()); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestNewGeminiRequiresKey(t *testing.T) {
	if _, err := NewGemini(t.Context(), " ", ""); !stderrors.Is(err, ErrNoAPIKey) {
		t.Errorf("NewGemini() error = %v, want ErrNoAPIKey", err)
	}
}

func TestUnavailable(t *testing.T) {
	if _, err := (Unavailable{}).Generate(t.Context(), testUser()); !stderrors.Is(err, ErrNoAPIKey) {
		t.Errorf("Generate() error = %v", err)
	}
	reason := stderrors.New("offline")
	if _, err := (Unavailable{Reason: reason}).Generate(t.Context(), testUser()); !stderrors.Is(err, reason) {
		t.Errorf("Generate() error = %v", err)
	}
}

func TestBuildPromptWithoutHealthIssues(t *testing.T) {
	u := testUser()
	u.HealthIssues = ""
	if p := BuildPrompt(u); !strings.Contains(p, "none reported") {
		t.Errorf("BuildPrompt() = %q", p)
	}
}
