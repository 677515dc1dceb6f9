package planner

import (
	"fmt"
	"strings"

	"github.com/julianstephens/fitcoach/internal/models"
)

// BuildPrompt describes the profile to the model. Credentials and history
// never leave the process.
func BuildPrompt(u models.UserProfile) string {
	var b strings.Builder
	b.WriteString("Act as an expert fitness coach and nutritionist. Create a personalized diet and workout plan for this person.\n\n")
	fmt.Fprintf(&b, "Name: %s\n", u.Name)
	fmt.Fprintf(&b, "Age: %d\n", u.Age)
	fmt.Fprintf(&b, "Gender: %s\n", u.Gender)
	fmt.Fprintf(&b, "Height: %.0f cm\n", u.Height)
	fmt.Fprintf(&b, "Weight: %.1f kg\n", u.Weight)
	if bmi := u.BMI(); bmi > 0 {
		fmt.Fprintf(&b, "BMI: %.1f\n", bmi)
	}
	fmt.Fprintf(&b, "Activity level: %s\n", u.ActivityLevel)
	fmt.Fprintf(&b, "Goal: %s\n", u.FitnessGoal)
	fmt.Fprintf(&b, "Diet preference: %s\n", u.FoodPreference)
	if issues := strings.TrimSpace(u.HealthIssues); issues != "" {
		fmt.Fprintf(&b, "Health issues or injuries: %s\n", issues)
	} else {
		b.WriteString("Health issues or injuries: none reported\n")
	}

	b.WriteString("\nRequirements:\n")
	b.WriteString("- Daily calorie target and macro split (protein, carbs, fats in grams) suited to the goal.\n")
	b.WriteString("- A sample day of meals (breakfast, lunch, dinner, snacks) that respects the diet preference, with calories and macros per item.\n")
	b.WriteString("- A weekly workout routine appropriate to the activity level, with sets and reps per exercise.\n")
	b.WriteString("- Adapt every recommendation to the health issues listed above.\n")
	b.WriteString("- A short hydration tip and a motivating summary.\n")
	return b.String()
}
