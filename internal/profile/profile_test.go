package profile

import (
	stderrors "errors"
	"math"
	"testing"
	"time"

	"github.com/julianstephens/fitcoach/internal/errors"
	"github.com/julianstephens/fitcoach/internal/models"
)

func ptr[T any](v T) *T { return &v }

var day1 = time.Date(2026, 3, 14, 9, 30, 0, 0, time.Local)

func fixedID() string { return "user-1" }

func newProfileInput(weight float64) models.ProfileInput {
	return models.ProfileInput{
		Name:           ptr("Alice"),
		Age:            ptr(31),
		Height:         ptr(168.0),
		Weight:         ptr(weight),
		Gender:         ptr(models.GenderFemale),
		ActivityLevel:  ptr(models.ActivityLightlyActive),
		FitnessGoal:    ptr(models.GoalLoseWeight),
		FoodPreference: ptr(models.FoodVegan),
	}
}

func TestSubmitCreate(t *testing.T) {
	draft := &Draft{Email: "alice@x.com", Password: "pw1"}

	u, err := Submit(nil, draft, newProfileInput(70), day1, fixedID)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if u.ID != "user-1" {
		t.Errorf("ID = %q, want user-1", u.ID)
	}
	if u.Email != "alice@x.com" || u.Password != "pw1" {
		t.Errorf("credentials = %q/%q, want draft credentials", u.Email, u.Password)
	}
	if !u.CreatedAt.Equal(day1) {
		t.Errorf("CreatedAt = %v, want %v", u.CreatedAt, day1)
	}
	want := []models.WeightLog{{Date: "2026-03-14", Weight: 70}}
	if len(u.WeightLogs) != 1 || u.WeightLogs[0] != want[0] {
		t.Errorf("WeightLogs = %v, want %v", u.WeightLogs, want)
	}
}

func TestSubmitCreateRequiresDraft(t *testing.T) {
	_, err := Submit(nil, nil, newProfileInput(70), day1, fixedID)
	if !stderrors.Is(err, errors.ErrNoDraft) {
		t.Errorf("Submit() error = %v, want ErrNoDraft", err)
	}
}

func TestSubmitCreateRejectsIncompleteForm(t *testing.T) {
	in := newProfileInput(70)
	in.Age = nil
	_, err := Submit(nil, &Draft{Email: "a@x.com", Password: "pw"}, in, day1, fixedID)
	if !stderrors.Is(err, errors.ErrInvalidProfile) {
		t.Errorf("Submit() error = %v, want ErrInvalidProfile", err)
	}
}

func TestSubmitEditPreservesIdentity(t *testing.T) {
	created, err := Submit(nil, &Draft{Email: "alice@x.com", Password: "pw1"}, newProfileInput(70), day1, fixedID)
	if err != nil {
		t.Fatalf("Submit(create) error = %v", err)
	}
	created, _ = LogWeight(created, 69, day1.AddDate(0, 0, 1))

	edits := []models.ProfileInput{
		{Name: ptr("Alice B")},
		{Age: ptr(32), FitnessGoal: ptr(models.GoalGainMuscle)},
		{HealthIssues: ptr("asthma"), Weight: ptr(72.0)},
	}

	current := created
	for i, edit := range edits {
		later := day1.AddDate(0, i+2, 0)
		next, err := Submit(&current, nil, edit, later, func() string { return "must-not-be-used" })
		if err != nil {
			t.Fatalf("edit %d: Submit() error = %v", i, err)
		}
		if next.ID != created.ID {
			t.Errorf("edit %d: ID changed to %q", i, next.ID)
		}
		if !next.CreatedAt.Equal(created.CreatedAt) {
			t.Errorf("edit %d: CreatedAt changed to %v", i, next.CreatedAt)
		}
		if next.Password != "pw1" {
			t.Errorf("edit %d: Password changed to %q", i, next.Password)
		}
		if len(next.WeightLogs) != len(created.WeightLogs) {
			t.Errorf("edit %d: WeightLogs = %v, want %v", i, next.WeightLogs, created.WeightLogs)
		}
		current = next
	}

	if current.Name != "Alice B" || current.Age != 32 || current.FitnessGoal != models.GoalGainMuscle {
		t.Errorf("edits not applied: %+v", current)
	}
	if current.Height != 168 {
		t.Errorf("untouched field changed: Height = %v", current.Height)
	}
}

func TestSubmitEditDoesNotAliasExistingLogs(t *testing.T) {
	existing := models.UserProfile{ID: "u", Email: "a@x.com", WeightLogs: []models.WeightLog{{Date: "2026-01-01", Weight: 80}}}
	edited, err := Submit(&existing, nil, models.ProfileInput{Name: ptr("A")}, day1, fixedID)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	edited.WeightLogs[0].Weight = 1
	if existing.WeightLogs[0].Weight != 80 {
		t.Error("edited profile shares WeightLogs with the original")
	}
}

func TestLogWeightSameDayOverwrites(t *testing.T) {
	u, _ := Submit(nil, &Draft{Email: "alice@x.com", Password: "pw1"}, newProfileInput(70), day1, fixedID)

	weights := []float64{69, 68.5, 68.9}
	for i, w := range weights {
		var err error
		u, err = LogWeight(u, w, day1.Add(time.Duration(i+1)*time.Hour))
		if err != nil {
			t.Fatalf("LogWeight(%v) error = %v", w, err)
		}
	}

	if len(u.WeightLogs) != 1 {
		t.Fatalf("WeightLogs = %v, want a single entry", u.WeightLogs)
	}
	if u.WeightLogs[0].Weight != 68.9 || u.Weight != 68.9 {
		t.Errorf("weight = %v / log = %v, want last value 68.9", u.Weight, u.WeightLogs[0])
	}
}

func TestLogWeightScenario(t *testing.T) {
	u, _ := Submit(nil, &Draft{Email: "alice@x.com", Password: "pw1"}, newProfileInput(70), day1, fixedID)

	u, _ = LogWeight(u, 69, day1)
	if len(u.WeightLogs) != 1 || u.WeightLogs[0] != (models.WeightLog{Date: "2026-03-14", Weight: 69}) || u.Weight != 69 {
		t.Fatalf("after same-day log: weight=%v logs=%v", u.Weight, u.WeightLogs)
	}

	u, _ = LogWeight(u, 68, day1.AddDate(0, 0, 1))
	want := []models.WeightLog{{Date: "2026-03-14", Weight: 69}, {Date: "2026-03-15", Weight: 68}}
	if len(u.WeightLogs) != 2 || u.WeightLogs[0] != want[0] || u.WeightLogs[1] != want[1] {
		t.Errorf("WeightLogs = %v, want %v", u.WeightLogs, want)
	}
	if u.Weight != 68 {
		t.Errorf("Weight = %v, want 68", u.Weight)
	}
}

func TestLogWeightSortsOutOfOrderHistory(t *testing.T) {
	u := models.UserProfile{
		ID: "u",
		WeightLogs: []models.WeightLog{
			{Date: "2026-03-10", Weight: 71},
			{Date: "2026-03-01", Weight: 73},
			{Date: "2026-03-05", Weight: 72},
		},
	}

	u, err := LogWeight(u, 70, day1)
	if err != nil {
		t.Fatalf("LogWeight() error = %v", err)
	}

	for i := 1; i < len(u.WeightLogs); i++ {
		if u.WeightLogs[i-1].Date >= u.WeightLogs[i].Date {
			t.Fatalf("WeightLogs not strictly ascending: %v", u.WeightLogs)
		}
	}
	if last := u.WeightLogs[len(u.WeightLogs)-1]; last.Date != "2026-03-14" {
		t.Errorf("last entry = %v, want today", last)
	}
}

func TestLogWeightRejectsInvalid(t *testing.T) {
	u := models.UserProfile{ID: "u", Weight: 70}
	for _, w := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if _, err := LogWeight(u, w, day1); !stderrors.Is(err, errors.ErrInvalidWeight) {
			t.Errorf("LogWeight(%v) error = %v, want ErrInvalidWeight", w, err)
		}
	}
}

func TestUpsert(t *testing.T) {
	alice := models.UserProfile{ID: "1", Email: "alice@x.com", Name: "Alice"}
	bob := models.UserProfile{ID: "2", Email: "bob@x.com", Name: "Bob"}

	t.Run("replaces by email and puts record first", func(t *testing.T) {
		updated := alice
		updated.Name = "Alice Updated"
		users, err := Upsert([]models.UserProfile{bob, alice}, updated)
		if err != nil {
			t.Fatalf("Upsert() error = %v", err)
		}
		if len(users) != 2 || users[0].Name != "Alice Updated" || users[1].ID != "2" {
			t.Errorf("Upsert() = %+v", users)
		}
	})

	t.Run("email change replaces by id", func(t *testing.T) {
		moved := alice
		moved.Email = "alice@new.com"
		users, err := Upsert([]models.UserProfile{alice, bob}, moved)
		if err != nil {
			t.Fatalf("Upsert() error = %v", err)
		}
		if len(users) != 2 {
			t.Fatalf("Upsert() left %d records, want 2", len(users))
		}
		if _, ok := FindByEmail(users, "alice@x.com"); ok {
			t.Error("old email still present after email change")
		}
	})

	t.Run("email owned by another user conflicts", func(t *testing.T) {
		clash := alice
		clash.Email = "BOB@x.com"
		_, err := Upsert([]models.UserProfile{alice, bob}, clash)
		if !stderrors.Is(err, errors.ErrAlreadyExists) {
			t.Errorf("Upsert() error = %v, want ErrAlreadyExists", err)
		}
	})

	t.Run("inserts into empty collection", func(t *testing.T) {
		users, err := Upsert(nil, alice)
		if err != nil || len(users) != 1 {
			t.Errorf("Upsert(nil) = %v, %v", users, err)
		}
	})
}

func TestFindByEmailIsCaseInsensitive(t *testing.T) {
	users := []models.UserProfile{{ID: "1", Email: "Alice@X.com"}}
	if _, ok := FindByEmail(users, " alice@x.COM "); !ok {
		t.Error("FindByEmail() should match ignoring case and surrounding space")
	}
	if _, ok := FindByID(users, "2"); ok {
		t.Error("FindByID() matched an unknown id")
	}
}
