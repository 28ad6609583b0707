package forms

import (
	"testing"
	"time"

	"spendtrack/internal/models"
	"spendtrack/internal/testutil"
)

func TestAmountInputAllowed(t *testing.T) {
	allowed := []string{"", "1", "12.5", "0.", ".5", "1234567890", "0.00"}
	for _, v := range allowed {
		if !AmountInputAllowed(v) {
			t.Errorf("expected %q to be allowed", v)
		}
	}

	rejected := []string{"12.34.5", "abc", "-5", "-0", "1,5", "1e3", " 1", "$4"}
	for _, v := range rejected {
		if AmountInputAllowed(v) {
			t.Errorf("expected %q to be rejected", v)
		}
	}
}

func TestUniqueCandidates(t *testing.T) {
	categories := []models.Category{
		{ID: "c1", Name: "Food", UserID: "u1"},
		{ID: "c2", Name: "Travel", UserID: "u1"},
		{ID: "c3", Name: "Food", UserID: "u1"},
	}

	candidates := UniqueCandidates(categories)
	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(candidates))
	}
	if candidates[0].ID != "c1" || candidates[0].Name != "Food" {
		t.Errorf("expected first Food kept, got %+v", candidates[0])
	}
	if candidates[1].ID != "c2" || candidates[1].Name != "Travel" {
		t.Errorf("expected Travel second, got %+v", candidates[1])
	}
}

func TestValidate(t *testing.T) {
	day := time.Date(2024, 3, 1, 15, 4, 5, 0, time.UTC)
	candidates := []Candidate{
		{ID: "c1", Name: "Food"},
		{ID: "c2", Name: "Travel"},
	}

	valid := Fields{Title: "  Lunch  ", Amount: "12.5", CategoryID: "c1", Notes: " with team "}

	t.Run("normalizes a valid submission", func(t *testing.T) {
		input, err := Validate(valid, candidates, day)
		testutil.AssertNoError(t, err)

		if input.Title != "Lunch" {
			t.Errorf("expected trimmed title, got %q", input.Title)
		}
		if input.Amount != 12.5 {
			t.Errorf("expected amount 12.5, got %v", input.Amount)
		}
		if input.Category != "Food" {
			t.Errorf("expected category resolved to name Food, got %q", input.Category)
		}
		if input.Notes != "with team" {
			t.Errorf("expected trimmed notes, got %q", input.Notes)
		}
		if input.Date != "2024-03-01" {
			t.Errorf("expected date 2024-03-01, got %q", input.Date)
		}
	})

	t.Run("rejections", func(t *testing.T) {
		cases := []struct {
			name    string
			mutate  func(*Fields)
			message string
		}{
			{"blank title", func(f *Fields) { f.Title = "   " }, "title required"},
			{"empty amount", func(f *Fields) { f.Amount = "" }, "invalid amount"},
			{"zero amount", func(f *Fields) { f.Amount = "0" }, "invalid amount"},
			{"zero with decimals", func(f *Fields) { f.Amount = "0.00" }, "invalid amount"},
			{"non-numeric amount", func(f *Fields) { f.Amount = "abc" }, "invalid amount"},
			{"no category selected", func(f *Fields) { f.CategoryID = "" }, "category required"},
			{"stale category id", func(f *Fields) { f.CategoryID = "gone" }, "category not found"},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				fields := valid
				tc.mutate(&fields)
				_, err := Validate(fields, candidates, day)
				testutil.AssertAppError(t, err, "VALIDATION_ERROR")
				if err.Error() != tc.message {
					t.Errorf("expected message %q, got %q", tc.message, err.Error())
				}
			})
		}
	})
}

func TestValidateCategoryName(t *testing.T) {
	name, err := ValidateCategoryName("  Travel ")
	testutil.AssertNoError(t, err)
	if name != "Travel" {
		t.Errorf("expected trimmed name, got %q", name)
	}

	_, err = ValidateCategoryName("   ")
	testutil.AssertAppError(t, err, "VALIDATION_ERROR")
}
