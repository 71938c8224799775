package analyses

import (
	"strings"
	"testing"
)

func TestSurveyQuestionsFixedList(t *testing.T) {
	questions := SurveyQuestions()
	if len(questions) != 6 {
		t.Fatalf("expected 6 questions, got %d", len(questions))
	}

	// Callers get a copy; mutating it must not leak into later calls.
	questions[0] = "mutated"
	if SurveyQuestions()[0] == "mutated" {
		t.Fatalf("expected SurveyQuestions to return a copy")
	}
}

func TestBuildPromptEmbedsUserAndQuestions(t *testing.T) {
	prompt := BuildPrompt(UserData{Name: "Asha", Email: "asha@example.com", Phone: "+91-99999"})

	for _, want := range []string{"Asha", "asha@example.com", "+91-99999"} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("expected prompt to contain %q", want)
		}
	}
	for i, q := range SurveyQuestions() {
		if !strings.Contains(prompt, q) {
			t.Fatalf("expected prompt to contain question %d: %q", i+1, q)
		}
	}
	for _, key := range []string{"transcription", "overallScore", "confidenceLevel", "travelPersonality", "preferences", "spendingHabits", "goaExperience", "insights"} {
		if !strings.Contains(prompt, key) {
			t.Fatalf("expected prompt schema to name %q", key)
		}
	}
}
