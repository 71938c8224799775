package analyses

import (
	"fmt"
	"strings"
)

// surveyQuestions is the fixed interview script. Every record stores the same
// ordered list and the prompt embeds it verbatim.
var surveyQuestions = [6]string{
	"Tell us a little about yourself and what you do.",
	"How often do you travel, and what kind of trips do you enjoy the most?",
	"Have you visited Goa before? What did you like or dislike about it?",
	"How do you usually pick a cafe when you travel - the vibe, the price, or the reviews?",
	"How much do you typically spend at a cafe in a single visit?",
	"What would make a cafe in Goa a must-visit for you?",
}

// SurveyQuestions returns a copy of the fixed question list.
func SurveyQuestions() []string {
	out := make([]string, len(surveyQuestions))
	copy(out, surveyQuestions[:])
	return out
}

// BuildPrompt renders the instruction sent alongside the audio. It embeds the
// user's contact fields, the question list, and the exact JSON schema the
// model must reply with.
func BuildPrompt(user UserData) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are analyzing a voice survey recording from %s (email: %s, phone: %s).\n\n", user.Name, user.Email, user.Phone)
	b.WriteString("The user answered the following questions in order:\n")
	for i, q := range surveyQuestions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q)
	}

	b.WriteString(`
First transcribe the audio, then analyze the answers and respond with ONLY a JSON object in exactly this shape, with no extra commentary:

{
  "transcription": "full transcription of the audio",
  "analysis": {
    "overallScore": <number 0-100>,
    "confidenceLevel": "<High|Medium|Low>",
    "travelPersonality": [
      {"trait": "<trait name>", "percentage": <number 0-100>, "reason": "<short reason>"}
    ],
    "preferences": [
      {"preference": "<preference name>", "choice": "<what the user chose>", "percentage": <number 0-100>, "reason": "<short reason>", "priority": "<optional high|medium|low>"}
    ],
    "spendingHabits": {"cafeBudget": "<budget range>", "percentage": <number 0-100>, "reason": "<short reason>"},
    "goaExperience": {"score": <number 0-10>, "level": "<Expert|Moderate|First-timer>", "reason": "<short reason>"}
  },
  "insights": {
    "whyUseful": "<one sentence>",
    "benefits": ["<benefit>"],
    "opportunities": ["<opportunity>"],
    "recommendations": [
      {"category": "<category>", "items": ["<item>"]}
    ]
  }
}
`)

	return b.String()
}
