package analyses

import (
	"encoding/json"
	"strings"
)

const (
	transcriptionPlaceholder = "Transcription not available"
	noDataReason             = "No data available"
	whyUsefulDefault         = "This analysis helps tailor cafe and travel recommendations to your preferences."
)

// ParseModelReply parses the model's text reply as JSON after trimming
// optional code fences. A reply that cannot be parsed into a JSON object is
// not an error: the fixed fallback payload is substituted and the second
// return value reports the degrade.
func ParseModelReply(reply string) (map[string]any, bool) {
	text := stripCodeFences(reply)

	var parsed map[string]any
	if err := json.Unmarshal([]byte(text), &parsed); err != nil || parsed == nil {
		return FallbackAnalysis(), true
	}
	return parsed, false
}

// stripCodeFences removes an enclosing markdown fence, with or without a
// language tag, from the reply.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// Normalize fills every missing or falsy field of an analysis object with its
// documented default, recursing one level into nested objects. The result is
// field-complete: a record read back always exposes all sub-fields. Normalize
// is idempotent and extra keys pass through untouched.
func Normalize(in map[string]any) map[string]any {
	out := make(map[string]any, len(in)+3)
	for k, v := range in {
		out[k] = v
	}

	if falsy(out["transcription"]) {
		out["transcription"] = transcriptionPlaceholder
	}

	analysis := asObject(out["analysis"])
	if falsy(analysis["overallScore"]) {
		analysis["overallScore"] = float64(0)
	}
	if falsy(analysis["confidenceLevel"]) {
		analysis["confidenceLevel"] = "Unknown"
	}
	if _, ok := analysis["travelPersonality"].([]any); !ok {
		analysis["travelPersonality"] = []any{}
	}
	if _, ok := analysis["preferences"].([]any); !ok {
		analysis["preferences"] = []any{}
	}

	spending := asObject(analysis["spendingHabits"])
	if falsy(spending["cafeBudget"]) {
		spending["cafeBudget"] = "Unknown"
	}
	if falsy(spending["percentage"]) {
		spending["percentage"] = float64(0)
	}
	if falsy(spending["reason"]) {
		spending["reason"] = noDataReason
	}
	analysis["spendingHabits"] = spending

	goa := asObject(analysis["goaExperience"])
	if falsy(goa["score"]) {
		goa["score"] = float64(0)
	}
	if falsy(goa["level"]) {
		goa["level"] = "Unknown"
	}
	if falsy(goa["reason"]) {
		goa["reason"] = noDataReason
	}
	analysis["goaExperience"] = goa
	out["analysis"] = analysis

	insights := asObject(out["insights"])
	if falsy(insights["whyUseful"]) {
		insights["whyUseful"] = whyUsefulDefault
	}
	if _, ok := insights["benefits"].([]any); !ok {
		insights["benefits"] = []any{}
	}
	if _, ok := insights["opportunities"].([]any); !ok {
		insights["opportunities"] = []any{}
	}
	if _, ok := insights["recommendations"].([]any); !ok {
		insights["recommendations"] = []any{}
	}
	out["insights"] = insights

	return out
}

// FallbackAnalysis returns the fixed payload substituted when the model reply
// is not valid JSON. It is a fixed point of Normalize.
func FallbackAnalysis() map[string]any {
	return map[string]any{
		"transcription": "Audio transcription could not be processed",
		"analysis": map[string]any{
			"overallScore":    float64(72),
			"confidenceLevel": "Medium",
			"travelPersonality": []any{
				map[string]any{"trait": "Explorer", "percentage": float64(70), "reason": "Default profile applied"},
				map[string]any{"trait": "Comfort Seeker", "percentage": float64(55), "reason": "Default profile applied"},
			},
			"preferences": []any{
				map[string]any{"preference": "Cafe Atmosphere", "choice": "Relaxed and quiet", "percentage": float64(60), "reason": "Default profile applied"},
			},
			"spendingHabits": map[string]any{
				"cafeBudget": "INR 500-1000",
				"percentage": float64(65),
				"reason":     "Typical spending range applied",
			},
			"goaExperience": map[string]any{
				"score":  float64(6),
				"level":  "Moderate",
				"reason": "Default experience level applied",
			},
		},
		"insights": map[string]any{
			"whyUseful":     whyUsefulDefault,
			"benefits":      []any{"Personalized cafe recommendations", "Better trip planning"},
			"opportunities": []any{"Explore local cafes beyond the beach belt"},
			"recommendations": []any{
				map[string]any{
					"category": "Cafes",
					"items":    []any{"Try a work-friendly cafe in North Goa", "Visit a beach shack in South Goa"},
				},
			},
		},
	}
}

// asObject returns v as a mutable map, or a fresh map when v is missing,
// falsy, or not an object.
func asObject(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

// falsy mirrors the loose truthiness the normalization contract is defined
// in terms of: nil, empty string, false and numeric zero are falsy; objects
// and sequences are always truthy.
func falsy(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case bool:
		return !t
	case float64:
		return t == 0
	case int:
		return t == 0
	case int64:
		return t == 0
	case json.Number:
		f, err := t.Float64()
		return err == nil && f == 0
	default:
		return false
	}
}
