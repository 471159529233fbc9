package nlu

import (
	"strings"

	"chatia/models"
)

// intentKeywords maps each actionable intent to its trigger substrings.
// Order matters: the first intent with a match wins, so reservation keywords
// shadow order keywords when both appear in one message.
var intentKeywords = []struct {
	intent   models.Intent
	keywords []string
}{
	{models.IntentReservation, []string{"réserver", "resa", "réservation", "table", "couverts", "book", "booking"}},
	{models.IntentOrder, []string{"commande", "commander", "livraison", "à emporter", "takeaway", "deliver"}},
	{models.IntentAppointment, []string{"rdv", "rendez-vous", "prise de rendez", "appointment", "booking a slot"}},
}

// questionPrefixes are the interrogative openers that mark a message as an
// info request ("ou" kept alongside "où" for accent-less typing).
var questionPrefixes = []string{"quand", "comment", "où", "ou", "quel", "combien", "est-ce"}

// DetectIntent classifies free text into exactly one intent. Matching is a
// lower-cased substring check against the keyword table in priority order;
// anything left over is INFO.
func DetectIntent(msg string) models.Intent {
	m := strings.ToLower(msg)
	for _, entry := range intentKeywords {
		for _, k := range entry.keywords {
			if strings.Contains(m, k) {
				return entry.intent
			}
		}
	}
	if strings.Contains(m, "?") || hasQuestionPrefix(m) {
		return models.IntentInfo
	}
	return models.IntentInfo
}

func hasQuestionPrefix(m string) bool {
	for _, p := range questionPrefixes {
		if strings.HasPrefix(m, p) {
			return true
		}
	}
	return false
}
