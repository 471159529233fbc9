package nlu

import (
	"fmt"
	"strconv"
	"strings"

	"chatia/models"
)

// requiredFields lists, per intent, the slot names that must be filled before
// the interaction is complete. List order drives the order missing fields are
// reported (and therefore asked) in.
var requiredFields = map[models.Intent][]string{
	models.IntentReservation: {"party_size", "date", "time", "name", "contact"},
	models.IntentOrder:       {"items", "mode", "customer", "time_preference"},
	models.IntentAppointment: {"service", "date", "time", "customer"},
}

// defaultPrompts holds the follow-up question for each slot name. One global
// table: the intent does not change the wording.
var defaultPrompts = map[string]string{
	"party_size":          "Pour combien de personnes ?",
	"date":                "Quel jour souhaitez-vous ? (ex: 14/09 ou samedi prochain)",
	"time":                "À quelle heure ? (ex: 20:00)",
	"name":                "À quel nom dois-je réserver ?",
	"contact":             "Un téléphone ou un e-mail pour vous joindre ?",
	"items":               "Que souhaitez-vous commander ? (ex: 2 margherita, 1 tiramisu)",
	"mode":                "Préférez-vous la livraison ou à emporter ?",
	"address":             "Quelle est l’adresse de livraison ?",
	"postal_code":         "Quel est le code postal ?",
	"city":                "Dans quelle ville ?",
	"time_preference":     "Plutôt au plus vite ou à une heure précise ?",
	"service":             "Quel service souhaitez-vous ?",
	"customer":            "À quel nom dois-je noter votre demande ? (nom + téléphone ou e-mail)",
	"location_preference": "Préférez-vous sur place ou à distance ?",
}

// NextMissingSlots returns the required fields still absent for the intent,
// in table order. A contact/customer field only counts as present when it
// actually has a phone or an email. Unknown intents require nothing.
func NextMissingSlots(intent models.Intent, slots models.Slots) []string {
	missing := []string{}
	for _, k := range requiredFields[intent] {
		if !slotPresent(k, slots) {
			missing = append(missing, k)
		}
	}
	return missing
}

func slotPresent(field string, slots models.Slots) bool {
	switch field {
	case "party_size":
		return slots.PartySize != 0
	case "date":
		return slots.Date != ""
	case "time":
		return slots.Time != ""
	case "name":
		return slots.Name != ""
	case "contact":
		return slots.Contact.Filled()
	case "customer":
		return slots.Customer.Filled()
	case "items":
		return len(slots.Items) > 0
	case "mode":
		return slots.Mode != ""
	case "time_preference":
		return slots.TimePreference != ""
	case "service":
		return slots.Service != ""
	case "address":
		return slots.Address != ""
	case "postal_code":
		return slots.PostalCode != ""
	case "city":
		return slots.City != ""
	case "location_preference":
		return slots.LocationPreference != ""
	default:
		return false
	}
}

// AskFor returns the question to ask for a missing slot. The intent is part
// of the contract but unused: prompts are global.
func AskFor(slot string, intent models.Intent) string {
	if p, ok := defaultPrompts[slot]; ok {
		return p
	}
	return "Pouvez-vous préciser ?"
}

// Recap renders the human-readable confirmation summary for an intent. It
// never fails: absent slots render as "?" or "—" so a recap can be shown at
// any point in the conversation.
func Recap(intent models.Intent, slots models.Slots) string {
	switch intent {
	case models.IntentReservation:
		contactDisp := slots.Contact.Best()
		if contactDisp == "" {
			contactDisp = "—"
		}
		return fmt.Sprintf(
			"Récapitulatif :\n"+
				"• %s couverts — %s à %s\n"+
				"• Nom : %s, Contact : %s\n"+
				"• Notes : %s\n"+
				"Je confirme et j’envoie au restaurant ?",
			intOrQ(slots.PartySize), orQ(slots.Date), orQ(slots.Time),
			orQ(slots.Name), contactDisp,
			orDash(slots.SpecialRequests),
		)

	case models.IntentOrder:
		lines := make([]string, 0, len(slots.Items))
		for _, it := range slots.Items {
			lines = append(lines, fmt.Sprintf("- %d× %s", it.Quantity, it.ProductName))
		}
		itemsStr := strings.Join(lines, "\n")
		if itemsStr == "" {
			itemsStr = "—"
		}
		timePref := slots.TimePreference
		if timePref == "" {
			timePref = "au plus vite"
		}
		return fmt.Sprintf(
			"Récapitulatif :\n"+
				"%s\n"+
				"• Mode : %s\n"+
				"• Pour : %s\n"+
				"• Client : %s (%s)\n"+
				"Je valide et j’envoie ?",
			itemsStr, orQ(slots.Mode), timePref,
			contactName(slots.Customer), orQ(slots.Customer.Best()),
		)

	case models.IntentAppointment:
		return fmt.Sprintf(
			"Récapitulatif :\n"+
				"• Service : %s\n"+
				"• Quand : %s à %s\n"+
				"• Client : %s (%s)\n"+
				"• Préférence : %s\n"+
				"Je confirme et j’envoie ?",
			orQ(slots.Service), orQ(slots.Date), orQ(slots.Time),
			contactName(slots.Customer), orQ(slots.Customer.Best()),
			orDash(slots.LocationPreference),
		)
	}

	return "Je n'ai pas assez d'informations."
}

func orQ(s string) string {
	if s == "" {
		return "?"
	}
	return s
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}

func intOrQ(n int) string {
	if n == 0 {
		return "?"
	}
	return strconv.Itoa(n)
}

func contactName(c *models.Contact) string {
	if c == nil || c.Name == "" {
		return "?"
	}
	return c.Name
}
