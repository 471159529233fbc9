package nlu

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"chatia/models"
)

// fallbackYear is used when a date carries no year. Hard-coded on purpose:
// downstream recap tests pin this value, so switching to the current year is
// a product decision, not a cleanup.
const fallbackYear = "2025"

var (
	partySizeRe = regexp.MustCompile(`(?i)(\d+)\s*(?:personnes|couverts|pers)`)
	dateRe      = regexp.MustCompile(`\b(\d{1,2})[/-](\d{1,2})(?:[/-](\d{2,4}))?\b`)
	timeRe      = regexp.MustCompile(`(?i)\b(\d{1,2})\s*h(?:\s*(\d{2}))?\b|\b(\d{1,2}):(\d{2})\b`)
	nameRe      = regexp.MustCompile(`(?i)m'appelle\s+([A-Za-zÀ-ÖØ-öø-ÿ' -]{2,})`)
	phoneRe     = regexp.MustCompile(`\b(\+?\d[\d\s]{7,}\d)\b`)
	emailRe     = regexp.MustCompile(`[\w.-]+@[\w.-]+\.\w{2,}`)
	orderItemRe = regexp.MustCompile(`(\d+)\s*x?\s*([A-Za-zÀ-ÖØ-öø-ÿ' -]{2,})`)
	whitespace  = regexp.MustCompile(`\s+`)
)

var (
	deliveryKeywords = []string{"livraison", "deliver"}
	takeawayKeywords = []string{"emporter", "à emporter", "takeaway"}
)

// ExtractSlots runs the rule-based extraction passes over one message.
// Each pass is independent and best-effort: no match leaves the slot unset,
// never an error. The result holds only what this message yielded; merging
// with prior state is the caller's job.
func ExtractSlots(msg string, intent models.Intent) models.Slots {
	var slots models.Slots

	if m := partySizeRe.FindStringSubmatch(msg); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			slots.PartySize = n
		}
	}

	if m := dateRe.FindStringSubmatch(msg); m != nil {
		d, _ := strconv.Atoi(m[1])
		mo, _ := strconv.Atoi(m[2])
		y := m[3]
		if y == "" {
			y = fallbackYear
		}
		yn, _ := strconv.Atoi(y)
		// No calendar validation: "31/02" passes through as-is.
		slots.Date = fmt.Sprintf("%04d-%02d-%02d", yn, mo, d)
	}

	if m := timeRe.FindStringSubmatch(msg); m != nil {
		var hh, mm int
		if m[1] != "" {
			hh, _ = strconv.Atoi(m[1])
			if m[2] != "" {
				mm, _ = strconv.Atoi(m[2])
			}
		} else {
			hh, _ = strconv.Atoi(m[3])
			mm, _ = strconv.Atoi(m[4])
		}
		slots.Time = fmt.Sprintf("%02d:%02d", hh, mm)
	}

	if m := nameRe.FindStringSubmatch(msg); m != nil {
		slots.Name = strings.TrimSpace(m[1])
	}

	if m := phoneRe.FindStringSubmatch(msg); m != nil {
		slots.Contact = &models.Contact{Phone: whitespace.ReplaceAllString(m[1], "")}
	}
	if m := emailRe.FindString(msg); m != "" {
		if slots.Contact == nil {
			slots.Contact = &models.Contact{}
		}
		slots.Contact.Email = m
	}

	if intent == models.IntentOrder {
		var items []models.OrderItem
		for _, m := range orderItemRe.FindAllStringSubmatch(msg, -1) {
			q, _ := strconv.Atoi(m[1])
			product := strings.Trim(strings.TrimSpace(m[2]), ",.")
			if q > 0 && utf8.RuneCountInString(product) > 1 {
				items = append(items, models.OrderItem{ProductName: product, Quantity: q, Options: []string{}})
			}
		}
		if len(items) > 0 {
			slots.Items = items
		}

		lower := strings.ToLower(msg)
		if containsAny(lower, deliveryKeywords) {
			slots.Mode = "delivery"
		} else if containsAny(lower, takeawayKeywords) {
			slots.Mode = "takeaway"
		}
	}

	return slots
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
