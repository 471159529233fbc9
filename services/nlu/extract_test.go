package nlu

import (
	"testing"

	"chatia/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractSlotsReservation(t *testing.T) {
	slots := ExtractSlots("Table pour 4 personnes le 14/09 à 20h", models.IntentReservation)

	assert.Equal(t, 4, slots.PartySize)
	assert.Equal(t, "2025-09-14", slots.Date)
	assert.Equal(t, "20:00", slots.Time)
	assert.Empty(t, slots.Name)
	assert.Nil(t, slots.Contact)
}

func TestExtractSlotsNameAndPhone(t *testing.T) {
	slots := ExtractSlots("je m'appelle Marie, mon numéro est 0612345678", models.IntentReservation)

	assert.Equal(t, "Marie", slots.Name)
	require.NotNil(t, slots.Contact)
	assert.Equal(t, "0612345678", slots.Contact.Phone)
	assert.Empty(t, slots.Contact.Email)
}

func TestExtractSlotsPhoneWhitespaceStripped(t *testing.T) {
	slots := ExtractSlots("rappelez-moi au 06 12 34 56 78", models.IntentReservation)

	require.NotNil(t, slots.Contact)
	assert.Equal(t, "0612345678", slots.Contact.Phone)
}

func TestExtractSlotsEmailAloneCreatesContact(t *testing.T) {
	slots := ExtractSlots("voici mon mail marie.dupont@example.fr", models.IntentReservation)

	require.NotNil(t, slots.Contact)
	assert.Equal(t, "marie.dupont@example.fr", slots.Contact.Email)
	assert.Empty(t, slots.Contact.Phone)
}

func TestExtractSlotsPhoneAndEmailMerged(t *testing.T) {
	slots := ExtractSlots("06 12 34 56 78 ou bien contact@resto.fr", models.IntentReservation)

	require.NotNil(t, slots.Contact)
	assert.Equal(t, "0612345678", slots.Contact.Phone)
	assert.Equal(t, "contact@resto.fr", slots.Contact.Email)
}

func TestExtractSlotsDate(t *testing.T) {
	tests := []struct {
		name string
		msg  string
		want string
	}{
		{"day and month only, fallback year", "le 14/09 svp", "2025-09-14"},
		{"full year", "le 14/09/2026", "2026-09-14"},
		{"two-digit year kept verbatim", "le 14/09/26", "0026-09-14"},
		{"dash separator", "le 5-1", "2025-01-05"},
		{"no calendar validation", "le 31/02", "2025-02-31"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractSlots(tt.msg, models.IntentReservation).Date)
		})
	}
}

func TestExtractSlotsTime(t *testing.T) {
	tests := []struct {
		name string
		msg  string
		want string
	}{
		{"h form, minutes default to 00", "vers 20h", "20:00"},
		{"h form with minutes", "vers 20h30", "20:30"},
		{"uppercase H", "vers 9H15", "09:15"},
		{"colon form", "à 19:45", "19:45"},
		{"single digit hour padded", "à 8h", "08:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractSlots(tt.msg, models.IntentReservation).Time)
		})
	}
}

func TestExtractSlotsOrderItems(t *testing.T) {
	slots := ExtractSlots("2 pizzas, 1 tiramisu, livraison", models.IntentOrder)

	require.Len(t, slots.Items, 2)
	assert.Equal(t, models.OrderItem{ProductName: "pizzas", Quantity: 2, Options: []string{}}, slots.Items[0])
	assert.Equal(t, models.OrderItem{ProductName: "tiramisu", Quantity: 1, Options: []string{}}, slots.Items[1])
	assert.Equal(t, "delivery", slots.Mode)
}

func TestExtractSlotsOrderItemsFiltered(t *testing.T) {
	// Zero quantities and single-character names are discarded.
	slots := ExtractSlots("0 pizzas et 3 a", models.IntentOrder)
	assert.Empty(t, slots.Items)
}

func TestExtractSlotsOrderMode(t *testing.T) {
	// Delivery keywords are checked before takeaway keywords.
	slots := ExtractSlots("1 pizza en livraison ou à emporter", models.IntentOrder)
	assert.Equal(t, "delivery", slots.Mode)

	slots = ExtractSlots("2 menus à emporter", models.IntentOrder)
	assert.Equal(t, "takeaway", slots.Mode)

	slots = ExtractSlots("2 menus", models.IntentOrder)
	assert.Empty(t, slots.Mode)
}

func TestExtractSlotsItemsIgnoredOutsideOrder(t *testing.T) {
	slots := ExtractSlots("2 pizzas, 1 tiramisu, livraison", models.IntentReservation)
	assert.Empty(t, slots.Items)
	assert.Empty(t, slots.Mode)
}

func TestExtractSlotsNoMatchLeavesSlotsUnset(t *testing.T) {
	slots := ExtractSlots("bonsoir", models.IntentReservation)
	assert.Equal(t, models.Slots{}, slots)
}

func TestExtractSlotsIdempotent(t *testing.T) {
	msg := "Table pour 4 personnes le 14/09 à 20h, je m'appelle Marie"
	first := ExtractSlots(msg, models.IntentReservation)
	second := ExtractSlots(msg, models.IntentReservation)
	assert.Equal(t, first, second)
}
