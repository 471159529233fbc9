package mailer

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildMessage(t *testing.T) {
	msg := buildMessage("resto@chatia.app", "owner@example.fr", "Nouvelle réservation", "Récapitulatif :\n• 4 couverts")

	assert.True(t, strings.HasPrefix(msg, "From: resto@chatia.app\r\n"))
	assert.Contains(t, msg, "To: owner@example.fr\r\n")
	assert.Contains(t, msg, "Subject: Nouvelle réservation\r\n")
	assert.Contains(t, msg, "Content-Type: text/plain; charset=\"UTF-8\"\r\n")

	// Headers and body are separated by a blank line.
	parts := strings.SplitN(msg, "\r\n\r\n", 2)
	assert.Len(t, parts, 2)
	assert.Equal(t, "Récapitulatif :\n• 4 couverts", parts[1])
}

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"owner@example.fr", true},
		{" owner@example.fr ", true},
		{"", false},
		{"owner", false},
		{"owner@", false},
		{"@example.fr", false},
		{"owner@example", false},
		{"a@b@c.fr", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isValidEmail(tt.email), tt.email)
	}
}

func TestSendEmptyRecipientIsNoop(t *testing.T) {
	m := NewSMTPMailer(Config{Host: "smtp.example.com", Port: 465}, nil)
	assert.NoError(t, m.Send(context.Background(), "", "subject", "body"))
}

func TestSendRejectsInvalidRecipient(t *testing.T) {
	m := NewSMTPMailer(Config{Host: "smtp.example.com", Port: 465}, nil)
	assert.Error(t, m.Send(context.Background(), "not-an-address", "subject", "body"))
}

func TestFromFallsBack(t *testing.T) {
	m := NewSMTPMailer(Config{}, nil)
	assert.Equal(t, "noreply@chatia.app", m.from())

	m = NewSMTPMailer(Config{Username: "resto@gmail.com"}, nil)
	assert.Equal(t, "resto@gmail.com", m.from())

	m = NewSMTPMailer(Config{Username: "resto@gmail.com", From: "noreply@resto.fr"}, nil)
	assert.Equal(t, "noreply@resto.fr", m.from())
}
