package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"chatia/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	to      string
	subject string
	body    string
	err     error
	calls   int
}

func (f *fakeMailer) Send(ctx context.Context, to, subject, body string) error {
	f.calls++
	f.to = to
	f.subject = subject
	f.body = body
	return f.err
}

func postJSON(t *testing.T, r *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateOrderSendsEmail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mailer := &fakeMailer{}
	h := NewNotifyHandler(mailer, "patron@resto.fr")

	r := gin.New()
	r.POST("/order", h.CreateOrder)

	w := postJSON(t, r, "/order", models.OrderRequest{
		CustomerName: "Marie",
		Items: []models.StructuredOrderItem{
			{Name: "pizzas margherita", Quantity: 2},
			{Name: "tiramisu", Quantity: 1, Notes: "sans café"},
		},
		Delivery:    "delivery",
		Address:     "12 rue des Lilas",
		DesiredTime: "19:30",
	})

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["ok"])

	assert.Equal(t, "patron@resto.fr", mailer.to)
	assert.Equal(t, "Nouvelle commande", mailer.subject)
	assert.Contains(t, mailer.body, "Nouvelle commande :")
	assert.Contains(t, mailer.body, "Client : Marie")
	assert.Contains(t, mailer.body, " - 2 x pizzas margherita")
	assert.Contains(t, mailer.body, " - 1 x tiramisu (notes: sans café)")
	assert.Contains(t, mailer.body, "Mode : delivery")
	assert.Contains(t, mailer.body, "Adresse : 12 rue des Lilas")
	assert.Contains(t, mailer.body, "Heure souhaitée : 19:30")
}

func TestCreateOrderWithoutRecipient(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mailer := &fakeMailer{}
	h := NewNotifyHandler(mailer, "")

	r := gin.New()
	r.POST("/order", h.CreateOrder)

	w := postJSON(t, r, "/order", models.OrderRequest{
		Items: []models.StructuredOrderItem{{Name: "pizza", Quantity: 1}},
	})

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["ok"])
	assert.NotEmpty(t, resp["error"])
	assert.Zero(t, mailer.calls)
}

func TestCreateOrderRejectsEmptyItems(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewNotifyHandler(&fakeMailer{}, "patron@resto.fr")

	r := gin.New()
	r.POST("/order", h.CreateOrder)

	w := postJSON(t, r, "/order", models.OrderRequest{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateReservationSendsEmail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mailer := &fakeMailer{}
	h := NewNotifyHandler(mailer, "patron@resto.fr")

	r := gin.New()
	r.POST("/reservation", h.CreateReservation)

	w := postJSON(t, r, "/reservation", models.ReservationRequest{
		CustomerName:  "Durand",
		CustomerPhone: "0612345678",
		People:        4,
		Date:          "2026-09-14",
		Time:          "20:00",
		Notes:         "près de la fenêtre",
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Nouvelle réservation", mailer.subject)
	assert.Contains(t, mailer.body, "Nouvelle réservation :")
	assert.Contains(t, mailer.body, "Client : Durand")
	assert.Contains(t, mailer.body, "Téléphone : 0612345678")
	assert.Contains(t, mailer.body, "Email : -")
	assert.Contains(t, mailer.body, "Personnes : 4")
	assert.Contains(t, mailer.body, "Date : 2026-09-14")
	assert.Contains(t, mailer.body, "Heure : 20:00")
	assert.Contains(t, mailer.body, "Notes : près de la fenêtre")
}

func TestCreateReservationRequiresPeople(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewNotifyHandler(&fakeMailer{}, "patron@resto.fr")

	r := gin.New()
	r.POST("/reservation", h.CreateReservation)

	w := postJSON(t, r, "/reservation", models.ReservationRequest{Date: "2026-09-14", Time: "20:00"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBuildOrderEmailBodyOmitsEmptySections(t *testing.T) {
	body := buildOrderEmailBody(models.OrderRequest{
		Items:    []models.StructuredOrderItem{{Name: "salade", Quantity: 1}},
		Delivery: "pickup",
	})

	assert.Contains(t, body, "Client : -")
	assert.Contains(t, body, "Mode : pickup")
	assert.NotContains(t, body, "Adresse :")
	assert.NotContains(t, body, "Heure souhaitée :")
	assert.NotContains(t, body, "Notes :")
}
