package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func performGET(h echo.HandlerFunc, target string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	_ = h(c)
	return rec
}

func TestSlotsRequiresDate(t *testing.T) {
	h := &PublicHandler{}
	rec := performGET(h.Slots, "/v1/slots")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSlotsRejectsMalformedDate(t *testing.T) {
	h := &PublicHandler{}
	rec := performGET(h.Slots, "/v1/slots?date=30-08-2026")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSlotsFutureDateReturnsFullDay(t *testing.T) {
	h := &PublicHandler{}
	rec := performGET(h.Slots, "/v1/slots?date=2099-01-01")
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Date  string   `json:"date"`
		Slots []string `json:"slots"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2099-01-01", body.Date)
	assert.Len(t, body.Slots, 13)
	assert.Equal(t, "10:00", body.Slots[0])
	assert.Equal(t, "22:00", body.Slots[12])
}

func TestSlotsPastDateReturnsEmptyList(t *testing.T) {
	h := &PublicHandler{}
	rec := performGET(h.Slots, "/v1/slots?date=2000-01-01")
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Slots []string `json:"slots"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Empty(t, body.Slots)
}

func TestAvailabilityValidatesParams(t *testing.T) {
	h := &PublicHandler{}

	rec := performGET(h.Availability, "/v1/tables/availability?guest_count=0&location=indoor")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = performGET(h.Availability, "/v1/tables/availability?guest_count=abc&location=indoor")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = performGET(h.Availability, "/v1/tables/availability?guest_count=4&location=rooftop")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
