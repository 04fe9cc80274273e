package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func performTableGET(h echo.HandlerFunc, id string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id)
	_ = h(c)
	return rec
}

func TestReservationHistoryRejectsBadID(t *testing.T) {
	h := &StaffTableHandler{}
	for _, bad := range []string{"abc", "0", ""} {
		rec := performTableGET(h.ReservationHistory, bad)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	}
}

func TestSetStatusRejectsBadID(t *testing.T) {
	h := &StaffTableHandler{}
	rec := performTableGET(h.SetStatus, "not-a-number")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
