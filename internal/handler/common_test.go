package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func testContext() echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestGetUserIDAcceptsNumericTypes(t *testing.T) {
	for _, v := range []interface{}{uint64(7), int(7), int64(7), float64(7), "7"} {
		c := testContext()
		c.Set("user_id", v)
		id, err := getUserID(c)
		assert.NoError(t, err)
		assert.Equal(t, uint64(7), id)
	}
}

func TestGetUserIDRejectsMissingOrGarbage(t *testing.T) {
	c := testContext()
	_, err := getUserID(c)
	assert.Error(t, err)

	c = testContext()
	c.Set("user_id", "not-a-number")
	_, err = getUserID(c)
	assert.Error(t, err)
}

func TestPathID(t *testing.T) {
	c := testContext()
	c.SetParamNames("id")
	c.SetParamValues("42")
	id, ok := pathID(c, "id")
	assert.True(t, ok)
	assert.Equal(t, uint64(42), id)

	for _, bad := range []string{"0", "-3", "abc", ""} {
		c := testContext()
		c.SetParamNames("id")
		c.SetParamValues(bad)
		_, ok := pathID(c, "id")
		assert.False(t, ok)
	}
}
