package controller

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fquiz/fquiz/internal/access"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClearGrantCookiesHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	ctrl := &Controller{}
	router.POST("/auth/clear-passcodes", ctrl.ClearGrantCookiesHandler)

	req := httptest.NewRequest(http.MethodPost, "/auth/clear-passcodes", nil)
	req.AddCookie(&http.Cookie{Name: access.GrantCookieName("set-1"), Value: "tok1"})
	req.AddCookie(&http.Cookie{Name: access.GrantCookieName("set-2"), Value: "tok2"})
	req.AddCookie(&http.Cookie{Name: "session", Value: "keep-me"})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	expired := map[string]bool{}
	for _, cookie := range w.Result().Cookies() {
		assert.NotEqual(t, "session", cookie.Name)
		if cookie.MaxAge < 0 {
			expired[cookie.Name] = true
		}
	}
	assert.True(t, expired[access.GrantCookieName("set-1")])
	assert.True(t, expired[access.GrantCookieName("set-2")])
	assert.Len(t, expired, 2)
}

func TestClearGrantCookiesHandlerNoGrants(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	ctrl := &Controller{}
	router.POST("/auth/clear-passcodes", ctrl.ClearGrantCookiesHandler)

	req := httptest.NewRequest(http.MethodPost, "/auth/clear-passcodes", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "keep-me"})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Result().Cookies())
}
