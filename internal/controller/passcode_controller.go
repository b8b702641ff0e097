package controller

import (
	"net/http"
	"strings"

	"github.com/fquiz/fquiz/internal/access"
	"github.com/fquiz/fquiz/internal/auth"
	"github.com/fquiz/fquiz/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const grantCookieMaxAge = 30 * 24 * 60 * 60

// VerifyPasscodeHandler godoc
// @Summary Verify a set passcode
// @Description Form post. On success sets the per-set grant cookie and redirects back to the set.
// @Tags passcode
// @Accept x-www-form-urlencoded
// @Param id path string true "Set ID"
// @Param passcode formData string true "Passcode"
// @Param redirect formData string false "Relative URL to return to"
// @Success 303 "Redirect with grant cookie"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse "Wrong passcode or expired configuration"
// @Router /sets/{id}/passcode [post]
func (ctrl *Controller) VerifyPasscodeHandler(c *gin.Context) {
	setID := c.Param("id")
	var req dto.VerifyPasscodeRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	token, err := ctrl.passcodeSvc.Verify(setID, req.Passcode)
	if err != nil {
		respondError(c, err)
		return
	}

	// The server-side expiry embedded in the token is authoritative; the
	// cookie max-age is only a hint to the browser.
	c.SetCookie(access.GrantCookieName(setID), token, grantCookieMaxAge, "/", "", false, true)
	log.Info().Str("setId", setID).Msg("Passcode verified, grant issued")

	if target := safeRedirect(req.Redirect); target != "" {
		c.Redirect(http.StatusSeeOther, target)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "passcode accepted"})
}

// safeRedirect accepts only same-origin relative paths.
func safeRedirect(target string) string {
	if strings.HasPrefix(target, "/") && !strings.HasPrefix(target, "//") {
		return target
	}
	return ""
}

// ClearGrantCookiesHandler godoc
// @Summary Drop every passcode grant held by this browser
// @Description Expires all per-set grant cookies on the requesting client
// @Tags auth
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Router /auth/clear-passcodes [post]
func (ctrl *Controller) ClearGrantCookiesHandler(c *gin.Context) {
	cleared := 0
	for _, cookie := range c.Request.Cookies() {
		if strings.HasPrefix(cookie.Name, access.GrantCookiePrefix) {
			c.SetCookie(cookie.Name, "", -1, "/", "", false, true)
			cleared++
		}
	}
	log.Info().Int("cleared", cleared).Msg("Passcode grants cleared")
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "passcode grants cleared"})
}

// SetPasscodeHandler godoc
// @Summary Set or replace a set's passcode
// @Tags passcode
// @Accept json
// @Param id path string true "Set ID"
// @Param passcode body dto.SetPasscodeRequest true "Passcode and optional expiry"
// @Success 204 "No Content"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /sets/{id}/passcode/manage [put]
func (ctrl *Controller) SetPasscodeHandler(c *gin.Context) {
	var req dto.SetPasscodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	if err := ctrl.passcodeSvc.SetPasscode(c.Param("id"), auth.IdentityFrom(c), req); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ClearPasscodeHandler godoc
// @Summary Remove a set's passcode gate
// @Tags passcode
// @Param id path string true "Set ID"
// @Success 204 "No Content"
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /sets/{id}/passcode/manage [delete]
func (ctrl *Controller) ClearPasscodeHandler(c *gin.Context) {
	if err := ctrl.passcodeSvc.ClearPasscode(c.Param("id"), auth.IdentityFrom(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
