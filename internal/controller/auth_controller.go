package controller

import (
	"net/http"

	"github.com/fquiz/fquiz/internal/auth"
	"github.com/fquiz/fquiz/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const guestCookieMaxAge = 365 * 24 * 60 * 60

// LoginHandler godoc
// @Summary Log in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Email and password"
// @Success 200 {object} dto.TokenResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse "Wrong credentials"
// @Router /auth/login [post]
func (ctrl *Controller) LoginHandler(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	resp, err := ctrl.authSvc.Login(req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.SetCookie(auth.SessionCookieName, resp.Token, 24*60*60, "/", "", false, true)
	c.JSON(http.StatusOK, resp)
}

// GuestCheckinHandler godoc
// @Summary Check in as a guest
// @Description Finds or creates the user for the email and remembers it through a cookie
// @Tags guest
// @Accept json
// @Produce json
// @Param guest body dto.GuestCheckinRequest true "Guest email, optional name and password"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse "Registered account, password required"
// @Failure 403 {object} dto.ErrorResponse "Wrong password"
// @Router /guest/checkin [post]
func (ctrl *Controller) GuestCheckinHandler(c *gin.Context) {
	var req dto.GuestCheckinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	resp, err := ctrl.authSvc.GuestCheckin(req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.SetCookie(auth.GuestCookieName, resp.Email, guestCookieMaxAge, "/", "", false, true)
	log.Info().Str("email", resp.Email).Msg("Guest checked in")
	c.JSON(http.StatusOK, resp)
}

// GuestCheckoutHandler godoc
// @Summary Check out a guest session
// @Tags guest
// @Success 204 "No Content"
// @Router /guest/checkout [post]
func (ctrl *Controller) GuestCheckoutHandler(c *gin.Context) {
	c.SetCookie(auth.GuestCookieName, "", -1, "/", "", false, true)
	c.Status(http.StatusNoContent)
}

// ClaimCodenameHandler godoc
// @Summary Claim a display codename for an anonymous guest
// @Tags guest
// @Produce json
// @Success 200 {object} dto.CodenameResponse
// @Router /guest/claim-codename [post]
func (ctrl *Controller) ClaimCodenameHandler(c *gin.Context) {
	codename, err := ctrl.authSvc.ClaimCodename()
	if err != nil {
		respondError(c, err)
		return
	}
	log.Info().Str("codename", codename).Msg("Guest codename claimed")
	c.JSON(http.StatusOK, dto.CodenameResponse{Codename: codename})
}

// ReleaseCodenameHandler godoc
// @Summary Return a claimed codename to the pool
// @Tags guest
// @Accept json
// @Param codename body dto.ReleaseCodenameRequest true "Codename to release"
// @Success 204 "No Content"
// @Failure 400 {object} dto.ErrorResponse
// @Router /guest/release-codename [post]
func (ctrl *Controller) ReleaseCodenameHandler(c *gin.Context) {
	var req dto.ReleaseCodenameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	if err := ctrl.authSvc.ReleaseCodename(req.Codename); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ForgotPasswordHandler godoc
// @Summary Request a password reset token
// @Description Replies identically whether or not the email has an account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ForgotPasswordRequest true "Account email"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /auth/forgot-password [post]
func (ctrl *Controller) ForgotPasswordHandler(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	if err := ctrl.authSvc.ForgotPassword(req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "if the email has an account, a reset link was issued"})
}

// ResetPasswordHandler godoc
// @Summary Reset a password with a token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ResetPasswordRequest true "Reset token and new password"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid or expired token"
// @Router /auth/reset-password [post]
func (ctrl *Controller) ResetPasswordHandler(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	if err := ctrl.authSvc.ResetPassword(req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "password updated"})
}
