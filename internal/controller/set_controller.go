package controller

import (
	"net/http"

	"github.com/fquiz/fquiz/internal/access"
	"github.com/fquiz/fquiz/internal/auth"
	"github.com/fquiz/fquiz/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// grantToken pulls the per-set grant cookie, when present.
func grantToken(c *gin.Context, setID string) string {
	token, err := c.Cookie(access.GrantCookieName(setID))
	if err != nil {
		return ""
	}
	return token
}

// ListSetsHandler godoc
// @Summary List sets
// @Description Published sets for everyone; signed-in users also see their own unpublished sets
// @Tags sets
// @Produce json
// @Success 200 {array} dto.SetResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /sets [get]
func (ctrl *Controller) ListSetsHandler(c *gin.Context) {
	sets, err := ctrl.setSvc.ListSets(auth.IdentityFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sets)
}

// CreateSetHandler godoc
// @Summary Create a set
// @Description Create a flashcard or quiz set
// @Tags sets
// @Accept json
// @Produce json
// @Param set body dto.CreateSetRequest true "Set data"
// @Success 201 {object} dto.SetResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /sets [post]
func (ctrl *Controller) CreateSetHandler(c *gin.Context) {
	var req dto.CreateSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind CreateSetRequest")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	resp, err := ctrl.setSvc.CreateSet(auth.IdentityFrom(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// GetSetHandler godoc
// @Summary Get a set with its content
// @Description Fetch one set; passcode-gated sets need the grant cookie
// @Tags sets
// @Produce json
// @Param id path string true "Set ID"
// @Success 200 {object} dto.SetResponse
// @Failure 401 {object} dto.ErrorResponse "Passcode required"
// @Failure 403 {object} dto.ErrorResponse "Invalid grant or expired passcode"
// @Failure 404 {object} dto.ErrorResponse
// @Router /sets/{id} [get]
func (ctrl *Controller) GetSetHandler(c *gin.Context) {
	setID := c.Param("id")
	resp, err := ctrl.setSvc.GetSet(setID, auth.IdentityFrom(c), grantToken(c, setID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateSetHandler godoc
// @Summary Partially update a set
// @Description Title/description need edit access; publish state, type and options need admin access
// @Tags sets
// @Accept json
// @Produce json
// @Param id path string true "Set ID"
// @Param set body dto.UpdateSetRequest true "Fields to update"
// @Success 200 {object} dto.SetResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /sets/{id} [patch]
func (ctrl *Controller) UpdateSetHandler(c *gin.Context) {
	var req dto.UpdateSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	resp, err := ctrl.setSvc.UpdateSet(c.Param("id"), auth.IdentityFrom(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteSetHandler godoc
// @Summary Delete a set
// @Tags sets
// @Param id path string true "Set ID"
// @Success 204 "No Content"
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /sets/{id} [delete]
func (ctrl *Controller) DeleteSetHandler(c *gin.Context) {
	if err := ctrl.setSvc.DeleteSet(c.Param("id"), auth.IdentityFrom(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
