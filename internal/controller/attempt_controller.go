package controller

import (
	"net/http"

	"github.com/fquiz/fquiz/internal/auth"
	"github.com/fquiz/fquiz/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// StartAttemptHandler godoc
// @Summary Start a quiz attempt
// @Description Opens a session against a set, subject to the same view rules as reading it
// @Tags attempts
// @Accept json
// @Produce json
// @Param attempt body dto.StartAttemptRequest true "Set to attempt"
// @Success 201 {object} dto.AttemptResponse
// @Failure 401 {object} dto.ErrorResponse "Passcode required"
// @Failure 404 {object} dto.ErrorResponse
// @Router /attempts [post]
func (ctrl *Controller) StartAttemptHandler(c *gin.Context) {
	var req dto.StartAttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind StartAttemptRequest")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	resp, err := ctrl.attemptSvc.StartAttempt(auth.IdentityFrom(c), grantToken(c, req.SetID), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// RecordResponseHandler godoc
// @Summary Record an answer within an attempt
// @Description Scores the answer immediately and returns the result
// @Tags attempts
// @Accept json
// @Produce json
// @Param id path string true "Attempt ID"
// @Param response body dto.RecordResponseRequest true "Chosen answer"
// @Success 201 {object} dto.ResponseResult
// @Failure 400 {object} dto.ErrorResponse "Duplicate answer or malformed body"
// @Failure 404 {object} dto.ErrorResponse
// @Router /attempts/{id}/responses [post]
func (ctrl *Controller) RecordResponseHandler(c *gin.Context) {
	var req dto.RecordResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	resp, err := ctrl.attemptSvc.RecordResponse(c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// SubmitAttemptHandler godoc
// @Summary Submit an attempt
// @Description Stamps the submission time and returns the scored summary
// @Tags attempts
// @Produce json
// @Param id path string true "Attempt ID"
// @Success 200 {object} dto.AttemptResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /attempts/{id}/submit [post]
func (ctrl *Controller) SubmitAttemptHandler(c *gin.Context) {
	resp, err := ctrl.attemptSvc.SubmitAttempt(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GenerateQuestionsHandler godoc
// @Summary Generate questions into a set
// @Description Runs the configured LLM provider over the prompt or a stored upload and inserts the validated batch
// @Tags generate
// @Accept json
// @Produce json
// @Param id path string true "Set ID"
// @Param request body dto.GenerateRequest true "Source, provider and count"
// @Success 201 {object} dto.GenerateQuestionsResponse
// @Failure 400 {object} dto.ErrorResponse "Bad provider config or input"
// @Failure 422 {object} dto.ErrorResponse "Model output failed validation"
// @Failure 502 {object} dto.ErrorResponse "Provider failure"
// @Router /sets/{id}/generate/questions [post]
func (ctrl *Controller) GenerateQuestionsHandler(c *gin.Context) {
	var req dto.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	resp, err := ctrl.generateSvc.GenerateQuestions(c.Request.Context(), c.Param("id"), auth.IdentityFrom(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// GenerateCardsHandler godoc
// @Summary Generate flashcards into a set
// @Tags generate
// @Accept json
// @Produce json
// @Param id path string true "Set ID"
// @Param request body dto.GenerateRequest true "Source, provider and count"
// @Success 201 {object} dto.GenerateCardsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /sets/{id}/generate/cards [post]
func (ctrl *Controller) GenerateCardsHandler(c *gin.Context) {
	var req dto.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	resp, err := ctrl.generateSvc.GenerateCards(c.Request.Context(), c.Param("id"), auth.IdentityFrom(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
