package controller

import (
	"net/http"

	"github.com/fquiz/fquiz/internal/auth"
	"github.com/fquiz/fquiz/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ListCardsHandler godoc
// @Summary List the cards of a set
// @Tags cards
// @Produce json
// @Param id path string true "Set ID"
// @Success 200 {array} dto.CardResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /sets/{id}/cards [get]
func (ctrl *Controller) ListCardsHandler(c *gin.Context) {
	setID := c.Param("id")
	cards, err := ctrl.cardSvc.ListCards(setID, auth.IdentityFrom(c), grantToken(c, setID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cards)
}

// CreateCardHandler godoc
// @Summary Add a card to a set
// @Tags cards
// @Accept json
// @Produce json
// @Param id path string true "Set ID"
// @Param card body dto.CreateCardRequest true "Card data"
// @Success 201 {object} dto.CardResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /sets/{id}/cards [post]
func (ctrl *Controller) CreateCardHandler(c *gin.Context) {
	var req dto.CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind CreateCardRequest")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	resp, err := ctrl.cardSvc.CreateCard(c.Param("id"), auth.IdentityFrom(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// UpdateCardHandler godoc
// @Summary Update a card
// @Tags cards
// @Accept json
// @Produce json
// @Param id path string true "Card ID"
// @Param card body dto.UpdateCardRequest true "Fields to update"
// @Success 200 {object} dto.CardResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /cards/{id} [patch]
func (ctrl *Controller) UpdateCardHandler(c *gin.Context) {
	var req dto.UpdateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	resp, err := ctrl.cardSvc.UpdateCard(c.Param("id"), auth.IdentityFrom(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteCardHandler godoc
// @Summary Delete a card
// @Tags cards
// @Param id path string true "Card ID"
// @Success 204 "No Content"
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /cards/{id} [delete]
func (ctrl *Controller) DeleteCardHandler(c *gin.Context) {
	if err := ctrl.cardSvc.DeleteCard(c.Param("id"), auth.IdentityFrom(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListQuestionsHandler godoc
// @Summary List the questions of a set
// @Description Correct answers are omitted for takers when the set defers reveal
// @Tags questions
// @Produce json
// @Param id path string true "Set ID"
// @Success 200 {array} dto.QuestionResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /sets/{id}/questions [get]
func (ctrl *Controller) ListQuestionsHandler(c *gin.Context) {
	setID := c.Param("id")
	questions, err := ctrl.questionSvc.ListQuestions(setID, auth.IdentityFrom(c), grantToken(c, setID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, questions)
}

// CreateQuestionHandler godoc
// @Summary Add a question to a set
// @Tags questions
// @Accept json
// @Produce json
// @Param id path string true "Set ID"
// @Param question body dto.CreateQuestionRequest true "Question data"
// @Success 201 {object} dto.QuestionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /sets/{id}/questions [post]
func (ctrl *Controller) CreateQuestionHandler(c *gin.Context) {
	var req dto.CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind CreateQuestionRequest")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	resp, err := ctrl.questionSvc.CreateQuestion(c.Param("id"), auth.IdentityFrom(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// UpdateQuestionHandler godoc
// @Summary Update a question
// @Tags questions
// @Accept json
// @Produce json
// @Param id path string true "Question ID"
// @Param question body dto.UpdateQuestionRequest true "Fields to update"
// @Success 200 {object} dto.QuestionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /questions/{id} [patch]
func (ctrl *Controller) UpdateQuestionHandler(c *gin.Context) {
	var req dto.UpdateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	resp, err := ctrl.questionSvc.UpdateQuestion(c.Param("id"), auth.IdentityFrom(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteQuestionHandler godoc
// @Summary Delete a question
// @Tags questions
// @Param id path string true "Question ID"
// @Success 204 "No Content"
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /questions/{id} [delete]
func (ctrl *Controller) DeleteQuestionHandler(c *gin.Context) {
	if err := ctrl.questionSvc.DeleteQuestion(c.Param("id"), auth.IdentityFrom(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateUploadHandler godoc
// @Summary Store extracted text for generation
// @Description Accepts text, stores text. Binary parsing happens client side.
// @Tags uploads
// @Accept json
// @Produce json
// @Param upload body dto.CreateUploadRequest true "Filename and extracted text"
// @Success 201 {object} dto.UploadResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /uploads [post]
func (ctrl *Controller) CreateUploadHandler(c *gin.Context) {
	var req dto.CreateUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	resp, err := ctrl.uploadSvc.CreateUpload(auth.IdentityFrom(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
