package controller

import (
	"errors"
	"net/http"

	"github.com/fquiz/fquiz/config"
	"github.com/fquiz/fquiz/internal/apperr"
	"github.com/fquiz/fquiz/internal/auth"
	"github.com/fquiz/fquiz/internal/dto"
	"github.com/fquiz/fquiz/internal/generator"
	"github.com/fquiz/fquiz/internal/repository"
	"github.com/fquiz/fquiz/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type Controller struct {
	setSvc      service.SetService
	cardSvc     service.CardService
	questionSvc service.QuestionService
	passcodeSvc service.PasscodeService
	attemptSvc  service.AttemptService
	generateSvc service.GenerateService
	authSvc     service.AuthService
	uploadSvc   service.UploadService
	userRepo    repository.UserRepository
	cfg         *config.Config
}

func NewController(
	setSvc service.SetService,
	cardSvc service.CardService,
	questionSvc service.QuestionService,
	passcodeSvc service.PasscodeService,
	attemptSvc service.AttemptService,
	generateSvc service.GenerateService,
	authSvc service.AuthService,
	uploadSvc service.UploadService,
	userRepo repository.UserRepository,
	cfg *config.Config,
) *Controller {
	return &Controller{
		setSvc:      setSvc,
		cardSvc:     cardSvc,
		questionSvc: questionSvc,
		passcodeSvc: passcodeSvc,
		attemptSvc:  attemptSvc,
		generateSvc: generateSvc,
		authSvc:     authSvc,
		uploadSvc:   uploadSvc,
		userRepo:    userRepo,
		cfg:         cfg,
	}
}

func (ctrl *Controller) RegisterRoutes(router *gin.Engine) {
	router.Use(auth.IdentityMiddleware(ctrl.cfg, ctrl.userRepo))

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		authGroup.POST("/login", ctrl.LoginHandler)
		authGroup.POST("/forgot-password", ctrl.ForgotPasswordHandler)
		authGroup.POST("/reset-password", ctrl.ResetPasswordHandler)
		authGroup.POST("/clear-passcodes", ctrl.ClearGrantCookiesHandler)

		guest := apiV1.Group("/guest")
		guest.POST("/checkin", ctrl.GuestCheckinHandler)
		guest.POST("/checkout", ctrl.GuestCheckoutHandler)
		guest.POST("/claim-codename", ctrl.ClaimCodenameHandler)
		guest.POST("/release-codename", ctrl.ReleaseCodenameHandler)

		sets := apiV1.Group("/sets")
		sets.GET("", ctrl.ListSetsHandler)
		sets.POST("", ctrl.CreateSetHandler)
		sets.GET("/:id", ctrl.GetSetHandler)
		sets.PATCH("/:id", ctrl.UpdateSetHandler)
		sets.DELETE("/:id", ctrl.DeleteSetHandler)

		sets.GET("/:id/cards", ctrl.ListCardsHandler)
		sets.POST("/:id/cards", ctrl.CreateCardHandler)
		sets.GET("/:id/questions", ctrl.ListQuestionsHandler)
		sets.POST("/:id/questions", ctrl.CreateQuestionHandler)

		sets.POST("/:id/passcode", ctrl.VerifyPasscodeHandler)
		sets.PUT("/:id/passcode/manage", ctrl.SetPasscodeHandler)
		sets.DELETE("/:id/passcode/manage", ctrl.ClearPasscodeHandler)

		sets.POST("/:id/generate/questions", ctrl.GenerateQuestionsHandler)
		sets.POST("/:id/generate/cards", ctrl.GenerateCardsHandler)

		cards := apiV1.Group("/cards")
		cards.PATCH("/:id", ctrl.UpdateCardHandler)
		cards.DELETE("/:id", ctrl.DeleteCardHandler)

		questions := apiV1.Group("/questions")
		questions.PATCH("/:id", ctrl.UpdateQuestionHandler)
		questions.DELETE("/:id", ctrl.DeleteQuestionHandler)

		attempts := apiV1.Group("/attempts")
		attempts.POST("", ctrl.StartAttemptHandler)
		attempts.POST("/:id/responses", ctrl.RecordResponseHandler)
		attempts.POST("/:id/submit", ctrl.SubmitAttemptHandler)

		apiV1.POST("/uploads", ctrl.CreateUploadHandler)
	}
}

// respondError translates the service error taxonomy into HTTP statuses and
// a JSON body carrying the reason code.
func respondError(c *gin.Context, err error) {
	if apperr.IsNotFound(err) {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
		return
	}
	if reason, ok := apperr.IsForbidden(err); ok {
		status := http.StatusForbidden
		if reason == apperr.ReasonPasscodeRequired {
			status = http.StatusUnauthorized
		}
		c.JSON(status, dto.ErrorResponse{Error: err.Error(), Reason: string(reason)})
		return
	}
	if apperr.IsValidation(err) {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	var upstream *generator.UpstreamError
	if errors.As(err, &upstream) {
		log.Error().Err(err).Msg("Upstream provider failure")
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: upstream.Error()})
		return
	}
	var malformed *generator.MalformedOutputError
	if errors.As(err, &malformed) {
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: malformed.Error()})
		return
	}
	log.Error().Err(err).Msg("Unhandled service error")
	c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal error"})
}
