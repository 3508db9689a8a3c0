package handler

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/forgebay/escrow/internal/pkg/middleware"
	"github.com/forgebay/escrow/internal/pkg/models"
	"github.com/forgebay/escrow/internal/utils"
	"github.com/forgebay/escrow/services/escrow"
)

// EscrowHandler exposes the escrow engine over HTTP
type EscrowHandler struct {
	cfg *models.Config
	uc  escrow.EscrowUC
}

// NewEscrowHandler creates a new escrow HTTP handler
func NewEscrowHandler(cfg *models.Config, uc escrow.EscrowUC) *EscrowHandler {
	return &EscrowHandler{cfg: cfg, uc: uc}
}

// RegisterRoutes wires the escrow endpoints. The /jobs group carries the
// scheduler bearer-secret guard; the user-facing routes trust the upstream
// gateway for authentication and enforce only actor-level authorization.
func (h *EscrowHandler) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	offers := api.Group("/offers")
	offers.POST("", h.PlaceOffer)
	offers.POST("/:id/accept", h.AcceptOffer)

	transactions := api.Group("/transactions")
	transactions.GET("/:id", h.GetTransaction)
	transactions.POST("/:id/checklist/:key/confirm", h.ConfirmTransferItem)
	transactions.POST("/:id/partners/:partnerID/deposit", h.MarkPartnerDeposited)

	jobs := api.Group("/jobs", middleware.ValidateCronSecret(h.cfg.Jobs.CronSecret))
	jobs.POST("/partner-deposits", h.RunPartnerDepositDeadlines)
	jobs.POST("/offer-expiry", h.RunOfferExpiries)
	jobs.POST("/transfer-deadlines", h.RunTransferDeadlines)
	jobs.POST("/release-retries", h.RunReleaseRetries)
}

// respondError maps the engine's error taxonomy onto HTTP statuses
func respondError(c echo.Context, err error) error {
	var invalidTransition *escrow.InvalidTransitionError
	var invalidState *escrow.InvalidStateError

	switch {
	case errors.Is(err, escrow.ErrTransactionNotFound),
		errors.Is(err, escrow.ErrOfferNotFound),
		errors.Is(err, escrow.ErrPartnerNotFound),
		errors.Is(err, escrow.ErrChecklistItemNotFound):
		return utils.NotFoundResponse(c, err.Error())
	case errors.Is(err, escrow.ErrNotAuthorized):
		return utils.ForbiddenResponse(c, err.Error())
	case errors.Is(err, escrow.ErrClaimLost):
		return utils.ConflictResponse(c, "the record was modified by a concurrent operation")
	case errors.As(err, &invalidTransition), errors.As(err, &invalidState):
		return utils.ConflictResponse(c, err.Error())
	default:
		return utils.InternalServerErrorResponse(c, err.Error())
	}
}
