package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/forgebay/escrow/internal/pkg/models"
	"github.com/forgebay/escrow/internal/utils"
)

// Job entry points. Each returns the run summary verbatim: the scheduler
// stores the body, so the envelope is the JobSummary itself rather than the
// standard data wrapper.

func (h *EscrowHandler) RunPartnerDepositDeadlines(c echo.Context) error {
	return h.runJob(c, h.uc.ProcessPartnerDepositDeadlines)
}

func (h *EscrowHandler) RunOfferExpiries(c echo.Context) error {
	return h.runJob(c, h.uc.ProcessOfferExpiries)
}

func (h *EscrowHandler) RunTransferDeadlines(c echo.Context) error {
	return h.runJob(c, h.uc.ProcessTransferDeadlines)
}

func (h *EscrowHandler) RunReleaseRetries(c echo.Context) error {
	return h.runJob(c, h.uc.ProcessReleaseRetries)
}

func (h *EscrowHandler) runJob(c echo.Context, run func(context.Context) (*models.JobSummary, error)) error {
	summary, err := run(c.Request().Context())
	if err != nil {
		return utils.InternalServerErrorResponse(c, err.Error())
	}
	return c.JSON(http.StatusOK, summary)
}
