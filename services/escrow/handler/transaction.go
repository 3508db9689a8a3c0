package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/forgebay/escrow/internal/utils"
	"github.com/forgebay/escrow/services/escrow"
)

// GetTransaction returns a transaction with its current checklist state
func (h *EscrowHandler) GetTransaction(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "invalid transaction ID")
	}

	tx, err := h.uc.GetTransaction(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Transaction retrieved", tx)
}

// ConfirmTransferItem records one actor's confirmation of a checklist item
func (h *EscrowHandler) ConfirmTransferItem(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "invalid transaction ID")
	}

	var req escrow.ConfirmItemRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "invalid request payload")
	}
	req.TransactionID = id
	req.ItemKey = c.Param("key")

	if req.ActorID == uuid.Nil {
		return utils.BadRequestResponse(c, "actor_id is required")
	}
	switch req.Role {
	case escrow.RoleBuyer, escrow.RoleSeller, escrow.RolePartner:
	default:
		return utils.BadRequestResponse(c, "role must be buyer, seller, or partner")
	}

	tx, err := h.uc.ConfirmTransferItem(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Checklist item confirmed", tx)
}

type partnerDepositRequest struct {
	Signature string `json:"signature"`
}

// MarkPartnerDeposited records a verified partner deposit signature
func (h *EscrowHandler) MarkPartnerDeposited(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "invalid transaction ID")
	}
	partnerID, err := uuid.Parse(c.Param("partnerID"))
	if err != nil {
		return utils.BadRequestResponse(c, "invalid partner ID")
	}

	var req partnerDepositRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "invalid request payload")
	}
	if req.Signature == "" {
		return utils.BadRequestResponse(c, "signature is required")
	}

	tx, err := h.uc.MarkPartnerDeposited(c.Request().Context(), id, partnerID, req.Signature)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Partner deposit recorded", tx)
}
