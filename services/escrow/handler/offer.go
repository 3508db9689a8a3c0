package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/forgebay/escrow/internal/utils"
	"github.com/forgebay/escrow/services/escrow"
)

var (
	errMissingPartnerWallet = errors.New("every partner needs a wallet_address")
	errBadPartnerPercentage = errors.New("partner percentages must each be positive and sum to under 100")
)

// PlaceOffer records a new time-boxed bid on a listing
func (h *EscrowHandler) PlaceOffer(c echo.Context) error {
	var req escrow.PlaceOfferRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "invalid request payload")
	}
	if req.ListingID == uuid.Nil || req.BuyerID == uuid.Nil {
		return utils.BadRequestResponse(c, "listing_id and buyer_id are required")
	}
	if req.BuyerWallet == "" {
		return utils.BadRequestResponse(c, "buyer_wallet is required")
	}
	if req.Amount <= 0 {
		return utils.BadRequestResponse(c, "amount must be positive")
	}

	offer, err := h.uc.PlaceOffer(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, http.StatusCreated, "Offer placed", offer)
}

// AcceptOffer converts an active offer into a purchase transaction
func (h *EscrowHandler) AcceptOffer(c echo.Context) error {
	offerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "invalid offer ID")
	}

	var req escrow.AcceptOfferRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "invalid request payload")
	}
	req.OfferID = offerID

	if req.SellerID == uuid.Nil {
		return utils.BadRequestResponse(c, "seller_id is required")
	}
	if req.SellerWallet == "" {
		return utils.BadRequestResponse(c, "seller_wallet is required")
	}
	if len(req.Checklist) == 0 {
		return utils.BadRequestResponse(c, "checklist must list at least one transfer step")
	}
	if err := validatePartnerShares(req.Partners); err != nil {
		return utils.BadRequestResponse(c, err.Error())
	}

	tx, err := h.uc.AcceptOffer(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, http.StatusCreated, "Offer accepted", tx)
}

func validatePartnerShares(partners []escrow.PartnerShare) error {
	total := 0.0
	for _, p := range partners {
		if p.WalletAddress == "" {
			return errMissingPartnerWallet
		}
		if p.Percentage <= 0 || p.Percentage >= 100 {
			return errBadPartnerPercentage
		}
		total += p.Percentage
	}
	if len(partners) > 0 && total >= 100 {
		return errBadPartnerPercentage
	}
	return nil
}
