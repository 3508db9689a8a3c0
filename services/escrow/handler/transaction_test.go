package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/forgebay/escrow/internal/pkg/models"
	"github.com/forgebay/escrow/services/escrow"
)

func TestConfirmTransferItem_ErrorMapping(t *testing.T) {
	txID := uuid.New()
	body := `{"actor_id":"` + uuid.New().String() + `","role":"seller"}`

	tests := []struct {
		name string
		err  error
		code int
	}{
		{"unknown transaction", escrow.ErrTransactionNotFound, http.StatusNotFound},
		{"unknown checklist item", escrow.ErrChecklistItemNotFound, http.StatusNotFound},
		{"wrong actor", escrow.ErrNotAuthorized, http.StatusForbidden},
		{"not confirmable", &escrow.InvalidStateError{Status: models.TxStatusCancelled, Action: "confirm a transfer item"}, http.StatusConflict},
		{"illegal transition", &escrow.InvalidTransitionError{From: models.TxStatusFunded, To: models.TxStatusCompleted}, http.StatusConflict},
		{"storage failure", assert.AnError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, uc, ctrl := newTestServer(t)
			defer ctrl.Finish()

			uc.EXPECT().ConfirmTransferItem(gomock.Any(), gomock.Any()).Return(nil, tt.err)

			req := httptest.NewRequest(http.MethodPost,
				"/api/v1/transactions/"+txID.String()+"/checklist/github/confirm",
				strings.NewReader(body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.code, rec.Code)
		})
	}
}

func TestConfirmTransferItem_BadInput(t *testing.T) {
	e, _, ctrl := newTestServer(t)
	defer ctrl.Finish()

	tests := []struct {
		name string
		path string
		body string
	}{
		{"bad transaction id", "/api/v1/transactions/not-a-uuid/checklist/github/confirm", `{"actor_id":"` + uuid.New().String() + `","role":"seller"}`},
		{"missing actor", "/api/v1/transactions/" + uuid.New().String() + "/checklist/github/confirm", `{"role":"seller"}`},
		{"bad role", "/api/v1/transactions/" + uuid.New().String() + "/checklist/github/confirm", `{"actor_id":"` + uuid.New().String() + `","role":"auditor"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, tt.path, strings.NewReader(tt.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestAcceptOffer_ConcurrentLossIsConflict(t *testing.T) {
	e, uc, ctrl := newTestServer(t)
	defer ctrl.Finish()

	uc.EXPECT().AcceptOffer(gomock.Any(), gomock.Any()).Return(nil, escrow.ErrClaimLost)

	body := `{"seller_id":"` + uuid.New().String() + `","seller_wallet":"SellerWallet1","checklist":["github"]}`
	req := httptest.NewRequest(http.MethodPost,
		"/api/v1/offers/"+uuid.New().String()+"/accept", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAcceptOffer_PartnerShareValidation(t *testing.T) {
	e, _, ctrl := newTestServer(t)
	defer ctrl.Finish()

	body := `{
		"seller_id":"` + uuid.New().String() + `",
		"seller_wallet":"SellerWallet1",
		"checklist":["github"],
		"partners":[
			{"wallet_address":"PartnerWallet1","percentage":60},
			{"wallet_address":"PartnerWallet2","percentage":50}
		]
	}`
	req := httptest.NewRequest(http.MethodPost,
		"/api/v1/offers/"+uuid.New().String()+"/accept", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
