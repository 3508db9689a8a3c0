package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgebay/escrow/internal/pkg/models"
	"github.com/forgebay/escrow/services/escrow/mocks"
)

const testCronSecret = "cron-secret-for-tests"

func newTestServer(t *testing.T) (*echo.Echo, *mocks.MockEscrowUC, *gomock.Controller) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockEscrowUC(ctrl)

	cfg := &models.Config{}
	cfg.Jobs.CronSecret = testCronSecret

	e := echo.New()
	NewEscrowHandler(cfg, uc).RegisterRoutes(e)
	return e, uc, ctrl
}

func TestJobEndpoints_RequireBearerSecret(t *testing.T) {
	e, _, ctrl := newTestServer(t)
	defer ctrl.Finish()

	tests := []struct {
		name   string
		header string
		code   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + testCronSecret, http.StatusUnauthorized},
		{"wrong secret", "Bearer not-the-secret", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs/offer-expiry", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.code, rec.Code)
		})
	}
}

func TestJobEndpoints_ReturnSummaryVerbatim(t *testing.T) {
	e, uc, ctrl := newTestServer(t)
	defer ctrl.Finish()

	summary := models.NewJobSummary("offer expiry reconciliation")
	summary.Record(models.OutcomeExpired)
	summary.Record(models.OutcomeSkipped)
	uc.EXPECT().ProcessOfferExpiries(gomock.Any()).Return(summary, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs/offer-expiry", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+testCronSecret)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got models.JobSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.True(t, got.Success)
	assert.Equal(t, 2, got.Processed)
	assert.Equal(t, 1, got.Results.Counts[models.OutcomeExpired])
	assert.Equal(t, 1, got.Results.Counts[models.OutcomeSkipped])
}

func TestJobEndpoints_AllRoutesWired(t *testing.T) {
	e, uc, ctrl := newTestServer(t)
	defer ctrl.Finish()

	uc.EXPECT().ProcessPartnerDepositDeadlines(gomock.Any()).Return(models.NewJobSummary("a"), nil)
	uc.EXPECT().ProcessOfferExpiries(gomock.Any()).Return(models.NewJobSummary("b"), nil)
	uc.EXPECT().ProcessTransferDeadlines(gomock.Any()).Return(models.NewJobSummary("c"), nil)
	uc.EXPECT().ProcessReleaseRetries(gomock.Any()).Return(models.NewJobSummary("d"), nil)

	for _, path := range []string{
		"/api/v1/jobs/partner-deposits",
		"/api/v1/jobs/offer-expiry",
		"/api/v1/jobs/transfer-deadlines",
		"/api/v1/jobs/release-retries",
	} {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+testCronSecret)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestJobEndpoints_RunFailureIsServerError(t *testing.T) {
	e, uc, ctrl := newTestServer(t)
	defer ctrl.Finish()

	uc.EXPECT().ProcessTransferDeadlines(gomock.Any()).Return(nil, assert.AnError)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs/transfer-deadlines", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+testCronSecret)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
