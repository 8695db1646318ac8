package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/banrai-ops/farm-backend-go/internal/domain/payroll"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePayrollService struct {
	payroll.PayrollService
	slips map[int64]payroll.Slip
}

func (f *fakePayrollService) Get(ctx context.Context, id int64) (payroll.Slip, error) {
	s, ok := f.slips[id]
	if !ok {
		return payroll.Slip{}, payroll.ErrSlipNotFound
	}
	return s, nil
}

func (f *fakePayrollService) SetPaidStatus(ctx context.Context, id int64, paid bool) (payroll.Slip, error) {
	s, ok := f.slips[id]
	if !ok {
		return payroll.Slip{}, payroll.ErrSlipNotFound
	}
	if paid {
		s.Status = payroll.SlipStatusPaid
	} else {
		s.Status = payroll.SlipStatusUnpaid
	}
	return s, nil
}

func newPayrollTestRouter(svc payroll.PayrollService) *chi.Mux {
	h := NewPayrollHandler(svc)
	r := chi.NewRouter()
	r.Get("/payrolls/{id}", h.Get)
	r.Put("/payrolls/{id}/status", h.UpdateStatus)
	return r
}

func testSlip() payroll.Slip {
	slipNo := "PR-202508-000042"
	return payroll.Slip{
		ID: 42, UserID: 7, Month: "2025-08",
		GrossAmount: decimal.RequireFromString("470"),
		NetAmount:   decimal.RequireFromString("470"),
		Status:      payroll.SlipStatusUnpaid,
		SlipNo:      &slipNo,
	}
}

func TestPayrollHandler_Get(t *testing.T) {
	router := newPayrollTestRouter(&fakePayrollService{slips: map[int64]payroll.Slip{42: testSlip()}})

	req := httptest.NewRequest(http.MethodGet, "/payrolls/42", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool                 `json:"success"`
		Data    payroll.SlipResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, int64(42), body.Data.ID)
	assert.Equal(t, "2025-08", body.Data.Month)
	require.NotNil(t, body.Data.SlipNo)
	assert.Equal(t, "PR-202508-000042", *body.Data.SlipNo)
}

func TestPayrollHandler_Get_NotFound(t *testing.T) {
	router := newPayrollTestRouter(&fakePayrollService{slips: map[int64]payroll.Slip{}})

	req := httptest.NewRequest(http.MethodGet, "/payrolls/99", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPayrollHandler_Get_BadID(t *testing.T) {
	router := newPayrollTestRouter(&fakePayrollService{})

	req := httptest.NewRequest(http.MethodGet, "/payrolls/abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPayrollHandler_UpdateStatus(t *testing.T) {
	router := newPayrollTestRouter(&fakePayrollService{slips: map[int64]payroll.Slip{42: testSlip()}})

	req := httptest.NewRequest(http.MethodPut, "/payrolls/42/status", strings.NewReader(`{"status":"Paid"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data payroll.SlipResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Paid", body.Data.Status)
}

func TestPayrollHandler_UpdateStatus_RejectsUnknownStatus(t *testing.T) {
	router := newPayrollTestRouter(&fakePayrollService{slips: map[int64]payroll.Slip{42: testSlip()}})

	req := httptest.NewRequest(http.MethodPut, "/payrolls/42/status", strings.NewReader(`{"status":"Settled"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
