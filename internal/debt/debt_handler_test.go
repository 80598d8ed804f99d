package debt_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"rahalatek/internal/debt"
	debterrors "rahalatek/internal/debt/errors"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDebtService struct {
	createFn func(ctx context.Context, actorID string, req debt.CreateDebtRequest) (debt.DebtResponse, error)
	getAllFn func(ctx context.Context, req debt.ListDebtsFilterRequest) ([]debt.DebtResponse, error)
	closeFn  func(ctx context.Context, id string) (debt.DebtResponse, error)
}

func (f *fakeDebtService) Create(ctx context.Context, actorID string, req debt.CreateDebtRequest) (debt.DebtResponse, error) {
	if f.createFn != nil {
		return f.createFn(ctx, actorID, req)
	}
	return debt.DebtResponse{}, nil
}

func (f *fakeDebtService) GetAll(ctx context.Context, req debt.ListDebtsFilterRequest) ([]debt.DebtResponse, error) {
	if f.getAllFn != nil {
		return f.getAllFn(ctx, req)
	}
	return nil, nil
}

func (f *fakeDebtService) GetByID(ctx context.Context, id string) (debt.DebtResponse, error) {
	return debt.DebtResponse{}, nil
}

func (f *fakeDebtService) Update(ctx context.Context, id string, req debt.UpdateDebtRequest) (debt.DebtResponse, error) {
	return debt.DebtResponse{}, nil
}

func (f *fakeDebtService) Close(ctx context.Context, id string) (debt.DebtResponse, error) {
	if f.closeFn != nil {
		return f.closeFn(ctx, id)
	}
	return debt.DebtResponse{}, nil
}

func (f *fakeDebtService) Reopen(ctx context.Context, id string) (debt.DebtResponse, error) {
	return debt.DebtResponse{}, nil
}

func (f *fakeDebtService) Delete(ctx context.Context, id string) error {
	return nil
}

func newTestRouter(svc debt.Service) (*gin.Engine, *debt.Handler) {
	gin.SetMode(gin.TestMode)
	handler := debt.NewHandler(svc)
	_, r := gin.CreateTestContext(httptest.NewRecorder())
	return r, handler
}

func TestHandler_Create(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := &fakeDebtService{
			createFn: func(ctx context.Context, actorID string, req debt.CreateDebtRequest) (debt.DebtResponse, error) {
				assert.Equal(t, "user-1", actorID)
				assert.Equal(t, "Acme Travel", req.OfficeName)
				return debt.DebtResponse{
					ID:         "debt-1",
					OfficeName: req.OfficeName,
					Amount:     req.Amount,
					Currency:   req.Currency,
					Type:       req.Type,
					Status:     debt.StatusOpen,
				}, nil
			},
		}
		r, handler := newTestRouter(svc)
		r.Use(func(c *gin.Context) {
			c.Set("user_id_validated", "user-1")
			c.Next()
		})
		r.POST("/debts", handler.Create)

		body, _ := json.Marshal(debt.CreateDebtRequest{
			OfficeName: "Acme Travel",
			Amount:     decimal.NewFromInt(500),
			Currency:   "USD",
			Type:       debt.TypeOwedToOffice,
		})
		req, _ := http.NewRequest(http.MethodPost, "/debts", bytes.NewBuffer(body))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var res map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Equal(t, true, res["ok"])
	})

	t.Run("MissingRequiredFields", func(t *testing.T) {
		r, handler := newTestRouter(&fakeDebtService{})
		r.POST("/debts", handler.Create)

		req, _ := http.NewRequest(http.MethodPost, "/debts", bytes.NewBufferString(`{"office_name":"Acme Travel"}`))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var res map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Equal(t, false, res["ok"])
	})
}

func TestHandler_Close(t *testing.T) {
	t.Run("NotFound", func(t *testing.T) {
		svc := &fakeDebtService{
			closeFn: func(ctx context.Context, id string) (debt.DebtResponse, error) {
				return debt.DebtResponse{}, debterrors.ErrDebtNotFound
			},
		}
		r, handler := newTestRouter(svc)
		r.POST("/debts/:id/close", handler.Close)

		req, _ := http.NewRequest(http.MethodPost, "/debts/debt-404/close", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("AlreadyClosed", func(t *testing.T) {
		svc := &fakeDebtService{
			closeFn: func(ctx context.Context, id string) (debt.DebtResponse, error) {
				return debt.DebtResponse{}, debterrors.ErrAlreadyClosed
			},
		}
		r, handler := newTestRouter(svc)
		r.POST("/debts/:id/close", handler.Close)

		req, _ := http.NewRequest(http.MethodPost, "/debts/debt-1/close", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_GetAll(t *testing.T) {
	t.Run("FilterPassthrough", func(t *testing.T) {
		svc := &fakeDebtService{
			getAllFn: func(ctx context.Context, req debt.ListDebtsFilterRequest) ([]debt.DebtResponse, error) {
				assert.Equal(t, "Acme", req.Office)
				assert.Equal(t, debt.StatusOpen, req.Status)
				return []debt.DebtResponse{{ID: "debt-1"}}, nil
			},
		}
		r, handler := newTestRouter(svc)
		r.GET("/debts", handler.GetAll)

		req, _ := http.NewRequest(http.MethodGet, "/debts?office=Acme&status=OPEN", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
