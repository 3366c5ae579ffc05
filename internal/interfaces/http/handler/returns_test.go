package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	tradeapp "github.com/dukkan/backoffice/internal/application/trade"
	"github.com/dukkan/backoffice/internal/domain/shared"
	"github.com/dukkan/backoffice/internal/domain/trade"
	"github.com/dukkan/backoffice/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupReturnsRouter(orderRepo *MockOrderRepository) *gin.Engine {
	service := tradeapp.NewReturnsService(orderRepo, zap.NewNop())
	h := NewReturnsHandler(service)

	engine := gin.New()
	engine.POST("/returns/upload", h.UploadBatch)
	return engine
}

func uploadReturnsSheet(t *testing.T, engine *gin.Engine, csv string, fields map[string]string) (*httptest.ResponseRecorder, dto.Response) {
	t.Helper()
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "returns.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(csv))
	require.NoError(t, err)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/returns/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestReturnsUploadBatch(t *testing.T) {
	t.Run("marks matched orders returned and tallies misses", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		order := testOrder(t)
		orderRepo.On("FindActiveByPhoneSuffix", mock.Anything, "5551112233").Return(order, nil)
		orderRepo.On("FindActiveByPhoneSuffix", mock.Anything, "5559998877").Return(nil, shared.ErrNotFound)
		orderRepo.On("Save", mock.Anything, mock.MatchedBy(func(o *trade.Order) bool {
			return o.Status == trade.OrderStatusReturned
		})).Return(nil)

		engine := setupReturnsRouter(orderRepo)
		csv := "Telefon,Ad,Soyad,Tahsil,Iade\n" +
			"05551112233,Ayşe,Yılmaz,85.00,40.00\n" +
			"05559998877,Fatma,Demir,92.50,0.00\n"
		w, resp := uploadReturnsSheet(t, engine, csv, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		require.True(t, resp.Success)
		data := resp.Data.(map[string]interface{})
		assert.Equal(t, float64(1), data["processed"])
		assert.Equal(t, float64(1), data["not_found"])
		orderRepo.AssertExpectations(t)
	})

	t.Run("rejects a sheet with no plausible phone", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)

		engine := setupReturnsRouter(orderRepo)
		csv := "Telefon,Tahsil,Iade\nyok,1,2\n---,3,4\n"
		w, resp := uploadReturnsSheet(t, engine, csv, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "NO_PLAUSIBLE_PHONES", resp.Error.Code)
		orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("reads a custom column layout", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		order := testOrder(t)
		orderRepo.On("FindActiveByPhoneSuffix", mock.Anything, "5551112233").Return(order, nil)
		orderRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

		engine := setupReturnsRouter(orderRepo)
		csv := "45.00,05551112233\n"
		w, resp := uploadReturnsSheet(t, engine, csv, map[string]string{
			"phone_column": "B",
			"cost_column":  "A",
			"no_header":    "true",
		})

		assert.Equal(t, http.StatusOK, w.Code)
		require.True(t, resp.Success)
		data := resp.Data.(map[string]interface{})
		assert.Equal(t, float64(1), data["processed"])
		orderRepo.AssertExpectations(t)
	})

	t.Run("rejects an empty file", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)

		engine := setupReturnsRouter(orderRepo)
		w, resp := uploadReturnsSheet(t, engine, "", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "EMPTY_FILE", resp.Error.Code)
	})

	t.Run("requires a file part", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		engine := setupReturnsRouter(orderRepo)

		body := new(bytes.Buffer)
		writer := multipart.NewWriter(body)
		require.NoError(t, writer.Close())

		req := httptest.NewRequest("POST", "/returns/upload", body)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
