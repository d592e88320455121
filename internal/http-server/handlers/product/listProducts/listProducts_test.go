package listProducts_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"storefront/internal/http-server/handlers/product/listProducts"
	"storefront/internal/http-server/handlers/product/listProducts/mocks"
	"storefront/internal/models"
)

func TestListProducts(t *testing.T) {
	log := slog.New(slog.NewJSONHandler(bytes.NewBuffer(nil), nil))

	products := []models.Product{
		{ID: uuid.New(), Name: "Linen shirt", Category: "men", NewPrice: decimal.NewFromInt(20), OldPrice: decimal.NewFromInt(30)},
		{ID: uuid.New(), Name: "Wool coat", Category: "men", NewPrice: decimal.NewFromInt(90), OldPrice: decimal.NewFromInt(120)},
	}

	productsJSON, err := json.Marshal(products)
	require.NoError(t, err)

	tests := []struct {
		name           string
		query          string
		category       string
		limit          int
		offset         int
		mockProducts   []models.Product
		mockTotal      int
		mockErr        error
		skipsStorage   bool
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Defaults",
			query:          "",
			limit:          8,
			offset:         0,
			mockProducts:   products,
			mockTotal:      2,
			expectedStatus: http.StatusOK,
			expectedBody: fmt.Sprintf(`{"success":1,"products":%s,"pagination":{"total":2,"page":1,"limit":8,"pages":1}}`,
				productsJSON),
		},
		{
			name:           "Category Page",
			query:          "?page=3&limit=2&category=men",
			category:       "men",
			limit:          2,
			offset:         4,
			mockProducts:   products,
			mockTotal:      7,
			expectedStatus: http.StatusOK,
			expectedBody: fmt.Sprintf(`{"success":1,"products":%s,"pagination":{"total":7,"page":3,"limit":2,"pages":4}}`,
				productsJSON),
		},
		{
			name:           "Garbage Paging Falls Back",
			query:          "?page=-2&limit=abc",
			limit:          8,
			offset:         0,
			mockProducts:   nil,
			mockTotal:      0,
			expectedStatus: http.StatusOK,
			expectedBody:   `{"success":1,"products":[],"pagination":{"total":0,"page":1,"limit":8,"pages":0}}`,
		},
		{
			name:           "Limit Capped",
			query:          "?limit=1000",
			limit:          100,
			offset:         0,
			mockProducts:   []models.Product{},
			mockTotal:      0,
			expectedStatus: http.StatusOK,
			expectedBody:   `{"success":1,"products":[],"pagination":{"total":0,"page":1,"limit":100,"pages":0}}`,
		},
		{
			name:           "Page Out Of Range",
			query:          "?page=9223372036854775807&limit=100",
			skipsStorage:   true,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"success":0,"message":"page out of range"}`,
		},
		{
			name:           "Last Addressable Page",
			query:          "?page=21474837&limit=100",
			limit:          100,
			offset:         2147483600,
			mockProducts:   []models.Product{},
			mockTotal:      0,
			expectedStatus: http.StatusOK,
			expectedBody:   `{"success":1,"products":[],"pagination":{"total":0,"page":21474837,"limit":100,"pages":0}}`,
		},
		{
			name:           "Storage Error",
			query:          "",
			limit:          8,
			offset:         0,
			mockErr:        errors.New("db error"),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"success":0,"message":"failed to list products"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			productListerMock := mocks.NewProductLister(t)
			if !tt.skipsStorage {
				productListerMock.On("ListProducts", mock.Anything, tt.category, tt.limit, tt.offset).
					Return(tt.mockProducts, tt.mockTotal, tt.mockErr).Once()
			}

			req := httptest.NewRequest(http.MethodGet, "/products"+tt.query, nil)
			rr := httptest.NewRecorder()

			handler := listProducts.New(log, productListerMock)
			handler.ServeHTTP(rr, req)

			require.Equal(t, tt.expectedStatus, rr.Code)

			var actualMap, expectedMap map[string]interface{}
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &actualMap))
			require.NoError(t, json.Unmarshal([]byte(tt.expectedBody), &expectedMap))
			require.Equal(t, expectedMap, actualMap)
		})
	}
}
