package handler_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	appledger "github.com/stockledger/backend/internal/application/ledger"
	"github.com/stockledger/backend/internal/domain/catalog"
	"github.com/stockledger/backend/internal/infrastructure/config"
	"github.com/stockledger/backend/internal/infrastructure/persistence"
	"github.com/stockledger/backend/internal/interfaces/http/handler"
	"github.com/stockledger/backend/internal/interfaces/http/router"
)

func newTestServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, persistence.AutoMigrate(db))

	require.NoError(t, db.Create(&catalog.Product{ID: 1, Name: "Widget"}).Error)
	require.NoError(t, db.Create(&catalog.Warehouse{ID: "central", Label: "Central"}).Error)
	require.NoError(t, db.Create(&catalog.Warehouse{ID: "north", Label: "North"}).Error)

	movements := appledger.NewMovementService(persistence.NewGormTransactionScope(db), zap.NewNop())
	queries := appledger.NewQueryService(
		persistence.NewGormMovementRepository(db),
		persistence.NewGormProductRepository(db),
		persistence.NewGormWarehouseRepository(db),
		zap.NewNop(),
	)

	engine := gin.New()
	r := router.NewRouter(engine)
	r.Register(handler.NewStockMovementHandler(movements, queries, config.DashboardConfig{
		WindowDays: 30,
		Limit:      50,
	}))
	r.Setup()
	return engine, db
}

func doJSON(t *testing.T, engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestStockMovementHandler_Create(t *testing.T) {
	t.Run("applies a valid entry", func(t *testing.T) {
		engine, _ := newTestServer(t)

		rec := doJSON(t, engine, http.MethodPost, "/stock-movements",
			`{"type":"entry","productId":1,"quantity":10,"warehouseId":"central","userId":1}`)

		require.Equal(t, http.StatusCreated, rec.Code)

		var resp struct {
			Success  bool `json:"success"`
			Movement struct {
				ID            uint   `json:"id"`
				Type          string `json:"type"`
				Quantity      int64  `json:"quantity"`
				ToWarehouseID string `json:"toWarehouseId"`
				Reason        string `json:"reason"`
			} `json:"movement"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.NotZero(t, resp.Movement.ID)
		assert.Equal(t, "in", resp.Movement.Type)
		assert.Equal(t, int64(10), resp.Movement.Quantity)
		assert.Equal(t, "central", resp.Movement.ToWarehouseID)
		assert.Equal(t, "receipt", resp.Movement.Reason)
	})

	t.Run("rejects contract violations with 400", func(t *testing.T) {
		engine, _ := newTestServer(t)

		rec := doJSON(t, engine, http.MethodPost, "/stock-movements",
			`{"type":"transfer","productId":1,"quantity":5,"fromWarehouseId":"central","toWarehouseId":"central","userId":1}`)

		require.Equal(t, http.StatusBadRequest, rec.Code)

		var resp struct {
			Success bool   `json:"success"`
			Error   string `json:"error"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.Contains(t, resp.Error, "toWarehouseId")
	})

	t.Run("rejects missing type at the edge", func(t *testing.T) {
		engine, _ := newTestServer(t)

		rec := doJSON(t, engine, http.MethodPost, "/stock-movements",
			`{"productId":1,"quantity":5,"warehouseId":"central","userId":1}`)

		require.Equal(t, http.StatusBadRequest, rec.Code)

		var resp struct {
			Success bool   `json:"success"`
			Error   string `json:"error"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		// Binding rejects the body before the domain validator runs.
		assert.Equal(t, "invalid request body", resp.Error)
	})

	t.Run("rejects negative quantity at the edge", func(t *testing.T) {
		engine, _ := newTestServer(t)

		rec := doJSON(t, engine, http.MethodPost, "/stock-movements",
			`{"type":"entry","productId":1,"quantity":-5,"warehouseId":"central","userId":1}`)

		require.Equal(t, http.StatusBadRequest, rec.Code)

		var resp struct {
			Error string `json:"error"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "invalid request body", resp.Error)
	})

	t.Run("rejects malformed JSON with 400", func(t *testing.T) {
		engine, _ := newTestServer(t)

		rec := doJSON(t, engine, http.MethodPost, "/stock-movements", `{"type":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("reports insufficient stock as 500", func(t *testing.T) {
		engine, _ := newTestServer(t)

		rec := doJSON(t, engine, http.MethodPost, "/stock-movements",
			`{"type":"exit","productId":1,"quantity":3,"warehouseId":"central","userId":1}`)

		require.Equal(t, http.StatusInternalServerError, rec.Code)

		var resp struct {
			Success bool   `json:"success"`
			Error   string `json:"error"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.Contains(t, resp.Error, "insufficient stock")
	})
}

func TestStockMovementHandler_Dashboard(t *testing.T) {
	engine, _ := newTestServer(t)

	rec := doJSON(t, engine, http.MethodPost, "/stock-movements",
		`{"type":"entry","productId":1,"quantity":10,"warehouseId":"central","userId":1}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	t.Run("returns the committed payload", func(t *testing.T) {
		rec := doJSON(t, engine, http.MethodGet, "/stock-movements", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var payload struct {
			Movements []json.RawMessage `json:"movements"`
			Source    string            `json:"source"`
			Stats     struct {
				TotalCount int64 `json:"totalCount"`
			} `json:"stats"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
		assert.Equal(t, "database", payload.Source)
		assert.Len(t, payload.Movements, 1)
		assert.Equal(t, int64(1), payload.Stats.TotalCount)
	})

	t.Run("tolerates malformed query parameters", func(t *testing.T) {
		rec := doJSON(t, engine, http.MethodGet, "/stock-movements?days=banana&limit=-2", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var payload struct {
			Source string `json:"source"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
		assert.Equal(t, "database", payload.Source)
	})
}

func TestStockMovementHandler_Delete(t *testing.T) {
	t.Run("reverses a movement", func(t *testing.T) {
		engine, _ := newTestServer(t)

		rec := doJSON(t, engine, http.MethodPost, "/stock-movements",
			`{"type":"entry","productId":1,"quantity":10,"warehouseId":"central","userId":1}`)
		require.Equal(t, http.StatusCreated, rec.Code)

		var created struct {
			Movement struct {
				ID uint `json:"id"`
			} `json:"movement"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

		rec = doJSON(t, engine, http.MethodDelete, fmt.Sprintf("/stock-movements?id=%d", created.Movement.ID), "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"success":true}`, rec.Body.String())
	})

	t.Run("missing id is 400", func(t *testing.T) {
		engine, _ := newTestServer(t)

		rec := doJSON(t, engine, http.MethodDelete, "/stock-movements", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed id is 400", func(t *testing.T) {
		engine, _ := newTestServer(t)

		rec := doJSON(t, engine, http.MethodDelete, "/stock-movements?id=abc", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown id is 500", func(t *testing.T) {
		engine, _ := newTestServer(t)

		rec := doJSON(t, engine, http.MethodDelete, "/stock-movements?id=12345", "")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("adjustments cannot be deleted", func(t *testing.T) {
		engine, _ := newTestServer(t)

		rec := doJSON(t, engine, http.MethodPost, "/stock-movements",
			`{"type":"adjustment","productId":1,"quantity":5,"warehouseId":"central","userId":1}`)
		require.Equal(t, http.StatusCreated, rec.Code)

		var created struct {
			Movement struct {
				ID uint `json:"id"`
			} `json:"movement"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

		rec = doJSON(t, engine, http.MethodDelete, fmt.Sprintf("/stock-movements?id=%d", created.Movement.ID), "")
		require.Equal(t, http.StatusInternalServerError, rec.Code)

		var resp struct {
			Error string `json:"error"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Contains(t, resp.Error, "adjustments cannot be deleted")
	})
}
