package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Ayomidekayo/OgwInventorybackend/internal/models"
	"github.com/Ayomidekayo/OgwInventorybackend/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testAuth injects a fixed identity the way the auth middleware would.
func testAuth(actor services.Actor) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", actor.ID)
		c.Set("username", actor.Username)
		c.Set("userRole", actor.Role)
		c.Next()
	}
}

type stubReleaseService struct {
	createResp *services.CreateReleaseResponse
	createErr  error
	release    *models.Release
	getErr     error
}

func (s *stubReleaseService) CreateRelease(actor services.Actor, req services.CreateReleaseRequest) (*services.CreateReleaseResponse, error) {
	return s.createResp, s.createErr
}
func (s *stubReleaseService) GetReleases() ([]models.Release, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	if s.release == nil {
		return []models.Release{}, nil
	}
	return []models.Release{*s.release}, nil
}
func (s *stubReleaseService) GetReleaseByID(releaseID int64) (*models.Release, error) {
	return s.release, s.getErr
}
func (s *stubReleaseService) UpdateApprovalStatus(releaseID int64, req services.UpdateApprovalStatusRequest) (*models.Release, error) {
	return s.release, s.getErr
}

func newReleaseTestRouter(svc services.ReleaseService) *gin.Engine {
	engine := gin.New()
	handler := NewReleaseHandler(svc)
	group := engine.Group("/api/v1")
	group.Use(testAuth(services.Actor{ID: 1, Username: "tester", Role: models.RoleStaff}))
	group.POST("/releases", handler.CreateRelease)
	group.GET("/releases", handler.GetReleases)
	group.GET("/releases/:id", handler.GetReleaseByID)
	return engine
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error body %q: %v", rec.Body.String(), err)
	}
	return resp.Error.Code
}

func TestCreateReleaseCreated(t *testing.T) {
	release := &models.Release{ID: 7, ItemID: 3, QtyReleased: 5, ReturnStatus: models.ReturnStatusPending}
	engine := newReleaseTestRouter(&stubReleaseService{
		createResp: &services.CreateReleaseResponse{Release: release, RemainingQuantity: 15},
	})

	rec := doJSON(t, engine, http.MethodPost, "/api/v1/releases", map[string]interface{}{
		"item_id": 3, "qty_released": 5, "released_to": "ward A", "category": "borrow",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", rec.Code, rec.Body.String())
	}
	var resp services.CreateReleaseResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Release.ID != 7 || resp.RemainingQuantity != 15 {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestCreateReleaseInsufficientStock(t *testing.T) {
	engine := newReleaseTestRouter(&stubReleaseService{
		createErr: fmt.Errorf("%w: only 2 available", services.ErrInsufficientStock),
	})

	rec := doJSON(t, engine, http.MethodPost, "/api/v1/releases", map[string]interface{}{
		"item_id": 3, "qty_released": 5, "released_to": "ward A", "category": "borrow",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	if code := errorCode(t, rec); code != "INSUFFICIENT_STOCK" {
		t.Errorf("error code = %q, want INSUFFICIENT_STOCK", code)
	}
}

func TestCreateReleaseValidationError(t *testing.T) {
	engine := newReleaseTestRouter(&stubReleaseService{
		createErr: fmt.Errorf("%w: unknown release category 'loan'", services.ErrValidation),
	})

	rec := doJSON(t, engine, http.MethodPost, "/api/v1/releases", map[string]interface{}{
		"item_id": 3, "qty_released": 5, "released_to": "ward A", "category": "loan",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if code := errorCode(t, rec); code != "VALIDATION_FAILED" {
		t.Errorf("error code = %q, want VALIDATION_FAILED", code)
	}
}

func TestGetReleaseByIDNotFound(t *testing.T) {
	engine := newReleaseTestRouter(&stubReleaseService{getErr: services.ErrReleaseNotFound})

	rec := doJSON(t, engine, http.MethodGet, "/api/v1/releases/99", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if code := errorCode(t, rec); code != "NOT_FOUND" {
		t.Errorf("error code = %q, want NOT_FOUND", code)
	}
}

func TestGetReleaseByIDBadParam(t *testing.T) {
	engine := newReleaseTestRouter(&stubReleaseService{})

	rec := doJSON(t, engine, http.MethodGet, "/api/v1/releases/abc", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
