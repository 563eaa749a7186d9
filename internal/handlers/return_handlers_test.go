package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Ayomidekayo/OgwInventorybackend/internal/models"
	"github.com/Ayomidekayo/OgwInventorybackend/internal/services"
)

type stubReturnService struct {
	resp      *services.RecordReturnResponse
	recordErr error
	returns   []models.Return
	getErr    error

	gotReleaseID int64
}

func (s *stubReturnService) RecordReturn(actor services.Actor, req services.RecordReturnRequest) (*services.RecordReturnResponse, error) {
	return s.resp, s.recordErr
}
func (s *stubReturnService) RecordReturnForRelease(actor services.Actor, releaseID int64, req services.RecordReturnRequest) (*services.RecordReturnResponse, error) {
	s.gotReleaseID = releaseID
	return s.resp, s.recordErr
}
func (s *stubReturnService) GetReturns() ([]models.Return, error) {
	return s.returns, s.getErr
}
func (s *stubReturnService) GetReturnByID(returnID int64) (*models.Return, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	if len(s.returns) == 0 {
		return nil, services.ErrReturnNotFound
	}
	return &s.returns[0], nil
}
func (s *stubReturnService) GetReturnsByReleaseID(releaseID int64) ([]models.Return, error) {
	s.gotReleaseID = releaseID
	return s.returns, s.getErr
}
func (s *stubReturnService) GetOverdueReturns() ([]models.Return, error) {
	return s.returns, s.getErr
}

func newReturnTestRouter(svc services.ReturnService) *gin.Engine {
	engine := gin.New()
	handler := NewReturnHandler(svc)
	group := engine.Group("/api/v1")
	group.Use(testAuth(services.Actor{ID: 1, Username: "tester", Role: models.RoleStaff}))
	group.POST("/returns", handler.RecordReturn)
	group.POST("/returns/release/:releaseId", handler.RecordReturnForRelease)
	group.GET("/returns", handler.GetReturns)
	group.GET("/returns/overdue", handler.GetOverdueReturns)
	group.GET("/returns/release/:releaseId", handler.GetReturnsForRelease)
	group.GET("/returns/:id", handler.GetReturnByID)
	return engine
}

func TestRecordReturnCreated(t *testing.T) {
	ret := models.Return{ID: 11, ItemID: 3, QuantityReturned: 4}
	release := models.Release{ID: 7, QtyReleased: 10, QtyReturned: 4, QtyRemaining: 6, ReturnStatus: models.ReturnStatusPartial}
	engine := newReturnTestRouter(&stubReturnService{
		resp: &services.RecordReturnResponse{Return: &ret, Release: &release, ItemQuantity: 24},
	})

	rec := doJSON(t, engine, http.MethodPost, "/api/v1/returns", map[string]interface{}{
		"item_id": 3, "release_id": 7, "quantity_returned": 4, "returned_by": "ward A",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", rec.Code, rec.Body.String())
	}
	var resp services.RecordReturnResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Release == nil || resp.Release.ReturnStatus != models.ReturnStatusPartial {
		t.Errorf("unexpected release in response: %+v", resp.Release)
	}
}

func TestRecordReturnForReleaseUsesPathID(t *testing.T) {
	ret := models.Return{ID: 12, ItemID: 3, QuantityReturned: 2}
	stub := &stubReturnService{resp: &services.RecordReturnResponse{Return: &ret, ItemQuantity: 22}}
	engine := newReturnTestRouter(stub)

	rec := doJSON(t, engine, http.MethodPost, "/api/v1/returns/release/7", map[string]interface{}{
		"item_id": 3, "quantity_returned": 2, "returned_by": "ward A",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", rec.Code, rec.Body.String())
	}
	if stub.gotReleaseID != 7 {
		t.Errorf("release id passed to service = %d, want 7", stub.gotReleaseID)
	}
}

func TestRecordReturnOverReturn(t *testing.T) {
	engine := newReturnTestRouter(&stubReturnService{
		recordErr: fmt.Errorf("%w: release 7 has only 2 outstanding", services.ErrOverReturn),
	})

	rec := doJSON(t, engine, http.MethodPost, "/api/v1/returns", map[string]interface{}{
		"item_id": 3, "release_id": 7, "quantity_returned": 5, "returned_by": "ward A",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	if code := errorCode(t, rec); code != "OVER_RETURN" {
		t.Errorf("error code = %q, want OVER_RETURN", code)
	}
}

func TestGetOverdueReturns(t *testing.T) {
	engine := newReturnTestRouter(&stubReturnService{
		returns: []models.Return{{ID: 5, IsOverdue: true}},
	})

	rec := doJSON(t, engine, http.MethodGet, "/api/v1/returns/overdue", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var returns []models.Return
	if err := json.Unmarshal(rec.Body.Bytes(), &returns); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(returns) != 1 || !returns[0].IsOverdue {
		t.Errorf("unexpected returns: %+v", returns)
	}
}
