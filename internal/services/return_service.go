package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Ayomidekayo/OgwInventorybackend/internal/metrics"
	"github.com/Ayomidekayo/OgwInventorybackend/internal/models"
	"github.com/Ayomidekayo/OgwInventorybackend/internal/notifier"
	"github.com/Ayomidekayo/OgwInventorybackend/internal/repositories"
	"github.com/Ayomidekayo/OgwInventorybackend/pkg/utils"
)

// --- Data Transfer Objects (DTOs) ---

// RecordReturnRequest is used for recording quantity coming back into stock.
// ReleaseID is optional; without it the return is standalone and no
// reconciliation happens.
type RecordReturnRequest struct {
	ItemID           int64  `json:"item_id" binding:"required"`
	ReleaseID        *int64 `json:"release_id"`
	QuantityReturned int    `json:"quantity_returned" binding:"required"`
	ReturnedBy       string `json:"returned_by" binding:"required"`
	ReturnedByEmail  string `json:"returned_by_email"`
	Condition        string `json:"condition"`
	Remarks          string `json:"remarks"`
}

// RecordReturnResponse carries the return record plus the reconciled release
// (nil for standalone returns) and the item's post-credit quantity.
type RecordReturnResponse struct {
	Return       *models.Return  `json:"return"`
	Release      *models.Release `json:"release,omitempty"`
	ItemQuantity int             `json:"item_quantity"`
}

// --- ReturnService Interface ---
type ReturnService interface {
	RecordReturn(actor Actor, req RecordReturnRequest) (*RecordReturnResponse, error)
	RecordReturnForRelease(actor Actor, releaseID int64, req RecordReturnRequest) (*RecordReturnResponse, error)
	GetReturns() ([]models.Return, error)
	GetReturnByID(returnID int64) (*models.Return, error)
	GetReturnsByReleaseID(releaseID int64) ([]models.Return, error)
	GetOverdueReturns() ([]models.Return, error)
}

// --- returnService Implementation ---
type returnService struct {
	itemRepo    repositories.ItemRepository
	releaseRepo repositories.ReleaseRepository
	returnRepo  repositories.ReturnRepository
	notifRepo   repositories.NotificationRepository
	userRepo    repositories.UserRepository
	dispatcher  *notifier.Dispatcher
	db          *sql.DB // For managing transactions
	now         func() time.Time
}

// NewReturnService creates a new instance of ReturnService.
func NewReturnService(
	ir repositories.ItemRepository,
	rr repositories.ReleaseRepository,
	retr repositories.ReturnRepository,
	nr repositories.NotificationRepository,
	ur repositories.UserRepository,
	dispatcher *notifier.Dispatcher,
	db *sql.DB,
) ReturnService {
	return &returnService{
		itemRepo:    ir,
		releaseRepo: rr,
		returnRepo:  retr,
		notifRepo:   nr,
		userRepo:    ur,
		dispatcher:  dispatcher,
		db:          db,
		now:         time.Now,
	}
}

// RecordReturnForRelease is the path-bound variant: the release id from the
// URL wins over anything in the body.
func (s *returnService) RecordReturnForRelease(actor Actor, releaseID int64, req RecordReturnRequest) (*RecordReturnResponse, error) {
	req.ReleaseID = &releaseID
	return s.RecordReturn(actor, req)
}

// RecordReturn credits the stock ledger, inserts the return record and, when
// the return targets a release, reconciles that release's counters and
// status. All of it happens in one transaction; the item row and (when
// present) the release row are locked up front so concurrent returns against
// the same release serialize.
func (s *returnService) RecordReturn(actor Actor, req RecordReturnRequest) (*RecordReturnResponse, error) {
	if req.QuantityReturned < 1 {
		return nil, fmt.Errorf("%w: quantity_returned must be at least 1", ErrValidation)
	}
	if utils.IsEmpty(req.ReturnedBy) {
		return nil, fmt.Errorf("%w: returned_by is required", ErrValidation)
	}
	if req.Condition == "" {
		req.Condition = models.ConditionGood
	}
	if !models.IsValidReturnCondition(req.Condition) {
		return nil, fmt.Errorf("%w: unknown condition '%s'", ErrValidation, req.Condition)
	}
	if req.ReturnedByEmail != "" && !utils.IsValidEmail(req.ReturnedByEmail) {
		return nil, fmt.Errorf("%w: returned_by_email is not a valid email address", ErrValidation)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	item, err := s.itemRepo.GetItemByIDForUpdate(tx, req.ItemID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: item %d", ErrItemNotFound, req.ItemID)
		}
		return nil, fmt.Errorf("failed to fetch item %d: %w", req.ItemID, err)
	}

	var release *models.Release
	if req.ReleaseID != nil {
		release, err = s.releaseRepo.GetReleaseByIDForUpdate(tx, *req.ReleaseID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, fmt.Errorf("%w: release %d", ErrReleaseNotFound, *req.ReleaseID)
			}
			return nil, fmt.Errorf("failed to fetch release %d: %w", *req.ReleaseID, err)
		}
		if release.ItemID != item.ID {
			return nil, fmt.Errorf("%w: release %d is for a different item", ErrValidation, release.ID)
		}
		// Over-return guard: the sum over a release's returns never
		// exceeds what was released.
		if release.QtyReturned+req.QuantityReturned > release.QtyReleased {
			metrics.RecordStockConflict("over_return")
			return nil, fmt.Errorf("%w: release %d has only %d outstanding", ErrOverReturn, release.ID, release.QtyRemaining)
		}
	}

	newQuantity, err := s.itemRepo.AdjustQuantity(tx, item.ID, req.QuantityReturned)
	if err != nil {
		return nil, fmt.Errorf("failed to credit stock for item %d: %w", item.ID, err)
	}

	ret := models.Return{
		ItemID:           item.ID,
		ReleaseID:        req.ReleaseID,
		ReturnedBy:       req.ReturnedBy,
		ReturnedByEmail:  utils.NewNullString(req.ReturnedByEmail),
		QuantityReturned: req.QuantityReturned,
		DateReturned:     s.now(),
		Condition:        req.Condition,
		Remarks:          req.Remarks,
		ProcessedBy:      &actor.ID,
		Status:           models.ReturnRecordProcessed,
	}
	if release != nil {
		ret.ExpectedReturnBy = release.ExpectedReturnBy
		ret.IsOverdue = IsOverdue(release.ExpectedReturnBy, ret.DateReturned)
	}

	if _, err := s.returnRepo.CreateReturn(tx, &ret); err != nil {
		return nil, fmt.Errorf("failed to create return record: %w", err)
	}

	if release != nil {
		release.QtyReturned += req.QuantityReturned
		release.QtyRemaining = RemainingQuantity(release.QtyReleased, release.QtyReturned)
		release.ReturnStatus, release.Archived = DeriveReturnState(release.QtyReleased, release.QtyReturned)
		if err := s.releaseRepo.UpdateReconciliation(tx, release); err != nil {
			if errors.Is(err, repositories.ErrInsufficientStock) {
				metrics.RecordStockConflict("over_return")
				return nil, fmt.Errorf("%w: release %d", ErrOverReturn, release.ID)
			}
			return nil, fmt.Errorf("failed to reconcile release %d: %w", release.ID, err)
		}
	}

	notification := models.Notification{
		Type:    models.NotificationReturnItem,
		ItemID:  &item.ID,
		Message: fmt.Sprintf("%d %s(s) of %q returned by %s in %s condition.", req.QuantityReturned, item.MeasuringUnit, item.Name, req.ReturnedBy, req.Condition),
	}
	if _, err := s.notifRepo.CreateNotification(tx, &notification); err != nil {
		return nil, fmt.Errorf("failed to create return notification: %w", err)
	}

	details := map[string]interface{}{
		"item_id":           item.ID,
		"return_id":         ret.ID,
		"quantity_returned": req.QuantityReturned,
		"returned_by":       req.ReturnedBy,
		"condition":         req.Condition,
	}
	if release != nil {
		details["release_id"] = release.ID
		details["return_status"] = release.ReturnStatus
	}
	logEntry := models.ActionLog{UserID: actor.ID, Action: "return_item", Details: details}
	if _, err := s.notifRepo.CreateActionLog(tx, &logEntry); err != nil {
		return nil, fmt.Errorf("failed to create return action log: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCommitConflict, err)
	}

	metrics.ReturnsTotal.Inc()

	s.sendReturnEmails(actor, item, &ret)

	return &RecordReturnResponse{Return: &ret, Release: release, ItemQuantity: newQuantity}, nil
}

func (s *returnService) sendReturnEmails(actor Actor, item *models.Item, ret *models.Return) {
	html := notifier.ItemReturnedHTML(notifier.ReturnEmailData{
		Item:        item.Name,
		ReturnedBy:  ret.ReturnedBy,
		Quantity:    ret.QuantityReturned,
		Condition:   ret.Condition,
		Remarks:     ret.Remarks,
		ProcessedBy: actor.Username,
	})
	subject := "Item Returned: " + item.Name

	recipients := map[string]bool{}
	superadmins, err := s.userRepo.GetUsersByRole(s.db, models.RoleSuperadmin)
	if err != nil {
		utils.LogError(err, "failed to look up superadmins for return email")
	}
	for i := range superadmins {
		if superadmins[i].Email != nil {
			recipients[*superadmins[i].Email] = true
		}
	}
	if ret.ReturnedByEmail != nil {
		recipients[*ret.ReturnedByEmail] = true
	}
	for to := range recipients {
		s.dispatcher.Enqueue(to, subject, html)
	}
}

func (s *returnService) GetReturns() ([]models.Return, error) {
	returns, err := s.returnRepo.GetReturns(s.db)
	if err != nil {
		return nil, fmt.Errorf("failed to get returns: %w", err)
	}
	return returns, nil
}

func (s *returnService) GetReturnByID(returnID int64) (*models.Return, error) {
	ret, err := s.returnRepo.GetReturnByID(s.db, returnID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrReturnNotFound
		}
		return nil, fmt.Errorf("failed to get return %d: %w", returnID, err)
	}
	return ret, nil
}

func (s *returnService) GetReturnsByReleaseID(releaseID int64) ([]models.Return, error) {
	if _, err := s.releaseRepo.GetReleaseByID(s.db, releaseID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrReleaseNotFound
		}
		return nil, fmt.Errorf("failed to get release %d: %w", releaseID, err)
	}
	returns, err := s.returnRepo.GetReturnsByReleaseID(s.db, releaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get returns for release %d: %w", releaseID, err)
	}
	if len(returns) == 0 {
		return nil, fmt.Errorf("%w: release %d has no returns", ErrReturnNotFound, releaseID)
	}
	return returns, nil
}

func (s *returnService) GetOverdueReturns() ([]models.Return, error) {
	returns, err := s.returnRepo.GetOverdueReturns(s.db, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to get overdue returns: %w", err)
	}
	return returns, nil
}
