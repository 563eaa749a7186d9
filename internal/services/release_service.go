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

// CreateReleaseRequest is used for releasing item quantity to an external party.
type CreateReleaseRequest struct {
	ItemID           int64  `json:"item_id" binding:"required"`
	QtyReleased      int    `json:"qty_released" binding:"required"`
	ReleasedTo       string `json:"released_to" binding:"required"`
	Category         string `json:"category" binding:"required"`
	Reason           string `json:"reason"`
	Remarks          string `json:"remarks"`
	ExpectedReturnBy string `json:"expected_return_by"` // RFC 3339 or YYYY-MM-DD; ignored for non-returnable categories
}

// CreateReleaseResponse is the release plus the item's post-debit quantity.
type CreateReleaseResponse struct {
	Release           *models.Release `json:"release"`
	RemainingQuantity int             `json:"remaining_quantity"`
}

// UpdateApprovalStatusRequest is used to approve/cancel a release.
type UpdateApprovalStatusRequest struct {
	ApprovalStatus string `json:"approval_status" binding:"required"`
}

// --- ReleaseService Interface ---
type ReleaseService interface {
	CreateRelease(actor Actor, req CreateReleaseRequest) (*CreateReleaseResponse, error)
	GetReleases() ([]models.Release, error)
	GetReleaseByID(releaseID int64) (*models.Release, error)
	UpdateApprovalStatus(releaseID int64, req UpdateApprovalStatusRequest) (*models.Release, error)
}

// --- releaseService Implementation ---
type releaseService struct {
	itemRepo   repositories.ItemRepository
	releaseRepo repositories.ReleaseRepository
	notifRepo  repositories.NotificationRepository
	userRepo   repositories.UserRepository
	dispatcher *notifier.Dispatcher
	alerts     *StockAlerter
	db         *sql.DB // For managing transactions
	adminEmail string  // distribution list for release notifications
}

// NewReleaseService creates a new instance of ReleaseService.
func NewReleaseService(
	ir repositories.ItemRepository,
	rr repositories.ReleaseRepository,
	nr repositories.NotificationRepository,
	ur repositories.UserRepository,
	dispatcher *notifier.Dispatcher,
	alerts *StockAlerter,
	db *sql.DB,
	adminEmail string,
) ReleaseService {
	return &releaseService{
		itemRepo:    ir,
		releaseRepo: rr,
		notifRepo:   nr,
		userRepo:    ur,
		dispatcher:  dispatcher,
		alerts:      alerts,
		db:          db,
		adminEmail:  adminEmail,
	}
}

// CreateRelease debits the stock ledger and creates the release record in one
// transaction. The item row is locked for the duration so concurrent releases
// against the same item serialize on its quantity.
func (s *releaseService) CreateRelease(actor Actor, req CreateReleaseRequest) (*CreateReleaseResponse, error) {
	if req.QtyReleased < 1 {
		return nil, fmt.Errorf("%w: qty_released must be at least 1", ErrValidation)
	}
	if utils.IsEmpty(req.ReleasedTo) {
		return nil, fmt.Errorf("%w: released_to is required", ErrValidation)
	}
	if !models.IsValidReleaseCategory(req.Category) {
		return nil, fmt.Errorf("%w: unknown release category '%s'", ErrValidation, req.Category)
	}

	isReturnable := IsReturnable(req.Category)

	// expected_return_by is stored only for returnable categories and only
	// when it parses; anything else is silently dropped, matching the way
	// release dates have always behaved here.
	var expectedReturnBy *time.Time
	if isReturnable && req.ExpectedReturnBy != "" {
		if t, err := parseDate(req.ExpectedReturnBy); err == nil {
			expectedReturnBy = &t
		}
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

	if item.Quantity < req.QtyReleased {
		metrics.RecordStockConflict("insufficient_stock")
		return nil, fmt.Errorf("%w: only %d available", ErrInsufficientStock, item.Quantity)
	}

	newQuantity, err := s.itemRepo.AdjustQuantity(tx, item.ID, -req.QtyReleased)
	if err != nil {
		if errors.Is(err, repositories.ErrInsufficientStock) {
			metrics.RecordStockConflict("insufficient_stock")
			return nil, fmt.Errorf("%w: only %d available", ErrInsufficientStock, item.Quantity)
		}
		return nil, fmt.Errorf("failed to debit stock for item %d: %w", item.ID, err)
	}

	approvalStatus := models.ApprovalPending
	if actor.IsSuperadmin() {
		approvalStatus = models.ApprovalApproved
	}

	returnStatus, archived := DeriveReturnState(req.QtyReleased, 0)
	release := models.Release{
		ItemID:           item.ID,
		Category:         req.Category,
		QtyReleased:      req.QtyReleased,
		QtyReturned:      0,
		QtyRemaining:     RemainingQuantity(req.QtyReleased, 0),
		ReleasedTo:       req.ReleasedTo,
		ReleasedBy:       actor.ID,
		Reason:           req.Reason,
		ExpectedReturnBy: expectedReturnBy,
		ApprovalStatus:   approvalStatus,
		ReturnStatus:     returnStatus,
		Archived:         archived,
		IsReturnable:     isReturnable,
		Remarks:          req.Remarks,
	}

	if _, err := s.releaseRepo.CreateRelease(tx, &release); err != nil {
		return nil, fmt.Errorf("failed to create release record: %w", err)
	}

	notification := models.Notification{
		Type:    models.NotificationReleaseItem,
		ItemID:  &item.ID,
		Message: fmt.Sprintf("%d %s(s) of %q released to %s by %s. Category: %s", req.QtyReleased, item.MeasuringUnit, item.Name, req.ReleasedTo, actor.Username, req.Category),
	}
	if _, err := s.notifRepo.CreateNotification(tx, &notification); err != nil {
		return nil, fmt.Errorf("failed to create release notification: %w", err)
	}

	logEntry := models.ActionLog{
		UserID: actor.ID,
		Action: "release_item",
		Details: map[string]interface{}{
			"item_id":      item.ID,
			"release_id":   release.ID,
			"qty_released": req.QtyReleased,
			"released_to":  req.ReleasedTo,
			"category":     req.Category,
		},
	}
	if _, err := s.notifRepo.CreateActionLog(tx, &logEntry); err != nil {
		return nil, fmt.Errorf("failed to create release action log: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCommitConflict, err)
	}

	metrics.ReleasesTotal.Inc()

	// Post-commit side effects are best-effort and never reported to the caller.
	s.sendReleaseEmails(actor, item, &release)
	item.Quantity = newQuantity
	s.alerts.QuantityChanged(actor, item)

	return &CreateReleaseResponse{Release: &release, RemainingQuantity: newQuantity}, nil
}

// sendReleaseEmails queues the admin-list and releasing-user notifications.
func (s *releaseService) sendReleaseEmails(actor Actor, item *models.Item, release *models.Release) {
	html := notifier.ItemReleasedHTML(notifier.ReleaseEmailData{
		Item:          item.Name,
		ReleasedTo:    release.ReleasedTo,
		Quantity:      release.QtyReleased,
		MeasuringUnit: item.MeasuringUnit,
		ReleasedBy:    actor.Username,
		Category:      release.Category,
		Reason:        release.Reason,
	})
	subject := "Item Released: " + item.Name

	recipients := map[string]bool{}
	if s.adminEmail != "" {
		recipients[s.adminEmail] = true
	}
	if user, err := s.userRepo.GetUserByID(s.db, actor.ID); err == nil && user.Email != nil {
		recipients[*user.Email] = true
	}
	for to := range recipients {
		s.dispatcher.Enqueue(to, subject, html)
	}
}

func (s *releaseService) GetReleases() ([]models.Release, error) {
	releases, err := s.releaseRepo.GetReleases(s.db)
	if err != nil {
		return nil, fmt.Errorf("failed to get releases: %w", err)
	}
	return releases, nil
}

func (s *releaseService) GetReleaseByID(releaseID int64) (*models.Release, error) {
	release, err := s.releaseRepo.GetReleaseByID(s.db, releaseID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrReleaseNotFound
		}
		return nil, fmt.Errorf("failed to get release %d: %w", releaseID, err)
	}
	return release, nil
}

// UpdateApprovalStatus changes a release's approval state. Cancelling does
// not restock the item: the quantity was debited at creation and stays
// spoken for until returned.
func (s *releaseService) UpdateApprovalStatus(releaseID int64, req UpdateApprovalStatusRequest) (*models.Release, error) {
	if !models.IsValidApprovalStatus(req.ApprovalStatus) {
		return nil, fmt.Errorf("%w: invalid approval status '%s'", ErrValidation, req.ApprovalStatus)
	}

	if err := s.releaseRepo.UpdateApprovalStatus(s.db, releaseID, req.ApprovalStatus); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrReleaseNotFound
		}
		return nil, fmt.Errorf("failed to update approval status of release %d: %w", releaseID, err)
	}
	return s.GetReleaseByID(releaseID)
}

// parseDate accepts timestamps with or without a time component.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
