package services

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/Ayomidekayo/OgwInventorybackend/internal/models"
	"github.com/Ayomidekayo/OgwInventorybackend/internal/repositories"
	"github.com/Ayomidekayo/OgwInventorybackend/pkg/utils"
)

// --- Data Transfer Objects (DTOs) ---

type CreateItemRequest struct {
	Name          string `json:"name" binding:"required"`
	Category      string `json:"category"`
	Description   string `json:"description"`
	Quantity      int    `json:"quantity"`
	MeasuringUnit string `json:"measuring_unit" binding:"required"`
}

// UpdateItemRequest uses pointers so absent fields are left untouched.
type UpdateItemRequest struct {
	Name          *string `json:"name"`
	Category      *string `json:"category"`
	Description   *string `json:"description"`
	Quantity      *int    `json:"quantity"`
	MeasuringUnit *string `json:"measuring_unit"`
}

// --- ItemService Interface ---
type ItemService interface {
	CreateItem(actor Actor, req CreateItemRequest) (*models.Item, error)
	GetItems() ([]models.Item, error)
	GetItemByID(itemID int64) (*models.Item, error)
	UpdateItem(actor Actor, itemID int64, req UpdateItemRequest) (*models.Item, error)
	DeleteItem(actor Actor, itemID int64) error
	GetItemHistory(itemID int64) (*ItemHistory, error)
}

// ItemHistory bundles an item with its releases and returns.
type ItemHistory struct {
	Item     *models.Item     `json:"item"`
	Releases []models.Release `json:"releases"`
	Returns  []models.Return  `json:"returns"`
}

// --- itemService Implementation ---
type itemService struct {
	itemRepo    repositories.ItemRepository
	releaseRepo repositories.ReleaseRepository
	returnRepo  repositories.ReturnRepository
	notifRepo   repositories.NotificationRepository
	alerts      *StockAlerter
	db          *sql.DB // For managing transactions
}

// NewItemService creates a new instance of ItemService.
func NewItemService(
	ir repositories.ItemRepository,
	rr repositories.ReleaseRepository,
	retr repositories.ReturnRepository,
	nr repositories.NotificationRepository,
	alerts *StockAlerter,
	db *sql.DB,
) ItemService {
	return &itemService{
		itemRepo:    ir,
		releaseRepo: rr,
		returnRepo:  retr,
		notifRepo:   nr,
		alerts:      alerts,
		db:          db,
	}
}

func (s *itemService) CreateItem(actor Actor, req CreateItemRequest) (*models.Item, error) {
	if utils.IsEmpty(req.Name) {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if req.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity cannot be negative", ErrValidation)
	}
	if !models.IsValidMeasuringUnit(req.MeasuringUnit) {
		return nil, fmt.Errorf("%w: unknown measuring unit '%s'", ErrValidation, req.MeasuringUnit)
	}

	status := models.ItemStatusIn
	if req.Quantity == 0 {
		status = models.ItemStatusOut
	}
	item := models.Item{
		Name:          req.Name,
		Category:      req.Category,
		Description:   req.Description,
		Quantity:      req.Quantity,
		MeasuringUnit: req.MeasuringUnit,
		CurrentStatus: status,
		AddedBy:       &actor.ID,
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := s.itemRepo.CreateItem(tx, &item); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: an item named '%s' already exists", ErrValidation, req.Name)
		}
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	logEntry := models.ActionLog{
		UserID: actor.ID,
		Action: "create_item",
		Details: map[string]interface{}{
			"item_id":  item.ID,
			"name":     item.Name,
			"quantity": item.Quantity,
		},
	}
	if _, err := s.notifRepo.CreateActionLog(tx, &logEntry); err != nil {
		return nil, fmt.Errorf("failed to create item action log: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCommitConflict, err)
	}
	return &item, nil
}

func (s *itemService) GetItems() ([]models.Item, error) {
	items, err := s.itemRepo.GetItems(s.db)
	if err != nil {
		return nil, fmt.Errorf("failed to get items: %w", err)
	}
	return items, nil
}

func (s *itemService) GetItemByID(itemID int64) (*models.Item, error) {
	item, err := s.itemRepo.GetItemByID(s.db, itemID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get item %d: %w", itemID, err)
	}
	return item, nil
}

// UpdateItem applies partial updates. Quantity edits go through the stock
// alerter afterwards, which raises low-stock or restock alerts as needed.
func (s *itemService) UpdateItem(actor Actor, itemID int64, req UpdateItemRequest) (*models.Item, error) {
	if req.Quantity != nil && *req.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity cannot be negative", ErrValidation)
	}
	if req.MeasuringUnit != nil && !models.IsValidMeasuringUnit(*req.MeasuringUnit) {
		return nil, fmt.Errorf("%w: unknown measuring unit '%s'", ErrValidation, *req.MeasuringUnit)
	}
	if req.Name != nil && utils.IsEmpty(*req.Name) {
		return nil, fmt.Errorf("%w: name cannot be empty", ErrValidation)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	item, err := s.itemRepo.GetItemByIDForUpdate(tx, itemID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to fetch item %d: %w", itemID, err)
	}

	previousQuantity := item.Quantity
	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.MeasuringUnit != nil {
		item.MeasuringUnit = *req.MeasuringUnit
	}
	if req.Quantity != nil {
		item.Quantity = *req.Quantity
	}
	if item.Quantity == 0 {
		item.CurrentStatus = models.ItemStatusOut
	} else {
		item.CurrentStatus = models.ItemStatusIn
	}

	if err := s.itemRepo.UpdateItem(tx, item); err != nil {
		return nil, fmt.Errorf("failed to update item %d: %w", itemID, err)
	}

	logEntry := models.ActionLog{
		UserID: actor.ID,
		Action: "update_item",
		Details: map[string]interface{}{
			"item_id":           item.ID,
			"previous_quantity": previousQuantity,
			"quantity":          item.Quantity,
		},
	}
	if _, err := s.notifRepo.CreateActionLog(tx, &logEntry); err != nil {
		return nil, fmt.Errorf("failed to create item action log: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCommitConflict, err)
	}

	s.alerts.QuantityChanged(actor, item)
	return item, nil
}

// DeleteItem soft-deletes: the row stays for history but leaves all reads.
func (s *itemService) DeleteItem(actor Actor, itemID int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.itemRepo.SoftDeleteItem(tx, itemID, actor.ID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrItemNotFound
		}
		return fmt.Errorf("failed to delete item %d: %w", itemID, err)
	}

	logEntry := models.ActionLog{
		UserID:  actor.ID,
		Action:  "delete_item",
		Details: map[string]interface{}{"item_id": itemID},
	}
	if _, err := s.notifRepo.CreateActionLog(tx, &logEntry); err != nil {
		return fmt.Errorf("failed to create item action log: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", ErrCommitConflict, err)
	}
	return nil
}

func (s *itemService) GetItemHistory(itemID int64) (*ItemHistory, error) {
	item, err := s.GetItemByID(itemID)
	if err != nil {
		return nil, err
	}
	releases, err := s.releaseRepo.GetReleasesByItemID(s.db, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to get releases for item %d: %w", itemID, err)
	}
	returns, err := s.returnRepo.GetReturnsByItemID(s.db, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to get returns for item %d: %w", itemID, err)
	}
	return &ItemHistory{Item: item, Releases: releases, Returns: returns}, nil
}
