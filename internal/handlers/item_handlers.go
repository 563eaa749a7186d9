package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ayomidekayo/OgwInventorybackend/internal/services"
	"github.com/Ayomidekayo/OgwInventorybackend/pkg/utils"
)

// ItemHandler holds the item service.
type ItemHandler struct {
	itemService services.ItemService
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(is services.ItemService) *ItemHandler {
	return &ItemHandler{itemService: is}
}

// CreateItem handles adding a new item to the inventory.
func (h *ItemHandler) CreateItem(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var req services.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	item, err := h.itemService.CreateItem(actor, req)
	if err != nil {
		respondServiceError(c, err, "CreateItem: Error from itemService.CreateItem")
		return
	}
	c.JSON(http.StatusCreated, item)
}

// GetItems handles fetching all non-deleted items.
func (h *ItemHandler) GetItems(c *gin.Context) {
	items, err := h.itemService.GetItems()
	if err != nil {
		respondServiceError(c, err, "GetItems: Error from itemService.GetItems")
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetItemByID handles fetching a single item.
func (h *ItemHandler) GetItemByID(c *gin.Context) {
	itemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	item, err := h.itemService.GetItemByID(itemID)
	if err != nil {
		respondServiceError(c, err, "GetItemByID: Error from itemService.GetItemByID")
		return
	}
	c.JSON(http.StatusOK, item)
}

// UpdateItem handles partial updates to an item.
func (h *ItemHandler) UpdateItem(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	itemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req services.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	item, err := h.itemService.UpdateItem(actor, itemID, req)
	if err != nil {
		respondServiceError(c, err, "UpdateItem: Error from itemService.UpdateItem")
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteItem handles soft-deleting an item.
func (h *ItemHandler) DeleteItem(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	itemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.itemService.DeleteItem(actor, itemID); err != nil {
		respondServiceError(c, err, "DeleteItem: Error from itemService.DeleteItem")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item deleted successfully"})
}

// GetItemHistory handles fetching an item with its releases and returns.
func (h *ItemHandler) GetItemHistory(c *gin.Context) {
	itemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	history, err := h.itemService.GetItemHistory(itemID)
	if err != nil {
		respondServiceError(c, err, "GetItemHistory: Error from itemService.GetItemHistory")
		return
	}
	c.JSON(http.StatusOK, history)
}
