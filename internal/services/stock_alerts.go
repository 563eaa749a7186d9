package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Ayomidekayo/OgwInventorybackend/internal/models"
	"github.com/Ayomidekayo/OgwInventorybackend/internal/notifier"
	"github.com/Ayomidekayo/OgwInventorybackend/internal/repositories"
	"github.com/Ayomidekayo/OgwInventorybackend/pkg/utils"
)

// StockAlerter raises low-stock and restock alerts after an item's quantity
// changes. Alerts fan out to every active superadmin and run outside the
// write transaction; a lost alert is acceptable, a lost write is not.
type StockAlerter struct {
	notifRepo  repositories.NotificationRepository
	userRepo   repositories.UserRepository
	dispatcher *notifier.Dispatcher
	db         *sql.DB
	threshold  int
	now        func() time.Time
}

// lowStockDedupWindow suppresses repeat low-stock alerts for an item while a
// prior alert is younger than this.
const lowStockDedupWindow = 24 * time.Hour

func NewStockAlerter(
	nr repositories.NotificationRepository,
	ur repositories.UserRepository,
	dispatcher *notifier.Dispatcher,
	db *sql.DB,
	threshold int,
) *StockAlerter {
	return &StockAlerter{
		notifRepo:  nr,
		userRepo:   ur,
		dispatcher: dispatcher,
		db:         db,
		threshold:  threshold,
		now:        time.Now,
	}
}

// QuantityChanged inspects the item's quantity against the threshold. At or
// below it a low-stock alert fires unless one went out within the dedup
// window; above it a restock alert fires once per low-stock episode.
func (a *StockAlerter) QuantityChanged(actor Actor, item *models.Item) {
	superadmins, err := a.userRepo.GetUsersByRole(a.db, models.RoleSuperadmin)
	if err != nil {
		utils.LogError(err, "failed to look up superadmins for stock alert")
		return
	}
	if len(superadmins) == 0 {
		return
	}

	lowAlert, err := a.notifRepo.GetLatestByItemAndType(a.db, item.ID, models.NotificationLowStock)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		utils.LogError(err, "failed to look up prior low-stock alert")
		return
	}

	if item.Quantity <= a.threshold {
		if lowAlert != nil && a.now().Sub(lowAlert.CreatedAt) < lowStockDedupWindow {
			return
		}
		a.notify(superadmins, models.NotificationLowStock, item,
			fmt.Sprintf("Low stock: %q is down to %d %s(s).", item.Name, item.Quantity, item.MeasuringUnit),
			"Low Stock Alert: "+item.Name,
			notifier.LowStockHTML(item.Name, item.Category, item.Quantity, a.threshold))
		return
	}

	// Restocked: only meaningful after a low-stock alert, and only once
	// until the item dips again.
	if lowAlert == nil {
		return
	}
	restockAlert, err := a.notifRepo.GetLatestByItemAndType(a.db, item.ID, models.NotificationRestock)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		utils.LogError(err, "failed to look up prior restock alert")
		return
	}
	if restockAlert != nil && !restockAlert.CreatedAt.Before(lowAlert.CreatedAt) {
		return
	}

	restocker := actor.Username
	if restocker == "" {
		restocker = "a team member"
	}
	a.notify(superadmins, models.NotificationRestock, item,
		fmt.Sprintf("%q restocked above threshold (%d %s(s) available) by %s.", item.Name, item.Quantity, item.MeasuringUnit, restocker),
		"Restock Notice: "+item.Name,
		notifier.RestockHTML(item.Name, item.Category, item.Quantity, restocker))
}

// notify writes one notification per superadmin and queues the emails.
func (a *StockAlerter) notify(superadmins []models.User, notifType string, item *models.Item, message, subject, html string) {
	for i := range superadmins {
		n := models.Notification{
			Type:      notifType,
			ItemID:    &item.ID,
			Recipient: &superadmins[i].ID,
			Message:   message,
		}
		if _, err := a.notifRepo.CreateNotification(a.db, &n); err != nil {
			utils.LogError(err, "failed to create "+notifType+" notification")
			return
		}
	}
	for i := range superadmins {
		if superadmins[i].Email != nil {
			a.dispatcher.Enqueue(*superadmins[i].Email, subject, html)
		}
	}
}
