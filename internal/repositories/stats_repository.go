package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Ayomidekayo/OgwInventorybackend/internal/models"
)

// DashboardStats are the aggregate counts shown on the dashboard.
type DashboardStats struct {
	TotalItems      int `json:"total_items"`
	QuantityOnHand  int `json:"quantity_on_hand"`
	OpenReleases    int `json:"open_releases"`
	OverdueReturns  int `json:"overdue_returns"`
	LowStockItems   int `json:"low_stock_items"`
	PendingApproval int `json:"pending_approval"`
}

// StatsRepository computes dashboard aggregates.
type StatsRepository interface {
	GetDashboardStats(executor SQLExecutor, lowStockThreshold int, asOf time.Time) (*DashboardStats, error)
}

type statsRepository struct {
	db *sql.DB
}

// NewStatsRepository creates a new instance of StatsRepository.
func NewStatsRepository(db *sql.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) GetDashboardStats(executor SQLExecutor, lowStockThreshold int, asOf time.Time) (*DashboardStats, error) {
	query := `SELECT
	    (SELECT COUNT(*) FROM items WHERE is_deleted = FALSE),
	    (SELECT COALESCE(SUM(quantity), 0) FROM items WHERE is_deleted = FALSE),
	    (SELECT COUNT(*) FROM releases WHERE archived = FALSE AND approval_status <> $1),
	    (SELECT COUNT(*) FROM returns WHERE expected_return_by IS NOT NULL AND expected_return_by < $2 AND status <> $3),
	    (SELECT COUNT(*) FROM items WHERE is_deleted = FALSE AND quantity <= $4),
	    (SELECT COUNT(*) FROM releases WHERE approval_status = $5)`

	var stats DashboardStats
	err := executor.QueryRow(query,
		models.ApprovalCancelled, asOf, models.ReturnRecordArchived, lowStockThreshold, models.ApprovalPending,
	).Scan(
		&stats.TotalItems, &stats.QuantityOnHand, &stats.OpenReleases,
		&stats.OverdueReturns, &stats.LowStockItems, &stats.PendingApproval,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: getting dashboard stats: %v", ErrDatabaseError, err)
	}
	return &stats, nil
}
