package services

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Ayomidekayo/OgwInventorybackend/internal/repositories"
)

// --- DashboardService Interface ---
type DashboardService interface {
	GetStats() (*repositories.DashboardStats, error)
}

type dashboardService struct {
	statsRepo         repositories.StatsRepository
	db                *sql.DB
	lowStockThreshold int
	now               func() time.Time
}

// NewDashboardService creates a new instance of DashboardService.
func NewDashboardService(sr repositories.StatsRepository, db *sql.DB, lowStockThreshold int) DashboardService {
	return &dashboardService{statsRepo: sr, db: db, lowStockThreshold: lowStockThreshold, now: time.Now}
}

func (s *dashboardService) GetStats() (*repositories.DashboardStats, error) {
	stats, err := s.statsRepo.GetDashboardStats(s.db, s.lowStockThreshold, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to compute dashboard stats: %w", err)
	}
	return stats, nil
}
