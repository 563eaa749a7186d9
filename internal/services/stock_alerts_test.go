package services

import (
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/Ayomidekayo/OgwInventorybackend/internal/models"
	"github.com/Ayomidekayo/OgwInventorybackend/internal/notifier"
	"github.com/Ayomidekayo/OgwInventorybackend/internal/repositories"
)

type captureMailer struct {
	mu   sync.Mutex
	sent []string
}

func (m *captureMailer) Send(to, subject, html string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, to)
	return nil
}

func (m *captureMailer) recipients() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.sent...)
}

func newAlerterWithDB(t *testing.T, at time.Time) (*StockAlerter, sqlmock.Sqlmock, *captureMailer, *notifier.Dispatcher) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	mailer := &captureMailer{}
	dispatcher := notifier.NewDispatcher(mailer, 8)
	alerter := NewStockAlerter(
		repositories.NewNotificationRepository(db),
		repositories.NewUserRepository(db),
		dispatcher, db, 5,
	)
	alerter.now = func() time.Time { return at }
	return alerter, mock, mailer, dispatcher
}

func superadminRows(emails ...string) *sqlmock.Rows {
	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "username", "password_hash", "email", "full_name", "role_id",
		"is_active", "created_at", "updated_at", "r_id", "r_name", "r_description",
	})
	for i, email := range emails {
		rows.AddRow(int64(i+1), "admin", "x", email, nil, int64(1), true, now, now,
			int64(1), models.RoleSuperadmin, nil)
	}
	return rows
}

func alertRows(notifType string, createdAt time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "type", "item_id", "message", "recipient", "read",
		"sent_at", "created_at", "updated_at",
	}).AddRow(int64(9), notifType, int64(1), "msg", nil, false, createdAt, createdAt, createdAt)
}

func noAlertRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "type", "item_id", "message", "recipient", "read",
		"sent_at", "created_at", "updated_at",
	})
}

func insertedNotificationRows(id int64) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(id, now, now)
}

// Dropping to the threshold with no recent alert notifies every superadmin.
func TestLowStockAlertFansOutToSuperadmins(t *testing.T) {
	now := time.Now()
	alerter, mock, mailer, dispatcher := newAlerterWithDB(t, now)

	mock.ExpectQuery(`FROM users u LEFT JOIN roles r`).
		WithArgs(models.RoleSuperadmin).
		WillReturnRows(superadminRows("root@example.com", "ops@example.com"))
	mock.ExpectQuery(`FROM notifications WHERE item_id = \$1 AND type = \$2`).
		WithArgs(int64(1), models.NotificationLowStock).
		WillReturnRows(noAlertRows())
	mock.ExpectQuery(`INSERT INTO notifications`).WillReturnRows(insertedNotificationRows(41))
	mock.ExpectQuery(`INSERT INTO notifications`).WillReturnRows(insertedNotificationRows(42))

	item := &models.Item{ID: 1, Name: "Gauze", Category: "stored", Quantity: 4, MeasuringUnit: "pack"}
	alerter.QuantityChanged(Actor{ID: 2, Username: "keeper"}, item)
	dispatcher.Close()

	if got := mailer.recipients(); len(got) != 2 {
		t.Fatalf("expected 2 alert emails, got %v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

// An alert younger than the dedup window suppresses a repeat.
func TestLowStockAlertDedupWindow(t *testing.T) {
	now := time.Now()
	alerter, mock, mailer, dispatcher := newAlerterWithDB(t, now)

	mock.ExpectQuery(`FROM users u LEFT JOIN roles r`).
		WithArgs(models.RoleSuperadmin).
		WillReturnRows(superadminRows("root@example.com"))
	mock.ExpectQuery(`FROM notifications WHERE item_id = \$1 AND type = \$2`).
		WithArgs(int64(1), models.NotificationLowStock).
		WillReturnRows(alertRows(models.NotificationLowStock, now.Add(-time.Hour)))

	item := &models.Item{ID: 1, Name: "Gauze", Quantity: 3, MeasuringUnit: "pack"}
	alerter.QuantityChanged(Actor{ID: 2, Username: "keeper"}, item)
	dispatcher.Close()

	if got := mailer.recipients(); len(got) != 0 {
		t.Fatalf("expected no emails inside dedup window, got %v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

// Once the prior alert ages past the window the item alerts again.
func TestLowStockAlertRefiresAfterWindow(t *testing.T) {
	now := time.Now()
	alerter, mock, mailer, dispatcher := newAlerterWithDB(t, now)

	mock.ExpectQuery(`FROM users u LEFT JOIN roles r`).
		WithArgs(models.RoleSuperadmin).
		WillReturnRows(superadminRows("root@example.com"))
	mock.ExpectQuery(`FROM notifications WHERE item_id = \$1 AND type = \$2`).
		WithArgs(int64(1), models.NotificationLowStock).
		WillReturnRows(alertRows(models.NotificationLowStock, now.Add(-25*time.Hour)))
	mock.ExpectQuery(`INSERT INTO notifications`).WillReturnRows(insertedNotificationRows(41))

	item := &models.Item{ID: 1, Name: "Gauze", Quantity: 3, MeasuringUnit: "pack"}
	alerter.QuantityChanged(Actor{ID: 2, Username: "keeper"}, item)
	dispatcher.Close()

	if got := mailer.recipients(); len(got) != 1 {
		t.Fatalf("expected 1 alert email after window, got %v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

// A quantity above the threshold with no prior low-stock episode is not a
// restock worth announcing.
func TestRestockAlertRequiresPriorLowStock(t *testing.T) {
	now := time.Now()
	alerter, mock, mailer, dispatcher := newAlerterWithDB(t, now)

	mock.ExpectQuery(`FROM users u LEFT JOIN roles r`).
		WithArgs(models.RoleSuperadmin).
		WillReturnRows(superadminRows("root@example.com"))
	mock.ExpectQuery(`FROM notifications WHERE item_id = \$1 AND type = \$2`).
		WithArgs(int64(1), models.NotificationLowStock).
		WillReturnRows(noAlertRows())

	item := &models.Item{ID: 1, Name: "Gauze", Quantity: 50, MeasuringUnit: "pack"}
	alerter.QuantityChanged(Actor{ID: 2, Username: "keeper"}, item)
	dispatcher.Close()

	if got := mailer.recipients(); len(got) != 0 {
		t.Fatalf("expected no restock email without a low-stock episode, got %v", got)
	}
}

// Restock fires once per low-stock episode: it fires when no restock alert
// followed the last low-stock one, and stays quiet once one has.
func TestRestockAlertOncePerEpisode(t *testing.T) {
	now := time.Now()

	t.Run("fires after low-stock alert", func(t *testing.T) {
		alerter, mock, mailer, dispatcher := newAlerterWithDB(t, now)

		mock.ExpectQuery(`FROM users u LEFT JOIN roles r`).
			WithArgs(models.RoleSuperadmin).
			WillReturnRows(superadminRows("root@example.com"))
		mock.ExpectQuery(`FROM notifications WHERE item_id = \$1 AND type = \$2`).
			WithArgs(int64(1), models.NotificationLowStock).
			WillReturnRows(alertRows(models.NotificationLowStock, now.Add(-2*time.Hour)))
		mock.ExpectQuery(`FROM notifications WHERE item_id = \$1 AND type = \$2`).
			WithArgs(int64(1), models.NotificationRestock).
			WillReturnRows(noAlertRows())
		mock.ExpectQuery(`INSERT INTO notifications`).WillReturnRows(insertedNotificationRows(41))

		item := &models.Item{ID: 1, Name: "Gauze", Quantity: 50, MeasuringUnit: "pack"}
		alerter.QuantityChanged(Actor{ID: 2, Username: "keeper"}, item)
		dispatcher.Close()

		if got := mailer.recipients(); len(got) != 1 {
			t.Fatalf("expected 1 restock email, got %v", got)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
	})

	t.Run("suppressed after a newer restock alert", func(t *testing.T) {
		alerter, mock, mailer, dispatcher := newAlerterWithDB(t, now)

		mock.ExpectQuery(`FROM users u LEFT JOIN roles r`).
			WithArgs(models.RoleSuperadmin).
			WillReturnRows(superadminRows("root@example.com"))
		mock.ExpectQuery(`FROM notifications WHERE item_id = \$1 AND type = \$2`).
			WithArgs(int64(1), models.NotificationLowStock).
			WillReturnRows(alertRows(models.NotificationLowStock, now.Add(-2*time.Hour)))
		mock.ExpectQuery(`FROM notifications WHERE item_id = \$1 AND type = \$2`).
			WithArgs(int64(1), models.NotificationRestock).
			WillReturnRows(alertRows(models.NotificationRestock, now.Add(-time.Hour)))

		item := &models.Item{ID: 1, Name: "Gauze", Quantity: 50, MeasuringUnit: "pack"}
		alerter.QuantityChanged(Actor{ID: 2, Username: "keeper"}, item)
		dispatcher.Close()

		if got := mailer.recipients(); len(got) != 0 {
			t.Fatalf("expected no repeat restock email, got %v", got)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
	})
}
