package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"billtrack/internal/core"
)

const dateLayout = "2006-01-02"

// SQLiteRepository owns all persisted state: transactions, categories, the
// monthly budget, the notification tier map and the user table. Dates are
// stored as ISO day strings and parsed into time.Time at this edge; nothing
// above this layer ever compares date strings. Amounts are stored as decimal
// text, never floats.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// storeErr wraps a driver failure so callers can classify it as transient
// with errors.Is(err, core.ErrStoreUnavailable).
func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, core.ErrStoreUnavailable, err)
}

const transactionColumns = `id, description, amount, category, account_type, status,
	due_date, payment_date, installment_current, installment_total, created_at`

// ListTransactions implements ports.TransactionStore. Rows come back in
// insertion order: the aggregation code sorts stably over this snapshot, so
// equal due dates keep first-created-first ordering. rowid settles rows that
// share a creation timestamp.
func (r *SQLiteRepository) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions ORDER BY created_at ASC, rowid ASC`)
	if err != nil {
		return nil, storeErr("list transactions", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list transactions", err)
	}
	return out, nil
}

// GetTransaction implements ports.TransactionStore.
func (r *SQLiteRepository) GetTransaction(ctx context.Context, id string) (core.Transaction, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE id = ?`, id)
	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, core.ErrNotFound
	}
	if err != nil {
		return core.Transaction{}, storeErr("get transaction", err)
	}
	return t, nil
}

// AddTransaction implements ports.TransactionStore. The repository assigns
// the id; it is immutable afterwards.
func (r *SQLiteRepository) AddTransaction(ctx context.Context, n core.NewTransaction) (core.Transaction, error) {
	t := core.Transaction{
		ID:           uuid.NewString(),
		Description:  n.Description,
		Amount:       n.Amount,
		Category:     n.Category,
		AccountType:  n.AccountType,
		Status:       n.Status,
		DueDate:      core.DayStart(n.DueDate),
		Installments: n.Installments,
		CreatedAt:    time.Now().UTC(),
	}
	if !n.PaymentDate.IsZero() {
		t.PaymentDate = core.DayStart(n.PaymentDate)
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (`+transactionColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Description, t.Amount.String(), t.Category, string(t.AccountType), string(t.Status),
		t.DueDate.Format(dateLayout), nullableDate(t.PaymentDate),
		t.Installments.Current, t.Installments.Total, t.CreatedAt)
	if err != nil {
		return core.Transaction{}, storeErr("add transaction", err)
	}

	slog.InfoContext(ctx, "Transaction saved",
		"id", t.ID,
		"description", t.Description,
		"amount", t.Amount.String(),
		"due_date", t.DueDate.Format(dateLayout),
		"status", string(t.Status))

	return t, nil
}

// UpdateTransaction implements ports.TransactionStore. The stored row is
// read, the patch applied and the full row written back; single active
// client, so no optimistic-concurrency token.
func (r *SQLiteRepository) UpdateTransaction(ctx context.Context, id string, p core.TransactionPatch) (core.Transaction, error) {
	current, err := r.GetTransaction(ctx, id)
	if err != nil {
		return core.Transaction{}, err
	}

	updated := p.Apply(current)
	updated.DueDate = core.DayStart(updated.DueDate)
	if !updated.PaymentDate.IsZero() {
		updated.PaymentDate = core.DayStart(updated.PaymentDate)
	}

	_, err = r.db.ExecContext(ctx,
		`UPDATE transactions SET description = ?, amount = ?, category = ?, account_type = ?,
			status = ?, due_date = ?, payment_date = ?, installment_current = ?, installment_total = ?
		 WHERE id = ?`,
		updated.Description, updated.Amount.String(), updated.Category, string(updated.AccountType),
		string(updated.Status), updated.DueDate.Format(dateLayout), nullableDate(updated.PaymentDate),
		updated.Installments.Current, updated.Installments.Total, id)
	if err != nil {
		return core.Transaction{}, storeErr("update transaction", err)
	}

	return updated, nil
}

// DeleteTransaction implements ports.TransactionStore. The notification
// state row goes with the transaction.
func (r *SQLiteRepository) DeleteTransaction(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return storeErr("delete transaction", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storeErr("delete transaction", err)
	}
	if n == 0 {
		return core.ErrNotFound
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM notification_state WHERE transaction_id = ?`, id); err != nil {
		slog.WarnContext(ctx, "Failed to clear notification state for deleted transaction",
			"id", id, "error", err)
	}
	return nil
}

// ListCategories implements ports.CategoryStore.
func (r *SQLiteRepository) ListCategories(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name FROM categories ORDER BY name`)
	if err != nil {
		return nil, storeErr("list categories", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, name)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list categories", err)
	}
	return out, nil
}

// AddCategory implements ports.CategoryStore. Adding an existing name is a
// no-op.
func (r *SQLiteRepository) AddCategory(ctx context.Context, name string) error {
	if _, err := r.db.ExecContext(ctx, `INSERT OR IGNORE INTO categories (name) VALUES (?)`, name); err != nil {
		return storeErr("add category", err)
	}
	return nil
}

// DeleteCategory implements ports.CategoryStore. The category reference on
// transactions is soft: rows keep their category name.
func (r *SQLiteRepository) DeleteCategory(ctx context.Context, name string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE name = ?`, name)
	if err != nil {
		return storeErr("delete category", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storeErr("delete category", err)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

// GetBudget implements ports.BudgetStore. Zero means tracking disabled.
func (r *SQLiteRepository) GetBudget(ctx context.Context) (decimal.Decimal, error) {
	var raw string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = 'monthly_budget'`).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, storeErr("get budget", err)
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse stored budget %q: %w", raw, err)
	}
	return d, nil
}

// SetBudget implements ports.BudgetStore.
func (r *SQLiteRepository) SetBudget(ctx context.Context, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return core.ErrInvalidAmount
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES ('monthly_budget', ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, amount.String())
	if err != nil {
		return storeErr("set budget", err)
	}
	return nil
}

// LoadNotificationTiers implements ports.NotificationStateStore.
func (r *SQLiteRepository) LoadNotificationTiers(ctx context.Context) (map[string]core.AlertTier, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT transaction_id, tier FROM notification_state`)
	if err != nil {
		return nil, storeErr("load notification tiers", err)
	}
	defer rows.Close()

	out := make(map[string]core.AlertTier)
	for rows.Next() {
		var id, tier string
		if err := rows.Scan(&id, &tier); err != nil {
			return nil, fmt.Errorf("scan notification tier: %w", err)
		}
		out[id] = core.AlertTier(tier)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("load notification tiers", err)
	}
	return out, nil
}

// SetNotificationTier implements ports.NotificationStateStore.
func (r *SQLiteRepository) SetNotificationTier(ctx context.Context, transactionID string, tier core.AlertTier) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO notification_state (transaction_id, tier, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(transaction_id) DO UPDATE SET tier = excluded.tier, updated_at = excluded.updated_at`,
		transactionID, string(tier))
	if err != nil {
		return storeErr("set notification tier", err)
	}
	return nil
}

// ClearNotificationStatus implements ports.NotificationStateStore. Clearing
// an id with no entry is a no-op, so the call is idempotent.
func (r *SQLiteRepository) ClearNotificationStatus(ctx context.Context, transactionID string) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM notification_state WHERE transaction_id = ?`, transactionID); err != nil {
		return storeErr("clear notification status", err)
	}
	return nil
}

// GetUserByEmail implements ports.UserStore. The secret stays inside the
// auth package; it is never attached to the returned User.
func (r *SQLiteRepository) GetUserByEmail(ctx context.Context, email string) (core.User, error) {
	var u core.User
	var name sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT id, email, name FROM users WHERE email = ?`, email).Scan(&u.ID, &u.Email, &name)
	if errors.Is(err, sql.ErrNoRows) {
		return core.User{}, core.ErrNotFound
	}
	if err != nil {
		return core.User{}, storeErr("get user", err)
	}
	u.Name = name.String
	return u, nil
}

// GetUserSecret returns the stored secret for an email, for the auth
// package's constant-time comparison.
func (r *SQLiteRepository) GetUserSecret(ctx context.Context, email string) (string, error) {
	var secret string
	err := r.db.QueryRowContext(ctx, `SELECT secret FROM users WHERE email = ?`, email).Scan(&secret)
	if errors.Is(err, sql.ErrNoRows) {
		return "", core.ErrNotFound
	}
	if err != nil {
		return "", storeErr("get user secret", err)
	}
	return secret, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (core.Transaction, error) {
	var (
		t           core.Transaction
		amount      string
		accountType string
		status      string
		due         string
		payment     sql.NullString
	)
	if err := row.Scan(&t.ID, &t.Description, &amount, &t.Category, &accountType, &status,
		&due, &payment, &t.Installments.Current, &t.Installments.Total, &t.CreatedAt); err != nil {
		return core.Transaction{}, err
	}

	var err error
	if t.Amount, err = decimal.NewFromString(amount); err != nil {
		return core.Transaction{}, fmt.Errorf("parse amount %q: %w", amount, err)
	}
	if t.DueDate, err = time.ParseInLocation(dateLayout, due, time.UTC); err != nil {
		return core.Transaction{}, fmt.Errorf("parse due date %q: %w", due, err)
	}
	if payment.Valid && payment.String != "" {
		if t.PaymentDate, err = time.ParseInLocation(dateLayout, payment.String, time.UTC); err != nil {
			return core.Transaction{}, fmt.Errorf("parse payment date %q: %w", payment.String, err)
		}
	}
	t.AccountType = core.AccountType(accountType)
	t.Status = core.Status(status)
	return t, nil
}

func nullableDate(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.Format(dateLayout)
}
