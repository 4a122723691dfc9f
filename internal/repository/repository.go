package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alanaraujo-bit/meu-bolso-sub000/internal/models"
)

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateUser creates a new user in the database
func (r *Repository) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, name, email, password_hash, created_at)
		VALUES (gen_random_uuid(), $1, $2, $3, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, user.Name, user.Email, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindUserByEmail retrieves a user by email
func (r *Repository) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, name, email, password_hash, created_at
		FROM users
		WHERE email = $1`
	err := r.db.QueryRowContext(ctx, query, email).
		Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// GetUser retrieves a user by id
func (r *Repository) GetUser(ctx context.Context, userID string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, name, email, password_hash, created_at
		FROM users
		WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, userID).
		Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// ListTransactions retrieves a user's transactions dated at or after since,
// oldest first
func (r *Repository) ListTransactions(ctx context.Context, userID string, since time.Time) ([]models.Transaction, error) {
	query := `
		SELECT id, user_id, kind, amount, date, COALESCE(category, ''), COALESCE(description, ''), created_at
		FROM transactions
		WHERE user_id = $1 AND date >= $2
		ORDER BY date, id`
	rows, err := r.db.QueryContext(ctx, query, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Kind, &t.Amount, &t.Date, &t.Category, &t.Description, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transactions: %w", err)
	}
	return transactions, nil
}

// ListGoals retrieves all of a user's savings goals, oldest first
func (r *Repository) ListGoals(ctx context.Context, userID string) ([]models.Goal, error) {
	query := `
		SELECT id, user_id, name, target_amount, current_amount, is_completed, completed_at, created_at, updated_at
		FROM goals
		WHERE user_id = $1
		ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	defer rows.Close()

	var goals []models.Goal
	for rows.Next() {
		var g models.Goal
		if err := rows.Scan(&g.ID, &g.UserID, &g.Name, &g.TargetAmount, &g.CurrentAmount, &g.IsCompleted, &g.CompletedAt, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read goals: %w", err)
	}
	return goals, nil
}

// ListDebts retrieves all of a user's debts with their installments
func (r *Repository) ListDebts(ctx context.Context, userID string) ([]models.Debt, error) {
	query := `
		SELECT id, user_id, name, status, created_at, updated_at
		FROM debts
		WHERE user_id = $1
		ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list debts: %w", err)
	}
	defer rows.Close()

	var debts []models.Debt
	index := make(map[string]int)
	for rows.Next() {
		var d models.Debt
		if err := rows.Scan(&d.ID, &d.UserID, &d.Name, &d.Status, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan debt: %w", err)
		}
		index[d.ID] = len(debts)
		debts = append(debts, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read debts: %w", err)
	}
	if len(debts) == 0 {
		return debts, nil
	}

	instQuery := `
		SELECT i.id, i.debt_id, i.amount, i.due_date, i.paid
		FROM debt_installments i
		JOIN debts d ON d.id = i.debt_id
		WHERE d.user_id = $1
		ORDER BY i.due_date, i.id`
	instRows, err := r.db.QueryContext(ctx, instQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list debt installments: %w", err)
	}
	defer instRows.Close()

	for instRows.Next() {
		var inst models.DebtInstallment
		if err := instRows.Scan(&inst.ID, &inst.DebtID, &inst.Amount, &inst.DueDate, &inst.Paid); err != nil {
			return nil, fmt.Errorf("failed to scan debt installment: %w", err)
		}
		if i, ok := index[inst.DebtID]; ok {
			debts[i].Installments = append(debts[i].Installments, inst)
		}
	}
	if err := instRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read debt installments: %w", err)
	}
	return debts, nil
}

// CurrentMonthSummary aggregates the calendar month containing now
func (r *Repository) CurrentMonthSummary(ctx context.Context, userID string, now time.Time) (*models.MonthSummary, error) {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	query := `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE kind = 'revenue'), 0),
			COALESCE(SUM(amount) FILTER (WHERE kind = 'expense'), 0)
		FROM transactions
		WHERE user_id = $1 AND date >= $2 AND date < $3`
	summary := &models.MonthSummary{}
	err := r.db.QueryRowContext(ctx, query, userID, monthStart, monthStart.AddDate(0, 1, 0)).
		Scan(&summary.Revenue, &summary.Expense)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize current month: %w", err)
	}
	summary.Balance = summary.Revenue - summary.Expense
	return summary, nil
}

// ListActiveUserIDs returns ids of users with at least one transaction
// recorded since the given time
func (r *Repository) ListActiveUserIDs(ctx context.Context, since time.Time) ([]string, error) {
	query := `
		SELECT DISTINCT user_id
		FROM transactions
		WHERE created_at >= $1
		ORDER BY user_id`
	rows, err := r.db.QueryContext(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list active users: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read active users: %w", err)
	}
	return ids, nil
}
