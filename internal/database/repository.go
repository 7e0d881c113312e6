package database

import (
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/akeef891/Finance-Clarity/internal/models"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) EnsureDefaultUser() (int64, error) {
	_, err := r.db.Exec(`INSERT OR IGNORE INTO users (name) VALUES ('default')`)
	if err != nil {
		return 0, err
	}

	var id int64
	if err := r.db.QueryRow(`SELECT id FROM users WHERE name = 'default'`).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *Repository) GetUser(id int64) (int64, string, error) {
	var name string
	if err := r.db.QueryRow(`SELECT name FROM users WHERE id = ?`, id).Scan(&name); err != nil {
		return 0, "", err
	}
	return id, name, nil
}

// ListUserIDs returns every known user, for the background alert scan.
func (r *Repository) ListUserIDs() ([]int64, error) {
	rows, err := r.db.Query(`SELECT id FROM users ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// --- financial data provider ---

func (r *Repository) CreateRecord(rec *models.FinanceRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.RecordedAt == "" {
		rec.RecordedAt = time.Now().Format("2006-01-02")
	}
	_, err := r.db.Exec(`
		INSERT INTO records (id, user_id, type, category, amount, fixed, description, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.UserID, rec.Type, rec.Category, rec.Amount,
		boolToInt(rec.Fixed), rec.Description, rec.RecordedAt,
	)
	return err
}

func (r *Repository) ListRecords(userID int64, limit int) ([]models.FinanceRecord, error) {
	rows, err := r.db.Query(`
		SELECT id, user_id, type, category, amount, fixed, description, recorded_at, created_at
		FROM records WHERE user_id = ?
		ORDER BY recorded_at DESC, created_at DESC
		LIMIT ?`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.FinanceRecord
	for rows.Next() {
		var rec models.FinanceRecord
		var fixed int
		var category, description sql.NullString
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Type, &category, &rec.Amount,
			&fixed, &description, &rec.RecordedAt, &rec.CreatedAt); err != nil {
			return nil, err
		}
		rec.Category = category.String
		rec.Description = description.String
		rec.Fixed = fixed != 0
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *Repository) TotalIncome(userID int64) (float64, error) {
	return r.sumAmount(userID, `type = 'income'`)
}

func (r *Repository) TotalExpenses(userID int64) (float64, error) {
	return r.sumAmount(userID, `type = 'expense'`)
}

func (r *Repository) FixedExpenses(userID int64) (float64, error) {
	return r.sumAmount(userID, `type = 'expense' AND fixed = 1`)
}

func (r *Repository) sumAmount(userID int64, where string) (float64, error) {
	var total float64
	query := `SELECT COALESCE(SUM(amount), 0) FROM records WHERE user_id = ? AND ` + where
	if err := r.db.QueryRow(query, userID).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// FlexibleSpending returns flexible expense totals keyed by category.
func (r *Repository) FlexibleSpending(userID int64) (map[string]float64, error) {
	rows, err := r.db.Query(`
		SELECT COALESCE(category, 'other'), COALESCE(SUM(amount), 0)
		FROM records
		WHERE user_id = ? AND type = 'expense' AND fixed = 0
		GROUP BY category`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	spending := map[string]float64{}
	for rows.Next() {
		var category string
		var amount float64
		if err := rows.Scan(&category, &amount); err != nil {
			return nil, err
		}
		spending[category] = amount
	}
	return spending, rows.Err()
}

// CategoryTotals returns all expense totals keyed by category along with a
// flag marking categories that contain fixed entries.
func (r *Repository) CategoryTotals(userID int64) ([]models.CategoryExpense, error) {
	rows, err := r.db.Query(`
		SELECT COALESCE(category, 'other'), COALESCE(SUM(amount), 0), MAX(fixed)
		FROM records
		WHERE user_id = ? AND type = 'expense'
		GROUP BY category
		ORDER BY SUM(amount) DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var totals []models.CategoryExpense
	for rows.Next() {
		var cat models.CategoryExpense
		var fixed int
		if err := rows.Scan(&cat.Name, &cat.Amount, &fixed); err != nil {
			return nil, err
		}
		cat.Fixed = fixed != 0
		totals = append(totals, cat)
	}
	return totals, rows.Err()
}

// MonthlyHistory returns per-month income/expense totals, oldest first.
func (r *Repository) MonthlyHistory(userID int64, months int) ([]models.MonthlyTotals, error) {
	rows, err := r.db.Query(`
		SELECT substr(recorded_at, 1, 7) AS month,
		       COALESCE(SUM(CASE WHEN type = 'income' THEN amount ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN type = 'expense' THEN amount ELSE 0 END), 0)
		FROM records
		WHERE user_id = ?
		GROUP BY month
		ORDER BY month DESC
		LIMIT ?`, userID, months)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []models.MonthlyTotals
	for rows.Next() {
		var m models.MonthlyTotals
		if err := rows.Scan(&m.Month, &m.Income, &m.Expense); err != nil {
			return nil, err
		}
		history = append(history, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Reverse into chronological order.
	for i, j := 0, len(history)-1; i < j; i, j = i+1, j-1 {
		history[i], history[j] = history[j], history[i]
	}
	return history, nil
}

// --- goal storage ---

func (r *Repository) CreateGoal(goal *models.Goal) error {
	_, err := r.db.Exec(`
		INSERT INTO goals (id, user_id, name, target_amount, duration_months,
			monthly_requirement, amount_saved, completion_pct, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		goal.ID, goal.UserID, goal.Name, goal.TargetAmount, goal.DurationMonths,
		goal.MonthlyRequirement, goal.AmountSaved, goal.CompletionPct, goal.Status,
		goal.CreatedAt.Format(time.RFC3339),
	)
	return err
}

func (r *Repository) ListGoals(userID int64) ([]models.Goal, error) {
	rows, err := r.db.Query(`
		SELECT id, user_id, name, target_amount, duration_months, monthly_requirement,
		       amount_saved, completion_pct, status, created_at
		FROM goals WHERE user_id = ?
		ORDER BY created_at ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []models.Goal
	for rows.Next() {
		var g models.Goal
		var createdAt string
		if err := rows.Scan(&g.ID, &g.UserID, &g.Name, &g.TargetAmount, &g.DurationMonths,
			&g.MonthlyRequirement, &g.AmountSaved, &g.CompletionPct, &g.Status, &createdAt); err != nil {
			return nil, err
		}
		g.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

// FindActiveGoalByName matches non-terminal goals case-insensitively.
func (r *Repository) FindActiveGoalByName(userID int64, name string) (*models.Goal, error) {
	goals, err := r.ListGoals(userID)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(strings.TrimSpace(name))
	for i := range goals {
		if goals[i].Terminal() {
			continue
		}
		if strings.ToLower(strings.TrimSpace(goals[i].Name)) == needle {
			return &goals[i], nil
		}
	}
	return nil, nil
}

func (r *Repository) SaveGoalProgress(goal *models.Goal) error {
	_, err := r.db.Exec(`
		UPDATE goals SET amount_saved = ?, completion_pct = ?, status = ?
		WHERE id = ?`,
		goal.AmountSaved, goal.CompletionPct, goal.Status, goal.ID,
	)
	return err
}

// --- profile storage ---

func (r *Repository) GetProfile(userID int64) (*models.MemoryProfile, error) {
	var data string
	err := r.db.QueryRow(`SELECT data FROM profiles WHERE user_id = ?`, userID).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var profile models.MemoryProfile
	if err := json.Unmarshal([]byte(data), &profile); err != nil {
		return nil, err
	}
	profile.UserID = userID
	return &profile, nil
}

func (r *Repository) SaveProfile(profile *models.MemoryProfile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(`
		INSERT INTO profiles (user_id, data, updated_at) VALUES (?, ?, datetime('now'))
		ON CONFLICT(user_id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		profile.UserID, string(data),
	)
	return err
}

// --- interaction history ---

// AppendInteraction stores one turn and trims the stored window to keep rows.
func (r *Repository) AppendInteraction(userID int64, in models.Interaction, keep int) error {
	_, err := r.db.Exec(`
		INSERT INTO interactions (user_id, question, response, created_at)
		VALUES (?, ?, ?, ?)`,
		userID, in.Question, in.Response, in.Timestamp.Format(time.RFC3339),
	)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(`
		DELETE FROM interactions
		WHERE user_id = ? AND id NOT IN (
			SELECT id FROM interactions WHERE user_id = ? ORDER BY id DESC LIMIT ?
		)`, userID, userID, keep)
	return err
}

func (r *Repository) ListInteractions(userID int64, limit int) ([]models.Interaction, error) {
	rows, err := r.db.Query(`
		SELECT question, response, created_at
		FROM interactions WHERE user_id = ?
		ORDER BY id DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.Interaction
	for rows.Next() {
		var in models.Interaction
		var createdAt string
		if err := rows.Scan(&in.Question, &in.Response, &createdAt); err != nil {
			return nil, err
		}
		in.Timestamp, _ = time.Parse(time.RFC3339, createdAt)
		items = append(items, in)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Oldest first.
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
	return items, nil
}

func (r *Repository) ClearInteractions(userID int64) error {
	_, err := r.db.Exec(`DELETE FROM interactions WHERE user_id = ?`, userID)
	return err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
