package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"nutriplan/internal/meal"
)

// ImportedMeal is a candidate persisted from an external recipe source.
type ImportedMeal struct {
	ID        int64
	Slot      meal.Slot
	Bucket    Bucket
	Candidate meal.Candidate
	SourceURL string
	CreatedAt time.Time
}

// Repository stores imported meals and supplies them as extra candidates.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Save inserts an imported meal and returns its id.
func (r *Repository) Save(ctx context.Context, m ImportedMeal) (int64, error) {
	if !m.Slot.Valid() {
		return 0, fmt.Errorf("invalid slot %q", m.Slot)
	}
	ingredients, err := json.Marshal(m.Candidate.Ingredients)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal ingredients: %w", err)
	}
	instructions, err := json.Marshal(m.Candidate.Instructions)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal instructions: %w", err)
	}

	createdAt := m.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO imported_meals (slot, bucket, name, cost, ingredients, instructions, source_url, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		string(m.Slot), string(m.Bucket), m.Candidate.Name, m.Candidate.Cost,
		string(ingredients), string(instructions), m.SourceURL, createdAt)
	if err != nil {
		return 0, fmt.Errorf("failed to insert imported meal: %w", err)
	}
	return res.LastInsertId()
}

// List returns every imported meal ordered by id.
func (r *Repository) List(ctx context.Context) ([]ImportedMeal, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, slot, bucket, name, cost, ingredients, instructions, source_url, created_at
		FROM imported_meals ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list imported meals: %w", err)
	}
	defer rows.Close()
	return scanImported(rows)
}

// Extras implements Supplier.
func (r *Repository) Extras(ctx context.Context, slot meal.Slot, bucket Bucket) ([]meal.Candidate, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, slot, bucket, name, cost, ingredients, instructions, source_url, created_at
		FROM imported_meals WHERE slot = ? AND bucket = ? ORDER BY id`,
		string(slot), string(bucket))
	if err != nil {
		return nil, fmt.Errorf("failed to query imported meals: %w", err)
	}
	defer rows.Close()

	imported, err := scanImported(rows)
	if err != nil {
		return nil, err
	}
	candidates := make([]meal.Candidate, 0, len(imported))
	for _, m := range imported {
		candidates = append(candidates, m.Candidate)
	}
	return candidates, nil
}

// Delete removes an imported meal. It reports whether a row was removed.
func (r *Repository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM imported_meals WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete imported meal %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func scanImported(rows *sql.Rows) ([]ImportedMeal, error) {
	var out []ImportedMeal
	for rows.Next() {
		var (
			m                         ImportedMeal
			slot, bucket              string
			ingredients, instructions string
		)
		if err := rows.Scan(&m.ID, &slot, &bucket, &m.Candidate.Name, &m.Candidate.Cost,
			&ingredients, &instructions, &m.SourceURL, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan imported meal: %w", err)
		}
		m.Slot = meal.Slot(slot)
		m.Bucket = Bucket(bucket)
		if err := json.Unmarshal([]byte(ingredients), &m.Candidate.Ingredients); err != nil {
			return nil, fmt.Errorf("failed to unmarshal ingredients for %q: %w", m.Candidate.Name, err)
		}
		if err := json.Unmarshal([]byte(instructions), &m.Candidate.Instructions); err != nil {
			return nil, fmt.Errorf("failed to unmarshal instructions for %q: %w", m.Candidate.Name, err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
