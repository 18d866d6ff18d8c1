package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/stevillis/megasena/internal/domain/model"
	"github.com/stevillis/megasena/internal/domain/types"
)

// uniqueViolation is the PostgreSQL error code for unique constraint hits.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// EnsureSchema creates the draw and guess tables when they do not exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS official_draws (
			contest integer PRIMARY KEY,
			draw_date date NOT NULL,
			numbers text NOT NULL,
			year_end_special boolean NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("create official_draws: %w", err)
	}

	_, err = db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS generated_guesses (
			id uuid PRIMARY KEY,
			numbers text NOT NULL,
			fixed_numbers text NOT NULL,
			committed boolean NOT NULL,
			created_at timestamptz NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("create generated_guesses: %w", err)
	}
	return nil
}

// PGDrawStore implements DrawStore using PostgreSQL. Number sets are
// persisted as their canonical key text.
type PGDrawStore struct {
	db *sql.DB
}

// NewPGDrawStore creates a PostgreSQL-backed draw store.
func NewPGDrawStore(db *sql.DB) *PGDrawStore {
	return &PGDrawStore{db: db}
}

// Put implements DrawStore.Put.
func (s *PGDrawStore) Put(ctx context.Context, draw model.Draw) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO official_draws (contest, draw_date, numbers, year_end_special)
		VALUES ($1, $2, $3, $4)
	`, draw.Contest, draw.Date, draw.Numbers.Key(), draw.YearEndSpecial)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateContest
		}
		return err
	}
	return nil
}

// Replace implements DrawStore.Replace.
func (s *PGDrawStore) Replace(ctx context.Context, draw model.Draw) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO official_draws (contest, draw_date, numbers, year_end_special)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (contest) DO UPDATE
		SET draw_date = EXCLUDED.draw_date,
		    numbers = EXCLUDED.numbers,
		    year_end_special = EXCLUDED.year_end_special
	`, draw.Contest, draw.Date, draw.Numbers.Key(), draw.YearEndSpecial)
	return err
}

// Get implements DrawStore.Get.
func (s *PGDrawStore) Get(ctx context.Context, contest int) (model.Draw, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT contest, draw_date, numbers, year_end_special
		FROM official_draws
		WHERE contest = $1
	`, contest)

	var (
		draw model.Draw
		key  string
	)
	if err := row.Scan(&draw.Contest, &draw.Date, &key, &draw.YearEndSpecial); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Draw{}, ErrNotFound
		}
		return model.Draw{}, err
	}
	numbers, err := types.ParseNumberSet(key)
	if err != nil {
		return model.Draw{}, fmt.Errorf("decode draw %d numbers: %w", draw.Contest, err)
	}
	draw.Numbers = numbers
	draw.Date = draw.Date.UTC()
	return draw, nil
}

// List implements DrawStore.List.
func (s *PGDrawStore) List(ctx context.Context, filter Filter) ([]model.Draw, error) {
	query := `
		SELECT contest, draw_date, numbers, year_end_special
		FROM official_draws
		WHERE ($1 = 0 OR contest >= $1)
		  AND ($2 = 0 OR contest <= $2)
		  AND (NOT $3 OR year_end_special)
		ORDER BY contest`
	if filter.Order == OrderDesc {
		query += " DESC"
	}
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, filter.FromContest, filter.ToContest, filter.YearEndOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Draw
	for rows.Next() {
		var (
			draw model.Draw
			key  string
		)
		if err := rows.Scan(&draw.Contest, &draw.Date, &key, &draw.YearEndSpecial); err != nil {
			return nil, err
		}
		numbers, err := types.ParseNumberSet(key)
		if err != nil {
			return nil, fmt.Errorf("decode draw %d numbers: %w", draw.Contest, err)
		}
		draw.Numbers = numbers
		draw.Date = draw.Date.UTC()
		result = append(result, draw)
	}
	return result, rows.Err()
}

// MaxContest implements DrawStore.MaxContest.
func (s *PGDrawStore) MaxContest(ctx context.Context) (int, error) {
	row := s.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(contest), 0) FROM official_draws`)

	var max int
	if err := row.Scan(&max); err != nil {
		return 0, err
	}
	return max, nil
}

// Count implements DrawStore.Count.
func (s *PGDrawStore) Count(ctx context.Context) (int, error) {
	row := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM official_draws`)

	var count int
	if err := row.Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// Close implements DrawStore.Close. The caller owns the database handle, so
// there is nothing to release here.
func (s *PGDrawStore) Close() error {
	return nil
}

// PGGuessStore implements GuessStore using PostgreSQL.
type PGGuessStore struct {
	db *sql.DB
}

// NewPGGuessStore creates a PostgreSQL-backed guess store.
func NewPGGuessStore(db *sql.DB) *PGGuessStore {
	return &PGGuessStore{db: db}
}

// Add implements GuessStore.Add.
func (s *PGGuessStore) Add(ctx context.Context, guess model.Guess) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO generated_guesses (id, numbers, fixed_numbers, committed, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, guess.ID, guess.Numbers.Key(), guess.Fixed.Key(), guess.Committed, guess.CreatedAt)
	return err
}

// Get implements GuessStore.Get.
func (s *PGGuessStore) Get(ctx context.Context, id uuid.UUID) (model.Guess, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, numbers, fixed_numbers, committed, created_at
		FROM generated_guesses
		WHERE id = $1
	`, id)

	guess, err := scanGuess(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Guess{}, ErrNotFound
		}
		return model.Guess{}, err
	}
	return guess, nil
}

// List implements GuessStore.List.
func (s *PGGuessStore) List(ctx context.Context, filter GuessFilter) ([]model.Guess, error) {
	committedOnly := filter.Committed != nil
	committedValue := committedOnly && *filter.Committed

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, numbers, fixed_numbers, committed, created_at
		FROM generated_guesses
		WHERE (NOT $1 OR committed = $2)
		ORDER BY created_at
	`, committedOnly, committedValue)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Guess
	for rows.Next() {
		guess, err := scanGuess(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, guess)
	}
	return result, rows.Err()
}

// SetCommitted implements GuessStore.SetCommitted.
func (s *PGGuessStore) SetCommitted(ctx context.Context, id uuid.UUID, committed bool) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE generated_guesses
		SET committed = $2
		WHERE id = $1
	`, id, committed)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}

// Count implements GuessStore.Count.
func (s *PGGuessStore) Count(ctx context.Context) (int, error) {
	row := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM generated_guesses`)

	var count int
	if err := row.Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// Close implements GuessStore.Close. The caller owns the database handle, so
// there is nothing to release here.
func (s *PGGuessStore) Close() error {
	return nil
}

// scanGuess decodes one guess row from either a Row or Rows scan function.
func scanGuess(scan func(...any) error) (model.Guess, error) {
	var (
		guess    model.Guess
		key      string
		fixedKey string
	)
	if err := scan(&guess.ID, &key, &fixedKey, &guess.Committed, &guess.CreatedAt); err != nil {
		return model.Guess{}, err
	}
	numbers, err := types.ParseNumberSet(key)
	if err != nil {
		return model.Guess{}, fmt.Errorf("decode guess %s numbers: %w", guess.ID, err)
	}
	fixed, err := types.ParseFixedSubset(fixedKey)
	if err != nil {
		return model.Guess{}, fmt.Errorf("decode guess %s fixed numbers: %w", guess.ID, err)
	}
	guess.Numbers = numbers
	guess.Fixed = fixed
	guess.CreatedAt = guess.CreatedAt.UTC()
	return guess, nil
}
