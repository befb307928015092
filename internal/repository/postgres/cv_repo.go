package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"go-cvbuilder-backend/internal/domain"
	"go-cvbuilder-backend/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const cvColumns = `id, user_id, title, cv_data, selected_template, is_default, created_at, updated_at`

type cvRepo struct {
	db *pgxpool.Pool
}

func NewCVRepository(db *pgxpool.Pool) domain.CVRepository {
	return &cvRepo{db: db}
}

func scanCV(row pgx.Row) (*domain.SavedCV, error) {
	var cv domain.SavedCV
	var rawData []byte
	var template string
	err := row.Scan(
		&cv.ID, &cv.UserID, &cv.Title, &rawData, &template, &cv.IsDefault, &cv.CreatedAt, &cv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(rawData, &cv.CVData); err != nil {
		return nil, apperror.Internal(err)
	}
	cv.SelectedTemplate = domain.TemplateName(template)
	return &cv, nil
}

func (r *cvRepo) GetAll(ctx context.Context, userID string) ([]domain.SavedCV, error) {
	query := `SELECT ` + cvColumns + ` FROM saved_cvs WHERE user_id = $1 ORDER BY updated_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cvs []domain.SavedCV
	for rows.Next() {
		cv, err := scanCV(rows)
		if err != nil {
			return nil, err
		}
		cvs = append(cvs, *cv)
	}
	return cvs, rows.Err()
}

// ownerClause scopes a query to the request principal when one is
// attached, so one user's id guesses never reach another user's rows.
func ownerClause(ctx context.Context, args []any) (string, []any) {
	if uid := domain.UserIDFromContext(ctx); uid != "" {
		args = append(args, uid)
		return ` AND user_id = $` + strconv.Itoa(len(args)), args
	}
	return "", args
}

func (r *cvRepo) GetByID(ctx context.Context, id string) (*domain.SavedCV, error) {
	query := `SELECT ` + cvColumns + ` FROM saved_cvs WHERE id = $1`
	clause, args := ownerClause(ctx, []any{id})
	cv, err := scanCV(r.db.QueryRow(ctx, query+clause, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil // absence is not an error
	}
	if err != nil {
		return nil, err
	}
	return cv, nil
}

func (r *cvRepo) Create(ctx context.Context, userID, title string, data domain.CVData, template domain.TemplateName) (*domain.SavedCV, error) {
	rawData, err := json.Marshal(data)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	now := time.Now().UTC()
	cv := &domain.SavedCV{
		ID:               uuid.NewString(),
		UserID:           userID,
		Title:            title,
		CVData:           data,
		SelectedTemplate: template,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	query := `INSERT INTO saved_cvs (id, user_id, title, cv_data, selected_template, is_default, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err = r.db.Exec(ctx, query,
		cv.ID, cv.UserID, cv.Title, rawData, string(cv.SelectedTemplate), cv.IsDefault, cv.CreatedAt, cv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return cv, nil
}

func (r *cvRepo) Update(ctx context.Context, id string, patch domain.CVPatch) (*domain.SavedCV, error) {
	// Build the SET clause from present patch fields only; the stored
	// cv_data is replaced wholesale, never merged.
	query := `UPDATE saved_cvs SET updated_at = $2`
	args := []any{id, time.Now().UTC()}

	if patch.Title != nil {
		args = append(args, *patch.Title)
		query += `, title = $` + strconv.Itoa(len(args))
	}
	if patch.CVData != nil {
		rawData, err := json.Marshal(*patch.CVData)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		args = append(args, rawData)
		query += `, cv_data = $` + strconv.Itoa(len(args))
	}
	if patch.SelectedTemplate != nil {
		args = append(args, string(*patch.SelectedTemplate))
		query += `, selected_template = $` + strconv.Itoa(len(args))
	}

	clause, args := ownerClause(ctx, args)
	query += ` WHERE id = $1` + clause + ` RETURNING ` + cvColumns
	cv, err := scanCV(r.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return cv, err
}

func (r *cvRepo) Delete(ctx context.Context, id string) error {
	clause, args := ownerClause(ctx, []any{id})
	_, err := r.db.Exec(ctx, `DELETE FROM saved_cvs WHERE id = $1`+clause, args...)
	return err
}

// SetDefault owns the single-default invariant: the previous default for
// the same owner is unset in the same transaction.
func (r *cvRepo) SetDefault(ctx context.Context, id string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	clause, args := ownerClause(ctx, []any{id})
	var userID string
	if err := tx.QueryRow(ctx, `SELECT user_id FROM saved_cvs WHERE id = $1`+clause, args...).Scan(&userID); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `UPDATE saved_cvs SET is_default = false WHERE user_id = $1 AND is_default`, userID); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `UPDATE saved_cvs SET is_default = true, updated_at = $2 WHERE id = $1`, id, time.Now().UTC()); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Duplicate owns the copied-title convention.
func (r *cvRepo) Duplicate(ctx context.Context, id string) (*domain.SavedCV, error) {
	src, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if src == nil {
		return nil, pgx.ErrNoRows
	}
	return r.Create(ctx, src.UserID, src.Title+" (Copy)", src.CVData, src.SelectedTemplate)
}
