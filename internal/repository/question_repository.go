package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/Freeeeeet/tutor_booking/internal/model"
	"github.com/Freeeeeet/tutor_booking/internal/repository/base"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type QuestionRepository struct {
	*base.Repository
	logger *zap.Logger
}

func NewQuestionRepository(pool *pgxpool.Pool, logger *zap.Logger) *QuestionRepository {
	return &QuestionRepository{
		Repository: base.NewRepository(pool),
		logger:     logger,
	}
}

const questionColumns = `id, category, question, options, correct_answer, is_active, created_at, updated_at`

func scanQuestion(row pgx.Row) (*model.Question, error) {
	var q model.Question
	err := row.Scan(
		&q.ID,
		&q.Category,
		&q.Question,
		&q.Options,
		&q.CorrectAnswer,
		&q.IsActive,
		&q.CreatedAt,
		&q.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// Create создаёт вопрос
func (r *QuestionRepository) Create(ctx context.Context, q *model.Question) error {
	query := `
		INSERT INTO questions (category, question, options, correct_answer, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.QueryRow(ctx, query, q.Category, q.Question, q.Options, q.CorrectAnswer, q.IsActive).
		Scan(&q.ID, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to insert question",
			zap.String("category", string(q.Category)),
			zap.Error(err))
		return fmt.Errorf("create question: %w", err)
	}
	return nil
}

// GetByID получает вопрос по ID
func (r *QuestionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Question, error) {
	q, err := scanQuestion(r.QueryRow(ctx, `SELECT `+questionColumns+` FROM questions WHERE id = $1`, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get question by id: %w", err)
	}
	return q, nil
}

// List возвращает вопросы от новых к старым с учётом фильтра
func (r *QuestionRepository) List(ctx context.Context, f model.QuestionFilter) ([]*model.Question, error) {
	var (
		where []string
		args  []any
	)
	if f.OnlyActive {
		where = append(where, "is_active")
	}
	if f.Category != "" {
		args = append(args, f.Category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}

	query := `SELECT ` + questionColumns + ` FROM questions`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at DESC`
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	var questions []*model.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	return questions, nil
}

// Update перезаписывает вопрос
func (r *QuestionRepository) Update(ctx context.Context, q *model.Question) error {
	query := `
		UPDATE questions
		SET category = $2, question = $3, options = $4, correct_answer = $5, is_active = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at
	`

	err := r.QueryRow(ctx, query, q.ID, q.Category, q.Question, q.Options, q.CorrectAnswer, q.IsActive).
		Scan(&q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		if base.IsNotFound(err) {
			return base.ErrNotFound
		}
		return fmt.Errorf("update question: %w", err)
	}
	return nil
}

// Delete удаляет вопрос
func (r *QuestionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.ExecOne(ctx, `DELETE FROM questions WHERE id = $1`, id); err != nil {
		if base.IsNotFound(err) {
			return err
		}
		return fmt.Errorf("delete question: %w", err)
	}
	return nil
}
