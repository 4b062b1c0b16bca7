package service

import (
	"context"
	"strings"

	"github.com/Freeeeeet/tutor_booking/internal/model"
	"github.com/Freeeeeet/tutor_booking/internal/schedule"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// QuestionInput данные вопроса теста
type QuestionInput struct {
	Category      string   `json:"category" validate:"required"`
	Question      string   `json:"question" validate:"required"`
	Options       []string `json:"options" validate:"required,min=2,dive,required"`
	CorrectAnswer string   `json:"correctAnswer" validate:"required"`
	IsActive      *bool    `json:"isActive"`
}

// QuestionPatch частичное обновление вопроса
type QuestionPatch struct {
	Category      *string  `json:"category"`
	Question      *string  `json:"question" validate:"omitempty,min=1"`
	Options       []string `json:"options" validate:"omitempty,min=2,dive,required"`
	CorrectAnswer *string  `json:"correctAnswer" validate:"omitempty,min=1"`
	IsActive      *bool    `json:"isActive"`
}

type QuestionService struct {
	repo   QuestionRepository
	logger *zap.Logger
}

func NewQuestionService(repo QuestionRepository, logger *zap.Logger) *QuestionService {
	return &QuestionService{repo: repo, logger: logger}
}

func parseCategory(raw string) (model.QuestionCategory, error) {
	c, ok := model.ParseQuestionCategory(raw)
	if !ok {
		return "", &schedule.Error{
			Kind:    schedule.KindInvalidEnum,
			Field:   "category",
			Message: "Invalid category. Must be VOCABULARY, GRAMMAR, or SPEAKING",
		}
	}
	return c, nil
}

func checkAnswer(q *model.Question) error {
	for _, o := range q.Options {
		if o == q.CorrectAnswer {
			return nil
		}
	}
	return schedule.InvalidInput("correctAnswer must be one of the options")
}

// Public возвращает активные вопросы для теста
func (s *QuestionService) Public(ctx context.Context, category string, limit int) ([]*model.Question, error) {
	f := model.QuestionFilter{OnlyActive: true, Limit: limit}
	if strings.TrimSpace(category) != "" {
		c, err := parseCategory(category)
		if err != nil {
			return nil, err
		}
		f.Category = c
	}

	questions, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, storeFailure("list questions", err)
	}
	return questions, nil
}

// List возвращает все вопросы для администратора
func (s *QuestionService) List(ctx context.Context) ([]*model.Question, error) {
	questions, err := s.repo.List(ctx, model.QuestionFilter{})
	if err != nil {
		return nil, storeFailure("list questions", err)
	}
	return questions, nil
}

// Create создаёт вопрос
func (s *QuestionService) Create(ctx context.Context, in QuestionInput) (*model.Question, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	category, err := parseCategory(in.Category)
	if err != nil {
		return nil, err
	}

	q := &model.Question{
		Category:      category,
		Question:      strings.TrimSpace(in.Question),
		Options:       in.Options,
		CorrectAnswer: in.CorrectAnswer,
		IsActive:      in.IsActive == nil || *in.IsActive,
	}
	if err := checkAnswer(q); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, q); err != nil {
		return nil, storeFailure("create question", err)
	}

	s.logger.Info("Question created",
		zap.String("question_id", q.ID.String()),
		zap.String("category", string(q.Category)))
	return q, nil
}

// Update применяет patch к вопросу
func (s *QuestionService) Update(ctx context.Context, id uuid.UUID, patch QuestionPatch) (*model.Question, error) {
	if err := validateStruct(patch); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeFailure("get question", err)
	}
	if existing == nil {
		return nil, schedule.NotFound("Question")
	}

	if patch.Category != nil {
		c, err := parseCategory(*patch.Category)
		if err != nil {
			return nil, err
		}
		existing.Category = c
	}
	if patch.Question != nil {
		existing.Question = strings.TrimSpace(*patch.Question)
	}
	if patch.Options != nil {
		existing.Options = patch.Options
	}
	if patch.CorrectAnswer != nil {
		existing.CorrectAnswer = *patch.CorrectAnswer
	}
	if patch.IsActive != nil {
		existing.IsActive = *patch.IsActive
	}
	if err := checkAnswer(existing); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, writeFailure("update question", "Question", err)
	}
	return existing, nil
}

// Delete удаляет вопрос
func (s *QuestionService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return writeFailure("delete question", "Question", err)
	}
	s.logger.Info("Question deleted", zap.String("question_id", id.String()))
	return nil
}
