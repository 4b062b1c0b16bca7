package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type QuestionCategory string

const (
	CategoryVocabulary QuestionCategory = "VOCABULARY"
	CategoryGrammar    QuestionCategory = "GRAMMAR"
	CategorySpeaking   QuestionCategory = "SPEAKING"
)

// ParseQuestionCategory нормализует категорию без учёта регистра
func ParseQuestionCategory(s string) (QuestionCategory, bool) {
	c := QuestionCategory(strings.ToUpper(strings.TrimSpace(s)))
	switch c {
	case CategoryVocabulary, CategoryGrammar, CategorySpeaking:
		return c, true
	}
	return "", false
}

// Question вопрос вступительного теста
type Question struct {
	ID            uuid.UUID        `json:"id"`
	Category      QuestionCategory `json:"category"`
	Question      string           `json:"question"`
	Options       []string         `json:"options"`
	CorrectAnswer string           `json:"correctAnswer"`
	IsActive      bool             `json:"isActive"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

// QuestionFilter параметры выборки вопросов
type QuestionFilter struct {
	OnlyActive bool
	Category   QuestionCategory // пусто = все категории
	Limit      int              // 0 = без ограничения
}
