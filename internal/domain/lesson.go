package domain

import (
	"errors"
	"fmt"
)

// LessonCategory classifies a lesson by topic.
type LessonCategory string

// Known lesson categories.
const (
	LessonCategoryBudgeting  LessonCategory = "budgeting"
	LessonCategoryInvesting  LessonCategory = "investing"
	LessonCategoryDebt       LessonCategory = "debt"
	LessonCategorySaving     LessonCategory = "saving"
	LessonCategoryRetirement LessonCategory = "retirement"
)

// Common validation errors for lesson catalog entries.
var (
	ErrEmptyLessonID    = errors.New("lesson ID cannot be empty")
	ErrEmptyLessonTitle = errors.New("lesson title cannot be empty")
	ErrNoLessonSections = errors.New("lesson must have at least one content section")
)

// LessonSection is one block of lesson content.
type LessonSection struct {
	Type    string `json:"type"` // "text", "image" or "interactive"
	Content string `json:"content"`
}

// QuizQuestion is a single multiple-choice question attached to a lesson.
type QuizQuestion struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"` // index into Options
	Explanation   string   `json:"explanation,omitempty"`
}

// Lesson is an immutable catalog entry of educational content.
type Lesson struct {
	ID               string          `json:"id"`
	Title            string          `json:"title"`
	Category         LessonCategory  `json:"category"`
	Sections         []LessonSection `json:"sections"`
	Difficulty       int             `json:"difficultyLevel"`
	EstimatedMinutes int             `json:"estimatedMinutes"`
	QuizQuestions    []QuizQuestion  `json:"quizQuestions,omitempty"`
}

// Validate checks the structural invariants of a lesson catalog entry.
func (l *Lesson) Validate() error {
	if l.ID == "" {
		return ErrEmptyLessonID
	}
	if l.Title == "" {
		return fmt.Errorf("%w: lesson %s", ErrEmptyLessonTitle, l.ID)
	}
	if l.Difficulty < MinDifficulty || l.Difficulty > MaxDifficulty {
		return fmt.Errorf("%w: lesson %s has difficulty %d", ErrInvalidDifficulty, l.ID, l.Difficulty)
	}
	if len(l.Sections) == 0 {
		return fmt.Errorf("%w: lesson %s", ErrNoLessonSections, l.ID)
	}
	return nil
}
