package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Progress accounting constants.
const (
	// XPPerLevel is the amount of XP that makes up one level.
	XPPerLevel = 100

	// DefaultLevel is the level a freshly created progress record starts at,
	// before any mutation has recomputed it from XP.
	DefaultLevel = 1

	// DefaultHealthScore is the financial health score a freshly created
	// progress record starts at.
	DefaultHealthScore = 50
)

// Common validation errors for Progress.
var (
	ErrEmptyProgressUserID = errors.New("progress user ID cannot be empty")
	ErrNegativeXP          = errors.New("xp cannot be negative")
)

// Progress is the durable per-user record of XP, level, completed-content
// sets, and financial-health score. One record exists per user ID, created
// lazily on the first mutating call (or at onboarding) and mutated
// exclusively through the progress accounting service.
type Progress struct {
	UserID               uuid.UUID `json:"userId"`
	XP                   int       `json:"xp"`
	Level                int       `json:"level"`
	CompletedLessonIDs   []string  `json:"completedLessonIds"`
	CompletedScenarioIDs []string  `json:"completedScenarioIds"`
	FinancialHealthScore int       `json:"financialHealthScore"`
	LastActivity         time.Time `json:"lastActivity"`
}

// NewProgress creates a default progress record for a user: zero XP at level
// one with a neutral health score.
func NewProgress(userID uuid.UUID, now time.Time) (*Progress, error) {
	if userID == uuid.Nil {
		return nil, ErrEmptyProgressUserID
	}
	return &Progress{
		UserID:               userID,
		XP:                   0,
		Level:                DefaultLevel,
		CompletedLessonIDs:   []string{},
		CompletedScenarioIDs: []string{},
		FinancialHealthScore: DefaultHealthScore,
		LastActivity:         now.UTC(),
	}, nil
}

// LevelForXP derives the level from an XP total. Level is never stored
// independently of this rule: every mutation recomputes it.
func LevelForXP(xp int) int {
	if xp < 0 {
		return 0
	}
	return xp / XPPerLevel
}

// Validate checks if the Progress record has valid data.
func (p *Progress) Validate() error {
	if p.UserID == uuid.Nil {
		return ErrEmptyProgressUserID
	}
	if p.XP < 0 {
		return ErrNegativeXP
	}
	if p.FinancialHealthScore < MinHealthScore || p.FinancialHealthScore > MaxHealthScore {
		return ErrInvalidHealthScore
	}
	return nil
}

// HasCompletedLesson reports whether the lesson ID is in the completed set.
func (p *Progress) HasCompletedLesson(lessonID string) bool {
	return containsID(p.CompletedLessonIDs, lessonID)
}

// HasCompletedScenario reports whether the scenario ID is in the completed set.
func (p *Progress) HasCompletedScenario(scenarioID string) bool {
	return containsID(p.CompletedScenarioIDs, scenarioID)
}

func containsID(ids []string, id string) bool {
	for _, existing := range ids {
		if existing == id {
			return true
		}
	}
	return false
}
