// Package catalog provides the immutable lookup of scenario and lesson
// definitions. Content is embedded in the binary, parsed once at startup,
// and indexed by ID; nothing in it mutates at runtime.
package catalog

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/empowermint/empowermint-api/internal/domain"
)

//go:embed data/scenarios.json data/lessons.json
var contentFS embed.FS

// Common catalog errors.
var (
	// ErrScenarioNotFound indicates that no scenario with the given ID exists.
	ErrScenarioNotFound = errors.New("scenario not found")

	// ErrLessonNotFound indicates that no lesson with the given ID exists.
	ErrLessonNotFound = errors.New("lesson not found")

	// ErrDuplicateEntry indicates two catalog entries share an ID.
	ErrDuplicateEntry = errors.New("duplicate catalog entry")
)

// Store is the process-wide, read-only catalog of scenarios and lessons.
type Store struct {
	scenarios    []domain.Scenario
	lessons      []domain.Lesson
	scenarioByID map[string]*domain.Scenario
	lessonByID   map[string]*domain.Lesson
}

// Load parses the embedded content files and builds the indexed store.
// A content file that fails to parse or validate is an authoring bug and
// must abort startup.
func Load() (*Store, error) {
	scenarioData, err := contentFS.ReadFile("data/scenarios.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded scenarios: %w", err)
	}

	var scenarios []domain.Scenario
	if err := json.Unmarshal(scenarioData, &scenarios); err != nil {
		return nil, fmt.Errorf("failed to parse scenarios: %w", err)
	}

	lessonData, err := contentFS.ReadFile("data/lessons.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded lessons: %w", err)
	}

	var lessons []domain.Lesson
	if err := json.Unmarshal(lessonData, &lessons); err != nil {
		return nil, fmt.Errorf("failed to parse lessons: %w", err)
	}

	return New(scenarios, lessons)
}

// New builds a store from already-parsed content, validating every entry.
// It exists separately from Load so tests can construct small catalogs.
func New(scenarios []domain.Scenario, lessons []domain.Lesson) (*Store, error) {
	s := &Store{
		scenarios:    scenarios,
		lessons:      lessons,
		scenarioByID: make(map[string]*domain.Scenario, len(scenarios)),
		lessonByID:   make(map[string]*domain.Lesson, len(lessons)),
	}

	for i := range s.scenarios {
		scenario := &s.scenarios[i]
		if err := scenario.Validate(); err != nil {
			return nil, fmt.Errorf("invalid scenario: %w", err)
		}
		if _, exists := s.scenarioByID[scenario.ID]; exists {
			return nil, fmt.Errorf("%w: scenario %s", ErrDuplicateEntry, scenario.ID)
		}
		s.scenarioByID[scenario.ID] = scenario
	}

	for i := range s.lessons {
		lesson := &s.lessons[i]
		if err := lesson.Validate(); err != nil {
			return nil, fmt.Errorf("invalid lesson: %w", err)
		}
		if _, exists := s.lessonByID[lesson.ID]; exists {
			return nil, fmt.Errorf("%w: lesson %s", ErrDuplicateEntry, lesson.ID)
		}
		s.lessonByID[lesson.ID] = lesson
	}

	return s, nil
}

// ScenarioFilter narrows the scenario listing. Zero values match everything.
type ScenarioFilter struct {
	Category   domain.ScenarioCategory
	Difficulty int
}

// LessonFilter narrows the lesson listing. Zero values match everything.
type LessonFilter struct {
	Category   domain.LessonCategory
	Difficulty int
}

// Scenarios returns the scenarios matching the filter, in catalog order.
// The returned slice is a copy; callers may not mutate catalog entries.
func (s *Store) Scenarios(filter ScenarioFilter) []domain.Scenario {
	result := make([]domain.Scenario, 0, len(s.scenarios))
	for _, scenario := range s.scenarios {
		if filter.Category != "" && scenario.Category != filter.Category {
			continue
		}
		if filter.Difficulty != 0 && scenario.Difficulty != filter.Difficulty {
			continue
		}
		result = append(result, scenario)
	}
	return result
}

// ScenarioByID retrieves a scenario by ID.
// Returns ErrScenarioNotFound if no such scenario exists.
func (s *Store) ScenarioByID(id string) (*domain.Scenario, error) {
	scenario, ok := s.scenarioByID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrScenarioNotFound, id)
	}
	return scenario, nil
}

// Lessons returns the lessons matching the filter, in catalog order.
func (s *Store) Lessons(filter LessonFilter) []domain.Lesson {
	result := make([]domain.Lesson, 0, len(s.lessons))
	for _, lesson := range s.lessons {
		if filter.Category != "" && lesson.Category != filter.Category {
			continue
		}
		if filter.Difficulty != 0 && lesson.Difficulty != filter.Difficulty {
			continue
		}
		result = append(result, lesson)
	}
	return result
}

// LessonByID retrieves a lesson by ID.
// Returns ErrLessonNotFound if no such lesson exists.
func (s *Store) LessonByID(id string) (*domain.Lesson, error) {
	lesson, ok := s.lessonByID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLessonNotFound, id)
	}
	return lesson, nil
}

// Recommendations maps an experience level to starter content. Beginners get
// the easy tier, intermediates the middle tier, and advanced users the full
// catalog.
func (s *Store) Recommendations(level domain.ExperienceLevel) (lessonIDs, scenarioIDs []string) {
	var maxDifficulty, minDifficulty int
	switch level {
	case domain.ExperienceBeginner:
		minDifficulty, maxDifficulty = domain.MinDifficulty, 1
	case domain.ExperienceIntermediate:
		minDifficulty, maxDifficulty = 2, 2
	default:
		minDifficulty, maxDifficulty = domain.MinDifficulty, domain.MaxDifficulty
	}

	for _, lesson := range s.lessons {
		if lesson.Difficulty >= minDifficulty && lesson.Difficulty <= maxDifficulty {
			lessonIDs = append(lessonIDs, lesson.ID)
		}
	}
	for _, scenario := range s.scenarios {
		if scenario.Difficulty >= minDifficulty && scenario.Difficulty <= maxDifficulty {
			scenarioIDs = append(scenarioIDs, scenario.ID)
		}
	}
	return lessonIDs, scenarioIDs
}
