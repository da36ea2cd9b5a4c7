package decision

import (
	"errors"
	"fmt"

	"github.com/empowermint/empowermint-api/internal/domain"
)

// Common errors
var (
	// ErrNilScenario is returned when no scenario is supplied.
	ErrNilScenario = errors.New("scenario cannot be nil")

	// ErrDecisionPointNotFound is returned when the decision point ID does
	// not resolve within the given scenario.
	ErrDecisionPointNotFound = errors.New("decision point not found")

	// ErrChoiceNotFound is returned when the choice ID does not resolve
	// within the decision point.
	ErrChoiceNotFound = errors.New("choice not found")

	// ErrMalformedState is returned when the supplied state is missing a
	// field or carries a non-numeric value. It is distinct from the
	// not-found errors so callers can map it to a client-input failure.
	ErrMalformedState = errors.New("malformed scenario state")
)

// Outcome is the result of applying a choice: the new simulated state plus
// the XP the decision earned. Persisting the award is the caller's
// responsibility; the engine itself has no side effects.
type Outcome struct {
	NewState domain.ScenarioState
	XPEarned int
}

// CompletionResult carries the awards for finishing a scenario.
type CompletionResult struct {
	XPEarned    int
	HealthScore int
}

// LessonResult carries the awards for completing a lesson quiz.
type LessonResult struct {
	XPEarned    int
	HealthScore int
}

// Service is the decision engine: pure, synchronous computation over values
// passed by the caller. It holds no state beyond its parameters and requires
// no locking.
type Service interface {
	// ApplyChoice resolves the decision point and choice within the scenario,
	// applies both impact deltas to the current state, clamps every bounded
	// field, and derives the XP award.
	//
	// Returns ErrDecisionPointNotFound or ErrChoiceNotFound when the IDs do
	// not resolve, and ErrMalformedState when the state carries non-numeric
	// values.
	ApplyChoice(
		scenario *domain.Scenario,
		decisionPointID string,
		choiceID string,
		currentState domain.ScenarioState,
	) (*Outcome, error)

	// CompleteScenario computes the fixed completion bonus and the
	// recomputed financial health score from the final state. The awards are
	// independent of the path taken through the scenario.
	CompleteScenario(finalState domain.ScenarioState) (*CompletionResult, error)

	// CompleteLesson converts a 0-100 quiz score into XP and health-score
	// awards. Returns domain.ErrInvalidScore (wrapping domain.ErrValidation)
	// for out-of-range scores; no awards are produced in that case.
	CompleteLesson(score float64) (*LessonResult, error)
}

// defaultService is the standard implementation of the Service interface.
type defaultService struct {
	params *Params
}

// NewDefaultService creates a decision engine with default parameters.
func NewDefaultService() Service {
	return &defaultService{params: NewDefaultParams()}
}

// NewServiceWithParams creates a decision engine with custom parameters.
func NewServiceWithParams(params *Params) Service {
	return &defaultService{params: params}
}

// ApplyChoice implements Service.ApplyChoice.
func (s *defaultService) ApplyChoice(
	scenario *domain.Scenario,
	decisionPointID string,
	choiceID string,
	currentState domain.ScenarioState,
) (*Outcome, error) {
	if scenario == nil {
		return nil, ErrNilScenario
	}

	decisionPoint := scenario.FindDecisionPoint(decisionPointID)
	if decisionPoint == nil {
		return nil, fmt.Errorf("%w: %s", ErrDecisionPointNotFound, decisionPointID)
	}

	choice := decisionPoint.FindChoice(choiceID)
	if choice == nil {
		return nil, fmt.Errorf("%w: %s", ErrChoiceNotFound, choiceID)
	}

	if err := currentState.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedState, err)
	}

	newState := applyChoice(currentState, choice)

	return &Outcome{
		NewState: newState,
		XPEarned: decisionXP(currentState, newState, s.params),
	}, nil
}

// CompleteScenario implements Service.CompleteScenario.
func (s *defaultService) CompleteScenario(finalState domain.ScenarioState) (*CompletionResult, error) {
	if err := finalState.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedState, err)
	}

	return &CompletionResult{
		XPEarned:    s.params.ScenarioCompletionXP,
		HealthScore: completionHealthScore(finalState, s.params),
	}, nil
}

// CompleteLesson implements Service.CompleteLesson.
func (s *defaultService) CompleteLesson(score float64) (*LessonResult, error) {
	if score < 0 || score > 100 {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, domain.ErrInvalidScore)
	}

	return &LessonResult{
		XPEarned:    lessonXP(score, s.params),
		HealthScore: lessonHealthScore(score),
	}, nil
}
