package api_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/empowermint/empowermint-api/internal/api"
	"github.com/empowermint/empowermint-api/internal/domain"
	"github.com/empowermint/empowermint-api/internal/generation"
)

func newAIRouter(gen *fakeGenerator) chi.Router {
	handler := api.NewAIHandler(gen, slog.New(slog.NewTextHandler(io.Discard, nil)))

	r := chi.NewRouter()
	r.Post("/ai/explain", handler.Explain)
	r.Post("/ai/simulate-wealth", handler.SimulateWealth)
	return r
}

func TestExplain(t *testing.T) {
	t.Parallel()

	gen := newFakeGenerator()
	router := newAIRouter(gen)

	body := `{"concept":"compound interest","context":"saving for college","experienceLevel":"beginner","learningStyle":"visual"}`
	rec := doJSON(t, router, http.MethodPost, "/ai/explain", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp api.ExplainResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "a clear explanation", resp.Explanation.Text)
	assert.Equal(t, "generated", resp.Explanation.Source)

	require.NotNil(t, gen.lastExplain)
	assert.Equal(t, "compound interest", gen.lastExplain.Concept)
	assert.Equal(t, domain.ExperienceBeginner, gen.lastExplain.Profile.ExperienceLevel)
}

func TestExplainValidation(t *testing.T) {
	t.Parallel()

	router := newAIRouter(newFakeGenerator())

	tests := []struct {
		name string
		body string
	}{
		{name: "missing concept", body: `{"context":"whatever"}`},
		{name: "unknown experience level", body: `{"concept":"stocks","experienceLevel":"expert"}`},
		{name: "empty body", body: ""},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			rec := doJSON(t, router, http.MethodPost, "/ai/explain", tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

func TestExplainFallbackSourceSurfaced(t *testing.T) {
	t.Parallel()

	gen := newFakeGenerator()
	gen.source = generation.SourceFallback
	router := newAIRouter(gen)

	rec := doJSON(t, router, http.MethodPost, "/ai/explain", `{"concept":"inflation"}`)
	require.Equal(t, http.StatusOK, rec.Code, "generation degradation must never surface as an error")

	var resp api.ExplainResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "fallback", resp.Explanation.Source)
}

func TestSimulateWealth(t *testing.T) {
	t.Parallel()

	gen := newFakeGenerator()
	router := newAIRouter(gen)

	body := `{"initialAmount":1000,"monthlyContribution":0,"annualReturn":0,"years":10}`
	rec := doJSON(t, router, http.MethodPost, "/ai/simulate-wealth", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp api.SimulateWealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	// Zero return, zero contributions: the balance never moves.
	require.Len(t, resp.DataPoints, 11, "year zero plus one point per year")
	assert.Equal(t, 0, resp.DataPoints[0].Year)
	assert.Equal(t, 1000.0, resp.DataPoints[0].Value)
	assert.Equal(t, 1000.0, resp.DataPoints[10].Value)
	assert.Equal(t, 1000.0, resp.FinalValue)
	assert.Equal(t, 1000.0, resp.TotalContributions)
	assert.Equal(t, 0.0, resp.Gains)

	assert.Equal(t, "a projection summary", resp.Explanation.Text)
	require.NotNil(t, gen.lastSimulation)
	assert.Equal(t, 10, gen.lastSimulation.Years)
	assert.Equal(t, 1000.0, gen.lastSimulation.FinalValue)
}

func TestSimulateWealthValidation(t *testing.T) {
	t.Parallel()

	router := newAIRouter(newFakeGenerator())

	tests := []struct {
		name string
		body string
	}{
		{name: "negative initial amount", body: `{"initialAmount":-1,"monthlyContribution":0,"annualReturn":7,"years":10}`},
		{name: "negative contribution", body: `{"initialAmount":0,"monthlyContribution":-50,"annualReturn":7,"years":10}`},
		{name: "return above 100", body: `{"initialAmount":0,"monthlyContribution":0,"annualReturn":101,"years":10}`},
		{name: "zero years", body: `{"initialAmount":1000,"monthlyContribution":0,"annualReturn":7,"years":0}`},
		{name: "years above 100", body: `{"initialAmount":1000,"monthlyContribution":0,"annualReturn":7,"years":101}`},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			rec := doJSON(t, router, http.MethodPost, "/ai/simulate-wealth", tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}
