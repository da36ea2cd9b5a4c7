// Package gemini provides an implementation of the generation.Generator
// interface that uses Google's Gemini API for producing decision reflections,
// concept explanations, and wealth-simulation summaries.
//
// This package is an infrastructure adapter: it translates between the
// application's generation inputs and the Gemini API without exposing the
// details of the external service to the core application. Prompt templates
// are embedded in the binary and personalized with the user's experience
// level and learning style.
//
// The adapter is deliberately failure-tolerant. When no API key is
// configured, or when a call fails or times out, it logs the problem and
// returns the deterministic fallback text from the generation package.
// A failed call never poisons later ones; each request is attempted fresh.
package gemini
