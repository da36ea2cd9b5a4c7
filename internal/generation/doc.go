// Package generation provides interfaces and types for interacting with
// external AI/LLM services for content generation. It abstracts the details
// of LLM API integration (Gemini), allowing the application to produce
// decision reflections, concept explanations, and simulation summaries
// without coupling to specific external services.
//
// Generated text is always best-effort: every operation returns a Reflection
// carrying either model output or deterministic fallback text, never an
// error. Callers can inspect the Source field to tell the two apart.
package generation
