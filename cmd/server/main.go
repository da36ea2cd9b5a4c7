// Package main implements the entry point for the EmpowerMint API server,
// which walks learners through branching financial-decision scenarios and
// accounts their XP, level, and financial-health progress.
package main

import (
	"context"
	"log"
)

// main wires configuration, logging, storage, and services together, then
// serves HTTP until a shutdown signal arrives.
func main() {
	ctx := context.Background()

	app, err := newApplication(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
