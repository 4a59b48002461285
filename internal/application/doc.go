// Package application builds the process-wide context of the model pipeline.
// The context loads and validates the configuration exactly once at start-up
// and is passed explicitly to every collaborator that needs settings or paths,
// so no package relies on hidden global state.
package application
