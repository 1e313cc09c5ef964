// Package registry hosts command providers and dispatches pipelines over
// them: alias resolution, completer composition, pipeline parsing and
// execution with the PIPE/FLIP/AND/OR/REDIRECT/APPEND operators, background
// dispatch, and the session carried through a request's context.
//
// Generalizes the teacher's fixed map[string]RunnableFunc
// (internal/menu/registry.go's registerAppRunnables/
// registerPlaceholderRunnables) into an aggregatable, provider-per-concern
// design, the way internal/menu/dispatcher.go separates command lookup from
// internal/menu/executor.go's execution.
package registry
