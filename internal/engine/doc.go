// Package engine turns a staged change set into commit message suggestions.
//
// It is the core of commitgen, responsible for:
//   - Extracting shallow structural signals from per-file diff text
//   - Classifying the change into a conventional commit type and category
//   - Rendering a deterministic heuristic suggestion (subject, body, scope)
//   - Building prompts for and parsing responses from a generative text model
//   - Orchestrating the generative attempt with a timeout and falling back
//     to the heuristic path on any failure
//
// The engine holds no state between invocations. Callers are expected to
// check ChangeSet.HasChanges before invoking it; caching of results and all
// repository access live outside this package.
package engine
