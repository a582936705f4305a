// Package prompt provides the small interactive prompts prep uses:
// an editable command review, a yes/no confirmation, and commit-message
// entry. All prompts render to stderr so stdout stays clean for data.
package prompt
