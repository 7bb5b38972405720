package models

// ============================================================================
// RATING CONSTANTS
// ============================================================================

// Star ratings run from MinRating to MaxRating inclusive.
// A rating of 0 means "not rated yet" and is never stored.
const (
	MinRating = 1
	MaxRating = 5
)

// ============================================================================
// REVIEW BODY CONSTANTS
// ============================================================================

// Review bodies are measured in characters, not bytes
const (
	MinReviewLength = 10
	MaxReviewLength = 255
)

// ============================================================================
// ACCOUNT CONSTANTS
// ============================================================================

// Minimum character counts for account credentials
const (
	MinUsernameLength = 3
	MinPasswordLength = 6
)
