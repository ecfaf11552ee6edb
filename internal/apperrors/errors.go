// Package apperrors defines the sentinel errors used across the
// service and API layers. The engine itself signals domain failures
// with nil/false return values; these errors translate those outcomes
// at the boundary.
package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities.
var (
	// ErrSessionNotFound indicates that no game session exists for the given ID.
	ErrSessionNotFound = errors.New("game session not found")

	// ErrSaveNotFound indicates that no saved game exists for the given session.
	ErrSaveNotFound = errors.New("saved game not found")

	// ErrHoldingNotFound indicates that a holding with the given ID does not exist.
	ErrHoldingNotFound = errors.New("holding not found")

	// ErrUnknownLoanType indicates that the requested loan product does not exist.
	ErrUnknownLoanType = errors.New("unknown loan type")

	// ErrUnknownAction indicates that the action id is not in the catalog.
	ErrUnknownAction = errors.New("unknown action")

	// ErrUnknownSkillField indicates a study request for a field that does not exist.
	ErrUnknownSkillField = errors.New("unknown skill field")

	// ErrUnknownAssetType indicates a buy request for an asset type that does not exist.
	ErrUnknownAssetType = errors.New("unknown asset type")
)

// Business logic errors represent operations blocked by game rules.
var (
	// ErrActionUnavailable indicates an action whose time, cash, or
	// condition requirements are not currently met.
	ErrActionUnavailable = errors.New("action not available")

	// ErrInsufficientCash indicates that cash cannot cover the operation.
	ErrInsufficientCash = errors.New("insufficient cash")

	// ErrNoPendingEvent indicates a choice was submitted with no event outstanding.
	ErrNoPendingEvent = errors.New("no pending event")

	// ErrEventPending indicates an operation was attempted while an
	// unresolved event is waiting for a choice.
	ErrEventPending = errors.New("an event is pending resolution")

	// ErrInvalidChoice indicates a choice index outside the pending event's options.
	ErrInvalidChoice = errors.New("invalid choice index")

	// ErrGameOver indicates the session's player has already reached a
	// terminal condition.
	ErrGameOver = errors.New("game is over")

	// ErrNegativeAmount indicates that an amount field has an invalid negative value.
	ErrNegativeAmount = errors.New("amount cannot be negative")
)
