package errs

import (
	"errors"
	"fmt"
)

// Sentinel errors of the messaging kernel. They follow the same
// classification pattern as the generic errors in errs.go: each typed error
// unwraps to exactly one of these values.
var (
	ErrPermissionDenied  = errors.New("permission denied")
	ErrDuplicateVersion  = errors.New("duplicate version")
	ErrInvalidEnvelope   = errors.New("invalid envelope")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrCycleDetected     = errors.New("cycle detected")
	ErrPathExists        = errors.New("path exists")
)

// DenyReason classifies why a guarded action was denied.
type DenyReason string

const (
	// DenyBlacklisted means a blacklist entry exists for the actor/action.
	DenyBlacklisted DenyReason = "Blacklisted"
	// DenyExpired means the actor's grant passed its deadline.
	DenyExpired DenyReason = "Expired"
	// DenyExhausted means a limited-use grant reached zero remaining uses.
	DenyExhausted DenyReason = "Exhausted"
	// DenyNoGrant means no grant exists for the actor/action (fail closed).
	DenyNoGrant DenyReason = "NoGrant"
)

// PermissionDeniedError indicates that a guarded action was refused for the
// given actor.
type PermissionDeniedError struct {
	Actor  string
	Action string
	Reason DenyReason
}

// NewPermissionDeniedError creates a PermissionDeniedError for the actor,
// action and reason.
func NewPermissionDeniedError(actor, action string, reason DenyReason) *PermissionDeniedError {
	return &PermissionDeniedError{Actor: actor, Action: action, Reason: reason}
}

func (e *PermissionDeniedError) Error() string {
	return sanitize(fmt.Sprintf("permission denied: actor is: %s, action is: %s, reason is: %s", e.Actor, e.Action, e.Reason))
}

func (e *PermissionDeniedError) Unwrap() error {
	return ErrPermissionDenied
}

// DuplicateVersionError indicates an attempt to publish a (type, version)
// pair that already exists in the registry.
type DuplicateVersionError struct {
	ModuleType string
	Version    string
}

// NewDuplicateVersionError creates a DuplicateVersionError for the module
// type and version.
func NewDuplicateVersionError(moduleType, version string) *DuplicateVersionError {
	return &DuplicateVersionError{ModuleType: moduleType, Version: version}
}

func (e *DuplicateVersionError) Error() string {
	return sanitize(fmt.Sprintf("duplicate version: %s@%s is already published", e.ModuleType, e.Version))
}

func (e *DuplicateVersionError) Unwrap() error {
	return ErrDuplicateVersion
}

// InvalidEnvelopeError indicates that wire bytes could not be decoded into a
// message envelope.
type InvalidEnvelopeError struct {
	Cause error
}

// NewInvalidEnvelopeError creates an InvalidEnvelopeError wrapping the
// decode failure that caused it.
func NewInvalidEnvelopeError(cause error) *InvalidEnvelopeError {
	return &InvalidEnvelopeError{Cause: cause}
}

func (e *InvalidEnvelopeError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("invalid envelope (cause: %s)", e.Cause))
	}
	return "invalid envelope"
}

func (e *InvalidEnvelopeError) Unwrap() error {
	return ErrInvalidEnvelope
}

// UnauthorizedError indicates a non-administrator attempted an
// administrative operation.
type UnauthorizedError struct {
	Actor     string
	Operation string
}

// NewUnauthorizedError creates an UnauthorizedError for the actor and
// operation.
func NewUnauthorizedError(actor, operation string) *UnauthorizedError {
	return &UnauthorizedError{Actor: actor, Operation: operation}
}

func (e *UnauthorizedError) Error() string {
	return sanitize(fmt.Sprintf("unauthorized: actor is: %s, operation is: %s", e.Actor, e.Operation))
}

func (e *UnauthorizedError) Unwrap() error {
	return ErrUnauthorized
}

// InsufficientFundsError indicates that an account balance could not cover a
// debit, or that accounting arithmetic would overflow.
type InsufficientFundsError struct {
	Account string
	Denom   string
	Cause   error
}

// NewInsufficientFundsError creates an InsufficientFundsError without a
// cause.
func NewInsufficientFundsError(account, denom string) *InsufficientFundsError {
	return &InsufficientFundsError{Account: account, Denom: denom}
}

// NewInsufficientFundsErrorWithCause creates an InsufficientFundsError
// wrapping an underlying cause.
func NewInsufficientFundsErrorWithCause(account, denom string, cause error) *InsufficientFundsError {
	return &InsufficientFundsError{Account: account, Denom: denom, Cause: cause}
}

func (e *InsufficientFundsError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("insufficient funds: account is: %s, denom is: %s (cause: %s)", e.Account, e.Denom, e.Cause))
	}
	return sanitize(fmt.Sprintf("insufficient funds: account is: %s, denom is: %s", e.Account, e.Denom))
}

func (e *InsufficientFundsError) Unwrap() error {
	return ErrInsufficientFunds
}

// CycleDetectedError indicates that path resolution revisited a node while
// following alias indirections.
type CycleDetectedError struct {
	Path string
}

// NewCycleDetectedError creates a CycleDetectedError for the offending path.
func NewCycleDetectedError(path string) *CycleDetectedError {
	return &CycleDetectedError{Path: path}
}

func (e *CycleDetectedError) Error() string {
	return sanitize(fmt.Sprintf("cycle detected: %s", e.Path))
}

func (e *CycleDetectedError) Unwrap() error {
	return ErrCycleDetected
}

// PathExistsError indicates that a tree position is already occupied.
type PathExistsError struct {
	Path string
}

// NewPathExistsError creates a PathExistsError for the occupied path.
func NewPathExistsError(path string) *PathExistsError {
	return &PathExistsError{Path: path}
}

func (e *PathExistsError) Error() string {
	return sanitize(fmt.Sprintf("path exists: %s", e.Path))
}

func (e *PathExistsError) Unwrap() error {
	return ErrPathExists
}
