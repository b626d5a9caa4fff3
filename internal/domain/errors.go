package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidFee is returned when a royalty split is requested with a non-positive fee or no parents
	ErrInvalidFee = errors.New("invalid fee")

	// ErrNoClipsResolved is returned when none of the requested clip ids resolved
	ErrNoClipsResolved = errors.New("no valid clips found")

	// ErrUnknownOutcome is returned when the caller went away before the ledger registration committed
	ErrUnknownOutcome = errors.New("ledger registration outcome unknown")

	// ErrClipNotFound is returned when a clip is not found
	ErrClipNotFound = errors.New("clip not found")

	// ErrRemixNotFound is returned when a remix is not found
	ErrRemixNotFound = errors.New("remix not found")
)

// Stage names a step of the remix creation pipeline
type Stage string

const (
	StageValidate   Stage = "validate"
	StageResolve    Stage = "resolve"
	StageTagging    Stage = "tagging"
	StageUpload     Stage = "upload"
	StageLedger     Stage = "ledger"
	StageRoyalty    Stage = "royalty"
	StageSettlement Stage = "settlement"
)

// RegistrationStage names a state of the ledger registration state machine
type RegistrationStage string

const (
	RegistrationIdle             RegistrationStage = "idle"
	RegistrationMetadataStaged   RegistrationStage = "metadata_staged"
	RegistrationAssetRegistered  RegistrationStage = "asset_registered"
	RegistrationLicenseAttached  RegistrationStage = "license_attached"
	RegistrationDerivativeLinked RegistrationStage = "derivative_linked"
	RegistrationCommitted        RegistrationStage = "committed"
	RegistrationFailed           RegistrationStage = "failed"
)

// ValidationError reports malformed caller input; no external call has been made
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a validation error for a field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ResolutionError reports that none of the supplied clip ids resolved
type ResolutionError struct {
	Requested int
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("%s (requested %d)", ErrNoClipsResolved.Error(), e.Requested)
}

func (e *ResolutionError) Unwrap() error {
	return ErrNoClipsResolved
}

// ExternalServiceError reports a collaborator failure that aborted the pipeline
type ExternalServiceError struct {
	Stage Stage
	Err   error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Err
}

// RegistrationError reports the ledger step that failed and the last step that succeeded
type RegistrationError struct {
	Stage         RegistrationStage
	LastCompleted RegistrationStage
	Err           error
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("ledger registration failed at %s (last completed: %s): %v", e.Stage, e.LastCompleted, e.Err)
}

func (e *RegistrationError) Unwrap() error {
	return e.Err
}

// PartialSettlementError reports a committed remix row whose distributions were not all written.
// A reconciliation run can retry exactly the Failed shares against RemixID.
type PartialSettlementError struct {
	RemixID string
	Failed  []Share
	Err     error
}

func (e *PartialSettlementError) Error() string {
	owners := make([]string, 0, len(e.Failed))
	for _, s := range e.Failed {
		owners = append(owners, s.OwnerAddress)
	}
	return fmt.Sprintf("remix %s settled partially, %d distribution(s) failed [%s]: %v",
		e.RemixID, len(e.Failed), strings.Join(owners, ","), e.Err)
}

func (e *PartialSettlementError) Unwrap() error {
	return e.Err
}

// PersistenceError reports that the relational store could not be reached or written
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
