package registry

import (
	"errors"

	"aos/internal/core/domain/model/kernel"
	"aos/internal/pkg/errs"
)

// ErrEntryIsNotConstructed is returned when an Entry instance was not created
// through the NewEntry or RestoreEntry constructors.
var ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry or RestoreEntry")

// Entry is one published (module type, version) pairing in the code
// catalog. The pairing is unique: publishing the same version of a type
// twice is rejected, even with an identical code id.
//
// Entry follows these invariants:
//   - Module type and version are immutable after publication
//   - The code id is a positive reference into the host's code store
//   - The publisher may be updated by the registry owner
//   - Each guarded action may carry at most one fee
type Entry struct {
	// id is the unique identifier for the catalog row
	id kernel.UUID

	// moduleType is the published module type name
	moduleType string

	// version is the published semantic version
	version Version

	// codeID references the executable code in the host's code store
	codeID uint64

	// publisher receives action fees charged for this type
	publisher string

	// actionFees maps a guarded action name to its fee
	actionFees map[string]kernel.Coin

	// isConstructed ensures the Entry was created via a constructor
	isConstructed bool
}

// NewEntry publishes a (type, version) pairing. Uniqueness against
// already published pairings is enforced by the catalog, not here.
func NewEntry(
	id kernel.UUID,
	moduleType string,
	version Version,
	codeID uint64,
	publisher string,
) (*Entry, error) {
	e := &Entry{
		actionFees:    make(map[string]kernel.Coin),
		isConstructed: true,
	}

	if err := errors.Join(
		e.setID(id),
		e.setModuleType(moduleType),
		e.setVersion(version),
		e.setCodeID(codeID),
		e.setPublisher(publisher),
	); err != nil {
		return nil, err
	}

	return e, nil
}

// RestoreEntry reconstructs an Entry from persistence. Used by
// repositories only.
func RestoreEntry(
	id kernel.UUID,
	moduleType string,
	version Version,
	codeID uint64,
	publisher string,
	actionFees map[string]kernel.Coin,
) (*Entry, error) {
	e, err := NewEntry(id, moduleType, version, codeID, publisher)
	if err != nil {
		return nil, err
	}

	for action, fee := range actionFees {
		if err := e.SetActionFee(action, fee); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// Validate ensures the Entry was properly constructed.
func (e *Entry) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEntryIsNotConstructed
	}
	return nil
}

// ID returns the catalog row's unique identifier.
func (e *Entry) ID() kernel.UUID {
	return e.id
}

// ModuleType returns the published module type name.
func (e *Entry) ModuleType() string {
	return e.moduleType
}

// Version returns the published version.
func (e *Entry) Version() Version {
	return e.version
}

// CodeID returns the code store reference.
func (e *Entry) CodeID() uint64 {
	return e.codeID
}

// Publisher returns the fee recipient for this type.
func (e *Entry) Publisher() string {
	return e.publisher
}

// UpdatePublisher changes the fee recipient.
func (e *Entry) UpdatePublisher(publisher string) error {
	return e.setPublisher(publisher)
}

// ActionFee returns the fee charged for the action, if one is set.
func (e *Entry) ActionFee(action string) (kernel.Coin, bool) {
	fee, ok := e.actionFees[action]
	return fee, ok
}

// ActionFees returns a copy of the fee schedule.
func (e *Entry) ActionFees() map[string]kernel.Coin {
	fees := make(map[string]kernel.Coin, len(e.actionFees))
	for action, fee := range e.actionFees {
		fees[action] = fee
	}
	return fees
}

// SetActionFee sets or replaces the fee for an action.
func (e *Entry) SetActionFee(action string, fee kernel.Coin) error {
	if action == "" {
		return errs.NewValueIsRequiredError("action")
	}
	if err := fee.Validate(); err != nil {
		return err
	}
	e.actionFees[action] = fee
	return nil
}

// RemoveActionFee deletes the fee for an action. Removing an absent fee
// is a no-op.
func (e *Entry) RemoveActionFee(action string) {
	delete(e.actionFees, action)
}

// setID validates and sets the row's unique identifier.
func (e *Entry) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.id = id
	return nil
}

// setModuleType validates and sets the module type name.
func (e *Entry) setModuleType(moduleType string) error {
	if moduleType == "" {
		return errs.NewValueIsRequiredError("moduleType")
	}
	if err := kernel.ValidatePathSegment(moduleType); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("moduleType", err)
	}
	e.moduleType = moduleType
	return nil
}

// setVersion validates and sets the version.
func (e *Entry) setVersion(version Version) error {
	if err := version.Validate(); err != nil {
		return err
	}
	e.version = version
	return nil
}

// setCodeID validates and sets the code store reference.
func (e *Entry) setCodeID(codeID uint64) error {
	if codeID == 0 {
		return errs.NewValueIsRequiredError("codeID")
	}
	e.codeID = codeID
	return nil
}

// setPublisher validates and sets the fee recipient.
func (e *Entry) setPublisher(publisher string) error {
	if publisher == "" {
		return errs.NewValueIsRequiredError("publisher")
	}
	e.publisher = publisher
	return nil
}
