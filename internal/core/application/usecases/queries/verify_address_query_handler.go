package queries

import (
	"context"
	"database/sql"
	"errors"

	"aos/internal/core/domain/model/kernel"
	"aos/internal/core/domain/model/pathtree"
	"aos/internal/core/domain/services"
	"aos/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VerifyAddressQueryHandler resolves a path through the full resolver walk,
// aliases included, against the current node table.
type VerifyAddressQueryHandler struct {
	db        *gorm.DB
	hostChain string
}

// NewVerifyAddressQueryHandler creates a handler for address verification.
// Requires a GORM database connection for query execution.
func NewVerifyAddressQueryHandler(db *gorm.DB, hostChain string) VerifyAddressQueryHandler {
	return VerifyAddressQueryHandler{db: db, hostChain: hostChain}
}

// Handle executes the verification.
// A path that does not resolve yields Exists false with a nil error;
// resolution faults other than a missing node are returned as errors.
func (h VerifyAddressQueryHandler) Handle(
	ctx context.Context,
	query VerifyAddressQuery,
) (VerifyAddressQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return VerifyAddressQueryResponse{}, err
	}

	resolver, err := services.NewResolver(sqlNodeFinder{db: h.db}, h.hostChain)
	if err != nil {
		return VerifyAddressQueryResponse{}, err
	}

	address, err := resolver.Resolve(ctx, query.Path())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return VerifyAddressQueryResponse{Exists: false}, nil
		}
		return VerifyAddressQueryResponse{}, err
	}

	return VerifyAddressQueryResponse{
		Exists:  true,
		Address: address,
	}, nil
}

// sqlNodeFinder adapts a raw node lookup to the resolver's NodeFinder
// port so the read side does not open a unit of work.
type sqlNodeFinder struct {
	db *gorm.DB
}

func (f sqlNodeFinder) FindChild(
	ctx context.Context,
	parentID *kernel.UUID,
	name string,
) (*pathtree.Node, error) {
	q := f.db.WithContext(ctx)

	var row *sql.Row
	if parentID == nil {
		row = q.Raw(`
			SELECT
				id,
				parent_id,
				name,
				address,
				alias_target
			FROM nodes
			WHERE parent_id IS NULL AND name = ?
		`, name).Row()
	} else {
		row = q.Raw(`
			SELECT
				id,
				parent_id,
				name,
				address,
				alias_target
			FROM nodes
			WHERE parent_id = ? AND name = ?
		`, parentID.String(), name).Row()
	}

	var (
		id          uuid.UUID
		rawParentID *uuid.UUID
		nodeName    string
		rawAddress  *string
		rawAlias    *string
	)

	if err := row.Scan(&id, &rawParentID, &nodeName, &rawAddress, &rawAlias); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NewObjectNotFoundError("node", name)
		}
		return nil, err
	}

	nodeID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return nil, err
	}

	var nodeParentID *kernel.UUID
	if rawParentID != nil {
		parent, parentErr := kernel.UUIDFromBytes(rawParentID[:])
		if parentErr != nil {
			return nil, parentErr
		}
		nodeParentID = &parent
	}

	var address *kernel.Address
	if rawAddress != nil {
		parsed, addrErr := kernel.AddressFromString(*rawAddress)
		if addrErr != nil {
			return nil, addrErr
		}
		address = &parsed
	}

	var aliasTarget *kernel.Path
	if rawAlias != nil {
		parsed, aliasErr := kernel.PathFromString(*rawAlias)
		if aliasErr != nil {
			return nil, aliasErr
		}
		aliasTarget = &parsed
	}

	return pathtree.RestoreNode(nodeID, nodeParentID, nodeName, address, aliasTarget)
}
