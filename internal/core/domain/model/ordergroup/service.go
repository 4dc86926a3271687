package ordergroup

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	// ErrServiceIsNotConstructed indicates that the Service was not properly
	// initialized through NewService or RestoreService.
	ErrServiceIsNotConstructed = errors.New("Service must be created via NewService or RestoreService constructor")

	// ErrServiceAlreadyDeleted indicates a delete of a service that is
	// already soft-deleted.
	ErrServiceAlreadyDeleted = errors.New("service is already deleted")

	// ErrServiceNotDeleted indicates a restore of a service that is not
	// soft-deleted.
	ErrServiceNotDeleted = errors.New("service is not deleted")

	// ErrServiceIsDeleted indicates a status change on a soft-deleted
	// service. Deleted services must be restored first.
	ErrServiceIsDeleted = errors.New("service is deleted")
)

// Service is a leaf of the fulfillment tree: an individually trackable line
// item within an order group. It is the only node whose status is set by an
// external actor; every parent status above it is derived.
//
// A service can be soft-deleted and later restored. Soft-deleted services
// are excluded from status aggregation, so both deleting and restoring a
// service are aggregation triggers for the owning group.
type Service struct {
	// id uniquely identifies the service
	id kernel.UUID

	// groupID references the owning order group
	groupID kernel.UUID

	// status is set directly by the provider working the item
	status Status

	// price is the immutable snapshot captured at creation
	price Price

	// deleted marks the service as soft-deleted
	deleted bool

	guard guard.ConstructorGuard
}

// NewService creates a new Service in Pending status with the given price snapshot.
func NewService(id, groupID kernel.UUID, price Price) (*Service, error) {
	s := &Service{
		status: Pending,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(id),
		s.setGroupID(groupID),
		s.setPrice(price),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// RestoreService reconstructs a Service entity from persistent storage,
// including its soft-delete flag.
func RestoreService(id, groupID kernel.UUID, status Status, price Price, deleted bool) (*Service, error) {
	s := &Service{
		deleted: deleted,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(id),
		s.setGroupID(groupID),
		s.setStatus(status),
		s.setPrice(price),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// Validate ensures the Service instance was properly constructed.
func (s *Service) Validate() error {
	if s == nil {
		return ErrServiceIsNotConstructed
	}
	return s.guard.Validate(ErrServiceIsNotConstructed)
}

// IsEqual compares two services by their unique identifiers.
func (s *Service) IsEqual(other *Service) bool {
	return other != nil && s.id.IsEqual(other.id)
}

// ID returns the service's unique identifier.
func (s *Service) ID() kernel.UUID {
	return s.id
}

// GroupID returns the identifier of the owning group.
func (s *Service) GroupID() kernel.UUID {
	return s.groupID
}

// Status returns the current status of the service.
func (s *Service) Status() Status {
	return s.status
}

// Price returns the immutable price snapshot.
func (s *Service) Price() Price {
	return s.price
}

// IsDeleted reports whether the service is soft-deleted.
func (s *Service) IsDeleted() bool {
	return s.deleted
}

// ChangeStatus sets the service status. This is the external mutation entry
// of the whole tree; the caller must run the group aggregation afterwards.
// Deleted services cannot change status.
func (s *Service) ChangeStatus(status Status) error {
	if s.deleted {
		return ErrServiceIsDeleted
	}
	if err := status.Validate(); err != nil {
		return err
	}

	s.status = status
	return nil
}

// MarkDeleted soft-deletes the service, excluding it from aggregation.
func (s *Service) MarkDeleted() error {
	if s.deleted {
		return ErrServiceAlreadyDeleted
	}

	s.deleted = true
	return nil
}

// Restore reverses a soft delete, bringing the service back into aggregation.
func (s *Service) Restore() error {
	if !s.deleted {
		return ErrServiceNotDeleted
	}

	s.deleted = false
	return nil
}

func (s *Service) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Service) setGroupID(groupID kernel.UUID) error {
	if err := groupID.Validate(); err != nil {
		return err
	}
	s.groupID = groupID
	return nil
}

func (s *Service) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	s.status = status
	return nil
}

func (s *Service) setPrice(price Price) error {
	if err := price.Validate(); err != nil {
		return err
	}
	s.price = price
	return nil
}
