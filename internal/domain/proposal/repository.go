package proposal

import (
	"context"

	"propmatch/internal/common"
)

type Filter struct {
	Status    Status
	CompanyID common.UUID
}

// Repository persists proposals. Status transitions are conditional writes:
// the storage layer only applies them when the current status matches, so
// two concurrent requests cannot both win the same transition.
type Repository interface {
	Create(ctx context.Context, p Proposal) (*Proposal, error)
	// Update edits the mutable fields. It refuses rows whose status is
	// removed and never touches company_id or status.
	Update(ctx context.Context, p Proposal) (*Proposal, error)
	GetByID(ctx context.Context, id common.UUID) (*Proposal, error)
	List(ctx context.Context, f Filter) ([]Proposal, error)
	// TransitionStatus moves id from one of the given statuses to the
	// target. Zero matched rows surface as not_found or invalid_state
	// depending on whether the row exists.
	TransitionStatus(ctx context.Context, id common.UUID, to Status, from ...Status) (*Proposal, error)
	// MarkValidated is the pending -> active transition recording the
	// validating user.
	MarkValidated(ctx context.Context, id, validatorID common.UUID) (*Proposal, error)
	// MarkReactivated is the inactive -> active transition recording the
	// reactivation timestamp.
	MarkReactivated(ctx context.Context, id common.UUID) (*Proposal, error)
	Delete(ctx context.Context, id common.UUID) error
}
