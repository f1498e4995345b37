package match

import (
	"context"

	"propmatch/internal/common"
)

// Repository persists assignments. The (proposal_id, student_id) pair is
// unique at the storage layer; Create surfaces a duplicate as a conflict.
type Repository interface {
	Create(ctx context.Context, m Match) (*Match, error)
	GetByID(ctx context.Context, id common.UUID) (*Match, error)
	FindByProposalAndStudent(ctx context.Context, proposalID, studentID common.UUID) (*Match, error)
	ListByProposal(ctx context.Context, proposalID common.UUID) ([]WithStudent, error)
	ListByStudent(ctx context.Context, studentID common.UUID) ([]WithProposal, error)
	// UpdateStatus moves id from pending to the target status; zero
	// matched rows surface as not_found or invalid_state.
	UpdateStatus(ctx context.Context, id common.UUID, to Status) (*Match, error)
	MarkNotified(ctx context.Context, id common.UUID) error
}
