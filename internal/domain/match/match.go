package match

import (
	"time"

	"propmatch/internal/common"
	"propmatch/internal/domain/profile"
	"propmatch/internal/domain/proposal"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// Match assigns one proposal to one student. CompanyID is copied from the
// proposal at assignment time so the owner stays attributable even after
// proposal edits.
type Match struct {
	ID         common.UUID `json:"id"`
	ProposalID common.UUID `json:"proposal_id"`
	StudentID  common.UUID `json:"student_id"`
	CompanyID  common.UUID `json:"company_id"`
	Status     Status      `json:"status"`
	Notified   bool        `json:"notified"`
	AssignedAt time.Time   `json:"assigned_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// WithStudent is the proposal-side listing row.
type WithStudent struct {
	Match
	Student      profile.StudentProfile `json:"student"`
	StudentName  string                 `json:"student_name"`
	StudentEmail string                 `json:"student_email"`
}

// WithProposal is the student-side listing row.
type WithProposal struct {
	Match
	Proposal proposal.Proposal      `json:"proposal"`
	Company  profile.CompanyProfile `json:"company"`
}
