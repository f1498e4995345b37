package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"propmatch/internal/common"
	"propmatch/internal/domain/match"
)

type MatchRepository struct {
	db *sql.DB
}

func NewMatchRepository(db *sql.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

const matchColumns = `id, proposal_id, student_id, company_id, status, notified, assigned_at, updated_at`

// Create inserts an assignment. The unique index on (proposal_id,
// student_id) is the arbiter for concurrent duplicates; its violation
// surfaces as a conflict.
func (r *MatchRepository) Create(ctx context.Context, m match.Match) (*match.Match, error) {
	m.ID = common.NewUUID()
	now := time.Now().UTC()
	m.AssignedAt = now
	m.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, `INSERT INTO proposal_matches (id, proposal_id, student_id, company_id, status, notified, assigned_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		m.ID, m.ProposalID, m.StudentID, m.CompanyID, m.Status, m.Notified, m.AssignedAt, m.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.NewError(common.CodeConflict, "student already assigned to this proposal", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to create assignment", err)
	}
	return &m, nil
}

func (r *MatchRepository) GetByID(ctx context.Context, id common.UUID) (*match.Match, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+matchColumns+` FROM proposal_matches WHERE id = $1`, id)
	var m match.Match
	if err := row.Scan(&m.ID, &m.ProposalID, &m.StudentID, &m.CompanyID, &m.Status, &m.Notified, &m.AssignedAt, &m.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "assignment not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load assignment", err)
	}
	return &m, nil
}

func (r *MatchRepository) FindByProposalAndStudent(ctx context.Context, proposalID, studentID common.UUID) (*match.Match, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+matchColumns+` FROM proposal_matches WHERE proposal_id = $1 AND student_id = $2`, proposalID, studentID)
	var m match.Match
	if err := row.Scan(&m.ID, &m.ProposalID, &m.StudentID, &m.CompanyID, &m.Status, &m.Notified, &m.AssignedAt, &m.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "assignment not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load assignment", err)
	}
	return &m, nil
}

func (r *MatchRepository) ListByProposal(ctx context.Context, proposalID common.UUID) ([]match.WithStudent, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT m.id, m.proposal_id, m.student_id, m.company_id, m.status, m.notified, m.assigned_at, m.updated_at,
			s.id, s.user_id, s.course, s.year, s.age, s.interest_areas, s.technical_skills, s.soft_skills, s.cv_url, s.registered_at, s.deletion_requested,
			u.name, u.institutional_email
		FROM proposal_matches m
		JOIN student_profiles s ON s.id = m.student_id
		JOIN users u ON u.id = s.user_id
		WHERE m.proposal_id = $1
		ORDER BY m.assigned_at DESC`, proposalID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list proposal assignments", err)
	}
	defer rows.Close()
	var items []match.WithStudent
	for rows.Next() {
		var item match.WithStudent
		if err := rows.Scan(&item.ID, &item.ProposalID, &item.StudentID, &item.CompanyID, &item.Status, &item.Notified, &item.AssignedAt, &item.UpdatedAt,
			&item.Student.ID, &item.Student.UserID, &item.Student.Course, &item.Student.Year, &item.Student.Age,
			pq.Array(&item.Student.InterestAreas), pq.Array(&item.Student.TechnicalSkills), pq.Array(&item.Student.SoftSkills),
			&item.Student.CVURL, &item.Student.RegisteredAt, &item.Student.DeletionRequested,
			&item.StudentName, &item.StudentEmail); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan proposal assignment", err)
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *MatchRepository) ListByStudent(ctx context.Context, studentID common.UUID) ([]match.WithProposal, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT m.id, m.proposal_id, m.student_id, m.company_id, m.status, m.notified, m.assigned_at, m.updated_at,
			p.id, p.company_id, p.created_by, p.validated_by, p.title, p.proposal_type, p.description, p.candidate_profile, p.location,
			p.application_deadline, p.contract_type, p.technical_skills, p.soft_skills, p.contact_name, p.contact_email, p.status, p.submitted_at, p.reactivated_at, p.updated_at,
			c.id, c.user_id, c.company_name, c.tax_id, c.website, c.address, c.contact_phone
		FROM proposal_matches m
		JOIN proposals p ON p.id = m.proposal_id
		JOIN company_profiles c ON c.id = m.company_id
		WHERE m.student_id = $1
		ORDER BY m.assigned_at DESC`, studentID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list student assignments", err)
	}
	defer rows.Close()
	var items []match.WithProposal
	for rows.Next() {
		var item match.WithProposal
		var validatedBy sql.NullString
		var reactivatedAt sql.NullTime
		if err := rows.Scan(&item.ID, &item.ProposalID, &item.StudentID, &item.CompanyID, &item.Status, &item.Notified, &item.AssignedAt, &item.UpdatedAt,
			&item.Proposal.ID, &item.Proposal.CompanyID, &item.Proposal.CreatedBy, &validatedBy, &item.Proposal.Title, &item.Proposal.Type,
			&item.Proposal.Description, &item.Proposal.CandidateProfile, &item.Proposal.Location,
			&item.Proposal.ApplicationDeadline, &item.Proposal.ContractType, pq.Array(&item.Proposal.TechnicalSkills), pq.Array(&item.Proposal.SoftSkills),
			&item.Proposal.ContactName, &item.Proposal.ContactEmail, &item.Proposal.Status, &item.Proposal.SubmittedAt, &reactivatedAt, &item.Proposal.UpdatedAt,
			&item.Company.ID, &item.Company.UserID, &item.Company.CompanyName, &item.Company.TaxID, &item.Company.Website, &item.Company.Address, &item.Company.ContactPhone); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan student assignment", err)
		}
		if validatedBy.Valid {
			id := common.UUID(validatedBy.String)
			item.Proposal.ValidatedBy = &id
		}
		if reactivatedAt.Valid {
			at := reactivatedAt.Time
			item.Proposal.ReactivatedAt = &at
		}
		items = append(items, item)
	}
	return items, nil
}

// UpdateStatus moves a pending assignment to its final status.
func (r *MatchRepository) UpdateStatus(ctx context.Context, id common.UUID, to match.Status) (*match.Match, error) {
	result, err := r.db.ExecContext(ctx, `UPDATE proposal_matches SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`,
		to, time.Now().UTC(), id, match.StatusPending)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update assignment status", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		current, getErr := r.GetByID(ctx, id)
		if getErr != nil {
			return nil, getErr
		}
		return nil, common.NewError(common.CodeInvalidState, fmt.Sprintf("assignment status is %s", current.Status), nil)
	}
	return r.GetByID(ctx, id)
}

func (r *MatchRepository) MarkNotified(ctx context.Context, id common.UUID) error {
	_, err := r.db.ExecContext(ctx, `UPDATE proposal_matches SET notified = true, updated_at = $1 WHERE id = $2`, time.Now().UTC(), id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to mark assignment notified", err)
	}
	return nil
}
