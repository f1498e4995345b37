package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"propmatch/internal/common"
	"propmatch/internal/domain/proposal"
)

type ProposalRepository struct {
	db *sql.DB
}

func NewProposalRepository(db *sql.DB) *ProposalRepository {
	return &ProposalRepository{db: db}
}

const proposalColumns = `id, company_id, created_by, validated_by, title, proposal_type, description, candidate_profile, location,
	application_deadline, contract_type, technical_skills, soft_skills, contact_name, contact_email, status, submitted_at, reactivated_at, updated_at`

func (r *ProposalRepository) Create(ctx context.Context, p proposal.Proposal) (*proposal.Proposal, error) {
	p.ID = common.NewUUID()
	now := time.Now().UTC()
	p.SubmittedAt = now
	p.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, `INSERT INTO proposals (id, company_id, created_by, validated_by, title, proposal_type, description, candidate_profile, location,
		application_deadline, contract_type, technical_skills, soft_skills, contact_name, contact_email, status, submitted_at, reactivated_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`,
		p.ID, p.CompanyID, p.CreatedBy, p.ValidatedBy, p.Title, p.Type, p.Description, p.CandidateProfile, p.Location,
		p.ApplicationDeadline, p.ContractType, pq.Array(p.TechnicalSkills), pq.Array(p.SoftSkills), p.ContactName, p.ContactEmail, p.Status, p.SubmittedAt, p.ReactivatedAt, p.UpdatedAt)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create proposal", err)
	}
	return &p, nil
}

// Update edits the mutable fields only. The WHERE clause keeps removed rows
// untouchable even when the caller read a stale status.
func (r *ProposalRepository) Update(ctx context.Context, p proposal.Proposal) (*proposal.Proposal, error) {
	result, err := r.db.ExecContext(ctx, `UPDATE proposals SET title = $1, proposal_type = $2, description = $3, candidate_profile = $4, location = $5,
		application_deadline = $6, contract_type = $7, technical_skills = $8, soft_skills = $9, contact_name = $10, contact_email = $11, updated_at = $12
		WHERE id = $13 AND status <> $14`,
		p.Title, p.Type, p.Description, p.CandidateProfile, p.Location,
		p.ApplicationDeadline, p.ContractType, pq.Array(p.TechnicalSkills), pq.Array(p.SoftSkills), p.ContactName, p.ContactEmail, time.Now().UTC(),
		p.ID, proposal.StatusRemoved)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update proposal", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		if _, getErr := r.GetByID(ctx, p.ID); getErr != nil {
			return nil, getErr
		}
		return nil, common.NewError(common.CodeInvalidState, "removed proposals cannot be edited", nil)
	}
	return r.GetByID(ctx, p.ID)
}

func (r *ProposalRepository) GetByID(ctx context.Context, id common.UUID) (*proposal.Proposal, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+proposalColumns+` FROM proposals WHERE id = $1`, id)
	var p proposal.Proposal
	if err := scanProposal(row.Scan, &p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "proposal not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load proposal", err)
	}
	return &p, nil
}

func (r *ProposalRepository) List(ctx context.Context, f proposal.Filter) ([]proposal.Proposal, error) {
	query := `SELECT ` + proposalColumns + ` FROM proposals`
	var conditions []string
	var args []any
	if f.Status != "" {
		args = append(args, f.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if !f.CompanyID.IsZero() {
		args = append(args, f.CompanyID)
		conditions = append(conditions, fmt.Sprintf("company_id = $%d", len(args)))
	}
	for i, condition := range conditions {
		if i == 0 {
			query += " WHERE " + condition
		} else {
			query += " AND " + condition
		}
	}
	query += " ORDER BY submitted_at DESC"
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list proposals", err)
	}
	defer rows.Close()
	var items []proposal.Proposal
	for rows.Next() {
		var p proposal.Proposal
		if err := scanProposal(rows.Scan, &p); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan proposal", err)
		}
		items = append(items, p)
	}
	return items, nil
}

// TransitionStatus applies a conditional status write. The database decides
// which of two racing transitions wins; the loser sees invalid_state.
func (r *ProposalRepository) TransitionStatus(ctx context.Context, id common.UUID, to proposal.Status, from ...proposal.Status) (*proposal.Proposal, error) {
	sources := make([]string, 0, len(from))
	for _, s := range from {
		sources = append(sources, string(s))
	}
	result, err := r.db.ExecContext(ctx, `UPDATE proposals SET status = $1, updated_at = $2 WHERE id = $3 AND status = ANY($4)`,
		to, time.Now().UTC(), id, pq.Array(sources))
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update proposal status", err)
	}
	return r.afterTransition(ctx, id, result)
}

func (r *ProposalRepository) MarkValidated(ctx context.Context, id, validatorID common.UUID) (*proposal.Proposal, error) {
	result, err := r.db.ExecContext(ctx, `UPDATE proposals SET status = $1, validated_by = $2, updated_at = $3 WHERE id = $4 AND status = $5`,
		proposal.StatusActive, validatorID, time.Now().UTC(), id, proposal.StatusPending)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to validate proposal", err)
	}
	return r.afterTransition(ctx, id, result)
}

func (r *ProposalRepository) MarkReactivated(ctx context.Context, id common.UUID) (*proposal.Proposal, error) {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx, `UPDATE proposals SET status = $1, reactivated_at = $2, updated_at = $3 WHERE id = $4 AND status = $5`,
		proposal.StatusActive, now, now, id, proposal.StatusInactive)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to reactivate proposal", err)
	}
	return r.afterTransition(ctx, id, result)
}

func (r *ProposalRepository) Delete(ctx context.Context, id common.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM proposals WHERE id = $1`, id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to delete proposal", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return common.NewError(common.CodeNotFound, "proposal not found", sql.ErrNoRows)
	}
	return nil
}

// afterTransition turns a zero-row conditional update into not_found or
// invalid_state, and re-reads the row on success.
func (r *ProposalRepository) afterTransition(ctx context.Context, id common.UUID, result sql.Result) (*proposal.Proposal, error) {
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		current, getErr := r.GetByID(ctx, id)
		if getErr != nil {
			return nil, getErr
		}
		return nil, common.NewError(common.CodeInvalidState, fmt.Sprintf("proposal status is %s", current.Status), nil)
	}
	return r.GetByID(ctx, id)
}

func scanProposal(scan func(dest ...any) error, p *proposal.Proposal) error {
	var validatedBy sql.NullString
	var reactivatedAt sql.NullTime
	err := scan(&p.ID, &p.CompanyID, &p.CreatedBy, &validatedBy, &p.Title, &p.Type, &p.Description, &p.CandidateProfile, &p.Location,
		&p.ApplicationDeadline, &p.ContractType, pq.Array(&p.TechnicalSkills), pq.Array(&p.SoftSkills), &p.ContactName, &p.ContactEmail, &p.Status, &p.SubmittedAt, &reactivatedAt, &p.UpdatedAt)
	if err != nil {
		return err
	}
	if validatedBy.Valid {
		id := common.UUID(validatedBy.String)
		p.ValidatedBy = &id
	}
	if reactivatedAt.Valid {
		at := reactivatedAt.Time
		p.ReactivatedAt = &at
	}
	return nil
}
