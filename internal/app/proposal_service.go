package app

import (
	"context"
	"log/slog"
	"strings"

	"propmatch/internal/common"
	"propmatch/internal/domain/notification"
	"propmatch/internal/domain/profile"
	"propmatch/internal/domain/proposal"
	"propmatch/internal/domain/user"
)

type ProposalService struct {
	repo          proposal.Repository
	companies     profile.CompanyRepository
	notifications notification.Repository
	logger        *slog.Logger
}

func NewProposalService(repo proposal.Repository, companies profile.CompanyRepository, notifications notification.Repository, logger *slog.Logger) *ProposalService {
	return &ProposalService{repo: repo, companies: companies, notifications: notifications, logger: logger}
}

// Create submits a proposal. Company users publish under their own company
// profile; administrators and managers name the company and their proposals
// skip the pending review.
func (s *ProposalService) Create(ctx context.Context, actor Actor, p proposal.Proposal) (*proposal.Proposal, error) {
	if err := validateProposalFields(p); err != nil {
		return nil, err
	}
	switch {
	case actor.Role == user.RoleCompany:
		companyProfile, err := s.companies.GetByUserID(ctx, actor.UserID)
		if err != nil {
			if common.Is(err, common.CodeNotFound) {
				return nil, common.NewError(common.CodeValidation, "company profile is required", nil)
			}
			return nil, err
		}
		p.CompanyID = companyProfile.ID
	case actor.Role.Privileged():
		if p.CompanyID.IsZero() {
			return nil, common.NewValidationError("invalid proposal", map[string]string{"company_id": "company_id is required"})
		}
		if _, err := s.companies.GetByID(ctx, p.CompanyID); err != nil {
			if common.Is(err, common.CodeNotFound) {
				return nil, common.NewValidationError("invalid proposal", map[string]string{"company_id": "company not found"})
			}
			return nil, err
		}
	default:
		return nil, common.NewError(common.CodeForbidden, "insufficient role", nil)
	}
	p.CreatedBy = actor.UserID
	p.ValidatedBy = nil
	p.ReactivatedAt = nil
	if actor.Role.Privileged() {
		p.Status = proposal.StatusActive
	} else {
		p.Status = proposal.StatusPending
	}
	return s.repo.Create(ctx, p)
}

// Update edits proposal fields. The owning company never changes and removed
// proposals cannot be edited.
func (s *ProposalService) Update(ctx context.Context, actor Actor, p proposal.Proposal) (*proposal.Proposal, error) {
	current, err := s.repo.GetByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	if err := ensureCanManage(ctx, s.companies, actor, *current); err != nil {
		return nil, err
	}
	if current.Status == proposal.StatusRemoved {
		return nil, common.NewError(common.CodeInvalidState, "removed proposals cannot be edited", nil)
	}
	if err := validateProposalFields(p); err != nil {
		return nil, err
	}
	p.CompanyID = current.CompanyID
	p.CreatedBy = current.CreatedBy
	p.Status = current.Status
	return s.repo.Update(ctx, p)
}

// Validate approves a pending proposal. Moderation only: the caller must be
// an administrator or a manager, and the proposal must still be pending.
func (s *ProposalService) Validate(ctx context.Context, actor Actor, id common.UUID) (*proposal.Proposal, error) {
	if !canModerate(actor) {
		return nil, common.NewError(common.CodeForbidden, "insufficient role", nil)
	}
	updated, err := s.repo.MarkValidated(ctx, id, actor.UserID)
	if err != nil {
		return nil, err
	}
	s.notifyCreator(ctx, *updated, notification.CategoryInfo, "Your proposal \""+updated.Title+"\" was approved.")
	return updated, nil
}

// Reject marks a pending or active proposal unfit without deleting it.
func (s *ProposalService) Reject(ctx context.Context, actor Actor, id common.UUID) (*proposal.Proposal, error) {
	if !canModerate(actor) {
		return nil, common.NewError(common.CodeForbidden, "insufficient role", nil)
	}
	updated, err := s.repo.TransitionStatus(ctx, id, proposal.StatusInactive, proposal.StatusPending, proposal.StatusActive)
	if err != nil {
		return nil, err
	}
	s.notifyCreator(ctx, *updated, notification.CategoryAlert, "Your proposal \""+updated.Title+"\" was rejected.")
	return updated, nil
}

// Inactivate takes an active proposal offline.
func (s *ProposalService) Inactivate(ctx context.Context, actor Actor, id common.UUID) (*proposal.Proposal, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := ensureCanManage(ctx, s.companies, actor, *current); err != nil {
		return nil, err
	}
	return s.repo.TransitionStatus(ctx, id, proposal.StatusInactive, proposal.StatusActive)
}

// Reactivate brings an inactive proposal back and stamps the reactivation.
func (s *ProposalService) Reactivate(ctx context.Context, actor Actor, id common.UUID) (*proposal.Proposal, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := ensureCanManage(ctx, s.companies, actor, *current); err != nil {
		return nil, err
	}
	return s.repo.MarkReactivated(ctx, id)
}

// Remove permanently deletes a proposal. Matches go with it through the
// storage cascade; notifications keep the row but lose the reference.
func (s *ProposalService) Remove(ctx context.Context, actor Actor, id common.UUID) error {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := ensureCanManage(ctx, s.companies, actor, *current); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("proposal delete failed", "proposal_id", id.String(), "error", err)
		return err
	}
	return nil
}

// Get returns a proposal. Students only ever see active ones.
func (s *ProposalService) Get(ctx context.Context, actor Actor, id common.UUID) (*proposal.Proposal, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role == user.RoleStudent && item.Status != proposal.StatusActive {
		return nil, common.NewError(common.CodeNotFound, "proposal not found", nil)
	}
	return item, nil
}

// List scopes the listing by role: students see active proposals, companies
// their own, privileged roles everything (optionally filtered).
func (s *ProposalService) List(ctx context.Context, actor Actor, f proposal.Filter) ([]proposal.Proposal, error) {
	switch {
	case actor.Role == user.RoleStudent:
		f = proposal.Filter{Status: proposal.StatusActive}
	case actor.Role == user.RoleCompany:
		companyProfile, err := s.companies.GetByUserID(ctx, actor.UserID)
		if err != nil {
			if common.Is(err, common.CodeNotFound) {
				return []proposal.Proposal{}, nil
			}
			return nil, err
		}
		f.CompanyID = companyProfile.ID
	}
	return s.repo.List(ctx, f)
}

func (s *ProposalService) notifyCreator(ctx context.Context, p proposal.Proposal, category notification.Category, message string) {
	if s.notifications == nil {
		return
	}
	proposalID := p.ID
	_, err := s.notifications.Create(ctx, notification.Notification{
		UserID:     p.CreatedBy,
		ProposalID: &proposalID,
		Message:    message,
		Category:   category,
	})
	if err != nil {
		s.logger.Warn("creator notification failed", "proposal_id", p.ID.String(), "error", err)
	}
}

func validateProposalFields(p proposal.Proposal) error {
	fields := map[string]string{}
	if strings.TrimSpace(p.Title) == "" {
		fields["title"] = "title is required"
	}
	if strings.TrimSpace(p.Description) == "" {
		fields["description"] = "description is required"
	}
	switch p.Type {
	case proposal.TypeJob, proposal.TypeInternship, proposal.TypeOther:
	default:
		fields["type"] = "type must be job, internship, or other"
	}
	if p.ApplicationDeadline.IsZero() {
		fields["application_deadline"] = "application_deadline is required"
	}
	if len(fields) > 0 {
		return common.NewValidationError("invalid proposal", fields)
	}
	return nil
}
