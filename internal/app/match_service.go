package app

import (
	"context"
	"log/slog"

	"propmatch/internal/common"
	"propmatch/internal/domain/match"
	"propmatch/internal/domain/notification"
	"propmatch/internal/domain/profile"
	"propmatch/internal/domain/proposal"
	"propmatch/internal/domain/user"
)

type MatchService struct {
	repo          match.Repository
	proposals     proposal.Repository
	students      profile.StudentRepository
	companies     profile.CompanyRepository
	notifications notification.Repository
	logger        *slog.Logger
}

func NewMatchService(repo match.Repository, proposals proposal.Repository, students profile.StudentRepository, companies profile.CompanyRepository, notifications notification.Repository, logger *slog.Logger) *MatchService {
	return &MatchService{repo: repo, proposals: proposals, students: students, companies: companies, notifications: notifications, logger: logger}
}

// Assign forwards an active proposal to a student on behalf of the owning
// company. The (proposal, student) pair is unique; the storage constraint is
// the final arbiter when two assignments race.
func (s *MatchService) Assign(ctx context.Context, actor Actor, proposalID, studentID common.UUID) (*match.Match, error) {
	p, err := s.proposals.GetByID(ctx, proposalID)
	if err != nil {
		return nil, err
	}
	studentProfile, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	companyProfile, err := resolveManagedCompany(ctx, s.companies, actor)
	if err != nil {
		return nil, err
	}
	if companyProfile != nil && p.CompanyID != companyProfile.ID {
		return nil, common.NewError(common.CodeForbidden, "proposal belongs to another company", nil)
	}
	if p.Status != proposal.StatusActive {
		return nil, common.NewError(common.CodeInvalidState, "proposal is not active", nil)
	}
	if _, err := s.repo.FindByProposalAndStudent(ctx, proposalID, studentID); err == nil {
		return nil, common.NewError(common.CodeConflict, "student already assigned to this proposal", nil)
	} else if !common.Is(err, common.CodeNotFound) {
		return nil, err
	}
	created, err := s.repo.Create(ctx, match.Match{
		ProposalID: proposalID,
		StudentID:  studentID,
		CompanyID:  p.CompanyID,
		Status:     match.StatusPending,
	})
	if err != nil {
		return nil, err
	}
	s.notifyStudent(ctx, *created, *studentProfile, *p)
	return created, nil
}

// ListByProposal returns the assignments of one proposal with student
// details. Owning company or privileged roles only.
func (s *MatchService) ListByProposal(ctx context.Context, actor Actor, proposalID common.UUID) ([]match.WithStudent, error) {
	p, err := s.proposals.GetByID(ctx, proposalID)
	if err != nil {
		return nil, err
	}
	if err := ensureCanManage(ctx, s.companies, actor, *p); err != nil {
		return nil, err
	}
	return s.repo.ListByProposal(ctx, proposalID)
}

// ListByStudent returns the caller's assignments with the full proposal and
// owning company attached.
func (s *MatchService) ListByStudent(ctx context.Context, actor Actor) ([]match.WithProposal, error) {
	studentProfile, err := s.students.GetByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByStudent(ctx, studentProfile.ID)
}

// Respond lets the assigned student accept or reject a pending assignment.
func (s *MatchService) Respond(ctx context.Context, actor Actor, matchID common.UUID, status match.Status) (*match.Match, error) {
	if actor.Role != user.RoleStudent {
		return nil, common.NewError(common.CodeForbidden, "insufficient role", nil)
	}
	if status != match.StatusAccepted && status != match.StatusRejected {
		return nil, common.NewValidationError("invalid status", map[string]string{"status": "status must be accepted or rejected"})
	}
	m, err := s.repo.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	studentProfile, err := s.students.GetByUserID(ctx, actor.UserID)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, common.NewError(common.CodeForbidden, "student profile is required", nil)
		}
		return nil, err
	}
	if m.StudentID != studentProfile.ID {
		return nil, common.NewError(common.CodeForbidden, "assignment belongs to another student", nil)
	}
	return s.repo.UpdateStatus(ctx, matchID, status)
}

func (s *MatchService) notifyStudent(ctx context.Context, m match.Match, studentProfile profile.StudentProfile, p proposal.Proposal) {
	if s.notifications == nil {
		return
	}
	proposalID := p.ID
	_, err := s.notifications.Create(ctx, notification.Notification{
		UserID:     studentProfile.UserID,
		ProposalID: &proposalID,
		Message:    "You were matched with the proposal \"" + p.Title + "\".",
		Category:   notification.CategoryMatch,
	})
	if err != nil {
		s.logger.Warn("match notification failed", "match_id", m.ID.String(), "error", err)
		return
	}
	if err := s.repo.MarkNotified(ctx, m.ID); err != nil {
		s.logger.Warn("mark notified failed", "match_id", m.ID.String(), "error", err)
	}
}
