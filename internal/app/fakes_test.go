package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"propmatch/internal/common"
	"propmatch/internal/domain/match"
	"propmatch/internal/domain/notification"
	"propmatch/internal/domain/profile"
	"propmatch/internal/domain/proposal"
	"propmatch/internal/domain/user"
)

type fakeUserRepo struct {
	mu   sync.Mutex
	byID map[common.UUID]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[common.UUID]*user.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, u user.User) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.InstitutionalEmail == u.InstitutionalEmail {
			return nil, common.NewError(common.CodeConflict, "institutional email already registered", nil)
		}
	}
	u.ID = common.NewUUID()
	u.CreatedAt = time.Now().UTC()
	stored := u
	r.byID[u.ID] = &stored
	return cloneUser(&stored), nil
}

func (r *fakeUserRepo) Update(ctx context.Context, u user.User) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[u.ID]; !ok {
		return nil, common.NewError(common.CodeNotFound, "user not found", nil)
	}
	stored := u
	r.byID[u.ID] = &stored
	return cloneUser(&stored), nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id common.UUID) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account := r.byID[id]
	if account == nil {
		return nil, common.NewError(common.CodeNotFound, "user not found", nil)
	}
	return cloneUser(account), nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, account := range r.byID {
		if account.InstitutionalEmail == email || (account.PersonalEmail != "" && account.PersonalEmail == email) {
			return cloneUser(account), nil
		}
	}
	return nil, common.NewError(common.CodeNotFound, "user not found", nil)
}

func (r *fakeUserRepo) List(ctx context.Context) ([]user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []user.User
	for _, account := range r.byID {
		items = append(items, *cloneUser(account))
	}
	return items, nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return common.NewError(common.CodeNotFound, "user not found", nil)
	}
	delete(r.byID, id)
	return nil
}

func cloneUser(account *user.User) *user.User {
	copy := *account
	return &copy
}

type fakeStudentRepo struct {
	mu   sync.Mutex
	byID map[common.UUID]*profile.StudentProfile
}

func newFakeStudentRepo() *fakeStudentRepo {
	return &fakeStudentRepo{byID: make(map[common.UUID]*profile.StudentProfile)}
}

func (r *fakeStudentRepo) add(userID common.UUID) *profile.StudentProfile {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := &profile.StudentProfile{ID: common.NewUUID(), UserID: userID, Course: "course", RegisteredAt: time.Now().UTC()}
	r.byID[p.ID] = p
	return p
}

func (r *fakeStudentRepo) Upsert(ctx context.Context, p profile.StudentProfile) (*profile.StudentProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.UserID == p.UserID {
			p.ID = existing.ID
			p.RegisteredAt = existing.RegisteredAt
			p.DeletionRequested = existing.DeletionRequested
			stored := p
			r.byID[p.ID] = &stored
			return cloneStudent(&stored), nil
		}
	}
	p.ID = common.NewUUID()
	p.RegisteredAt = time.Now().UTC()
	stored := p
	r.byID[p.ID] = &stored
	return cloneStudent(&stored), nil
}

func (r *fakeStudentRepo) GetByID(ctx context.Context, id common.UUID) (*profile.StudentProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.byID[id]
	if p == nil {
		return nil, common.NewError(common.CodeNotFound, "student profile not found", nil)
	}
	return cloneStudent(p), nil
}

func (r *fakeStudentRepo) GetByUserID(ctx context.Context, userID common.UUID) (*profile.StudentProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.byID {
		if p.UserID == userID {
			return cloneStudent(p), nil
		}
	}
	return nil, common.NewError(common.CodeNotFound, "student profile not found", nil)
}

func (r *fakeStudentRepo) List(ctx context.Context) ([]profile.StudentProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []profile.StudentProfile
	for _, p := range r.byID {
		items = append(items, *cloneStudent(p))
	}
	return items, nil
}

func (r *fakeStudentRepo) RequestDeletion(ctx context.Context, userID common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.byID {
		if p.UserID == userID {
			if p.DeletionRequested {
				return common.NewError(common.CodeConflict, "deletion already requested", nil)
			}
			p.DeletionRequested = true
			return nil
		}
	}
	return common.NewError(common.CodeNotFound, "student profile not found", nil)
}

func (r *fakeStudentRepo) Delete(ctx context.Context, id common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return common.NewError(common.CodeNotFound, "student profile not found", nil)
	}
	delete(r.byID, id)
	return nil
}

func cloneStudent(p *profile.StudentProfile) *profile.StudentProfile {
	copy := *p
	copy.InterestAreas = append([]string(nil), p.InterestAreas...)
	copy.TechnicalSkills = append([]string(nil), p.TechnicalSkills...)
	copy.SoftSkills = append([]string(nil), p.SoftSkills...)
	return &copy
}

type fakeCompanyRepo struct {
	mu   sync.Mutex
	byID map[common.UUID]*profile.CompanyProfile
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{byID: make(map[common.UUID]*profile.CompanyProfile)}
}

func (r *fakeCompanyRepo) add(userID common.UUID) *profile.CompanyProfile {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := &profile.CompanyProfile{ID: common.NewUUID(), UserID: userID, CompanyName: "company", TaxID: "tax"}
	r.byID[p.ID] = p
	return p
}

func (r *fakeCompanyRepo) Upsert(ctx context.Context, p profile.CompanyProfile) (*profile.CompanyProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.UserID == p.UserID {
			p.ID = existing.ID
			stored := p
			r.byID[p.ID] = &stored
			copy := stored
			return &copy, nil
		}
	}
	p.ID = common.NewUUID()
	stored := p
	r.byID[p.ID] = &stored
	copy := stored
	return &copy, nil
}

func (r *fakeCompanyRepo) GetByID(ctx context.Context, id common.UUID) (*profile.CompanyProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.byID[id]
	if p == nil {
		return nil, common.NewError(common.CodeNotFound, "company profile not found", nil)
	}
	copy := *p
	return &copy, nil
}

func (r *fakeCompanyRepo) GetByUserID(ctx context.Context, userID common.UUID) (*profile.CompanyProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.byID {
		if p.UserID == userID {
			copy := *p
			return &copy, nil
		}
	}
	return nil, common.NewError(common.CodeNotFound, "company profile not found", nil)
}

func (r *fakeCompanyRepo) List(ctx context.Context) ([]profile.CompanyProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []profile.CompanyProfile
	for _, p := range r.byID {
		items = append(items, *p)
	}
	return items, nil
}

type fakeProposalRepo struct {
	mu   sync.Mutex
	byID map[common.UUID]*proposal.Proposal
}

func newFakeProposalRepo() *fakeProposalRepo {
	return &fakeProposalRepo{byID: make(map[common.UUID]*proposal.Proposal)}
}

func (r *fakeProposalRepo) Create(ctx context.Context, p proposal.Proposal) (*proposal.Proposal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = common.NewUUID()
	now := time.Now().UTC()
	p.SubmittedAt = now
	p.UpdatedAt = now
	stored := p
	r.byID[p.ID] = &stored
	return cloneProposal(&stored), nil
}

func (r *fakeProposalRepo) Update(ctx context.Context, p proposal.Proposal) (*proposal.Proposal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	current := r.byID[p.ID]
	if current == nil {
		return nil, common.NewError(common.CodeNotFound, "proposal not found", nil)
	}
	if current.Status == proposal.StatusRemoved {
		return nil, common.NewError(common.CodeInvalidState, "removed proposals cannot be edited", nil)
	}
	current.Title = p.Title
	current.Type = p.Type
	current.Description = p.Description
	current.CandidateProfile = p.CandidateProfile
	current.Location = p.Location
	current.ApplicationDeadline = p.ApplicationDeadline
	current.ContractType = p.ContractType
	current.TechnicalSkills = append([]string(nil), p.TechnicalSkills...)
	current.SoftSkills = append([]string(nil), p.SoftSkills...)
	current.ContactName = p.ContactName
	current.ContactEmail = p.ContactEmail
	current.UpdatedAt = time.Now().UTC()
	return cloneProposal(current), nil
}

func (r *fakeProposalRepo) GetByID(ctx context.Context, id common.UUID) (*proposal.Proposal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.byID[id]
	if p == nil {
		return nil, common.NewError(common.CodeNotFound, "proposal not found", nil)
	}
	return cloneProposal(p), nil
}

func (r *fakeProposalRepo) List(ctx context.Context, f proposal.Filter) ([]proposal.Proposal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []proposal.Proposal
	for _, p := range r.byID {
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		if !f.CompanyID.IsZero() && p.CompanyID != f.CompanyID {
			continue
		}
		items = append(items, *cloneProposal(p))
	}
	return items, nil
}

func (r *fakeProposalRepo) TransitionStatus(ctx context.Context, id common.UUID, to proposal.Status, from ...proposal.Status) (*proposal.Proposal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.byID[id]
	if p == nil {
		return nil, common.NewError(common.CodeNotFound, "proposal not found", nil)
	}
	for _, source := range from {
		if p.Status == source {
			p.Status = to
			p.UpdatedAt = time.Now().UTC()
			return cloneProposal(p), nil
		}
	}
	return nil, common.NewError(common.CodeInvalidState, fmt.Sprintf("proposal status is %s", p.Status), nil)
}

func (r *fakeProposalRepo) MarkValidated(ctx context.Context, id, validatorID common.UUID) (*proposal.Proposal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.byID[id]
	if p == nil {
		return nil, common.NewError(common.CodeNotFound, "proposal not found", nil)
	}
	if p.Status != proposal.StatusPending {
		return nil, common.NewError(common.CodeInvalidState, fmt.Sprintf("proposal status is %s", p.Status), nil)
	}
	p.Status = proposal.StatusActive
	p.ValidatedBy = &validatorID
	p.UpdatedAt = time.Now().UTC()
	return cloneProposal(p), nil
}

func (r *fakeProposalRepo) MarkReactivated(ctx context.Context, id common.UUID) (*proposal.Proposal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.byID[id]
	if p == nil {
		return nil, common.NewError(common.CodeNotFound, "proposal not found", nil)
	}
	if p.Status != proposal.StatusInactive {
		return nil, common.NewError(common.CodeInvalidState, fmt.Sprintf("proposal status is %s", p.Status), nil)
	}
	now := time.Now().UTC()
	p.Status = proposal.StatusActive
	p.ReactivatedAt = &now
	p.UpdatedAt = now
	return cloneProposal(p), nil
}

func (r *fakeProposalRepo) Delete(ctx context.Context, id common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return common.NewError(common.CodeNotFound, "proposal not found", nil)
	}
	delete(r.byID, id)
	return nil
}

func cloneProposal(p *proposal.Proposal) *proposal.Proposal {
	copy := *p
	copy.TechnicalSkills = append([]string(nil), p.TechnicalSkills...)
	copy.SoftSkills = append([]string(nil), p.SoftSkills...)
	if p.ValidatedBy != nil {
		id := *p.ValidatedBy
		copy.ValidatedBy = &id
	}
	if p.ReactivatedAt != nil {
		at := *p.ReactivatedAt
		copy.ReactivatedAt = &at
	}
	return &copy
}

type fakeMatchRepo struct {
	mu   sync.Mutex
	byID map[common.UUID]*match.Match
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{byID: make(map[common.UUID]*match.Match)}
}

func (r *fakeMatchRepo) Create(ctx context.Context, m match.Match) (*match.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.ProposalID == m.ProposalID && existing.StudentID == m.StudentID {
			return nil, common.NewError(common.CodeConflict, "student already assigned to this proposal", nil)
		}
	}
	m.ID = common.NewUUID()
	now := time.Now().UTC()
	m.AssignedAt = now
	m.UpdatedAt = now
	stored := m
	r.byID[m.ID] = &stored
	copy := stored
	return &copy, nil
}

func (r *fakeMatchRepo) GetByID(ctx context.Context, id common.UUID) (*match.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m := r.byID[id]
	if m == nil {
		return nil, common.NewError(common.CodeNotFound, "assignment not found", nil)
	}
	copy := *m
	return &copy, nil
}

func (r *fakeMatchRepo) FindByProposalAndStudent(ctx context.Context, proposalID, studentID common.UUID) (*match.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.byID {
		if m.ProposalID == proposalID && m.StudentID == studentID {
			copy := *m
			return &copy, nil
		}
	}
	return nil, common.NewError(common.CodeNotFound, "assignment not found", nil)
}

func (r *fakeMatchRepo) ListByProposal(ctx context.Context, proposalID common.UUID) ([]match.WithStudent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []match.WithStudent
	for _, m := range r.byID {
		if m.ProposalID == proposalID {
			items = append(items, match.WithStudent{Match: *m})
		}
	}
	return items, nil
}

func (r *fakeMatchRepo) ListByStudent(ctx context.Context, studentID common.UUID) ([]match.WithProposal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []match.WithProposal
	for _, m := range r.byID {
		if m.StudentID == studentID {
			items = append(items, match.WithProposal{Match: *m})
		}
	}
	return items, nil
}

func (r *fakeMatchRepo) UpdateStatus(ctx context.Context, id common.UUID, to match.Status) (*match.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m := r.byID[id]
	if m == nil {
		return nil, common.NewError(common.CodeNotFound, "assignment not found", nil)
	}
	if m.Status != match.StatusPending {
		return nil, common.NewError(common.CodeInvalidState, fmt.Sprintf("assignment status is %s", m.Status), nil)
	}
	m.Status = to
	m.UpdatedAt = time.Now().UTC()
	copy := *m
	return &copy, nil
}

func (r *fakeMatchRepo) MarkNotified(ctx context.Context, id common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m := r.byID[id]
	if m == nil {
		return common.NewError(common.CodeNotFound, "assignment not found", nil)
	}
	m.Notified = true
	return nil
}

type fakeNotificationRepo struct {
	mu   sync.Mutex
	byID map[common.UUID]*notification.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{byID: make(map[common.UUID]*notification.Notification)}
}

func (r *fakeNotificationRepo) Create(ctx context.Context, n notification.Notification) (*notification.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n.ID = common.NewUUID()
	n.SentAt = time.Now().UTC()
	stored := n
	r.byID[n.ID] = &stored
	copy := stored
	return &copy, nil
}

func (r *fakeNotificationRepo) ListByUser(ctx context.Context, userID common.UUID) ([]notification.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []notification.Notification
	for _, n := range r.byID {
		if n.UserID == userID {
			items = append(items, *n)
		}
	}
	return items, nil
}

func (r *fakeNotificationRepo) GetByID(ctx context.Context, id common.UUID) (*notification.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := r.byID[id]
	if n == nil {
		return nil, common.NewError(common.CodeNotFound, "notification not found", nil)
	}
	copy := *n
	return &copy, nil
}

func (r *fakeNotificationRepo) MarkRead(ctx context.Context, id common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := r.byID[id]
	if n == nil {
		return common.NewError(common.CodeNotFound, "notification not found", nil)
	}
	n.Read = true
	return nil
}

func (r *fakeNotificationRepo) Delete(ctx context.Context, id common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return common.NewError(common.CodeNotFound, "notification not found", nil)
	}
	delete(r.byID, id)
	return nil
}

func (r *fakeNotificationRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}
