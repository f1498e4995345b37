package app

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"propmatch/internal/common"
	"propmatch/internal/domain/proposal"
	"propmatch/internal/domain/user"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func validProposal() proposal.Proposal {
	return proposal.Proposal{
		Title:               "Backend internship",
		Type:                proposal.TypeInternship,
		Description:         "Build APIs",
		ApplicationDeadline: time.Now().Add(30 * 24 * time.Hour).UTC(),
	}
}

func newProposalFixture() (*ProposalService, *fakeProposalRepo, *fakeCompanyRepo, *fakeNotificationRepo) {
	repo := newFakeProposalRepo()
	companies := newFakeCompanyRepo()
	notifications := newFakeNotificationRepo()
	service := NewProposalService(repo, companies, notifications, testLogger())
	return service, repo, companies, notifications
}

func TestProposalCreate_CompanyStartsPending(t *testing.T) {
	service, _, companies, _ := newProposalFixture()
	companyUser := common.NewUUID()
	companyProfile := companies.add(companyUser)

	created, err := service.Create(context.Background(), Actor{UserID: companyUser, Role: user.RoleCompany}, validProposal())
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if created.Status != proposal.StatusPending {
		t.Fatalf("expected pending, got %s", created.Status)
	}
	if created.CompanyID != companyProfile.ID {
		t.Fatal("expected proposal to belong to the actor's company")
	}
	if created.ValidatedBy != nil {
		t.Fatal("expected validated_by to be empty on submission")
	}
}

func TestProposalCreate_PrivilegedStartsActive(t *testing.T) {
	service, _, companies, _ := newProposalFixture()
	companyProfile := companies.add(common.NewUUID())

	p := validProposal()
	p.CompanyID = companyProfile.ID
	created, err := service.Create(context.Background(), Actor{UserID: common.NewUUID(), Role: user.RoleManager}, p)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if created.Status != proposal.StatusActive {
		t.Fatalf("expected active, got %s", created.Status)
	}
}

func TestProposalCreate_PrivilegedRequiresCompanyID(t *testing.T) {
	service, _, _, _ := newProposalFixture()

	_, err := service.Create(context.Background(), Actor{UserID: common.NewUUID(), Role: user.RoleAdministrator}, validProposal())
	if !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestProposalCreate_StudentForbidden(t *testing.T) {
	service, _, _, _ := newProposalFixture()

	_, err := service.Create(context.Background(), Actor{UserID: common.NewUUID(), Role: user.RoleStudent}, validProposal())
	if !common.Is(err, common.CodeForbidden) {
		t.Fatalf("expected forbidden error, got %v", err)
	}
}

func TestProposalCreate_MissingFields(t *testing.T) {
	service, _, companies, _ := newProposalFixture()
	companyUser := common.NewUUID()
	companies.add(companyUser)

	_, err := service.Create(context.Background(), Actor{UserID: companyUser, Role: user.RoleCompany}, proposal.Proposal{Type: "contract"})
	if !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestProposalValidate_SetsValidator(t *testing.T) {
	service, _, companies, notifications := newProposalFixture()
	companyUser := common.NewUUID()
	companies.add(companyUser)
	created, err := service.Create(context.Background(), Actor{UserID: companyUser, Role: user.RoleCompany}, validProposal())
	if err != nil {
		t.Fatalf("expected proposal created, got %v", err)
	}

	manager := common.NewUUID()
	validated, err := service.Validate(context.Background(), Actor{UserID: manager, Role: user.RoleManager}, created.ID)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if validated.Status != proposal.StatusActive {
		t.Fatalf("expected active, got %s", validated.Status)
	}
	if validated.ValidatedBy == nil || *validated.ValidatedBy != manager {
		t.Fatal("expected validated_by to record the validator")
	}
	if notifications.count() != 1 {
		t.Fatalf("expected creator notification, got %d", notifications.count())
	}
}

func TestProposalValidate_CompanyForbidden(t *testing.T) {
	service, _, companies, _ := newProposalFixture()
	companyUser := common.NewUUID()
	companies.add(companyUser)
	created, _ := service.Create(context.Background(), Actor{UserID: companyUser, Role: user.RoleCompany}, validProposal())

	_, err := service.Validate(context.Background(), Actor{UserID: companyUser, Role: user.RoleCompany}, created.ID)
	if !common.Is(err, common.CodeForbidden) {
		t.Fatalf("expected forbidden error, got %v", err)
	}
}

func TestProposalValidate_ActiveIsInvalidState(t *testing.T) {
	service, _, companies, _ := newProposalFixture()
	companyUser := common.NewUUID()
	companies.add(companyUser)
	created, _ := service.Create(context.Background(), Actor{UserID: companyUser, Role: user.RoleCompany}, validProposal())
	admin := Actor{UserID: common.NewUUID(), Role: user.RoleAdministrator}
	if _, err := service.Validate(context.Background(), admin, created.ID); err != nil {
		t.Fatalf("expected first validation to pass, got %v", err)
	}

	_, err := service.Validate(context.Background(), admin, created.ID)
	if !common.Is(err, common.CodeInvalidState) {
		t.Fatalf("expected invalid_state error, got %v", err)
	}
}

func TestProposalReject_FromPendingAndActive(t *testing.T) {
	service, _, companies, _ := newProposalFixture()
	companyUser := common.NewUUID()
	companies.add(companyUser)
	admin := Actor{UserID: common.NewUUID(), Role: user.RoleAdministrator}
	companyActor := Actor{UserID: companyUser, Role: user.RoleCompany}

	pending, _ := service.Create(context.Background(), companyActor, validProposal())
	rejected, err := service.Reject(context.Background(), admin, pending.ID)
	if err != nil {
		t.Fatalf("expected pending proposal to be rejectable, got %v", err)
	}
	if rejected.Status != proposal.StatusInactive {
		t.Fatalf("expected inactive, got %s", rejected.Status)
	}

	second, _ := service.Create(context.Background(), companyActor, validProposal())
	if _, err := service.Validate(context.Background(), admin, second.ID); err != nil {
		t.Fatalf("expected validation to pass, got %v", err)
	}
	rejected, err = service.Reject(context.Background(), admin, second.ID)
	if err != nil {
		t.Fatalf("expected active proposal to be rejectable, got %v", err)
	}
	if rejected.Status != proposal.StatusInactive {
		t.Fatalf("expected inactive, got %s", rejected.Status)
	}

	if _, err := service.Reject(context.Background(), admin, second.ID); !common.Is(err, common.CodeInvalidState) {
		t.Fatalf("expected invalid_state on inactive proposal, got %v", err)
	}
}

func TestProposalLifecycle_InactivateThenReactivate(t *testing.T) {
	service, _, companies, _ := newProposalFixture()
	companyUser := common.NewUUID()
	companies.add(companyUser)
	companyActor := Actor{UserID: companyUser, Role: user.RoleCompany}
	admin := Actor{UserID: common.NewUUID(), Role: user.RoleAdministrator}

	created, _ := service.Create(context.Background(), companyActor, validProposal())

	if _, err := service.Inactivate(context.Background(), companyActor, created.ID); !common.Is(err, common.CodeInvalidState) {
		t.Fatalf("expected pending proposal not to be inactivatable, got %v", err)
	}
	if _, err := service.Reactivate(context.Background(), companyActor, created.ID); !common.Is(err, common.CodeInvalidState) {
		t.Fatalf("expected pending proposal not to be reactivatable, got %v", err)
	}

	if _, err := service.Validate(context.Background(), admin, created.ID); err != nil {
		t.Fatalf("expected validation to pass, got %v", err)
	}
	inactive, err := service.Inactivate(context.Background(), companyActor, created.ID)
	if err != nil {
		t.Fatalf("expected inactivation to pass, got %v", err)
	}
	if inactive.Status != proposal.StatusInactive {
		t.Fatalf("expected inactive, got %s", inactive.Status)
	}

	reactivated, err := service.Reactivate(context.Background(), companyActor, created.ID)
	if err != nil {
		t.Fatalf("expected reactivation to pass, got %v", err)
	}
	if reactivated.Status != proposal.StatusActive {
		t.Fatalf("expected active, got %s", reactivated.Status)
	}
	if reactivated.ReactivatedAt == nil {
		t.Fatal("expected reactivated_at to be stamped")
	}
}

func TestProposalUpdate_PreservesCompanyAndStatus(t *testing.T) {
	service, _, companies, _ := newProposalFixture()
	companyUser := common.NewUUID()
	companyProfile := companies.add(companyUser)
	companyActor := Actor{UserID: companyUser, Role: user.RoleCompany}

	created, _ := service.Create(context.Background(), companyActor, validProposal())

	edit := validProposal()
	edit.ID = created.ID
	edit.Title = "Updated title"
	edit.CompanyID = common.NewUUID()
	edit.Status = proposal.StatusActive
	updated, err := service.Update(context.Background(), companyActor, edit)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if updated.Title != "Updated title" {
		t.Fatalf("expected title to change, got %q", updated.Title)
	}
	if updated.CompanyID != companyProfile.ID {
		t.Fatal("expected company_id to be immutable")
	}
	if updated.Status != proposal.StatusPending {
		t.Fatalf("expected status to be immutable, got %s", updated.Status)
	}
}

func TestProposalUpdate_OtherCompanyForbidden(t *testing.T) {
	service, _, companies, _ := newProposalFixture()
	ownerUser := common.NewUUID()
	companies.add(ownerUser)
	otherUser := common.NewUUID()
	companies.add(otherUser)

	created, _ := service.Create(context.Background(), Actor{UserID: ownerUser, Role: user.RoleCompany}, validProposal())

	edit := validProposal()
	edit.ID = created.ID
	_, err := service.Update(context.Background(), Actor{UserID: otherUser, Role: user.RoleCompany}, edit)
	if !common.Is(err, common.CodeForbidden) {
		t.Fatalf("expected forbidden error, got %v", err)
	}
}

func TestProposalRemove_DeletesRow(t *testing.T) {
	service, repo, companies, _ := newProposalFixture()
	companyUser := common.NewUUID()
	companies.add(companyUser)
	companyActor := Actor{UserID: companyUser, Role: user.RoleCompany}

	created, _ := service.Create(context.Background(), companyActor, validProposal())
	if err := service.Remove(context.Background(), companyActor, created.ID); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if _, err := repo.GetByID(context.Background(), created.ID); !common.Is(err, common.CodeNotFound) {
		t.Fatalf("expected proposal to be gone, got %v", err)
	}
	if err := service.Remove(context.Background(), companyActor, created.ID); !common.Is(err, common.CodeNotFound) {
		t.Fatalf("expected not_found on second remove, got %v", err)
	}
}

func TestProposalGet_StudentOnlySeesActive(t *testing.T) {
	service, _, companies, _ := newProposalFixture()
	companyUser := common.NewUUID()
	companies.add(companyUser)
	student := Actor{UserID: common.NewUUID(), Role: user.RoleStudent}
	admin := Actor{UserID: common.NewUUID(), Role: user.RoleAdministrator}

	created, _ := service.Create(context.Background(), Actor{UserID: companyUser, Role: user.RoleCompany}, validProposal())
	if _, err := service.Get(context.Background(), student, created.ID); !common.Is(err, common.CodeNotFound) {
		t.Fatalf("expected pending proposal hidden from students, got %v", err)
	}
	if _, err := service.Validate(context.Background(), admin, created.ID); err != nil {
		t.Fatalf("expected validation to pass, got %v", err)
	}
	if _, err := service.Get(context.Background(), student, created.ID); err != nil {
		t.Fatalf("expected active proposal visible to students, got %v", err)
	}
}

func TestProposalList_ScopedByRole(t *testing.T) {
	service, _, companies, _ := newProposalFixture()
	ownerUser := common.NewUUID()
	companies.add(ownerUser)
	otherUser := common.NewUUID()
	companies.add(otherUser)
	admin := Actor{UserID: common.NewUUID(), Role: user.RoleAdministrator}

	first, _ := service.Create(context.Background(), Actor{UserID: ownerUser, Role: user.RoleCompany}, validProposal())
	if _, err := service.Create(context.Background(), Actor{UserID: otherUser, Role: user.RoleCompany}, validProposal()); err != nil {
		t.Fatalf("expected second proposal created, got %v", err)
	}
	if _, err := service.Validate(context.Background(), admin, first.ID); err != nil {
		t.Fatalf("expected validation to pass, got %v", err)
	}

	ownProposals, err := service.List(context.Background(), Actor{UserID: ownerUser, Role: user.RoleCompany}, proposal.Filter{})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(ownProposals) != 1 {
		t.Fatalf("expected companies to see only their proposals, got %d", len(ownProposals))
	}

	studentView, err := service.List(context.Background(), Actor{UserID: common.NewUUID(), Role: user.RoleStudent}, proposal.Filter{Status: proposal.StatusPending})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	for _, p := range studentView {
		if p.Status != proposal.StatusActive {
			t.Fatalf("expected students to see active proposals only, got %s", p.Status)
		}
	}
	if len(studentView) != 1 {
		t.Fatalf("expected one active proposal, got %d", len(studentView))
	}

	all, err := service.List(context.Background(), admin, proposal.Filter{})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected privileged roles to see everything, got %d", len(all))
	}
}
