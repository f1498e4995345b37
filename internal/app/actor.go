package app

import (
	"context"

	"propmatch/internal/common"
	"propmatch/internal/domain/profile"
	"propmatch/internal/domain/proposal"
	"propmatch/internal/domain/user"
)

// Actor is the authenticated caller as seen by the services. Services check
// capabilities against it before applying any transition, so authorization
// does not depend on the transport layer getting the routing right.
type Actor struct {
	UserID common.UUID
	Role   user.Role
}

// canModerate gates validate/reject, which are moderation operations.
func canModerate(actor Actor) bool {
	return actor.Role.Privileged()
}

// resolveManagedCompany returns the company profile an actor manages
// proposals through, or nil for privileged roles which manage any proposal.
func resolveManagedCompany(ctx context.Context, companies profile.CompanyRepository, actor Actor) (*profile.CompanyProfile, error) {
	if actor.Role.Privileged() {
		return nil, nil
	}
	if actor.Role != user.RoleCompany {
		return nil, common.NewError(common.CodeForbidden, "insufficient role", nil)
	}
	companyProfile, err := companies.GetByUserID(ctx, actor.UserID)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, common.NewError(common.CodeForbidden, "company profile is required", nil)
		}
		return nil, err
	}
	return companyProfile, nil
}

// ensureCanManage checks the edit/inactivate/reactivate/remove capability:
// privileged roles always, the owning company only for its own proposals.
func ensureCanManage(ctx context.Context, companies profile.CompanyRepository, actor Actor, p proposal.Proposal) error {
	companyProfile, err := resolveManagedCompany(ctx, companies, actor)
	if err != nil {
		return err
	}
	if companyProfile == nil {
		return nil
	}
	if companyProfile.ID != p.CompanyID {
		return common.NewError(common.CodeForbidden, "proposal belongs to another company", nil)
	}
	return nil
}
