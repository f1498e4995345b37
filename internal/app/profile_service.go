package app

import (
	"context"

	"propmatch/internal/common"
	"propmatch/internal/domain/profile"
	"propmatch/internal/domain/user"
)

type ProfileService struct {
	students    profile.StudentRepository
	companies   profile.CompanyRepository
	departments profile.DepartmentRepository
}

func NewProfileService(students profile.StudentRepository, companies profile.CompanyRepository, departments profile.DepartmentRepository) *ProfileService {
	return &ProfileService{students: students, companies: companies, departments: departments}
}

func (s *ProfileService) UpsertStudent(ctx context.Context, actor Actor, p profile.StudentProfile) (*profile.StudentProfile, error) {
	if p.Course == "" {
		return nil, common.NewValidationError("invalid profile", map[string]string{"course": "course is required"})
	}
	p.UserID = actor.UserID
	return s.students.Upsert(ctx, p)
}

func (s *ProfileService) GetStudent(ctx context.Context, actor Actor) (*profile.StudentProfile, error) {
	return s.students.GetByUserID(ctx, actor.UserID)
}

func (s *ProfileService) ListStudents(ctx context.Context, actor Actor) ([]profile.StudentProfile, error) {
	if !actor.Role.Privileged() && actor.Role != user.RoleCompany {
		return nil, common.NewError(common.CodeForbidden, "insufficient role", nil)
	}
	return s.students.List(ctx)
}

// RequestStudentDeletion starts the two-phase deletion: the student flags the
// profile once, an administrator or manager deletes it later.
func (s *ProfileService) RequestStudentDeletion(ctx context.Context, actor Actor) error {
	if actor.Role != user.RoleStudent {
		return common.NewError(common.CodeForbidden, "insufficient role", nil)
	}
	return s.students.RequestDeletion(ctx, actor.UserID)
}

// DeleteStudent is the second phase, reserved for privileged roles.
func (s *ProfileService) DeleteStudent(ctx context.Context, actor Actor, id common.UUID) error {
	if !actor.Role.Privileged() {
		return common.NewError(common.CodeForbidden, "insufficient role", nil)
	}
	if _, err := s.students.GetByID(ctx, id); err != nil {
		return err
	}
	return s.students.Delete(ctx, id)
}

func (s *ProfileService) UpsertCompany(ctx context.Context, actor Actor, p profile.CompanyProfile) (*profile.CompanyProfile, error) {
	fields := map[string]string{}
	if p.CompanyName == "" {
		fields["company_name"] = "company_name is required"
	}
	if p.TaxID == "" {
		fields["tax_id"] = "tax_id is required"
	}
	if len(fields) > 0 {
		return nil, common.NewValidationError("invalid profile", fields)
	}
	p.UserID = actor.UserID
	return s.companies.Upsert(ctx, p)
}

func (s *ProfileService) GetCompany(ctx context.Context, actor Actor) (*profile.CompanyProfile, error) {
	return s.companies.GetByUserID(ctx, actor.UserID)
}

func (s *ProfileService) ListCompanies(ctx context.Context) ([]profile.CompanyProfile, error) {
	return s.companies.List(ctx)
}

func (s *ProfileService) UpsertDepartment(ctx context.Context, actor Actor, p profile.DepartmentProfile) (*profile.DepartmentProfile, error) {
	if p.Department == "" {
		return nil, common.NewValidationError("invalid profile", map[string]string{"department": "department is required"})
	}
	p.UserID = actor.UserID
	return s.departments.Upsert(ctx, p)
}

func (s *ProfileService) GetDepartment(ctx context.Context, actor Actor) (*profile.DepartmentProfile, error) {
	return s.departments.GetByUserID(ctx, actor.UserID)
}

// GetForUser resolves the profile union for a user instead of probing three
// optional rows at every call site.
func (s *ProfileService) GetForUser(ctx context.Context, userID common.UUID, role user.Role) (*profile.Profile, error) {
	switch role {
	case user.RoleStudent:
		p, err := s.students.GetByUserID(ctx, userID)
		if err != nil {
			if common.Is(err, common.CodeNotFound) {
				return &profile.Profile{Kind: profile.KindNone}, nil
			}
			return nil, err
		}
		return &profile.Profile{Kind: profile.KindStudent, Student: p}, nil
	case user.RoleCompany:
		p, err := s.companies.GetByUserID(ctx, userID)
		if err != nil {
			if common.Is(err, common.CodeNotFound) {
				return &profile.Profile{Kind: profile.KindNone}, nil
			}
			return nil, err
		}
		return &profile.Profile{Kind: profile.KindCompany, Company: p}, nil
	case user.RoleManager:
		p, err := s.departments.GetByUserID(ctx, userID)
		if err != nil {
			if common.Is(err, common.CodeNotFound) {
				return &profile.Profile{Kind: profile.KindNone}, nil
			}
			return nil, err
		}
		return &profile.Profile{Kind: profile.KindDepartment, Department: p}, nil
	default:
		return &profile.Profile{Kind: profile.KindNone}, nil
	}
}
