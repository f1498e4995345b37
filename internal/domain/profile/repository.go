package profile

import (
	"context"

	"propmatch/internal/common"
)

type StudentRepository interface {
	Upsert(ctx context.Context, p StudentProfile) (*StudentProfile, error)
	GetByID(ctx context.Context, id common.UUID) (*StudentProfile, error)
	GetByUserID(ctx context.Context, userID common.UUID) (*StudentProfile, error)
	List(ctx context.Context) ([]StudentProfile, error)
	// RequestDeletion flips the deletion flag; it reports a conflict when
	// the flag is already set.
	RequestDeletion(ctx context.Context, userID common.UUID) error
	Delete(ctx context.Context, id common.UUID) error
}

type CompanyRepository interface {
	Upsert(ctx context.Context, p CompanyProfile) (*CompanyProfile, error)
	GetByID(ctx context.Context, id common.UUID) (*CompanyProfile, error)
	GetByUserID(ctx context.Context, userID common.UUID) (*CompanyProfile, error)
	List(ctx context.Context) ([]CompanyProfile, error)
}

type DepartmentRepository interface {
	Upsert(ctx context.Context, p DepartmentProfile) (*DepartmentProfile, error)
	GetByUserID(ctx context.Context, userID common.UUID) (*DepartmentProfile, error)
}
