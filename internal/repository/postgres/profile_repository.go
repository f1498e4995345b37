package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"propmatch/internal/common"
	"propmatch/internal/domain/profile"
)

type StudentProfileRepository struct {
	db *sql.DB
}

func NewStudentProfileRepository(db *sql.DB) *StudentProfileRepository {
	return &StudentProfileRepository{db: db}
}

const studentColumns = `id, user_id, course, year, age, interest_areas, technical_skills, soft_skills, cv_url, registered_at, deletion_requested`

func (r *StudentProfileRepository) Upsert(ctx context.Context, p profile.StudentProfile) (*profile.StudentProfile, error) {
	p.ID = common.NewUUID()
	p.RegisteredAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `INSERT INTO student_profiles (id, user_id, course, year, age, interest_areas, technical_skills, soft_skills, cv_url, registered_at, deletion_requested)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, false)
		ON CONFLICT (user_id) DO UPDATE SET course = EXCLUDED.course, year = EXCLUDED.year, age = EXCLUDED.age,
			interest_areas = EXCLUDED.interest_areas, technical_skills = EXCLUDED.technical_skills,
			soft_skills = EXCLUDED.soft_skills, cv_url = EXCLUDED.cv_url`,
		p.ID, p.UserID, p.Course, p.Year, p.Age, pq.Array(p.InterestAreas), pq.Array(p.TechnicalSkills), pq.Array(p.SoftSkills), p.CVURL, p.RegisteredAt)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to upsert student profile", err)
	}
	return r.GetByUserID(ctx, p.UserID)
}

func (r *StudentProfileRepository) GetByID(ctx context.Context, id common.UUID) (*profile.StudentProfile, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+studentColumns+` FROM student_profiles WHERE id = $1`, id)
	return scanStudentProfile(row)
}

func (r *StudentProfileRepository) GetByUserID(ctx context.Context, userID common.UUID) (*profile.StudentProfile, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+studentColumns+` FROM student_profiles WHERE user_id = $1`, userID)
	return scanStudentProfile(row)
}

func (r *StudentProfileRepository) List(ctx context.Context) ([]profile.StudentProfile, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+studentColumns+` FROM student_profiles ORDER BY registered_at DESC`)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list student profiles", err)
	}
	defer rows.Close()
	var items []profile.StudentProfile
	for rows.Next() {
		var p profile.StudentProfile
		if err := rows.Scan(&p.ID, &p.UserID, &p.Course, &p.Year, &p.Age, pq.Array(&p.InterestAreas), pq.Array(&p.TechnicalSkills), pq.Array(&p.SoftSkills), &p.CVURL, &p.RegisteredAt, &p.DeletionRequested); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan student profile", err)
		}
		items = append(items, p)
	}
	return items, nil
}

// RequestDeletion only succeeds the first time; the conditional write is
// what makes the once-only rule hold under concurrent requests.
func (r *StudentProfileRepository) RequestDeletion(ctx context.Context, userID common.UUID) error {
	result, err := r.db.ExecContext(ctx, `UPDATE student_profiles SET deletion_requested = true WHERE user_id = $1 AND deletion_requested = false`, userID)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to request deletion", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		if _, getErr := r.GetByUserID(ctx, userID); getErr != nil {
			return getErr
		}
		return common.NewError(common.CodeConflict, "deletion already requested", nil)
	}
	return nil
}

func (r *StudentProfileRepository) Delete(ctx context.Context, id common.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM student_profiles WHERE id = $1`, id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to delete student profile", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return common.NewError(common.CodeNotFound, "student profile not found", sql.ErrNoRows)
	}
	return nil
}

func scanStudentProfile(row *sql.Row) (*profile.StudentProfile, error) {
	var p profile.StudentProfile
	if err := row.Scan(&p.ID, &p.UserID, &p.Course, &p.Year, &p.Age, pq.Array(&p.InterestAreas), pq.Array(&p.TechnicalSkills), pq.Array(&p.SoftSkills), &p.CVURL, &p.RegisteredAt, &p.DeletionRequested); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "student profile not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load student profile", err)
	}
	return &p, nil
}

type CompanyProfileRepository struct {
	db *sql.DB
}

func NewCompanyProfileRepository(db *sql.DB) *CompanyProfileRepository {
	return &CompanyProfileRepository{db: db}
}

const companyColumns = `id, user_id, company_name, tax_id, website, address, contact_phone`

func (r *CompanyProfileRepository) Upsert(ctx context.Context, p profile.CompanyProfile) (*profile.CompanyProfile, error) {
	p.ID = common.NewUUID()
	_, err := r.db.ExecContext(ctx, `INSERT INTO company_profiles (id, user_id, company_name, tax_id, website, address, contact_phone)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id) DO UPDATE SET company_name = EXCLUDED.company_name, tax_id = EXCLUDED.tax_id,
			website = EXCLUDED.website, address = EXCLUDED.address, contact_phone = EXCLUDED.contact_phone`,
		p.ID, p.UserID, p.CompanyName, p.TaxID, p.Website, p.Address, p.ContactPhone)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to upsert company profile", err)
	}
	return r.GetByUserID(ctx, p.UserID)
}

func (r *CompanyProfileRepository) GetByID(ctx context.Context, id common.UUID) (*profile.CompanyProfile, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+companyColumns+` FROM company_profiles WHERE id = $1`, id)
	return scanCompanyProfile(row)
}

func (r *CompanyProfileRepository) GetByUserID(ctx context.Context, userID common.UUID) (*profile.CompanyProfile, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+companyColumns+` FROM company_profiles WHERE user_id = $1`, userID)
	return scanCompanyProfile(row)
}

func (r *CompanyProfileRepository) List(ctx context.Context) ([]profile.CompanyProfile, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+companyColumns+` FROM company_profiles ORDER BY company_name`)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list company profiles", err)
	}
	defer rows.Close()
	var items []profile.CompanyProfile
	for rows.Next() {
		var p profile.CompanyProfile
		if err := rows.Scan(&p.ID, &p.UserID, &p.CompanyName, &p.TaxID, &p.Website, &p.Address, &p.ContactPhone); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan company profile", err)
		}
		items = append(items, p)
	}
	return items, nil
}

func scanCompanyProfile(row *sql.Row) (*profile.CompanyProfile, error) {
	var p profile.CompanyProfile
	if err := row.Scan(&p.ID, &p.UserID, &p.CompanyName, &p.TaxID, &p.Website, &p.Address, &p.ContactPhone); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "company profile not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load company profile", err)
	}
	return &p, nil
}

type DepartmentProfileRepository struct {
	db *sql.DB
}

func NewDepartmentProfileRepository(db *sql.DB) *DepartmentProfileRepository {
	return &DepartmentProfileRepository{db: db}
}

func (r *DepartmentProfileRepository) Upsert(ctx context.Context, p profile.DepartmentProfile) (*profile.DepartmentProfile, error) {
	p.ID = common.NewUUID()
	_, err := r.db.ExecContext(ctx, `INSERT INTO department_profiles (id, user_id, department)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET department = EXCLUDED.department`,
		p.ID, p.UserID, p.Department)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to upsert department profile", err)
	}
	return r.GetByUserID(ctx, p.UserID)
}

func (r *DepartmentProfileRepository) GetByUserID(ctx context.Context, userID common.UUID) (*profile.DepartmentProfile, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, user_id, department FROM department_profiles WHERE user_id = $1`, userID)
	var p profile.DepartmentProfile
	if err := row.Scan(&p.ID, &p.UserID, &p.Department); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "department profile not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load department profile", err)
	}
	return &p, nil
}
