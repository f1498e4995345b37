package profile

import (
	"time"

	"propmatch/internal/common"
)

type StudentProfile struct {
	ID                common.UUID `json:"id"`
	UserID            common.UUID `json:"user_id"`
	Course            string      `json:"course"`
	Year              string      `json:"year"`
	Age               int         `json:"age"`
	InterestAreas     []string    `json:"interest_areas"`
	TechnicalSkills   []string    `json:"technical_skills"`
	SoftSkills        []string    `json:"soft_skills"`
	CVURL             string      `json:"cv_url,omitempty"`
	RegisteredAt      time.Time   `json:"registered_at"`
	DeletionRequested bool        `json:"deletion_requested"`
}

type CompanyProfile struct {
	ID           common.UUID `json:"id"`
	UserID       common.UUID `json:"user_id"`
	CompanyName  string      `json:"company_name"`
	TaxID        string      `json:"tax_id"`
	Website      string      `json:"website,omitempty"`
	Address      string      `json:"address,omitempty"`
	ContactPhone string      `json:"contact_phone,omitempty"`
}

type DepartmentProfile struct {
	ID         common.UUID `json:"id"`
	UserID     common.UUID `json:"user_id"`
	Department string      `json:"department"`
}

type Kind string

const (
	KindStudent    Kind = "student"
	KindCompany    Kind = "company"
	KindDepartment Kind = "department"
	KindNone       Kind = "none"
)

// Profile is the tagged union of the three per-role profile extensions.
// Exactly one of the pointers is set when Kind is not KindNone.
type Profile struct {
	Kind       Kind               `json:"kind"`
	Student    *StudentProfile    `json:"student,omitempty"`
	Company    *CompanyProfile    `json:"company,omitempty"`
	Department *DepartmentProfile `json:"department,omitempty"`
}
