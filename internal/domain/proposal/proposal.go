package proposal

import (
	"time"

	"propmatch/internal/common"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusRemoved  Status = "removed"
)

type Type string

const (
	TypeJob        Type = "job"
	TypeInternship Type = "internship"
	TypeOther      Type = "other"
)

type Proposal struct {
	ID                  common.UUID  `json:"id"`
	CompanyID           common.UUID  `json:"company_id"`
	CreatedBy           common.UUID  `json:"created_by"`
	ValidatedBy         *common.UUID `json:"validated_by,omitempty"`
	Title               string       `json:"title"`
	Type                Type         `json:"type"`
	Description         string       `json:"description"`
	CandidateProfile    string       `json:"candidate_profile"`
	Location            string       `json:"location"`
	ApplicationDeadline time.Time    `json:"application_deadline"`
	ContractType        string       `json:"contract_type"`
	TechnicalSkills     []string     `json:"technical_skills"`
	SoftSkills          []string     `json:"soft_skills"`
	ContactName         string       `json:"contact_name"`
	ContactEmail        string       `json:"contact_email"`
	Status              Status       `json:"status"`
	SubmittedAt         time.Time    `json:"submitted_at"`
	ReactivatedAt       *time.Time   `json:"reactivated_at,omitempty"`
	UpdatedAt           time.Time    `json:"updated_at"`
}
