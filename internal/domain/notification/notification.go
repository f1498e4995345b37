package notification

import (
	"time"

	"propmatch/internal/common"
)

type Category string

const (
	CategoryInfo  Category = "info"
	CategoryAlert Category = "alert"
	CategoryMatch Category = "match"
)

type Notification struct {
	ID         common.UUID  `json:"id"`
	UserID     common.UUID  `json:"user_id"`
	ProposalID *common.UUID `json:"proposal_id,omitempty"`
	Message    string       `json:"message"`
	Category   Category     `json:"category"`
	SentAt     time.Time    `json:"sent_at"`
	Read       bool         `json:"read"`
}
