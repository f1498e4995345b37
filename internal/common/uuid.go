package common

import (
	"strings"

	"github.com/google/uuid"
)

// UUID is the id type used by every entity. Stored as text in postgres.
type UUID string

func NewUUID() UUID {
	return UUID(uuid.NewString())
}

func ParseUUID(value string) (UUID, error) {
	trimmed := strings.TrimSpace(value)
	parsed, err := uuid.Parse(trimmed)
	if err != nil {
		return "", err
	}
	return UUID(parsed.String()), nil
}

func (u UUID) String() string {
	return string(u)
}

func (u UUID) IsZero() bool {
	return u == ""
}
