package model

import "github.com/google/uuid"

const (
	RoleAdmin    = "ADMIN"
	RoleOperator = "OPERATOR"
	RoleViewer   = "VIEWER"
)

// Principal is the authenticated caller extracted from the access token.
type Principal struct {
	UserID uuid.UUID
	Role   string
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// CanWrite reports whether the caller may change pricing data.
func (p Principal) CanWrite() bool {
	return p.Role == RoleAdmin || p.Role == RoleOperator
}
