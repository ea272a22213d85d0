package types

import (
	"time"

	"github.com/sj23z/Puzur-Cataloge/pkg/enums"
)

// Identity is a portal account. CredentialHash is only populated inside the
// store blob; every read surface strips it before the record leaves the
// identity service.
type Identity struct {
	ID              string     `json:"id"`
	Username        string     `json:"username"`
	CredentialHash  string     `json:"credentialHash,omitempty"`
	Role            enums.Role `json:"role"`
	FullName        string     `json:"fullName"`
	ClinicName      string     `json:"clinicName,omitempty"`
	DiscountTier    float64    `json:"discountTier"`
	IsActive        bool       `json:"isActive"`
	AccessExpiresAt *time.Time `json:"accessExpiresAt,omitempty"`
}

// Sanitized returns a copy with the credential hash removed.
func (i Identity) Sanitized() Identity {
	i.CredentialHash = ""
	return i
}

// Expired reports whether the account's access window has closed.
func (i Identity) Expired(now time.Time) bool {
	return i.AccessExpiresAt != nil && i.AccessExpiresAt.Before(now)
}
