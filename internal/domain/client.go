package domain

import "time"

type ClientStatus string

const (
	ClientNormal    ClientStatus = "normal"
	ClientVIP       ClientStatus = "vip"
	ClientRisky     ClientStatus = "risky"
	ClientBlocked   ClientStatus = "blocked"
	ClientBlacklist ClientStatus = "blacklist"
)

type Client struct {
	ID            int64        `json:"id"`
	FullName      string       `json:"full_name" validate:"required"`
	Email         string       `json:"email,omitempty" validate:"omitempty,email"`
	Phone         string       `json:"phone,omitempty"`
	Address       string       `json:"address,omitempty"`
	City          string       `json:"city,omitempty"`
	LicenseNumber string       `json:"license_number,omitempty"`
	IDDocNumber   string       `json:"id_doc_number,omitempty"`
	Status        ClientStatus `json:"status"`
	Notes         string       `json:"notes,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// IsEligible returns true if the client may be the party of a new
// reservation or contract. Blocked and blacklisted clients are refused
// at creation time.
func (c *Client) IsEligible() bool {
	return c.Status != ClientBlocked && c.Status != ClientBlacklist
}
