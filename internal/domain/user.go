package domain

import "time"

type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleManager UserRole = "manager"
	RoleAgent   UserRole = "agent"
)

// User is a back-office staff account. Renters live in the client
// directory, not here.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email" validate:"required,email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         UserRole  `json:"role"`
	Agency       string    `json:"agency,omitempty"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Action names a mutating or sensitive capability checked before any
// engine call. Routes gate on these, never on UI concerns.
type Action string

const (
	ActionFleetWrite        Action = "fleet.write"
	ActionClientsWrite      Action = "clients.write"
	ActionReservationsWrite Action = "reservations.write"
	ActionContractsWrite    Action = "contracts.write"
	ActionInvoicesWrite     Action = "invoices.write"
	ActionMaintenanceWrite  Action = "maintenance.write"
	ActionReportsRead       Action = "reports.read"
	ActionUsersManage       Action = "users.manage"
)

// rolePermissions is the capability table. Admin is handled in
// HasPermission and never consults it.
var rolePermissions = map[UserRole]map[Action]bool{
	RoleManager: {
		ActionFleetWrite:        true,
		ActionClientsWrite:      true,
		ActionReservationsWrite: true,
		ActionContractsWrite:    true,
		ActionInvoicesWrite:     true,
		ActionMaintenanceWrite:  true,
		ActionReportsRead:       true,
	},
	RoleAgent: {
		ActionReservationsWrite: true,
		ActionContractsWrite:    true,
		ActionInvoicesWrite:     true,
	},
}

// HasPermission reports whether a role may perform an action.
func HasPermission(role UserRole, action Action) bool {
	if role == RoleAdmin {
		return true
	}
	return rolePermissions[role][action]
}
