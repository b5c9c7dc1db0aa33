package domain

// Role is a named group of permissions an actor can hold.
type Role string

const (
	RoleSystemAdmin       Role = "SYSTEM_ADMIN"
	RoleAccountsPersonnel Role = "ACCOUNTS_PERSONNEL"
	RoleAuthorizer        Role = "AUTHORIZER"
)

// Permission is a single batch capability.
type Permission string

const (
	PermCreateBatch  Permission = "batch:create"
	PermEditBatch    Permission = "batch:edit"
	PermViewBatch    Permission = "batch:view"
	PermApproveBatch Permission = "batch:approve"
	PermExportBatch  Permission = "batch:export"
)

// Actor is the identity performing an operation.
type Actor struct {
	UserID        string
	Roles         []Role
	OriginAddress string
}

// RolePolicy maps roles to the permissions they grant. It is an explicit value
// handed to the services rather than looked up globally.
type RolePolicy struct {
	Grants map[Role][]Permission
}

// DefaultRolePolicy mirrors the standard back-office groups.
func DefaultRolePolicy() RolePolicy {
	return RolePolicy{
		Grants: map[Role][]Permission{
			RoleSystemAdmin: {},
			RoleAccountsPersonnel: {
				PermCreateBatch, PermEditBatch, PermViewBatch, PermExportBatch,
			},
			RoleAuthorizer: {
				PermViewBatch, PermApproveBatch, PermExportBatch,
			},
		},
	}
}

// Allows reports whether any of the actor's roles grants perm.
func (p RolePolicy) Allows(actor Actor, perm Permission) bool {
	for _, role := range actor.Roles {
		for _, granted := range p.Grants[role] {
			if granted == perm {
				return true
			}
		}
	}
	return false
}
