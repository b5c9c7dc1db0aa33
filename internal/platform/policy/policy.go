// Package policy loads the role to permission mapping from YAML.
package policy

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/SscSPs/eft_batch_service/internal/core/domain"
	"gopkg.in/yaml.v3"
)

// document is the YAML layout:
//
//	roles:
//	  ACCOUNTS_PERSONNEL: [batch:create, batch:edit, batch:view, batch:export]
//	  AUTHORIZER: [batch:view, batch:approve, batch:export]
type document struct {
	Roles map[string][]string `yaml:"roles"`
}

var knownPermissions = map[domain.Permission]struct{}{
	domain.PermCreateBatch:  {},
	domain.PermEditBatch:    {},
	domain.PermViewBatch:    {},
	domain.PermApproveBatch: {},
	domain.PermExportBatch:  {},
}

// Load returns the default policy when path is empty, otherwise the policy in the file.
func Load(path string) (domain.RolePolicy, error) {
	if path == "" {
		return domain.DefaultRolePolicy(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return domain.RolePolicy{}, fmt.Errorf("failed to open role policy file: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode parses a policy document. Unknown permissions are rejected.
func Decode(r io.Reader) (domain.RolePolicy, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return domain.RolePolicy{}, fmt.Errorf("failed to decode role policy: %w", err)
	}
	if len(doc.Roles) == 0 {
		return domain.RolePolicy{}, fmt.Errorf("role policy defines no roles")
	}

	p := domain.RolePolicy{Grants: make(map[domain.Role][]domain.Permission, len(doc.Roles))}
	for role, perms := range doc.Roles {
		granted := make([]domain.Permission, 0, len(perms))
		for _, perm := range perms {
			perm := domain.Permission(strings.ToLower(strings.TrimSpace(perm)))
			if _, ok := knownPermissions[perm]; !ok {
				return domain.RolePolicy{}, fmt.Errorf("role %s: unknown permission %q", role, perm)
			}
			granted = append(granted, perm)
		}
		p.Grants[domain.Role(strings.ToUpper(role))] = granted
	}
	return p, nil
}
