package domain_test

import (
	"testing"

	"github.com/SscSPs/eft_batch_service/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestBatchStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from domain.BatchStatus
		to   domain.BatchStatus
		want bool
	}{
		{"draft to pending", domain.Draft, domain.Pending, true},
		{"pending to approved", domain.Pending, domain.Approved, true},
		{"pending to rejected", domain.Pending, domain.Rejected, true},
		{"approved to exported", domain.Approved, domain.Exported, true},
		{"draft to approved", domain.Draft, domain.Approved, false},
		{"rejected to draft", domain.Rejected, domain.Draft, false},
		{"rejected to pending", domain.Rejected, domain.Pending, false},
		{"exported to approved", domain.Exported, domain.Approved, false},
		{"approved to rejected", domain.Approved, domain.Rejected, false},
		{"pending to draft", domain.Pending, domain.Draft, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestBatchStatus_IsTerminal(t *testing.T) {
	assert.True(t, domain.Rejected.IsTerminal())
	assert.True(t, domain.Exported.IsTerminal())
	assert.False(t, domain.Approved.IsTerminal())
	assert.False(t, domain.Draft.IsTerminal())
}

func TestBatch_CloneIsDeep(t *testing.T) {
	reason := "wrong payee"
	b := &domain.Batch{
		BatchID:         "b1",
		RejectionReason: &reason,
		Items:           []domain.LineItem{{LineItemID: "i1", SequenceNumber: "0001"}},
	}

	c := b.Clone()
	c.Items[0].SequenceNumber = "0009"
	*c.RejectionReason = "changed"

	assert.Equal(t, "0001", b.Items[0].SequenceNumber)
	assert.Equal(t, "wrong payee", *b.RejectionReason)
}

func TestLineItem_FirstMissingReference(t *testing.T) {
	item := domain.LineItem{
		DebitAccountID: "d1", DebitAccountNumber: "100200",
		PayeeID: "p1", PayeeName: "Acme",
		PayeeBankID: "bk1", PayeeBankCode: "NBMAMWMW",
		SchemeID: "s1", SchemeCode: "LL01",
	}
	assert.Equal(t, "Zone", item.FirstMissingReference())

	item.ZoneID, item.ZoneCode = "z1", "CZ"
	assert.Equal(t, "", item.FirstMissingReference())

	item.PayeeBankCode = ""
	assert.Equal(t, "Payee bank", item.FirstMissingReference())
}

func TestRolePolicy_Allows(t *testing.T) {
	policy := domain.DefaultRolePolicy()
	preparer := domain.Actor{UserID: "u1", Roles: []domain.Role{domain.RoleAccountsPersonnel}}
	authorizer := domain.Actor{UserID: "u2", Roles: []domain.Role{domain.RoleAuthorizer}}
	admin := domain.Actor{UserID: "u3", Roles: []domain.Role{domain.RoleSystemAdmin}}

	assert.True(t, policy.Allows(preparer, domain.PermCreateBatch))
	assert.False(t, policy.Allows(preparer, domain.PermApproveBatch))
	assert.True(t, policy.Allows(authorizer, domain.PermApproveBatch))
	assert.False(t, policy.Allows(authorizer, domain.PermCreateBatch))
	assert.True(t, policy.Allows(authorizer, domain.PermExportBatch))
	assert.False(t, policy.Allows(admin, domain.PermViewBatch))
}
