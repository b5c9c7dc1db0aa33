package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BatchStatus indicates where a batch is in its approval lifecycle.
type BatchStatus string

const (
	Draft    BatchStatus = "DRAFT"
	Pending  BatchStatus = "PENDING"
	Approved BatchStatus = "APPROVED"
	Rejected BatchStatus = "REJECTED"
	Exported BatchStatus = "EXPORTED"
)

// transitions lists every legal status change. Anything absent is illegal.
var transitions = map[BatchStatus][]BatchStatus{
	Draft:    {Pending},
	Pending:  {Approved, Rejected},
	Approved: {Exported},
}

// IsValid reports whether s is a known status.
func (s BatchStatus) IsValid() bool {
	switch s {
	case Draft, Pending, Approved, Rejected, Exported:
		return true
	}
	return false
}

// CanTransitionTo reports whether moving from s to next is a legal transition.
func (s BatchStatus) CanTransitionTo(next BatchStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition leaves s.
func (s BatchStatus) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// IsEncodable reports whether a batch in status s may be serialized to an EFT file.
func (s BatchStatus) IsEncodable() bool {
	return s == Approved || s == Exported
}

// Batch is the header of one payment run: its line items, totals and approval status.
type Batch struct {
	BatchID        string          `json:"batchID"`        // Primary Key (UUID)
	BatchReference string          `json:"batchReference"` // Unique, stable once assigned
	BatchName      string          `json:"batchName"`
	FileReference  string          `json:"fileReference"`
	CurrencyCode   string          `json:"currencyCode"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	RecordCount    int             `json:"recordCount"`
	Status         BatchStatus     `json:"status"`

	// Approval metadata; mutually exclusive with the rejection fields.
	ApprovedBy *string    `json:"approvedBy,omitempty"`
	ApprovedAt *time.Time `json:"approvedAt,omitempty"`

	RejectedBy      *string    `json:"rejectedBy,omitempty"`
	RejectedAt      *time.Time `json:"rejectedAt,omitempty"`
	RejectionReason *string    `json:"rejectionReason,omitempty"`

	GeneratedFile *string    `json:"-"`
	GeneratedAt   *time.Time `json:"generatedAt,omitempty"`

	// Version increases on every committed mutation and backs optimistic concurrency checks.
	Version int64 `json:"version"`

	Items []LineItem `json:"items,omitempty"`
	AuditFields
}

// IsEditable reports whether line items may still be added or removed.
func (b *Batch) IsEditable() bool {
	return b.Status == Draft
}

// IsCreatedBy reports whether actorID created the batch.
func (b *Batch) IsCreatedBy(actorID string) bool {
	return b.CreatedBy == actorID
}

// FindItem returns the index of the item with the given ID, or -1.
func (b *Batch) FindItem(lineItemID string) int {
	for i := range b.Items {
		if b.Items[i].LineItemID == lineItemID {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy so callers can mutate without touching shared state.
func (b *Batch) Clone() *Batch {
	c := *b
	c.ApprovedBy = cloneString(b.ApprovedBy)
	c.ApprovedAt = cloneTime(b.ApprovedAt)
	c.RejectedBy = cloneString(b.RejectedBy)
	c.RejectedAt = cloneTime(b.RejectedAt)
	c.RejectionReason = cloneString(b.RejectionReason)
	c.GeneratedFile = cloneString(b.GeneratedFile)
	c.GeneratedAt = cloneTime(b.GeneratedAt)
	if b.Items != nil {
		c.Items = make([]LineItem, len(b.Items))
		for i := range b.Items {
			c.Items[i] = b.Items[i].Clone()
		}
	}
	return &c
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
