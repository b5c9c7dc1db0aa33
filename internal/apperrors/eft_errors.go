package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Lifecycle errors.
var (
	ErrInvalidState     = errors.New("operation not allowed in current batch status")
	ErrEmptyBatch       = errors.New("batch has no line items")
	ErrSelfApproval     = errors.New("batch creator cannot approve or reject their own batch")
	ErrConflict         = errors.New("batch was modified concurrently")
	ErrCapacityExceeded = errors.New("batch sequence capacity exceeded")
)

// Encoding errors.
var (
	ErrNotApproved    = errors.New("batch is not approved")
	ErrTotalsMismatch = errors.New("batch totals do not reconcile with line items")
	ErrMissingField   = errors.New("line item is missing a required reference")
)

// Decode-time errors.
var (
	ErrEmptyFile           = errors.New("empty file")
	ErrMalformedHeader     = errors.New("malformed header record")
	ErrRecordCountMismatch = errors.New("record count mismatch")
	ErrMalformedRecord     = errors.New("malformed body record")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrTotalAmountMismatch = errors.New("total amount mismatch")
)

// InvalidStateError reports which operation was refused and in which status.
type InvalidStateError struct {
	Operation string
	Status    string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s batch in status %s", e.Operation, e.Status)
}

func (e *InvalidStateError) Is(target error) bool { return target == ErrInvalidState }

// TotalsMismatchError carries both sides of a failed reconciliation.
type TotalsMismatchError struct {
	Stored        decimal.Decimal
	Computed      decimal.Decimal
	Difference    decimal.Decimal
	StoredCount   int
	ComputedCount int
}

func (e *TotalsMismatchError) Error() string {
	return fmt.Sprintf("%s: stored %s (%d records), computed %s (%d records), difference %s",
		ErrTotalsMismatch.Error(), e.Stored.StringFixed(2), e.StoredCount,
		e.Computed.StringFixed(2), e.ComputedCount, e.Difference.StringFixed(2))
}

func (e *TotalsMismatchError) Is(target error) bool { return target == ErrTotalsMismatch }

// MissingFieldError names the first line item lacking a required reference.
type MissingFieldError struct {
	Sequence string
	Field    string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s is required for transaction %s", e.Field, e.Sequence)
}

func (e *MissingFieldError) Is(target error) bool { return target == ErrMissingField }

// MalformedHeaderError explains why the header record was refused.
type MalformedHeaderError struct {
	Reason string
}

func (e *MalformedHeaderError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMalformedHeader.Error(), e.Reason)
}

func (e *MalformedHeaderError) Is(target error) bool { return target == ErrMalformedHeader }

// RecordCountMismatchError compares the declared and actual body line counts.
type RecordCountMismatchError struct {
	Declared int
	Actual   int
}

func (e *RecordCountMismatchError) Error() string {
	return fmt.Sprintf("record count mismatch: header says %d, file has %d", e.Declared, e.Actual)
}

func (e *RecordCountMismatchError) Is(target error) bool { return target == ErrRecordCountMismatch }

// MalformedRecordError points at a body line with the wrong shape. Line is 1-based over body lines.
type MalformedRecordError struct {
	Line       int
	FieldCount int
	Reason     string
}

func (e *MalformedRecordError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("line %d: invalid number of fields (%d instead of 17)", e.Line, e.FieldCount)
}

func (e *MalformedRecordError) Is(target error) bool { return target == ErrMalformedRecord }

// InvalidAmountError points at a body line whose amount does not parse.
type InvalidAmountError struct {
	Line  int
	Value string
}

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("line %d: invalid amount format %q", e.Line, e.Value)
}

func (e *InvalidAmountError) Is(target error) bool { return target == ErrInvalidAmount }

// TotalAmountMismatchError compares the header total with the sum of body amounts.
type TotalAmountMismatchError struct {
	Header   decimal.Decimal
	Computed decimal.Decimal
}

func (e *TotalAmountMismatchError) Error() string {
	return fmt.Sprintf("total amount mismatch: header says %s, sum is %s",
		e.Header.StringFixed(2), e.Computed.StringFixed(2))
}

func (e *TotalAmountMismatchError) Is(target error) bool { return target == ErrTotalAmountMismatch }
