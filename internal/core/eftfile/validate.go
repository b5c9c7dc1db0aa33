package eftfile

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/SscSPs/eft_batch_service/internal/apperrors"
	"github.com/SscSPs/eft_batch_service/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// Summary describes a structurally valid EFT file.
type Summary struct {
	BatchName    string          `json:"batchName"`
	CurrencyCode string          `json:"currencyCode"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	RecordCount  int             `json:"recordCount"`
}

// amountPattern is the only amount notation a file may carry. Exponents
// and signs are refused before any decimal arithmetic happens.
var amountPattern = regexp.MustCompile(`^\d{1,16}(\.\d{1,2})?$`)

// Validate checks content against the EFT layout without reference to any
// stored batch. Body line numbers in errors are 1-based.
func Validate(content string) (*Summary, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil, apperrors.ErrEmptyFile
	}
	lines := strings.Split(trimmed, "\n")
	for i := range lines {
		lines[i] = strings.TrimSuffix(lines[i], "\r")
	}

	header := splitFields(lines[0])
	if len(header) != HeaderFieldCount {
		return nil, &apperrors.MalformedHeaderError{Reason: "invalid header format"}
	}
	if header[0] != HeaderRecordType {
		return nil, &apperrors.MalformedHeaderError{Reason: "header must start with " + HeaderRecordType}
	}
	declared, err := strconv.Atoi(header[4])
	if err != nil {
		return nil, &apperrors.MalformedHeaderError{Reason: "invalid record count in header"}
	}

	body := lines[1:]
	if len(body) != declared {
		return nil, &apperrors.RecordCountMismatchError{Declared: declared, Actual: len(body)}
	}

	sum := decimal.Zero
	for i, line := range body {
		lineNo := i + 1
		fields := splitFields(line)
		if len(fields) != BodyFieldCount {
			return nil, &apperrors.MalformedRecordError{Line: lineNo, FieldCount: len(fields)}
		}
		if fields[0] != BodyRecordType {
			return nil, &apperrors.MalformedRecordError{
				Line:       lineNo,
				FieldCount: len(fields),
				Reason:     "body record must start with " + BodyRecordType,
			}
		}
		if !amountPattern.MatchString(fields[5]) {
			return nil, &apperrors.InvalidAmountError{Line: lineNo, Value: fields[5]}
		}
		amount, err := decimal.NewFromString(fields[5])
		if err != nil {
			return nil, &apperrors.InvalidAmountError{Line: lineNo, Value: fields[5]}
		}
		sum = sum.Add(amount)
	}

	if !amountPattern.MatchString(header[3]) {
		return nil, &apperrors.MalformedHeaderError{Reason: "invalid total amount in header"}
	}
	headerAmount, err := decimal.NewFromString(header[3])
	if err != nil {
		return nil, &apperrors.MalformedHeaderError{Reason: "invalid total amount in header"}
	}
	if !accounting.WithinTolerance(headerAmount, sum) {
		return nil, &apperrors.TotalAmountMismatchError{Header: headerAmount, Computed: sum}
	}

	return &Summary{
		BatchName:    header[1],
		CurrencyCode: header[2],
		TotalAmount:  headerAmount,
		RecordCount:  declared,
	}, nil
}

// splitFields splits a record on unescaped delimiters and removes escapes.
func splitFields(line string) []string {
	var (
		fields  []string
		current strings.Builder
		escaped bool
	)
	for _, r := range line {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case r == Escape:
			escaped = true
		case r == Delimiter:
			fields = append(fields, current.String())
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	if escaped {
		current.WriteRune(Escape)
	}
	return append(fields, current.String())
}
