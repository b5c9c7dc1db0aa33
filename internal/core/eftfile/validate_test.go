package eftfile_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/eft_batch_service/internal/apperrors"
	"github.com/SscSPs/eft_batch_service/internal/core/eftfile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func body(seq, amount string) string {
	return "1;" + seq + ";MWK;100;ZN1;" + amount + ";Payee;SCH;;;;SWIFT;ACC;;;;narr"
}

func file(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

func TestValidate_Valid(t *testing.T) {
	s, err := eftfile.Validate(file("0;B;MWK;350.50;0002", body("0001", "100.00"), body("0002", "250.50")))
	require.NoError(t, err)
	assert.Equal(t, 2, s.RecordCount)
	assert.Equal(t, "350.50", s.TotalAmount.StringFixed(2))
}

func TestValidate_AcceptsCRLF(t *testing.T) {
	content := "0;B;MWK;10.00;0001\r\n" + body("0001", "10.00") + "\r\n"
	_, err := eftfile.Validate(content)
	assert.NoError(t, err)
}

func TestValidate_ScenarioC(t *testing.T) {
	_, err := eftfile.Validate(file("0;B;MWK;350.50;0003", body("0001", "100.00"), body("0002", "250.50")))
	require.ErrorIs(t, err, apperrors.ErrRecordCountMismatch)

	var rc *apperrors.RecordCountMismatchError
	require.True(t, errors.As(err, &rc))
	assert.Equal(t, 3, rc.Declared)
	assert.Equal(t, 2, rc.Actual)
}

func TestValidate_Tolerance(t *testing.T) {
	_, err := eftfile.Validate(file("0;B;MWK;100.01;0001", body("0001", "100.00")))
	assert.NoError(t, err)

	_, err = eftfile.Validate(file("0;B;MWK;100.02;0001", body("0001", "100.00")))
	require.ErrorIs(t, err, apperrors.ErrTotalAmountMismatch)

	var tm *apperrors.TotalAmountMismatchError
	require.True(t, errors.As(err, &tm))
	assert.Equal(t, "100.02", tm.Header.StringFixed(2))
	assert.Equal(t, "100.00", tm.Computed.StringFixed(2))
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{"empty", "", apperrors.ErrEmptyFile},
		{"whitespace only", " \n\n ", apperrors.ErrEmptyFile},
		{"header field count", file("0;B;MWK;1.00"), apperrors.ErrMalformedHeader},
		{"header type", file("9;B;MWK;1.00;0001", body("0001", "1.00")), apperrors.ErrMalformedHeader},
		{"header count not integer", file("0;B;MWK;1.00;abc", body("0001", "1.00")), apperrors.ErrMalformedHeader},
		{"body field count", file("0;B;MWK;1.00;0001", "1;0001;MWK"), apperrors.ErrMalformedRecord},
		{"body type", file("0;B;MWK;1.00;0001", "2"+body("0001", "1.00")[1:]), apperrors.ErrMalformedRecord},
		{"amount not numeric", file("0;B;MWK;1.00;0001", body("0001", "ten")), apperrors.ErrInvalidAmount},
		{"amount negative", file("0;B;MWK;1.00;0001", body("0001", "-1.00")), apperrors.ErrInvalidAmount},
		{"header total not numeric", file("0;B;MWK;x;0001", body("0001", "1.00")), apperrors.ErrMalformedHeader},
		{"amount exponent", file("0;B;MWK;1.00;0001", body("0001", "1e5")), apperrors.ErrInvalidAmount},
		{"amount huge exponent", file("0;B;MWK;1.00;0001", body("0001", "1e100000000")), apperrors.ErrInvalidAmount},
		{"amount negative cent", file("0;B;MWK;1.00;0001", body("0001", "-0.01")), apperrors.ErrInvalidAmount},
		{"amount leading dot", file("0;B;MWK;1.00;0001", body("0001", ".5")), apperrors.ErrInvalidAmount},
		{"amount three decimals", file("0;B;MWK;1.00;0001", body("0001", "1.005")), apperrors.ErrInvalidAmount},
		{"amount too many digits", file("0;B;MWK;1.00;0001", body("0001", "12345678901234567")), apperrors.ErrInvalidAmount},
		{"header total exponent", file("0;B;MWK;1e100000000;0001", body("0001", "1.00")), apperrors.ErrMalformedHeader},
		{"header total signed", file("0;B;MWK;+1.00;0001", body("0001", "1.00")), apperrors.ErrMalformedHeader},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := eftfile.Validate(tc.content)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestValidate_ExponentAmountReportsLine(t *testing.T) {
	done := make(chan error, 1)
	go func() {
		_, err := eftfile.Validate("0;B;MWK;0.00;0001\n1;0001;MWK;1;CZ;1e100000000;P;S;;;;B;A;;;;n")
		done <- err
	}()

	select {
	case err := <-done:
		var ia *apperrors.InvalidAmountError
		require.True(t, errors.As(err, &ia))
		assert.Equal(t, 1, ia.Line)
		assert.Equal(t, "1e100000000", ia.Value)
	case <-time.After(5 * time.Second):
		t.Fatal("validation did not return")
	}
}

func TestValidate_MalformedRecordReportsLineAndFieldCount(t *testing.T) {
	_, err := eftfile.Validate(file("0;B;MWK;2.00;0002", body("0001", "1.00"), "1;0002;MWK;extra"))

	var mr *apperrors.MalformedRecordError
	require.True(t, errors.As(err, &mr))
	assert.Equal(t, 2, mr.Line)
	assert.Equal(t, 4, mr.FieldCount)
	assert.Equal(t, "line 2: invalid number of fields (4 instead of 17)", mr.Error())
}

func TestValidate_DoesNotMutateInput(t *testing.T) {
	content := file("0;B;MWK;1.00;0001", body("0001", "1.00"))
	original := strings.Clone(content)
	_, _ = eftfile.Validate(content)
	assert.Equal(t, original, content)
}
