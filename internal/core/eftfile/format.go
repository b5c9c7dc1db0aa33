package eftfile

import (
	"fmt"
	"strings"
	"time"
)

// Format is a delivery format for an encoded file. The payload is identical;
// only the extension and content type differ.
type Format string

const (
	FormatTXT Format = "txt"
	FormatCSV Format = "csv"
)

// ParseFormat accepts "txt" or "csv" in any case. Empty means txt.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatTXT:
		return FormatTXT, nil
	case FormatCSV:
		return FormatCSV, nil
	}
	return "", fmt.Errorf("unsupported export format %q", s)
}

// ContentType is the MIME type to serve the file with.
func (f Format) ContentType() string {
	if f == FormatCSV {
		return "text/csv; charset=utf-8"
	}
	return "text/plain; charset=utf-8"
}

// AuditRemarks is the remark recorded on the EXPORTED audit event.
func (f Format) AuditRemarks() string {
	return "Exported as " + strings.ToUpper(string(f))
}

// Filename builds "<prefix>_EFT_<batchRef>_<YYYYMMDD_HHMMSS>.<ext>".
func Filename(prefix, batchReference string, at time.Time, f Format) string {
	return fmt.Sprintf("%s_EFT_%s_%s.%s", prefix, batchReference, at.Format("20060102_150405"), f)
}
