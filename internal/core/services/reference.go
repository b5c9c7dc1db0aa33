package services

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// referenceGenerator builds human readable batch and file references.
type referenceGenerator struct {
	prefix string
	clock  func() time.Time
}

func newReferenceGenerator(prefix string, clock func() time.Time) *referenceGenerator {
	return &referenceGenerator{prefix: prefix, clock: clock}
}

// BatchReference returns <prefix>-YYYYMMDD-HHMMSS-<6 hex>. The random suffix
// keeps references unique for batches created within the same second.
func (g *referenceGenerator) BatchReference(at time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
	return g.prefix + "-" + at.Format("20060102-150405") + "-" + strings.ToUpper(suffix)
}

// FileReference returns the default file reference <prefix>-dd.mm.yyyy, cut to 16 characters.
func (g *referenceGenerator) FileReference(at time.Time) string {
	ref := g.prefix + "-" + at.Format("02.01.2006")
	if len(ref) > maxFileReferenceLength {
		ref = ref[:maxFileReferenceLength]
	}
	return ref
}
