package completion

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"
)

// payloadSeparator joins the completion facts into the canonical payload.
// Changing it (or the field order) breaks verification of every record
// already in the vault, so any change must ship as a new payload version.
const payloadSeparator = "|"

// Facts are the seven completion facts the verification hash covers. Any
// party holding them can recompute the hash and compare it against the vault.
type Facts struct {
	EnrollmentID      uint
	UserID            uint
	OrgID             uint
	CertificateID     *uint
	CertificateNumber *string
	AssignmentTitle   string
	CompletedAt       time.Time
}

// BuildPayload serializes the facts in fixed order. Absent nullable fields
// serialize as the empty string, never a "null" literal. CompletedAt is
// normalized to UTC RFC3339 so recomputation is timezone-independent.
func BuildPayload(f Facts) string {
	certID := ""
	if f.CertificateID != nil {
		certID = strconv.FormatUint(uint64(*f.CertificateID), 10)
	}
	certNumber := ""
	if f.CertificateNumber != nil {
		certNumber = *f.CertificateNumber
	}

	return strings.Join([]string{
		strconv.FormatUint(uint64(f.EnrollmentID), 10),
		strconv.FormatUint(uint64(f.UserID), 10),
		strconv.FormatUint(uint64(f.OrgID), 10),
		certID,
		certNumber,
		f.AssignmentTitle,
		f.CompletedAt.UTC().Format(time.RFC3339),
	}, payloadSeparator)
}

// ComputeHash returns the hex SHA-256 digest of the payload's UTF-8 bytes
func ComputeHash(payload string) string {
	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])
}
