package completion

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleFacts() Facts {
	certID := uint(42)
	certNumber := "TV-7-AB12CD34EF"
	return Facts{
		EnrollmentID:      101,
		UserID:            7,
		OrgID:             3,
		CertificateID:     &certID,
		CertificateNumber: &certNumber,
		AssignmentTitle:   "Forklift Safety",
		CompletedAt:       time.Date(2026, 2, 14, 9, 30, 0, 0, time.UTC),
	}
}

func TestBuildPayloadFieldOrder(t *testing.T) {
	payload := BuildPayload(sampleFacts())
	assert.Equal(t, "101|7|3|42|TV-7-AB12CD34EF|Forklift Safety|2026-02-14T09:30:00Z", payload)
}

func TestBuildPayloadNilFieldsSerializeEmpty(t *testing.T) {
	f := sampleFacts()
	f.CertificateID = nil
	f.CertificateNumber = nil

	payload := BuildPayload(f)
	assert.Equal(t, "101|7|3|||Forklift Safety|2026-02-14T09:30:00Z", payload)
	assert.NotContains(t, payload, "null")
}

func TestBuildPayloadNormalizesTimezone(t *testing.T) {
	f := sampleFacts()
	loc := time.FixedZone("UTC+5", 5*60*60)
	f.CompletedAt = f.CompletedAt.In(loc)

	assert.Equal(t, BuildPayload(sampleFacts()), BuildPayload(f))
}

func TestComputeHashDeterministic(t *testing.T) {
	f := sampleFacts()
	first := ComputeHash(BuildPayload(f))
	second := ComputeHash(BuildPayload(f))

	assert.Equal(t, first, second)
	require.Len(t, first, 64)
	assert.Equal(t, strings.ToLower(first), first)
}

func TestComputeHashSensitivity(t *testing.T) {
	base := ComputeHash(BuildPayload(sampleFacts()))

	mutations := map[string]func(*Facts){
		"enrollment id":      func(f *Facts) { f.EnrollmentID = 102 },
		"user id":            func(f *Facts) { f.UserID = 8 },
		"org id":             func(f *Facts) { f.OrgID = 4 },
		"certificate id":     func(f *Facts) { id := uint(43); f.CertificateID = &id },
		"certificate number": func(f *Facts) { n := "TV-7-ZZ99ZZ99ZZ"; f.CertificateNumber = &n },
		"assignment title":   func(f *Facts) { f.AssignmentTitle = "Forklift Safety v2" },
		"completed at":       func(f *Facts) { f.CompletedAt = f.CompletedAt.Add(time.Second) },
	}

	for name, mutate := range mutations {
		f := sampleFacts()
		mutate(&f)
		assert.NotEqual(t, base, ComputeHash(BuildPayload(f)), "changing %s must change the hash", name)
	}
}

func TestComputeHashKnownVector(t *testing.T) {
	// sha256("") — guards against accidental payload preprocessing
	assert.Equal(t,
		"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		ComputeHash(""))
}
