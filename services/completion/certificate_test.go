package completion

import (
	"strings"
	"testing"

	"trainvault/models/training"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueCertificateMintsOnce(t *testing.T) {
	db := setupTestDB(t)
	enrollment, _ := seedContentEnrollment(t, db, 1, 10, "HIPAA Basics")
	seedDefaultTemplate(t, db, 1)
	issuer := NewIssuer(db)

	first, err := issuer.IssueCertificate(enrollment.ID, 1, 10)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.True(t, strings.HasPrefix(first.CertificateNumber, "TV-1-"))
	assert.False(t, first.IssuedAt.IsZero())

	second, err := issuer.IssueCertificate(enrollment.ID, 1, 10)
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.CertificateNumber, second.CertificateNumber)

	var count int64
	db.Model(&training.CertificateIssued{}).Where("enrollment_id = ?", enrollment.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestIssueCertificateNoTemplateReturnsNil(t *testing.T) {
	db := setupTestDB(t)
	enrollment, _ := seedContentEnrollment(t, db, 1, 10, "HIPAA Basics")
	issuer := NewIssuer(db)

	cert, err := issuer.IssueCertificate(enrollment.ID, 1, 10)
	require.NoError(t, err)
	assert.Nil(t, cert, "missing template is non-fatal and mints nothing")

	var count int64
	db.Model(&training.CertificateIssued{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestIssueCertificatePrefersAssignmentTemplate(t *testing.T) {
	db := setupTestDB(t)
	enrollment, _ := seedContentEnrollment(t, db, 1, 10, "HIPAA Basics")
	seedDefaultTemplate(t, db, 1)
	override := training.CertificateTemplate{OrgID: 1, Name: "Gold Seal"}
	require.NoError(t, db.Create(&override).Error)

	var assignment training.Assignment
	require.NoError(t, db.First(&assignment, enrollment.AssignmentID).Error)
	require.NoError(t, db.Model(&assignment).Update("template_id", override.ID).Error)

	cert, err := NewIssuer(db).IssueCertificate(enrollment.ID, 1, 10)
	require.NoError(t, err)
	require.NotNil(t, cert)
	assert.Equal(t, override.ID, cert.TemplateID)
}

func TestIssueCertificateIgnoresOtherOrgTemplate(t *testing.T) {
	db := setupTestDB(t)
	enrollment, _ := seedContentEnrollment(t, db, 1, 10, "HIPAA Basics")
	seedDefaultTemplate(t, db, 2) // wrong tenant

	cert, err := NewIssuer(db).IssueCertificate(enrollment.ID, 1, 10)
	require.NoError(t, err)
	assert.Nil(t, cert)
}

func TestIssueCertificateUnknownEnrollment(t *testing.T) {
	db := setupTestDB(t)
	seedDefaultTemplate(t, db, 1)

	_, err := NewIssuer(db).IssueCertificate(777, 1, 10)
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestCertificateNumbersAreOrgScopedAndUnique(t *testing.T) {
	db := setupTestDB(t)
	seedDefaultTemplate(t, db, 1)
	issuer := NewIssuer(db)

	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		enrollment, _ := seedContentEnrollment(t, db, 1, uint(20+i), "Course")
		cert, err := issuer.IssueCertificate(enrollment.ID, 1, uint(20+i))
		require.NoError(t, err)
		require.NotNil(t, cert)
		assert.False(t, seen[cert.CertificateNumber], "number %s repeated", cert.CertificateNumber)
		seen[cert.CertificateNumber] = true
	}
}
