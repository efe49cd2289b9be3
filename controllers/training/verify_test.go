package trainingController

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"trainvault/config"
	"trainvault/database"
	"trainvault/models/training"
	"trainvault/services/completion"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupControllerDB opens a per-test in-memory sqlite database and installs
// it as the global handle the controllers read
func setupControllerDB(t *testing.T, models ...interface{}) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models...))

	database.Database = database.DbInstance{Db: db}

	// empty SendGrid key keeps notification side effects disabled
	config.AppConfig = &config.Config{}
	return db
}

type verifyEnvelope struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Valid             bool   `json:"valid"`
		CertificateNumber string `json:"certificate_number"`
	} `json:"data"`
}

func getVerify(t *testing.T, app *fiber.App, number string) (int, verifyEnvelope) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/verify/"+number, nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body verifyEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func seedVaultRecord(t *testing.T, db *gorm.DB, number string) *training.CompletionVaultRecord {
	t.Helper()

	certID := uint(7)
	completedAt := time.Date(2026, 3, 9, 14, 0, 0, 0, time.UTC)
	record := training.CompletionVaultRecord{
		EnrollmentID:      101,
		UserID:            10,
		OrgID:             1,
		CertificateID:     &certID,
		CertificateNumber: &number,
		AssignmentTitle:   "Forklift Safety",
		CompletedAt:       completedAt,
	}
	record.VerificationHash = completion.ComputeHash(completion.BuildPayload(completion.Facts{
		EnrollmentID:      record.EnrollmentID,
		UserID:            record.UserID,
		OrgID:             record.OrgID,
		CertificateID:     record.CertificateID,
		CertificateNumber: record.CertificateNumber,
		AssignmentTitle:   record.AssignmentTitle,
		CompletedAt:       record.CompletedAt,
	}))
	require.NoError(t, db.Create(&record).Error)
	return &record
}

func TestVerifyCertificateValidRecord(t *testing.T) {
	db := setupControllerDB(t, &training.CompletionVaultRecord{})
	seedVaultRecord(t, db, "TV-1-VALID00001")

	app := fiber.New()
	app.Get("/verify/:number", VerifyCertificate)

	status, body := getVerify(t, app, "TV-1-VALID00001")
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, body.Status)
	assert.True(t, body.Data.Valid)
	assert.Equal(t, "TV-1-VALID00001", body.Data.CertificateNumber)
}

func TestVerifyCertificateDetectsTamperedRecord(t *testing.T) {
	db := setupControllerDB(t, &training.CompletionVaultRecord{})
	record := seedVaultRecord(t, db, "TV-1-TAMPER0001")

	// alter a hashed field behind the recorder's back
	require.NoError(t, db.Model(record).Update("assignment_title", "Altered Title").Error)

	app := fiber.New()
	app.Get("/verify/:number", VerifyCertificate)

	status, body := getVerify(t, app, "TV-1-TAMPER0001")
	assert.Equal(t, http.StatusOK, status)
	assert.False(t, body.Status)
	assert.False(t, body.Data.Valid)
	assert.Contains(t, body.Message, "mismatch")
}

func TestVerifyCertificateUnknownNumber(t *testing.T) {
	setupControllerDB(t, &training.CompletionVaultRecord{})

	app := fiber.New()
	app.Get("/verify/:number", VerifyCertificate)

	status, body := getVerify(t, app, "TV-1-NOSUCHCERT")
	assert.Equal(t, http.StatusNotFound, status)
	assert.False(t, body.Status)
}
