package utils

import (
	"log"
	"time"

	"trainvault/config"
	"trainvault/database"
	"trainvault/models/training"

	"github.com/go-resty/resty/v2"
)

// renderRequest is the payload the external certificate render service expects
type renderRequest struct {
	CertificateNumber string `json:"certificate_number"`
	UserName          string `json:"user_name"`
	AssignmentTitle   string `json:"assignment_title"`
	IssuedDate        string `json:"issued_date"`
	VerificationHash  string `json:"verification_hash"`
	TemplateID        uint   `json:"template_id"`
}

type renderResponse struct {
	DocumentURL string `json:"document_url"`
}

// DispatchCertificateRender asks the render service to produce the
// certificate document and backfills RenderedURL on success. It runs in the
// background: a render hiccup never blocks or fails the completion that
// triggered it, and a missing document is recoverable by re-dispatching.
func DispatchCertificateRender(cert *training.CertificateIssued, userName, assignmentTitle, verificationHash string) {
	if cert == nil {
		return
	}

	go func(certID uint, req renderRequest) {
		client := resty.New().
			SetBaseURL(config.AppConfig.RenderServiceURL).
			SetTimeout(30 * time.Second)
		if config.AppConfig.RenderServiceKey != "" {
			client.SetAuthToken(config.AppConfig.RenderServiceKey)
		}

		var result renderResponse
		resp, err := client.R().
			SetBody(req).
			SetResult(&result).
			Post("/render/certificate")
		if err != nil {
			log.Printf("[RENDER] certificate %s render request failed: %v", req.CertificateNumber, err)
			return
		}
		if resp.IsError() {
			log.Printf("[RENDER] certificate %s render rejected: %d %s", req.CertificateNumber, resp.StatusCode(), resp.String())
			return
		}
		if result.DocumentURL == "" {
			log.Printf("[RENDER] certificate %s render returned no document URL", req.CertificateNumber)
			return
		}

		err = database.Database.Db.Model(&training.CertificateIssued{}).
			Where("id = ?", certID).
			Update("rendered_url", result.DocumentURL).Error
		if err != nil {
			log.Printf("[RENDER] failed to backfill rendered URL for certificate %s: %v", req.CertificateNumber, err)
			return
		}
		log.Printf("[RENDER] certificate %s rendered at %s", req.CertificateNumber, result.DocumentURL)
	}(cert.ID, renderRequest{
		CertificateNumber: cert.CertificateNumber,
		UserName:          userName,
		AssignmentTitle:   assignmentTitle,
		IssuedDate:        cert.IssuedAt.Format("2006-01-02"),
		VerificationHash:  verificationHash,
		TemplateID:        cert.TemplateID,
	})
}
