package utils

import (
	"fmt"
	"log"
	"time"

	"trainvault/config"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail delivers a single HTML email through SendGrid. A missing API key
// disables sending (local/dev setups) without failing callers.
func SendEmail(toEmail, toName, subject, htmlBody string) error {
	if config.AppConfig.SendgridApiKey == "" {
		log.Printf("[EMAIL] SendGrid disabled, skipping %q to %s", subject, toEmail)
		return nil
	}

	from := mail.NewEmail("TrainVault", config.AppConfig.EmailSender)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendgridApiKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("[EMAIL] Error sending %q to %s: %v", subject, toEmail, err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("[EMAIL] SendGrid rejected %q to %s: %d %s", subject, toEmail, resp.StatusCode, resp.Body)
		return fmt.Errorf("sendgrid responded %d", resp.StatusCode)
	}
	return nil
}

// SendCompletionEmail notifies a learner that their enrollment completed
func SendCompletionEmail(toEmail, toName, assignmentTitle string) {
	body := getEmailTemplate("Training Complete",
		fmt.Sprintf(`<h2>Congratulations, %s!</h2>
		<p>You have completed <strong>%s</strong>.</p>
		<p>Your completion has been recorded in the compliance vault.</p>`, toName, assignmentTitle))

	if err := SendEmail(toEmail, toName, "Training completed: "+assignmentTitle, body); err != nil {
		log.Printf("[EMAIL] completion notification failed for %s: %v", toEmail, err)
	}
}

// SendCertificateEmail notifies a learner that a certificate was issued
func SendCertificateEmail(toEmail, toName, assignmentTitle, certificateNumber string) {
	verifyURL := fmt.Sprintf("%s/verify/%s", config.AppConfig.VerifyBaseURL, certificateNumber)
	body := getEmailTemplate("Certificate Issued",
		fmt.Sprintf(`<h2>Your certificate is ready</h2>
		<p>Certificate <strong>%s</strong> has been issued for <strong>%s</strong>.</p>
		<div class="info-box">Anyone can verify it at <a href="%s">%s</a></div>`,
			certificateNumber, assignmentTitle, verifyURL, verifyURL))

	if err := SendEmail(toEmail, toName, "Your certificate "+certificateNumber, body); err != nil {
		log.Printf("[EMAIL] certificate notification failed for %s: %v", toEmail, err)
	}
}

// SendOverdueReminder nudges a learner about an overdue assignment
func SendOverdueReminder(toEmail, toName, assignmentTitle string, dueAt time.Time) {
	body := getEmailTemplate("Training Overdue",
		fmt.Sprintf(`<h2>Reminder</h2>
		<p><strong>%s</strong> was due on %s and is still incomplete.</p>
		<p>Please complete it as soon as possible.</p>`, assignmentTitle, dueAt.Format("January 2, 2006")))

	if err := SendEmail(toEmail, toName, "Overdue training: "+assignmentTitle, body); err != nil {
		log.Printf("[EMAIL] overdue reminder failed for %s: %v", toEmail, err)
	}
}

// getEmailTemplate wraps body content in the standard TrainVault layout
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #13315C; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #13315C; line-height: 1.6; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #5B8C5A; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header"><h1>%s</h1></div>
			<div class="content">%s</div>
			<div class="footer">TrainVault &middot; automated message, do not reply</div>
		</div>
	</body>
	</html>`, title, bodyContent)
}
