package service

import (
	"dialdesk/internal/entities"
	"fmt"
	"log"
	"os"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Alerter surfaces soft failures (a call deferred by the 30-day sentinel
// means the tenant's calling windows are misconfigured) to operators.
type Alerter interface {
	SendMisconfigAlert(data entities.AlertEmailData)
}

type AlertService struct{}

func NewAlertService() *AlertService {
	return &AlertService{}
}

func (s *AlertService) SendMisconfigAlert(data entities.AlertEmailData) {
	opsEmail := os.Getenv("OPS_ALERT_EMAIL")
	if opsEmail == "" {
		log.Printf("WARNING: OPS_ALERT_EMAIL not set, misconfiguration alert for tenant %d dropped", data.TenantID)
		return
	}

	subject := fmt.Sprintf("DialDesk: tenant %d (%s) has no usable calling window", data.TenantID, data.TenantName)
	plainBody := fmt.Sprintf(
		"Call %d to %s could not be scheduled inside any business window.\n\n"+
			"Tenant: %d (%s)\n"+
			"Requested at: %s\n"+
			"Deferred to: %s (30-day sentinel)\n"+
			"Reason: %s\n\n"+
			"No enabled business window opens within 7 days of the request. "+
			"Check the tenant's business-hours configuration.",
		data.CallID, data.ContactPhone, data.TenantID, data.TenantName,
		data.RequestedAt, data.DeferredTo, data.Reason,
	)
	htmlBody := fmt.Sprintf(
		"<p>Call <strong>%d</strong> to %s could not be scheduled inside any business window.</p>"+
			"<ul><li>Tenant: %d (%s)</li><li>Requested at: %s</li><li>Deferred to: %s (30-day sentinel)</li><li>Reason: %s</li></ul>"+
			"<p>No enabled business window opens within 7 days of the request. Check the tenant's business-hours configuration.</p>",
		data.CallID, data.ContactPhone, data.TenantID, data.TenantName,
		data.RequestedAt, data.DeferredTo, data.Reason,
	)

	go func() {
		if err := SendAlertEmail(opsEmail, "DialDesk Operations", subject, plainBody, htmlBody); err != nil {
			log.Printf("ALERT (async): failed to send misconfiguration alert for tenant %d: %v", data.TenantID, err)
		}
	}()
}

func SendAlertEmail(toEmailAddress, toName, subject, plainTextContent, htmlContent string) error {
	sendgridAPIKey := os.Getenv("SENDGRID_API_KEY")
	if sendgridAPIKey == "" {
		log.Println("WARNING: SENDGRID_API_KEY is not configured. The email will not be sent.")
		return fmt.Errorf("SENDGRID_API_KEY is not configured")
	}

	fromEmail := os.Getenv("SENDGRID_FROM_EMAIL")
	if fromEmail == "" {
		log.Println("WARNING: SENDGRID_FROM_EMAIL is not configured. The email will not be sent.")
		return fmt.Errorf("SENDGRID_FROM_EMAIL is not configured")
	}

	fromName := os.Getenv("SENDGRID_FROM_NAME")
	if fromName == "" {
		fromName = "DialDesk"
	}

	from := mail.NewEmail(fromName, fromEmail)
	to := mail.NewEmail(toName, toEmailAddress)
	message := mail.NewSingleEmail(from, subject, to, plainTextContent, htmlContent)

	client := sendgrid.NewSendClient(sendgridAPIKey)
	response, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email via SendGrid to %s: %v", toEmailAddress, err)
		return fmt.Errorf("failed to send email through SendGrid: %w", err)
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		log.Printf("Email sent to %s (subject: %s). Status: %d", toEmailAddress, subject, response.StatusCode)
		return nil
	}

	log.Printf("Error sending email to %s via SendGrid. Status: %d, Body: %s", toEmailAddress, response.StatusCode, response.Body)
	return fmt.Errorf("SendGrid returned non-success status %d: %s", response.StatusCode, response.Body)
}
