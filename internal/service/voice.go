package service

import (
	"fmt"
	"html"
	"log"
	"os"
	"strings"

	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// VoiceProvider starts an outbound voice call and returns the provider's
// call identifier.
type VoiceProvider interface {
	StartCall(toNumber, script string) (string, error)
}

// TwilioVoiceProvider places calls through the Twilio Programmable Voice
// API, reading credentials from the environment.
type TwilioVoiceProvider struct{}

func NewTwilioVoiceProvider() *TwilioVoiceProvider {
	return &TwilioVoiceProvider{}
}

func (p *TwilioVoiceProvider) StartCall(toNumber, script string) (string, error) {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")
	fromNumber := os.Getenv("TWILIO_FROM_NUMBER")

	if accountSid == "" || authToken == "" || fromNumber == "" {
		log.Println("WARNING: Twilio credentials (SID, token or from number) are not configured. The call will not be placed.")
		return "", fmt.Errorf("twilio credentials not fully configured")
	}

	if !strings.HasPrefix(toNumber, "+") {
		log.Printf("WARNING: destination number '%s' is not in E.164 format (should start with '+'). The call may fail.", toNumber)
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username:   accountSid,
		Password:   authToken,
		AccountSid: accountSid,
	})

	params := &openapi.CreateCallParams{}
	params.SetTo(toNumber)
	params.SetFrom(fromNumber)
	params.SetTwiml(sayTwiml(script))

	resp, err := client.Api.CreateCall(params)
	if err != nil {
		log.Printf("Error starting call to %s via Twilio: %v", toNumber, err)
		return "", fmt.Errorf("failed to start call: %w", err)
	}

	if resp != nil && resp.Sid != nil {
		log.Printf("Call to %s started. Call SID: %s", toNumber, *resp.Sid)
		return *resp.Sid, nil
	}
	log.Printf("Call to %s started, but no SID was returned (unusual without an error).", toNumber)
	return "", nil
}

// sayTwiml wraps the script in a <Say> verb. Scripts come from the
// dashboard as plain text, so XML metacharacters must be escaped or
// Twilio rejects the document.
func sayTwiml(script string) string {
	return fmt.Sprintf("<Response><Say>%s</Say></Response>", html.EscapeString(script))
}
