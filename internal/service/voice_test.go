package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSayTwimlEscapesScript(t *testing.T) {
	assert.Equal(t,
		"<Response><Say>Hi Jo &amp; team, your quote is &lt;ready&gt;</Say></Response>",
		sayTwiml("Hi Jo & team, your quote is <ready>"))
}

func TestSayTwimlPlainScript(t *testing.T) {
	assert.Equal(t, "<Response><Say>Hello from Acme</Say></Response>", sayTwiml("Hello from Acme"))
}
