package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderEnrollment(t *testing.T) {
	html, err := render("enrollment.html", map[string]interface{}{
		"FullName":  "Ana Pérez",
		"EventName": "Taller de Go",
		"Location":  "Auditorio",
		"StartDate": "2026-11-01",
		"EndDate":   "2026-11-02",
		"TicketURL": "http://localhost/tickets/1/2",
		"Year":      2026,
	})
	require.NoError(t, err)
	assert.Contains(t, html, "Taller de Go")
	assert.Contains(t, html, "http://localhost/tickets/1/2")
}

func TestRenderWelcome(t *testing.T) {
	html, err := render("welcome.html", map[string]interface{}{
		"FullName": "Ana Pérez",
		"Username": "ana",
		"Year":     2026,
	})
	require.NoError(t, err)
	assert.Contains(t, html, "ana")
}
