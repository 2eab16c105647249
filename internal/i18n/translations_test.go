package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslatorDefaultsToSpanish(t *testing.T) {
	tr := NewTranslator("es", nil)

	assert.Equal(t, "Sesión cerrada correctamente.", tr.T("", "auth.logged_out", nil))
	assert.Equal(t, "Sesión cerrada correctamente.", tr.T("fr-FR", "auth.logged_out", nil))
}

func TestTranslatorAcceptLanguage(t *testing.T) {
	tr := NewTranslator("es", nil)

	assert.Equal(t, "Logged out successfully.", tr.T("en-US,en;q=0.9", "auth.logged_out", nil))
	assert.Equal(t, "You have enrolled in Taller",
		tr.T("en", "event.enrolled", map[string]any{"Event": "Taller"}))
	assert.Equal(t, "Se ha inscrito exitosamente en el evento Taller",
		tr.T("es-MX", "event.enrolled", map[string]any{"Event": "Taller"}))
}

func TestTranslatorUnknownID(t *testing.T) {
	tr := NewTranslator("es", nil)

	assert.Equal(t, "nope.missing", tr.T("en", "nope.missing", nil))
	assert.Equal(t, "", tr.T("en", "", nil))
}

func TestTranslatorFields(t *testing.T) {
	tr := NewTranslator("es", nil)

	got := tr.Fields("en", map[string]string{
		"email":     "validation.email",
		"password2": "validation.eqfield",
	})
	assert.Equal(t, map[string]string{
		"email":     "Enter a valid email address.",
		"password2": "The two password fields didn't match.",
	}, got)
	assert.Nil(t, tr.Fields("en", nil))
}
