package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestT_KnownKey(t *testing.T) {
	assert.Equal(t, "Choose an action:", T("en", "MENU_HINT"))
}

func TestT_PlaceholderSubstitution(t *testing.T) {
	got := T("en", "ASK_ADD_USERNAME", "name", "Gmail")
	assert.Equal(t, "Send the username for Gmail.", got)
}

func TestT_UnknownLangFallsBackToEnglish(t *testing.T) {
	assert.Equal(t, T("en", "MENU_HINT"), T("de", "MENU_HINT"))
}

func TestT_UnknownKeyReturnsKey(t *testing.T) {
	assert.Equal(t, "NO_SUCH_KEY", T("en", "NO_SUCH_KEY"))
}

func TestT_FarsiTable(t *testing.T) {
	got := T("fa", "REMOVED_SUCCESS", "name", "Gmail")
	assert.Contains(t, got, "Gmail")
	assert.NotEqual(t, T("en", "REMOVED_SUCCESS", "name", "Gmail"), got)
}

func TestT_EveryEnglishKeyHasFarsiCounterpart(t *testing.T) {
	for key := range langEN {
		_, ok := langFA[key]
		assert.True(t, ok, "missing fa translation for %s", key)
	}
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported("en"))
	assert.True(t, Supported("fa"))
	assert.False(t, Supported("de"))
	assert.False(t, Supported(""))
}
