package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arianlotfi/crypto-locker/models"
)

func TestParseCallback_ValidPayloads(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    Callback
	}{
		{
			name:    "show",
			payload: "show|42",
			want:    Callback{Action: CallbackShow, CredentialID: 42},
		},
		{
			name:    "remove confirm",
			payload: "remove_confirm|7",
			want:    Callback{Action: CallbackRemoveConfirm, CredentialID: 7},
		},
		{
			name:    "remove do",
			payload: "remove_do|7",
			want:    Callback{Action: CallbackRemoveDo, CredentialID: 7},
		},
		{
			name:    "cancel",
			payload: "cancel",
			want:    Callback{Action: CallbackCancel},
		},
		{
			name:    "edit select",
			payload: "edit_select|3",
			want:    Callback{Action: CallbackEditSelect, CredentialID: 3},
		},
		{
			name:    "edit field username",
			payload: "edit_field|3|username",
			want:    Callback{Action: CallbackEditField, CredentialID: 3, Field: models.FieldUsername},
		},
		{
			name:    "edit field password",
			payload: "edit_field|3|password",
			want:    Callback{Action: CallbackEditField, CredentialID: 3, Field: models.FieldPassword},
		},
		{
			name:    "close",
			payload: "close",
			want:    Callback{Action: CallbackClose},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCallback(tt.payload)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCallback_MalformedPayloads(t *testing.T) {
	payloads := []string{
		"",
		"garbage",
		"show",
		"show|",
		"show|abc",
		"show|0",
		"show|-2",
		"show|1|extra",
		"remove_do",
		"remove_do|x",
		"cancel|1",
		"close|1",
		"edit_select|",
		"edit_field|1",
		"edit_field|1|email",
		"edit_field|abc|password",
		"edit_field|1|password|more",
		"show|9999999999999999999999",
		"|1",
	}

	for _, payload := range payloads {
		t.Run(payload, func(t *testing.T) {
			_, err := ParseCallback(payload)
			assert.ErrorIs(t, err, ErrBadCallback)
		})
	}
}

func TestCallback_EncodeParseRoundTrip(t *testing.T) {
	callbacks := []Callback{
		{Action: CallbackShow, CredentialID: 1},
		{Action: CallbackRemoveConfirm, CredentialID: 99},
		{Action: CallbackRemoveDo, CredentialID: 99},
		{Action: CallbackCancel},
		{Action: CallbackEditSelect, CredentialID: 5},
		{Action: CallbackEditField, CredentialID: 5, Field: models.FieldUsername},
		{Action: CallbackClose},
	}

	for _, cb := range callbacks {
		t.Run(cb.Encode(), func(t *testing.T) {
			parsed, err := ParseCallback(cb.Encode())
			require.NoError(t, err)
			assert.Equal(t, cb, parsed)
		})
	}
}

func TestSummaryKeyboard_TruncatesToLimit(t *testing.T) {
	summaries := make([]models.CredentialSummary, 120)
	for i := range summaries {
		summaries[i] = models.CredentialSummary{ID: int64(i + 1), Name: "acc"}
	}

	kb := summaryKeyboard(CallbackShow, summaries)
	require.NotNil(t, kb)
	assert.True(t, kb.Inline)
	assert.Len(t, kb.Rows, maxInlineResults)
	assert.Equal(t, "show|1", kb.Rows[0][0].Data)
}
