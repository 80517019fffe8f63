package service

import (
	"github.com/arianlotfi/crypto-locker/internal/i18n"
	"github.com/arianlotfi/crypto-locker/models"
)

// maxInlineResults bounds list and search keyboards. Telegram renders large
// inline keyboards poorly and the operator cannot meaningfully scan more.
const maxInlineResults = 50

// mainMenu builds the persistent reply keyboard with the five actions.
func mainMenu(lang string) *Keyboard {
	return &Keyboard{
		Rows: [][]Button{
			{{Label: i18n.T(lang, "BTN_ADD")}, {Label: i18n.T(lang, "BTN_SEARCH")}},
			{{Label: i18n.T(lang, "BTN_REMOVE")}, {Label: i18n.T(lang, "BTN_EDIT")}},
			{{Label: i18n.T(lang, "BTN_SHOW")}},
		},
	}
}

// summaryKeyboard renders one button per credential summary, each carrying
// the given action and the record id. The list is truncated to
// maxInlineResults entries.
func summaryKeyboard(action CallbackAction, summaries []models.CredentialSummary) *Keyboard {
	if len(summaries) > maxInlineResults {
		summaries = summaries[:maxInlineResults]
	}

	rows := make([][]Button, 0, len(summaries))
	for _, s := range summaries {
		cb := Callback{Action: action, CredentialID: s.ID}
		rows = append(rows, []Button{{Label: s.Name, Data: cb.Encode()}})
	}
	return &Keyboard{Inline: true, Rows: rows}
}

// confirmRemovalKeyboard builds the yes/no row of the delete confirmation.
func confirmRemovalKeyboard(lang string, id int64) *Keyboard {
	return &Keyboard{
		Inline: true,
		Rows: [][]Button{{
			{Label: i18n.T(lang, "BTN_YES_DELETE"), Data: Callback{Action: CallbackRemoveDo, CredentialID: id}.Encode()},
			{Label: i18n.T(lang, "BTN_NO_CANCEL"), Data: Callback{Action: CallbackCancel}.Encode()},
		}},
	}
}

// editFieldKeyboard builds the username/password choice row of the edit flow.
func editFieldKeyboard(lang string, id int64) *Keyboard {
	return &Keyboard{
		Inline: true,
		Rows: [][]Button{{
			{Label: i18n.T(lang, "BTN_EDIT_USERNAME"), Data: Callback{Action: CallbackEditField, CredentialID: id, Field: models.FieldUsername}.Encode()},
			{Label: i18n.T(lang, "BTN_EDIT_PASSWORD"), Data: Callback{Action: CallbackEditField, CredentialID: id, Field: models.FieldPassword}.Encode()},
		}},
	}
}

// closeKeyboard builds the single close button under a displayed secret.
func closeKeyboard(lang string) *Keyboard {
	return &Keyboard{
		Inline: true,
		Rows: [][]Button{{
			{Label: i18n.T(lang, "BTN_CLOSE"), Data: Callback{Action: CallbackClose}.Encode()},
		}},
	}
}
