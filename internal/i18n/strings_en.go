package i18n

var langEN = map[string]string{
	"WELCOME":            "Welcome to CryptoLocker — your Telegram password manager.",
	"MENU_HINT":          "Choose an action:",
	"ASK_ADD_NAME":       "Send a short name for this account (e.g., Gmail, Work VPN).",
	"ASK_ADD_USERNAME":   "Send the username for {name}.",
	"ASK_ADD_PASSWORD":   "Send the password for {name}.",
	"ADDED_SUCCESS":      "Saved ✅ — your credentials for {name} were stored.",
	"ASK_SEARCH":         "Send the name to search for.",
	"NO_MATCH":           "No entries found for '{q}'.",
	"NO_ACCOUNTS":        "You have not saved any accounts yet.",
	"INVALID_NAME":       "Name must be between 1 and 64 characters.",
	"INVALID_CREDENTIAL": "Value must be between 1 and 512 characters.",
	"PROMPT_REMOVE":      "Select an account to remove.",
	"PROMPT_EDIT":        "Select an account to edit.",
	"PROMPT_SHOW":        "Select an account to display.",
	"SEARCH_RESULTS":     "Select a result:",
	"ASK_NEW_USERNAME":   "Send the new username for {name}.",
	"ASK_NEW_PASSWORD":   "Send the new password for {name}.",
	"BTN_EDIT_USERNAME":  "Change username",
	"BTN_EDIT_PASSWORD":  "Change password",
	"ASK_REMOVE_CONFIRM": "Are you sure you want to permanently delete {name}? This cannot be undone.",
	"REMOVED_SUCCESS":    "{name} removed.",
	"EDIT_CHOOSE_FIELD":  "Do you want to change the username or password for {name}?",
	"EDIT_SUCCESS":       "{field} updated for {name}.",
	"FIELD_USERNAME":     "Username",
	"FIELD_PASSWORD":     "Password",
	"LANG_CHANGED":       "Language switched to English.",
	"LANG_USAGE":         "Usage: /lang en|fa",
	"NOT_ADMIN":          "You are not the bot admin.",
	"ERR_GENERIC":        "Something went wrong. Please try again.",
	"BTN_ADD":            "Add",
	"BTN_SEARCH":         "Search",
	"BTN_REMOVE":         "Remove",
	"BTN_EDIT":           "Edit",
	"BTN_SHOW":           "Show",
	"BTN_YES_DELETE":     "Yes, delete",
	"BTN_NO_CANCEL":      "No, cancel",
	"BTN_CLOSE":          "Close",
}
