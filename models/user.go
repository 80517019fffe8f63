package models

// User represents a Telegram account known to the bot. A row is created on
// first contact and never deleted by the application itself; removing a user
// cascades to every credential they own via the storage schema.
type User struct {
	// TelegramID is the numeric Telegram user identifier. It doubles as the
	// primary key at the persistence layer.
	TelegramID int64

	// Lang is the user's preferred interface language tag ("en" or "fa").
	Lang string
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
