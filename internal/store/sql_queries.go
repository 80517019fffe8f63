package store

import (
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/arianlotfi/crypto-locker/models"
)

const (
	ensureUser = `INSERT OR IGNORE INTO users (id) VALUES (?);`

	getUserLang = `SELECT lang FROM users WHERE id = ?;`

	setUserLang = `UPDATE users SET lang = ? WHERE id = ?;`

	deleteUser = `DELETE FROM users WHERE id = ?;`

	createCredential = `INSERT INTO credentials (owner_id, name, username, password, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?);`

	listCredentials = `SELECT id, name FROM credentials
		WHERE owner_id = ?
		ORDER BY name;`

	getCredential = `SELECT id, owner_id, name, username, password, created_at, updated_at
		FROM credentials
		WHERE id = ? AND owner_id = ?;`

	deleteCredential = `DELETE FROM credentials WHERE id = ? AND owner_id = ?;`
)

// escapeLike neutralises LIKE metacharacters in user-supplied search text so
// the query matches literal substrings only. Paired with ESCAPE '\' in the
// built expression.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// buildSearchQuery produces the owner-scoped case-insensitive substring
// search over credential names. The owner predicate lives in the same
// statement as the match, never in application code.
func buildSearchQuery(ownerID int64, query string) (string, []any, error) {
	pattern := "%" + escapeLike(query) + "%"

	return sq.Select("id", "name").
		From(models.Credential{}.TableName()).
		Where(sq.Eq{"owner_id": ownerID}).
		Where(sq.Expr(`LOWER(name) LIKE LOWER(?) ESCAPE '\'`, pattern)).
		OrderBy("name").
		ToSql()
}

// buildUpdateFieldQuery produces the single-field ciphertext update. field
// must already be validated against the closed [models.CredentialField] set;
// the column name is interpolated from that set only, never from user input.
func buildUpdateFieldQuery(id, ownerID int64, field models.CredentialField, ciphertext []byte, now any) (string, []any, error) {
	return sq.Update(models.Credential{}.TableName()).
		Set(string(field), ciphertext).
		Set("updated_at", now).
		Where(sq.Eq{"id": id, "owner_id": ownerID}).
		ToSql()
}
