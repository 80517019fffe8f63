package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/arianlotfi/crypto-locker/internal/logger"
	"github.com/arianlotfi/crypto-locker/models"
)

// credentialRepository is the SQLite-backed implementation of
// [CredentialRepository]. It executes all credential CRUD operations against
// the "credentials" table using the embedded [*DB] connection.
//
// Every query carries the owner_id predicate inside the statement itself.
// There is no fetch-then-check anywhere in this type, so a refactor of the
// conversation layer cannot reintroduce a cross-owner leak.
type credentialRepository struct {
	db     *DB
	logger *logger.Logger
	now    func() time.Time
}

// NewCredentialRepository constructs a [CredentialRepository] backed by the
// provided database connection and logger.
func NewCredentialRepository(db *DB, logger *logger.Logger) CredentialRepository {
	logger.Debug().Msg("creating credential repository")
	return &credentialRepository{
		db:     db,
		logger: logger,
		now:    time.Now,
	}
}

// timestamp returns the canonical stored time: UTC, second precision.
func (r *credentialRepository) timestamp() time.Time {
	return r.now().UTC().Truncate(time.Second)
}

// Create implements [CredentialRepository].
func (r *credentialRepository) Create(ctx context.Context, ownerID int64, name string, usernameCT, passwordCT []byte) (int64, error) {
	log := logger.FromContext(ctx)

	now := r.timestamp()
	res, err := r.db.ExecContext(ctx, createCredential, ownerID, name, usernameCT, passwordCT, now, now)
	if err != nil {
		log.Err(err).
			Str("func", "*credentialRepository.Create").
			Int64("owner_id", ownerID).
			Msg("failed to insert credential")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		log.Err(err).
			Str("func", "*credentialRepository.Create").
			Int64("owner_id", ownerID).
			Msg("failed to read inserted id")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return id, nil
}

// List implements [CredentialRepository].
func (r *credentialRepository) List(ctx context.Context, ownerID int64) ([]models.CredentialSummary, error) {
	return r.querySummaries(ctx, "*credentialRepository.List", ownerID, listCredentials, ownerID)
}

// Search implements [CredentialRepository]. The LIKE pattern is built with
// escaped metacharacters, so the operator searching for "100%" matches the
// literal text and not every record.
func (r *credentialRepository) Search(ctx context.Context, ownerID int64, query string) ([]models.CredentialSummary, error) {
	log := logger.FromContext(ctx)

	sqlQuery, args, err := buildSearchQuery(ownerID, query)
	if err != nil {
		log.Err(err).
			Str("func", "*credentialRepository.Search").
			Int64("owner_id", ownerID).
			Msg("failed to build search query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.querySummaries(ctx, "*credentialRepository.Search", ownerID, sqlQuery, args...)
}

// querySummaries runs a (id, name) projection query and scans the rows.
func (r *credentialRepository) querySummaries(ctx context.Context, caller string, ownerID int64, query string, args ...any) ([]models.CredentialSummary, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", caller).
			Int64("owner_id", ownerID).
			Msg("failed to execute summary query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	summaries := make([]models.CredentialSummary, 0, 16)

	for rows.Next() {
		var s models.CredentialSummary
		if scanErr := rows.Scan(&s.ID, &s.Name); scanErr != nil {
			log.Err(scanErr).
				Str("func", caller).
				Int64("owner_id", ownerID).
				Msg("failed to scan summary row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		summaries = append(summaries, s)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", caller).
			Int64("owner_id", ownerID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return summaries, nil
}

// Get implements [CredentialRepository]. A row owned by someone else and a
// row that does not exist both surface as [ErrCredentialNotFound].
func (r *credentialRepository) Get(ctx context.Context, id, ownerID int64) (models.Credential, error) {
	log := logger.FromContext(ctx)

	var c models.Credential
	err := r.db.QueryRowContext(ctx, getCredential, id, ownerID).Scan(
		&c.ID,
		&c.OwnerID,
		&c.Name,
		&c.Username,
		&c.Password,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Credential{}, ErrCredentialNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "*credentialRepository.Get").
			Int64("owner_id", ownerID).
			Int64("credential_id", id).
			Msg("failed to fetch credential")
		return models.Credential{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return c, nil
}

// UpdateField implements [CredentialRepository].
func (r *credentialRepository) UpdateField(ctx context.Context, id, ownerID int64, field models.CredentialField, ciphertext []byte) (bool, error) {
	log := logger.FromContext(ctx)

	if !field.Valid() {
		return false, fmt.Errorf("%w: %q", ErrUnsupportedField, field)
	}

	query, args, err := buildUpdateFieldQuery(id, ownerID, field, ciphertext, r.timestamp())
	if err != nil {
		log.Err(err).
			Str("func", "*credentialRepository.UpdateField").
			Int64("owner_id", ownerID).
			Int64("credential_id", id).
			Msg("failed to build update query")
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "*credentialRepository.UpdateField").
			Int64("owner_id", ownerID).
			Int64("credential_id", id).
			Str("field", string(field)).
			Msg("failed to update credential field")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return affected > 0, nil
}

// Delete implements [CredentialRepository].
func (r *credentialRepository) Delete(ctx context.Context, id, ownerID int64) (bool, error) {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, deleteCredential, id, ownerID)
	if err != nil {
		log.Err(err).
			Str("func", "*credentialRepository.Delete").
			Int64("owner_id", ownerID).
			Int64("credential_id", id).
			Msg("failed to delete credential")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return affected > 0, nil
}
