package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"pastebridge/internal/domain/entities"
	"pastebridge/internal/ports/repositories"
	"pastebridge/pkg/logger"
)

// NotepadRepository implements repositories.NotepadRepository.
type NotepadRepository struct {
	pool PgxPoolInterface
}

// NewNotepadRepository creates a new notepad repository.
func NewNotepadRepository(pool PgxPoolInterface) repositories.NotepadRepository {
	return &NotepadRepository{pool: pool}
}

const notepadColumns = `id, code, user_id, account_type, expires_at, created_at, updated_at`

func scanNotepad(row pgx.Row) (*entities.Notepad, error) {
	var n entities.Notepad
	err := row.Scan(&n.ID, &n.Code, &n.UserID, &n.AccountTier, &n.ExpiresAt, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// Create persists a new notepad.
func (r *NotepadRepository) Create(ctx context.Context, notepad *entities.Notepad) (*entities.Notepad, error) {
	log := logger.Log(ctx).With(zap.String("repository", "notepad"), zap.String("method", "Create"))

	query := `
        INSERT INTO notepads (code, user_id, account_type, expires_at)
        VALUES ($1, $2, $3, $4)
        RETURNING ` + notepadColumns

	created, err := scanNotepad(r.pool.QueryRow(ctx, query,
		notepad.Code, notepad.UserID, notepad.AccountTier, notepad.ExpiresAt))
	if err != nil {
		log.Error(ctx, "error creating notepad", zap.Error(err))
		return nil, fmt.Errorf("error creating notepad: %w", err)
	}

	created.Entries = []entities.Entry{}
	return created, nil
}

// GetByCode finds a notepad by its lower-cased code, entries included.
func (r *NotepadRepository) GetByCode(ctx context.Context, code string) (*entities.Notepad, error) {
	log := logger.Log(ctx).With(zap.String("repository", "notepad"), zap.String("method", "GetByCode"))

	query := `
        SELECT ` + notepadColumns + `
        FROM notepads
        WHERE code = $1`

	notepad, err := scanNotepad(r.pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "notepad not found", zap.String("code", code))
			return nil, entities.ErrNotepadNotFound
		}
		log.Error(ctx, "error querying notepad by code", zap.Error(err))
		return nil, fmt.Errorf("error querying notepad by code: %w", err)
	}

	entries, err := r.listEntries(ctx, notepad.ID)
	if err != nil {
		return nil, err
	}
	notepad.Entries = entries

	return notepad, nil
}

// CodeExists reports whether the code is already taken.
func (r *NotepadRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM notepads WHERE code = $1)`, code).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking notepad code: %w", err)
	}
	return exists, nil
}

func (r *NotepadRepository) listEntries(ctx context.Context, notepadID string) ([]entities.Entry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, notepad_id, text, created_at
         FROM entries
         WHERE notepad_id = $1
         ORDER BY created_at`,
		notepadID,
	)
	if err != nil {
		return nil, fmt.Errorf("error listing entries: %w", err)
	}
	defer rows.Close()

	entries := make([]entities.Entry, 0)
	for rows.Next() {
		var e entities.Entry
		if err := rows.Scan(&e.ID, &e.NotepadID, &e.Text, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entries: %w", err)
	}
	return entries, nil
}

// AppendEntry inserts one entry and bumps the notepad's update time.
func (r *NotepadRepository) AppendEntry(ctx context.Context, notepadID, text string) (*entities.Entry, error) {
	log := logger.Log(ctx).With(zap.String("repository", "notepad"), zap.String("method", "AppendEntry"))

	var entry entities.Entry
	err := r.pool.QueryRow(ctx,
		`INSERT INTO entries (notepad_id, text)
         VALUES ($1, $2)
         RETURNING id, notepad_id, text, created_at`,
		notepadID, text,
	).Scan(&entry.ID, &entry.NotepadID, &entry.Text, &entry.CreatedAt)
	if err != nil {
		log.Error(ctx, "error appending entry", zap.Error(err))
		return nil, fmt.Errorf("error appending entry: %w", err)
	}

	if _, err := r.pool.Exec(ctx,
		`UPDATE notepads SET updated_at = now() WHERE id = $1`, notepadID); err != nil {
		log.Error(ctx, "error bumping notepad update time", zap.Error(err))
		return nil, fmt.Errorf("error bumping notepad update time: %w", err)
	}

	return &entry, nil
}

// ClearEntries removes all entries from a notepad.
func (r *NotepadRepository) ClearEntries(ctx context.Context, notepadID string) error {
	log := logger.Log(ctx).With(zap.String("repository", "notepad"), zap.String("method", "ClearEntries"))

	if _, err := r.pool.Exec(ctx,
		`DELETE FROM entries WHERE notepad_id = $1`, notepadID); err != nil {
		log.Error(ctx, "error clearing entries", zap.Error(err))
		return fmt.Errorf("error clearing entries: %w", err)
	}

	if _, err := r.pool.Exec(ctx,
		`UPDATE notepads SET updated_at = now() WHERE id = $1`, notepadID); err != nil {
		log.Error(ctx, "error bumping notepad update time", zap.Error(err))
		return fmt.Errorf("error bumping notepad update time: %w", err)
	}

	return nil
}

// Link assigns a notepad to a user with the given tier and expiry.
func (r *NotepadRepository) Link(ctx context.Context, notepadID, userID string, tier entities.AccountTier, expiresAt *time.Time) error {
	log := logger.Log(ctx).With(zap.String("repository", "notepad"), zap.String("method", "Link"))

	result, err := r.pool.Exec(ctx,
		`UPDATE notepads
         SET user_id = $2, account_type = $3, expires_at = $4, updated_at = now()
         WHERE id = $1`,
		notepadID, userID, tier, expiresAt,
	)
	if err != nil {
		log.Error(ctx, "error linking notepad", zap.Error(err))
		return fmt.Errorf("error linking notepad: %w", err)
	}
	if result.RowsAffected() == 0 {
		return entities.ErrNotepadNotFound
	}
	return nil
}

// ListByUser returns the user's notepads with entries, most recently
// updated first.
func (r *NotepadRepository) ListByUser(ctx context.Context, userID string) ([]*entities.Notepad, error) {
	return r.listWithEntries(ctx,
		`SELECT `+notepadColumns+`
         FROM notepads
         WHERE user_id = $1
         ORDER BY updated_at DESC`,
		userID,
	)
}

// ListSharedWith returns notepads shared with the user.
func (r *NotepadRepository) ListSharedWith(ctx context.Context, userID string) ([]*entities.Notepad, error) {
	return r.listWithEntries(ctx,
		`SELECT n.id, n.code, n.user_id, n.account_type, n.expires_at, n.created_at, n.updated_at
         FROM notepads n
         JOIN notepad_collaborators c ON c.notepad_id = n.id
         WHERE c.user_id = $1
         ORDER BY n.updated_at DESC`,
		userID,
	)
}

func (r *NotepadRepository) listWithEntries(ctx context.Context, query string, args ...interface{}) ([]*entities.Notepad, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing notepads: %w", err)
	}
	defer rows.Close()

	notepads := make([]*entities.Notepad, 0)
	for rows.Next() {
		var n entities.Notepad
		if err := rows.Scan(&n.ID, &n.Code, &n.UserID, &n.AccountTier, &n.ExpiresAt, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning notepad: %w", err)
		}
		notepads = append(notepads, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notepads: %w", err)
	}

	for _, n := range notepads {
		entries, err := r.listEntries(ctx, n.ID)
		if err != nil {
			return nil, err
		}
		n.Entries = entries
	}

	return notepads, nil
}

// AddCollaborator grants a user access; returns false when the user
// was already a collaborator.
func (r *NotepadRepository) AddCollaborator(ctx context.Context, notepadID, userID string) (bool, error) {
	result, err := r.pool.Exec(ctx,
		`INSERT INTO notepad_collaborators (notepad_id, user_id)
         VALUES ($1, $2)
         ON CONFLICT DO NOTHING`,
		notepadID, userID,
	)
	if err != nil {
		return false, fmt.Errorf("error adding collaborator: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

// RemoveCollaborator revokes a user's access.
func (r *NotepadRepository) RemoveCollaborator(ctx context.Context, notepadID, userID string) error {
	result, err := r.pool.Exec(ctx,
		`DELETE FROM notepad_collaborators WHERE notepad_id = $1 AND user_id = $2`,
		notepadID, userID,
	)
	if err != nil {
		return fmt.Errorf("error removing collaborator: %w", err)
	}
	if result.RowsAffected() == 0 {
		return entities.ErrNotACollaborator
	}
	return nil
}

// ListCollaborators returns the users granted access to a notepad.
func (r *NotepadRepository) ListCollaborators(ctx context.Context, notepadID string) ([]*entities.User, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT u.id, u.email, u.name
         FROM users u
         JOIN notepad_collaborators c ON c.user_id = u.id
         WHERE c.notepad_id = $1
         ORDER BY c.created_at`,
		notepadID,
	)
	if err != nil {
		return nil, fmt.Errorf("error listing collaborators: %w", err)
	}
	defer rows.Close()

	users := make([]*entities.User, 0)
	for rows.Next() {
		var u entities.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name); err != nil {
			return nil, fmt.Errorf("error scanning collaborator: %w", err)
		}
		users = append(users, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating collaborators: %w", err)
	}
	return users, nil
}

// Search filters the user's own and shared notepads by entry text,
// code prefix, and creation date range, with pagination.
func (r *NotepadRepository) Search(ctx context.Context, userID string, filter repositories.SearchFilter) ([]repositories.SearchHit, int, error) {
	log := logger.Log(ctx).With(zap.String("repository", "notepad"), zap.String("method", "Search"))

	const visible = `
        SELECT n.id, n.code, n.user_id, n.account_type, n.expires_at, n.created_at, n.updated_at
        FROM notepads n
        WHERE n.user_id = $1
        UNION
        SELECT n.id, n.code, n.user_id, n.account_type, n.expires_at, n.created_at, n.updated_at
        FROM notepads n
        JOIN notepad_collaborators c ON c.notepad_id = n.id
        WHERE c.user_id = $1`

	const predicate = `
        ($2 = '' OR EXISTS (
            SELECT 1 FROM entries e WHERE e.notepad_id = v.id AND e.text ILIKE '%' || $2 || '%'))
        AND ($3 = '' OR v.code LIKE $3 || '%')
        AND ($4::timestamptz IS NULL OR v.created_at >= $4)
        AND ($5::timestamptz IS NULL OR v.created_at <= $5)`

	args := []interface{}{userID, filter.Query, filter.CodePrefix, filter.DateFrom, filter.DateTo}

	var total int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM (`+visible+`) v WHERE `+predicate, args...,
	).Scan(&total)
	if err != nil {
		log.Error(ctx, "error counting search results", zap.Error(err))
		return nil, 0, fmt.Errorf("error counting search results: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	rows, err := r.pool.Query(ctx,
		`SELECT v.id, v.code, v.user_id, v.account_type, v.expires_at, v.created_at, v.updated_at,
            (SELECT COUNT(*) FROM entries e
             WHERE e.notepad_id = v.id AND $2 <> '' AND e.text ILIKE '%' || $2 || '%'),
            COALESCE((SELECT left(e.text, 120) FROM entries e
             WHERE e.notepad_id = v.id AND $2 <> '' AND e.text ILIKE '%' || $2 || '%'
             ORDER BY e.created_at LIMIT 1), '')
         FROM (`+visible+`) v
         WHERE `+predicate+`
         ORDER BY v.updated_at DESC
         LIMIT $6 OFFSET $7`,
		append(args, filter.Limit, offset)...,
	)
	if err != nil {
		log.Error(ctx, "error searching notepads", zap.Error(err))
		return nil, 0, fmt.Errorf("error searching notepads: %w", err)
	}
	defer rows.Close()

	hits := make([]repositories.SearchHit, 0)
	for rows.Next() {
		var n entities.Notepad
		var hit repositories.SearchHit
		if err := rows.Scan(&n.ID, &n.Code, &n.UserID, &n.AccountTier, &n.ExpiresAt, &n.CreatedAt, &n.UpdatedAt,
			&hit.MatchingEntries, &hit.Preview); err != nil {
			return nil, 0, fmt.Errorf("error scanning search hit: %w", err)
		}
		hit.Notepad = &n
		hits = append(hits, hit)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating search hits: %w", err)
	}

	return hits, total, nil
}

// UpgradeTierForUser bulk-updates all of a user's notepads to the new
// tier; premium clears the expiry.
func (r *NotepadRepository) UpgradeTierForUser(ctx context.Context, userID string, tier entities.AccountTier) error {
	log := logger.Log(ctx).With(zap.String("repository", "notepad"), zap.String("method", "UpgradeTierForUser"))

	var query string
	if tier == entities.TierPremium {
		query = `UPDATE notepads SET account_type = $2, expires_at = NULL, updated_at = now() WHERE user_id = $1`
	} else {
		query = `UPDATE notepads SET account_type = $2, updated_at = now() WHERE user_id = $1`
	}

	if _, err := r.pool.Exec(ctx, query, userID, tier); err != nil {
		log.Error(ctx, "error upgrading notepad tier", zap.Error(err))
		return fmt.Errorf("error upgrading notepad tier: %w", err)
	}
	return nil
}

// DeleteExpired removes non-premium notepads past their expiry,
// computing the legacy fallback expiry in SQL for rows without one.
// The lifetimes are the same configured values the read path enforces,
// so the sweep and the 410 check always agree.
func (r *NotepadRepository) DeleteExpired(ctx context.Context, now time.Time, guestLifetime, userLifetime time.Duration) (int64, error) {
	log := logger.Log(ctx).With(zap.String("repository", "notepad"), zap.String("method", "DeleteExpired"))

	result, err := r.pool.Exec(ctx,
		`DELETE FROM notepads
         WHERE account_type <> 'premium'
           AND COALESCE(expires_at,
               created_at + CASE WHEN account_type = 'user'
                   THEN make_interval(secs => $3) ELSE make_interval(secs => $2) END) < $1`,
		now, guestLifetime.Seconds(), userLifetime.Seconds(),
	)
	if err != nil {
		log.Error(ctx, "error deleting expired notepads", zap.Error(err))
		return 0, fmt.Errorf("error deleting expired notepads: %w", err)
	}

	return result.RowsAffected(), nil
}
