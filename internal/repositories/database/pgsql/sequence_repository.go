package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Alialhaj1/SLMS-sub007/internal/apperrors"
	"github.com/Alialhaj1/SLMS-sub007/internal/core/domain"
	portsrepo "github.com/Alialhaj1/SLMS-sub007/internal/core/ports/repositories"
	"github.com/Alialhaj1/SLMS-sub007/internal/models"
	"github.com/Alialhaj1/SLMS-sub007/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// systemUserID stamps rows created implicitly by the allocator rather than by
// an administrative request.
const systemUserID = "system"

type PgxSequenceRepository struct {
	BaseRepository
}

// NewSequenceRepository creates a new repository for document sequence counters.
func NewSequenceRepository(pool *pgxpool.Pool) portsrepo.SequenceRepositoryFacade {
	return &PgxSequenceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxSequenceRepository implements portsrepo.SequenceRepositoryFacade
var _ portsrepo.SequenceRepositoryFacade = (*PgxSequenceRepository)(nil)

const counterColumns = `tenant_id, document_type, prefix, suffix, separator, pad_width,
	       reset_policy, include_fiscal_year, fiscal_year_format, include_branch_code,
	       current_number, fiscal_year, fiscal_month, last_reset_at,
	       created_at, created_by, last_updated_at, last_updated_by`

// rowScanner covers pgx.Row for both pool and transaction query paths.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanCounter(row rowScanner) (*domain.SequenceCounter, error) {
	var m models.SequenceCounter
	var lastResetAt sql.NullTime

	err := row.Scan(
		&m.TenantID,
		&m.DocumentType,
		&m.Prefix,
		&m.Suffix,
		&m.Separator,
		&m.PadWidth,
		&m.ResetPolicy,
		&m.IncludeFiscalYear,
		&m.FiscalYearFormat,
		&m.IncludeBranchCode,
		&m.CurrentNumber,
		&m.FiscalYear,
		&m.FiscalMonth,
		&lastResetAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if lastResetAt.Valid {
		m.LastResetAt = &lastResetAt.Time
	}

	counter := mapping.ToDomainSequenceCounter(m)
	return &counter, nil
}

// FindCounter retrieves the counter for a (tenant, document type) key.
func (r *PgxSequenceRepository) FindCounter(ctx context.Context, tenantID string, docType domain.DocumentType) (*domain.SequenceCounter, error) {
	query := `
		SELECT ` + counterColumns + `
		FROM document_sequences
		WHERE tenant_id = $1 AND document_type = $2;
	`
	counter, err := scanCounter(r.Pool.QueryRow(ctx, query, tenantID, docType))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find counter for "+tenantID+"/"+string(docType), err)
	}
	return counter, nil
}

// lockCounter selects the counter row FOR UPDATE inside tx. Concurrent
// allocators for the same key block here until the holder commits, which is
// what serializes allocation and keeps the stream gapless.
func (r *PgxSequenceRepository) lockCounter(ctx context.Context, tx pgx.Tx, tenantID string, docType domain.DocumentType) (*domain.SequenceCounter, error) {
	query := `
		SELECT ` + counterColumns + `
		FROM document_sequences
		WHERE tenant_id = $1 AND document_type = $2
		FOR UPDATE;
	`
	counter, err := scanCounter(tx.QueryRow(ctx, query, tenantID, docType))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to lock counter for "+tenantID+"/"+string(docType), err)
	}
	return counter, nil
}

// insertDefaultCounter creates the counter row with the document type's
// default configuration. ON CONFLICT DO NOTHING makes the create safe under
// concurrent first allocations; the caller re-locks the row afterwards.
func (r *PgxSequenceRepository) insertDefaultCounter(ctx context.Context, tx pgx.Tx, tenantID string, docType domain.DocumentType, now time.Time) error {
	counter := domain.NewSequenceCounter(tenantID, docType, now)
	counter.CreatedAt = now
	counter.CreatedBy = systemUserID
	counter.LastUpdatedAt = now
	counter.LastUpdatedBy = systemUserID
	m := mapping.ToModelSequenceCounter(counter)

	query := `
		INSERT INTO document_sequences (
			tenant_id, document_type, prefix, suffix, separator, pad_width,
			reset_policy, include_fiscal_year, fiscal_year_format, include_branch_code,
			current_number, fiscal_year, fiscal_month, last_reset_at,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		ON CONFLICT (tenant_id, document_type) DO NOTHING;
	`
	_, err := tx.Exec(ctx, query,
		m.TenantID,
		m.DocumentType,
		m.Prefix,
		m.Suffix,
		m.Separator,
		m.PadWidth,
		m.ResetPolicy,
		m.IncludeFiscalYear,
		m.FiscalYearFormat,
		m.IncludeBranchCode,
		m.CurrentNumber,
		m.FiscalYear,
		m.FiscalMonth,
		m.LastResetAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to create default counter for "+tenantID+"/"+string(docType), err)
	}
	return nil
}

// AllocateNextInTx locks the counter row (creating it with defaults on first
// use), advances it under the lock and persists the new state, all inside the
// caller's transaction.
func (r *PgxSequenceRepository) AllocateNextInTx(ctx context.Context, tx pgx.Tx, tenantID string, docType domain.DocumentType, now time.Time) (*domain.SequenceCounter, int64, error) {
	counter, err := r.lockCounter(ctx, tx, tenantID, docType)
	if errors.Is(err, apperrors.ErrNotFound) {
		if err := r.insertDefaultCounter(ctx, tx, tenantID, docType, now); err != nil {
			return nil, 0, err
		}
		// Re-lock: if a concurrent transaction won the insert race we block
		// on its row here instead of reading our own (possibly skipped) insert.
		counter, err = r.lockCounter(ctx, tx, tenantID, docType)
	}
	if err != nil {
		return nil, 0, err
	}

	sequence := counter.Allocate(now)
	counter.LastUpdatedAt = now

	updateQuery := `
		UPDATE document_sequences
		SET current_number = $3,
		    fiscal_year = $4,
		    fiscal_month = $5,
		    last_reset_at = $6,
		    last_updated_at = $7
		WHERE tenant_id = $1 AND document_type = $2;
	`
	_, err = tx.Exec(ctx, updateQuery,
		counter.TenantID,
		string(counter.DocumentType),
		counter.CurrentNumber,
		counter.FiscalYear,
		counter.FiscalMonth,
		counter.LastResetAt,
		counter.LastUpdatedAt,
	)
	if err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to persist advanced counter for "+tenantID+"/"+string(docType), err)
	}

	return counter, sequence, nil
}

// AllocateNext allocates the next sequence value in its own transaction.
func (r *PgxSequenceRepository) AllocateNext(ctx context.Context, tenantID string, docType domain.DocumentType, now time.Time) (*domain.SequenceCounter, int64, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, 0, err
	}
	defer r.Rollback(ctx, tx) // Will be ignored if transaction is committed successfully

	counter, sequence, err := r.AllocateNextInTx(ctx, tx, tenantID, docType, now)
	if err != nil {
		return nil, 0, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, 0, err
	}
	return counter, sequence, nil
}

// UpdateCounterConfig upserts formatting and reset configuration for a key.
// The sequence position (current_number, fiscal period) is deliberately left
// untouched on existing rows.
func (r *PgxSequenceRepository) UpdateCounterConfig(ctx context.Context, counter domain.SequenceCounter) error {
	m := mapping.ToModelSequenceCounter(counter)

	query := `
		INSERT INTO document_sequences (
			tenant_id, document_type, prefix, suffix, separator, pad_width,
			reset_policy, include_fiscal_year, fiscal_year_format, include_branch_code,
			current_number, fiscal_year, fiscal_month, last_reset_at,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		ON CONFLICT (tenant_id, document_type) DO UPDATE
		SET prefix = EXCLUDED.prefix,
		    suffix = EXCLUDED.suffix,
		    separator = EXCLUDED.separator,
		    pad_width = EXCLUDED.pad_width,
		    reset_policy = EXCLUDED.reset_policy,
		    include_fiscal_year = EXCLUDED.include_fiscal_year,
		    fiscal_year_format = EXCLUDED.fiscal_year_format,
		    include_branch_code = EXCLUDED.include_branch_code,
		    last_updated_at = EXCLUDED.last_updated_at,
		    last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		m.TenantID,
		m.DocumentType,
		m.Prefix,
		m.Suffix,
		m.Separator,
		m.PadWidth,
		m.ResetPolicy,
		m.IncludeFiscalYear,
		m.FiscalYearFormat,
		m.IncludeBranchCode,
		m.CurrentNumber,
		m.FiscalYear,
		m.FiscalMonth,
		m.LastResetAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to upsert counter config for "+m.TenantID+"/"+m.DocumentType, err)
	}
	return nil
}

// SetCurrentNumber overrides the counter value for an existing key.
func (r *PgxSequenceRepository) SetCurrentNumber(ctx context.Context, tenantID string, docType domain.DocumentType, value int64, userID string, now time.Time) error {
	query := `
		UPDATE document_sequences
		SET current_number = $3,
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE tenant_id = $1 AND document_type = $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, tenantID, string(docType), value, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to set counter value for "+tenantID+"/"+string(docType), err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("counter " + tenantID + "/" + string(docType) + " not found for update")
	}
	return nil
}
