package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/Alialhaj1/SLMS-sub007/internal/apperrors"
	"github.com/Alialhaj1/SLMS-sub007/internal/core/domain"
	portsrepo "github.com/Alialhaj1/SLMS-sub007/internal/core/ports/repositories"
	"github.com/Alialhaj1/SLMS-sub007/internal/models"
	"github.com/Alialhaj1/SLMS-sub007/internal/utils/mapping"
	"github.com/Alialhaj1/SLMS-sub007/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxLedgerRepository struct {
	BaseRepository
	sequenceRepo portsrepo.SequenceAllocator
}

// NewLedgerRepository creates a new repository for ledger entry data. The
// sequence allocator is injected so entry numbers can be allocated inside the
// same transaction that persists the entry.
func NewLedgerRepository(pool *pgxpool.Pool, sequenceRepo portsrepo.SequenceAllocator) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
		sequenceRepo:   sequenceRepo,
	}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepositoryFacade
var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

const entryColumns = `entry_id, tenant_id, entry_number, entry_date, entry_type,
	       reference_type, reference_id, reference_number, description, description_ar,
	       currency_code, exchange_rate, total_debit, total_credit, status,
	       reversed_by_entry_id, reversing_entry_id,
	       created_at, created_by, last_updated_at, last_updated_by`

// insertEntryInTx allocates the tenant's next journal_entry number and inserts
// the header and lines, all on the caller's transaction. The allocated number
// is written into the stored header and returned.
func (r *PgxLedgerRepository) insertEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.LedgerEntry, lines []domain.LedgerLine) (*domain.GeneratedNumber, error) {
	counter, sequence, err := r.sequenceRepo.AllocateNextInTx(ctx, tx, entry.TenantID, domain.DocTypeJournalEntry, entry.CreatedAt)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to allocate entry number for tenant "+entry.TenantID, err)
	}
	generated := &domain.GeneratedNumber{
		Number:     counter.Format(sequence, counter.FiscalYear, ""),
		Sequence:   sequence,
		FiscalYear: counter.FiscalYear,
	}
	entry.EntryNumber = generated.Number

	modelEntry := mapping.ToModelLedgerEntry(entry)
	entryQuery := `
		INSERT INTO ledger_entries (
			entry_id, tenant_id, entry_number, entry_date, entry_type,
			reference_type, reference_id, reference_number, description, description_ar,
			currency_code, exchange_rate, total_debit, total_credit, status,
			reversed_by_entry_id, reversing_entry_id,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21);
	`
	_, err = tx.Exec(ctx, entryQuery,
		modelEntry.EntryID,
		modelEntry.TenantID,
		modelEntry.EntryNumber,
		modelEntry.EntryDate,
		modelEntry.EntryType,
		modelEntry.ReferenceType,
		modelEntry.ReferenceID,
		modelEntry.ReferenceNumber,
		modelEntry.Description,
		modelEntry.DescriptionAr,
		modelEntry.CurrencyCode,
		modelEntry.ExchangeRate,
		modelEntry.TotalDebit,
		modelEntry.TotalCredit,
		modelEntry.Status,
		modelEntry.ReversedByEntryID,
		modelEntry.ReversingEntryID,
		modelEntry.CreatedAt,
		modelEntry.CreatedBy,
		modelEntry.LastUpdatedAt,
		modelEntry.LastUpdatedBy,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert ledger entry "+modelEntry.EntryID, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO ledger_lines (
			line_id, entry_id, line_number, account_id, account_code, description,
			debit_amount, credit_amount,
			cost_center_id, project_id, department_id, counterparty_id, item_id, warehouse_id,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	for _, line := range lines {
		modelLine := mapping.ToModelLedgerLine(line)
		batch.Queue(lineQuery,
			modelLine.LineID,
			modelLine.EntryID,
			modelLine.LineNumber,
			modelLine.AccountID,
			modelLine.AccountCode,
			modelLine.Description,
			modelLine.DebitAmount,
			modelLine.CreditAmount,
			modelLine.CostCenterID,
			modelLine.ProjectID,
			modelLine.DepartmentID,
			modelLine.CounterpartyID,
			modelLine.ItemID,
			modelLine.WarehouseID,
			modelLine.CreatedAt,
			modelLine.CreatedBy,
			modelLine.LastUpdatedAt,
			modelLine.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to execute line batch for entry "+modelEntry.EntryID, err)
	}

	return generated, nil
}

// SaveEntry persists a header and its lines atomically.
func (r *PgxLedgerRepository) SaveEntry(ctx context.Context, entry domain.LedgerEntry, lines []domain.LedgerLine) (*domain.GeneratedNumber, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx) // Will be ignored if transaction is committed successfully

	generated, err := r.insertEntryInTx(ctx, tx, entry, lines)
	if err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return generated, nil
}

// SaveReversal persists the contra entry and flips the original to REVERSED in
// one transaction. The original is updated with a conditional WHERE on POSTED;
// zero rows affected means another reversal committed first and the whole
// transaction is abandoned with ErrConflict.
func (r *PgxLedgerRepository) SaveReversal(ctx context.Context, reversal domain.LedgerEntry, lines []domain.LedgerLine, originalEntryID string) (*domain.GeneratedNumber, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx) // Will be ignored if transaction is committed successfully

	generated, err := r.insertEntryInTx(ctx, tx, reversal, lines)
	if err != nil {
		return nil, err
	}

	flipQuery := `
		UPDATE ledger_entries
		SET status = $3,
		    reversed_by_entry_id = $4,
		    last_updated_at = $5,
		    last_updated_by = $6
		WHERE entry_id = $1 AND tenant_id = $2 AND status = $7;
	`
	cmdTag, err := tx.Exec(ctx, flipQuery,
		originalEntryID,
		reversal.TenantID,
		models.Reversed,
		reversal.EntryID,
		reversal.CreatedAt,
		reversal.CreatedBy,
		models.Posted,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to mark entry "+originalEntryID+" reversed", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return nil, apperrors.ErrConflict
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return generated, nil
}

func scanEntry(row rowScanner) (*domain.LedgerEntry, error) {
	var m models.LedgerEntry
	var referenceID sql.NullString
	var reversedByID sql.NullString
	var reversingID sql.NullString

	err := row.Scan(
		&m.EntryID,
		&m.TenantID,
		&m.EntryNumber,
		&m.EntryDate,
		&m.EntryType,
		&m.ReferenceType,
		&referenceID,
		&m.ReferenceNumber,
		&m.Description,
		&m.DescriptionAr,
		&m.CurrencyCode,
		&m.ExchangeRate,
		&m.TotalDebit,
		&m.TotalCredit,
		&m.Status,
		&reversedByID,
		&reversingID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}

	if referenceID.Valid {
		m.ReferenceID = &referenceID.String
	}
	if reversedByID.Valid {
		m.ReversedByEntryID = &reversedByID.String
	}
	if reversingID.Valid {
		m.ReversingEntryID = &reversingID.String
	}

	entry := mapping.ToDomainLedgerEntry(m)
	return &entry, nil
}

// FindEntryByID retrieves an entry header by its ID.
func (r *PgxLedgerRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM ledger_entries
		WHERE entry_id = $1;
	`
	entry, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find entry by ID "+entryID, err)
	}
	return entry, nil
}

// FindLinesByEntryID retrieves all lines of an entry in line-number order.
func (r *PgxLedgerRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.LedgerLine, error) {
	query := `
		SELECT line_id, entry_id, line_number, account_id, account_code, description,
		       debit_amount, credit_amount,
		       cost_center_id, project_id, department_id, counterparty_id, item_id, warehouse_id,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM ledger_lines
		WHERE entry_id = $1
		ORDER BY line_number;
	`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for entry "+entryID, err)
	}
	defer rows.Close()

	modelLines := []models.LedgerLine{}
	for rows.Next() {
		var l models.LedgerLine
		err := rows.Scan(
			&l.LineID,
			&l.EntryID,
			&l.LineNumber,
			&l.AccountID,
			&l.AccountCode,
			&l.Description,
			&l.DebitAmount,
			&l.CreditAmount,
			&l.CostCenterID,
			&l.ProjectID,
			&l.DepartmentID,
			&l.CounterpartyID,
			&l.ItemID,
			&l.WarehouseID,
			&l.CreatedAt,
			&l.CreatedBy,
			&l.LastUpdatedAt,
			&l.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line row for entry "+entryID, err)
		}
		modelLines = append(modelLines, l)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating line rows for entry "+entryID, err)
	}

	return mapping.ToDomainLedgerLineSlice(modelLines), nil
}

// FindEntriesByReference retrieves all entries recorded against a business
// document, newest first.
func (r *PgxLedgerRepository) FindEntriesByReference(ctx context.Context, tenantID, referenceType, referenceID string) ([]domain.LedgerEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM ledger_entries
		WHERE tenant_id = $1 AND reference_type = $2 AND reference_id = $3
		ORDER BY created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, referenceType, referenceID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query entries for reference "+referenceType+"/"+referenceID, err)
	}
	defer rows.Close()

	entries := []domain.LedgerEntry{}
	for rows.Next() {
		entry, scanErr := scanEntry(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan entry row for reference "+referenceType+"/"+referenceID, scanErr)
		}
		entries = append(entries, *entry)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating entry rows for reference "+referenceType+"/"+referenceID, err)
	}

	return entries, nil
}

// ListEntriesByTenant retrieves a paginated list of entries for a tenant using
// token-based pagination. It returns the entries, a token for the next page
// (if any), and an error.
func (r *PgxLedgerRepository) ListEntriesByTenant(ctx context.Context, tenantID string, limit int, nextToken *string, includeReversals bool) ([]domain.LedgerEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + entryColumns + `
		FROM ledger_entries
	`
	// Conditionally hide reversed originals and their contra entries.
	filterClause := `WHERE tenant_id = $1`
	if !includeReversals {
		filterClause += ` AND status != 'REVERSED' AND reversing_entry_id IS NULL`
	}

	// Ordering must be stable across pages; created_at breaks entry_date ties.
	orderByClause := `ORDER BY entry_date DESC, created_at DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{tenantID}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken: %v", apperrors.ErrValidation, decodeErr)
		}

		// Tuple comparison keeps the cursor condition index-friendly.
		cursorClause := `AND (entry_date, created_at) < ($2, $3)`
		args = append(args, lastDate, lastCreatedAt)

		query := baseQuery + " " + filterClause + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + filterClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}

	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query entries for tenant "+tenantID, err)
	}
	defer rows.Close()

	entries := make([]domain.LedgerEntry, 0, fetchLimit)
	for rows.Next() {
		entry, scanErr := scanEntry(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan entry row for tenant "+tenantID, scanErr)
		}
		entries = append(entries, *entry)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating entry rows for tenant "+tenantID, err)
	}

	var nextTokenVal *string
	if len(entries) > limit {
		// The token points to the last item included in this response page;
		// the next query starts after it.
		last := entries[limit-1]
		token := pagination.EncodeToken(last.EntryDate, last.CreatedAt)
		nextTokenVal = &token
		entries = entries[:limit]
	}

	return entries, nextTokenVal, nil
}
