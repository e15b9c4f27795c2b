package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/partscout"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ partscout.ComponentService = (*ComponentService)(nil)

const componentColumns = `id, part_number, manufacturer, description, price, price_tiers,
	available_stock, distributor, datasheet_link, source_url, created_at, updated_at`

// ComponentService implements partscout.ComponentService using SQLite.
type ComponentService struct {
	db *DB
}

// NewComponentService creates a new ComponentService.
func NewComponentService(db *DB) *ComponentService {
	return &ComponentService{db: db}
}

// queryer is satisfied by both *sql.DB wrappers and *sql.Tx.
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// UpsertComponent inserts rec or merges it into the stored record with the
// same part number. Known stored fields are never replaced by unknown ones.
func (s *ComponentService) UpsertComponent(ctx context.Context, rec *partscout.ComponentRecord) (*partscout.ComponentRecord, bool, error) {
	if err := rec.Validate(); err != nil {
		return nil, false, err
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, false, err
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC().Truncate(time.Second)

	existing, id, err := findComponent(ctx, tx, rec.PartNumber)
	created := partscout.ErrorCode(err) == partscout.ENOTFOUND
	switch {
	case created:
		existing = &partscout.ComponentRecord{
			PartNumber: partscout.PartNumber(strings.ToUpper(string(rec.PartNumber))),
			CreatedAt:  now,
		}
		existing.Merge(rec)
		existing.UpdatedAt = now
		if err := insertComponent(ctx, tx, uuid.New().String(), existing); err != nil {
			return nil, false, err
		}
	case err != nil:
		return nil, false, err
	default:
		existing.Merge(rec)
		existing.UpdatedAt = now
		if err := updateComponent(ctx, tx, id, existing); err != nil {
			return nil, false, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, false, err
	}
	return existing, created, nil
}

// FindComponentByPartNumber retrieves a record, matching the part number
// case-insensitively.
func (s *ComponentService) FindComponentByPartNumber(ctx context.Context, pn partscout.PartNumber) (*partscout.ComponentRecord, error) {
	rec, _, err := findComponent(ctx, s.db, pn)
	return rec, err
}

// FindComponents retrieves records matching the filter in insertion order.
func (s *ComponentService) FindComponents(ctx context.Context, filter partscout.ComponentFilter) ([]*partscout.ComponentRecord, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + componentColumns + " FROM components WHERE 1=1")

	if filter.PartNumber != nil {
		query.WriteString(" AND part_number = ?")
		args = append(args, string(*filter.PartNumber))
	}

	query.WriteString(" ORDER BY created_at ASC, rowid ASC")

	if filter.Offset > 0 && filter.Limit <= 0 {
		// SQLite requires LIMIT before OFFSET.
		query.WriteString(" LIMIT -1")
	}
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []*partscout.ComponentRecord
	for rows.Next() {
		rec, _, err := scanComponent(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}

	return recs, rows.Err()
}

// DeleteComponent permanently removes a record.
func (s *ComponentService) DeleteComponent(ctx context.Context, pn partscout.PartNumber) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM components WHERE part_number = ?", string(pn))
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return partscout.Errorf(partscout.ENOTFOUND, "component %s not found", pn)
	}

	return nil
}

// DeleteAllComponents removes every record and returns how many were removed.
func (s *ComponentService) DeleteAllComponents(ctx context.Context) (int, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM components")
	if err != nil {
		return 0, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(rows), nil
}

func findComponent(ctx context.Context, q queryer, pn partscout.PartNumber) (*partscout.ComponentRecord, string, error) {
	row := q.QueryRowContext(ctx, "SELECT "+componentColumns+" FROM components WHERE part_number = ?", string(pn))
	rec, id, err := scanComponent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, "", partscout.Errorf(partscout.ENOTFOUND, "component %s not found", pn)
	}
	return rec, id, err
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanComponent(row scanner) (*partscout.ComponentRecord, string, error) {
	var rec partscout.ComponentRecord
	var id, pn, tiers, createdAt, updatedAt string

	if err := row.Scan(&id, &pn, &rec.Manufacturer, &rec.Description, &rec.Price, &tiers,
		&rec.AvailableStock, &rec.Distributor, &rec.DatasheetLink, &rec.SourceURL,
		&createdAt, &updatedAt); err != nil {
		return nil, "", err
	}
	rec.PartNumber = partscout.PartNumber(pn)

	if err := json.Unmarshal([]byte(tiers), &rec.PriceTiers); err != nil {
		return nil, "", fmt.Errorf("failed to parse price_tiers: %w", err)
	}
	if len(rec.PriceTiers) == 0 {
		rec.PriceTiers = nil
	}

	var err error
	if rec.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, "", err
	}
	if rec.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, "", err
	}

	return &rec, id, nil
}

func encodeTiers(tiers []partscout.PriceTier) (string, error) {
	if tiers == nil {
		tiers = []partscout.PriceTier{}
	}
	b, err := json.Marshal(tiers)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func insertComponent(ctx context.Context, tx *sql.Tx, id string, rec *partscout.ComponentRecord) error {
	tiers, err := encodeTiers(rec.PriceTiers)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO components (`+componentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, string(rec.PartNumber), rec.Manufacturer, rec.Description, rec.Price, tiers,
		rec.AvailableStock, rec.Distributor, rec.DatasheetLink, rec.SourceURL,
		rec.CreatedAt.Format(time.RFC3339), rec.UpdatedAt.Format(time.RFC3339))
	return err
}

func updateComponent(ctx context.Context, tx *sql.Tx, id string, rec *partscout.ComponentRecord) error {
	tiers, err := encodeTiers(rec.PriceTiers)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `
		UPDATE components
		SET manufacturer = ?, description = ?, price = ?, price_tiers = ?,
			available_stock = ?, distributor = ?, datasheet_link = ?, source_url = ?,
			updated_at = ?
		WHERE id = ?
	`, rec.Manufacturer, rec.Description, rec.Price, tiers,
		rec.AvailableStock, rec.Distributor, rec.DatasheetLink, rec.SourceURL,
		rec.UpdatedAt.Format(time.RFC3339), id)
	return err
}
