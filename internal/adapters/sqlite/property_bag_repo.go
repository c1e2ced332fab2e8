// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/davesims/rhom-sti/internal/core/sti"
	"github.com/davesims/rhom-sti/internal/ports/secondary"
)

// keyColumn names the object ID in the pivoted view. It is distinct from
// every attribute name a caller would store, including "object".
const keyColumn = "__object"

// PropertyBagRepository implements secondary.PropertyBag with SQLite.
// Each attribute of an object is one row of object_values.
type PropertyBagRepository struct {
	db *sql.DB
}

// NewPropertyBagRepository creates a new SQLite property bag.
func NewPropertyBagRepository(db *sql.DB) *PropertyBagRepository {
	return &PropertyBagRepository{db: db}
}

// Find retrieves objects of source matching scope and opts.
//
// Objects are pivoted into one row per object with a column per attribute,
// so textual conditions may reference attributes by name. Structured
// conditions compare each attribute's text value for equality. The view
// always has a type column so discriminator conditions resolve even before
// any typed object is stored. A source with no stored attributes has no
// objects and yields an empty result.
func (r *PropertyBagRepository) Find(ctx context.Context, source, scope string, opts *secondary.FindOptions) ([]*secondary.ObjectRecord, error) {
	if opts == nil {
		opts = &secondary.FindOptions{}
	}

	attribs, err := r.attributes(ctx, source)
	if err != nil {
		return nil, err
	}
	if len(attribs) == 0 {
		return nil, nil
	}
	attribs = appendMissing(attribs, sti.DiscriminatorField)

	var where []string
	var whereArgs []any

	switch c := opts.Conditions.(type) {
	case nil:
	case map[string]any:
		keys := make([]string, 0, len(c))
		for k := range c {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			attribs = appendMissing(attribs, k)
			if c[k] == nil {
				where = append(where, quoteIdent(k)+" IS NULL")
				continue
			}
			where = append(where, quoteIdent(k)+" = ?")
			whereArgs = append(whereArgs, fmt.Sprint(c[k]))
		}
	case string:
		where = append(where, "("+c+")")
	default:
		return nil, fmt.Errorf("failed to find %s: unsupported conditions %T", source, opts.Conditions)
	}

	switch scope {
	case "all", "first":
	default:
		where = append(where, quoteIdent(keyColumn)+" = ?")
		whereArgs = append(whereArgs, scope)
	}

	pivot, pivotArgs := pivotQuery(attribs)
	query := "SELECT * FROM (" + pivot + ")"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += orderClause(opts, attribs)

	limit := opts.PerPage
	if scope == "first" {
		limit = 1
	}
	if limit > 0 || opts.Offset > 0 {
		if limit <= 0 {
			limit = -1
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", limit, opts.Offset)
	}

	args := append(pivotArgs, source)
	args = append(args, whereArgs...)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to find %s: %w", source, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	var records []*secondary.ObjectRecord
	for rows.Next() {
		values := make([]sql.NullString, len(columns))
		dest := make([]any, len(columns))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan object: %w", err)
		}

		record := &secondary.ObjectRecord{
			Source:     source,
			Object:     values[0].String,
			Attributes: make(map[string]string),
			Persisted:  true,
		}
		for i := 1; i < len(columns); i++ {
			if !values[i].Valid || !selected(opts.Select, columns[i]) {
				continue
			}
			record.Attributes[columns[i]] = values[i].String
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating objects: %w", err)
	}

	return records, nil
}

// Create persists a new object.
func (r *PropertyBagRepository) Create(ctx context.Context, source string, attrs map[string]any) (*secondary.ObjectRecord, error) {
	record := r.New(source, attrs)
	if err := r.Save(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// New builds an unpersisted object. nil attribute values are dropped and
// everything else is stored as its fmt.Sprint text.
func (r *PropertyBagRepository) New(source string, attrs map[string]any) *secondary.ObjectRecord {
	record := &secondary.ObjectRecord{
		Source:     source,
		Attributes: make(map[string]string, len(attrs)),
	}
	for k, v := range attrs {
		if v == nil {
			continue
		}
		record.Attributes[k] = fmt.Sprint(v)
	}
	return record
}

// Save replaces every attribute row of rec. Objects without an ID get the
// next free numeric ID.
func (r *PropertyBagRepository) Save(ctx context.Context, rec *secondary.ObjectRecord) error {
	if rec.Source == "" {
		return fmt.Errorf("failed to save object: source is required")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if rec.Object == "" {
		id, err := nextObjectID(ctx, tx)
		if err != nil {
			return err
		}
		rec.Object = id
	}

	_, err = tx.ExecContext(ctx,
		"DELETE FROM object_values WHERE source = ? AND object = ?",
		rec.Source, rec.Object,
	)
	if err != nil {
		return fmt.Errorf("failed to clear object %s: %w", rec.Object, err)
	}

	keys := make([]string, 0, len(rec.Attributes))
	for k := range rec.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO object_values (source, object, attrib, value) VALUES (?, ?, ?, ?)",
			rec.Source, rec.Object, k, rec.Attributes[k],
		)
		if err != nil {
			return fmt.Errorf("failed to save attribute %s: %w", k, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit object %s: %w", rec.Object, err)
	}

	rec.Persisted = true
	return nil
}

// attributes returns the attribute names stored for source, sorted.
func (r *PropertyBagRepository) attributes(ctx context.Context, source string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT DISTINCT attrib FROM object_values WHERE source = ? ORDER BY attrib ASC",
		source,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list attributes of %s: %w", source, err)
	}
	defer rows.Close()

	var attribs []string
	for rows.Next() {
		var attrib string
		if err := rows.Scan(&attrib); err != nil {
			return nil, fmt.Errorf("failed to scan attribute: %w", err)
		}
		attribs = append(attribs, attrib)
	}
	return attribs, rows.Err()
}

// nextObjectID returns the next object ID across all sources.
func nextObjectID(ctx context.Context, tx *sql.Tx) (string, error) {
	var maxID int64
	err := tx.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(object AS INTEGER)), 0) FROM object_values",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next object ID: %w", err)
	}
	return strconv.FormatInt(maxID+1, 10), nil
}

// pivotQuery builds the per-object view of a source. The source itself is
// the last placeholder; its value is appended by the caller.
func pivotQuery(attribs []string) (string, []any) {
	var b strings.Builder
	args := make([]any, 0, len(attribs))

	b.WriteString("SELECT ov.object AS ")
	b.WriteString(quoteIdent(keyColumn))
	for _, a := range attribs {
		b.WriteString(", MAX(CASE WHEN ov.attrib = ? THEN ov.value END) AS ")
		b.WriteString(quoteIdent(a))
		args = append(args, a)
	}
	b.WriteString(" FROM object_values ov WHERE ov.source = ? GROUP BY ov.object")
	return b.String(), args
}

func orderClause(opts *secondary.FindOptions, attribs []string) string {
	dir := "ASC"
	if strings.EqualFold(opts.OrderDir, "DESC") {
		dir = "DESC"
	}
	if opts.Order != "" && contains(attribs, opts.Order) {
		return " ORDER BY " + quoteIdent(opts.Order) + " " + dir + ", CAST(" + quoteIdent(keyColumn) + " AS INTEGER) ASC"
	}
	return " ORDER BY CAST(" + quoteIdent(keyColumn) + " AS INTEGER) " + dir
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func appendMissing(list []string, s string) []string {
	if contains(list, s) {
		return list
	}
	return append(list, s)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func selected(sel []string, attrib string) bool {
	return len(sel) == 0 || contains(sel, attrib)
}

// Ensure PropertyBagRepository implements the interface.
var _ secondary.PropertyBag = (*PropertyBagRepository)(nil)
