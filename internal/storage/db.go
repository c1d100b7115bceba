package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"carta/internal"
	"carta/internal/pricing"
)

type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS catalog_items (
  id INTEGER PRIMARY KEY,
  code TEXT NOT NULL DEFAULT '',
  description TEXT NOT NULL DEFAULT '',
  country TEXT NOT NULL DEFAULT '',
  region TEXT NOT NULL DEFAULT '',
  category TEXT NOT NULL DEFAULT '',
  winery TEXT NOT NULL DEFAULT '',
  grapesJson TEXT NOT NULL DEFAULT '[]',
  aging TEXT NOT NULL DEFAULT '',
  pricesJson TEXT NOT NULL DEFAULT '{}',
  factor TEXT NOT NULL DEFAULT '0',
  importedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_catalog_country ON catalog_items(country);
CREATE INDEX IF NOT EXISTS idx_catalog_category ON catalog_items(category);

CREATE TABLE IF NOT EXISTS registered_items (
  id INTEGER PRIMARY KEY,
  code TEXT NOT NULL DEFAULT '',
  description TEXT NOT NULL DEFAULT '',
  country TEXT NOT NULL DEFAULT '',
  region TEXT NOT NULL DEFAULT '',
  category TEXT NOT NULL DEFAULT '',
  pricesJson TEXT NOT NULL DEFAULT '{}',
  factor TEXT NOT NULL DEFAULT '0',
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS overrides (
  itemId INTEGER PRIMARY KEY,
  factor TEXT,
  sell TEXT,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS suggestions (
  name TEXT PRIMARY KEY,
  ids TEXT NOT NULL DEFAULT '',
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS export_runs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  traceId TEXT NOT NULL,
  suggestion TEXT NOT NULL DEFAULT '',
  format TEXT NOT NULL,
  output TEXT NOT NULL,
  items INTEGER NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS metadata (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

	_, err := d.conn.Exec(schema)
	return err
}

// ReplaceCatalog swaps the whole catalog snapshot in one transaction.
// Registered items and overrides are kept.
func (d *DB) ReplaceCatalog(items []internal.CatalogItem) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM catalog_items`); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
INSERT INTO catalog_items (
  id, code, description, country, region, category, winery, grapesJson, aging, pricesJson, factor, importedAt
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, it := range items {
		grapesJSON, _ := json.Marshal(nonNilStrings(it.Grapes))
		pricesJSON, _ := json.Marshal(nonNilPrices(it.Prices))
		if _, err := stmt.Exec(
			it.ID, it.Code, it.Description, it.Country, it.Region, it.Category,
			it.Winery, string(grapesJSON), it.Aging, string(pricesJSON), it.Factor.String(),
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (d *DB) ListCatalog() ([]internal.CatalogItem, error) {
	rows, err := d.conn.Query(`
SELECT id, code, description, country, region, category, winery, grapesJson, aging, pricesJson, factor
FROM catalog_items ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.CatalogItem
	for rows.Next() {
		var it internal.CatalogItem
		var grapesJSON, pricesJSON, factor string
		if err := rows.Scan(
			&it.ID, &it.Code, &it.Description, &it.Country, &it.Region, &it.Category,
			&it.Winery, &grapesJSON, &it.Aging, &pricesJSON, &factor,
		); err != nil {
			return nil, err
		}
		_ = json.Unmarshal([]byte(grapesJSON), &it.Grapes)
		_ = json.Unmarshal([]byte(pricesJSON), &it.Prices)
		it.Factor = decimalOrZero(factor)
		out = append(out, it)
	}

	return out, rows.Err()
}

func (d *DB) CountCatalog() (int, error) {
	var n int
	err := d.conn.QueryRow(`SELECT COUNT(*) FROM catalog_items`).Scan(&n)
	return n, err
}

func (d *DB) InsertRegisteredItem(it internal.CatalogItem) error {
	pricesJSON, _ := json.Marshal(nonNilPrices(it.Prices))
	_, err := d.conn.Exec(`
INSERT INTO registered_items (id, code, description, country, region, category, pricesJson, factor)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`, it.ID, it.Code, it.Description, it.Country, it.Region, it.Category, string(pricesJSON), it.Factor.String())
	return err
}

func (d *DB) ListRegisteredItems() ([]internal.CatalogItem, error) {
	rows, err := d.conn.Query(`
SELECT id, code, description, country, region, category, pricesJson, factor
FROM registered_items ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.CatalogItem
	for rows.Next() {
		it := internal.CatalogItem{Registered: true}
		var pricesJSON, factor string
		if err := rows.Scan(&it.ID, &it.Code, &it.Description, &it.Country, &it.Region, &it.Category, &pricesJSON, &factor); err != nil {
			return nil, err
		}
		_ = json.Unmarshal([]byte(pricesJSON), &it.Prices)
		it.Factor = decimalOrZero(factor)
		out = append(out, it)
	}
	return out, rows.Err()
}

func (d *DB) ListOverrides() ([]pricing.Entry, error) {
	rows, err := d.conn.Query(`SELECT itemId, factor, sell FROM overrides ORDER BY itemId`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []pricing.Entry
	for rows.Next() {
		var e pricing.Entry
		var factor, sell sql.NullString
		if err := rows.Scan(&e.ID, &factor, &sell); err != nil {
			return nil, err
		}
		e.Factor = decimalPtr(factor)
		e.Sell = decimalPtr(sell)
		if e.Factor == nil && e.Sell == nil {
			continue
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// SaveOverride stores the non-nil parts of e, keeping the other part as is.
func (d *DB) SaveOverride(e pricing.Entry) error {
	var factor, sell *string
	if e.Factor != nil {
		s := e.Factor.String()
		factor = &s
	}
	if e.Sell != nil {
		s := e.Sell.String()
		sell = &s
	}
	_, err := d.conn.Exec(`
INSERT INTO overrides (itemId, factor, sell) VALUES (?, ?, ?)
ON CONFLICT(itemId) DO UPDATE SET
  factor = COALESCE(excluded.factor, overrides.factor),
  sell = COALESCE(excluded.sell, overrides.sell),
  updatedAt = CURRENT_TIMESTAMP
`, e.ID, factor, sell)
	return err
}

// ClearOverride drops the factor and/or sell override of an item.
func (d *DB) ClearOverride(itemID int, factor, sell bool) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if factor {
		if _, err := tx.Exec(`UPDATE overrides SET factor = NULL, updatedAt = CURRENT_TIMESTAMP WHERE itemId = ?`, itemID); err != nil {
			return err
		}
	}
	if sell {
		if _, err := tx.Exec(`UPDATE overrides SET sell = NULL, updatedAt = CURRENT_TIMESTAMP WHERE itemId = ?`, itemID); err != nil {
			return err
		}
	}
	if _, err := tx.Exec(`DELETE FROM overrides WHERE itemId = ? AND factor IS NULL AND sell IS NULL`, itemID); err != nil {
		return err
	}
	return tx.Commit()
}

func (d *DB) ListSuggestionNames() ([]string, error) {
	rows, err := d.conn.Query(`SELECT name FROM suggestions ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

// GetSuggestion returns the encoded id list, or nil when name is unknown.
func (d *DB) GetSuggestion(name string) (*string, error) {
	var ids string
	err := d.conn.QueryRow(`SELECT ids FROM suggestions WHERE name = ?`, name).Scan(&ids)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ids, nil
}

func (d *DB) UpsertSuggestion(name, ids string) error {
	_, err := d.conn.Exec(`
INSERT INTO suggestions (name, ids) VALUES (?, ?)
ON CONFLICT(name) DO UPDATE SET ids = excluded.ids, updatedAt = CURRENT_TIMESTAMP
`, name, ids)
	return err
}

// DeleteSuggestion reports whether a row was removed.
func (d *DB) DeleteSuggestion(name string) (bool, error) {
	res, err := d.conn.Exec(`DELETE FROM suggestions WHERE name = ?`, name)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (d *DB) InsertExportRun(run internal.ExportRun) error {
	_, err := d.conn.Exec(`INSERT INTO export_runs (traceId, suggestion, format, output, items) VALUES (?, ?, ?, ?, ?)`,
		run.TraceID, run.Suggestion, run.Format, run.Output, run.Items)
	return err
}

func (d *DB) ListExportRuns(limit int) ([]internal.ExportRun, error) {
	rows, err := d.conn.Query(`
SELECT traceId, suggestion, format, output, items, createdAt
FROM export_runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.ExportRun
	for rows.Next() {
		var r internal.ExportRun
		if err := rows.Scan(&r.TraceID, &r.Suggestion, &r.Format, &r.Output, &r.Items, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (d *DB) SetMetadata(key, value string) error {
	_, err := d.conn.Exec(`
INSERT INTO metadata (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updatedAt = CURRENT_TIMESTAMP
`, key, value)
	return err
}

func (d *DB) GetMetadata(key string) (*string, error) {
	var value string
	err := d.conn.QueryRow(`SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &value, nil
}

func decimalOrZero(v string) decimal.Decimal {
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func decimalPtr(v sql.NullString) *decimal.Decimal {
	if !v.Valid {
		return nil
	}
	d, err := decimal.NewFromString(v.String)
	if err != nil {
		return nil
	}
	return &d
}

func nonNilStrings(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

func nonNilPrices(v map[string]string) map[string]string {
	if v == nil {
		return map[string]string{}
	}
	return v
}
