package audit

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"circulation/core/database"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// SchemaReport is the result of comparing the live schema with the models.
type SchemaReport struct {
	Driver  string                 `json:"driver"`
	Matched bool                   `json:"matched"`
	Tables  map[string]TableReport `json:"tables"`
	Errors  []string               `json:"errors"`
}

// TableReport describes one table.
type TableReport struct {
	MissingColumns []string `json:"missing_columns"`
	TypeMismatches []string `json:"type_mismatches"`
	Status         string   `json:"status"` // "ok", "missing", "error"
}

// CheckSchema verifies every model's table and columns exist, using the gorm
// models as the source of truth. Extra live columns are ignored.
func CheckSchema(db *gorm.DB, models []any) (*SchemaReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	report := &SchemaReport{
		Driver:  db.Dialector.Name(),
		Matched: true,
		Tables:  make(map[string]TableReport),
		Errors:  []string{},
	}

	cache := &sync.Map{}
	for _, model := range models {
		s, err := schema.Parse(model, cache, db.NamingStrategy)
		if err != nil {
			return nil, fmt.Errorf("parse model %T: %w", model, err)
		}

		actual, err := database.GetTableColumns(db, s.Table)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("inspect table %s: %v", s.Table, err))
			report.Matched = false
			continue
		}

		tbl := TableReport{MissingColumns: []string{}, TypeMismatches: []string{}, Status: "ok"}
		if len(actual) == 0 {
			tbl.Status = "missing"
			tbl.MissingColumns = append(tbl.MissingColumns, s.DBNames...)
			report.Tables[s.Table] = tbl
			report.Matched = false
			continue
		}

		live := make(map[string]database.ColumnInfo, len(actual))
		for _, col := range actual {
			live[col.Field] = col
		}

		for _, name := range s.DBNames {
			col, ok := live[strings.ToLower(name)]
			if !ok {
				tbl.MissingColumns = append(tbl.MissingColumns, name)
				tbl.Status = "error"
				continue
			}

			// Only explicit type tags are compared; the driver picks the rest.
			want := strings.ToLower(s.FieldsByDBName[name].TagSettings["TYPE"])
			if want != "" && !strings.Contains(col.Type, want) {
				tbl.TypeMismatches = append(tbl.TypeMismatches,
					fmt.Sprintf("%s: expected %s, got %s", name, want, col.Type))
				tbl.Status = "error"
			}
		}

		sort.Strings(tbl.MissingColumns)
		if tbl.Status != "ok" {
			report.Matched = false
		}
		report.Tables[s.Table] = tbl
	}

	return report, nil
}
