// Result-database access. A completed run leaves a SQLite database in its
// output directory; this reads the annual end-use summary out of it.

package runner

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// EndUse is one annual end-use row from a run's result database.
type EndUse struct {
	Fuel   string
	EndUse string
	Value  float64
	Units  string
}

// ReadEndUses opens the result database at path and returns its annual
// end-use rows in stored order.
func ReadEndUses(path string) ([]EndUse, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening result database %s: %w", path, err)
	}
	defer db.Close()

	rows, err := db.Query(`SELECT fuel, end_use, value, units FROM end_uses ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("querying end uses: %w", err)
	}
	defer rows.Close()

	var out []EndUse
	for rows.Next() {
		var eu EndUse
		if err := rows.Scan(&eu.Fuel, &eu.EndUse, &eu.Value, &eu.Units); err != nil {
			return nil, fmt.Errorf("scanning end use: %w", err)
		}
		out = append(out, eu)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// TotalByFuel sums end-use values per fuel.
func TotalByFuel(uses []EndUse) map[string]float64 {
	totals := make(map[string]float64)
	for _, eu := range uses {
		totals[eu.Fuel] += eu.Value
	}
	return totals
}
