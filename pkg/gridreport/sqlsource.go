package gridreport

import (
	"database/sql"
	"fmt"
	"time"
)

// FromSQLRows drains a query result into a Dataset, one worksheet row per
// database row. []byte values come back as text, which matches how the
// pq driver surfaces numeric and text columns scanned into interface{}.
func FromSQLRows(rows *sql.Rows) (*Dataset, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("getting columns: %w", err)
	}

	var data [][]interface{}
	for rows.Next() {
		values := make([]interface{}, len(columns))
		valuePtrs := make([]interface{}, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}
		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		row := make([]interface{}, len(columns))
		for i, v := range values {
			row[i] = normalizeSQLValue(v)
		}
		data = append(data, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	return &Dataset{Columns: columns, Rows: data}, nil
}

func normalizeSQLValue(v interface{}) interface{} {
	switch x := v.(type) {
	case []byte:
		return string(x)
	case time.Time:
		return x
	default:
		return v
	}
}
