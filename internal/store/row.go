package store

// Row is one raw object-table row keyed by column name. SQLite's dynamic
// typing means a column may surface as int64, float64, string or []byte
// depending on what was stored; the accessors normalize that.
type Row map[string]any

// Int64 reads an integer column
func (r Row) Int64(col string) (int64, bool) {
	switch v := r[col].(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}

// Float64 reads a numeric column
func (r Row) Float64(col string) (float64, bool) {
	switch v := r[col].(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}

// String reads a text column; absent and NULL both yield ok=false
func (r Row) String(col string) (string, bool) {
	switch v := r[col].(type) {
	case string:
		return v, true
	case []byte:
		return string(v), true
	default:
		return "", false
	}
}

// Bool reads a flag column stored as an integer
func (r Row) Bool(col string) bool {
	switch v := r[col].(type) {
	case bool:
		return v
	case int64:
		return v != 0
	case int:
		return v != 0
	case float64:
		return v != 0
	default:
		return false
	}
}

// PK returns the row's primary key
func (r Row) PK() (int64, bool) {
	return r.Int64("Z_PK")
}

// Ent returns the row's entity code
func (r Row) Ent() (int, bool) {
	v, ok := r.Int64("Z_ENT")
	return int(v), ok
}
