package feature

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Record is one semi-structured input row: raw column headers or API keys
// mapped to raw values (string, number, or missing). Produced at the
// ingestion boundary, consumed once here, then discarded.
type Record map[string]any

// Identity column names and placeholder formats for records that carry no
// identity of their own.
const (
	IDColumn   = "student_id"
	NameColumn = "name"

	idPlaceholderFormat   = "CSV%05d"
	namePlaceholderFormat = "Student %d"
)

// Map builds a Vector from a header-keyed record (spreadsheet import).
// It is total: every absent, empty, non-parseable, or non-finite cell is
// replaced by the field default, never rejected. A best-effort score beats
// an import-time failure on one malformed cell.
func Map(rec Record) Vector {
	return mapWith(rec, Field.Header)
}

// MapKeys builds a Vector from a snake_case-keyed record (API callers).
// Same totality contract as Map.
func MapKeys(rec Record) Vector {
	return mapWith(rec, Field.Key)
}

func mapWith(rec Record, name func(Field) string) Vector {
	vec := make(Vector, len(fields))
	for i, f := range fields {
		val, ok := coerce(rec[name(f)])
		if !ok {
			val = f.def
		}
		if f.kind == Int {
			val = math.Trunc(val)
		}
		vec[i] = val
	}
	return vec
}

// Identity extracts the student identifier and display name from a record,
// synthesizing deterministic placeholders from the 1-based ordinal when the
// source supplies neither. Placeholders are unique within one import.
func Identity(rec Record, ordinal int) (id, name string) {
	id = stringValue(rec[IDColumn])
	if id == "" {
		id = fmt.Sprintf(idPlaceholderFormat, ordinal+1)
	}
	name = stringValue(rec[NameColumn])
	if name == "" {
		name = fmt.Sprintf(namePlaceholderFormat, ordinal+1)
	}
	return id, name
}

// coerce attempts to read a raw cell as a finite float64.
func coerce(raw any) (float64, bool) {
	switch v := raw.(type) {
	case nil:
		return 0, false
	case float64:
		return finite(v)
	case float32:
		return finite(float64(v))
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return finite(f)
	default:
		return 0, false
	}
}

func finite(f float64) (float64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func stringValue(raw any) string {
	switch v := raw.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	default:
		return ""
	}
}
