package student

import (
	"fmt"
	"strconv"

	"github.com/23f2000400/student-dropout-prediction/internal/domain/feature"
	"github.com/23f2000400/student-dropout-prediction/internal/domain/risk"
	"github.com/23f2000400/student-dropout-prediction/internal/domain/student"
)

// studentToHash converts a domain Student to a map for HSET. Feature
// attributes are stored under their snake_case keys; int-kind fields are
// rendered without a fractional part.
func studentToHash(s student.Student) map[string]string {
	attrs := s.Attributes()
	m := make(map[string]string, feature.Count()+6)
	m["student_id"] = s.ID()
	m["name"] = s.Name()
	for i, f := range feature.Fields() {
		var val float64
		if i < attrs.Len() {
			val = attrs[i]
		} else {
			val = f.Default()
		}
		m[f.Key()] = formatAttr(val, f.FieldKind())
	}
	m["risk_score"] = strconv.FormatFloat(s.Score().Probability(), 'f', -1, 64)
	m["risk_category"] = string(s.Score().Category())
	m["predicted_at"] = strconv.FormatInt(s.PredictedAt(), 10)
	m["created_at"] = strconv.FormatInt(s.CreatedAt(), 10)
	return m
}

// studentFromHash hydrates a domain Student from an HGETALL result map.
func studentFromHash(m map[string]string) (student.Student, error) {
	id := m["student_id"]
	if id == "" {
		return student.Student{}, fmt.Errorf("hash missing student_id")
	}

	attrs := make(feature.Vector, feature.Count())
	for i, f := range feature.Fields() {
		raw, ok := m[f.Key()]
		if !ok || raw == "" {
			attrs[i] = f.Default()
			continue
		}
		val, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			attrs[i] = f.Default()
			continue
		}
		attrs[i] = val
	}

	probability, err := strconv.ParseFloat(m["risk_score"], 64)
	if err != nil {
		return student.Student{}, fmt.Errorf("invalid risk_score: %w", err)
	}

	predictedAt, _ := strconv.ParseInt(m["predicted_at"], 10, 64)
	createdAt, _ := strconv.ParseInt(m["created_at"], 10, 64)

	sc := risk.Reconstruct(probability, risk.Category(m["risk_category"]))
	return student.Reconstruct(id, m["name"], attrs, sc, predictedAt, createdAt), nil
}

func formatAttr(val float64, kind feature.Kind) string {
	if kind == feature.Int {
		return strconv.FormatInt(int64(val), 10)
	}
	return strconv.FormatFloat(val, 'f', -1, 64)
}
