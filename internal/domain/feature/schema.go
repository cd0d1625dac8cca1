// Package feature defines the canonical feature schema consumed by the
// dropout classifier and the mapping from raw tabular input into it.
package feature

// Kind is the declared numeric kind of a feature field.
type Kind int

// Feature field kinds.
const (
	// Int fields are discrete codes or counts; parsed values truncate
	// toward zero.
	Int Kind = iota
	// Float fields carry fractional values unchanged.
	Float
)

// Field binds one classifier input to its two external names: the
// snake_case key used by structured API callers and the human-readable
// column header used by spreadsheet import. Headers carry punctuation and
// apostrophes that cannot be derived from the keys, so the binding is a
// lookup table.
type Field struct {
	key    string
	header string
	def    float64
	kind   Kind
}

// Key returns the snake_case API key.
func (f Field) Key() string { return f.key }

// Header returns the spreadsheet column header.
func (f Field) Header() string { return f.header }

// Default returns the value substituted for absent or malformed input.
func (f Field) Default() float64 { return f.def }

// FieldKind returns the declared numeric kind.
func (f Field) FieldKind() Kind { return f.kind }

// fields is the fixed schema, in the exact order the classifier was
// trained on. Reordering silently corrupts predictions.
var fields = []Field{
	{"marital_status", "Marital status", 0, Int},
	{"application_mode", "Application mode", 0, Int},
	{"application_order", "Application order", 0, Int},
	{"course", "Course", 0, Int},
	{"daytime_evening_attendance", "Daytime/evening attendance", 0, Int},
	{"previous_qualification", "Previous qualification", 0, Int},
	{"nationality", "Nacionality", 0, Int},
	{"mothers_qualification", "Mother's qualification", 0, Int},
	{"fathers_qualification", "Father's qualification", 0, Int},
	{"mothers_occupation", "Mother's occupation", 0, Int},
	{"fathers_occupation", "Father's occupation", 0, Int},
	{"displaced", "Displaced", 0, Int},
	{"educational_special_needs", "Educational special needs", 0, Int},
	{"debtor", "Debtor", 0, Int},
	{"tuition_fees_up_to_date", "Tuition fees up to date", 1, Int},
	{"gender", "Gender", 0, Int},
	{"scholarship_holder", "Scholarship holder", 0, Int},
	{"age_at_enrollment", "Age at enrollment", 18, Int},
	{"international", "International", 0, Int},
	{"curricular_units_1st_sem_credited", "Curricular units 1st sem (credited)", 0, Float},
	{"curricular_units_1st_sem_enrolled", "Curricular units 1st sem (enrolled)", 0, Float},
	{"curricular_units_1st_sem_evaluations", "Curricular units 1st sem (evaluations)", 0, Float},
	{"curricular_units_1st_sem_approved", "Curricular units 1st sem (approved)", 0, Float},
	{"curricular_units_1st_sem_grade", "Curricular units 1st sem (grade)", 0, Float},
	{"curricular_units_1st_sem_without_evaluations", "Curricular units 1st sem (without evaluations)", 0, Float},
	{"curricular_units_2nd_sem_credited", "Curricular units 2nd sem (credited)", 0, Float},
	{"curricular_units_2nd_sem_enrolled", "Curricular units 2nd sem (enrolled)", 0, Float},
	{"curricular_units_2nd_sem_evaluations", "Curricular units 2nd sem (evaluations)", 0, Float},
	{"curricular_units_2nd_sem_approved", "Curricular units 2nd sem (approved)", 0, Float},
	{"curricular_units_2nd_sem_grade", "Curricular units 2nd sem (grade)", 0, Float},
	{"curricular_units_2nd_sem_without_evaluations", "Curricular units 2nd sem (without evaluations)", 0, Float},
	{"unemployment_rate", "Unemployment rate", 0, Float},
	{"inflation_rate", "Inflation rate", 0, Float},
	{"gdp", "GDP", 0, Float},
}

// Fields returns the schema in training order. The returned slice is
// shared; callers must not mutate it.
func Fields() []Field { return fields }

// Count returns the number of schema fields.
func Count() int { return len(fields) }

// Headers returns the spreadsheet column headers in schema order.
func Headers() []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.header
	}
	return out
}
