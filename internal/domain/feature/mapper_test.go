package feature

import "testing"

func fieldIndex(t *testing.T, key string) int {
	t.Helper()
	for i, f := range Fields() {
		if f.Key() == key {
			return i
		}
	}
	t.Fatalf("no field %q", key)
	return -1
}

func TestMap_EmptyRecordYieldsDefaults(t *testing.T) {
	vec := Map(Record{})
	if vec.Len() != Count() {
		t.Fatalf("len = %d, want %d", vec.Len(), Count())
	}
	for i, f := range Fields() {
		if vec[i] != f.Default() {
			t.Errorf("%s = %v, want default %v", f.Key(), vec[i], f.Default())
		}
	}
}

func TestMap_ParsesByHeader(t *testing.T) {
	vec := Map(Record{
		"Age at enrollment": "25",
		"GDP":               "1.74",
	})
	if got := vec[fieldIndex(t, "age_at_enrollment")]; got != 25 {
		t.Errorf("age = %v, want 25", got)
	}
	if got := vec[fieldIndex(t, "gdp")]; got != 1.74 {
		t.Errorf("gdp = %v, want 1.74", got)
	}
}

func TestMapKeys_ParsesBySnakeKey(t *testing.T) {
	vec := MapKeys(Record{
		"age_at_enrollment": 25,
		"gdp":               1.74,
	})
	if got := vec[fieldIndex(t, "age_at_enrollment")]; got != 25 {
		t.Errorf("age = %v, want 25", got)
	}
	if got := vec[fieldIndex(t, "gdp")]; got != 1.74 {
		t.Errorf("gdp = %v, want 1.74", got)
	}
}

func TestMap_Totality(t *testing.T) {
	cases := map[string]any{
		"missing":    nil,
		"empty":      "",
		"whitespace": "   ",
		"garbage":    "not-a-number",
		"nan":        "NaN",
		"inf":        "+Inf",
		"bool":       true,
	}
	idx := fieldIndex(t, "age_at_enrollment")
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			vec := MapKeys(Record{"age_at_enrollment": raw})
			if vec[idx] != 18 {
				t.Errorf("age = %v, want default 18", vec[idx])
			}
		})
	}
}

func TestMap_IntKindTruncates(t *testing.T) {
	vec := MapKeys(Record{"age_at_enrollment": "19.9"})
	if got := vec[fieldIndex(t, "age_at_enrollment")]; got != 19 {
		t.Errorf("age = %v, want 19", got)
	}
	// Float kinds keep the fraction.
	vec = MapKeys(Record{"curricular_units_1st_sem_grade": "13.5"})
	if got := vec[fieldIndex(t, "curricular_units_1st_sem_grade")]; got != 13.5 {
		t.Errorf("grade = %v, want 13.5", got)
	}
}

func TestIdentity_Placeholders(t *testing.T) {
	id, name := Identity(Record{}, 0)
	if id != "CSV00001" || name != "Student 1" {
		t.Errorf("identity = %s/%s", id, name)
	}
	id, name = Identity(Record{}, 122)
	if id != "CSV00123" || name != "Student 123" {
		t.Errorf("identity = %s/%s", id, name)
	}
}

func TestIdentity_UsesProvidedColumns(t *testing.T) {
	id, name := Identity(Record{IDColumn: " S-9 ", NameColumn: "Ana"}, 0)
	if id != "S-9" || name != "Ana" {
		t.Errorf("identity = %s/%s", id, name)
	}
}

func TestIdentity_PartialFallback(t *testing.T) {
	id, name := Identity(Record{IDColumn: "S-9"}, 4)
	if id != "S-9" || name != "Student 5" {
		t.Errorf("identity = %s/%s", id, name)
	}
}
