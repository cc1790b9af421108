package sqlitestore

import "testing"

func TestParseEqualityFilter(t *testing.T) {
	cases := []struct {
		query     string
		wantField string
		wantValue string
		wantOK    bool
	}{
		{`name = "foo"`, "name", "foo", true},
		{`uri = 'gs://bucket/obj'`, "uri", "gs://bucket/obj", true},
		{`  name='bar'  `, "name", "bar", true},
		{"", "", "", false},
		{"not a filter", "", "", false},
	}
	for _, c := range cases {
		field, value, ok := parseEqualityFilter(c.query)
		if ok != c.wantOK || field != c.wantField || value != c.wantValue {
			t.Errorf("parseEqualityFilter(%q) = (%q, %q, %v), want (%q, %q, %v)",
				c.query, field, value, ok, c.wantField, c.wantValue, c.wantOK)
		}
	}
}

func TestColumnExists(t *testing.T) {
	if !columnExists("artifacts", "uri") {
		t.Error("artifacts.uri should exist")
	}
	if columnExists("contexts", "uri") {
		t.Error("contexts has no uri column")
	}
	if !columnExists("contexts", "name") {
		t.Error("contexts.name should exist")
	}
	if columnExists("artifacts", "bogus") {
		t.Error("bogus field should not resolve to a column")
	}
}

func TestSanitizeOrderByField(t *testing.T) {
	if got := sanitizeOrderByField("name"); got != "name" {
		t.Errorf("got %q, want name", got)
	}
	if got := sanitizeOrderByField("id; DROP TABLE types"); got != "id" {
		t.Errorf("got %q, want fallback to id for an unrecognized field", got)
	}
}
