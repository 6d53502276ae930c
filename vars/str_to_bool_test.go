package vars

import "testing"

func TestParseBool(t *testing.T) {
	for _, c := range []struct {
		str   string
		value bool
		ok    bool
	}{
		{"yes", true, true},
		{" ON ", true, true},
		{"1", true, true},
		{"n", false, true},
		{"off", false, true},
		{"", false, false},
		{"maybe", false, false},
	} {
		value, ok := ParseBool(c.str)
		if value != c.value || ok != c.ok {
			t.Fatalf("%q: got %v %v", c.str, value, ok)
		}
		if StrToBool(c.str) != c.value {
			t.Fatalf("%q", c.str)
		}
	}
}
