package diag

import "testing"

func TestParseSeverity(t *testing.T) {
	cases := []struct {
		in   string
		want Severity
	}{
		{"error", SevError},
		{"Error", SevError},
		{"warning", SevWarning},
		{"WARN", SevWarning},
		{"note", SevInfo},
		{"info", SevInfo},
		// Unknown severities degrade to error so they are never hidden.
		{"fatal", SevError},
		{"", SevError},
	}
	for _, tc := range cases {
		if got := ParseSeverity(tc.in); got != tc.want {
			t.Errorf("ParseSeverity(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestSeverity_String(t *testing.T) {
	cases := map[Severity]string{
		SevInfo:    "INFO",
		SevWarning: "WARNING",
		SevError:   "ERROR",
	}
	for sev, want := range cases {
		if got := sev.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", sev, got, want)
		}
	}
}
