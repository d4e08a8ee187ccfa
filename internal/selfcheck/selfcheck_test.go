package selfcheck

import "testing"

func TestRunAllPasses(t *testing.T) {
	var failures []string
	err := RunAll(func(name string, checkErr error) {
		if checkErr != nil {
			failures = append(failures, name)
		}
	})
	if err != nil {
		t.Fatalf("expected the full self-check suite to pass, first failure: %v (failed checks: %v)", err, failures)
	}
}

func TestChecksAreNamedAndNonEmpty(t *testing.T) {
	checks := Checks()
	if len(checks) == 0 {
		t.Fatalf("expected at least one check")
	}
	seen := make(map[string]bool)
	for _, c := range checks {
		if c.Name == "" {
			t.Fatalf("expected every check to have a name")
		}
		if seen[c.Name] {
			t.Fatalf("duplicate check name %q", c.Name)
		}
		seen[c.Name] = true
	}
}
