package app

import (
	"slices"
	"testing"
	"time"
)

func TestEnvHelpers_Defaults(t *testing.T) {
	if got := EnvString("JOBDECK_TEST_UNSET_STRING", "fallback"); got != "fallback" {
		t.Fatalf("EnvString default = %q", got)
	}
	if got := EnvBool("JOBDECK_TEST_UNSET_BOOL", true); !got {
		t.Fatalf("EnvBool default = %v", got)
	}
	if got := EnvInt("JOBDECK_TEST_UNSET_INT", 7); got != 7 {
		t.Fatalf("EnvInt default = %d", got)
	}
	if got := EnvDuration("JOBDECK_TEST_UNSET_DUR", time.Minute); got != time.Minute {
		t.Fatalf("EnvDuration default = %v", got)
	}
}

func TestEnvHelpers_Overrides(t *testing.T) {
	t.Setenv("JOBDECK_TEST_STRING", "  value  ")
	if got := EnvString("JOBDECK_TEST_STRING", "x"); got != "value" {
		t.Fatalf("EnvString = %q", got)
	}

	t.Setenv("JOBDECK_TEST_BOOL", "false")
	if got := EnvBool("JOBDECK_TEST_BOOL", true); got {
		t.Fatalf("EnvBool = %v", got)
	}

	t.Setenv("JOBDECK_TEST_INT", "42")
	if got := EnvInt("JOBDECK_TEST_INT", 7); got != 42 {
		t.Fatalf("EnvInt = %d", got)
	}

	// Invalid values fall back to defaults.
	t.Setenv("JOBDECK_TEST_INT_BAD", "-3")
	if got := EnvInt("JOBDECK_TEST_INT_BAD", 7); got != 7 {
		t.Fatalf("EnvInt invalid = %d", got)
	}

	t.Setenv("JOBDECK_TEST_DUR", "250ms")
	if got := EnvDuration("JOBDECK_TEST_DUR", time.Minute); got != 250*time.Millisecond {
		t.Fatalf("EnvDuration = %v", got)
	}
}

func TestEnvCSV(t *testing.T) {
	t.Setenv("JOBDECK_TEST_CSV", " a, ,b ,c")
	got := EnvCSV("JOBDECK_TEST_CSV", "")
	if !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Fatalf("EnvCSV = %v", got)
	}
	if got := EnvCSV("JOBDECK_TEST_UNSET_CSV", "x,y"); !slices.Equal(got, []string{"x", "y"}) {
		t.Fatalf("EnvCSV default = %v", got)
	}
}
