// SPDX-License-Identifier: GPL-3.0-only

package commons

import "testing"

func TestGetEnv(t *testing.T) {
	t.Setenv("TEST_ENV_KEY", "value")

	if got := GetEnv("TEST_ENV_KEY"); got != "value" {
		t.Errorf("Expected value, got %q", got)
	}
	if got := GetEnv("TEST_ENV_KEY", "fallback"); got != "value" {
		t.Errorf("Fallback should not override a set variable, got %q", got)
	}
	if got := GetEnv("TEST_ENV_MISSING"); got != "" {
		t.Errorf("Expected empty string for unset variable, got %q", got)
	}
	if got := GetEnv("TEST_ENV_MISSING", "fallback"); got != "fallback" {
		t.Errorf("Expected fallback for unset variable, got %q", got)
	}
}
