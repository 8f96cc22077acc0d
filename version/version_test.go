package version

import (
	"strings"
	"testing"
)

func TestPrintLicenses(t *testing.T) {
	// Setup
	var buffer strings.Builder

	// Exercise
	PrintLicenses(&buffer)

	// Verify
	for _, license := range Licenses {
		if !strings.Contains(buffer.String(), license.ModuleName+":\n  "+license.LicenseName) {
			t.Errorf("license of %s is not printed", license.ModuleName)
		}
	}
}

func TestCurrent(t *testing.T) {
	if Current().String() != "0.1.0" {
		t.Errorf("unexpected version: %s", Current())
	}
}
