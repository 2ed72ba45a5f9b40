package version

import (
	"runtime"
	"strings"
	"testing"
)

func TestShort(t *testing.T) {
	if got := Short(); got != "v"+Version {
		t.Errorf("Short() = %q, want %q", got, "v"+Version)
	}
}

func TestDetailed(t *testing.T) {
	got := Detailed()
	if !strings.Contains(got, Short()) {
		t.Errorf("Detailed() = %q, want it to contain %q", got, Short())
	}
	if !strings.Contains(got, runtime.GOOS+"/"+runtime.GOARCH) {
		t.Errorf("Detailed() = %q, want it to contain the platform", got)
	}
}
