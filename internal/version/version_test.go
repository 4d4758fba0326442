package version

import (
	"strings"
	"testing"
)

func TestInfo_DefaultsToDev(t *testing.T) {
	info := Info()
	if info.BuildDate != "dev" && BuildDate == "" {
		t.Errorf("BuildDate = %q, want dev for unset build", info.BuildDate)
	}
	if !strings.Contains(String(), "rogue-server build") {
		t.Errorf("String() = %q", String())
	}
}
