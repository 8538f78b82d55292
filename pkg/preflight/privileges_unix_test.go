//go:build unix

package preflight

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mcscan/internal/testutils"
)

func TestCheckPrivileges(t *testing.T) {
	original := geteuid
	defer func() { geteuid = original }()

	tests := []struct {
		name    string
		euid    int
		want    bool
		wantLog bool
	}{
		{"root", 0, true, false},
		{"unprivileged user", 1000, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, logs := testutils.SetupTestLogger()
			geteuid = func() int { return tt.euid }

			assert.Equal(t, tt.want, CheckPrivileges(logger))
			if tt.wantLog {
				assert.Contains(t, logs(), "Running without root privileges.")
				assert.Contains(t, logs(), "euid=1000")
			} else {
				assert.Empty(t, logs())
			}
		})
	}
}
