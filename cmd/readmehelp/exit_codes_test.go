package main

import (
	"errors"
	"fmt"
	"os"
	"testing"

	readmehelp "github.com/alnah/go-readmehelp"
	"github.com/alnah/go-readmehelp/internal/config"
	"github.com/alnah/go-readmehelp/internal/modules"
)

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"generic", errors.New("boom"), ExitGeneral},
		{"internal", readmehelp.ErrInternal, ExitGeneral},
		{"not exist", fmt.Errorf("stat: %w", os.ErrNotExist), ExitIO},
		{"permission", os.ErrPermission, ExitIO},
		{"read markdown", fmt.Errorf("%w: x", ErrReadMarkdown), ExitIO},
		{"write html", ErrWriteHTML, ExitIO},
		{"no input", ErrNoInput, ExitIO},
		{"config not found", fmt.Errorf("loading config: %w", config.ErrConfigNotFound), ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"invalid module", config.ErrInvalidModule, ExitUsage},
		{"invalid value", config.ErrInvalidValue, ExitUsage},
		{"module url", modules.ErrInvalidURL, ExitUsage},
		{"style", readmehelp.ErrStyleNotFound, ExitUsage},
		{"asset path", readmehelp.ErrInvalidAssetPath, ExitUsage},
		{"extension", ErrInvalidExtension, ExitUsage},
		{"workers", ErrInvalidWorkerCount, ExitUsage},
		{"assignment", ErrInvalidAssignment, ExitUsage},
		{"unknown module", ErrUnknownModule, ExitUsage},
		{"flags", ErrInvalidFlags, ExitUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
