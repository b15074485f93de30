package readmehelp

import (
	"errors"

	"github.com/alnah/go-readmehelp/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	// ErrInternal indicates a recovered panic inside the pipeline.
	ErrInternal = errors.New("internal conversion error")

	// ErrStyleNotFound indicates the requested highlight style does not exist.
	ErrStyleNotFound = pipeline.ErrStyleNotFound

	// ErrInvalidAssetPath indicates the custom asset directory cannot be used.
	ErrInvalidAssetPath = errors.New("invalid asset path")

	// ErrAssetLoad indicates the stylesheet or page template failed to load.
	ErrAssetLoad = errors.New("failed to load page assets")
)
