// Package entropy assembles measurement pools from external capture
// sources and owns the diagnostic audit artifact. The visual pipeline
// that produces features (rendering, blob detection) lives outside this
// module; it is consumed through the Source interface only.
package entropy

import (
	"context"

	"github.com/entropyseed/seedseal/internal/models"
)

// Source produces seed material, one measurement pool per capture
// event. Implementations may block on I/O; they must honor ctx.
type Source interface {
	Capture(ctx context.Context) (*models.MeasurementPool, error)
}
