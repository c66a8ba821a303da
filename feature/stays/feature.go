package stays

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature wires stays into the application.
type Feature struct {
	service *Service
	logger  *zap.Logger
}

// NewFeature creates the stays feature.
func NewFeature(service *Service, logger *zap.Logger) *Feature {
	return &Feature{service: service, logger: logger}
}

// Name returns the feature name.
func (f *Feature) Name() string { return "stays" }

// IsEnabled reports whether the feature can run.
func (f *Feature) IsEnabled() bool { return f.service != nil }

// Load registers the stay routes.
func (f *Feature) Load(app fiber.Router) error {
	NewHandler(f.service, f.logger).RegisterRoutes(app)
	return nil
}
