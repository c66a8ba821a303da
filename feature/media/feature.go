package media

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature wires the media library into the application.
type Feature struct {
	service *Service
	logger  *zap.Logger
}

// NewFeature creates the media feature.
func NewFeature(service *Service, logger *zap.Logger) *Feature {
	return &Feature{service: service, logger: logger}
}

// Name returns the feature name.
func (f *Feature) Name() string { return "media" }

// IsEnabled reports whether the feature can run.
func (f *Feature) IsEnabled() bool { return f.service != nil }

// Load registers the media routes.
func (f *Feature) Load(app fiber.Router) error {
	NewHandler(f.service, f.logger).RegisterRoutes(app)
	return nil
}
