package experiences

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature wires experiences into the application.
type Feature struct {
	service *Service
	logger  *zap.Logger
}

func NewFeature(service *Service, logger *zap.Logger) *Feature {
	return &Feature{service: service, logger: logger}
}

func (f *Feature) Name() string { return "experiences" }

func (f *Feature) IsEnabled() bool { return f.service != nil }

func (f *Feature) Load(app fiber.Router) error {
	NewHandler(f.service, f.logger).RegisterRoutes(app)
	return nil
}
