package container

import (
	"net/http"

	"go-translation-studio/internal/config"
	"go-translation-studio/internal/factory"
	"go-translation-studio/internal/gateway"
	"go-translation-studio/internal/logger"
	"go-translation-studio/internal/observer"
	"go-translation-studio/internal/service"
	"go-translation-studio/internal/transport"
	"go-translation-studio/pkg/validation"

	"github.com/sirupsen/logrus"
)

// Container holds all application dependencies
type Container struct {
	config  *config.Config
	log     *logrus.Logger
	gateway *gateway.Gateway
	service service.TranslationService
	handler http.Handler
}

// NewContainer builds the dependency graph from the given configuration.
func NewContainer(cfg *config.Config) (*Container, error) {
	log, err := logger.New(cfg.LogLevel, cfg.LogDir)
	if err != nil {
		return nil, err
	}

	events := observer.NewEventPublisher(log)
	events.Subscribe(observer.NewLoggingObserver(log))
	events.Subscribe(observer.NewMetricsObserver())

	client := gateway.NewAnthropicClient(cfg)
	gw := gateway.NewGateway(client, cfg.PrimaryModel, cfg.FallbackModel, log, events)

	builders := factory.NewBuilderFactory()
	pool := service.NewWorkerPool(cfg.GroupWorkers)
	svc := service.NewTranslationService(gw, builders, pool, log, events)

	validator := validation.NewRequestValidator()
	handler := transport.NewHandler(svc, validator, cfg, log)

	return &Container{
		config:  cfg,
		log:     log,
		gateway: gw,
		service: svc,
		handler: handler,
	}, nil
}

// Handler returns the HTTP handler
func (c *Container) Handler() http.Handler {
	return c.handler
}

// Config returns the configuration
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the application logger
func (c *Container) Logger() *logrus.Logger {
	return c.log
}
