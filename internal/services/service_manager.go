package services

import (
	"log/slog"

	"github.com/SAP-F-2025/phrase-sort-service/internal/cache"
	"github.com/SAP-F-2025/phrase-sort-service/internal/events"
	"github.com/SAP-F-2025/phrase-sort-service/internal/validator"
)

// ServiceManager groups the services the HTTP layer depends on.
type ServiceManager interface {
	Session() SessionService
	Import() ImportService
}

type serviceManager struct {
	session  SessionService
	importer ImportService
}

func NewServiceManager(
	cacheService cache.CacheService,
	publisher events.EventPublisher,
	logger *slog.Logger,
	validator *validator.Validator,
	sessionConfig SessionServiceConfig,
) ServiceManager {
	return &serviceManager{
		session:  NewSessionService(cacheService, publisher, logger, validator, sessionConfig),
		importer: NewImportService(logger),
	}
}

func (m *serviceManager) Session() SessionService {
	return m.session
}

func (m *serviceManager) Import() ImportService {
	return m.importer
}
