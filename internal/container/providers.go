package container

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/garyjia/invoice-portal/internal/application/controller"
	"github.com/garyjia/invoice-portal/internal/application/port"
	"github.com/garyjia/invoice-portal/internal/domain/form"
	"github.com/garyjia/invoice-portal/internal/infrastructure/submission"
	httpapi "github.com/garyjia/invoice-portal/internal/interfaces/http"
	"github.com/garyjia/invoice-portal/internal/session"
)

// ProvideChecker creates the validation rules and message catalog.
func ProvideChecker(cfg *FormConfig, logger *zap.Logger) (*form.Checker, error) {
	if cfg == nil {
		return nil, fmt.Errorf("form config is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	messages := form.NewMessages(cfg.Language)
	checker := form.NewChecker(cfg.MaxFileSize, messages)

	logger.Info("Form checker created",
		zap.String("language", messages.Language()),
		zap.String("max_file_size", form.FormatFileSize(checker.MaxFileSize())))
	return checker, nil
}

// ProvideSubmitter creates the collaborator that receives valid payloads.
func ProvideSubmitter(logger *zap.Logger) (port.Submitter, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return submission.NewLogSubmitter(logger), nil
}

// SessionDeps holds dependencies for the session store.
type SessionDeps struct {
	Config    *session.Config
	Checker   *form.Checker
	Submitter port.Submitter
	Logger    *zap.Logger
}

// ProvideSessionStore creates the store that keeps one controller per browser.
func ProvideSessionStore(deps *SessionDeps) (*session.Store, error) {
	if deps == nil || deps.Config == nil {
		return nil, fmt.Errorf("session config is required")
	}
	if deps.Checker == nil {
		return nil, fmt.Errorf("checker is required")
	}
	if deps.Submitter == nil {
		return nil, fmt.Errorf("submitter is required")
	}
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return session.NewStore(*deps.Config, controller.DefaultElements(), deps.Checker, deps.Submitter, deps.Logger), nil
}

// ProvideServer creates the HTTP server over the session store.
func ProvideServer(cfg *Config, store *session.Store, logger *zap.Logger) (*httpapi.Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if store == nil {
		return nil, fmt.Errorf("session store is required")
	}

	page := cfg.Page
	if page.Language == "" {
		page.Language = cfg.Form.Language
	}

	server, err := httpapi.NewServer(cfg.Server, store, page, cfg.WebSocket, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP server: %w", err)
	}
	return server, nil
}
