package analyzer

import (
	"context"
	"log/slog"

	"github.com/Bahjat/design-playbook/internal/model"
	"github.com/Bahjat/design-playbook/internal/platform/errs"
	"github.com/Bahjat/design-playbook/internal/platform/requestid"
)

// Service orchestrates a DesignProvider and logs results.
type Service struct {
	provider DesignProvider
	logger   *slog.Logger
}

// NewService creates a Service backed by the given provider.
func NewService(provider DesignProvider, logger *slog.Logger) *Service {
	return &Service{provider: provider, logger: logger}
}

// Analyze delegates to the provider and logs the outcome. A degraded result
// (the page could not be fetched) is logged as a warning and still returned.
func (s *Service) Analyze(ctx context.Context, targetURL string) (*model.DesignAnalysis, error) {
	logger := s.logger.With("url", targetURL, "request_id", requestid.FromContext(ctx))

	result, err := s.provider.Analyze(ctx, targetURL)
	if err != nil {
		logger.Error("analysis failed", "error", err, "kind", errs.KindOf(err).String())
		return nil, err
	}

	if result.Degraded() {
		logger.Warn("analysis degraded", "fetch_error", result.FetchError)
		return result, nil
	}

	logger.Info("analysis complete",
		"title", result.Summary.Title,
		"html_version", result.HTMLVersion,
		"nav_items", len(result.Summary.NavItems),
		"headings", len(result.Summary.Headings),
		"colors", len(result.Summary.Colors),
		"buttons", len(result.Summary.Buttons),
	)
	return result, nil
}
