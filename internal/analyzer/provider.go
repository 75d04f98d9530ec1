package analyzer

import (
	"context"

	"github.com/Bahjat/design-playbook/internal/model"
)

// DesignProvider defines the contract for any design analysis engine.
type DesignProvider interface {
	Analyze(ctx context.Context, targetURL string) (*model.DesignAnalysis, error)
}
