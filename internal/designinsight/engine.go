package designinsight

import (
	"context"
	"errors"

	"github.com/PuerkitoBio/goquery"

	"github.com/Bahjat/design-playbook/internal/model"
	"github.com/Bahjat/design-playbook/internal/platform/errs"
)

// ErrEmptyURL is returned when there is nothing to analyze.
var ErrEmptyURL = errors.New("url is empty")

// Engine runs fetch, extraction and synthesis for one URL.
type Engine struct {
	fetcher Fetcher
}

// NewEngine returns an Engine backed by the given Fetcher.
func NewEngine(fetcher Fetcher) *Engine {
	return &Engine{fetcher: fetcher}
}

// Analyze normalizes rawURL, fetches it and derives the summary, statistics
// and specification. A failed fetch does not abort the analysis: the error
// text is recorded in FetchError and the remaining steps run without a
// document. Only an empty URL is reported as an error.
func (e *Engine) Analyze(ctx context.Context, rawURL string) (*model.DesignAnalysis, error) {
	target := NormalizeURL(rawURL)
	if target == "" {
		return nil, &errs.AppError{
			Kind:    errs.InvalidInput,
			Message: "Please enter a website URL to analyze.",
			Cause:   ErrEmptyURL,
		}
	}

	var fetchErr string
	doc, err := e.fetcher.Fetch(ctx, target)
	if err != nil {
		fetchErr = err.Error()
		doc = nil
	}

	return build(target, doc, fetchErr), nil
}

func build(target string, doc *goquery.Document, fetchErr string) *model.DesignAnalysis {
	summary := Extract(doc, target)
	return &model.DesignAnalysis{
		URL:           target,
		Summary:       summary,
		Stats:         Stats(doc, target),
		Specification: Synthesize(target, summary),
		FileName:      SpecFileName(summary.Title),
		HTMLVersion:   HTMLVersion(doc),
		FetchError:    fetchErr,
	}
}
