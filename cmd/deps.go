package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/admissions-geo/internal/competitor"
	"github.com/sells-group/admissions-geo/internal/dataset"
	"github.com/sells-group/admissions-geo/internal/model"
	"github.com/sells-group/admissions-geo/internal/pipeline"
	"github.com/sells-group/admissions-geo/internal/scrape"
	"github.com/sells-group/admissions-geo/internal/store"
)

// loadScope loads the dataset and narrows it to scope.
func loadScope(ctx context.Context, scope dataset.Scope) ([]model.KeywordRecord, error) {
	records, err := dataset.Load(ctx, cfg.Dataset.Path, cfg.Dataset.Sheet)
	if err != nil {
		return nil, eris.Wrap(err, "load dataset")
	}
	return dataset.Filter(records, scope), nil
}

// findKeyword returns the first record of department with keyword.
func findKeyword(records []model.KeywordRecord, department, keyword string) (model.KeywordRecord, error) {
	got := dataset.Filter(records, dataset.Scope{Department: department, Keyword: keyword})
	if len(got) == 0 {
		return model.KeywordRecord{}, eris.Errorf("keyword %q not found in department %q", keyword, department)
	}
	return got[0], nil
}

func brand() competitor.Brand {
	return competitor.BrandFromConfig(cfg.Brand)
}

// initAnalyzer opens the page cache and builds the page pipeline. The
// returned func closes the cache.
func initAnalyzer(ctx context.Context) (*pipeline.Analyzer, func(), error) {
	st, err := store.Open(ctx, cfg.Cache)
	if err != nil {
		return nil, nil, eris.Wrap(err, "open page cache")
	}
	closeStore := func() {
		if err := st.Close(); err != nil {
			zap.L().Warn("close page cache", zap.Error(err))
		}
	}

	fetcher := scrape.NewHTTPFetcher(scrape.Options{
		Timeout:      cfg.Fetch.Timeout(),
		MaxBodyBytes: cfg.Fetch.MaxBodyBytes,
		UserAgent:    cfg.Fetch.UserAgent,
		RatePerHost:  cfg.Fetch.RatePerHost,
		Burst:        cfg.Fetch.Burst,
	})

	a, err := pipeline.New(cfg, fetcher, st)
	if err != nil {
		closeStore()
		return nil, nil, err
	}
	return a, closeStore, nil
}
