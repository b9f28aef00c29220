// Package pipeline runs the fetch, cache, parse and classify chain for
// competitor pages and aggregates the results for one keyword.
package pipeline

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/sells-group/admissions-geo/internal/clue"
	"github.com/sells-group/admissions-geo/internal/competitor"
	"github.com/sells-group/admissions-geo/internal/config"
	"github.com/sells-group/admissions-geo/internal/gap"
	"github.com/sells-group/admissions-geo/internal/model"
	"github.com/sells-group/admissions-geo/internal/parser"
	"github.com/sells-group/admissions-geo/internal/scrape"
	"github.com/sells-group/admissions-geo/internal/store"
	"github.com/sells-group/admissions-geo/internal/summary"
)

// Analyzer turns URLs into cached page records and aggregates them. The page
// cache is the only state shared between calls.
type Analyzer struct {
	fetcher      scrape.Fetcher
	store        store.Store
	parser       parser.Parser
	classifier   *clue.Classifier
	summarizer   *summary.Summarizer
	bucketCap    int
	previewChars int
	group        singleflight.Group
	now          func() time.Time
}

// New creates an Analyzer from configuration and its collaborators.
func New(cfg *config.Config, fetcher scrape.Fetcher, st store.Store) (*Analyzer, error) {
	p, err := parser.New(cfg.Parser.Tier, parser.Limits{
		MaxHeadings: cfg.Parser.MaxHeadings,
		MaxBullets:  cfg.Parser.MaxBullets,
	})
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: create parser")
	}

	return &Analyzer{
		fetcher: fetcher,
		store:   st,
		parser:  p,
		classifier: clue.New(clue.Options{
			WindowRadius: cfg.Classify.WindowRadius,
			MaxWindow:    cfg.Classify.MaxWindow,
			BucketCap:    cfg.Classify.BucketCap,
		}),
		summarizer: summary.New(summary.Options{
			SalaryMin: cfg.Salary.Min,
			SalaryMax: cfg.Salary.Max,
		}),
		bucketCap:    cfg.Classify.BucketCap,
		previewChars: cfg.Parser.PreviewChars,
		now:          time.Now,
	}, nil
}

// AnalyzePage returns the record for url, from the cache when present.
// Concurrent calls for the same URL share one fetch. Failures come back as
// records with OK unset and a reason tag; they are cached like successes.
func (a *Analyzer) AnalyzePage(ctx context.Context, url string) model.CachedPageRecord {
	v, _, _ := a.group.Do(store.Key(url), func() (any, error) {
		return a.analyze(ctx, url), nil
	})
	return v.(model.CachedPageRecord)
}

func (a *Analyzer) analyze(ctx context.Context, url string) model.CachedPageRecord {
	log := zap.L().With(zap.String("url", url), zap.String("cache_key", store.Key(url)))

	cached, err := a.store.Get(ctx, url)
	if err != nil {
		log.Warn("pipeline: cache read failed, refetching", zap.Error(err))
	} else if cached != nil {
		log.Debug("pipeline: cache hit")
		return *cached
	}

	rec := model.CachedPageRecord{
		URL:       url,
		FetchedAt: a.now().UTC().Truncate(time.Second),
	}

	html, err := a.fetcher.Fetch(ctx, url)
	if err != nil {
		rec.FailReason = string(scrape.ReasonOf(err))
		log.Warn("pipeline: fetch failed", zap.String("reason", rec.FailReason), zap.Error(err))
		if ctx.Err() != nil {
			// A cancelled run says nothing about the URL itself.
			return rec
		}
	} else {
		rec.OK = true
		rec.PageContent = a.parser.Parse(html)
		rec.Clues = a.classifier.Classify(rec.Text)
		rec.Preview = parser.Preview(rec.Text, a.previewChars)
		rec.Text = ""
	}

	if err := a.store.Put(ctx, url, &rec); err != nil {
		log.Warn("pipeline: cache write failed", zap.Error(err))
	}
	return rec
}

// AnalyzeLinks analyzes a keyword's ranked result links in rank order and
// aggregates them. A failed page never stops the others.
func (a *Analyzer) AnalyzeLinks(ctx context.Context, links []model.RankedLink) model.Insight {
	ordered := append([]model.RankedLink(nil), links...)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Rank < ordered[j].Rank })

	insight := model.Insight{RunID: uuid.New().String()}
	log := zap.L().With(zap.String("run_id", insight.RunID))

	var sets []model.NumberClueSet
	for _, l := range ordered {
		if l.URL == "" || l.URL == model.PlaceholderLink || l.URL == model.NoneText {
			continue
		}
		rec := a.AnalyzePage(ctx, l.URL)
		insight.Pages = append(insight.Pages, model.PageResult{Rank: l.Rank, Record: rec})
		if !rec.OK || rec.Clues.Empty() {
			continue
		}
		sets = append(sets, rec.Clues)
		insight.Sources = append(insight.Sources, sourceLabel(l))
	}

	insight.Clues = clue.Merge(sets, a.bucketCap)
	insight.Summaries = a.summarizer.Summarize(insight.Clues)
	insight.Paragraphs = summary.BuildParagraphs(insight.Summaries, insight.Sources)
	insight.Gaps = gap.Extract(gap.FromPages(insight.Pages))

	log.Info("pipeline: links analyzed",
		zap.Int("pages", len(insight.Pages)),
		zap.Int("sources", len(insight.Sources)),
		zap.Int("gaps", len(insight.Gaps)),
	)
	return insight
}

// sourceLabel names a page by rank and host, e.g. "#1 example.edu.tw".
func sourceLabel(l model.RankedLink) string {
	host := competitor.Host(l.URL)
	if host == "" {
		host = l.URL
	}
	return fmt.Sprintf("#%d %s", l.Rank, host)
}
