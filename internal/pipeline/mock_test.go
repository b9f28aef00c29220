package pipeline

import (
	"context"
	"sync/atomic"

	"github.com/stretchr/testify/mock"

	"github.com/sells-group/admissions-geo/internal/config"
	"github.com/sells-group/admissions-geo/internal/model"
)

// --- Fetcher Mock ---

type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) Fetch(ctx context.Context, url string) (string, error) {
	args := m.Called(ctx, url)
	return args.String(0), args.Error(1)
}

// --- Store Mock ---

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Get(ctx context.Context, url string) (*model.CachedPageRecord, error) {
	args := m.Called(ctx, url)
	rec, _ := args.Get(0).(*model.CachedPageRecord)
	return rec, args.Error(1)
}

func (m *mockStore) Put(ctx context.Context, url string, rec *model.CachedPageRecord) error {
	args := m.Called(ctx, url, rec)
	return args.Error(0)
}

func (m *mockStore) Close() error { return nil }

// gatedFetcher blocks every fetch until release is closed.
type gatedFetcher struct {
	release chan struct{}
	calls   atomic.Int32
	html    string
}

func (g *gatedFetcher) Fetch(ctx context.Context, _ string) (string, error) {
	g.calls.Add(1)
	select {
	case <-g.release:
		return g.html, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func testConfig() *config.Config {
	return &config.Config{
		Parser: config.ParserConfig{
			Tier:         "full",
			MaxHeadings:  25,
			MaxBullets:   30,
			PreviewChars: 200,
		},
		Classify: config.ClassifyConfig{WindowRadius: 26, MaxWindow: 80, BucketCap: 12},
		Salary:   config.SalaryConfig{Min: 15000, Max: 200000},
	}
}
