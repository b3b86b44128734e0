// Package probe calls every read endpoint of the blog backend and reports
// which ones answer with a usable envelope.
package probe

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/okian/suwen/internal/adapters/apiclient"
	"github.com/okian/suwen/internal/domain/model"
	"github.com/okian/suwen/pkg/logger"
)

// ErrProbeFailed is returned by Run when at least one endpoint failed.
var ErrProbeFailed = errors.New("probe failed")

// check is one endpoint call. run decodes the payload so decode failures
// count against the endpoint.
type check struct {
	name string
	path string
	run  func(ctx context.Context) error
}

type runner struct {
	cfg    Config
	client *apiclient.Client
	runID  string
	log    logger.Logger

	results []Result
}

// Run probes the backend described by cfg. The list endpoints are called
// concurrently first; the detail endpoints follow for the first article
// and short found. The returned report is complete even when the error is
// ErrProbeFailed.
func Run(ctx context.Context, cfg Config) (*Report, error) {
	cfg = withDefaults(cfg)
	if cfg.BaseURL == "" {
		return nil, errors.New("probe: base url must not be empty")
	}

	r := &runner{
		cfg:    cfg,
		client: apiclient.New(cfg.BaseURL, apiclient.WithHTTPClient(&http.Client{Timeout: cfg.Timeout})),
		runID:  uuid.NewString(),
	}
	r.log = logger.Named("probe").With(logger.String("run_id", r.runID))

	report := &Report{RunID: r.runID, BaseURL: cfg.BaseURL, StartTime: time.Now()}

	r.log.Info(ctx, "starting probe",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("workers", cfg.Workers),
		logger.String("timeout", cfg.Timeout.String()),
		logger.String("lang", cfg.Lang))

	var (
		articleSlug string
		shortSlug   string
	)
	lists := []check{
		{name: "site", path: "/api/site", run: decode[model.Site](r, "/api/site")},
		{name: "me", path: "/api/me", run: decode[model.Identity](r, "/api/me")},
		{name: "articles", path: "/api/articles", run: func(ctx context.Context) error {
			articles, err := call[[]model.ArticleByList](ctx, r, "/api/articles", r.langParam(), apiclient.Q("limit", listLimit))
			if err == nil && len(articles) > 0 {
				articleSlug = articles[0].Slug
			}
			return err
		}},
		{name: "shorts", path: "/api/shorts", run: func(ctx context.Context) error {
			shorts, err := call[[]model.Short](ctx, r, "/api/shorts", r.langParam(), apiclient.Q("limit", listLimit))
			if err == nil && len(shorts) > 0 {
				shortSlug = shorts[0].Slug
			}
			return err
		}},
		{name: "tags", path: "/api/tags", run: decode[[]model.TagWithCount](r, "/api/tags")},
		{name: "archives", path: "/api/archives", run: decode[model.ArchiveGroups](r, "/api/archives", r.langParam())},
	}
	if err := r.runAll(ctx, lists); err != nil {
		return nil, err
	}

	var details []check
	if articleSlug != "" {
		p := "/api/articles/" + url.PathEscape(articleSlug)
		details = append(details, check{name: "article", path: "/api/articles/{slug}", run: decode[model.ArticleBySlug](r, p, r.langParam())})
	}
	if shortSlug != "" {
		p := "/api/shorts/" + url.PathEscape(shortSlug)
		details = append(details, check{name: "short", path: "/api/shorts/{slug}", run: decode[model.Short](r, p, r.langParam())})
	}
	if err := r.runAll(ctx, details); err != nil {
		return nil, err
	}

	report.Results = r.results
	report.Duration = time.Since(report.StartTime)

	if n := report.Failed(); n > 0 {
		r.log.Warn(ctx, "probe finished with failures", logger.Int("failed", n), logger.Int("total", len(report.Results)))
		return report, fmt.Errorf("%w: %d of %d endpoints", ErrProbeFailed, n, len(report.Results))
	}
	r.log.Info(ctx, "probe finished", logger.Int("total", len(report.Results)), logger.Duration("duration", report.Duration))
	return report, nil
}

func withDefaults(cfg Config) Config {
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Lang == "" {
		cfg.Lang = DefaultLang
	}
	return cfg
}

// runAll runs checks with at most cfg.Workers in flight. Endpoint failures
// are recorded, not returned; only a cancelled context stops the run.
func (r *runner) runAll(ctx context.Context, checks []check) error {
	if len(checks) == 0 {
		return nil
	}
	results := make([]Result, len(checks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Workers)
	for i, c := range checks {
		g.Go(func() error {
			start := time.Now()
			err := c.run(gctx)
			results[i] = classify(c, err, time.Since(start))
			r.logResult(gctx, results[i])
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("probe interrupted: %w", err)
	}

	r.results = append(r.results, results...)
	return nil
}

func (r *runner) logResult(ctx context.Context, res Result) {
	fields := []logger.Field{
		logger.String("endpoint", res.Name),
		logger.String("outcome", res.Outcome),
		logger.Duration("duration", res.Duration),
	}
	if !res.OK() {
		r.log.Warn(ctx, "endpoint failed", append(fields, logger.Int("status", res.Status), logger.String("message", res.Message))...)
		return
	}
	if r.cfg.Verbose {
		r.log.Info(ctx, "endpoint ok", fields...)
	}
}

func (r *runner) langParam() apiclient.Param { return apiclient.Q("lang", r.cfg.Lang) }

// classify maps a call error onto a probe outcome.
func classify(c check, err error, d time.Duration) Result {
	res := Result{Name: c.name, Path: c.path, Outcome: OutcomeOK, Duration: d}
	if err == nil {
		return res
	}
	res.Message = err.Error()
	if status, ok := apiclient.StatusOf(err); ok {
		res.Outcome = OutcomeEnvelopeError
		res.Status = status
		return res
	}
	res.Outcome = OutcomeTransportError
	return res
}

func call[T any](ctx context.Context, r *runner, path string, query ...apiclient.Param) (T, error) {
	return apiclient.Do[T](ctx, r.client, apiclient.Request{
		Path:    path,
		Query:   query,
		Headers: map[string]string{"X-Request-ID": r.runID},
	})
}

func decode[T any](r *runner, path string, query ...apiclient.Param) func(context.Context) error {
	return func(ctx context.Context) error {
		_, err := call[T](ctx, r, path, query...)
		return err
	}
}
