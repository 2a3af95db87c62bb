package app

import (
	"context"
	"fmt"

	"github.com/pagesmith-hq/confluence-uploader/internal/apperrors"
	"github.com/pagesmith-hq/confluence-uploader/internal/articles"
	"github.com/pagesmith-hq/confluence-uploader/internal/config"
	"github.com/pagesmith-hq/confluence-uploader/internal/confluence"
	"github.com/pagesmith-hq/confluence-uploader/internal/domain"
	"github.com/pagesmith-hq/confluence-uploader/internal/logger"
	"github.com/pagesmith-hq/confluence-uploader/internal/placeholder"
	"github.com/pagesmith-hq/confluence-uploader/internal/storage"
	"github.com/pagesmith-hq/confluence-uploader/pkg/httpclient"
	"github.com/pagesmith-hq/confluence-uploader/pkg/notify"
)

// ConfluenceAPI is the remote surface the runtime needs. Satisfied by
// confluence.Client; narrowed to an interface so tests can fake the remote.
type ConfluenceAPI interface {
	RetrieveTemplate(ctx context.Context) (*domain.Page, error)
	UploadArticle(ctx context.Context, rowID string, page domain.Page) bool
}

// Uploader represents the uploader runtime. It drives the sequential
// pipeline: load rows, download the template, generate articles, publish
// them one at a time, and export the rows whose publish failed.
type Uploader struct {
	cfg     *config.Config
	profile *config.Profile
	api     ConfluenceAPI
	store   storage.Store
	fanout  *notify.Fanout
	log     logger.Logger
}

// NewUploader builds an uploader runtime from config files.
func NewUploader(ctx context.Context, cfg *config.Config, log logger.Logger) (*Uploader, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = &logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	profile, err := config.LoadProfile(cfg.ProfileFile)
	if err != nil {
		return nil, fmt.Errorf("load uploader profile: %w", err)
	}
	if verr := profile.Validate(); verr != nil {
		return nil, verr
	}
	if verr := config.ValidateCredentials(cfg.Username, cfg.Token); verr != nil {
		return nil, verr
	}
	log.InfoObj("uploader profile loaded", "profile_meta", map[string]any{
		"base_url":    profile.Confluence.BaseURL,
		"template_id": profile.Confluence.TemplateID,
		"space":       profile.Confluence.UploadSpace,
		"overwrite":   profile.Behavior.OverwriteExistingArticles,
		"data_csv":    profile.Data.CSVPath,
	})

	api := confluence.New(
		httpclient.NewRestyHTTPClient(cfg.RequestTimeout),
		confluence.Params{
			BaseURL:      profile.Confluence.BaseURL,
			TemplateID:   profile.Confluence.TemplateID,
			UploadSpace:  profile.Confluence.UploadSpace,
			ParentPageID: profile.Confluence.UploadParentPageID,
			Overwrite:    profile.Behavior.OverwriteExistingArticles,
			Username:     cfg.Username,
			Token:        cfg.Token,
			Delay:        cfg.APIDelay,
		},
		log,
	)

	store, err := storage.NewStore(cfg.StorageType, cfg.BBoltPath)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}
	log.InfoObj("storage initialized", "storage_config", map[string]any{
		"type": cfg.StorageType,
		"path": cfg.BBoltPath,
	})

	fanout, err := buildFanout(ctx, cfg.NotifiersFile, log)
	if err != nil {
		store.Close()
		return nil, err
	}

	return &Uploader{
		cfg:     cfg,
		profile: profile,
		api:     api,
		store:   store,
		fanout:  fanout,
		log:     log,
	}, nil
}

// buildFanout wires the optional notification sinks. An empty file path
// means notifications are disabled.
func buildFanout(ctx context.Context, notifiersFile string, log logger.Logger) (*notify.Fanout, error) {
	if notifiersFile == "" {
		return notify.NewFanout(nil), nil
	}

	reg, err := notify.LoadRegistry(notifiersFile)
	if err != nil {
		return nil, fmt.Errorf("load notifiers registry: %w", err)
	}
	sinks, err := notify.BuildAll(ctx, notify.DefaultRegistry(), reg.Enabled(), log)
	if err != nil {
		return nil, fmt.Errorf("build notifiers: %w", err)
	}
	log.InfoObj("notifiers registry loaded", "notifiers_meta", map[string]any{
		"count": len(sinks),
	})
	return notify.NewFanout(sinks), nil
}

// Run executes one batch run and reports its outcome. Every deliberate
// failure is already classified; anything else is surfaced as the generic
// unexpected error. The notification fanout always observes the final
// report, whatever the status.
func (u *Uploader) Run(ctx context.Context) domain.RunReport {
	report, err := u.process(ctx)
	if err != nil {
		ae := apperrors.From(err)
		u.log.ErrorObj("run failed", "run_error", map[string]any{
			"error_id": ae.ID(),
			"message":  ae.Error(),
		})
		report = domain.RunReport{Status: domain.FatalErrors}
	}

	u.notifyRun(ctx, report)
	u.closeStore()
	return report
}

// process is the sequential pipeline. Rows are substituted in input order
// and documents are uploaded one at a time in the same order.
func (u *Uploader) process(ctx context.Context) (domain.RunReport, error) {
	data := u.profile.Data

	u.log.InfoObj("loading article data", "data_csv", data.CSVPath)
	table, err := articles.LoadRows(data.CSVPath, u.profile.DelimiterRune(), data.IDColumnHeader, u.log)
	if err != nil {
		return domain.RunReport{}, err
	}
	u.log.InfoObj("article data loaded", "row_count", len(table.Rows))

	u.log.InfoObj("downloading template", "template_id", u.profile.Confluence.TemplateID)
	template, err := u.api.RetrieveTemplate(ctx)
	if err != nil {
		return domain.RunReport{}, err
	}
	if u.cfg.DumpTemplate {
		if err := articles.DumpJSON(u.cfg.DumpDir, "downloaded_template", template); err != nil {
			return domain.RunReport{}, err
		}
	}

	engine, err := placeholder.New(placeholder.Spec{
		Placeholder: u.profile.PlaceholderRune(),
		Escape:      u.profile.EscapeRune(),
	})
	if err != nil {
		return domain.RunReport{}, err
	}

	generator := articles.NewGenerator(engine, u.log)
	generated, err := generator.Generate(template, table)
	if err != nil {
		return domain.RunReport{}, err
	}
	u.log.InfoObj("articles generated", "article_count", len(generated))

	if u.cfg.DumpGeneratedArticles {
		for _, article := range generated {
			if err := articles.DumpJSON(u.cfg.DumpDir, article.Page.Title, article.Page); err != nil {
				return domain.RunReport{}, err
			}
		}
	}

	failed := u.uploadAll(ctx, generated)
	uploaded := len(generated) - len(failed)
	u.log.InfoObj("upload finished", "upload_result", map[string]any{
		"uploaded": uploaded,
		"total":    len(generated),
	})

	if len(failed) > 0 {
		if err := u.exportErrored(table, failed); err != nil {
			return domain.RunReport{}, err
		}
		return domain.RunReport{
			Status:       domain.MinorErrors,
			Total:        len(generated),
			Uploaded:     uploaded,
			FailedRowIDs: failed,
		}, nil
	}

	return domain.RunReport{
		Status:   domain.NoErrors,
		Total:    len(generated),
		Uploaded: uploaded,
	}, nil
}

// uploadAll publishes every article sequentially and returns the row IDs
// whose publish failed.
func (u *Uploader) uploadAll(ctx context.Context, generated []domain.GeneratedArticle) []string {
	var failed []string
	for _, article := range generated {
		republish, err := u.store.PublishedBefore(article.RowID)
		if err != nil {
			u.log.WarnObj("failed to read publish history", "storage_error", map[string]any{
				"row_id": article.RowID,
				"error":  err.Error(),
			})
		} else if republish {
			u.log.DebugObj("row was published in an earlier run", "row_id", article.RowID)
		}

		if !u.api.UploadArticle(ctx, article.RowID, article.Page) {
			failed = append(failed, article.RowID)
			continue
		}
		if err := u.store.MarkPublished(article.RowID, article.Page.Title); err != nil {
			u.log.WarnObj("failed to record publish history", "storage_error", map[string]any{
				"row_id": article.RowID,
				"error":  err.Error(),
			})
		}
	}
	return failed
}

// exportErrored re-serializes the failed rows so they can be retried as a
// fresh input file.
func (u *Uploader) exportErrored(table *domain.Table, failedIDs []string) error {
	failedSet := make(map[string]struct{}, len(failedIDs))
	for _, id := range failedIDs {
		failedSet[id] = struct{}{}
	}

	var rows []domain.Row
	for _, row := range table.Rows {
		if _, ok := failedSet[row.ID]; ok {
			rows = append(rows, row)
		}
	}

	path := u.profile.Data.ErroredArticlesCSV
	if err := articles.WriteErroredRows(path, u.profile.DelimiterRune(), table.Header, rows); err != nil {
		return err
	}
	u.log.ErrorObj("some articles could not be uploaded", "errored_export", map[string]any{
		"failed_count": len(failedIDs),
		"exported_to":  path,
	})
	return nil
}

// notifyRun delivers the run summary to the configured sinks. Sink failures
// are logged and never alter the run status.
func (u *Uploader) notifyRun(ctx context.Context, report domain.RunReport) {
	if u.fanout.Size() == 0 {
		return
	}

	evt := notify.NewEvent(report.Status.String(), report.Total, report.Uploaded, report.FailedRowIDs)
	delivered, err := u.fanout.Notify(ctx, evt)
	if err != nil {
		u.log.WarnObj("run notification partially failed", "notify_error", map[string]any{
			"delivered": delivered,
			"error":     err.Error(),
		})
		return
	}
	u.log.InfoObj("run notification delivered", "notify_result", map[string]any{
		"delivered": delivered,
	})
}

// closeStore safely closes the storage backend, logging any errors encountered.
func (u *Uploader) closeStore() {
	if u == nil || u.store == nil {
		return
	}
	if err := u.store.Close(); err != nil {
		u.log.ErrorObj("storage close failed", "error", err)
	}
}
