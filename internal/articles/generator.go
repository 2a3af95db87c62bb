package articles

import (
	"fmt"

	"github.com/pagesmith-hq/confluence-uploader/internal/apperrors"
	"github.com/pagesmith-hq/confluence-uploader/internal/domain"
	"github.com/pagesmith-hq/confluence-uploader/internal/logger"
	"github.com/pagesmith-hq/confluence-uploader/internal/placeholder"
)

// Generator produces one article per data row by substituting placeholders
// in the template's title and body.
type Generator struct {
	engine *placeholder.Engine
	log    logger.Logger
}

// NewGenerator wires a generator with the placeholder engine for this run.
func NewGenerator(engine *placeholder.Engine, log logger.Logger) *Generator {
	if log == nil {
		log = &logger.NopLogger{}
	}
	return &Generator{engine: engine, log: log}
}

// Generate returns the finished articles in row order. A placeholder error
// in any row aborts immediately with that row's error. Duplicate generated
// titles are logged per occurrence and the whole batch fails after every row
// was processed, so a single run reports all collisions.
func (g *Generator) Generate(template *domain.Page, table *domain.Table) ([]domain.GeneratedArticle, error) {
	if template == nil || table == nil {
		return nil, fmt.Errorf("template and table must not be nil")
	}
	if template.Body == nil || template.Body.Storage == nil {
		return nil, fmt.Errorf("template has no storage body")
	}

	generated := make([]domain.GeneratedArticle, 0, len(table.Rows))
	titles := make(map[string]struct{}, len(table.Rows))
	collisions := 0

	for _, row := range table.Rows {
		page := template.Clone()

		title, err := g.engine.Replace(row.ID, page.Title, row.Values)
		if err != nil {
			return nil, err
		}
		body, err := g.engine.Replace(row.ID, page.Body.Storage.Value, row.Values)
		if err != nil {
			return nil, err
		}
		page.Title = title
		page.Body.Storage.Value = body

		if _, seen := titles[title]; seen {
			collisions++
			dup := apperrors.DuplicateTitle.New(row.ID, title)
			g.log.ErrorObj("duplicate generated title", "generation_error", map[string]any{
				"error_id": dup.ID(),
				"message":  dup.Error(),
			})
		}
		titles[title] = struct{}{}

		generated = append(generated, domain.GeneratedArticle{RowID: row.ID, Page: page})
	}

	if collisions > 0 {
		return nil, apperrors.ValidationErrors.New()
	}

	return generated, nil
}
