// Package confluence encapsulates access to the Confluence REST API: template
// retrieval, existence probes and page create/update. The API usage follows
// the documented page JSON format.
package confluence

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pagesmith-hq/confluence-uploader/internal/apperrors"
	"github.com/pagesmith-hq/confluence-uploader/internal/domain"
	"github.com/pagesmith-hq/confluence-uploader/internal/logger"
)

// Params carries the remote endpoint settings for one run.
type Params struct {
	// BaseURL is the content collection endpoint, ending with a slash.
	BaseURL    string
	TemplateID string
	// UploadSpace scopes existence probes and created pages.
	UploadSpace string
	// ParentPageID nests created pages when non-empty.
	ParentPageID string
	// Overwrite enables update-in-place for pages with a matching title.
	Overwrite bool

	Username string
	Token    string

	// Delay is slept after every API call regardless of outcome, bounding
	// the request rate. Negative values are clamped to zero.
	Delay time.Duration
}

// Client talks to one Confluence instance.
type Client struct {
	http   *resty.Client
	params Params
	log    logger.Logger
}

// New builds a client. The resty client is injected so tests can point it at
// a local server.
func New(httpClient *resty.Client, params Params, log logger.Logger) *Client {
	if params.Delay < 0 {
		params.Delay = 0
	}
	if log == nil {
		log = &logger.NopLogger{}
	}
	return &Client{http: httpClient, params: params, log: log}
}

// pace sleeps the configured delay. Called after every API call, so
// subsequent requests never hit the API back to back.
func (c *Client) pace() {
	if c.params.Delay > 0 {
		time.Sleep(c.params.Delay)
	}
}

func (c *Client) request(ctx context.Context) *resty.Request {
	return c.http.R().
		SetContext(ctx).
		SetBasicAuth(c.params.Username, c.params.Token)
}

// responseMessage extracts the API error message from a response body,
// falling back to the raw body when it is not the expected JSON shape.
func responseMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return string(body)
}

// logRemoteRejection records a non-200 response with the extracted message.
func (c *Client) logRemoteRejection(resp *resty.Response, failure *apperrors.Error) {
	c.log.ErrorObj("confluence request rejected", "confluence_error", map[string]any{
		"error_id":    failure.ID(),
		"message":     failure.Error(),
		"status_code": resp.StatusCode(),
		"response":    responseMessage(resp.Body()),
	})
}

func (c *Client) logTransportFailure(url string, err error) {
	failure := apperrors.TransportFailure.Wrap(err, url)
	c.log.ErrorObj("confluence request failed", "confluence_error", map[string]any{
		"error_id": failure.ID(),
		"message":  failure.Error(),
	})
}

// RetrieveTemplate downloads the configured template page and reduces it to
// the fields the upload payload needs. Failing here is fatal for the run, as
// nothing can be generated without a template.
func (c *Client) RetrieveTemplate(ctx context.Context) (*domain.Page, error) {
	url := c.params.BaseURL + c.params.TemplateID

	resp, err := c.request(ctx).
		SetQueryParam("expand", "body.storage,space").
		Get(url)
	c.pace()
	if err != nil {
		return nil, apperrors.TransportFailure.Wrap(err, url)
	}
	if resp.StatusCode() != http.StatusOK {
		failure := apperrors.TemplateDownloadFailed.New(c.params.TemplateID, url)
		c.logRemoteRejection(resp, failure)
		return nil, failure
	}

	var page domain.Page
	if err := json.Unmarshal(resp.Body(), &page); err != nil {
		return nil, apperrors.TemplateProcessingFailed.Wrap(err, c.params.TemplateID, url)
	}
	return c.processTemplate(url, page)
}

// processTemplate validates the required template structure and injects the
// configured parent page. Unknown fields were already dropped by the typed
// unmarshal; the page identity fields are cleared so the template can be
// cloned into new pages.
func (c *Client) processTemplate(url string, page domain.Page) (*domain.Page, error) {
	if page.Title == "" || page.Body == nil || page.Body.Storage == nil || page.Space == nil || page.Space.Key == "" {
		return nil, apperrors.TemplateProcessingFailed.New(c.params.TemplateID, url)
	}

	page.ID = ""
	page.Version = nil
	page.Ancestors = nil
	if c.params.ParentPageID != "" {
		page.Ancestors = []domain.Ancestor{{ID: c.params.ParentPageID}}
	}
	return &page, nil
}

// existsResponse is the documented search response shape.
type existsResponse struct {
	Size    int `json:"size"`
	Results []struct {
		ID      string `json:"id"`
		Version struct {
			Number int `json:"number"`
		} `json:"version"`
	} `json:"results"`
}

// Exists probes whether a page with the given title exists in the upload
// space. Any failure degrades to "does not exist": the run favors attempting
// a create over blocking on an ambiguous probe.
func (c *Client) Exists(ctx context.Context, title string) *domain.RemoteRef {
	resp, err := c.request(ctx).
		SetQueryParams(map[string]string{
			"title":    title,
			"spaceKey": c.params.UploadSpace,
			"limit":    "1",
			"expand":   "version",
		}).
		Get(c.params.BaseURL)
	c.pace()
	if err != nil {
		c.logTransportFailure(c.params.BaseURL, err)
		return nil
	}
	if resp.StatusCode() != http.StatusOK {
		c.logRemoteRejection(resp, apperrors.ExistenceCheckFailed.New(title, c.params.BaseURL))
		return nil
	}

	var parsed existsResponse
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil ||
		(parsed.Size > 0 && (len(parsed.Results) == 0 || parsed.Results[0].ID == "")) {
		c.log.WarnObj("could not extract existence from API response", "existence_probe", map[string]any{
			"title": title,
		})
		return nil
	}
	if parsed.Size == 0 {
		return nil
	}
	return &domain.RemoteRef{
		ID:      parsed.Results[0].ID,
		Version: parsed.Results[0].Version.Number,
	}
}

// UploadArticle publishes one generated page, updating an existing page with
// the same title when overwrite mode is on. It reports success; failures are
// logged and classified but never abort the batch.
func (c *Client) UploadArticle(ctx context.Context, rowID string, page domain.Page) bool {
	if c.params.Overwrite {
		if ref := c.Exists(ctx, page.Title); ref != nil {
			c.log.InfoObj("article exists and will be overwritten", "existing_article", map[string]any{
				"title":   page.Title,
				"page_id": ref.ID,
				"version": ref.Version,
			})
			return c.updatePage(ctx, rowID, ref, page)
		}
	}
	return c.createPage(ctx, rowID, page)
}

func (c *Client) createPage(ctx context.Context, rowID string, page domain.Page) bool {
	url := c.params.BaseURL

	resp, err := c.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(page).
		Post(url)
	c.pace()
	if err != nil {
		c.logTransportFailure(url, err)
		return false
	}
	if resp.StatusCode() != http.StatusOK {
		c.logRemoteRejection(resp, apperrors.UploadFailed.New(rowID, url))
		return false
	}

	c.log.InfoObj("article uploaded", "uploaded_article", map[string]any{
		"row_id": rowID,
		"title":  page.Title,
	})
	return true
}

// updatePage replaces an existing page. The update protocol requires the
// page id in the payload and a version number incremented past the current
// one.
func (c *Client) updatePage(ctx context.Context, rowID string, ref *domain.RemoteRef, page domain.Page) bool {
	url := c.params.BaseURL + ref.ID

	payload := page.Clone()
	payload.ID = ref.ID
	payload.Version = &domain.Version{Number: ref.Version + 1}

	resp, err := c.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Put(url)
	c.pace()
	if err != nil {
		c.logTransportFailure(url, err)
		return false
	}
	if resp.StatusCode() != http.StatusOK {
		c.logRemoteRejection(resp, apperrors.UpdateFailed.New(ref.ID, rowID, url))
		return false
	}

	c.log.InfoObj("article updated", "updated_article", map[string]any{
		"row_id":  rowID,
		"page_id": ref.ID,
		"version": ref.Version + 1,
	})
	return true
}

// TemplateURL returns the endpoint the template is fetched from. Exposed for
// diagnostics output.
func (c *Client) TemplateURL() string {
	return c.params.BaseURL + c.params.TemplateID
}
