package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pagesmith-hq/confluence-uploader/internal/apperrors"
	"gopkg.in/yaml.v3"
)

const defaultErroredArticlesCSV = "errored_articles.csv"

// Profile describes one upload job: the Confluence endpoint to publish to,
// the placeholder syntax used in the template, and the CSV data source.
// It lives in its own YAML file so jobs can be swapped without touching the
// application config.
type Profile struct {
	Confluence ConfluenceProfile `yaml:"confluence"`
	Behavior   BehaviorProfile   `yaml:"behavior"`
	Data       DataProfile       `yaml:"data"`
}

// ConfluenceProfile holds the remote endpoint and template settings.
type ConfluenceProfile struct {
	BaseURL              string `yaml:"base_url"`
	TemplateID           string `yaml:"template_id"`
	PlaceholderCharacter string `yaml:"placeholder_character"`
	EscapeCharacter      string `yaml:"escape_character"`
	UploadSpace          string `yaml:"upload_space"`
	UploadParentPageID   string `yaml:"upload_parent_page_id"`
}

// BehaviorProfile holds switches changing how articles are published.
type BehaviorProfile struct {
	OverwriteExistingArticles bool `yaml:"overwrite_existing_articles"`
}

// DataProfile holds the CSV input/output settings.
type DataProfile struct {
	CSVPath            string `yaml:"data_csv"`
	CSVDelimiter       string `yaml:"csv_delimiter"`
	IDColumnHeader     string `yaml:"id_column_header"`
	ErroredArticlesCSV string `yaml:"errored_articles_csv"`
}

// LoadProfile reads and sanitizes the uploader profile from a YAML file.
// Structural decode failures map to the invalid-structure catalog error.
func LoadProfile(path string) (*Profile, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("profile file path is empty")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)

	var p Profile
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return nil, apperrors.ProfileInvalidStructure.Wrap(err)
	}

	p.sanitize()
	return &p, nil
}

// sanitize trims every field and applies defaults for optional ones.
func (p *Profile) sanitize() {
	c := &p.Confluence
	c.BaseURL = strings.TrimSpace(c.BaseURL)
	c.TemplateID = strings.TrimSpace(c.TemplateID)
	c.PlaceholderCharacter = strings.TrimSpace(c.PlaceholderCharacter)
	c.EscapeCharacter = strings.TrimSpace(c.EscapeCharacter)
	c.UploadSpace = strings.TrimSpace(c.UploadSpace)
	c.UploadParentPageID = strings.TrimSpace(c.UploadParentPageID)

	d := &p.Data
	d.CSVPath = strings.TrimSpace(d.CSVPath)
	d.CSVDelimiter = strings.TrimSpace(d.CSVDelimiter)
	d.IDColumnHeader = strings.TrimSpace(d.IDColumnHeader)
	d.ErroredArticlesCSV = strings.TrimSpace(d.ErroredArticlesCSV)
	if d.ErroredArticlesCSV == "" {
		d.ErroredArticlesCSV = defaultErroredArticlesCSV
	}
}

// HasParentPage reports whether generated articles should be nested under a
// configured parent page.
func (p *Profile) HasParentPage() bool {
	return p.Confluence.UploadParentPageID != ""
}

// PlaceholderRune returns the configured placeholder delimiter. Only valid
// after Validate succeeded.
func (p *Profile) PlaceholderRune() rune {
	return firstRune(p.Confluence.PlaceholderCharacter)
}

// EscapeRune returns the configured escape character. Only valid after
// Validate succeeded.
func (p *Profile) EscapeRune() rune {
	return firstRune(p.Confluence.EscapeCharacter)
}

// DelimiterRune returns the configured CSV delimiter. Only valid after
// Validate succeeded.
func (p *Profile) DelimiterRune() rune {
	return firstRune(p.Data.CSVDelimiter)
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}
