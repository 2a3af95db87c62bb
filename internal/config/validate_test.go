package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pagesmith-hq/confluence-uploader/internal/apperrors"
)

func validProfile(t *testing.T) *Profile {
	t.Helper()
	csvPath := filepath.Join(t.TempDir(), "articles.csv")
	if err := os.WriteFile(csvPath, []byte("id;name\n1;Alice\n"), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return &Profile{
		Confluence: ConfluenceProfile{
			BaseURL:              "https://wiki.example/rest/api/content/",
			TemplateID:           "4711",
			PlaceholderCharacter: "#",
			EscapeCharacter:      "~",
			UploadSpace:          "DOC",
		},
		Data: DataProfile{
			CSVPath:        csvPath,
			CSVDelimiter:   ";",
			IDColumnHeader: "id",
		},
	}
}

func TestValidateAcceptsCompleteProfile(t *testing.T) {
	if err := validProfile(t).Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateAcceptsNumericParentPage(t *testing.T) {
	p := validProfile(t)
	p.Confluence.UploadParentPageID = "12345"
	if err := p.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateFieldViolations(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Profile)
		want   apperrors.Descriptor
	}{
		{"empty base url", func(p *Profile) { p.Confluence.BaseURL = "" }, apperrors.ProfileBaseURLEmpty},
		{"base url without slash", func(p *Profile) { p.Confluence.BaseURL = "https://wiki.example/rest" }, apperrors.ProfileBaseURLNoTrailingSlash},
		{"empty template id", func(p *Profile) { p.Confluence.TemplateID = "" }, apperrors.ProfileTemplateIDEmpty},
		{"template id not numeric", func(p *Profile) { p.Confluence.TemplateID = "47a1" }, apperrors.ProfileTemplateIDNotNumeric},
		{"empty placeholder", func(p *Profile) { p.Confluence.PlaceholderCharacter = "" }, apperrors.ProfilePlaceholderEmpty},
		{"placeholder too long", func(p *Profile) { p.Confluence.PlaceholderCharacter = "##" }, apperrors.ProfilePlaceholderNotSingleChar},
		{"alphanumeric placeholder", func(p *Profile) { p.Confluence.PlaceholderCharacter = "a" }, apperrors.ProfilePlaceholderInvalidChar},
		{"dot placeholder", func(p *Profile) { p.Confluence.PlaceholderCharacter = "." }, apperrors.ProfilePlaceholderInvalidChar},
		{"space placeholder", func(p *Profile) { p.Confluence.PlaceholderCharacter = " " }, apperrors.ProfilePlaceholderInvalidChar},
		{"placeholder equals escape", func(p *Profile) { p.Confluence.EscapeCharacter = "#" }, apperrors.ProfileEscapeEqualsPlaceholder},
		{"empty escape", func(p *Profile) { p.Confluence.EscapeCharacter = "" }, apperrors.ProfileEscapeEmpty},
		{"escape too long", func(p *Profile) { p.Confluence.EscapeCharacter = "~~" }, apperrors.ProfileEscapeNotSingleChar},
		{"underscore escape", func(p *Profile) { p.Confluence.EscapeCharacter = "_" }, apperrors.ProfileEscapeInvalidChar},
		{"space escape", func(p *Profile) { p.Confluence.EscapeCharacter = " " }, apperrors.ProfileEscapeInvalidChar},
		{"empty upload space", func(p *Profile) { p.Confluence.UploadSpace = "" }, apperrors.ProfileUploadSpaceEmpty},
		{"parent page not numeric", func(p *Profile) { p.Confluence.UploadParentPageID = "abc" }, apperrors.ProfileParentPageNotNumeric},
		{"empty csv path", func(p *Profile) { p.Data.CSVPath = "" }, apperrors.ProfileDataCSVPathEmpty},
		{"missing csv file", func(p *Profile) { p.Data.CSVPath = "/nonexistent/articles.csv" }, apperrors.ProfileDataCSVMissing},
		{"empty delimiter", func(p *Profile) { p.Data.CSVDelimiter = "" }, apperrors.ProfileDelimiterEmpty},
		{"delimiter too long", func(p *Profile) { p.Data.CSVDelimiter = ";;" }, apperrors.ProfileDelimiterNotSingleChar},
		{"empty id header", func(p *Profile) { p.Data.IDColumnHeader = "" }, apperrors.ProfileIDHeaderEmpty},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := validProfile(t)
			tc.mutate(p)
			err := p.Validate()
			if err == nil {
				t.Fatalf("expected error %d", tc.want.ID)
			}
			if !apperrors.IsCode(err, tc.want) {
				t.Fatalf("expected error id %d, got %v", tc.want.ID, err)
			}
		})
	}
}

func TestValidateCredentials(t *testing.T) {
	if err := ValidateCredentials("alice", "s3cret"); err != nil {
		t.Fatalf("ValidateCredentials: %v", err)
	}
	if err := ValidateCredentials("", "s3cret"); !apperrors.IsCode(err, apperrors.ProfileUsernameEmpty) {
		t.Fatalf("expected username error, got %v", err)
	}
	if err := ValidateCredentials("alice", "  "); !apperrors.IsCode(err, apperrors.ProfileTokenEmpty) {
		t.Fatalf("expected token error, got %v", err)
	}
}
