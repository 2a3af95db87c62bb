package config

import (
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pagesmith-hq/confluence-uploader/internal/apperrors"
)

// Validate checks every profile field and returns the first violation as a
// catalog error, or nil when the profile is usable.
func (p *Profile) Validate() *apperrors.Error {
	c := p.Confluence
	checks := []func() *apperrors.Error{
		func() *apperrors.Error { return validateBaseURL(c.BaseURL) },
		func() *apperrors.Error { return validateTemplateID(c.TemplateID) },
		func() *apperrors.Error {
			return validatePlaceholderCharacter(c.PlaceholderCharacter, c.EscapeCharacter)
		},
		func() *apperrors.Error {
			return validateEscapeCharacter(c.EscapeCharacter, c.PlaceholderCharacter)
		},
		func() *apperrors.Error { return validateUploadSpace(c.UploadSpace) },
		func() *apperrors.Error { return validateParentPageID(c.UploadParentPageID, false) },
		func() *apperrors.Error { return validateDataCSV(p.Data.CSVPath) },
		func() *apperrors.Error { return validateCSVDelimiter(p.Data.CSVDelimiter) },
		func() *apperrors.Error { return validateIDColumnHeader(p.Data.IDColumnHeader) },
	}
	for _, check := range checks {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}

// ValidateCredentials checks the credential pair supplied via environment.
func ValidateCredentials(username, token string) *apperrors.Error {
	if strings.TrimSpace(username) == "" {
		return apperrors.ProfileUsernameEmpty.New()
	}
	if strings.TrimSpace(token) == "" {
		return apperrors.ProfileTokenEmpty.New()
	}
	return nil
}

func validateBaseURL(baseURL string) *apperrors.Error {
	if baseURL == "" {
		return apperrors.ProfileBaseURLEmpty.New()
	}
	if !strings.HasSuffix(baseURL, "/") {
		return apperrors.ProfileBaseURLNoTrailingSlash.New()
	}
	return nil
}

func validateTemplateID(templateID string) *apperrors.Error {
	if templateID == "" {
		return apperrors.ProfileTemplateIDEmpty.New()
	}
	if !isNumeric(templateID) {
		return apperrors.ProfileTemplateIDNotNumeric.New(templateID)
	}
	return nil
}

func validatePlaceholderCharacter(placeholder, escape string) *apperrors.Error {
	if placeholder == "" {
		return apperrors.ProfilePlaceholderEmpty.New()
	}
	if utf8.RuneCountInString(placeholder) != 1 {
		return apperrors.ProfilePlaceholderNotSingleChar.New(placeholder)
	}
	if isExtendedAlphanumeric(placeholder) {
		return apperrors.ProfilePlaceholderInvalidChar.New(placeholder)
	}
	if placeholder == escape {
		return apperrors.ProfileEscapeEqualsPlaceholder.New()
	}
	return nil
}

func validateEscapeCharacter(escape, placeholder string) *apperrors.Error {
	if escape == "" {
		return apperrors.ProfileEscapeEmpty.New()
	}
	if utf8.RuneCountInString(escape) != 1 {
		return apperrors.ProfileEscapeNotSingleChar.New(escape)
	}
	if isExtendedAlphanumeric(escape) {
		return apperrors.ProfileEscapeInvalidChar.New(escape)
	}
	if escape == placeholder {
		return apperrors.ProfileEscapeEqualsPlaceholder.New()
	}
	return nil
}

func validateUploadSpace(space string) *apperrors.Error {
	if space == "" {
		return apperrors.ProfileUploadSpaceEmpty.New()
	}
	return nil
}

// validateParentPageID accepts an empty value when required is false, as an
// empty parent page means articles are created at the space root.
func validateParentPageID(parentPageID string, required bool) *apperrors.Error {
	if parentPageID == "" {
		if required {
			return apperrors.ProfileParentPageEmpty.New()
		}
		return nil
	}
	if !isNumeric(parentPageID) {
		return apperrors.ProfileParentPageNotNumeric.New(parentPageID)
	}
	return nil
}

func validateDataCSV(path string) *apperrors.Error {
	if path == "" {
		return apperrors.ProfileDataCSVPathEmpty.New()
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return apperrors.ProfileDataCSVMissing.New(path)
	}
	return nil
}

func validateCSVDelimiter(delimiter string) *apperrors.Error {
	if delimiter == "" {
		return apperrors.ProfileDelimiterEmpty.New()
	}
	if utf8.RuneCountInString(delimiter) != 1 {
		return apperrors.ProfileDelimiterNotSingleChar.New(delimiter)
	}
	return nil
}

func validateIDColumnHeader(header string) *apperrors.Error {
	if header == "" {
		return apperrors.ProfileIDHeaderEmpty.New()
	}
	return nil
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// isExtendedAlphanumeric reports whether the single-character string falls
// into the character class reserved for placeholder names, which delimiter
// and escape characters must stay out of. Whitespace is rejected here too,
// independent of profile trimming.
func isExtendedAlphanumeric(s string) bool {
	if s == "." || s == "_" || s == "-" {
		return true
	}
	for _, r := range s {
		if unicode.IsSpace(r) {
			return true
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
