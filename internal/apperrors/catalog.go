package apperrors

// The IDs below are referenced by the error documentation and by log
// tooling, so existing assignments must never change. New descriptors get
// the next free ID. Uniqueness is asserted by a test over All().
var (
	Unexpected = Descriptor{0, "an unexpected error occurred"}

	DataNoIDColumn   = Descriptor{1, "the article data don't contain an ID column with header %q"}
	DataDuplicateID  = Descriptor{2, "the article data already contain an entry with the ID %q"}
	DataNonUniqueIDs = Descriptor{3, "the article data contain %d entries with non-unique ID values"}

	TransportFailure = Descriptor{4, "accessing %q failed due to a transport error"}

	TemplateDownloadFailed = Descriptor{5, "downloading the template %q via %q failed"}
	ExistenceCheckFailed   = Descriptor{6, "checking for existing articles with title %q via %q failed"}
	UploadFailed           = Descriptor{7, "uploading the article generated from article data entry %q via %q failed"}
	UpdateFailed           = Descriptor{8, "updating the article %q with the article generated from article data entry %q via %q failed"}

	DuplicateTitle            = Descriptor{9, "the article generated from the article data entry %q has a title %q which already exists for another article"}
	UnknownPlaceholder        = Descriptor{10, "the article generated from the article data entry %q has an unknown placeholder %s"}
	StrayPlaceholderCharacter = Descriptor{11, "the article generated from the article data entry %q has %d placeholder characters %q not belonging to a valid placeholder"}
	ValidationErrors          = Descriptor{12, "validation errors occurred for articles generated from the template and the article data"}

	ProfileInvalidStructure = Descriptor{13, "the profile file has an invalid structure"}

	ProfileTemplateIDEmpty      = Descriptor{14, "the configured template ID is empty"}
	ProfileTemplateIDNotNumeric = Descriptor{15, "the configured template ID %q is not numeric"}

	ProfilePlaceholderEmpty         = Descriptor{16, "the configured placeholder character is empty"}
	ProfilePlaceholderNotSingleChar = Descriptor{17, "the configured placeholder %q is no single character"}
	ProfilePlaceholderInvalidChar   = Descriptor{18, "the configured placeholder %q must not be alphanumeric, '.', '-' or '_'"}
	ProfileEscapeEqualsPlaceholder  = Descriptor{19, "the configured placeholder character is the same one as the escape character"}

	ProfileEscapeEmpty         = Descriptor{20, "the configured escape character is empty"}
	ProfileEscapeNotSingleChar = Descriptor{21, "the configured escape character %q is no single character"}
	ProfileEscapeInvalidChar   = Descriptor{22, "the configured escape character %q must not be alphanumeric, '.', '-' or '_'"}

	ProfileUploadSpaceEmpty = Descriptor{23, "the configured upload space is empty"}

	ProfileParentPageEmpty      = Descriptor{24, "the configured upload parent page ID is empty"}
	ProfileParentPageNotNumeric = Descriptor{25, "the configured upload parent page ID %q is not numeric"}

	ProfileDataCSVPathEmpty = Descriptor{26, "the configured data CSV path is empty"}
	ProfileDataCSVMissing   = Descriptor{27, "the configured data CSV file %q does not exist"}

	ProfileDelimiterEmpty         = Descriptor{28, "the configured CSV delimiter is empty"}
	ProfileDelimiterNotSingleChar = Descriptor{29, "the configured CSV delimiter %q is no single character"}

	ProfileIDHeaderEmpty = Descriptor{30, "the configured CSV ID column header is empty"}

	// ID 31 was retired and must not be reassigned.

	ProfileUsernameEmpty = Descriptor{32, "the configured username is empty"}
	ProfileTokenEmpty    = Descriptor{33, "the configured token is empty"}

	ProfileBaseURLEmpty           = Descriptor{34, "the configured base URL is empty"}
	ProfileBaseURLNoTrailingSlash = Descriptor{35, "the configured base URL does not end with a slash '/'"}

	TemplateProcessingFailed = Descriptor{36, "processing the template %q downloaded from %q failed"}
)

// All returns every registered descriptor. Used by tests to assert ID
// uniqueness and by the error documentation generator.
func All() []Descriptor {
	return []Descriptor{
		Unexpected,
		DataNoIDColumn,
		DataDuplicateID,
		DataNonUniqueIDs,
		TransportFailure,
		TemplateDownloadFailed,
		ExistenceCheckFailed,
		UploadFailed,
		UpdateFailed,
		DuplicateTitle,
		UnknownPlaceholder,
		StrayPlaceholderCharacter,
		ValidationErrors,
		ProfileInvalidStructure,
		ProfileTemplateIDEmpty,
		ProfileTemplateIDNotNumeric,
		ProfilePlaceholderEmpty,
		ProfilePlaceholderNotSingleChar,
		ProfilePlaceholderInvalidChar,
		ProfileEscapeEqualsPlaceholder,
		ProfileEscapeEmpty,
		ProfileEscapeNotSingleChar,
		ProfileEscapeInvalidChar,
		ProfileUploadSpaceEmpty,
		ProfileParentPageEmpty,
		ProfileParentPageNotNumeric,
		ProfileDataCSVPathEmpty,
		ProfileDataCSVMissing,
		ProfileDelimiterEmpty,
		ProfileDelimiterNotSingleChar,
		ProfileIDHeaderEmpty,
		ProfileUsernameEmpty,
		ProfileTokenEmpty,
		ProfileBaseURLEmpty,
		ProfileBaseURLNoTrailingSlash,
		TemplateProcessingFailed,
	}
}
