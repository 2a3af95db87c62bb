package domain

// Domain contains core models shared across the uploader pipeline.

// Row is one data entry from the article CSV. Values are keyed by column
// header and arrive pre-trimmed from the loader.
type Row struct {
	ID     string
	Values map[string]string
}

// Table is the ordered CSV row set together with its column order, which the
// errored-articles export must preserve.
type Table struct {
	Header []string
	Rows   []Row
}

// Page models the Confluence page JSON exchanged with the REST API. Fields
// not in this struct are dropped on re-marshal, which is exactly the
// whitelist the upload payload requires.
type Page struct {
	ID        string     `json:"id,omitempty"`
	Type      string     `json:"type,omitempty"`
	Title     string     `json:"title"`
	Space     *Space     `json:"space,omitempty"`
	Body      *Body      `json:"body,omitempty"`
	Ancestors []Ancestor `json:"ancestors,omitempty"`
	Version   *Version   `json:"version,omitempty"`
}

// Space identifies the Confluence space a page belongs to.
type Space struct {
	Key string `json:"key"`
}

// Body wraps the storage representation of the page content.
type Body struct {
	Storage *Storage `json:"storage"`
}

// Storage holds the page content in Confluence storage format.
type Storage struct {
	Value          string `json:"value"`
	Representation string `json:"representation,omitempty"`
}

// Ancestor nests a page under a parent page.
type Ancestor struct {
	ID string `json:"id"`
}

// Version carries the client-supplied page version number required by the
// update protocol.
type Version struct {
	Number int `json:"number"`
}

// Clone returns a deep copy so per-row rewrites never touch the shared
// template value.
func (p Page) Clone() Page {
	out := p
	if p.Space != nil {
		space := *p.Space
		out.Space = &space
	}
	if p.Body != nil {
		body := Body{}
		if p.Body.Storage != nil {
			storage := *p.Body.Storage
			body.Storage = &storage
		}
		out.Body = &body
	}
	if p.Ancestors != nil {
		out.Ancestors = make([]Ancestor, len(p.Ancestors))
		copy(out.Ancestors, p.Ancestors)
	}
	if p.Version != nil {
		version := *p.Version
		out.Version = &version
	}
	return out
}

// GeneratedArticle pairs a finished page with the row it was generated from,
// so publish failures can be attributed back to input data.
type GeneratedArticle struct {
	RowID string
	Page  Page
}

// RemoteRef points at an existing remote page found by the existence probe.
type RemoteRef struct {
	ID      string
	Version int
}

// RunStatus classifies a whole run. The values double as process exit codes.
type RunStatus int

const (
	NoErrors    RunStatus = 0
	MinorErrors RunStatus = 1
	FatalErrors RunStatus = 2
)

func (s RunStatus) String() string {
	switch s {
	case NoErrors:
		return "no_errors"
	case MinorErrors:
		return "minor_errors"
	case FatalErrors:
		return "fatal_errors"
	default:
		return "unknown"
	}
}

// RunReport summarizes one batch run.
type RunReport struct {
	Status       RunStatus
	Total        int
	Uploaded     int
	FailedRowIDs []string
}
