package kipris

// PatentSummary is one row of an applicant search result. All fields are
// upstream-provided strings; optional fields stay empty when absent.
type PatentSummary struct {
	ApplicationNumber  string `json:"application_number"`
	ApplicationDate    string `json:"application_date,omitempty"`
	Title              string `json:"title"`
	Applicant          string `json:"applicant,omitempty"`
	RegistrationStatus string `json:"registration_status,omitempty"`
	OpeningNumber      string `json:"opening_number,omitempty"`
	OpeningDate        string `json:"opening_date,omitempty"`
	RegistrationNumber string `json:"registration_number,omitempty"`
	RegistrationDate   string `json:"registration_date,omitempty"`
}

// PatentDetail extends PatentSummary with the fields only the detail
// endpoint returns.
type PatentDetail struct {
	PatentSummary
	Abstract    string            `json:"abstract,omitempty"`
	IPCNumber   string            `json:"ipc_number,omitempty"`
	Inventors   []string          `json:"inventors,omitempty"`
	ClaimCount  int               `json:"claim_count,omitempty"`
	LegalStatus []LegalStatusStep `json:"legal_status,omitempty"`
}

// LegalStatusStep is one entry of a patent's legal status history.
type LegalStatusStep struct {
	Code string `json:"code,omitempty"`
	Name string `json:"name,omitempty"`
	Date string `json:"date,omitempty"`
}

// CitationRecord describes one later patent citing the base application.
type CitationRecord struct {
	CitingApplicationNumber string `json:"citing_application_number"`
	CitingTitle             string `json:"citing_title,omitempty"`
	CitationDate            string `json:"citation_date,omitempty"`
	BaseApplicationNumber   string `json:"base_application_number,omitempty"`
	StatusCode              string `json:"status_code,omitempty"`
	StatusName              string `json:"status_name,omitempty"`
	CitationTypeCode        string `json:"citation_type_code,omitempty"`
	CitationTypeName        string `json:"citation_type_name,omitempty"`
}

// SearchResult is one page of an applicant search.
type SearchResult struct {
	Patents    []PatentSummary `json:"patents"`
	TotalCount int             `json:"total_count"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	HasMore    bool            `json:"has_more"`
	NextPage   int             `json:"next_page,omitempty"`
}
