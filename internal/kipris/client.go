package kipris

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/krtools/kipris-mcp/internal/logging"
)

// KIPRIS Plus REST endpoints.
const (
	endpointApplicantSearch = "/patUtiModInfoSearchSevice/applicantNameSearchInfo"
	endpointApplicationInfo = "/patUtiModInfoSearchSevice/applicationNumberSearchInfo"
	endpointCitingInfo      = "/CitingService/citingInfo"
)

const (
	// MaxPageSize is the upper bound the tool surface accepts per page.
	MaxPageSize = 100

	// DefaultPageSize applies when a tool call omits page_size.
	DefaultPageSize = 20

	defaultTimeout = 30 * time.Second
)

// Application numbers are 13 digits once separators are stripped,
// e.g. "1020200123456" or "10-2020-0123456".
var applicationNumberPattern = regexp.MustCompile(`^[0-9]{13}$`)

var validStatusFilters = map[string]bool{"": true, "A": true, "R": true, "J": true}

// Client issues signed requests against KIPRIS. Safe for concurrent use;
// the embedded http.Client is the only shared state.
type Client struct {
	cfg  Config
	http *http.Client
	log  logging.Logger
}

type Option func(*Client)

// WithHTTPClient swaps the underlying HTTP client, mainly for tests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithLogger attaches a scoped logger.
func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.log = l }
}

func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	c := &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		log:  logging.New(logging.DefaultLogger()).WithName("kipris"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// NormalizeApplicationNumber strips separators and enforces the 13-digit
// upstream format. Failures carry KindValidation and happen before any
// network I/O.
func NormalizeApplicationNumber(raw string) (string, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), "-", "")
	if !applicationNumberPattern.MatchString(cleaned) {
		return "", newError(KindValidation, "application_number",
			fmt.Sprintf("%q is not a 13-digit application number", raw), nil)
	}
	return cleaned, nil
}

// SearchPatentsByApplicant returns one page of patents filed by the given
// applicant. status filters by registration state: A published, R
// registered, J rejected, empty for all.
func (c *Client) SearchPatentsByApplicant(ctx context.Context, applicant string, page, pageSize int, status string) (SearchResult, error) {
	const op = "search_patents_by_applicant"

	if strings.TrimSpace(applicant) == "" {
		return SearchResult{}, newError(KindValidation, op, "applicant name is required", nil)
	}
	if err := validatePagination(op, page, pageSize); err != nil {
		return SearchResult{}, err
	}
	if !validStatusFilters[status] {
		return SearchResult{}, newError(KindValidation, op,
			fmt.Sprintf("status %q is not one of A, R, J", status), nil)
	}

	params := url.Values{}
	params.Set("applicant", applicant)
	params.Set("docsStart", strconv.Itoa(page))
	params.Set("docsCount", strconv.Itoa(pageSize))
	params.Set("patent", "true")
	params.Set("utility", "false")
	params.Set("lastvalue", status)

	body, err := c.get(ctx, op, endpointApplicantSearch, params)
	if err != nil {
		return SearchResult{}, err
	}

	total, patents, err := parseSearchBody(op, body)
	if err != nil {
		return SearchResult{}, err
	}

	result := SearchResult{
		Patents:    patents,
		TotalCount: total,
		Page:       page,
		PageSize:   pageSize,
		HasMore:    page*pageSize < total,
	}
	if result.HasMore {
		result.NextPage = page + 1
	}
	return result, nil
}

// GetPatentDetail looks up one application number. Zero upstream matches is
// KindNotFound, distinct from transport failures.
func (c *Client) GetPatentDetail(ctx context.Context, applicationNumber string) (PatentDetail, error) {
	const op = "get_patent_detail"

	number, err := NormalizeApplicationNumber(applicationNumber)
	if err != nil {
		return PatentDetail{}, err
	}

	params := url.Values{}
	params.Set("applicationNumber", number)
	params.Set("docsStart", "1")

	body, err := c.get(ctx, op, endpointApplicationInfo, params)
	if err != nil {
		return PatentDetail{}, err
	}

	detail, found, err := parseDetailBody(op, body)
	if err != nil {
		return PatentDetail{}, err
	}
	if !found {
		return PatentDetail{}, newError(KindNotFound, op,
			fmt.Sprintf("no patent found for application number %s", number), nil)
	}
	return detail, nil
}

// GetCitingPatents lists later patents citing the base application. An
// application nobody cites yields an empty slice, not an error.
func (c *Client) GetCitingPatents(ctx context.Context, applicationNumber string, page, pageSize int) ([]CitationRecord, error) {
	const op = "get_citing_patents"

	number, err := NormalizeApplicationNumber(applicationNumber)
	if err != nil {
		return nil, err
	}
	if err := validatePagination(op, page, pageSize); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("standardCitationApplicationNumber", number)
	params.Set("docsStart", strconv.Itoa(page))
	params.Set("docsCount", strconv.Itoa(pageSize))

	body, err := c.get(ctx, op, endpointCitingInfo, params)
	if err != nil {
		return nil, err
	}

	records, err := parseCitationsBody(op, body)
	if err != nil {
		return nil, err
	}
	// The citing service predates paging; cap the page ourselves so the
	// echo always matches the request.
	if len(records) > pageSize {
		records = records[:pageSize]
	}
	return records, nil
}

func validatePagination(op string, page, pageSize int) error {
	if page < 1 {
		return newError(KindValidation, op, fmt.Sprintf("page must be >= 1, got %d", page), nil)
	}
	if pageSize < 1 || pageSize > MaxPageSize {
		return newError(KindValidation, op,
			fmt.Sprintf("page_size must be between 1 and %d, got %d", MaxPageSize, pageSize), nil)
	}
	return nil
}

// get performs the single signed round trip an operation is allowed.
func (c *Client) get(ctx context.Context, op, endpoint string, params url.Values) ([]byte, error) {
	params.Set("accessKey", c.cfg.APIKey)

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	requestURL := c.cfg.BaseURL + endpoint + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, newError(KindUpstream, op, "build request", err)
	}

	start := time.Now()
	c.log.Debug("kipris request", "endpoint", endpoint, "params", redact(params))

	resp, err := c.http.Do(req)
	if err != nil {
		annotated := c.classifyTransport(op, err)
		c.log.Error(annotated, "kipris request failed", "endpoint", endpoint, "elapsed", time.Since(start).String())
		return nil, annotated
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newError(KindUpstream, op, "read response body", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, newError(KindAuth, op, "access key rejected by KIPRIS", nil)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, newError(KindUpstream, op,
			fmt.Sprintf("unexpected status %d from KIPRIS", resp.StatusCode), nil)
	}

	c.log.Debug("kipris response", "endpoint", endpoint, "bytes", len(body), "elapsed", time.Since(start).String())
	return body, nil
}

func (c *Client) classifyTransport(op string, err error) error {
	var uerr *url.Error
	timedOut := errors.Is(err, context.DeadlineExceeded) ||
		(errors.As(err, &uerr) && uerr.Timeout())
	if timedOut {
		return newError(KindTimeout, op,
			fmt.Sprintf("call timed out after %s", c.cfg.Timeout), err)
	}
	return newError(KindUpstream, op, "request failed", err)
}

// redact returns params safe for logging. The access key never reaches the
// log stream.
func redact(params url.Values) string {
	clone := url.Values{}
	for key, values := range params {
		if key == "accessKey" {
			continue
		}
		clone[key] = values
	}
	return clone.Encode()
}
