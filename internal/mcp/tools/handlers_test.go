package tools

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/krtools/kipris-mcp/internal/kipris"
)

type fakeSearchService struct {
	calls        int
	gotApplicant string
	gotPage      int
	gotPageSize  int
	gotStatus    string
	result       kipris.SearchResult
	err          error
}

func (f *fakeSearchService) SearchPatentsByApplicant(ctx context.Context, applicant string, page, pageSize int, status string) (kipris.SearchResult, error) {
	f.calls++
	f.gotApplicant = applicant
	f.gotPage = page
	f.gotPageSize = pageSize
	f.gotStatus = status
	return f.result, f.err
}

type fakeDetailService struct {
	calls  int
	detail kipris.PatentDetail
	err    error
}

func (f *fakeDetailService) GetPatentDetail(ctx context.Context, applicationNumber string) (kipris.PatentDetail, error) {
	f.calls++
	return f.detail, f.err
}

type fakeCitationService struct {
	calls   int
	records []kipris.CitationRecord
	err     error
}

func (f *fakeCitationService) GetCitingPatents(ctx context.Context, applicationNumber string, page, pageSize int) ([]kipris.CitationRecord, error) {
	f.calls++
	return f.records, f.err
}

func newRequest(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if res == nil || len(res.Content) == 0 {
		t.Fatalf("empty tool result")
	}
	text, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("unexpected content type %T", res.Content[0])
	}
	return text.Text
}

func samsungResult() kipris.SearchResult {
	return kipris.SearchResult{
		Patents: []kipris.PatentSummary{
			{ApplicationNumber: "1020200111111", Title: "Display device", Applicant: "Samsung Electronics"},
			{ApplicationNumber: "1020200222222", Title: "Semiconductor package", Applicant: "Samsung Electronics"},
		},
		TotalCount: 2,
		Page:       1,
		PageSize:   20,
	}
}

func TestSearchPatentsJSONRoundTrip(t *testing.T) {
	svc := &fakeSearchService{result: samsungResult()}
	handler := &SearchPatentsHandler{Service: svc}

	res, err := handler.ToolAdapter(context.Background(), newRequest(map[string]any{
		"applicant_name":  "Samsung Electronics",
		"response_format": "json",
	}))
	if err != nil {
		t.Fatalf("tool call failed: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, res))
	}

	var decoded kipris.SearchResult
	if err := json.Unmarshal([]byte(resultText(t, res)), &decoded); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if len(decoded.Patents) != 2 {
		t.Fatalf("got %d patents, want 2", len(decoded.Patents))
	}
	if decoded.Patents[0].ApplicationNumber != "1020200111111" {
		t.Fatalf("unexpected first record: %+v", decoded.Patents[0])
	}

	// Field names are part of the tool contract.
	var raw map[string]any
	_ = json.Unmarshal([]byte(resultText(t, res)), &raw)
	for _, key := range []string{"patents", "total_count", "page", "page_size", "has_more"} {
		if _, ok := raw[key]; !ok {
			t.Fatalf("missing field %q in JSON payload", key)
		}
	}
}

func TestSearchPatentsMarkdownContainsTitles(t *testing.T) {
	svc := &fakeSearchService{result: samsungResult()}
	handler := &SearchPatentsHandler{Service: svc}

	res, err := handler.ToolAdapter(context.Background(), newRequest(map[string]any{
		"applicant_name": "Samsung Electronics",
	}))
	if err != nil {
		t.Fatalf("tool call failed: %v", err)
	}
	text := resultText(t, res)
	if !strings.Contains(text, "Display device") || !strings.Contains(text, "Semiconductor package") {
		t.Fatalf("markdown missing titles:\n%s", text)
	}
}

func TestSearchPatentsDefaultsPagination(t *testing.T) {
	svc := &fakeSearchService{result: samsungResult()}
	handler := &SearchPatentsHandler{Service: svc}

	if _, err := handler.ToolAdapter(context.Background(), newRequest(map[string]any{
		"applicant_name": "Samsung Electronics",
	})); err != nil {
		t.Fatalf("tool call failed: %v", err)
	}
	if svc.gotPage != 1 || svc.gotPageSize != kipris.DefaultPageSize {
		t.Fatalf("defaults not applied: page=%d page_size=%d", svc.gotPage, svc.gotPageSize)
	}
}

func TestSearchPatentsValidatesBeforeCalling(t *testing.T) {
	svc := &fakeSearchService{}
	handler := &SearchPatentsHandler{Service: svc}

	cases := []map[string]any{
		{},
		{"applicant_name": "Samsung", "page": float64(0)},
		{"applicant_name": "Samsung", "page_size": float64(101)},
		{"applicant_name": "Samsung", "page_size": float64(0)},
		{"applicant_name": "Samsung", "status": "Z"},
		{"applicant_name": "Samsung", "response_format": "yaml"},
	}
	for i, args := range cases {
		res, err := handler.ToolAdapter(context.Background(), newRequest(args))
		if err != nil {
			t.Fatalf("case %d: unexpected transport error: %v", i, err)
		}
		if !res.IsError {
			t.Fatalf("case %d: expected tool error", i)
		}
	}
	if svc.calls != 0 {
		t.Fatalf("service called %d times despite invalid input", svc.calls)
	}
}

func TestGetPatentDetailRejectsMalformedNumber(t *testing.T) {
	svc := &fakeDetailService{}
	handler := &GetPatentDetailHandler{Service: svc}

	res, err := handler.ToolAdapter(context.Background(), newRequest(map[string]any{
		"application_number": "12-34",
	}))
	if err != nil {
		t.Fatalf("tool call failed: %v", err)
	}
	if !res.IsError {
		t.Fatalf("expected tool error for malformed number")
	}
	if svc.calls != 0 {
		t.Fatalf("service called despite malformed number")
	}
}

func TestGetPatentDetailAuthErrorIsFixedMessage(t *testing.T) {
	svc := &fakeDetailService{err: &kipris.Error{Kind: kipris.KindAuth, Op: "get_patent_detail"}}
	handler := &GetPatentDetailHandler{Service: svc}

	res, err := handler.ToolAdapter(context.Background(), newRequest(map[string]any{
		"application_number": "1020200123456",
	}))
	if err != nil {
		t.Fatalf("tool call failed: %v", err)
	}
	if !res.IsError {
		t.Fatalf("expected tool error")
	}
	text := resultText(t, res)
	if !strings.Contains(text, "KIPRIS_API_KEY") {
		t.Fatalf("auth message should point at the key variable: %s", text)
	}
	if strings.Contains(text, "secret") || strings.Contains(text, "accessKey=") {
		t.Fatalf("auth message leaks credentials: %s", text)
	}
}

func TestGetPatentDetailMarkdown(t *testing.T) {
	svc := &fakeDetailService{detail: kipris.PatentDetail{
		PatentSummary: kipris.PatentSummary{
			ApplicationNumber: "1020200123456",
			Title:             "Battery cell",
			Applicant:         "LG Energy Solution",
		},
		Abstract:   "A battery cell.",
		Inventors:  []string{"Kim Minsu"},
		ClaimCount: 7,
	}}
	handler := &GetPatentDetailHandler{Service: svc}

	res, err := handler.ToolAdapter(context.Background(), newRequest(map[string]any{
		"application_number": "10-2020-0123456",
	}))
	if err != nil {
		t.Fatalf("tool call failed: %v", err)
	}
	text := resultText(t, res)
	for _, want := range []string{"Battery cell", "1020200123456", "Kim Minsu", "Abstract"} {
		if !strings.Contains(text, want) {
			t.Fatalf("markdown missing %q:\n%s", want, text)
		}
	}
}

func TestGetCitingPatentsEmptyMarkdown(t *testing.T) {
	svc := &fakeCitationService{records: []kipris.CitationRecord{}}
	handler := &GetCitingPatentsHandler{Service: svc}

	res, err := handler.ToolAdapter(context.Background(), newRequest(map[string]any{
		"application_number": "1020200123456",
	}))
	if err != nil {
		t.Fatalf("tool call failed: %v", err)
	}
	if res.IsError {
		t.Fatalf("empty citations must not be an error: %s", resultText(t, res))
	}
	if !strings.Contains(resultText(t, res), "No later patents cite this one") {
		t.Fatalf("unexpected markdown:\n%s", resultText(t, res))
	}
}

func TestGetCitingPatentsJSONPayload(t *testing.T) {
	svc := &fakeCitationService{records: []kipris.CitationRecord{
		{CitingApplicationNumber: "1020210999999", StatusName: "Registered"},
	}}
	handler := &GetCitingPatentsHandler{Service: svc}

	res, err := handler.ToolAdapter(context.Background(), newRequest(map[string]any{
		"application_number": "1020200123456",
		"response_format":    "json",
	}))
	if err != nil {
		t.Fatalf("tool call failed: %v", err)
	}

	var payload struct {
		BaseApplicationNumber string                  `json:"base_application_number"`
		CitingCount           int                     `json:"citing_count"`
		CitingPatents         []kipris.CitationRecord `json:"citing_patents"`
	}
	if err := json.Unmarshal([]byte(resultText(t, res)), &payload); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if payload.BaseApplicationNumber != "1020200123456" || payload.CitingCount != 1 {
		t.Fatalf("unexpected payload: %+v", payload)
	}
	if payload.CitingPatents[0].CitingApplicationNumber != "1020210999999" {
		t.Fatalf("unexpected record: %+v", payload.CitingPatents[0])
	}
}

func TestGetCitingPatentsTimeoutMapped(t *testing.T) {
	svc := &fakeCitationService{err: &kipris.Error{Kind: kipris.KindTimeout, Op: "get_citing_patents"}}
	handler := &GetCitingPatentsHandler{Service: svc}

	res, err := handler.ToolAdapter(context.Background(), newRequest(map[string]any{
		"application_number": "1020200123456",
	}))
	if err != nil {
		t.Fatalf("tool call failed: %v", err)
	}
	if !res.IsError || !strings.Contains(resultText(t, res), "timed out") {
		t.Fatalf("timeout not mapped: %s", resultText(t, res))
	}
}
