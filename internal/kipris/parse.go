package kipris

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/tidwall/gjson"
)

// KIPRIS serves XML by default; services with JSON enabled wrap the same
// element names in a response.body.items envelope. The decoder sniffs the
// body and handles both.

const resultCodeUnregisteredKey = "04"

type fields struct {
	get    func(tag string) string
	getAll func(tag string) []string
}

func isJSONPayload(body []byte) bool {
	trimmed := bytes.TrimLeft(body, " \t\r\n")
	return len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[')
}

// checkServiceResult maps an in-band KIPRIS error envelope to an error.
// Successful responses carry resultCode 00 or no header at all.
func checkServiceResult(op, code, msg string) error {
	code = strings.TrimSpace(code)
	if code == "" || code == "00" {
		return nil
	}
	if code == resultCodeUnregisteredKey {
		return newError(KindAuth, op, "access key rejected by KIPRIS", nil)
	}
	if msg == "" {
		msg = "service error"
	}
	return newError(KindUpstream, op, "KIPRIS result code "+code+": "+msg, nil)
}

func parseSearchBody(op string, body []byte) (int, []PatentSummary, error) {
	if isJSONPayload(body) {
		return parseSearchJSON(op, body)
	}
	return parseSearchXML(op, body)
}

func parseSearchXML(op string, body []byte) (int, []PatentSummary, error) {
	doc, err := xmlquery.Parse(bytes.NewReader(body))
	if err != nil {
		return 0, nil, newError(KindParse, op, "malformed XML response", err)
	}
	if err := checkServiceResult(op, xmlText(doc, "//resultCode"), xmlText(doc, "//resultMsg")); err != nil {
		return 0, nil, err
	}

	total := atoiSafe(xmlText(doc, "//TotalSearchCount"))
	items := xmlquery.Find(doc, "//PatentUtilityInfo")
	patents := make([]PatentSummary, 0, len(items))
	for _, item := range items {
		patents = append(patents, summaryFrom(xmlFields(item)))
	}
	return total, patents, nil
}

func parseSearchJSON(op string, body []byte) (int, []PatentSummary, error) {
	if !gjson.ValidBytes(body) {
		return 0, nil, newError(KindParse, op, "malformed JSON response", nil)
	}
	root := gjson.ParseBytes(body)
	header := root.Get("response.header")
	if err := checkServiceResult(op, header.Get("resultCode").String(), header.Get("resultMsg").String()); err != nil {
		return 0, nil, err
	}

	items := root.Get("response.body.items")
	total := atoiSafe(items.Get("TotalSearchCount").String())
	var patents []PatentSummary
	for _, item := range jsonItems(items.Get("PatentUtilityInfo")) {
		patents = append(patents, summaryFrom(jsonFields(item)))
	}
	if patents == nil {
		patents = []PatentSummary{}
	}
	return total, patents, nil
}

// parseDetailBody returns found=false when the response decodes cleanly but
// contains no patent record.
func parseDetailBody(op string, body []byte) (PatentDetail, bool, error) {
	if isJSONPayload(body) {
		if !gjson.ValidBytes(body) {
			return PatentDetail{}, false, newError(KindParse, op, "malformed JSON response", nil)
		}
		root := gjson.ParseBytes(body)
		header := root.Get("response.header")
		if err := checkServiceResult(op, header.Get("resultCode").String(), header.Get("resultMsg").String()); err != nil {
			return PatentDetail{}, false, err
		}
		items := jsonItems(root.Get("response.body.items.PatentUtilityInfo"))
		if len(items) == 0 {
			return PatentDetail{}, false, nil
		}
		return detailFrom(jsonFields(items[0])), true, nil
	}

	doc, err := xmlquery.Parse(bytes.NewReader(body))
	if err != nil {
		return PatentDetail{}, false, newError(KindParse, op, "malformed XML response", err)
	}
	if err := checkServiceResult(op, xmlText(doc, "//resultCode"), xmlText(doc, "//resultMsg")); err != nil {
		return PatentDetail{}, false, err
	}
	item := xmlquery.FindOne(doc, "//PatentUtilityInfo")
	if item == nil {
		return PatentDetail{}, false, nil
	}
	return detailFrom(xmlFields(item)), true, nil
}

func parseCitationsBody(op string, body []byte) ([]CitationRecord, error) {
	if isJSONPayload(body) {
		if !gjson.ValidBytes(body) {
			return nil, newError(KindParse, op, "malformed JSON response", nil)
		}
		root := gjson.ParseBytes(body)
		header := root.Get("response.header")
		if err := checkServiceResult(op, header.Get("resultCode").String(), header.Get("resultMsg").String()); err != nil {
			return nil, err
		}
		records := []CitationRecord{}
		for _, item := range jsonItems(root.Get("response.body.items.citingInfo")) {
			records = append(records, citationFrom(jsonFields(item)))
		}
		return records, nil
	}

	doc, err := xmlquery.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, newError(KindParse, op, "malformed XML response", err)
	}
	if err := checkServiceResult(op, xmlText(doc, "//resultCode"), xmlText(doc, "//resultMsg")); err != nil {
		return nil, err
	}
	items := xmlquery.Find(doc, "//citingInfo")
	records := make([]CitationRecord, 0, len(items))
	for _, item := range items {
		records = append(records, citationFrom(xmlFields(item)))
	}
	return records, nil
}

func summaryFrom(f fields) PatentSummary {
	return PatentSummary{
		ApplicationNumber:  f.get("ApplicationNumber"),
		ApplicationDate:    normalizeDate(f.get("ApplicationDate")),
		Title:              f.get("InventionName"),
		Applicant:          f.get("Applicant"),
		RegistrationStatus: f.get("RegistrationStatus"),
		OpeningNumber:      f.get("OpeningNumber"),
		OpeningDate:        normalizeDate(f.get("OpeningDate")),
		RegistrationNumber: f.get("RegistrationNumber"),
		RegistrationDate:   normalizeDate(f.get("RegistrationDate")),
	}
}

func detailFrom(f fields) PatentDetail {
	detail := PatentDetail{
		PatentSummary: summaryFrom(f),
		Abstract:      f.get("Abstract"),
		IPCNumber:     f.get("InternationalpatentclassificationNumber"),
		Inventors:     f.getAll("InventorName"),
		ClaimCount:    atoiSafe(f.get("ClaimCount")),
	}
	for _, step := range f.getAll("LegalStatusInfo") {
		// Steps arrive pre-joined as "code|name|date" from the field readers.
		parts := strings.SplitN(step, "|", 3)
		entry := LegalStatusStep{Code: parts[0]}
		if len(parts) > 1 {
			entry.Name = parts[1]
		}
		if len(parts) > 2 {
			entry.Date = normalizeDate(parts[2])
		}
		detail.LegalStatus = append(detail.LegalStatus, entry)
	}
	return detail
}

func citationFrom(f fields) CitationRecord {
	return CitationRecord{
		CitingApplicationNumber: f.get("ApplicationNumber"),
		CitingTitle:             f.get("InventionName"),
		CitationDate:            normalizeDate(f.get("CitationDate")),
		BaseApplicationNumber:   f.get("StandardCitationApplicationNumber"),
		StatusCode:              f.get("StandardStatusCode"),
		StatusName:              f.get("StandardStatusCodeName"),
		CitationTypeCode:        f.get("CitationLiteratureTypeCode"),
		CitationTypeName:        f.get("CitationLiteratureTypeCodeName"),
	}
}

func xmlFields(item *xmlquery.Node) fields {
	return fields{
		get: func(tag string) string {
			if n := xmlquery.FindOne(item, tag); n != nil {
				return strings.TrimSpace(n.InnerText())
			}
			return ""
		},
		getAll: func(tag string) []string {
			var values []string
			for _, n := range xmlquery.Find(item, tag) {
				if tag == "LegalStatusInfo" {
					values = append(values, joinLegalStatusXML(n))
					continue
				}
				if text := strings.TrimSpace(n.InnerText()); text != "" {
					values = append(values, text)
				}
			}
			return values
		},
	}
}

func joinLegalStatusXML(n *xmlquery.Node) string {
	get := func(tag string) string {
		if c := xmlquery.FindOne(n, tag); c != nil {
			return strings.TrimSpace(c.InnerText())
		}
		return ""
	}
	return get("LegalStatusCode") + "|" + get("LegalStatusCodeName") + "|" + get("LegalStatusDate")
}

func jsonFields(item gjson.Result) fields {
	return fields{
		get: func(tag string) string {
			return strings.TrimSpace(item.Get(tag).String())
		},
		getAll: func(tag string) []string {
			var values []string
			for _, entry := range jsonItems(item.Get(tag)) {
				if tag == "LegalStatusInfo" {
					values = append(values, strings.TrimSpace(entry.Get("LegalStatusCode").String())+"|"+
						strings.TrimSpace(entry.Get("LegalStatusCodeName").String())+"|"+
						strings.TrimSpace(entry.Get("LegalStatusDate").String()))
					continue
				}
				if text := strings.TrimSpace(entry.String()); text != "" {
					values = append(values, text)
				}
			}
			return values
		},
	}
}

// jsonItems tolerates KIPRIS returning a lone object where a one-element
// array would be expected.
func jsonItems(value gjson.Result) []gjson.Result {
	if !value.Exists() {
		return nil
	}
	if value.IsArray() {
		return value.Array()
	}
	return []gjson.Result{value}
}

// normalizeDate canonicalizes the upstream YYYYMMDD form to YYYY-MM-DD.
// Values in any other shape pass through trimmed.
func normalizeDate(value string) string {
	value = strings.TrimSpace(value)
	if len(value) != 8 {
		return value
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return value
		}
	}
	return value[:4] + "-" + value[4:6] + "-" + value[6:]
}

func xmlText(doc *xmlquery.Node, path string) string {
	if n := xmlquery.FindOne(doc, path); n != nil {
		return strings.TrimSpace(n.InnerText())
	}
	return ""
}

func atoiSafe(value string) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0
	}
	return n
}
