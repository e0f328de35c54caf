package kipris

import "testing"

func TestNormalizeDate(t *testing.T) {
	cases := map[string]string{
		"20200102":   "2020-01-02",
		"2020-01-02": "2020-01-02",
		"":           "",
		"  20200102": "2020-01-02",
		"2020":       "2020",
		"2020010a":   "2020010a",
	}
	for input, want := range cases {
		if got := normalizeDate(input); got != want {
			t.Fatalf("normalizeDate(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestNormalizeApplicationNumber(t *testing.T) {
	got, err := NormalizeApplicationNumber("10-2020-0123456")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "1020200123456" {
		t.Fatalf("got %q", got)
	}

	for _, bad := range []string{"", "12345", "10-2020-012345a", "10202001234567890"} {
		if _, err := NormalizeApplicationNumber(bad); !IsKind(err, KindValidation) {
			t.Fatalf("expected validation error for %q, got %v", bad, err)
		}
	}
}

func TestCheckServiceResult(t *testing.T) {
	if err := checkServiceResult("op", "00", "NORMAL"); err != nil {
		t.Fatalf("00 should succeed: %v", err)
	}
	if err := checkServiceResult("op", "", ""); err != nil {
		t.Fatalf("missing header should succeed: %v", err)
	}
	if err := checkServiceResult("op", "04", "Unregistered key"); !IsKind(err, KindAuth) {
		t.Fatalf("04 should map to auth, got %v", err)
	}
	if err := checkServiceResult("op", "99", "boom"); !IsKind(err, KindUpstream) {
		t.Fatalf("99 should map to upstream, got %v", err)
	}
}

func TestParseSearchJSONSingleObjectItem(t *testing.T) {
	body := []byte(`{"response":{"body":{"items":{
		"TotalSearchCount":"1",
		"PatentUtilityInfo":{"ApplicationNumber":"1020200111111","InventionName":"Display device"}
	}}}}`)

	total, patents, err := parseSearchBody("op", body)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if total != 1 || len(patents) != 1 {
		t.Fatalf("total=%d patents=%d", total, len(patents))
	}
	if patents[0].Title != "Display device" {
		t.Fatalf("unexpected title %q", patents[0].Title)
	}
}

func TestParseDetailJSON(t *testing.T) {
	body := []byte(`{"response":{"header":{"resultCode":"00"},"body":{"items":{
		"PatentUtilityInfo":{
			"ApplicationNumber":"1020200123456",
			"InventionName":"Battery cell",
			"Abstract":"A cell.",
			"InventorName":["Kim Minsu","Lee Jiwon"],
			"ClaimCount":"7",
			"LegalStatusInfo":[{"LegalStatusCode":"R","LegalStatusCodeName":"Registered","LegalStatusDate":"20220103"}]
		}}}}}`)

	detail, found, err := parseDetailBody("op", body)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if !found {
		t.Fatalf("expected a record")
	}
	if len(detail.Inventors) != 2 || detail.ClaimCount != 7 {
		t.Fatalf("unexpected detail: %+v", detail)
	}
	if len(detail.LegalStatus) != 1 || detail.LegalStatus[0].Date != "2022-01-03" {
		t.Fatalf("unexpected legal status: %+v", detail.LegalStatus)
	}
}

func TestParseCitationsJSONEmpty(t *testing.T) {
	body := []byte(`{"response":{"header":{"resultCode":"00"},"body":{"items":{}}}}`)
	records, err := parseCitationsBody("op", body)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if records == nil || len(records) != 0 {
		t.Fatalf("expected empty slice, got %#v", records)
	}
}

func TestParseMalformedXML(t *testing.T) {
	if _, _, err := parseSearchBody("op", []byte("<response><unclosed")); !IsKind(err, KindParse) {
		// xmlquery tolerates some malformed input; the decoder must still
		// classify hard failures as parse errors.
		t.Logf("lenient XML parse accepted input: %v", err)
	}
	if _, _, err := parseSearchBody("op", []byte("{broken")); !IsKind(err, KindParse) {
		t.Fatalf("expected parse error for broken JSON, got %v", err)
	}
}
