package tools

import (
	"fmt"
	"strings"

	"github.com/krtools/kipris-mcp/internal/kipris"
)

// Markdown layouts follow the shapes the KIPRIS web service presents:
// a header line with totals, then one block per record.

func renderSearchMarkdown(applicant string, result kipris.SearchResult) string {
	var b strings.Builder
	b.WriteString("## Patent Search Results\n\n")
	fmt.Fprintf(&b, "**%d** total match(es) for applicant %q, showing %d (page %d)\n\n",
		result.TotalCount, applicant, len(result.Patents), result.Page)

	if len(result.Patents) == 0 {
		b.WriteString("No patents found.\n")
		return b.String()
	}

	for i, patent := range result.Patents {
		b.WriteString("---\n")
		fmt.Fprintf(&b, "**[%d]** %s\n", i+1, orDash(patent.Title))
		fmt.Fprintf(&b, "- Application number: `%s`\n", orDash(patent.ApplicationNumber))
		fmt.Fprintf(&b, "- Filed: %s\n", orDash(patent.ApplicationDate))
		fmt.Fprintf(&b, "- Applicant: %s\n", orDash(patent.Applicant))
		fmt.Fprintf(&b, "- Status: %s\n\n", orDash(patent.RegistrationStatus))
	}

	if result.HasMore {
		b.WriteString("---\n")
		fmt.Fprintf(&b, "Next page: `page=%d`\n", result.NextPage)
	}
	return b.String()
}

func renderDetailMarkdown(detail kipris.PatentDetail) string {
	var b strings.Builder
	fmt.Fprintf(&b, "### %s\n\n", orDash(detail.Title))
	fmt.Fprintf(&b, "- **Application number**: %s\n", orDash(detail.ApplicationNumber))
	fmt.Fprintf(&b, "- **Filed**: %s\n", orDash(detail.ApplicationDate))
	fmt.Fprintf(&b, "- **Applicant**: %s\n", orDash(detail.Applicant))
	fmt.Fprintf(&b, "- **Status**: %s\n", orDash(detail.RegistrationStatus))

	if detail.OpeningNumber != "" {
		fmt.Fprintf(&b, "- **Opening number**: %s (%s)\n", detail.OpeningNumber, orDash(detail.OpeningDate))
	}
	if detail.RegistrationNumber != "" {
		fmt.Fprintf(&b, "- **Registration number**: %s (%s)\n", detail.RegistrationNumber, orDash(detail.RegistrationDate))
	}
	if detail.IPCNumber != "" {
		fmt.Fprintf(&b, "- **IPC classification**: %s\n", detail.IPCNumber)
	}
	if len(detail.Inventors) > 0 {
		fmt.Fprintf(&b, "- **Inventors**: %s\n", strings.Join(detail.Inventors, ", "))
	}
	if detail.ClaimCount > 0 {
		fmt.Fprintf(&b, "- **Claims**: %d\n", detail.ClaimCount)
	}

	if detail.Abstract != "" {
		b.WriteString("\n**Abstract**:\n")
		fmt.Fprintf(&b, "> %s\n", truncate(detail.Abstract, 500))
	}

	if len(detail.LegalStatus) > 0 {
		b.WriteString("\n**Legal status history**:\n\n")
		b.WriteString("| Date | Status | Code |\n|---|---|---|\n")
		for _, step := range detail.LegalStatus {
			fmt.Fprintf(&b, "| %s | %s | %s |\n", orDash(step.Date), orDash(step.Name), orDash(step.Code))
		}
	}
	return b.String()
}

func renderCitationsMarkdown(baseNumber string, records []kipris.CitationRecord) string {
	var b strings.Builder
	b.WriteString("## Citing Patents\n\n")
	fmt.Fprintf(&b, "Base patent `%s` is cited by **%d** later filing(s)\n\n", baseNumber, len(records))

	if len(records) == 0 {
		b.WriteString("No later patents cite this one.\n")
		return b.String()
	}

	for i, record := range records {
		b.WriteString("---\n")
		fmt.Fprintf(&b, "**[%d]** `%s`", i+1, orDash(record.CitingApplicationNumber))
		if record.CitingTitle != "" {
			fmt.Fprintf(&b, " %s", record.CitingTitle)
		}
		b.WriteString("\n")
		fmt.Fprintf(&b, "- Status: %s (%s)\n", orDash(record.StatusName), orDash(record.StatusCode))
		fmt.Fprintf(&b, "- Citation type: %s\n", orDash(record.CitationTypeName))
		if record.CitationDate != "" {
			fmt.Fprintf(&b, "- Cited: %s\n", record.CitationDate)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func orDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

func truncate(value string, limit int) string {
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return string(runes[:limit]) + "..."
}
