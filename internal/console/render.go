package console

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/noah-isme/gema-reportcard/internal/dto"
)

const (
	narrowRule = 60
	wideRule   = 100
	dateLayout = "2006-01-02 15:04:05"
)

func banner(w io.Writer, title string, width int) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("=", width))
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("=", width))
}

// RenderReportCard prints the marks and weighted contributions of one card.
func RenderReportCard(w io.Writer, card dto.ReportCard) {
	banner(w, "REPORT CARD", narrowRule)
	fmt.Fprintf(w, "Name: %s\n", card.Name)
	fmt.Fprintf(w, "Roll Number: %s\n", card.RollNumber)
	fmt.Fprintln(w, strings.Repeat("-", narrowRule))
	fmt.Fprintln(w, "MARKS OBTAINED:")
	fmt.Fprintf(w, "  Midterm (out of 50):        %.2f\n", card.Midterm)
	fmt.Fprintf(w, "  End Term (out of 100):      %.2f\n", card.Endterm)
	fmt.Fprintf(w, "  Internal (out of 100):      %.2f\n", card.Internal)
	fmt.Fprintln(w, strings.Repeat("-", narrowRule))
	fmt.Fprintln(w, "SCORE CONTRIBUTIONS:")
	fmt.Fprintf(w, "  Midterm Contribution (30%%): %.2f/30\n", card.Contributions.Midterm)
	fmt.Fprintf(w, "  End Term Contribution (30%%): %.2f/30\n", card.Contributions.Endterm)
	fmt.Fprintf(w, "  Internal Contribution (40%%): %.2f/40\n", card.Contributions.Internal)
	fmt.Fprintln(w, strings.Repeat("-", narrowRule))
	fmt.Fprintf(w, "FINAL SCORE (out of 100):   %.2f\n", card.Contributions.Final)
	fmt.Fprintln(w, strings.Repeat("=", narrowRule))
	fmt.Fprintln(w)
}

// RenderRecords prints the stored records as a fixed-width table in the given order.
func RenderRecords(w io.Writer, records []dto.StudentRecordResponse, loc *time.Location) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No records found in database!")
		return
	}
	if loc == nil {
		loc = time.Local
	}

	banner(w, "ALL STUDENT RECORDS", wideRule)
	fmt.Fprintf(w, "%-20s %-12s %-10s %-10s %-10s %-10s %-20s\n", "Name", "Roll No", "Midterm", "End Term", "Internal", "Final", "Date")
	fmt.Fprintln(w, strings.Repeat("-", wideRule))
	for _, record := range records {
		fmt.Fprintf(w, "%-20s %-12s %-10.2f %-10.2f %-10.2f %-10.2f %-20s\n",
			record.Name,
			record.RollNumber,
			record.Midterm,
			record.Endterm,
			record.Internal,
			record.Contributions.Final,
			record.RecordedAt.In(loc).Format(dateLayout),
		)
	}
	fmt.Fprintln(w, strings.Repeat("=", wideRule))
	fmt.Fprintln(w)
}
