package usecase

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Candidate Data"

const noDocument = "Document does not exist"

// sheetWriter appends styled two-column blocks to the workbook and tracks
// per-column content widths for the auto-fit pass.
type sheetWriter struct {
	f         *excelize.File
	row       int
	colWidths map[int]int
	header    int
	value     int
	link      int
}

func newSheetWriter(f *excelize.File) (*sheetWriter, error) {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#4F81BD"}},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}
	valueStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}
	linkStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 11, Color: "#0000FF", Underline: "single"},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}
	return &sheetWriter{
		f:         f,
		colWidths: make(map[int]int),
		header:    headerStyle,
		value:     valueStyle,
		link:      linkStyle,
	}, nil
}

func (w *sheetWriter) appendHeader() {
	w.appendRow(true, "Subject", "Value")
}

func (w *sheetWriter) appendRow(isHeader bool, values ...interface{}) {
	w.row++
	for col, v := range values {
		cell, _ := excelize.CoordinatesToCellName(col+1, w.row)
		w.f.SetCellValue(sheetName, cell, v)
		style := w.value
		if isHeader {
			style = w.header
		}
		w.f.SetCellStyle(sheetName, cell, cell, style)
		w.trackWidth(col, fmt.Sprintf("%v", v))
	}
}

// appendDocumentRow renders a file-backed field: a hyperlink cell when the
// object exists, literal placeholder text otherwise.
func (w *sheetWriter) appendDocumentRow(subject, url string) {
	if url == "" {
		w.appendRow(false, subject, noDocument)
		return
	}
	w.row++
	subjectCell, _ := excelize.CoordinatesToCellName(1, w.row)
	linkCell, _ := excelize.CoordinatesToCellName(2, w.row)
	w.f.SetCellValue(sheetName, subjectCell, subject)
	w.f.SetCellStyle(sheetName, subjectCell, subjectCell, w.value)
	w.f.SetCellValue(sheetName, linkCell, "Download")
	w.f.SetCellHyperLink(sheetName, linkCell, url, "External")
	w.f.SetCellStyle(sheetName, linkCell, linkCell, w.link)
	w.trackWidth(0, subject)
	w.trackWidth(1, "Download")
}

func (w *sheetWriter) blankRow() {
	w.row++
}

func (w *sheetWriter) trackWidth(col int, v string) {
	if len(v) > w.colWidths[col] {
		w.colWidths[col] = len(v)
	}
}

// autoFit sizes each column to its longest rendered value.
func (w *sheetWriter) autoFit() {
	for col, width := range w.colWidths {
		name, _ := excelize.ColumnNumberToName(col + 1)
		w.f.SetColWidth(sheetName, name, name, float64(width+2))
	}
}

// renderSheet produces the candidate workbook: core fields first, then one
// block per related record, blocks separated by a blank row.
func (u *ExportUsecase) renderSheet(ctx context.Context, d *CandidateDossier) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName("Sheet1", sheetName)

	w, err := newSheetWriter(f)
	if err != nil {
		return nil, fmt.Errorf("failed to build sheet styles: %w", err)
	}

	c := &d.Candidate
	phone := c.CallPhoneNumber
	if phone == "" {
		phone = c.WhatsappPhoneNumber
	}

	// Basic information
	w.appendHeader()
	w.appendRow(false, "Email", c.Email)
	w.appendRow(false, "Name", c.FullName())
	w.appendRow(false, "National ID Number", c.NationalIDNumber)
	w.appendRow(false, "Phone Number", phone)
	w.blankRow()

	// Personal information and document links
	w.appendHeader()
	w.appendRow(false, "Name", c.FullName())
	w.appendRow(false, "Birth Date", sheetDate(c.Birthday))
	w.appendRow(false, "Gender", c.Gender)
	w.appendDocumentRow("Passport Copy", u.objectURL(ctx, c.PassportCopyKey))
	w.appendRow(false, "Passport Expiration Date", sheetDate(c.PassportExpirationDate))
	w.appendRow(false, "Passport Number", c.PassportID)
	w.appendDocumentRow("Personal Image", u.objectURL(ctx, c.PersonalImageKey))
	w.appendRow(false, "Address", c.Address)
	w.appendDocumentRow("ID Copy", u.objectURL(ctx, c.NationalIDCopyKey))
	w.blankRow()

	for i := range d.Educations {
		e := &d.Educations[i]
		w.appendHeader()
		w.appendRow(false, "Degree", e.Degree)
		w.appendRow(false, "Institution Country", e.InstitutionCountry)
		w.appendRow(false, "Institution Name", e.Institution)
		w.appendRow(false, "Field of Study", e.FieldOfStudy)
		w.appendRow(false, "Start Date", sheetDate(&e.StartDate))
		w.appendRow(false, "End Date", sheetDate(e.EndDate))
		w.appendDocumentRow("Certification Copy", u.objectURL(ctx, e.CertificationKey))
		w.appendDocumentRow("Transcript Copy", u.objectURL(ctx, e.TranscriptKey))
		w.blankRow()
	}

	for i := range d.Experiences {
		e := &d.Experiences[i]
		w.appendHeader()
		w.appendRow(false, "Start Date", sheetDate(&e.StartDate))
		w.appendRow(false, "End Date", sheetDate(e.EndDate))
		w.appendRow(false, "Job Title", e.JobTitle)
		w.appendRow(false, "Company Name", e.CompanyName)
		w.appendRow(false, "Company Location", e.CompanyLocation)
		w.blankRow()
	}

	now := u.clock.Now()
	for i := range d.Licenses {
		l := &d.Licenses[i]
		status := "Valid"
		if l.IsExpired(now) {
			status = "Expired"
		}
		w.appendHeader()
		w.appendRow(false, "License Name", l.LicenseName)
		w.appendRow(false, "License Provider Country", l.ProviderCountry)
		w.appendRow(false, "License Provider Name", l.ProviderName)
		w.appendRow(false, "License Number", l.LicenseNumber)
		w.appendRow(false, "License Status", status)
		w.appendRow(false, "Start Date", sheetDate(&l.IssuedDate))
		w.appendRow(false, "End Date", sheetDate(l.ExpiryDate))
		w.blankRow()
	}

	for i := range d.TrainingCourses {
		t := &d.TrainingCourses[i]
		w.appendHeader()
		w.appendRow(false, "Course Name", t.CourseName)
		w.appendRow(false, "Location", t.Location)
		w.appendRow(false, "End Date", sheetDate(t.EndDate))
		w.blankRow()
	}

	w.autoFit()

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func (u *ExportUsecase) objectURL(ctx context.Context, key string) string {
	if key == "" || u.store == nil {
		return ""
	}
	return u.store.URL(ctx, key)
}

func sheetDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
