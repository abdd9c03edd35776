package usecase

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // register PNG decoder for stored profile images
	"os"
	"strings"
	"time"

	"go-agency-backoffice/internal/domain"
	"go-agency-backoffice/pkg/logger"

	"github.com/go-pdf/fpdf"
	"golang.org/x/image/draw"
)

// A4 layout constants, all in millimeters.
const (
	pageWidth   = 210.0
	frameInset  = 12.7
	leftMargin  = 32.0
	rightMargin = 32.0
	topMargin   = 52.0
	titleColW   = 46.0
	photoMaxPx  = 256
)

const missingValue = "N/A"

// renderPDF lays out the multi-section CV. The frame and logo are drawn by
// the page header callback, which fpdf invokes once per page before content
// placement.
func (u *ExportUsecase) renderPDF(ctx context.Context, d *CandidateDossier) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("%s's CV", d.Candidate.FullName()), true)
	pdf.SetCreationDate(u.clock.Now())
	pdf.SetModificationDate(u.clock.Now())
	pdf.SetMargins(leftMargin, topMargin, rightMargin)
	pdf.SetAutoPageBreak(true, 30)
	pdf.SetHeaderFunc(func() { u.drawPageFrame(pdf) })
	pdf.AddPage()

	u.drawContactHeader(ctx, pdf, d)

	bodyW := pageWidth - leftMargin - rightMargin - titleColW

	writeSection(pdf, bodyW, "Educational Qualifications", d.Educations, func(e domain.Education) string {
		return fmt.Sprintf("%s - %s\n%s\n(%s - %s)",
			orNA(e.Degree), orNA(e.FieldOfStudy), orNA(e.Institution),
			fmtDate(&e.StartDate, missingValue), fmtDate(e.EndDate, "Present"))
	})
	writeSection(pdf, bodyW, "Professional Experience", d.Experiences, func(e domain.Experience) string {
		s := fmt.Sprintf("%s , %s\n%s\n(%s - %s)",
			orNA(e.CompanyName), orNA(e.CompanyLocation), orNA(e.JobTitle),
			fmtDate(&e.StartDate, missingValue), fmtDate(e.EndDate, "Present"))
		if e.JobResponsibilities != "" {
			s += "\nResponsibilities: " + e.JobResponsibilities
		}
		return s
	})
	writeSection(pdf, bodyW, "Licenses", d.Licenses, func(l domain.License) string {
		return fmt.Sprintf("%s from %s\nIssue Date: %s\nExpiry Date: %s",
			orNA(l.LicenseName), orNA(l.ProviderName),
			fmtDate(&l.IssuedDate, missingValue), fmtDate(l.ExpiryDate, missingValue))
	})
	writeSection(pdf, bodyW, "Training Courses", d.TrainingCourses, func(t domain.TrainingCourse) string {
		return fmt.Sprintf("%s\n%s\n%s",
			orNA(t.CourseName), orNA(t.Location), fmtDate(t.EndDate, missingValue))
	})
	writeSection(pdf, bodyW, "References", d.References, func(r domain.Reference) string {
		return fmt.Sprintf("%s, %s\nContact: %s",
			orNA(r.Company), orNA(r.Position), orNA(r.ContactInfo))
	})

	u.drawDeclaration(pdf, bodyW, d.Candidate.FullName())

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to build CV pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// drawPageFrame paints the decorative triple border and the agency logo.
// Runs on every page, before and around content placement.
func (u *ExportUsecase) drawPageFrame(pdf *fpdf.Fpdf) {
	pdf.SetDrawColor(139, 13, 53)

	x, y := frameInset, frameInset
	w, h := pageWidth-2*frameInset, 297.0-2*frameInset
	for i, lw := range []float64{0.35, 0.7, 0.35} {
		pdf.SetLineWidth(lw)
		inset := 1.3 * float64(i)
		pdf.Rect(x+inset, y+inset, w-2*inset, h-2*inset, "D")
	}

	if u.logoPath == "" {
		return
	}
	if _, err := os.Stat(u.logoPath); err != nil {
		logger.Log.Error("CV logo not found", "path", u.logoPath)
		return
	}
	pdf.ImageOptions(u.logoPath, (pageWidth-25)/2, 20, 25, 25, false,
		fpdf.ImageOptions{ReadDpi: true}, 0, "")
}

// drawContactHeader renders the name/contact block with the photo on the
// right. A missing or unreadable photo falls back to placeholder text.
func (u *ExportUsecase) drawContactHeader(ctx context.Context, pdf *fpdf.Fpdf, d *CandidateDossier) {
	c := &d.Candidate
	startY := pdf.GetY()

	pdf.SetFont("Helvetica", "B", 13)
	pdf.SetTextColor(0, 0, 255)
	pdf.MultiCell(titleColW+50, 6, strings.ToUpper(c.FullName()), "", "L", false)
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
	pdf.MultiCell(titleColW+50, 5, fmt.Sprintf("Email: %s\nPhone: %s", orNA(c.Email), orNA(c.CallPhoneNumber)), "", "L", false)

	photoX := pageWidth - rightMargin - 28
	if photo := u.fetchPhoto(ctx, c); photo != nil {
		name := fmt.Sprintf("candidate-%d-photo", c.ID)
		pdf.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: "JPEG"}, bytes.NewReader(photo))
		pdf.ImageOptions(name, photoX, startY, 26, 26, false, fpdf.ImageOptions{ImageType: "JPEG"}, 0, "")
		pdf.Rect(photoX-1, startY-1, 28, 28, "D")
	} else {
		pdf.SetXY(photoX-4, startY+10)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(32, 5, "No Image Available", "1", 0, "C", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
	}

	pdf.SetXY(leftMargin, startY+32)
}

// fetchPhoto pulls the personal image from storage and downscales it to a
// small JPEG thumbnail before embedding. Any failure yields nil and the
// text placeholder takes over.
func (u *ExportUsecase) fetchPhoto(ctx context.Context, c *domain.Candidate) []byte {
	if c.PersonalImageKey == "" || u.store == nil {
		return nil
	}
	body, _, err := u.store.Get(ctx, c.PersonalImageKey)
	if err != nil {
		logger.Log.Warn("profile image unavailable", "candidate_id", c.ID, "error", err)
		return nil
	}
	defer body.Close()

	src, _, err := image.Decode(body)
	if err != nil {
		logger.Log.Warn("profile image not decodable", "candidate_id", c.ID, "error", err)
		return nil
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > photoMaxPx || h > photoMaxPx {
		scale := float64(photoMaxPx) / float64(max(w, h))
		dst := image.NewRGBA(image.Rect(0, 0, int(float64(w)*scale), int(float64(h)*scale)))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
		src = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, src, &jpeg.Options{Quality: 85}); err != nil {
		return nil
	}
	return buf.Bytes()
}

// writeSection prints one titled block: bold blue title in the left column,
// one entry per related record in the body column, "N/A" when the
// collection is empty.
func writeSection[T any](pdf *fpdf.Fpdf, bodyW float64, title string, items []T, format func(T) string) {
	y := pdf.GetY()
	pdf.SetXY(leftMargin, y)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 255)
	pdf.MultiCell(titleColW, 6, title, "", "L", false)

	pdf.SetXY(leftMargin+titleColW, y)
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
	if len(items) == 0 {
		pdf.MultiCell(bodyW, 5, missingValue, "", "L", false)
	}
	for _, item := range items {
		pdf.SetX(leftMargin + titleColW)
		pdf.MultiCell(bodyW, 5, format(item), "", "L", false)
		pdf.Ln(2)
	}
	pdf.Ln(4)
	pdf.SetX(leftMargin)
}

func (u *ExportUsecase) drawDeclaration(pdf *fpdf.Fpdf, bodyW float64, fullName string) {
	y := pdf.GetY()
	pdf.SetXY(leftMargin, y)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 255)
	pdf.MultiCell(titleColW, 6, "Declaration", "", "L", false)

	pdf.SetXY(leftMargin+titleColW, y)
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
	text := fmt.Sprintf("I hereby declare the above mentioned information is true and verifiable "+
		"to the best of my knowledge and I bear responsibility for the correctness of the "+
		"above mentioned particulars.\n\nDate: %s      Signature: %s",
		u.clock.Now().Format("02/01/2006"), fullName)
	pdf.MultiCell(bodyW, 5, text, "", "L", false)
}

func fmtDate(t *time.Time, fallback string) string {
	if t == nil || t.IsZero() {
		return fallback
	}
	return t.Format("02/Jan/2006")
}

func orNA(s string) string {
	if s == "" {
		return missingValue
	}
	return s
}
