package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/medregistry/clinic-backend/internal/models"
	"gorm.io/gorm"
)

// unknownCreator is printed when a program's creator row is missing.
const unknownCreator = "Unknown"

// ReportService projects client and program records into CSV and PDF
// byte streams. Rendering is deterministic for identical input order, so
// repeated exports of the same data are byte-reproducible.
type ReportService struct {
	db *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

// FilteredClients loads the client set for a report. Both filters are
// lenient on bad input:
//   - programName must exactly match an existing program; when nothing
//     matches, the filter is ignored and the full set is returned rather
//     than zero results.
//   - after must parse as YYYY-MM-DD; an unparseable value leaves the
//     filter unapplied. When active it keeps clients whose DOB string is
//     not lexicographically before it, the same comparison the registry
//     has always used for date-shaped strings.
func (s *ReportService) FilteredClients(programName, after string) ([]models.Client, error) {
	var clients []models.Client
	if err := s.db.Preload("Programs").Find(&clients).Error; err != nil {
		return nil, fmt.Errorf("failed to load clients: %w", err)
	}

	if programName != "" {
		var program models.Program
		if err := s.db.Where("name = ?", programName).First(&program).Error; err == nil {
			filtered := clients[:0]
			for _, c := range clients {
				if clientEnrolledIn(&c, program.ID.String()) {
					filtered = append(filtered, c)
				}
			}
			clients = filtered
		}
	}

	if after != "" {
		if _, err := time.Parse("2006-01-02", after); err == nil {
			filtered := clients[:0]
			for _, c := range clients {
				if c.DOB >= after {
					filtered = append(filtered, c)
				}
			}
			clients = filtered
		}
	}

	return clients, nil
}

// Programs loads every program with its creator and enrolled clients for
// the program reports.
func (s *ReportService) Programs() ([]models.Program, error) {
	var programs []models.Program
	if err := s.db.Preload("Creator").Preload("Clients").Find(&programs).Error; err != nil {
		return nil, fmt.Errorf("failed to load programs: %w", err)
	}
	return programs, nil
}

// ClientsCSV renders one header row and one row per client, six fields
// each, in query order.
func (s *ReportService) ClientsCSV(clients []models.Client) ([]byte, error) {
	var buffer bytes.Buffer
	writer := csv.NewWriter(&buffer)

	if err := writer.Write([]string{"Name", "DOB", "Gender", "Contact", "Address", "Programs"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for i := range clients {
		c := &clients[i]
		record := []string{c.Name, c.DOB, c.Gender, c.Contact, c.Address, joinProgramNames(c)}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buffer.Bytes(), nil
}

// ClientsPDF renders the filtered client registry onto Letter pages: a
// bold title at the top margin, then one 10pt text line per client,
// breaking to a fresh page when the cursor passes the bottom margin.
func (s *ReportService) ClientsPDF(clients []models.Client) ([]byte, error) {
	const (
		leftMargin   = 40.0
		topMargin    = 40.0
		bottomMargin = 40.0
		lineHeight   = 15.0
	)

	pdf := gofpdf.New("P", "pt", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	_, pageHeight := pdf.GetPageSize()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Text(leftMargin, topMargin, "Filtered Client Registry Report")

	pdf.SetFont("Helvetica", "", 10)
	y := topMargin + 30

	for i := range clients {
		c := &clients[i]
		line := fmt.Sprintf("%s | DOB: %s | Contact: %s | Programs: %s", c.Name, c.DOB, c.Contact, joinProgramNames(c))
		pdf.Text(leftMargin, y, line)
		y += lineHeight
		if y > pageHeight-bottomMargin {
			pdf.AddPage()
			pdf.SetFont("Helvetica", "", 10)
			y = topMargin
		}
	}

	var buffer bytes.Buffer
	if err := pdf.Output(&buffer); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buffer.Bytes(), nil
}

// ProgramsCSV renders one row per program: name, creator display name and
// enrolled-client count.
func (s *ReportService) ProgramsCSV(programs []models.Program) ([]byte, error) {
	var buffer bytes.Buffer
	writer := csv.NewWriter(&buffer)

	if err := writer.Write([]string{"Program", "Created By", "Enrolled Clients"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for i := range programs {
		p := &programs[i]
		record := []string{p.Name, creatorName(p), fmt.Sprintf("%d", len(p.Clients))}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buffer.Bytes(), nil
}

// ProgramsPDF renders the program registry with the same page geometry
// as the client report.
func (s *ReportService) ProgramsPDF(programs []models.Program) ([]byte, error) {
	const (
		leftMargin   = 40.0
		topMargin    = 40.0
		bottomMargin = 40.0
		lineHeight   = 15.0
	)

	pdf := gofpdf.New("P", "pt", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	_, pageHeight := pdf.GetPageSize()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Text(leftMargin, topMargin, "Programs Report")

	pdf.SetFont("Helvetica", "", 10)
	y := topMargin + 30

	for i := range programs {
		p := &programs[i]
		line := fmt.Sprintf("%s | Created by: %s | Enrolled clients: %d", p.Name, creatorName(p), len(p.Clients))
		pdf.Text(leftMargin, y, line)
		y += lineHeight
		if y > pageHeight-bottomMargin {
			pdf.AddPage()
			pdf.SetFont("Helvetica", "", 10)
			y = topMargin
		}
	}

	var buffer bytes.Buffer
	if err := pdf.Output(&buffer); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buffer.Bytes(), nil
}

func clientEnrolledIn(c *models.Client, programID string) bool {
	for _, p := range c.Programs {
		if p.ID.String() == programID {
			return true
		}
	}
	return false
}

func joinProgramNames(c *models.Client) string {
	names := make([]string, len(c.Programs))
	for i, p := range c.Programs {
		names[i] = p.Name
	}
	return strings.Join(names, ", ")
}

func creatorName(p *models.Program) string {
	if p.Creator != nil {
		return p.Creator.Name
	}
	return unknownCreator
}
