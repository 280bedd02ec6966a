package payslip

import (
	"fmt"
	"os"
	"path/filepath"

	"poolops/internal/payperiod"

	"github.com/jung-kurt/gofpdf"
)

const defaultOutputDir = "storage/payslips"

// Generator renders payroll records to PDF payslips on local disk.
type Generator struct {
	outputDir string
}

func NewGenerator(outputDir string) *Generator {
	if outputDir == "" {
		outputDir = defaultOutputDir
	}
	return &Generator{outputDir: outputDir}
}

// Generate writes one payslip PDF and returns its path.
func (g *Generator) Generate(companyName string, period payperiod.PayPeriodResponse, rec payperiod.PayrollRecordResponse) (string, error) {
	if err := os.MkdirAll(g.outputDir, 0o755); err != nil {
		return "", err
	}
	filePath := filepath.Join(g.outputDir, rec.ID+".pdf")

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	if companyName != "" {
		pdf.Cell(0, 10, companyName)
		pdf.Ln(10)
	}
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", rec.EmployeeName))
	pdf.Ln(7)
	if rec.EmployeeEmail != "" {
		pdf.Cell(0, 8, fmt.Sprintf("Email: %s", rec.EmployeeEmail))
		pdf.Ln(7)
	}
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s (%s to %s)", period.Name, period.StartDate, period.EndDate))
	pdf.Ln(10)

	pdf.Cell(0, 8, fmt.Sprintf("Regular hours: %.2f", rec.TotalRegularHours))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Overtime hours: %.2f (x%.2f)", rec.TotalOvertimeHours, rec.OvertimeMultiplierUsed))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("PTO hours: %.2f", rec.TotalPTOHours))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Daily payouts: %.2f", rec.TotalDailyPayouts))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, fmt.Sprintf("Gross pay: %.2f", rec.TotalGrossPay))

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", err
	}

	return filePath, nil
}
