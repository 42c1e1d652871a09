package pdf

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/go-pdf/fpdf"
	"github.com/skip2/go-qrcode"
)

// Voucher dados do comprovante de agendamento gerado para o paciente.
type Voucher struct {
	Code          string // identificador do agendamento
	PatientName   string
	PatientEmail  string
	ExamName      string
	ExamCategory  string
	Preparation   string
	FastingHours  int
	UnitName      string
	UnitCity      string
	UnitAddress   string
	ScheduledDate string // DD/MM/AAAA
	ScheduledTime string // HH:MM
	IssuedAt      string
}

// BuildVoucherPDF gera o comprovante em A4 com QR para conferência na recepção.
func BuildVoucherPDF(v Voucher) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Comprovante de Agendamento", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(0, 5, "Codigo: "+v.Code, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, "Emitido em: "+v.IssuedAt, "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Paciente", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, "Nome: "+v.PatientName, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "E-mail: "+v.PatientEmail, "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Exame", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, v.ExamName+" ("+v.ExamCategory+")", "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Data: "+v.ScheduledDate+" as "+v.ScheduledTime, "", 1, "L", false, 0, "")
	if v.FastingHours > 0 {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(0, 6, fmt.Sprintf("Jejum obrigatorio de %d horas", v.FastingHours), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
	}
	if v.Preparation != "" {
		pdf.MultiCell(0, 6, "Preparo: "+v.Preparation, "", "", false)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Local", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, v.UnitName+" - "+v.UnitCity, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, v.UnitAddress, "", 1, "L", false, 0, "")
	pdf.Ln(6)

	if v.Code != "" {
		qrPNG, err := qrcode.Encode(v.Code, qrcode.Medium, 128)
		if err == nil {
			tmpFile, err := os.CreateTemp("", "qr-*.png")
			if err == nil {
				tmpFile.Write(qrPNG)
				path := tmpFile.Name()
				tmpFile.Close()
				defer os.Remove(path)
				pdf.RegisterImage(path, "PNG")
				pdf.Image(path, 15, pdf.GetY(), 30, 30, false, "", 0, "")
				pdf.SetY(pdf.GetY() + 32)
			}
		}
	}

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.MultiCell(0, 5, "Apresente este comprovante na recepcao da unidade. Chegue com 15 minutos de antecedencia portando documento com foto.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteVoucherTo escreve o PDF no writer (para resposta HTTP ou arquivo).
func WriteVoucherTo(v Voucher, w io.Writer) error {
	b, err := BuildVoucherPDF(v)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}
