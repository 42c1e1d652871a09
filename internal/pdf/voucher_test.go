package pdf

import (
	"bytes"
	"testing"
)

func TestBuildVoucherPDF(t *testing.T) {
	v := Voucher{
		Code:          "4f47a5a3-1b6e-4a2e-9c47-0a3a7a3d9f10",
		PatientName:   "Maria Silva",
		PatientEmail:  "maria.silva@exemplo.com",
		ExamName:      "Glicemia de Jejum",
		ExamCategory:  "Sangue",
		Preparation:   "Jejum obrigatório de 8 horas. Água liberada.",
		FastingHours:  8,
		UnitName:      "Unidade Paulista",
		UnitCity:      "São Paulo",
		UnitAddress:   "Av. Paulista, 1450, Bela Vista",
		ScheduledDate: "15/09/2026",
		ScheduledTime: "07:30",
		IssuedAt:      "31/08/2026 10:00",
	}
	b, err := BuildVoucherPDF(v)
	if err != nil {
		t.Fatalf("BuildVoucherPDF: %v", err)
	}
	if !bytes.HasPrefix(b, []byte("%PDF")) {
		t.Error("saída não começa com o cabeçalho %PDF")
	}
	if len(b) < 1000 {
		t.Errorf("PDF suspeito de vazio: %d bytes", len(b))
	}
}

func TestWriteVoucherTo(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteVoucherTo(Voucher{Code: "abc"}, &buf); err != nil {
		t.Fatalf("WriteVoucherTo: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("nada escrito no writer")
	}
}
