//go:build integration

package api

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/AlineAreda/app-e2elab/internal/repo"
	"github.com/AlineAreda/app-e2elab/internal/seed"
	"github.com/AlineAreda/app-e2elab/internal/testutil"
)

// nextBookableDate devolve uma data dentro da janela que não caia em domingo.
func nextBookableDate(offsetDays int) string {
	d := time.Now().AddDate(0, 0, offsetDays)
	if d.Weekday() == time.Sunday {
		d = d.AddDate(0, 0, 1)
	}
	return d.Format("2006-01-02")
}

func firstExamAndUnit(t *testing.T, srv http.Handler, token string) (examID, unitID string) {
	t.Helper()
	rec, out := doJSON(t, srv, http.MethodGet, "/api/exams", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("exams: status %d", rec.Code)
	}
	exams, _ := out["exams"].([]interface{})
	if len(exams) == 0 {
		t.Fatal("seed não criou exames")
	}
	examID, _ = exams[0].(map[string]interface{})["id"].(string)

	rec, out = doJSON(t, srv, http.MethodGet, "/api/units", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("units: status %d", rec.Code)
	}
	units, _ := out["units"].([]interface{})
	if len(units) == 0 {
		t.Fatal("seed não criou unidades")
	}
	unitID, _ = units[0].(map[string]interface{})["id"].(string)
	return examID, unitID
}

func TestIntegration_BookingLifecycle(t *testing.T) {
	ctx := context.Background()
	pool, _ := testutil.OpenPool(ctx)
	if pool == nil {
		t.Skip("DATABASE_URL not set for integration tests")
		return
	}
	defer pool.Close()
	if err := testutil.MustMigrate(ctx, pool); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := seed.Run(ctx, pool); err != nil {
		t.Fatalf("seed: %v", err)
	}

	h := newTestHandler(t, pool)
	srv := newTestRouter(h)
	_, token := signupTestUser(t, srv, randomCPF())
	examID, unitID := firstExamAndUnit(t, srv, token)

	date := nextBookableDate(2)

	// faltando campo
	rec, _ := doJSON(t, srv, http.MethodPost, "/api/me/appointments", token, map[string]string{
		"exam_id": examID, "unit_id": unitID, "scheduled_date": date,
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("agendamento sem horário: status %d, want 400", rec.Code)
	}

	// cria
	rec, out := doJSON(t, srv, http.MethodPost, "/api/me/appointments", token, map[string]string{
		"exam_id": examID, "unit_id": unitID, "scheduled_date": date, "scheduled_time": "08:00",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("criação: status %d body %s", rec.Code, rec.Body.String())
	}
	apptID, _ := out["id"].(string)
	if apptID == "" {
		t.Fatal("criação não devolveu id")
	}
	if status, _ := out["status"].(string); status != repo.StatusScheduled {
		t.Errorf("status inicial %q, want %q", status, repo.StatusScheduled)
	}

	// lista com dados de exame e unidade
	rec, out = doJSON(t, srv, http.MethodGet, "/api/me/appointments", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("listagem: status %d", rec.Code)
	}
	appts, _ := out["appointments"].([]interface{})
	if len(appts) != 1 {
		t.Fatalf("listagem devolveu %d agendamentos, want 1", len(appts))
	}
	first := appts[0].(map[string]interface{})
	if name, _ := first["exam_name"].(string); name == "" {
		t.Error("listagem sem nome do exame")
	}
	if city, _ := first["unit_city"].(string); city == "" {
		t.Error("listagem sem cidade da unidade")
	}

	// outro usuário não enxerga nem mexe
	_, otherToken := signupTestUser(t, srv, randomCPF())
	rec, out = doJSON(t, srv, http.MethodGet, "/api/me/appointments", otherToken, nil)
	if appts, _ := out["appointments"].([]interface{}); len(appts) != 0 {
		t.Error("agendamento vazou para outro usuário")
	}
	rec, _ = doJSON(t, srv, http.MethodPost, "/api/me/appointments/"+apptID+"/cancel", otherToken, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("cancelamento de agendamento alheio: status %d, want 404", rec.Code)
	}

	// reagenda
	newDate := nextBookableDate(5)
	if newDate == date {
		newDate = nextBookableDate(7)
	}
	rec, out = doJSON(t, srv, http.MethodPatch, "/api/me/appointments/"+apptID, token, map[string]string{
		"scheduled_date": newDate, "scheduled_time": "09:30",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("reagendamento: status %d body %s", rec.Code, rec.Body.String())
	}
	if status, _ := out["status"].(string); status != repo.StatusScheduled {
		t.Errorf("reagendamento mudou status para %q", status)
	}

	// mesma data e horário é recusado
	rec, out = doJSON(t, srv, http.MethodPatch, "/api/me/appointments/"+apptID, token, map[string]string{
		"scheduled_date": newDate, "scheduled_time": "09:30",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("reagendamento sem mudança: status %d, want 400", rec.Code)
	}
	if msg, _ := out["error"].(string); msg != "Selecione uma nova data ou horário para reagendar" {
		t.Errorf("mensagem de no-op: %q", msg)
	}

	// comprovante em PDF
	rec, _ = doJSON(t, srv, http.MethodGet, "/api/me/appointments/"+apptID+"/voucher", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("comprovante: status %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("comprovante com Content-Type %q", ct)
	}

	// cancela
	rec, out = doJSON(t, srv, http.MethodPost, "/api/me/appointments/"+apptID+"/cancel", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("cancelamento: status %d body %s", rec.Code, rec.Body.String())
	}
	if status, _ := out["status"].(string); status != repo.StatusCancelled {
		t.Errorf("status após cancelar %q, want %q", status, repo.StatusCancelled)
	}

	// cancelar de novo mantém cancelado
	rec, out = doJSON(t, srv, http.MethodPost, "/api/me/appointments/"+apptID+"/cancel", token, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("cancelamento repetido: status %d, want 200", rec.Code)
	}

	// cancelado não reagenda
	rec, out = doJSON(t, srv, http.MethodPatch, "/api/me/appointments/"+apptID, token, map[string]string{
		"scheduled_date": nextBookableDate(9), "scheduled_time": "10:00",
	})
	if rec.Code != http.StatusConflict {
		t.Errorf("reagendar cancelado: status %d, want 409", rec.Code)
	}
	if msg, _ := out["error"].(string); msg != `Apenas agendamentos com status "agendado" podem ser reagendados` {
		t.Errorf("mensagem de reagendamento bloqueado: %q", msg)
	}
}

func TestIntegration_BookingRequiresActiveCatalog(t *testing.T) {
	ctx := context.Background()
	pool, _ := testutil.OpenPool(ctx)
	if pool == nil {
		t.Skip("DATABASE_URL not set for integration tests")
		return
	}
	defer pool.Close()
	if err := testutil.MustMigrate(ctx, pool); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := seed.Run(ctx, pool); err != nil {
		t.Fatalf("seed: %v", err)
	}

	h := newTestHandler(t, pool)
	srv := newTestRouter(h)
	_, token := signupTestUser(t, srv, randomCPF())
	activeExamID, activeUnitID := firstExamAndUnit(t, srv, token)
	date := nextBookableDate(3)

	// exame e unidade descartáveis, para não mexer no catálogo do seed
	var examID, unitID string
	err := pool.QueryRow(ctx, `
		INSERT INTO exams (name, description, duration, price, category, active)
		VALUES ('Exame Descontinuado', 'Somente para o fluxo de desativação', 15, 50.00, 'Diversos', true)
		RETURNING id
	`).Scan(&examID)
	if err != nil {
		t.Fatalf("insert exame: %v", err)
	}
	err = pool.QueryRow(ctx, `
		INSERT INTO units (name, city, address, neighborhood, phone, active)
		VALUES ('Unidade Encerrada', 'São Paulo', 'Rua Sem Saída, 1', 'Centro', '(11) 0000-0000', false)
		RETURNING id
	`).Scan(&unitID)
	if err != nil {
		t.Fatalf("insert unidade: %v", err)
	}

	// desativa o exame pela rota admin, como a operação faria
	rec, _ := doAdmin(t, srv, http.MethodPatch, "/api/exams/"+examID, `{"active":false}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("desativação do exame: status %d body %s", rec.Code, rec.Body.String())
	}

	// exame inativo segue visível no detalhe mas não agenda
	rec, _ = doJSON(t, srv, http.MethodGet, "/api/exams/"+examID, token, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("detalhe de exame inativo: status %d, want 200", rec.Code)
	}
	rec, out := doJSON(t, srv, http.MethodPost, "/api/me/appointments", token, map[string]string{
		"exam_id": examID, "unit_id": activeUnitID, "scheduled_date": date, "scheduled_time": "08:00",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("agendamento de exame inativo: status %d, want 400", rec.Code)
	}
	if msg, _ := out["error"].(string); msg != "Este exame não está mais disponível para agendamento." {
		t.Errorf("mensagem de exame inativo: %q", msg)
	}

	// unidade inativa idem
	rec, out = doJSON(t, srv, http.MethodPost, "/api/me/appointments", token, map[string]string{
		"exam_id": activeExamID, "unit_id": unitID, "scheduled_date": date, "scheduled_time": "08:00",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("agendamento em unidade inativa: status %d, want 400", rec.Code)
	}
	if msg, _ := out["error"].(string); msg != "Esta unidade não está disponível para agendamento." {
		t.Errorf("mensagem de unidade inativa: %q", msg)
	}

	// com o par ativo o mesmo payload passa
	rec, _ = doJSON(t, srv, http.MethodPost, "/api/me/appointments", token, map[string]string{
		"exam_id": activeExamID, "unit_id": activeUnitID, "scheduled_date": date, "scheduled_time": "08:00",
	})
	if rec.Code != http.StatusCreated {
		t.Errorf("agendamento com catálogo ativo: status %d, want 201", rec.Code)
	}
}

func TestIntegration_CancelCompletedAppointment(t *testing.T) {
	ctx := context.Background()
	pool, _ := testutil.OpenPool(ctx)
	if pool == nil {
		t.Skip("DATABASE_URL not set for integration tests")
		return
	}
	defer pool.Close()
	if err := testutil.MustMigrate(ctx, pool); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := seed.Run(ctx, pool); err != nil {
		t.Fatalf("seed: %v", err)
	}

	h := newTestHandler(t, pool)
	srv := newTestRouter(h)
	_, token := signupTestUser(t, srv, randomCPF())
	examID, unitID := firstExamAndUnit(t, srv, token)

	rec, out := doJSON(t, srv, http.MethodPost, "/api/me/appointments", token, map[string]string{
		"exam_id": examID, "unit_id": unitID, "scheduled_date": nextBookableDate(2), "scheduled_time": "09:00",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("criação: status %d body %s", rec.Code, rec.Body.String())
	}
	apptID, _ := out["id"].(string)

	// o exame aconteceu
	if _, err := pool.Exec(ctx, `UPDATE appointments SET status = $1 WHERE id = $2`, repo.StatusCompleted, apptID); err != nil {
		t.Fatalf("marcar como realizado: %v", err)
	}

	rec, out = doJSON(t, srv, http.MethodPost, "/api/me/appointments/"+apptID+"/cancel", token, nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("cancelar realizado: status %d, want 409", rec.Code)
	}
	if msg, _ := out["error"].(string); msg != `Apenas agendamentos com status "agendado" podem ser cancelados` {
		t.Errorf("mensagem de cancelamento bloqueado: %q", msg)
	}

	// continua realizado e visível na listagem
	rec, out = doJSON(t, srv, http.MethodGet, "/api/me/appointments", token, nil)
	appts, _ := out["appointments"].([]interface{})
	if len(appts) != 1 {
		t.Fatalf("listagem devolveu %d agendamentos, want 1", len(appts))
	}
	if status, _ := appts[0].(map[string]interface{})["status"].(string); status != repo.StatusCompleted {
		t.Errorf("status após tentativa de cancelar %q, want %q", status, repo.StatusCompleted)
	}
}

func TestIntegration_SlotsEndpoint(t *testing.T) {
	ctx := context.Background()
	pool, _ := testutil.OpenPool(ctx)
	if pool == nil {
		t.Skip("DATABASE_URL not set for integration tests")
		return
	}
	defer pool.Close()
	if err := testutil.MustMigrate(ctx, pool); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := seed.Run(ctx, pool); err != nil {
		t.Fatalf("seed: %v", err)
	}

	h := newTestHandler(t, pool)
	srv := newTestRouter(h)
	_, token := signupTestUser(t, srv, randomCPF())
	_, unitID := firstExamAndUnit(t, srv, token)

	// domingo dentro da janela
	sunday := time.Now()
	for sunday.Weekday() != time.Sunday {
		sunday = sunday.AddDate(0, 0, 1)
	}
	rec, out := doJSON(t, srv, http.MethodGet, "/api/slots?unit_id="+unitID+"&date="+sunday.Format("2006-01-02"), token, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("slots de domingo: status %d, want 400", rec.Code)
	}
	if msg, _ := out["error"].(string); msg != "unidade fechada aos domingos" {
		t.Errorf("mensagem de domingo: %q", msg)
	}

	// dia útil
	date := nextBookableDate(2)
	rec, out = doJSON(t, srv, http.MethodGet, "/api/slots?unit_id="+unitID+"&date="+date, token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("slots: status %d body %s", rec.Code, rec.Body.String())
	}
	slots, _ := out["slots"].([]interface{})
	if len(slots) == 0 {
		t.Fatal("nenhum slot gerado")
	}
	firstSlot := slots[0].(map[string]interface{})
	if tm, _ := firstSlot["time"].(string); tm != "07:00" {
		t.Errorf("primeiro slot %q, want 07:00", tm)
	}

	rec, out = doJSON(t, srv, http.MethodGet, "/api/available-dates", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("available-dates: status %d", rec.Code)
	}
	dates, _ := out["dates"].([]interface{})
	if len(dates) == 0 {
		t.Fatal("nenhuma data disponível")
	}
	for _, d := range dates {
		day, err := time.Parse("2006-01-02", d.(string))
		if err != nil {
			t.Fatalf("data inválida na lista: %v", d)
		}
		if day.Weekday() == time.Sunday {
			t.Errorf("domingo ofertado: %s", d)
		}
	}
}
