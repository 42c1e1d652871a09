// Package schedule gera os horários agendáveis de uma unidade.
//
// Horário de funcionamento: segunda a sexta 07h-19h, sábado 07h-12h,
// domingo fechado. Slots de 30 minutos; o último começa meia hora antes
// do fechamento.
package schedule

import (
	"math/rand"
	"time"
)

const (
	openingHour        = 7
	weekdayClosingHour = 19
	saturdayClosing    = 12
	slotStepMinutes    = 30
	bookingWindowDays  = 30
)

// Slot é um horário de 30 minutos de uma data, transitório (nunca persistido).
type Slot struct {
	Time      string `json:"time"` // "HH:MM"
	Available bool   `json:"available"`
}

// AvailabilitySource responde se um horário está livre em uma unidade.
// A implementação padrão (RandomSource) é um stand-in: sorteia a
// disponibilidade em vez de consultar a ocupação real. Trocar a fonte não
// altera a política de horários.
type AvailabilitySource interface {
	IsAvailable(unitID string, date time.Time, slot string) bool
}

// RandomSource marca cada horário como disponível com probabilidade 0,7.
type RandomSource struct {
	rng *rand.Rand
}

// NewRandomSource usa o rng padrão; NewSeededSource fixa a semente (testes).
func NewRandomSource() *RandomSource {
	return &RandomSource{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func NewSeededSource(seed int64) *RandomSource {
	return &RandomSource{rng: rand.New(rand.NewSource(seed))}
}

func (s *RandomSource) IsAvailable(unitID string, date time.Time, slot string) bool {
	return s.rng.Float64() > 0.3
}

// ClosingHour devolve a hora de fechamento da data. Domingo não abre e
// nunca chega aqui: as datas ofertadas já o excluem (ver AvailableDates).
func ClosingHour(date time.Time) int {
	if date.Weekday() == time.Saturday {
		return saturdayClosing
	}
	return weekdayClosingHour
}

// Slots gera os horários da data de 30 em 30 minutos, das 07:00 até o
// fechamento (exclusivo), com a disponibilidade vinda de src.
// Sábado: 10 slots (07:00..11:30); demais dias: 24 (07:00..18:30).
func Slots(date time.Time, unitID string, src AvailabilitySource) []Slot {
	closing := ClosingHour(date)
	slots := make([]Slot, 0, (closing-openingHour)*60/slotStepMinutes)
	for hour := openingHour; hour < closing; hour++ {
		for minute := 0; minute < 60; minute += slotStepMinutes {
			t := formatHHMM(hour, minute)
			slots = append(slots, Slot{
				Time:      t,
				Available: src.IsAvailable(unitID, date, t),
			})
		}
	}
	return slots
}

// AvailableDates enumera as datas agendáveis: de amanhã até 30 dias à
// frente, em ordem crescente, sem domingos, formato "2006-01-02".
func AvailableDates(now time.Time) []string {
	dates := make([]string, 0, bookingWindowDays)
	for i := 1; i <= bookingWindowDays; i++ {
		d := now.AddDate(0, 0, i)
		if d.Weekday() == time.Sunday {
			continue
		}
		dates = append(dates, d.Format("2006-01-02"))
	}
	return dates
}

// IsBookable informa se a data aceita agendamento: dentro da janela de 30
// dias a partir de amanhã e não domingo.
func IsBookable(date, now time.Time) bool {
	if date.Weekday() == time.Sunday {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())
	if !day.After(today) {
		return false
	}
	return !day.After(today.AddDate(0, 0, bookingWindowDays))
}

// ValidSlot informa se "HH:MM" cai na grade de horários da data: minutos
// em múltiplos de 30, das 07:00 até antes do fechamento.
func ValidSlot(date time.Time, slot string) bool {
	// time.Parse aceita "8:00"; a grade só emite a forma com zero à esquerda.
	if len(slot) != 5 {
		return false
	}
	t, err := time.Parse("15:04", slot)
	if err != nil {
		return false
	}
	if t.Minute()%slotStepMinutes != 0 {
		return false
	}
	return t.Hour() >= openingHour && t.Hour() < ClosingHour(date)
}

func formatHHMM(hour, minute int) string {
	b := []byte{'0', '0', ':', '0', '0'}
	b[0] += byte(hour / 10)
	b[1] += byte(hour % 10)
	b[3] += byte(minute / 10)
	b[4] += byte(minute % 10)
	return string(b)
}
