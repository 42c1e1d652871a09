// Package cpf valida e normaliza CPF (Cadastro de Pessoas Físicas).
package cpf

import "regexp"

var (
	onlyDigits = regexp.MustCompile(`[^0-9]`)
	shaped     = regexp.MustCompile(`^\d{3}\.?\d{3}\.?\d{3}-?\d{2}$`)
)

// Normalize remove tudo que não for dígito.
func Normalize(s string) string {
	return onlyDigits.ReplaceAllString(s, "")
}

// IsShaped informa se o texto tem forma de CPF (11 dígitos, com ou sem
// pontuação). Não valida o dígito verificador: no login qualquer entrada com
// forma de CPF é tratada como CPF; o checksum só é exigido no cadastro.
func IsShaped(s string) bool {
	return shaped.MatchString(s) || len(Normalize(s)) == 11
}

// Validate aplica o checksum oficial (módulo 11) sobre o CPF normalizado.
func Validate(s string) bool {
	n := Normalize(s)
	if len(n) != 11 {
		return false
	}
	// CPFs com todos os dígitos iguais passam no cálculo mas são inválidos.
	same := true
	for i := 1; i < 11; i++ {
		if n[i] != n[0] {
			same = false
			break
		}
	}
	if same {
		return false
	}
	sum := 0
	for i := 0; i < 9; i++ {
		sum += int(n[i]-'0') * (10 - i)
	}
	d := 11 - sum%11
	if d >= 10 {
		d = 0
	}
	if d != int(n[9]-'0') {
		return false
	}
	sum = 0
	for i := 0; i < 10; i++ {
		sum += int(n[i]-'0') * (11 - i)
	}
	d = 11 - sum%11
	if d >= 10 {
		d = 0
	}
	return d == int(n[10]-'0')
}

// Format devolve o CPF normalizado como 000.000.000-00. Entrada que não
// tenha 11 dígitos volta como veio.
func Format(s string) string {
	n := Normalize(s)
	if len(n) != 11 {
		return s
	}
	return n[0:3] + "." + n[3:6] + "." + n[6:9] + "-" + n[9:11]
}
