package api

import "testing"

func TestValidEmail(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"usuario@exemplo.com", true},
		{"  usuario@exemplo.com  ", true},
		{"a@b.co", true},
		{"usuario+teste@sub.exemplo.com.br", true},
		{"", false},
		{"usuario", false},
		{"usuario@exemplo", false}, // sem ponto no domínio
		{"usu ario@exemplo.com", false},
		{"usuario@exem plo.com", false},
		{"@exemplo.com", false},
		{"usuario@exemplo..com", true}, // o regex é permissivo de propósito
	}
	for _, c := range cases {
		if got := ValidEmail(c.in); got != c.want {
			t.Errorf("ValidEmail(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestValidPassword(t *testing.T) {
	if ValidPassword("12345") {
		t.Error("senha com 5 caracteres não deveria passar")
	}
	if !ValidPassword("123456") {
		t.Error("senha com 6 caracteres deveria passar")
	}
}
