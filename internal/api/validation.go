package api

import (
	"regexp"
	"strings"
)

// emailRegex segue o formato aceito no cadastro e nas rotas admin:
// qualquer coisa sem espaço antes e depois do @, com um ponto no domínio.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func ValidEmail(s string) bool {
	return emailRegex.MatchString(strings.TrimSpace(s))
}

const minPasswordLen = 6

func ValidPassword(s string) bool {
	return len(s) >= minPasswordLen
}
