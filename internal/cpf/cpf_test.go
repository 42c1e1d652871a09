package cpf

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct{ in, want string }{
		{"529.982.247-25", "52998224725"},
		{"52998224725", "52998224725"},
		{"abc", ""},
		{" 111.444.777-35 ", "11144477735"},
	}
	for _, c := range cases {
		if got := Normalize(c.in); got != c.want {
			t.Errorf("Normalize(%q)=%q, want %q", c.in, got, c.want)
		}
	}
}

func TestIsShaped(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"529.982.247-25", true},
		{"52998224725", true},
		// Checksum inválido ainda tem forma de CPF (política do login).
		{"111.111.111-11", true},
		{"5299822472", false},
		{"a@b.com", false},
		{"", false},
	}
	for _, c := range cases {
		if got := IsShaped(c.in); got != c.want {
			t.Errorf("IsShaped(%q)=%v, want %v", c.in, got, c.want)
		}
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"529.982.247-25", true},
		{"52998224725", true},
		{"111.444.777-35", true},
		{"111.111.111-11", false}, // dígitos repetidos
		{"529.982.247-26", false}, // checksum errado
		{"123", false},
		{"", false},
	}
	for _, c := range cases {
		if got := Validate(c.in); got != c.want {
			t.Errorf("Validate(%q)=%v, want %v", c.in, got, c.want)
		}
	}
}

func TestFormat(t *testing.T) {
	if got := Format("52998224725"); got != "529.982.247-25" {
		t.Errorf("Format=%q", got)
	}
	if got := Format("123"); got != "123" {
		t.Errorf("Format should keep short input, got %q", got)
	}
}
