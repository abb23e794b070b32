package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/plazave/plaza-api/pkg/normalize"
)

func TestSearch(t *testing.T) {
	casos := []struct {
		in   string
		want string
	}{
		{"Cerámica", "ceramica"},
		{"CAFÉ Colombiano", "cafe colombiano"},
		{"  Ñoquis al pesto  ", "noquis al pesto"}, // la virgulilla también es marca diacrítica
		{"PAPELERÍA", "papeleria"},
		{"sin tildes", "sin tildes"},
		{"", ""},
	}
	for _, c := range casos {
		assert.Equal(t, c.want, normalize.Search(c.in), "Search(%q)", c.in)
	}
}
