package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMotifPrefixe(t *testing.T) {
	tests := []struct {
		name string
		nom  string
		want string
	}{
		{"nom_simple", "Riz", "^Riz"},
		{"parenthese_echappee", "a(b", `^a\(b`},
		{"metacaracteres_neutralises", "riz.*", `^riz\.\*`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, motifPrefixe(tt.nom))
		})
	}
}
