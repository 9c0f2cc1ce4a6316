package recovery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnhanceStructure(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "portuguese chapter heading",
			in:   "texto\nCAPÍTULO II\nDo Corpo Docente",
			want: "texto\n## CAPÍTULO II\nDo Corpo Docente",
		},
		{
			name: "english chapter heading",
			in:   "intro\nCHAPTER IV\nmore",
			want: "intro\n## CHAPTER IV\nmore",
		},
		{
			name: "decimal section heading",
			in:   "x\n2.1. Requisitos\ny",
			want: "x\n### 2.1. Requisitos\n\ny",
		},
		{
			name: "bullets normalized to dashes",
			in:   "lista:\n• primeiro\n* segundo\n- terceiro",
			want: "lista:\n- primeiro\n- segundo\n- terceiro",
		},
		{
			name: "plain text untouched",
			in:   "nothing structural here",
			want: "nothing structural here",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, enhanceStructure(tt.in))
		})
	}
}

func TestEnhanceStructureIdempotent(t *testing.T) {
	in := "a\nCAPÍTULO I\nb\n1.2 Secção\nc\n- item\n"
	once := enhanceStructure(in)
	assert.Equal(t, once, enhanceStructure(once))
}
