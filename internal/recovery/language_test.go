package recovery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "portuguese",
			text: "O aluno deve apresentar a dissertação de mestrado que for aprovada, e defender o trabalho.",
			want: LangPortuguese,
		},
		{
			name: "english",
			text: "The committee and the board of examiners agreed to meet in the main hall.",
			want: LangEnglish,
		},
		{
			name: "no indicators",
			text: "lorem ipsum dolor sit amet",
			want: LangUnknown,
		},
		{
			name: "empty",
			text: "",
			want: LangUnknown,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectLanguage(tt.text))
		})
	}
}
