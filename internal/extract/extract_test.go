package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPortuguese(t *testing.T) {
	e, err := New("pt")
	require.NoError(t, err)

	testCases := []struct {
		name       string
		transcript string
		want       Fields
	}{
		{
			name:       "reference sentence",
			transcript: "Maria comprou uma bicicleta por duzentos reais.",
			want:       Fields{Buyer: "Maria", Product: "bicicleta", Price: "duzentos reais"},
		},
		{
			name:       "masculine article without period",
			transcript: "João comprou um carro usado por trinta mil reais",
			want:       Fields{Buyer: "João", Product: "carro usado", Price: "trinta mil reais"},
		},
		{
			name:       "mixed casing",
			transcript: "PEDRO COMPROU UMA Mesa De Jantar POR 500 reais",
			want:       Fields{Buyer: "PEDRO", Product: "Mesa De Jantar", Price: "500 reais"},
		},
		{
			name:       "extra whitespace and trailing space",
			transcript: "  Ana   comprou  uma   camisa  azul   por  cinquenta   reais . ",
			want:       Fields{Buyer: "Ana", Product: "camisa azul", Price: "cinquenta reais"},
		},
		{
			name:       "phrase inside longer transcript",
			transcript: "Bom dia. Hoje o Carlos comprou um notebook por três mil reais. Obrigado.",
			want:       Fields{Buyer: "Carlos", Product: "notebook", Price: "três mil reais"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := e.Extract(tc.transcript)
			require.True(t, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestExtractEnglish(t *testing.T) {
	e, err := New("en")
	require.NoError(t, err)

	testCases := []struct {
		transcript string
		want       Fields
	}{
		{"Maria bought a bicycle for two hundred dollars.", Fields{"Maria", "bicycle", "two hundred dollars"}},
		{"tom BOUGHT AN old guitar FOR fifty bucks", Fields{"tom", "old guitar", "fifty bucks"}},
		{"Lee bought a red kitchen table for 300 dollars ", Fields{"Lee", "red kitchen table", "300 dollars"}},
	}

	for _, tc := range testCases {
		t.Run(tc.transcript, func(t *testing.T) {
			got, ok := e.Extract(tc.transcript)
			require.True(t, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestExtractNoMatch(t *testing.T) {
	e, err := New("pt")
	require.NoError(t, err)

	transcripts := []string{
		"",
		"Olá, tudo bem?",
		"Maria adquiriu uma bicicleta por duzentos reais.",
		"Maria comprou bicicleta por duzentos reais.",
		"Maria comprou uma bicicleta.",
		"Maria comprou uma bicicleta, por duzentos reais.",
		"Maria bought a bicycle for two hundred dollars.",
	}

	for _, transcript := range transcripts {
		t.Run(transcript, func(t *testing.T) {
			_, ok := e.Extract(transcript)
			assert.False(t, ok)
		})
	}
}

func TestNewUnsupportedLocale(t *testing.T) {
	_, err := New("fr")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "en, pt")
}

func TestLocales(t *testing.T) {
	assert.Equal(t, []string{"en", "pt"}, Locales())
}
