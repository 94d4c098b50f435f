package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	out := &bytes.Buffer{}
	cmd := newRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestExtractCommand(t *testing.T) {
	out, err := runCommand(t, "extract", "Maria comprou uma bicicleta por duzentos reais.")
	require.NoError(t, err)

	assert.Contains(t, out, "buyer:   Maria")
	assert.Contains(t, out, "product: bicicleta")
	assert.Contains(t, out, "price:   duzentos reais")
}

func TestExtractCommandLocale(t *testing.T) {
	out, err := runCommand(t, "extract", "--locale", "en", "John", "bought", "a", "bike", "for", "fifty", "dollars")
	require.NoError(t, err)

	assert.Contains(t, out, "buyer:   John")
	assert.Contains(t, out, "product: bike")
	assert.Contains(t, out, "price:   fifty dollars")
}

func TestExtractCommandErrors(t *testing.T) {
	testCases := []struct {
		name          string
		args          []string
		errorContains string
	}{
		{"no match", []string{"extract", "bom dia"}, "no sale found"},
		{"unknown locale", []string{"extract", "--locale", "fr", "x"}, "unsupported extraction locale"},
		{"missing transcript", []string{"extract"}, "requires at least 1 arg"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := runCommand(t, tc.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errorContains)
		})
	}
}
