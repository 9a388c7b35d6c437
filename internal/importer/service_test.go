package importer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/metadia/internal/importer"
)

func TestFormatOf(t *testing.T) {
	type testCase struct {
		filename string
		want     importer.Format
	}

	tests := []testCase{
		{filename: "extrato.csv", want: importer.FormatCSV},
		{filename: "Nubank_2024-03.CSV", want: importer.FormatCSV},
		{filename: "statement.ofx", want: importer.FormatOFX},
		{filename: "statement.QFX", want: importer.FormatOFX},
		{filename: "noextension", want: importer.FormatCSV},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.want, importer.FormatOf(tt.filename))
		})
	}
}

func TestService_Import(t *testing.T) {
	svc := importer.NewService()

	txs, err := svc.Import(importer.FormatCSV, strings.NewReader("Data mov.;Descrição;Montante\n30-01-2026;TEST;-10,00\n"))
	require.NoError(t, err)
	assert.Len(t, txs, 1)

	_, err = svc.Import(importer.Format("xlsx"), strings.NewReader(""))
	assert.ErrorContains(t, err, "unknown statement format")
}
