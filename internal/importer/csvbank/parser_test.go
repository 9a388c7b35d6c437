package csvbank_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/MrJamesThe3rd/metadia/internal/calendar"
	"github.com/MrJamesThe3rd/metadia/internal/importer/csvbank"
	"github.com/MrJamesThe3rd/metadia/internal/transaction"
)

func assertTx(t *testing.T, got transaction.CreateParams, date, desc, amount string, typ transaction.Type) {
	t.Helper()

	assert.Equal(t, calendar.MustParse(date), calendar.DateOf(got.Date))
	assert.Equal(t, desc, got.Description)
	assert.True(t, decimal.RequireFromString(amount).Equal(got.Amount), "amount %s, want %s", got.Amount, amount)
	assert.Equal(t, typ, got.Type)
}

func TestParser_Conta(t *testing.T) {
	csv := `Consultar saldos e movimentos à ordem - 31-01-2026;"=""0000"""
Nome cliente;JOHN DOE
NIF;"=""123"""

Dados da conta
Conta;0000 - EUR - Conta Extracto
Saldo contabilístico;1.000,00 EUR

Data mov.;Data-valor;Descrição;Montante;Saldo contabilístico após movimento
30-01-2026;30-01-2026;INSTITUTO GESTAO FINA;-588,74;48.825,46
09-01-2026;09-01-2026;TFI Wise;8.608,52;52.532,78
`

	txs, err := csvbank.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, txs, 2)

	assertTx(t, txs[0], "2026-01-30", "INSTITUTO GESTAO FINA", "588.74", transaction.TypeExpense)
	assertTx(t, txs[1], "2026-01-09", "TFI Wise", "8608.52", transaction.TypeIncome)
}

func TestParser_Extrato(t *testing.T) {
	csv := `Consultar extrato - 15-02-2026 : 0829015676030
Nome empresa ;VIBRANTGARDEN UNIPESSOAL,LDA
Intervalo de ;01-02-2026 a 14-02-2026

Data mov. ;Data valor ;Origem ;Descrição ;Movimento ;Estorno ;Saldo contabilístico após movimento ;
13-02-2026;13-02-2026;"=""0003""";PAGAMENTO TSU ;-608,13;  ;41.393,66;
04-02-2026;04-02-2026;SIBS ;TFI Wise ;4.324,06;  ;51.302,85;
`

	txs, err := csvbank.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, txs, 2)

	assertTx(t, txs[0], "2026-02-13", "PAGAMENTO TSU", "608.13", transaction.TypeExpense)
	assertTx(t, txs[1], "2026-02-04", "TFI Wise", "4324.06", transaction.TypeIncome)
}

func TestParser_Cartao(t *testing.T) {
	csv := `Consultar saldos e movimentos de cartões - 15-02-2026
Conta cartão ;4163 **** **** 8016 - EUR - Business Débito

Data ;Data valor ;Descrição ;Débito ;Crédito ;
16-12-2025 ;14-12-2025 ;PA GONDOMAR         GONDOMAR ;64,00 ; ;
31-12-2025 ;29-12-2025 ;REFUND AMAZON ;  ;25,00 ;
 ; ; ; ;Página 1/2 ;
`

	txs, err := csvbank.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, txs, 2)

	assertTx(t, txs[0], "2025-12-16", "PA GONDOMAR         GONDOMAR", "64", transaction.TypeExpense)
	assertTx(t, txs[1], "2025-12-31", "REFUND AMAZON", "25", transaction.TypeIncome)
}

func TestParser_NubankConta(t *testing.T) {
	csv := `Data,Valor,Identificador,Descrição
05/03/2024,-45.90,65e6f1a0,Compra no débito - Padaria Pão Quente
06/03/2024,1250.00,65e6f1a1,"Transferência recebida pelo Pix - APP 99, corridas"
`

	txs, err := csvbank.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, txs, 2)

	assertTx(t, txs[0], "2024-03-05", "Compra no débito - Padaria Pão Quente", "45.90", transaction.TypeExpense)
	assertTx(t, txs[1], "2024-03-06", "Transferência recebida pelo Pix - APP 99, corridas", "1250", transaction.TypeIncome)
}

func TestParser_NubankCartao(t *testing.T) {
	csv := `date,title,amount
2024-03-05,Posto Shell,180.00
2024-03-10,Pagamento recebido,-500.00
`

	txs, err := csvbank.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, txs, 2)

	assertTx(t, txs[0], "2024-03-05", "Posto Shell", "180", transaction.TypeExpense)
	assertTx(t, txs[1], "2024-03-10", "Pagamento recebido", "500", transaction.TypeIncome)
}

func TestParser_Latin1Encoding(t *testing.T) {
	utf8CSV := "Data mov.;Descrição;Montante\n30-01-2026;CAFÉ CENTRAL;-10,00\n"

	latin1Bytes, err := charmap.Windows1252.NewEncoder().Bytes([]byte(utf8CSV))
	require.NoError(t, err)

	txs, err := csvbank.NewParser().Parse(bytes.NewReader(latin1Bytes))
	require.NoError(t, err)
	require.Len(t, txs, 1)

	assert.Equal(t, "CAFÉ CENTRAL", txs[0].RawDescription)
}

func TestParser_DifferentColumnOrder(t *testing.T) {
	csv := `Random;MetaData
Montante;Descrição;Data mov.;Ignored
-10,00;TEST_ORDER;30-01-2026;XXX
`

	txs, err := csvbank.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, txs, 1)

	assertTx(t, txs[0], "2026-01-30", "TEST_ORDER", "10", transaction.TypeExpense)
}

func TestParser_Errors(t *testing.T) {
	type testCase struct {
		name    string
		input   string
		wantErr string
	}

	tests := []testCase{
		{name: "EmptyFile", input: "", wantErr: "no matching statement format"},
		{name: "UnknownHeader", input: "a;b;c\n1;2;3\n", wantErr: "no matching statement format"},
		{name: "MissingDescription", input: "Data mov.;Descrição;Montante\n30-01-2026;;-10,00\n", wantErr: "description"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := csvbank.NewParser().Parse(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParser_HeaderOnly(t *testing.T) {
	txs, err := csvbank.NewParser().Parse(strings.NewReader("Data mov.;Data-valor;Descrição;Montante"))
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestParser_SkipsZeroAndFooterRows(t *testing.T) {
	csv := `Data mov.;Descrição;Montante
30-01-2026;ZERO;0,00
Saldo final;;1.000,00
31-01-2026;REAL;-1,50
`

	txs, err := csvbank.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, txs, 1)

	assert.Equal(t, "REAL", txs[0].Description)
}
