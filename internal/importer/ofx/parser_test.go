package ofx_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/metadia/internal/importer/ofx"
	"github.com/MrJamesThe3rd/metadia/internal/transaction"
)

const header = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
`

const bankOFX = header + `<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>BRL
<BANKACCTFROM>
<BANKID>260
<ACCTID>1234567890
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101120000[0:GMT]
<DTEND>20240131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240115120000[0:GMT]
<TRNAMT>-25.50
<FITID>2024011501
<NAME>POSTO IPIRANGA
</STMTTRN>
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20240120120000[0:GMT]
<TRNAMT>312.40
<FITID>2024012001
<NAME>CREDIT
<MEMO>Repasse corridas semana
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>1000.00
<DTASOF>20240131120000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`

const cardOFX = header + `<CREDITCARDMSGSRSV1>
<CCSTMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<CCSTMTRS>
<CURDEF>BRL
<CCACCTFROM>
<ACCTID>4111111111111111
</CCACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101120000[0:GMT]
<DTEND>20240131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240110120000[0:GMT]
<TRNAMT>-45.99
<FITID>CC2024011001
<NAME>NETFLIX.COM
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>-500.00
<DTASOF>20240131120000[0:GMT]
</LEDGERBAL>
</CCSTMTRS>
</CCSTMTTRNRS>
</CREDITCARDMSGSRSV1>
</OFX>`

func TestParser_Bank(t *testing.T) {
	txs, err := ofx.NewParser().Parse(strings.NewReader(bankOFX))
	require.NoError(t, err)
	require.Len(t, txs, 2)

	assert.Equal(t, "POSTO IPIRANGA", txs[0].Description)
	assert.True(t, decimal.RequireFromString("25.50").Equal(txs[0].Amount))
	assert.Equal(t, transaction.TypeExpense, txs[0].Type)
	assert.Equal(t, 2024, txs[0].Date.Year())
	assert.Equal(t, 15, txs[0].Date.Day())

	assert.Equal(t, "Repasse corridas semana", txs[1].Description)
	assert.True(t, decimal.RequireFromString("312.40").Equal(txs[1].Amount))
	assert.Equal(t, transaction.TypeIncome, txs[1].Type)
}

func TestParser_CreditCard(t *testing.T) {
	txs, err := ofx.NewParser().Parse(strings.NewReader("\n\n  " + cardOFX))
	require.NoError(t, err)
	require.Len(t, txs, 1)

	assert.Equal(t, "NETFLIX.COM", txs[0].Description)
	assert.True(t, decimal.RequireFromString("45.99").Equal(txs[0].Amount))
	assert.Equal(t, transaction.TypeExpense, txs[0].Type)
}

func TestParser_Invalid(t *testing.T) {
	for _, input := range []string{"", "not valid OFX"} {
		_, err := ofx.NewParser().Parse(strings.NewReader(input))
		assert.Error(t, err)
	}
}
