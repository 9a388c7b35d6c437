package csvbank

// amountMode determines how amounts are extracted from a row.
type amountMode int

const (
	// amountSingle means one signed column (e.g. "Montante" with value "-10,00").
	amountSingle amountMode = iota
	// amountSplit means separate debit and credit columns (e.g. "Débito"/"Crédito").
	amountSplit
)

// decimalMark is the character separating cents in the export.
type decimalMark int

const (
	decimalComma decimalMark = iota // 1.234,56
	decimalDot                      // 1,234.56
)

// Profile describes the column layout of a bank CSV export format.
// Adding a new format is just adding a new Profile to the profiles slice.
type Profile struct {
	Name       string
	Delimiter  rune
	DateCol    string
	DateLayout string
	DescCol    string
	Decimal    decimalMark
	AmountMode amountMode
	AmountCol  string // used when AmountMode == amountSingle
	DebitCol   string // used when AmountMode == amountSplit
	CreditCol  string // used when AmountMode == amountSplit
	// PositiveIsExpense flips the sign convention, for card statements that list purchases as
	// positive amounts.
	PositiveIsExpense bool
}

// requiredCols returns the column names that must be present for this profile to match.
func (p Profile) requiredCols() []string {
	cols := []string{p.DateCol, p.DescCol}

	switch p.AmountMode {
	case amountSingle:
		cols = append(cols, p.AmountCol)
	case amountSplit:
		cols = append(cols, p.DebitCol, p.CreditCol)
	}

	return cols
}

// profiles is the ordered list of export formats to try during auto-detection.
// More specific profiles should come first to avoid false matches.
var profiles = []Profile{
	{
		Name:       "cgd-cartao",
		Delimiter:  ';',
		DateCol:    "Data",
		DateLayout: "02-01-2006",
		DescCol:    "Descrição",
		Decimal:    decimalComma,
		AmountMode: amountSplit,
		DebitCol:   "Débito",
		CreditCol:  "Crédito",
	},
	{
		Name:       "cgd-extrato",
		Delimiter:  ';',
		DateCol:    "Data mov.",
		DateLayout: "02-01-2006",
		DescCol:    "Descrição",
		Decimal:    decimalComma,
		AmountMode: amountSingle,
		AmountCol:  "Movimento",
	},
	{
		Name:       "cgd-conta",
		Delimiter:  ';',
		DateCol:    "Data mov.",
		DateLayout: "02-01-2006",
		DescCol:    "Descrição",
		Decimal:    decimalComma,
		AmountMode: amountSingle,
		AmountCol:  "Montante",
	},
	{
		Name:       "nubank-conta",
		Delimiter:  ',',
		DateCol:    "Data",
		DateLayout: "02/01/2006",
		DescCol:    "Descrição",
		Decimal:    decimalDot,
		AmountMode: amountSingle,
		AmountCol:  "Valor",
	},
	{
		Name:              "nubank-cartao",
		Delimiter:         ',',
		DateCol:           "date",
		DateLayout:        "2006-01-02",
		DescCol:           "title",
		Decimal:           decimalDot,
		AmountMode:        amountSingle,
		AmountCol:         "amount",
		PositiveIsExpense: true,
	},
}
