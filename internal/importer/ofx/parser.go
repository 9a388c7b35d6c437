// Package ofx reads OFX/QFX statement downloads.
package ofx

import (
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/metadia/internal/transaction"
)

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	// Opening tags at end of line that lost their closing bracket.
	tagFixRegex = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// preprocess fixes formatting issues some banks ship in their OFX files.
func preprocess(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)

	return tagFixRegex.ReplaceAllString(content, "$1>")
}

func (p *Parser) Parse(r io.Reader) ([]transaction.CreateParams, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read ofx: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(preprocess(string(content))))
	if err != nil {
		return nil, fmt.Errorf("parse ofx: %w", err)
	}

	var txs []transaction.CreateParams

	for _, msg := range resp.Bank {
		stmt, ok := msg.(*ofxgo.StatementResponse)
		if !ok || stmt.BankTranList == nil {
			continue
		}

		txs = appendTransactions(txs, stmt.BankTranList.Transactions)
	}

	for _, msg := range resp.CreditCard {
		stmt, ok := msg.(*ofxgo.CCStatementResponse)
		if !ok || stmt.BankTranList == nil {
			continue
		}

		txs = appendTransactions(txs, stmt.BankTranList.Transactions)
	}

	slog.Debug("parsed ofx statement", "transactions", len(txs))

	return txs, nil
}

func appendTransactions(dst []transaction.CreateParams, src []ofxgo.Transaction) []transaction.CreateParams {
	for _, t := range src {
		amount, err := decimal.NewFromString(t.TrnAmt.Rat.FloatString(2))
		if err != nil || amount.IsZero() {
			slog.Warn("skipping ofx transaction with unusable amount", "fitid", string(t.FiTID))
			continue
		}

		txType := transaction.TypeIncome
		if amount.IsNegative() {
			txType = transaction.TypeExpense
		}

		desc := description(t)

		dst = append(dst, transaction.CreateParams{
			Amount:         amount.Abs(),
			Type:           txType,
			Description:    desc,
			RawDescription: desc,
			Date:           t.DtPosted.Time,
		})
	}

	return dst
}

// description prefers the payee, then NAME, then MEMO when NAME is empty or generic.
func description(t ofxgo.Transaction) string {
	if t.Payee != nil && t.Payee.Name != "" {
		return strings.TrimSpace(string(t.Payee.Name))
	}

	name := strings.TrimSpace(string(t.Name))
	if memo := strings.TrimSpace(string(t.Memo)); memo != "" && isGeneric(name) {
		return memo
	}

	return name
}

func isGeneric(name string) bool {
	switch strings.ToUpper(name) {
	case "", "DEBIT", "CREDIT", "PURCHASE", "PAYMENT", "POS TRANSACTION", "CARD PURCHASE":
		return true
	}

	return false
}
