package importer

import (
	"errors"
	"fmt"
	"io"

	"fjacquet/budget-ledger/internal/budgeterror"
	"fjacquet/budget-ledger/internal/dateutils"
	"fjacquet/budget-ledger/internal/models"

	"github.com/aclindsa/ofxgo"
	"github.com/shopspring/decimal"
)

// OFXParser parses OFX and QFX statement downloads. Bank and credit card
// statements are both read; the payee name is the memo, falling back to
// the OFX memo field when the name is empty.
type OFXParser struct {
	Source string
}

func (p *OFXParser) Parse(r io.Reader) ([]models.Transaction, error) {
	resp, err := ofxgo.ParseResponse(r)
	if err != nil {
		return nil, &budgeterror.ParseError{Source: p.Source, Err: err}
	}
	if len(resp.Bank) == 0 && len(resp.CreditCard) == 0 {
		return nil, &budgeterror.ParseError{Source: p.Source, Err: errors.New("no bank or credit card statements")}
	}

	var txs []models.Transaction
	for _, msg := range append(resp.Bank, resp.CreditCard...) {
		var list *ofxgo.TransactionList
		switch stmt := msg.(type) {
		case *ofxgo.StatementResponse:
			list = stmt.BankTranList
		case *ofxgo.CCStatementResponse:
			list = stmt.BankTranList
		default:
			return nil, &budgeterror.ParseError{Source: p.Source, Err: fmt.Errorf("unexpected response type %T", msg)}
		}
		if list == nil {
			continue
		}

		for i, str := range list.Transactions {
			row := i + 1
			value := str.TrnAmt.String()
			amount, err := decimal.NewFromString(value)
			if err != nil {
				return nil, &budgeterror.ParseError{Source: p.Source, Row: row, Field: "TRNAMT", Value: value, Err: err}
			}

			date := dateutils.FromTime(str.DtPosted.Time)
			if err := checkYear(p.Source, row, "DTPOSTED", date.String(), date); err != nil {
				return nil, err
			}

			memo := string(str.Name)
			if memo == "" {
				memo = string(str.Memo)
			}
			txs = append(txs, models.NewTransaction(date, CleanMemo(memo), amount))
		}
	}
	return txs, nil
}
