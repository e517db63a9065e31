// Package ofx turns OFX/QFX bank statements into tracker records.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"github.com/aclindsa/ofxgo"
	"github.com/shopspring/decimal"

	"github.com/Veraticus/spice-tracker/internal/model"
)

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	// Opening tags at the end of a line that lost their closing bracket.
	tagFixRegex = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// guessCategory picks a category from the OFX transaction type. A guess
// only sticks when it belongs to the type implied by the amount's sign.
func guessCategory(ofxTx ofxgo.Transaction) (string, bool) {
	switch ofxTx.TrnType {
	case ofxgo.TrnTypeInt, ofxgo.TrnTypeDiv:
		return "Investment", true
	case ofxgo.TrnTypeDirectDep:
		return "Salary", true
	case ofxgo.TrnTypeFee, ofxgo.TrnTypeSrvChg:
		return "Bills", true
	default:
		return "", false
	}
}

// Entry is one statement line, converted.
type Entry struct {
	FITID     string
	AccountID string
	Fields    model.Fields
}

// Key identifies a statement line across files.
func (e Entry) Key() string {
	return e.AccountID + "/" + e.FITID
}

// Parser implements OFX/QFX file parsing.
type Parser struct{}

// NewParser creates a new OFX parser.
func NewParser() *Parser {
	return &Parser{}
}

// preprocessOFX fixes common formatting issues in OFX files.
func (p *Parser) preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")

	// SEVERITY must be INFO, WARN or ERROR.
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)

	return tagFixRegex.ReplaceAllString(content, "$1>")
}

// ParseFile parses an OFX/QFX statement. Lines come back in file order.
func (p *Parser) ParseFile(ctx context.Context, reader io.Reader) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocessOFX(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var entries []Entry
	var bankStmts, ccStmts int

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			bankStmts++
			entries = append(entries, p.convertList(stmt.BankTranList, string(stmt.BankAcctFrom.AcctID))...)
		}
	}

	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			ccStmts++
			entries = append(entries, p.convertList(stmt.BankTranList, string(stmt.CCAcctFrom.AcctID))...)
		}
	}

	slog.Debug("Parsed OFX file",
		"entries", len(entries),
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return entries, nil
}

func (p *Parser) convertList(list *ofxgo.TransactionList, accountID string) []Entry {
	if list == nil {
		return nil
	}

	entries := make([]Entry, 0, len(list.Transactions))
	for _, ofxTx := range list.Transactions {
		entries = append(entries, p.convertTransaction(ofxTx, accountID))
	}
	return entries
}

// convertTransaction maps a statement line onto record fields. Debits
// (negative amounts) are expenses, credits are income.
func (p *Parser) convertTransaction(ofxTx ofxgo.Transaction, accountID string) Entry {
	raw, _ := ofxTx.TrnAmt.Float64()
	amount := decimal.NewFromFloat(raw)

	txType, category := model.TypeIncome, "Other Income"
	if amount.IsNegative() {
		txType, category = model.TypeExpense, "Other Expense"
	}
	if guess, ok := guessCategory(ofxTx); ok && model.IsValidCategory(txType, guess) {
		category = guess
	}

	return Entry{
		FITID:     string(ofxTx.FiTID),
		AccountID: accountID,
		Fields: model.Fields{
			Type:     txType,
			Category: category,
			Desc:     p.extractMerchantName(ofxTx),
			Date:     model.NewDate(ofxTx.DtPosted.Time),
			Amount:   amount.Abs().Round(2).InexactFloat64(),
		},
	}
}

// extractMerchantName tries to get a clean merchant name from OFX data.
func (p *Parser) extractMerchantName(tx ofxgo.Transaction) string {
	// Prefer PAYEE if available (cleaner merchant name)
	if tx.Payee != nil && tx.Payee.Name != "" {
		return strings.TrimSpace(string(tx.Payee.Name))
	}

	name := string(tx.Name)

	// Sometimes MEMO has better merchant info
	if tx.Memo != "" && isGenericDescription(name) {
		name = string(tx.Memo)
	}

	name = strings.TrimSpace(name)

	prefixes := []string{
		"POS PURCHASE ",
		"PURCHASE AUTHORIZED ON ",
		"DEBIT CARD PURCHASE ",
		"ACH DEBIT ",
		"CHECK CARD ",
		"VISA PURCHASE ",
		"MC PURCHASE ",
		"DEBIT PURCHASE ",
	}

	for _, prefix := range prefixes {
		if strings.HasPrefix(strings.ToUpper(name), prefix) {
			name = name[len(prefix):]
			break
		}
	}

	// Clean up date patterns like "MM/DD" at the beginning
	if len(name) > 5 && name[2] == '/' && name[5] == ' ' {
		name = strings.TrimSpace(name[6:])
	}

	return name
}

// isGenericDescription checks if a transaction name is too generic.
func isGenericDescription(name string) bool {
	generic := []string{
		"DEBIT",
		"CREDIT",
		"PURCHASE",
		"PAYMENT",
		"POS TRANSACTION",
		"CARD PURCHASE",
	}

	upperName := strings.ToUpper(strings.TrimSpace(name))
	for _, g := range generic {
		if upperName == g {
			return true
		}
	}
	return false
}

// Accounts lists the distinct account ids of entries, sorted.
func Accounts(entries []Entry) []string {
	seen := make(map[string]bool)
	var accounts []string
	for _, e := range entries {
		if e.AccountID != "" && !seen[e.AccountID] {
			seen[e.AccountID] = true
			accounts = append(accounts, e.AccountID)
		}
	}
	sort.Strings(accounts)
	return accounts
}
