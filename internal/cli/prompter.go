package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/spice-tracker/internal/model"
)

// ErrInputTerminated is returned when input ends before a form is complete.
var ErrInputTerminated = errors.New("input terminated")

// Prompter collects record fields from the terminal, one question at a time.
type Prompter struct {
	reader *NonBlockingReader
	writer io.Writer
	now    func() time.Time
}

// NewPrompter creates a prompter. Nil reader and writer default to stdin and
// stdout; a nil clock defaults to time.Now.
func NewPrompter(reader io.Reader, writer io.Writer, now func() time.Time) *Prompter {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}
	if now == nil {
		now = time.Now
	}

	return &Prompter{
		reader: NewNonBlockingReader(reader),
		writer: writer,
		now:    now,
	}
}

// ParseAmount reads a positive amount such as "12.50", "$1,200" or "3".
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")

	d, err := decimal.NewFromString(s)
	if err != nil || !d.IsPositive() {
		return 0, model.ErrInvalidAmount
	}
	return d.InexactFloat64(), nil
}

// PromptFields walks the user through every field. Values from initial are
// offered as defaults, so an empty answer keeps them.
func (p *Prompter) PromptFields(ctx context.Context, initial model.Fields) (model.Fields, error) {
	fields := initial

	txType, err := p.promptType(ctx, initial.Type)
	if err != nil {
		return model.Fields{}, err
	}
	fields = fields.WithType(txType)

	if fields.Category, err = p.promptCategory(ctx, fields.Type, fields.Category); err != nil {
		return model.Fields{}, err
	}
	if fields.Amount, err = p.promptAmount(ctx, initial.Amount); err != nil {
		return model.Fields{}, err
	}
	if fields.Date, err = p.promptDate(ctx, initial.Date); err != nil {
		return model.Fields{}, err
	}
	if fields.Desc, err = p.promptString(ctx, "Description", initial.Desc); err != nil {
		return model.Fields{}, err
	}

	return fields, nil
}

// Confirm asks a yes/no question. Anything but y or yes is a no.
func (p *Prompter) Confirm(ctx context.Context, question string) (bool, error) {
	if _, err := fmt.Fprintf(p.writer, "%s [y/N]: ", question); err != nil {
		return false, fmt.Errorf("failed to write prompt: %w", err)
	}

	answer, err := p.readLine(ctx)
	if errors.Is(err, ErrInputTerminated) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes", nil
}

func (p *Prompter) promptType(ctx context.Context, current model.TransactionType) (model.TransactionType, error) {
	if !current.Valid() {
		current = model.TypeExpense
	}

	for {
		input, err := p.ask(ctx, fmt.Sprintf("Type [expense/income] (%s)", strings.ToLower(string(current))))
		if err != nil {
			return "", err
		}
		if input == "" {
			return current, nil
		}
		if t, ok := model.ParseTransactionType(input); ok {
			return t, nil
		}
		p.complain(model.UserMessage(model.ErrInvalidType))
	}
}

func (p *Prompter) promptCategory(ctx context.Context, t model.TransactionType, current string) (string, error) {
	categories := model.Categories(t)
	if !model.IsValidCategory(t, current) {
		current = model.DefaultCategory(t)
	}

	for i, c := range categories {
		if _, err := fmt.Fprintf(p.writer, "  [%d] %s\n", i+1, c); err != nil {
			return "", fmt.Errorf("failed to write category list: %w", err)
		}
	}

	for {
		input, err := p.ask(ctx, fmt.Sprintf("Category (%s)", current))
		if err != nil {
			return "", err
		}
		if input == "" {
			return current, nil
		}
		if n, convErr := strconv.Atoi(input); convErr == nil && n >= 1 && n <= len(categories) {
			return categories[n-1], nil
		}
		if c, ok := model.LookupCategory(t, input); ok {
			return c, nil
		}
		p.complain(model.UserMessage(model.ErrInvalidCategory))
	}
}

func (p *Prompter) promptAmount(ctx context.Context, current float64) (float64, error) {
	label := "Amount"
	if current > 0 {
		label = fmt.Sprintf("Amount (%s)", FormatMoney(decimal.NewFromFloat(current)))
	}

	for {
		input, err := p.ask(ctx, label)
		if err != nil {
			return 0, err
		}
		if input == "" && current > 0 {
			return current, nil
		}
		amount, err := ParseAmount(input)
		if err == nil {
			return amount, nil
		}
		p.complain(model.UserMessage(err))
	}
}

func (p *Prompter) promptDate(ctx context.Context, current model.Date) (model.Date, error) {
	if _, ok := current.Time(); !ok {
		current = model.NewDate(p.now())
	}

	for {
		input, err := p.ask(ctx, fmt.Sprintf("Date YYYY-MM-DD (%s)", current))
		if err != nil {
			return "", err
		}

		date := current
		if input != "" {
			date = model.Date(input)
		}

		// Amount is known good here; only the date is being checked.
		if err := model.Validate(1, date, p.now()); err != nil {
			p.complain(model.UserMessage(err))
			continue
		}
		return date, nil
	}
}

func (p *Prompter) promptString(ctx context.Context, label, current string) (string, error) {
	prompt := label
	if current != "" {
		prompt = fmt.Sprintf("%s (%s)", label, current)
	}

	input, err := p.ask(ctx, prompt)
	if err != nil {
		return "", err
	}
	if input == "" {
		return current, nil
	}
	return input, nil
}

func (p *Prompter) ask(ctx context.Context, prompt string) (string, error) {
	if _, err := fmt.Fprint(p.writer, FormatPrompt(prompt)); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}
	return p.readLine(ctx)
}

func (p *Prompter) readLine(ctx context.Context) (string, error) {
	line, err := p.reader.ReadLine(ctx)
	if errors.Is(err, io.EOF) {
		return "", ErrInputTerminated
	}
	return line, err
}

func (p *Prompter) complain(message string) {
	if _, err := fmt.Fprintln(p.writer, FormatError(message)); err != nil {
		slog.Warn("Failed to write error message", "error", err)
	}
}
