package importer

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/regnskap/internal/amount"
	"github.com/cleared-dev/regnskap/internal/model"
	"github.com/cleared-dev/regnskap/internal/schema"
)

const (
	keyAccount  = "konto"
	keyName     = "kontonavn"
	keyOpening  = "ib"
	keyMovement = "endring"
	keyClosing  = "ub"
	keyLine     = "regnr"
)

var balanceOrder = []string{keyAccount, keyName, keyOpening, keyMovement, keyClosing, keyLine}

var balanceSynonyms = schema.Synonyms{
	keyAccount: {"konto", "kontonr", "kontonummer", "account", "account no", "accountno", "account number"},
	keyName:    {"kontonavn", "kontotekst", "account name", "description", "tekst", "beskrivelse", "navn"},
	keyOpening: {
		"ib", "inngående saldo", "inngående balanse", "inngaende saldo", "inngaende balanse",
		"ingående saldo", "ingående balanse", "opening balance", "opening",
	},
	keyMovement: {"endring", "bevegelse", "diff", "change", "movement", "period", "this period"},
	keyClosing: {
		"ub", "utgående saldo", "utgående balanse", "utgaende saldo", "utgaende balanse",
		"closing balance", "closing", "balance",
	},
	keyLine: {"regnr", "reg nr", "regnskapsnr", "linjenr", "regnskapslinje nr"},
}

// fromRecords converts a header row plus data rows. Only the account
// column is required; missing amount columns are zero. Rows whose account
// cell is not an account number ("Sum klasse 1", "1920 Bank", blank) are
// skipped; skipped rows with text in the account cell are logged.
func fromRecords(records [][]string, log zerolog.Logger) ([]model.Balance, error) {
	if len(records) == 0 {
		return nil, nil
	}

	cols := schema.Match(records[0], balanceSynonyms, balanceOrder)
	if !cols.Has(keyAccount) {
		return nil, fmt.Errorf("no account column (konto) in header %q", records[0])
	}

	var balances []model.Balance
	for i, rec := range records[1:] {
		raw := cols.Get(rec, keyAccount)
		if _, err := amount.ParseAccount(raw); err != nil {
			if strings.TrimSpace(raw) != "" {
				log.Warn().Int("row", i+2).Str("konto", raw).Msg("account cell is not an account number; row skipped")
			}
			continue
		}
		b, err := unmarshalBalance(cols, rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		balances = append(balances, b)
	}
	return balances, nil
}

func unmarshalBalance(cols schema.Columns, rec []string) (model.Balance, error) {
	acct, err := amount.ParseAccount(cols.Get(rec, keyAccount))
	if err != nil {
		return model.Balance{}, fmt.Errorf("parsing konto: %w", err)
	}

	b := model.Balance{Account: acct, Name: cols.Get(rec, keyName)}
	if b.Amounts.Opening, err = parseAmount(cols, rec, keyOpening); err != nil {
		return model.Balance{}, err
	}
	if b.Amounts.Movement, err = parseAmount(cols, rec, keyMovement); err != nil {
		return model.Balance{}, err
	}
	if b.Amounts.Closing, err = parseAmount(cols, rec, keyClosing); err != nil {
		return model.Balance{}, err
	}

	if n, ok := amount.ParseNumber(cols.Get(rec, keyLine)); ok {
		b.Line = n
	}
	return b, nil
}

func parseAmount(cols schema.Columns, rec []string, key string) (decimal.Decimal, error) {
	d, err := amount.Parse(cols.Get(rec, key))
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing %s: %w", key, err)
	}
	return d, nil
}
