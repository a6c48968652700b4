package statement

import (
	"sort"

	"github.com/cleared-dev/regnskap/internal/model"
)

// AccountDetail is one source account with the line it was mapped to.
type AccountDetail struct {
	Account int
	Name    string
	Line    int
	Amounts model.Amounts
}

// Aggregation is the per-line sum of mapped accounts.
type Aggregation struct {
	ByLine   map[int]model.Amounts
	Accounts []AccountDetail // mapped rows, in input order
	Unmapped []model.Balance // unmapped rows, in input order
}

// Aggregate sums balances per line. lineFor maps account to line; accounts
// missing from it are unmapped and kept out of every sum.
func Aggregate(balances []model.Balance, lineFor map[int]int) Aggregation {
	agg := Aggregation{ByLine: make(map[int]model.Amounts)}
	for _, b := range balances {
		line, ok := lineFor[b.Account]
		if !ok {
			agg.Unmapped = append(agg.Unmapped, b)
			continue
		}
		agg.ByLine[line] = agg.ByLine[line].Add(b.Amounts)
		agg.Accounts = append(agg.Accounts, AccountDetail{
			Account: b.Account,
			Name:    b.Name,
			Line:    line,
			Amounts: b.Amounts,
		})
	}
	return agg
}

// UnmappedAccounts returns the distinct unmapped account numbers, sorted.
func (a Aggregation) UnmappedAccounts() []int {
	return distinctAccounts(a.Unmapped)
}

func distinctAccounts(balances []model.Balance) []int {
	seen := make(map[int]bool, len(balances))
	var out []int
	for _, b := range balances {
		if !seen[b.Account] {
			seen[b.Account] = true
			out = append(out, b.Account)
		}
	}
	sort.Ints(out)
	return out
}
