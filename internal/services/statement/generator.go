package statement

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const fileTimeLayout = "2006-01-02 15:04:05"

// TextGenerator writes plain-text statements into a directory. Each file
// gets a unique name so repeated requests never clobber each other.
type TextGenerator struct {
	Dir string
}

// NewTextGenerator creates a generator writing into dir, creating it if
// needed.
func NewTextGenerator(dir string) (*TextGenerator, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create statement dir: %w", err)
	}
	return &TextGenerator{Dir: dir}, nil
}

func (g *TextGenerator) Generate(st *Statement) (string, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "Account Statement\n")
	fmt.Fprintf(&b, "=================\n\n")
	fmt.Fprintf(&b, "Account holder: %s\n", st.User.Name)
	fmt.Fprintf(&b, "Account number: %s\n", st.User.AccountNumber)
	if !st.From.IsZero() || !st.To.IsZero() {
		fromLabel, toLabel := "account opening", "now"
		if !st.From.IsZero() {
			fromLabel = st.From.Format("2006-01-02")
		}
		if !st.To.IsZero() {
			toLabel = st.To.Format("2006-01-02")
		}
		fmt.Fprintf(&b, "Period:         %s to %s\n", fromLabel, toLabel)
	}
	fmt.Fprintf(&b, "\n")
	fmt.Fprintf(&b, "Opening balance: %s\n", st.Metrics.InitialBalance.StringFixed(2))
	fmt.Fprintf(&b, "Closing balance: %s\n", st.Metrics.FinalBalance.StringFixed(2))
	fmt.Fprintf(&b, "Total debits:    %s\n", st.Metrics.TotalDebit.StringFixed(2))
	fmt.Fprintf(&b, "Total credits:   %s\n\n", st.Metrics.TotalCredit.StringFixed(2))

	fmt.Fprintf(&b, "%-20s %-10s %12s %12s %12s  %s\n",
		"Date", "Type", "In", "Out", "Balance", "Description")
	for _, e := range st.Entries {
		fmt.Fprintf(&b, "%-20s %-10s %12s %12s %12s  %s\n",
			e.CreatedAt.Format(fileTimeLayout),
			e.Type,
			e.MoneyIn.StringFixed(2),
			e.MoneyOut.StringFixed(2),
			e.Balance.StringFixed(2),
			e.Description,
		)
	}

	name := fmt.Sprintf("statement-%d-%s.txt", st.User.ID, uuid.NewString())
	path := filepath.Join(g.Dir, name)
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("write statement file: %w", err)
	}
	return path, nil
}

