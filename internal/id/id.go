package id

import (
	"fmt"
	"strconv"
	"strings"
)

// AccountPrefix is prepended to displayed account numbers.
const AccountPrefix = "DB-"

// FormatAccountNumber returns an account number like "DB-0007".
func FormatAccountNumber(id int) string {
	return fmt.Sprintf("%s%04d", AccountPrefix, id)
}

// ParseAccountRef parses an account reference into a ledger ID.
// Accepted forms: "7", "#7" and "DB-0007".
func ParseAccountRef(ref string) (int, error) {
	s := strings.TrimSpace(ref)
	switch {
	case strings.HasPrefix(strings.ToUpper(s), AccountPrefix):
		s = s[len(AccountPrefix):]
	case strings.HasPrefix(s, "#"):
		s = s[1:]
	}
	if s == "" {
		return 0, fmt.Errorf("invalid account reference: %q", ref)
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid account reference %q: %w", ref, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("invalid account reference %q: must be positive", ref)
	}
	return n, nil
}
