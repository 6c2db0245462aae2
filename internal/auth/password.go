package auth

import "unicode"

// Policy is the five-rule strength check the account panel renders as a
// meter. Purely cosmetic: the score drives a progress bar, nothing else.
type Policy struct {
	MinLength bool
	Lower     bool
	Upper     bool
	Digit     bool
	Symbol    bool
}

// CheckPolicy evaluates the five rules against the candidate password.
func CheckPolicy(password string) Policy {
	p := Policy{MinLength: len(password) >= 8}
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			p.Lower = true
		case unicode.IsUpper(r):
			p.Upper = true
		case unicode.IsDigit(r):
			p.Digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			p.Symbol = true
		}
	}
	return p
}

// Score counts satisfied rules, 0 through 5.
func (p Policy) Score() int {
	score := 0
	for _, ok := range []bool{p.MinLength, p.Lower, p.Upper, p.Digit, p.Symbol} {
		if ok {
			score++
		}
	}
	return score
}

// Satisfied reports whether every rule passes.
func (p Policy) Satisfied() bool {
	return p.Score() == 5
}

// Missing lists the unmet rules as display labels.
func (p Policy) Missing() []string {
	var out []string
	if !p.MinLength {
		out = append(out, "mínimo de 8 caracteres")
	}
	if !p.Lower {
		out = append(out, "letra minúscula")
	}
	if !p.Upper {
		out = append(out, "letra maiúscula")
	}
	if !p.Digit {
		out = append(out, "número")
	}
	if !p.Symbol {
		out = append(out, "símbolo")
	}
	return out
}
