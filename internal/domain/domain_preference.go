package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Rhymond/go-money"
)

// Preference keys in the durable store
const (
	PrefKeyUserName  = "userName"
	PrefKeyUserEmail = "userEmail"
	PrefKeyCurrency  = "currency"
	PrefKeyToken     = "token"
)

const (
	DefaultUserName  = "User"
	DefaultUserEmail = "user@email.com"
)

// Currency 货币偏好
type Currency string

const (
	CurrencyINR Currency = "INR"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
)

const DefaultCurrency = CurrencyINR

var supportedCurrencies = []Currency{CurrencyINR, CurrencyUSD, CurrencyEUR}

func SupportedCurrencies() []Currency {
	out := make([]Currency, len(supportedCurrencies))
	copy(out, supportedCurrencies)
	return out
}

func (c Currency) IsSupported() bool {
	for _, s := range supportedCurrencies {
		if s == c {
			return true
		}
	}
	return false
}

// ParseCurrency accepts any letter case
func ParseCurrency(s string) (Currency, bool) {
	c := Currency(strings.ToUpper(strings.TrimSpace(s)))
	return c, c.IsSupported()
}

// Symbol returns the grapheme, e.g. ₹ for INR
func (c Currency) Symbol() string {
	if cur := money.GetCurrency(string(c)); cur != nil {
		return cur.Grapheme
	}
	return string(c)
}

// Label 展示标签，如 "₹ INR"
func (c Currency) Label() string {
	return c.Symbol() + " " + string(c)
}

// Profile 用户展示信息
type Profile struct {
	Name  string
	Email string
}

// DefaultProfile is shown when nothing is stored
func DefaultProfile() Profile {
	return Profile{Name: DefaultUserName, Email: DefaultUserEmail}
}

// Initials upper-cases the first letter of every word of the name
func (p Profile) Initials() string {
	var b strings.Builder
	for _, w := range strings.Fields(p.Name) {
		r, _ := utf8.DecodeRuneInString(w)
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}
