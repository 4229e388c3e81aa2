package view

import "fmt"

// MoneyFromCents converts minor units to a human-readable currency string.
// E.g., 1099 USD -> "$10.99"
func MoneyFromCents(cents int64, currency string) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%s%d.%02d", sign, currencySymbol(currency), cents/100, cents%100)
}

func currencySymbol(code string) string {
	switch code {
	case "USD":
		return "$"
	case "EUR":
		return "€"
	case "GBP":
		return "£"
	case "TRY":
		return "₺"
	default:
		return code + " "
	}
}
