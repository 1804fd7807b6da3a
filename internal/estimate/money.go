package estimate

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var rubPrinter = message.NewPrinter(language.Russian)

// FormatRubles renders an amount the way Russian locales print prices,
// with grouped thousands and at most two fraction digits: "24 000 ₽".
func FormatRubles(amount float64) string {
	return rubPrinter.Sprint(number.Decimal(amount, number.MaxFractionDigits(2))) + " ₽"
}
