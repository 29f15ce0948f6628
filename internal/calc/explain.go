package calc

import (
	"fmt"
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Quantity buckets, in rounded pickup truck loads.
const (
	singleLoadMax = 1
	fewLoadsMax   = 3
)

// Depth buckets in inches. Upper bounds are inclusive.
const (
	twoFingersMax = 2.0
	fistMax       = 4.0
	sodaCanMax    = 6.0
)

var usPrinter = message.NewPrinter(language.AmericanEnglish)

// ExplainQuantity describes a weight in pickup truck loads, roughly one ton each.
func ExplainQuantity(tons float64) string {
	loads := int(math.Round(tons))

	switch {
	case loads <= singleLoadMax:
		return "about 1 pickup truck load"
	case loads <= fewLoadsMax:
		return fmt.Sprintf("about %d pickup truck loads", loads)
	default:
		return fmt.Sprintf("about %d pickup truck loads - that's quite a bit of material", loads)
	}
}

// ExplainDepth describes a depth with something the caller can picture.
func ExplainDepth(inches float64) string {
	d := FormatNumber(inches)

	switch {
	case inches <= twoFingersMax:
		return d + " inches deep - about the thickness of two fingers"
	case inches <= fistMax:
		return d + " inches deep - about the width of your fist"
	case inches <= sodaCanMax:
		return d + " inches deep - about the height of a soda can"
	default:
		return d + " inches deep"
	}
}

// Summarize builds the one-sentence answer the voice agent reads back.
func Summarize(lengthFt, widthFt, depthInches, tons float64) string {
	return fmt.Sprintf("For your %s by %s foot area at %s inches deep, you'll need %s tons - %s.",
		FormatNumber(lengthFt), FormatNumber(widthFt), FormatNumber(depthInches),
		FormatTons(tons), ExplainQuantity(tons))
}

// FormatNumber prints v with the shortest representation, so 4 reads "4" and 4.5 reads "4.5".
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatTons prints a weight with one decimal place.
func FormatTons(tons float64) string {
	return strconv.FormatFloat(tons, 'f', 1, 64)
}

// FormatCurrency prints a dollar amount with grouping, e.g. "$1,234.50".
func FormatCurrency(amount float64) string {
	if amount < 0 {
		return "-" + usPrinter.Sprintf("$%.2f", -amount)
	}
	return usPrinter.Sprintf("$%.2f", amount)
}
