// Package importer loads Airtable CSV exports into the database.
package importer

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"printstock/internal/domain/edition"
)

// printNameMapping fixes known misspellings and abbreviations in the export.
var printNameMapping = map[string]string{
	"nomanfort":   "No Man's Fort",
	"nomansfort":  "No Man's Fort",
	"stcatherines": "St Catherine's",
	"seaviewtwo":  "Seaview Two",

	"bemlbsl":  "Bembridge Lifeboat Station",
	"seagv2l":  "Seaview V2 Large",
	"seagrove": "Seagrove",
	"rys":      "Royal Yacht Squadron",

	"cowesraceday":       "Cowes Race Day",
	"quayrocks":          "Quay Rocks",
	"quayrockslandscape": "Quay Rocks Landscape",
	"lifeboatstation":    "Lifeboat Station",
	"priory":             "Priory",

	"ducie":      "Ducie",
	"etchells":   "Etchells",
	"lymington":  "Lymington",
	"bembridge":  "Bembridge",
	"osborne":    "Osborne",
	"contessa32": "Contessa 32",

	"puffin":  "Puffin",
	"seagull": "Seagull",

	"jubilee":  "Jubilee",
	"classics": "Classics",
	"regatta":  "Regatta",

	"nerthek": "Nerthek",
	"quarr":   "Quarr",
	"seauew":  "Sea View",
	"seaview": "Seaview",

	"a.mermaids": "Mermaids",
	"amermaids":  "Mermaids",
}

// distributorNameMapping fixes known distributor name variants.
var distributorNameMapping = map[string]string{
	"kendalls":          "Kendalls",
	"kendall":           "Kendalls",
	"seaview gallery":   "Seaview Gallery",
	"bramble and berry": "Bramble and Berry",
	"green buoy":        "Green Buoy",
	"tapnell farm":      "Tapnell Farm",
	"direct":            "Direct",
	"unknown":           "Unknown",
	"perera":            "Perera",
	"framers":           "Framers",
}

// Words that survive title casing unchanged.
var (
	uppercaseWords = map[string]bool{"RYS": true, "IOW": true, "UK": true, "V2": true, "V2L": true}
	lowercaseWords = map[string]bool{"and": true, "the": true, "of": true, "at": true, "in": true, "on": true}
)

var (
	editionNameRe = regexp.MustCompile(`^(.+?)\s*-\s*(-?\d+)$`)
	imageURLRe    = regexp.MustCompile(`\(https?://[^)]+\)`)
	currencyRe    = regexp.MustCompile(`[£$€,]`)
)

// isEmpty reports cell values the Airtable export uses for "no data".
func isEmpty(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "nan", "none", "#error!":
		return true
	}
	return false
}

// CleanText trims a text cell, mapping empty markers to nil.
func CleanText(value string) *string {
	if isEmpty(value) {
		return nil
	}
	s := strings.TrimSpace(value)
	return &s
}

// CleanCurrency parses values like "£1,234.56" into a decimal.
func CleanCurrency(value string) *decimal.Decimal {
	if isEmpty(value) {
		return nil
	}

	clean := currencyRe.ReplaceAllString(strings.TrimSpace(value), "")
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return nil
	}
	return &d
}

// CleanPercentage parses values like "40%" into a decimal.
func CleanPercentage(value string) *decimal.Decimal {
	if isEmpty(value) {
		return nil
	}

	clean := strings.TrimSpace(strings.ReplaceAll(value, "%", ""))
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return nil
	}
	return &d
}

// CleanBoolean converts Airtable checkbox representations.
func CleanBoolean(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "checked", "true", "yes", "1":
		return true
	}
	return false
}

// CleanInteger parses an integer cell, tolerating decimal points.
func CleanInteger(value string) *int {
	if isEmpty(value) {
		return nil
	}

	s := strings.TrimSpace(value)
	if i, err := strconv.Atoi(s); err == nil {
		return &i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		i := int(f)
		return &i
	}
	return nil
}

// dateFormats covers the formats seen in the export.
var dateFormats = []string{
	"1/2/2006",        // 10/24/2023 (US)
	"2/1/2006",        // 24/10/2023 (UK)
	"2006-01-02",      // 2023-10-24
	"January 2, 2006", // October 24, 2023
	"Jan 2, 2006",     // Oct 24, 2023
}

// ParseDate parses the known date formats, fixing the recurring 1920 typo.
func ParseDate(value string) *time.Time {
	if isEmpty(value) {
		return nil
	}

	s := strings.TrimSpace(value)
	// 1920 dates are typos for 2020
	s = strings.ReplaceAll(s, "1920", "2020")

	for _, format := range dateFormats {
		if t, err := time.Parse(format, s); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}

// ParseImageURLs extracts URLs from the Airtable attachment field, which
// looks like `photo.jpg (https://...)`.
func ParseImageURLs(value string) []string {
	if isEmpty(value) {
		return nil
	}

	matches := imageURLRe.FindAllString(value, -1)
	urls := make([]string, 0, len(matches))
	for _, m := range matches {
		urls = append(urls, strings.Trim(m, "()"))
	}
	return urls
}

// NormalizeSize maps free-form size text to a valid Size. Unknown values
// default to Small.
func NormalizeSize(value string) edition.Size {
	s := strings.ToLower(strings.TrimSpace(value))
	if s == "" || s == "nan" || s == "none" || s == "unknown" {
		return edition.SizeSmall
	}

	switch {
	case strings.Contains(s, "extra") && strings.Contains(s, "large"):
		return edition.SizeExtraLarge
	case strings.Contains(s, "large"):
		return edition.SizeLarge
	default:
		return edition.SizeSmall
	}
}

// NormalizeFrameType maps free-form frame text to a valid FrameType.
// Unknown non-empty values default to Framed.
func NormalizeFrameType(value string) *edition.FrameType {
	if isEmpty(value) {
		return nil
	}

	var ft edition.FrameType
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "tube", "tube only", "tubed":
		ft = edition.FrameTubeOnly
	case "mounted", "mount", "unmounted":
		ft = edition.FrameMounted
	default:
		// ikea, b&q, framed, frame and everything else
		ft = edition.FrameFramed
	}
	return &ft
}

// StandardizePrintName normalizes a print name: known variants map to their
// canonical form, everything else gets smart title casing.
func StandardizePrintName(name string) string {
	if isEmpty(name) {
		return ""
	}

	clean := strings.TrimSpace(name)

	lookupKey := strings.ToLower(clean)
	for _, r := range []string{"-", "_", " "} {
		lookupKey = strings.ReplaceAll(lookupKey, r, "")
	}
	if mapped, ok := printNameMapping[lookupKey]; ok {
		return mapped
	}

	words := strings.Fields(clean)
	result := make([]string, 0, len(words))
	for i, word := range words {
		w := strings.Trim(word, ".,;:")
		switch {
		case uppercaseWords[strings.ToUpper(w)]:
			result = append(result, strings.ToUpper(w))
		case i > 0 && lowercaseWords[strings.ToLower(w)]:
			result = append(result, strings.ToLower(w))
		default:
			result = append(result, capitalizeWord(w))
		}
	}

	return strings.Join(result, " ")
}

// capitalizeWord title-cases one word, keeping apostrophe segments intact
// ("no man's" parts stay correct).
func capitalizeWord(w string) string {
	if strings.Contains(w, "'") {
		parts := strings.Split(w, "'")
		for i, p := range parts {
			parts[i] = capitalize(p)
		}
		return strings.Join(parts, "'")
	}
	return capitalize(w)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

// StandardizeDistributorName normalizes a distributor name.
func StandardizeDistributorName(name string) string {
	if isEmpty(name) {
		return ""
	}

	clean := strings.TrimSpace(name)
	if mapped, ok := distributorNameMapping[strings.ToLower(clean)]; ok {
		return mapped
	}

	words := strings.Fields(clean)
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

// ExtractEditionInfo splits "Print Name - 42" into the standardized print
// name and the edition number. ok is false when the suffix is missing.
func ExtractEditionInfo(editionName string) (printName string, number int, ok bool) {
	trimmed := strings.TrimSpace(editionName)
	if trimmed == "" {
		return "", 0, false
	}

	if m := editionNameRe.FindStringSubmatch(trimmed); m != nil {
		n, err := strconv.Atoi(m[2])
		if err == nil {
			return StandardizePrintName(m[1]), n, true
		}
	}

	return StandardizePrintName(trimmed), 0, false
}
