package importer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printstock/internal/domain/edition"
)

func TestStandardizePrintName(t *testing.T) {
	cases := map[string]string{
		"NoMansFort ":         "No Man's Fort",
		"COWES RACE DAY":      "Cowes Race Day",
		"BEMLBSL":             "Bembridge Lifeboat Station",
		"St Catherines":       "St Catherine's",
		"SEAGV2L":             "Seaview V2 Large",
		"quayrocks landscape": "Quay Rocks Landscape",
		"NERTHEK":             "Nerthek",
		"harbour of the east": "Harbour of the East",
		"RYS regatta":         "RYS Regatta",
		"":                    "",
		"nan":                 "",
	}
	for in, want := range cases {
		assert.Equal(t, want, StandardizePrintName(in), "input %q", in)
	}
}

func TestStandardizeDistributorName(t *testing.T) {
	assert.Equal(t, "Kendalls", StandardizeDistributorName("kendall"))
	assert.Equal(t, "Seaview Gallery", StandardizeDistributorName("SEAVIEW GALLERY"))
	assert.Equal(t, "New Shop", StandardizeDistributorName("new shop"))
	assert.Equal(t, "", StandardizeDistributorName("  "))
}

func TestCleanText(t *testing.T) {
	assert.Nil(t, CleanText(""))
	assert.Nil(t, CleanText("nan"))
	assert.Nil(t, CleanText("#ERROR!"))

	got := CleanText("  some notes  ")
	require.NotNil(t, got)
	assert.Equal(t, "some notes", *got)
}

func TestCleanCurrency(t *testing.T) {
	got := CleanCurrency("£1,234.56")
	require.NotNil(t, got)
	assert.Equal(t, "1234.56", got.String())

	got = CleanCurrency("$99")
	require.NotNil(t, got)
	assert.Equal(t, "99", got.String())

	assert.Nil(t, CleanCurrency(""))
	assert.Nil(t, CleanCurrency("#ERROR!"))
	assert.Nil(t, CleanCurrency("abc"))
}

func TestCleanPercentage(t *testing.T) {
	got := CleanPercentage("40%")
	require.NotNil(t, got)
	assert.Equal(t, "40", got.String())

	got = CleanPercentage(" 12.5 ")
	require.NotNil(t, got)
	assert.Equal(t, "12.5", got.String())

	assert.Nil(t, CleanPercentage("none"))
}

func TestCleanBoolean(t *testing.T) {
	for _, truthy := range []string{"checked", "TRUE", "Yes", "1"} {
		assert.True(t, CleanBoolean(truthy), "input %q", truthy)
	}
	for _, falsy := range []string{"", "no", "0", "unchecked", "nan"} {
		assert.False(t, CleanBoolean(falsy), "input %q", falsy)
	}
}

func TestCleanInteger(t *testing.T) {
	got := CleanInteger("150")
	require.NotNil(t, got)
	assert.Equal(t, 150, *got)

	got = CleanInteger("12.0")
	require.NotNil(t, got)
	assert.Equal(t, 12, *got)

	assert.Nil(t, CleanInteger(""))
	assert.Nil(t, CleanInteger("#ERROR!"))
	assert.Nil(t, CleanInteger("twelve"))
}

func TestParseDate(t *testing.T) {
	got := ParseDate("10/24/2023")
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2023, time.October, 24, 0, 0, 0, 0, time.UTC), *got)

	got = ParseDate("2023-10-24")
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2023, time.October, 24, 0, 0, 0, 0, time.UTC), *got)

	got = ParseDate("October 24, 2023")
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2023, time.October, 24, 0, 0, 0, 0, time.UTC), *got)

	// 1920 is a recurring typo for 2020
	got = ParseDate("03/15/1920")
	require.NotNil(t, got)
	assert.Equal(t, 2020, got.Year())

	assert.Nil(t, ParseDate(""))
	assert.Nil(t, ParseDate("not a date"))
}

func TestParseImageURLs(t *testing.T) {
	urls := ParseImageURLs("photo.jpg (https://example.com/a.jpg), other.png (https://example.com/b.png)")
	require.Len(t, urls, 2)
	assert.Equal(t, "https://example.com/a.jpg", urls[0])
	assert.Equal(t, "https://example.com/b.png", urls[1])

	assert.Empty(t, ParseImageURLs(""))
	assert.Empty(t, ParseImageURLs("no urls here"))
}

func TestNormalizeSize(t *testing.T) {
	assert.Equal(t, edition.SizeSmall, NormalizeSize(""))
	assert.Equal(t, edition.SizeSmall, NormalizeSize("unknown"))
	assert.Equal(t, edition.SizeSmall, NormalizeSize("medium"))
	assert.Equal(t, edition.SizeLarge, NormalizeSize("LARGE"))
	assert.Equal(t, edition.SizeExtraLarge, NormalizeSize("extra large"))
	assert.Equal(t, edition.SizeExtraLarge, NormalizeSize("Extra-Large"))
}

func TestNormalizeFrameType(t *testing.T) {
	assert.Nil(t, NormalizeFrameType(""))
	assert.Nil(t, NormalizeFrameType("nan"))

	ft := NormalizeFrameType("ikea")
	require.NotNil(t, ft)
	assert.Equal(t, edition.FrameFramed, *ft)

	ft = NormalizeFrameType("Tube Only")
	require.NotNil(t, ft)
	assert.Equal(t, edition.FrameTubeOnly, *ft)

	ft = NormalizeFrameType("mount")
	require.NotNil(t, ft)
	assert.Equal(t, edition.FrameMounted, *ft)

	// unknown non-empty values default to Framed
	ft = NormalizeFrameType("weird")
	require.NotNil(t, ft)
	assert.Equal(t, edition.FrameFramed, *ft)
}

func TestExtractEditionInfo(t *testing.T) {
	name, number, ok := ExtractEditionInfo("St Catherines - 87")
	assert.True(t, ok)
	assert.Equal(t, "St Catherine's", name)
	assert.Equal(t, 87, number)

	name, number, ok = ExtractEditionInfo("NoMansFort - -5")
	assert.True(t, ok)
	assert.Equal(t, "No Man's Fort", name)
	assert.Equal(t, -5, number)

	name, _, ok = ExtractEditionInfo("Just A Name")
	assert.False(t, ok)
	assert.Equal(t, "Just A Name", name)

	_, _, ok = ExtractEditionInfo("")
	assert.False(t, ok)
}
