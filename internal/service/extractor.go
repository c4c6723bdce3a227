package service

import (
	"regexp"
	"strconv"
	"strings"

	"plantchat/internal/model"
	"plantchat/internal/utils"
)

var (
	lowMaintenancePhrases  = []string{"beginner", "new", "easy", "simple", "low maintenance"}
	highMaintenancePhrases = []string{"advanced", "expert", "difficult", "high maintenance"}

	sunlightTable = utils.KeywordTable{
		{Phrases: []string{"low light", "shade", "dark", "indirect"}, Value: model.SunlightIndirect},
		{Phrases: []string{"bright", "direct sun", "sunny", "full sun"}, Value: model.SunlightDirect},
		{Phrases: []string{"medium light", "partial"}, Value: model.SunlightPartial},
	}

	categoryTable = utils.KeywordTable{
		{Phrases: []string{"succulent"}, Value: "Succulents & Cacti"},
		{Phrases: []string{"cactus"}, Value: "Succulents & Cacti"},
		{Phrases: []string{"flower"}, Value: "Flowering Plants"},
		{Phrases: []string{"flowering"}, Value: "Flowering Plants"},
		{Phrases: []string{"herb"}, Value: "Herbs & Edibles"},
		{Phrases: []string{"edible"}, Value: "Herbs & Edibles"},
		{Phrases: []string{"tree"}, Value: "Trees & Large Plants"},
		{Phrases: []string{"tropical"}, Value: "Tropical Plants"},
		{Phrases: []string{"air purifying"}, Value: "Air Purifying"},
		{Phrases: []string{"pot"}, Value: "Pots & Planters"},
		{Phrases: []string{"planter"}, Value: "Pots & Planters"},
		{Phrases: []string{"tool"}, Value: "Tools & Supplies"},
		{Phrases: []string{"fertilizer"}, Value: "Tools & Supplies"},
	}

	subCategoryTable = utils.KeywordTable{
		{Phrases: []string{"hanging"}, Value: "Hanging Plants"},
		{Phrases: []string{"trailing"}, Value: "Hanging Plants"},
		{Phrases: []string{"desk"}, Value: "Desktop Plants"},
		{Phrases: []string{"small"}, Value: "Desktop Plants"},
		{Phrases: []string{"tabletop"}, Value: "Desktop Plants"},
		{Phrases: []string{"floor"}, Value: "Floor Plants"},
		{Phrases: []string{"large"}, Value: "Floor Plants"},
		{Phrases: []string{"statement"}, Value: "Floor Plants"},
	}

	typeTable = utils.KeywordTable{
		{Phrases: []string{"indoor"}, Value: "Indoor Plant"},
		{Phrases: []string{"houseplant"}, Value: "Indoor Plant"},
		{Phrases: []string{"house plant"}, Value: "Indoor Plant"},
		{Phrases: []string{"outdoor"}, Value: "Outdoor Plant"},
		{Phrases: []string{"garden"}, Value: "Outdoor Plant"},
		{Phrases: []string{"ceramic"}, Value: "Ceramic Pot"},
		{Phrases: []string{"terracotta"}, Value: "Terracotta Pot"},
		{Phrases: []string{"fertilizer"}, Value: "Fertilizer"},
		{Phrases: []string{"plant food"}, Value: "Fertilizer"},
		{Phrases: []string{"tool"}, Value: "Garden Tool"},
	}

	petSafePhrases = []string{"pet safe", "pet-safe", "cat safe", "dog safe", "non toxic", "non-toxic"}

	// single upper bound, first pattern wins
	priceMaxPatterns = []*regexp.Regexp{
		regexp.MustCompile(`under \$(\d+)`),
		regexp.MustCompile(`below \$(\d+)`),
		regexp.MustCompile(`less than \$(\d+)`),
		regexp.MustCompile(`\$(\d+) or less`),
		regexp.MustCompile(`budget \$(\d+)`),
	}
	priceRangePattern = regexp.MustCompile(`\$(\d+)[-\s]?to[-\s]?\$(\d+)`)
)

// ExtractFilters parses free text into a FilterSet. Every dimension is
// matched independently; dimensions without a hit stay nil.
func ExtractFilters(text string) model.FilterSet {
	lower := strings.ToLower(text)
	var filters model.FilterSet

	if utils.ContainsAny(lower, lowMaintenancePhrases...) {
		filters.MaintenanceLevel = strPtr(model.MaintenanceLow)
	} else if utils.ContainsAny(lower, highMaintenancePhrases...) {
		filters.MaintenanceLevel = strPtr(model.MaintenanceHigh)
	}

	if v, ok := sunlightTable.FirstMatch(lower); ok {
		filters.Sunlight = strPtr(v)
	}
	if v, ok := categoryTable.FirstMatch(lower); ok {
		filters.Category = strPtr(v)
	}
	if v, ok := subCategoryTable.FirstMatch(lower); ok {
		filters.SubCategory = strPtr(v)
	}
	if v, ok := typeTable.FirstMatch(lower); ok {
		filters.Type = strPtr(v)
	}

	filters.PetSafe = utils.ContainsAny(lower, petSafePhrases...)

	for _, re := range priceMaxPatterns {
		if m := re.FindStringSubmatch(lower); m != nil {
			filters.PriceMax = parsePrice(m[1])
			break
		}
	}
	if m := priceRangePattern.FindStringSubmatch(lower); m != nil {
		filters.PriceMin = parsePrice(m[1])
		filters.PriceMax = parsePrice(m[2])
	}

	return filters
}

func parsePrice(digits string) *float64 {
	v, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return nil
	}
	return &v
}

func strPtr(s string) *string {
	return &s
}
