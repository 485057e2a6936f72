package feed

import (
	"slices"
	"strings"
)

const FallbackCategory = "world"

// Table order is significant: it is the order categories are reported in.
var categories = []Category{
	{
		Key:      "us-politics",
		Label:    "\U0001F1FA\U0001F1F8 US Politics",
		Color:    "#3b82f6",
		Keywords: []string{"trump", "biden", "congress", "senate", "white house", "republican", "democrat", "executive order", "tariff", "gop", "dnc", "capitol hill", "oval office", "pentagon"},
	},
	{
		Key:      "ukraine",
		Label:    "\U0001F1FA\U0001F1E6 Ukraine",
		Color:    "#fbbf24",
		Keywords: []string{"ukraine", "kyiv", "zelenskyy", "zelensky", "crimea", "donbas", "kharkiv", "odesa", "ukrainian"},
	},
	{
		Key:      "middle-east",
		Label:    "\U0001F1F5\U0001F1F8 Middle East",
		Color:    "#f97316",
		Keywords: []string{"gaza", "israel", "hamas", "hezbollah", "iran", "syria", "yemen", "houthi", "netanyahu", "palestinian", "west bank", "tehran", "idf"},
	},
	{
		Key:      "china",
		Label:    "\U0001F1E8\U0001F1F3 China",
		Color:    "#ef4444",
		Keywords: []string{"china", "beijing", "xi jinping", "taiwan", "south china sea", "ccp", "chinese", "hong kong"},
	},
	{
		Key:      "russia",
		Label:    "\U0001F1F7\U0001F1FA Russia",
		Color:    "#a855f7",
		Keywords: []string{"russia", "putin", "moscow", "kremlin", "russian"},
	},
	{
		Key:      "europe",
		Label:    "\U0001F1EA\U0001F1FA Europe",
		Color:    "#6366f1",
		Keywords: []string{"eu", "european union", "nato", "macron", "scholz", "starmer", "uk", "britain", "brussels", "european"},
	},
	{
		Key:      "asia",
		Label:    "\U0001F30F Asia-Pacific",
		Color:    "#ec4899",
		Keywords: []string{"india", "modi", "japan", "korea", "asean", "pacific", "south korea", "north korea", "pyongyang"},
	},
	{
		Key:      "africa",
		Label:    "\U0001F30D Africa",
		Color:    "#84cc16",
		Keywords: []string{"africa", "sahel", "sudan", "ethiopia", "nigeria", "congo", "african", "kenyan", "somalia"},
	},
	{
		Key:      "trade-economy",
		Label:    "\U0001F4B0 Trade & Economy",
		Color:    "#10b981",
		Keywords: []string{"tariff", "sanctions", "trade war", "economy", "inflation", "oil", "opec", "gdp", "recession", "interest rate", "federal reserve"},
	},
	{
		Key:      "conflicts",
		Label:    "⚔️ Conflicts",
		Color:    "#f59e0b",
		Keywords: []string{"war", "military", "troops", "airstrike", "offensive", "ceasefire", "casualties", "missile", "drone strike", "bombing", "artillery"},
	},
}

var fallback = Category{Key: FallbackCategory, Label: "\U0001F310 World", Color: "#64748b"}

// Categories returns the category table followed by the fallback category.
func Categories() []Category {
	return append(slices.Clone(categories), fallback)
}

func IsKnownCategory(key string) bool {
	if key == FallbackCategory {
		return true
	}
	return slices.ContainsFunc(categories, func(c Category) bool { return c.Key == key })
}

type Categorizer struct {
	categories []Category
}

func NewCategorizer() *Categorizer {
	return &Categorizer{categories: categories}
}

// Run returns the keys of every category with a keyword in title or
// description, in table order. It never returns an empty slice.
func (c *Categorizer) Run(title, description string) []string {
	text := strings.ToLower(title + " " + description)

	var matched []string
	for _, category := range c.categories {
		if c.matchesAny(text, category.Keywords) {
			matched = append(matched, category.Key)
		}
	}

	if len(matched) == 0 {
		return []string{FallbackCategory}
	}
	return matched
}

func (c *Categorizer) matchesAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
