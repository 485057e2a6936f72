package feed

import (
	"reflect"
	"testing"
)

func TestCategorizer_Run(t *testing.T) {
	categorizer := NewCategorizer()

	tests := []struct {
		name        string
		title       string
		description string
		expected    []string
	}{
		{
			name:     "Single category from title",
			title:    "Putin addresses the Kremlin",
			expected: []string{"russia"},
		},
		{
			name:        "Categories reported in table order",
			title:       "Missile strike on Kyiv",
			description: "Russian forces launched an overnight attack",
			expected:    []string{"ukraine", "russia", "conflicts"},
		},
		{
			name:     "Case insensitive",
			title:    "GAZA CEASEFIRE TALKS",
			expected: []string{"middle-east", "conflicts"},
		},
		{
			name:        "Keyword in description only",
			title:       "Leaders meet",
			description: "Talks in Beijing end without agreement",
			expected:    []string{"china"},
		},
		{
			name:     "Keyword shared by two categories",
			title:    "New tariff announced",
			expected: []string{"us-politics", "trade-economy"},
		},
		{
			name:     "No match falls back to world",
			title:    "Local bakery opens new shop",
			expected: []string{"world"},
		},
		{
			name:     "Empty text falls back to world",
			expected: []string{"world"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := categorizer.Run(tt.title, tt.description)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestCategorizer_Run_Deterministic(t *testing.T) {
	categorizer := NewCategorizer()

	first := categorizer.Run("Trump and Zelensky discuss NATO", "Oil prices rise")
	for i := 0; i < 10; i++ {
		if result := categorizer.Run("Trump and Zelensky discuss NATO", "Oil prices rise"); !reflect.DeepEqual(result, first) {
			t.Fatalf("Expected %v on every call, got %v", first, result)
		}
	}

	expected := []string{"us-politics", "ukraine", "europe", "trade-economy"}
	if !reflect.DeepEqual(first, expected) {
		t.Errorf("Expected %v, got %v", expected, first)
	}
}

func TestCategories(t *testing.T) {
	all := Categories()
	if len(all) != 11 {
		t.Fatalf("Expected 11 categories, got %d", len(all))
	}
	if all[0].Key != "us-politics" {
		t.Errorf("Expected first category 'us-politics', got %s", all[0].Key)
	}
	if all[len(all)-1].Key != FallbackCategory {
		t.Errorf("Expected fallback category last, got %s", all[len(all)-1].Key)
	}

	all[0].Key = "changed"
	if Categories()[0].Key != "us-politics" {
		t.Error("Expected Categories to return a copy of the table")
	}
}

func TestIsKnownCategory(t *testing.T) {
	for _, key := range []string{"world", "ukraine", "conflicts"} {
		if !IsKnownCategory(key) {
			t.Errorf("Expected %s to be known", key)
		}
	}
	for _, key := range []string{"", "sports", "World"} {
		if IsKnownCategory(key) {
			t.Errorf("Expected %q to be unknown", key)
		}
	}
}
