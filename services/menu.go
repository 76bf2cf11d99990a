package services

import (
	"strings"

	"github.com/yeremiapane/restaurant-pos/models"
)

const uncategorized = "Other"

// MenuGroup is one category section of the menu.
type MenuGroup struct {
	Category string            `json:"category"`
	Items    []models.MenuItem `json:"items"`
}

// GroupByCategory partitions items by category, keeping categories in the
// order they first appear. Items without a category land in "Other".
func GroupByCategory(items []models.MenuItem) []MenuGroup {
	groups := []MenuGroup{}
	index := make(map[string]int)
	for _, item := range items {
		category := item.CategoryName()
		if category == "" {
			category = uncategorized
		}
		i, ok := index[category]
		if !ok {
			i = len(groups)
			index[category] = i
			groups = append(groups, MenuGroup{Category: category})
		}
		groups[i].Items = append(groups[i].Items, item)
	}
	return groups
}

// SearchMenu matches query against name and category, case-insensitively.
// An empty query returns every item.
func SearchMenu(items []models.MenuItem, query string) []models.MenuItem {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return items
	}
	out := []models.MenuItem{}
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Name), q) || strings.Contains(strings.ToLower(item.Category), q) {
			out = append(out, item)
		}
	}
	return out
}

func AvailableOnly(items []models.MenuItem) []models.MenuItem {
	out := []models.MenuItem{}
	for _, item := range items {
		if item.Available() {
			out = append(out, item)
		}
	}
	return out
}

func FindMenuItem(items []models.MenuItem, id string) (models.MenuItem, error) {
	for _, item := range items {
		if item.ID == id {
			return item, nil
		}
	}
	return models.MenuItem{}, ErrUnknownMenuItem
}

// PermanentTables hides the temporary tables the backend creates for QR orders.
func PermanentTables(tables []models.Table) []models.Table {
	out := []models.Table{}
	for _, t := range tables {
		if !t.IsTemporary {
			out = append(out, t)
		}
	}
	return out
}

// OccupiedTables returns the ids of tables with an active order.
func OccupiedTables(orders []models.Order) map[string]bool {
	occupied := make(map[string]bool)
	for _, o := range orders {
		if id := o.TableID(); id != "" {
			occupied[id] = true
		}
	}
	return occupied
}
