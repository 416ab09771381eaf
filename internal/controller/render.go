package controller

import (
	"fmt"
	"strings"

	"github.com/foxxcyber/itemdesk/internal/models"
)

// Stats is the summary strip above the table. Total is the server count,
// Active and Inactive only cover the loaded page.
type Stats struct {
	Total    int
	Active   int
	Inactive int
}

// PageInfo drives the pagination footer
type PageInfo struct {
	Page         int
	TotalPages   int
	Start        int
	End          int
	Total        int
	Label        string
	PrevDisabled bool
	NextDisabled bool
}

func computeStats(items []*models.Item, total int) Stats {
	active := 0
	for _, item := range items {
		if item.IsActive {
			active++
		}
	}
	return Stats{
		Total:    total,
		Active:   active,
		Inactive: len(items) - active,
	}
}

func computePageInfo(page, total int) PageInfo {
	totalPages := (total + PageSize - 1) / PageSize
	info := PageInfo{
		Page:         page,
		TotalPages:   totalPages,
		Start:        page*PageSize + 1,
		End:          min((page+1)*PageSize, total),
		Total:        total,
		PrevDisabled: page == 0,
		NextDisabled: page >= totalPages-1,
	}

	if total > 0 {
		info.Label = fmt.Sprintf("%d–%d of %d", info.Start, info.End, total)
	} else {
		info.Label = "No items"
	}
	return info
}

// filterItems keeps the items whose name or description contains term,
// ignoring case. An empty term keeps everything.
func filterItems(items []*models.Item, term string) []*models.Item {
	term = strings.ToLower(term)
	if term == "" {
		return append([]*models.Item{}, items...)
	}

	filtered := []*models.Item{}
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Name), term) {
			filtered = append(filtered, item)
			continue
		}
		if item.Description != nil && strings.Contains(strings.ToLower(*item.Description), term) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}
