package session

import (
	"fmt"
	"time"

	"ragchat/client/internal/model"
)

// RecencyGroups partitions chats into time buckets relative to "now".
// Every input chat lands in exactly one bucket; within a bucket the input
// order is preserved.
type RecencyGroups struct {
	Today     []*model.Chat `json:"today"`
	Yesterday []*model.Chat `json:"yesterday"`
	ThisWeek  []*model.Chat `json:"this_week"`
	Older     []*model.Chat `json:"older"`
}

// GroupByRecency buckets chats by how many whole days ago they were last
// updated: 0 is today, 1 is yesterday, 2..7 is this week, anything beyond
// is older. The result is a derived view computed against the given clock
// instant, so identical input regroups as time advances.
func GroupByRecency(chats []*model.Chat, now time.Time) RecencyGroups {
	groups := RecencyGroups{
		Today:     []*model.Chat{},
		Yesterday: []*model.Chat{},
		ThisWeek:  []*model.Chat{},
		Older:     []*model.Chat{},
	}

	for _, chat := range chats {
		daysDiff := int(now.Sub(chat.UpdatedAt).Hours() / 24)
		switch {
		case daysDiff == 0:
			groups.Today = append(groups.Today, chat)
		case daysDiff == 1:
			groups.Yesterday = append(groups.Yesterday, chat)
		case daysDiff <= 7:
			groups.ThisWeek = append(groups.ThisWeek, chat)
		default:
			groups.Older = append(groups.Older, chat)
		}
	}
	return groups
}

// FormatDistanceToNow renders how long ago an instant was in the compact
// sidebar style: "just now", "5m ago", "3h ago", "4d ago", then the date.
func FormatDistanceToNow(t, now time.Time) string {
	diff := now.Sub(t)
	minutes := int(diff.Minutes())
	hours := int(diff.Hours())
	days := int(diff.Hours() / 24)

	switch {
	case minutes < 1:
		return "just now"
	case minutes < 60:
		return fmt.Sprintf("%dm ago", minutes)
	case hours < 24:
		return fmt.Sprintf("%dh ago", hours)
	case days < 7:
		return fmt.Sprintf("%dd ago", days)
	}
	return t.Format("1/2/2006")
}
