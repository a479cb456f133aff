package state

import (
	"fmt"
	"time"

	"social/util/model"
)

type Group struct {
	Title string
	Items []model.Notification
}

// GroupByTime reparte las notificaciones en Today, Yesterday, This Week y
// Earlier respecto a la medianoche local de now. Los grupos vacíos no se devuelven
func GroupByTime(list []model.Notification, now time.Time) []Group {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	yesterday := today.AddDate(0, 0, -1)
	thisWeek := today.AddDate(0, 0, -7)

	groups := []Group{
		{Title: "Today"},
		{Title: "Yesterday"},
		{Title: "This Week"},
		{Title: "Earlier"},
	}

	for _, n := range list {
		t := n.CreatedAt
		switch {
		case !t.Before(today):
			groups[0].Items = append(groups[0].Items, n)
		case !t.Before(yesterday):
			groups[1].Items = append(groups[1].Items, n)
		case !t.Before(thisWeek):
			groups[2].Items = append(groups[2].Items, n)
		default:
			groups[3].Items = append(groups[3].Items, n)
		}
	}

	out := groups[:0]
	for _, g := range groups {
		if len(g.Items) > 0 {
			out = append(out, g)
		}
	}
	return out
}

// TimeAgo formatea la antigüedad de una notificación: now, 5m, 3h, 2d, 1w
func TimeAgo(t, now time.Time) string {
	secs := int(now.Sub(t).Seconds())
	switch {
	case secs < 60:
		return "now"
	case secs < 3600:
		return fmt.Sprintf("%dm", secs/60)
	case secs < 86400:
		return fmt.Sprintf("%dh", secs/3600)
	case secs < 604800:
		return fmt.Sprintf("%dd", secs/86400)
	}
	return fmt.Sprintf("%dw", secs/604800)
}

// PostAge formatea la antigüedad de un post o comentario: now, 3h, 2d, 1w y a
// partir de cuatro semanas la fecha ("2 Jan")
func PostAge(t, now time.Time) string {
	hours := int(now.Sub(t).Hours())
	days := hours / 24
	weeks := days / 7
	switch {
	case hours < 1:
		return "now"
	case hours < 24:
		return fmt.Sprintf("%dh", hours)
	case days < 7:
		return fmt.Sprintf("%dd", days)
	case weeks < 4:
		return fmt.Sprintf("%dw", weeks)
	}
	return t.Local().Format("2 Jan")
}
