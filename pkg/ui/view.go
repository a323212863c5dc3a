package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yair/eventscout/pkg/domain"
)

// View renders the active screen.
func (a App) View() string {
	switch a.screen {
	case screenDetail:
		return a.viewDetail()
	case screenFavorites:
		return a.viewFavorites()
	}
	return a.viewList()
}

func (a App) viewList() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Events"))
	b.WriteString("\n")
	b.WriteString(a.label("Keyword", focusKeyword) + a.keyword.View() + "\n")
	b.WriteString(a.label("City", focusCity) + a.city.View() + "\n")
	b.WriteString(a.label("Category", focusSegment) + SegmentChip.Render(a.segments[a.segmentIdx].Name) + "\n")
	if a.segmentsErr != nil {
		b.WriteString(ErrorStyle.Render("Could not load categories") + "\n")
	}

	if a.state.Err != nil {
		b.WriteString(ErrorStyle.Render(loadErrorMessage(a.state.Err)) + "\n")
	}

	events := a.state.Events
	switch {
	case a.state.InitialLoading && len(events) == 0:
		b.WriteString(EmptyStyle.Render(a.spinner.View() + " Loading events..."))
		b.WriteString("\n")
	case len(events) == 0:
		b.WriteString(EmptyStyle.Render("No events found."))
		b.WriteString("\n")
	default:
		b.WriteString(renderEvents(events, a.cursor, a.focus == focusResults, a.listHeight()))
	}

	if a.state.LoadingMore {
		b.WriteString(MetaText.Render(" "+a.spinner.View()+" Loading more...") + "\n")
	}

	b.WriteString(renderStatusBar([][2]string{
		{"tab", "focus"}, {"enter", "open/search"}, {"r", "refresh"}, {"F", "favorites"}, {"q", "quit"},
	}, fmt.Sprintf("%d events", len(events))))
	return b.String()
}

func (a App) label(text string, area focusArea) string {
	if a.focus == area {
		return FocusedLabel.Render(text)
	}
	return InputLabel.Render(text)
}

// listHeight is the number of result rows that fit under the filter bar.
func (a App) listHeight() int {
	if a.height == 0 {
		return 10
	}
	return max((a.height-8)/2, 1)
}

func renderEvents(events []domain.Event, cursor int, focused bool, rows int) string {
	start := 0
	if cursor >= rows {
		start = cursor - rows + 1
	}
	end := min(start+rows, len(events))

	var b strings.Builder
	for i := start; i < end; i++ {
		event := events[i]
		style := NormalItem
		if focused && i == cursor {
			style = SelectedItem
		}
		b.WriteString(style.Render(event.Name))
		b.WriteString("\n")

		meta := event.DisplayDate()
		if loc := event.Location(); loc != "" {
			meta += " · " + loc
		}
		b.WriteString(MetaText.Render("   " + meta))
		b.WriteString("\n")
	}
	return b.String()
}

func (a App) viewDetail() string {
	event := a.detail

	var lines []string
	lines = append(lines, TitleStyle.Render(event.Name))
	lines = append(lines, MetaText.Render("Date: ")+event.DisplayDate())
	if venue, ok := event.PrimaryVenue(); ok {
		lines = append(lines, MetaText.Render("Venue: ")+venue.Name)
		if loc := event.Location(); loc != "" {
			lines = append(lines, MetaText.Render("Location: ")+loc)
		}
	}
	if url := event.PrimaryImageURL(); url != "" {
		lines = append(lines, MetaText.Render("Image: ")+url)
	}
	if event.URL != "" {
		lines = append(lines, MetaText.Render("Tickets: ")+event.URL)
	}
	lines = append(lines, "", event.DisplayInfo(), "")

	switch {
	case a.storageErr != nil:
		lines = append(lines, ErrorStyle.Render("Favorites unavailable: "+a.storageErr.Error()))
	case !a.savedKnown:
		lines = append(lines, MetaText.Render("Checking favorites..."))
	case a.saved:
		lines = append(lines, FavoriteBadge.Render("★ Saved to favorites"))
	default:
		lines = append(lines, MetaText.Render("☆ Not in favorites"))
	}

	width := a.width - 4
	if width <= 0 {
		width = 76
	}
	box := DetailBox.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	return box + "\n" + renderStatusBar([][2]string{{"f", "toggle favorite"}, {"esc", "back"}, {"q", "quit"}}, "")
}

func (a App) viewFavorites() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Favorites"))
	b.WriteString("\n")

	switch {
	case a.storageErr != nil:
		b.WriteString(ErrorStyle.Render("Could not read favorites: " + a.storageErr.Error()))
		b.WriteString("\n")
	case len(a.favorites) == 0:
		b.WriteString(EmptyStyle.Render("No favorites yet."))
		b.WriteString("\n")
	default:
		b.WriteString(renderEvents(a.favorites, a.favCursor, true, a.listHeight()))
	}

	b.WriteString(renderStatusBar([][2]string{{"enter", "open"}, {"esc", "back"}, {"q", "quit"}},
		fmt.Sprintf("%d saved", len(a.favorites))))
	return b.String()
}

func renderStatusBar(hints [][2]string, right string) string {
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, StatusBarKey.Render(h[0])+" "+StatusBarText.Render(h[1]))
	}
	text := strings.Join(parts, "  ")
	if right != "" {
		text += "  " + StatusBarText.Render(right)
	}
	return StatusBar.Render(text)
}

func loadErrorMessage(err error) string {
	if errors.Is(err, domain.ErrRateLimitExceeded) {
		return "Failed to load events: rate limited, try again shortly"
	}
	return "Failed to load events"
}
