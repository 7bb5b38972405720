package components

import (
	"fmt"
	"strings"
	"sync"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/glamour"
	"github.com/thenoetrevino/tienda/internal/models"
	"github.com/thenoetrevino/tienda/internal/tui/theme"
)

type ProductPageProps struct {
	Detail        *models.ProductDetail
	Width         int
	CurrentUserID int // 0 when nobody is signed in
}

type rendererKey struct {
	style string
	width int
}

// Cache Glamour renderers by style and width to avoid expensive re-creation
var rendererCache sync.Map // map[rendererKey]*glamour.TermRenderer

func getRenderer(width int) (*glamour.TermRenderer, error) {
	k := rendererKey{style: theme.MarkdownStyle, width: width}
	if cached, ok := rendererCache.Load(k); ok {
		return cached.(*glamour.TermRenderer), nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(k.style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}

	rendererCache.Store(k, renderer)
	return renderer, nil
}

// Stars renders a whole-star rating such as ★★★☆☆
func Stars(rating int) string {
	rating = min(max(rating, 0), models.MaxRating)
	return strings.Repeat("★", rating) + strings.Repeat("☆", models.MaxRating-rating)
}

// ProductMarkdown builds the markdown source for the product page
func ProductMarkdown(props ProductPageProps) string {
	d := props.Detail

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", d.Name)

	summary := fmt.Sprintf("**$%.2f**", d.Price)
	if d.ReviewCount > 0 {
		summary += fmt.Sprintf(" · %s %.1f (%d %s)",
			Stars(int(d.AverageRating+0.5)), d.AverageRating, d.ReviewCount, plural(d.ReviewCount, "review"))
	} else {
		summary += " · no reviews yet"
	}
	if d.FavoriteCount > 0 {
		summary += fmt.Sprintf(" · ♥ %d", d.FavoriteCount)
	}
	b.WriteString(summary + "\n\n")

	if d.Description != "" {
		b.WriteString(d.Description + "\n\n")
	}

	if len(d.Reviews) == 0 {
		return b.String()
	}

	b.WriteString("## Reviews\n\n")
	for _, r := range d.Reviews {
		author := r.Username
		if props.CurrentUserID != 0 && r.UserID == props.CurrentUserID {
			author += " (you)"
		}
		fmt.Fprintf(&b, "### %s %s\n\n", Stars(r.Rating), author)
		b.WriteString(r.Body + "\n\n")
		if !r.UpdatedAt.IsZero() {
			fmt.Fprintf(&b, "*%s*\n\n", r.UpdatedAt.Format("Jan 2, 2006"))
		}
	}
	return b.String()
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

// RenderProduct renders the product page, falling back to the raw markdown
// when glamour cannot render it.
func RenderProduct(props ProductPageProps) string {
	if props.Detail == nil {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Subtle)).
			Italic(true).
			Render("No product loaded")
	}

	md := ProductMarkdown(props)
	renderer, err := getRenderer(max(props.Width, 20))
	if err == nil {
		rendered, err := renderer.Render(md)
		if err == nil {
			return strings.TrimSpace(rendered)
		}
	}
	return md
}
