package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/packdex/internal/formatter"
	"github.com/desertthunder/packdex/internal/models"
)

// maxVisibleCards caps how many cards render at once; the cursor window
// slides over the full rendered set.
const maxVisibleCards = 3

// renderCard maps one pack to its display fragment: id, cover line (or
// fallback pattern), full game list, and locale-formatted price.
func (m *Model) renderCard(p models.Pack, selected bool) string {
	var b strings.Builder

	fmt.Fprintf(&b, "ID: %s", p.ID)

	if p.HasCover() && !m.controller.Store().CoverFailed(p.ID) {
		fmt.Fprintf(&b, "\n%s", formatter.CacheBustCover(p.CoverURL, time.Now()))
	} else {
		fmt.Fprintf(&b, "\n%s", fallbackStyle.Render("🎮 sin portada"))
	}

	b.WriteString("\n" + formatter.GamesBlock(p))
	b.WriteString("\n" + priceStyle.Render(formatter.FormatPrice(p.PriceLocal)))

	if m.mode == CatalogMode {
		b.WriteString("\n" + styles.help.Render(formatter.BuildWhatsAppLink(m.whatsAppNumber, p.ID)))
	}

	if m.copiedID == p.ID {
		b.WriteString("\n" + styles.ok.Render("✅ Copiado!"))
	} else {
		b.WriteString("\n" + styles.help.Render("📋 c copiar"))
	}

	if selected {
		return selectedCardStyle.Render(b.String())
	}
	return cardStyle.Render(b.String())
}

// renderGrid renders the revealed slice of the current result set plus
// the load-more affordance when more packs remain hidden.
func (m *Model) renderGrid() string {
	if m.gridError != "" {
		return styles.err.Render("Error: " + m.gridError)
	}
	if m.searching {
		return styles.help.Render("Buscando...")
	}

	store := m.controller.Store()
	rendered := store.Rendered()

	if len(rendered) == 0 {
		if m.mode == AdminMode {
			_, query, _ := store.Current()
			return styles.help.Render(formatter.AdminEmptyText(query))
		}
		return styles.help.Render(formatter.CatalogEmptyText())
	}

	start := m.windowStart
	if start > len(rendered)-1 {
		start = max(len(rendered)-1, 0)
	}
	end := min(start+maxVisibleCards, len(rendered))

	var sections []string
	if start > 0 {
		sections = append(sections, styles.help.Render(fmt.Sprintf("… %d packs arriba", start)))
	}
	for i := start; i < end; i++ {
		sections = append(sections, m.renderCard(rendered[i], i == m.cursor))
	}
	if end < len(rendered) {
		sections = append(sections, styles.help.Render(fmt.Sprintf("… %d packs abajo", len(rendered)-end)))
	}

	// Re-rendered from scratch every time, so the control never
	// duplicates and disappears once the set is exhausted.
	if store.HasMore() {
		sections = append(sections, styles.warn.Render("Ver más packs... (m)"))
	}

	return strings.Join(sections, "\n")
}

// scrollTo keeps the cursor inside the visible card window.
func (m *Model) scrollTo(cursor int) {
	m.cursor = cursor
	if m.cursor < m.windowStart {
		m.windowStart = m.cursor
	}
	if m.cursor >= m.windowStart+maxVisibleCards {
		m.windowStart = m.cursor - maxVisibleCards + 1
	}
}
