// package formatter renders pack records into display text: locale-aware
// prices, card bodies, clipboard payloads, and messaging deep links
package formatter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/desertthunder/packdex/internal/models"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Prices display with es-AR digit grouping ("1.500").
var priceLocale = message.NewPrinter(language.MustParse("es-AR"))

// whatsAppTemplate is the fixed outbound message, parameterized only by
// pack id before URL encoding.
const whatsAppTemplate = "Hola! Quiero consultarte si el pack de ID %s está disponible, gracias!"

// FormatPrice renders a local-currency price with locale thousands
// separators, e.g. 1500 → "$1.500".
func FormatPrice(price int) string {
	return "$" + priceLocale.Sprintf("%v", number.Decimal(price))
}

// GamesBlock renders the full game list, one line per game, no truncation.
func GamesBlock(p models.Pack) string {
	return strings.Join(p.Games, "\n")
}

// CacheBustCover appends a timestamp query parameter to a cover URL so an
// updated cover is never served from a stale cache. Inline data URIs and
// empty URLs pass through untouched.
func CacheBustCover(coverURL string, now time.Time) string {
	if coverURL == "" || strings.HasPrefix(coverURL, "data:") {
		return coverURL
	}
	sep := "?"
	if strings.Contains(coverURL, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%st=%d", coverURL, sep, now.UnixMilli())
}

// EscapeCopyText prepares pack text for embedding in a template-literal
// style copy action: backticks are escaped so they cannot terminate the
// literal and every dollar sign is doubled so substitution syntax in the
// host mechanism cannot consume it.
func EscapeCopyText(s string) string {
	s = strings.ReplaceAll(s, "`", "\\`")
	return strings.ReplaceAll(s, "$", "$$")
}

// ExpandCopyText applies the host copy mechanism's substitution rules to
// an escaped payload: "$$" collapses to "$" and escaped backticks become
// literal backticks. ExpandCopyText(EscapeCopyText(s)) == s for every s.
func ExpandCopyText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '$' && i+1 < len(s) && s[i+1] == '$':
			b.WriteByte('$')
			i++
		case s[i] == '\\' && i+1 < len(s) && s[i+1] == '`':
			b.WriteByte('`')
			i++
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// CopyPayload runs a pack's pre-formatted text through the escape/expand
// pipeline, yielding the exact bytes that must land on the clipboard.
func CopyPayload(p models.Pack) string {
	return ExpandCopyText(EscapeCopyText(p.FormattedText))
}

// BuildWhatsAppLink constructs the outbound messaging deep link for a
// pack: https://wa.me/<number>?text=<url-encoded template>.
func BuildWhatsAppLink(number, packID string) string {
	msg := fmt.Sprintf(whatsAppTemplate, packID)
	return fmt.Sprintf("https://wa.me/%s?text=%s", number, url.QueryEscape(msg))
}

// AdminCountText renders the admin results-count line for a result set.
func AdminCountText(n int, query, exclude string) string {
	switch {
	case query != "" && exclude != "":
		return fmt.Sprintf("%d resultados para %q (excluyendo %q)", n, query, exclude)
	case query != "":
		return fmt.Sprintf("%d resultados para %q", n, query)
	case exclude != "":
		return fmt.Sprintf("%d resultados excluyendo %q", n, exclude)
	default:
		return fmt.Sprintf("%d packs disponibles", n)
	}
}

// CatalogCountText renders the customer-facing results heading.
func CatalogCountText(n int, query, exclude string) string {
	if query == "" && exclude == "" {
		return "Catálogo Completo"
	}
	return fmt.Sprintf("%d resultados encontrados", n)
}

// AdminEmptyText renders the admin empty-state message.
func AdminEmptyText(query string) string {
	if query != "" {
		return fmt.Sprintf("No se encontraron packs con: %q", query)
	}
	return `No hay packs cargados. Haz clic en "Renovar Lista"`
}

// CatalogEmptyText renders the customer-facing empty-state message.
func CatalogEmptyText() string {
	return "No encontramos nada\nIntenta cambiar los términos de búsqueda"
}

// ProbeCover checks whether a cover image URL actually resolves. The
// renderer uses a failed probe to reclassify a card onto the fallback
// pattern, mirroring an image element's error handler.
func ProbeCover(ctx context.Context, client *http.Client, coverURL string) error {
	if coverURL == "" {
		return fmt.Errorf("empty URL provided")
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, coverURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch cover: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to fetch cover: status %d", resp.StatusCode)
	}

	return nil
}

// CardText renders one pack as a plain text block for CLI output. The
// cover line shows the cache-busted URL when a cover is present and has
// not failed, and the fallback pattern otherwise.
func CardText(p models.Pack, coverFailed bool, now time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "ID: %s\n", p.ID)
	if p.HasCover() && !coverFailed {
		fmt.Fprintf(&b, "Cover: %s\n", CacheBustCover(p.CoverURL, now))
	} else {
		b.WriteString("Cover: 🎮 (sin portada)\n")
	}
	b.WriteString(GamesBlock(p))
	fmt.Fprintf(&b, "\nPrecio: %s\n", FormatPrice(p.PriceLocal))

	return b.String()
}
