package pages

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/FACorreiaa/loci-planner/internal/app/models"
)

// pageScript turns the planner:scroll and planner:focus events sent in
// HX-Trigger-After-Settle into scrolling and focus changes.
const pageScript = `<script>
document.body.addEventListener("planner:scroll", function (e) {
  var target = e.detail && e.detail.target;
  if (target === "top") { window.scrollTo({ top: 0, behavior: "smooth" }); return; }
  var el = document.getElementById(target);
  if (el) { el.scrollIntoView({ behavior: "smooth", block: target === "error-section" ? "center" : "start" }); }
});
document.body.addEventListener("planner:focus", function (e) {
  var d = e.detail || {};
  setTimeout(function () { var el = document.getElementById(d.target); if (el) { el.focus(); } }, d.delayMs || 0);
});
</script>`

// LayoutPage renders a full HTML document around layout.Content.
func LayoutPage(layout models.LayoutTempl) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var sb strings.Builder
		sb.WriteString(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		sb.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		fmt.Fprintf(&sb, `<title>%s</title>`, templ.EscapeString(layout.Title))
		sb.WriteString(`<link rel="stylesheet" href="/assets/css/planner.css">`)
		sb.WriteString(`<script src="https://unpkg.com/htmx.org@2.0.4"></script>`)
		sb.WriteString(`</head><body><nav class="main-nav"><ul>`)
		for _, item := range layout.Nav.Items {
			active := ""
			if item.Name == layout.ActiveNav {
				active = ` class="active" aria-current="page"`
			}
			fmt.Fprintf(&sb, `<li><a href="%s"%s>%s</a></li>`, templ.EscapeString(item.URL), active, templ.EscapeString(item.Name))
		}
		sb.WriteString(`</ul></nav><main>`)
		if _, err := io.WriteString(w, sb.String()); err != nil {
			return err
		}
		if layout.Content != nil {
			if err := layout.Content.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</main>`+pageScript+`</body></html>`)
		return err
	})
}
