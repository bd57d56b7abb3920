package button

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/Oudwins/tailwind-merge-go/pkg/twmerge"
	"github.com/a-h/templ"
)

type Type string

const (
	TypeButton Type = "button"
	TypeSubmit Type = "submit"
)

type Variant string

const (
	VariantPrimary   Variant = "primary"
	VariantSecondary Variant = "secondary"
	VariantGhost     Variant = "ghost"
)

type Props struct {
	ID         string
	Type       Type
	Variant    Variant
	Class      string
	Label      string
	Busy       bool
	BusyLabel  string
	Disabled   bool
	Attributes map[string]string
}

const baseClasses = "inline-flex items-center justify-center gap-2 rounded-md px-4 py-2 text-sm font-medium transition-colors focus-visible:outline-none disabled:pointer-events-none disabled:opacity-50"

func variantClasses(v Variant) string {
	switch v {
	case VariantSecondary:
		return "bg-secondary text-secondary-foreground hover:bg-secondary/80"
	case VariantGhost:
		return "bg-transparent hover:bg-accent hover:text-accent-foreground"
	default:
		return "bg-primary text-primary-foreground hover:bg-primary/90"
	}
}

// Classes returns the merged class list for p. Later classes win over the
// variant defaults. The result keeps the input order so identical props
// always render identical markup.
func Classes(p Props) string {
	parts := []string{baseClasses, variantClasses(p.Variant)}
	if p.Class != "" {
		parts = append(parts, p.Class)
	}
	if p.Busy {
		parts = append(parts, "loading cursor-wait")
	}
	input := strings.Join(parts, " ")

	kept := make(map[string]bool)
	for _, class := range strings.Fields(twmerge.Merge(input)) {
		kept[class] = true
	}

	ordered := make([]string, 0, len(kept))
	for _, class := range strings.Fields(input) {
		if kept[class] {
			ordered = append(ordered, class)
			delete(kept, class)
		}
	}
	return strings.Join(ordered, " ")
}

// Button renders a <button>. A busy button is disabled and shows a spinner
// in place of its label.
func Button(props ...Props) templ.Component {
	var p Props
	if len(props) > 0 {
		p = props[0]
	}
	if p.Type == "" {
		p.Type = TypeButton
	}

	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var sb strings.Builder
		sb.WriteString("<button")
		if p.ID != "" {
			fmt.Fprintf(&sb, ` id="%s"`, templ.EscapeString(p.ID))
		}
		fmt.Fprintf(&sb, ` type="%s" class="%s"`, templ.EscapeString(string(p.Type)), templ.EscapeString(Classes(p)))

		keys := make([]string, 0, len(p.Attributes))
		for k := range p.Attributes {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&sb, ` %s="%s"`, templ.EscapeString(k), templ.EscapeString(p.Attributes[k]))
		}

		if p.Busy || p.Disabled {
			sb.WriteString(" disabled")
		}
		if p.Busy {
			sb.WriteString(` aria-busy="true"`)
		}
		sb.WriteString(">")

		if p.Busy {
			label := p.BusyLabel
			if label == "" {
				label = p.Label
			}
			sb.WriteString(`<span class="spinner" aria-hidden="true"></span>`)
			sb.WriteString(templ.EscapeString(label))
		} else {
			sb.WriteString(templ.EscapeString(p.Label))
		}

		sb.WriteString("</button>")
		_, err := io.WriteString(w, sb.String())
		return err
	})
}
