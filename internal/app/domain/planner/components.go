package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/FACorreiaa/loci-planner/internal/app/components/button"
)

// Element ids shared by the components, the handlers and the page script.
const (
	plannerID       = "planner"
	formID          = "itinerary-form"
	cityID          = "city"
	interestsField  = "interests-field"
	interestsInput  = "interests-input"
	interestsTagsID = "interests-tags"
	generateBtnID   = "generate-btn"
	inputSectionID  = "input-section"
	resultCityID    = "result-city"
	resultInterests = "result-interests"
	itineraryID     = "itinerary-content"
	errorMessageID  = "error-message"
	newPlanBtnID    = "new-plan-btn"
	retryBtnID      = "retry-btn"
)

func write(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}

func esc(s string) string { return templ.EscapeString(s) }

func displayStyle(visible bool) string {
	if visible {
		return "display: block"
	}
	return "display: none"
}

// Planner renders the three panels. HTMX swaps it as a whole on submit,
// new plan and error dismissal.
func Planner(v View) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		vis := v.Visibility()

		if err := write(w, fmt.Sprintf(`<div id="%s" class="planner" data-view="%s">`, plannerID, v.State)); err != nil {
			return err
		}
		if err := inputSection(v, vis.Input).Render(ctx, w); err != nil {
			return err
		}
		if err := errorSection(v, vis.Error).Render(ctx, w); err != nil {
			return err
		}
		if err := resultsSection(v, vis.Results).Render(ctx, w); err != nil {
			return err
		}
		return write(w, `</div>`)
	})
}

func inputSection(v View, visible bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var sb strings.Builder
		fmt.Fprintf(&sb, `<section id="%s" class="input-section" style="%s">`, inputSectionID, displayStyle(visible))
		// While the request is out htmx puts htmx-request on the button, which
		// the stylesheet turns into the spinner. A stale error is hidden at once.
		fmt.Fprintf(&sb, `<form id="%s" hx-post="/planner/submit" hx-target="#%s" hx-swap="outerHTML" hx-disabled-elt="#%s" hx-indicator="#%s"`,
			formID, plannerID, generateBtnID, generateBtnID)
		fmt.Fprintf(&sb, ` hx-on::before-request="var e = document.getElementById('%s'); if (e) { e.style.display = 'none'; }">`, ScrollError)
		fmt.Fprintf(&sb, `<label for="%s">City</label>`, cityID)
		fmt.Fprintf(&sb, `<input id="%s" name="city" type="text" autocomplete="off" placeholder="e.g. Rome" value="%s">`,
			cityID, esc(v.City))
		if err := write(w, sb.String()); err != nil {
			return err
		}

		if err := InterestField(v).Render(ctx, w); err != nil {
			return err
		}

		err := button.Button(button.Props{
			ID:        generateBtnID,
			Type:      button.TypeSubmit,
			Label:     "Generate itinerary",
			BusyLabel: "Generating...",
			Busy:      v.Busy,
		}).Render(ctx, w)
		if err != nil {
			return err
		}
		return write(w, `</form></section>`)
	})
}

// InterestField renders the tag list and the interest text field. It is
// the swap target of tag additions and removals.
func InterestField(v View) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var sb strings.Builder
		fmt.Fprintf(&sb, `<div id="%s" class="interests-field">`, interestsField)
		fmt.Fprintf(&sb, `<label for="%s">Interests</label>`, interestsInput)
		fmt.Fprintf(&sb, `<div id="%s" class="interests-tags">`, interestsTagsID)
		if err := write(w, sb.String()); err != nil {
			return err
		}

		for _, tag := range v.Interests {
			if err := interestTag(tag).Render(ctx, w); err != nil {
				return err
			}
		}

		sb.Reset()
		sb.WriteString(`</div>`)
		fmt.Fprintf(&sb, `<input id="%s" name="interest" type="text" autocomplete="off" placeholder="Type an interest and press Enter" value="%s"`,
			interestsInput, esc(v.PendingInterest))
		fmt.Fprintf(&sb, ` hx-post="/planner/interests" hx-trigger="keydown[key=='Enter']" hx-target="#%s" hx-swap="outerHTML"`, interestsField)
		sb.WriteString(` hx-on:keydown="if (event.key === 'Enter') { event.preventDefault(); }">`)
		sb.WriteString(`</div>`)
		return write(w, sb.String())
	})
}

// interestTag binds the remove control to its own tag value through hx-vals.
func interestTag(tag string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		vals, err := json.Marshal(map[string]string{"tag": tag})
		if err != nil {
			return err
		}
		if err := write(w, fmt.Sprintf(`<div class="interest-tag" data-tag="%s"><span>%s</span>`, esc(tag), esc(tag))); err != nil {
			return err
		}
		err = button.Button(button.Props{
			Variant: button.VariantGhost,
			Class:   "tag-remove px-1 py-0",
			Label:   "×",
			Attributes: map[string]string{
				"aria-label": "Remove " + tag,
				"hx-delete":  "/planner/interests",
				"hx-vals":    string(vals),
				"hx-target":  "#" + interestsField,
				"hx-swap":    "outerHTML",
			},
		}).Render(ctx, w)
		if err != nil {
			return err
		}
		return write(w, `</div>`)
	})
}

func errorSection(v View, visible bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var sb strings.Builder
		fmt.Fprintf(&sb, `<section id="%s" class="error-section" role="alert" style="%s">`, ScrollError, displayStyle(visible))
		fmt.Fprintf(&sb, `<p id="%s">%s</p>`, errorMessageID, esc(v.ErrorMessage))
		if err := write(w, sb.String()); err != nil {
			return err
		}
		err := button.Button(button.Props{
			ID:      retryBtnID,
			Variant: button.VariantSecondary,
			Label:   "Try again",
			Attributes: map[string]string{
				"hx-post":    "/planner/error/dismiss",
				"hx-include": "#" + formID,
				"hx-target":  "#" + plannerID,
				"hx-swap":    "outerHTML",
			},
		}).Render(ctx, w)
		if err != nil {
			return err
		}
		return write(w, `</section>`)
	})
}

func resultsSection(v View, visible bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		r := v.Result
		if r == nil {
			r = &ResultView{}
		}
		var sb strings.Builder
		fmt.Fprintf(&sb, `<section id="%s" class="results-section" style="%s">`, ScrollResults, displayStyle(visible))
		fmt.Fprintf(&sb, `<h2>Your day in <span id="%s">%s</span></h2>`, resultCityID, esc(r.City))
		fmt.Fprintf(&sb, `<p class="result-meta">Interests: <span id="%s">%s</span></p>`, resultInterests, esc(r.Interests))
		// ItineraryHTML comes from the formatter, which escapes its input.
		fmt.Fprintf(&sb, `<div id="%s" class="itinerary-content">%s</div>`, itineraryID, r.ItineraryHTML)
		if err := write(w, sb.String()); err != nil {
			return err
		}
		err := button.Button(button.Props{
			ID:    newPlanBtnID,
			Label: "Plan another trip",
			Attributes: map[string]string{
				"hx-post":   "/planner/new",
				"hx-target": "#" + plannerID,
				"hx-swap":   "outerHTML",
			},
		}).Render(ctx, w)
		if err != nil {
			return err
		}
		return write(w, `</section>`)
	})
}
