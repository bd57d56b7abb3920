package planner

import (
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"

	"github.com/FACorreiaa/loci-planner/internal/app/models"
)

var sampleResult = models.ItineraryResult{
	City:      "Rome",
	Interests: []string{"art", "food"},
	Itinerary: "### Day 1\n**Visit** the *Colosseum*\n\n<script>alert(1)</script>",
}

func renderDoc(t *testing.T, c templ.Component) *goquery.Document {
	t.Helper()
	var sb strings.Builder
	if err := c.Render(context.Background(), &sb); err != nil {
		t.Fatalf("failed to render component: %v", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(sb.String()))
	if err != nil {
		t.Fatalf("failed to read rendered HTML: %v", err)
	}
	return doc
}

func styleOf(doc *goquery.Document, selector string) string {
	style, _ := doc.Find(selector).Attr("style")
	return style
}

func TestPlanner(t *testing.T) {
	t.Run("initial view shows only the input panel", func(t *testing.T) {
		doc := renderDoc(t, Planner(initialView("", "", []string{})))

		if view, _ := doc.Find("#planner").Attr("data-view"); view != "initial" {
			t.Errorf(`expected data-view "initial", got "%s"`, view)
		}
		if got := styleOf(doc, "#input-section"); got != "display: block" {
			t.Errorf("expected input section visible, got %q", got)
		}
		if got := styleOf(doc, "#error-section"); got != "display: none" {
			t.Errorf("expected error section hidden, got %q", got)
		}
		if got := styleOf(doc, "#results-section"); got != "display: none" {
			t.Errorf("expected results section hidden, got %q", got)
		}
		if doc.Find(".interest-tag").Length() != 0 {
			t.Error("expected no interest tags")
		}
	})

	t.Run("error view shows input and error panels", func(t *testing.T) {
		doc := renderDoc(t, Planner(errorView("Rome", "", []string{"art"}, "City not found")))

		if got := styleOf(doc, "#input-section"); got != "display: block" {
			t.Errorf("expected input section visible, got %q", got)
		}
		if got := styleOf(doc, "#error-section"); got != "display: block" {
			t.Errorf("expected error section visible, got %q", got)
		}
		if got := doc.Find("#error-message").Text(); got != "City not found" {
			t.Errorf(`expected error message "City not found", got "%s"`, got)
		}
		if val, _ := doc.Find("#city").Attr("value"); val != "Rome" {
			t.Errorf(`expected city field to keep "Rome", got "%s"`, val)
		}
	})

	t.Run("results view renders formatted itinerary", func(t *testing.T) {
		v := resultsView("Rome", []string{"art", "food"}, &sampleResult)
		doc := renderDoc(t, Planner(v))

		if got := styleOf(doc, "#input-section"); got != "display: none" {
			t.Errorf("expected input section hidden, got %q", got)
		}
		if got := styleOf(doc, "#results-section"); got != "display: block" {
			t.Errorf("expected results section visible, got %q", got)
		}
		if got := doc.Find("#result-city").Text(); got != "Rome" {
			t.Errorf(`expected result city "Rome", got "%s"`, got)
		}
		if got := doc.Find("#result-interests").Text(); got != "art, food" {
			t.Errorf(`expected result interests "art, food", got "%s"`, got)
		}
		content := doc.Find("#itinerary-content")
		if content.Find("h3").Text() != "Day 1" {
			t.Errorf(`expected h3 "Day 1", got "%s"`, content.Find("h3").Text())
		}
		if content.Find("strong").Text() != "Visit" {
			t.Errorf(`expected strong "Visit", got "%s"`, content.Find("strong").Text())
		}
		if content.Find("em").Text() != "Colosseum" {
			t.Errorf(`expected em "Colosseum", got "%s"`, content.Find("em").Text())
		}
		if content.Find("script").Length() != 0 {
			t.Error("itinerary markup must not contain script elements")
		}
	})

	t.Run("busy view disables the generate button", func(t *testing.T) {
		v := initialView("Rome", "", []string{"art"})
		v.Busy = true
		doc := renderDoc(t, Planner(v))

		btn := doc.Find("#generate-btn")
		if _, ok := btn.Attr("disabled"); !ok {
			t.Error("expected generate button to be disabled")
		}
		if btn.Find(".spinner").Length() != 1 {
			t.Error("expected a spinner inside the busy button")
		}
	})

	t.Run("submitting shows the spinner and hides a stale error", func(t *testing.T) {
		doc := renderDoc(t, Planner(errorView("Rome", "", []string{"art"}, "City not found")))

		form := doc.Find("#itinerary-form")
		if got, _ := form.Attr("hx-indicator"); got != "#generate-btn" {
			t.Errorf(`expected hx-indicator "#generate-btn", got "%s"`, got)
		}
		if got, _ := form.Attr("hx-disabled-elt"); got != "#generate-btn" {
			t.Errorf(`expected hx-disabled-elt "#generate-btn", got "%s"`, got)
		}
		onRequest, ok := form.Attr("hx-on::before-request")
		if !ok {
			t.Fatal("expected a before-request handler on the form")
		}
		if !strings.Contains(onRequest, "error-section") || !strings.Contains(onRequest, "display = 'none'") {
			t.Errorf("expected the handler to hide the error panel, got %q", onRequest)
		}
	})

	t.Run("city value is escaped", func(t *testing.T) {
		doc := renderDoc(t, Planner(initialView(`"><script>x</script>`, "", []string{})))

		if doc.Find("script").Length() != 0 {
			t.Error("expected city value to be escaped")
		}
		if val, _ := doc.Find("#city").Attr("value"); val != `"><script>x</script>` {
			t.Errorf("expected raw value to round trip, got %q", val)
		}
	})
}

func TestInterestField(t *testing.T) {
	doc := renderDoc(t, InterestField(initialView("", "", []string{"art", `rock "n" roll`})))

	tags := doc.Find("#interests-tags .interest-tag")
	if tags.Length() != 2 {
		t.Fatalf("expected 2 tags, got %d", tags.Length())
	}

	second := tags.Eq(1)
	if tag, _ := second.Attr("data-tag"); tag != `rock "n" roll` {
		t.Errorf("expected data-tag to hold the tag, got %q", tag)
	}
	remove := second.Find("button.tag-remove")
	if remove.Length() != 1 {
		t.Fatal("expected a remove button per tag")
	}
	if vals, _ := remove.Attr("hx-vals"); vals != `{"tag":"rock \"n\" roll"}` {
		t.Errorf("expected remove button bound to its tag, got %q", vals)
	}
	if method, _ := remove.Attr("hx-delete"); method != "/planner/interests" {
		t.Errorf(`expected hx-delete "/planner/interests", got "%s"`, method)
	}

	input := doc.Find("#interests-input")
	if trigger, _ := input.Attr("hx-trigger"); !strings.Contains(trigger, "Enter") {
		t.Errorf("expected the interest field to submit on Enter, got %q", trigger)
	}
	if val, _ := input.Attr("value"); val != "" {
		t.Errorf("expected empty interest field, got %q", val)
	}
}
