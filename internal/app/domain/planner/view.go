package planner

import (
	"strings"
	"time"

	"github.com/FACorreiaa/loci-planner/internal/app/formatter"
	"github.com/FACorreiaa/loci-planner/internal/app/models"
)

// FocusDelay lets the scroll back to the top settle before the city field
// takes focus.
const FocusDelay = 300 * time.Millisecond

// ViewState is one of the panel combinations the planner can show.
type ViewState int

const (
	// ViewInitial shows only the input panel.
	ViewInitial ViewState = iota
	// ViewError shows the input panel with the error panel next to it.
	ViewError
	// ViewResults shows only the results panel.
	ViewResults
)

func (v ViewState) String() string {
	switch v {
	case ViewError:
		return "error"
	case ViewResults:
		return "results"
	default:
		return "initial"
	}
}

// Visibility is which of the three panels are shown.
type Visibility struct {
	Input   bool
	Results bool
	Error   bool
}

func (v ViewState) Visibility() Visibility {
	switch v {
	case ViewError:
		return Visibility{Input: true, Error: true}
	case ViewResults:
		return Visibility{Results: true}
	default:
		return Visibility{Input: true}
	}
}

// ScrollTarget is where the browser should scroll after a swap.
type ScrollTarget string

const (
	ScrollNone    ScrollTarget = ""
	ScrollTop     ScrollTarget = "top"
	ScrollResults ScrollTarget = "results-section"
	ScrollError   ScrollTarget = "error-section"
)

// ResultView is the populated results panel.
type ResultView struct {
	City          string
	Interests     string
	ItineraryHTML string
}

// View is everything the components need to render the planner.
type View struct {
	State           ViewState
	City            string
	PendingInterest string
	Interests       []string
	Busy            bool
	ErrorMessage    string
	Result          *ResultView
	Scroll          ScrollTarget
	// FocusCityAfter is zero when focus should not move.
	FocusCityAfter time.Duration
}

func (v View) Visibility() Visibility {
	return v.State.Visibility()
}

func initialView(city, pending string, interests []string) View {
	return View{
		State:           ViewInitial,
		City:            city,
		PendingInterest: pending,
		Interests:       interests,
	}
}

// resetView is the "new plan" transition: empty fields, top of the page,
// focus on the city field once scrolling is done.
func resetView() View {
	return View{
		State:          ViewInitial,
		Interests:      []string{},
		Scroll:         ScrollTop,
		FocusCityAfter: FocusDelay,
	}
}

func errorView(city, pending string, interests []string, message string) View {
	return View{
		State:           ViewError,
		City:            city,
		PendingInterest: pending,
		Interests:       interests,
		ErrorMessage:    message,
		Scroll:          ScrollError,
	}
}

func resultsView(city string, interests []string, result *models.ItineraryResult) View {
	return View{
		State:     ViewResults,
		City:      city,
		Interests: interests,
		Result: &ResultView{
			City:          result.City,
			Interests:     strings.Join(result.Interests, ", "),
			ItineraryHTML: formatter.Format(result.Itinerary),
		},
		Scroll: ScrollResults,
	}
}
