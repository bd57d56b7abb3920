package planner

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/loci-planner/internal/app/handlers"
	"github.com/FACorreiaa/loci-planner/internal/app/middleware"
	"github.com/FACorreiaa/loci-planner/internal/app/models"
)

type testServer struct {
	router  *gin.Engine
	cookies []*http.Cookie
}

func newTestServer(client ItineraryClient) *testServer {
	gin.SetMode(gin.TestMode)

	h := NewHandler(handlers.NewBaseHandler(nil), NewController(client, nil, nil), NewSessionStore(time.Minute), nil, nil)

	r := gin.New()
	r.Use(middleware.Sessions("planner_session", "test-secret-0123456789"), middleware.VisitorSession())
	r.GET("/", h.ShowPlanner)
	r.POST("/planner/interests", h.AddInterest)
	r.DELETE("/planner/interests", h.RemoveInterest)
	r.POST("/planner/submit", h.Submit)
	r.POST("/planner/new", h.NewPlan)
	r.POST("/planner/error/dismiss", h.DismissError)

	return &testServer{router: r}
}

func (s *testServer) do(t *testing.T, method, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.Header.Set("HX-Request", "true")
	for _, c := range s.cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	if cookies := w.Result().Cookies(); len(cookies) > 0 {
		s.cookies = cookies
	}
	return w
}

func parse(t *testing.T, w *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(w.Body.String()))
	require.NoError(t, err)
	return doc
}

func tagsOf(doc *goquery.Document) []string {
	var tags []string
	doc.Find(".interest-tag").Each(func(_ int, s *goquery.Selection) {
		tag, _ := s.Attr("data-tag")
		tags = append(tags, tag)
	})
	return tags
}

func TestHandler_ShowPlannerFullPage(t *testing.T) {
	srv := newTestServer(new(MockItineraryClient))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	doc := parse(t, w)
	assert.Equal(t, "AI Travel Planner", doc.Find("title").Text())
	assert.Equal(t, 1, doc.Find("script[src*='htmx.org']").Length())
	assert.Equal(t, 1, doc.Find("#planner").Length())
	assert.NotEmpty(t, w.Result().Cookies(), "a visitor cookie is issued")
}

func TestHandler_InterestsFlow(t *testing.T) {
	srv := newTestServer(new(MockItineraryClient))
	srv.do(t, http.MethodGet, "/", nil)

	w := srv.do(t, http.MethodPost, "/planner/interests", url.Values{"interest": {"  Museums "}})
	require.Equal(t, http.StatusOK, w.Code)
	doc := parse(t, w)
	assert.Equal(t, []string{"museums"}, tagsOf(doc))
	val, _ := doc.Find("#interests-input").Attr("value")
	assert.Empty(t, val)

	srv.do(t, http.MethodPost, "/planner/interests", url.Values{"interest": {"MUSEUMS"}})
	w = srv.do(t, http.MethodPost, "/planner/interests", url.Values{"interest": {"street food"}})
	assert.Equal(t, []string{"museums", "street food"}, tagsOf(parse(t, w)))

	w = srv.do(t, http.MethodDelete, "/planner/interests?tag="+url.QueryEscape("museums"), nil)
	assert.Equal(t, []string{"street food"}, tagsOf(parse(t, w)))
}

func TestHandler_SessionsAreIsolated(t *testing.T) {
	client := new(MockItineraryClient)
	alice := newTestServer(client)
	alice.do(t, http.MethodPost, "/planner/interests", url.Values{"interest": {"art"}})

	bob := &testServer{router: alice.router}
	w := bob.do(t, http.MethodPost, "/planner/interests", url.Values{"interest": {"jazz"}})

	assert.Equal(t, []string{"jazz"}, tagsOf(parse(t, w)))
}

func TestHandler_SubmitValidationError(t *testing.T) {
	client := new(MockItineraryClient)
	srv := newTestServer(client)
	srv.do(t, http.MethodGet, "/", nil)

	w := srv.do(t, http.MethodPost, "/planner/submit", url.Values{"city": {""}})

	require.Equal(t, http.StatusOK, w.Code)
	doc := parse(t, w)
	assert.Equal(t, "Please enter a city name", doc.Find("#error-message").Text())
	style, _ := doc.Find("#error-section").Attr("style")
	assert.Equal(t, "display: block", style)
	assert.JSONEq(t, `{"planner:scroll":{"target":"error-section"}}`, w.Header().Get("HX-Trigger-After-Settle"))
	client.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestHandler_SubmitSuccess(t *testing.T) {
	client := new(MockItineraryClient)
	client.On("Generate", mock.Anything, models.ItineraryRequest{City: "Rome", Interests: []string{"art", "food"}}).
		Return(&sampleResult, nil).Once()
	srv := newTestServer(client)
	srv.do(t, http.MethodPost, "/planner/interests", url.Values{"interest": {"art"}})
	srv.do(t, http.MethodPost, "/planner/interests", url.Values{"interest": {"food"}})

	w := srv.do(t, http.MethodPost, "/planner/submit", url.Values{"city": {"Rome"}})

	require.Equal(t, http.StatusOK, w.Code)
	doc := parse(t, w)
	assert.Equal(t, "results", doc.Find("#planner").AttrOr("data-view", ""))
	assert.Equal(t, "Rome", doc.Find("#result-city").Text())
	assert.Equal(t, "Day 1", doc.Find("#itinerary-content h3").Text())
	assert.JSONEq(t, `{"planner:scroll":{"target":"results-section"}}`, w.Header().Get("HX-Trigger-After-Settle"))
	client.AssertExpectations(t)
}

func TestHandler_SubmitDroppedWhileInFlight(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})

	client := new(MockItineraryClient)
	client.On("Generate", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			close(started)
			<-release
		}).
		Return(&sampleResult, nil).Once()

	srv := newTestServer(client)
	srv.do(t, http.MethodPost, "/planner/interests", url.Values{"interest": {"art"}})

	done := make(chan int)
	go func() {
		req := httptest.NewRequest(http.MethodPost, "/planner/submit", strings.NewReader("city=Rome"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		for _, c := range srv.cookies {
			req.AddCookie(c)
		}
		w := httptest.NewRecorder()
		srv.router.ServeHTTP(w, req)
		done <- w.Code
	}()
	<-started

	w := srv.do(t, http.MethodPost, "/planner/submit", url.Values{"city": {"Rome"}})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "none", w.Header().Get("HX-Reswap"))

	close(release)
	assert.Equal(t, http.StatusOK, <-done)
	client.AssertNumberOfCalls(t, "Generate", 1)
}

func TestHandler_NewPlan(t *testing.T) {
	srv := newTestServer(new(MockItineraryClient))
	srv.do(t, http.MethodPost, "/planner/interests", url.Values{"interest": {"art"}})

	w := srv.do(t, http.MethodPost, "/planner/new", nil)

	require.Equal(t, http.StatusOK, w.Code)
	doc := parse(t, w)
	assert.Empty(t, tagsOf(doc))
	assert.Equal(t, "initial", doc.Find("#planner").AttrOr("data-view", ""))

	var events map[string]map[string]any
	require.NoError(t, json.Unmarshal([]byte(w.Header().Get("HX-Trigger-After-Settle")), &events))
	assert.Equal(t, "top", events["planner:scroll"]["target"])
	assert.Equal(t, "city", events["planner:focus"]["target"])
	assert.EqualValues(t, 300, events["planner:focus"]["delayMs"])
}

func TestHandler_DismissError(t *testing.T) {
	srv := newTestServer(new(MockItineraryClient))
	srv.do(t, http.MethodPost, "/planner/interests", url.Values{"interest": {"art"}})

	w := srv.do(t, http.MethodPost, "/planner/error/dismiss", url.Values{"city": {"Rome"}, "interest": {"fo"}})

	require.Equal(t, http.StatusOK, w.Code)
	doc := parse(t, w)
	style, _ := doc.Find("#error-section").Attr("style")
	assert.Equal(t, "display: none", style)
	assert.Equal(t, "Rome", doc.Find("#city").AttrOr("value", ""))
	assert.Equal(t, "fo", doc.Find("#interests-input").AttrOr("value", ""))
	assert.Equal(t, []string{"art"}, tagsOf(doc))
	assert.Empty(t, w.Header().Get("HX-Trigger-After-Settle"))
}
