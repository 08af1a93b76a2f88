package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/paddock-dev/paddock/pkg/router"
)

func okHandler(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(body)) //nolint:errcheck
	}
}

func TestNamedRoutes(t *testing.T) {
	r := router.New()
	r.Get("/horse/{id}", "listings.show", okHandler("show"))

	path, ok := r.Path("listings.show")
	if !ok || path != "/horse/{id}" {
		t.Fatalf("unexpected path: %q ok=%v", path, ok)
	}

	url, err := r.URL("listings.show", map[string]string{"id": "42"})
	if err != nil {
		t.Fatal(err)
	}
	if url != "/horse/42" {
		t.Errorf("unexpected url: %q", url)
	}

	if _, err := r.URL("listings.show", nil); err == nil {
		t.Error("expected error for missing params")
	}
	if _, err := r.URL("nope", nil); err == nil {
		t.Error("expected error for unknown route")
	}
}

func TestGroupPrefixAndMiddleware(t *testing.T) {
	var order []string
	tag := func(name string) router.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, req)
			})
		}
	}

	r := router.New()
	g := r.Group("/admin", tag("outer"))
	g.Get("/horses", "admin.horses", okHandler("list"), tag("inner"))

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/horses", nil))

	if rec.Code != http.StatusOK || rec.Body.String() != "list" {
		t.Fatalf("unexpected response: %d %q", rec.Code, rec.Body.String())
	}
	if len(order) != 2 || order[0] != "outer" || order[1] != "inner" {
		t.Errorf("middleware order: %v", order)
	}
}

func TestRoutesSnapshot(t *testing.T) {
	r := router.New()
	r.Get("/", "home", okHandler("home"))
	r.Post("/login", "auth.login", okHandler("login"))

	infos := r.Routes()
	if len(infos) != 2 {
		t.Fatalf("expected 2 routes, got %d", len(infos))
	}

	seen := map[string]string{}
	for _, ri := range infos {
		seen[ri.Name] = ri.Method + " " + ri.Path
	}
	if seen["home"] != "GET /" || seen["auth.login"] != "POST /login" {
		t.Errorf("unexpected routes: %v", seen)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	r := router.New()
	r.Post("/login", "auth.login", okHandler("login"))

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rec.Code)
	}
}
