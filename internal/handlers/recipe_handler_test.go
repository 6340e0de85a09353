package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func searchRecipes(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := &Handler{}
	r.POST("/api/recipes/search", h.SearchRecipes)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/recipes/search", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestSearchRecipes_BlankQuery(t *testing.T) {
	// Validation runs before any database access, so no collection is needed.
	for _, body := range []string{`{"query":"   "}`, `{"query":""}`, `{}`} {
		w := searchRecipes(t, body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", body, w.Code)
		}
		if !strings.Contains(w.Body.String(), "Search query is required") {
			t.Errorf("body %s: response = %s", body, w.Body.String())
		}
	}
}

func TestSearchRecipes_MalformedBody(t *testing.T) {
	w := searchRecipes(t, `{"query":`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestBuildRecipeSearchFilter(t *testing.T) {
	filter := buildRecipeSearchFilter("  chicken soup  ", []string{"vegetarian", "low_sodium"})

	or, ok := filter["$or"].([]bson.M)
	if !ok || len(or) != 3 {
		t.Fatalf("$or = %#v, want 3 field regexes", filter["$or"])
	}
	re, ok := or[0]["title"].(primitive.Regex)
	if !ok {
		t.Fatalf("title clause is not a regex: %#v", or[0])
	}
	if re.Pattern != "chicken soup" {
		t.Errorf("pattern = %q, want trimmed query", re.Pattern)
	}
	if re.Options != "i" {
		t.Errorf("options = %q, want case-insensitive", re.Options)
	}

	if filter["vegetarian"] != true {
		t.Error("vegetarian flag not applied")
	}
	if filter["low_sodium"] != true {
		t.Error("low_sodium flag not applied")
	}
}

func TestBuildRecipeSearchFilter_EscapesRegexMeta(t *testing.T) {
	filter := buildRecipeSearchFilter("mac & cheese (classic)", nil)
	re := filter["$or"].([]bson.M)[0]["title"].(primitive.Regex)
	if re.Pattern != `mac & cheese \(classic\)` {
		t.Errorf("pattern = %q, metacharacters should be escaped", re.Pattern)
	}
}

func TestBuildRecipeSearchFilter_UnknownFlagsIgnored(t *testing.T) {
	filter := buildRecipeSearchFilter("soup", []string{"password", "$where", "vegetarian"})
	if _, ok := filter["password"]; ok {
		t.Error("unknown flag leaked into the filter")
	}
	if _, ok := filter["$where"]; ok {
		t.Error("operator-looking flag leaked into the filter")
	}
	if filter["vegetarian"] != true {
		t.Error("known flag dropped")
	}
}
