package ads

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
)

func TestFilterUnpublished(t *testing.T) {
	var gotAuth, gotBody, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.RawQuery
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		io.WriteString(w, `{
			"responseHeader": {"status": 0},
			"response": {"docs": [{"bibcode": "2012ivoa.spec.0411B"}]}
		}`)
	}))
	defer srv.Close()

	client := NewClient("sekrit", WithEndpoint(srv.URL))
	got, err := client.FilterUnpublished(context.Background(),
		[]string{"2012ivoa.spec.0411B", "2014ivoa.spec.0307J"})
	if err != nil {
		t.Fatalf("FilterUnpublished() error: %v", err)
	}

	if want := []string{"2014ivoa.spec.0307J"}; !reflect.DeepEqual(got, want) {
		t.Errorf("FilterUnpublished() = %v, want %v", got, want)
	}
	if gotAuth != "Bearer:sekrit" {
		t.Errorf("Authorization = %q, want Bearer:sekrit", gotAuth)
	}
	if gotBody != "bibcode\n2012ivoa.spec.0411B\n2014ivoa.spec.0307J" {
		t.Errorf("request body = %q", gotBody)
	}
	for _, param := range []string{"q=%2A%3A%2A", "fl=bibcode", "rows=1000", "wt=json"} {
		if !strings.Contains(gotQuery, param) {
			t.Errorf("query %q should contain %q", gotQuery, param)
		}
	}
}

func TestFilterUnpublished_NonZeroStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"responseHeader": {"status": 7}, "response": {"docs": []}}`)
	}))
	defer srv.Close()

	_, err := NewClient("tok", WithEndpoint(srv.URL)).
		FilterUnpublished(context.Background(), []string{"x"})
	if err == nil {
		t.Fatal("FilterUnpublished() should fail on non-zero status")
	}
	if !IsExternal(err) {
		t.Errorf("error should be external, got %v", err)
	}
}

func TestFilterUnpublished_AuthFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := NewClient("bad", WithEndpoint(srv.URL)).
		FilterUnpublished(context.Background(), []string{"x"})
	if !errors.Is(err, ErrAuth) {
		t.Errorf("error should wrap ErrAuth, got %v", err)
	}
}

func TestFilterUnpublished_UnparseableResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "this is not JSON")
	}))
	defer srv.Close()

	_, err := NewClient("tok", WithEndpoint(srv.URL)).
		FilterUnpublished(context.Background(), []string{"x"})
	if !IsExternal(err) {
		t.Errorf("error should be external, got %v", err)
	}
}
