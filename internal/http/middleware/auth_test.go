package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/meuprecocerto/precificacao/internal/model"
)

type stubParser struct {
	principal model.Principal
	token     string
}

func (s stubParser) Parse(raw string) (model.Principal, error) {
	if raw != s.token {
		return model.Principal{}, errors.New("bad token")
	}
	return s.principal, nil
}

func newRouter(parser TokenParser) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Auth(parser))
	r.GET("/me", func(c *gin.Context) {
		p, ok := MustPrincipal(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, p.UserID.String())
	})
	return r
}

func TestAuth(t *testing.T) {
	principal := model.Principal{UserID: uuid.New(), Role: model.RoleAdmin}
	router := newRouter(stubParser{principal: principal, token: "good"})

	cases := []struct {
		name   string
		header string
		query  string
		status int
	}{
		{name: "bearer header", header: "Bearer good", status: http.StatusOK},
		{name: "lowercase scheme", header: "bearer good", status: http.StatusOK},
		{name: "query token", query: "?access_token=good", status: http.StatusOK},
		{name: "missing", status: http.StatusUnauthorized},
		{name: "invalid", header: "Bearer bad", status: http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me"+tc.query, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, w.Code)
			}
			if tc.status == http.StatusOK && w.Body.String() != principal.UserID.String() {
				t.Fatalf("unexpected body %q", w.Body.String())
			}
		})
	}
}
