package context

import (
	"Moments/models"
	"Moments/pkg/response"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/tidwall/gjson"
)

func serve(h func(*gin.Context) error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", Wrap(h))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	return w
}

func TestWrap(t *testing.T) {
	w := serve(func(c *gin.Context) error {
		return response.NewError(http.StatusNotFound, "Photo not found.")
	})
	if w.Code != http.StatusNotFound || gjson.Get(w.Body.String(), "msg").String() != "Photo not found." {
		t.Fatalf("biz error: %d %s", w.Code, w.Body.String())
	}

	w = serve(func(c *gin.Context) error {
		return errors.New("db down")
	})
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}

	w = serve(func(c *gin.Context) error {
		c.String(http.StatusAccepted, "done")
		return errors.New("late")
	})
	if w.Code != http.StatusAccepted {
		t.Fatalf("written response should be kept, got %d", w.Code)
	}
}

func TestCurrentUser(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if CurrentUser(c) != nil {
		t.Fatalf("anonymous request should have no user")
	}
	if _, err := GetUserID(c); err == nil {
		t.Fatalf("expected error without user id")
	}

	c.Set(CtxUserID, uint64(3))
	c.Set(CtxUser, &models.User{ID: 3})
	if uid, err := GetUserID(c); err != nil || uid != 3 {
		t.Fatalf("uid=%d err=%v", uid, err)
	}
	if u := CurrentUser(c); u == nil || u.ID != 3 {
		t.Fatalf("unexpected user %+v", u)
	}
}
