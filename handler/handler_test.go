package handler

import (
	"Moments/config"
	"Moments/dao"
	"Moments/dao/cache"
	"Moments/middleware"
	"Moments/models"
	"Moments/pkg/database"
	"Moments/pkg/llm"
	"Moments/pkg/rocketmq"
	"Moments/pkg/response"
	"Moments/pkg/socket"
	"Moments/service"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/tidwall/gjson"
)

type testServer struct {
	t      *testing.T
	ctx    context.Context
	engine *gin.Engine
	users  *dao.Users
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.NewSQLite(fmt.Sprintf("file:api_%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := dao.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		_ = dao.DropAll(db)
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	mr := miniredis.RunT(t)
	rds := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rds.Close() })

	cfg := config.Default()
	cfg.App.BaseURL = "http://moments.test"
	cfg.Moments.AdminEmail = "admin@example.com"

	ctx := context.Background()
	storage := service.NewLocalStorage(t.TempDir(), cfg.App.BaseURL)
	users := dao.NewUsers(db)
	photoDAO := dao.NewPhotoDAO(db)
	tagDAO := dao.NewTagDAO(db)
	commentDAO := dao.NewCommentDAO(db)
	collectionDAO := dao.NewCollectionDAO(db)
	followDAO := dao.NewFollowDAO(db)
	outboxDAO := dao.NewMailOutboxDAO(db)
	lock := cache.NewActionLock(rds)
	hub := socket.NewHub()

	roles := service.NewRoleService(dao.NewRoleDAO(db))
	if err := roles.InitRole(ctx); err != nil {
		t.Fatalf("init role: %v", err)
	}
	avatars := &service.AvatarService{Config: cfg, Storage: storage}
	mail := &service.MailService{Config: cfg, OutboxDAO: outboxDAO}
	notifier := &service.NotificationService{
		Config:          cfg,
		NotificationDAO: dao.NewNotificationDAO(db),
		Unread:          cache.NewUnreadStorage(rds),
		Hub:             hub,
		Publisher:       rocketmq.NewPublisher(nil),
	}
	auth := &service.AuthService{Config: cfg, UserDAO: users, Roles: roles, Mail: mail, Avatars: avatars}
	userSvc := &service.UserService{
		Config: cfg, UserDAO: users, PhotoDAO: photoDAO, CollectionDAO: collectionDAO,
		FollowDAO: followDAO, Roles: roles, Mail: mail, Avatars: avatars, Storage: storage,
	}
	photos := &service.PhotoService{
		Config: cfg, PhotoDAO: photoDAO, TagDAO: tagDAO, CommentDAO: commentDAO,
		CollectionDAO: collectionDAO, UserDAO: users, Roles: roles, Storage: storage,
		Lock: lock, Suggester: llm.NewTagSuggester(cfg.LLM),
	}
	tags := &service.TagService{Config: cfg, TagDAO: tagDAO, PhotoDAO: photoDAO, UserDAO: users, Roles: roles, Storage: storage}
	comments := &service.CommentService{
		Config: cfg, CommentDAO: commentDAO, PhotoDAO: photoDAO, UserDAO: users,
		Roles: roles, Storage: storage, Lock: lock, Notifier: notifier,
	}
	authenticator := &middleware.Authenticator{Config: cfg, UserDAO: users}

	r := gin.New()
	(&Media{Storage: storage}).RegisterRouter(r)
	api := r.Group("/api")
	(&Auth{Authenticator: authenticator, AuthService: auth}).RegisterRouter(api)
	(&User{
		Authenticator: authenticator,
		Roles:         roles,
		UserService:   userSvc,
		FollowService: &service.FollowService{FollowDAO: followDAO, UserDAO: users, Notifier: notifier},
	}).RegisterRouter(api)
	(&Settings{Authenticator: authenticator, UserService: userSvc}).RegisterRouter(api)
	(&Photo{
		Config:        cfg,
		Authenticator: authenticator,
		Roles:         roles,
		PhotoService:  photos,
		CollectService: &service.CollectService{
			Config: cfg, CollectionDAO: collectionDAO, PhotoDAO: photoDAO, UserDAO: users,
			Storage: storage, Notifier: notifier,
		},
		TagService: tags,
	}).RegisterRouter(api)
	(&Comment{Authenticator: authenticator, Roles: roles, CommentService: comments}).RegisterRouter(api)
	(&Tag{TagService: tags}).RegisterRouter(api)
	(&Search{
		SearchService: &service.SearchService{Config: cfg, UserDAO: users, PhotoDAO: photoDAO, TagDAO: tagDAO, Storage: storage},
	}).RegisterRouter(api)
	(&Notification{Authenticator: authenticator, NotificationService: notifier, Hub: hub}).RegisterRouter(api)
	(&Admin{
		Authenticator: authenticator,
		Roles:         roles,
		AdminService: &service.AdminService{
			Config: cfg, UserDAO: users, PhotoDAO: photoDAO, TagDAO: tagDAO, CommentDAO: commentDAO,
			OutboxDAO: outboxDAO, Roles: roles, Comments: comments, Storage: storage,
		},
		PhotoService:   photos,
		CommentService: comments,
		TagService:     tags,
	}).RegisterRouter(api)

	return &testServer{
		t:      t,
		ctx:    ctx,
		engine: r,
		users:  users,
	}
}

// register 通过接口注册, 返回 access token
func (s *testServer) register(username string, confirmed bool) string {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"name":      username,
		"email":     username + "@example.com",
		"username":  username,
		"password":  "password123",
		"password2": "password123",
	})
	if w.Code != http.StatusCreated {
		s.t.Fatalf("register %s: %d %s", username, w.Code, w.Body.String())
	}
	if confirmed {
		user, err := s.users.FindByUsername(s.ctx, username)
		if err != nil {
			s.t.Fatalf("find %s: %v", username, err)
		}
		if err := s.users.UpdateById(s.ctx, user.ID, map[string]any{"confirmed": true}); err != nil {
			s.t.Fatalf("confirm %s: %v", username, err)
		}
	}
	return gjson.Get(w.Body.String(), "data.access_token").String()
}

func (s *testServer) user(username string) *models.User {
	s.t.Helper()
	user, err := s.users.FindByUsername(s.ctx, username)
	if err != nil {
		s.t.Fatalf("find %s: %v", username, err)
	}
	return user
}

func (s *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			s.t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return s.serve(req, token)
}

func (s *testServer) serve(req *http.Request, token string) *httptest.ResponseRecorder {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

// upload 上传一张 png, 返回照片 ID
func (s *testServer) upload(token, description string) int64 {
	s.t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "photo.png")
	if err != nil {
		s.t.Fatalf("create form file: %v", err)
	}
	img := image.NewRGBA(image.Rect(0, 0, 40, 30))
	for x := 0; x < 40; x++ {
		for y := 0; y < 30; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: uint8(x * 5), B: 80, A: 255})
		}
	}
	if err := png.Encode(fw, img); err != nil {
		s.t.Fatalf("encode png: %v", err)
	}
	_ = mw.WriteField("description", description)
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/photos", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := s.serve(req, token)
	if w.Code != http.StatusCreated {
		s.t.Fatalf("upload: %d %s", w.Code, w.Body.String())
	}
	return gjson.Get(w.Body.String(), "data.id").Int()
}

func TestBizErrorMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{service.ErrNotFound, http.StatusNotFound},
		{fmt.Errorf("load: %w", service.ErrPermissionDenied), http.StatusForbidden},
		{service.ErrInvalidCredentials, http.StatusUnauthorized},
		{service.ErrTooFrequent, http.StatusTooManyRequests},
		{service.ErrFileTooLarge, http.StatusRequestEntityTooLarge},
	}
	for _, tc := range cases {
		var be *response.BizError
		if !errors.As(bizError(tc.err), &be) {
			t.Fatalf("bizError(%v) should be a BizError", tc.err)
		}
		if be.Code != tc.status {
			t.Fatalf("bizError(%v) status = %d, want %d", tc.err, be.Code, tc.status)
		}
	}

	plain := fmt.Errorf("boom")
	if got := bizError(plain); got != plain {
		t.Fatalf("unknown error should pass through, got %v", got)
	}
}

func TestRegisterLoginAndMe(t *testing.T) {
	s := newTestServer(t)
	token := s.register("alice", false)
	if token == "" {
		t.Fatalf("register should issue an access token")
	}

	w := s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"email": "ALICE@example.com", "password": "password123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login: %d %s", w.Code, w.Body.String())
	}
	if gjson.Get(w.Body.String(), "data.token_type").String() != "Bearer" {
		t.Fatalf("unexpected login body %s", w.Body.String())
	}

	w = s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"email": "alice@example.com", "password": "wrong-password",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password: %d", w.Code)
	}

	w = s.do(http.MethodGet, "/api/v1/users/me", token, nil)
	body := w.Body.String()
	if w.Code != http.StatusOK || gjson.Get(body, "data.username").String() != "alice" {
		t.Fatalf("me: %d %s", w.Code, body)
	}
	if gjson.Get(body, "data.confirmed").Bool() {
		t.Fatalf("new account should not be confirmed")
	}
	if gjson.Get(body, "data.role").String() != models.RoleUser {
		t.Fatalf("role = %s", gjson.Get(body, "data.role").String())
	}

	if w := s.do(http.MethodGet, "/api/v1/users/me", "", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous me: %d", w.Code)
	}
	if w := s.do(http.MethodGet, "/api/v1/users/me", "not-a-token", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("bad token me: %d", w.Code)
	}

	dup := s.do(http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"name": "x", "email": "alice@example.com", "username": "alice2",
		"password": "password123", "password2": "password123",
	})
	if dup.Code != http.StatusBadRequest {
		t.Fatalf("duplicate email: %d %s", dup.Code, dup.Body.String())
	}
}

func TestConfirmGate(t *testing.T) {
	s := newTestServer(t)
	unconfirmed := s.register("alice", false)
	s.register("bob", true)

	w := s.do(http.MethodPost, "/api/v1/users/bob/follow", unconfirmed, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("unconfirmed follow: %d %s", w.Code, w.Body.String())
	}
	if gjson.Get(w.Body.String(), "code").Int() != http.StatusForbidden {
		t.Fatalf("body code mismatch: %s", w.Body.String())
	}
}

func TestFollowAlreadyFollowed(t *testing.T) {
	s := newTestServer(t)
	alice := s.register("alice", true)
	s.register("bob", true)

	w := s.do(http.MethodPost, "/api/v1/users/bob/follow", alice, nil)
	if w.Code != http.StatusOK || !gjson.Get(w.Body.String(), "data.changed").Bool() {
		t.Fatalf("first follow: %d %s", w.Code, w.Body.String())
	}
	w = s.do(http.MethodPost, "/api/v1/users/bob/follow", alice, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("second follow: %d", w.Code)
	}
	if gjson.Get(w.Body.String(), "msg").String() != "Already followed." || gjson.Get(w.Body.String(), "data.changed").Bool() {
		t.Fatalf("second follow body %s", w.Body.String())
	}

	w = s.do(http.MethodGet, "/api/v1/users/bob", alice, nil)
	body := w.Body.String()
	if gjson.Get(body, "data.follower_count").Int() != 1 || !gjson.Get(body, "data.is_following").Bool() {
		t.Fatalf("profile after follow %s", body)
	}

	w = s.do(http.MethodGet, "/api/v1/users/bob/followers", "", nil)
	if gjson.Get(w.Body.String(), "data.items.#").Int() != 1 ||
		gjson.Get(w.Body.String(), "data.items.0.username").String() != "alice" {
		t.Fatalf("followers %s", w.Body.String())
	}

	w = s.do(http.MethodDelete, "/api/v1/users/bob/follow", alice, nil)
	if w.Code != http.StatusOK || !gjson.Get(w.Body.String(), "data.changed").Bool() {
		t.Fatalf("unfollow: %d %s", w.Code, w.Body.String())
	}
	w = s.do(http.MethodDelete, "/api/v1/users/bob/follow", alice, nil)
	if gjson.Get(w.Body.String(), "msg").String() != "Not follow yet." {
		t.Fatalf("second unfollow %s", w.Body.String())
	}

	if w := s.do(http.MethodPost, "/api/v1/users/nobody/follow", alice, nil); w.Code != http.StatusNotFound {
		t.Fatalf("follow unknown user: %d", w.Code)
	}
}

func TestPhotoUploadShowAndMedia(t *testing.T) {
	s := newTestServer(t)
	alice := s.register("alice", true)
	bob := s.register("bob", true)

	id := s.upload(alice, "sunset")
	w := s.do(http.MethodGet, fmt.Sprintf("/api/v1/photos/%d", id), "", nil)
	body := w.Body.String()
	if w.Code != http.StatusOK || gjson.Get(body, "data.description").String() != "sunset" {
		t.Fatalf("show: %d %s", w.Code, body)
	}
	if gjson.Get(body, "data.can_edit").Bool() {
		t.Fatalf("anonymous viewer cannot edit")
	}
	imageURL := gjson.Get(body, "data.url_s").String()
	if !strings.HasPrefix(imageURL, "http://moments.test/images/") {
		t.Fatalf("unexpected image url %q", imageURL)
	}

	img := s.do(http.MethodGet, strings.TrimPrefix(imageURL, "http://moments.test"), "", nil)
	if img.Code != http.StatusOK || img.Header().Get("Content-Type") != "image/png" {
		t.Fatalf("media: %d %q", img.Code, img.Header().Get("Content-Type"))
	}
	if w := s.do(http.MethodGet, "/images/missing.png", "", nil); w.Code != http.StatusNotFound {
		t.Fatalf("missing media: %d", w.Code)
	}

	// 只有作者能修改描述
	path := fmt.Sprintf("/api/v1/photos/%d/description", id)
	if w := s.do(http.MethodPut, path, bob, map[string]any{"description": "mine"}); w.Code != http.StatusForbidden {
		t.Fatalf("edit by other: %d", w.Code)
	}
	if w := s.do(http.MethodPut, path, alice, map[string]any{"description": "sunrise"}); w.Code != http.StatusOK {
		t.Fatalf("edit by author: %d %s", w.Code, w.Body.String())
	}

	w = s.do(http.MethodPost, fmt.Sprintf("/api/v1/photos/%d/collect", id), bob, nil)
	if w.Code != http.StatusOK || !gjson.Get(w.Body.String(), "data.changed").Bool() {
		t.Fatalf("collect: %d %s", w.Code, w.Body.String())
	}
	w = s.do(http.MethodPost, fmt.Sprintf("/api/v1/photos/%d/collect", id), bob, nil)
	if gjson.Get(w.Body.String(), "msg").String() != "Already collected." {
		t.Fatalf("second collect %s", w.Body.String())
	}
	w = s.do(http.MethodGet, fmt.Sprintf("/api/v1/photos/%d/collectors/count", id), "", nil)
	if gjson.Get(w.Body.String(), "data.count").Int() != 1 {
		t.Fatalf("collectors count %s", w.Body.String())
	}

	w = s.do(http.MethodGet, fmt.Sprintf("/api/v1/photos/%d/share", id), "", nil)
	code := gjson.Get(w.Body.String(), "data.code").String()
	if code == "" {
		t.Fatalf("share: %s", w.Body.String())
	}
	w = s.do(http.MethodGet, "/api/v1/photos/share/"+code, "", nil)
	if gjson.Get(w.Body.String(), "data.id").Int() != id {
		t.Fatalf("by share code %s", w.Body.String())
	}

	if w := s.do(http.MethodGet, "/api/v1/photos/9999", "", nil); w.Code != http.StatusNotFound {
		t.Fatalf("missing photo: %d", w.Code)
	}
	if w := s.do(http.MethodGet, "/api/v1/photos/abc", "", nil); w.Code != http.StatusBadRequest {
		t.Fatalf("bad id: %d", w.Code)
	}
}

func TestTagsAndCommentsOverHTTP(t *testing.T) {
	s := newTestServer(t)
	alice := s.register("alice", true)
	bob := s.register("bob", true)
	id := s.upload(alice, "")

	w := s.do(http.MethodPost, fmt.Sprintf("/api/v1/photos/%d/tags", id), alice, map[string]any{"tags": "sea sky sea"})
	if w.Code != http.StatusOK || gjson.Get(w.Body.String(), "data.#").Int() != 2 {
		t.Fatalf("add tags: %d %s", w.Code, w.Body.String())
	}
	tagID := gjson.Get(w.Body.String(), "data.0.id").Int()

	w = s.do(http.MethodGet, fmt.Sprintf("/api/v1/tags/%d?order=by_collects", tagID), "", nil)
	if gjson.Get(w.Body.String(), "data.tag.name").String() != "sea" ||
		gjson.Get(w.Body.String(), "data.photos.items.#").Int() != 1 {
		t.Fatalf("tag show %s", w.Body.String())
	}

	w = s.do(http.MethodDelete, fmt.Sprintf("/api/v1/photos/%d/tags/%d", id, tagID), alice, nil)
	if w.Code != http.StatusOK || !gjson.Get(w.Body.String(), "data.tag_removed").Bool() {
		t.Fatalf("remove tag %d %s", w.Code, w.Body.String())
	}

	w = s.do(http.MethodPost, fmt.Sprintf("/api/v1/photos/%d/comments", id), bob, map[string]any{"body": "nice"})
	if w.Code != http.StatusCreated {
		t.Fatalf("comment: %d %s", w.Code, w.Body.String())
	}
	commentID := gjson.Get(w.Body.String(), "data.id").Int()

	w = s.do(http.MethodPost, fmt.Sprintf("/api/v1/comments/%d/reply", commentID), alice, map[string]any{"body": "thanks"})
	if w.Code != http.StatusCreated || gjson.Get(w.Body.String(), "data.replied_id").Int() != commentID {
		t.Fatalf("reply: %d %s", w.Code, w.Body.String())
	}

	w = s.do(http.MethodGet, fmt.Sprintf("/api/v1/photos/%d/comments", id), "", nil)
	if gjson.Get(w.Body.String(), "data.pagination.total").Int() != 2 {
		t.Fatalf("comments list %s", w.Body.String())
	}

	// 关闭评论后不能再评论
	w = s.do(http.MethodPost, fmt.Sprintf("/api/v1/photos/%d/set-comment", id), alice, nil)
	if gjson.Get(w.Body.String(), "data.state").Bool() {
		t.Fatalf("set-comment should disable comments: %s", w.Body.String())
	}
	w = s.do(http.MethodPost, fmt.Sprintf("/api/v1/photos/%d/comments", id), bob, map[string]any{"body": "again"})
	if w.Code != http.StatusForbidden {
		t.Fatalf("comment on disabled photo: %d", w.Code)
	}

	// bob 是评论作者, 删除评论连同回复
	if w := s.do(http.MethodDelete, fmt.Sprintf("/api/v1/comments/%d", commentID), bob, nil); w.Code != http.StatusOK {
		t.Fatalf("delete comment: %d %s", w.Code, w.Body.String())
	}
	w = s.do(http.MethodGet, fmt.Sprintf("/api/v1/photos/%d/comments", id), "", nil)
	if gjson.Get(w.Body.String(), "data.pagination.total").Int() != 0 {
		t.Fatalf("comments after delete %s", w.Body.String())
	}

	w = s.do(http.MethodGet, "/api/v1/notifications/count", alice, nil)
	if gjson.Get(w.Body.String(), "data.count").Int() != 1 {
		t.Fatalf("alice unread %s", w.Body.String())
	}
	w = s.do(http.MethodPost, "/api/v1/notifications/read-all", alice, nil)
	if w.Code != http.StatusOK || gjson.Get(w.Body.String(), "data.count").Int() != 1 {
		t.Fatalf("read-all %d %s", w.Code, w.Body.String())
	}
	w = s.do(http.MethodGet, "/api/v1/notifications?filter=unread", alice, nil)
	if gjson.Get(w.Body.String(), "data.items.#").Int() != 0 {
		t.Fatalf("unread after read-all %s", w.Body.String())
	}
}

func TestBlockedAndAdminGates(t *testing.T) {
	s := newTestServer(t)
	admin := s.register("admin", true)
	alice := s.register("alice", true)

	if w := s.do(http.MethodGet, "/api/v1/admin/dashboard", alice, nil); w.Code != http.StatusForbidden {
		t.Fatalf("user dashboard: %d", w.Code)
	}
	w := s.do(http.MethodGet, "/api/v1/admin/dashboard", admin, nil)
	if w.Code != http.StatusOK || gjson.Get(w.Body.String(), "data.user_count").Int() != 2 {
		t.Fatalf("admin dashboard: %d %s", w.Code, w.Body.String())
	}

	target := s.user("alice")
	if w := s.do(http.MethodPost, fmt.Sprintf("/api/v1/admin/users/%d/block", target.ID), admin, nil); w.Code != http.StatusOK {
		t.Fatalf("block: %d %s", w.Code, w.Body.String())
	}
	if w := s.do(http.MethodGet, "/api/v1/users/me", alice, nil); w.Code != http.StatusForbidden {
		t.Fatalf("blocked user me: %d", w.Code)
	}
	w = s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]any{"email": "alice@example.com", "password": "password123"})
	if w.Code != http.StatusForbidden {
		t.Fatalf("blocked login: %d", w.Code)
	}

	self := s.user("admin")
	if w := s.do(http.MethodPost, fmt.Sprintf("/api/v1/admin/users/%d/lock", self.ID), admin, nil); w.Code != http.StatusForbidden {
		t.Fatalf("lock administrator: %d", w.Code)
	}

	w = s.do(http.MethodGet, "/api/v1/admin/manage/users?filter=blocked", admin, nil)
	if gjson.Get(w.Body.String(), "data.items.#").Int() != 1 {
		t.Fatalf("manage blocked users %s", w.Body.String())
	}
}

func TestSearchAndSettings(t *testing.T) {
	s := newTestServer(t)
	alice := s.register("alice", true)
	s.upload(alice, "mountain lake")

	if w := s.do(http.MethodGet, "/api/v1/search?q=", "", nil); w.Code != http.StatusBadRequest {
		t.Fatalf("empty query: %d", w.Code)
	}
	w := s.do(http.MethodGet, "/api/v1/search?q=lake", "", nil)
	if gjson.Get(w.Body.String(), "data.category").String() != "photo" ||
		gjson.Get(w.Body.String(), "data.photos.#").Int() != 1 {
		t.Fatalf("search photo %s", w.Body.String())
	}
	w = s.do(http.MethodGet, "/api/v1/search?q=ali&category=user", "", nil)
	if gjson.Get(w.Body.String(), "data.users.0.username").String() != "alice" {
		t.Fatalf("search user %s", w.Body.String())
	}

	w = s.do(http.MethodPut, "/api/v1/settings/privacy", alice, map[string]any{"public_collections": false})
	if w.Code != http.StatusOK {
		t.Fatalf("privacy: %d %s", w.Code, w.Body.String())
	}
	s.register("bob", true)
	if w := s.do(http.MethodGet, "/api/v1/users/alice/collections", "", nil); w.Code != http.StatusForbidden {
		t.Fatalf("private collections anonymous: %d", w.Code)
	}
	if w := s.do(http.MethodGet, "/api/v1/users/alice/collections", alice, nil); w.Code != http.StatusOK {
		t.Fatalf("private collections owner: %d", w.Code)
	}

	w = s.do(http.MethodPut, "/api/v1/settings/password", alice, map[string]any{
		"old_password": "nope", "password": "newpassword1", "password2": "newpassword1",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("wrong old password: %d", w.Code)
	}

	w = s.do(http.MethodDelete, "/api/v1/settings/account", alice, map[string]any{"username": "bob"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("delete with wrong username: %d", w.Code)
	}
	w = s.do(http.MethodDelete, "/api/v1/settings/account", alice, map[string]any{"username": "alice"})
	if w.Code != http.StatusOK {
		t.Fatalf("delete account: %d %s", w.Code, w.Body.String())
	}
	if w := s.do(http.MethodGet, "/api/v1/users/alice", "", nil); w.Code != http.StatusNotFound {
		t.Fatalf("deleted profile: %d", w.Code)
	}
}
