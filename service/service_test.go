package service

import (
	"Moments/config"
	"Moments/dao"
	"Moments/dao/cache"
	"Moments/models"
	"Moments/pkg/database"
	"Moments/pkg/llm"
	"Moments/pkg/mailer"
	"Moments/pkg/socket"
	"Moments/types"
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type recordPublisher struct {
	mu     sync.Mutex
	events [][]byte
}

func (p *recordPublisher) Publish(_ context.Context, _ string, body []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, body)
	return nil
}

func (p *recordPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

type fixture struct {
	ctx       context.Context
	cfg       *config.Config
	db        *gorm.DB
	mr        *miniredis.Miniredis
	root      string
	storage   *LocalStorage
	publisher *recordPublisher

	userDAO   *dao.Users
	outboxDAO *dao.MailOutboxDAO

	roles    *RoleService
	notifier *NotificationService
	mail     *MailService
	auth     *AuthService
	users    *UserService
	follow   *FollowService
	collect  *CollectService
	photos   *PhotoService
	tags     *TagService
	comments *CommentService
	admin    *AdminService
	search   *SearchService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.NewSQLite(fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", name))
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

	root := t.TempDir()
	f := &fixture{
		ctx:       context.Background(),
		cfg:       cfg,
		db:        db,
		mr:        mr,
		root:      root,
		storage:   NewLocalStorage(root, cfg.App.BaseURL),
		publisher: &recordPublisher{},
		userDAO:   dao.NewUsers(db),
		outboxDAO: dao.NewMailOutboxDAO(db),
	}

	photoDAO := dao.NewPhotoDAO(db)
	tagDAO := dao.NewTagDAO(db)
	commentDAO := dao.NewCommentDAO(db)
	collectionDAO := dao.NewCollectionDAO(db)
	followDAO := dao.NewFollowDAO(db)
	lock := cache.NewActionLock(rds)

	f.roles = NewRoleService(dao.NewRoleDAO(db))
	if err := f.roles.InitRole(f.ctx); err != nil {
		t.Fatalf("init role: %v", err)
	}
	avatars := &AvatarService{Config: cfg, Storage: f.storage}
	f.notifier = &NotificationService{
		Config:          cfg,
		NotificationDAO: dao.NewNotificationDAO(db),
		Unread:          cache.NewUnreadStorage(rds),
		Hub:             socket.NewHub(),
		Publisher:       f.publisher,
	}
	f.mail = &MailService{Config: cfg, OutboxDAO: f.outboxDAO}
	f.auth = &AuthService{Config: cfg, UserDAO: f.userDAO, Roles: f.roles, Mail: f.mail, Avatars: avatars}
	f.users = &UserService{
		Config: cfg, UserDAO: f.userDAO, PhotoDAO: photoDAO, CollectionDAO: collectionDAO,
		FollowDAO: followDAO, Roles: f.roles, Mail: f.mail, Avatars: avatars, Storage: f.storage,
	}
	f.follow = &FollowService{FollowDAO: followDAO, UserDAO: f.userDAO, Notifier: f.notifier}
	f.collect = &CollectService{
		Config: cfg, CollectionDAO: collectionDAO, PhotoDAO: photoDAO, UserDAO: f.userDAO,
		Storage: f.storage, Notifier: f.notifier,
	}
	f.photos = &PhotoService{
		Config: cfg, PhotoDAO: photoDAO, TagDAO: tagDAO, CommentDAO: commentDAO,
		CollectionDAO: collectionDAO, UserDAO: f.userDAO, Roles: f.roles, Storage: f.storage,
		Lock: lock, Suggester: llm.NewTagSuggester(cfg.LLM),
	}
	f.tags = &TagService{Config: cfg, TagDAO: tagDAO, PhotoDAO: photoDAO, UserDAO: f.userDAO, Roles: f.roles, Storage: f.storage}
	f.comments = &CommentService{
		Config: cfg, CommentDAO: commentDAO, PhotoDAO: photoDAO, UserDAO: f.userDAO,
		Roles: f.roles, Storage: f.storage, Lock: lock, Notifier: f.notifier,
	}
	f.admin = &AdminService{
		Config: cfg, UserDAO: f.userDAO, PhotoDAO: photoDAO, TagDAO: tagDAO, CommentDAO: commentDAO,
		OutboxDAO: f.outboxDAO, Roles: f.roles, Comments: f.comments, Storage: f.storage,
	}
	f.search = &SearchService{Config: cfg, UserDAO: f.userDAO, PhotoDAO: photoDAO, TagDAO: tagDAO, Storage: f.storage}
	return f
}

// register 注册并按需确认, 返回数据库中的最新状态
func (f *fixture) register(t *testing.T, username string, confirmed bool) *models.User {
	t.Helper()
	user, err := f.auth.Register(f.ctx, &types.RegisterRequest{
		Name:      username,
		Email:     username + "@example.com",
		Username:  username,
		Password:  "password123",
		Password2: "password123",
	})
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	if confirmed {
		if err := f.userDAO.UpdateById(f.ctx, user.ID, map[string]any{"confirmed": true}); err != nil {
			t.Fatalf("confirm %s: %v", username, err)
		}
	}
	return f.reload(t, user)
}

func (f *fixture) reload(t *testing.T, user *models.User) *models.User {
	t.Helper()
	u, err := f.userDAO.FindById(f.ctx, user.ID)
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}
	return u
}

func (f *fixture) upload(t *testing.T, user *models.User, width, height int) *models.Photo {
	t.Helper()
	photo, err := f.photos.Upload(f.ctx, user, "photo.png", bytes.NewReader(pngBytes(t, width, height)), "a photo")
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	return photo
}

func (f *fixture) count(t *testing.T, model any, where string, args ...any) int64 {
	t.Helper()
	var n int64
	tx := f.db.Model(model)
	if where != "" {
		tx = tx.Where(where, args...)
	}
	if err := tx.Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

// lastToken 取发给 to 的最后一封邮件链接中的令牌
func (f *fixture) lastToken(t *testing.T, to, template string) string {
	t.Helper()
	var row models.MailOutbox
	err := f.db.Where("to_addr = ? AND template = ?", to, template).Order("created_at DESC, id DESC").First(&row).Error
	if err != nil {
		t.Fatalf("find outbox mail: %v", err)
	}
	link, _ := row.Data["link"].(string)
	if link == "" {
		t.Fatalf("mail without link: %+v", row.Data)
	}
	return link[strings.LastIndex(link, "/")+1:]
}

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 0x80, A: 0xff})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

type fakeSender struct {
	mu   sync.Mutex
	err  error
	sent []*mailer.Message
}

func (s *fakeSender) Send(_ context.Context, msg *mailer.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, msg)
	return nil
}
