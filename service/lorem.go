package service

import (
	"Moments/config"
	"Moments/dao"
	"Moments/models"
	"Moments/pkg/encrypt"
	"Moments/pkg/log"
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"go.uber.org/zap"
)

// 假数据用户的默认密码
const loremPassword = "moments123"

// LoremOptions lorem 命令各类数据的数量
type LoremOptions struct {
	User    int
	Follow  int
	Photo   int
	Tag     int
	Collect int
	Comment int
}

// LoremService 生成开发用的假数据
type LoremService struct {
	Config        *config.Config
	UserDAO       *dao.Users
	FollowDAO     *dao.FollowDAO
	PhotoDAO      *dao.PhotoDAO
	TagDAO        *dao.TagDAO
	CollectionDAO *dao.CollectionDAO
	CommentDAO    *dao.CommentDAO
	Roles         IRoleService
	Avatars       IAvatarService
	Photos        *PhotoService
}

func (s *LoremService) Generate(ctx context.Context, opt LoremOptions) error {
	steps := []struct {
		name string
		n    int
		fn   func(context.Context, int) (int, error)
	}{
		{"user", opt.User, s.FakeUsers},
		{"follow", opt.Follow, s.FakeFollows},
		{"tag", opt.Tag, s.FakeTags},
		{"photo", opt.Photo, s.FakePhotos},
		{"collect", opt.Collect, s.FakeCollects},
		{"comment", opt.Comment, s.FakeComments},
	}
	if _, err := s.FakeAdmin(ctx); err != nil {
		return err
	}
	for _, step := range steps {
		created, err := step.fn(ctx, step.n)
		if err != nil {
			return fmt.Errorf("fake %s: %w", step.name, err)
		}
		log.L.Info("lorem generated", zap.String("kind", step.name), zap.Int("count", created))
	}
	return nil
}

// FakeAdmin 创建管理员账号, 已存在时直接返回
func (s *LoremService) FakeAdmin(ctx context.Context) (*models.User, error) {
	email := strings.ToLower(s.Config.Moments.AdminEmail)
	if email == "" {
		email = "admin@moments.local"
	}
	if user, err := s.UserDAO.FindByEmail(ctx, email); err == nil {
		return user, nil
	} else if !dao.IsNotFound(err) {
		return nil, err
	}
	role, err := s.Roles.RoleByName(ctx, models.RoleAdministrator)
	if err != nil {
		return nil, err
	}
	user := models.NewUser("Admin", "admin", email)
	user.Bio = gofakeit.Sentence(8)
	user.Website = gofakeit.URL()
	user.Confirmed = true
	user.RoleID = role.ID
	if err := s.prepare(ctx, user); err != nil {
		return nil, err
	}
	return user, s.UserDAO.Create(ctx, user)
}

func (s *LoremService) FakeUsers(ctx context.Context, n int) (int, error) {
	role, err := s.Roles.RoleByName(ctx, models.RoleUser)
	if err != nil {
		return 0, err
	}
	created := 0
	for i := 0; i < n; i++ {
		username := loremUsername()
		email := strings.ToLower(gofakeit.Email())
		taken, err := s.UserDAO.IsExist(ctx, "username = ? OR email = ?", username, email)
		if err != nil {
			return created, err
		}
		if taken {
			continue
		}
		user := models.NewUser(gofakeit.Name(), username, email)
		user.Bio = gofakeit.Sentence(6)
		user.Location = gofakeit.City()
		user.Website = gofakeit.URL()
		user.MemberSince = gofakeit.DateRange(time.Now().AddDate(-1, 0, 0), time.Now())
		user.Confirmed = true
		user.RoleID = role.ID
		if err := s.prepare(ctx, user); err != nil {
			return created, err
		}
		if err := s.UserDAO.Create(ctx, user); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

func (s *LoremService) prepare(ctx context.Context, user *models.User) error {
	hash, err := encrypt.HashPassword(loremPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	names, err := s.Avatars.Generate(ctx, user.Username)
	if err != nil {
		return err
	}
	user.AvatarS, user.AvatarM, user.AvatarL = names[0], names[1], names[2]
	return nil
}

func (s *LoremService) FakeFollows(ctx context.Context, n int) (int, error) {
	ids, err := s.UserDAO.IDs(ctx)
	if err != nil || len(ids) < 2 {
		return 0, err
	}
	created := 0
	for i := 0; i < n; i++ {
		follower, followed := pick(ids), pick(ids)
		if follower == followed {
			continue
		}
		inserted, err := s.FollowDAO.Insert(ctx, follower, followed)
		if err != nil {
			return created, err
		}
		if inserted {
			created++
		}
	}
	return created, nil
}

func (s *LoremService) FakeTags(ctx context.Context, n int) (int, error) {
	created := 0
	for i := 0; i < n; i++ {
		if _, err := s.TagDAO.FindOrCreate(ctx, strings.ToLower(gofakeit.Word())); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

// FakePhotos 生成纯色图片并走正常上传流程, 每张随机关联最多 4 个标签
func (s *LoremService) FakePhotos(ctx context.Context, n int) (int, error) {
	userIDs, err := s.UserDAO.IDs(ctx)
	if err != nil || len(userIDs) == 0 {
		return 0, err
	}
	tagIDs, err := s.TagDAO.IDs(ctx)
	if err != nil {
		return 0, err
	}
	created := 0
	for i := 0; i < n; i++ {
		data, err := solidJPEG(800, 800)
		if err != nil {
			return created, err
		}
		author := &models.User{ID: pick(userIDs)}
		photo, err := s.Photos.Upload(ctx, author, fmt.Sprintf("lorem-%d.jpg", i), bytes.NewReader(data), gofakeit.Sentence(10))
		if err != nil {
			return created, err
		}
		created++
		if len(tagIDs) == 0 {
			continue
		}
		for j := 0; j < 4; j++ {
			if _, err := s.TagDAO.Attach(ctx, photo.ID, pick(tagIDs)); err != nil {
				return created, err
			}
		}
	}
	return created, nil
}

func (s *LoremService) FakeCollects(ctx context.Context, n int) (int, error) {
	userIDs, err := s.UserDAO.IDs(ctx)
	if err != nil || len(userIDs) == 0 {
		return 0, err
	}
	photoIDs, err := s.PhotoDAO.IDs(ctx)
	if err != nil || len(photoIDs) == 0 {
		return 0, err
	}
	created := 0
	for i := 0; i < n; i++ {
		inserted, err := s.CollectionDAO.Insert(ctx, pick(userIDs), pick(photoIDs))
		if err != nil {
			return created, err
		}
		if inserted {
			created++
		}
	}
	return created, nil
}

func (s *LoremService) FakeComments(ctx context.Context, n int) (int, error) {
	userIDs, err := s.UserDAO.IDs(ctx)
	if err != nil || len(userIDs) == 0 {
		return 0, err
	}
	photoIDs, err := s.PhotoDAO.IDs(ctx)
	if err != nil || len(photoIDs) == 0 {
		return 0, err
	}
	created := 0
	for i := 0; i < n; i++ {
		comment := &models.Comment{
			Body:      gofakeit.Sentence(12),
			AuthorID:  pick(userIDs),
			PhotoID:   pick(photoIDs),
			CreatedAt: gofakeit.DateRange(time.Now().AddDate(0, -1, 0), time.Now()),
		}
		if err := s.CommentDAO.Create(ctx, comment); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

func pick(ids []uint64) uint64 {
	return ids[rand.IntN(len(ids))]
}

// loremUsername 只保留字母数字, 最长 20 位
func loremUsername() string {
	name := strings.Map(func(r rune) rune {
		if r < 128 && (r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return r
		}
		return -1
	}, gofakeit.Username())
	if name == "" {
		name = gofakeit.LetterN(8)
	}
	if len(name) > 20 {
		name = name[:20]
	}
	return name
}

func solidJPEG(w, h int) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	c := color.RGBA{
		R: uint8(gofakeit.Number(0, 255)),
		G: uint8(gofakeit.Number(0, 255)),
		B: uint8(gofakeit.Number(0, 255)),
		A: 0xff,
	}
	draw.Draw(img, img.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
