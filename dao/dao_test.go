package dao

import (
	"Moments/models"
	"Moments/pkg/database"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.NewSQLite(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		_ = DropAll(db)
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	u := models.NewUser(username, username, username+"@example.com")
	u.PasswordHash = "x"
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func createPhoto(t *testing.T, db *gorm.DB, author *models.User, name string) *models.Photo {
	t.Helper()
	p := &models.Photo{
		Filename:   name + ".jpg",
		FilenameS:  name + "_s.jpg",
		FilenameM:  name + ".jpg",
		CanComment: true,
		AuthorID:   author.ID,
		CreatedAt:  time.Now(),
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("create photo: %v", err)
	}
	return p
}

func createComment(t *testing.T, db *gorm.DB, author *models.User, photo *models.Photo, replied *models.Comment) *models.Comment {
	t.Helper()
	c := &models.Comment{Body: "nice", AuthorID: author.ID, PhotoID: photo.ID, CreatedAt: time.Now()}
	if replied != nil {
		c.RepliedID = &replied.ID
	}
	if err := db.Create(c).Error; err != nil {
		t.Fatalf("create comment: %v", err)
	}
	return c
}

func count(t *testing.T, db *gorm.DB, model any, where string, args ...any) int64 {
	t.Helper()
	var n int64
	tx := db.Model(model)
	if where != "" {
		tx = tx.Where(where, args...)
	}
	if err := tx.Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func TestRoleSyncIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	d := NewRoleDAO(db)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := d.Sync(ctx, models.RoleNames, models.RolePermissions); err != nil {
			t.Fatalf("sync #%d: %v", i, err)
		}
	}
	if n := count(t, db, &models.Role{}, ""); n != 4 {
		t.Fatalf("expected 4 roles, got %d", n)
	}
	if n := count(t, db, &models.Permission{}, ""); n != 6 {
		t.Fatalf("expected 6 permissions, got %d", n)
	}

	// 手动多加一条权限, 再次同步后应被移除
	mod, _ := d.FindByName(ctx, models.RoleModerator)
	locked, _ := d.FindByName(ctx, models.RoleLocked)
	var admin models.Permission
	db.Where("name = ?", models.PermAdmin).First(&admin)
	db.Create(&models.RolePermission{RoleID: locked.ID, PermissionID: admin.ID})
	if err := d.Sync(ctx, models.RoleNames, models.RolePermissions); err != nil {
		t.Fatalf("sync: %v", err)
	}

	names, err := d.PermissionNames(ctx, locked.ID)
	if err != nil {
		t.Fatalf("permission names: %v", err)
	}
	if strings.Join(names, ",") != "FOLLOW,COLLECT" {
		t.Fatalf("unexpected locked permissions %v", names)
	}
	names, _ = d.PermissionNames(ctx, mod.ID)
	if len(names) != 5 {
		t.Fatalf("expected 5 moderator permissions, got %v", names)
	}
}

func TestFollowInsertIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	d := NewFollowDAO(db)
	ctx := context.Background()
	a, b := createUser(t, db, "alice"), createUser(t, db, "bob")

	inserted, err := d.Insert(ctx, a.ID, b.ID)
	if err != nil || !inserted {
		t.Fatalf("first insert: inserted=%v err=%v", inserted, err)
	}
	inserted, err = d.Insert(ctx, a.ID, b.ID)
	if err != nil || inserted {
		t.Fatalf("second insert: inserted=%v err=%v", inserted, err)
	}

	if n, _ := d.FollowerCount(ctx, b.ID); n != 1 {
		t.Fatalf("expected 1 follower, got %d", n)
	}
	if n, _ := d.FollowingCount(ctx, a.ID); n != 1 {
		t.Fatalf("expected 1 following, got %d", n)
	}

	followers, p, err := d.Followers(ctx, b.ID, 1, 20)
	if err != nil {
		t.Fatalf("followers: %v", err)
	}
	if p.Total != 1 || len(followers) != 1 || followers[0].ID != a.ID {
		t.Fatalf("unexpected followers %+v %+v", followers, p)
	}

	removed, err := d.Delete(ctx, a.ID, b.ID)
	if err != nil || !removed {
		t.Fatalf("delete: removed=%v err=%v", removed, err)
	}
	removed, _ = d.Delete(ctx, a.ID, b.ID)
	if removed {
		t.Fatalf("second delete should be a no-op")
	}
}

func TestCollectionInsertIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	d := NewCollectionDAO(db)
	ctx := context.Background()
	a := createUser(t, db, "alice")
	p := createPhoto(t, db, a, "p1")

	for i := 0; i < 3; i++ {
		if _, err := d.Insert(ctx, a.ID, p.ID); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}
	if n, _ := d.CountByPhoto(ctx, p.ID); n != 1 {
		t.Fatalf("expected 1 collector, got %d", n)
	}
	photos, _, err := d.CollectedPhotos(ctx, a.ID, 1, 12)
	if err != nil || len(photos) != 1 || photos[0].ID != p.ID {
		t.Fatalf("collected photos: %v %v", photos, err)
	}
}

func TestFeedIncludesOwnAndFollowedPhotos(t *testing.T) {
	db := newTestDB(t)
	photos := NewPhotoDAO(db)
	follows := NewFollowDAO(db)
	ctx := context.Background()
	a, b, c := createUser(t, db, "alice"), createUser(t, db, "bob"), createUser(t, db, "carol")
	createPhoto(t, db, a, "a1")
	createPhoto(t, db, b, "b1")
	createPhoto(t, db, c, "c1")
	if _, err := follows.Insert(ctx, a.ID, b.ID); err != nil {
		t.Fatalf("follow: %v", err)
	}

	feed, p, err := photos.Feed(ctx, a.ID, 1, 12)
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if p.Total != 2 {
		t.Fatalf("expected 2 photos in feed, got %d", p.Total)
	}
	for _, ph := range feed {
		if ph.AuthorID == c.ID {
			t.Fatalf("feed contains a photo of a user not followed")
		}
	}
}

func TestTagDetachRemovesOrphanTag(t *testing.T) {
	db := newTestDB(t)
	d := NewTagDAO(db)
	ctx := context.Background()
	a := createUser(t, db, "alice")
	p1, p2 := createPhoto(t, db, a, "p1"), createPhoto(t, db, a, "p2")

	tag, err := d.FindOrCreate(ctx, "sea")
	if err != nil {
		t.Fatalf("find or create: %v", err)
	}
	again, err := d.FindOrCreate(ctx, "sea")
	if err != nil || again.ID != tag.ID {
		t.Fatalf("expected same tag, got %+v %v", again, err)
	}

	d.Attach(ctx, p1.ID, tag.ID)
	d.Attach(ctx, p2.ID, tag.ID)
	if ok, _ := d.Attach(ctx, p2.ID, tag.ID); ok {
		t.Fatalf("duplicate attach should not insert")
	}

	removed, err := d.Detach(ctx, p1.ID, tag.ID)
	if err != nil || removed {
		t.Fatalf("tag still used by p2: removed=%v err=%v", removed, err)
	}
	removed, err = d.Detach(ctx, p2.ID, tag.ID)
	if err != nil || !removed {
		t.Fatalf("tag should be removed: removed=%v err=%v", removed, err)
	}
	if n := count(t, db, &models.Tag{}, "id = ?", tag.ID); n != 0 {
		t.Fatalf("orphan tag still exists")
	}
}

func TestPopularTags(t *testing.T) {
	db := newTestDB(t)
	d := NewTagDAO(db)
	ctx := context.Background()
	a := createUser(t, db, "alice")
	p1, p2 := createPhoto(t, db, a, "p1"), createPhoto(t, db, a, "p2")
	sea, _ := d.FindOrCreate(ctx, "sea")
	sky, _ := d.FindOrCreate(ctx, "sky")
	d.Attach(ctx, p1.ID, sea.ID)
	d.Attach(ctx, p2.ID, sea.ID)
	d.Attach(ctx, p1.ID, sky.ID)

	stats, err := d.Popular(ctx, 10)
	if err != nil {
		t.Fatalf("popular: %v", err)
	}
	if len(stats) != 2 || stats[0].Name != "sea" || stats[0].PhotoCount != 2 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func TestCommentDeleteTree(t *testing.T) {
	db := newTestDB(t)
	d := NewCommentDAO(db)
	ctx := context.Background()
	a := createUser(t, db, "alice")
	p := createPhoto(t, db, a, "p1")
	root := createComment(t, db, a, p, nil)
	reply := createComment(t, db, a, p, root)
	createComment(t, db, a, p, reply)
	other := createComment(t, db, a, p, nil)

	n, err := d.DeleteTree(ctx, root.ID)
	if err != nil {
		t.Fatalf("delete tree: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 deleted comments, got %d", n)
	}
	if c := count(t, db, &models.Comment{}, ""); c != 1 {
		t.Fatalf("expected 1 remaining comment, got %d", c)
	}
	if _, err := d.FindById(ctx, other.ID); err != nil {
		t.Fatalf("unrelated comment was deleted")
	}
	if _, err := d.DeleteTree(ctx, root.ID); !IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestPhotoDeleteCascade(t *testing.T) {
	db := newTestDB(t)
	photos := NewPhotoDAO(db)
	tags := NewTagDAO(db)
	ctx := context.Background()
	a, b := createUser(t, db, "alice"), createUser(t, db, "bob")
	p := createPhoto(t, db, a, "p1")
	keep := createPhoto(t, db, a, "p2")
	createComment(t, db, b, p, nil)
	createComment(t, db, b, keep, nil)
	NewCollectionDAO(db).Insert(ctx, b.ID, p.ID)
	tag, _ := tags.FindOrCreate(ctx, "sea")
	tags.Attach(ctx, p.ID, tag.ID)

	if err := photos.DeleteCascade(ctx, p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if n := count(t, db, &models.Comment{}, "photo_id = ?", p.ID); n != 0 {
		t.Fatalf("comments not deleted")
	}
	if n := count(t, db, &models.Collection{}, "photo_id = ?", p.ID); n != 0 {
		t.Fatalf("collections not deleted")
	}
	if n := count(t, db, &models.PhotoTag{}, "photo_id = ?", p.ID); n != 0 {
		t.Fatalf("tag links not deleted")
	}
	if n := count(t, db, &models.Comment{}, "photo_id = ?", keep.ID); n != 1 {
		t.Fatalf("comments of another photo were deleted")
	}
	if err := photos.DeleteCascade(ctx, p.ID); !IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestIncrFlagHasNoDedup(t *testing.T) {
	db := newTestDB(t)
	photos := NewPhotoDAO(db)
	ctx := context.Background()
	a := createUser(t, db, "alice")
	p := createPhoto(t, db, a, "p1")

	for i := 0; i < 3; i++ {
		if err := photos.IncrFlag(ctx, p.ID); err != nil {
			t.Fatalf("incr flag: %v", err)
		}
	}
	got, _ := photos.FindById(ctx, p.ID)
	if got.Flag != 3 {
		t.Fatalf("expected flag 3, got %d", got.Flag)
	}
	if err := photos.IncrFlag(ctx, 9999); !IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUserDeleteCascade(t *testing.T) {
	db := newTestDB(t)
	users := NewUsers(db)
	ctx := context.Background()
	a, b := createUser(t, db, "alice"), createUser(t, db, "bob")
	pa := createPhoto(t, db, a, "pa")
	pb := createPhoto(t, db, b, "pb")
	onA := createComment(t, db, b, pa, nil)
	byA := createComment(t, db, a, pb, nil)
	createComment(t, db, b, pb, byA)
	keep := createComment(t, db, b, pb, nil)
	_ = onA
	NewFollowDAO(db).Insert(ctx, a.ID, b.ID)
	NewFollowDAO(db).Insert(ctx, b.ID, a.ID)
	NewCollectionDAO(db).Insert(ctx, b.ID, pa.ID)
	db.Create(&models.Notification{Message: "x", ReceiverID: a.ID, CreatedAt: time.Now()})

	files, err := users.DeleteCascade(ctx, a.ID)
	if err != nil {
		t.Fatalf("delete cascade: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 photo files, got %v", files)
	}
	if n := count(t, db, &models.Comment{}, ""); n != 1 {
		t.Fatalf("expected only the unrelated comment to remain, got %d", n)
	}
	if _, err := NewCommentDAO(db).FindById(ctx, keep.ID); err != nil {
		t.Fatalf("unrelated comment deleted")
	}
	if n := count(t, db, &models.Follow{}, ""); n != 0 {
		t.Fatalf("follow edges remain")
	}
	if n := count(t, db, &models.Collection{}, ""); n != 0 {
		t.Fatalf("collections remain")
	}
	if n := count(t, db, &models.Notification{}, ""); n != 0 {
		t.Fatalf("notifications remain")
	}
	if _, err := users.FindById(ctx, a.ID); !IsNotFound(err) {
		t.Fatalf("user still exists")
	}
}

func TestManageClampsPage(t *testing.T) {
	db := newTestDB(t)
	users := NewUsers(db)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		createUser(t, db, fmt.Sprintf("user%d", i))
	}

	items, p, err := users.Manage(ctx, UserFilterAll, 0, 99, 2)
	if err != nil {
		t.Fatalf("manage: %v", err)
	}
	if p.Page != 3 || len(items) != 1 {
		t.Fatalf("expected last page with 1 item, got page %d with %d items", p.Page, len(items))
	}
}

func TestNavigationFollowsCreatedAt(t *testing.T) {
	db := newTestDB(t)
	d := NewPhotoDAO(db)
	ctx := context.Background()
	alice := createUser(t, db, "alice")

	// id 顺序与时间顺序相反
	first := createPhoto(t, db, alice, "first")
	second := createPhoto(t, db, alice, "second")
	now := time.Now()
	db.Model(first).Update("created_at", now)
	db.Model(second).Update("created_at", now.Add(-time.Hour))
	first.CreatedAt, second.CreatedAt = now, now.Add(-time.Hour)

	listed, _, err := d.ByAuthor(ctx, alice.ID, 1, 10)
	if err != nil || len(listed) != 2 || listed[0].ID != first.ID {
		t.Fatalf("unexpected listing %v err=%v", listed, err)
	}

	next, err := d.Next(ctx, first)
	if err != nil || next.ID != second.ID {
		t.Fatalf("next of newest should be %d, got %+v err=%v", second.ID, next, err)
	}
	if _, err := d.Next(ctx, second); !IsNotFound(err) {
		t.Fatalf("oldest photo should have no next, got %v", err)
	}
	prev, err := d.Previous(ctx, second)
	if err != nil || prev.ID != first.ID {
		t.Fatalf("previous of oldest should be %d, got %+v err=%v", first.ID, prev, err)
	}
	if _, err := d.Previous(ctx, first); !IsNotFound(err) {
		t.Fatalf("newest photo should have no previous, got %v", err)
	}
}

func TestSearchEscapesWildcards(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	alice := createUser(t, db, "alice")
	createUser(t, db, "bob_smith")
	createUser(t, db, "bobxsmith")

	off := createPhoto(t, db, alice, "off")
	plain := createPhoto(t, db, alice, "plain")
	db.Model(off).Update("description", "100% off")
	db.Model(plain).Update("description", "1000 words")

	photos, _, err := NewPhotoDAO(db).Search(ctx, "%", 1, 10)
	if err != nil || len(photos) != 1 || photos[0].ID != off.ID {
		t.Fatalf("%% should match literally, got %v err=%v", photos, err)
	}
	users, _, err := NewUsers(db).Search(ctx, "b_", 1, 10)
	if err != nil || len(users) != 1 || users[0].Username != "bob_smith" {
		t.Fatalf("_ should match literally, got %v err=%v", users, err)
	}
	if tags, _, err := NewTagDAO(db).Search(ctx, "%", 1, 10); err != nil || len(tags) != 0 {
		t.Fatalf("no tag contains %%, got %v err=%v", tags, err)
	}
}
