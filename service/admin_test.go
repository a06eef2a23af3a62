package service

import (
	"Moments/dao"
	"Moments/models"
	"Moments/types"
	"errors"
	"testing"
)

func TestAdminDashboardAndManage(t *testing.T) {
	f := newFixture(t)
	admin := f.register(t, "admin", true)
	a := f.register(t, "alice", true)
	b := f.register(t, "bob", true)
	photo := f.upload(t, a, 50, 50)
	f.upload(t, b, 50, 50)
	f.tags.AddTags(f.ctx, a, photo.ID, "one two")
	f.photos.Report(f.ctx, b, photo.ID)
	f.admin.Lock(f.ctx, admin, b.ID)

	d, err := f.admin.Dashboard(f.ctx)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if d.UserCount != 3 || d.PhotoCount != 2 || d.TagCount != 2 || d.ReportedPhotos != 1 || d.LockedUserCount != 1 {
		t.Fatalf("dashboard = %+v", d)
	}
	if d.PendingMailCount != 3 {
		t.Fatalf("pending mails = %d, want 3", d.PendingMailCount)
	}

	users, err := f.admin.ManageUsers(f.ctx, dao.UserFilterLocked, 1)
	if err != nil || len(users.Items) != 1 || users.Items[0].Username != "bob" {
		t.Fatalf("locked users: %+v %v", users, err)
	}
	users, _ = f.admin.ManageUsers(f.ctx, dao.UserFilterAdministrator, 1)
	if len(users.Items) != 1 || users.Items[0].Role != models.RoleAdministrator {
		t.Fatalf("administrators: %+v", users)
	}
	// 页码越界落到最后一页
	users, _ = f.admin.ManageUsers(f.ctx, "unknown", 99)
	if users.Pagination.Page != 1 || len(users.Items) != 3 {
		t.Fatalf("clamped page: %+v", users.Pagination)
	}

	photos, _ := f.admin.ManagePhotos(f.ctx, dao.OrderByFlag, 1)
	if len(photos.Items) != 2 || photos.Items[0].ID != photo.ID {
		t.Fatalf("photos by flag: %+v", photos.Items)
	}
	tags, _ := f.admin.ManageTags(f.ctx, 1)
	if len(tags.Items) != 2 || tags.Items[0].PhotoCount != 1 {
		t.Fatalf("tags: %+v", tags.Items)
	}
}

func TestAdminEditProfile(t *testing.T) {
	f := newFixture(t)
	f.register(t, "admin", true)
	a := f.register(t, "alice", true)
	f.register(t, "bob", true)

	req := &types.AdminEditProfileRequest{
		EditProfileRequest: types.EditProfileRequest{Name: "Alice", Username: "bob"},
		Email:              a.Email,
		Role:               models.RoleLocked,
		Active:             true,
		Confirmed:          true,
	}
	if err := f.admin.EditProfile(f.ctx, a.ID, req); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("taken username: %v", err)
	}
	req.Username = "alice2"
	if err := f.admin.EditProfile(f.ctx, a.ID, req); err != nil {
		t.Fatalf("edit: %v", err)
	}
	a = f.reload(t, a)
	if a.Username != "alice2" || !a.Locked || f.roles.RoleName(f.ctx, a.RoleID) != models.RoleLocked {
		t.Fatalf("after edit: %+v", a)
	}

	req.Role = "Nobody"
	if err := f.admin.EditProfile(f.ctx, a.ID, req); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown role: %v", err)
	}
}
