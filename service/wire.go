package service

import (
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewStorage,
	NewRoleService,
	wire.Bind(new(IRoleService), new(*RoleService)),

	wire.Struct(new(AvatarService), "*"),
	wire.Bind(new(IAvatarService), new(*AvatarService)),

	wire.Struct(new(MailService), "*"),
	wire.Bind(new(IMailService), new(*MailService)),
	wire.Struct(new(Dispatcher), "*"),

	wire.Struct(new(NotificationService), "*"),
	wire.Bind(new(INotificationService), new(*NotificationService)),

	wire.Struct(new(AuthService), "*"),
	wire.Bind(new(IAuthService), new(*AuthService)),

	wire.Struct(new(UserService), "*"),
	wire.Bind(new(IUserService), new(*UserService)),

	wire.Struct(new(FollowService), "*"),
	wire.Bind(new(IFollowService), new(*FollowService)),

	wire.Struct(new(CollectService), "*"),
	wire.Bind(new(ICollectService), new(*CollectService)),

	wire.Struct(new(PhotoService), "*"),
	wire.Bind(new(IPhotoService), new(*PhotoService)),

	wire.Struct(new(TagService), "*"),
	wire.Bind(new(ITagService), new(*TagService)),

	wire.Struct(new(CommentService), "*"),
	wire.Bind(new(ICommentService), new(*CommentService)),

	wire.Struct(new(AdminService), "*"),
	wire.Bind(new(IAdminService), new(*AdminService)),

	wire.Struct(new(SearchService), "*"),
	wire.Bind(new(ISearchService), new(*SearchService)),

	wire.Struct(new(LoremService), "*"),
)
