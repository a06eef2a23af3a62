package dao

import (
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewRoleDAO,
	NewUsers,
	NewFollowDAO,
	NewCollectionDAO,
	NewPhotoDAO,
	NewTagDAO,
	NewCommentDAO,
	NewNotificationDAO,
	NewMailOutboxDAO,
)
