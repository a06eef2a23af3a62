package server

import (
	"Moments/handler"
)

type Handlers struct {
	Auth         *handler.Auth
	User         *handler.User
	Settings     *handler.Settings
	Photo        *handler.Photo
	Comment      *handler.Comment
	Tag          *handler.Tag
	Search       *handler.Search
	Notification *handler.Notification
	Admin        *handler.Admin
	Media        *handler.Media
}
