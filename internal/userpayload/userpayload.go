package userpayload

import (
	"net/http"

	"github.com/SergeyParamoshkin/news/internal/model"
)

// UserPayload renders {"user": {...}}.
type UserPayload struct {
	User *model.User `json:"user"`
}

func NewUserPayloadResponse(user *model.User) *UserPayload {
	return &UserPayload{User: user}
}

func (u *UserPayload) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

// ListPayload renders {"users": [...]}.
type ListPayload struct {
	Users []*model.User `json:"users"`
}

func NewListPayloadResponse(users []*model.User) *ListPayload {
	if users == nil {
		users = []*model.User{}
	}

	return &ListPayload{Users: users}
}

func (u *ListPayload) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}
