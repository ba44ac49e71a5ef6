package dto

import "github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/authz"

type UserListResponse struct {
	Users []authz.Identity `json:"users"`
	Total int              `json:"total"`
}
