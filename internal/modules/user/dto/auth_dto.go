package dto

// LoginInput does not check the email format: a malformed address is just
// an unknown one and gets the same 401.
type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type SignupInput struct {
	FullName string `json:"fullname" binding:"required,max=50"`
	Email    string `json:"email" binding:"required,email,max=100"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}
