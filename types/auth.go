package types

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=30"`
	Email    string `json:"email" binding:"required,email,max=254"`
	Username string `json:"username" binding:"required,alphanum,min=1,max=20"`
	Password string `json:"password" binding:"required,min=8,max=128"`
	// Password2 确认密码
	Password2 string `json:"password2" binding:"required,eqfield=Password"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ForgetPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8,max=128"`
	Password2 string `json:"password2" binding:"required,eqfield=Password"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
	TokenType   string `json:"token_type"`
}
