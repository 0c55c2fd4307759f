package auth

type CredentialsRequest struct {
	Username string `json:"username" form:"username" binding:"required,min=3"`
	Password string `json:"password" form:"password" binding:"required"`
}

type UserPublic struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}
