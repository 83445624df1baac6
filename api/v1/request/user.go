package request

type RegisterRequest struct {
	DisplayName string `json:"displayName" binding:"required,max=100"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ProfileImageRequest struct {
	URL string `json:"url" binding:"required,imageurl"`
}
