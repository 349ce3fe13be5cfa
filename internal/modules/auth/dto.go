package auth

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=admin manager agent"`
	Agency   string `json:"agency"`
}

type UpdateUserRequest struct {
	Name   string `json:"name" binding:"required"`
	Role   string `json:"role" binding:"required,oneof=admin manager agent"`
	Agency string `json:"agency"`
	Active *bool  `json:"active"`
}
