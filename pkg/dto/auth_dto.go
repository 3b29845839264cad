package dto

type SignupRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Location  int    `json:"location" validate:"required,min=10000,max=99999"`
	// defaults to models.DefaultRadius when omitted
	Radius    int    `json:"radius" validate:"omitempty,gt=0"`
	Bio       string `json:"bio"`
	ImageURL  string `json:"imageUrl" validate:"omitempty,url"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type TokenResponse struct {
	Token string `json:"token"`
}
