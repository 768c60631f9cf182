package transport

type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UpdateMeRequest struct {
	Username *string `json:"username"`
	Active   *bool   `json:"active"`
}

type PlaceOrderRequest struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity"   validate:"required,min=1,max=3"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

// UserSummary is the outward shape of a user; the password hash never
// appears here.
type UserSummary struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Active   bool   `json:"active"`
}
