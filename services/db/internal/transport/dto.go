package transport

type CreateUserRequest struct {
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash"`
}

type UpdateUserRequest struct {
	Username string `json:"username"`
	Active   bool   `json:"active"`
}

type CreateOrderRequest struct {
	UserID    uint `json:"user_id"`
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// UserCredentials is the one place the password hash crosses the wire.
// Only the by-username credential lookup answers with it.
type UserCredentials struct {
	ID           uint   `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash"`
	Active       bool   `json:"active"`
}
