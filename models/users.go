package models

// Employee is a member of the restaurant's staff roster.
type Employee struct {
	ID      string  `json:"_id"`
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Role    string  `json:"role"`
	Phone   string  `json:"phone,omitempty"`
	PayRate float64 `json:"payRate,omitempty"`
}

type EmployeeForm struct {
	Name     string  `json:"name" validate:"required"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
	Role     string  `json:"role" validate:"required,oneof=Owner Manager Cashier Waiter Chef"`
	Phone    string  `json:"phone,omitempty"`
	PayRate  float64 `json:"payRate,omitempty" validate:"gte=0"`
}

type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type SignupForm struct {
	ShopName string `json:"shopName" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type Shop struct {
	ID       string `json:"_id"`
	ShopName string `json:"shopName"`
}

// Profile is the logged in user as returned by /api/profile.
type Profile struct {
	ID         string `json:"_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Restaurant *Shop  `json:"restaurantId,omitempty"`
}

// ShopID returns the restaurant the user works for.
func (p Profile) ShopID() string {
	if p.Restaurant == nil {
		return ""
	}
	return p.Restaurant.ID
}

type AuthResponse struct {
	Token string   `json:"token"`
	User  *Profile `json:"user,omitempty"`
}
