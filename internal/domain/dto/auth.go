package dto

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LoginRequest is the body of the staff login endpoint.
//
// @Description Staff credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"staff@printshop.example"`
	Password string `json:"password" binding:"required,min=6" example:"password123"`
} // @name LoginRequest

// Validate performs custom validation on the login request.
func (r *LoginRequest) Validate() error {
	if r.Email == "" {
		return &ValidationError{Field: "email", Message: "email is required"}
	}
	if len(r.Password) < 6 {
		return &ValidationError{Field: "password", Message: "password must be at least 6 characters"}
	}
	return nil
}

// LoginResponse carries the staff access token.
//
// @Description Successful staff authentication
type LoginResponse struct {
	Token     string        `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	ExpiresIn int64         `json:"expires_in" example:"28800"`
	Staff     StaffResponse `json:"staff"`
} // @name LoginResponse

// StaffResponse is the public view of a staff member.
type StaffResponse struct {
	Email string `json:"email" example:"staff@printshop.example"`
	Name  string `json:"name,omitempty" example:"Jo Printer"`
} // @name StaffResponse

// Claims are the application claims carried in a staff token.
type Claims struct {
	StaffID primitive.ObjectID `json:"staff_id"`
	Email   string             `json:"email"`
	Name    string             `json:"name"`
}
