package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/Rehan-4778/JobHunt-BE/pkg/db/models"
	"github.com/Rehan-4778/JobHunt-BE/pkg/enums"
)

// UserDTO is the transport shape that omits credentials and reset state.
type UserDTO struct {
	ID         uuid.UUID  `json:"id"`
	FirstName  string     `json:"firstName"`
	LastName   string     `json:"lastName"`
	Email      string     `json:"email"`
	MobileNo   *string    `json:"mobileNo,omitempty"`
	Address    *string    `json:"address,omitempty"`
	City       *string    `json:"city,omitempty"`
	Company    *string    `json:"company,omitempty"`
	Role       enums.Role `json:"role"`
	CVURL      *string    `json:"cvUrl,omitempty"`
	IsApproved bool       `json:"isApproved"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
type CreateUserDTO struct {
	FirstName    string
	LastName     string
	Email        string
	MobileNo     *string
	Address      *string
	City         *string
	Company      *string
	PasswordHash string
	Role         enums.Role
	CVURL        *string
	IsApproved   bool
}

// UpdateUserDTO carries the mutable profile fields. Nil pointers leave the
// column untouched.
type UpdateUserDTO struct {
	FirstName *string
	LastName  *string
	Email     *string
	MobileNo  *string
	Address   *string
	City      *string
	Company   *string
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	return &UserDTO{
		ID:         u.ID,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Email:      u.Email,
		MobileNo:   u.MobileNo,
		Address:    u.Address,
		City:       u.City,
		Company:    u.Company,
		Role:       u.Role,
		CVURL:      u.CVURL,
		IsApproved: u.IsApproved,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

func (c CreateUserDTO) ToModel() *models.User {
	return &models.User{
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		Email:        c.Email,
		MobileNo:     c.MobileNo,
		Address:      c.Address,
		City:         c.City,
		Company:      c.Company,
		PasswordHash: c.PasswordHash,
		Role:         c.Role,
		CVURL:        c.CVURL,
		IsApproved:   c.IsApproved,
	}
}
