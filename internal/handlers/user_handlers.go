package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/01moynul/storefront-api/internal/middleware"
	"github.com/01moynul/storefront-api/internal/response"
	"github.com/01moynul/storefront-api/internal/users"
)

// --- Auth ---

// RegisterInput is kept separate from models.User so a client can never
// choose its own id or role.
type RegisterInput struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// Register is the handler for POST /auth/register.
func (h *Handlers) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}

	session, err := h.Auth.Register(c.Request.Context(), input.Username, input.Email, input.Password)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusCreated, "Registration successful", session)
}

// LoginInput accepts either a username or an email as the login name.
type LoginInput struct {
	Login    string `json:"login"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required"`
}

// Login is the handler for POST /auth/login.
func (h *Handlers) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}
	login := firstOf(input.Login, input.Username, input.Email)
	if login == "" {
		response.Fail(c, http.StatusBadRequest, "Username or email is required", nil)
		return
	}

	session, err := h.Auth.Login(c.Request.Context(), login, input.Password)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "Login successful", session)
}

// Logout is the handler for POST /auth/logout. Tokens are stateless, so the
// client simply discards its copy.
func (h *Handlers) Logout(c *gin.Context) {
	response.OK(c, http.StatusOK, "Logout successful", nil)
}

// Me is the handler for GET /auth/profile.
func (h *Handlers) Me(c *gin.Context) {
	u, err := h.Auth.Profile(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "Profile retrieved", u)
}

// --- Users ---

// GetUser is the handler for GET /users/:id.
func (h *Handlers) GetUser(c *gin.Context) {
	id, ok := targetUser(c)
	if !ok {
		return
	}
	p, err := h.Users.GetProfile(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "User retrieved", p)
}

type profileInput struct {
	FirstName    string `json:"first_name"`
	NamaDepan    string `json:"namaDepan"`
	LastName     string `json:"last_name"`
	NamaBelakang string `json:"namaBelakang"`
	Phone        string `json:"phone"`
	NoTelp       string `json:"no_telp"`
	Address      string `json:"address"`
	Alamat       string `json:"alamat"`
}

// UpdateUser is the handler for PUT /users/:id.
func (h *Handlers) UpdateUser(c *gin.Context) {
	id, ok := targetUser(c)
	if !ok {
		return
	}
	var input profileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}

	p, err := h.Users.UpdateProfile(c.Request.Context(), id, users.ProfileInput{
		FirstName: firstOf(input.FirstName, input.NamaDepan),
		LastName:  firstOf(input.LastName, input.NamaBelakang),
		Phone:     firstOf(input.Phone, input.NoTelp),
		Address:   firstOf(input.Address, input.Alamat),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "Profile updated", p)
}

type changePasswordInput struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

// ChangePassword is the handler for PUT /users/:id/password.
func (h *Handlers) ChangePassword(c *gin.Context) {
	id, ok := targetUser(c)
	if !ok {
		return
	}
	var input changePasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}
	if err := h.Users.ChangePassword(c.Request.Context(), id, input.CurrentPassword, input.NewPassword); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "Password changed", nil)
}

// --- Addresses ---

type addressInput struct {
	Label         string `json:"label"`
	RecipientName string `json:"recipient_name" binding:"required"`
	Phone         string `json:"phone" binding:"required"`
	Address       string `json:"address" binding:"required"`
	IsPrimary     bool   `json:"is_primary"`
}

func (in addressInput) toInput() users.AddressInput {
	return users.AddressInput{
		Label:         in.Label,
		RecipientName: in.RecipientName,
		Phone:         in.Phone,
		Address:       in.Address,
		IsPrimary:     in.IsPrimary,
	}
}

// ListAddresses is the handler for GET /users/:id/addresses.
func (h *Handlers) ListAddresses(c *gin.Context) {
	id, ok := targetUser(c)
	if !ok {
		return
	}
	list, err := h.Users.ListAddresses(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "Addresses retrieved", list)
}

// AddAddress is the handler for POST /users/:id/addresses.
func (h *Handlers) AddAddress(c *gin.Context) {
	id, ok := targetUser(c)
	if !ok {
		return
	}
	var input addressInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}
	a, err := h.Users.AddAddress(c.Request.Context(), id, input.toInput())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusCreated, "Address added", a)
}

// UpdateAddress is the handler for PUT /users/:id/addresses/:addressId.
func (h *Handlers) UpdateAddress(c *gin.Context) {
	id, ok := targetUser(c)
	if !ok {
		return
	}
	addressID, ok := paramID(c, "addressId")
	if !ok {
		return
	}
	var input addressInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}
	a, err := h.Users.UpdateAddress(c.Request.Context(), id, addressID, input.toInput())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "Address updated", a)
}

// DeleteAddress is the handler for DELETE /users/:id/addresses/:addressId.
func (h *Handlers) DeleteAddress(c *gin.Context) {
	id, ok := targetUser(c)
	if !ok {
		return
	}
	addressID, ok := paramID(c, "addressId")
	if !ok {
		return
	}
	if err := h.Users.DeleteAddress(c.Request.Context(), id, addressID); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "Address deleted", nil)
}
