package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"autohub-api/internal/domain"
	"autohub-api/internal/service"
	resp "autohub-api/internal/transport/http/response"
)

type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler { return &AuthHandler{auth: auth} }

type registerReq struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"firstName" binding:"required,max=64"`
	LastName  string `json:"lastName" binding:"required,max=64"`
	Phone     string `json:"phone" binding:"omitempty,max=32"`
	Avatar    string `json:"avatar" binding:"omitempty,url"`
}

type loginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type googleReq struct {
	GoogleID  string `json:"googleId" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Avatar    string `json:"avatar"`
}

type authPayload struct {
	Token string        `json:"token"`
	User  *userView     `json:"user,omitempty"`
	Admin *domain.Admin `json:"admin,omitempty"`
}

type userView struct {
	ID             uint   `json:"id"`
	Email          string `json:"email"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Phone          string `json:"phone,omitempty"`
	Avatar         string `json:"avatar,omitempty"`
	LoyaltyPoints  int    `json:"loyaltyPoints"`
	MembershipTier string `json:"membershipTier"`
	EmailVerified  bool   `json:"emailVerified"`
	CreatedAt      string `json:"createdAt"`
}

func toUserView(u *domain.User) *userView {
	return &userView{
		ID:             u.ID,
		Email:          u.Email,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Phone:          u.Phone,
		Avatar:         u.Avatar,
		LoyaltyPoints:  u.LoyaltyPoints,
		MembershipTier: u.MembershipTier,
		EmailVerified:  u.EmailVerified,
		CreatedAt:      u.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Fail(c, http.StatusBadRequest, "required fields: email, password, firstName, lastName")
		return
	}
	res, err := h.auth.Register(c.Request.Context(), service.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Avatar:    req.Avatar,
	})
	if err != nil {
		resp.Err(c, err)
		return
	}
	resp.Created(c, authPayload{Token: res.Token, User: toUserView(res.User)}, "user registered successfully")
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Fail(c, http.StatusBadRequest, "email and password are required")
		return
	}
	res, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		resp.Err(c, err)
		return
	}
	resp.OK(c, authPayload{Token: res.Token, User: toUserView(res.User)})
}

func (h *AuthHandler) Google(c *gin.Context) {
	var req googleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Fail(c, http.StatusBadRequest, "googleId and email are required")
		return
	}
	res, err := h.auth.LoginGoogle(c.Request.Context(), service.GoogleLoginInput{
		GoogleID:  req.GoogleID,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Avatar:    req.Avatar,
	})
	if err != nil {
		resp.Err(c, err)
		return
	}
	resp.OK(c, authPayload{Token: res.Token, User: toUserView(res.User)})
}

func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Fail(c, http.StatusBadRequest, "email and password are required")
		return
	}
	res, err := h.auth.AdminLogin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		resp.Err(c, err)
		return
	}
	a := res.Admin
	resp.OK(c, gin.H{
		"token": res.Token,
		"admin": gin.H{
			"id":          a.ID,
			"email":       a.Email,
			"firstName":   a.FirstName,
			"lastName":    a.LastName,
			"role":        a.Role,
			"permissions": a.PermissionList(),
			"avatar":      a.Avatar,
			"createdAt":   a.CreatedAt,
		},
	})
}
