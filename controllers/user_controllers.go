package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/food-ordering/services"
	"github.com/yeremiapane/food-ordering/utils"
)

type UserController struct {
	Auth *services.AuthService
}

func NewUserController(auth *services.AuthService) *UserController {
	return &UserController{Auth: auth}
}

// Register creates an account and returns its first token.
func (uc *UserController) Register(c *gin.Context) {
	var req struct {
		User     string `json:"user" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	res, err := uc.Auth.Register(c.Request.Context(), req.User, req.Email, req.Password)
	if err != nil {
		respondServiceError(c, "registering user", err)
		return
	}

	utils.InfoLogger.Infof("New user registered: %s (role=%s)", res.User.Email, res.User.Role)
	utils.RespondMessage(c, http.StatusCreated, "User created successfully", gin.H{
		"token":    res.Token,
		"role":     res.User.Role,
		"username": res.User.Username,
	})
}

func (uc *UserController) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	res, err := uc.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(c, "logging in", err)
		return
	}

	utils.RespondMessage(c, http.StatusOK, "Login successful", gin.H{
		"token":    res.Token,
		"role":     res.User.Role,
		"username": res.User.Username,
	})
}
