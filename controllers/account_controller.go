package controllers

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/reactivities/reactivities-go/models"
	"github.com/reactivities/reactivities-go/types"
	"github.com/reactivities/reactivities-go/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AccountController struct {
	DB *gorm.DB
}

func NewAccountController(db *gorm.DB) *AccountController {
	return &AccountController{DB: db}
}

// validateUsernamePattern validates username format and constraints
func validateUsernamePattern(username string) error {
	trimmedUsername := strings.TrimSpace(username)

	if len(trimmedUsername) < 3 {
		return fmt.Errorf("username must be at least 3 characters long")
	}

	if len(trimmedUsername) > 20 {
		return fmt.Errorf("username must be no more than 20 characters long")
	}

	// Must start with a letter
	startsWithLetter, _ := regexp.MatchString(`^[a-zA-Z]`, trimmedUsername)
	if !startsWithLetter {
		return fmt.Errorf("username must start with a letter")
	}

	// Letters, numbers and underscores only
	validPattern, _ := regexp.MatchString(`^[a-zA-Z][a-zA-Z0-9_]*$`, trimmedUsername)
	if !validPattern {
		return fmt.Errorf("username can only contain letters, numbers, and underscores")
	}

	reserved := []string{"admin", "root", "api", "www", "mail", "ftp", "test", "demo", "user", "guest", "null", "undefined"}
	for _, reservedWord := range reserved {
		if strings.ToLower(trimmedUsername) == reservedWord {
			return fmt.Errorf("this username is reserved and cannot be used")
		}
	}

	return nil
}

// Register godoc
// @Summary Register a new user
// @Description Creates an account and returns the user with a signed token
// @Tags account
// @Accept json
// @Produce json
// @Success 200 {object} types.User
// @Router /account/register [post]
func (ac *AccountController) Register(c *gin.Context) {
	var input struct {
		Email       string `json:"email" binding:"required,email"`
		Password    string `json:"password" binding:"required,min=6"`
		DisplayName string `json:"displayName" binding:"required"`
		Username    string `json:"username" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		abortWithBindingError(c, err)
		return
	}

	if err := validateUsernamePattern(input.Username); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, types.NewValidationError(types.ValidationErrors{
			"username": {err.Error()},
		}))
		return
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not hash password", "")
		return
	}

	user := models.User{
		Username:    strings.TrimSpace(input.Username),
		DisplayName: input.DisplayName,
		Email:       normalizeEmail(input.Email),
		Password:    string(hashedPassword),
	}

	if err := ac.DB.Create(&user).Error; err != nil {
		if isUniqueViolation(err) {
			abortWithError(c, http.StatusConflict, "Username or email already exists", "")
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Could not create user", "")
		return
	}

	token, err := utils.GenerateToken(&user)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not generate token", "")
		return
	}

	c.JSON(http.StatusOK, toUser(user, token))
}

// Login godoc
// @Summary Log in with email and password
// @Description Returns the user with a signed token on success
// @Tags account
// @Accept json
// @Produce json
// @Success 200 {object} types.User
// @Router /account/login [post]
func (ac *AccountController) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		abortWithBindingError(c, err)
		return
	}

	var user models.User
	if err := ac.DB.Where("email = ?", normalizeEmail(input.Email)).First(&user).Error; err != nil {
		abortWithError(c, http.StatusUnauthorized, "Invalid credentials", "")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		abortWithError(c, http.StatusUnauthorized, "Invalid credentials", "")
		return
	}

	token, err := utils.GenerateToken(&user)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not generate token", "")
		return
	}

	c.JSON(http.StatusOK, toUser(user, token))
}

// Current godoc
// @Summary Get the current user
// @Description Returns the authenticated user with a refreshed token
// @Tags account
// @Produce json
// @Success 200 {object} types.User
// @Router /account [get]
func (ac *AccountController) Current(c *gin.Context) {
	claims := utils.GetUser(c)
	if claims == nil {
		abortWithError(c, http.StatusUnauthorized, "Invalid token claims", "")
		return
	}

	var user models.User
	if err := ac.DB.First(&user, claims.UserID).Error; err != nil {
		abortWithError(c, http.StatusUnauthorized, "User not found", "")
		return
	}

	token, err := utils.GenerateToken(&user)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not generate token", "")
		return
	}

	c.JSON(http.StatusOK, toUser(user, token))
}
