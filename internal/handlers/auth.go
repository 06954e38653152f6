package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"walletapp/internal/service"
)

const (
	msgUserCreated   = "user created successfully"
	errMsgBadCreds   = "invalid credentials"
	errMsgDuplicate  = "username already taken"
	errMsgSignUpFail = "failed to create user"
	errMsgSignInFail = "failed to sign in"
)

type signUpRequest struct {
	Username  string `json:"username" binding:"required,email"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Password  string `json:"password" binding:"required"`
}

type signInRequest struct {
	Username string `json:"username" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// bindJSONOrFail tries to bind the request body into dst and writes a JSON
// error with the given status on failure. Returns false if already handled.
func (h *Handler) bindJSONOrFail(c *gin.Context, dst any, status int) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("bad_request_body", "path", c.FullPath(), "err", err)
		}
		c.JSON(status, gin.H{"error": "invalid inputs"})
		return false
	}
	return true
}

// @Summary      Sign up
// @Description  Creates a user plus a linked account with a starting balance and returns a token.
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        body  body      signUpRequest  true  "Signup payload"
// @Success      201   {object}  map[string]string  "message, token"
// @Failure      411   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/user/signup [post]
func (h *Handler) signUp(c *gin.Context) {
	var input signUpRequest
	// 411 for malformed signup payloads is part of the public contract.
	if ok := h.bindJSONOrFail(c, &input, http.StatusLengthRequired); !ok {
		return
	}

	token, err := h.services.SignUp(c.Request.Context(), service.SignUpParams{
		Username:  input.Username,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Password:  input.Password,
	})
	if err != nil {
		if errors.Is(err, service.ErrDuplicateUsername) {
			c.JSON(http.StatusConflict, gin.H{"error": errMsgDuplicate})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errMsgSignUpFail, "sign_up_failed", err, "username", input.Username)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": msgUserCreated,
		"token":   token,
	})
}

// @Summary      Sign in
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        body  body      signInRequest  true  "Signin payload"
// @Success      200   {object}  map[string]string  "token"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/user/signin [post]
func (h *Handler) signIn(c *gin.Context) {
	var input signInRequest
	if ok := h.bindJSONOrFail(c, &input, http.StatusBadRequest); !ok {
		return
	}

	token, err := h.services.SignIn(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			if h.log != nil {
				h.log.Infow("sign_in_rejected", "username", input.Username)
			}
			c.JSON(http.StatusUnauthorized, gin.H{"error": errMsgBadCreds})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errMsgSignInFail, "sign_in_failed", err, "username", input.Username)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
