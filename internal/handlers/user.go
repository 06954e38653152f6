package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"walletapp/internal/service"
)

const (
	msgUpdated       = "updated successfully"
	errMsgUpdateFail = "failed to update profile"
	errMsgSearchFail = "failed to search users"
	errMsgMeFail     = "failed to load profile"
)

// updateRequest: any subset of fields; absent fields stay unchanged.
type updateRequest struct {
	Password  *string `json:"password"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}

// @Summary      Update own profile
// @Description  Partial update of password/firstName/lastName for the token's user.
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        body  body      updateRequest  true  "Fields to change"
// @Success      200   {object}  map[string]string  "message"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/user [put]
// @Security     BearerAuth
func (h *Handler) updateProfile(c *gin.Context) {
	var input updateRequest
	if ok := h.bindJSONOrFail(c, &input, http.StatusBadRequest); !ok {
		return
	}

	userID := c.GetString(ctxUserIDKey)
	err := h.services.UpdateProfile(c.Request.Context(), userID, service.ProfileUpdate{
		Password:  input.Password,
		FirstName: input.FirstName,
		LastName:  input.LastName,
	})
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errMsgUpdateFail, "profile_update_failed", err, "user_id", userID)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": msgUpdated})
}

// @Summary      Bulk user search
// @Description  Lists users whose first or last name contains the filter (case-insensitive). Empty filter matches everyone.
// @Tags         user
// @Produce      json
// @Param        filter  query     string  false  "Name substring"
// @Success      200     {object}  map[string]interface{}  "users"
// @Failure      500     {object}  map[string]string
// @Router       /api/v1/user/bulk [get]
func (h *Handler) bulkSearch(c *gin.Context) {
	filter := c.Query("filter")

	users, err := h.services.Search(c.Request.Context(), filter)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errMsgSearchFail, "bulk_search_failed", err, "filter", filter)
		return
	}

	if h.log != nil {
		h.log.Debugw("bulk_search", "filter", filter, "count", len(users))
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// @Summary      Own profile with account
// @Tags         user
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "user, account"
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/user/me [get]
// @Security     BearerAuth
func (h *Handler) profile(c *gin.Context) {
	userID := c.GetString(ctxUserIDKey)

	user, account, err := h.services.Profile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown user"})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errMsgMeFail, "profile_load_failed", err, "user_id", userID)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":    user,
		"account": account,
	})
}
