package handler

import (
	"net/http"

	"github.com/DipakKumarChauhan/SubStream/internal/middleware"
	"github.com/DipakKumarChauhan/SubStream/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AccountHandler struct {
	uc      *usecase.AccountUsecase
	tempDir string
}

// DI
func NewAccountHandler(uc *usecase.AccountUsecase, tempDir string) *AccountHandler {
	return &AccountHandler{uc: uc, tempDir: tempDir}
}

type updateAccountRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// CurrentUserはGET /current-user のハンドラ。
// Session Boundaryが解決した本人をそのまま返す。
func (h *AccountHandler) CurrentUser(c echo.Context) error {
	user, okUser := middleware.CurrentUser(c)
	if !okUser {
		return writeErrorJSON(c, http.StatusUnauthorized, "Unauthorized request")
	}

	return ok(c, http.StatusOK, user, "Current user fetched successfully")
}

// UpdateAccountはPATCH /update-account のハンドラ。
func (h *AccountHandler) UpdateAccount(c echo.Context) error {
	userID, okID := middleware.CurrentUserID(c)
	if !okID {
		return writeErrorJSON(c, http.StatusUnauthorized, "Unauthorized request")
	}

	var req updateAccountRequest
	if err := c.Bind(&req); err != nil {
		return writeErrorJSON(c, http.StatusBadRequest, "Invalid request body")
	}

	out, err := h.uc.UpdateAccountDetails(c.Request().Context(), userID, req.FullName, req.Email)
	if err != nil {
		return writeError(c, err)
	}

	return ok(c, http.StatusOK, out, "Account details updated successfully")
}

// UpdateAvatarはPATCH /avatar のハンドラ（multipart）。
func (h *AccountHandler) UpdateAvatar(c echo.Context) error {
	userID, okID := middleware.CurrentUserID(c)
	if !okID {
		return writeErrorJSON(c, http.StatusUnauthorized, "Unauthorized request")
	}

	path, err := saveFormFile(c, "avatar", h.tempDir)
	if err != nil {
		return writeError(c, usecase.ErrInternal)
	}

	out, err := h.uc.UpdateAvatar(c.Request().Context(), userID, path)
	if err != nil {
		return writeError(c, err)
	}

	return ok(c, http.StatusOK, out, "Avatar updated successfully")
}

// UpdateCoverImageはPATCH /cover-image のハンドラ（multipart）。
func (h *AccountHandler) UpdateCoverImage(c echo.Context) error {
	userID, okID := middleware.CurrentUserID(c)
	if !okID {
		return writeErrorJSON(c, http.StatusUnauthorized, "Unauthorized request")
	}

	path, err := saveFormFile(c, "coverImage", h.tempDir)
	if err != nil {
		return writeError(c, usecase.ErrInternal)
	}

	out, err := h.uc.UpdateCoverImage(c.Request().Context(), userID, path)
	if err != nil {
		return writeError(c, err)
	}

	return ok(c, http.StatusOK, out, "Cover image updated successfully")
}
