package handler

import (
	"net/http"

	"github.com/DipakKumarChauhan/SubStream/internal/middleware"
	"github.com/DipakKumarChauhan/SubStream/internal/usecase"

	"github.com/labstack/echo/v4"
)

const (
	accessTokenCookie  = "accessToken"
	refreshTokenCookie = "refreshToken"
)

type AuthHandler struct {
	uc           *usecase.AuthUsecase
	cookieSecure bool
	tempDir      string // multipartの一時保存先
}

// DIコンストラクタ
func NewAuthHandler(uc *usecase.AuthUsecase, cookieSecure bool, tempDir string) *AuthHandler {
	return &AuthHandler{
		uc:           uc,
		cookieSecure: cookieSecure,
		tempDir:      tempDir,
	}
}

// /login のリクエストボディ。
type loginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// /refresh-token のリクエストボディ（cookieが無いクライアント用）。
type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// /change-password のリクエストボディ。
type changePasswordRequest struct {
	OldPassword     string `json:"oldPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// RegisterはPOST /register のハンドラ。
// multipart form（テキスト項目 + avatar/coverImageファイル）を受ける。
func (h *AuthHandler) Register(c echo.Context) error {
	avatarPath, err := saveFormFile(c, "avatar", h.tempDir)
	if err != nil {
		return writeError(c, usecase.ErrInternal)
	}
	coverPath, err := saveFormFile(c, "coverImage", h.tempDir)
	if err != nil {
		return writeError(c, usecase.ErrInternal)
	}

	out, err := h.uc.Register(c.Request().Context(), usecase.RegisterInput{
		FullName:        c.FormValue("fullName"),
		Email:           c.FormValue("email"),
		Username:        c.FormValue("username"),
		Password:        c.FormValue("password"),
		AvatarLocalPath: avatarPath,
		CoverLocalPath:  coverPath,
	})
	if err != nil {
		return writeError(c, err)
	}

	return ok(c, http.StatusCreated, out, "User registered successfully")
}

// LoginはPOST /login のハンドラ。
// トークンはcookieとbodyの両方で返す（cookieを使えないクライアント向け）。
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return writeErrorJSON(c, http.StatusBadRequest, "Invalid request body")
	}

	out, err := h.uc.Login(c.Request().Context(), usecase.LoginInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return writeError(c, err)
	}

	h.setAuthCookies(c, out.Tokens)

	return ok(c, http.StatusOK, echo.Map{
		"user":         out.User,
		"accessToken":  out.Tokens.AccessToken,
		"refreshToken": out.Tokens.RefreshToken,
	}, "User logged in successfully")
}

// LogoutはPOST /logout のハンドラ。Session Boundary必須。
func (h *AuthHandler) Logout(c echo.Context) error {
	userID, okID := middleware.CurrentUserID(c)
	if !okID {
		return writeErrorJSON(c, http.StatusUnauthorized, "Unauthorized request")
	}

	if err := h.uc.Logout(c.Request().Context(), userID); err != nil {
		return writeError(c, err)
	}

	h.clearAuthCookies(c)

	return ok(c, http.StatusOK, echo.Map{}, "User logged out")
}

// RefreshはPOST /refresh-token のハンドラ。
// refreshトークンはcookie優先、なければbodyから読む。
func (h *AuthHandler) Refresh(c echo.Context) error {
	incoming := ""
	if cookie, err := c.Cookie(refreshTokenCookie); err == nil {
		incoming = cookie.Value
	}
	if incoming == "" {
		var req refreshRequest
		if err := c.Bind(&req); err == nil {
			incoming = req.RefreshToken
		}
	}

	pair, err := h.uc.RefreshAccessToken(c.Request().Context(), incoming)
	if err != nil {
		return writeError(c, err)
	}

	h.setAuthCookies(c, *pair)

	return ok(c, http.StatusOK, pair, "Access token refreshed")
}

// ChangePasswordはPOST /change-password のハンドラ。Session Boundary必須。
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	userID, okID := middleware.CurrentUserID(c)
	if !okID {
		return writeErrorJSON(c, http.StatusUnauthorized, "Unauthorized request")
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return writeErrorJSON(c, http.StatusBadRequest, "Invalid request body")
	}

	if err := h.uc.ChangePassword(c.Request().Context(), userID, req.OldPassword, req.NewPassword, req.ConfirmPassword); err != nil {
		return writeError(c, err)
	}

	return ok(c, http.StatusOK, echo.Map{}, "Password changed successfully")
}

// 両トークンをcookieへ。HttpOnly+Secureでセッションスコープ
//（Max-Ageは付けない）。
func (h *AuthHandler) setAuthCookies(c echo.Context, pair usecase.TokenPair) {
	c.SetCookie(h.authCookie(accessTokenCookie, pair.AccessToken, 0))
	c.SetCookie(h.authCookie(refreshTokenCookie, pair.RefreshToken, 0))
}

// 両cookieを削除
func (h *AuthHandler) clearAuthCookies(c echo.Context) {
	c.SetCookie(h.authCookie(accessTokenCookie, "", -1))
	c.SetCookie(h.authCookie(refreshTokenCookie, "", -1))
}

func (h *AuthHandler) authCookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	}
}
