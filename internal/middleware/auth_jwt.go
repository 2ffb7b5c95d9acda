package middleware

import (
	"net/http"
	"strings"

	"github.com/DipakKumarChauhan/SubStream/internal/domain/model"
	"github.com/DipakKumarChauhan/SubStream/internal/repository"
	"github.com/DipakKumarChauhan/SubStream/internal/usecase"

	"github.com/labstack/echo/v4"
)

const (
	CtxUserKey   = "current_user" // model.User（秘密情報は落とし済み）
	CtxUserIDKey = "user_id"      // string
)

// accessトークンのcookie名。ヘッダより先に見る。
const accessTokenCookie = "accessToken"

// Session Boundary。
// cookieまたはAuthorizationヘッダのトークンを検証して、ユーザーを
// 解決してからhandlerへ渡す。失敗理由は呼び出し側に区別させず
// 一律401を返す。
func AuthJWT(tokens *usecase.TokenUsecase, users repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawToken := extractToken(c)
			if rawToken == "" {
				return unauthorized(c)
			}

			//署名と期限の検証
			claims, err := tokens.VerifyAccessToken(rawToken)
			if err != nil {
				return unauthorized(c)
			}

			//subのユーザーを解決（消えていれば401）
			user, err := users.FindByID(c.Request().Context(), claims.Subject)
			if err != nil || user == nil {
				return unauthorized(c)
			}

			//contextへ保存。password hashとrefresh tokenは落とす
			safe := user.Sanitized()
			c.Set(CtxUserKey, safe)
			c.Set(CtxUserIDKey, safe.ID)

			return next(c)
		}
	}
}

// cookie優先、なければBearerヘッダ
func extractToken(c echo.Context) string {
	if cookie, err := c.Cookie(accessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authz := c.Request().Header.Get("Authorization")
	if authz == "" {
		return ""
	}

	parts := strings.SplitN(authz, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// 401のエンベロープ（成功時と同じ形で統一）
type errorEnvelope struct {
	StatusCode int         `json:"statusCode"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data"`
	Success    bool        `json:"success"`
	Errors     []string    `json:"errors"`
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, errorEnvelope{
		StatusCode: http.StatusUnauthorized,
		Message:    "Unauthorized request",
		Data:       nil,
		Success:    false,
		Errors:     []string{},
	})
}

// contextから解決済みユーザーを取り出す
func CurrentUser(c echo.Context) (model.User, bool) {
	u, ok := c.Get(CtxUserKey).(model.User)
	return u, ok
}

// contextからユーザーIDを取り出す
func CurrentUserID(c echo.Context) (string, bool) {
	id, ok := c.Get(CtxUserIDKey).(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}
