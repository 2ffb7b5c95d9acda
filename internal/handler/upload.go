package handler

import (
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// multipartのファイルを一時ディレクトリへ保存してパスを返す。
// フィールドが無いときは("", nil)。必須かどうかは呼び出し側が決める。
// Cloudinaryへ上げたあとの削除はuploader側がやる。
func saveFormFile(c echo.Context, field string, dir string) (string, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		// 無ければ空で返す。必須チェックはvalidator側
		return "", nil
	}

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	// 元のファイル名は衝突するのでuuidを前置する
	dstPath := filepath.Join(dir, uuid.NewString()+"-"+filepath.Base(fh.Filename))

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		_ = os.Remove(dstPath)
		return "", err
	}

	return dstPath, nil
}
