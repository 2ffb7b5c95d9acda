package media

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"
)

var ErrUploadFailed = errors.New("upload failed")

type cloudinaryUploader struct {
	cld    *cloudinary.Cloudinary
	logger *zap.Logger
}

// DI
// usecase側のMediaUploaderを満たすCloudinary実装。
func NewCloudinaryUploader(cloudName, apiKey, apiSecret string, logger *zap.Logger) (*cloudinaryUploader, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, err
	}
	return &cloudinaryUploader{cld: cld, logger: logger}, nil
}

// ローカルファイルをCloudinaryへアップロードしてURLを返す。
// リトライはしない。成否に関わらずローカルの一時ファイルは消す。
func (u *cloudinaryUploader) Upload(ctx context.Context, localPath string) (string, error) {
	if localPath == "" {
		return "", ErrUploadFailed
	}

	defer removeIfExists(localPath)

	resp, err := u.cld.Upload.Upload(ctx, localPath, uploader.UploadParams{
		ResourceType: "auto",
	})
	if err != nil {
		u.logger.Error("cloudinary upload failed",
			zap.String("path", localPath),
			zap.Error(err),
		)
		return "", ErrUploadFailed
	}
	if resp == nil || resp.SecureURL == "" {
		return "", ErrUploadFailed
	}

	return resp.SecureURL, nil
}

// URLからpublic IDを割り出して削除する。
// 旧画像の後始末なので失敗してもエラーは返さずログだけ。
func (u *cloudinaryUploader) Destroy(ctx context.Context, assetURL string) error {
	publicID := publicIDFromURL(assetURL)
	if publicID == "" {
		return nil
	}

	if _, err := u.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		u.logger.Warn("cloudinary destroy failed",
			zap.String("public_id", publicID),
			zap.Error(err),
		)
	}
	return nil
}

// .../upload/v12345/<public_id>.<ext> からpublic_idを取り出す
func publicIDFromURL(assetURL string) string {
	parts := strings.Split(assetURL, "/")

	uploadIndex := -1
	for i, p := range parts {
		if p == "upload" {
			uploadIndex = i
			break
		}
	}
	if uploadIndex == -1 || uploadIndex+2 >= len(parts) {
		return ""
	}

	// "v12345"のバージョン部分を飛ばす
	publicID := strings.Join(parts[uploadIndex+2:], "/")

	if dot := strings.LastIndex(publicID, "."); dot != -1 {
		publicID = publicID[:dot]
	}
	return publicID
}

func removeIfExists(path string) {
	if _, err := os.Stat(path); err == nil {
		_ = os.Remove(path)
	}
}
