package service

import (
	"bytes"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/nfnt/resize"
	_ "golang.org/x/image/webp"
)

const jpegQuality = 85

var allowedImageExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// renameImage 用随机 uuid 重命名, 保留小写扩展名
func renameImage(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return strings.ReplaceAll(uuid.NewString(), "-", "") + ext
}

// readUpload 读取上传内容, 超过 limit 字节返回 ErrFileTooLarge
func readUpload(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, ErrFileTooLarge
	}
	if len(data) == 0 {
		return nil, ErrInvalidImage
	}
	return data, nil
}

const (
	maxImageSide   = 12000
	maxImagePixels = 50_000_000
)

// decodeUpload 校验扩展名并解码
func decodeUpload(filename string, data []byte) (image.Image, string, error) {
	if !allowedImageExt[strings.ToLower(filepath.Ext(filename))] {
		return nil, "", ErrInvalidImage
	}
	// 先读头部尺寸, 小文件也可能解码出巨大的位图
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil || cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, "", ErrInvalidImage
	}
	if cfg.Width > maxImageSide || cfg.Height > maxImageSide || cfg.Width*cfg.Height > maxImagePixels {
		return nil, "", ErrInvalidImage
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", ErrInvalidImage
	}
	return img, format, nil
}

// encodeImage 按原格式编码, webp 没有编码器, 转为 jpeg. 返回编码后的扩展名
func encodeImage(img image.Image, format string) ([]byte, string, error) {
	var buf bytes.Buffer
	var ext string
	var err error
	switch format {
	case "png":
		ext, err = ".png", png.Encode(&buf, img)
	case "gif":
		ext, err = ".gif", gif.Encode(&buf, img, nil)
	default:
		ext, err = ".jpg", jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality})
	}
	if err != nil {
		return nil, "", err
	}
	return buf.Bytes(), ext, nil
}

// variant 生成宽度为 base 的缩略图. 原图不比 base 宽时不生成, 直接使用原图
func variant(img image.Image, format, filename string, base int, suffix string) (string, []byte, error) {
	if img.Bounds().Dx() <= base {
		return filename, nil, nil
	}
	resized := resize.Resize(uint(base), 0, img, resize.Lanczos3)
	data, ext, err := encodeImage(resized, format)
	if err != nil {
		return "", nil, err
	}
	stem := strings.TrimSuffix(filename, filepath.Ext(filename))
	if format == "jpeg" {
		// 保留 jpg/jpeg 原扩展名
		ext = filepath.Ext(filename)
	}
	return stem + suffix + ext, data, nil
}
