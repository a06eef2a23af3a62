package service

import (
	"Moments/config"
	"Moments/models"
	"bytes"
	"context"
	"crypto/md5"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/nfnt/resize"
)

var _ IAvatarService = (*AvatarService)(nil)

type IAvatarService interface {
	// Generate 根据种子生成默认头像, 返回 s, m, l 三个文件名
	Generate(ctx context.Context, seed string) ([3]string, error)
	// SaveRaw 保存上传的原始头像, 返回文件名
	SaveRaw(ctx context.Context, filename string, r io.Reader) (string, error)
	// Crop 从原始头像裁剪出三种尺寸
	Crop(ctx context.Context, raw string, x, y, w, h int) ([3]string, error)
}

type AvatarService struct {
	Config  *config.Config
	Storage IStorage
}

var avatarSuffixes = [3]string{"_s", "_m", "_l"}

// identicon 网格边长
const identiconGrid = 5

func (s *AvatarService) Generate(ctx context.Context, seed string) ([3]string, error) {
	sizes := s.Config.Moments.AvatarSizes
	base := identicon(seed, sizes[2])
	return s.saveSizes(ctx, base)
}

func (s *AvatarService) SaveRaw(ctx context.Context, filename string, r io.Reader) (string, error) {
	data, err := readUpload(r, s.Config.Moments.MaxUploadSize)
	if err != nil {
		return "", err
	}
	if _, _, err := decodeUpload(filename, data); err != nil {
		return "", err
	}
	name := renameImage(filename)
	if err := s.Storage.Save(ctx, models.AvatarKey(name), data); err != nil {
		return "", err
	}
	return name, nil
}

func (s *AvatarService) Crop(ctx context.Context, raw string, x, y, w, h int) ([3]string, error) {
	var names [3]string
	rc, err := s.Storage.Open(ctx, models.AvatarKey(raw))
	if err != nil {
		return names, err
	}
	defer rc.Close()

	src, _, err := image.Decode(rc)
	if err != nil {
		return names, ErrInvalidImage
	}
	rect := image.Rect(x, y, x+w, y+h).Add(src.Bounds().Min).Intersect(src.Bounds())
	if rect.Empty() {
		return names, ErrInvalidImage
	}
	cropped := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(cropped, cropped.Bounds(), src, rect.Min, draw.Src)
	return s.saveSizes(ctx, cropped)
}

// saveSizes 缩放到三种尺寸并以 png 保存
func (s *AvatarService) saveSizes(ctx context.Context, img image.Image) ([3]string, error) {
	var names [3]string
	stem := strings.ReplaceAll(uuid.NewString(), "-", "")
	for i, size := range s.Config.Moments.AvatarSizes {
		resized := resize.Resize(uint(size), uint(size), img, resize.Lanczos3)
		var buf bytes.Buffer
		if err := png.Encode(&buf, resized); err != nil {
			return names, err
		}
		name := stem + avatarSuffixes[i] + ".png"
		if err := s.Storage.Save(ctx, models.AvatarKey(name), buf.Bytes()); err != nil {
			return names, err
		}
		names[i] = name
	}
	return names, nil
}

// identicon 由种子哈希决定颜色和左右对称的 5x5 图案
func identicon(seed string, size int) image.Image {
	sum := md5.Sum([]byte(seed))
	fg := color.RGBA{R: sum[0], G: sum[1], B: sum[2], A: 0xff}
	bg := color.RGBA{R: 0xf0, G: 0xf0, B: 0xf0, A: 0xff}

	cell := size / (identiconGrid + 1)
	pad := (size - cell*identiconGrid) / 2
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: bg}, image.Point{}, draw.Src)

	half := (identiconGrid + 1) / 2
	for row := 0; row < identiconGrid; row++ {
		for col := 0; col < half; col++ {
			bit := row*half + col
			if sum[3+bit/8]>>(bit%8)&1 == 0 {
				continue
			}
			for _, c := range []int{col, identiconGrid - 1 - col} {
				r := image.Rect(pad+c*cell, pad+row*cell, pad+(c+1)*cell, pad+(row+1)*cell)
				draw.Draw(img, r, &image.Uniform{C: fg}, image.Point{}, draw.Src)
			}
		}
	}
	return img
}
