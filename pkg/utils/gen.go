package utils

import (
	"errors"

	"github.com/speps/go-hashids/v2"
)

func newHashID(salt string) (*hashids.HashID, error) {
	hd := hashids.NewData()
	hd.Salt = salt
	hd.MinLength = 12
	return hashids.NewWithData(hd)
}

// GenHashID 把自增 ID 编码成不可猜测的分享码
func GenHashID(salt string, id uint64) string {
	h, err := newHashID(salt)
	if err != nil {
		return ""
	}
	e, _ := h.EncodeInt64([]int64{int64(id)})
	return e
}

// DecodeHashID 分享码还原为 ID
func DecodeHashID(salt, code string) (uint64, error) {
	h, err := newHashID(salt)
	if err != nil {
		return 0, err
	}
	ids, err := h.DecodeInt64WithError(code)
	if err != nil {
		return 0, err
	}
	if len(ids) != 1 || ids[0] <= 0 {
		return 0, errors.New("invalid hash id")
	}
	return uint64(ids[0]), nil
}
