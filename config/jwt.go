package config

import "time"

type Jwt struct {
	Secret string `json:"secret" yaml:"secret"`
	// access token 有效期(秒)
	ExpiresTime int64 `json:"expires_time" yaml:"expires_time"`
	// 确认邮箱, 重置密码, 修改邮箱等一次性令牌有效期(秒)
	OperationExpiresTime int64 `json:"operation_expires_time" yaml:"operation_expires_time"`
}

func (j *Jwt) applyDefaults() {
	if j.Secret == "" {
		j.Secret = "secret string"
	}
	if j.ExpiresTime == 0 {
		j.ExpiresTime = 7 * 24 * 3600
	}
	if j.OperationExpiresTime == 0 {
		j.OperationExpiresTime = 3600
	}
}

func (j *Jwt) AccessExpire() time.Duration {
	return time.Duration(j.ExpiresTime) * time.Second
}

func (j *Jwt) OperationExpire() time.Duration {
	return time.Duration(j.OperationExpiresTime) * time.Second
}
