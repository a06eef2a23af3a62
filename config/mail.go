package config

type Mail struct {
	Server        string `json:"server" yaml:"server"`
	Port          int    `json:"port" yaml:"port"`
	UseSSL        bool   `json:"use_ssl" yaml:"use_ssl"`
	Username      string `json:"username" yaml:"username"`
	Password      string `json:"password" yaml:"password"`
	DefaultSender string `json:"default_sender" yaml:"default_sender"`
	SubjectPrefix string `json:"subject_prefix" yaml:"subject_prefix"`
	// outbox 扫描间隔(秒)
	PollInterval int `json:"poll_interval" yaml:"poll_interval"`
	Workers      int `json:"workers" yaml:"workers"`
	MaxAttempts  int `json:"max_attempts" yaml:"max_attempts"`
	// 重试退避基数(秒), 第 n 次失败后等待 base * 2^(n-1)
	RetryBackoff int `json:"retry_backoff" yaml:"retry_backoff"`
}

func (m *Mail) applyDefaults() {
	if m.Port == 0 {
		m.Port = 465
	}
	if m.DefaultSender == "" {
		m.DefaultSender = "Moments Admin <noreply@moments.local>"
	}
	if m.SubjectPrefix == "" {
		m.SubjectPrefix = "[Moments]"
	}
	if m.PollInterval == 0 {
		m.PollInterval = 5
	}
	if m.Workers == 0 {
		m.Workers = 4
	}
	if m.MaxAttempts == 0 {
		m.MaxAttempts = 5
	}
	if m.RetryBackoff == 0 {
		m.RetryBackoff = 30
	}
}
