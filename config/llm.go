package config

// LLM 照片标签推荐, 兼容 OpenAI 协议的多模态模型
type LLM struct {
	APIKey  string `json:"api_key" yaml:"api_key"`
	BaseURL string `json:"base_url" yaml:"base_url"`
	Model   string `json:"model" yaml:"model"`
}

func ProvideLLMConfig(cfg *Config) *LLM {
	return cfg.LLM
}
