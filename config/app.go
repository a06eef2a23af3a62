package config

type App struct {
	Env     string `json:"env" yaml:"env"`
	Debug   bool   `json:"debug" yaml:"debug"`
	Name    string `json:"name" yaml:"name"`
	BaseURL string `json:"base_url" yaml:"base_url"`
}
