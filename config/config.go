package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config 配置信息
type Config struct {
	App      *App            `json:"app" yaml:"app"`
	Server   *Server         `json:"server" yaml:"server"`
	Database *Database       `json:"database" yaml:"database"`
	Redis    *Redis          `json:"redis" yaml:"redis"`
	Jwt      *Jwt            `json:"jwt" yaml:"jwt"`
	Storage  *Storage        `json:"storage" yaml:"storage"`
	Oss      *OssConfig      `json:"oss" yaml:"oss"`
	Mail     *Mail           `json:"mail" yaml:"mail"`
	RocketMQ *RocketMQConfig `json:"rocketmq" yaml:"rocketmq"`
	LLM      *LLM            `json:"llm" yaml:"llm"`
	Moments  *Moments        `json:"moments" yaml:"moments"`
}

type Server struct {
	Http int `json:"http" yaml:"http"`
	// 独立推送节点 conn-server 的 websocket 端口
	Websocket int `json:"websocket" yaml:"websocket"`
}

func New(filename string) *Config {
	content, err := os.ReadFile(filename)
	if err != nil {
		panic(err)
	}

	var conf Config
	if err := yaml.Unmarshal(content, &conf); err != nil {
		panic(fmt.Sprintf("parse %s: %v", filename, err))
	}

	conf.applyDefaults()
	return &conf
}

// Debug 调试模式
func (c *Config) Debug() bool {
	return c.App.Debug
}

// applyDefaults fills every section the YAML file left out.
func (c *Config) applyDefaults() {
	if c.App == nil {
		c.App = &App{}
	}
	if c.App.Name == "" {
		c.App.Name = "Moments"
	}
	if c.App.BaseURL == "" {
		c.App.BaseURL = "http://localhost:8080"
	}
	if c.Server == nil {
		c.Server = &Server{}
	}
	if c.Server.Http == 0 {
		c.Server.Http = 8080
	}
	if c.Server.Websocket == 0 {
		c.Server.Websocket = 8081
	}
	if c.Database == nil {
		c.Database = &Database{}
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite"
	}
	if c.Database.Path == "" {
		c.Database.Path = "data-dev.db"
	}
	if c.Redis == nil {
		c.Redis = &Redis{Address: "127.0.0.1", Port: 6379}
	}
	if c.Jwt == nil {
		c.Jwt = &Jwt{}
	}
	c.Jwt.applyDefaults()
	if c.Storage == nil {
		c.Storage = &Storage{}
	}
	c.Storage.applyDefaults()
	if c.Oss == nil {
		c.Oss = &OssConfig{}
	}
	if c.Mail == nil {
		c.Mail = &Mail{}
	}
	c.Mail.applyDefaults()
	if c.RocketMQ == nil {
		c.RocketMQ = &RocketMQConfig{}
	}
	if c.RocketMQ.Topic == "" {
		c.RocketMQ.Topic = "moments_notification"
	}
	if c.RocketMQ.Consumer.Group == "" {
		c.RocketMQ.Consumer.Group = "moments_push"
	}
	if c.LLM == nil {
		c.LLM = &LLM{}
	}
	if c.Moments == nil {
		c.Moments = &Moments{}
	}
	c.Moments.applyDefaults()
}

// Default returns a configuration with every default applied.
func Default() *Config {
	var conf Config
	conf.applyDefaults()
	return &conf
}
