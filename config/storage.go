package config

// Storage 上传文件存储, driver 为 local 或 oss
type Storage struct {
	Driver     string `json:"driver" yaml:"driver"`
	UploadPath string `json:"upload_path" yaml:"upload_path"`
}

func (s *Storage) applyDefaults() {
	if s.Driver == "" {
		s.Driver = "local"
	}
	if s.UploadPath == "" {
		s.UploadPath = "uploads"
	}
}
