package server

// Config is read once at startup and shared read only by every job.
type Config struct {
	Name           string `yaml:"name" toml:"name" default:"minihttpd"`
	Addr           string `yaml:"addr" toml:"addr" default:"127.0.0.1:8080"`
	Workers        int    `yaml:"workers" toml:"workers" default:"4"`                // 工作协程数量
	ReadBufferSize int    `yaml:"readBufferSize" toml:"readBufferSize" default:"1024"` // 单次读取的缓冲区大小，超出部分被丢弃
}
