package config

import (
	"gopkg.in/ini.v1"
)

// ServerConfig configures the web host. It is read from an INI file with
// [server] and [log] sections.
type ServerConfig struct {
	Addr        string
	ReadBuffer  int
	WriteBuffer int
	CheckOrigin bool
	Profiles    string
	SaveDir     string

	LogLevel string
	LogJSON  bool
}

func DefaultServerConfig() ServerConfig {
	return loadServer(ini.Empty())
}

// LoadServer reads path. A missing key takes its default; a missing file is
// an error.
func LoadServer(path string) (ServerConfig, error) {
	file, err := ini.Load(path)
	if err != nil {
		return ServerConfig{}, err
	}
	return loadServer(file), nil
}

func loadServer(file *ini.File) ServerConfig {
	srv := file.Section("server")
	lg := file.Section("log")
	return ServerConfig{
		Addr:        srv.Key("addr").MustString(":8080"),
		ReadBuffer:  srv.Key("read_buffer").MustInt(1024),
		WriteBuffer: srv.Key("write_buffer").MustInt(1 << 16),
		CheckOrigin: srv.Key("check_origin").MustBool(false),
		Profiles:    srv.Key("profiles").MustString(""),
		SaveDir:     srv.Key("save_dir").MustString("exports"),
		LogLevel:    lg.Key("level").MustString("info"),
		LogJSON:     lg.Key("json").MustBool(false),
	}
}
