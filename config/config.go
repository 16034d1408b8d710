package config

import (
	log "github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"

	"vcrc/failure"
	"vcrc/solver"
)

// DefaultPath is where the binary looks for its configuration.
const DefaultPath = "conf/config.ini"

type Config struct {
	Server ServerConfig
	Solver solver.Options
	Sweep  SweepConfig
	Log    LogConfig
}

type ServerConfig struct {
	Addr            string
	ReadBufferSize  int
	WriteBufferSize int
	// 历史结果保存数量
	HistorySize int
}

type SweepConfig struct {
	Workers int
}

type LogConfig struct {
	Level log.Level
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg, _ := loadCfg(ini.Empty())
	return cfg
}

// Load reads an ini file from a path or from raw bytes. Missing keys keep
// their defaults.
func Load(source interface{}) (*Config, error) {
	file, err := ini.Load(source)
	if err != nil {
		return nil, failure.Configf("配置文件读取错误，请检查文件路径: %v", err)
	}
	return loadCfg(file)
}

// LoadOrDefault falls back to Default when the file cannot be read.
func LoadOrDefault(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		log.WithField("path", path).Warn(err)
		return Default()
	}
	return cfg
}

func loadCfg(file *ini.File) (*Config, error) {
	server, solverSec, sweep, logSec := file.Section("server"), file.Section("solver"), file.Section("sweep"), file.Section("log")
	cfg := &Config{
		Server: ServerConfig{
			Addr:            server.Key("Addr").MustString(":9000"),
			ReadBufferSize:  server.Key("ReadBufferSize").MustInt(1024),
			WriteBufferSize: server.Key("WriteBufferSize").MustInt(1024),
			HistorySize:     server.Key("HistorySize").MustInt(32),
		},
		Solver: solver.Options{
			Tolerance:     solverSec.Key("Tolerance").MustFloat64(1e-12),
			MaxIterations: solverSec.Key("MaxIterations").MustInt(200),
		},
		Sweep: SweepConfig{
			Workers: sweep.Key("Workers").MustInt(4),
		},
	}
	level, err := log.ParseLevel(logSec.Key("Level").MustString("info"))
	if err != nil {
		return nil, failure.Configf("[log] Level: %v", err)
	}
	cfg.Log.Level = level

	switch {
	case cfg.Server.HistorySize < 1:
		return nil, failure.Configf("[server] HistorySize should be positive, got %d", cfg.Server.HistorySize)
	case !(cfg.Solver.Tolerance > 0 && cfg.Solver.Tolerance < 1):
		return nil, failure.Configf("[solver] Tolerance should be in (0, 1), got %g", cfg.Solver.Tolerance)
	case cfg.Solver.MaxIterations < 1:
		return nil, failure.Configf("[solver] MaxIterations should be positive, got %d", cfg.Solver.MaxIterations)
	case cfg.Sweep.Workers < 1:
		return nil, failure.Configf("[sweep] Workers should be positive, got %d", cfg.Sweep.Workers)
	}
	return cfg, nil
}
