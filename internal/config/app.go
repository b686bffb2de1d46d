package config

import "github.com/joho/godotenv"

type AppConfig struct {
	Server ServerConfig
	Random RandomConfig
	Log    LogConfig
}

// LoadDotEnv reads .env style files into the process environment without
// overriding variables that are already set.
func LoadDotEnv(paths ...string) error {
	return godotenv.Load(paths...)
}

func LoadApp() (AppConfig, error) {
	logCfg, err := LoadLog()
	if err != nil {
		return AppConfig{}, err
	}
	serverCfg, err := LoadServer()
	if err != nil {
		return AppConfig{}, err
	}
	randomCfg, err := LoadRandom()
	if err != nil {
		return AppConfig{}, err
	}
	return AppConfig{
		Server: serverCfg,
		Random: randomCfg,
		Log:    logCfg,
	}, nil
}
