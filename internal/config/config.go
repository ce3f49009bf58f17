package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

type Application struct {
	Server   Server   `koanf:"server"`
	Database Database `koanf:"db"`
	Auth     Auth     `koanf:"auth"`
	Budget   Budget   `koanf:"budget"`
}

type Server struct {
	Addr string `koanf:"addr"`
}

type Database struct {
	Path string `koanf:"path"`
}

type Auth struct {
	TokenSecret   string `koanf:"tokensecret"`
	TokenTTLHours int    `koanf:"tokenttlhours"`
}

// Budget holds the accepted bounds for budget periods. MaxFutureYears is a
// horizon added to the current year when validating.
type Budget struct {
	MinYear        int `koanf:"minyear"`
	MaxFutureYears int `koanf:"maxfutureyears"`
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Application{
		Server: Server{
			Addr: ":8080",
		},
		Database: Database{
			Path: "centsible.db",
		},
		Auth: Auth{
			TokenTTLHours: 24,
		},
		Budget: Budget{
			MinYear:        2000,
			MaxFutureYears: 10,
		},
	}, "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: "CENTSIBLE_",
		TransformFunc: func(k, v string) (string, any) {
			// Transform the key.
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "CENTSIBLE_")), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	return app, nil
}
