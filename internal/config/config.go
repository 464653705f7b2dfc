package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/satishbabariya/ingres-go/internal/adapters/database"
	ingresdb "github.com/satishbabariya/ingres-go/internal/adapters/database/ingres"
)

var AppFs = afero.NewOsFs()

const (
	configName = ".ingres-go"
	configDir  = "ingres-go"
	envPrefix  = "INGRES_GO"
)

// Keys used for the config file, environment and flag bindings.
const (
	KeyHost               = "host"
	KeyPort               = "port"
	KeyUser               = "user"
	KeyPassword           = "password"
	KeyDatabase           = "database"
	KeySchema             = "schema"
	KeyURLExtension       = "url_extension"
	KeyDataSourceName     = "data_source_name"
	KeyDelimitIdentifiers = "delimit_identifiers"
	KeyTimeout            = "timeout"
	KeyDebug              = "debug"
	KeyDriver             = "driver"
)

// Config holds the application configuration
type Config struct {
	Host               string
	Port               int
	User               string
	Password           string
	Database           string
	Schema             string
	URLExtension       string
	DataSourceName     string
	DelimitIdentifiers bool
	Timeout            time.Duration
	Debug              bool
	// Driver is the database/sql driver name.
	Driver string
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyPort, ingresdb.DefaultPort)
	v.SetDefault(KeyUser, ingresdb.DefaultUser)
	v.SetDefault(KeyDelimitIdentifiers, true)
	v.SetDefault(KeyTimeout, 30*time.Second)
	v.SetDefault(KeyDebug, false)
	v.SetDefault(KeyDriver, ingresdb.DriverName)
}

// LoadConfig loads configuration from the config file, .env files and the
// environment, in increasing priority. Flags bound on v win over all of them.
func LoadConfig(v *viper.Viper) (*Config, error) {
	home, err := homedir.Dir()
	if err != nil {
		return nil, err
	}

	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath(home)
	v.AddConfigPath(filepath.Join(home, ".config", configDir))
	v.SetFs(AppFs)

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	SetDefaults(v)

	// The config file is optional.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	if err := loadEnvFiles(); err != nil {
		return nil, err
	}

	return FromViper(v), nil
}

// loadEnvFiles loads .env, then lets .env.local override it.
func loadEnvFiles() error {
	if env, err := readEnvFile(".env"); err != nil {
		return err
	} else if env != nil {
		applyEnv(env, false)
	}

	if env, err := readEnvFile(".env.local"); err != nil {
		return err
	} else if env != nil {
		applyEnv(env, true)
	}
	return nil
}

func readEnvFile(name string) (map[string]string, error) {
	if _, err := AppFs.Stat(name); err != nil {
		return nil, nil
	}
	f, err := AppFs.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return godotenv.Parse(f)
}

// applyEnv exports env. Variables already set in the process are kept
// unless override is set.
func applyEnv(env map[string]string, override bool) {
	for k, v := range env {
		if _, set := os.LookupEnv(k); set && !override {
			continue
		}
		os.Setenv(k, v)
	}
}

// FromViper reads the configuration values from v.
func FromViper(v *viper.Viper) *Config {
	return &Config{
		Host:               v.GetString(KeyHost),
		Port:               v.GetInt(KeyPort),
		User:               v.GetString(KeyUser),
		Password:           v.GetString(KeyPassword),
		Database:           v.GetString(KeyDatabase),
		Schema:             v.GetString(KeySchema),
		URLExtension:       v.GetString(KeyURLExtension),
		DataSourceName:     v.GetString(KeyDataSourceName),
		DelimitIdentifiers: v.GetBool(KeyDelimitIdentifiers),
		Timeout:            v.GetDuration(KeyTimeout),
		Debug:              v.GetBool(KeyDebug),
		Driver:             v.GetString(KeyDriver),
	}
}

// Settings returns the connection settings of the configuration.
func (c *Config) Settings() ingresdb.Settings {
	return ingresdb.Settings{
		Host:           c.Host,
		Port:           c.Port,
		User:           c.User,
		Password:       c.Password,
		Database:       c.Database,
		URLExtension:   c.URLExtension,
		DataSourceName: c.DataSourceName,
	}
}

// DatabaseConfig returns the pool configuration for the adapter.
func (c *Config) DatabaseConfig() database.Config {
	return database.Config{
		Driver:         c.Driver,
		MaxConnections: 4,
		MaxIdleTime:    60,
		ConnectTimeout: int(c.Timeout / time.Second),
	}
}

// SaveConfig saves configuration to file. The password is never written.
func SaveConfig(cfg *Config) (string, error) {
	v := viper.New()
	v.SetFs(AppFs)
	v.Set(KeyHost, cfg.Host)
	v.Set(KeyPort, cfg.Port)
	v.Set(KeyUser, cfg.User)
	v.Set(KeyDatabase, cfg.Database)
	v.Set(KeySchema, cfg.Schema)
	v.Set(KeyURLExtension, cfg.URLExtension)
	v.Set(KeyDelimitIdentifiers, cfg.DelimitIdentifiers)
	v.Set(KeyTimeout, cfg.Timeout.String())

	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}

	configPath := filepath.Join(home, ".config", configDir)
	if err := AppFs.MkdirAll(configPath, 0755); err != nil {
		return "", err
	}

	configFile := filepath.Join(configPath, configName+".yaml")
	return configFile, v.WriteConfigAs(configFile)
}
