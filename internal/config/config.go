package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

type Config struct {
	App struct {
		Env      string
		Brand    string
		Timezone string
	} `mapstructure:"app"`

	API struct {
		BaseURL string `mapstructure:"base_url"`
	} `mapstructure:"api"`

	Session struct {
		Driver    string // file|postgres|memory
		Path      string
		Namespace string
	} `mapstructure:"session"`

	Postgres struct {
		DSN string
	} `mapstructure:"postgres"`

	HTTP struct {
		Addr string
	} `mapstructure:"http"`

	Metrics struct {
		Enabled bool
	} `mapstructure:"metrics"`

	Telegram struct {
		Token       string
		AdminChatID int64 `mapstructure:"admin_chat_id"`
		PollTimeout int   `mapstructure:"poll_timeout"`
	} `mapstructure:"telegram"`

	Twilio struct {
		AccountSID string `mapstructure:"account_sid"`
		AuthToken  string `mapstructure:"auth_token"`
		From       string
	} `mapstructure:"twilio"`

	Checkout struct {
		Addr      string
		ScriptURL string `mapstructure:"script_url"`
	} `mapstructure:"checkout"`

	Reminders struct {
		Schedule string
		SMS      bool
	} `mapstructure:"reminders"`

	Reports struct {
		Dir     string
		FontDir string `mapstructure:"font_dir"`
		S3      struct {
			Bucket    string
			Region    string
			Prefix    string
			AccessKey string `mapstructure:"access_key"`
			SecretKey string `mapstructure:"secret_key"`
		} `mapstructure:"s3"`
	} `mapstructure:"reports"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "prod")
	v.SetDefault("app.brand", "GymPro")
	v.SetDefault("app.timezone", "Asia/Kolkata")
	v.SetDefault("api.base_url", "http://localhost:8000/api")
	v.SetDefault("session.driver", "file")
	v.SetDefault("session.path", defaultSessionPath())
	v.SetDefault("session.namespace", "default")
	v.SetDefault("http.addr", ":9090")
	v.SetDefault("checkout.addr", "127.0.0.1:8765")
	v.SetDefault("checkout.script_url", "https://checkout.razorpay.com/v1/checkout.js")
	v.SetDefault("telegram.poll_timeout", 60)
	v.SetDefault("reminders.schedule", "0 9 * * *")
	v.SetDefault("reports.dir", ".")
	v.SetDefault("reports.s3.region", "ap-south-1")

	// keys without a meaningful default still need to be known to viper,
	// otherwise AutomaticEnv never consults APP_* for them
	for _, k := range []string{
		"postgres.dsn", "metrics.enabled", "telegram.token", "telegram.admin_chat_id",
		"twilio.account_sid", "twilio.auth_token", "twilio.from", "reminders.sms",
		"reports.font_dir", "reports.s3.bucket", "reports.s3.prefix",
		"reports.s3.access_key", "reports.s3.secret_key",
	} {
		_ = v.BindEnv(k)
	}
}

func defaultSessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".gympro-session.json"
	}
	return filepath.Join(home, ".gympro", "session.json")
}

// Load reads path (optional, a missing file falls back to defaults) and
// overrides every key from APP_* variables, e.g. APP_API_BASE_URL.
func Load(path string) (Config, error) {
	// .env is optional, variables already set in the environment win
	_ = gotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var c Config
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return c, err
			}
		}
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}
	c.API.BaseURL = strings.TrimRight(c.API.BaseURL, "/")
	if rest, ok := strings.CutPrefix(c.Session.Path, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			c.Session.Path = filepath.Join(home, rest)
		}
	}
	return c, nil
}
