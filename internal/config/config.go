package config

import (
	"github.com/spf13/viper"
)

type Config struct {
	DBHost           string `mapstructure:"DB_HOST"`
	DBPort           string `mapstructure:"DB_PORT"`
	DBUser           string `mapstructure:"DB_USER"`
	DBPassword       string `mapstructure:"DB_PASSWORD"`
	DBName           string `mapstructure:"DB_NAME"`
	RedisAddr        string `mapstructure:"REDIS_ADDR"`
	AccessSecret     string `mapstructure:"ACCESS_SECRET"`
	RefreshSecret    string `mapstructure:"REFRESH_SECRET"`
	HTTPPort         string `mapstructure:"HTTP_PORT"`
	StripeKey        string `mapstructure:"STRIPE_KEY"`
	StripeSuccessURL string `mapstructure:"STRIPE_SUCCESS_URL"`
	SendgridKey      string `mapstructure:"SENDGRID_KEY"`
	SenderEmail      string `mapstructure:"SENDER_EMAIL"`
	CORSOrigins      string `mapstructure:"CORS_ORIGINS"`
}

func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("app")
	viper.SetConfigType("env")

	viper.AutomaticEnv()

	// ВАЖНО: Явно биндим переменные, чтобы Viper их видел без файла
	viper.BindEnv("DB_HOST")
	viper.BindEnv("DB_PORT")
	viper.BindEnv("DB_USER")
	viper.BindEnv("DB_PASSWORD")
	viper.BindEnv("DB_NAME")
	viper.BindEnv("REDIS_ADDR")
	viper.BindEnv("ACCESS_SECRET")
	viper.BindEnv("REFRESH_SECRET")
	viper.BindEnv("HTTP_PORT")
	viper.BindEnv("STRIPE_KEY")
	viper.BindEnv("STRIPE_SUCCESS_URL")
	viper.BindEnv("SENDGRID_KEY")
	viper.BindEnv("SENDER_EMAIL")
	viper.BindEnv("CORS_ORIGINS")

	// Пытаемся прочитать файл, но не умираем, если его нет
	err = viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
		err = nil
	}

	err = viper.Unmarshal(&config)
	return
}
