package config

// Config 配置主体
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	DB      DBConfig      `mapstructure:"database"`
	Redis   RedisConfig   `mapstructure:"redis"`
	AI      AIConfig      `mapstructure:"ai"`
	Payment PaymentConfig `mapstructure:"payment"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// DBConfig 数据库配置
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// AIConfig 图片生成适配层配置，Unsplash 为主、Pexels 兜底
type AIConfig struct {
	UnsplashAccessKey string `mapstructure:"unsplash_access_key"`
	PexelsAPIKey      string `mapstructure:"pexels_api_key"`
	Timeout           int    `mapstructure:"timeout"`
}

// PaymentConfig 支付渠道结账配置
type PaymentConfig struct {
	BaseURL    string `mapstructure:"base_url"`
	SecretKey  string `mapstructure:"secret_key"`
	SuccessURL string `mapstructure:"success_url"`
	CancelURL  string `mapstructure:"cancel_url"`
}
