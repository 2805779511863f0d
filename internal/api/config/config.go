package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	SourceMySQL   = "mysql"
	SourceElastic = "elastic"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.shutdown_timeout", 5)
	v.SetDefault("database.max_idle", 10)
	v.SetDefault("database.max_open", 50)
	v.SetDefault("database.max_lifetime", 30)
	v.SetDefault("redis.pool_size", 20)
	v.SetDefault("elastic.indices.post_index", "posts")
	v.SetDefault("mongo.database", "agora")
	v.SetDefault("kafka.consumer.session_timeout", 10)
	v.SetDefault("kafka.consumer.heartbeat_interval", 3)
	v.SetDefault("kafka.consumer.rebalance_timeout", 60)
	v.SetDefault("kafka.consumer.max_processing_time", 30)
	v.SetDefault("kafka_search_log_consumer.topic", "search-events")
	v.SetDefault("kafka_search_log_consumer.group_id", "search-log")
	v.SetDefault("jwt.issuer", "Agora")
	v.SetDefault("search.candidate_source", SourceMySQL)
	v.SetDefault("search.max_candidates", 5000)
	v.SetDefault("search.max_query_length", 200)
	v.SetDefault("search.fold_tag_case", true)
	v.SetDefault("search.community_name_ttl", 600)
	v.SetDefault("cron.post_index_spec", "0 */5 * * * *")
	v.SetDefault("cron.hot_decay_spec", "@daily")
}

// LoadConfig 从 path 目录读取 config.yaml，环境变量可覆盖同名配置（如 SEARCH_MAX_CANDIDATES）
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("config file not found: %w", err)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Search.CandidateSource {
	case SourceMySQL, SourceElastic:
	default:
		return fmt.Errorf("unknown search.candidate_source %q", c.Search.CandidateSource)
	}
	if c.JWT.Secret == "" {
		return errors.New("jwt.secret is required")
	}
	return nil
}
