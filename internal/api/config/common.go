package config

// Config 配置主体
type Config struct {
	Server                 ServerConfig           `mapstructure:"server"`
	DB                     DBConfig               `mapstructure:"database"`
	Redis                  RedisConfig            `mapstructure:"redis"`
	Elastic                ElasticConfig          `mapstructure:"elastic"`
	Mongo                  MongoConfig            `mapstructure:"mongo"`
	Kafka                  KafkaConfig            `mapstructure:"kafka"`
	KafkaSearchLogConsumer KafkaSearchLogConsumer `mapstructure:"kafka_search_log_consumer"`
	Logstash               LogstashConfig         `mapstructure:"logstash"`
	JWT                    JWTConfig              `mapstructure:"jwt"`
	Search                 SearchConfig           `mapstructure:"search"`
	Cron                   CronConfig             `mapstructure:"cron"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port            int `mapstructure:"port"`
	ShutdownTimeout int `mapstructure:"shutdown_timeout"`
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

// ElasticConfig Elastic配置
type ElasticConfig struct {
	Address  string         `mapstructure:"address"`
	Username string         `mapstructure:"username"`
	Password string         `mapstructure:"password"`
	Indices  ElasticIndices `mapstructure:"indices"`
}

// ElasticIndices Elastic索引
type ElasticIndices struct {
	PostIndex string `mapstructure:"post_index"`
}

type MongoConfig struct {
	URL      string `mapstructure:"url"`
	Database string `mapstructure:"database"`
}

type KafkaConfig struct {
	Enable   bool           `mapstructure:"enable"`
	Brokers  []string       `mapstructure:"brokers"`
	Sasl     SaslConfig     `mapstructure:"sasl"`
	Consumer ConsumerConfig `mapstructure:"consumer"`
}

type SaslConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type ConsumerConfig struct {
	SessionTimeout    int `mapstructure:"session_timeout"`
	HeartbeatInterval int `mapstructure:"heartbeat_interval"`
	RebalanceTimeout  int `mapstructure:"rebalance_timeout"`
	MaxProcessingTime int `mapstructure:"max_processing_time"`
}

type KafkaSearchLogConsumer struct {
	Topic   string `mapstructure:"topic"`
	GroupID string `mapstructure:"group_id"`
}

// LogstashConfig 远程日志
type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
	Token   string `mapstructure:"token"`
}

type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
}

// SearchConfig 帖子搜索
type SearchConfig struct {
	CandidateSource  string `mapstructure:"candidate_source"` // mysql | elastic
	MaxCandidates    int    `mapstructure:"max_candidates"`
	MaxQueryLength   int    `mapstructure:"max_query_length"`
	FoldTagCase      bool   `mapstructure:"fold_tag_case"`
	CommunityNameTTL int    `mapstructure:"community_name_ttl"` // 秒
}

// CronConfig 定时任务表达式（带秒）
type CronConfig struct {
	PostIndexSpec string `mapstructure:"post_index_spec"`
	HotDecaySpec  string `mapstructure:"hot_decay_spec"`
}
