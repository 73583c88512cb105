package cfg

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/content-os/commerce-sync/pkg/e"
	"github.com/content-os/commerce-sync/pkg/logger"
	"github.com/jimlawless/whereami"
)

type Config struct {
	Http     *HTTPConfig
	Db       *PGDBCfg
	Redis    *RedisCfg
	Minio    *MinIOCfg
	Kafka    *KafkaCfg
	Commerce *CommerceCfg
	Partner  *PartnerCfg
	Sync     *SyncCfg
}

type HTTPConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type PGDBCfg struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisCfg struct {
	Addr        string
	Password    string
	User        string
	DB          int
	MaxRetries  int
	DialTimeout time.Duration
	Timeout     time.Duration
	ProductTTL  time.Duration
}

type MinIOCfg struct {
	MinioEndpoint     string // Адрес конечной точки Minio
	BucketName        string // Бакет для архива сырых ответов Commerce API
	MinioRootUser     string
	MinioRootPassword string
	MinioUseSSL       bool
}

type KafkaCfg struct {
	Topic             string
	Brokers           []string
	NetworkMode       string
	Partitions        int
	ReplicationFactor int
}

// CommerceCfg описывает доступ к Commerce API собственного магазина.
type CommerceCfg struct {
	TokenURL     string
	BaseURL      string
	ClientID     string
	ClientSecret string
	PageSize     int
	Concurrency  int           // число одновременных запросов деталей товара
	MaxAttempts  int           // бюджет попыток на один исходящий запрос
	BackoffBase  time.Duration
	BackoffMax   time.Duration
	Timeout      time.Duration // таймаут одного исходящего запроса
	TokenSkew    time.Duration // запас до истечения токена, после которого он считается протухшим
	RateLimitRPS float64       // лимит исходящих запросов в секунду, 0 — без лимита
}

// PartnerCfg описывает источник партнёрского (аффилиатного) фида.
type PartnerCfg struct {
	FeedPath      string // путь к локальному CSV/JSON файлу
	FeedURL       string // URL CSV-экспорта (например, выгрузка из таблицы)
	FeedFormat    string // csv | json
	AllowedSource string // единственный источник, допустимый к коммерческому использованию
}

type SyncCfg struct {
	Interval time.Duration // период фонового запуска синхронизации, 0 — только по HTTP-триггеру
}

// Load безопасно загружает конфигурацию и возвращает ошибку в случае неудачи.
func Load(log logger.Logger) (*Config, error) {
	db, err := loadPGDBCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	http, err := loadHTTPConfig(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	redis, err := loadRedisCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	minio, err := loadMinIOCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	kafka, err := loadKafkaCfg()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	commerce, err := loadCommerceCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	sync, err := loadSyncCfg()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &Config{
		Http:     http,
		Db:       db,
		Redis:    redis,
		Minio:    minio,
		Kafka:    kafka,
		Commerce: commerce,
		Partner:  loadPartnerCfg(),
		Sync:     sync,
	}, nil
}

func loadCommerceCfg(log logger.Logger) (*CommerceCfg, error) {
	const (
		defaultPageSize    = 50
		defaultConcurrency = 8
		defaultMaxAttempts = 3
		defaultBackoffBase = 300 * time.Millisecond
		defaultBackoffMax  = 8 * time.Second
		defaultTimeout     = 20 * time.Second
		defaultTokenSkew   = 120 * time.Second
	)

	tokenURL := getEnv("COMMERCE_TOKEN_URL")
	if tokenURL == "" {
		err := fmt.Errorf("COMMERCE_TOKEN_URL is required")
		log.Errorf(err, "missing COMMERCE_TOKEN_URL")
		return nil, err
	}

	baseURL := getEnv("COMMERCE_API_BASE_URL")
	if baseURL == "" {
		err := fmt.Errorf("COMMERCE_API_BASE_URL is required")
		log.Errorf(err, "missing COMMERCE_API_BASE_URL")
		return nil, err
	}

	pageSize, err := parseIntEnv("SYNC_PAGE_SIZE", defaultPageSize)
	if err != nil {
		return nil, e.Wrap("SYNC_PAGE_SIZE", err)
	}

	concurrency, err := parseIntEnv("DETAIL_FETCH_WORKERS", defaultConcurrency)
	if err != nil {
		return nil, e.Wrap("DETAIL_FETCH_WORKERS", err)
	}

	maxAttempts, err := parseIntEnv("SYNC_MAX_ATTEMPTS", defaultMaxAttempts)
	if err != nil {
		return nil, e.Wrap("SYNC_MAX_ATTEMPTS", err)
	}

	backoffBase, err := parseDurationEnv("SYNC_BACKOFF_BASE", defaultBackoffBase)
	if err != nil {
		log.Errorf(err, "invalid SYNC_BACKOFF_BASE")
		return nil, err
	}

	backoffMax, err := parseDurationEnv("SYNC_BACKOFF_MAX", defaultBackoffMax)
	if err != nil {
		log.Errorf(err, "invalid SYNC_BACKOFF_MAX")
		return nil, err
	}

	timeout, err := parseDurationEnv("COMMERCE_TIMEOUT", defaultTimeout)
	if err != nil {
		log.Errorf(err, "invalid COMMERCE_TIMEOUT")
		return nil, err
	}

	tokenSkew, err := parseDurationEnv("TOKEN_EXPIRY_SKEW", defaultTokenSkew)
	if err != nil {
		log.Errorf(err, "invalid TOKEN_EXPIRY_SKEW")
		return nil, err
	}

	rps := 0.0
	if v := getEnv("COMMERCE_RATE_LIMIT_RPS"); v != "" {
		rps, err = strconv.ParseFloat(v, 64)
		if err != nil {
			log.Errorf(err, "invalid COMMERCE_RATE_LIMIT_RPS")
			return nil, e.ErrIncorrectEnvVariable
		}
	}

	return &CommerceCfg{
		TokenURL:     tokenURL,
		BaseURL:      strings.TrimRight(baseURL, "/"),
		ClientID:     getEnv("COMMERCE_CLIENT_ID"),
		ClientSecret: getEnv("COMMERCE_CLIENT_SECRET"),
		PageSize:     pageSize,
		Concurrency:  concurrency,
		MaxAttempts:  maxAttempts,
		BackoffBase:  backoffBase,
		BackoffMax:   backoffMax,
		Timeout:      timeout,
		TokenSkew:    tokenSkew,
		RateLimitRPS: rps,
	}, nil
}

func loadPartnerCfg() *PartnerCfg {
	const (
		defaultFormat        = "csv"
		defaultAllowedSource = "shopping_connect"
	)

	return &PartnerCfg{
		FeedPath:      getEnv("PARTNER_FEED_PATH"),
		FeedURL:       getEnv("PARTNER_FEED_URL"),
		FeedFormat:    getEnvOrDefault("PARTNER_FEED_FORMAT", defaultFormat),
		AllowedSource: getEnvOrDefault("PARTNER_ALLOWED_SOURCE", defaultAllowedSource),
	}
}

func loadSyncCfg() (*SyncCfg, error) {
	interval, err := parseDurationEnv("SYNC_INTERVAL", 0)
	if err != nil {
		return nil, e.Wrap("SYNC_INTERVAL", err)
	}

	return &SyncCfg{Interval: interval}, nil
}

func loadKafkaCfg() (*KafkaCfg, error) {
	const (
		defaultPartitions        = 3
		defaultReplicationFactor = 1
		defaultNetworkMode       = "tcp"
	)

	brokerStr := os.Getenv("KAFKA_BROKERS")
	if brokerStr == "" {
		return nil, fmt.Errorf("KAFKA_BROKERS environment variable is required")
	}
	brokers := strings.Split(brokerStr, ",")

	topic := os.Getenv("KAFKA_TOPIC")
	if topic == "" {
		return nil, fmt.Errorf("KAFKA_TOPIC environment variable is required")
	}

	partitions, err := parseIntEnv("KAFKA_PARTITIONS", defaultPartitions)
	if err != nil {
		return nil, e.Wrap("KAFKA_PARTITIONS", err)
	}

	replicationFactor, err := parseIntEnv("REPLICATION_FACTOR", defaultReplicationFactor)
	if err != nil {
		return nil, e.Wrap("REPLICATION_FACTOR", err)
	}

	networkMode := getEnvOrDefault("KAFKA_NETWORK_MODE", defaultNetworkMode)

	return &KafkaCfg{
		Brokers:           brokers,
		Topic:             topic,
		Partitions:        partitions,
		ReplicationFactor: replicationFactor,
		NetworkMode:       networkMode,
	}, nil
}

func loadMinIOCfg(log logger.Logger) (*MinIOCfg, error) {
	const (
		defaultUseSSL   = false
		defaultEndpoint = "minio:9000"
	)

	useSSL, err := strconv.ParseBool(getEnvOrDefault("MINIO_USE_SSL", strconv.FormatBool(defaultUseSSL)))
	if err != nil {
		log.Errorf(err, "invalid MINIO_USE_SSL")
		return nil, err
	}

	return &MinIOCfg{
		MinioEndpoint:     getEnvOrDefault("MINIO_ENDPOINT", defaultEndpoint),
		BucketName:        getEnv("BUCKET_NAME"),
		MinioRootUser:     getEnv("MINIO_ROOT_USER"),
		MinioRootPassword: getEnv("MINIO_ROOT_PASSWORD"),
		MinioUseSSL:       useSSL,
	}, nil
}

func loadHTTPConfig(log logger.Logger) (*HTTPConfig, error) {
	const (
		defaultPort         = "8080"
		defaultReadTimeout  = 5 * time.Second
		defaultWriteTimeout = 10 * time.Second
		defaultIdleTimeout  = 60 * time.Second
	)

	port := getEnvOrDefault("HTTP_PORT", defaultPort)

	readTimeout, err := parseDurationEnv("HTTP_READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("HTTP_WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_WRITE_TIMEOUT")
		return nil, err
	}

	idleTimeout, err := parseDurationEnv("KEEP_ALIVE", defaultIdleTimeout)
	if err != nil {
		log.Errorf(err, "invalid KEEP_ALIVE")
		return nil, err
	}

	return &HTTPConfig{
		Port:         port,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}, nil
}

func loadPGDBCfg(log logger.Logger) (*PGDBCfg, error) {
	const (
		defaultHost    = "localhost"
		defaultPort    = "5432"
		defaultSSLMode = "disable"
	)

	user := getEnv("POSTGRES_USER")
	if user == "" {
		err := fmt.Errorf("POSTGRES_USER is required")
		log.Errorf(err, "missing POSTGRES_USER")
		return nil, err
	}

	password := getEnv("POSTGRES_PASSWORD")
	if password == "" {
		err := fmt.Errorf("POSTGRES_PASSWORD is required")
		log.Errorf(err, "missing POSTGRES_PASSWORD")
		return nil, err
	}

	dbName := getEnv("POSTGRES_DB")
	if dbName == "" {
		err := fmt.Errorf("POSTGRES_DB is required")
		log.Errorf(err, "missing POSTGRES_DB")
		return nil, err
	}

	return &PGDBCfg{
		Host:     getEnvOrDefault("POSTGRES_HOST", defaultHost),
		Port:     getEnvOrDefault("POSTGRES_PORT", defaultPort),
		User:     user,
		Password: password,
		DBName:   dbName,
		SSLMode:  getEnvOrDefault("SSL_MODE", defaultSSLMode),
	}, nil
}

func loadRedisCfg(log logger.Logger) (*RedisCfg, error) {
	const (
		defaultAddr         = "localhost:6379"
		defaultDB           = 0
		defaultMaxRetries   = 3
		defaultDialTimeout  = 5 * time.Second
		defaultReadTimeout  = 3 * time.Second
		defaultWriteTimeout = 3 * time.Second
		defaultProductTTL   = 3 * time.Minute
	)

	addr := getEnvOrDefault("REDIS_ADDR", defaultAddr)
	password := getEnv("REDIS_PASSWORD")
	user := getEnv("REDIS_USER")

	dbStr := getEnvOrDefault("REDIS_DB_ID", strconv.Itoa(defaultDB))
	db, err := strconv.Atoi(dbStr)
	if err != nil {
		log.Errorf(err, "invalid REDIS_DB_ID")
		return nil, err
	}

	maxRetriesStr := getEnvOrDefault("MAX_RETRIES", strconv.Itoa(defaultMaxRetries))
	maxRetries, err := strconv.Atoi(maxRetriesStr)
	if err != nil {
		log.Errorf(err, "invalid MAX_RETRIES")
		return nil, err
	}

	dialTimeout, err := parseDurationEnv("DIAL_TIMEOUT", defaultDialTimeout)
	if err != nil {
		log.Errorf(err, "invalid DIAL_TIMEOUT")
		return nil, err
	}

	readTimeout, err := parseDurationEnv("READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid WRITE_TIMEOUT")
		return nil, err
	}

	productTTL, err := parseDurationEnv("PRODUCT_TTL", defaultProductTTL)
	if err != nil {
		log.Errorf(err, "invalid PRODUCT_TTL")
		return nil, err
	}

	timeout := readTimeout
	if writeTimeout > timeout {
		timeout = writeTimeout
	}

	return &RedisCfg{
		Addr:        addr,
		Password:    password,
		User:        user,
		DB:          db,
		MaxRetries:  maxRetries,
		DialTimeout: dialTimeout,
		Timeout:     timeout,
		ProductTTL:  productTTL,
	}, nil
}

// getEnv возвращает значение переменной окружения.
// Возвращает пустую строку, если переменная не задана.
func getEnv(key string) string {
	return os.Getenv(key)
}

// getEnvOrDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

// parseDurationEnv считывает длительность или возвращает значение по умолчанию.
func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	if v := os.Getenv(key); v != "" {
		return time.ParseDuration(v)
	}

	return defaultValue, nil
}

func parseIntEnv(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}

	intValue, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue, e.ErrIncorrectEnvVariable
	}

	return intValue, nil
}
