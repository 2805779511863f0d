package wire

import (
	"Agora/internal/api"
	"Agora/internal/api/config"
	"Agora/internal/api/handler"
	"Agora/internal/job"
	"Agora/internal/pkg/cron"
	"Agora/internal/pkg/es"
	"Agora/internal/pkg/kafka"
	"Agora/internal/pkg/mongo"
	"Agora/internal/pkg/redis"
	"Agora/internal/pkg/search"
	"Agora/internal/pkg/security"
	"Agora/internal/repository"
	"Agora/internal/service"
	"context"
	"errors"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router       *gin.Engine
	DB           *gorm.DB
	CronMgr      *cron.Manager
	KafkaManager *kafka.ConsumerManager // kafka.enable=false 时为 nil
	Recorder     kafka.EventRecorder
}

// BuildApplication esClient 为 nil 时不启用 ES 候选源与索引同步
func BuildApplication(
	ctx context.Context,
	db *gorm.DB,
	rdb *goredis.Client,
	esClient *elasticsearch.TypedClient,
	mongoDB *mongodriver.Database,
	cfg *config.Config,
) (*ApplicationContainer, error) {
	postRepo := repository.NewPostRepository(db)
	communityRepo := repository.NewCommunityRepository(db)
	searchLogRepo := mongo.NewSearchLogRepo(mongoDB)
	if err := searchLogRepo.EnsureIndexes(ctx); err != nil {
		return nil, err
	}

	hotStore := redis.NewHotQueryStore(rdb)
	locker := redis.NewLocker(rdb)
	nameCache := redis.NewCommunityNameCache(rdb, communityRepo, time.Duration(cfg.Search.CommunityNameTTL)*time.Second)

	var postESRepo es.PostRepo
	if esClient != nil {
		postESRepo = es.NewPostRepo(esClient, cfg.Elastic.Indices.PostIndex)
		if err := postESRepo.EnsureIndex(ctx); err != nil {
			return nil, err
		}
	}

	var source search.CandidateSource = postRepo
	if cfg.Search.CandidateSource == config.SourceElastic {
		if postESRepo == nil {
			return nil, errors.New("search.candidate_source is elastic but elastic.address is empty")
		}
		source = postESRepo
	}

	executor := search.NewExecutor(source,
		search.WithFoldTagCase(cfg.Search.FoldTagCase),
		search.WithMaxCandidates(cfg.Search.MaxCandidates),
	)

	var recorder kafka.EventRecorder = kafka.NopRecorder{}
	var kafkaMgr *kafka.ConsumerManager
	if cfg.Kafka.Enable {
		producer, err := kafka.NewSearchEventProducer(cfg)
		if err != nil {
			return nil, err
		}
		recorder = producer

		kafkaMgr, err = kafka.NewConsumerManager(cfg, kafka.NewSearchLogHandler(hotStore, searchLogRepo))
		if err != nil {
			_ = producer.Close()
			return nil, err
		}
	}

	searchService := service.NewSearchService(executor, search.NewEnricher(nameCache), communityRepo, recorder, cfg.Search.MaxQueryLength)
	searchLogService := service.NewSearchLogService(hotStore, searchLogRepo)

	handlers := &api.HandlersGroup{
		SearchHandler:    handler.NewSearchHandler(searchService),
		SearchLogHandler: handler.NewSearchLogHandler(searchLogService),
	}
	auth := &api.AuthDeps{
		Tokens:    security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Issuer),
		Blacklist: redis.NewTokenBlacklist(rdb),
	}
	router := api.SetupRouter(handlers, auth, cfg.Logstash)

	cronMgr := cron.NewCronManager()
	cronMgr.Add("hot_query_decay", cfg.Cron.HotDecaySpec, job.NewHotQueryDecayJob(hotStore, locker))
	if postESRepo != nil {
		cronMgr.Add("post_index", cfg.Cron.PostIndexSpec,
			job.NewPostIndexJob(postRepo, postESRepo, redis.NewCheckpointStore(rdb), locker))
	}

	return &ApplicationContainer{
		Router:       router,
		DB:           db,
		CronMgr:      cronMgr,
		KafkaManager: kafkaMgr,
		Recorder:     recorder,
	}, nil
}
