package builtin

import (
	"time"

	"github.com/AccelByte/extend-churn-dataset/pkg/featurestore"
	"github.com/AccelByte/extend-churn-dataset/pkg/sink"
	"github.com/go-redis/redis/v8"
)

// Dependencies holds the clients built-in sinks write through.
// A nil client leaves the matching sink type unusable.
type Dependencies struct {
	OutputDir   string
	DB          TableLoader
	RedisClient *redis.Client
	S3          ObjectUploader
	S3Bucket    string
	S3Prefix    string
}

// RegisterSinks registers built-in sink factories with dependencies.
func RegisterSinks(deps *Dependencies) {
	sink.RegisterSinkType(CSVSinkType, func(config sink.SinkConfig) (sink.Sink, error) {
		return NewCSVSink(config, deps.OutputDir)
	})

	sink.RegisterSinkType(DatabaseSinkType, func(config sink.SinkConfig) (sink.Sink, error) {
		return NewDatabaseSink(config, deps.DB)
	})

	sink.RegisterSinkType(RedisSinkType, func(config sink.SinkConfig) (sink.Sink, error) {
		if deps.RedisClient == nil {
			return NewRedisSink(config, nil)
		}
		hours := config.GetParameterFloat("ttl_hours", featurestore.DefaultTTL.Hours())
		ttl := time.Duration(hours * float64(time.Hour))
		store := featurestore.NewRedisFeatureStore(deps.RedisClient, featurestore.RedisFeatureStoreConfig{TTL: ttl})
		return NewRedisSink(config, store)
	})

	sink.RegisterSinkType(S3SinkType, func(config sink.SinkConfig) (sink.Sink, error) {
		return NewS3Sink(config, deps.S3, deps.S3Bucket, deps.S3Prefix)
	})
}
