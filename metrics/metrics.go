package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	TweetsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "silverback_tweets_created_total",
		Help: "Total tweets created",
	})
	TweetsDeleted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "silverback_tweets_deleted_total",
		Help: "Total tweets deleted",
	})
	Likes = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "silverback_likes_total",
		Help: "Total like increments",
	})
	Retweets = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "silverback_retweets_total",
		Help: "Total retweet increments",
	})
	StorageErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "silverback_storage_errors_total",
		Help: "Total datastore failures surfaced as 500s",
	})
)

func init() {
	prometheus.MustRegister(TweetsCreated, TweetsDeleted, Likes, Retweets, StorageErrors)
}
