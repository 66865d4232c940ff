package question

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	questionsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quizzical_questions_created_total",
		Help: "Questions stored through the API.",
	})

	pagesServed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quizzical_question_pages_served_total",
		Help: "Question pages served, cached or not.",
	})

	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quizzical_question_cache_hits_total",
		Help: "Question pages served from the Redis cache.",
	})
)
