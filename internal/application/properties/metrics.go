package properties

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	propertiesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "properties_created_total",
		Help: "Properties created with a listing code",
	})

	codeConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "property_code_conflicts_total",
		Help: "Insert attempts that lost a listing code to a concurrent writer",
	})

	codeExhausted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "property_code_exhausted_total",
		Help: "Creates that failed after every listing code attempt conflicted",
	})
)
