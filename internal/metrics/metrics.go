package metrics

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shirou/gopsutil/v3/process"
)

// SimMetrics — Prometheus-метрики игрового цикла
type SimMetrics struct {
	Ticks          prometheus.Counter
	Hits           prometheus.Counter
	Interactions   prometheus.Counter
	CallbackErrors prometheus.Counter
	Despawns       prometheus.Counter
	Items          prometheus.Gauge
	Candidates     *prometheus.GaugeVec
	Transitions    *prometheus.CounterVec
	TickDuration   prometheus.Histogram
}

// NewSimMetrics создаёт метрики и регистрирует их в reg
func NewSimMetrics(reg prometheus.Registerer) (*SimMetrics, error) {
	m := &SimMetrics{
		Ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sim",
			Name:      "ticks_total",
			Help:      "Количество выполненных тиков симуляции.",
		}),
		Hits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sim",
			Name:      "hits_total",
			Help:      "Количество вызовов OnHit.",
		}),
		Interactions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sim",
			Name:      "interactions_total",
			Help:      "Количество вызовов OnInteract.",
		}),
		CallbackErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sim",
			Name:      "callback_errors_total",
			Help:      "Тики, в которых реакция сущности вернула ошибку.",
		}),
		Despawns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sim",
			Name:      "despawns_total",
			Help:      "Предметы, покинувшие область за тик (смерть, подбор).",
		}),
		Items: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "sim",
			Name:      "area_items",
			Help:      "Количество предметов в активной области.",
		}),
		Candidates: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "sim",
			Name:      "player_candidates",
			Help:      "Размер кэшей кандидатов игрока.",
		}, []string{"relevance"}),
		Transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sim",
			Name:      "relevance_transitions_total",
			Help:      "Входы и выходы предметов из кэшей кандидатов.",
		}, []string{"relevance", "kind"}),
		TickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "sim",
			Name:      "tick_duration_seconds",
			Help:      "Длительность обработки тика.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 8),
		}),
	}

	collectors := []prometheus.Collector{
		m.Ticks, m.Hits, m.Interactions, m.CallbackErrors, m.Despawns,
		m.Items, m.Candidates, m.Transitions, m.TickDuration,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register sim metrics: %w", err)
		}
	}
	return m, nil
}

// ObserveTick записывает длительность тика
func (m *SimMetrics) ObserveTick(d time.Duration) {
	m.Ticks.Inc()
	m.TickDuration.Observe(d.Seconds())
}

// RegisterProcessCollectors добавляет метрики процесса (RSS, CPU) через gopsutil
func RegisterProcessCollectors(reg prometheus.Registerer) error {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return fmt.Errorf("open process: %w", err)
	}

	rss := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "sim",
		Name:      "process_rss_bytes",
		Help:      "Резидентная память процесса.",
	}, func() float64 {
		info, err := proc.MemoryInfo()
		if err != nil {
			return 0
		}
		return float64(info.RSS)
	})
	cpu := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "sim",
		Name:      "process_cpu_percent",
		Help:      "Загрузка CPU процессом в процентах.",
	}, func() float64 {
		percent, err := proc.CPUPercent()
		if err != nil {
			return 0
		}
		return percent
	})

	for _, c := range []prometheus.Collector{rss, cpu} {
		if err := reg.Register(c); err != nil {
			return fmt.Errorf("register process metrics: %w", err)
		}
	}
	return nil
}

// Serve запускает HTTP-эндпоинт /metrics. Неблокирующий; возвращает сервер для Shutdown.
func Serve(addr string, gatherer prometheus.Gatherer, onError func(error)) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) && onError != nil {
			onError(err)
		}
	}()
	return srv
}
