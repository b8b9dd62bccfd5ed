package health

import (
	"context"
	"encoding/json"
	"errors"
	"runtime"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// ServiceName is reported by /health/json.
const ServiceName = "station-listings-api"

// ErrRedisUnavailable is returned by operations that need Redis when none is configured.
var ErrRedisUnavailable = errors.New("redis not configured")

// DBPinger is optional for health check. If nil, database is reported as disconnected.
type DBPinger interface {
	PingContext(ctx context.Context) error
}

// Report is the /health/json payload (minus the service name).
type Report struct {
	Status       string               `json:"status"`
	Runtime      RuntimeInfo          `json:"runtime"`
	Traffic      TrafficInfo          `json:"traffic"`
	Dependencies map[string]DepStatus `json:"dependencies"`
}

type RuntimeInfo struct {
	UptimeSeconds int64  `json:"uptimeSeconds"`
	AllocMB       int    `json:"allocMb"`
	HeapInuseMB   int    `json:"heapInuseMb"`
	Goroutines    int    `json:"goroutines"`
	Platform      string `json:"platform"`
	GoVersion     string `json:"goVersion"`
}

type TrafficInfo struct {
	TotalRequests   int         `json:"totalRequests"`
	SuccessCount    int         `json:"successCount"`
	FailedCount     int         `json:"failedCount"`
	SuccessRate     string      `json:"successRate"`
	AvgResponseTime interface{} `json:"avgResponseTime"`
	LastRequest     interface{} `json:"lastRequest"`
}

type DepStatus struct {
	Status string `json:"status"`
	PingMs *int64 `json:"pingMs"`
}

// Service reads and resets the traffic stats kept by the health marker.
type Service struct {
	Redis *redis.Client
	DB    DBPinger
	Now   func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Collect pings the database and Redis and summarizes traffic stats.
func (s *Service) Collect(ctx context.Context) Report {
	report := Report{Dependencies: make(map[string]DepStatus)}

	report.Dependencies["database"] = ping(func() error {
		if s.DB == nil {
			return nil
		}
		return s.DB.PingContext(ctx)
	}, s.DB != nil)

	startMs := s.now().UnixMilli()
	report.Traffic = TrafficInfo{AvgResponseTime: 0, SuccessRate: "100"}
	redisDep := ping(func() error {
		if s.Redis == nil {
			return nil
		}
		return s.Redis.Ping(ctx).Err()
	}, s.Redis != nil)
	if redisDep.Status == "connected" {
		report.Traffic, startMs = s.traffic(ctx, startMs)
	}
	report.Dependencies["redis"] = redisDep

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	uptime := (s.now().UnixMilli() - startMs) / 1000
	if uptime < 0 {
		uptime = 0
	}
	report.Runtime = RuntimeInfo{
		UptimeSeconds: uptime,
		AllocMB:       int(m.Alloc / 1024 / 1024),
		HeapInuseMB:   int(m.HeapInuse / 1024 / 1024),
		Goroutines:    runtime.NumGoroutine(),
		Platform:      runtime.GOOS + " (" + runtime.GOARCH + ")",
		GoVersion:     runtime.Version(),
	}

	report.Status = "issue"
	if report.Dependencies["database"].Status == "connected" && redisDep.Status == "connected" {
		report.Status = "ok"
	}
	return report
}

func ping(fn func() error, configured bool) DepStatus {
	if !configured {
		return DepStatus{Status: "disconnected"}
	}
	start := time.Now()
	if err := fn(); err != nil {
		return DepStatus{Status: "error"}
	}
	ms := time.Since(start).Milliseconds()
	return DepStatus{Status: "connected", PingMs: &ms}
}

func (s *Service) traffic(ctx context.Context, startMs int64) (TrafficInfo, int64) {
	stats := TrafficInfo{AvgResponseTime: 0, SuccessRate: "100"}
	vals, err := s.Redis.MGet(ctx, KeyReqTotal, KeyReqErrors, KeyResTime, KeyResCount, KeyStartTime, KeyLastReq).Result()
	if err != nil {
		return stats, startMs
	}
	str := func(i int) string {
		if v, ok := vals[i].(string); ok {
			return v
		}
		return ""
	}

	if t, err := strconv.ParseInt(str(4), 10, 64); err == nil {
		startMs = t
	} else {
		s.Redis.Set(ctx, KeyStartTime, startMs, 0)
	}

	stats.TotalRequests, _ = strconv.Atoi(str(0))
	stats.FailedCount, _ = strconv.Atoi(str(1))
	stats.SuccessCount = stats.TotalRequests - stats.FailedCount
	if stats.TotalRequests > 0 {
		stats.SuccessRate = strconv.FormatFloat(float64(stats.SuccessCount)/float64(stats.TotalRequests)*100, 'f', 1, 64)
	}
	timeSum, _ := strconv.ParseFloat(str(2), 64)
	if count, _ := strconv.Atoi(str(3)); count > 0 {
		stats.AvgResponseTime = strconv.FormatFloat(timeSum/float64(count), 'f', 2, 64)
	}
	if raw := str(5); raw != "" {
		var last map[string]interface{}
		if json.Unmarshal([]byte(raw), &last) == nil {
			stats.LastRequest = last
		}
	}
	return stats, startMs
}

// Reset clears all stats and restarts the uptime clock.
func (s *Service) Reset(ctx context.Context) error {
	if s.Redis == nil {
		return ErrRedisUnavailable
	}
	_, err := s.Redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, AllKeys...)
		pipe.Set(ctx, KeyStartTime, strconv.FormatInt(s.now().UnixMilli(), 10), 0)
		return nil
	})
	return err
}

// RecentErrors returns the newest error log entries, newest first.
func (s *Service) RecentErrors(ctx context.Context) ([]map[string]interface{}, error) {
	if s.Redis == nil {
		return []map[string]interface{}{}, nil
	}
	entries, err := s.Redis.LRange(ctx, KeyErrorLog, 0, ErrorLogSize-1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]map[string]interface{}, 0, len(entries))
	for _, raw := range entries {
		var m map[string]interface{}
		if json.Unmarshal([]byte(raw), &m) == nil && m != nil {
			out = append(out, m)
		}
	}
	return out, nil
}
