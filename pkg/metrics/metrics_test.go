package metrics

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRequest(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveRequest("GET", "/api/parliament/{id}", 200, 15*time.Millisecond)
	m.ObserveRequest("GET", "/api/parliament/{id}", 404, time.Millisecond)
	m.ObserveRequest("GET", "", 404, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/api/parliament/{id}", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/api/parliament/{id}", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "unmatched", "404")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.RequestDuration))
}

func TestQueryTracer(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	tracer := NewQueryTracer(m)
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tracer.now = func() time.Time { return clock }

	ctx := tracer.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "\n\t\tSELECT count(*) FROM party"})
	clock = clock.Add(20 * time.Millisecond)
	tracer.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{})

	ctx = tracer.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "SELECT 1"})
	tracer.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{Err: errors.New("boom")})

	count, err := testutil.GatherAndCount(reg, "votabien_db_query_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, count, "one series per outcome")
}

func TestQueryTracer_EndWithoutStartIsIgnored(t *testing.T) {
	m := New(prometheus.NewRegistry())
	NewQueryTracer(m).TraceQueryEnd(context.Background(), nil, pgx.TraceQueryEndData{})
	assert.Equal(t, 0, testutil.CollectAndCount(m.QueryDuration))
}

func TestStatementKind(t *testing.T) {
	assert.Equal(t, "select", statementKind("  SELECT 1"))
	assert.Equal(t, "with", statementKind("WITH x AS (SELECT 1) SELECT * FROM x"))
	assert.Equal(t, "unknown", statementKind(" \n "))
}

func TestPoolCollector_Describe(t *testing.T) {
	c := NewPoolCollector(nil)
	ch := make(chan *prometheus.Desc, 10)
	c.Describe(ch)
	close(ch)

	var names []string
	for d := range ch {
		names = append(names, d.String())
	}
	require.Len(t, names, 6)
	assert.True(t, strings.Contains(names[0], "votabien_db_pool_acquired_connections"))
}
