package listeners

import (
	"context"
	"fmt"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"loadbench/internal/models"
	"loadbench/internal/shared/configs"
)

const influxMeasurement = "loadbench"

// influxListener forwards every aggregated record to an InfluxDB bucket,
// one point per tag per second, so results can be watched in a dashboard
// while the test runs. Field keys are flattened to "<field>_<stat>"
// ("latency_us_q95").
type influxListener struct {
	runID    string
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
}

func NewInfluxListener(cfg configs.InfluxConfig, runID string) ResultListener {
	client := influxdb2.NewClient(cfg.URL, cfg.Token)
	return &influxListener{
		runID:    runID,
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.Org, cfg.Bucket),
	}
}

func (l *influxListener) Name() string { return "influx" }

func (l *influxListener) OnRecord(ctx context.Context, record *models.AggregatedRecord) error {
	points := make([]*write.Point, 0, len(record.Tags))
	for tag, stats := range record.Tags {
		fields := map[string]interface{}{
			"sample_count": stats.SampleCount,
		}
		for field, fieldStats := range stats.Fields {
			for stat, value := range fieldStats {
				fields[fmt.Sprintf("%s_%s", field, stat)] = value
			}
		}
		point := influxdb2.NewPoint(
			influxMeasurement,
			map[string]string{"run_id": l.runID, "tag": tag},
			fields,
			time.Unix(record.Timestamp, 0).UTC(),
		)
		points = append(points, point)
	}

	if err := l.writeAPI.WritePoint(ctx, points...); err != nil {
		return errSinkWriteFailed("influx", err)
	}
	return nil
}

func (l *influxListener) Close() error {
	l.client.Close()
	return nil
}
