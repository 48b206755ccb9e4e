package db

import "testing"

func TestPoolStatsHealthyFlag(t *testing.T) {
	healthy := PoolStats{TotalConns: 4, IdleConns: 2, AcquiredConns: 2, MaxConns: 20, Healthy: true}
	if !healthy.Healthy {
		t.Error("expected Healthy true with open connections")
	}

	drained := PoolStats{MaxConns: 20}
	if drained.Healthy {
		t.Error("expected Healthy false with no connections")
	}
}
