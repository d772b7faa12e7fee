package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wastebot/internal/waste"
	dErrors "wastebot/pkg/domain-errors"
)

func newTestService() *Service {
	return NewService(waste.NewInMemoryStore())
}

func detection(robotID string) waste.Detection {
	conf := 0.92
	return waste.Detection{
		Category:   waste.CategoryPlastic,
		Region:     "north",
		Confidence: &conf,
		RobotID:    robotID,
	}
}

func TestReportDetectionAssignsIDAndTimestamp(t *testing.T) {
	svc := newTestService()

	rec, err := svc.ReportDetection(context.Background(), detection("robot-1"))
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)
	assert.False(t, rec.Timestamp.IsZero())
	assert.Equal(t, waste.StatusDetected, rec.Status)
	assert.Equal(t, "robot-1", rec.RobotID)
}

func TestReportDetectionValidation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	t.Run("unknown category", func(t *testing.T) {
		det := detection("robot-1")
		det.Category = "styrofoam"
		_, err := svc.ReportDetection(ctx, det)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	t.Run("confidence out of range", func(t *testing.T) {
		det := detection("robot-1")
		bad := 1.5
		det.Confidence = &bad
		_, err := svc.ReportDetection(ctx, det)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	t.Run("latitude without longitude", func(t *testing.T) {
		det := detection("robot-1")
		lat := 48.85
		det.Latitude = &lat
		_, err := svc.ReportDetection(ctx, det)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
	})
}

func TestConfirmCollectionIsMonotonicAndIdempotent(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	rec, err := svc.ReportDetection(ctx, detection("robot-1"))
	require.NoError(t, err)

	require.NoError(t, svc.ConfirmCollection(ctx, rec.ID))
	got, err := svc.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, waste.StatusCollected, got.Status)

	// Second confirmation changes nothing.
	require.NoError(t, svc.ConfirmCollection(ctx, rec.ID))
	got, err = svc.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, waste.StatusCollected, got.Status)
}

func TestConfirmCollectionMissingIDIsSilentNoOp(t *testing.T) {
	svc := newTestService()
	require.NoError(t, svc.ConfirmCollection(context.Background(), "no-such-record"))
}

func TestStats(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	var collected []string
	for range 3 {
		rec, err := svc.ReportDetection(ctx, detection("robot-1"))
		require.NoError(t, err)
		collected = append(collected, rec.ID)
	}
	for range 2 {
		_, err := svc.ReportDetection(ctx, detection("robot-2"))
		require.NoError(t, err)
	}
	for _, id := range collected {
		require.NoError(t, svc.ConfirmCollection(ctx, id))
	}

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, waste.Stats{Total: 5, Detected: 2, Collected: 3}, stats)
}

func TestGetUnknownRecordIsNotFound(t *testing.T) {
	svc := newTestService()

	_, err := svc.Get(context.Background(), "no-such-record")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestDeleteIsIdempotentAndAffectsStats(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	rec, err := svc.ReportDetection(ctx, detection("robot-1"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, rec.ID))
	require.NoError(t, svc.Delete(ctx, rec.ID))

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, waste.Stats{}, stats)
}

func TestListByRobot(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.ReportDetection(ctx, detection("robot-1"))
	require.NoError(t, err)
	_, err = svc.ReportDetection(ctx, detection("robot-2"))
	require.NoError(t, err)

	records, err := svc.ListByRobot(ctx, "robot-1")
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
