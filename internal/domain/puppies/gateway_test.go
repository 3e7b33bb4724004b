package puppies

import (
	"context"
	"errors"
	"testing"
	"time"

	"litter-milestones/internal/domain/growth"
	"litter-milestones/internal/domain/protocols"
	"litter-milestones/internal/platform/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var (
	birth = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	// ceil => día 5
	today = time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC)
)

type gatewayFixture struct {
	gw      *Gateway
	logs    *fakeLogs
	rec     *countingRecorder
	puppyID string
	observe *observer.ObservedLogs
}

func newGatewayFixture(t *testing.T, birthDate *time.Time, enforce bool) gatewayFixture {
	t.Helper()

	litters := newFakeLitters()
	pups := newFakePuppies()
	logs := newFakeLogs()
	rec := newCountingRecorder()

	require.NoError(t, litters.Create(context.Background(), Litter{ID: "l1", Name: "A", BirthDate: birthDate}))
	bw := 400.0
	require.NoError(t, pups.Create(context.Background(), Puppy{ID: "p1", LitterID: "l1", Name: "Uno", BirthWeight: &bw}))

	core, observed := observer.New(zapcore.DebugLevel)

	gw := NewGateway(litters, pups, logs, GatewayOptions{
		EnforceWindows: enforce,
		LocalStateTTL:  time.Minute,
		Logger:         logger.FromZap(zap.New(core)),
		Metrics:        rec,
	})
	gw.now = func() time.Time { return today }

	return gatewayFixture{gw: gw, logs: logs, rec: rec, puppyID: "p1", observe: observed}
}

func neuro() Target { return ProtocolTarget(protocols.TypeNeurological) }

func TestGateway_ApplyEvent_PersistsAndDerives(t *testing.T) {
	f := newGatewayFixture(t, &birth, true)
	ctx := context.Background()

	st, err := f.gw.ApplyEvent(ctx, f.puppyID, neuro(), protocols.ToggleExercise{Day: 3, ExerciseID: protocols.ExerciseTactile})
	require.NoError(t, err)

	assert.True(t, st.Available)
	assert.Equal(t, "l1", st.LitterID)
	assert.Equal(t, today, st.AsOf)
	require.Len(t, st.Protocols, len(protocols.All))

	res, ok := st.ProtocolResult(protocols.TypeNeurological)
	require.True(t, ok)
	assert.Equal(t, protocols.DayPartial, res.Days[0].State)
	assert.Equal(t, 5, res.AgeDays)

	assert.Equal(t, 1, f.logs.saves)
	assert.True(t, f.logs.protocols["p1"][protocols.TypeNeurological].Exercises[3][protocols.ExerciseTactile].Done)
	assert.Equal(t, 1, f.rec.applied[string(neuro())])
}

func TestGateway_ToggleTwiceRestoresState(t *testing.T) {
	f := newGatewayFixture(t, &birth, true)
	ctx := context.Background()

	before, err := f.gw.Derive(ctx, f.puppyID)
	require.NoError(t, err)

	ev := protocols.ToggleExercise{Day: 4, ExerciseID: protocols.ExerciseThermal}
	_, err = f.gw.ApplyEvent(ctx, f.puppyID, neuro(), ev)
	require.NoError(t, err)
	after, err := f.gw.ApplyEvent(ctx, f.puppyID, neuro(), ev)
	require.NoError(t, err)

	b, _ := before.ProtocolResult(protocols.TypeNeurological)
	a, _ := after.ProtocolResult(protocols.TypeNeurological)
	assert.Equal(t, b.CompletedCount, a.CompletedCount)
	assert.Equal(t, b.Days[1].State, a.Days[1].State)
	assert.Equal(t, before.Summary, after.Summary)
}

func TestGateway_RollbackRestoresSnapshot(t *testing.T) {
	f := newGatewayFixture(t, &birth, true)
	ctx := context.Background()

	_, err := f.gw.ApplyEvent(ctx, f.puppyID, neuro(), protocols.ToggleExercise{Day: 3, ExerciseID: protocols.ExerciseTactile})
	require.NoError(t, err)

	before, ok := f.gw.cached(f.puppyID)
	require.True(t, ok)
	snapshot := before.protocols[protocols.TypeNeurological].Clone()

	f.logs.failSave = errDiskFull
	_, err = f.gw.ApplyEvent(ctx, f.puppyID, neuro(), protocols.ToggleExercise{Day: 3, ExerciseID: protocols.ExerciseHeadErect})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPersistence)

	cur, ok := f.gw.cached(f.puppyID)
	require.True(t, ok)
	assert.Equal(t, snapshot, cur.protocols[protocols.TypeNeurological])

	assert.Equal(t, 1, f.rec.rolledBack[string(neuro())])
	assert.Equal(t, 1, f.observe.FilterMessage("persistence failed, optimistic update reverted").Len())

	// El estado derivado después del fallo coincide con el anterior.
	st, err := f.gw.Derive(ctx, f.puppyID)
	require.NoError(t, err)
	res, _ := st.ProtocolResult(protocols.TypeNeurological)
	assert.Equal(t, 1, res.Days[0].Done)
}

func TestGateway_RollbackKeepsOtherLogs(t *testing.T) {
	f := newGatewayFixture(t, &birth, true)
	ctx := context.Background()

	_, err := f.gw.ApplyEvent(ctx, f.puppyID, ProtocolTarget(protocols.TypeOlfactory), protocols.SetScent{Day: 3, Scent: "lavender", Executor: "ana"})
	require.NoError(t, err)

	f.logs.failSave = errDiskFull
	_, err = f.gw.ApplyEvent(ctx, f.puppyID, neuro(), protocols.ToggleExercise{Day: 3, ExerciseID: protocols.ExerciseTactile})
	require.ErrorIs(t, err, ErrPersistence)

	cur, ok := f.gw.cached(f.puppyID)
	require.True(t, ok)
	assert.Equal(t, "lavender", cur.protocols[protocols.TypeOlfactory].Scents[3].Scent)
	assert.Empty(t, cur.protocols[protocols.TypeNeurological].Exercises)
}

func TestGateway_WeightRollback(t *testing.T) {
	f := newGatewayFixture(t, &birth, true)
	ctx := context.Background()

	_, err := f.gw.ApplyEvent(ctx, f.puppyID, TargetWeight, AddWeight{Weight: 420, Date: birth.AddDate(0, 0, 1)})
	require.NoError(t, err)

	f.logs.failAppend = errDiskFull
	_, err = f.gw.ApplyEvent(ctx, f.puppyID, TargetWeight, AddWeight{Weight: 440, Date: birth.AddDate(0, 0, 2)})
	require.ErrorIs(t, err, ErrPersistence)

	st, err := f.gw.Derive(ctx, f.puppyID)
	require.NoError(t, err)
	require.Len(t, st.Growth.Points, 1)
	assert.Equal(t, 420.0, st.Growth.Points[0].Weight)
	assert.Equal(t, 1, f.rec.rolledBack[string(TargetWeight)])
}

func TestGateway_Weights_Classified(t *testing.T) {
	f := newGatewayFixture(t, &birth, true)
	ctx := context.Background()

	_, err := f.gw.ApplyEvent(ctx, f.puppyID, TargetWeight, AddWeight{Weight: 380, Date: birth.AddDate(0, 0, 1)})
	require.NoError(t, err)
	st, err := f.gw.ApplyEvent(ctx, f.puppyID, TargetWeight, AddWeight{Weight: 400, Date: birth.AddDate(0, 0, 2)})
	require.NoError(t, err)

	require.Len(t, st.Growth.Points, 2)
	assert.Equal(t, growth.StatusCritical, st.Growth.Points[0].Status)
	assert.Equal(t, growth.StatusExcellent, st.Growth.Points[1].Status)
	assert.Equal(t, 1, st.Growth.CriticalCount)
	require.NotNil(t, st.Growth.Latest)
	assert.Equal(t, 400.0, st.Growth.Latest.Weight)
}

func TestGateway_RejectsInvalidWeight(t *testing.T) {
	f := newGatewayFixture(t, &birth, true)
	ctx := context.Background()

	_, err := f.gw.ApplyEvent(ctx, f.puppyID, TargetWeight, AddWeight{Weight: -1, Date: today})
	assert.ErrorIs(t, err, growth.ErrInvalidWeight)

	_, err = f.gw.ApplyEvent(ctx, f.puppyID, neuro(), AddWeight{Weight: 10, Date: today})
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.Empty(t, f.logs.weights["p1"])
	assert.Equal(t, 1, f.rec.rejected[string(TargetWeight)])
}

func TestGateway_EnforcedWindows(t *testing.T) {
	f := newGatewayFixture(t, &birth, true)
	ctx := context.Background()

	cases := []struct {
		name   string
		target Target
		ev     protocols.Event
		want   error
	}{
		{"future day", neuro(), protocols.ToggleExercise{Day: 6, ExerciseID: protocols.ExerciseTactile}, protocols.ErrDayNotYetOpen},
		{"outside window", neuro(), protocols.ToggleExercise{Day: 20, ExerciseID: protocols.ExerciseTactile}, protocols.ErrDayOutOfWindow},
		{"locked protocol", ProtocolTarget(protocols.TypeAuditory), protocols.ToggleItem{ItemID: "music"}, protocols.ErrProtocolLocked},
		{"wrong log", ProtocolTarget(protocols.TypeOlfactory), protocols.ToggleExercise{Day: 3, ExerciseID: protocols.ExerciseTactile}, protocols.ErrEventMismatch},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.gw.ApplyEvent(ctx, f.puppyID, tc.target, tc.ev)
			assert.ErrorIs(t, err, tc.want)
		})
	}
	assert.Equal(t, 0, f.logs.saves)
}

func TestGateway_LegacyModeAcceptsOutOfWindow(t *testing.T) {
	f := newGatewayFixture(t, &birth, false)
	ctx := context.Background()

	st, err := f.gw.ApplyEvent(ctx, f.puppyID, neuro(), protocols.ToggleExercise{Day: 20, ExerciseID: protocols.ExerciseTactile})
	require.NoError(t, err)

	// El dato existe pero no cuenta para el avance.
	res, _ := st.ProtocolResult(protocols.TypeNeurological)
	assert.Equal(t, 0, res.CompletedCount)
	assert.Equal(t, 1, f.logs.saves)
}

func TestGateway_NoBirthDate(t *testing.T) {
	f := newGatewayFixture(t, nil, true)
	ctx := context.Background()

	_, err := f.gw.ApplyEvent(ctx, f.puppyID, neuro(), protocols.ToggleExercise{Day: 3, ExerciseID: protocols.ExerciseTactile})
	assert.ErrorIs(t, err, ErrUnavailable)

	st, err := f.gw.Derive(ctx, f.puppyID)
	require.NoError(t, err)
	assert.False(t, st.Available)
	assert.Equal(t, 0, st.Summary.CompletedProtocols)
	assert.False(t, st.Summary.IsFullyComplete)
	for _, r := range st.Protocols {
		assert.Equal(t, protocols.AvailabilityUnavailable, r.Availability)
	}
}

func TestGateway_NotFound(t *testing.T) {
	f := newGatewayFixture(t, &birth, true)

	_, err := f.gw.Derive(context.Background(), "nope")
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = f.gw.Derive(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGateway_LocalStateCachedUntilForget(t *testing.T) {
	f := newGatewayFixture(t, &birth, true)
	ctx := context.Background()

	_, err := f.gw.Derive(ctx, f.puppyID)
	require.NoError(t, err)
	loads := f.logs.loads

	_, err = f.gw.Derive(ctx, f.puppyID)
	require.NoError(t, err)
	assert.Equal(t, loads, f.logs.loads)

	f.gw.Forget(f.puppyID)
	_, err = f.gw.Derive(ctx, f.puppyID)
	require.NoError(t, err)
	assert.Equal(t, loads+len(protocols.All), f.logs.loads)
}

func TestGateway_DeriveLitter(t *testing.T) {
	f := newGatewayFixture(t, &birth, true)
	ctx := context.Background()

	l, states, err := f.gw.DeriveLitter(ctx, "l1")
	require.NoError(t, err)
	assert.Equal(t, "A", l.Name)
	require.Len(t, states, 1)
	assert.Equal(t, "p1", states[0].PuppyID)

	_, _, err = f.gw.DeriveLitter(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestParseTarget(t *testing.T) {
	got, err := ParseTarget(" Weight ")
	require.NoError(t, err)
	assert.Equal(t, TargetWeight, got)

	got, err = ParseTarget("sensory")
	require.NoError(t, err)
	assert.Equal(t, ProtocolTarget(protocols.TypeSensory), got)

	_, err = ParseTarget("agility")
	assert.ErrorIs(t, err, protocols.ErrUnknownProtocol)
}
