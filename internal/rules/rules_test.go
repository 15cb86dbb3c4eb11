package rules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultRules() []Rule {
	return []Rule{
		{ThresholdMin: 360, DeductionMin: 30},
		{ThresholdMin: 540, DeductionMin: 50},
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input []Rule
		want  []Rule
	}{
		{
			name:  "empty",
			input: nil,
			want:  []Rule{},
		},
		{
			name:  "sorts ascending",
			input: []Rule{{540, 50}, {360, 30}},
			want:  []Rule{{360, 30}, {540, 50}},
		},
		{
			name:  "clamps negatives",
			input: []Rule{{-10, -5}},
			want:  []Rule{{0, 0}},
		},
		{
			name:  "duplicate threshold keeps last",
			input: []Rule{{360, 30}, {360, 45}},
			want:  []Rule{{360, 45}},
		},
		{
			name:  "dedupe after sort",
			input: []Rule{{540, 50}, {360, 30}, {540, 60}},
			want:  []Rule{{360, 30}, {540, 60}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := [][]Rule{
		nil,
		defaultRules(),
		{{540, 50}, {360, 30}, {360, 45}, {-1, 10}},
		{{0, 0}, {0, 5}},
	}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		assert.Equal(t, once, twice)
	}
}

func TestNormalizeStrictlyIncreasing(t *testing.T) {
	norm := Normalize([]Rule{{540, 50}, {360, 30}, {360, 45}, {10, 5}, {-3, 7}})
	for i := 1; i < len(norm); i++ {
		assert.Greater(t, norm[i].ThresholdMin, norm[i-1].ThresholdMin)
	}
}

func TestValidateOrder(t *testing.T) {
	assert.NoError(t, ValidateOrder(nil))
	assert.NoError(t, ValidateOrder(defaultRules()))
	assert.ErrorIs(t, ValidateOrder([]Rule{{540, 50}, {360, 30}}), ErrRuleOrder)
	assert.ErrorIs(t, ValidateOrder([]Rule{{360, 30}, {360, 45}}), ErrRuleOrder)
}

func TestNetFromGrossScenarios(t *testing.T) {
	rs := defaultRules()

	tests := []struct {
		gross        int
		wantNet      int
		wantDeducted int
	}{
		{0, 0, 0},
		{-5, 0, 0},
		{300, 300, 0},
		{359, 359, 0},
		{360, 360, 0},  // at the threshold the ratchet holds net
		{361, 360, 1},  // one past: deduction applies, ratchet floors at 360
		{389, 360, 29}, // still inside the ratchet plateau
		{390, 360, 30}, // plateau ends exactly at threshold+deduction
		{391, 361, 30}, // net grows again
		{400, 370, 30},
		{480, 450, 30},
		{539, 509, 30},
		{540, 510, 30}, // second threshold: ratchet floor is 540-30=510
		{541, 510, 31},
		{590, 540, 50},
		{591, 541, 50},
		{600, 550, 50},
	}

	for _, tt := range tests {
		got := NetFromGross(tt.gross, rs)
		assert.Equal(t, tt.wantNet, got, "gross=%d", tt.gross)
		assert.Equal(t, tt.wantDeducted, DeductionFor(tt.gross, rs), "gross=%d", tt.gross)
	}
}

func TestNetFromGrossEmptyRules(t *testing.T) {
	assert.Equal(t, 480, NetFromGross(480, nil))
	assert.Equal(t, 0, DeductionFor(480, nil))
}

func TestNetFromGrossMonotone(t *testing.T) {
	ruleSets := [][]Rule{
		nil,
		defaultRules(),
		{{60, 15}},
		{{1, 100}},
		{{100, 10}, {200, 25}, {300, 90}},
		{{0, 30}},
	}

	for _, rs := range ruleSets {
		prev := -1
		for g := 0; g <= 800; g++ {
			net := NetFromGross(g, rs)
			require.GreaterOrEqual(t, net, prev, "net regressed at gross=%d rules=%v", g, rs)
			prev = net
		}
	}
}

func TestSummarize(t *testing.T) {
	start := time.Date(2025, 6, 16, 6, 0, 0, 0, time.UTC) // 08:00 Budapest
	end := start.Add(8 * time.Hour)

	sum, err := Summarize(start, end, defaultRules())
	require.NoError(t, err)
	assert.Equal(t, Summary{GrossMinutes: 480, DeductionMinutes: 30, NetMinutes: 450}, sum)

	_, err = Summarize(end, start, defaultRules())
	assert.ErrorIs(t, err, ErrNegativeDuration)
}

func TestTargetGrossForNet(t *testing.T) {
	rs := defaultRules()

	tests := []struct {
		targetNet int
		want      int
	}{
		{0, 0},
		{-10, 0},
		{1, 1},
		{300, 300},
		{360, 360}, // achievable exactly at the threshold
		{361, 391}, // plateau means 361 net needs 391 gross
		{450, 480},
		{510, 540},
		{511, 561}, // net holds at 510 until gross-50 catches up
		{550, 600},
	}

	for _, tt := range tests {
		got := TargetGrossForNet(tt.targetNet, rs)
		assert.Equal(t, tt.want, got, "targetNet=%d", tt.targetNet)
	}
}

func TestTargetGrossForNetIsTight(t *testing.T) {
	rs := defaultRules()
	for g := 0; g <= 700; g++ {
		net := NetFromGross(g, rs)
		back := TargetGrossForNet(net, rs)
		require.LessOrEqual(t, back, g, "inverse overshot at gross=%d", g)
		require.GreaterOrEqual(t, NetFromGross(back, rs), net)
		if back > 0 {
			require.Less(t, NetFromGross(back-1, rs), net,
				"gross %d-1 also reaches net %d", back, net)
		}
	}
}

func TestTargetTimeForNet(t *testing.T) {
	checkIn := time.Date(2025, 6, 16, 6, 0, 0, 0, time.UTC)

	at := TargetTimeForNet(checkIn, 360, defaultRules())
	assert.Equal(t, checkIn.Add(360*time.Minute), at)

	at = TargetTimeForNet(checkIn, 450, defaultRules())
	assert.Equal(t, checkIn.Add(480*time.Minute), at)
}

func TestAchievedAt(t *testing.T) {
	checkIn := time.Date(2025, 6, 16, 6, 0, 0, 0, time.UTC)
	rs := defaultRules()

	_, ok := AchievedAt(checkIn, checkIn.Add(7*time.Hour), 450, rs)
	assert.False(t, ok)

	at, ok := AchievedAt(checkIn, checkIn.Add(9*time.Hour), 450, rs)
	require.True(t, ok)
	assert.Equal(t, checkIn.Add(8*time.Hour), at)
}
