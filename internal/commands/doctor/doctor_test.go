package doctor

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hay-kot/randoid/internal/core/config"
	"github.com/hay-kot/randoid/pkg/randoid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunAll_Summarize(t *testing.T) {
	cfg := config.DefaultConfig()
	results := RunAll(context.Background(), []Check{
		NewConfigCheck(&cfg, ""),
		NewSourceCheck(nil),
	}, false)

	require.Len(t, results, 2)

	totals := Summarize(results)
	assert.Positive(t, totals.Passed)
	assert.Zero(t, totals.Warned)
	assert.Zero(t, totals.Failed)
	assert.True(t, totals.Healthy())
}

func TestResult_JSON(t *testing.T) {
	r := Result{
		Name: "Uniformity",
		Items: []CheckItem{{
			Label:   "Chi-square",
			Status:  StatusWarn,
			Measure: &Measure{Value: 12.5, Limit: 10},
		}},
	}

	out, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"name": "Uniformity",
		"items": [{"label": "Chi-square", "status": "warn", "measure": {"value": 12.5, "limit": 10}}]
	}`, string(out))

	var back Result
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, r, back)
	assert.Error(t, json.Unmarshal([]byte(`{"items":[{"status":"ok"}]}`), &back))
}

// fixableCheck reports one fixable warning until Fix is called.
type fixableCheck struct {
	fixed  bool
	fixErr error
	runs   int
}

func (c *fixableCheck) Name() string { return "Fixable" }

func (c *fixableCheck) Run(context.Context) Result {
	c.runs++
	if c.fixed {
		return Result{Name: c.Name(), Items: []CheckItem{{Label: "thing", Status: StatusPass}}}
	}
	return Result{Name: c.Name(), Items: []CheckItem{{Label: "thing", Status: StatusWarn, Fixable: true}}}
}

func (c *fixableCheck) Fix(context.Context) error {
	if c.fixErr != nil {
		return c.fixErr
	}
	c.fixed = true
	return nil
}

func TestRunAll_Fix(t *testing.T) {
	ctx := context.Background()

	t.Run("without fix", func(t *testing.T) {
		c := &fixableCheck{}
		results := RunAll(ctx, []Check{c}, false)

		totals := Summarize(results)
		assert.Equal(t, 1, totals.Fixable)
		assert.Zero(t, totals.Fixed)
		assert.False(t, c.fixed)
		assert.Equal(t, 1, c.runs)
	})

	t.Run("with fix reruns the check", func(t *testing.T) {
		c := &fixableCheck{}
		results := RunAll(ctx, []Check{c}, true)

		require.Len(t, results, 1)
		assert.True(t, results[0].Fixed)
		assert.Equal(t, 2, c.runs)

		totals := Summarize(results)
		assert.Zero(t, totals.Fixable)
		assert.Equal(t, 1, totals.Fixed)
		assert.Equal(t, 1, totals.Passed)
	})

	t.Run("failed fix is reported", func(t *testing.T) {
		c := &fixableCheck{fixErr: errors.New("read-only filesystem")}
		results := RunAll(ctx, []Check{c}, true)

		require.Len(t, results[0].Items, 2)
		assert.False(t, results[0].Fixed)
		assert.Equal(t, StatusFail, results[0].Items[1].Status)
		assert.Contains(t, results[0].Items[1].Detail, "read-only filesystem")
		assert.False(t, Summarize(results).Healthy())
	})
}

func TestConfigCheck(t *testing.T) {
	t.Run("nil config", func(t *testing.T) {
		r := NewConfigCheck(nil, "").Run(context.Background())
		require.Len(t, r.Items, 1)
		assert.Equal(t, StatusFail, r.Items[0].Status)
	})

	t.Run("errors and warnings", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Defaults.Source = "pcg"
		cfg.Alphabets = map[string]string{"odd": "abc"}

		r := NewConfigCheck(&cfg, "").Run(context.Background())

		totals := Summarize([]Result{r})
		assert.Equal(t, 1, totals.Failed)
		assert.Equal(t, 1, totals.Warned)
		assert.Equal(t, "alphabets.odd", r.Items[0].Label)
	})
}

func TestConfigFileCheck(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "randoid", "config.yaml")
	check := NewConfigFileCheck(path)

	r := check.Run(ctx)
	require.Len(t, r.Items, 1)
	assert.Equal(t, StatusWarn, r.Items[0].Status)
	assert.Equal(t, 1, Summarize([]Result{r}).Fixable)

	results := RunAll(ctx, []Check{check}, true)
	require.Len(t, results[0].Items, 1)
	assert.True(t, results[0].Fixed)
	assert.Equal(t, StatusPass, results[0].Items[0].Status)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), *cfg)

	r = check.Run(ctx)
	assert.Equal(t, "found", r.Items[0].Detail)
	assert.Zero(t, Summarize([]Result{r}).Fixable)

	assert.Error(t, check.Fix(ctx), "an existing file is never replaced")
}

func TestConfigFileCheck_Directory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))

	results := RunAll(context.Background(), []Check{NewConfigFileCheck(filepath.Join(dir, "sub"))}, true)
	assert.Equal(t, StatusFail, results[0].Items[0].Status)
	assert.False(t, results[0].Fixed, "a directory is not fixable")
}

type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	clear(p)
	return len(p), nil
}

type failReader struct{}

func (failReader) Read([]byte) (int, error) { return 0, errors.New("entropy pool closed") }

func TestSourceCheck(t *testing.T) {
	ctx := context.Background()

	r := NewSourceCheck(nil).Run(ctx)
	assert.Zero(t, Summarize([]Result{r}).Failed)

	r = NewSourceCheck(zeroReader{}).Run(ctx)
	require.Len(t, r.Items, 2)
	assert.Equal(t, StatusFail, r.Items[1].Status)
	assert.Contains(t, r.Items[1].Detail, "0x00")

	r = NewSourceCheck(failReader{}).Run(ctx)
	require.Len(t, r.Items, 1)
	assert.Equal(t, StatusFail, r.Items[0].Status)
	assert.Contains(t, r.Items[0].Detail, "entropy pool closed")
}

func TestUniformityCheck(t *testing.T) {
	ctx := context.Background()

	seeded := randoid.WithSource(randoid.NewPCG(7, 7))
	r := NewUniformityCheck(seeded, 0).Run(ctx)
	require.Len(t, r.Items, 1)
	assert.Equal(t, StatusPass, r.Items[0].Status)
	assert.Equal(t, "52.9 over 65536 symbols (limit 103.5)", r.Items[0].Detail)
	require.NotNil(t, r.Items[0].Measure)
	assert.InDelta(t, 52.86, r.Items[0].Measure.Value, 0.01)
	assert.InDelta(t, 103.51, r.Items[0].Measure.Limit, 0.01)
	assert.False(t, r.Items[0].Measure.Exceeded())

	// Non-ASCII alphabets are sampled too.
	greek := randoid.NewGenerator(1, randoid.MustAlphabet("αβγδ"), randoid.NewPCG(7, 7))
	r = NewUniformityCheck(greek, 4096).Run(ctx)
	require.Len(t, r.Items, 1)
	require.NotNil(t, r.Items[0].Measure)

	// A constant source puts every draw on the first symbol.
	stuck := randoid.NewGenerator(1, randoid.Hex, zeroReader{})
	r = NewUniformityCheck(stuck, 1024).Run(ctx)
	require.Len(t, r.Items, 1)
	assert.Equal(t, StatusFail, r.Items[0].Status)
	assert.True(t, r.Items[0].Measure.Exceeded())

	dup := randoid.NewGenerator(4, randoid.MustAlphabet("aabc"), nil)
	r = NewUniformityCheck(dup, 0).Run(ctx)
	assert.Equal(t, StatusWarn, r.Items[0].Status)
}

func TestChiSquareLimit(t *testing.T) {
	// Tabulated 99.9th percentiles.
	assert.InDelta(t, 103.44, chiSquareLimit(63), 0.2)
	assert.InDelta(t, 37.70, chiSquareLimit(15), 0.2)
}

func TestChiSquare(t *testing.T) {
	a := randoid.MustAlphabet("ab")
	assert.InDelta(t, 0, ChiSquare([]rune("abab"), a), 1e-9)
	assert.InDelta(t, 4, ChiSquare([]rune("aaaa"), a), 1e-9)
	assert.InDelta(t, 4, ChiSquare([]rune("ββββ"), randoid.MustAlphabet("αβ")), 1e-9)
}
