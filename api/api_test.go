package api

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rotblauer/trajmix/catz"
	"github.com/rotblauer/trajmix/common"
	"github.com/rotblauer/trajmix/params"
	"github.com/rotblauer/trajmix/partition"
	"github.com/rotblauer/trajmix/testing/testdata"
	"github.com/rotblauer/trajmix/types/trajectory"
)

func mustWriteSource(t *testing.T, dir, name string, tracks ...*trajectory.Trajectory) {
	t.Helper()
	if _, err := testdata.WriteSource(dir, name, tracks...); err != nil {
		t.Fatal(err)
	}
}

func mustDecode(t *testing.T, path string) *trajectory.File {
	t.Helper()
	data, err := catz.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	f, err := trajectory.Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func combineConfig(data, out string, groups, pick int) *params.CombineConfig {
	c := params.DefaultCombineConfig()
	c.DataDir = data
	c.OutputDir = out
	c.GroupNum = groups
	c.PickPerGroup = pick
	return c
}

func TestCombine(t *testing.T) {
	data := t.TempDir()
	out := filepath.Join(t.TempDir(), "outputs")

	// The two vehicles share one timestamp, t=5, at the same position.
	mustWriteSource(t, data, "000001.json", testdata.Straight(0, 0, 1, 0, 0, 1, 10))
	mustWriteSource(t, data, "000002.json", testdata.Parked(5, 0, 5, 1, 1))
	mustWriteSource(t, data, "notes.json", testdata.Parked(100, 100, 0, 1, 1))

	res, err := Combine(context.Background(), combineConfig(data, out, 2, 1))
	if err != nil {
		t.Fatal(err)
	}
	if res.Total.Int64() != 1 || res.Combinations != 1 {
		t.Fatalf("got total %v, combinations %d, want 1, 1", res.Total, res.Combinations)
	}
	if res.Original != 2 || res.Removed != 1 || res.Kept != 1 {
		t.Errorf("got original %d, removed %d, kept %d", res.Original, res.Removed, res.Kept)
	}
	want := []string{filepath.Join(out, "000001-000002.json")}
	if diff := cmp.Diff(want, res.Written); diff != "" {
		t.Fatalf("written (-want +got):\n%s", diff)
	}

	f := mustDecode(t, res.Written[0])
	if diff := cmp.Diff([]string{"0"}, f.Keys()); diff != "" {
		t.Errorf("keys (-want +got):\n%s", diff)
	}
	kept, _ := f.Get("0")
	if kept.Len() != 10 {
		t.Errorf("kept vehicle has %d frames, want the longer 10", kept.Len())
	}
}

func TestCombineNoOverlap(t *testing.T) {
	data := t.TempDir()
	out := t.TempDir()
	mustWriteSource(t, data, "000001.json", testdata.Parked(0, 0, 0, 1, 3))
	mustWriteSource(t, data, "000002.json", testdata.Parked(50, 0, 0, 1, 3))
	mustWriteSource(t, data, "000003.json", testdata.Parked(0, 0, 100, 1, 2))
	mustWriteSource(t, data, "000004.json", testdata.Parked(0, 0, 200, 1, 2))

	res, err := Combine(context.Background(), combineConfig(data, out, 2, 1))
	if err != nil {
		t.Fatal(err)
	}
	if res.Combinations != 4 || len(res.Written) != 4 {
		t.Fatalf("got %d combinations, want 4", res.Combinations)
	}
	if res.Removed != 0 || res.Kept != 8 {
		t.Errorf("got removed %d, kept %d, want 0, 8", res.Removed, res.Kept)
	}
	for _, p := range res.Written {
		if f := mustDecode(t, p); f.Len() != 2 {
			t.Errorf("%s: got %d vehicles, want 2", p, f.Len())
		}
	}
}

func TestCombineGroupTooSmall(t *testing.T) {
	data := t.TempDir()
	out := filepath.Join(t.TempDir(), "outputs")
	mustWriteSource(t, data, "000001.json", testdata.Parked(0, 0, 0, 1, 1))
	mustWriteSource(t, data, "000002.json", testdata.Parked(0, 0, 0, 1, 1))

	_, err := Combine(context.Background(), combineConfig(data, out, 2, 2))
	if !errors.Is(err, partition.ErrGroupTooSmall) {
		t.Fatalf("got %v, want ErrGroupTooSmall", err)
	}
	if _, err := os.Stat(out); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("output dir should not exist, got %v", err)
	}
}

func TestCombineDryRun(t *testing.T) {
	data := t.TempDir()
	out := filepath.Join(t.TempDir(), "outputs")
	for _, name := range []string{"000001.json", "000002.json", "000003.json", "000004.json"} {
		mustWriteSource(t, data, name, testdata.Parked(0, 0, 0, 1, 1))
	}
	config := combineConfig(data, out, 2, 1)
	config.DryRun = true
	res, err := Combine(context.Background(), config)
	if err != nil {
		t.Fatal(err)
	}
	if res.Total.Int64() != 4 {
		t.Errorf("got total %v, want 4", res.Total)
	}
	if res.Combinations != 0 || len(res.Written) != 0 {
		t.Errorf("dry run processed %d combinations", res.Combinations)
	}
}

func TestCombineInvalidConfig(t *testing.T) {
	config := combineConfig(t.TempDir(), t.TempDir(), 0, 1)
	if _, err := Combine(context.Background(), config); !errors.Is(err, params.ErrInvalidConfig) {
		t.Fatalf("got %v, want ErrInvalidConfig", err)
	}
}

func TestCombineCanceled(t *testing.T) {
	data := t.TempDir()
	mustWriteSource(t, data, "000001.json", testdata.Parked(0, 0, 0, 1, 1))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Combine(ctx, combineConfig(data, t.TempDir(), 1, 1)); !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}
}

func cropConfig(in, out string) *params.CropConfig {
	c := params.DefaultCropConfig()
	c.InputDir = in
	c.OutputDir = out
	c.MinVehicles = 1
	c.MinDuration = 5
	return c
}

func TestCrop(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	mustWriteSource(t, in, "000001-000002.json",
		testdata.Straight(0, 0, 1, 0, 0, 1, 10),
		testdata.Straight(0, 10, 1, 0, 0, 1, 10),
		testdata.Parked(0, 20, 3, 1, 3),
	)

	res, err := Crop(context.Background(), cropConfig(in, out))
	if err != nil {
		t.Fatal(err)
	}
	if res.Scenes != 1 {
		t.Errorf("got %d scenes, want 1", res.Scenes)
	}
	path := filepath.Join(out, "000001-000002", "9_2.json")
	// v0 and v1 both yield 9_2.json, the short-lived v2 is never a subject.
	if diff := cmp.Diff([]string{path, path}, res.Written); diff != "" {
		t.Fatalf("written (-want +got):\n%s", diff)
	}

	f := mustDecode(t, path)
	if diff := cmp.Diff([]string{"0", "1"}, f.Keys()); diff != "" {
		t.Errorf("keys (-want +got):\n%s", diff)
	}
	subject, _ := f.Get("0")
	if subject.Frames[0].Position[1] != 10 {
		t.Errorf("subject should be the last writer v1, got %v", subject.Frames[0].Position)
	}
}

func TestCropThresholds(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	mustWriteSource(t, in, "000001.json",
		testdata.Straight(0, 0, 1, 0, 0, 1, 6),
		testdata.Straight(0, 10, 1, 0, 0, 1, 6),
	)
	config := cropConfig(in, out)

	// Duration 5 is not longer than 5.
	res, err := Crop(context.Background(), config)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Written) != 0 {
		t.Errorf("got %v, want nothing", res.Written)
	}
	if !catz.NewFlatWithRoot(out).Joins("000001").Exists() {
		t.Error("scene directory should exist even when empty")
	}

	config.MinDuration = 4
	config.MinVehicles = 2
	if res, err = Crop(context.Background(), config); err != nil {
		t.Fatal(err)
	}
	if len(res.Written) != 0 {
		t.Errorf("two vehicles should not pass a minimum of 2, got %v", res.Written)
	}
}

func TestCropEmptyTrajectory(t *testing.T) {
	in := t.TempDir()
	if err := os.WriteFile(filepath.Join(in, "000001.json"), []byte(`{"a": []}`), 0660); err != nil {
		t.Fatal(err)
	}
	_, err := Crop(context.Background(), cropConfig(in, t.TempDir()))
	if !errors.Is(err, ErrEmptyTrajectory) {
		t.Fatalf("got %v, want ErrEmptyTrajectory", err)
	}
}

func TestCollect(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	for _, p := range []string{
		"sceneA/20000_10.json",
		"sceneA/19999_50.json",
		"sceneB/30000_9.json",
		"sceneB/30000_12.txt",
		"sceneB/bad_12.json",
		"sceneB/deep/40000_40.json",
	} {
		path := filepath.Join(in, p)
		if err := os.MkdirAll(filepath.Dir(path), 0770); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(p), 0660); err != nil {
			t.Fatal(err)
		}
	}

	config := params.DefaultCollectConfig()
	config.InputDir = in
	config.OutputDir = out
	res, err := Collect(context.Background(), config)
	if err != nil {
		t.Fatal(err)
	}
	if res.Matched != 2 {
		t.Errorf("got %d matched, want 2", res.Matched)
	}
	want := []string{
		filepath.Join(out, "sceneA_20000_10.json"),
		filepath.Join(out, "deep_40000_40.json"),
	}
	if diff := cmp.Diff(want, res.Copied); diff != "" {
		t.Errorf("copied (-want +got):\n%s", diff)
	}
	data, err := os.ReadFile(want[0])
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "sceneA/20000_10.json" {
		t.Errorf("got content %q", data)
	}
}

func TestCollectMissingInput(t *testing.T) {
	config := params.DefaultCollectConfig()
	config.InputDir = filepath.Join(t.TempDir(), "missing")
	config.OutputDir = t.TempDir()
	res, err := Collect(context.Background(), config)
	if err != nil {
		t.Fatal(err)
	}
	if res.Matched != 0 {
		t.Errorf("got %d matched, want 0", res.Matched)
	}
}

func TestRun(t *testing.T) {
	defer common.SlogResetLevel(slog.LevelWarn + 1)()
	root := t.TempDir()
	data := filepath.Join(root, "data")
	mustWriteSource(t, data, "000001.json",
		testdata.Straight(0, 0, 1, 0, 0, 1000, 30),
		testdata.Straight(0, 10, 1, 0, 0, 1000, 30),
	)
	mustWriteSource(t, data, "000002.json",
		testdata.Straight(0, 20, 1, 0, 0, 1000, 30),
		testdata.Straight(0, 30, 1, 0, 0, 1000, 30),
	)

	config := params.DefaultRunConfig()
	config.Combine.DataDir = data
	config.Combine.OutputDir = filepath.Join(root, "outputs")
	config.Combine.GroupNum = 2
	config.Crop.OutputDir = filepath.Join(root, "crop")
	config.Crop.MinVehicles = 3
	config.Collect.OutputDir = filepath.Join(root, "num")
	config.Collect.MinCount = 4

	res, err := Run(context.Background(), config)
	if err != nil {
		t.Fatal(err)
	}
	if res.Combine.Combinations != 1 || res.Combine.Kept != 4 {
		t.Fatalf("got combine %+v", res.Combine)
	}
	// Four subjects, all spanning 29000, overwrite the same sub-scene.
	if len(res.Crop.Written) != 4 {
		t.Errorf("got %d crops, want 4", len(res.Crop.Written))
	}
	want := []string{filepath.Join(root, "num", "000001-000002_29000_4.json")}
	if diff := cmp.Diff(want, res.Collect.Copied); diff != "" {
		t.Errorf("collected (-want +got):\n%s", diff)
	}
}

func TestRunDryRun(t *testing.T) {
	root := t.TempDir()
	data := filepath.Join(root, "data")
	mustWriteSource(t, data, "000001.json", testdata.Parked(0, 0, 0, 1, 1))

	config := params.DefaultRunConfig()
	config.Combine.DataDir = data
	config.Combine.OutputDir = filepath.Join(root, "outputs")
	config.Combine.GroupNum = 1
	config.Combine.DryRun = true
	res, err := Run(context.Background(), config)
	if err != nil {
		t.Fatal(err)
	}
	if res.Crop != nil || res.Collect != nil {
		t.Error("dry run should stop after combine")
	}
}
