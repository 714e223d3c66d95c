package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfigFile(t, `
log_level: debug
addr: ":7070"
repeats: 5
practice_repeats: 2
queue_size: 128
worker_count: 3
result_db_path: /tmp/results.db
`)
	t.Setenv("SYNTRIAL_CONFIG", path)

	Convey("Given a YAML config file", t, func() {
		cfg, err := Load(context.Background())
		So(err, ShouldBeNil)

		Convey("Then file values override defaults", func() {
			So(cfg.LogLevel, ShouldEqual, "debug")
			So(cfg.Addr, ShouldEqual, ":7070")
			So(cfg.Repeats, ShouldEqual, 5)
			So(cfg.PracticeRepeats, ShouldEqual, 2)
			So(cfg.QueueSize, ShouldEqual, 128)
			So(cfg.WorkerCount, ShouldEqual, 3)
			So(cfg.ResultDBPath, ShouldEqual, "/tmp/results.db")
		})

		Convey("And untouched fields keep their defaults", func() {
			So(cfg.DedupeSize, ShouldEqual, New().DedupeSize)
			So(len(cfg.StimulusSets["letter"]), ShouldEqual, 26)
		})
	})
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SYNTRIAL_ADDR", ":6060")
	t.Setenv("SYNTRIAL_LOG_LEVEL", "warn")
	t.Setenv("SYNTRIAL_MAX_RESULTS_LIMIT", "25")

	Convey("Given environment overrides", t, func() {
		cfg, err := Load(context.Background())
		So(err, ShouldBeNil)

		Convey("Then env values land in the config", func() {
			So(cfg.Addr, ShouldEqual, ":6060")
			So(cfg.LogLevel, ShouldEqual, "warn")
			So(cfg.MaxResultsLimit, ShouldEqual, 25)
		})
	})
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `
addr: ":7070"
repeats: 5
`)
	t.Setenv("SYNTRIAL_CONFIG", path)
	t.Setenv("SYNTRIAL_ADDR", ":5050")

	Convey("Given both a file and env overrides", t, func() {
		cfg, err := Load(context.Background())
		So(err, ShouldBeNil)

		Convey("Then env wins over the file", func() {
			So(cfg.Addr, ShouldEqual, ":5050")
		})

		Convey("And file-only keys still apply", func() {
			So(cfg.Repeats, ShouldEqual, 5)
		})
	})
}

func TestLoadErrors(t *testing.T) {
	Convey("Given a missing config file", t, func() {
		t.Setenv("SYNTRIAL_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
		_, err := Load(context.Background())

		Convey("Then loading fails with the load sentinel", func() {
			So(err, ShouldNotBeNil)
			So(errors.Is(err, ErrLoadConfig), ShouldBeTrue)
		})
	})
}

func TestValidation(t *testing.T) {
	Convey("Given invalid configurations", t, func() {
		cases := []struct {
			name   string
			mutate func(*Config)
		}{
			{"empty addr", func(c *Config) { c.Addr = "" }},
			{"zero repeats", func(c *Config) { c.Repeats = 0 }},
			{"negative practice repeats", func(c *Config) { c.PracticeRepeats = -1 }},
			{"no stimulus sets", func(c *Config) { c.StimulusSets = nil }},
			{"empty stimulus set", func(c *Config) { c.StimulusSets = map[string][]string{"letter": {}} }},
			{"zero results limit", func(c *Config) { c.MaxResultsLimit = 0 }},
		}

		for _, tc := range cases {
			Convey("When the config has "+tc.name, func() {
				c := New()
				tc.mutate(c)
				err := c.validate()

				Convey("Then validation rejects it", func() {
					So(err, ShouldNotBeNil)
					So(errors.Is(err, ErrInvalidConfig), ShouldBeTrue)
				})
			})
		}
	})
}
